package stream

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/tmpim/bmp2ansi"
)

// Possible packet types, sent as the first byte of every binary message to
// a client.
const (
	PacketFrame = iota + 1
	PacketError
)

// Control is a control message sent by a client as JSON text. Fields that
// are not set keep their current value.
type Control struct {
	ID         string   `json:"id"`
	Cutoff     *float64 `json:"cutoff"`
	Background string   `json:"background"`
	Width      *int     `json:"width"`
	Colors     *int     `json:"colors"`
	Mask       *bool    `json:"mask"`
	Tolerance  *uint8   `json:"tolerance"`
	Trim       *bool    `json:"trim"`
}

// Apply updates opts with the fields set in the control message.
func (c *Control) Apply(opts *bmp2ansi.Options) error {
	if c.Background != "" {
		bg, err := bmp2ansi.ParseHexColor(c.Background)
		if err != nil {
			return err
		}
		opts.Background = bg
	}
	if c.Cutoff != nil {
		opts.Cutoff = *c.Cutoff
	}
	if c.Width != nil {
		opts.Width = *c.Width
	}
	if c.Colors != nil {
		opts.Colors = *c.Colors
	}
	if c.Mask != nil {
		opts.Mask = *c.Mask
	}
	if c.Tolerance != nil {
		opts.Tolerance = *c.Tolerance
	}
	if c.Trim != nil {
		opts.Trim = *c.Trim
	}

	return nil
}

// Client is a websocket connected client.
type Client struct {
	mutex   *sync.Mutex
	id      string
	conn    *websocket.Conn
	options bmp2ansi.Options
}

// ID returns the ID the client last identified itself with.
func (c *Client) ID() string {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.id
}

func (c *Client) send(packet byte, data []byte) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.conn.WriteMessage(websocket.BinaryMessage,
		append([]byte{packet}, data...))
}

// Manager renders images sent by websocket clients.
type Manager struct {
	clientsMutex *sync.Mutex
	clients      []*Client

	baseOptions bmp2ansi.Options
}

// NewManager returns a manager whose clients start with the given options.
func NewManager(baseOptions bmp2ansi.Options) *Manager {
	return &Manager{
		clientsMutex: new(sync.Mutex),
		baseOptions:  baseOptions,
	}
}

// Options returns the options new clients start with.
func (m *Manager) Options() bmp2ansi.Options {
	return m.baseOptions
}

// NumClients returns the number of connected clients.
func (m *Manager) NumClients() int {
	m.clientsMutex.Lock()
	defer m.clientsMutex.Unlock()

	return len(m.clients)
}

// Render decodes an encoded image and renders it with opts. Images with more
// than bmp2ansi.MaxPixels pixels are rejected before being decoded.
func Render(data []byte, opts bmp2ansi.Options) ([]byte, error) {
	config, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", bmp2ansi.ErrDecode, err)
	}

	if int64(config.Width)*int64(config.Height) > bmp2ansi.MaxPixels {
		return nil, fmt.Errorf("%w: got %dx%d", bmp2ansi.ErrTooLarge,
			config.Width, config.Height)
	}

	fb, err := bmp2ansi.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	frame, err := bmp2ansi.Convert(fb, opts)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if _, err := frame.WriteTo(buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Broadcast sends a rendered frame to every connected client.
func (m *Manager) Broadcast(frame []byte) {
	m.clientsMutex.Lock()
	clientCopy := make([]*Client, len(m.clients))
	copy(clientCopy, m.clients)
	m.clientsMutex.Unlock()

	for _, client := range clientCopy {
		if err := client.send(PacketFrame, frame); err != nil {
			log.Println("bmp2ansi stream: Broadcast: failed to send to",
				client.ID()+":", err)
		}
	}
}

// HandleConn serves a client until it disconnects. Text messages are JSON
// Control messages, binary messages are encoded images which are rendered
// and sent back.
func (m *Manager) HandleConn(conn *websocket.Conn) {
	m.clientsMutex.Lock()
	client := &Client{
		mutex:   new(sync.Mutex),
		conn:    conn,
		options: m.baseOptions,
	}
	m.clients = append(m.clients, client)
	m.clientsMutex.Unlock()

	defer func() {
		m.clientsMutex.Lock()
		defer m.clientsMutex.Unlock()

		for i, c := range m.clients {
			if c == client {
				m.clients = append(m.clients[:i], m.clients[i+1:]...)
				return
			}
		}
	}()

	for {
		msgType, data, err := client.conn.ReadMessage()
		if err != nil {
			log.Println("bmp2ansi stream: client disconnected:", err)
			return
		}

		switch msgType {
		case websocket.TextMessage:
			err = client.handleControl(data)
		case websocket.BinaryMessage:
			err = client.handleImage(data)
		default:
			continue
		}

		if err != nil {
			log.Println("bmp2ansi stream: HandleConn:", err)
			if sendErr := client.send(PacketError, []byte(err.Error())); sendErr != nil {
				log.Println("bmp2ansi stream: failed to send error:", sendErr)
				return
			}
		}
	}
}

func (c *Client) handleControl(data []byte) error {
	var control Control
	if err := json.Unmarshal(data, &control); err != nil {
		return errors.New("bmp2ansi stream: invalid control message: " + err.Error())
	}

	opts := c.options
	if err := control.Apply(&opts); err != nil {
		return err
	}

	c.mutex.Lock()
	if control.ID != "" {
		c.id = control.ID
	}
	c.mutex.Unlock()

	c.options = opts
	return nil
}

func (c *Client) handleImage(data []byte) error {
	frame, err := Render(data, c.options)
	if err != nil {
		return err
	}

	return c.send(PacketFrame, frame)
}
