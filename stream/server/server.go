package main

import (
	"errors"
	"io/ioutil"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	"github.com/tmpim/bmp2ansi"
	"github.com/tmpim/bmp2ansi/stream"
)

const maxImageSize = 32 << 20

var (
	upgrader = websocket.Upgrader{
		HandshakeTimeout: 5 * time.Second,
	}
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "9999"
	}

	mgr := stream.NewManager(bmp2ansi.DefaultOptions())

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("32M"))

	api := e.Group("/api")

	api.GET("/client", func(c echo.Context) error {
		ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			return err
		}
		defer ws.Close()

		ws.SetReadLimit(maxImageSize)
		mgr.HandleConn(ws)

		return nil
	})

	api.GET("/clients", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]int{
			"clients": mgr.NumClients(),
		})
	})

	api.POST("/render", func(c echo.Context) error {
		frame, err := renderBody(c, mgr.Options())
		if err != nil {
			return err
		}

		return c.Blob(http.StatusOK, echo.MIMETextPlainCharsetUTF8, frame)
	})

	api.POST("/broadcast", func(c echo.Context) error {
		frame, err := renderBody(c, mgr.Options())
		if err != nil {
			return err
		}

		log.Println("bmp2ansi server: broadcasting frame to",
			mgr.NumClients(), "clients")
		mgr.Broadcast(frame)

		return c.NoContent(http.StatusNoContent)
	})

	log.Fatal(e.Start(":" + port))
}

func renderBody(c echo.Context, opts bmp2ansi.Options) ([]byte, error) {
	if err := queryOptions(c, &opts); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	data, err := ioutil.ReadAll(c.Request().Body)
	if err != nil {
		return nil, err
	}

	frame, err := stream.Render(data, opts)
	if errors.Is(err, bmp2ansi.ErrTooLarge) {
		return nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge, err.Error())
	} else if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	return frame, nil
}

func queryOptions(c echo.Context, opts *bmp2ansi.Options) error {
	var control stream.Control

	if v := c.QueryParam("cutoff"); v != "" {
		cutoff, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		control.Cutoff = &cutoff
	}

	control.Background = c.QueryParam("background")

	if v := c.QueryParam("width"); v != "" {
		width, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		control.Width = &width
	}

	if v := c.QueryParam("colors"); v != "" {
		colors, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		control.Colors = &colors
	}

	if v := c.QueryParam("mask"); v != "" {
		mask, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		control.Mask = &mask
	}

	if v := c.QueryParam("tolerance"); v != "" {
		tolerance, err := strconv.ParseUint(v, 10, 8)
		if err != nil {
			return err
		}
		t := uint8(tolerance)
		control.Tolerance = &t
	}

	if v := c.QueryParam("trim"); v != "" {
		trim, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		control.Trim = &trim
	}

	return control.Apply(opts)
}
