package bmp2ansi

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	esc         = "\x1b"
	reset       = esc + "[0m"
	blockTop    = '▀'
	blockBottom = '▄'
	space       = ' '
)

// OddHeightPolicy decides what happens to the last row of a framebuffer with
// an odd height, which has no row below it to pair with.
type OddHeightPolicy int

// Possible odd height policies.
const (
	// PadTransparent renders the missing row as fully transparent black.
	PadTransparent OddHeightPolicy = iota
	// RejectOddHeight fails the render with ErrOddHeight.
	RejectOddHeight
)

// Renderer renders framebuffers as ANSI text using half-block characters,
// two framebuffer rows per line of text. The zero value renders with
// DefaultPalette.
type Renderer struct {
	Quantizer Quantizer
	OddHeight OddHeightPolicy
}

// NewRenderer returns a renderer using the default xterm palette.
func NewRenderer() *Renderer {
	return &Renderer{
		Quantizer: DefaultPalette,
	}
}

// RenderFramebuffer renders fb with a renderer using the default xterm
// palette.
func RenderFramebuffer(fb *Framebuffer, cutoff float64) (*Frame, error) {
	return NewRenderer().RenderFramebuffer(fb, cutoff)
}

// RenderFramebuffer renders every pair of rows of fb. The framebuffer should
// already have its alpha removed with RenderAlpha. Cells where both pixels
// have an intensity (luminance / 255) at or below cutoff are left blank.
func (r *Renderer) RenderFramebuffer(fb *Framebuffer, cutoff float64) (*Frame, error) {
	if err := fb.check(); err != nil {
		return nil, err
	}

	if fb.Height%2 != 0 && r.OddHeight == RejectOddHeight {
		return nil, fmt.Errorf("%w: got %d", ErrOddHeight, fb.Height)
	}

	frame := &Frame{
		Width:  fb.Width,
		Height: (fb.Height + 1) / 2,
		Rows:   make([]string, 0, (fb.Height+1)/2),
	}

	for y := 0; y < fb.Height; y += 2 {
		row, err := r.RenderRow(fb, y, cutoff)
		if err != nil {
			return nil, err
		}
		frame.Rows = append(frame.Rows, row)
	}

	return frame, nil
}

// RenderRow renders rows y and y+1 of fb as a single line of text, without a
// trailing newline. If y is the last row, the row below follows the odd
// height policy.
func (r *Renderer) RenderRow(fb *Framebuffer, y int, cutoff float64) (string, error) {
	if err := fb.check(); err != nil {
		return "", err
	}

	if y < 0 || y >= fb.Height {
		return "", fmt.Errorf("%w: row %d of %d", ErrOutOfBounds, y, fb.Height)
	}

	if y+1 >= fb.Height && r.OddHeight == RejectOddHeight {
		return "", fmt.Errorf("%w: row %d is the last of %d", ErrOddHeight,
			y, fb.Height)
	}

	var line strings.Builder

	for x := 0; x < fb.Width; x++ {
		top := fb.Pixels[y*fb.Width+x]
		// past the last row reads as transparent black
		var bottom uint32
		if y+1 < fb.Height {
			bottom = fb.Pixels[(y+1)*fb.Width+x]
		}

		topIntensity := gray(top) / 255
		bottomIntensity := gray(bottom) / 255

		// don't display anything if both colors are too dim.
		// otherwise, the brightest color is the block foreground.
		if topIntensity <= cutoff && bottomIntensity <= cutoff {
			line.WriteString(reset)
			line.WriteRune(space)
			continue
		}

		fg, bg, block := top, bottom, blockTop
		if topIntensity < bottomIntensity {
			fg, bg, block = bottom, top, blockBottom
		}

		if err := r.writeColor(&line, fg, "38"); err != nil {
			return "", err
		}
		if err := r.writeColor(&line, bg, "48"); err != nil {
			return "", err
		}
		line.WriteRune(block)
	}

	line.WriteString(reset)
	return line.String(), nil
}

func (r *Renderer) writeColor(line *strings.Builder, color uint32, role string) error {
	q := r.Quantizer
	if q == nil {
		q = DefaultPalette
	}

	index, err := q.NearestIndex(HexString(color))
	if err != nil {
		return err
	}

	line.WriteString(esc + "[" + role + ";5;")
	line.WriteString(strconv.Itoa(index))
	line.WriteByte('m')
	return nil
}
