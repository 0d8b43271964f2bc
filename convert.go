package bmp2ansi

import (
	"errors"
	"fmt"
	"math"
)

// Limits on the size of images being converted.
const (
	MaxWidth  = 1024
	MaxPixels = 1 << 24
)

// Options configure how an image is converted into a Frame.
type Options struct {
	// Background is composited behind transparent pixels. Only RGB is used.
	Background uint32
	// Cutoff is the intensity (0 to 1) at or below which both halves of a
	// cell are considered too dim to draw.
	Cutoff float64

	// Width resizes the image to this many pixels (and therefore columns)
	// before rendering. 0 keeps the original size.
	Width int

	// Colors reduces the image to at most this many colors before
	// rendering. 0 disables color reduction.
	Colors int
	// Speed is the color reduction speed, 1 (slowest) to 10 (fastest).
	Speed int
	// Dither is the color reduction dithering level, 0 (none) to 1 (most).
	Dither float64

	// Mask makes the background regions connected to the image corners
	// transparent, with channels allowed to differ by Tolerance.
	Mask      bool
	Tolerance uint8
	// Trim crops fully transparent borders.
	Trim bool

	OddHeight OddHeightPolicy
	Quantizer Quantizer
}

// DefaultOptions returns options rendering on black with a cutoff of 10%.
func DefaultOptions() Options {
	return Options{
		Background: 0xff000000,
		Cutoff:     0.1,
		Speed:      10,
		Dither:     0,
	}
}

func (o *Options) validate() error {
	if math.IsNaN(o.Cutoff) || o.Cutoff < 0 || o.Cutoff > 1 {
		return errors.New("bmp2ansi: Convert: cutoff must be between 0 and 1")
	}
	if o.Width < 0 || o.Width > MaxWidth {
		return fmt.Errorf("bmp2ansi: Convert: width must be between 0 and %d",
			MaxWidth)
	}
	if o.Colors != 0 && (o.Colors < 2 || o.Colors > 256) {
		return errors.New("bmp2ansi: Convert: colors must be 0 or between 2 and 256")
	}
	if o.Colors != 0 && (o.Speed < 1 || o.Speed > 10) {
		return errors.New("bmp2ansi: Convert: speed must be between 1 and 10")
	}
	if math.IsNaN(o.Dither) || o.Dither < 0 || o.Dither > 1 {
		return errors.New("bmp2ansi: Convert: dither must be between 0 and 1")
	}

	return nil
}

// Prepare masks, trims, resizes, composites and reduces the colors of fb
// according to opts, returning the opaque framebuffer ready to be rendered.
// fb is modified in place by masking and alpha compositing, and may be
// returned itself.
func Prepare(fb *Framebuffer, opts Options) (*Framebuffer, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	if err := fb.check(); err != nil {
		return nil, err
	}

	if opts.Mask {
		fb.MaskBackground(opts.Tolerance)
	}

	if opts.Trim {
		trimmed, err := fb.Trim()
		if err != nil {
			return nil, err
		}
		fb = trimmed
	}

	fb, err := Resize(fb, opts.Width)
	if err != nil {
		return nil, err
	}

	fb.RenderAlpha(opts.Background)

	if opts.Colors != 0 {
		quant, err := Quantize(fb, opts.Colors, opts.Speed, opts.Dither)
		if err != nil {
			return nil, err
		}
		fb = quant
	}

	return fb, nil
}

// Convert prepares fb with Prepare and renders it.
func Convert(fb *Framebuffer, opts Options) (*Frame, error) {
	prepared, err := Prepare(fb, opts)
	if err != nil {
		return nil, err
	}

	return opts.renderer().RenderFramebuffer(prepared, opts.Cutoff)
}

func (o *Options) renderer() *Renderer {
	return &Renderer{
		Quantizer: o.Quantizer,
		OddHeight: o.OddHeight,
	}
}
