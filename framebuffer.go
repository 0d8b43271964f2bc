package bmp2ansi

import (
	"fmt"
	"image"
	"image/color"
)

// Framebuffer is a grid of packed aRGB pixels, 8 bits per channel with blue
// in the lowest 8 bits and alpha in the highest. Pixels are stored row-major,
// top to bottom, left to right.
//
// A Framebuffer is not safe for concurrent use.
type Framebuffer struct {
	Width  int
	Height int

	// ColorDepth is informational only.
	ColorDepth int

	Pixels []uint32
}

// NewFramebuffer creates a framebuffer of width x height fully transparent
// black pixels.
func NewFramebuffer(width, height, colorDepth int) (*Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions,
			width, height)
	}

	return &Framebuffer{
		Width:      width,
		Height:     height,
		ColorDepth: colorDepth,
		Pixels:     make([]uint32, width*height),
	}, nil
}

// FromImage copies any image into a new framebuffer with a color depth of 32.
// Colors are stored non-premultiplied. Empty images are rejected with
// ErrInvalidDimensions.
func FromImage(img image.Image) (*Framebuffer, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions,
			bounds.Dx(), bounds.Dy())
	}

	fb := &Framebuffer{
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		ColorDepth: 32,
		Pixels:     make([]uint32, bounds.Dx()*bounds.Dy()),
	}

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			fb.Pixels[i] = PackARGB(c.A, c.R, c.G, c.B)
			i++
		}
	}

	return fb, nil
}

func (f *Framebuffer) String() string {
	return fmt.Sprintf("Framebuffer(width=%d, height=%d, depth=%d)",
		f.Width, f.Height, f.ColorDepth)
}

// In reports whether (x, y) lies inside the framebuffer.
func (f *Framebuffer) In(x, y int) bool {
	return x >= 0 && x < f.Width && y >= 0 && y < f.Height
}

// check reports an error if the dimensions of f don't match its pixels,
// which can happen with framebuffers built by hand.
func (f *Framebuffer) check() error {
	if f.Width <= 0 || f.Height <= 0 || len(f.Pixels) != f.Width*f.Height {
		return fmt.Errorf("%w: %dx%d with %d pixels", ErrInvalidDimensions,
			f.Width, f.Height, len(f.Pixels))
	}
	return nil
}

func (f *Framebuffer) offset(x, y int) (int, error) {
	if err := f.check(); err != nil {
		return 0, err
	}
	if !f.In(x, y) {
		return 0, fmt.Errorf("%w: (%d, %d) in %dx%d", ErrOutOfBounds,
			x, y, f.Width, f.Height)
	}
	return y*f.Width + x, nil
}

// SetPixel sets the packed color at (x, y).
func (f *Framebuffer) SetPixel(x, y int, c uint32) error {
	offset, err := f.offset(x, y)
	if err != nil {
		return err
	}

	f.Pixels[offset] = c
	return nil
}

// GetPixel returns the packed color at (x, y).
func (f *Framebuffer) GetPixel(x, y int) (uint32, error) {
	offset, err := f.offset(x, y)
	if err != nil {
		return 0, err
	}

	return f.Pixels[offset], nil
}

// Gray returns the luminance of the pixel at (x, y) on a 0-255 scale,
// computed as 0.21 R + 0.72 G + 0.07 B. Alpha is ignored.
func (f *Framebuffer) Gray(x, y int) (float64, error) {
	pixel, err := f.GetPixel(x, y)
	if err != nil {
		return 0, err
	}

	return gray(pixel), nil
}

// IsOn reports whether the pixel at (x, y) has a luminance of at least 127.
func (f *Framebuffer) IsOn(x, y int) (bool, error) {
	g, err := f.Gray(x, y)
	if err != nil {
		return false, err
	}

	return g >= 127, nil
}

func gray(pixel uint32) float64 {
	return 0.21*float64(Red(pixel)) + 0.72*float64(Green(pixel)) +
		0.07*float64(Blue(pixel))
}

// ColorModel implements image.Image.
func (f *Framebuffer) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements image.Image.
func (f *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.Width, f.Height)
}

// At implements image.Image. Points outside the framebuffer are transparent.
func (f *Framebuffer) At(x, y int) color.Color {
	if !f.In(x, y) || y*f.Width+x >= len(f.Pixels) {
		return color.NRGBA{}
	}

	pixel := f.Pixels[y*f.Width+x]
	return color.NRGBA{
		R: Red(pixel),
		G: Green(pixel),
		B: Blue(pixel),
		A: Alpha(pixel),
	}
}
