package bmp2ansi

import (
	"fmt"
	"image"
)

// MaskRegion makes the region connected to (x, y) fully transparent. A pixel
// belongs to the region if each of its RGB channels is within tolerance of
// the pixel at (x, y). The RGB channels of masked pixels are kept. It returns
// the number of pixels masked.
func (f *Framebuffer) MaskRegion(x, y int, tolerance uint8) (int, error) {
	seed, err := f.GetPixel(x, y)
	if err != nil {
		return 0, err
	}

	masked := 0
	err = f.WalkFrom(func(x, y int, pixel uint32) bool {
		if !similar(seed, pixel, tolerance) {
			return false
		}

		f.Pixels[y*f.Width+x] = pixel & 0xffffff
		masked++
		return true
	}, x, y)

	return masked, err
}

// MaskBackground masks the regions connected to each of the four corners,
// skipping corners that are already fully transparent. It returns the total
// number of pixels masked.
func (f *Framebuffer) MaskBackground(tolerance uint8) int {
	corners := []image.Point{
		{0, 0},
		{f.Width - 1, 0},
		{0, f.Height - 1},
		{f.Width - 1, f.Height - 1},
	}

	total := 0
	for _, corner := range corners {
		pixel, err := f.GetPixel(corner.X, corner.Y)
		if err != nil || Alpha(pixel) == 0 {
			continue
		}

		n, _ := f.MaskRegion(corner.X, corner.Y, tolerance)
		total += n
	}

	return total
}

// Trim returns a copy of the framebuffer cropped to the smallest rectangle
// containing every pixel with a non-zero alpha.
func (f *Framebuffer) Trim() (*Framebuffer, error) {
	if err := f.check(); err != nil {
		return nil, err
	}

	var visible image.Rectangle
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			if Alpha(f.Pixels[y*f.Width+x]) == 0 {
				continue
			}
			visible = visible.Union(image.Rect(x, y, x+1, y+1))
		}
	}

	if visible.Empty() {
		return nil, ErrEmpty
	}

	return f.Crop(visible)
}

// Crop returns a copy of the pixels inside r.
func (f *Framebuffer) Crop(r image.Rectangle) (*Framebuffer, error) {
	if err := f.check(); err != nil {
		return nil, err
	}

	if r.Empty() || !r.In(f.Bounds()) {
		return nil, fmt.Errorf("%w: crop %v of %v", ErrOutOfBounds,
			r, f.Bounds())
	}

	out, err := NewFramebuffer(r.Dx(), r.Dy(), f.ColorDepth)
	if err != nil {
		return nil, err
	}

	for y := r.Min.Y; y < r.Max.Y; y++ {
		copy(out.Pixels[(y-r.Min.Y)*out.Width:],
			f.Pixels[y*f.Width+r.Min.X:y*f.Width+r.Max.X])
	}

	return out, nil
}

func similar(a, b uint32, tolerance uint8) bool {
	return channelDelta(Red(a), Red(b)) <= tolerance &&
		channelDelta(Green(a), Green(b)) <= tolerance &&
		channelDelta(Blue(a), Blue(b)) <= tolerance
}

func channelDelta(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
