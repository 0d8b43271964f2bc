package bmp2ansi

import (
	"fmt"
	"image"

	"github.com/disintegration/gift"
)

// Resize scales fb to the given width in pixels, preserving its aspect
// ratio, using Lanczos resampling. A width of 0 or less, or equal to the
// current width, returns fb itself. Results larger than MaxPixels are
// rejected with ErrTooLarge.
func Resize(fb *Framebuffer, width int) (*Framebuffer, error) {
	if err := fb.check(); err != nil {
		return nil, err
	}

	if width <= 0 || width == fb.Width {
		return fb, nil
	}

	filter := gift.Resize(width, 0, gift.LanczosResampling)
	bounds := filter.Bounds(fb.Bounds())
	if int64(bounds.Dx())*int64(bounds.Dy()) > MaxPixels {
		return nil, fmt.Errorf("%w: resizing to %dx%d", ErrTooLarge,
			bounds.Dx(), bounds.Dy())
	}

	dst := image.NewNRGBA(bounds)
	filter.Draw(dst, fb, &gift.Options{
		Parallelization: false,
	})

	out, err := FromImage(dst)
	if err != nil {
		return nil, err
	}

	out.ColorDepth = fb.ColorDepth
	return out, nil
}
