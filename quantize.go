package bmp2ansi

import (
	"fmt"

	"github.com/1lann/imagequant"
)

// Quantize reduces fb to a maximum of the given number of colors with the
// given speed (1 = slowest, 10 = fastest) and dithering level (0 = none,
// 1 = most). The framebuffer should already be opaque.
func Quantize(fb *Framebuffer, colors, speed int, dither float64) (*Framebuffer, error) {
	attr, err := getAttributes(colors, speed)
	if err != nil {
		return nil, fmt.Errorf("bmp2ansi: Attributes: %s", err.Error())
	}
	defer attr.Release()

	quant, err := imagequant.NewImage(attr, imagequant.GoImageToRgba32(fb),
		fb.Width, fb.Height, 0)
	if err != nil {
		return nil, fmt.Errorf("bmp2ansi: NewImage: %s", err.Error())
	}
	defer quant.Release()

	res, err := quant.Quantize(attr)
	if err != nil {
		return nil, fmt.Errorf("bmp2ansi: Quantize: %s", err.Error())
	}

	err = res.SetDitheringLevel(float32(dither))
	if err != nil {
		return nil, fmt.Errorf("bmp2ansi: SetDitheringLevel: %s", err.Error())
	}

	rgb8data, err := res.WriteRemappedImage()
	if err != nil {
		return nil, fmt.Errorf("bmp2ansi: WriteRemappedImage: %s", err.Error())
	}

	result := imagequant.Rgb8PaletteToGoImage(res.GetImageWidth(),
		res.GetImageHeight(), rgb8data, res.GetPalette())

	out, err := FromImage(result)
	if err != nil {
		return nil, err
	}

	out.ColorDepth = fb.ColorDepth
	return out, nil
}

func getAttributes(colors, speed int) (*imagequant.Attributes, error) {
	attr, err := imagequant.NewAttributes()
	if err != nil {
		return nil, fmt.Errorf("NewAttributes: %s", err.Error())
	}

	err = attr.SetSpeed(speed)
	if err != nil {
		attr.Release()
		return nil, fmt.Errorf("SetSpeed: %s", err.Error())
	}

	err = attr.SetMaxColors(colors)
	if err != nil {
		attr.Release()
		return nil, fmt.Errorf("SetMaxColors: %s", err.Error())
	}

	return attr, nil
}
