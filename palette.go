package bmp2ansi

import (
	"fmt"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// Quantizer maps a color, given as six lowercase hex digits, to the index of
// the nearest color in a terminal palette.
type Quantizer interface {
	NearestIndex(hex string) (int, error)
}

// Color cube levels for xterm 256-color indices 16-231.
var cubeLevels = [6]uint8{0, 95, 135, 175, 215, 255}

const (
	cubeStart = 16
	grayStart = 232
)

// XtermPalette quantizes colors to the xterm 256-color palette. Only indices
// 16-255 (the color cube and grayscale ramp) are considered, since terminals
// commonly redefine the first 16 colors. It is safe for concurrent use.
type XtermPalette struct {
	colors []colorful.Color
	cache  sync.Map // hex string -> int
}

// DefaultPalette is the shared xterm palette used by the package level
// render functions.
var DefaultPalette = NewXtermPalette()

// NewXtermPalette returns a new xterm 256-color quantizer.
func NewXtermPalette() *XtermPalette {
	p := &XtermPalette{
		colors: make([]colorful.Color, 0, 256-cubeStart),
	}

	for _, r := range cubeLevels {
		for _, g := range cubeLevels {
			for _, b := range cubeLevels {
				p.colors = append(p.colors, rgbColor(r, g, b))
			}
		}
	}

	for i := 0; i < 256-grayStart; i++ {
		level := uint8(8 + 10*i)
		p.colors = append(p.colors, rgbColor(level, level, level))
	}

	return p
}

func rgbColor(r, g, b uint8) colorful.Color {
	return colorful.Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}
}

// Color returns the RGB value of a palette index in the range 16-255.
func (p *XtermPalette) Color(index int) (uint32, error) {
	if index < cubeStart || index-cubeStart >= len(p.colors) {
		return 0, fmt.Errorf("bmp2ansi: palette index %d out of range", index)
	}

	r, g, b := p.colors[index-cubeStart].RGB255()
	return PackARGB(0xff, r, g, b), nil
}

// NearestIndex implements Quantizer using CIE L*a*b* distance. Ties resolve
// to the lower index.
func (p *XtermPalette) NearestIndex(hex string) (int, error) {
	if index, found := p.cache.Load(hex); found {
		return index.(int), nil
	}

	target, err := colorful.Hex("#" + hex)
	if err != nil {
		return 0, fmt.Errorf("bmp2ansi: NearestIndex: %w", err)
	}

	best := 0
	bestDist := target.DistanceLab(p.colors[0])
	for i, c := range p.colors[1:] {
		dist := target.DistanceLab(c)
		if dist < bestDist {
			best = i + 1
			bestDist = dist
		}
	}

	index := best + cubeStart
	p.cache.Store(hex, index)
	return index, nil
}
