package bmp2ansi

// RenderAlpha removes the alpha channel by compositing every pixel over the
// given background color. Only the RGB part of background is used. Pixels
// with an alpha of exactly 255 are left untouched.
func (f *Framebuffer) RenderAlpha(background uint32) {
	for i, pixel := range f.Pixels {
		alpha := Alpha(pixel)
		if alpha == 255 {
			continue
		}

		blend := float64(alpha) / 255
		mix := func(shift uint) uint32 {
			pc := float64((pixel >> shift) & 0xff)
			bc := float64((background >> shift) & 0xff)
			// truncate, don't round
			return uint32(int32(pc*blend+bc*(1.0-blend))&0xff) << shift
		}

		f.Pixels[i] = 0xff000000 | mix(16) | mix(8) | mix(0)
	}
}
