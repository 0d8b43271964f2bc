package bmp2ansi

import "testing"

func TestQuantize(t *testing.T) {
	fb := newTestFramebuffer(t, 8, 8)
	for i := range fb.Pixels {
		fb.Pixels[i] = PackARGB(0xff, uint8(i*4), uint8(255-i*4), uint8(i*13))
	}

	out, err := Quantize(fb, 4, 10, 0)
	if err != nil {
		t.Fatal(err)
	}

	if out.Width != fb.Width || out.Height != fb.Height {
		t.Fatalf("Quantize = %v, want %dx%d", out, fb.Width, fb.Height)
	}

	colors := make(map[uint32]bool)
	for _, p := range out.Pixels {
		colors[p] = true
	}
	if len(colors) > 4 {
		t.Errorf("got %d colors, want at most 4", len(colors))
	}
}
