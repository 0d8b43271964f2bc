package bmp2ansi

import (
	"math"
	"testing"
)

func TestRenderAlpha(t *testing.T) {
	tests := []struct {
		name       string
		pixel      uint32
		background uint32
		want       uint32
	}{
		{"opaque untouched", 0xff123456, 0xffffff, 0xff123456},
		{"opaque black untouched", 0xff000000, 0xffffff, 0xff000000},
		{"transparent is background", 0x00123456, 0xabcdef, 0xffabcdef},
		{"transparent ignores background alpha", 0x00123456, 0x00abcdef, 0xffabcdef},
		{"half over white", 0x80000000, 0xffffff, 0xff7f7f7f},
		{"mixed channels", 0x4033cc00, 0x991100, 0xff7f3f00},
		{"truncates", 0x80650000, 0x000000, 0xff320000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := newTestFramebuffer(t, 1, 1, tt.pixel)
			fb.RenderAlpha(tt.background)
			if fb.Pixels[0] != tt.want {
				t.Errorf("RenderAlpha(%#x) of %#x = %#x, want %#x",
					tt.background, tt.pixel, fb.Pixels[0], tt.want)
			}
		})
	}
}

func TestRenderAlphaOpaqueIdentity(t *testing.T) {
	fb := newTestFramebuffer(t, 16, 16)
	for i := range fb.Pixels {
		fb.Pixels[i] = 0xff000000 | uint32(i*0x010307)
	}

	want := make([]uint32, len(fb.Pixels))
	copy(want, fb.Pixels)

	fb.RenderAlpha(0x808080)
	for i := range want {
		if fb.Pixels[i] != want[i] {
			t.Fatalf("Pixels[%d] = %#x, want %#x", i, fb.Pixels[i], want[i])
		}
	}
}

func TestRenderAlphaZeroIsBackground(t *testing.T) {
	backgrounds := []uint32{0, 0xffffff, 0x123456, 0xff00ff00, 0x80fedcba}

	for _, bg := range backgrounds {
		fb := newTestFramebuffer(t, 2, 1, 0x00ffffff, 0x00000000)
		fb.RenderAlpha(bg)
		for i, p := range fb.Pixels {
			if want := 0xff000000 | (bg & 0xffffff); p != want {
				t.Errorf("background %#x: Pixels[%d] = %#x, want %#x", bg, i, p, want)
			}
		}
	}
}

// Blending must truncate toward zero rather than round. Compare against both
// for every alpha with fractional blends and make sure we always match the
// truncated result.
func TestRenderAlphaTruncatesNotRounds(t *testing.T) {
	diverged := 0

	for alpha := 1; alpha < 255; alpha++ {
		for _, pc := range []uint32{0, 1, 101, 200, 255} {
			const bc = 10
			blend := float64(alpha) / 255
			mixed := float64(pc)*blend + bc*(1-blend)

			truncated := uint32(int32(mixed) & 0xff)
			rounded := uint32(int32(math.Round(mixed)) & 0xff)
			if truncated != rounded {
				diverged++
			}

			fb := newTestFramebuffer(t, 1, 1, uint32(alpha)<<24|pc<<16)
			fb.RenderAlpha(bc << 16)
			if got := Red(fb.Pixels[0]); uint32(got) != truncated {
				t.Fatalf("alpha %d, pc %d: red = %d, want %d (rounded would be %d)",
					alpha, pc, got, truncated, rounded)
			}
		}
	}

	if diverged == 0 {
		t.Fatal("no case distinguishes truncation from rounding")
	}
}
