package bmp2ansi

import (
	"sync"
	"testing"
)

func TestXtermPaletteNearestIndex(t *testing.T) {
	p := NewXtermPalette()

	tests := []struct {
		hex  string
		want int
	}{
		{"000000", 16},
		{"ffffff", 231},
		{"ff0000", 196},
		{"00ff00", 46},
		{"0000ff", 21},
		{"5f87af", 67},
		{"808080", 244},
		{"eeeeee", 255},
		{"080808", 232},
	}

	for _, tt := range tests {
		got, err := p.NearestIndex(tt.hex)
		if err != nil {
			t.Fatalf("NearestIndex(%q): %v", tt.hex, err)
		}
		if got != tt.want {
			t.Errorf("NearestIndex(%q) = %d, want %d", tt.hex, got, tt.want)
		}

		// cached result is the same
		if again, _ := p.NearestIndex(tt.hex); again != got {
			t.Errorf("NearestIndex(%q) second call = %d, want %d", tt.hex, again, got)
		}
	}
}

func TestXtermPaletteInvalid(t *testing.T) {
	if _, err := NewXtermPalette().NearestIndex("zzzzzz"); err == nil {
		t.Error("expected error for invalid hex")
	}
}

func TestXtermPaletteColor(t *testing.T) {
	p := NewXtermPalette()

	tests := []struct {
		index int
		want  uint32
	}{
		{16, 0xff000000},
		{67, 0xff5f87af},
		{231, 0xffffffff},
		{232, 0xff080808},
		{255, 0xffeeeeee},
	}

	for _, tt := range tests {
		got, err := p.Color(tt.index)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("Color(%d) = %#x, want %#x", tt.index, got, tt.want)
		}
	}

	for _, index := range []int{-1, 0, 15, 256} {
		if _, err := p.Color(index); err == nil {
			t.Errorf("Color(%d): expected error", index)
		}
	}
}

func TestXtermPaletteRoundTrip(t *testing.T) {
	p := NewXtermPalette()

	for index := 16; index < 256; index++ {
		c, err := p.Color(index)
		if err != nil {
			t.Fatal(err)
		}
		got, err := p.NearestIndex(HexString(c))
		if err != nil {
			t.Fatal(err)
		}
		if got != index {
			t.Errorf("NearestIndex(Color(%d)) = %d", index, got)
		}
	}
}

func TestXtermPaletteConcurrent(t *testing.T) {
	p := NewXtermPalette()
	wg := new(sync.WaitGroup)

	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 64; i++ {
				idx, err := p.NearestIndex(HexString(uint32(i * 0x030507)))
				if err != nil || idx < 16 || idx > 255 {
					t.Errorf("NearestIndex = %d, %v", idx, err)
				}
			}
		}()
	}

	wg.Wait()
}
