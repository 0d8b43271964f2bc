package bmp2ansi

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Decode decodes a BMP, PNG, JPEG, GIF or WebP image into a
// framebuffer. Decoding failures wrap ErrDecode.
func Decode(rd io.Reader) (*Framebuffer, error) {
	img, _, err := image.Decode(rd)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrDecode)
	}

	return FromImage(img)
}

// DecodeFile opens and decodes the image at path.
func DecodeFile(path string) (*Framebuffer, error) {
	input, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer input.Close()

	return Decode(input)
}
