package bmp2ansi

import "errors"

// Possible errors returned by framebuffer and rendering operations.
var (
	ErrInvalidDimensions = errors.New("bmp2ansi: width and height must be positive")
	ErrOutOfBounds       = errors.New("bmp2ansi: coordinates out of bounds")
	ErrDecode            = errors.New("bmp2ansi: failed to decode image")
	ErrOddHeight         = errors.New("bmp2ansi: image height must be a multiple of 2")
	ErrEmpty             = errors.New("bmp2ansi: image has no visible pixels")
	ErrTooLarge          = errors.New("bmp2ansi: image is too large")
)
