package bmp2ansi

import (
	"bufio"
	"io"
	"strings"
)

// Frame is a rendered image: one row of ANSI-colored text per pair of
// framebuffer rows. Every row ends with a reset sequence.
type Frame struct {
	Width  int
	Height int

	Rows []string
}

// WriteTo writes each row of the frame followed by a newline.
func (f *Frame) WriteTo(w io.Writer) (int64, error) {
	wr := bufio.NewWriter(w)

	var total int64
	for _, row := range f.Rows {
		n, err := wr.WriteString(row)
		total += int64(n)
		if err != nil {
			return total, err
		}

		err = wr.WriteByte('\n')
		if err != nil {
			return total, err
		}
		total++
	}

	return total, wr.Flush()
}

func (f *Frame) String() string {
	var b strings.Builder
	f.WriteTo(&b)
	return b.String()
}
