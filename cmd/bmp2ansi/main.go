package main

import (
	"context"
	"errors"
	"flag"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tmpim/bmp2ansi"
)

var (
	cutoff     = flag.Float64("c", 0.1, "set the intensity below which a cell is left blank (0 to 1)")
	background = flag.String("b", "000000", "set the background color transparent pixels are drawn over (hex)")
	width      = flag.Int("w", 0, "resize images to this width in columns (0 = original size)")
	colors     = flag.Int("colors", 0, "reduce images to this many colors before rendering (0 = off)")
	speed      = flag.Int("q", 10, "set the color reduction speed/quality (1 = slowest, 10 = fastest)")
	dither     = flag.Float64("d", 0.0, "set the amount of color reduction dithering (0 = none, 1 = most)")
	mask       = flag.Bool("mask", false, "make the background connected to the image corners transparent")
	tolerance  = flag.Uint("t", 0, "set the per-channel tolerance used by -mask (0 to 255)")
	trim       = flag.Bool("trim", false, "crop transparent borders")
	strict     = flag.Bool("strict", false, "fail on images with an odd height instead of padding them")
	workers    = flag.Int("j", 0, "set the number of images processed at once (0 = number of CPUs)")
	failFast   = flag.Bool("failfast", false, "stop at the first image that fails")
	preview    = flag.String("p", "", "write a PNG preview of each prepared image into this directory")
)

func main() {
	flag.Parse()
	log.SetFlags(0)

	if flag.NArg() == 0 {
		log.Println("usage: bmp2ansi [options] <filename.bmp>...")
		log.Println("  writes ansi codes to stdout")
		log.Println("")
		log.Println("Options:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *tolerance > 255 {
		log.Println("Tolerance cannot be greater than 255.")
		os.Exit(1)
	}

	bg, err := bmp2ansi.ParseHexColor(*background)
	if err != nil {
		log.Println("Invalid background color:", err)
		os.Exit(1)
	}

	opts := bmp2ansi.BatchOptions{
		Options: bmp2ansi.Options{
			Background: bg,
			Cutoff:     *cutoff,
			Width:      *width,
			Colors:     *colors,
			Speed:      *speed,
			Dither:     *dither,
			Mask:       *mask,
			Tolerance:  uint8(*tolerance),
			Trim:       *trim,
		},
		Workers:  *workers,
		FailFast: *failFast,
	}

	if *strict {
		opts.OddHeight = bmp2ansi.RejectOddHeight
	}

	if *preview != "" {
		if err := os.MkdirAll(*preview, 0755); err != nil {
			log.Println("Failed to create preview directory:", err)
			os.Exit(1)
		}
		opts.Preview = writePreview
	}

	results, err := bmp2ansi.RenderFiles(context.Background(), flag.Args(), opts)
	if results == nil {
		log.Println("Failed to render:", err)
		os.Exit(1)
	}

	failed := false
	for _, result := range results {
		if errors.Is(result.Err, context.Canceled) {
			failed = true
			continue
		}

		if result.Err != nil {
			log.Printf("Failed to render %q: %v\n", result.Path, result.Err)
			failed = true
			continue
		}

		if _, err := result.Frame.WriteTo(os.Stdout); err != nil {
			log.Println("Failed to write output:", err)
			os.Exit(1)
		}
	}

	if err != nil || failed {
		os.Exit(1)
	}
}

func writePreview(index int, path string, fb *bmp2ansi.Framebuffer) error {
	output, err := os.Create(filepath.Join(*preview, previewName(index, path)))
	if err != nil {
		return err
	}
	defer output.Close()

	return png.Encode(output, fb)
}

// previewName prefixes the input index so that inputs sharing a base name
// get their own preview.
func previewName(index int, path string) string {
	base := filepath.Base(path)
	return strconv.Itoa(index) + "-" +
		strings.TrimSuffix(base, filepath.Ext(base)) + ".png"
}
