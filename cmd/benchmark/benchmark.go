package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"sync"
	"time"

	"github.com/tmpim/bmp2ansi"
)

func main() {
	if len(os.Args) != 2 {
		panic("must have path to image")
	}

	img, err := bmp2ansi.DecodeFile(os.Args[1])
	if err != nil {
		panic(err)
	}

	img.RenderAlpha(0)

	wg := new(sync.WaitGroup)

	start := time.Now()

	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				frame, err := bmp2ansi.RenderFramebuffer(img, 0.1)
				if err != nil {
					panic(err)
				}

				frame.WriteTo(ioutil.Discard)
			}
		}()
	}

	wg.Wait()
	fmt.Println("took:", time.Since(start))
}
