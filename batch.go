package bmp2ansi

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// BatchOptions configure RenderFiles.
type BatchOptions struct {
	Options

	// Workers is the maximum number of files processed at once. Defaults to
	// the number of CPUs.
	Workers int
	// FailFast stops processing at the first failure and returns it.
	// Otherwise failures are only reported in each file's Result.
	FailFast bool

	// Preview, if set, is called with the index in paths and the prepared
	// framebuffer of each file before it is rendered. It may be called
	// concurrently, and with the same path more than once.
	Preview func(index int, path string, fb *Framebuffer) error
}

// Result is the outcome of rendering one file.
type Result struct {
	Path  string
	Frame *Frame
	Err   error
}

// RenderFiles decodes and renders every file in paths concurrently. The
// returned results are in the same order as paths.
func RenderFiles(ctx context.Context, paths []string, opts BatchOptions) ([]Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	results := make([]Result, len(paths))
	for i, path := range paths {
		results[i].Path = path
	}

	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := semaphore.NewWeighted(int64(workers))
	g, ctx := errgroup.WithContext(ctx)

	for i := range paths {
		i := i
		if err := sem.Acquire(ctx, 1); err != nil {
			for j := i; j < len(results); j++ {
				results[j].Err = err
			}
			break
		}

		g.Go(func() error {
			defer sem.Release(1)

			results[i].Frame, results[i].Err = renderFile(ctx, i,
				results[i].Path, opts)
			if results[i].Err != nil && opts.FailFast {
				// cancel before releasing so queued files are skipped
				cancel()
				return fmt.Errorf("%s: %w", results[i].Path, results[i].Err)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}

	return results, parent.Err()
}

func renderFile(ctx context.Context, index int, path string, opts BatchOptions) (*Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fb, err := DecodeFile(path)
	if err != nil {
		return nil, err
	}

	prepared, err := Prepare(fb, opts.Options)
	if err != nil {
		return nil, err
	}

	if opts.Preview != nil {
		if err := opts.Preview(index, path, prepared); err != nil {
			return nil, err
		}
	}

	return opts.renderer().RenderFramebuffer(prepared, opts.Cutoff)
}
