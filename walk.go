package bmp2ansi

// Visitor is called by Walk for each pixel reached. It returns true if the
// pixel is inside the region and the walk should continue to its neighbors.
// A visitor may modify the framebuffer being walked.
type Visitor func(x, y int, pixel uint32) bool

// Walk runs WalkFrom starting at (0, 0).
func (f *Framebuffer) Walk(visit Visitor) error {
	return f.WalkFrom(visit, 0, 0)
}

// WalkFrom performs a 4-connected flood fill starting at (x, y), calling
// visit at most once per pixel. Pixels are explored depth first: neighbors
// are queued left, right, up, down, so the pixel below is visited next. The
// pixel value passed to visit is read when the pixel is visited, so changes
// made by earlier visits are observed.
func (f *Framebuffer) WalkFrom(visit Visitor, x, y int) error {
	start, err := f.offset(x, y)
	if err != nil {
		return err
	}

	used := make([]bool, len(f.Pixels))
	work := []int{start}

	for len(work) > 0 {
		offset := work[len(work)-1]
		work = work[:len(work)-1]

		// the same pixel may be queued more than once
		if used[offset] {
			continue
		}
		used[offset] = true

		currentX := offset % f.Width
		currentY := offset / f.Width
		if !visit(currentX, currentY, f.Pixels[offset]) {
			continue
		}

		if currentX > 0 {
			work = append(work, offset-1)
		}
		if currentX < f.Width-1 {
			work = append(work, offset+1)
		}
		if currentY > 0 {
			work = append(work, offset-f.Width)
		}
		if currentY < f.Height-1 {
			work = append(work, offset+f.Width)
		}
	}

	return nil
}
