package bmp2ansi

import (
	"errors"
	"image"
	"reflect"
	"testing"
)

func TestWalkVisitsEveryPixelOnce(t *testing.T) {
	fb := newTestFramebuffer(t, 7, 5)

	visits := make(map[image.Point]int)
	err := fb.Walk(func(x, y int, pixel uint32) bool {
		visits[image.Pt(x, y)]++
		return true
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(visits) != fb.Width*fb.Height {
		t.Fatalf("visited %d pixels, want %d", len(visits), fb.Width*fb.Height)
	}
	for p, n := range visits {
		if n != 1 {
			t.Errorf("visited %v %d times", p, n)
		}
	}
}

func TestWalkOnlyConnectedRegion(t *testing.T) {
	// a wall of 1s splits the buffer into a left and right region
	const wall = 0xffffffff
	fb := newTestFramebuffer(t, 5, 3,
		0, 0, wall, 0, 0,
		0, 0, wall, 0, 0,
		0, 0, wall, 0, 0,
	)

	visited := make(map[image.Point]bool)
	err := fb.WalkFrom(func(x, y int, pixel uint32) bool {
		visited[image.Pt(x, y)] = true
		return pixel != wall
	}, 4, 1)
	if err != nil {
		t.Fatal(err)
	}

	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			want := x >= 2
			if visited[image.Pt(x, y)] != want {
				t.Errorf("visited(%d, %d) = %v, want %v", x, y,
					visited[image.Pt(x, y)], want)
			}
		}
	}
}

func TestWalkDiagonalNotConnected(t *testing.T) {
	fb := newTestFramebuffer(t, 2, 2,
		1, 0,
		0, 1,
	)

	var inside []image.Point
	fb.Walk(func(x, y int, pixel uint32) bool {
		if pixel != 1 {
			return false
		}
		inside = append(inside, image.Pt(x, y))
		return true
	})

	if !reflect.DeepEqual(inside, []image.Point{{0, 0}}) {
		t.Errorf("inside = %v, want only (0, 0)", inside)
	}
}

func TestWalkOrderIsDepthFirst(t *testing.T) {
	fb := newTestFramebuffer(t, 3, 3)

	var order []image.Point
	err := fb.WalkFrom(func(x, y int, pixel uint32) bool {
		order = append(order, image.Pt(x, y))
		return true
	}, 1, 1)
	if err != nil {
		t.Fatal(err)
	}

	// neighbors are pushed left, right, up, down, so down is popped first
	want := []image.Point{
		{1, 1}, {1, 2}, {2, 2}, {2, 1}, {2, 0}, {1, 0}, {0, 0}, {0, 1}, {0, 2},
	}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v\nwant    %v", order, want)
	}
}

func TestWalkStopsWhenVisitorReturnsFalse(t *testing.T) {
	fb := newTestFramebuffer(t, 4, 4)

	calls := 0
	fb.Walk(func(x, y int, pixel uint32) bool {
		calls++
		return false
	})

	if calls != 1 {
		t.Errorf("visitor called %d times, want 1", calls)
	}
}

func TestWalkReadsPixelAtVisitTime(t *testing.T) {
	fb := newTestFramebuffer(t, 3, 1)

	var seen []uint32
	fb.Walk(func(x, y int, pixel uint32) bool {
		seen = append(seen, pixel)
		// recolor the far end before it is visited
		if x == 0 {
			fb.Pixels[2] = 0xff00ff00
		}
		fb.Pixels[y*fb.Width+x] = 0xffff0000
		return true
	})

	want := []uint32{0, 0, 0xff00ff00}
	if !reflect.DeepEqual(seen, want) {
		t.Errorf("seen = %#x, want %#x", seen, want)
	}

	for i, p := range fb.Pixels {
		if p != 0xffff0000 {
			t.Errorf("Pixels[%d] = %#x, want 0xffff0000", i, p)
		}
	}
}

func TestWalkTerminatesWithMutatingVisitor(t *testing.T) {
	fb := newTestFramebuffer(t, 10, 10)

	calls := 0
	fb.Walk(func(x, y int, pixel uint32) bool {
		calls++
		// keep making every pixel look unvisited
		for i := range fb.Pixels {
			fb.Pixels[i]++
		}
		return true
	})

	if calls != 100 {
		t.Errorf("visitor called %d times, want 100", calls)
	}
}

func TestWalkFromOutOfBounds(t *testing.T) {
	fb := newTestFramebuffer(t, 2, 2)

	err := fb.WalkFrom(func(x, y int, pixel uint32) bool {
		t.Error("visitor called")
		return true
	}, 2, 0)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("WalkFrom error = %v, want ErrOutOfBounds", err)
	}
}
