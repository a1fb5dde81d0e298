package system

import "testing"

// gridMap is a minimal Map fixture: every cell is open floor unless marked
// as a wall. Shared by the fov, pathfinding, and AI tests.
type gridMap struct {
	w, h  int
	walls map[[2]int]bool
}

func newGrid(w, h int) *gridMap {
	return &gridMap{w: w, h: h, walls: make(map[[2]int]bool)}
}

func (g *gridMap) setWall(x, y int) { g.walls[[2]int{x, y}] = true }

func (g *gridMap) Size() (int, int) { return g.w, g.h }

func (g *gridMap) IsWalkable(x, y int) bool {
	if x < 0 || x >= g.w || y < 0 || y >= g.h {
		return false
	}
	return !g.walls[[2]int{x, y}]
}

func (g *gridMap) IsTransparent(x, y int) bool { return g.IsWalkable(x, y) }

func TestFOVOpenGroundIsEuclideanDisc(t *testing.T) {
	g := newGrid(21, 21)
	const ox, oy, radius = 10, 10, 5

	vis := ComputeFOV(g, ox, oy, radius)

	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			dx, dy := x-ox, y-oy
			want := dx*dx+dy*dy <= radius*radius
			if got := vis.At(x, y); got != want {
				t.Errorf("cell (%d,%d) dist²=%d: visible=%v, want %v",
					x, y, dx*dx+dy*dy, got, want)
			}
		}
	}
}

func TestFOVWallCastsShadow(t *testing.T) {
	g := newGrid(11, 11)
	g.setWall(6, 5)

	vis := ComputeFOV(g, 5, 5, 5)

	if !vis.At(6, 5) {
		t.Error("the wall itself must be visible")
	}
	if vis.At(7, 5) {
		t.Error("the cell directly behind the wall must be shadowed")
	}
	if vis.At(8, 5) {
		t.Error("the shadow must extend along the blocked ray")
	}
	if !vis.At(6, 4) || !vis.At(6, 6) {
		t.Error("cells beside the wall must stay visible")
	}
}

func TestFOVOriginAlwaysVisible(t *testing.T) {
	g := newGrid(9, 9)
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			if x != 4 || y != 4 {
				g.setWall(x, y)
			}
		}
	}

	vis := ComputeFOV(g, 4, 4, 5)
	if !vis.At(4, 4) {
		t.Fatal("origin must be visible even when fully enclosed")
	}
}

func TestFOVZeroRadius(t *testing.T) {
	g := newGrid(9, 9)
	vis := ComputeFOV(g, 4, 4, 0)

	if !vis.At(4, 4) {
		t.Fatal("origin must be visible at radius 0")
	}
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			if (x != 4 || y != 4) && vis.At(x, y) {
				t.Fatalf("cell (%d,%d) visible at radius 0", x, y)
			}
		}
	}
}

func TestFOVOriginAtMapEdge(t *testing.T) {
	g := newGrid(10, 10)

	// Must not panic or mark cells outside the grid.
	vis := ComputeFOV(g, 0, 0, 6)
	if !vis.At(0, 0) {
		t.Error("corner origin must be visible")
	}
	if !vis.At(1, 0) || !vis.At(0, 1) {
		t.Error("in-bounds neighbors of a corner origin must be visible")
	}
	if vis.At(-1, 0) || vis.At(0, -1) {
		t.Error("At must report out-of-bounds cells as not visible")
	}
}

func TestFOVOutOfBoundsOrigin(t *testing.T) {
	g := newGrid(10, 10)
	vis := ComputeFOV(g, -3, 50, 5)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if vis.At(x, y) {
				t.Fatalf("out-of-bounds origin lit cell (%d,%d)", x, y)
			}
		}
	}
}

func TestFOVDeterministic(t *testing.T) {
	g := newGrid(15, 15)
	g.setWall(8, 7)
	g.setWall(7, 9)
	g.setWall(3, 3)

	a := ComputeFOV(g, 7, 7, 6)
	b := ComputeFOV(g, 7, 7, 6)
	for y := 0; y < 15; y++ {
		for x := 0; x < 15; x++ {
			if a.At(x, y) != b.At(x, y) {
				t.Fatalf("non-deterministic result at (%d,%d)", x, y)
			}
		}
	}
}
