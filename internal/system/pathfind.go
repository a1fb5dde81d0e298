package system

import (
	"container/heap"

	"gridfall/internal/spatial"
)

// stepOffsets are the 8-connected neighbor deltas, cardinals first.
var stepOffsets = [8][2]int{
	{0, -1}, {1, 0}, {0, 1}, {-1, 0},
	{1, -1}, {1, 1}, {-1, 1}, {-1, -1},
}

// chebyshev is max(|dx|, |dy|) — the exact step count on an 8-connected
// grid with unit diagonals, which makes it an admissible A* heuristic here.
func chebyshev(a, b spatial.Cell) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

// pathNode is one A* search node.
type pathNode struct {
	cell   spatial.Cell
	g      int // steps from start
	f      int // g + heuristic
	parent *pathNode
	index  int // heap bookkeeping
}

type nodeHeap []*pathNode

func (h nodeHeap) Len() int           { return len(h) }
func (h nodeHeap) Less(i, j int) bool { return h[i].f < h[j].f }
func (h nodeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *nodeHeap) Push(x any) {
	n := x.(*pathNode)
	n.index = len(*h)
	*h = append(*h, n)
}

func (h *nodeHeap) Pop() any {
	old := *h
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*h = old[:len(old)-1]
	return n
}

// FindPath runs bounded A* from `from` to `to` over the map, treating cells
// the index reports occupied as blocked — except `to` itself, which stays
// reachable even though the target stands on it. The search expands at most
// nodeBudget nodes and returns nil when the budget runs out or no path
// exists; exhaustion is not an error, callers fall back to simpler moves.
// A non-nil path excludes `from` and ends at `to`.
func FindPath(m Map, idx *spatial.Index, from, to spatial.Cell, nodeBudget int) []spatial.Cell {
	if from == to {
		return nil
	}

	blocked := func(c spatial.Cell) bool {
		if !m.IsWalkable(c.X, c.Y) {
			return true
		}
		if c == to {
			return false
		}
		return idx.IsOccupied(c, true)
	}

	open := &nodeHeap{}
	heap.Init(open)
	heap.Push(open, &pathNode{cell: from, f: chebyshev(from, to)})
	bestG := map[spatial.Cell]int{from: 0}

	expanded := 0
	for open.Len() > 0 {
		cur := heap.Pop(open).(*pathNode)
		if cur.cell == to {
			return reconstructPath(cur)
		}
		expanded++
		if expanded > nodeBudget {
			return nil
		}
		for _, d := range stepOffsets {
			next := spatial.Cell{X: cur.cell.X + d[0], Y: cur.cell.Y + d[1]}
			if blocked(next) {
				continue
			}
			g := cur.g + 1
			if prev, ok := bestG[next]; ok && prev <= g {
				continue
			}
			bestG[next] = g
			heap.Push(open, &pathNode{
				cell:   next,
				g:      g,
				f:      g + chebyshev(next, to),
				parent: cur,
			})
		}
	}
	return nil
}

func reconstructPath(n *pathNode) []spatial.Cell {
	var rev []spatial.Cell
	for ; n.parent != nil; n = n.parent {
		rev = append(rev, n.cell)
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}
