package motionplan

import (
	"container/heap"
	"math"

	"github.com/golang/geo/r3"
)

const noParent = -1

// searchNode is one lattice position reached during the search. parent is the arena index of the
// node it was expanded from, or noParent for the start. Nodes are never mutated once created.
type searchNode struct {
	pos     r3.Vector
	g, h, f float64
	parent  int
}

// nodeArena owns every node created during one search. Parents always precede children, so
// following parent links can't cycle.
type nodeArena []searchNode

func (a *nodeArena) add(pos r3.Vector, g, h float64, parent int) int {
	*a = append(*a, searchNode{pos: pos, g: g, h: h, f: g + h, parent: parent})
	return len(*a) - 1
}

// extractPath follows parent links from idx back to the root and returns the positions in
// start-to-end order.
func (a nodeArena) extractPath(idx int) []r3.Vector {
	path := []r3.Vector{}
	for idx != noParent {
		path = append(path, a[idx].pos)
		idx = a[idx].parent
	}

	// reverse the slice
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// openEntry is an arena reference ordered by f. seq is the insertion counter and only makes the
// heap order reproducible between runs; callers must not rely on how ties are broken.
type openEntry struct {
	idx int
	f   float64
	seq int
}

// openSet is a binary min-heap of arena indices keyed on f. There is no decrease-key: a position
// reached twice is simply pushed twice and the later copy is dropped by the closed set.
type openSet []openEntry

func (o openSet) Len() int { return len(o) }

func (o openSet) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	return o[i].seq < o[j].seq
}

func (o openSet) Swap(i, j int) { o[i], o[j] = o[j], o[i] }

func (o *openSet) Push(x interface{}) {
	//nolint:forcetypeassert
	*o = append(*o, x.(openEntry))
}

func (o *openSet) Pop() interface{} {
	old := *o
	n := len(old)
	entry := old[n-1]
	*o = old[:n-1]
	return entry
}

func (o *openSet) push(idx int, f float64, seq int) {
	heap.Push(o, openEntry{idx: idx, f: f, seq: seq})
}

func (o *openSet) pop() int {
	//nolint:forcetypeassert
	return heap.Pop(o).(openEntry).idx
}

// latticeKey identifies a lattice cell by its coordinates rounded to a fixed resolution.
type latticeKey struct {
	x, y, z int64
}

func newLatticeKey(pt r3.Vector, resolution float64) latticeKey {
	return latticeKey{
		x: int64(math.Round(pt.X / resolution)),
		y: int64(math.Round(pt.Y / resolution)),
		z: int64(math.Round(pt.Z / resolution)),
	}
}

// closedSet holds the keys of every cell that has been expanded. Once closed a cell is never
// reopened, even if a cheaper route to it is found later.
type closedSet map[latticeKey]struct{}

func (c closedSet) contains(k latticeKey) bool {
	_, ok := c[k]
	return ok
}

func (c closedSet) add(k latticeKey) {
	c[k] = struct{}{}
}
