package search

import (
	"cmp"
	"container/heap"
	"slices"
)

// entry is one frontier record: the tentative cost of reaching node along path.
type entry[N cmp.Ordered] struct {
	cost     float64 // accumulated edge cost from the source
	priority float64 // cost plus heuristic estimate
	node     N
	path     []N
}

// less orders entries by priority, then node, then path.
func (e *entry[N]) less(o *entry[N]) bool {
	if e.priority != o.priority {
		return e.priority < o.priority
	}
	if c := cmp.Compare(e.node, o.node); c != 0 {
		return c < 0
	}
	return slices.Compare(e.path, o.path) < 0
}

// entryHeap is a min-heap of entries; it implements heap.Interface.
type entryHeap[N cmp.Ordered] []*entry[N]

func (h entryHeap[N]) Len() int           { return len(h) }
func (h entryHeap[N]) Less(i, j int) bool { return h[i].less(h[j]) }
func (h entryHeap[N]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *entryHeap[N]) Push(x any) { *h = append(*h, x.(*entry[N])) }

func (h *entryHeap[N]) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}

// frontier is the open set: a heap that may hold superseded entries, and an
// index holding exactly one live entry per open node.
type frontier[N cmp.Ordered] struct {
	heap  entryHeap[N]
	index map[N]*entry[N]
	stats *Stats
}

func newFrontier[N cmp.Ordered](stats *Stats) *frontier[N] {
	return &frontier[N]{
		index: make(map[N]*entry[N]),
		stats: stats,
	}
}

// len returns the number of open nodes. Stale heap entries are not counted.
func (f *frontier[N]) len() int { return len(f.index) }

// lookup returns the live entry for node, if node is open.
func (f *frontier[N]) lookup(node N) (*entry[N], bool) {
	e, ok := f.index[node]
	return e, ok
}

// push adds a new entry for node. node must not be open; use relax otherwise.
func (f *frontier[N]) push(node N, cost, priority float64, path []N) {
	e := &entry[N]{cost: cost, priority: priority, node: node, path: path}
	heap.Push(&f.heap, e)
	f.index[node] = e
	f.stats.Pushed++
}

// relax records a route to node costing cost. An open node is only updated
// when cost is strictly lower than its current entry; a node that is not open
// is pushed. It reports whether the frontier changed.
func (f *frontier[N]) relax(node N, cost, priority float64, path []N) bool {
	if cur, ok := f.index[node]; ok {
		if cost >= cur.cost {
			return false
		}
		f.stats.Relaxed++
	}
	f.push(node, cost, priority, path)
	return true
}

// pop removes and returns the lowest live entry, dropping stale ones on the way.
// It returns false once no open node remains.
func (f *frontier[N]) pop() (*entry[N], bool) {
	for f.heap.Len() > 0 {
		e := heap.Pop(&f.heap).(*entry[N])
		if f.index[e.node] != e {
			f.stats.Stale++
			continue
		}
		delete(f.index, e.node)
		return e, true
	}
	return nil, false
}
