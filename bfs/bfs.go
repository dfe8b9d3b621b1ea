// Package bfs provides breadth-first search over an index graph,
// returning hop distances, parent links, and visit order.
package bfs

import (
	"fmt"
)

// walker encapsulates mutable BFS state.
type walker struct {
	graph Graph
	opts  Options
	queue []int
	res   *Result
}

// BFS runs breadth-first search on g starting from start.
// Returns ErrGraphNil, ErrStartOutOfRange or ErrOptionViolation.
func BFS(g Graph, start int, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	n := g.Len()
	if start < 0 || start >= n {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrStartOutOfRange, start, n)
	}

	w := &walker{
		graph: g,
		opts:  o,
		queue: make([]int, 0, n),
		res: &Result{
			Order:  make([]int, 0, n),
			Depth:  filled(n, -1),
			Parent: filled(n, -1),
		},
	}
	w.enqueue(start, 0, -1)
	w.loop()

	return w.res, nil
}

// enqueue marks id visited at depth d and records its parent.
func (w *walker) enqueue(id, d, parent int) {
	w.res.Depth[id] = d
	w.res.Parent[id] = parent
	w.queue = append(w.queue, id)
}

// loop processes the queue until empty.
func (w *walker) loop() {
	for head := 0; head < len(w.queue); head++ {
		id := w.queue[head]
		d := w.res.Depth[id]
		w.res.Order = append(w.res.Order, id)
		if w.opts.MaxDepth > 0 && d+1 > w.opts.MaxDepth {
			continue
		}
		for _, nbr := range w.graph.Neighbors(id) {
			if nbr < 0 || nbr >= len(w.res.Depth) || w.res.Depth[nbr] >= 0 {
				continue
			}
			w.enqueue(nbr, d+1, id)
		}
	}
}

// Components labels every node with a component number (0-based, in order of
// the lowest node index of each component) and returns the labels and the count.
// Complexity: O(V + E).
func Components(g Graph) (labels []int, count int) {
	if g == nil {
		return nil, 0
	}
	n := g.Len()
	labels = filled(n, -1)
	queue := make([]int, 0, n)
	for s := 0; s < n; s++ {
		if labels[s] >= 0 {
			continue
		}
		labels[s] = count
		queue = append(queue[:0], s)
		for head := 0; head < len(queue); head++ {
			for _, nbr := range g.Neighbors(queue[head]) {
				if nbr >= 0 && nbr < n && labels[nbr] < 0 {
					labels[nbr] = count
					queue = append(queue, nbr)
				}
			}
		}
		count++
	}

	return labels, count
}

func filled(n, v int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = v
	}
	return s
}
