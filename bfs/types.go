// Package bfs provides tunable options and error definitions
// for breadth-first search over an index graph.
package bfs

import (
	"errors"
	"fmt"
)

// Sentinel errors for BFS execution.
var (
	// ErrStartOutOfRange is returned when the start index is not a node.
	ErrStartOutOfRange = errors.New("bfs: start node out of range")

	// ErrGraphNil is returned if a nil graph is passed.
	ErrGraphNil = errors.New("bfs: graph is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")
)

// Graph is the read-only adjacency view BFS needs.
type Graph interface {
	// Len returns the number of nodes; valid indices are [0,Len).
	Len() int
	// Neighbors returns the adjacent node indices of i.
	Neighbors(i int) []int
}

// Option configures BFS behavior via functional arguments.
// If an Option is invalid (e.g. negative depth), it will be recorded
// internally and surfaced as ErrOptionViolation when BFS is invoked.
type Option func(*Options)

// Options holds parameters to customize BFS execution.
type Options struct {
	// MaxDepth, if > 0, stops exploring beyond this depth.
	MaxDepth int

	err error
}

// DefaultOptions returns Options with no depth limit.
func DefaultOptions() Options {
	return Options{}
}

// WithMaxDepth stops the search at the given depth.
//
//	d > 0: limit to depth d
//	d == 0: no limit
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// Result holds the outcome of a BFS traversal.
type Result struct {
	Order  []int
	Depth  []int
	Parent []int
}

// Reached reports whether id was visited.
func (r *Result) Reached(id int) bool {
	return id >= 0 && id < len(r.Depth) && r.Depth[id] >= 0
}

// PathTo reconstructs the node path from the start to dest.
// Returns an error if dest was not reached.
func (r *Result) PathTo(dest int) ([]int, error) {
	if !r.Reached(dest) {
		return nil, fmt.Errorf("bfs: no path to %d", dest)
	}
	path := []int{}
	for cur := dest; cur >= 0; cur = r.Parent[cur] {
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}
