// Package bfs provides breadth-first search over index-addressed graphs,
// returning hop distances, parent links, and visit order.
//
// What
//
//   - Explore nodes in non-decreasing hop distance from a start index.
//   - Returns a Result containing:
//   - Order: visit sequence
//   - Depth: node → hops from start (-1 when unreached)
//   - Parent: node → predecessor in the BFS tree (-1 for the root and unreached)
//   - Depth limiting via WithMaxDepth; PathTo rebuilds a shortest hop path.
//   - Components labels every node with the index of its connected component.
//
// Why
//
//   - Route diagnostics: tell a greedy dead end from a target outside the
//     hop budget or a severed topology.
//   - Topology reports: count islands and measure hub-to-hub hop distances.
//
// Determinism
//
//	Neighbors are expanded in the order the Graph returns them; the network
//	builder appends neighbors in insertion order, so traversals are reproducible.
//
// Complexity (V = nodes, E = edges)
//
//   - Time:   O(V + E)
//   - Memory: O(V)
//
// Errors
//
//   - ErrGraphNil            if the graph is nil.
//   - ErrStartOutOfRange     if the start index is not a node.
//   - ErrOptionViolation     if an Option was invalid (e.g. negative MaxDepth).
package bfs
