// Package network procedurally generates the node/channel graph shown by the
// visualizer: a few hub anchors, rings of secondary and micro nodes around
// them, and a dense central band, connected by proximity.
//
// What:
//
//   - Build places nodes on a width×height canvas from a deterministic rng stream
//     and links every node to its nearest in-radius neighbors, found through a
//     spatial.Grid, until the node's tier degree cap is reached.
//   - Graph keeps an edge index keyed by EdgeKey (order-independent pair of node
//     indices) so edges stay unique and heat lookups are O(1).
//   - AddEdge and Grow insert channels after the build while keeping the edge
//     index, neighbor lists and degree caps consistent. Grow pairs two nodes
//     still under their cap, searching up to GrowReach tier radii away.
//   - Reachable, Within and ShortestPath answer hop queries through bfs.
//
// Tiers:
//
//	hub        radius 220, degree cap 24
//	secondary  radius 140, degree cap 8
//	micro      radius  75, degree cap 4
//
// Guarantees:
//
//   - Same seed, same canvas, same Params ⇒ identical graph.
//   - Every node lies in [0,Width]×[0,Height].
//   - No self-loops, no parallel edges, Degree(i) ≤ Cap(i) for every node.
//   - Isolated nodes are allowed; route finders must cope with them.
//
// Complexity:
//
//   - Build: O(V·k·log k), k = candidates within a node's radius.
//   - AddEdge, EdgeIndex, HasEdge: O(1).
package network
