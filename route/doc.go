// Package route animates synthetic payments across a network.Graph.
//
// A Route is a short node path found by greedy geometric routing: from the
// current node, step to the unvisited neighbor closest to the target, until
// the target is reached, the hop budget runs out, or a dead end is hit.
// Routes are perpetual. When one reaches its last node it fires a terminal
// pulse and regenerates its path in place, keeping its ID.
//
// Every frame a route warms the channels it uses (overlay.HeatMap) and, on
// arrival at a node, emits an expanding pulse (overlay.Pulses).
//
// Errors:
//
//   - ErrGraphNil, ErrSourceNil for missing collaborators of New.
//   - ErrOptionViolation for invalid Params.
//
// Spawning never fails loudly: endpoints that cannot be joined (for example a
// start node whose channels were all severed) simply yield no route. Each
// search is classified (Arrived, Detour, OutOfReach or Severed) and counted;
// TakeTally drains the counts.
package route
