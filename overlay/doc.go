// Package overlay holds the transient emphasis layered over the static graph:
// a sparse set of heated channels and a list of expanding arrival pulses.
//
// What:
//
//   - HeatMap tracks which edge slots carry heat. Heat lives on network.Edge;
//     the map only remembers which slots need drawing and decaying.
//   - Pulses is a list of rings that grow by PulseGrowth per Step and vanish
//     once faded, oversized or non-finite.
//
// Why:
//
//   - Only a few dozen channels are hot at any time, so decaying and drawing
//     the hot set keeps a frame O(hot) instead of O(E).
//
// Complexity:
//
//   - HeatMap.Add: O(1). Decay: O(h). Hot: O(h log h) for the sorted copy.
//   - Pulses.Step: O(p), in place.
//
// Errors:
//
//   - None. Unknown slots and invalid pulses are dropped silently.
package overlay
