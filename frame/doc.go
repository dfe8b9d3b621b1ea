// Package frame drives the visualization: it owns the graph, the route
// engine and the two rasters, and composites one frame per Tick.
//
// Tick order:
//
//  1. adapt quality from the smoothed frame interval
//  2. pick up theme changes (rebuilding the graph on change)
//  3. clear, blit the static layer
//  4. hot channels, then decay
//  5. breathing wash
//  6. warm, draw and advance every route, prune dormant ones
//  7. draw and step pulses
//  8. hover highlight
//  9. trim routes to the cap, maybe spawn a route, maybe grow a channel
//
// Quality has two states. A smoothed interval above 22 ms with a pixel
// ratio above 1 drops to Reduced (ratio 1, route cap 10); an interval below
// 15 ms raises the ratio by 0.05 up to 1.35 and returns to Normal.
//
// Concurrency: every exported method takes the driver mutex, so Run's
// goroutine and HTTP readers can share one Driver.
package frame
