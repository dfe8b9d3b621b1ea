// Package render rasterizes a network.Graph and its animated overlays.
//
// Two layers:
//
//   - StaticLayer caches nodes and channels in an offscreen raster. Ensure
//     redraws it only when the canvas size, pixel ratio, palette or graph
//     identity change, and appends just the new channels when the graph
//     grew through AddEdge.
//   - The per-frame helpers (HotEdges, Wash, Route, Pulses, Hover) paint
//     transient state onto any Surface.
//
// Coordinates are in canvas units; a Raster applies the device pixel ratio
// as a scale transform so a w×h canvas becomes ⌈w·dpr⌉×⌈h·dpr⌉ pixels.
//
// Errors:
//
//   - ErrBadSize when a raster would be empty, non-finite or larger than MaxPixels.
//   - ErrNilGraph when Ensure is given no graph.
package render
