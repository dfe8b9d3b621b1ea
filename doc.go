// Package fiberworld draws a synthetic payment-channel network and animates
// payments flowing across it.
//
// What is inside?
//
//	A deterministic, headless renderer built from small packages:
//		• Layout: seeded hub, ring, cluster and band placement with tiered
//		  connection radii and degree caps
//		• Routes: greedy left-to-right paths that heat channels and emit
//		  arrival pulses
//		• Frames: an adaptive-quality frame driver over a cached static layer
//		• Counters: eased node, channel and throughput figures
//		• UI state: theme preference and a feature carousel
//
// Packages:
//
//	rng/      seeded linear congruential generator and derived streams
//	spatial/  uniform grid index for radius queries
//	bfs/      breadth-first search and connected components over int graphs
//	network/  layout generation, Graph, channels and churn
//	route/    route engine: spawn, advance, heat and arrival pulses
//	overlay/  heat map with decay and expanding pulses
//	render/   palettes, raster surface, static layer and per-frame layers
//	stats/    eased counter reporter with pluggable easing
//	theme/    dark/light state with change notification and persistence
//	carousel/ step carousel with injected scheduler
//	frame/    frame driver and run loop
//
// The fiberworld command (cmd/fiberworld) renders PNG frames, inspects
// layouts and serves the live animation over HTTP:
//
//	go install github.com/chenyukang/fiber-world/cmd/fiberworld@latest
//	fiberworld render --frames 120 --every 30 --out frames
//	fiberworld serve --addr :8080
package fiberworld
