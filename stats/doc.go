// Package stats eases the node, channel and throughput counters shown next
// to the visualization toward values sampled from the live graph.
//
// Reporter.Sample records new targets; Reporter.Ease moves the displayed
// values toward them with an Easing and writes thousands-separated text
// into the configured Slots. Absent slots are skipped.
//
// Throughput is synthetic: routes·(120 + U·80), scaled by the multiplier.
package stats
