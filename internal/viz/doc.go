// Package viz renders sweep results in the terminal.
//
// [PlotSeries] draws a series with asciigraph, [Summary] renders a styled
// run summary and [RunLive] drives a Bubble Tea view that tracks a sweep
// while it is being evaluated.
//
// # Key Bindings
//
//	q / Ctrl+C - cancel the sweep, or quit once it has finished
package viz
