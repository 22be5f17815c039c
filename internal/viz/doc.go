// Package viz renders root-finding runs in the terminal.
//
//   - [ConvergencePlot] and [IteratePlot]: asciigraph charts of a history
//   - [FunctionPlot]: the function on a braille [Canvas] with iterates marked
//   - [Summary] and [CompareTable]: lipgloss reports
//   - [Model]: a Bubble Tea program that replays a solve step by step
//   - [Picker]: a small menu used to choose a preset
//
// # Key Bindings
//
//	Space - Play/Pause the replay
//	←/→   - Step backwards/forwards
//	g/G   - First/last iterate
//	R     - Restart
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
