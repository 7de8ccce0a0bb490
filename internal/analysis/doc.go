// Package analysis inspects finished validated runs.
//
//   - [WidthSeries]: widest endpoint component per accepted time
//   - [GrowthRate]: exponential growth rate of the enclosure width
//   - [Sweep]: final enclosure as a function of a model parameter
//   - [PhaseBoxes]: projected step boxes for phase plots
//
// # Wrapping
//
// Enclosure widths of a chaotic flow grow roughly like exp(λt). A positive
// rate is expected there; on a contracting flow it should be negative or
// close to zero:
//
//	rate := analysis.GrowthRate(res)
//	if rate > 0 {
//	    // width roughly doubles every ln(2)/rate time units
//	}
package analysis
