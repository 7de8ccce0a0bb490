// Package models provides polynomial vector fields for validated
// integration.
//
// Each model implements [Model]: [jet.Field] for the Taylor-model
// integrator, a float Derive for reference trajectories, and runtime
// parameters:
//
//   - [Exponential]: x' = r·x
//   - [Harmonic]: undamped oscillator
//   - [Linear]: x' = A·x for a constant matrix
//   - [Lorenz]: butterfly attractor
//   - [Rossler]: spiral attractor
//   - [VanDerPol]: relaxation oscillator
//   - [Duffing]: unforced cubic oscillator
//   - [DoubleWell]: damped particle in a bistable potential
//   - [LotkaVolterra]: predator-prey
//
// Models whose jets can be computed faster than by the generic recursion
// provide specialized routines; see [RegisterSpecialized].
//
// # Energy
//
// Conservative models implement [Hamiltonian] on boxes, so the spread of the
// energy over an enclosure can be monitored:
//
//	if h, ok := m.(models.Hamiltonian); ok {
//	    e := h.Energy(box)
//	}
package models
