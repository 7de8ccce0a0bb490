// Package validated integrates ODEs whose initial condition is only known to
// lie in a box, and returns enclosures of the flow that hold for every
// initial point of the box and every time of each step.
//
// Each step runs in three stages:
//
//   - [jet.Advance] fills the Taylor jet in time of the state, whose
//     coefficients are polynomials in the normalized initial-condition
//     variables, and picks the step length from the tolerance
//   - [remainder.Solver] encloses the truncation error of the step
//   - the jet is evaluated over the step to give the stored enclosure, and
//     at its end to seed the next step
//
// # Example
//
//	res, err := validated.Integrate(models.NewLorenz(), q0, dq0, 0, 1, 2, 12, 1e-20,
//		validated.WithMaxSteps(2000),
//		validated.WithLogger(logger),
//	)
//	final := res.Endpoints[len(res.Endpoints)-1]
//
// # Thread Safety
//
// A run is single-threaded. Values built during a run refer to its
// [poly.Context]; runs with their own contexts may proceed concurrently.
package validated
