// Package jet computes Taylor coefficients in time of the solution of
// x' = f(t, x), where the coefficients themselves are jet-transport
// polynomials in the initial-condition variables.
//
// A [Field] describes f on series arguments. A [Coefficients] routine fills
// a jet in place: [Generic] works for every field by Picard recursion, and
// specialized routines can be registered per field in a [Registry]. The
// driver resolves one routine per run and takes a step with [Advance].
package jet

import (
	"errors"
	"fmt"

	"github.com/san-kum/tmflow/internal/series"
)

var (
	ErrTimeOrder      = errors.New("jet: start time must precede end time")
	ErrDimension      = errors.New("jet: dimension mismatch between field and jet")
	ErrOrder          = errors.New("jet: jet components differ in order")
	ErrSpecialization = errors.New("jet: specialized routine failed")
	ErrStepCollapsed  = errors.New("jet: step size collapsed to zero")
)

// Field is the right-hand side of an autonomous or time-dependent ODE,
// evaluated on series. Eval must be deterministic and must not modify x or
// keep references to it.
type Field interface {
	Name() string
	Dim() int
	Eval(t series.Series, x []series.Series) []series.Series
}

// Coefficients fills x[i] with the Taylor coefficients of the solution
// through t, given x[i].Coeff(0). Orders 1..n are overwritten.
type Coefficients interface {
	Name() string
	Jet(t series.Series, x []series.Series) error
}

// Generic computes coefficients for any field: since x' = f(t, x), the
// coefficient k+1 of x is coefficient k of f(t, x) divided by k+1, and that
// only depends on the coefficients up to k.
type Generic struct {
	f Field
}

func NewGeneric(f Field) Generic { return Generic{f: f} }

func (g Generic) Name() string { return "generic" }

func (g Generic) Jet(t series.Series, x []series.Series) error {
	n, err := checkJet(g.f, x)
	if err != nil {
		return err
	}
	xk := make([]series.Series, len(x))
	for k := 0; k < n; k++ {
		for i := range x {
			xk[i] = x[i].Truncate(k)
		}
		dx := g.f.Eval(t.Truncate(k), xk)
		if len(dx) != len(x) {
			return fmt.Errorf("%w: %s returned %d components for %d", ErrDimension, g.f.Name(), len(dx), len(x))
		}
		for i := range x {
			x[i] = x[i].SetCoeff(k+1, dx[i].Coeff(k).Quo(float64(k+1)))
		}
	}
	return nil
}

// checkJet returns the common order of x.
func checkJet(f Field, x []series.Series) (int, error) {
	if len(x) != f.Dim() {
		return 0, fmt.Errorf("%w: %s has dimension %d, jet has %d", ErrDimension, f.Name(), f.Dim(), len(x))
	}
	if len(x) == 0 {
		return 0, nil
	}
	n := x[0].Order()
	for i, xi := range x {
		if xi.Order() != n {
			return 0, fmt.Errorf("%w: component %d has order %d, want %d", ErrOrder, i, xi.Order(), n)
		}
	}
	return n, nil
}
