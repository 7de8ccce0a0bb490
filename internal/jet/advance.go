package jet

import (
	"fmt"
	"math"

	"github.com/san-kum/tmflow/internal/series"
	"github.com/san-kum/tmflow/internal/stepsize"
)

// Advance fills the jet x at t0 with c and returns the step length chosen by
// the tolerance, clipped to the time left before tmax. No remainder is
// computed here.
func Advance(c Coefficients, t0, tmax float64, x []series.Series, tol float64) (float64, error) {
	if !(t0 < tmax) {
		return 0, fmt.Errorf("%w: t0=%g tmax=%g", ErrTimeOrder, t0, tmax)
	}
	if len(x) == 0 {
		return tmax - t0, nil
	}
	t := series.Time(x[0].Context(), t0, x[0].Order())
	if err := c.Jet(t, x); err != nil {
		return 0, err
	}
	h := stepsize.ForJet(x, tol)
	if !(h > 0) {
		return 0, fmt.Errorf("%w: at t=%g", ErrStepCollapsed, t0)
	}
	return math.Min(h, tmax-t0), nil
}
