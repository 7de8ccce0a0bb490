package validated

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/tmflow/internal/interval"
	"github.com/san-kum/tmflow/internal/jet"
	"github.com/san-kum/tmflow/internal/poly"
	"github.com/san-kum/tmflow/internal/remainder"
	"github.com/san-kum/tmflow/internal/series"
	"github.com/san-kum/tmflow/internal/taylor"
)

// Integrate encloses the flow of x' = f(t, x) from the initial box q0 + dq0
// at t0 up to tmax. orderQ is the order of the polynomials in the initial
// variables (the jet-transport context has order 2·orderQ), orderT the order
// of the expansion in time, and abstol the tolerance driving the step size.
//
// Reaching the step cap is not an error: the partial orbit is returned with
// StatusStepBudgetExceeded. A failing step returns the orbit accepted so far
// together with a *StepError.
func Integrate(f jet.Field, q0 []float64, dq0 interval.Box, t0, tmax float64,
	orderQ, orderT int, abstol float64, opts ...Option) (*Result, error) {

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := validate(f, q0, dq0, t0, tmax, orderQ, orderT, abstol, o); err != nil {
		return nil, err
	}
	logger := o.logger.With("field", f.Name())

	ctx, err := jetContext(o.ctx, len(q0), orderQ, logger)
	if err != nil {
		return nil, err
	}

	domain, seed := normalize(ctx, q0, dq0, o.symNorm)
	center := interval.ZeroBox(len(q0))
	n := len(q0)

	res := newResult(o.maxSteps, ctx, domain)
	initial := make([]taylor.ModelN, n)
	box := make(interval.Box, n)
	for i := range seed {
		initial[i] = taylor.MustModelN(seed[i], interval.Zero(), center, domain)
		box[i] = initial[i].Bound()
	}
	res.record(0, t0, box, box.Clone(), initial)

	x := make([]series.Series, n)
	load := func(ps []poly.Poly) {
		for i, p := range ps {
			x[i] = series.Constant(p, orderT)
		}
	}
	load(seed)

	coeffs := jet.Coefficients(jet.NewGeneric(f))
	if o.parseEqs {
		c, fallback := o.registry.Resolve(f, series.Time(ctx, t0, orderT), x)
		if fallback != nil {
			logger.Debug("using generic jet coefficients", "reason", fallback)
		}
		coeffs = c
	}

	solver := remainder.Solver{MaxIter: o.maxRemIter, Logger: logger}
	rem := make([]interval.Interval, n)
	logger.Debug("integration started",
		"dim", n, "orderQ", orderQ, "orderT", orderT, "tol", abstol,
		"t0", t0, "tmax", tmax, "jet", coeffs.Name(),
	)

	t := t0
	for t < tmax {
		if res.Steps >= o.maxSteps {
			res.Status = StatusStepBudgetExceeded
			logger.Warn("step budget exhausted before tmax", "maxsteps", o.maxSteps, "t", t, "tmax", tmax)
			break
		}
		step := res.Steps + 1

		load(seed)
		h, err := jet.Advance(coeffs, t, tmax, x, abstol)
		if err != nil {
			return res.trim(), &StepError{Step: step, Time: t, Wrapped: err}
		}
		dx := f.Eval(series.Time(ctx, t, orderT), x)
		if len(dx) != n {
			err := fmt.Errorf("%w: %s returned %d components for %d", jet.ErrDimension, f.Name(), len(dx), n)
			return res.trim(), &StepError{Step: step, Time: t, Wrapped: err}
		}

		tNew := t + h
		if h >= tmax-t {
			tNew = tmax
		}
		if !(tNew > t) {
			return res.trim(), &StepError{Step: step, Time: t, Wrapped: jet.ErrStepCollapsed}
		}
		tau := interval.Point(tNew).Sub(interval.Point(t))
		dom := interval.New(0, tau.Hi)

		sol, err := solver.Solve(dx, domain, dom)
		if err != nil {
			return res.trim(), &StepError{Step: step, Time: t, Wrapped: err}
		}
		if !sol.Converged {
			res.RemainderFailures++
		}

		stepModels := make([]taylor.Model1, n)
		models := make([]taylor.ModelN, n)
		whole := make(interval.Box, n)
		end := make(interval.Box, n)
		for i := range x {
			m1, err := taylor.NewModel1(x[i], rem[i].Add(sol.Delta[i]), interval.Zero(), dom)
			if err != nil {
				return res.trim(), &StepError{Step: step, Time: t, Wrapped: err}
			}
			stepModels[i] = m1
			models[i] = mustEvaluateN(m1, dom, center, domain)
			whole[i] = models[i].Bound()

			next := mustEvaluateN(m1, tau, center, domain)
			seed[i], rem[i] = next.Poly(), next.Rem()
			end[i] = next.Bound()
		}

		t = tNew
		res.Steps = step
		res.StepModels[step-1] = stepModels
		res.record(step, t, whole, end, models)

		logger.Debug("step accepted", "step", step, "t", t, "dt", h, "iterations", sol.Iterations)
		sample := Sample{
			Step:       step,
			Time:       t,
			Dt:         tau.Hi,
			Box:        whole,
			Endpoint:   end,
			Remainder:  sol.Delta,
			Iterations: sol.Iterations,
			Converged:  sol.Converged,
		}
		for _, obs := range o.observers {
			obs.OnStep(sample)
		}
	}

	return res.trim(), nil
}

func validate(f jet.Field, q0 []float64, dq0 interval.Box, t0, tmax float64,
	orderQ, orderT int, abstol float64, o options) error {
	switch {
	case f == nil:
		return fmt.Errorf("%w: nil field", ErrInvalidConfig)
	case len(q0) == 0:
		return fmt.Errorf("%w: empty initial condition", ErrInvalidConfig)
	case len(dq0) != len(q0):
		return fmt.Errorf("%w: perturbation box of dimension %d for %d states", ErrInvalidConfig, len(dq0), len(q0))
	case f.Dim() != len(q0):
		return fmt.Errorf("%w: field %s has dimension %d, initial condition %d", ErrInvalidConfig, f.Name(), f.Dim(), len(q0))
	case math.IsNaN(t0) || math.IsInf(t0, 0) || math.IsNaN(tmax) || math.IsInf(tmax, 0):
		return fmt.Errorf("%w: non-finite time range [%g, %g]", ErrInvalidConfig, t0, tmax)
	case !(t0 < tmax):
		return fmt.Errorf("%w: t0=%g must precede tmax=%g", ErrInvalidConfig, t0, tmax)
	case orderQ < 1 || orderT < 1:
		return fmt.Errorf("%w: orders must be positive (orderQ=%d, orderT=%d)", ErrInvalidConfig, orderQ, orderT)
	case !(abstol > 0):
		return fmt.Errorf("%w: tolerance %g must be positive", ErrInvalidConfig, abstol)
	case o.maxSteps < 1:
		return fmt.Errorf("%w: maxsteps %d", ErrInvalidConfig, o.maxSteps)
	}
	for i, v := range q0 {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: q0[%d] = %g", ErrInvalidConfig, i, v)
		}
		if math.IsInf(dq0[i].Lo, 0) || math.IsInf(dq0[i].Hi, 0) {
			return fmt.Errorf("%w: dq0[%d] = %v is unbounded", ErrInvalidConfig, i, dq0[i])
		}
	}
	return nil
}

// jetContext returns the jet-transport context of the run: the supplied one,
// reconfigured to order 2·orderQ when needed, or a new one.
func jetContext(ctx *poly.Context, n, orderQ int, logger *slog.Logger) (*poly.Context, error) {
	if ctx == nil {
		return poly.NewContext(n, 2*orderQ), nil
	}
	if ctx.NumVars() != n {
		return nil, fmt.Errorf("%w: context has %d variables, problem has %d", ErrDimensionMismatch, ctx.NumVars(), n)
	}
	if ctx.Order() != 2*orderQ {
		logger.Debug("reconfiguring jet-transport order", "from", ctx.Order(), "to", 2*orderQ)
		ctx = ctx.WithOrder(2 * orderQ)
	}
	return ctx, nil
}

// normalize maps each component of dq0 onto one variable ξ_i and returns the
// box of the variables with the initial polynomials q0[i] + dq0[i](ξ_i).
func normalize(ctx *poly.Context, q0 []float64, dq0 interval.Box, symmetric bool) (interval.Box, []poly.Poly) {
	n := len(q0)
	ps := make([]poly.Poly, n)
	if symmetric {
		for i := range q0 {
			m, r := dq0[i].Mid(), dq0[i].Rad()
			c := interval.Point(q0[i]).Add(interval.Point(m))
			ps[i] = poly.Variable(ctx, i).Scale(r).AddConst(c)
		}
		return interval.Symmetric(n), ps
	}
	for i := range q0 {
		lo := interval.Point(dq0[i].Lo)
		w := interval.Point(dq0[i].Hi).Sub(lo)
		c := interval.Point(q0[i]).Add(lo)
		ps[i] = poly.Variable(ctx, i).ScaleInterval(w).AddConst(c)
	}
	return interval.Unit(n), ps
}

func mustEvaluateN(m taylor.Model1, t interval.Interval, center, domain interval.Box) taylor.ModelN {
	mn, err := m.EvaluateN(t, center, domain)
	if err != nil {
		panic(err)
	}
	return mn
}
