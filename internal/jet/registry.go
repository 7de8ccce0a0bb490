package jet

import (
	"fmt"
	"sort"
	"sync"

	"github.com/san-kum/tmflow/internal/series"
)

// Factory builds a specialized routine for f. It returns an error when f is
// not a field the routine can handle, e.g. a model with other parameters.
type Factory func(f Field) (Coefficients, error)

// Registry maps field names to specialized coefficient routines.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds or replaces the factory for fields called name.
func (r *Registry) Register(name string, fn Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = fn
}

func (r *Registry) Lookup(name string) (Factory, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.factories[name]
	return fn, ok
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve picks the routine for f. The specialized routine registered under
// f.Name() is built and probed on a copy of the jet x at time t; it must not
// fail, panic, or disagree with the generic recursion. Resolve always
// returns a usable routine: when the specialized one is missing or rejected
// it returns Generic together with the reason.
func (r *Registry) Resolve(f Field, t series.Series, x []series.Series) (Coefficients, error) {
	generic := NewGeneric(f)
	fn, ok := r.Lookup(f.Name())
	if !ok {
		return generic, fmt.Errorf("%w: none registered for %q", ErrSpecialization, f.Name())
	}
	c, err := fn(f)
	if err != nil {
		return generic, fmt.Errorf("%w: %v", ErrSpecialization, err)
	}

	got := append([]series.Series(nil), x...)
	if err := probe(c, t, got); err != nil {
		return generic, err
	}
	want := append([]series.Series(nil), x...)
	if err := generic.Jet(t, want); err != nil {
		return generic, err
	}
	if err := agree(got, want); err != nil {
		return generic, fmt.Errorf("%w: %s: %v", ErrSpecialization, c.Name(), err)
	}
	return c, nil
}

func probe(c Coefficients, t series.Series, x []series.Series) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %s panicked: %v", ErrSpecialization, c.Name(), p)
		}
	}()
	if err := c.Jet(t, x); err != nil {
		return fmt.Errorf("%w: %v", ErrSpecialization, err)
	}
	return nil
}

// agree reports whether two jets overlap in every coefficient. Both enclose
// the same exact values, so disjoint coefficients mean one of them is wrong.
func agree(a, b []series.Series) error {
	if len(a) != len(b) {
		return fmt.Errorf("%d components, want %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Order() != b[i].Order() {
			return fmt.Errorf("component %d has order %d, want %d", i, a[i].Order(), b[i].Order())
		}
		for k := 0; k <= a[i].Order(); k++ {
			ca, cb := a[i].Coeff(k).Coeffs(), b[i].Coeff(k).Coeffs()
			for m := 0; m < min(len(ca), len(cb)); m++ {
				if _, ok := ca[m].Intersect(cb[m]); !ok {
					return fmt.Errorf("component %d order %d: %v and %v are disjoint", i, k, ca[m], cb[m])
				}
			}
		}
	}
	return nil
}
