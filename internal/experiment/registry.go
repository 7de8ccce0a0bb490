package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/tmflow/internal/jet"
	"github.com/san-kum/tmflow/internal/metrics"
	"github.com/san-kum/tmflow/internal/models"
)

// Registry maps model names to constructors and holds the specialized jet
// routines shared by all runs.
type Registry struct {
	models map[string]func() models.Model
	jets   *jet.Registry
}

func NewRegistry() *Registry {
	r := &Registry{
		models: make(map[string]func() models.Model),
		jets:   jet.NewRegistry(),
	}

	r.models["exponential"] = func() models.Model { return models.NewExponential() }
	r.models["harmonic"] = func() models.Model { return models.NewHarmonic() }
	r.models["linear"] = func() models.Model { return models.NewLinear() }
	r.models["lorenz"] = func() models.Model { return models.NewLorenz() }
	r.models["rossler"] = func() models.Model { return models.NewRossler() }
	r.models["vanderpol"] = func() models.Model { return models.NewVanDerPol() }
	r.models["duffing"] = func() models.Model { return models.NewDuffing() }
	r.models["doublewell"] = func() models.Model { return models.NewDoubleWell() }
	r.models["lotka"] = func() models.Model { return models.NewLotkaVolterra() }

	models.RegisterSpecialized(r.jets)
	return r
}

// GetModel builds a fresh model and applies params to it.
func (r *Registry) GetModel(name string, params map[string]float64) (models.Model, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	m := fn()
	for k, v := range params {
		if err := m.SetParam(k, v); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Jets is the registry of specialized coefficient routines.
func (r *Registry) Jets() *jet.Registry { return r.jets }

// DefaultMetrics returns the metrics for a run of m, including the energy
// metrics when m has an energy.
func (r *Registry) DefaultMetrics(m models.Model) []metrics.Metric {
	ms := metrics.Default()
	if h, ok := m.(models.Hamiltonian); ok {
		ms = append(ms, metrics.NewEnergy(h.Energy), metrics.NewEnergyDrift(h.Energy))
	}
	return ms
}
