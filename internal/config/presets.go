package config

import "sort"

var Presets = map[string]map[string]*Config{
	"exponential": {
		"unit": {
			Model: "exponential", Q0: []float64{1}, DQ0: []float64{0},
			TMax: 1, OrderQ: 1, OrderT: 20, AbsTol: 1e-20,
		},
		"spread": {
			Model: "exponential", Q0: []float64{1}, DQ0: []float64{0.1},
			TMax: 2, OrderQ: 4, OrderT: 15, AbsTol: 1e-20,
		},
	},
	"harmonic": {
		"quarter": {
			Model: "harmonic", Q0: []float64{1, 0}, DQ0: []float64{0.01},
			TMax: 1.5707963267948966, OrderQ: 4, OrderT: 15, AbsTol: 1e-20,
		},
		"period": {
			Model: "harmonic", Q0: []float64{1, 0}, DQ0: []float64{0.01},
			TMax: 6.283185307179586, OrderQ: 4, OrderT: 15, AbsTol: 1e-20,
		},
	},
	"lorenz": {
		"short": {
			Model: "lorenz", Q0: []float64{1, 1, 1}, DQ0: []float64{1e-3},
			TMax: 1, OrderQ: 3, OrderT: 12, AbsTol: 1e-18,
		},
		"chaos": {
			Model: "lorenz", Q0: []float64{-8, 8, 27}, DQ0: []float64{1e-4},
			TMax: 5, OrderQ: 3, OrderT: 15, AbsTol: 1e-18,
		},
	},
	"vanderpol": {
		"cycle": {
			Model: "vanderpol", Q0: []float64{2, 0}, DQ0: []float64{1e-3},
			TMax: 3, OrderQ: 4, OrderT: 15, AbsTol: 1e-18,
		},
	},
	"duffing": {
		"well": {
			Model: "duffing", Q0: []float64{1, 0}, DQ0: []float64{1e-3},
			TMax: 5, OrderQ: 4, OrderT: 15, AbsTol: 1e-18,
			Params: map[string]float64{"delta": 0},
		},
	},
	"lotka": {
		"cycle": {
			Model: "lotka", Q0: []float64{10, 10}, DQ0: []float64{0.1},
			TMax: 2, OrderQ: 3, OrderT: 12, AbsTol: 1e-18,
		},
	},
}

// GetPreset returns a copy of the named preset over the defaults, or nil.
func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	p, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Model = p.Model
	cfg.Q0 = append([]float64(nil), p.Q0...)
	cfg.DQ0 = append([]float64(nil), p.DQ0...)
	cfg.T0, cfg.TMax = p.T0, p.TMax
	cfg.OrderQ, cfg.OrderT, cfg.AbsTol = p.OrderQ, p.OrderT, p.AbsTol
	if len(p.Params) > 0 {
		cfg.Params = make(map[string]float64, len(p.Params))
		for k, v := range p.Params {
			cfg.Params[k] = v
		}
	}
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
