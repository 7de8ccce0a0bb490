package taylor

import (
	"errors"
	"testing"

	"github.com/san-kum/tmflow/internal/interval"
	"github.com/san-kum/tmflow/internal/poly"
	"github.com/san-kum/tmflow/internal/series"
)

func TestNewModelNInvariants(t *testing.T) {
	ctx := poly.NewContext(1, 2)
	p := poly.Variable(ctx, 0)
	small := interval.New(-0.1, 0.1)

	tests := []struct {
		name    string
		rem     interval.Interval
		center  interval.Box
		domain  interval.Box
		wantErr bool
	}{
		{"valid", small, interval.ZeroBox(1), interval.Symmetric(1), false},
		{"remainder excludes zero", interval.New(0.1, 0.2), interval.ZeroBox(1), interval.Symmetric(1), true},
		{"center outside", small, interval.PointBox([]float64{2}), interval.Symmetric(1), true},
		{"dimension", small, interval.ZeroBox(2), interval.Symmetric(2), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewModelN(p, tt.rem, tt.center, tt.domain)
			if tt.wantErr != (err != nil) {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvariant) {
				t.Errorf("err = %v, want ErrInvariant", err)
			}
		})
	}
}

func TestMustModelNPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	ctx := poly.NewContext(1, 1)
	MustModelN(poly.Zero(ctx), interval.Point(1), interval.ZeroBox(1), interval.Symmetric(1))
}

func TestModelNEvaluate(t *testing.T) {
	ctx := poly.NewContext(1, 2)
	p := poly.Variable(ctx, 0).AddConst(interval.Point(1)) // 1 + ξ
	m := MustModelN(p, interval.New(-0.1, 0.1), interval.ZeroBox(1), interval.Symmetric(1))

	if b := m.Bound(); !interval.New(-0.1, 2.1).Subset(b) {
		t.Errorf("bound = %v", b)
	}
	v, err := m.Evaluate(interval.PointBox([]float64{0.5}))
	if err != nil {
		t.Fatal(err)
	}
	if !v.Contains(1.45) || !v.Contains(1.55) || v.Width() > 0.21 {
		t.Errorf("m(0.5) = %v", v)
	}
	if _, err := m.Evaluate(interval.PointBox([]float64{3})); !errors.Is(err, ErrOutsideDomain) {
		t.Errorf("err = %v, want ErrOutsideDomain", err)
	}
}

func TestModelNAdd(t *testing.T) {
	ctx := poly.NewContext(1, 1)
	a := MustModelN(poly.Variable(ctx, 0), interval.New(-1, 1), interval.ZeroBox(1), interval.Symmetric(1))
	sum, err := a.Add(a)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Rem() != interval.New(-2, 2) || sum.Poly().Coeff(1) != interval.Point(2) {
		t.Errorf("a+a = %s", sum)
	}

	b := MustModelN(poly.Variable(ctx, 0), interval.Zero(), interval.ZeroBox(1), interval.Unit(1))
	if _, err := a.Add(b); !errors.Is(err, ErrIncompatible) {
		t.Errorf("err = %v, want ErrIncompatible", err)
	}
}

func TestModel1EvaluateN(t *testing.T) {
	ctx := poly.NewContext(1, 2)
	x := poly.Variable(ctx, 0)
	s := series.New(ctx, x, poly.Const(ctx, interval.Point(2))) // ξ + 2τ
	m := MustModel1(s, interval.New(-0.5, 0.5), interval.Zero(), interval.New(0, 1))

	n, err := m.EvaluateN(interval.Point(1), interval.ZeroBox(1), interval.Symmetric(1))
	if err != nil {
		t.Fatal(err)
	}
	if n.Poly().Constant() != interval.Point(2) || n.Poly().Coeff(1) != interval.Point(1) {
		t.Errorf("poly at τ=1 = %s", n.Poly())
	}
	if n.Rem() != interval.New(-0.5, 0.5) {
		t.Errorf("remainder = %v", n.Rem())
	}

	if _, _, err := m.Evaluate(interval.New(0, 2)); !errors.Is(err, ErrOutsideDomain) {
		t.Errorf("err = %v, want ErrOutsideDomain", err)
	}
	if _, err := NewModel1(s, interval.New(-1, 1), interval.Point(3), interval.New(0, 1)); !errors.Is(err, ErrInvariant) {
		t.Errorf("err = %v, want ErrInvariant", err)
	}
}

func TestRModel1ScalesRemainder(t *testing.T) {
	ctx := poly.NewContext(1, 1)
	s := series.Constant(poly.Const(ctx, interval.Point(1)), 1)
	m := MustRModel1(s, interval.Point(1), interval.Zero(), interval.New(0, 0.5))

	_, rem, err := m.Evaluate(interval.Point(0.5))
	if err != nil {
		t.Fatal(err)
	}
	if rem != interval.Point(0.25) {
		t.Errorf("relative remainder at 0.5 = %v, want 0.25", rem)
	}

	abs := m.Absolute()
	if abs.Rem() != interval.New(0, 0.25) {
		t.Errorf("absolute remainder = %v, want [0, 0.25]", abs.Rem())
	}
}
