package validated_test

import (
	"github.com/san-kum/tmflow/internal/series"
)

// growth is x' = x.
type growth struct{}

func (growth) Name() string { return "growth" }
func (growth) Dim() int     { return 1 }
func (growth) Eval(_ series.Series, x []series.Series) []series.Series {
	return []series.Series{x[0]}
}

// rotation is x' = y, y' = -x.
type rotation struct{}

func (rotation) Name() string { return "rotation" }
func (rotation) Dim() int     { return 2 }
func (rotation) Eval(_ series.Series, x []series.Series) []series.Series {
	return []series.Series{x[1], x[0].Neg()}
}

// quadratic is x' = -x², whose solution from x0 is x0/(1+x0·t).
type quadratic struct{}

func (quadratic) Name() string { return "quadratic" }
func (quadratic) Dim() int     { return 1 }
func (quadratic) Eval(_ series.Series, x []series.Series) []series.Series {
	return []series.Series{x[0].Mul(x[0]).Neg()}
}

// shortRotation claims dimension 2 but evaluates to a single component.
type shortRotation struct{}

func (shortRotation) Name() string { return "short" }
func (shortRotation) Dim() int     { return 2 }
func (shortRotation) Eval(_ series.Series, x []series.Series) []series.Series {
	return []series.Series{x[1]}
}
