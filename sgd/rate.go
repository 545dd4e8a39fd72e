package sgd

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// ScoreFunc evaluates the per-observation score vector at the given
// parameter value.
type ScoreFunc func(theta []float64, pt DataPoint) []float64

// A Schedule produces the step-size matrix for one streaming update.  Rate
// writes the p x p matrix for iteration t at the current parameter into
// dst.  Both supported schedules are diagonal, so the matrix is carried as
// a DiagDense.
type Schedule interface {
	Rate(theta []float64, pt DataPoint, t int, dst *mat.DiagDense)
}

// UniformRate is the classical decaying scalar schedule.  The rate at
// iteration t is scale * gamma * (1 + alpha*gamma*t)^(-c), applied
// uniformly to every coordinate.  For positive alpha and c the rate is
// non-increasing in t.
type UniformRate struct {
	Gamma float64
	Alpha float64
	C     float64
	Scale float64
}

// Rate implements the Schedule interface.
func (u *UniformRate) Rate(theta []float64, pt DataPoint, t int, dst *mat.DiagDense) {

	lr := u.Scale * u.Gamma * math.Pow(1+u.Alpha*u.Gamma*float64(t), -u.C)

	p, _ := dst.Dims()
	for i := 0; i < p; i++ {
		dst.SetDiag(i, lr)
	}
}

// DiagonalRate is a per-coordinate schedule.  Each call recomputes the
// diagonal of I + G*G', where G is the score at the current parameter, and
// inverts every entry whose magnitude exceeds the inversion threshold.
// Entries at or below the threshold pass through uninverted, which leaves
// them large and suppresses that coordinate's step.
type DiagonalRate struct {
	score ScoreFunc
}

// NewDiagonalRate returns a diagonal schedule preconditioned by the given
// score function.
func NewDiagonalRate(score ScoreFunc) *DiagonalRate {
	return &DiagonalRate{score: score}
}

const invThreshold = 1e-8

// Rate implements the Schedule interface.
func (d *DiagonalRate) Rate(theta []float64, pt DataPoint, t int, dst *mat.DiagDense) {

	g := d.score(theta, pt)

	p, _ := dst.Dims()
	if len(g) != p {
		dimPanicf("sgd: score has length %d, schedule dimension is %d", len(g), p)
	}

	for i := 0; i < p; i++ {
		dst.SetDiag(i, reciprocate(1+g[i]*g[i]))
	}
}

// reciprocate inverts v unless its magnitude is at or below the inversion
// threshold, in which case v passes through unchanged.
func reciprocate(v float64) float64 {
	if math.Abs(v) > invThreshold {
		return 1 / v
	}
	return v
}
