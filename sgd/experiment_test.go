package sgd

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func TestScoreFunction(t *testing.T) {

	e, err := NewExperiment("identity", Size{NObs: 10, NParams: 2})
	if err != nil {
		t.Fatal(err)
	}

	pt := DataPoint{X: []float64{1, 2}, Y: 3}
	g := e.Score([]float64{0.5, 0.5}, pt)

	// residual 3 - 1.5 = 1.5
	want := []float64{1.5, 3}
	if !floats.EqualApprox(g, want, 1e-12) {
		t.Errorf("score is %v, want %v", g, want)
	}
}

// The score must match the gradient of the canonical per-observation
// log-likelihood for each transfer function.
func TestScoreMatchesLogLikGradient(t *testing.T) {

	cases := []struct {
		name string
		y    float64
		ll   func(lp, y float64) float64
	}{
		{"identity", 1.3, func(lp, y float64) float64 {
			return -0.5 * (y - lp) * (y - lp)
		}},
		{"exp", 2, func(lp, y float64) float64 {
			return y*lp - math.Exp(lp)
		}},
		{"logistic", 1, func(lp, y float64) float64 {
			s := sigmoid(lp)
			return y*math.Log(s) + (1-y)*math.Log(1-s)
		}},
	}

	x := []float64{0.8, -1.2, 0.3}
	thetas := [][]float64{{0, 0, 0}, {0.5, -0.25, 1}}

	for _, c := range cases {
		e, err := NewExperiment(c.name, Size{NObs: 1, NParams: 3})
		if err != nil {
			t.Fatal(err)
		}
		pt := DataPoint{X: x, Y: c.y}

		for _, theta := range thetas {
			score := e.Score(theta, pt)
			ngrad := make([]float64, len(theta))
			fd.Gradient(ngrad, func(v []float64) float64 {
				return c.ll(floats.Dot(v, x), c.y)
			}, theta, nil)

			if !floats.EqualApprox(score, ngrad, 1e-5) {
				t.Errorf("%s: score %v, numerical gradient %v", c.name, score, ngrad)
			}
		}
	}
}

func TestTransferDelegation(t *testing.T) {

	e, err := NewExperiment("logistic", Size{NObs: 1, NParams: 1})
	if err != nil {
		t.Fatal(err)
	}

	for _, u := range transferPoints {
		s := sigmoid(u)
		if e.HTransfer(u) != s {
			t.Errorf("HTransfer(%v) = %v, want %v", u, e.HTransfer(u), s)
		}
		if !scalarClose(e.HFirstDerivative(u), s*(1-s), 1e-14) {
			t.Errorf("HFirstDerivative(%v) = %v", u, e.HFirstDerivative(u))
		}
		if !scalarClose(e.HSecondDerivative(u), 2*s*s*s-3*s*s+2*s, 1e-14) {
			t.Errorf("HSecondDerivative(%v) = %v", u, e.HSecondDerivative(u))
		}
	}
}

func TestUnknownTransferName(t *testing.T) {

	_, err := NewExperiment("probit", Size{NObs: 1, NParams: 1})
	if err == nil {
		t.Fatal("expected an error for an unknown transfer name")
	}
	var ce *ConfigurationError
	if !errors.As(err, &ce) {
		t.Errorf("expected a ConfigurationError, got %T", err)
	}
}

func TestScheduleLockedDuringStreaming(t *testing.T) {

	e, err := NewExperiment("identity", Size{NObs: 2, NParams: 1})
	if err != nil {
		t.Fatal(err)
	}
	e.UniformLearningRate(1, 1, 1, 1)

	ds := NewDataset(
		mat.NewDense(2, 1, []float64{1, 1}),
		mat.NewVecDense(2, []float64{1, 2}),
	)
	if _, err := e.Fit(ds, nil); err != nil {
		t.Fatal(err)
	}

	defer func() {
		if recover() == nil {
			t.Error("rebinding the schedule after streaming did not panic")
		}
	}()
	e.DiagonalLearningRate()
}

func TestScoreDimensionPanics(t *testing.T) {

	e, err := NewExperiment("identity", Size{NObs: 1, NParams: 2})
	if err != nil {
		t.Fatal(err)
	}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("dimension mismatch did not panic")
		}
		if _, ok := r.(*DimensionError); !ok {
			t.Errorf("expected a *DimensionError, got %T", r)
		}
	}()
	e.Score([]float64{1}, DataPoint{X: []float64{1, 2}, Y: 0})
}

func TestFittedAndDeviance(t *testing.T) {

	e, err := NewExperiment("identity", Size{NObs: 3, NParams: 2})
	if err != nil {
		t.Fatal(err)
	}
	e.Family("gaussian")

	ds := NewDataset(
		mat.NewDense(3, 2, []float64{1, 0, 0, 1, 1, 1}),
		mat.NewVecDense(3, []float64{1, 2, 3}),
	)

	theta := []float64{1, 2}
	fv := e.Fitted(ds, theta)
	if !floats.EqualApprox(fv, []float64{1, 2, 3}, 1e-14) {
		t.Errorf("fitted values are %v, want [1 2 3]", fv)
	}

	dev := e.Deviance(NewFamily(GaussianFamily), ds, theta, nil)
	if !scalarClose(dev, 0, 1e-12) {
		t.Errorf("deviance at a perfect fit is %v, want 0", dev)
	}
}
