package sgd

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestUniformRateSchedule(t *testing.T) {

	u := &UniformRate{Gamma: 1, Alpha: 0.5, C: 0.6, Scale: 2}
	pt := DataPoint{X: []float64{1, 2}, Y: 1}
	theta := []float64{0, 0}
	d := mat.NewDiagDense(2, nil)

	u.Rate(theta, pt, 0, d)
	if d.At(0, 0) != 2 || d.At(1, 1) != 2 {
		t.Errorf("rate at t=0 is %v, want scale*gamma = 2", d.At(0, 0))
	}
	if d.At(0, 1) != 0 || d.At(1, 0) != 0 {
		t.Error("uniform rate matrix has nonzero off-diagonal entries")
	}

	prev := d.At(0, 0)
	for k := 1; k < 50; k++ {
		u.Rate(theta, pt, k, d)
		if d.At(0, 0) > prev {
			t.Errorf("rate increased at t=%d: %v > %v", k, d.At(0, 0), prev)
		}
		prev = d.At(0, 0)
	}
}

func TestDiagonalRateSchedule(t *testing.T) {

	// Fixed score, so the diagonal of I + G*G' is {10, 5}.
	score := func(theta []float64, pt DataPoint) []float64 {
		return []float64{3, -2}
	}

	d := NewDiagonalRate(score)
	m := mat.NewDiagDense(2, nil)
	d.Rate([]float64{0, 0}, DataPoint{X: []float64{1, 1}, Y: 0}, 0, m)

	if !scalarClose(m.At(0, 0), 0.1, 1e-14) || !scalarClose(m.At(1, 1), 0.2, 1e-14) {
		t.Errorf("diagonal rate is (%v, %v), want (0.1, 0.2)", m.At(0, 0), m.At(1, 1))
	}
	if m.At(0, 1) != 0 || m.At(1, 0) != 0 {
		t.Error("diagonal rate matrix has nonzero off-diagonal entries")
	}
}

func TestReciprocate(t *testing.T) {

	cases := []struct {
		v    float64
		want float64
	}{
		{2, 0.5},
		{-4, -0.25},
		{1.0 / 1024, 1024},
		{1e-8, 1e-8},
		{5e-9, 5e-9},
		{0, 0},
	}

	for _, c := range cases {
		if got := reciprocate(c.v); got != c.want {
			t.Errorf("reciprocate(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}
