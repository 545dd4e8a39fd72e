package sgd

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/Hulalazz/sgd/roots"
)

// scoreCoeff evaluates the residual g(ksi) = y - h(theta.x + (x.x)*ksi)
// and its first two derivatives in the scalar offset ksi, for a fixed
// observation and parameter.
type scoreCoeff struct {
	exp *Experiment
	pt  DataPoint

	// theta.x and x.x, fixed for the observation
	xdot  float64
	normx float64
}

func newScoreCoeff(e *Experiment, pt DataPoint, theta []float64) scoreCoeff {
	return scoreCoeff{
		exp:   e,
		pt:    pt,
		xdot:  floats.Dot(theta, pt.X),
		normx: floats.Dot(pt.X, pt.X),
	}
}

func (s scoreCoeff) value(ksi float64) float64 {
	return s.pt.Y - s.exp.HTransfer(s.xdot+s.normx*ksi)
}

// deriv is the magnitude of dg/dksi, h'(theta.x + (x.x)*ksi) * x.x.
func (s scoreCoeff) deriv(ksi float64) float64 {
	return s.exp.HFirstDerivative(s.xdot+s.normx*ksi) * s.normx
}

func (s scoreCoeff) deriv2(ksi float64) float64 {
	return s.exp.HSecondDerivative(s.xdot+s.normx*ksi) * s.normx * s.normx
}

// implicitFn is the objective f(ksi) = ksi - at*g(ksi) whose root is the
// implicit update step, in the (value, first, second) form consumed by the
// root finder.  When h' vanishes the first derivative is exactly 1 and the
// solve degenerates to the explicit SGD step; that is expected.
type implicitFn struct {
	at float64
	g  scoreCoeff
}

func (fn implicitFn) eval(u float64) (float64, float64, float64) {
	value := u - fn.at*fn.g.value(u)
	first := 1 + fn.at*fn.g.deriv(u)
	second := fn.at * fn.g.deriv2(u)
	return value, first, second
}

// FitSettings configures the per-observation implicit solve.
type FitSettings struct {

	// Tol is the absolute tolerance for the implicit step scalar.
	Tol float64

	// MaxIter caps the root-finder iterations per observation.
	MaxIter int

	// Start is the initial parameter vector.  If nil, the zero vector
	// is used.
	Start []float64
}

// DefaultFitSettings returns the default solver settings.
func DefaultFitSettings() *FitSettings {
	return &FitSettings{
		Tol:     1e-10,
		MaxIter: 100,
	}
}

// Fit streams the dataset through the implicit update, one observation at
// a time, and returns the trajectory of parameter estimates.  The number
// of observations processed is capped by the iteration budget fixed at
// construction.  On a numerical failure the run aborts and the trajectory
// is returned along with the error, holding every estimate produced before
// the failing observation.
func (e *Experiment) Fit(ds *Dataset, settings *FitSettings) (*Trajectory, error) {

	if e.rate == nil {
		return nil, configErrorf("sgd: no learning-rate schedule is bound")
	}
	if settings == nil {
		settings = DefaultFitSettings()
	}

	size := ds.Size()
	if size.NParams != e.p {
		dimPanicf("sgd: dataset has %d columns, experiment dimension is %d", size.NParams, e.p)
	}

	niter := size.NObs
	if e.nIters > 0 && e.nIters < niter {
		niter = e.nIters
	}

	theta := make([]float64, e.p)
	if settings.Start != nil {
		if len(settings.Start) != e.p {
			dimPanicf("sgd: starting vector has length %d, experiment dimension is %d",
				len(settings.Start), e.p)
		}
		copy(theta, settings.Start)
	}

	traj := NewTrajectory(Size{NObs: niter, NParams: e.p})
	lr := mat.NewDiagDense(e.p, nil)
	e.streaming = true

	for t := 0; t < niter; t++ {

		pt := ds.Row(t)

		e.LearningRate(theta, pt, t, lr)
		at := directionalRate(lr, pt.X)

		ksi, err := e.implicitStep(t, pt, theta, at, settings)
		if err != nil {
			if e.log != nil {
				e.log.Printf("aborting at observation %d: %v\n", t, err)
			}
			return traj, err
		}

		floats.AddScaled(theta, ksi, pt.X)
		if !validVec(theta) {
			err := numErrorf(t, "sgd: non-finite estimate at observation %d", t)
			if e.log != nil {
				e.log.Printf("aborting at observation %d: %v\n", t, err)
			}
			return traj, err
		}
		traj.Append(theta)

		if e.log != nil && (t+1)%1000 == 0 {
			e.log.Printf("processed %d observations\n", t+1)
		}
	}

	if e.log != nil {
		e.log.Printf("fit complete: %d observations\n", traj.Len())
	}

	return traj, nil
}

// implicitStep solves ksi = at*g(ksi) for one observation and returns the
// converged step scalar.
func (e *Experiment) implicitStep(t int, pt DataPoint, theta []float64, at float64, settings *FitSettings) (float64, error) {

	g := newScoreCoeff(e, pt, theta)

	// A zero design vector contributes nothing to the score; the update
	// is a no-op.
	if g.normx == 0 {
		return 0, nil
	}

	// The explicit SGD step at*g(0) and zero bracket the implicit step,
	// since g is non-increasing in the offset for every transfer in the
	// family.
	r0 := at * g.value(0)
	if math.IsNaN(r0) || math.IsInf(r0, 0) {
		return 0, numErrorf(t, "sgd: non-finite residual at observation %d", t)
	}
	if r0 == 0 {
		return 0, nil
	}
	lo, hi := math.Min(0, r0), math.Max(0, r0)

	fn := implicitFn{at: at, g: g}
	ksi, err := roots.Find(fn.eval, r0, lo, hi, settings.Tol, settings.MaxIter)
	if err != nil {
		return 0, numErrorf(t, "sgd: implicit update failed at observation %d: %v", t, err)
	}

	return ksi, nil
}

// directionalRate reduces the step-size matrix to a scalar rate in the
// direction of the design vector, x'Ax / x'x.  For the uniform schedule
// this is the scalar rate itself.
func directionalRate(a *mat.DiagDense, x []float64) float64 {

	var num, den float64
	for i := range x {
		num += a.At(i, i) * x[i] * x[i]
		den += x[i] * x[i]
	}
	if den == 0 {
		return a.At(0, 0)
	}

	return num / den
}

func validVec(x []float64) bool {
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
