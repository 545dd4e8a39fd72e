package sgd

import (
	"log"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Experiment is an estimation context.  It binds a transfer function and a
// learning-rate schedule to a problem dimension and iteration budget, and
// exposes the score function and derivative access used by the implicit
// update.  The transfer function is fixed at construction; the schedule
// may be changed up to the first streaming update.
type Experiment struct {
	p      int
	nIters int

	// Family tag, recorded for bookkeeping.  The update path does not
	// consume it.
	familyName string

	transfer *Transfer
	rate     Schedule

	// If not nil, write progress messages here
	log *log.Logger

	// Set once streaming begins; the schedule is locked from then on.
	streaming bool
}

// NewExperiment returns an estimation context for the named transfer
// function and the given problem size.  Supported transfer names are
// identity, exp, and logistic.  A learning-rate schedule must be bound
// before fitting.
func NewExperiment(transferName string, size Size) (*Experiment, error) {

	tr, err := TransferByName(transferName)
	if err != nil {
		return nil, err
	}

	return &Experiment{
		p:        size.NParams,
		nIters:   size.NObs,
		transfer: tr,
	}, nil
}

// NumParams returns the parameter dimension.
func (e *Experiment) NumParams() int {
	return e.p
}

// NumIters returns the iteration budget fixed at construction.
func (e *Experiment) NumIters() int {
	return e.nIters
}

// Family records the model family tag for this run.
func (e *Experiment) Family(name string) *Experiment {
	e.familyName = name
	return e
}

// FamilyName returns the recorded model family tag.
func (e *Experiment) FamilyName() string {
	return e.familyName
}

// Log takes a Logger value that will be used to report fitting progress.
func (e *Experiment) Log(log *log.Logger) *Experiment {
	e.log = log
	return e
}

// UniformLearningRate binds the uniform decaying schedule with the given
// parameters.
func (e *Experiment) UniformLearningRate(gamma, alpha, c, scale float64) *Experiment {
	e.bindRate(&UniformRate{Gamma: gamma, Alpha: alpha, C: c, Scale: scale})
	return e
}

// DiagonalLearningRate binds the per-coordinate schedule, preconditioned
// by this context's score function.
func (e *Experiment) DiagonalLearningRate() *Experiment {
	e.bindRate(NewDiagonalRate(e.Score))
	return e
}

func (e *Experiment) bindRate(s Schedule) {
	if e.streaming {
		panic("sgd: the learning-rate schedule cannot be changed after streaming begins")
	}
	e.rate = s
}

// LearningRate writes the step-size matrix for iteration t into dst,
// delegating to the bound schedule.
func (e *Experiment) LearningRate(theta []float64, pt DataPoint, t int, dst *mat.DiagDense) {
	if n, _ := dst.Dims(); n != e.p {
		dimPanicf("sgd: step-size matrix has dimension %d, experiment dimension is %d", n, e.p)
	}
	e.rate.Rate(theta, pt, t, dst)
}

// Score returns the per-observation score (y - h(x.theta)) * x, the
// gradient of the log-likelihood contribution under the bound transfer.
func (e *Experiment) Score(theta []float64, pt DataPoint) []float64 {

	e.checkDims(theta, pt)

	r := pt.Y - e.transfer.Transfer(floats.Dot(theta, pt.X))
	g := make([]float64, e.p)
	floats.AddScaled(g, r, pt.X)

	return g
}

// HTransfer evaluates the bound transfer function.
func (e *Experiment) HTransfer(u float64) float64 {
	return e.transfer.Transfer(u)
}

// HFirstDerivative evaluates the first derivative of the bound transfer
// function.
func (e *Experiment) HFirstDerivative(u float64) float64 {
	return e.transfer.Deriv(u)
}

// HSecondDerivative evaluates the second derivative of the bound transfer
// function.
func (e *Experiment) HSecondDerivative(u float64) float64 {
	return e.transfer.Deriv2(u)
}

// Fitted returns the fitted means h(x_i . theta) for every row of the
// dataset.
func (e *Experiment) Fitted(ds *Dataset, theta []float64) []float64 {

	n, p := ds.X.Dims()
	if p != e.p || len(theta) != e.p {
		dimPanicf("sgd: dataset has %d columns, len(theta)=%d, experiment dimension is %d",
			p, len(theta), e.p)
	}

	fv := make([]float64, n)
	for i := 0; i < n; i++ {
		fv[i] = e.transfer.Transfer(floats.Dot(ds.X.RawRowView(i), theta))
	}

	return fv
}

// Deviance evaluates the family deviance of the estimate theta on the
// dataset.  The weights may be nil, in which case all weights are taken to
// be 1.
func (e *Experiment) Deviance(fam *Family, ds *Dataset, theta, wt []float64) float64 {

	fv := e.Fitted(ds, theta)

	n := ds.Y.Len()
	y := make([]float64, n)
	mat.Col(y, 0, ds.Y)

	return fam.Deviance(y, fv, wt)
}

func (e *Experiment) checkDims(theta []float64, pt DataPoint) {
	if len(theta) != e.p || len(pt.X) != e.p {
		dimPanicf("sgd: dimension mismatch: len(theta)=%d, len(x)=%d, p=%d",
			len(theta), len(pt.X), e.p)
	}
}
