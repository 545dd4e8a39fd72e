package sgd

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// DataPoint is a single observation: a design vector and its scalar
// response.  It is immutable once constructed; the engine never writes to
// X.
type DataPoint struct {
	X []float64
	Y float64
}

// Size records a sample count and parameter dimension, used to pre-size
// structures.
type Size struct {
	NObs    int
	NParams int
}

// Dataset holds a design matrix with one row per observation and the
// corresponding response vector.  It is read-only input to the estimator.
type Dataset struct {
	X *mat.Dense
	Y *mat.VecDense
}

// NewDataset returns a dataset for the given design matrix and response
// vector.  The response must have one entry per design row.
func NewDataset(x *mat.Dense, y *mat.VecDense) *Dataset {

	n, _ := x.Dims()
	if y.Len() != n {
		dimPanicf("sgd: design matrix has %d rows, response has length %d", n, y.Len())
	}

	return &Dataset{X: x, Y: y}
}

// Size returns the dimensions of the dataset.
func (ds *Dataset) Size() Size {
	n, p := ds.X.Dims()
	return Size{NObs: n, NParams: p}
}

// Row returns the i'th observation.  The design vector aliases the
// dataset's backing storage and must not be modified.
func (ds *Dataset) Row(i int) DataPoint {
	return DataPoint{X: ds.X.RawRowView(i), Y: ds.Y.AtVec(i)}
}

// Covariance returns the covariance matrix of the design columns, a
// summary statistic used for diagnostics.
func (ds *Dataset) Covariance() *mat.SymDense {

	_, p := ds.X.Dims()
	cov := mat.NewSymDense(p, nil)
	stat.CovarianceMatrix(cov, ds.X, nil)

	return cov
}

// Trajectory accumulates parameter estimates, one column per processed
// observation, in arrival order.  It grows monotonically and is written by
// the streaming loop only.
type Trajectory struct {
	est *mat.Dense
	p   int
	n   int
}

// NewTrajectory returns an empty trajectory pre-sized for the given sample
// count and dimension.
func NewTrajectory(size Size) *Trajectory {

	ncap := size.NObs
	if ncap < 1 {
		ncap = 1
	}

	return &Trajectory{
		est: mat.NewDense(size.NParams, ncap, nil),
		p:   size.NParams,
	}
}

// Append records the estimate produced by one streaming update.
func (tr *Trajectory) Append(theta []float64) {

	if len(theta) != tr.p {
		dimPanicf("sgd: estimate has length %d, trajectory dimension is %d", len(theta), tr.p)
	}

	_, c := tr.est.Dims()
	if tr.n == c {
		ne := mat.NewDense(tr.p, 2*c, nil)
		ne.Slice(0, tr.p, 0, c).(*mat.Dense).Copy(tr.est)
		tr.est = ne
	}

	tr.est.SetCol(tr.n, theta)
	tr.n++
}

// Len returns the number of estimates recorded so far.
func (tr *Trajectory) Len() int {
	return tr.n
}

// Last returns a copy of the most recently appended estimate, or nil if no
// estimates have been recorded.
func (tr *Trajectory) Last() []float64 {
	if tr.n == 0 {
		return nil
	}
	return tr.Col(tr.n - 1)
}

// Col returns a copy of the estimate recorded after processing the k'th
// observation.
func (tr *Trajectory) Col(k int) []float64 {
	if k < 0 || k >= tr.n {
		msg := fmt.Sprintf("sgd: trajectory column %d out of range [0, %d)\n", k, tr.n)
		panic(msg)
	}
	return mat.Col(nil, k, tr.est)
}

// Estimates returns the p x n matrix of recorded estimates, or nil if no
// estimates have been recorded.  The returned matrix is a view; it must
// not be modified.
func (tr *Trajectory) Estimates() mat.Matrix {
	if tr.n == 0 {
		return nil
	}
	return tr.est.Slice(0, tr.p, 0, tr.n)
}
