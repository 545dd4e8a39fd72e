package sgd

import (
	"github.com/kshedden/dstream/dstream"

	"gonum.org/v1/gonum/mat"
)

// NewDatasetFromDstream materializes a dataset from a column-chunked data
// stream.  The variable named yname is taken as the response; all
// remaining variables become design columns, in stream order.
func NewDatasetFromDstream(da dstream.Dstream, yname string) (*Dataset, error) {

	names := da.Names()
	ypos := -1
	var xpos []int
	for k, na := range names {
		if na == yname {
			ypos = k
		} else {
			xpos = append(xpos, k)
		}
	}
	if ypos == -1 {
		return nil, configErrorf("sgd: outcome variable '%s' not found", yname)
	}

	var y []float64
	xcols := make([][]float64, len(xpos))

	da.Reset()
	for da.Next() {
		y = append(y, da.GetPos(ypos).([]float64)...)
		for j, k := range xpos {
			xcols[j] = append(xcols[j], da.GetPos(k).([]float64)...)
		}
	}

	n := len(y)
	x := mat.NewDense(n, len(xpos), nil)
	for j := range xcols {
		if len(xcols[j]) != n {
			dimPanicf("sgd: variable '%s' has length %d, expected %d",
				names[xpos[j]], len(xcols[j]), n)
		}
		x.SetCol(j, xcols[j])
	}

	return NewDataset(x, mat.NewVecDense(n, y)), nil
}
