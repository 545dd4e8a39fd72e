// +build ignore

/*
This simulation generates Gaussian responses from a linear model and fits
the parameters with implicit SGD under the identity transfer.  The final
streaming estimate is compared to the batch maximum-likelihood fit obtained
with gonum's BFGS optimizer, and the estimate error along the trajectory is
plotted to show the convergence of the streaming estimator.
*/

package main

import (
	"fmt"
	"log"
	"math"
	"os"

	"github.com/Hulalazz/sgd/sgd"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

var (
	rng rand.Source
)

func simulate(n int, truth []float64) *sgd.Dataset {

	p := len(truth)
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}
	noise := distuv.Normal{Mu: 0, Sigma: 0.5, Src: rng}

	x := mat.NewDense(n, p, nil)
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		var lp float64
		for j := 0; j < p; j++ {
			v := normal.Rand()
			x.Set(i, j, v)
			lp += truth[j] * v
		}
		y.SetVec(i, lp+noise.Rand())
	}

	return sgd.NewDataset(x, y)
}

// batchFit minimizes the squared-error loss over the full dataset.
func batchFit(ds *sgd.Dataset) []float64 {

	n, p := ds.X.Dims()

	problem := optimize.Problem{
		Func: func(theta []float64) float64 {
			var ss float64
			for i := 0; i < n; i++ {
				r := ds.Y.AtVec(i) - floats.Dot(ds.X.RawRowView(i), theta)
				ss += r * r
			}
			return ss / 2
		},
		Grad: func(grad, theta []float64) {
			for j := range grad {
				grad[j] = 0
			}
			for i := 0; i < n; i++ {
				r := ds.Y.AtVec(i) - floats.Dot(ds.X.RawRowView(i), theta)
				floats.AddScaled(grad, -r, ds.X.RawRowView(i))
			}
		},
	}

	result, err := optimize.Minimize(problem, make([]float64, p), nil, &optimize.BFGS{})
	if err != nil {
		log.Fatal(err)
	}

	return result.X
}

func plotError(traj *sgd.Trajectory, truth []float64) {

	pl, err := plot.New()
	if err != nil {
		log.Fatal(err)
	}
	pl.Title.Text = "Implicit SGD convergence"
	pl.X.Label.Text = "Observation"
	pl.Y.Label.Text = "log10 estimate error"

	pts := make(plotter.XYs, traj.Len())
	for k := 0; k < traj.Len(); k++ {
		est := traj.Col(k)
		floats.Sub(est, truth)
		pts[k].X = float64(k + 1)
		pts[k].Y = math.Log10(floats.Norm(est, 2))
	}

	if err := plotutil.AddLines(pl, "error", pts); err != nil {
		log.Fatal(err)
	}
	if err := pl.Save(6*vg.Inch, 4*vg.Inch, "normal_convergence.pdf"); err != nil {
		log.Fatal(err)
	}
}

func main() {

	rng = rand.NewSource(99)

	truth := []float64{2, -1, 0.5, 0.25}
	ds := simulate(5000, truth)

	e, err := sgd.NewExperiment("identity", ds.Size())
	if err != nil {
		log.Fatal(err)
	}
	e.Family("gaussian").UniformLearningRate(1, 1, 1, 1)
	e.Log(log.New(os.Stderr, "", log.LstdFlags))

	traj, err := e.Fit(ds, nil)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("truth:        %v\n", truth)
	fmt.Printf("implicit SGD: %v\n", traj.Last())
	fmt.Printf("batch ML:     %v\n", batchFit(ds))

	plotError(traj, truth)
}
