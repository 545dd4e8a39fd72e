// +build ignore

/*
This simulation generates Poisson counts from a log-linear model and fits
the parameters with implicit SGD under the exponential transfer, using both
the uniform and the per-coordinate learning-rate schedules.  The residual
deviance of each final estimate is reported.
*/

package main

import (
	"fmt"
	"log"
	"math"

	"github.com/Hulalazz/sgd/sgd"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	rng rand.Source
)

func simulate(n int, truth []float64) *sgd.Dataset {

	p := len(truth)
	normal := distuv.Normal{Mu: 0, Sigma: 0.5, Src: rng}

	x := mat.NewDense(n, p, nil)
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		var lp float64
		for j := 0; j < p; j++ {
			v := normal.Rand()
			x.Set(i, j, v)
			lp += truth[j] * v
		}
		pois := distuv.Poisson{Lambda: math.Exp(lp), Src: rng}
		y.SetVec(i, pois.Rand())
	}

	return sgd.NewDataset(x, y)
}

func fitWith(ds *sgd.Dataset, diagonal bool) *sgd.Trajectory {

	e, err := sgd.NewExperiment("exp", ds.Size())
	if err != nil {
		log.Fatal(err)
	}
	e.Family("poisson")
	if diagonal {
		e.DiagonalLearningRate()
	} else {
		e.UniformLearningRate(1, 1, 1, 1)
	}

	traj, err := e.Fit(ds, nil)
	if err != nil {
		log.Fatal(err)
	}

	return traj
}

func main() {

	rng = rand.NewSource(4523745)

	truth := []float64{0.5, -0.3, 0.2}
	ds := simulate(10000, truth)

	fam := sgd.NewFamily(sgd.PoissonFamily)
	e, err := sgd.NewExperiment("exp", ds.Size())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("truth: %v\n", truth)
	for _, diagonal := range []bool{false, true} {
		traj := fitWith(ds, diagonal)
		dev := e.Deviance(fam, ds, traj.Last(), nil)
		fmt.Printf("diagonal=%v estimate=%v deviance=%.2f\n", diagonal, traj.Last(), dev)
	}
}
