package sgd

import (
	"fmt"
	"math"
)

// FamilyType is the type of model family used in an estimation run.
type FamilyType uint8

// GaussianFamily, ... are the supported model families.
const (
	GaussianFamily FamilyType = iota
	PoissonFamily
	BinomialFamily
)

// VarianceFunc evaluates the GLM variance function V(mu).
type VarianceFunc func(float64) float64

// DevianceFunc evaluates and returns the total deviance of the mean values
// mn against the observed responses y.  The weights may be nil, in which
// case all weights are taken to be 1.
type DevianceFunc func(y, mn, wt []float64) float64

// Family represents a generalized linear model family.  Families are
// stateless; they are used for post-hoc model evaluation and are not
// consumed by the update path.
type Family struct {

	// The name of the family
	Name string

	// The numeric code for the family
	TypeCode FamilyType

	// The variance function for the family
	Variance VarianceFunc

	// The deviance function for the family
	Deviance DevianceFunc
}

// NewFamily returns the family object corresponding to the given type
// code.
func NewFamily(fam FamilyType) *Family {

	switch fam {
	case GaussianFamily:
		return &gaussian
	case PoissonFamily:
		return &poisson
	case BinomialFamily:
		return &binomial
	default:
		msg := fmt.Sprintf("Unknown family: %v\n", fam)
		panic(msg)
	}
}

// FamilyByName returns the family with the given name.  Supported names
// are gaussian, poisson, and binomial.  An unrecognized name is a
// configuration error.
func FamilyByName(name string) (*Family, error) {

	switch name {
	case "gaussian":
		return &gaussian, nil
	case "poisson":
		return &poisson, nil
	case "binomial":
		return &binomial, nil
	default:
		return nil, configErrorf("sgd: unknown family '%s'", name)
	}
}

var gaussian = Family{
	Name:     "Gaussian",
	TypeCode: GaussianFamily,
	Variance: gaussianVariance,
	Deviance: gaussianDeviance,
}

var poisson = Family{
	Name:     "Poisson",
	TypeCode: PoissonFamily,
	Variance: poissonVariance,
	Deviance: poissonDeviance,
}

var binomial = Family{
	Name:     "Binomial",
	TypeCode: BinomialFamily,
	Variance: binomialVariance,
	Deviance: binomialDeviance,
}

func gaussianVariance(mu float64) float64 {
	return 1
}

func poissonVariance(mu float64) float64 {
	return mu
}

func binomialVariance(mu float64) float64 {
	return mu * (1 - mu)
}

func gaussianDeviance(y, mn, wt []float64) float64 {

	checkDeviance(y, mn, wt)

	var dev float64
	var w float64 = 1

	for i := range y {
		if wt != nil {
			w = wt[i]
		}
		r := y[i] - mn[i]
		dev += w * r * r
	}

	return dev
}

func poissonDeviance(y, mn, wt []float64) float64 {

	checkDeviance(y, mn, wt)

	var dev float64
	var w float64 = 1

	for i := range y {
		if wt != nil {
			w = wt[i]
		}
		d := mn[i] - y[i]
		if y[i] > 0 {
			d += y[i] * math.Log(y[i]/mn[i])
		}
		dev += 2 * w * d
	}

	return dev
}

func binomialDeviance(y, mn, wt []float64) float64 {

	checkDeviance(y, mn, wt)

	var dev float64
	var w float64 = 1

	for i := range y {
		if wt != nil {
			w = wt[i]
		}
		dev += 2 * w * (ylogy(y[i], mn[i]) + ylogy(1-y[i], 1-mn[i]))
	}

	return dev
}

// ylogy returns y*log(y/mu), taken to be 0 when y is 0.
func ylogy(y, mu float64) float64 {
	if y != 0 {
		return y * math.Log(y/mu)
	}
	return 0
}

func checkDeviance(y, mn, wt []float64) {
	if len(mn) != len(y) || (wt != nil && len(wt) != len(y)) {
		dimPanicf("sgd: deviance: len(y)=%d, len(mn)=%d, len(wt)=%d", len(y), len(mn), len(wt))
	}
}
