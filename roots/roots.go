// Package roots provides a bracketed scalar root finder with third-order
// (Halley) convergence for objectives that expose their first two
// derivatives.
package roots

import (
	"errors"
	"fmt"
	"math"
)

// Func evaluates an objective at x, returning the value and the first and
// second derivatives.
type Func func(x float64) (f, df, d2f float64)

// ErrBracket is returned when the objective has the same sign at both ends
// of the search interval.
var ErrBracket = errors.New("roots: no sign change on the search interval")

// Find locates a root of f on [lo, hi], starting from guess.  Each
// iteration takes a Halley step when the step stays inside the current
// bracket and bisects otherwise, so a degenerate derivative cannot escape
// the interval.  Iteration stops when the step or the bracket width falls
// below tol, and fails if that is not achieved within maxIter iterations.
func Find(f Func, guess, lo, hi, tol float64, maxIter int) (float64, error) {

	if hi < lo {
		lo, hi = hi, lo
	}

	flo, _, _ := f(lo)
	fhi, _, _ := f(hi)
	if flo == 0 {
		return lo, nil
	}
	if fhi == 0 {
		return hi, nil
	}
	if (flo > 0) == (fhi > 0) {
		return 0, ErrBracket
	}

	x := guess
	if x < lo || x > hi {
		x = 0.5 * (lo + hi)
	}

	for iter := 0; iter < maxIter; iter++ {

		fx, dfx, d2fx := f(x)
		if math.IsNaN(fx) || math.IsInf(fx, 0) {
			return 0, fmt.Errorf("roots: non-finite objective at %v", x)
		}
		if fx == 0 {
			return x, nil
		}

		// Shrink the bracket around the sign change.
		if (fx > 0) == (fhi > 0) {
			hi, fhi = x, fx
		} else {
			lo, flo = x, fx
		}

		// Halley step; reduces to the Newton step when the second
		// derivative vanishes.
		var step float64
		den := 2*dfx*dfx - fx*d2fx
		if den != 0 && !math.IsNaN(den) && !math.IsInf(den, 0) {
			step = 2 * fx * dfx / den
		}

		xn := x - step
		if step == 0 || xn <= lo || xn >= hi {
			xn = 0.5 * (lo + hi)
		}

		if math.Abs(xn-x) < tol || hi-lo < tol {
			return xn, nil
		}
		x = xn
	}

	return 0, fmt.Errorf("roots: no convergence within %d iterations", maxIter)
}
