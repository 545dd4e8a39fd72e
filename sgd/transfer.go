package sgd

import (
	"fmt"
	"math"
)

// UniFunc is a scalar function of one float64 argument.
type UniFunc func(float64) float64

// TransferType is used to specify a transfer function.
type TransferType uint8

// IdentityTransfer, etc. indicate the supported transfer functions.
const (
	IdentityTransfer TransferType = iota
	ExpTransfer
	LogisticTransfer
)

// Transfer specifies a transfer function h (the inverse link), mapping the
// linear predictor to the conditional mean, together with its first two
// derivatives.
type Transfer struct {
	Name string

	TypeCode TransferType

	// Transfer evaluates h(u).
	Transfer UniFunc

	// Deriv evaluates the first derivative h'(u).
	Deriv UniFunc

	// Deriv2 evaluates the second derivative h''(u).
	Deriv2 UniFunc
}

// NewTransfer returns the transfer function object corresponding to the
// given type code.
func NewTransfer(transfer TransferType) *Transfer {

	switch transfer {
	case IdentityTransfer:
		return &identityTransfer
	case ExpTransfer:
		return &expTransfer
	case LogisticTransfer:
		return &logisticTransfer
	default:
		msg := fmt.Sprintf("Transfer unknown: %v\n", transfer)
		panic(msg)
	}
}

// TransferByName returns the transfer function with the given name.
// Supported names are identity, exp, and logistic.  An unrecognized name
// is a configuration error.
func TransferByName(name string) (*Transfer, error) {

	switch name {
	case "identity":
		return &identityTransfer, nil
	case "exp":
		return &expTransfer, nil
	case "logistic":
		return &logisticTransfer, nil
	default:
		return nil, configErrorf("sgd: unknown transfer function '%s'", name)
	}
}

// Apply evaluates the transfer function elementwise, writing h(u[i]) into
// v[i].  The slices must have the same length.
func (tr *Transfer) Apply(u, v []float64) {
	if len(u) != len(v) {
		dimPanicf("sgd: Apply: input has length %d, output has length %d", len(u), len(v))
	}
	for i := range u {
		v[i] = tr.Transfer(u[i])
	}
}

var identityTransfer = Transfer{
	Name:     "Identity",
	TypeCode: IdentityTransfer,
	Transfer: idTrans,
	Deriv:    idTransDeriv,
	Deriv2:   idTransDeriv2,
}

var expTransfer = Transfer{
	Name:     "Exp",
	TypeCode: ExpTransfer,
	Transfer: math.Exp,
	Deriv:    math.Exp,
	Deriv2:   math.Exp,
}

var logisticTransfer = Transfer{
	Name:     "Logistic",
	TypeCode: LogisticTransfer,
	Transfer: sigmoid,
	Deriv:    sigmoidDeriv,
	Deriv2:   sigmoidDeriv2,
}

func idTrans(u float64) float64 {
	return u
}

func idTransDeriv(u float64) float64 {
	return 1
}

func idTransDeriv2(u float64) float64 {
	return 0
}

func sigmoid(u float64) float64 {
	return 1 / (1 + math.Exp(-u))
}

func sigmoidDeriv(u float64) float64 {
	s := sigmoid(u)
	return s * (1 - s)
}

func sigmoidDeriv2(u float64) float64 {
	s := sigmoid(u)
	return 2*s*s*s - 3*s*s + 2*s
}
