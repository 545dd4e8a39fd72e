// Package sgd implements streaming (one observation at a time) estimation
// of generalized linear models using implicit stochastic gradient descent.
// Each update defines the new parameter through a fixed-point equation
// evaluated at the new parameter itself, which is solved with a third-order
// root finder.  The implicit form is much more stable than explicit SGD
// when the learning rate is large.
package sgd
