package sgd

import "fmt"

// ConfigurationError indicates that an estimator was configured with an
// unrecognized transfer function, family, or schedule.  It is detected at
// construction time, before any data is processed.
type ConfigurationError struct {
	msg string
}

func (e *ConfigurationError) Error() string {
	return e.msg
}

func configErrorf(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{msg: fmt.Sprintf(format, args...)}
}

// NumericalError indicates that a streaming update could not produce a
// valid estimate: the root finder did not converge, or a NaN or Inf
// appeared.  The run aborts and the trajectory is left at its last valid
// state.
type NumericalError struct {

	// Obs is the index of the observation being processed when the
	// failure occurred.
	Obs int

	msg string
}

func (e *NumericalError) Error() string {
	return e.msg
}

func numErrorf(obs int, format string, args ...interface{}) *NumericalError {
	return &NumericalError{Obs: obs, msg: fmt.Sprintf(format, args...)}
}

// DimensionError indicates that the dimensions of the parameter vector, a
// design vector, or the dataset disagree with the configured dimension.
// This is a caller programming error and is raised by panic.
type DimensionError struct {
	msg string
}

func (e *DimensionError) Error() string {
	return e.msg
}

func dimPanicf(format string, args ...interface{}) {
	panic(&DimensionError{msg: fmt.Sprintf(format, args...)})
}
