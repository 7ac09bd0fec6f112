package entropic

// EstimatorError represents an error returned by the estimators
type EstimatorError string

// ErrNotFitted is returned when querying an estimator that has not been fitted
const ErrNotFitted = EstimatorError("estimator not fitted")

// ErrMalformedInput is wrapped by the errors returned when the rows or
// labels given to an estimator have incompatible shapes
const ErrMalformedInput = EstimatorError("malformed input")

// ErrNotImplemented is returned by the operations that have no implementation,
// like growing regression trees
const ErrNotImplemented = EstimatorError("not implemented")

// ErrInvalidConfig is wrapped by the errors returned for configs with values
// out of range
const ErrInvalidConfig = EstimatorError("invalid config")

func (ee EstimatorError) Error() string {
	return string(ee)
}
