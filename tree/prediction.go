package tree

import (
	"fmt"
)

// PredictionError represents an error related with predictions
type PredictionError string

/*
ErrUnseenValue is wrapped by the RoutingError returned when a sample holds a
categorical value that was never observed for the feature at fit time.
*/
const ErrUnseenValue = PredictionError("value not observed at fit time")

/*
ErrNotNumeric is wrapped by the RoutingError returned when a sample holds a
value that is not a number for a feature split on a threshold.
*/
const ErrNotNumeric = PredictionError("value is not a number")

/*
ErrNodeNotFound is returned when a node referenced by the tree cannot be
found on its NodeStore.
*/
const ErrNodeNotFound = PredictionError("node not found")

func (pe PredictionError) Error() string {
	return string(pe)
}

/*
RoutingError is returned when a sample cannot be routed through a split node.
It names the feature of the node and the offending value.
*/
type RoutingError struct {
	Feature string
	Value   interface{}
	Err     error
}

func (re *RoutingError) Error() string {
	return fmt.Sprintf("routing value %v of feature %s: %v", re.Value, re.Feature, re.Err)
}

func (re *RoutingError) Unwrap() error {
	return re.Err
}

/*
Probabilities takes a node and returns its class distribution: its Value
divided by its NSamples. It returns nil for a node without samples.
*/
func Probabilities(n *Node) []float64 {
	if n.NSamples == 0 {
		return nil
	}
	result := make([]float64, len(n.Value))
	for i, c := range n.Value {
		result[i] = float64(c) / float64(n.NSamples)
	}
	return result
}
