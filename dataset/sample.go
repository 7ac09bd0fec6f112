package dataset

import (
	"context"
	"fmt"

	"github.com/pbanos/entropic/feature"
)

/*
Sample represents an item whose class is to be predicted.

Its ValueFor method returns the value of the sample corresponding to the feature
passed as parameter, looked up by the feature name.
*/
type Sample interface {
	ValueFor(context.Context, feature.Feature) (interface{}, error)
}

type sample struct {
	featureValues map[string]interface{}
}

type rowSample struct {
	index map[string]int
	row   []interface{}
}

/*
NewSample takes a map of feature string names to values and returns
a sample.
*/
func NewSample(featureValues map[string]interface{}) Sample {
	return &sample{featureValues}
}

/*
NewRowSample takes a slice of column names and a row of cells aligned with
them and returns a sample resolving each feature to the cell of the column
with its name, regardless of its position.
*/
func NewRowSample(names []string, row []interface{}) Sample {
	index := make(map[string]int, len(names))
	for i, n := range names {
		index[n] = i
	}
	return &rowSample{index, row}
}

func (s *sample) ValueFor(_ context.Context, f feature.Feature) (interface{}, error) {
	v, ok := s.featureValues[f.Name()]
	if !ok {
		return nil, fmt.Errorf("sample has no value for feature %s", f.Name())
	}
	return v, nil
}

func (s *sample) String() string {
	return fmt.Sprintf("[%v]", s.featureValues)
}

func (rs *rowSample) ValueFor(_ context.Context, f feature.Feature) (interface{}, error) {
	i, ok := rs.index[f.Name()]
	if !ok || i >= len(rs.row) {
		return nil, fmt.Errorf("sample has no value for feature %s", f.Name())
	}
	return rs.row[i], nil
}

func (rs *rowSample) String() string {
	return fmt.Sprintf("%v", rs.row)
}
