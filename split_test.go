package entropic

import (
	"testing"

	"github.com/pbanos/entropic/dataset"
	"github.com/pbanos/entropic/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func partition(t *testing.T, rows [][]interface{}, labels ...string) *dataset.Partition {
	t.Helper()
	p, err := dataset.New(rows, labels)
	require.NoError(t, err)
	return p
}

func TestCategoricalGain(t *testing.T) {
	p := partition(t, [][]interface{}{{"A"}, {"A"}, {"B"}, {"B"}}, "yes", "yes", "no", "no")
	assert.InDelta(t, 1.0, CategoricalGain(p, 0), 1e-12)

	p = partition(t, [][]interface{}{{"A"}, {"B"}, {"A"}, {"B"}}, "yes", "yes", "no", "no")
	assert.InDelta(t, 0.0, CategoricalGain(p, 0), 1e-12)
}

func TestOptimalThreshold(t *testing.T) {
	threshold, weighted := OptimalThreshold([]interface{}{1.0, 2.0, 3.0, 4.0}, []string{"a", "a", "b", "b"})
	assert.Equal(t, 3.0, threshold)
	assert.Equal(t, 0.0, weighted)
}

func TestOptimalThresholdKeepsFirstMinimum(t *testing.T) {
	// every candidate leaves the labels as mixed as they were
	threshold, weighted := OptimalThreshold([]interface{}{5, 1, 5, 1}, []string{"a", "b", "b", "a"})
	assert.Equal(t, 5.0, threshold)
	assert.InDelta(t, 1.0, weighted, 1e-12)
}

func TestNumericalGain(t *testing.T) {
	p := partition(t, [][]interface{}{{4.0}, {1.0}, {3.0}, {2.0}}, "b", "a", "b", "a")
	gain, threshold := NumericalGain(p, 0)
	assert.InDelta(t, 1.0, gain, 1e-12)
	assert.Equal(t, 3.0, threshold)
}

func TestBestSplit(t *testing.T) {
	features := []feature.Feature{
		feature.NewCategoricalFeature("noise", []string{"x", "y"}),
		feature.NewNumericalFeature("signal"),
		feature.NewCategoricalFeature("copy", []string{"p", "q"}),
	}
	p := partition(t, [][]interface{}{
		{"x", 1.0, "p"},
		{"y", 2.0, "p"},
		{"x", 3.0, "q"},
		{"y", 4.0, "q"},
	}, "a", "a", "b", "b")

	split := BestSplit(p, features)
	assert.Equal(t, 1, split.Column, "ties keep the first column with the highest gain")
	require.NotNil(t, split.Threshold)
	assert.Equal(t, 3.0, *split.Threshold)
	assert.InDelta(t, 1.0, split.Gain, 1e-12)

	split = BestSplit(p.Without(1), []feature.Feature{features[0], features[2]})
	assert.Equal(t, 1, split.Column)
	assert.Nil(t, split.Threshold)
}
