package dataset

import (
	"context"
	"math"
	"testing"

	"github.com/pbanos/entropic/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weather(t *testing.T) *Partition {
	t.Helper()
	p, err := New([][]interface{}{
		{"sunny", 85.0},
		{"sunny", 80.0},
		{"overcast", 83.0},
		{"rain", 70.0},
		{"rain", 68.0},
	}, []string{"no", "no", "yes", "yes", "no"})
	require.NoError(t, err)
	return p
}

func TestNewRejectsMalformedInput(t *testing.T) {
	_, err := New([][]interface{}{{1}, {2}}, []string{"a"})
	assert.ErrorContains(t, err, "2 rows but 1 labels")

	_, err = New([][]interface{}{{1, 2}, {2}}, []string{"a", "b"})
	assert.ErrorContains(t, err, "row 1 has 1 cells")
}

func TestEntropy(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		want   float64
	}{
		{"empty", nil, 0},
		{"single class", []string{"a", "a", "a"}, 0},
		{"balanced pair", []string{"a", "b", "a", "b"}, 1},
		{"four even classes", []string{"a", "b", "c", "d"}, 2},
		{"skewed", []string{"a", "a", "a", "b"}, -(0.75*math.Log2(0.75) + 0.25*math.Log2(0.25))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Entropy(tt.labels), 1e-12)
		})
	}
	assert.Equal(t, 0.0, Entropy([]string{"x"}))
}

func TestEntropyBounds(t *testing.T) {
	labels := []string{"a", "b", "b", "c", "c", "c", "d"}
	h := Entropy(labels)
	assert.GreaterOrEqual(t, h, 0.0)
	assert.LessOrEqual(t, h, math.Log2(4))
}

func TestModeBreaksTiesByFirstEncountered(t *testing.T) {
	assert.Equal(t, "b", Mode([]string{"b", "a", "a", "b"}))
	assert.Equal(t, "a", Mode([]string{"b", "a", "a"}))
	assert.Equal(t, "", Mode(nil))
}

func TestClassCounts(t *testing.T) {
	p := weather(t)
	assert.Equal(t, []int{3, 2}, p.ClassCounts([]string{"no", "yes"}))
	assert.Equal(t, []int{0, 0}, ClassCounts(nil, []string{"no", "yes"}))
	assert.Equal(t, 2, p.Distinct())
	assert.Equal(t, "no", p.Mode())
}

func TestSplitAndSubset(t *testing.T) {
	p := weather(t)

	in, out := p.Split(1, feature.LessThan(80))
	assert.Equal(t, 2, in.Count())
	assert.Equal(t, 3, out.Count())
	assert.Equal(t, []string{"yes", "no"}, in.Labels())
	assert.Equal(t, 2, in.Width())

	sunny := p.SubsetWith(0, feature.Equals("sunny"))
	assert.Equal(t, 2, sunny.Count())

	none := p.SubsetWith(0, feature.Equals("snow"))
	assert.Equal(t, 0, none.Count())
	assert.Equal(t, 2, none.Width())
}

func TestWithoutCopiesRows(t *testing.T) {
	p := weather(t)
	w := p.Without(0)
	require.Equal(t, 1, w.Width())
	assert.Equal(t, []interface{}{85.0}, w.Row(0))
	assert.Equal(t, []interface{}{"sunny", 85.0}, p.Row(0))
	assert.Equal(t, []interface{}{85.0, 80.0, 83.0, 70.0, 68.0}, w.Column(0))
}

func TestUniform(t *testing.T) {
	p, err := New([][]interface{}{{"a", 1.0}, {"a", 1}, {"a", 1.0}}, []string{"x", "y", "x"})
	require.NoError(t, err)
	assert.True(t, p.Uniform())
	assert.False(t, weather(t).Uniform())
	assert.True(t, p.Without(0).Without(0).Uniform())
}

func TestFrameSamplesResolveByName(t *testing.T) {
	f := NewFrame(nil, [][]interface{}{{"A", 3.5}})
	assert.Equal(t, []string{"feature_0", "feature_1"}, f.ColumnNames())
	s := f.Samples()[0]
	v, err := s.ValueFor(context.Background(), feature.NewNumericalFeature("feature_1"))
	require.NoError(t, err)
	assert.Equal(t, 3.5, v)
	_, err = s.ValueFor(context.Background(), feature.NewNumericalFeature("feature_9"))
	assert.Error(t, err)
}
