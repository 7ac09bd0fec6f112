package entropic

import (
	"github.com/pbanos/entropic/dataset"
	"github.com/pbanos/entropic/feature"
	"gonum.org/v1/gonum/floats"
)

/*
Split represents the best way found to split a partition: the column to
split on, the information gain it yields and, for numerical columns, the
threshold that achieves it.
*/
type Split struct {
	Column    int
	Gain      float64
	Threshold *float64
}

/*
CategoricalGain takes a partition and the index of a categorical column and
returns the information gain of splitting the partition on every level of
the column present in it.
*/
func CategoricalGain(p *dataset.Partition, j int) float64 {
	var levels []string
	groups := make(map[string][]string)
	column := p.Column(j)
	labels := p.Labels()
	for i, v := range column {
		l := feature.Level(v)
		if _, ok := groups[l]; !ok {
			levels = append(levels, l)
		}
		groups[l] = append(groups[l], labels[i])
	}
	gain := dataset.Entropy(labels)
	n := float64(len(labels))
	for _, l := range levels {
		g := groups[l]
		gain -= float64(len(g)) / n * dataset.Entropy(g)
	}
	return gain
}

/*
OptimalThreshold takes the cells of a numerical column and their aligned
labels and returns the threshold minimizing the weighted entropy of the
labels split into values strictly below the threshold and the rest, along
with that weighted entropy. Every value of the column is a candidate, tried
in row order, and the first candidate reaching the minimum wins.
It panics on an empty column.
*/
func OptimalThreshold(column []interface{}, labels []string) (float64, float64) {
	candidates := make([]float64, len(column))
	weighted := make([]float64, len(column))
	for i, v := range column {
		candidates[i], _ = feature.Parse(v)
		weighted[i] = weightedEntropy(column, labels, feature.LessThan(candidates[i]))
	}
	best := floats.MinIdx(weighted)
	return candidates[best], weighted[best]
}

/*
NumericalGain takes a partition and the index of a numerical column and
returns the information gain of splitting the partition on the optimal
threshold for the column, along with the threshold.
*/
func NumericalGain(p *dataset.Partition, j int) (float64, float64) {
	labels := p.Labels()
	threshold, weighted := OptimalThreshold(p.Column(j), labels)
	return dataset.Entropy(labels) - weighted, threshold
}

/*
BestSplit takes a non-empty partition and the features of its columns and
returns the split on the column with the highest information gain, the first
such column on ties.
*/
func BestSplit(p *dataset.Partition, features []feature.Feature) *Split {
	gains := make([]float64, len(features))
	thresholds := make([]*float64, len(features))
	for j, f := range features {
		if f.Kind() == feature.Numerical {
			gain, threshold := NumericalGain(p, j)
			gains[j] = gain
			thresholds[j] = &threshold
		} else {
			gains[j] = CategoricalGain(p, j)
		}
	}
	best := floats.MaxIdx(gains)
	return &Split{Column: best, Gain: gains[best], Threshold: thresholds[best]}
}

func weightedEntropy(column []interface{}, labels []string, c feature.Criterion) float64 {
	var in, out []string
	for i, v := range column {
		if c.SatisfiedBy(v) {
			in = append(in, labels[i])
		} else {
			out = append(out, labels[i])
		}
	}
	n := float64(len(labels))
	return float64(len(in))/n*dataset.Entropy(in) + float64(len(out))/n*dataset.Entropy(out)
}
