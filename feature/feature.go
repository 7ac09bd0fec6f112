package feature

import (
	"fmt"
	"sort"
)

// Kind identifies the closed set of feature variants.
type Kind string

const (
	// Categorical features split into one branch per observed level.
	Categorical Kind = "categorical"
	// Numerical features split into a "True" and a "False" branch on a threshold.
	Numerical Kind = "numerical"
)

const (
	// BranchTrue labels the branch of a numerical split taken by values at
	// or below the threshold.
	BranchTrue = "True"
	// BranchFalse labels the branch of a numerical split taken by values
	// above the threshold.
	BranchFalse = "False"
)

/*
Feature represents a column of the training data, either categorical or
numerical. Its kind is decided once, when the data is first seen, and never
re-inferred afterwards.
*/
type Feature interface {
	Name() string
	Kind() Kind
	// Domain returns the branch labels a split on the feature produces.
	Domain() []string
	// Valid returns true and nil when the value can be taken by the
	// feature, false and an error describing why otherwise.
	Valid(value interface{}) (bool, error)
}

/*
CategoricalFeature represents a column that can only take a value among a
finite set of levels, the ones observed at fit time.
*/
type CategoricalFeature struct {
	name   string
	levels []string
}

/*
NumericalFeature represents a column holding real numbers.
*/
type NumericalFeature struct {
	name string
}

/*
NewCategoricalFeature takes a name string and a slice of level strings
and returns a categorical feature with the given name and the levels
deduplicated and sorted.
*/
func NewCategoricalFeature(name string, levels []string) *CategoricalFeature {
	seen := make(map[string]bool, len(levels))
	sorted := make([]string, 0, len(levels))
	for _, l := range levels {
		if !seen[l] {
			seen[l] = true
			sorted = append(sorted, l)
		}
	}
	sort.Strings(sorted)
	return &CategoricalFeature{name, sorted}
}

/*
NewNumericalFeature takes a name string and returns a numerical feature with
the given name.
*/
func NewNumericalFeature(name string) *NumericalFeature {
	return &NumericalFeature{name}
}

// Name returns a string with the name of the feature
func (cf *CategoricalFeature) Name() string {
	return cf.name
}

// Kind returns Categorical
func (cf *CategoricalFeature) Kind() Kind {
	return Categorical
}

/*
Domain returns the sorted levels observed for the feature. A categorical split
has one branch per level, even when a partition holds no row for some of them.
*/
func (cf *CategoricalFeature) Domain() []string {
	return cf.levels
}

/*
Valid receives a value and returns true and nil when its level is part of the
feature domain. Otherwise it returns false and an error describing the reason.
*/
func (cf *CategoricalFeature) Valid(value interface{}) (bool, error) {
	level := Level(value)
	i := sort.SearchStrings(cf.levels, level)
	if i < len(cf.levels) && cf.levels[i] == level {
		return true, nil
	}
	return false, fmt.Errorf("categorical feature %s got unknown value %s", cf.name, level)
}

func (cf *CategoricalFeature) String() string {
	return cf.name
}

// Name returns a string with the name of the feature
func (nf *NumericalFeature) Name() string {
	return nf.name
}

// Kind returns Numerical
func (nf *NumericalFeature) Kind() Kind {
	return Numerical
}

// Domain returns the "True" and "False" branch labels.
func (nf *NumericalFeature) Domain() []string {
	return []string{BranchTrue, BranchFalse}
}

/*
Valid receives a value and returns true and nil if it can be read as a real
number, otherwise it returns false and an error describing the reason.
*/
func (nf *NumericalFeature) Valid(value interface{}) (bool, error) {
	if _, ok := Parse(value); !ok {
		return false, fmt.Errorf("numerical feature %s expects a number, got %T value %v", nf.name, value, value)
	}
	return true, nil
}

func (nf *NumericalFeature) String() string {
	return nf.name
}

/*
Detect takes a name and the cells of a column and returns the feature
describing it: a NumericalFeature if every cell holds a Go number, a
CategoricalFeature with the stringified cells as levels otherwise.
*/
func Detect(name string, column []interface{}) Feature {
	numeric := len(column) > 0
	for _, v := range column {
		if _, ok := Numeric(v); !ok {
			numeric = false
			break
		}
	}
	if numeric {
		return NewNumericalFeature(name)
	}
	levels := make([]string, 0, len(column))
	for _, v := range column {
		levels = append(levels, Level(v))
	}
	return NewCategoricalFeature(name, levels)
}
