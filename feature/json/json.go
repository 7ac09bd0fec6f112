/*
Package json provides the JSON encoding of features, used to persist the
features a tree was fitted on alongside the tree itself.
*/
package json

import (
	"encoding/json"
	"fmt"

	"github.com/pbanos/entropic/feature"
)

type jsonFeature struct {
	Name   string       `json:"name"`
	Kind   feature.Kind `json:"kind"`
	Levels []string     `json:"levels,omitempty"`
}

// EncodeFeatures takes a slice of features and returns their JSON array
// encoding or an error.
// Every feature is encoded as a JSON object with a "name" and a "kind"
// property, "categorical" or "numerical". Categorical features carry their
// sorted levels in a "levels" property.
func EncodeFeatures(features []feature.Feature) ([]byte, error) {
	jfs := make([]*jsonFeature, 0, len(features))
	for _, f := range features {
		jf, err := toJSONFeature(f)
		if err != nil {
			return nil, err
		}
		jfs = append(jfs, jf)
	}
	return json.Marshal(jfs)
}

// DecodeFeatures takes a slice of bytes holding a JSON array as produced
// by EncodeFeatures and returns the features in it or an error.
func DecodeFeatures(data []byte) ([]feature.Feature, error) {
	var jfs []*jsonFeature
	err := json.Unmarshal(data, &jfs)
	if err != nil {
		return nil, err
	}
	features := make([]feature.Feature, 0, len(jfs))
	for _, jf := range jfs {
		f, err := jf.Feature()
		if err != nil {
			return nil, err
		}
		features = append(features, f)
	}
	return features, nil
}

func toJSONFeature(f feature.Feature) (*jsonFeature, error) {
	switch f := f.(type) {
	case *feature.CategoricalFeature:
		return &jsonFeature{Name: f.Name(), Kind: feature.Categorical, Levels: f.Domain()}, nil
	case *feature.NumericalFeature:
		return &jsonFeature{Name: f.Name(), Kind: feature.Numerical}, nil
	}
	return nil, fmt.Errorf("unknown feature type %T for feature %v", f, f.Name())
}

func (jf *jsonFeature) Feature() (feature.Feature, error) {
	if jf.Name == "" {
		return nil, fmt.Errorf("feature with no name")
	}
	switch jf.Kind {
	case feature.Categorical:
		return feature.NewCategoricalFeature(jf.Name, jf.Levels), nil
	case feature.Numerical:
		return feature.NewNumericalFeature(jf.Name), nil
	}
	return nil, fmt.Errorf("unknown kind %q for feature %s", jf.Kind, jf.Name)
}
