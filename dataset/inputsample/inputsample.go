/*
Package inputsample provides an implementation of dataset.Sample that is read
from an io.Reader, asking for every value as it is needed.
*/
package inputsample

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pbanos/entropic/dataset"
	"github.com/pbanos/entropic/feature"
)

/*
readSample represents a sample whose feature values
are retrieved from a reader. A feature value will be
requested using a FeatureValueRequester before reading it.
*/
type readSample struct {
	obtainedValues        map[string]interface{}
	scanner               *bufio.Scanner
	featureValueRequester FeatureValueRequester
	features              []feature.Feature
}

/*
FeatureValueRequester represents a way to ask
for feature values and reject the given values.
*/
type FeatureValueRequester interface {
	RequestValueFor(feature.Feature) error
	RejectValueFor(feature.Feature, interface{}) error
}

type writerRequester struct {
	w io.Writer
}

/*
New takes an io.Reader, a slice of features and a
FeatureValueRequester and returns a Sample.

The returned Sample ValueFor method reads feature values first
requesting them with the given FeatureValueRequester and
then parsing the values from the reader, one per line.
Values are only requested when the sample is routed through a
node splitting on their feature, and requested once.

For a numerical feature, lines will be read from the
reader until a line containing a valid number is found.

For a categorical feature, lines will be read from the
reader until a line with one of the levels of the feature
is found.

For both kinds of feature, non accepted values will be
rejected with the FeatureValueRequester's RejectValueFor method.
*/
func New(r io.Reader, features []feature.Feature, featureValueRequester FeatureValueRequester) dataset.Sample {
	scanner := bufio.NewScanner(r)
	return &readSample{make(map[string]interface{}), scanner, featureValueRequester, features}
}

/*
NewWriterRequester takes an io.Writer and returns a FeatureValueRequester that
writes a prompt onto it for every requested value, listing the levels of
categorical features, and a notice for every rejected value.
*/
func NewWriterRequester(w io.Writer) FeatureValueRequester {
	return &writerRequester{w}
}

func (rs *readSample) ValueFor(_ context.Context, f feature.Feature) (interface{}, error) {
	value, ok := rs.obtainedValues[f.Name()]
	if ok {
		return value, nil
	}
	var featureWithInfo feature.Feature
	for _, feature := range rs.features {
		if f.Name() == feature.Name() {
			featureWithInfo = feature
		}
	}
	if featureWithInfo == nil {
		return nil, fmt.Errorf("have no information about feature %s, do not know how to read its value", f.Name())
	}
	err := rs.featureValueRequester.RequestValueFor(featureWithInfo)
	if err != nil {
		return nil, err
	}
	for rs.scanner.Scan() {
		line := strings.TrimSpace(rs.scanner.Text())
		if value, ok := parse(featureWithInfo, line); ok {
			rs.obtainedValues[f.Name()] = value
			return value, nil
		}
		err = rs.featureValueRequester.RejectValueFor(featureWithInfo, line)
		if err != nil {
			return nil, err
		}
	}
	err = rs.scanner.Err()
	if err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("EOF when requesting value for %s", f.Name())
}

func parse(f feature.Feature, line string) (interface{}, bool) {
	if ok, _ := f.Valid(line); !ok {
		return nil, false
	}
	if f.Kind() == feature.Numerical {
		return feature.Parse(line)
	}
	return line, true
}

func (wr *writerRequester) RequestValueFor(f feature.Feature) error {
	var err error
	if f.Kind() == feature.Numerical {
		_, err = fmt.Fprintf(wr.w, "Value for %s (a number): ", f.Name())
	} else {
		_, err = fmt.Fprintf(wr.w, "Value for %s (%s): ", f.Name(), strings.Join(f.Domain(), ", "))
	}
	return err
}

func (wr *writerRequester) RejectValueFor(f feature.Feature, v interface{}) error {
	_, err := fmt.Fprintf(wr.w, "Invalid value %q for %s, try again: ", v, f.Name())
	return err
}
