package entropic

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/pbanos/entropic/dataset"
)

/*
Config holds the hyperparameters of a tree estimator.
*/
type Config struct {
	// MaxDepth is the depth at which nodes become leaves.
	// Nil leaves the depth of the tree unbounded.
	MaxDepth *int `yaml:"max_depth" json:"max_depth,omitempty" validate:"omitempty,min=0"`
	// MinSamplesSplit is the minimum number of training
	// rows a node needs to be split.
	MinSamplesSplit int `yaml:"min_samples_split" json:"min_samples_split" validate:"min=2"`
	// Workers is the number of goroutines growing the
	// tree and predicting batches of rows.
	Workers int `yaml:"workers" json:"workers" validate:"min=1"`
}

// DefaultConfig returns a config with an unbounded depth,
// a MinSamplesSplit of 2 and a single worker.
func DefaultConfig() *Config {
	return &Config{MinSamplesSplit: 2, Workers: 1}
}

var validate = validator.New()

// Validate returns an error wrapping ErrInvalidConfig if any of
// the config values is out of range.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

/*
stop takes the partition reaching a node, the labels reaching its parent and
the depth of the node and returns whether the node must be a leaf, the class
it must predict and the name of the rule that made it one. The rules are
checked in order:
  - a single class remains
  - no rows remain, the parent labels decide the class
  - every row holds the same cells
  - the maximum depth is reached
  - fewer rows than MinSamplesSplit remain
*/
func (c *Config) stop(p *dataset.Partition, parentLabels []string, depth int) (bool, string, string) {
	switch {
	case p.Distinct() == 1:
		return true, p.Labels()[0], "pure"
	case p.Count() == 0:
		return true, dataset.Mode(parentLabels), "empty"
	case p.Uniform():
		return true, p.Mode(), "uniform"
	case c.MaxDepth != nil && depth >= *c.MaxDepth:
		return true, p.Mode(), "max_depth"
	case p.Count() < c.MinSamplesSplit:
		return true, p.Mode(), "min_samples_split"
	}
	return false, "", ""
}
