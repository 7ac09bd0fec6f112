package entropic

import (
	"context"
	"fmt"

	"github.com/pbanos/entropic/dataset"
	"github.com/pbanos/entropic/tree"
)

/*
Regressor is the decision tree estimator for numerical targets. No impurity
measure is defined for them, so fitting always fails with ErrNotImplemented
and, as it can never be fitted, every query fails with ErrNotFitted.
*/
type Regressor struct {
	config *Config
}

// NewRegressor takes a config and returns a Regressor, or an error wrapping
// ErrInvalidConfig if the config is not valid
func NewRegressor(cfg *Config) (*Regressor, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Regressor{cfg}, nil
}

// Fit validates the shapes of its input and returns ErrNotImplemented
func (r *Regressor) Fit(ctx context.Context, X [][]interface{}, y []float64) error {
	labels := make([]string, len(y))
	p, err := dataset.New(X, labels)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	_, err = Grow(ctx, p, nil, nil, tree.NewMemoryNodeStore(), &RegressionInducer{}, r.config.Workers)
	return err
}

// Predict returns ErrNotFitted
func (r *Regressor) Predict(ctx context.Context, X [][]interface{}) ([]float64, error) {
	return nil, ErrNotFitted
}

// Score returns ErrNotFitted
func (r *Regressor) Score(ctx context.Context, X [][]interface{}, y []float64) (float64, error) {
	return 0.0, ErrNotFitted
}
