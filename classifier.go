package entropic

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/pbanos/entropic/dataset"
	"github.com/pbanos/entropic/feature"
	"github.com/pbanos/entropic/tree"
	treejson "github.com/pbanos/entropic/tree/json"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

/*
Classifier is a decision tree estimator predicting string classes from rows
of categorical and numerical cells. It must be fitted before it can be
queried; queries on an unfitted classifier fail with ErrNotFitted.

A Classifier is safe for concurrent use: queries can run while a new fit is
in progress, and see the previous tree until it completes.
*/
type Classifier struct {
	config    *Config
	logger    *zap.Logger
	metrics   *Metrics
	nodeStore func() tree.NodeStore
	lock      sync.RWMutex
	tree      *tree.Tree
}

// Option configures a Classifier
type Option func(*Classifier)

// WithLogger sets the logger of the classifier, a no-op logger by default
func WithLogger(l *zap.Logger) Option {
	return func(c *Classifier) {
		c.logger = l
	}
}

// WithMetrics sets the metrics the classifier updates, none by default
func WithMetrics(m *Metrics) Option {
	return func(c *Classifier) {
		c.metrics = m
	}
}

// WithNodeStore sets a function returning the NodeStore every fit grows
// its tree on, a memory NodeStore by default
func WithNodeStore(f func() tree.NodeStore) Option {
	return func(c *Classifier) {
		c.nodeStore = f
	}
}

/*
New takes a config and options and returns an unfitted classifier, or an
error wrapping ErrInvalidConfig if the config is not valid. A nil config
stands for DefaultConfig().
*/
func New(cfg *Config, opts ...Option) (*Classifier, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Classifier{
		config:    cfg,
		logger:    zap.NewNop(),
		nodeStore: tree.NewMemoryNodeStore,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Config returns the config of the classifier
func (c *Classifier) Config() *Config {
	return c.config
}

/*
Fit takes a context, a feature matrix and its aligned labels and fits the
classifier on them. Features get positional names "feature_0",
"feature_1", ...
*/
func (c *Classifier) Fit(ctx context.Context, X [][]interface{}, y []string) error {
	return c.FitFrame(ctx, dataset.NewFrame(nil, X), y)
}

/*
FitFrame takes a context, a frame and the labels aligned with its rows and
fits the classifier on them. The type of every feature is detected from its
column: numerical if all its cells are numbers, categorical otherwise. The
classes of the classifier are the sorted distinct labels.
It returns an error wrapping ErrMalformedInput if the frame and labels have
incompatible shapes.
*/
func (c *Classifier) FitFrame(ctx context.Context, frame *dataset.Frame, y []string) error {
	start := time.Now()
	if frame == nil || len(frame.Rows) == 0 {
		return fmt.Errorf("%w: no rows to fit on", ErrMalformedInput)
	}
	p, err := dataset.New(frame.Rows, y)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	names := frame.ColumnNames()
	if len(names) != p.Width() {
		return fmt.Errorf("%w: %d column names for %d columns", ErrMalformedInput, len(names), p.Width())
	}
	features := make([]feature.Feature, len(names))
	for j, name := range names {
		features[j] = feature.Detect(name, p.Column(j))
	}
	classes := Classes(y)
	inducer := &ClassificationInducer{Config: c.config, Logger: c.logger, Metrics: c.metrics}
	t, err := Grow(ctx, p, features, classes, c.nodeStore(), inducer, c.config.Workers)
	if err != nil {
		return fmt.Errorf("growing tree: %w", err)
	}
	c.lock.Lock()
	c.tree = t
	c.lock.Unlock()
	c.metrics.fitted(time.Since(start))
	c.logger.Info("fitted tree",
		zap.Int("rows", p.Count()),
		zap.Int("features", len(features)),
		zap.Int("classes", len(classes)),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// Classes takes a slice of labels and returns its sorted distinct values
func Classes(y []string) []string {
	seen := make(map[string]bool)
	var classes []string
	for _, l := range y {
		if !seen[l] {
			seen[l] = true
			classes = append(classes, l)
		}
	}
	sort.Strings(classes)
	return classes
}

// Tree returns the fitted tree or ErrNotFitted
func (c *Classifier) Tree() (*tree.Tree, error) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	if c.tree == nil {
		return nil, ErrNotFitted
	}
	return c.tree, nil
}

// Classes returns the ordered classes of the fitted classifier or ErrNotFitted
func (c *Classifier) Classes() ([]string, error) {
	t, err := c.Tree()
	if err != nil {
		return nil, err
	}
	return t.Classes, nil
}

// Features returns the features the classifier was fitted on or ErrNotFitted
func (c *Classifier) Features() ([]feature.Feature, error) {
	t, err := c.Tree()
	if err != nil {
		return nil, err
	}
	return t.Features, nil
}

/*
Predict takes a context and a feature matrix whose columns are in the order
of the features the classifier was fitted on, and returns the predicted class
for every row.
*/
func (c *Classifier) Predict(ctx context.Context, X [][]interface{}) ([]string, error) {
	samples, err := c.positionalSamples(X)
	if err != nil {
		return nil, err
	}
	return c.PredictSamples(ctx, samples)
}

// PredictFrame behaves like Predict but resolves the features of the
// classifier on the frame columns by name, if the frame has column names.
func (c *Classifier) PredictFrame(ctx context.Context, frame *dataset.Frame) ([]string, error) {
	if frame == nil {
		return nil, fmt.Errorf("%w: no frame to predict", ErrMalformedInput)
	}
	if len(frame.Columns) == 0 {
		return c.Predict(ctx, frame.Rows)
	}
	return c.PredictSamples(ctx, frame.Samples())
}

/*
PredictSamples takes a context and a slice of samples and returns the
predicted class for every sample. Samples are routed concurrently by up to
Workers goroutines. The first routing error is returned, wrapped with the
index of its sample.
*/
func (c *Classifier) PredictSamples(ctx context.Context, samples []dataset.Sample) ([]string, error) {
	t, err := c.Tree()
	if err != nil {
		return nil, err
	}
	result := make([]string, len(samples))
	err = c.forEach(ctx, len(samples), func(ctx context.Context, i int) error {
		p, err := t.Predict(ctx, samples[i])
		c.metrics.predicted(err)
		if err != nil {
			return fmt.Errorf("predicting row %d: %w", i, err)
		}
		result[i] = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

/*
PredictProba takes a context and a feature matrix whose columns are in the
order of the features the classifier was fitted on, and returns for every
row its class probabilities, aligned with the classes of the classifier.
*/
func (c *Classifier) PredictProba(ctx context.Context, X [][]interface{}) ([][]float64, error) {
	samples, err := c.positionalSamples(X)
	if err != nil {
		return nil, err
	}
	return c.PredictProbaSamples(ctx, samples)
}

// PredictProbaSamples behaves like PredictSamples but returns class
// probabilities.
func (c *Classifier) PredictProbaSamples(ctx context.Context, samples []dataset.Sample) ([][]float64, error) {
	t, err := c.Tree()
	if err != nil {
		return nil, err
	}
	result := make([][]float64, len(samples))
	err = c.forEach(ctx, len(samples), func(ctx context.Context, i int) error {
		p, err := t.PredictProba(ctx, samples[i])
		c.metrics.predicted(err)
		if err != nil {
			return fmt.Errorf("predicting row %d: %w", i, err)
		}
		result[i] = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

/*
Score takes a context, a feature matrix and its aligned labels and returns
the accuracy of the classifier on them: the fraction of rows whose predicted
class matches their label.
*/
func (c *Classifier) Score(ctx context.Context, X [][]interface{}, y []string) (float64, error) {
	samples, err := c.positionalSamples(X)
	if err != nil {
		return 0.0, err
	}
	return c.ScoreSamples(ctx, samples, y)
}

// ScoreSamples behaves like Score but takes samples
func (c *Classifier) ScoreSamples(ctx context.Context, samples []dataset.Sample, y []string) (float64, error) {
	if len(samples) != len(y) {
		return 0.0, fmt.Errorf("%w: %d rows but %d labels", ErrMalformedInput, len(samples), len(y))
	}
	if len(samples) == 0 {
		return 0.0, fmt.Errorf("%w: no rows to score", ErrMalformedInput)
	}
	predictions, err := c.PredictSamples(ctx, samples)
	if err != nil {
		return 0.0, err
	}
	var hits int
	for i, p := range predictions {
		if p == y[i] {
			hits++
		}
	}
	return float64(hits) / float64(len(y)), nil
}

// Render returns the text rendering of the fitted tree or ErrNotFitted
func (c *Classifier) Render(ctx context.Context) (string, error) {
	t, err := c.Tree()
	if err != nil {
		return "", err
	}
	return t.Render(ctx)
}

func (c *Classifier) String() string {
	s, err := c.Render(context.TODO())
	if err != nil {
		return fmt.Sprintf("ERROR: %s\n", err.Error())
	}
	return s
}

// Graph returns the graph of the fitted tree or ErrNotFitted
func (c *Classifier) Graph(ctx context.Context) (*tree.Graph, error) {
	t, err := c.Tree()
	if err != nil {
		return nil, err
	}
	return t.Graph(ctx)
}

// Save writes the fitted tree as JSON onto the given writer, or returns
// ErrNotFitted
func (c *Classifier) Save(ctx context.Context, w io.Writer) error {
	t, err := c.Tree()
	if err != nil {
		return err
	}
	return treejson.WriteJSONTree(ctx, t, treejson.NewNodeEncodeDecoder(), w)
}

// Load reads a tree written by Save from the given reader onto a new
// NodeStore and makes it the fitted tree of the classifier
func (c *Classifier) Load(ctx context.Context, r io.Reader) error {
	t := tree.New("", c.nodeStore(), nil, nil)
	err := treejson.ReadJSONTree(ctx, t, treejson.NewNodeEncodeDecoder(), r)
	if err != nil {
		return fmt.Errorf("loading tree: %w", err)
	}
	c.lock.Lock()
	c.tree = t
	c.lock.Unlock()
	return nil
}

func (c *Classifier) positionalSamples(X [][]interface{}) ([]dataset.Sample, error) {
	t, err := c.Tree()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(t.Features))
	for i, f := range t.Features {
		names[i] = f.Name()
	}
	samples := make([]dataset.Sample, len(X))
	for i, row := range X {
		if len(row) != len(names) {
			return nil, fmt.Errorf("%w: row %d has %d cells but the classifier has %d features", ErrMalformedInput, i, len(row), len(names))
		}
		samples[i] = dataset.NewRowSample(names, row)
	}
	return samples, nil
}

func (c *Classifier) forEach(ctx context.Context, n int, f func(context.Context, int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.config.Workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			return f(gctx, i)
		})
	}
	return g.Wait()
}
