package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/pbanos/entropic"
	"github.com/pbanos/entropic/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootCmdConfig struct {
	verbose    bool
	configPath string
	config     *config.Config
	logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := cliParser().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	config := &rootCmdConfig{}
	rootCmd := &cobra.Command{
		Use:   "entropic",
		Short: "entropic is a tool to grow decision trees",
		Long:  `A tool to grow classification trees from your data, test them, and use them to make predictions`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.setup()
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log progress on STDERR")
	rootCmd.PersistentFlags().StringVar(&(config.configPath), "config", "", "path to a YML file with the configuration (defaults to built-in defaults)")
	rootCmd.AddCommand(versionCmd(), growCmd(config), predictCmd(config), askCmd(config), testCmd(config), exportCmd(config), serveCmd(config))
	return rootCmd
}

func (rcc *rootCmdConfig) setup() error {
	c, err := config.ReadFile(rcc.configPath)
	if err != nil {
		return err
	}
	if rcc.verbose {
		c.Log.Level = "debug"
	}
	l, err := c.Log.Logger()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	rcc.config = c
	rcc.logger = logger{l.Sugar()}
	return nil
}

// classifier returns an unfitted classifier configured after the config
// file, with the given options.
func (rcc *rootCmdConfig) classifier(opts ...entropic.Option) (*entropic.Classifier, error) {
	opts = append([]entropic.Option{entropic.WithLogger(rcc.Desugar())}, opts...)
	return entropic.New(rcc.config.Estimator, opts...)
}

// loadClassifier returns a classifier with the tree at the given path loaded.
func (rcc *rootCmdConfig) loadClassifier(ctx context.Context, path string, opts ...entropic.Option) (*entropic.Classifier, error) {
	c, err := rcc.classifier(opts...)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading tree in JSON from %s: %w", path, err)
	}
	defer f.Close()
	rcc.Logf("Loading tree from %s...", path)
	if err = c.Load(ctx, f); err != nil {
		return nil, fmt.Errorf("parsing tree in JSON from %s: %w", path, err)
	}
	return c, nil
}

func fail(l logger, code int, err error) {
	l.Errorw("command failed", zap.Error(err))
	fmt.Fprintln(os.Stderr, err)
	os.Exit(code)
}
