package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pbanos/entropic"
	"github.com/pbanos/entropic/dataset"
	"github.com/spf13/cobra"
)

type growCmdConfig struct {
	*rootCmdConfig
	inputConfig
	classColumn     string
	output          string
	maxDepth        int
	minSamplesSplit int
	workers         int
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of data",
		Long:  `Grow a tree from a set of data to predict a certain class column`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := config.Validate(cmd); err != nil {
				fail(config.logger, 1, err)
			}
			ctx := cmd.Context()
			frame, labels, err := config.readFrame(ctx, config.logger, config.classColumn, false)
			if err != nil {
				fail(config.logger, 2, err)
			}
			if code, err := config.grow(cmd, frame, labels); err != nil {
				fail(config.logger, code, err)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL DB or MongoDB connection URL with data to use to grow the tree (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVar(&(config.table), "table", "", "name of the table to read rows from when the input is an SQL database")
	cmd.PersistentFlags().StringVar(&(config.collection), "collection", "", "name of the collection to read documents from when the input is a MongoDB database")
	cmd.PersistentFlags().StringVarP(&(config.classColumn), "class-column", "k", "", "name of the column the generated tree should predict (defaults to the class_column of the config)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the generated tree will be written in JSON format (defaults to STDOUT)")
	cmd.PersistentFlags().IntVar(&(config.maxDepth), "max-depth", -1, "maximum depth of the tree, unlimited if negative (overrides the config file)")
	cmd.PersistentFlags().IntVar(&(config.minSamplesSplit), "min-samples-split", 0, "minimum number of rows a node needs to be split (overrides the config file)")
	cmd.PersistentFlags().IntVar(&(config.workers), "workers", 0, "number of workers growing the tree concurrently (overrides the config file)")
	return cmd
}

// Validate checks the flags and applies the estimator overrides to the config.
func (gcc *growCmdConfig) Validate(cmd *cobra.Command) error {
	if gcc.classColumn == "" {
		gcc.classColumn = gcc.config.ClassColumn
	}
	if gcc.classColumn == "" {
		return fmt.Errorf("required class-column flag was not set and the config sets no class_column")
	}
	if err := gcc.inputConfig.Validate(); err != nil {
		return err
	}
	estimator := gcc.config.Estimator
	flags := cmd.Flags()
	if flags.Changed("max-depth") {
		if gcc.maxDepth < 0 {
			estimator.MaxDepth = nil
		} else {
			md := gcc.maxDepth
			estimator.MaxDepth = &md
		}
	}
	if flags.Changed("min-samples-split") {
		estimator.MinSamplesSplit = gcc.minSamplesSplit
	}
	if flags.Changed("workers") {
		estimator.Workers = gcc.workers
	}
	return estimator.Validate()
}

/*
grow fits a classifier on the frame and labels over the configured node store
and writes its tree. The node store is closed before returning, so the exit
code and error it returns can be passed to fail.
*/
func (gcc *growCmdConfig) grow(cmd *cobra.Command, frame *dataset.Frame, labels []string) (int, error) {
	ctx := cmd.Context()
	nodeStore, closeStore, err := gcc.config.NodeStore.Open(ctx)
	if err != nil {
		return 3, err
	}
	defer func() {
		if err := closeStore(); err != nil {
			gcc.Errorf("closing node store: %v", err)
		}
	}()
	c, err := gcc.classifier(entropic.WithNodeStore(nodeStore))
	if err != nil {
		return 1, err
	}
	gcc.Logf("Growing tree from %d rows...", len(frame.Rows))
	if err = c.FitFrame(ctx, frame, labels); err != nil {
		return 4, fmt.Errorf("growing tree: %w", err)
	}
	gcc.Logf("Done")
	gcc.Logf("%v", c)
	if err = gcc.save(cmd, c); err != nil {
		return 5, err
	}
	return 0, nil
}

func (gcc *growCmdConfig) save(cmd *cobra.Command, c *entropic.Classifier) error {
	var w io.Writer = cmd.OutOrStdout()
	if gcc.output != "" {
		f, err := os.Create(gcc.output)
		if err != nil {
			return fmt.Errorf("creating file %s to write the tree: %w", gcc.output, err)
		}
		defer f.Close()
		w = f
		gcc.Logf("Writing tree to %s...", gcc.output)
	}
	if err := c.Save(cmd.Context(), w); err != nil {
		return fmt.Errorf("writing tree in JSON: %w", err)
	}
	return nil
}
