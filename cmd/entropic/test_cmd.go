package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type testCmdConfig struct {
	*rootCmdConfig
	inputConfig
	treeInput   string
	classColumn string
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a tree",
		Long:  `Test the performance of a tree against a test data set`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := config.Validate(); err != nil {
				fail(config.logger, 1, err)
			}
			ctx := cmd.Context()
			c, err := config.loadClassifier(ctx, config.treeInput)
			if err != nil {
				fail(config.logger, 2, err)
			}
			frame, labels, err := config.readFrame(ctx, config.logger, config.classColumn, true)
			if err != nil {
				fail(config.logger, 3, err)
			}
			config.Logf("Testing tree against testset with %d samples...", len(frame.Rows))
			predictions, err := c.PredictSamples(ctx, frame.Samples())
			if err != nil {
				fail(config.logger, 4, fmt.Errorf("testing tree: %w", err))
			}
			config.Logf("Done")
			var errorCount int
			for i, p := range predictions {
				if p != labels[i] {
					errorCount++
				}
			}
			successRate := 1.0
			if len(labels) > 0 {
				successRate = float64(len(labels)-errorCount) / float64(len(labels))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%f success rate, mispredicted %d of %d samples\n", successRate, errorCount, len(labels))
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree to test will be read and parsed as JSON (required)")
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL DB or MongoDB connection URL with data to use to test the tree (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVar(&(config.table), "table", "", "name of the table to read rows from when the input is an SQL database")
	cmd.PersistentFlags().StringVar(&(config.collection), "collection", "", "name of the collection to read documents from when the input is a MongoDB database")
	cmd.PersistentFlags().StringVarP(&(config.classColumn), "class-column", "k", "", "name of the column the tree predicts (defaults to the class_column of the config)")
	return cmd
}

func (tcc *testCmdConfig) Validate() error {
	if tcc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	if tcc.classColumn == "" {
		tcc.classColumn = tcc.config.ClassColumn
	}
	if tcc.classColumn == "" {
		return fmt.Errorf("required class-column flag was not set and the config sets no class_column")
	}
	return tcc.inputConfig.Validate()
}
