package main

import (
	"fmt"
	"os"

	"github.com/pbanos/entropic/dataset"
	"github.com/pbanos/entropic/dataset/inputsample"
	"github.com/spf13/cobra"
)

type askCmdConfig struct {
	*rootCmdConfig
	treeInput string
}

func askCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &askCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "ask",
		Short: "Predict the class of a sample answering questions",
		Long:  `Use the loaded tree to predict the class of a sample answering a reduced set of questions about its features`,
		Run: func(cmd *cobra.Command, args []string) {
			if config.treeInput == "" {
				fail(config.logger, 1, fmt.Errorf("required tree flag was not set"))
			}
			ctx := cmd.Context()
			c, err := config.loadClassifier(ctx, config.treeInput)
			if err != nil {
				fail(config.logger, 2, err)
			}
			features, err := c.Features()
			if err != nil {
				fail(config.logger, 2, err)
			}
			sample := inputsample.New(os.Stdin, features, inputsample.NewWriterRequester(cmd.OutOrStdout()))
			samples := []dataset.Sample{sample}
			labels, err := c.PredictSamples(ctx, samples)
			if err != nil {
				fail(config.logger, 3, err)
			}
			probas, err := c.PredictProbaSamples(ctx, samples)
			if err != nil {
				fail(config.logger, 3, err)
			}
			classes, _ := c.Classes()
			fmt.Fprintf(cmd.OutOrStdout(), "Predicted class is %s\n", labels[0])
			for i, class := range classes {
				fmt.Fprintf(cmd.OutOrStdout(), "  p(%s) = %.4f\n", class, probas[0][i])
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree to use will be read and parsed as JSON (required)")
	return cmd
}
