package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pbanos/entropic"
	"github.com/pbanos/entropic/dataset"
	"github.com/pbanos/entropic/dataset/csv"
	"github.com/pbanos/entropic/dataset/mongodataset"
	"github.com/spf13/cobra"
	mgo "gopkg.in/mgo.v2"
)

type predictCmdConfig struct {
	*rootCmdConfig
	inputConfig
	treeInput        string
	output           string
	predictionColumn string
	proba            bool
	mongoOutput      string
	outputCollection string
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the class of a set of rows",
		Long:  `Use the loaded tree to predict the class of every row in a set of data, writing the rows along their predictions`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := config.Validate(); err != nil {
				fail(config.logger, 1, err)
			}
			ctx := cmd.Context()
			c, err := config.loadClassifier(ctx, config.treeInput)
			if err != nil {
				fail(config.logger, 2, err)
			}
			frame, _, err := config.readFrame(ctx, config.logger, "", true)
			if err != nil {
				fail(config.logger, 3, err)
			}
			config.Logf("Predicting %d rows...", len(frame.Rows))
			labels, err := c.PredictFrame(ctx, frame)
			if err != nil {
				fail(config.logger, 4, err)
			}
			var probas [][]float64
			if config.proba {
				probas, err = c.PredictProbaSamples(ctx, frame.Samples())
				if err != nil {
					fail(config.logger, 4, err)
				}
			}
			if config.mongoOutput != "" {
				err = config.writeMongo(cmd, frame, labels)
			} else {
				err = config.writeCSV(cmd, c, frame, labels, probas)
			}
			if err != nil {
				fail(config.logger, 5, err)
			}
			config.Logf("Done")
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree to use will be read and parsed as JSON (required)")
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL DB or MongoDB connection URL with the rows to predict (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVar(&(config.table), "table", "", "name of the table to read rows from when the input is an SQL database")
	cmd.PersistentFlags().StringVar(&(config.collection), "collection", "", "name of the collection to read documents from when the input is a MongoDB database")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the rows and their predictions will be written in CSV format (defaults to STDOUT)")
	cmd.PersistentFlags().StringVar(&(config.predictionColumn), "prediction-column", "prediction", "name of the column holding the predictions in the output")
	cmd.PersistentFlags().BoolVar(&(config.proba), "proba", false, "add a column with the probability of every class to the CSV output")
	cmd.PersistentFlags().StringVar(&(config.mongoOutput), "mongo-output", "", "MongoDB connection URL to write the rows and their predictions to instead of CSV")
	cmd.PersistentFlags().StringVar(&(config.outputCollection), "output-collection", "predictions", "name of the collection to write documents to when writing to MongoDB")
	return cmd
}

func (pcc *predictCmdConfig) Validate() error {
	if pcc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	if pcc.mongoOutput != "" && pcc.proba {
		return fmt.Errorf("the proba flag is not supported with MongoDB output")
	}
	return pcc.inputConfig.Validate()
}

func (pcc *predictCmdConfig) writeCSV(cmd *cobra.Command, c *entropic.Classifier, frame *dataset.Frame, labels []string, probas [][]float64) error {
	var w io.Writer = cmd.OutOrStdout()
	if pcc.output != "" {
		f, err := os.Create(pcc.output)
		if err != nil {
			return fmt.Errorf("creating file %s to write the predictions: %w", pcc.output, err)
		}
		defer f.Close()
		w = f
	}
	header := append(append([]string{}, frame.ColumnNames()...), pcc.predictionColumn)
	if probas != nil {
		classes, err := c.Classes()
		if err != nil {
			return err
		}
		for _, class := range classes {
			header = append(header, fmt.Sprintf("p(%s)", class))
		}
	}
	records := make([][]string, len(frame.Rows))
	for i, row := range frame.Rows {
		record := make([]string, 0, len(header))
		for _, v := range row {
			record = append(record, fmt.Sprint(v))
		}
		record = append(record, labels[i])
		if probas != nil {
			for _, p := range probas[i] {
				record = append(record, strconv.FormatFloat(p, 'f', -1, 64))
			}
		}
		records[i] = record
	}
	return csv.WriteRecords(w, header, records)
}

func (pcc *predictCmdConfig) writeMongo(cmd *cobra.Command, frame *dataset.Frame, labels []string) error {
	session, err := mgo.Dial(pcc.mongoOutput)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", pcc.mongoOutput, err)
	}
	defer session.Close()
	n, err := mongodataset.Write(cmd.Context(), session, pcc.outputCollection, frame, labels, pcc.predictionColumn)
	if err != nil {
		return err
	}
	pcc.Logf("Wrote %d documents to collection %s", n, pcc.outputCollection)
	return nil
}
