package main

import (
	"encoding/json"
	"fmt"

	"github.com/pbanos/entropic/tree"
	"github.com/spf13/cobra"
)

type exportCmdConfig struct {
	*rootCmdConfig
	treeInput string
	format    string
}

func exportCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &exportCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a tree for humans or graph tools",
		Long:  `Export the loaded tree as indented text, as a Graphviz DOT digraph or as a JSON graph of nodes and edges`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := config.Validate(); err != nil {
				fail(config.logger, 1, err)
			}
			ctx := cmd.Context()
			c, err := config.loadClassifier(ctx, config.treeInput)
			if err != nil {
				fail(config.logger, 2, err)
			}
			w := cmd.OutOrStdout()
			if config.format == "text" {
				s, err := c.Render(ctx)
				if err != nil {
					fail(config.logger, 3, err)
				}
				fmt.Fprint(w, s)
				return
			}
			g, err := c.Graph(ctx)
			if err != nil {
				fail(config.logger, 3, err)
			}
			if config.format == "dot" {
				err = tree.WriteDOT(w, g)
			} else {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				err = enc.Encode(g)
			}
			if err != nil {
				fail(config.logger, 4, err)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree to export will be read and parsed as JSON (required)")
	cmd.PersistentFlags().StringVarP(&(config.format), "format", "f", "text", "format of the export: text, dot or json")
	return cmd
}

func (ecc *exportCmdConfig) Validate() error {
	if ecc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	switch ecc.format {
	case "text", "dot", "json":
		return nil
	}
	return fmt.Errorf("unknown format %q, expected text, dot or json", ecc.format)
}
