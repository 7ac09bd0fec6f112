package main

import (
	"fmt"

	"github.com/pbanos/entropic"
	"github.com/pbanos/entropic/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

type serveCmdConfig struct {
	*rootCmdConfig
	treeInput string
	addr      string
}

func serveCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &serveCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve predictions over HTTP",
		Long:  `Serve predictions, renders and metrics of the loaded tree over HTTP until interrupted`,
		Run: func(cmd *cobra.Command, args []string) {
			if config.treeInput == "" {
				fail(config.logger, 1, fmt.Errorf("required tree flag was not set"))
			}
			ctx := cmd.Context()
			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			c, err := config.loadClassifier(ctx, config.treeInput, entropic.WithMetrics(entropic.NewMetrics(reg)))
			if err != nil {
				fail(config.logger, 2, err)
			}
			addr := config.config.Server.Addr
			if config.addr != "" {
				addr = config.addr
			}
			s := server.New(c, config.Desugar(), reg)
			if err = s.Run(ctx, addr); err != nil {
				fail(config.logger, 3, err)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree to serve will be read and parsed as JSON (required)")
	cmd.PersistentFlags().StringVarP(&(config.addr), "addr", "a", "", "address to listen on (overrides the config file)")
	return cmd
}
