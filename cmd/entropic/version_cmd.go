package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	// VersionMajor is the major number in entropic's version
	VersionMajor = 0
	// VersionMinor is the minor number in entropic's version
	VersionMinor = 1
	// VersionPatch is the patch number in entropic's version
	VersionPatch = 0
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of entropic",
		Long:  `All software has versions. This is entropic's`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "entropic v%d.%d.%d\n", VersionMajor, VersionMinor, VersionPatch)
		},
	}
}
