package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "none"
)

// SetVersionInfo stores build-time version metadata.
func SetVersionInfo(version, commit string) {
	buildVersion = version
	buildCommit = commit
}

func versionString() string {
	return buildVersion
}

// Version returns the version subcommand.
func Version() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("bsdsetup %s (commit %s)\n", buildVersion, buildCommit)
		},
	}
}
