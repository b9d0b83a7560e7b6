package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/coreidcc/checkmk/types"
)

// VersionCommand returns the version command. It must not touch COM, so it
// stays usable on hosts where WMI is broken.
func VersionCommand(commit string) *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show version information",
		Action: func(c *cli.Context) error {
			fmt.Fprintf(c.App.Writer, "wmiq %s (commit: %s)\n", types.Version, commit)
			return nil
		},
	}
}
