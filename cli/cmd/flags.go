// Package cmd provides CLI commands for the wmiq binary.
package cmd

import "github.com/urfave/cli/v2"

// Shared flags for all commands.
var (
	// NamespaceFlag selects the WMI namespace path.
	NamespaceFlag = &cli.StringFlag{
		Name:    "namespace",
		Aliases: []string{"n"},
		Usage:   `WMI namespace path (default Root\cimv2)`,
	}

	// ConfigFlag names a wmiq.yaml config file.
	ConfigFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to wmiq.yaml config file",
	}

	// FormatFlag selects output format: jsonl, yaml, msgpack.
	FormatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: jsonl, yaml, msgpack",
	}

	// OutputFlag redirects rendered records to a file instead of stdout.
	OutputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Write records to this file instead of stdout",
	}

	// VerboseFlag enables debug logging to stderr.
	VerboseFlag = &cli.BoolFlag{
		Name:  "verbose",
		Usage: "Enable debug logging",
	}

	// StatsFlag prints session counters to stderr after the dump.
	StatsFlag = &cli.BoolFlag{
		Name:  "stats",
		Usage: "Print session counters to stderr when done",
	}
)

// QueryFlags returns the shared flags for the record-dumping commands.
func QueryFlags() []cli.Flag {
	return []cli.Flag{
		NamespaceFlag,
		ConfigFlag,
		FormatFlag,
		OutputFlag,
		VerboseFlag,
		StatsFlag,
	}
}
