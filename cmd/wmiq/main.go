// Package main provides the wmiq CLI entrypoint, a diagnostic tool for the
// WMI client: it runs one query or class enumeration and dumps the records.
//
// Usage:
//
//	wmiq <command> [options] [args]
//
// Exit codes:
//   - 0: success
//   - 1: protocol error from the WMI service
//   - 2: advance timeout (retryable)
//   - 3: usage or config error
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/coreidcc/checkmk/cli/cmd"
	"github.com/coreidcc/checkmk/types"
	"github.com/coreidcc/checkmk/wmi"
)

// Commit is set via ldflags at build time.
var commit = "unknown"

func main() {
	defer wmi.Teardown()

	app := &cli.App{
		Name:           "wmiq",
		Usage:          "WMI query diagnostic tool",
		Version:        fmt.Sprintf("%s (commit: %s)", types.Version, commit),
		ExitErrHandler: exitErrHandler,
		Commands: []*cli.Command{
			cmd.QueryCommand(),
			cmd.ClassCommand(),
			cmd.VersionCommand(commit),
		},
	}

	if err := app.Run(os.Args); err != nil {
		// ExitErrHandler already handled the exit for cli.ExitCoder errors.
		// This branch handles unexpected errors that weren't wrapped.
		os.Exit(1)
	}
}

// exitErrHandler preserves exit codes from cli.Exit(), so the documented
// codes survive the urfave error plumbing.
func exitErrHandler(_ *cli.Context, err error) {
	if err == nil {
		return
	}

	var exitCoder cli.ExitCoder
	if errors.As(err, &exitCoder) {
		code := exitCoder.ExitCode()
		msg := exitCoder.Error()

		// cli.Exit("", N).Error() returns "exit status N"; skip those.
		if msg != "" && msg != fmt.Sprintf("exit status %d", code) {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(code)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
