package cmd

import (
	"github.com/urfave/cli/v2"
)

// ClassCommand returns the class command: enumerate all instances of a
// named class and dump them to stdout.
//
// An empty dump means either the class has no instances or it does not
// exist in the namespace; the service does not let a forward-only
// enumeration tell those apart.
func ClassCommand() *cli.Command {
	return &cli.Command{
		Name:      "class",
		Usage:     "Enumerate all instances of a WMI class",
		ArgsUsage: "CLASS",
		Flags:     QueryFlags(),
		Action:    classAction,
	}
}

func classAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("expected exactly one class name", exitBadUsage)
	}

	s, err := openSession(c)
	if err != nil {
		return err
	}
	defer s.close(c)

	cur, err := s.wmi.GetClass(c.Args().First())
	if err != nil {
		return exitFor(err)
	}
	return s.dumpCursor(cur)
}
