package cmd

import (
	"github.com/urfave/cli/v2"
)

// QueryCommand returns the query command: execute a WQL query and dump the
// result records to stdout.
func QueryCommand() *cli.Command {
	return &cli.Command{
		Name:      "query",
		Usage:     "Execute a WQL query and dump the result records",
		ArgsUsage: "[WQL]",
		Flags: append(QueryFlags(),
			&cli.StringFlag{
				Name:  "name",
				Usage: "Run a named query from the config file instead of a literal WQL argument",
			},
		),
		Action: queryAction,
	}
}

func queryAction(c *cli.Context) error {
	s, err := openSession(c)
	if err != nil {
		return err
	}
	defer s.close(c)

	wql, err := resolveWQL(c, s)
	if err != nil {
		return err
	}

	cur, err := s.wmi.Query(wql)
	if err != nil {
		return exitFor(err)
	}
	return s.dumpCursor(cur)
}

// resolveWQL picks the query text from --name (config lookup) or the
// positional argument.
func resolveWQL(c *cli.Context, s *session) (string, error) {
	if name := c.String("name"); name != "" {
		wql, err := s.cfg.LookupQuery(name)
		if err != nil {
			return "", cli.Exit(err.Error(), exitBadUsage)
		}
		return wql, nil
	}
	if c.NArg() != 1 {
		return "", cli.Exit("expected exactly one WQL argument (or --name)", exitBadUsage)
	}
	return c.Args().First(), nil
}
