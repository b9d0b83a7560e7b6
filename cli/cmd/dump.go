package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/coreidcc/checkmk/cli/config"
	"github.com/coreidcc/checkmk/cli/render"
	"github.com/coreidcc/checkmk/iox"
	"github.com/coreidcc/checkmk/log"
	"github.com/coreidcc/checkmk/metrics"
	"github.com/coreidcc/checkmk/wmi"
)

// Exit codes for the record-dumping commands.
const (
	exitOK       = 0
	exitError    = 1
	exitTimeout  = 2
	exitBadUsage = 3
)

// session bundles everything a dump command needs after flag parsing.
type session struct {
	cfg     *config.Config
	wmi     *wmi.Session
	rend    *render.Renderer
	coll    *metrics.Collector
	sug     *log.SugaredLogger
	cleanup func()
}

// openSession resolves config and flags, connects to the service, and
// builds the renderer. The caller must call close.
func openSession(c *cli.Context) (*session, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, cli.Exit(err.Error(), exitBadUsage)
		}
		cfg = loaded
	}

	format, err := render.ParseFormat(c.String("format"))
	if err != nil {
		return nil, cli.Exit(err.Error(), exitBadUsage)
	}

	namespace := cfg.ResolveNamespace(c.String("namespace"))
	coll := metrics.NewCollector(namespace)

	opts := []wmi.Option{wmi.WithCollector(coll)}
	var sug *log.SugaredLogger
	if c.Bool("verbose") {
		sug = log.NewLogger(namespace).Sugar()
		opts = append(opts, wmi.WithLogger(sug))
	}

	out, cleanup, err := openOutput(c.String("output"))
	if err != nil {
		return nil, cli.Exit(err.Error(), exitBadUsage)
	}

	ses, err := wmi.Open(namespace, opts...)
	if err != nil {
		cleanup()
		return nil, exitFor(err)
	}

	return &session{
		cfg:     cfg,
		wmi:     ses,
		rend:    render.NewRenderer(format, out),
		coll:    coll,
		sug:     sug,
		cleanup: cleanup,
	}, nil
}

// openOutput resolves the record destination. The returned cleanup flushes
// and closes the file when one was opened; for stdout it is a no-op.
func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open output file: %w", err)
	}
	w := bufio.NewWriter(f)
	return w, func() {
		iox.DiscardErr(w.Flush)
		iox.DiscardClose(f)
	}, nil
}

func (s *session) close(c *cli.Context) {
	s.wmi.Close()
	s.cleanup()
	if c.Bool("stats") {
		snap := s.coll.Snapshot()
		fmt.Fprintf(os.Stderr, "namespace=%s queries=%d records=%d timeouts=%d enum_failures=%d\n",
			snap.Namespace, snap.QueriesIssued, snap.RecordsIterated,
			snap.AdvanceTimeouts, snap.EnumFailures)
	}
}

// dumpCursor drains the cursor, rendering every record. The last swallowed
// enumeration error, if any, is reported after the records so a truncated
// dump is distinguishable from a complete one.
func (s *session) dumpCursor(cur *wmi.Result) error {
	defer cur.Close()

	if !cur.Valid() {
		return nil
	}

	for {
		rec, err := s.renderableRecord(cur)
		if err != nil {
			return exitFor(err)
		}
		if err := s.rend.Render(rec); err != nil {
			return cli.Exit(err.Error(), exitError)
		}

		more, err := cur.Next()
		if err != nil {
			return exitFor(err)
		}
		if !more {
			break
		}
	}

	if hr := cur.LastError(); hr != 0 {
		return cli.Exit(fmt.Sprintf("enumeration aborted by service error (%s); output is truncated", hr), exitError)
	}
	return nil
}

// renderableRecord formats the cursor's current record. Properties whose
// type has no display form keep a tag placeholder rather than aborting the
// dump.
func (s *session) renderableRecord(cur *wmi.Result) (render.Record, error) {
	names, err := cur.Names()
	if err != nil {
		return render.Record{}, err
	}

	rec := render.Record{Fields: names, Values: make(map[string]string, len(names))}
	for _, name := range names {
		v, err := cur.GetVarByKey(name)
		if err != nil {
			return render.Record{}, err
		}
		text, err := v.Format()
		if err != nil {
			text = fmt.Sprintf("<vt:%d>", uint16(v.Type()))
		}
		rec.Values[name] = text
	}
	return rec, nil
}

// exitFor maps a wmi error to a cli exit error with the right code.
// Timeouts get their own code so callers can retry.
func exitFor(err error) error {
	if errors.Is(err, wmi.ErrTimeout) {
		return cli.Exit(err.Error(), exitTimeout)
	}
	return cli.Exit(err.Error(), exitError)
}
