// Package iox holds small cleanup helpers for deferred I/O teardown.
package iox

import "io"

// DiscardClose closes c, dropping the error. For defers on resources whose
// close failure has no useful handling, e.g. an output file after the data
// has been flushed:
//
//	defer iox.DiscardClose(f)
func DiscardClose(c io.Closer) { _ = c.Close() }

// CloseFunc adapts c to a no-argument cleanup function, suitable for
// t.Cleanup registration:
//
//	t.Cleanup(iox.CloseFunc(r))
func CloseFunc(c io.Closer) func() {
	return func() { _ = c.Close() }
}

// DiscardErr runs fn and drops its error. Covers error-returning teardown
// that is not a Close, such as flushing a buffered writer:
//
//	defer iox.DiscardErr(w.Flush)
func DiscardErr(fn func() error) { _ = fn() }
