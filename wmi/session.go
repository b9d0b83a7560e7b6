package wmi

import (
	"fmt"

	"github.com/coreidcc/checkmk/log"
	"github.com/coreidcc/checkmk/metrics"
)

// Session is an authenticated connection to the WMI service for one
// namespace. It owns a locator and a services handle for its lifetime and
// is immutable after Open, apart from state the service keeps behind the
// connection. A Session and the cursors it produces are not safe for
// concurrent use from multiple goroutines.
type Session struct {
	namespace string
	locator   Locator
	services  Services
	logger    *log.SugaredLogger
	coll      *metrics.Collector
}

// Option configures a Session during Open.
type Option func(*Session)

// WithLogger attaches a logger for query-level debug logging.
func WithLogger(l *log.SugaredLogger) Option {
	return func(s *Session) { s.logger = l }
}

// WithCollector attaches a metrics collector. Cursors created by the
// session share it.
func WithCollector(c *metrics.Collector) Option {
	return func(s *Session) { s.coll = c }
}

// withLocator substitutes the locator activation, bypassing COM. Used by
// tests with a fake backend.
func withLocator(loc Locator) Option {
	return func(s *Session) { s.locator = loc }
}

// Open initializes the process-wide COM state if needed, activates a
// locator, and performs the connect handshake against the namespace path
// (e.g. `Root\cimv2`). No explicit credentials are passed; the process
// identity applies.
func Open(namespace string, opts ...Option) (*Session, error) {
	s := &Session{namespace: namespace}
	for _, opt := range opts {
		opt(s)
	}

	if s.locator == nil {
		if err := EnsureInitialized(); err != nil {
			return nil, err
		}
		loc, err := newLocator()
		if err != nil {
			return nil, err
		}
		s.locator = loc
	}

	svc, hr := s.locator.ConnectServer(namespace)
	if hr.Failed() {
		s.locator.Release()
		s.locator = nil
		s.coll.IncConnectFailures()
		return nil, &ComError{Op: "Failed to connect", Status: hr}
	}
	s.services = svc

	if s.logger != nil {
		s.logger.Debugf("wmi: connected to namespace %s", namespace)
	}
	return s, nil
}

// Namespace returns the namespace path the session is connected to.
func (s *Session) Namespace() string {
	return s.namespace
}

// Query submits a WQL query and returns a cursor over its results. The
// request uses forward-only, return-immediately semantics: the call returns
// as soon as the service accepts the query, iteration may block on each
// advance, and the service is free to drop memory behind the cursor.
func (s *Session) Query(wql string) (*Result, error) {
	enum, hr := s.services.ExecQuery(wql)
	if hr.Failed() {
		s.coll.IncQueryFailures()
		return nil, &ComError{Op: fmt.Sprintf("Failed to execute query %q", wql), Status: hr}
	}
	s.coll.IncQueriesIssued()
	if s.logger != nil {
		s.logger.Debugf("wmi: query %q accepted", wql)
	}
	return s.wrap(enum)
}

// GetClass enumerates all instances of a named class, with the same cursor
// semantics as Query.
func (s *Session) GetClass(class string) (*Result, error) {
	enum, hr := s.services.CreateInstanceEnum(class)
	if hr.Failed() {
		s.coll.IncQueryFailures()
		return nil, &ComError{Op: fmt.Sprintf("Failed to enum class %q", class), Status: hr}
	}
	s.coll.IncQueriesIssued()
	if s.logger != nil {
		s.logger.Debugf("wmi: class enumeration %q accepted", class)
	}
	return s.wrap(enum)
}

// wrap builds the cursor, which performs the implicit first advance. A
// timeout on that advance propagates and the enumerator is released here.
func (s *Session) wrap(enum Enumerator) (*Result, error) {
	r, err := newResult(enum, s.coll)
	if err != nil {
		enum.Release()
		return nil, err
	}
	return r, nil
}

// Close releases the services and locator handles. Safe to call more than
// once.
func (s *Session) Close() {
	if s.services != nil {
		s.services.Release()
		s.services = nil
	}
	if s.locator != nil {
		s.locator.Release()
		s.locator = nil
	}
}
