// Package metrics provides per-session WMI counters.
//
// The Collector accumulates counters for one service connection. It is a
// leaf package with no internal dependencies. The cursor's swallowed
// enumeration failures are deliberately invisible to plain iteration, so
// the collector is the one place they always surface.
package metrics

import "sync"

// Snapshot is an immutable point-in-time view of all counters. Returned by
// Collector.Snapshot(). Safe to read concurrently after creation.
type Snapshot struct {
	// Requests
	QueriesIssued   int64
	QueryFailures   int64
	ConnectFailures int64

	// Iteration
	RecordsIterated int64
	AdvanceTimeouts int64
	EnumFailures    int64 // hard errors swallowed by cursor advance

	// Dimensions (informational, set at construction)
	Namespace string
}

// Collector accumulates counters for one session. Thread-safe via
// sync.Mutex. All increment methods are nil-receiver safe, so callers that
// run without metrics pass nil and skip the bookkeeping.
type Collector struct {
	mu sync.Mutex

	queriesIssued   int64
	queryFailures   int64
	connectFailures int64

	recordsIterated int64
	advanceTimeouts int64
	enumFailures    int64

	namespace string
}

// NewCollector creates a Collector labeled with the session's namespace.
func NewCollector(namespace string) *Collector {
	return &Collector{namespace: namespace}
}

// IncQueriesIssued records an accepted query or class enumeration.
func (c *Collector) IncQueriesIssued() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.queriesIssued++
	c.mu.Unlock()
}

// IncQueryFailures records a query or class enumeration the service
// rejected outright.
func (c *Collector) IncQueryFailures() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.queryFailures++
	c.mu.Unlock()
}

// IncConnectFailures records a failed connect handshake.
func (c *Collector) IncConnectFailures() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.connectFailures++
	c.mu.Unlock()
}

// IncRecordsIterated records one successful cursor advance.
func (c *Collector) IncRecordsIterated() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.recordsIterated++
	c.mu.Unlock()
}

// IncAdvanceTimeouts records a bounded-wait expiry during a cursor advance.
func (c *Collector) IncAdvanceTimeouts() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.advanceTimeouts++
	c.mu.Unlock()
}

// IncEnumFailures records a hard enumeration error the cursor swallowed and
// reported as exhaustion.
func (c *Collector) IncEnumFailures() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.enumFailures++
	c.mu.Unlock()
}

// Snapshot returns an immutable copy of all counters.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		QueriesIssued:   c.queriesIssued,
		QueryFailures:   c.queryFailures,
		ConnectFailures: c.connectFailures,
		RecordsIterated: c.recordsIterated,
		AdvanceTimeouts: c.advanceTimeouts,
		EnumFailures:    c.enumFailures,
		Namespace:       c.namespace,
	}
}
