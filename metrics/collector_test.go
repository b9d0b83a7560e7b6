package metrics

import (
	"sync"
	"testing"
)

func TestCollector_IncrementMethods(t *testing.T) {
	c := NewCollector(`Root\cimv2`)

	c.IncQueriesIssued()
	c.IncQueriesIssued()
	c.IncQueryFailures()
	c.IncConnectFailures()
	c.IncRecordsIterated()
	c.IncRecordsIterated()
	c.IncRecordsIterated()
	c.IncAdvanceTimeouts()
	c.IncEnumFailures()
	c.IncEnumFailures()

	s := c.Snapshot()

	if s.QueriesIssued != 2 {
		t.Errorf("QueriesIssued = %d, want 2", s.QueriesIssued)
	}
	if s.QueryFailures != 1 {
		t.Errorf("QueryFailures = %d, want 1", s.QueryFailures)
	}
	if s.ConnectFailures != 1 {
		t.Errorf("ConnectFailures = %d, want 1", s.ConnectFailures)
	}
	if s.RecordsIterated != 3 {
		t.Errorf("RecordsIterated = %d, want 3", s.RecordsIterated)
	}
	if s.AdvanceTimeouts != 1 {
		t.Errorf("AdvanceTimeouts = %d, want 1", s.AdvanceTimeouts)
	}
	if s.EnumFailures != 2 {
		t.Errorf("EnumFailures = %d, want 2", s.EnumFailures)
	}
	if s.Namespace != `Root\cimv2` {
		t.Errorf("Namespace = %q, want %q", s.Namespace, `Root\cimv2`)
	}
}

func TestCollector_NilSafe(t *testing.T) {
	var c *Collector

	// None of these may panic.
	c.IncQueriesIssued()
	c.IncQueryFailures()
	c.IncConnectFailures()
	c.IncRecordsIterated()
	c.IncAdvanceTimeouts()
	c.IncEnumFailures()

	s := c.Snapshot()
	if s.QueriesIssued != 0 || s.RecordsIterated != 0 {
		t.Errorf("nil collector snapshot not zero: %+v", s)
	}
}

func TestCollector_ConcurrentIncrements(t *testing.T) {
	c := NewCollector(`Root\cimv2`)

	const workers = 8
	const perWorker = 1000

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				c.IncRecordsIterated()
			}
		}()
	}
	wg.Wait()

	if got := c.Snapshot().RecordsIterated; got != workers*perWorker {
		t.Errorf("RecordsIterated = %d, want %d", got, workers*perWorker)
	}
}
