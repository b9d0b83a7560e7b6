package wmi

import (
	"time"

	"github.com/coreidcc/checkmk/metrics"
)

// advanceTimeout bounds the wait for a single record on each cursor
// advance. Matches the agent's historical 2500 ms budget.
const advanceTimeout = 2500 * time.Millisecond

// Result is a forward-only cursor over one query's result set. It holds at
// most one current record; advancing releases the previous one. A Result is
// meant for single-threaded, sequential use.
//
// The constructor performs the first advance. If that advance reports no
// record, the enumerator is discarded, so "class does not exist" and "class
// exists with zero instances" collapse into one observable empty state.
// This ambiguity is deliberate and inherited from the agent.
type Result struct {
	enum    Enumerator
	current ClassObject
	lastErr HRESULT
	coll    *metrics.Collector
}

// newResult wraps a fresh enumerator and performs the implicit first
// advance. Only a timeout propagates; the caller then still owns enum.
func newResult(enum Enumerator, coll *metrics.Collector) (*Result, error) {
	r := &Result{enum: enum, coll: coll}
	more, err := r.Next()
	if err != nil {
		return nil, err
	}
	if !more {
		// First advance came up empty: either the class is absent or the
		// result set is genuinely empty. Collapse both into the null
		// enumerator sentinel.
		enum.Release()
		r.enum = nil
	}
	return r, nil
}

// Valid reports whether a current record exists. It is false only for a
// cursor whose very first advance produced nothing; once a record has been
// seen it stays true through exhaustion, so the last record remains
// readable.
func (r *Result) Valid() bool {
	return r.current != nil
}

// Next advances the cursor by one record.
//
// On success the previous record is released, the new one becomes current,
// and Next reports true. On clean exhaustion it reports false and leaves
// the current record untouched. A timeout raises a TimeoutError and leaves
// the cursor unchanged, so the advance can be retried. Any other service
// failure is swallowed: the status is recorded for LastError and the cursor
// degrades to exhaustion. Callers that need to tell a swallowed hard error
// from a clean end of results must inspect LastError.
func (r *Result) Next() (bool, error) {
	if r.enum == nil {
		return false, nil
	}

	obj, hr := r.enum.Next(advanceTimeout)
	switch hr {
	case WBEM_S_NO_ERROR:
		if r.current != nil {
			r.current.Release()
		}
		r.current = obj
		r.coll.IncRecordsIterated()
		return true, nil
	case WBEM_S_FALSE:
		// Exhausted. The current record stays readable.
		return false, nil
	case WBEM_S_TIMEDOUT:
		r.coll.IncAdvanceTimeouts()
		return false, &TimeoutError{Op: "WMItimeout"}
	default:
		// WBEM_E_INVALID_PARAMETER, WBEM_E_OUT_OF_MEMORY, WBEM_E_UNEXPECTED
		// or WBEM_E_TRANSPORT_FAILURE. The current record is not touched so
		// the Result stays valid.
		r.lastErr = hr
		r.coll.IncEnumFailures()
		return false, nil
	}
}

// LastError returns the status swallowed by the most recent failed advance,
// or zero if every advance either succeeded or exhausted cleanly.
func (r *Result) LastError() HRESULT {
	return r.lastErr
}

// Names returns the current record's non-system property names.
func (r *Result) Names() ([]string, error) {
	return newObject(r.current).Names()
}

// Contains reports whether the current record has a non-null property with
// the given name. Never fails; an invalid cursor reports false.
func (r *Result) Contains(name string) bool {
	return newObject(r.current).Contains(name)
}

// TypeID returns the raw type tag of the named property of the current
// record, or VT_EMPTY when it cannot be fetched.
func (r *Result) TypeID(name string) VarType {
	return newObject(r.current).TypeID(name)
}

// GetVarByKey fetches the named property of the current record.
func (r *Result) GetVarByKey(name string) (Variant, error) {
	return newObject(r.current).GetVarByKey(name)
}

// Record returns the current record with its own reference, valid past
// subsequent advances (though it then represents stale data). The caller
// must close it. Returns nil when the cursor is not valid.
func (r *Result) Record() *Object {
	if r.current == nil {
		return nil
	}
	r.current.AddRef()
	return newObject(r.current)
}

// Close releases the current record and the enumerator. Safe to call more
// than once.
func (r *Result) Close() {
	if r.current != nil {
		r.current.Release()
		r.current = nil
	}
	if r.enum != nil {
		r.enum.Release()
		r.enum = nil
	}
}
