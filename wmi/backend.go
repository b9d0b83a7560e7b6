package wmi

import "time"

// The interfaces below are the raw COM boundary. Session, Result and Object
// are written entirely against them; the Windows implementation lives in
// com_windows.go. All handles are reference-counted external resources:
// Release must be called exactly once per owned reference, AddRef extends a
// shared handle's lifetime.

// Locator is the short-lived activation handle used once to connect to the
// service (IWbemLocator).
type Locator interface {
	// ConnectServer performs the connect handshake against a namespace path
	// such as `Root\cimv2`, using the process identity. On success the
	// returned Services handle is owned by the caller.
	ConnectServer(namespace string) (Services, HRESULT)
	Release()
}

// Services is the persistent connection to the WMI service
// (IWbemServices). All requests of a session go through it.
type Services interface {
	// ExecQuery submits a WQL query with forward-only, return-immediately
	// semantics. The returned enumerator is owned by the caller.
	ExecQuery(wql string) (Enumerator, HRESULT)
	// CreateInstanceEnum enumerates all instances of a named class, with the
	// same flags as ExecQuery.
	CreateInstanceEnum(class string) (Enumerator, HRESULT)
	Release()
}

// Enumerator is a forward-only, server-managed cursor over a result set
// (IEnumWbemClassObject).
type Enumerator interface {
	// Next retrieves at most one object, waiting up to timeout. The object
	// is non-nil only for WBEM_S_NO_ERROR, in which case the caller owns it.
	// WBEM_S_FALSE means the result set is exhausted, WBEM_S_TIMEDOUT means
	// the wait expired before a record arrived.
	Next(timeout time.Duration) (ClassObject, HRESULT)
	Release()
}

// ClassObject is one instrumentation record (IWbemClassObject).
type ClassObject interface {
	// Get fetches a property by name. Every call is a fresh decode; the
	// returned Variant is a detached copy with the native value released.
	Get(name string) (Variant, HRESULT)
	// Names returns the record's non-system property names, in the
	// service's order. The native name array is released internally
	// regardless of outcome.
	Names() ([]string, HRESULT)
	AddRef()
	Release()
}
