package wmi

import "sync"

// Process-wide COM lifecycle. The communication subsystem must be
// initialized exactly once per process no matter how many sessions are
// opened, with matching teardown at process exit.

var (
	comOnce sync.Once
	comErr  error
)

// EnsureInitialized performs the one-time COM initialization (multithreaded
// apartment plus the impersonation security defaults) on first use. It is
// safe under concurrent first use: all racing callers block until the
// sequence completes and then observe the same outcome. A failed
// initialization is memoized, never silently retried with a partially
// initialized subsystem.
func EnsureInitialized() error {
	comOnce.Do(func() {
		comErr = initializeCOM()
	})
	return comErr
}

// Teardown uninitializes COM. Call once at process exit, after all
// sessions are closed.
func Teardown() {
	teardownCOM()
}
