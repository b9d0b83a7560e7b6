//go:build !windows

package wmi

// WMI exists only on Windows. The stubs keep the package compiling on other
// platforms, where opening a real session fails with a protocol error; the
// portable cursor and decoding logic is exercised through the backend
// interfaces instead.

func initializeCOM() error {
	return &ComError{Op: "Failed to initialize COM", Status: WBEM_E_NOT_SUPPORTED}
}

func teardownCOM() {}

func newLocator() (Locator, error) {
	return nil, &ComError{Op: "Failed to create locator object", Status: WBEM_E_NOT_SUPPORTED}
}
