//go:build !windows

package wmi

// systemMessage has no system message table to consult off Windows. The
// ComError message still carries the raw hex code.
func systemMessage(hr HRESULT) string {
	return "Unknown Error"
}
