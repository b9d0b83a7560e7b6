//go:build windows

package wmi

import "golang.org/x/sys/windows"

// systemMessage resolves an HRESULT through the system message table
// (FormatMessage via the Errno stringer).
func systemMessage(hr HRESULT) string {
	return windows.Errno(hr).Error()
}
