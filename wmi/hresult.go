package wmi

import "fmt"

// HRESULT is a COM status code. The high bit distinguishes failure from
// success; success codes other than zero (e.g. WBEM_S_FALSE) carry
// additional state.
type HRESULT uint32

// Generic COM status codes.
const (
	S_OK    HRESULT = 0
	S_FALSE HRESULT = 1
)

// WBEM status codes returned by the WMI service.
const (
	WBEM_S_NO_ERROR HRESULT = 0
	WBEM_S_FALSE    HRESULT = 1
	WBEM_S_TIMEDOUT HRESULT = 0x40004

	WBEM_E_FAILED            HRESULT = 0x80041001
	WBEM_E_NOT_FOUND         HRESULT = 0x80041002
	WBEM_E_ACCESS_DENIED     HRESULT = 0x80041003
	WBEM_E_OUT_OF_MEMORY     HRESULT = 0x80041006
	WBEM_E_INVALID_PARAMETER HRESULT = 0x80041008
	WBEM_E_CRITICAL_ERROR    HRESULT = 0x8004100A
	WBEM_E_NOT_SUPPORTED     HRESULT = 0x8004100C
	WBEM_E_INVALID_NAMESPACE HRESULT = 0x8004100E
	WBEM_E_INVALID_OBJECT    HRESULT = 0x8004100F
	WBEM_E_INVALID_CLASS     HRESULT = 0x80041010
	WBEM_E_TRANSPORT_FAILURE HRESULT = 0x80041015
	WBEM_E_INVALID_QUERY     HRESULT = 0x80041017
	WBEM_E_UNEXPECTED        HRESULT = 0x8004101D
)

// Failed reports whether hr is a COM failure code (high bit set).
func (hr HRESULT) Failed() bool {
	return int32(hr) < 0
}

// Succeeded reports whether hr is a COM success code.
func (hr HRESULT) Succeeded() bool {
	return int32(hr) >= 0
}

// String renders the status as lowercase hex, matching the suffix used in
// ComError messages.
func (hr HRESULT) String() string {
	return fmt.Sprintf("%x", uint32(hr))
}

// resolveStatus maps an HRESULT to human-readable text. The four WBEM
// conditions the agent commonly runs into get fixed names; everything else
// goes through the platform's system error message lookup.
func resolveStatus(hr HRESULT) string {
	switch hr {
	case WBEM_E_INVALID_NAMESPACE:
		return "Invalid Namespace"
	case WBEM_E_ACCESS_DENIED:
		return "Access Denied"
	case WBEM_E_INVALID_CLASS:
		return "Invalid Class"
	case WBEM_E_INVALID_QUERY:
		return "Invalid Query"
	default:
		return systemMessage(hr)
	}
}
