//go:build windows

package wmi

import (
	"syscall"
	"time"
	"unsafe"

	ole "github.com/go-ole/go-ole"
	"golang.org/x/sys/windows"
)

// WMI class and interface GUIDs.
var (
	clsidWbemLocator = ole.NewGUID("4590f811-1d3a-11d0-891f-00aa004b2e24")
	iidIWbemLocator  = ole.NewGUID("dc12a687-737f-11cf-884d-00aa004b2e24")
)

// CoInitializeSecurity has no go-ole wrapper.
var (
	ole32                    = windows.NewLazySystemDLL("ole32.dll")
	procCoInitializeSecurity = ole32.NewProc("CoInitializeSecurity")
)

// COM security constants for CoInitializeSecurity.
const (
	rpcAuthnLevelDefault     = 0
	rpcImpLevelImpersonate   = 3
	eoacNone                 = 0
	authnServiceCountDefault = ^uintptr(0) // -1: let COM choose
)

// WBEM request flags.
const (
	wbemFlagReturnImmediately = 0x10
	wbemFlagForwardOnly       = 0x20
	wbemFlagAlways            = 0
	wbemFlagNonSystemOnly     = 0x40
)

// initializeCOM enters the multithreaded apartment and applies the default
// security blanket with impersonation, the configuration WMI providers
// expect from a local agent. An apartment already initialized on the
// calling thread (S_OK/S_FALSE from CoInitializeEx) is not an error.
func initializeCOM() error {
	if err := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED); err != nil {
		oleErr, ok := err.(*ole.OleError)
		if !ok || (HRESULT(oleErr.Code()) != S_OK && HRESULT(oleErr.Code()) != S_FALSE) {
			return &ComError{Op: "Failed to initialize COM", Status: comStatus(err)}
		}
	}

	hr, _, _ := procCoInitializeSecurity.Call(
		0,                        // security descriptor
		authnServiceCountDefault, // authentication service count
		0,                        // authentication services
		0,                        // reserved
		rpcAuthnLevelDefault,     // authentication level
		rpcImpLevelImpersonate,   // impersonation level
		0,                        // authentication info
		eoacNone,                 // additional capabilities
		0,                        // reserved
	)
	if HRESULT(hr).Failed() {
		return &ComError{Op: "Failed to initialize COM security", Status: HRESULT(hr)}
	}
	return nil
}

func teardownCOM() {
	ole.CoUninitialize()
}

// comStatus extracts the HRESULT from a go-ole error.
func comStatus(err error) HRESULT {
	if oleErr, ok := err.(*ole.OleError); ok {
		return HRESULT(oleErr.Code())
	}
	return WBEM_E_FAILED
}

// newLocator activates the WbemLocator COM class in-process.
func newLocator() (Locator, error) {
	unk, err := ole.CreateInstance(clsidWbemLocator, iidIWbemLocator)
	if err != nil {
		return nil, &ComError{Op: "Failed to create locator object", Status: comStatus(err)}
	}
	return &comLocator{ptr: unk}, nil
}

// Raw COM virtual tables for the WMI interfaces. Layout is fixed by the
// wbemcli ABI; only the slots called here matter, but the full tables keep
// the offsets right.

type wbemLocatorVtbl struct {
	queryInterface uintptr
	addRef         uintptr
	release        uintptr
	connectServer  uintptr
}

type wbemServicesVtbl struct {
	queryInterface             uintptr
	addRef                     uintptr
	release                    uintptr
	openNamespace              uintptr
	cancelAsyncCall            uintptr
	queryObjectSink            uintptr
	getObject                  uintptr
	getObjectAsync             uintptr
	putClass                   uintptr
	putClassAsync              uintptr
	deleteClass                uintptr
	deleteClassAsync           uintptr
	createClassEnum            uintptr
	createClassEnumAsync       uintptr
	putInstance                uintptr
	putInstanceAsync           uintptr
	deleteInstance             uintptr
	deleteInstanceAsync        uintptr
	createInstanceEnum         uintptr
	createInstanceEnumAsync    uintptr
	execQuery                  uintptr
	execQueryAsync             uintptr
	execNotificationQuery      uintptr
	execNotificationQueryAsync uintptr
	execMethod                 uintptr
	execMethodAsync            uintptr
}

type enumWbemClassObjectVtbl struct {
	queryInterface uintptr
	addRef         uintptr
	release        uintptr
	reset          uintptr
	next           uintptr
	nextAsync      uintptr
	clone          uintptr
	skip           uintptr
}

type wbemClassObjectVtbl struct {
	queryInterface          uintptr
	addRef                  uintptr
	release                 uintptr
	getQualifierSet         uintptr
	get                     uintptr
	put                     uintptr
	delete                  uintptr
	getNames                uintptr
	beginEnumeration        uintptr
	next                    uintptr
	endEnumeration          uintptr
	getPropertyQualifierSet uintptr
	clone                   uintptr
	getObjectText           uintptr
	spawnDerivedClass       uintptr
	spawnInstance           uintptr
	compareTo               uintptr
	getPropertyOrigin       uintptr
	inheritsFrom            uintptr
	getMethod               uintptr
	putMethod               uintptr
	deleteMethod            uintptr
	beginMethodEnumeration  uintptr
	nextMethod              uintptr
	endMethodEnumeration    uintptr
	getMethodQualifierSet   uintptr
	getMethodOrigin         uintptr
}

type comLocator struct {
	ptr *ole.IUnknown
}

func (l *comLocator) ConnectServer(namespace string) (Services, HRESULT) {
	ns, err := windows.UTF16FromString(namespace)
	if err != nil {
		return nil, WBEM_E_INVALID_PARAMETER
	}

	var services *ole.IUnknown
	vtbl := (*wbemLocatorVtbl)(unsafe.Pointer(l.ptr.RawVTable))
	hr, _, _ := syscall.SyscallN(vtbl.connectServer,
		uintptr(unsafe.Pointer(l.ptr)),
		uintptr(unsafe.Pointer(&ns[0])), // namespace path
		0,                               // user name
		0,                               // user password
		0,                               // locale
		0,                               // security flags
		0,                               // authority
		0,                               // context object
		uintptr(unsafe.Pointer(&services)))
	if HRESULT(hr).Failed() {
		return nil, HRESULT(hr)
	}
	return &comServices{ptr: services}, HRESULT(hr)
}

func (l *comLocator) Release() {
	l.ptr.Release()
}

type comServices struct {
	ptr *ole.IUnknown
}

func (s *comServices) ExecQuery(wql string) (Enumerator, HRESULT) {
	lang, err := windows.UTF16FromString("WQL")
	if err != nil {
		return nil, WBEM_E_INVALID_PARAMETER
	}
	query, err := windows.UTF16FromString(wql)
	if err != nil {
		return nil, WBEM_E_INVALID_PARAMETER
	}

	var enum *ole.IUnknown
	vtbl := (*wbemServicesVtbl)(unsafe.Pointer(s.ptr.RawVTable))
	hr, _, _ := syscall.SyscallN(vtbl.execQuery,
		uintptr(unsafe.Pointer(s.ptr)),
		uintptr(unsafe.Pointer(&lang[0])),
		uintptr(unsafe.Pointer(&query[0])),
		uintptr(wbemFlagForwardOnly|wbemFlagReturnImmediately),
		0, // context
		uintptr(unsafe.Pointer(&enum)))
	if HRESULT(hr).Failed() {
		return nil, HRESULT(hr)
	}
	return &comEnumerator{ptr: enum}, HRESULT(hr)
}

func (s *comServices) CreateInstanceEnum(class string) (Enumerator, HRESULT) {
	name, err := windows.UTF16FromString(class)
	if err != nil {
		return nil, WBEM_E_INVALID_PARAMETER
	}

	var enum *ole.IUnknown
	vtbl := (*wbemServicesVtbl)(unsafe.Pointer(s.ptr.RawVTable))
	hr, _, _ := syscall.SyscallN(vtbl.createInstanceEnum,
		uintptr(unsafe.Pointer(s.ptr)),
		uintptr(unsafe.Pointer(&name[0])),
		uintptr(wbemFlagForwardOnly|wbemFlagReturnImmediately),
		0, // context
		uintptr(unsafe.Pointer(&enum)))
	if HRESULT(hr).Failed() {
		return nil, HRESULT(hr)
	}
	return &comEnumerator{ptr: enum}, HRESULT(hr)
}

func (s *comServices) Release() {
	s.ptr.Release()
}

type comEnumerator struct {
	ptr *ole.IUnknown
}

func (e *comEnumerator) Next(timeout time.Duration) (ClassObject, HRESULT) {
	var obj *ole.IUnknown
	var returned uint32

	vtbl := (*enumWbemClassObjectVtbl)(unsafe.Pointer(e.ptr.RawVTable))
	hr, _, _ := syscall.SyscallN(vtbl.next,
		uintptr(unsafe.Pointer(e.ptr)),
		uintptr(timeout.Milliseconds()),
		1, // always retrieve only one element
		uintptr(unsafe.Pointer(&obj)),
		uintptr(unsafe.Pointer(&returned)))
	if HRESULT(hr) != WBEM_S_NO_ERROR || returned == 0 {
		if HRESULT(hr) == WBEM_S_NO_ERROR {
			return nil, WBEM_S_FALSE
		}
		return nil, HRESULT(hr)
	}
	return &comObject{ptr: obj}, WBEM_S_NO_ERROR
}

func (e *comEnumerator) Release() {
	e.ptr.Release()
}

type comObject struct {
	ptr *ole.IUnknown
}

func (o *comObject) Get(name string) (Variant, HRESULT) {
	key, err := windows.UTF16FromString(name)
	if err != nil {
		return Variant{}, WBEM_E_INVALID_PARAMETER
	}

	var value ole.VARIANT
	ole.VariantInit(&value)
	vtbl := (*wbemClassObjectVtbl)(unsafe.Pointer(o.ptr.RawVTable))
	hr, _, _ := syscall.SyscallN(vtbl.get,
		uintptr(unsafe.Pointer(o.ptr)),
		uintptr(unsafe.Pointer(&key[0])),
		0, // reserved
		uintptr(unsafe.Pointer(&value)),
		0, // CIM type, not needed
		0) // flavor, not needed
	if HRESULT(hr).Failed() {
		return Variant{}, HRESULT(hr)
	}

	v := detachVariant(&value)
	_ = ole.VariantClear(&value)
	return v, HRESULT(hr)
}

func (o *comObject) Names() ([]string, HRESULT) {
	var names *ole.SafeArray
	vtbl := (*wbemClassObjectVtbl)(unsafe.Pointer(o.ptr.RawVTable))
	hr, _, _ := syscall.SyscallN(vtbl.getNames,
		uintptr(unsafe.Pointer(o.ptr)),
		0, // qualifier name
		uintptr(wbemFlagAlways|wbemFlagNonSystemOnly),
		0, // qualifier value
		uintptr(unsafe.Pointer(&names)))
	if HRESULT(hr).Failed() {
		return nil, HRESULT(hr)
	}

	sac := ole.SafeArrayConversion{Array: names}
	defer sac.Release()
	return sac.ToStringArray(), HRESULT(hr)
}

func (o *comObject) AddRef() {
	o.ptr.AddRef()
}

func (o *comObject) Release() {
	o.ptr.Release()
}

// detachVariant copies the native VARIANT's payload into a detached
// Variant. String buffers are transcoded to UTF-8 and arrays are reduced to
// their composite tag; the native resources are released by the caller's
// VariantClear.
func detachVariant(v *ole.VARIANT) Variant {
	vt := VarType(v.VT)
	if vt&(VT_ARRAY|VT_VECTOR) != 0 {
		return NewTaggedVariant(vt)
	}

	switch vt {
	case VT_BSTR:
		return NewStringVariant(v.ToString())
	case VT_BOOL:
		return NewBoolVariant(v.Val != 0)
	case VT_R4:
		return NewFloatVariant(VT_R4, float64(*(*float32)(unsafe.Pointer(&v.Val))))
	case VT_R8:
		return NewFloatVariant(VT_R8, *(*float64)(unsafe.Pointer(&v.Val)))
	case VT_NULL, VT_EMPTY:
		return NewTaggedVariant(vt)
	// Only the low bytes of the union are meaningful for the narrow
	// integral tags.
	case VT_I1:
		return NewIntVariant(vt, int64(int8(v.Val)))
	case VT_I2:
		return NewIntVariant(vt, int64(int16(v.Val)))
	case VT_I4:
		return NewIntVariant(vt, int64(int32(v.Val)))
	case VT_UI1:
		return NewIntVariant(vt, int64(uint8(v.Val)))
	case VT_UI2:
		return NewIntVariant(vt, int64(uint16(v.Val)))
	case VT_UI4:
		return NewIntVariant(vt, int64(uint32(v.Val)))
	case VT_I8, VT_UI8:
		return NewIntVariant(vt, v.Val)
	default:
		// Unsupported payloads (embedded objects, references) keep their
		// tag so typed extraction reports it.
		return NewTaggedVariant(vt)
	}
}
