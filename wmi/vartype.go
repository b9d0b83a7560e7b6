package wmi

// VarType is the raw OLE automation type tag carried by a Variant.
// The numeric values are fixed by the COM VARIANT ABI.
type VarType uint16

// Variant type tags relevant to WMI property decoding.
const (
	VT_EMPTY VarType = 0
	VT_NULL  VarType = 1
	VT_I2    VarType = 2
	VT_I4    VarType = 3
	VT_R4    VarType = 4
	VT_R8    VarType = 5
	VT_BSTR  VarType = 8
	VT_BOOL  VarType = 11
	VT_I1    VarType = 16
	VT_UI1   VarType = 17
	VT_UI2   VarType = 18
	VT_UI4   VarType = 19
	VT_I8    VarType = 20
	VT_UI8   VarType = 21

	// Composite markers, combined with an element tag. WMI array-valued
	// properties (e.g. string[] qualifiers) carry VT_ARRAY.
	VT_VECTOR VarType = 0x1000
	VT_ARRAY  VarType = 0x2000
)
