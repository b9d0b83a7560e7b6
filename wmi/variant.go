package wmi

import "strconv"

// Variant is one dynamically typed WMI property value: a runtime type tag
// plus the matching payload. The native VARIANT's resources (BSTR buffers,
// embedded arrays) are copied out and released at the COM boundary, so a
// Variant is a plain value; copies are independent and there is nothing to
// double-release.
//
// Typed extraction accepts only the tags listed per method. Anything else
// fails with a TypeError naming the raw tag. The one sanctioned narrowing is
// VT_UI4 through Int32, kept for compatibility with existing checks.
type Variant struct {
	vt   VarType
	ival int64
	fval float64
	sval string
}

// NewIntVariant builds a variant with an integral tag (VT_I1..VT_UI8).
func NewIntVariant(vt VarType, v int64) Variant {
	return Variant{vt: vt, ival: v}
}

// NewFloatVariant builds a variant with a floating tag (VT_R4 or VT_R8).
// VT_R4 payloads must already be rounded to float32 precision.
func NewFloatVariant(vt VarType, v float64) Variant {
	return Variant{vt: vt, fval: v}
}

// NewStringVariant builds a VT_BSTR variant. The payload is UTF-8; the
// UTF-16 transcoding happens at the COM boundary.
func NewStringVariant(s string) Variant {
	return Variant{vt: VT_BSTR, sval: s}
}

// NewBoolVariant builds a VT_BOOL variant.
func NewBoolVariant(b bool) Variant {
	v := Variant{vt: VT_BOOL}
	if b {
		v.ival = 1
	}
	return v
}

// NewNullVariant builds a VT_NULL variant. WMI reports unset properties
// this way.
func NewNullVariant() Variant {
	return Variant{vt: VT_NULL}
}

// NewTaggedVariant builds a payload-free variant carrying only a tag. Used
// for VT_EMPTY and for VT_ARRAY/VT_VECTOR composites, whose element values
// are never decoded here.
func NewTaggedVariant(vt VarType) Variant {
	return Variant{vt: vt}
}

// Type returns the raw type tag for introspection.
func (v Variant) Type() VarType {
	return v.vt
}

// IsNull reports whether the variant carries the null tag.
func (v Variant) IsNull() bool {
	return v.vt == VT_NULL
}

// Int32 extracts a signed 32-bit integer. Accepts all signed and unsigned
// tags up to 32 bits; a VT_UI4 value above math.MaxInt32 wraps, which
// callers relying on this path accept.
func (v Variant) Int32() (int32, error) {
	switch v.vt {
	case VT_I1, VT_I2, VT_I4, VT_UI1, VT_UI2, VT_UI4:
		return int32(v.ival), nil
	default:
		return 0, &TypeError{Tag: v.vt}
	}
}

// Bool extracts a boolean. Accepts VT_BOOL only.
func (v Variant) Bool() (bool, error) {
	switch v.vt {
	case VT_BOOL:
		return v.ival != 0, nil
	default:
		return false, &TypeError{Tag: v.vt}
	}
}

// Uint32 extracts an unsigned 32-bit integer. Accepts the unsigned tags up
// to 32 bits.
func (v Variant) Uint32() (uint32, error) {
	switch v.vt {
	case VT_UI1, VT_UI2, VT_UI4:
		return uint32(v.ival), nil
	default:
		return 0, &TypeError{Tag: v.vt}
	}
}

// Uint64 extracts an unsigned 64-bit integer. Accepts VT_UI8 only.
func (v Variant) Uint64() (uint64, error) {
	switch v.vt {
	case VT_UI8:
		return uint64(v.ival), nil
	default:
		return 0, &TypeError{Tag: v.vt}
	}
}

// String extracts the UTF-8 form of a string property. Accepts VT_BSTR only.
func (v Variant) String() (string, error) {
	switch v.vt {
	case VT_BSTR:
		return v.sval, nil
	default:
		return "", &TypeError{Tag: v.vt}
	}
}

// Float32 extracts a 32-bit float. Accepts VT_R4 only.
func (v Variant) Float32() (float32, error) {
	switch v.vt {
	case VT_R4:
		return float32(v.fval), nil
	default:
		return 0, &TypeError{Tag: v.vt}
	}
}

// Float64 extracts a 64-bit float. Accepts VT_R8 and widens VT_R4.
func (v Variant) Float64() (float64, error) {
	switch v.vt {
	case VT_R4, VT_R8:
		return v.fval, nil
	default:
		return 0, &TypeError{Tag: v.vt}
	}
}

// Format is the permissive extractor used when a property of any type has
// to become display text. Array and vector composites yield placeholders,
// strings pass through verbatim, numeric and boolean tags are stringified
// through the typed extractors above, and null yields the empty string.
// Remaining tags (VT_EMPTY, embedded objects) fail with a TypeError.
func (v Variant) Format() (string, error) {
	if v.vt&VT_ARRAY != 0 {
		return "<array>", nil
	}
	if v.vt&VT_VECTOR != 0 {
		return "<vector>", nil
	}

	switch v.vt {
	case VT_BSTR:
		return v.sval, nil
	case VT_R4:
		f, err := v.Float32()
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(float64(f), 'f', 6, 32), nil
	case VT_R8:
		f, err := v.Float64()
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(f, 'f', 6, 64), nil
	case VT_I1, VT_I2, VT_I4:
		i, err := v.Int32()
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(int64(i), 10), nil
	case VT_UI1, VT_UI2, VT_UI4:
		u, err := v.Uint32()
		if err != nil {
			return "", err
		}
		return strconv.FormatUint(uint64(u), 10), nil
	case VT_UI8:
		u, err := v.Uint64()
		if err != nil {
			return "", err
		}
		return strconv.FormatUint(u, 10), nil
	case VT_BOOL:
		b, err := v.Bool()
		if err != nil {
			return "", err
		}
		if b {
			return "1", nil
		}
		return "0", nil
	case VT_NULL:
		return "", nil
	default:
		return "", &TypeError{Tag: v.vt}
	}
}
