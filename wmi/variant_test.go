package wmi

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestVariant_Int32(t *testing.T) {
	tests := []struct {
		name string
		v    Variant
		want int32
	}{
		{name: "VT_I1 negative", v: NewIntVariant(VT_I1, -12), want: -12},
		{name: "VT_I2", v: NewIntVariant(VT_I2, -3000), want: -3000},
		{name: "VT_I4", v: NewIntVariant(VT_I4, 1 << 30), want: 1 << 30},
		{name: "VT_UI1", v: NewIntVariant(VT_UI1, 255), want: 255},
		{name: "VT_UI2 widened", v: NewIntVariant(VT_UI2, 300), want: 300},
		{name: "VT_UI4", v: NewIntVariant(VT_UI4, 70000), want: 70000},
		// The unsigned-32 narrowing is accepted as-is.
		{name: "VT_UI4 wraps", v: NewIntVariant(VT_UI4, 0xFFFFFFFF), want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.v.Int32()
			if err != nil {
				t.Fatalf("Int32: %v", err)
			}
			if got != tt.want {
				t.Errorf("Int32 = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestVariant_Bool(t *testing.T) {
	for _, b := range []bool{true, false} {
		got, err := NewBoolVariant(b).Bool()
		if err != nil {
			t.Fatalf("Bool: %v", err)
		}
		if got != b {
			t.Errorf("Bool = %v, want %v", got, b)
		}
	}
}

func TestVariant_Uint32(t *testing.T) {
	got, err := NewIntVariant(VT_UI4, 0xFFFFFFFF).Uint32()
	if err != nil {
		t.Fatalf("Uint32: %v", err)
	}
	if got != 0xFFFFFFFF {
		t.Errorf("Uint32 = %d, want %d", got, uint32(0xFFFFFFFF))
	}
}

func TestVariant_Uint64(t *testing.T) {
	const big = uint64(1) << 40
	got, err := NewIntVariant(VT_UI8, int64(big)).Uint64()
	if err != nil {
		t.Fatalf("Uint64: %v", err)
	}
	if got != big {
		t.Errorf("Uint64 = %d, want %d", got, big)
	}
}

func TestVariant_String(t *testing.T) {
	got, err := NewStringVariant("System").String()
	if err != nil {
		t.Fatalf("String: %v", err)
	}
	if got != "System" {
		t.Errorf("String = %q, want System", got)
	}
}

func TestVariant_Floats(t *testing.T) {
	f32, err := NewFloatVariant(VT_R4, 1.5).Float32()
	if err != nil {
		t.Fatalf("Float32: %v", err)
	}
	if f32 != 1.5 {
		t.Errorf("Float32 = %v, want 1.5", f32)
	}

	// VT_R4 widens to float64 exactly.
	f64, err := NewFloatVariant(VT_R4, 1.5).Float64()
	if err != nil {
		t.Fatalf("Float64 from VT_R4: %v", err)
	}
	if f64 != 1.5 {
		t.Errorf("Float64 from VT_R4 = %v, want 1.5", f64)
	}

	f64, err = NewFloatVariant(VT_R8, 2.25).Float64()
	if err != nil {
		t.Fatalf("Float64: %v", err)
	}
	if f64 != 2.25 {
		t.Errorf("Float64 = %v, want 2.25", f64)
	}

	// VT_R8 does not narrow to float32.
	if _, err := NewFloatVariant(VT_R8, 2.25).Float32(); err == nil {
		t.Error("Float32 from VT_R8: expected TypeError")
	}
}

// TestVariant_RejectionMatrix checks that every (tag, extractor) pair
// outside the accepted coercion table fails with a TypeError naming the raw
// tag.
func TestVariant_RejectionMatrix(t *testing.T) {
	extractors := map[string]struct {
		accepted map[VarType]bool
		call     func(Variant) error
	}{
		"Int32": {
			accepted: map[VarType]bool{VT_I1: true, VT_I2: true, VT_I4: true, VT_UI1: true, VT_UI2: true, VT_UI4: true},
			call:     func(v Variant) error { _, err := v.Int32(); return err },
		},
		"Bool": {
			accepted: map[VarType]bool{VT_BOOL: true},
			call:     func(v Variant) error { _, err := v.Bool(); return err },
		},
		"Uint32": {
			accepted: map[VarType]bool{VT_UI1: true, VT_UI2: true, VT_UI4: true},
			call:     func(v Variant) error { _, err := v.Uint32(); return err },
		},
		"Uint64": {
			accepted: map[VarType]bool{VT_UI8: true},
			call:     func(v Variant) error { _, err := v.Uint64(); return err },
		},
		"String": {
			accepted: map[VarType]bool{VT_BSTR: true},
			call:     func(v Variant) error { _, err := v.String(); return err },
		},
		"Float32": {
			accepted: map[VarType]bool{VT_R4: true},
			call:     func(v Variant) error { _, err := v.Float32(); return err },
		},
		"Float64": {
			accepted: map[VarType]bool{VT_R4: true, VT_R8: true},
			call:     func(v Variant) error { _, err := v.Float64(); return err },
		},
	}

	tags := []VarType{
		VT_EMPTY, VT_NULL, VT_I2, VT_I4, VT_R4, VT_R8, VT_BSTR, VT_BOOL,
		VT_I1, VT_UI1, VT_UI2, VT_UI4, VT_I8, VT_UI8,
		VT_ARRAY | VT_BSTR, VT_VECTOR | VT_UI1,
	}

	for name, ex := range extractors {
		for _, tag := range tags {
			if ex.accepted[tag] {
				continue
			}
			t.Run(fmt.Sprintf("%s/vt_%d", name, uint16(tag)), func(t *testing.T) {
				err := ex.call(NewTaggedVariant(tag))
				if err == nil {
					t.Fatalf("%s accepted tag %d", name, uint16(tag))
				}
				if !errors.Is(err, ErrTypeMismatch) {
					t.Errorf("error is not ErrTypeMismatch: %v", err)
				}
				var typeErr *TypeError
				if !errors.As(err, &typeErr) {
					t.Fatalf("error is not *TypeError: %v", err)
				}
				if typeErr.Tag != tag {
					t.Errorf("TypeError.Tag = %d, want %d", uint16(typeErr.Tag), uint16(tag))
				}
				want := fmt.Sprintf("wrong value type requested: %d", uint16(tag))
				if err.Error() != want {
					t.Errorf("message = %q, want %q", err.Error(), want)
				}
			})
		}
	}
}

func TestVariant_Format(t *testing.T) {
	tests := []struct {
		name string
		v    Variant
		want string
	}{
		{name: "array placeholder", v: NewTaggedVariant(VT_ARRAY | VT_BSTR), want: "<array>"},
		{name: "vector placeholder", v: NewTaggedVariant(VT_VECTOR | VT_UI1), want: "<vector>"},
		{name: "string verbatim", v: NewStringVariant("System"), want: "System"},
		{name: "float32", v: NewFloatVariant(VT_R4, 1.5), want: "1.500000"},
		{name: "float64", v: NewFloatVariant(VT_R8, 2.25), want: "2.250000"},
		{name: "signed int", v: NewIntVariant(VT_I2, -42), want: "-42"},
		{name: "unsigned int", v: NewIntVariant(VT_UI2, 300), want: "300"},
		{name: "unsigned 64", v: NewIntVariant(VT_UI8, 1 << 40), want: "1099511627776"},
		{name: "bool true", v: NewBoolVariant(true), want: "1"},
		{name: "bool false", v: NewBoolVariant(false), want: "0"},
		{name: "null empty", v: NewNullVariant(), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.v.Format()
			if err != nil {
				t.Fatalf("Format: %v", err)
			}
			if got != tt.want {
				t.Errorf("Format = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVariant_FormatRejectsUnsupported(t *testing.T) {
	for _, tag := range []VarType{VT_EMPTY, VT_I8} {
		if _, err := NewTaggedVariant(tag).Format(); !errors.Is(err, ErrTypeMismatch) {
			t.Errorf("Format(vt=%d): expected TypeError, got %v", uint16(tag), err)
		}
	}
}

func TestVariant_Type(t *testing.T) {
	if got := NewStringVariant("x").Type(); got != VT_BSTR {
		t.Errorf("Type = %d, want VT_BSTR", uint16(got))
	}
	if !NewNullVariant().IsNull() {
		t.Error("IsNull = false for VT_NULL")
	}
	if NewStringVariant("x").IsNull() {
		t.Error("IsNull = true for VT_BSTR")
	}
}

func TestComError_Message(t *testing.T) {
	tests := []struct {
		name   string
		status HRESULT
		want   string
	}{
		{name: "invalid namespace", status: WBEM_E_INVALID_NAMESPACE, want: "Invalid Namespace"},
		{name: "access denied", status: WBEM_E_ACCESS_DENIED, want: "Access Denied"},
		{name: "invalid class", status: WBEM_E_INVALID_CLASS, want: "Invalid Class"},
		{name: "invalid query", status: WBEM_E_INVALID_QUERY, want: "Invalid Query"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &ComError{Op: "Failed to connect", Status: tt.status}
			msg := err.Error()
			if !strings.Contains(msg, tt.want) {
				t.Errorf("message %q does not contain %q", msg, tt.want)
			}
			if !strings.Contains(msg, tt.status.String()) {
				t.Errorf("message %q does not carry hex status %q", msg, tt.status.String())
			}
		})
	}
}

func TestTimeoutError_Is(t *testing.T) {
	err := error(&TimeoutError{Op: "WMItimeout"})
	if !errors.Is(err, ErrTimeout) {
		t.Error("TimeoutError does not match ErrTimeout")
	}
	var te *TimeoutError
	if !errors.As(err, &te) || !te.Timeout() {
		t.Error("TimeoutError.Timeout() = false")
	}
}
