package wmi

// Object wraps one instrumentation record. Property access is by name and
// always re-fetches from the underlying handle; nothing is cached.
//
// An Object obtained from Result.Record holds its own reference and must be
// closed. The zero Object (and nil) behaves as an absent record: Contains
// reports false, TypeID reports VT_EMPTY, GetVarByKey fails.
type Object struct {
	obj ClassObject
}

// newObject wraps a class object handle without taking an extra reference.
func newObject(obj ClassObject) *Object {
	return &Object{obj: obj}
}

// Contains reports whether the record has a property with the given name
// and a non-null value. Presence checks never fail: a fetch error from the
// service is reported as absent.
func (o *Object) Contains(name string) bool {
	if o == nil || o.obj == nil {
		return false
	}
	v, hr := o.obj.Get(name)
	if hr.Failed() {
		return false
	}
	return !v.IsNull()
}

// TypeID returns the raw type tag of the named property, or VT_EMPTY (0)
// when the property cannot be fetched.
func (o *Object) TypeID(name string) VarType {
	if o == nil || o.obj == nil {
		return VT_EMPTY
	}
	v, hr := o.obj.Get(name)
	if hr.Failed() {
		return VT_EMPTY
	}
	return v.Type()
}

// GetVarByKey fetches the named property for typed extraction. Unlike the
// presence helpers it propagates fetch failures, naming the key and the
// resolved status.
func (o *Object) GetVarByKey(name string) (Variant, error) {
	if o == nil || o.obj == nil {
		return Variant{}, &ComError{Op: "Failed to retrieve key: " + name, Status: WBEM_E_INVALID_OBJECT}
	}
	v, hr := o.obj.Get(name)
	if hr.Failed() {
		return Variant{}, &ComError{Op: "Failed to retrieve key: " + name, Status: hr}
	}
	return v, nil
}

// Names returns the record's non-system property names.
func (o *Object) Names() ([]string, error) {
	if o == nil || o.obj == nil {
		return nil, &ComError{Op: "Failed to retrieve field names", Status: WBEM_E_INVALID_OBJECT}
	}
	names, hr := o.obj.Names()
	if hr.Failed() {
		return nil, &ComError{Op: "Failed to retrieve field names", Status: hr}
	}
	return names, nil
}

// Close releases the record's handle. Safe to call on nil and more than
// once.
func (o *Object) Close() {
	if o == nil || o.obj == nil {
		return
	}
	o.obj.Release()
	o.obj = nil
}
