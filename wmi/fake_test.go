package wmi

import "time"

// Fake backend for driving Session/Result/Object without COM. All fakes
// track reference counts so the tests can pin the ownership rules: handles
// are created with one reference and must end at zero.

type fakeObject struct {
	refs     int
	fields   map[string]Variant
	errs     map[string]HRESULT
	names    []string
	namesErr HRESULT
}

func newFakeObject(fields map[string]Variant) *fakeObject {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	return &fakeObject{refs: 1, fields: fields, names: names}
}

func (o *fakeObject) Get(name string) (Variant, HRESULT) {
	if hr, ok := o.errs[name]; ok {
		return Variant{}, hr
	}
	v, ok := o.fields[name]
	if !ok {
		return Variant{}, WBEM_E_NOT_FOUND
	}
	return v, WBEM_S_NO_ERROR
}

func (o *fakeObject) Names() ([]string, HRESULT) {
	if o.namesErr != 0 {
		return nil, o.namesErr
	}
	return o.names, WBEM_S_NO_ERROR
}

func (o *fakeObject) AddRef() {
	o.refs++
}

func (o *fakeObject) Release() {
	o.refs--
}

// enumStep scripts one Next call: the object handed out (nil except for
// WBEM_S_NO_ERROR) and the status.
type enumStep struct {
	obj *fakeObject
	hr  HRESULT
}

type fakeEnumerator struct {
	refs  int
	steps []enumStep
	calls int
}

func newFakeEnumerator(steps ...enumStep) *fakeEnumerator {
	return &fakeEnumerator{refs: 1, steps: steps}
}

func (e *fakeEnumerator) Next(timeout time.Duration) (ClassObject, HRESULT) {
	if e.calls >= len(e.steps) {
		return nil, WBEM_S_FALSE
	}
	st := e.steps[e.calls]
	e.calls++
	if st.hr == WBEM_S_NO_ERROR {
		return st.obj, WBEM_S_NO_ERROR
	}
	return nil, st.hr
}

func (e *fakeEnumerator) Release() {
	e.refs--
}

type fakeServices struct {
	refs     int
	enums    map[string]*fakeEnumerator
	queryErr HRESULT
	enumErr  HRESULT
}

func newFakeServices() *fakeServices {
	return &fakeServices{refs: 1, enums: make(map[string]*fakeEnumerator)}
}

func (s *fakeServices) ExecQuery(wql string) (Enumerator, HRESULT) {
	if s.queryErr != 0 {
		return nil, s.queryErr
	}
	enum, ok := s.enums[wql]
	if !ok {
		return nil, WBEM_E_INVALID_QUERY
	}
	return enum, WBEM_S_NO_ERROR
}

func (s *fakeServices) CreateInstanceEnum(class string) (Enumerator, HRESULT) {
	if s.enumErr != 0 {
		return nil, s.enumErr
	}
	enum, ok := s.enums[class]
	if !ok {
		return nil, WBEM_E_INVALID_CLASS
	}
	return enum, WBEM_S_NO_ERROR
}

func (s *fakeServices) Release() {
	s.refs--
}

type fakeLocator struct {
	refs       int
	services   *fakeServices
	connectErr HRESULT
}

func newFakeLocator(services *fakeServices) *fakeLocator {
	return &fakeLocator{refs: 1, services: services}
}

func (l *fakeLocator) ConnectServer(namespace string) (Services, HRESULT) {
	if l.connectErr != 0 {
		return nil, l.connectErr
	}
	return l.services, WBEM_S_NO_ERROR
}

func (l *fakeLocator) Release() {
	l.refs--
}
