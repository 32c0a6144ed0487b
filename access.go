package jsondom

// At returns the i-th array element.
// The ok result reports whether the index was in range;
// it is false for non-array values as well.
func (v Value) At(i int) (Value, bool) {
	if !v.IsArray() || i < 0 || i >= len(v.arr) {
		return Null, false
	}
	return v.arr[i], true
}

// Get returns the value of the named object member.
// The ok result reports whether the member exists;
// it is false for non-object values as well.
func (v Value) Get(name string) (Value, bool) {
	if !v.IsObject() {
		return Null, false
	}
	for i := range v.obj {
		if v.obj[i].Name == name {
			return v.obj[i].Value, true
		}
	}
	return Null, false
}

// Element is the strict form of At: it fails with a *TypeError for
// non-array values and a *NotFoundError for an out-of-range index.
func (v Value) Element(i int) (Value, error) {
	if !v.IsArray() {
		return Null, &TypeError{Want: KindArray, Got: v.Kind()}
	}
	if i < 0 || i >= len(v.arr) {
		return Null, &NotFoundError{Index: i, byIndex: true}
	}
	return v.arr[i], nil
}

// Member is the strict form of Get: it fails with a *TypeError for
// non-object values and a *NotFoundError for a missing name.
func (v Value) Member(name string) (Value, error) {
	if !v.IsObject() {
		return Null, &TypeError{Want: KindObject, Got: v.Kind()}
	}
	if m, ok := v.Get(name); ok {
		return m, nil
	}
	return Null, &NotFoundError{Name: name}
}

// Elements returns a copy of the array's elements.
// It returns nil for every other variant.
func (v Value) Elements() []Value {
	if !v.IsArray() {
		return nil
	}
	elems := make([]Value, len(v.arr))
	copy(elems, v.arr)
	return elems
}

// Members returns a copy of the object's members in insertion order.
// It returns nil for every other variant.
func (v Value) Members() []Member {
	if !v.IsObject() {
		return nil
	}
	members := make([]Member, len(v.obj))
	copy(members, v.obj)
	return members
}

// GetAs extracts the named object member through the as extractor,
// which is typically a method expression such as Value.Bool or Value.Text.
// A missing member fails with a *NotFoundError, deliberately distinct
// from the *TypeError an extractor reports on a variant mismatch.
func GetAs[T any](obj Value, name string, as func(Value) (T, error)) (T, error) {
	var zero T
	if !obj.IsObject() {
		return zero, &TypeError{Want: KindObject, Got: obj.Kind()}
	}
	m, ok := obj.Get(name)
	if !ok {
		return zero, &NotFoundError{Name: name}
	}
	return as(m)
}

// GetElse is GetAs with a fallback thunk, invoked when the member is
// absent or is the JSON null. The extractor still applies to any other
// present value, so a variant mismatch remains an error.
func GetElse[T any](obj Value, name string, as func(Value) (T, error), fallback func() T) (T, error) {
	var zero T
	if !obj.IsObject() {
		return zero, &TypeError{Want: KindObject, Got: obj.Kind()}
	}
	m, ok := obj.Get(name)
	if !ok || m.IsNull() {
		return fallback(), nil
	}
	return as(m)
}

// AtAs extracts the i-th array element through the as extractor.
// An out-of-range index fails with a *NotFoundError.
func AtAs[T any](arr Value, i int, as func(Value) (T, error)) (T, error) {
	var zero T
	if !arr.IsArray() {
		return zero, &TypeError{Want: KindArray, Got: arr.Kind()}
	}
	e, ok := arr.At(i)
	if !ok {
		return zero, &NotFoundError{Index: i, byIndex: true}
	}
	return as(e)
}

// AtElse is AtAs with a fallback thunk, invoked when the index is out of
// range or the element is the JSON null.
func AtElse[T any](arr Value, i int, as func(Value) (T, error), fallback func() T) (T, error) {
	var zero T
	if !arr.IsArray() {
		return zero, &TypeError{Want: KindArray, Got: arr.Kind()}
	}
	e, ok := arr.At(i)
	if !ok || e.IsNull() {
		return fallback(), nil
	}
	return as(e)
}

// ElementsAs applies the as extractor to every array element in order,
// propagating the first failure encountered.
func ElementsAs[T any](arr Value, as func(Value) (T, error)) ([]T, error) {
	if !arr.IsArray() {
		return nil, &TypeError{Want: KindArray, Got: arr.Kind()}
	}
	out := make([]T, 0, len(arr.arr))
	for i := range arr.arr {
		t, err := as(arr.arr[i])
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// MembersAs applies the as extractor to every object member value in
// insertion order, propagating the first failure encountered.
func MembersAs[T any](obj Value, as func(Value) (T, error)) (map[string]T, error) {
	if !obj.IsObject() {
		return nil, &TypeError{Want: KindObject, Got: obj.Kind()}
	}
	out := make(map[string]T, len(obj.obj))
	for i := range obj.obj {
		t, err := as(obj.obj[i].Value)
		if err != nil {
			return nil, err
		}
		out[obj.obj[i].Name] = t
	}
	return out, nil
}
