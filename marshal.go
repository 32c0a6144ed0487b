package jsondom

import "slices"

// Marshaler is the contract for caller-defined types that participate
// in serialization: the type renders itself onto a Writer using the
// ordinary write calls, and the writer's state machine keeps the result
// well formed.
//
// There is no deserialization counterpart enforced here. By convention,
// types provide a constructor or factory accepting an object or array
// Value, e.g. NewConfig(v jsondom.Value) (*Config, error).
type Marshaler interface {
	MarshalJSONTo(w *Writer) error
}

// Marshal renders m as a complete JSON document.
func Marshal(m Marshaler, opts ...Options) ([]byte, error) {
	w := NewBuffer(opts...)
	if err := m.MarshalJSONTo(w); err != nil {
		return nil, err
	}
	return w.Bytes()
}

// WriteAll writes a whole JSON array from a slice of marshalers.
func WriteAll[T Marshaler](w *Writer, items []T) error {
	if err := w.BeginArray(); err != nil {
		return err
	}
	for _, item := range items {
		if err := item.MarshalJSONTo(w); err != nil {
			return err
		}
	}
	return w.EndArray()
}

// WriteMap writes a whole JSON object from a map of marshalers,
// in sorted name order since Go maps have no insertion order.
func WriteMap[T Marshaler](w *Writer, m map[string]T) error {
	if err := w.BeginObject(); err != nil {
		return err
	}
	for _, name := range sortedNames(m) {
		if err := w.Name(name); err != nil {
			return err
		}
		if err := m[name].MarshalJSONTo(w); err != nil {
			return err
		}
	}
	return w.EndObject()
}

func sortedNames[T any](m map[string]T) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
