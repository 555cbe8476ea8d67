package core

import "reflect"

// Record is an opaque, JSON-compatible value bag associated with a history
// key. Stores never inspect or validate its structure.
type Record map[string]any

// HistoryStore persists session records for later actions. Keys are opaque
// non-empty strings; storing under an existing key overwrites the previous
// record.
//
// Absence is not an error: Retrieve returns an empty, non-nil Record for keys
// that were never stored or have been deleted, and Delete of an unknown key is
// a no-op. An empty key fails with ErrInvalidArgument. Durable backends report
// persistence failures as *IOError.
//
// Implementations must be safe for concurrent use. Short method names align
// with the other *Store interfaces.
type HistoryStore interface {
	Store(key string, record Record) error
	Retrieve(key string) (Record, error)
	Delete(key string) error
	Keys() ([]string, error)
}

// CloneRecord returns a deep copy of r. Maps, slices, arrays, pointers and
// interfaces are copied recursively whatever their element type; structs are
// copied by value. A nil record yields an empty Record.
func CloneRecord(r Record) Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case Record:
		return CloneRecord(val)
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, inner := range val {
			m[k] = cloneValue(inner)
		}
		return m
	case []any:
		s := make([]any, len(val))
		for i, inner := range val {
			s[i] = cloneValue(inner)
		}
		return s
	case []string:
		return append([]string(nil), val...)
	case []map[string]any:
		s := make([]map[string]any, len(val))
		for i, inner := range val {
			s[i] = cloneValue(inner).(map[string]any)
		}
		return s
	case nil, string, bool, float64, float32, int, int64, int32, uint, uint64:
		return v
	default:
		return cloneReflect(reflect.ValueOf(v)).Interface()
	}
}

// cloneReflect deep-copies typed containers the fast path does not know,
// e.g. map[string]string, []int or []Record.
func cloneReflect(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Map:
		if v.IsNil() {
			return v
		}
		m := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			m.SetMapIndex(iter.Key(), cloneReflect(iter.Value()))
		}
		return m
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		s := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			s.Index(i).Set(cloneReflect(v.Index(i)))
		}
		return s
	case reflect.Array:
		a := reflect.New(v.Type()).Elem()
		for i := 0; i < v.Len(); i++ {
			a.Index(i).Set(cloneReflect(v.Index(i)))
		}
		return a
	case reflect.Pointer:
		if v.IsNil() {
			return v
		}
		p := reflect.New(v.Type().Elem())
		p.Elem().Set(cloneReflect(v.Elem()))
		return p
	case reflect.Interface:
		if v.IsNil() {
			return v
		}
		out := reflect.New(v.Type()).Elem()
		out.Set(cloneReflect(v.Elem()))
		return out
	default:
		return v
	}
}
