package shred

import (
	"reflect"
	"time"

	"github.com/google/uuid"
)

// ValueOf constructs a Value from a Go value using the following
// conversion table:
//
//	Go type         | Value variant
//	--------------- | -------------
//	nil             | Option(None)
//	bool            | Bool
//	int8  ... int64 | I8 ... I64
//	uint8 ... uint64| U8 ... U64
//	int, uint       | I64, U64
//	float32/float64 | F32/F64
//	string          | String
//	[]byte          | ByteArray
//	uuid.UUID       | ByteArray (16 bytes)
//	time.Time       | Timestamp (epoch microseconds)
//	Date, Time, ... | the matching variant
//	[]T             | List of the converted elements
//	*T              | Option of the converted element
//	map[K]V         | Map of the converted keys and values
//
// Entries converted from a Go map are inserted in Go's map iteration
// order, which is not defined.
//
// When converting a []byte value the underlying byte array is not copied;
// the returned value holds a reference to it.
//
// The function panics if the Go value cannot be represented.
func ValueOf(v interface{}) Value {
	value, ok := valueOf(v)
	if !ok {
		panic("cannot create value from go value of type " + reflect.TypeOf(v).String())
	}
	return value
}

func valueOf(v interface{}) (Value, bool) {
	switch x := v.(type) {
	case nil:
		return None(), true
	case Value:
		return x, true
	case bool:
		return BoolValue(x), true
	case uint8:
		return U8Value(x), true
	case int8:
		return I8Value(x), true
	case uint16:
		return U16Value(x), true
	case int16:
		return I16Value(x), true
	case uint32:
		return U32Value(x), true
	case int32:
		return I32Value(x), true
	case uint64:
		return U64Value(x), true
	case int64:
		return I64Value(x), true
	case uint:
		return U64Value(uint64(x)), true
	case int:
		return I64Value(int64(x)), true
	case float32:
		return F32Value(x), true
	case float64:
		return F64Value(x), true
	case string:
		return StringValue(x), true
	case []byte:
		return ByteArrayValue(x), true
	case uuid.UUID:
		return ByteArrayValue(x[:]), true
	case time.Time:
		return TimestampValue(TimestampFromMicros(x.UnixMicro())), true
	case Date:
		return DateValue(x), true
	case Time:
		return TimeValue(x), true
	case Timestamp:
		return TimestampValue(x), true
	case Decimal:
		return DecimalValue(x), true
	case Bson:
		return BsonValue(x), true
	case Json:
		return JsonValue(x), true
	case Enum:
		return EnumValue(x), true
	case List:
		return ListValue(x), true
	case []Value:
		return ListValue(List(x)), true
	case *Map:
		return MapValue(x), true
	case Group:
		return GroupValue(x), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		list := make(List, rv.Len())
		for i := range list {
			e, ok := valueOf(rv.Index(i).Interface())
			if !ok {
				return Value{}, false
			}
			list[i] = e
		}
		return ListValue(list), true
	case reflect.Ptr:
		if rv.IsNil() {
			return None(), true
		}
		e, ok := valueOf(rv.Elem().Interface())
		if !ok {
			return Value{}, false
		}
		if e.IsOption() {
			return e, true
		}
		return Some(e), true
	case reflect.Map:
		m := NewMap()
		iter := rv.MapRange()
		for iter.Next() {
			k, ok := valueOf(iter.Key().Interface())
			if !ok {
				return Value{}, false
			}
			e, ok := valueOf(iter.Value().Interface())
			if !ok {
				return Value{}, false
			}
			m.Set(k, e)
		}
		return MapValue(m), true
	}

	return Value{}, false
}

// Matches reports whether the value equals the given Go value once
// converted through ValueOf. A Go value with no conversion, or one that
// converts to a different variant, yields false rather than an error.
func (v Value) Matches(x interface{}) bool {
	w, ok := valueOf(x)
	if !ok {
		return false
	}
	return Equal(v, w)
}

// ListOf downcasts a list value into a Go slice, converting every element
// with elem. It fails if the value is not a list or any element fails to
// convert.
func ListOf[T any](v Value, elem func(Value) (T, error)) ([]T, error) {
	list, err := v.AsList()
	if err != nil {
		return nil, err
	}
	out := make([]T, len(list))
	for i, e := range list {
		out[i], err = elem(e)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// MapOf downcasts a map value into a Go map, converting keys and values.
// Insertion order is lost; use AsMap to preserve it.
func MapOf[K comparable, V any](v Value, key func(Value) (K, error), val func(Value) (V, error)) (map[K]V, error) {
	m, err := v.AsMap()
	if err != nil {
		return nil, err
	}
	out := make(map[K]V, m.Len())
	for _, e := range m.Entries() {
		k, err := key(e.Key)
		if err != nil {
			return nil, err
		}
		w, err := val(e.Value)
		if err != nil {
			return nil, err
		}
		out[k] = w
	}
	return out, nil
}

// OptionOf downcasts an optional value, converting the inner value with
// inner when present. An absent optional yields nil.
func OptionOf[T any](v Value, inner func(Value) (T, error)) (*T, error) {
	e, some, err := v.AsOption()
	if err != nil {
		return nil, err
	}
	if !some {
		return nil, nil
	}
	t, err := inner(e)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
