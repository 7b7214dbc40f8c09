package shred

import (
	"math"
	"strconv"

	"github.com/segmentio/encoding/json"
)

// MarshalJSON renders the value as JSON. Groups become objects in field
// order, maps become objects when their keys render as strings and arrays
// of {key, value} pairs otherwise, absent optionals become null, and Json
// payloads are embedded verbatim when they hold a valid document.
func (v Value) MarshalJSON() ([]byte, error) {
	return v.appendJSON(nil)
}

func (v Value) appendJSON(b []byte) ([]byte, error) {
	switch v.Kind() {
	case KindBool:
		return strconv.AppendBool(b, v.u64 != 0), nil
	case KindU8, KindU16, KindU32, KindU64:
		return strconv.AppendUint(b, v.u64, 10), nil
	case KindI8:
		return strconv.AppendInt(b, int64(int8(v.u64)), 10), nil
	case KindI16:
		return strconv.AppendInt(b, int64(int16(v.u64)), 10), nil
	case KindI32:
		return strconv.AppendInt(b, int64(int32(v.u64)), 10), nil
	case KindI64:
		return strconv.AppendInt(b, int64(v.u64), 10), nil
	case KindF32:
		return appendJSONValue(b, math.Float32frombits(uint32(v.u64)))
	case KindF64:
		return appendJSONValue(b, math.Float64frombits(v.u64))
	case KindDate:
		return appendJSONValue(b, Date(v.u64).String())
	case KindTime:
		return appendJSONValue(b, Time(v.u64).String())
	case KindTimestamp:
		return appendJSONValue(b, v.ts.String())
	case KindDecimal:
		return appendJSONValue(b, v.dec.String())
	case KindByteArray, KindBson:
		return appendJSONValue(b, v.bytes)
	case KindString, KindEnum:
		return appendJSONValue(b, v.str)
	case KindJson:
		if json.Valid([]byte(v.str)) {
			return append(b, v.str...), nil
		}
		return appendJSONValue(b, v.str)
	case KindList:
		b = append(b, '[')
		for i, e := range v.list {
			if i > 0 {
				b = append(b, ',')
			}
			var err error
			b, err = e.appendJSON(b)
			if err != nil {
				return nil, err
			}
		}
		return append(b, ']'), nil
	case KindMap:
		return v.m.appendJSON(b)
	case KindGroup:
		b = append(b, '{')
		for i := 0; i < v.grp.Len(); i++ {
			if i > 0 {
				b = append(b, ',')
			}
			var err error
			b, err = appendJSONValue(b, v.grp.Names().Name(i))
			if err != nil {
				return nil, err
			}
			b = append(b, ':')
			b, err = v.grp.Field(i).appendJSON(b)
			if err != nil {
				return nil, err
			}
		}
		return append(b, '}'), nil
	case KindOption:
		if v.opt == nil {
			return append(b, "null"...), nil
		}
		return v.opt.appendJSON(b)
	default:
		return append(b, "null"...), nil
	}
}

func (m *Map) appendJSON(b []byte) ([]byte, error) {
	if keys, ok := m.stringKeys(); ok {
		b = append(b, '{')
		for i, e := range m.entries {
			if i > 0 {
				b = append(b, ',')
			}
			var err error
			b, err = appendJSONValue(b, keys[i])
			if err != nil {
				return nil, err
			}
			b = append(b, ':')
			b, err = e.Value.appendJSON(b)
			if err != nil {
				return nil, err
			}
		}
		return append(b, '}'), nil
	}

	b = append(b, '[')
	for i, e := range m.entries {
		if i > 0 {
			b = append(b, ',')
		}
		b = append(b, `{"key":`...)
		var err error
		b, err = e.Key.appendJSON(b)
		if err != nil {
			return nil, err
		}
		b = append(b, `,"value":`...)
		b, err = e.Value.appendJSON(b)
		if err != nil {
			return nil, err
		}
		b = append(b, '}')
	}
	return append(b, ']'), nil
}

func (m *Map) stringKeys() ([]string, bool) {
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		switch e.Key.Kind() {
		case KindString, KindEnum:
			keys[i] = e.Key.str
		default:
			return nil, false
		}
	}
	return keys, true
}

func appendJSONValue(b []byte, v interface{}) ([]byte, error) {
	enc, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append(b, enc...), nil
}
