package shred

import (
	"math"
	"strconv"
	"strings"
)

// The Value type represents any value a reader tree can assemble: one
// variant per primitive logical type, plus lists, maps, groups and
// optionals.
//
// Value instances are small, immutable objects, and usually passed by
// value between function calls. The zero value of Value is invalid and
// belongs to no variant.
type Value struct {
	// type
	kind int8 // XOR(Kind) so the zero value is invalid
	// payloads
	u64   uint64
	ts    Timestamp
	str   string
	bytes []byte
	dec   *Decimal
	list  List
	m     *Map
	grp   *Group
	opt   *Value
}

// Kind returns the discriminant of v, or -1 for the invalid zero value.
func (v Value) Kind() Kind { return ^Kind(v.kind) }

func makeValue(kind Kind) Value {
	return Value{kind: ^int8(kind)}
}

// BoolValue constructs a boolean value.
func BoolValue(value bool) Value {
	v := makeValue(KindBool)
	if value {
		v.u64 = 1
	}
	return v
}

// U8Value constructs an unsigned 8-bit integer value.
func U8Value(value uint8) Value {
	v := makeValue(KindU8)
	v.u64 = uint64(value)
	return v
}

// I8Value constructs a signed 8-bit integer value.
func I8Value(value int8) Value {
	v := makeValue(KindI8)
	v.u64 = uint64(value)
	return v
}

// U16Value constructs an unsigned 16-bit integer value.
func U16Value(value uint16) Value {
	v := makeValue(KindU16)
	v.u64 = uint64(value)
	return v
}

// I16Value constructs a signed 16-bit integer value.
func I16Value(value int16) Value {
	v := makeValue(KindI16)
	v.u64 = uint64(value)
	return v
}

// U32Value constructs an unsigned 32-bit integer value.
func U32Value(value uint32) Value {
	v := makeValue(KindU32)
	v.u64 = uint64(value)
	return v
}

// I32Value constructs a signed 32-bit integer value.
func I32Value(value int32) Value {
	v := makeValue(KindI32)
	v.u64 = uint64(value)
	return v
}

// U64Value constructs an unsigned 64-bit integer value.
func U64Value(value uint64) Value {
	v := makeValue(KindU64)
	v.u64 = value
	return v
}

// I64Value constructs a signed 64-bit integer value.
func I64Value(value int64) Value {
	v := makeValue(KindI64)
	v.u64 = uint64(value)
	return v
}

// F32Value constructs a 32-bit floating point value.
func F32Value(value float32) Value {
	v := makeValue(KindF32)
	v.u64 = uint64(math.Float32bits(value))
	return v
}

// F64Value constructs a 64-bit floating point value.
func F64Value(value float64) Value {
	v := makeValue(KindF64)
	v.u64 = math.Float64bits(value)
	return v
}

// DateValue constructs a date value.
func DateValue(value Date) Value {
	v := makeValue(KindDate)
	v.u64 = uint64(value)
	return v
}

// TimeValue constructs a time-of-day value.
func TimeValue(value Time) Value {
	v := makeValue(KindTime)
	v.u64 = uint64(value)
	return v
}

// TimestampValue constructs a timestamp value.
func TimestampValue(value Timestamp) Value {
	v := makeValue(KindTimestamp)
	v.ts = value
	return v
}

// DecimalValue constructs a decimal value.
func DecimalValue(value Decimal) Value {
	v := makeValue(KindDecimal)
	v.dec = &value
	return v
}

// ByteArrayValue constructs a binary value. The byte slice is not copied;
// the returned value holds a reference to it.
func ByteArrayValue(value []byte) Value {
	v := makeValue(KindByteArray)
	v.bytes = value
	return v
}

// BsonValue constructs a BSON binary value.
func BsonValue(value Bson) Value {
	v := makeValue(KindBson)
	v.bytes = value
	return v
}

// StringValue constructs a UTF-8 string value.
func StringValue(value string) Value {
	v := makeValue(KindString)
	v.str = value
	return v
}

// JsonValue constructs a JSON document value.
func JsonValue(value Json) Value {
	v := makeValue(KindJson)
	v.str = string(value)
	return v
}

// EnumValue constructs an enum string value.
func EnumValue(value Enum) Value {
	v := makeValue(KindEnum)
	v.str = string(value)
	return v
}

// ListValue constructs a list value.
func ListValue(value List) Value {
	v := makeValue(KindList)
	v.list = value
	return v
}

// MapValue constructs a map value.
func MapValue(value *Map) Value {
	v := makeValue(KindMap)
	v.m = value
	return v
}

// GroupValue constructs a group value.
func GroupValue(value Group) Value {
	v := makeValue(KindGroup)
	v.grp = &value
	return v
}

// Some constructs a present optional value. The method panics if inner is
// itself an optional: options never nest.
func Some(inner Value) Value {
	if inner.IsOption() {
		panic("cannot nest an option value inside an option value")
	}
	v := makeValue(KindOption)
	v.opt = &inner
	return v
}

// None constructs an absent optional value.
func None() Value {
	return makeValue(KindOption)
}

// Typed predicates. Each returns true if the value holds the matching
// variant.

func (v Value) IsBool() bool      { return v.Kind() == KindBool }
func (v Value) IsU8() bool        { return v.Kind() == KindU8 }
func (v Value) IsI8() bool        { return v.Kind() == KindI8 }
func (v Value) IsU16() bool       { return v.Kind() == KindU16 }
func (v Value) IsI16() bool       { return v.Kind() == KindI16 }
func (v Value) IsU32() bool       { return v.Kind() == KindU32 }
func (v Value) IsI32() bool       { return v.Kind() == KindI32 }
func (v Value) IsU64() bool       { return v.Kind() == KindU64 }
func (v Value) IsI64() bool       { return v.Kind() == KindI64 }
func (v Value) IsF32() bool       { return v.Kind() == KindF32 }
func (v Value) IsF64() bool       { return v.Kind() == KindF64 }
func (v Value) IsDate() bool      { return v.Kind() == KindDate }
func (v Value) IsTime() bool      { return v.Kind() == KindTime }
func (v Value) IsTimestamp() bool { return v.Kind() == KindTimestamp }
func (v Value) IsDecimal() bool   { return v.Kind() == KindDecimal }
func (v Value) IsByteArray() bool { return v.Kind() == KindByteArray }
func (v Value) IsBson() bool      { return v.Kind() == KindBson }
func (v Value) IsString() bool    { return v.Kind() == KindString }
func (v Value) IsJson() bool      { return v.Kind() == KindJson }
func (v Value) IsEnum() bool      { return v.Kind() == KindEnum }
func (v Value) IsList() bool      { return v.Kind() == KindList }
func (v Value) IsMap() bool       { return v.Kind() == KindMap }
func (v Value) IsGroup() bool     { return v.Kind() == KindGroup }
func (v Value) IsOption() bool    { return v.Kind() == KindOption }

// IsNone returns true if the value is an absent optional.
func (v Value) IsNone() bool { return v.IsOption() && v.opt == nil }

// IsSome returns true if the value is a present optional.
func (v Value) IsSome() bool { return v.IsOption() && v.opt != nil }

// Typed extractors. Each returns the payload of the matching variant, or
// a TypeMismatchError if the value holds a different one.

// AsBool returns the value as a bool.
func (v Value) AsBool() (bool, error) {
	if !v.IsBool() {
		return false, errMismatch("bool", v)
	}
	return v.u64 != 0, nil
}

// AsU8 returns the value as a uint8.
func (v Value) AsU8() (uint8, error) {
	if !v.IsU8() {
		return 0, errMismatch("u8", v)
	}
	return uint8(v.u64), nil
}

// AsI8 returns the value as an int8.
func (v Value) AsI8() (int8, error) {
	if !v.IsI8() {
		return 0, errMismatch("i8", v)
	}
	return int8(v.u64), nil
}

// AsU16 returns the value as a uint16.
func (v Value) AsU16() (uint16, error) {
	if !v.IsU16() {
		return 0, errMismatch("u16", v)
	}
	return uint16(v.u64), nil
}

// AsI16 returns the value as an int16.
func (v Value) AsI16() (int16, error) {
	if !v.IsI16() {
		return 0, errMismatch("i16", v)
	}
	return int16(v.u64), nil
}

// AsU32 returns the value as a uint32.
func (v Value) AsU32() (uint32, error) {
	if !v.IsU32() {
		return 0, errMismatch("u32", v)
	}
	return uint32(v.u64), nil
}

// AsI32 returns the value as an int32.
func (v Value) AsI32() (int32, error) {
	if !v.IsI32() {
		return 0, errMismatch("i32", v)
	}
	return int32(v.u64), nil
}

// AsU64 returns the value as a uint64.
func (v Value) AsU64() (uint64, error) {
	if !v.IsU64() {
		return 0, errMismatch("u64", v)
	}
	return v.u64, nil
}

// AsI64 returns the value as an int64.
func (v Value) AsI64() (int64, error) {
	if !v.IsI64() {
		return 0, errMismatch("i64", v)
	}
	return int64(v.u64), nil
}

// AsF32 returns the value as a float32.
func (v Value) AsF32() (float32, error) {
	if !v.IsF32() {
		return 0, errMismatch("f32", v)
	}
	return math.Float32frombits(uint32(v.u64)), nil
}

// AsF64 returns the value as a float64.
func (v Value) AsF64() (float64, error) {
	if !v.IsF64() {
		return 0, errMismatch("f64", v)
	}
	return math.Float64frombits(v.u64), nil
}

// AsDate returns the value as a Date.
func (v Value) AsDate() (Date, error) {
	if !v.IsDate() {
		return 0, errMismatch("date", v)
	}
	return Date(v.u64), nil
}

// AsTime returns the value as a Time.
func (v Value) AsTime() (Time, error) {
	if !v.IsTime() {
		return 0, errMismatch("time", v)
	}
	return Time(v.u64), nil
}

// AsTimestamp returns the value as a Timestamp.
func (v Value) AsTimestamp() (Timestamp, error) {
	if !v.IsTimestamp() {
		return Timestamp{}, errMismatch("timestamp", v)
	}
	return v.ts, nil
}

// AsDecimal returns the value as a Decimal.
func (v Value) AsDecimal() (Decimal, error) {
	if !v.IsDecimal() {
		return Decimal{}, errMismatch("decimal", v)
	}
	return *v.dec, nil
}

// AsByteArray returns the value as a byte slice.
func (v Value) AsByteArray() ([]byte, error) {
	if !v.IsByteArray() {
		return nil, errMismatch("byte_array", v)
	}
	return v.bytes, nil
}

// AsBson returns the value as BSON bytes.
func (v Value) AsBson() (Bson, error) {
	if !v.IsBson() {
		return nil, errMismatch("bson", v)
	}
	return Bson(v.bytes), nil
}

// AsString returns the value as a string.
func (v Value) AsString() (string, error) {
	if !v.IsString() {
		return "", errMismatch("string", v)
	}
	return v.str, nil
}

// AsJson returns the value as a JSON document.
func (v Value) AsJson() (Json, error) {
	if !v.IsJson() {
		return "", errMismatch("json", v)
	}
	return Json(v.str), nil
}

// AsEnum returns the value as an enum string.
func (v Value) AsEnum() (Enum, error) {
	if !v.IsEnum() {
		return "", errMismatch("enum", v)
	}
	return Enum(v.str), nil
}

// AsList returns the value as a List.
func (v Value) AsList() (List, error) {
	if !v.IsList() {
		return nil, errMismatch("list", v)
	}
	return v.list, nil
}

// AsMap returns the value as a Map.
func (v Value) AsMap() (*Map, error) {
	if !v.IsMap() {
		return nil, errMismatch("map", v)
	}
	return v.m, nil
}

// AsGroup returns the value as a Group.
func (v Value) AsGroup() (Group, error) {
	if !v.IsGroup() {
		return Group{}, errMismatch("group", v)
	}
	return *v.grp, nil
}

// AsOption returns the inner value of an optional and whether it is
// present. An absent optional yields a zero Value and some == false.
func (v Value) AsOption() (inner Value, some bool, err error) {
	if !v.IsOption() {
		return Value{}, false, errMismatch("option", v)
	}
	if v.opt == nil {
		return Value{}, false, nil
	}
	return *v.opt, true, nil
}

// Equal returns true if v1 and v2 hold the same variant and the same
// payload. Lists, maps, groups and options compare recursively; maps
// compare as unordered key/value sets.
func Equal(v1, v2 Value) bool {
	if v1.Kind() != v2.Kind() {
		return false
	}
	switch v1.Kind() {
	case KindBool, KindU8, KindI8, KindU16, KindI16, KindU32, KindI32,
		KindU64, KindI64, KindDate, KindTime:
		return v1.u64 == v2.u64
	case KindF32:
		return math.Float32frombits(uint32(v1.u64)) == math.Float32frombits(uint32(v2.u64))
	case KindF64:
		return math.Float64frombits(v1.u64) == math.Float64frombits(v2.u64)
	case KindTimestamp:
		return v1.ts == v2.ts
	case KindDecimal:
		return equalDecimal(*v1.dec, *v2.dec)
	case KindByteArray, KindBson:
		return string(v1.bytes) == string(v2.bytes)
	case KindString, KindJson, KindEnum:
		return v1.str == v2.str
	case KindList:
		return equalList(v1.list, v2.list)
	case KindMap:
		return equalMap(v1.m, v2.m)
	case KindGroup:
		return equalGroup(*v1.grp, *v2.grp)
	case KindOption:
		if (v1.opt == nil) != (v2.opt == nil) {
			return false
		}
		return v1.opt == nil || Equal(*v1.opt, *v2.opt)
	default:
		// both invalid
		return true
	}
}

// String returns a human-readable representation of the value.
func (v Value) String() string {
	switch v.Kind() {
	case KindBool:
		return strconv.FormatBool(v.u64 != 0)
	case KindU8, KindU16, KindU32, KindU64:
		return strconv.FormatUint(v.u64, 10)
	case KindI8:
		return strconv.FormatInt(int64(int8(v.u64)), 10)
	case KindI16:
		return strconv.FormatInt(int64(int16(v.u64)), 10)
	case KindI32:
		return strconv.FormatInt(int64(int32(v.u64)), 10)
	case KindI64:
		return strconv.FormatInt(int64(v.u64), 10)
	case KindF32:
		return strconv.FormatFloat(float64(math.Float32frombits(uint32(v.u64))), 'g', -1, 32)
	case KindF64:
		return strconv.FormatFloat(math.Float64frombits(v.u64), 'g', -1, 64)
	case KindDate:
		return Date(v.u64).String()
	case KindTime:
		return Time(v.u64).String()
	case KindTimestamp:
		return v.ts.String()
	case KindDecimal:
		return v.dec.String()
	case KindByteArray:
		return strconv.Quote(string(v.bytes))
	case KindBson:
		return Bson(v.bytes).String()
	case KindString:
		return strconv.Quote(v.str)
	case KindJson:
		return v.str
	case KindEnum:
		return v.str
	case KindList:
		b := new(strings.Builder)
		b.WriteString("[")
		for i, e := range v.list {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(e.String())
		}
		b.WriteString("]")
		return b.String()
	case KindMap:
		b := new(strings.Builder)
		b.WriteString("{")
		for i, e := range v.m.Entries() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(e.Key.String())
			b.WriteString(": ")
			b.WriteString(e.Value.String())
		}
		b.WriteString("}")
		return b.String()
	case KindGroup:
		b := new(strings.Builder)
		b.WriteString("{")
		for i := 0; i < v.grp.Len(); i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(v.grp.Names().Name(i))
			b.WriteString(": ")
			b.WriteString(v.grp.Field(i).String())
		}
		b.WriteString("}")
		return b.String()
	case KindOption:
		if v.opt == nil {
			return "null"
		}
		return v.opt.String()
	default:
		return "<invalid>"
	}
}

// GoString returns a Go value representation of v.
func (v Value) GoString() string {
	return "shred.Value{" + v.Kind().String() + ":" + v.String() + "}"
}
