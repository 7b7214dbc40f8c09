package shred

// Kind is the discriminant shared by Value and Schema: one constant per
// shape of the type lattice. The constant order is significant, it is the
// tag mixed into value hashes.
type Kind int8

const (
	KindBool Kind = iota
	KindU8
	KindI8
	KindU16
	KindI16
	KindU32
	KindI32
	KindU64
	KindI64
	KindF32
	KindF64
	KindDate
	KindTime
	KindTimestamp
	KindDecimal
	KindByteArray
	KindBson
	KindString
	KindJson
	KindEnum
	KindList
	KindMap
	KindGroup
	KindOption
	// KindBox appears only in schemas; a boxed value is its inner value.
	KindBox
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindU8:
		return "u8"
	case KindI8:
		return "i8"
	case KindU16:
		return "u16"
	case KindI16:
		return "i16"
	case KindU32:
		return "u32"
	case KindI32:
		return "i32"
	case KindU64:
		return "u64"
	case KindI64:
		return "i64"
	case KindF32:
		return "f32"
	case KindF64:
		return "f64"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindTimestamp:
		return "timestamp"
	case KindDecimal:
		return "decimal"
	case KindByteArray:
		return "byte_array"
	case KindBson:
		return "bson"
	case KindString:
		return "string"
	case KindJson:
		return "json"
	case KindEnum:
		return "enum"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindGroup:
		return "group"
	case KindOption:
		return "option"
	case KindBox:
		return "box"
	default:
		return "<?>"
	}
}

// Schema describes the shape of the values produced by a reader tree. It
// is a closed sum: the set of implementations is fixed by the file format
// and cannot be extended from outside the package.
//
// Schemas are immutable value trees and may be copied freely.
type Schema interface {
	// Kind returns the discriminant of the schema node.
	Kind() Kind

	isSchema()
}

// TimeUnit is the resolution of a time-of-day column.
type TimeUnit int8

const (
	Millis TimeUnit = iota
	Micros
)

func (u TimeUnit) String() string {
	switch u {
	case Millis:
		return "millis"
	case Micros:
		return "micros"
	default:
		return "<?>"
	}
}

// TimestampUnit is the resolution of a timestamp column.
type TimestampUnit int8

const (
	TimestampMillis TimestampUnit = iota
	TimestampMicros
	TimestampInt96
)

func (u TimestampUnit) String() string {
	switch u {
	case TimestampMillis:
		return "millis"
	case TimestampMicros:
		return "micros"
	case TimestampInt96:
		return "int96"
	default:
		return "<?>"
	}
}

// DecimalBacking identifies the physical column type backing a decimal.
type DecimalBacking int8

const (
	DecimalInt32 DecimalBacking = iota
	DecimalInt64
	DecimalByteArray
)

// ListVariant records which of the on-disk list encodings a list schema
// was inferred from, so the reader can reconstruct the column paths of the
// wrapper groups.
type ListVariant int8

const (
	// ThreeLevel is the canonical encoding: a LIST-annotated group
	// containing a repeated group, itself containing the element.
	ThreeLevel ListVariant = iota
	// LegacyTwoLevel is the historical encoding in which the repeated
	// child of the LIST-annotated group is the element itself.
	LegacyTwoLevel
	// BareRepeated is a repeated field outside any LIST or MAP wrapper,
	// interpreted as an implicit list of required elements.
	BareRepeated
)

// Primitive schema atoms. Each is a zero-sized marker for one primitive
// logical type.
type (
	BoolSchema struct{}
	U8Schema   struct{}
	I8Schema   struct{}
	U16Schema  struct{}
	I16Schema  struct{}
	U32Schema  struct{}
	I32Schema  struct{}
	U64Schema  struct{}
	I64Schema  struct{}
	F32Schema  struct{}
	F64Schema  struct{}
	DateSchema struct{}
)

// TimeSchema is the schema of a time-of-day column at millisecond or
// microsecond resolution.
type TimeSchema struct {
	Unit TimeUnit
}

// TimestampSchema is the schema of an instant column: epoch milliseconds,
// epoch microseconds, or the deprecated INT96 (julian day, nanos) layout.
type TimestampSchema struct {
	Unit TimestampUnit
}

// ByteArraySchema is the schema of a general binary column. A non-zero
// Length means the underlying column is a fixed-length byte sequence of
// exactly that many bytes.
type ByteArraySchema struct {
	Length int32
}

// StringSchema is the schema of a UTF-8 string column.
type StringSchema struct {
	ByteArraySchema
}

// BsonSchema is the schema of a BSON binary column.
type BsonSchema struct {
	ByteArraySchema
}

// JsonSchema is the schema of a JSON document column.
type JsonSchema struct {
	StringSchema
}

// EnumSchema is the schema of an enum string column.
type EnumSchema struct {
	StringSchema
}

// DecimalSchema is the schema of a fixed-point decimal column. Precision
// and scale are non-negative. Length is meaningful only for the byte-array
// backing, where a non-zero value records a fixed column length.
type DecimalSchema struct {
	Backing   DecimalBacking
	Length    int32
	Precision int32
	Scale     int32
}

// OptionSchema wraps the schema of a field with repetition optional.
// Inner is never itself an OptionSchema.
type OptionSchema struct {
	Inner Schema
}

// ListSchema is the schema of a list of elements. ListName and ElementName
// record how the on-disk wrapper groups were named, with "" standing for
// the canonical names ("list" and "element"). For LegacyTwoLevel,
// ElementName holds the name of the repeated child.
type ListSchema struct {
	Element     Schema
	Variant     ListVariant
	ListName    string
	ElementName string
}

// MapSchema is the schema of a mapping between keys and values. The name
// fields record how the on-disk wrapper groups were named, with ""
// standing for the canonical names ("key_value", "key" and "value").
type MapSchema struct {
	Key          Schema
	Value        Schema
	KeyValueName string
	KeyName      string
	ValueName    string
}

// GroupSchema is the schema of a group of named fields. Fields are ordered
// by declaration; Names indexes them by name and by ordinal.
type GroupSchema struct {
	Fields []Schema
	Names  *FieldNames
}

// BoxSchema is a structural identity wrapper around its inner schema. It
// exists to break recursion depth and carries no semantics of its own.
type BoxSchema struct {
	Inner Schema
}

func (BoolSchema) Kind() Kind      { return KindBool }
func (U8Schema) Kind() Kind        { return KindU8 }
func (I8Schema) Kind() Kind        { return KindI8 }
func (U16Schema) Kind() Kind       { return KindU16 }
func (I16Schema) Kind() Kind       { return KindI16 }
func (U32Schema) Kind() Kind       { return KindU32 }
func (I32Schema) Kind() Kind       { return KindI32 }
func (U64Schema) Kind() Kind       { return KindU64 }
func (I64Schema) Kind() Kind       { return KindI64 }
func (F32Schema) Kind() Kind       { return KindF32 }
func (F64Schema) Kind() Kind       { return KindF64 }
func (DateSchema) Kind() Kind      { return KindDate }
func (TimeSchema) Kind() Kind      { return KindTime }
func (TimestampSchema) Kind() Kind { return KindTimestamp }
func (DecimalSchema) Kind() Kind   { return KindDecimal }
func (ByteArraySchema) Kind() Kind { return KindByteArray }
func (BsonSchema) Kind() Kind      { return KindBson }
func (StringSchema) Kind() Kind    { return KindString }
func (JsonSchema) Kind() Kind      { return KindJson }
func (EnumSchema) Kind() Kind      { return KindEnum }
func (ListSchema) Kind() Kind      { return KindList }
func (MapSchema) Kind() Kind       { return KindMap }
func (GroupSchema) Kind() Kind     { return KindGroup }
func (OptionSchema) Kind() Kind    { return KindOption }
func (BoxSchema) Kind() Kind       { return KindBox }

func (BoolSchema) isSchema()      {}
func (U8Schema) isSchema()        {}
func (I8Schema) isSchema()        {}
func (U16Schema) isSchema()       {}
func (I16Schema) isSchema()       {}
func (U32Schema) isSchema()       {}
func (I32Schema) isSchema()       {}
func (U64Schema) isSchema()       {}
func (I64Schema) isSchema()       {}
func (F32Schema) isSchema()       {}
func (F64Schema) isSchema()       {}
func (DateSchema) isSchema()      {}
func (TimeSchema) isSchema()      {}
func (TimestampSchema) isSchema() {}
func (DecimalSchema) isSchema()   {}
func (ByteArraySchema) isSchema() {}
func (BsonSchema) isSchema()      {}
func (StringSchema) isSchema()    {}
func (JsonSchema) isSchema()      {}
func (EnumSchema) isSchema()      {}
func (ListSchema) isSchema()      {}
func (MapSchema) isSchema()       {}
func (GroupSchema) isSchema()     {}
func (OptionSchema) isSchema()    {}
func (BoxSchema) isSchema()       {}

// Optional wraps a schema in an OptionSchema. Wrapping an option returns
// it unchanged, so the inner schema of an option is never itself an
// option.
func Optional(s Schema) Schema {
	if opt, ok := s.(OptionSchema); ok {
		return opt
	}
	return OptionSchema{Inner: s}
}

// listName and elementName return the effective wrapper names of a list
// schema, substituting the canonical defaults for unrecorded names.
func (s ListSchema) listName() string {
	if s.ListName == "" {
		return "list"
	}
	return s.ListName
}

func (s ListSchema) elementName() string {
	if s.ElementName == "" {
		return "element"
	}
	return s.ElementName
}

func (s MapSchema) keyValueName() string {
	if s.KeyValueName == "" {
		return "key_value"
	}
	return s.KeyValueName
}

func (s MapSchema) keyName() string {
	if s.KeyName == "" {
		return "key"
	}
	return s.KeyName
}

func (s MapSchema) valueName() string {
	if s.ValueName == "" {
		return "value"
	}
	return s.ValueName
}
