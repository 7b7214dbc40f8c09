// Package format describes the schema of a file in the columnar format:
// physical column types, field repetitions, and the logical annotations
// layered on top of the physical types.
//
// The package is the input side of the record assembly performed by the
// parent package; it carries no encoded data, only the type tree.
package format

// Kind is the physical type of a column.
type Kind int8

const (
	Boolean Kind = iota
	Int32
	Int64
	Int96
	Float
	Double
	ByteArray
	FixedLenByteArray
)

// String returns the lower-case spelling used in the textual schema form.
func (k Kind) String() string {
	switch k {
	case Boolean:
		return "boolean"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Int96:
		return "int96"
	case Float:
		return "float"
	case Double:
		return "double"
	case ByteArray:
		return "binary"
	case FixedLenByteArray:
		return "fixed_len_byte_array"
	default:
		return "<?>"
	}
}

// Repetition describes how many times a field may appear within its parent.
type Repetition int8

const (
	Required Repetition = iota
	Optional
	Repeated
)

func (r Repetition) String() string {
	switch r {
	case Required:
		return "required"
	case Optional:
		return "optional"
	case Repeated:
		return "repeated"
	default:
		return "<?>"
	}
}

// Annotation is the logical type layered over a physical column type, for
// example UTF8 over a byte array or TIMESTAMP_MILLIS over an int64.
//
// The zero value means the column carries no annotation.
type Annotation int8

const (
	None Annotation = iota
	UTF8
	Map
	MapKeyValue
	List
	Enum
	Decimal
	Date
	TimeMillis
	TimeMicros
	TimestampMillis
	TimestampMicros
	Unsigned8
	Unsigned16
	Unsigned32
	Unsigned64
	Signed8
	Signed16
	Signed32
	Signed64
	JSON
	BSON
	Interval
)

// String returns the canonical upper-case spelling of the annotation, or an
// empty string when the column carries none.
func (a Annotation) String() string {
	switch a {
	case None:
		return ""
	case UTF8:
		return "UTF8"
	case Map:
		return "MAP"
	case MapKeyValue:
		return "MAP_KEY_VALUE"
	case List:
		return "LIST"
	case Enum:
		return "ENUM"
	case Decimal:
		return "DECIMAL"
	case Date:
		return "DATE"
	case TimeMillis:
		return "TIME_MILLIS"
	case TimeMicros:
		return "TIME_MICROS"
	case TimestampMillis:
		return "TIMESTAMP_MILLIS"
	case TimestampMicros:
		return "TIMESTAMP_MICROS"
	case Unsigned8:
		return "UINT_8"
	case Unsigned16:
		return "UINT_16"
	case Unsigned32:
		return "UINT_32"
	case Unsigned64:
		return "UINT_64"
	case Signed8:
		return "INT_8"
	case Signed16:
		return "INT_16"
	case Signed32:
		return "INT_32"
	case Signed64:
		return "INT_64"
	case JSON:
		return "JSON"
	case BSON:
		return "BSON"
	case Interval:
		return "INTERVAL"
	default:
		return "<?>"
	}
}
