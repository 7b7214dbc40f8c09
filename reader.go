package shred

import (
	"errors"
	"io"
)

// Reader assembles values of one schema node from the column decoders
// bound beneath it. Readers form a tree mirroring the schema; evaluating
// the root once yields one row.
//
// Reader is a closed sum: the set of implementations is fixed by the
// schema kinds. Readers are not safe for concurrent use.
type Reader interface {
	// Read assembles and returns the next value.
	Read() (Value, error)

	// advance consumes the current slot of every column below the reader
	// without producing a value.
	advance() error

	// hasNext returns true while the columns below the reader have slots
	// left.
	hasNext() bool

	// definitionLevel and repetitionLevel peek at the levels of the next
	// slot, delegating to the first leaf below the reader.
	definitionLevel() int16
	repetitionLevel() int16
}

// NewReader builds the reader tree for a schema. The columns map must
// hold a decoder for every leaf column path of the schema; a missing
// entry is a programming error and panics. The batch size hint is passed
// through to every decoder.
func NewReader(schema Schema, columns Columns, batchSize int) Reader {
	return newReader(schema, nil, 0, 0, columns, batchSize)
}

func newReader(s Schema, path ColumnPath, defLevel, repLevel int16, columns Columns, batchSize int) Reader {
	switch s := s.(type) {
	case OptionSchema:
		return &optionReader{
			defLevel: defLevel + 1,
			reader:   newReader(s.Inner, path, defLevel+1, repLevel, columns, batchSize),
		}

	case ListSchema:
		var element Reader
		switch s.Variant {
		case ThreeLevel:
			p := pushPath(path, s.listName(), s.elementName())
			element = newReader(s.Element, p, defLevel+1, repLevel+1, columns, batchSize)
		case LegacyTwoLevel:
			p := pushPath(path, s.elementName())
			element = newReader(s.Element, p, defLevel+1, repLevel+1, columns, batchSize)
		default: // BareRepeated
			element = newReader(s.Element, path, defLevel+1, repLevel+1, columns, batchSize)
		}
		return &repeatedReader{defLevel: defLevel, repLevel: repLevel, reader: element}

	case MapSchema:
		kv := pushPath(path, s.keyValueName())
		return &keyValueReader{
			defLevel: defLevel,
			repLevel: repLevel,
			keys:     newReader(s.Key, pushPath(kv, s.keyName()), defLevel+1, repLevel+1, columns, batchSize),
			values:   newReader(s.Value, pushPath(kv, s.valueName()), defLevel+1, repLevel+1, columns, batchSize),
		}

	case GroupSchema:
		readers := make([]Reader, len(s.Fields))
		for i, field := range s.Fields {
			readers[i] = newReader(field, pushPath(path, s.Names.Name(i)), defLevel, repLevel, columns, batchSize)
		}
		return &groupReader{readers: readers, names: s.Names}

	case BoxSchema:
		return &boxReader{newReader(s.Inner, path, defLevel, repLevel, columns, batchSize)}

	default:
		decoder := columns.bind(path)
		decoder.SetBatchSize(batchSize)
		return &primitiveReader{
			defLevel: defLevel,
			repLevel: repLevel,
			decoder:  decoder,
			convert:  convertFor(s),
		}
	}
}

// pushPath extends a column path without aliasing the backing array of
// the parent path, so sibling branches cannot clobber each other's
// segments.
func pushPath(p ColumnPath, segments ...string) ColumnPath {
	return append(p[:len(p):len(p)], segments...)
}

type primitiveReader struct {
	defLevel int16
	repLevel int16
	decoder  ColumnDecoder
	convert  func(Value) (Value, error)
}

func (r *primitiveReader) Read() (Value, error) {
	v, err := r.decoder.ReadValue()
	if err != nil {
		return Value{}, wrapDecoderError(err)
	}
	return r.convert(v)
}

func (r *primitiveReader) advance() error {
	if err := r.decoder.AdvanceNull(); err != nil {
		return wrapDecoderError(err)
	}
	return nil
}

func (r *primitiveReader) hasNext() bool { return r.decoder.HasNext() }
func (r *primitiveReader) definitionLevel() int16 { return r.decoder.DefinitionLevel() }
func (r *primitiveReader) repetitionLevel() int16 { return r.decoder.RepetitionLevel() }

type optionReader struct {
	defLevel int16
	reader   Reader
}

func (r *optionReader) Read() (Value, error) {
	if r.reader.definitionLevel() >= r.defLevel {
		v, err := r.reader.Read()
		if err != nil {
			return Value{}, err
		}
		return Some(v), nil
	}
	if err := r.reader.advance(); err != nil {
		return Value{}, err
	}
	return None(), nil
}

func (r *optionReader) advance() error          { return r.reader.advance() }
func (r *optionReader) hasNext() bool { return r.reader.hasNext() }
func (r *optionReader) definitionLevel() int16 { return r.reader.definitionLevel() }
func (r *optionReader) repetitionLevel() int16 { return r.reader.repetitionLevel() }

type repeatedReader struct {
	defLevel int16
	repLevel int16
	reader   Reader
}

func (r *repeatedReader) Read() (Value, error) {
	elements := List{}
	for {
		if r.reader.definitionLevel() > r.defLevel {
			v, err := r.reader.Read()
			if err != nil {
				return Value{}, err
			}
			elements = append(elements, v)
		} else {
			// The current definition level is at most the level of the
			// repeated field itself: the group is empty (or absent, which
			// an enclosing option reader has already ruled out).
			if err := r.reader.advance(); err != nil {
				return Value{}, err
			}
			break
		}
		if !r.reader.hasNext() || r.reader.repetitionLevel() <= r.repLevel {
			break
		}
	}
	return ListValue(elements), nil
}

func (r *repeatedReader) advance() error          { return r.reader.advance() }
func (r *repeatedReader) hasNext() bool { return r.reader.hasNext() }
func (r *repeatedReader) definitionLevel() int16 { return r.reader.definitionLevel() }
func (r *repeatedReader) repetitionLevel() int16 { return r.reader.repetitionLevel() }

type keyValueReader struct {
	defLevel int16
	repLevel int16
	keys     Reader
	values   Reader
}

func (r *keyValueReader) Read() (Value, error) {
	m := NewMap()
	for {
		if r.keys.definitionLevel() > r.defLevel {
			k, err := r.keys.Read()
			if err != nil {
				return Value{}, err
			}
			v, err := r.values.Read()
			if err != nil {
				return Value{}, err
			}
			// Stream order; a duplicate key keeps its position and takes
			// the later value.
			m.Set(k, v)
		} else {
			if err := r.keys.advance(); err != nil {
				return Value{}, err
			}
			if err := r.values.advance(); err != nil {
				return Value{}, err
			}
			break
		}
		if !r.keys.hasNext() || r.keys.repetitionLevel() <= r.repLevel {
			break
		}
	}
	return MapValue(m), nil
}

func (r *keyValueReader) advance() error {
	if err := r.keys.advance(); err != nil {
		return err
	}
	return r.values.advance()
}

func (r *keyValueReader) hasNext() bool { return r.keys.hasNext() }
func (r *keyValueReader) definitionLevel() int16 { return r.keys.definitionLevel() }
func (r *keyValueReader) repetitionLevel() int16 { return r.keys.repetitionLevel() }

type groupReader struct {
	readers []Reader
	names   *FieldNames
}

func (r *groupReader) Read() (Value, error) {
	fields := make([]Value, len(r.readers))
	for i, reader := range r.readers {
		v, err := reader.Read()
		if err != nil {
			return Value{}, err
		}
		fields[i] = v
	}
	return GroupValue(NewGroup(fields, r.names)), nil
}

func (r *groupReader) advance() error {
	for _, reader := range r.readers {
		if err := reader.advance(); err != nil {
			return err
		}
	}
	return nil
}

func (r *groupReader) hasNext() bool {
	return len(r.readers) > 0 && r.readers[0].hasNext()
}

func (r *groupReader) definitionLevel() int16 { return r.readers[0].definitionLevel() }
func (r *groupReader) repetitionLevel() int16 { return r.readers[0].repetitionLevel() }

// boxReader is a structural identity: it holds a single child reader and
// forwards every operation.
type boxReader struct {
	Reader
}

// RowReader evaluates a reader tree repeatedly, producing the row stream.
type RowReader struct {
	root Reader
}

// NewRowReader builds the reader tree for a schema and returns the row
// stream over it. See NewReader for the column binding rules.
func NewRowReader(schema Schema, columns Columns, batchSize int) *RowReader {
	return &RowReader{root: NewReader(schema, columns, batchSize)}
}

// ReadRow assembles the next row, or returns io.EOF when the columns are
// exhausted.
func (r *RowReader) ReadRow() (Value, error) {
	if !r.root.hasNext() {
		return Value{}, io.EOF
	}
	return r.root.Read()
}

func wrapDecoderError(err error) error {
	if errors.Is(err, io.EOF) {
		return err
	}
	if _, ok := err.(*DecoderError); ok {
		return err
	}
	return &DecoderError{Err: err}
}

// convertFor returns the conversion applied to the physical value a
// column decoder produces to obtain the logical value of the schema atom.
func convertFor(s Schema) func(Value) (Value, error) {
	switch s := s.(type) {
	case BoolSchema:
		return func(v Value) (Value, error) {
			if _, err := v.AsBool(); err != nil {
				return Value{}, err
			}
			return v, nil
		}
	case U8Schema:
		return func(v Value) (Value, error) {
			i, err := v.AsI32()
			if err != nil {
				return Value{}, err
			}
			return U8Value(uint8(i)), nil
		}
	case I8Schema:
		return func(v Value) (Value, error) {
			i, err := v.AsI32()
			if err != nil {
				return Value{}, err
			}
			return I8Value(int8(i)), nil
		}
	case U16Schema:
		return func(v Value) (Value, error) {
			i, err := v.AsI32()
			if err != nil {
				return Value{}, err
			}
			return U16Value(uint16(i)), nil
		}
	case I16Schema:
		return func(v Value) (Value, error) {
			i, err := v.AsI32()
			if err != nil {
				return Value{}, err
			}
			return I16Value(int16(i)), nil
		}
	case U32Schema:
		return func(v Value) (Value, error) {
			i, err := v.AsI32()
			if err != nil {
				return Value{}, err
			}
			return U32Value(uint32(i)), nil
		}
	case I32Schema:
		return func(v Value) (Value, error) {
			if _, err := v.AsI32(); err != nil {
				return Value{}, err
			}
			return v, nil
		}
	case U64Schema:
		return func(v Value) (Value, error) {
			i, err := v.AsI64()
			if err != nil {
				return Value{}, err
			}
			return U64Value(uint64(i)), nil
		}
	case I64Schema:
		return func(v Value) (Value, error) {
			if _, err := v.AsI64(); err != nil {
				return Value{}, err
			}
			return v, nil
		}
	case F32Schema:
		return func(v Value) (Value, error) {
			if _, err := v.AsF32(); err != nil {
				return Value{}, err
			}
			return v, nil
		}
	case F64Schema:
		return func(v Value) (Value, error) {
			if _, err := v.AsF64(); err != nil {
				return Value{}, err
			}
			return v, nil
		}
	case DateSchema:
		return func(v Value) (Value, error) {
			i, err := v.AsI32()
			if err != nil {
				return Value{}, err
			}
			return DateValue(Date(i)), nil
		}
	case TimeSchema:
		if s.Unit == Millis {
			return func(v Value) (Value, error) {
				i, err := v.AsI32()
				if err != nil {
					return Value{}, err
				}
				return TimeValue(TimeFromMillis(i)), nil
			}
		}
		return func(v Value) (Value, error) {
			i, err := v.AsI64()
			if err != nil {
				return Value{}, err
			}
			return TimeValue(TimeFromMicros(i)), nil
		}
	case TimestampSchema:
		switch s.Unit {
		case TimestampMillis:
			return func(v Value) (Value, error) {
				i, err := v.AsI64()
				if err != nil {
					return Value{}, err
				}
				return TimestampValue(TimestampFromMillis(i)), nil
			}
		case TimestampMicros:
			return func(v Value) (Value, error) {
				i, err := v.AsI64()
				if err != nil {
					return Value{}, err
				}
				return TimestampValue(TimestampFromMicros(i)), nil
			}
		default: // TimestampInt96
			return func(v Value) (Value, error) {
				if _, err := v.AsTimestamp(); err != nil {
					return Value{}, err
				}
				return v, nil
			}
		}
	case DecimalSchema:
		precision, scale := s.Precision, s.Scale
		switch s.Backing {
		case DecimalInt32:
			return func(v Value) (Value, error) {
				i, err := v.AsI32()
				if err != nil {
					return Value{}, err
				}
				return DecimalValue(DecimalFromInt32(i, precision, scale)), nil
			}
		case DecimalInt64:
			return func(v Value) (Value, error) {
				i, err := v.AsI64()
				if err != nil {
					return Value{}, err
				}
				return DecimalValue(DecimalFromInt64(i, precision, scale)), nil
			}
		default: // DecimalByteArray
			return func(v Value) (Value, error) {
				b, err := v.AsByteArray()
				if err != nil {
					return Value{}, err
				}
				return DecimalValue(DecimalFromBytes(b, precision, scale)), nil
			}
		}
	case ByteArraySchema:
		return func(v Value) (Value, error) {
			if _, err := v.AsByteArray(); err != nil {
				return Value{}, err
			}
			return v, nil
		}
	case StringSchema:
		return func(v Value) (Value, error) {
			b, err := v.AsByteArray()
			if err != nil {
				return Value{}, err
			}
			return StringValue(string(b)), nil
		}
	case JsonSchema:
		return func(v Value) (Value, error) {
			b, err := v.AsByteArray()
			if err != nil {
				return Value{}, err
			}
			return JsonValue(Json(b)), nil
		}
	case EnumSchema:
		return func(v Value) (Value, error) {
			b, err := v.AsByteArray()
			if err != nil {
				return Value{}, err
			}
			return EnumValue(Enum(b)), nil
		}
	case BsonSchema:
		return func(v Value) (Value, error) {
			b, err := v.AsByteArray()
			if err != nil {
				return Value{}, err
			}
			return BsonValue(Bson(b)), nil
		}
	default:
		panic("cannot build a primitive reader for schema kind " + s.Kind().String())
	}
}
