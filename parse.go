package shred

import (
	"fmt"

	"github.com/pachadata/shred/format"
)

// Parse infers the logical schema of the rows encoded by a file-format
// type tree. The root node is the top-level message: its fields become
// the fields of the resulting group schema.
func Parse(root *format.Node) (Schema, error) {
	fields, names, err := parseFields(root)
	if err != nil {
		return nil, err
	}
	return GroupSchema{Fields: fields, Names: names}, nil
}

// ParseField infers the logical schema of a single field declared with
// the given repetition, returning the field name alongside the schema.
//
// This is the canonical encoding of the mapping from file-format types to
// schemas; Parse applies it to every field of the root message.
func ParseField(node *format.Node, repetition format.Repetition) (string, Schema, error) {
	var core Schema
	var err error

	switch {
	case node.Leaf():
		core, err = parsePrimitive(node)
	case node.Annotation == format.List:
		core, err = parseList(node)
	case node.Annotation == format.Map || node.Annotation == format.MapKeyValue:
		core, err = parseMap(node)
	default:
		var fields []Schema
		var names *FieldNames
		if len(node.Children) == 0 {
			return "", nil, &ClassificationError{Context: fmt.Sprintf("group %q has no fields", node.Name)}
		}
		fields, names, err = parseFields(node)
		if err == nil {
			core = GroupSchema{Fields: fields, Names: names}
		}
	}
	if err != nil {
		return "", nil, err
	}

	// Account for the repetition level.
	switch repetition {
	case format.Optional:
		core = Optional(core)
	case format.Repeated:
		core = ListSchema{Element: core, Variant: BareRepeated}
	}

	return node.Name, core, nil
}

func parseFields(node *format.Node) ([]Schema, *FieldNames, error) {
	fields := make([]Schema, len(node.Children))
	names := make([]string, len(node.Children))
	for i, child := range node.Children {
		name, schema, err := ParseField(child, child.Repetition)
		if err != nil {
			return nil, nil, err
		}
		names[i] = name
		fields[i] = schema
	}
	return fields, NewFieldNames(names), nil
}

// parsePrimitive maps a leaf node to a primitive schema atom, keyed by
// its physical type and logical annotation. Unrecognized annotations fall
// back to the mapping of the physical type alone.
func parsePrimitive(node *format.Node) (Schema, error) {
	switch node.Kind {
	case format.Boolean:
		return BoolSchema{}, nil

	case format.Int32:
		switch node.Annotation {
		case format.Unsigned8:
			return U8Schema{}, nil
		case format.Signed8:
			return I8Schema{}, nil
		case format.Unsigned16:
			return U16Schema{}, nil
		case format.Signed16:
			return I16Schema{}, nil
		case format.Unsigned32:
			return U32Schema{}, nil
		case format.Date:
			return DateSchema{}, nil
		case format.TimeMillis:
			return TimeSchema{Unit: Millis}, nil
		case format.Decimal:
			return parseDecimal(node, DecimalInt32, 0)
		default:
			return I32Schema{}, nil
		}

	case format.Int64:
		switch node.Annotation {
		case format.Unsigned64:
			return U64Schema{}, nil
		case format.TimeMicros:
			return TimeSchema{Unit: Micros}, nil
		case format.TimestampMillis:
			return TimestampSchema{Unit: TimestampMillis}, nil
		case format.TimestampMicros:
			return TimestampSchema{Unit: TimestampMicros}, nil
		case format.Decimal:
			return parseDecimal(node, DecimalInt64, 0)
		default:
			return I64Schema{}, nil
		}

	case format.Int96:
		return TimestampSchema{Unit: TimestampInt96}, nil

	case format.Float:
		return F32Schema{}, nil

	case format.Double:
		return F64Schema{}, nil

	case format.ByteArray, format.FixedLenByteArray:
		length := int32(0)
		if node.Kind == format.FixedLenByteArray {
			length = node.TypeLength
		}
		switch node.Annotation {
		case format.UTF8:
			return StringSchema{ByteArraySchema{Length: length}}, nil
		case format.JSON:
			return JsonSchema{StringSchema{ByteArraySchema{Length: length}}}, nil
		case format.Enum:
			return EnumSchema{StringSchema{ByteArraySchema{Length: length}}}, nil
		case format.BSON:
			return BsonSchema{ByteArraySchema{Length: length}}, nil
		case format.Decimal:
			return parseDecimal(node, DecimalByteArray, length)
		case format.Interval:
			return nil, &UnsupportedAnnotationError{Name: format.Interval.String()}
		default:
			return ByteArraySchema{Length: length}, nil
		}

	default:
		return nil, &ClassificationError{Context: fmt.Sprintf("leaf %q has unknown physical type %d", node.Name, node.Kind)}
	}
}

func parseDecimal(node *format.Node, backing DecimalBacking, length int32) (Schema, error) {
	if node.Precision < 0 || node.Scale < 0 {
		return nil, &ClassificationError{
			Context: fmt.Sprintf("decimal %q has negative precision or scale (%d, %d)", node.Name, node.Precision, node.Scale),
		}
	}
	return DecimalSchema{Backing: backing, Length: length, Precision: node.Precision, Scale: node.Scale}, nil
}

// parseList classifies a LIST-annotated group.
//
// The sentinel element names and the backward-compatibility rules follow
// the format's own documentation: a repeated child named "array" or
// "<outer>_tuple", or one that is not a single-field group, is itself the
// element (legacy two-level encoding); otherwise its single field is the
// element (three-level encoding).
func parseList(node *format.Node) (Schema, error) {
	if len(node.Children) != 1 {
		return nil, &MalformedListError{
			Context: fmt.Sprintf("group %q has %d fields, want 1", node.Name, len(node.Children)),
		}
	}
	wrapper := node.Children[0]
	if wrapper.Repetition != format.Repeated {
		return nil, &MalformedListError{
			Context: fmt.Sprintf("child %q of group %q is not repeated", wrapper.Name, node.Name),
		}
	}

	if !wrapper.Leaf() && len(wrapper.Children) == 1 &&
		wrapper.Name != "array" && wrapper.Name != node.Name+"_tuple" {
		element := wrapper.Children[0]

		listName := wrapper.Name
		if listName == "list" {
			listName = ""
		}
		elementName := element.Name
		if elementName == "element" {
			elementName = ""
		}

		_, schema, err := ParseField(element, element.Repetition)
		if err != nil {
			return nil, err
		}
		return ListSchema{
			Element:     schema,
			Variant:     ThreeLevel,
			ListName:    listName,
			ElementName: elementName,
		}, nil
	}

	// The repeated child is the element; it reads as if declared required.
	_, schema, err := ParseField(wrapper, format.Required)
	if err != nil {
		return nil, err
	}
	return ListSchema{
		Element:     schema,
		Variant:     LegacyTwoLevel,
		ElementName: wrapper.Name,
	}, nil
}

// parseMap classifies a MAP- or MAP_KEY_VALUE-annotated group: a single
// repeated group child holding a required key and a value at any
// repetition. Non-canonical wrapper names are recorded so the reader can
// reconstruct the column paths.
func parseMap(node *format.Node) (Schema, error) {
	if len(node.Children) != 1 {
		return nil, &MalformedMapError{
			Context: fmt.Sprintf("group %q has %d fields, want 1", node.Name, len(node.Children)),
		}
	}
	kv := node.Children[0]
	if kv.Repetition != format.Repeated || kv.Leaf() || len(kv.Children) != 2 {
		return nil, &MalformedMapError{
			Context: fmt.Sprintf("child %q of group %q is not a repeated two-field group", kv.Name, node.Name),
		}
	}
	key, value := kv.Children[0], kv.Children[1]
	if key.Repetition != format.Required {
		return nil, &MalformedMapError{
			Context: fmt.Sprintf("key %q of group %q is not required", key.Name, node.Name),
		}
	}

	_, keySchema, err := ParseField(key, format.Required)
	if err != nil {
		return nil, err
	}
	_, valueSchema, err := ParseField(value, value.Repetition)
	if err != nil {
		return nil, err
	}

	keyValueName := kv.Name
	if keyValueName == "key_value" {
		keyValueName = ""
	}
	keyName := key.Name
	if keyName == "key" {
		keyName = ""
	}
	valueName := value.Name
	if valueName == "value" {
		valueName = ""
	}

	return MapSchema{
		Key:          keySchema,
		Value:        valueSchema,
		KeyValueName: keyValueName,
		KeyName:      keyName,
		ValueName:    valueName,
	}, nil
}
