package shred

import (
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/pachadata/shred/format"
)

// PrintSchema writes the canonical textual form of a logical schema:
// the file-format schema it reads from, with list and map wrapper groups
// reconstructed from the recorded names.
func PrintSchema(w io.Writer, name string, schema Schema) error {
	pw := &printWriter{writer: w}
	printSchemaField(pw, schema, format.Required, false, name)
	return pw.err
}

// Print writes the canonical textual form of a file-format type tree.
func Print(w io.Writer, name string, node *format.Node) error {
	pw := &printWriter{writer: w}
	g := beginSchemaGroup(pw, format.Required, false, name, node.Annotation.String())
	for _, child := range node.Children {
		child := child
		g.field(func(fw io.StringWriter) {
			printNode(fw, child)
		})
	}
	g.finish()
	return pw.err
}

func printNode(w io.StringWriter, node *format.Node) {
	if node.Leaf() {
		w.WriteString(node.Repetition.String())
		w.WriteString(" ")
		w.WriteString(node.Kind.String())
		if node.Kind == format.FixedLenByteArray {
			w.WriteString("(")
			w.WriteString(strconv.Itoa(int(node.TypeLength)))
			w.WriteString(")")
		}
		w.WriteString(" ")
		w.WriteString(node.Name)
		if annotation := node.Annotation.String(); annotation != "" {
			w.WriteString(" (")
			w.WriteString(annotation)
			if node.Annotation == format.Decimal {
				w.WriteString("(" + strconv.Itoa(int(node.Precision)) + "," + strconv.Itoa(int(node.Scale)) + ")")
			}
			w.WriteString(")")
		}
		w.WriteString(";")
		return
	}

	g := beginSchemaGroup(w, node.Repetition, true, node.Name, node.Annotation.String())
	for _, child := range node.Children {
		child := child
		g.field(func(fw io.StringWriter) {
			printNode(fw, child)
		})
	}
	g.finish()
}

func printSchemaField(w io.StringWriter, s Schema, rep format.Repetition, hasRep bool, name string) {
	switch s := s.(type) {
	case BoxSchema:
		printSchemaField(w, s.Inner, rep, hasRep, name)

	case OptionSchema:
		printSchemaField(w, s.Inner, format.Optional, true, name)

	case GroupSchema:
		g := beginSchemaGroup(w, rep, hasRep, name, "")
		for i, field := range s.Fields {
			i, field := i, field
			g.field(func(fw io.StringWriter) {
				printSchemaField(fw, field, format.Required, true, s.Names.Name(i))
			})
		}
		g.finish()

	case ListSchema:
		switch s.Variant {
		case ThreeLevel:
			g := beginSchemaGroup(w, rep, hasRep, name, "LIST")
			g.field(func(fw io.StringWriter) {
				inner := beginSchemaGroup(fw, format.Repeated, true, s.listName(), "")
				inner.field(func(ew io.StringWriter) {
					printSchemaField(ew, s.Element, format.Required, true, s.elementName())
				})
				inner.finish()
			})
			g.finish()
		case LegacyTwoLevel:
			g := beginSchemaGroup(w, rep, hasRep, name, "LIST")
			g.field(func(fw io.StringWriter) {
				printSchemaField(fw, s.Element, format.Repeated, true, s.ElementName)
			})
			g.finish()
		default: // BareRepeated
			printSchemaField(w, s.Element, format.Repeated, hasRep, name)
		}

	case MapSchema:
		g := beginSchemaGroup(w, rep, hasRep, name, "MAP")
		g.field(func(fw io.StringWriter) {
			kv := beginSchemaGroup(fw, format.Repeated, true, s.keyValueName(), "")
			kv.field(func(ew io.StringWriter) {
				printSchemaField(ew, s.Key, format.Required, true, s.keyName())
			})
			kv.field(func(ew io.StringWriter) {
				printSchemaField(ew, s.Value, format.Required, true, s.valueName())
			})
			kv.finish()
		})
		g.finish()

	default:
		if hasRep {
			w.WriteString(rep.String())
			w.WriteString(" ")
		}
		w.WriteString(primitiveTypeName(s))
		w.WriteString(" ")
		w.WriteString(name)
		if annotation := primitiveAnnotation(s); annotation != "" {
			w.WriteString(" (")
			w.WriteString(annotation)
			w.WriteString(")")
		}
		w.WriteString(";")
	}
}

// primitiveTypeName returns the physical column type a primitive schema
// atom reads from, in its textual spelling.
func primitiveTypeName(s Schema) string {
	switch s := s.(type) {
	case BoolSchema:
		return format.Boolean.String()
	case U8Schema, I8Schema, U16Schema, I16Schema, U32Schema, I32Schema, DateSchema:
		return format.Int32.String()
	case U64Schema, I64Schema:
		return format.Int64.String()
	case TimeSchema:
		if s.Unit == Millis {
			return format.Int32.String()
		}
		return format.Int64.String()
	case TimestampSchema:
		if s.Unit == TimestampInt96 {
			return format.Int96.String()
		}
		return format.Int64.String()
	case F32Schema:
		return format.Float.String()
	case F64Schema:
		return format.Double.String()
	case DecimalSchema:
		switch s.Backing {
		case DecimalInt32:
			return format.Int32.String()
		case DecimalInt64:
			return format.Int64.String()
		default:
			return byteArrayTypeName(s.Length)
		}
	case ByteArraySchema:
		return byteArrayTypeName(s.Length)
	case StringSchema:
		return byteArrayTypeName(s.Length)
	case BsonSchema:
		return byteArrayTypeName(s.Length)
	case JsonSchema:
		return byteArrayTypeName(s.Length)
	case EnumSchema:
		return byteArrayTypeName(s.Length)
	default:
		return "<?>"
	}
}

func byteArrayTypeName(length int32) string {
	if length > 0 {
		return format.FixedLenByteArray.String() + "(" + strconv.Itoa(int(length)) + ")"
	}
	return format.ByteArray.String()
}

func primitiveAnnotation(s Schema) string {
	switch s := s.(type) {
	case U8Schema:
		return format.Unsigned8.String()
	case I8Schema:
		return format.Signed8.String()
	case U16Schema:
		return format.Unsigned16.String()
	case I16Schema:
		return format.Signed16.String()
	case U32Schema:
		return format.Unsigned32.String()
	case U64Schema:
		return format.Unsigned64.String()
	case DateSchema:
		return format.Date.String()
	case TimeSchema:
		if s.Unit == Millis {
			return format.TimeMillis.String()
		}
		return format.TimeMicros.String()
	case TimestampSchema:
		switch s.Unit {
		case TimestampMillis:
			return format.TimestampMillis.String()
		case TimestampMicros:
			return format.TimestampMicros.String()
		default:
			return ""
		}
	case DecimalSchema:
		return format.Decimal.String() + "(" + strconv.Itoa(int(s.Precision)) + "," + strconv.Itoa(int(s.Scale)) + ")"
	case StringSchema:
		return format.UTF8.String()
	case JsonSchema:
		return format.JSON.String()
	case EnumSchema:
		return format.Enum.String()
	case BsonSchema:
		return format.BSON.String()
	default:
		return ""
	}
}

// schemaGroupWriter writes a group header, its fields, and the closing
// brace. Every field is preceded by a newline and rendered through a pad
// adapter so that multi-line field output nests visually. A group without
// fields closes on the same line as it opens.
type schemaGroupWriter struct {
	w         io.StringWriter
	hasFields bool
}

func beginSchemaGroup(w io.StringWriter, rep format.Repetition, hasRep bool, name, annotation string) *schemaGroupWriter {
	if hasRep {
		w.WriteString(rep.String())
		w.WriteString(" group ")
	} else {
		w.WriteString("message ")
	}
	w.WriteString(name)
	if annotation != "" {
		w.WriteString(" (")
		w.WriteString(annotation)
		w.WriteString(")")
	}
	w.WriteString(" {")
	return &schemaGroupWriter{w: w}
}

func (g *schemaGroupWriter) field(write func(io.StringWriter)) {
	pw := &padWriter{writer: g.w}
	pw.WriteString("\n")
	write(pw)
	g.hasFields = true
}

func (g *schemaGroupWriter) finish() {
	if g.hasFields {
		g.w.WriteString("\n}")
	} else {
		g.w.WriteString(" }")
	}
}

// padWriter indents everything written after a newline by four spaces, so
// that the output of nested groups indents once per nesting level.
type padWriter struct {
	writer    io.StringWriter
	onNewline bool
}

func (w *padWriter) WriteString(s string) (int, error) {
	written := 0
	for len(s) > 0 {
		if w.onNewline {
			if _, err := w.writer.WriteString("    "); err != nil {
				return written, err
			}
		}

		split := len(s)
		w.onNewline = false
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			split = i + 1
			w.onNewline = true
		}

		n, err := w.writer.WriteString(s[:split])
		written += n
		if err != nil {
			return written, err
		}
		s = s[split:]
	}
	return written, nil
}

// printWriter latches the first error encountered so the printing code
// does not have to check every write.
type printWriter struct {
	writer io.Writer
	err    error
}

func (w *printWriter) Write(b []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.writer.Write(b)
	if err != nil {
		w.err = err
	}
	return n, err
}

func (w *printWriter) WriteString(s string) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := io.WriteString(w.writer, s)
	if err != nil {
		w.err = err
	}
	return n, err
}

var (
	_ io.StringWriter = (*printWriter)(nil)
	_ io.StringWriter = (*padWriter)(nil)
)

// PrintColumns renders the leaf columns of a file-format type tree as a
// table: dotted path, physical type, annotation, and the maximum
// repetition and definition levels. The tree must have been through
// Compute.
func PrintColumns(w io.Writer, node *format.Node) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"path", "type", "annotation", "r", "d"})
	for _, leaf := range node.Leaves() {
		kind := leaf.Kind.String()
		if leaf.Kind == format.FixedLenByteArray {
			kind += "(" + strconv.Itoa(int(leaf.TypeLength)) + ")"
		}
		table.Append([]string{
			strings.Join(leaf.Path, "."),
			kind,
			leaf.Annotation.String(),
			strconv.Itoa(int(leaf.MaxRepetitionLevel)),
			strconv.Itoa(int(leaf.MaxDefinitionLevel)),
		})
	}
	table.Render()
}
