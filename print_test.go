package shred_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/pachadata/shred"
	"github.com/pachadata/shred/format"
)

func assertText(t *testing.T, got, want string) {
	t.Helper()
	if got != want {
		edits := myers.ComputeEdits(span.URIFromPath("want.txt"), want, got)
		diff := fmt.Sprint(gotextdiff.ToUnified("want.txt", "got.txt", want, edits))
		t.Errorf("\n%s", diff)
	}
}

func printSchema(t *testing.T, name string, schema shred.Schema) string {
	t.Helper()
	buf := new(bytes.Buffer)
	if err := shred.PrintSchema(buf, name, schema); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestPrintSchema(t *testing.T) {
	tests := []struct {
		scenario string
		root     *format.Node
		print    string
	}{
		{
			scenario: "empty message",
			root:     &format.Node{},
			print:    `message m { }`,
		},

		{
			scenario: "optional primitive",
			root: &format.Node{Children: []*format.Node{
				{Name: "x", Kind: format.Int32, Repetition: format.Optional},
			}},
			print: `message m {
    optional int32 x;
}`,
		},

		{
			scenario: "three level list",
			root: &format.Node{Children: []*format.Node{
				{Name: "xs", Annotation: format.List, Children: []*format.Node{
					{Name: "list", Repetition: format.Repeated, Children: []*format.Node{
						{Name: "element", Kind: format.Int32},
					}},
				}},
			}},
			print: `message m {
    required group xs (LIST) {
        repeated group list {
            required int32 element;
        }
    }
}`,
		},

		{
			scenario: "legacy two level list",
			root: &format.Node{Children: []*format.Node{
				{Name: "xs", Annotation: format.List, Children: []*format.Node{
					{Name: "array", Kind: format.Int32, Repetition: format.Repeated},
				}},
			}},
			print: `message m {
    required group xs (LIST) {
        repeated int32 array;
    }
}`,
		},

		{
			scenario: "bare repeated",
			root: &format.Node{Children: []*format.Node{
				{Name: "xs", Kind: format.Int32, Repetition: format.Repeated},
			}},
			print: `message m {
    repeated int32 xs;
}`,
		},

		{
			scenario: "map with optional value",
			root: &format.Node{Children: []*format.Node{
				{Name: "m", Annotation: format.Map, Children: []*format.Node{
					{Name: "key_value", Repetition: format.Repeated, Children: []*format.Node{
						{Name: "key", Kind: format.ByteArray, Annotation: format.UTF8},
						{Name: "value", Kind: format.Int32, Repetition: format.Optional},
					}},
				}},
			}},
			print: `message m {
    required group m (MAP) {
        repeated group key_value {
            required binary key (UTF8);
            optional int32 value;
        }
    }
}`,
		},

		{
			scenario: "annotated primitives",
			root: &format.Node{Children: []*format.Node{
				{Name: "age", Kind: format.Int32, Annotation: format.Unsigned8},
				{Name: "day", Kind: format.Int32, Annotation: format.Date},
				{Name: "at", Kind: format.Int64, Annotation: format.TimestampMicros},
				{Name: "price", Kind: format.Int64, Annotation: format.Decimal, Precision: 18, Scale: 4},
				{Name: "id", Kind: format.FixedLenByteArray, Annotation: format.UTF8, TypeLength: 16},
			}},
			print: `message m {
    required int32 age (UINT_8);
    required int32 day (DATE);
    required int64 at (TIMESTAMP_MICROS);
    required int64 price (DECIMAL(18,4));
    required fixed_len_byte_array(16) id (UTF8);
}`,
		},

		{
			scenario: "nested groups",
			root: &format.Node{Children: []*format.Node{
				{Name: "loc", Repetition: format.Optional, Children: []*format.Node{
					{Name: "lat", Kind: format.Double},
					{Name: "lon", Kind: format.Double},
				}},
			}},
			print: `message m {
    optional group loc {
        required double lat;
        required double lon;
    }
}`,
		},
	}

	for _, test := range tests {
		t.Run(test.scenario, func(t *testing.T) {
			schema, err := shred.Parse(test.root)
			if err != nil {
				t.Fatal(err)
			}
			assertText(t, printSchema(t, "m", schema), test.print)
		})
	}
}

func TestPrintNode(t *testing.T) {
	root := &format.Node{Children: []*format.Node{
		{Name: "xs", Annotation: format.List, Children: []*format.Node{
			{Name: "list", Repetition: format.Repeated, Children: []*format.Node{
				{Name: "element", Kind: format.Int32},
			}},
		}},
	}}

	buf := new(bytes.Buffer)
	if err := shred.Print(buf, "m", root); err != nil {
		t.Fatal(err)
	}
	assertText(t, buf.String(), `message m {
    required group xs (LIST) {
        repeated group list {
            required int32 element;
        }
    }
}`)
}

func TestPrintSchemaMatchesNodeForm(t *testing.T) {
	// The inferred schema of a canonical tree renders back to the same
	// text as the tree itself.
	root := &format.Node{Children: []*format.Node{
		{Name: "id", Kind: format.Int64},
		{Name: "tags", Annotation: format.List, Repetition: format.Optional, Children: []*format.Node{
			{Name: "list", Repetition: format.Repeated, Children: []*format.Node{
				{Name: "element", Kind: format.ByteArray, Annotation: format.UTF8},
			}},
		}},
	}}

	schema, err := shred.Parse(root)
	if err != nil {
		t.Fatal(err)
	}

	nodeText := new(bytes.Buffer)
	if err := shred.Print(nodeText, "m", root); err != nil {
		t.Fatal(err)
	}
	assertText(t, printSchema(t, "m", schema), nodeText.String())
}

func TestPrintColumns(t *testing.T) {
	root := &format.Node{Children: []*format.Node{
		{Name: "id", Kind: format.Int64},
		{Name: "tags", Annotation: format.List, Repetition: format.Optional, Children: []*format.Node{
			{Name: "list", Repetition: format.Repeated, Children: []*format.Node{
				{Name: "element", Kind: format.ByteArray, Annotation: format.UTF8},
			}},
		}},
	}}
	root.Compute()

	buf := new(bytes.Buffer)
	shred.PrintColumns(buf, root)
	out := buf.String()

	for _, want := range []string{"id", "tags.list.element", "binary", "UTF8"} {
		if !strings.Contains(out, want) {
			t.Errorf("column table does not mention %q:\n%s", want, out)
		}
	}
}
