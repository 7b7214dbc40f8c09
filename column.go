package shred

import "strings"

// ColumnPath locates a leaf column in the shredded column graph: the
// names of the nodes on the way from the root to the leaf, wrapper groups
// included.
type ColumnPath []string

// String returns the dotted form of the path.
func (p ColumnPath) String() string {
	return strings.Join(p, ".")
}

// ColumnDecoder supplies the primitive values of one column together with
// their definition and repetition levels. Implementations are provided by
// the caller; the page and chunk machinery behind them is outside this
// package.
//
// DefinitionLevel and RepetitionLevel peek at the levels of the next slot
// without consuming it; they are stable until the slot is consumed by
// ReadValue or AdvanceNull.
type ColumnDecoder interface {
	// DefinitionLevel returns the definition level of the next slot.
	DefinitionLevel() int16

	// RepetitionLevel returns the repetition level of the next slot.
	RepetitionLevel() int16

	// HasNext returns true while the column has slots left.
	HasNext() bool

	// ReadValue consumes one slot and returns its primitive value, shaped
	// by the column's physical type.
	ReadValue() (Value, error)

	// AdvanceNull consumes one null slot; no value is produced.
	AdvanceNull() error

	// SetBatchSize hints how many values will be pulled at a time. It is
	// advisory and may be ignored.
	SetBatchSize(int)
}

// Columns maps dotted column paths to their decoders. One entry is
// consumed per leaf of the schema during reader construction.
type Columns map[string]ColumnDecoder

func (c Columns) bind(path ColumnPath) ColumnDecoder {
	d, ok := c[path.String()]
	if !ok {
		panic("no column decoder bound for path: " + path.String())
	}
	return d
}
