package shred

// FieldNames is the ordered name index of a group: it maps field names to
// ordinals and ordinals back to names, preserving declaration order.
//
// A FieldNames is built once per group schema and shared by every Group
// value assembled from it.
type FieldNames struct {
	names []string
	index map[string]int
}

// NewFieldNames builds the index for the given names in order. It panics
// if a name appears twice; field names within a group are unique by
// construction of the schema.
func NewFieldNames(names []string) *FieldNames {
	f := &FieldNames{
		names: make([]string, len(names)),
		index: make(map[string]int, len(names)),
	}
	copy(f.names, names)
	for i, name := range names {
		if _, ok := f.index[name]; ok {
			panic("duplicate field name in group: " + name)
		}
		f.index[name] = i
	}
	return f
}

// Len returns the number of fields.
func (f *FieldNames) Len() int {
	return len(f.names)
}

// Ordinal returns the position of the named field and whether it exists.
func (f *FieldNames) Ordinal(name string) (int, bool) {
	i, ok := f.index[name]
	return i, ok
}

// Name returns the name of the field at the given ordinal.
func (f *FieldNames) Name(i int) string {
	return f.names[i]
}

// Names returns the field names in declaration order. The returned slice
// is shared and must not be modified.
func (f *FieldNames) Names() []string {
	return f.names
}

// Group is a materialized group of named fields. Fields are stored in
// declaration order; the shared FieldNames index resolves names to
// ordinals.
type Group struct {
	fields []Value
	names  *FieldNames
}

// Row is an alias for Group; reading rows into a type called Row is
// arguably more idiomatic than into a type called Group.
type Row = Group

// NewGroup assembles a group from its field values and the shared name
// index. The number of fields must match the index.
func NewGroup(fields []Value, names *FieldNames) Group {
	if len(fields) != names.Len() {
		panic("group field count does not match its name index")
	}
	return Group{fields: fields, names: names}
}

// Len returns the number of fields in the group.
func (g Group) Len() int {
	return len(g.fields)
}

// Get returns the value of the named field and whether the field exists.
func (g Group) Get(name string) (Value, bool) {
	if g.names == nil {
		return Value{}, false
	}
	i, ok := g.names.Ordinal(name)
	if !ok {
		return Value{}, false
	}
	return g.fields[i], true
}

// Field returns the value of the field at the given ordinal.
func (g Group) Field(i int) Value {
	return g.fields[i]
}

// Names returns the shared name index of the group.
func (g Group) Names() *FieldNames {
	return g.names
}

func equalGroup(a, b Group) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i, field := range a.fields {
		if a.names.Name(i) != b.names.Name(i) {
			return false
		}
		if !Equal(field, b.fields[i]) {
			return false
		}
	}
	return true
}
