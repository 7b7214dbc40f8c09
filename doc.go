/*
Package shred assembles hierarchical records from columns shredded in the
Dremel layout: one primitive-valued column per leaf, plus definition and
repetition level streams.

Given a file-format type tree (package format), Parse infers the logical
schema of the rows, and NewRowReader compiles a reader tree that pulls
primitive values from per-column decoders and re-assembles them into
values: primitives, lists, maps, groups of named fields, and optionals.

Reading

The high-level interface for reading records is RowReader. The caller
supplies one ColumnDecoder per leaf column; the page and file machinery
behind the decoders is outside this package.

	schema, err := shred.Parse(root)
	if err != nil {
		...
	}
	rows := shred.NewRowReader(schema, columns, 1024)
	for {
		row, err := rows.ReadRow()
		if err == io.EOF {
			break
		}
		...
	}

Rows are Value instances: a tagged union over every materializable shape,
with typed predicates, typed extractors, and conversions into and out of
Go types, so callers that do not know the schema at compile time can
still work with the rows.
*/
package shred
