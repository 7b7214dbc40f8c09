package shred

import "fmt"

// ClassificationError is returned by schema inference when a node of the
// file-format type tree matches none of the known shapes.
type ClassificationError struct {
	Context string
}

func (e *ClassificationError) Error() string {
	return "cannot classify schema node: " + e.Context
}

// UnsupportedAnnotationError is returned by schema inference when a node
// carries a logical annotation the engine does not implement.
type UnsupportedAnnotationError struct {
	Name string
}

func (e *UnsupportedAnnotationError) Error() string {
	return "unsupported logical annotation: " + e.Name
}

// MalformedListError is returned by schema inference when a group is
// annotated as a list but does not follow the structural rules of the
// list encodings.
type MalformedListError struct {
	Context string
}

func (e *MalformedListError) Error() string {
	return "malformed list wrapper: " + e.Context
}

// MalformedMapError is returned by schema inference when a group is
// annotated as a map but does not have a single repeated key/value child.
type MalformedMapError struct {
	Context string
}

func (e *MalformedMapError) Error() string {
	return "malformed map wrapper: " + e.Context
}

// TypeMismatchError is returned by the typed accessors and downcasts of
// Value when the value does not hold the expected variant.
type TypeMismatchError struct {
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("cannot access %s as %s", e.Actual, e.Expected)
}

// DecoderError wraps an error reported by an external column decoder.
type DecoderError struct {
	Err error
}

func (e *DecoderError) Error() string {
	return "column decoder: " + e.Err.Error()
}

func (e *DecoderError) Unwrap() error {
	return e.Err
}

func errMismatch(expected string, v Value) error {
	return &TypeMismatchError{Expected: expected, Actual: v.Kind().String()}
}
