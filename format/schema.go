package format

import (
	"errors"
	"fmt"
)

// Node represents a node in the schema tree of a file.
type Node struct {
	// User-definable attributes
	Name       string
	Kind       Kind
	Annotation Annotation
	Repetition Repetition
	TypeLength int32
	Scale      int32
	Precision  int32

	// Computed attributes (format spec)
	MaxRepetitionLevel int16
	MaxDefinitionLevel int16
	Path               []string

	// Tree structure
	parent   *Node
	Children []*Node
}

// Leaf returns true if the node maps to an actual column in the file.
func (sn *Node) Leaf() bool {
	return len(sn.Children) == 0
}

// Root returns true if the node has no parent.
func (sn *Node) Root() bool {
	return sn.parent == nil
}

func (sn *Node) Parent() *Node {
	return sn.parent
}

// At walks the tree following names to retrieve the node at the end of the
// path. Returns nil if no node is found.
func (sn *Node) At(path ...string) *Node {
	if len(path) == 0 {
		return sn
	}
	for _, child := range sn.Children {
		if child.Name == path[0] {
			return child.At(path[1:]...)
		}
	}
	return nil
}

// Leaves returns the tree's leaves in the order in which their columns
// appear in the file, which is depth-first.
func (sn *Node) Leaves() []*Node {
	return sn.addLeavesTo(nil)
}

func (sn *Node) addLeavesTo(leaves []*Node) []*Node {
	if sn.Leaf() {
		return append(leaves, sn)
	}
	for _, child := range sn.Children {
		leaves = child.addLeavesTo(leaves)
	}
	return leaves
}

// Add appends a node as a direct child of this node and updates the
// parent/children relationship.
func (sn *Node) Add(node *Node) {
	sn.Children = append(sn.Children, node)
	node.parent = sn
}

// Compute walks the tree and updates all computed attributes: the maximum
// repetition and definition level of every node, and its column path.
//
// Level arithmetic follows the format's shredding rules: a repeated field
// increments the repetition level, a non-required field increments the
// definition level. The root carries no repetition and contributes to
// neither.
func (sn *Node) Compute() {
	if sn.parent != nil {
		sn.MaxRepetitionLevel = sn.parent.MaxRepetitionLevel
		sn.MaxDefinitionLevel = sn.parent.MaxDefinitionLevel
		sn.Path = newPath(sn.parent.Path, sn.Name)

		if sn.Repetition == Repeated {
			sn.MaxRepetitionLevel++
		}
		if sn.Repetition != Required {
			sn.MaxDefinitionLevel++
		}
	}

	for _, c := range sn.Children {
		c.parent = sn
		c.Compute()
	}
}

// SchemaElement is one entry of the flat depth-first representation in
// which a file serializes its schema tree.
type SchemaElement struct {
	Name        string
	Kind        Kind
	Annotation  Annotation
	Repetition  Repetition
	TypeLength  int32
	Scale       int32
	Precision   int32
	NumChildren int32
}

var errEmptySchema = errors.New("empty schema")

// FromElements builds a schema tree from a flat list of schema elements
// laid out in depth-first order, and computes the derived attributes.
func FromElements(elements []SchemaElement) (*Node, error) {
	if len(elements) == 0 {
		return nil, errEmptySchema
	}

	root := &Node{}

	consumed := fromElementsRecurse(root, elements)
	if consumed != len(elements) {
		return nil, fmt.Errorf("should have consumed %d schema elements but got %d instead", len(elements), consumed)
	}

	root.Compute()

	return root, nil
}

func fromElementsRecurse(current *Node, left []SchemaElement) int {
	if len(left) == 0 {
		panic("should be at least one schema element left")
	}

	el := left[0]

	current.Name = el.Name
	current.Kind = el.Kind
	current.Annotation = el.Annotation
	current.Repetition = el.Repetition
	current.TypeLength = el.TypeLength
	current.Scale = el.Scale
	current.Precision = el.Precision
	current.Children = make([]*Node, el.NumChildren)

	offset := 1
	for i := int32(0); i < el.NumChildren; i++ {
		current.Children[i] = &Node{parent: current}
		offset += fromElementsRecurse(current.Children[i], left[offset:])
	}

	return offset
}

func newPath(path []string, name string) []string {
	newPath := make([]string, len(path)+1)
	copy(newPath, path)
	newPath[len(path)] = name
	return newPath
}
