// Package tag defines the labeled tree of typed nodes that the mapper
// produces and consumes: compound nodes (insertion-ordered, unique string
// keys), list nodes (ordered, unnamed children) and leaf nodes carrying a
// typed scalar or typed array.
package tag

// Node is a single node in a tag tree.
//
// Exactly one payload group is meaningful, selected by Kind: Int holds the
// bit pattern for Byte/Short/Long/Int and bool-as-byte, Float holds both
// float widths, Str/Bytes/Ints hold string and array leaves, and Children
// holds List and Compound members.
type Node struct {
	Kind Kind

	// Name is meaningful only when the node is a direct child of a
	// Compound. List children and tree roots carry no name.
	Name string

	Int   int64
	Float float64
	Str   string
	Bytes []byte
	Ints  []int32

	Children []*Node
}

func FromByte(v int8) *Node {
	return &Node{Kind: KindByte, Int: int64(v)}
}

func FromShort(v int16) *Node {
	return &Node{Kind: KindShort, Int: int64(v)}
}

func FromInt(v int32) *Node {
	return &Node{Kind: KindInt, Int: int64(v)}
}

func FromLong(v int64) *Node {
	return &Node{Kind: KindLong, Int: v}
}

func FromFloat(v float32) *Node {
	return &Node{Kind: KindFloat, Float: float64(v)}
}

func FromDouble(v float64) *Node {
	return &Node{Kind: KindDouble, Float: v}
}

// FromBool stores a boolean as a Byte node holding 0 or 1.
func FromBool(v bool) *Node {
	n := &Node{Kind: KindByte}
	if v {
		n.Int = 1
	}
	return n
}

func FromString(v string) *Node {
	return &Node{Kind: KindString, Str: v}
}

func FromBytes(v []byte) *Node {
	return &Node{Kind: KindByteArray, Bytes: v}
}

func FromInts(v []int32) *Node {
	return &Node{Kind: KindIntArray, Ints: v}
}

// NewList builds a list node. Children lose their names: list members are
// positional.
func NewList(children ...*Node) *Node {
	n := &Node{Kind: KindList}
	for _, c := range children {
		n.Append(c)
	}
	return n
}

func NewCompound() *Node {
	return &Node{Kind: KindCompound}
}

// WithName sets the node's name and returns the node for chaining.
func (n *Node) WithName(name string) *Node {
	n.Name = name
	return n
}

func (n *Node) ClearName() *Node {
	n.Name = ""
	return n
}

// Len returns the child count of a List or Compound, 0 for leaves.
func (n *Node) Len() int {
	return len(n.Children)
}

// Get returns the compound child with the given name, or nil.
func (n *Node) Get(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Put inserts a named child into a compound. A child with the same name is
// replaced in place, preserving insertion order; otherwise the child is
// appended.
func (n *Node) Put(child *Node) *Node {
	for i, c := range n.Children {
		if c.Name == child.Name {
			n.Children[i] = child
			return n
		}
	}
	n.Children = append(n.Children, child)
	return n
}

// Append adds a child to a list, clearing its name.
func (n *Node) Append(child *Node) *Node {
	child.Name = ""
	n.Children = append(n.Children, child)
	return n
}

// AsBool interprets an integer leaf as a boolean.
func (n *Node) AsBool() bool {
	return n.Int != 0
}

// Clone returns a deep copy of the node and its subtree.
func (n *Node) Clone() *Node {
	dst := &Node{
		Kind:  n.Kind,
		Name:  n.Name,
		Int:   n.Int,
		Float: n.Float,
		Str:   n.Str,
	}
	if n.Bytes != nil {
		dst.Bytes = append([]byte(nil), n.Bytes...)
	}
	if n.Ints != nil {
		dst.Ints = append([]int32(nil), n.Ints...)
	}
	if n.Children != nil {
		dst.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			dst.Children[i] = c.Clone()
		}
	}
	return dst
}

// Visit walks the subtree rooted at n, calling f before and after each
// node's children. Returning false from the pre-order call skips the
// children.
func (n *Node) Visit(f func(n *Node, post bool) (bool, error)) error {
	dive, err := f(n, false)
	if err != nil {
		return err
	}
	if dive {
		for _, c := range n.Children {
			if err := c.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(n, true); err != nil {
		return err
	}
	return nil
}

// Equal reports structural equality: kinds, names, payloads and child order
// are all significant.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Kind != b.Kind || a.Name != b.Name {
		return false
	}
	switch a.Kind {
	case KindByte, KindShort, KindInt, KindLong:
		return a.Int == b.Int
	case KindFloat, KindDouble:
		return a.Float == b.Float
	case KindString:
		return a.Str == b.Str
	case KindByteArray:
		if len(a.Bytes) != len(b.Bytes) {
			return false
		}
		for i := range a.Bytes {
			if a.Bytes[i] != b.Bytes[i] {
				return false
			}
		}
		return true
	case KindIntArray:
		if len(a.Ints) != len(b.Ints) {
			return false
		}
		for i := range a.Ints {
			if a.Ints[i] != b.Ints[i] {
				return false
			}
		}
		return true
	case KindList, KindCompound:
		if len(a.Children) != len(b.Children) {
			return false
		}
		for i := range a.Children {
			if !Equal(a.Children[i], b.Children[i]) {
				return false
			}
		}
		return true
	}
	return false
}
