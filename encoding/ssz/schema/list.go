package schema

import (
	"github.com/YoutacRandS-VA/teku/encoding/ssz/tree"
	"github.com/pkg/errors"
)

// ListSchema is the schema of a sequence of at most limit elements. Its root
// mixes the content tree with the length.
type ListSchema struct {
	sequence
	limit       uint64
	defaultTree tree.Node
}

// NewListSchema returns the schema of lists of up to limit elements of elem.
func NewListSchema(elem Schema, limit uint64) *ListSchema {
	s := &ListSchema{sequence: newSequence(elem, limit), limit: limit}
	s.defaultTree = tree.MixInLength(tree.Zero(s.depth), 0)
	return s
}

func (*ListSchema) IsFixedSize() bool        { return false }
func (*ListSchema) FixedPartSize() uint64    { return 0 }
func (*ListSchema) MinSSZLength() uint64     { return 0 }
func (s *ListSchema) DefaultTree() tree.Node { return s.defaultTree }
func (s *ListSchema) TreeDepth() uint64      { return s.depth }
func (*ListSchema) IsMixedInLength() bool    { return true }
func (s *ListSchema) Limit() uint64          { return s.limit }
func (s *ListSchema) String() string         { return s.name("List", s.limit) }
func (s *ListSchema) Default() Value         { return s.CreateFromBackingNode(s.defaultTree) }

func (s *ListSchema) MaxSSZLength() uint64 {
	if s.elem.IsFixedSize() {
		return satMul(s.limit, s.elem.FixedPartSize())
	}
	return satMul(s.limit, satAdd(offsetSize, s.elem.MaxSSZLength()))
}

func (s *ListSchema) SizeOf(n tree.Node) uint64 {
	return s.sizeOf(n.Left(), tree.LengthFromNode(n.Right()))
}

func (s *ListSchema) Equal(other Schema) bool {
	o, ok := other.(*ListSchema)
	return ok && o.limit == s.limit && s.equal(o.sequence)
}

// ElementGIndex returns the generalized index of element i, or of the chunk
// holding it when elements are packed, below the list root.
func (s *ListSchema) ElementGIndex(i uint64) tree.GIndex {
	return tree.Concat(tree.GIndex(2), s.elementGIndex(i))
}

// LengthGIndex addresses the mixed in length.
func (*ListSchema) LengthGIndex() tree.GIndex { return tree.GIndex(3) }

func (s *ListSchema) CreateFromBackingNode(n tree.Node) Value {
	return &List{schema: s, node: n}
}

func (s *ListSchema) Encode(v Value) ([]byte, error) { return encodeValue(s, v) }
func (s *ListSchema) Decode(b []byte) (Value, error) { return decodeValue(s, b) }

func (s *ListSchema) encodeNode(dst []byte, n tree.Node) []byte {
	return s.encode(dst, n.Left(), tree.LengthFromNode(n.Right()))
}

func (s *ListSchema) decodeNode(b []byte) (tree.Node, error) {
	content, n, err := s.decode(b, s.limit)
	if err != nil {
		return nil, err
	}
	return tree.MixInLength(content, n), nil
}

// List is a variable length sequence value.
type List struct {
	schema *ListSchema
	node   tree.Node
}

// NewList builds a list of s from elems.
func NewList(s *ListSchema, elems []Value) (*List, error) {
	if uint64(len(elems)) > s.limit {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "%d elements exceed %s", len(elems), s)
	}
	content, err := s.build(elems)
	if err != nil {
		return nil, err
	}
	return &List{schema: s, node: tree.MixInLength(content, uint64(len(elems)))}, nil
}

func (l *List) Schema() Schema              { return l.schema }
func (l *List) ListSchema() *ListSchema     { return l.schema }
func (l *List) BackingNode() tree.Node      { return l.node }
func (l *List) HashTreeRoot() [32]byte      { return l.node.Root() }
func (l *List) MarshalSSZ() ([]byte, error) { return l.schema.Encode(l) }
func (l *List) Len() uint64                 { return tree.LengthFromNode(l.node.Right()) }

// Get returns element i.
func (l *List) Get(i uint64) (Value, error) {
	if n := l.Len(); i >= n {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "index %d, length %d", i, n)
	}
	return l.schema.get(l.node.Left(), i), nil
}

// Elements returns all elements in order.
func (l *List) Elements() []Value {
	return l.schema.elements(l.node.Left(), l.Len())
}

// ToMutable returns a staging copy of the list.
func (l *List) ToMutable() *MutableList {
	return &MutableList{original: l, length: l.Len(), dirty: make(map[uint64]Value)}
}

// MutableList stages element writes and appends against a list. It is not
// safe for concurrent use and is spent after Commit.
type MutableList struct {
	original  *List
	length    uint64
	dirty     map[uint64]Value
	committed bool
}

// Len returns the staged length.
func (m *MutableList) Len() uint64 { return m.length }

// Set stages v as element i, which must already exist.
func (m *MutableList) Set(i uint64, v Value) error {
	if m.committed {
		return ErrAlreadyCommitted
	}
	if i >= m.length {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d, length %d", i, m.length)
	}
	if err := checkValue(m.original.schema.elem, v); err != nil {
		return err
	}
	m.dirty[i] = v
	return nil
}

// Append stages v as a new last element.
func (m *MutableList) Append(v Value) error {
	if m.committed {
		return ErrAlreadyCommitted
	}
	if m.length >= m.original.schema.limit {
		return errors.Wrapf(ErrIndexOutOfRange, "list is full at %d elements", m.length)
	}
	if err := checkValue(m.original.schema.elem, v); err != nil {
		return err
	}
	m.dirty[m.length] = v
	m.length++
	return nil
}

// Get returns the staged element i, or the original one.
func (m *MutableList) Get(i uint64) (Value, error) {
	if m.committed {
		return nil, ErrAlreadyCommitted
	}
	if v, ok := m.dirty[i]; ok {
		return v, nil
	}
	return m.original.Get(i)
}

// Commit applies the staged writes and returns the new list.
func (m *MutableList) Commit() (*List, error) {
	if m.committed {
		return nil, ErrAlreadyCommitted
	}
	m.committed = true
	commits.WithLabelValues("list").Inc()
	if len(m.dirty) == 0 {
		return m.original, nil
	}
	content, err := m.original.schema.apply(m.original.node.Left(), m.dirty)
	if err != nil {
		return nil, err
	}
	m.dirty = nil
	return &List{schema: m.original.schema, node: tree.MixInLength(content, m.length)}, nil
}
