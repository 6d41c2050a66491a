package schema

import (
	"github.com/YoutacRandS-VA/teku/encoding/ssz/tree"
	"github.com/pkg/errors"
)

// VectorSchema is the schema of a sequence of exactly length elements.
type VectorSchema struct {
	sequence
	length      uint64
	defaultTree tree.Node
}

// NewVectorSchema returns the schema of vectors of length elements of elem.
func NewVectorSchema(elem Schema, length uint64) *VectorSchema {
	s := &VectorSchema{sequence: newSequence(elem, length), length: length}
	if s.basic != nil {
		s.defaultTree = tree.Zero(s.depth)
	} else {
		s.defaultTree = repeatNode(elem.DefaultTree(), length, s.depth)
	}
	return s
}

func (s *VectorSchema) IsFixedSize() bool      { return s.elem.IsFixedSize() }
func (s *VectorSchema) DefaultTree() tree.Node { return s.defaultTree }
func (s *VectorSchema) TreeDepth() uint64      { return s.depth }
func (*VectorSchema) IsMixedInLength() bool    { return false }
func (s *VectorSchema) Length() uint64         { return s.length }
func (s *VectorSchema) String() string         { return s.name("Vector", s.length) }
func (s *VectorSchema) Default() Value         { return s.CreateFromBackingNode(s.defaultTree) }

func (s *VectorSchema) FixedPartSize() uint64 {
	return satMul(s.length, fieldFixedSize(s.elem))
}

func (s *VectorSchema) MinSSZLength() uint64 {
	if s.elem.IsFixedSize() {
		return s.FixedPartSize()
	}
	return satMul(s.length, offsetSize+s.elem.MinSSZLength())
}

func (s *VectorSchema) MaxSSZLength() uint64 {
	if s.elem.IsFixedSize() {
		return s.FixedPartSize()
	}
	return satMul(s.length, satAdd(offsetSize, s.elem.MaxSSZLength()))
}

func (s *VectorSchema) SizeOf(n tree.Node) uint64 {
	return s.sizeOf(n, s.length)
}

func (s *VectorSchema) Equal(other Schema) bool {
	o, ok := other.(*VectorSchema)
	return ok && o.length == s.length && s.equal(o.sequence)
}

// ElementGIndex returns the generalized index of element i, or of the chunk
// holding it when elements are packed.
func (s *VectorSchema) ElementGIndex(i uint64) tree.GIndex {
	return s.elementGIndex(i)
}

func (s *VectorSchema) CreateFromBackingNode(n tree.Node) Value {
	return &Vector{schema: s, node: n}
}

func (s *VectorSchema) Encode(v Value) ([]byte, error) { return encodeValue(s, v) }
func (s *VectorSchema) Decode(b []byte) (Value, error) { return decodeValue(s, b) }

func (s *VectorSchema) encodeNode(dst []byte, n tree.Node) []byte {
	return s.encode(dst, n, s.length)
}

func (s *VectorSchema) decodeNode(b []byte) (tree.Node, error) {
	content, n, err := s.decode(b, s.length)
	if err != nil {
		return nil, err
	}
	if n != s.length {
		return nil, errors.Wrapf(ErrMalformedEncoding, "%s: got %d elements", s, n)
	}
	return content, nil
}

// Vector is a fixed length sequence value.
type Vector struct {
	schema *VectorSchema
	node   tree.Node
}

// NewVector builds a vector from exactly s.Length() elements.
func NewVector(s *VectorSchema, elems []Value) (*Vector, error) {
	if uint64(len(elems)) != s.length {
		return nil, errors.Wrapf(ErrSchemaMismatch, "got %d elements for %s", len(elems), s)
	}
	n, err := s.build(elems)
	if err != nil {
		return nil, err
	}
	return &Vector{schema: s, node: n}, nil
}

func (v *Vector) Schema() Schema              { return v.schema }
func (v *Vector) VectorSchema() *VectorSchema { return v.schema }
func (v *Vector) BackingNode() tree.Node      { return v.node }
func (v *Vector) HashTreeRoot() [32]byte      { return v.node.Root() }
func (v *Vector) MarshalSSZ() ([]byte, error) { return v.schema.Encode(v) }
func (v *Vector) Len() uint64                 { return v.schema.length }

// Get returns element i.
func (v *Vector) Get(i uint64) (Value, error) {
	if i >= v.schema.length {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "index %d, length %d", i, v.schema.length)
	}
	return v.schema.get(v.node, i), nil
}

// Elements returns all elements in order.
func (v *Vector) Elements() []Value {
	return v.schema.elements(v.node, v.schema.length)
}

// ToMutable returns a staging copy of the vector.
func (v *Vector) ToMutable() *MutableVector {
	return &MutableVector{original: v, dirty: make(map[uint64]Value)}
}

// MutableVector stages element writes against a vector. It is not safe for
// concurrent use and is spent after Commit.
type MutableVector struct {
	original  *Vector
	dirty     map[uint64]Value
	committed bool
}

// Set stages v as element i.
func (m *MutableVector) Set(i uint64, v Value) error {
	if m.committed {
		return ErrAlreadyCommitted
	}
	s := m.original.schema
	if i >= s.length {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d, length %d", i, s.length)
	}
	if err := checkValue(s.elem, v); err != nil {
		return err
	}
	m.dirty[i] = v
	return nil
}

// Get returns the staged element i, or the original one.
func (m *MutableVector) Get(i uint64) (Value, error) {
	if m.committed {
		return nil, ErrAlreadyCommitted
	}
	if v, ok := m.dirty[i]; ok {
		return v, nil
	}
	return m.original.Get(i)
}

// Commit applies the staged writes and returns the new vector.
func (m *MutableVector) Commit() (*Vector, error) {
	if m.committed {
		return nil, ErrAlreadyCommitted
	}
	m.committed = true
	commits.WithLabelValues("vector").Inc()
	n, err := m.original.schema.apply(m.original.node, m.dirty)
	if err != nil {
		return nil, err
	}
	m.dirty = nil
	return &Vector{schema: m.original.schema, node: n}, nil
}
