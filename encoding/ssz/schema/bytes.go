package schema

import (
	"fmt"

	"github.com/YoutacRandS-VA/teku/encoding/ssz/tree"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

func chunksFor(byteLen uint64) uint64 {
	return (byteLen + tree.BytesPerChunk - 1) / tree.BytesPerChunk
}

// packBytes splits b into zero padded chunks and builds a tree of the given depth.
func packBytes(b []byte, depth uint64) (tree.Node, error) {
	leaves := make([]tree.Node, 0, chunksFor(uint64(len(b))))
	for i := 0; i < len(b); i += tree.BytesPerChunk {
		leaves = append(leaves, tree.NewLeafFromBytes(b[i:min(i+tree.BytesPerChunk, len(b))]))
	}
	return tree.FromChunks(leaves, depth)
}

// unpackBytes appends the first length bytes stored in the chunks of n.
func unpackBytes(dst []byte, n tree.Node, depth, length uint64) []byte {
	if length == 0 {
		return dst
	}
	for _, leaf := range mustLeaves(n, depth, chunksFor(length)) {
		r := leaf.Root()
		take := min(length, tree.BytesPerChunk)
		dst = append(dst, r[:take]...)
		length -= take
	}
	return dst
}

// ByteVectorSchema is the schema of a fixed length byte string.
type ByteVectorSchema struct {
	length uint64
	depth  uint64
}

var (
	Bytes4Schema   = NewByteVectorSchema(4)
	Bytes20Schema  = NewByteVectorSchema(20)
	Bytes32Schema  = NewByteVectorSchema(32)
	Bytes48Schema  = NewByteVectorSchema(48)
	Bytes96Schema  = NewByteVectorSchema(96)
	Bytes256Schema = NewByteVectorSchema(256)
)

// NewByteVectorSchema returns the schema of byte strings of exactly length bytes.
func NewByteVectorSchema(length uint64) *ByteVectorSchema {
	return &ByteVectorSchema{length: length, depth: tree.Depth(chunksFor(length))}
}

func (*ByteVectorSchema) IsFixedSize() bool         { return true }
func (s *ByteVectorSchema) FixedPartSize() uint64   { return s.length }
func (s *ByteVectorSchema) MinSSZLength() uint64    { return s.length }
func (s *ByteVectorSchema) MaxSSZLength() uint64    { return s.length }
func (s *ByteVectorSchema) DefaultTree() tree.Node  { return tree.Zero(s.depth) }
func (s *ByteVectorSchema) TreeDepth() uint64       { return s.depth }
func (*ByteVectorSchema) IsMixedInLength() bool     { return false }
func (s *ByteVectorSchema) Length() uint64          { return s.length }
func (s *ByteVectorSchema) SizeOf(tree.Node) uint64 { return s.length }
func (s *ByteVectorSchema) String() string          { return fmt.Sprintf("Bytes%d", s.length) }
func (s *ByteVectorSchema) Default() Value          { return s.CreateFromBackingNode(s.DefaultTree()) }

func (s *ByteVectorSchema) Equal(other Schema) bool {
	o, ok := other.(*ByteVectorSchema)
	return ok && o.length == s.length
}

func (s *ByteVectorSchema) CreateFromBackingNode(n tree.Node) Value {
	return &ByteVector{schema: s, node: n}
}

func (s *ByteVectorSchema) Encode(v Value) ([]byte, error) { return encodeValue(s, v) }
func (s *ByteVectorSchema) Decode(b []byte) (Value, error) { return decodeValue(s, b) }

func (s *ByteVectorSchema) encodeNode(dst []byte, n tree.Node) []byte {
	return unpackBytes(dst, n, s.depth, s.length)
}

func (s *ByteVectorSchema) decodeNode(b []byte) (tree.Node, error) {
	return packBytes(b, s.depth)
}

// ByteVector is a fixed length byte string.
type ByteVector struct {
	schema *ByteVectorSchema
	node   tree.Node
}

// NewByteVector copies b into a value of s. b must be exactly s.Length() bytes.
func NewByteVector(s *ByteVectorSchema, b []byte) (*ByteVector, error) {
	if uint64(len(b)) != s.length {
		return nil, errors.Wrapf(ErrSchemaMismatch, "got %d bytes for %s", len(b), s)
	}
	n, err := packBytes(b, s.depth)
	if err != nil {
		return nil, err
	}
	return &ByteVector{schema: s, node: n}, nil
}

// NewBytes32 wraps a root in a Bytes32 value.
func NewBytes32(r [32]byte) *ByteVector {
	return &ByteVector{schema: Bytes32Schema, node: tree.NewLeaf(r)}
}

func (v *ByteVector) Schema() Schema              { return v.schema }
func (v *ByteVector) BackingNode() tree.Node      { return v.node }
func (v *ByteVector) HashTreeRoot() [32]byte      { return v.node.Root() }
func (v *ByteVector) MarshalSSZ() ([]byte, error) { return v.Bytes(), nil }
func (v *ByteVector) String() string              { return hexutil.Encode(v.Bytes()) }

// Bytes returns a copy of the contents.
func (v *ByteVector) Bytes() []byte {
	return unpackBytes(make([]byte, 0, v.schema.length), v.node, v.schema.depth, v.schema.length)
}

// ByteListSchema is the schema of a byte string of at most limit bytes.
type ByteListSchema struct {
	limit       uint64
	depth       uint64
	defaultTree tree.Node
}

// NewByteListSchema returns the schema of byte strings of up to limit bytes.
func NewByteListSchema(limit uint64) *ByteListSchema {
	depth := tree.Depth(chunksFor(limit))
	return &ByteListSchema{limit: limit, depth: depth, defaultTree: tree.MixInLength(tree.Zero(depth), 0)}
}

func (*ByteListSchema) IsFixedSize() bool        { return false }
func (*ByteListSchema) FixedPartSize() uint64    { return 0 }
func (*ByteListSchema) MinSSZLength() uint64     { return 0 }
func (s *ByteListSchema) MaxSSZLength() uint64   { return s.limit }
func (s *ByteListSchema) DefaultTree() tree.Node { return s.defaultTree }
func (s *ByteListSchema) TreeDepth() uint64      { return s.depth }
func (*ByteListSchema) IsMixedInLength() bool    { return true }
func (s *ByteListSchema) Limit() uint64          { return s.limit }
func (s *ByteListSchema) String() string         { return fmt.Sprintf("ByteList[%d]", s.limit) }
func (s *ByteListSchema) Default() Value         { return s.CreateFromBackingNode(s.defaultTree) }

func (s *ByteListSchema) SizeOf(n tree.Node) uint64 {
	return tree.LengthFromNode(n.Right())
}

func (s *ByteListSchema) Equal(other Schema) bool {
	o, ok := other.(*ByteListSchema)
	return ok && o.limit == s.limit
}

func (s *ByteListSchema) CreateFromBackingNode(n tree.Node) Value {
	return &ByteList{schema: s, node: n}
}

func (s *ByteListSchema) Encode(v Value) ([]byte, error) { return encodeValue(s, v) }
func (s *ByteListSchema) Decode(b []byte) (Value, error) { return decodeValue(s, b) }

func (s *ByteListSchema) encodeNode(dst []byte, n tree.Node) []byte {
	return unpackBytes(dst, n.Left(), s.depth, tree.LengthFromNode(n.Right()))
}

func (s *ByteListSchema) decodeNode(b []byte) (tree.Node, error) {
	content, err := packBytes(b, s.depth)
	if err != nil {
		return nil, err
	}
	return tree.MixInLength(content, uint64(len(b))), nil
}

// ByteList is a variable length byte string.
type ByteList struct {
	schema *ByteListSchema
	node   tree.Node
}

// NewByteList copies b into a value of s.
func NewByteList(s *ByteListSchema, b []byte) (*ByteList, error) {
	if uint64(len(b)) > s.limit {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "%d bytes exceed %s", len(b), s)
	}
	n, err := s.decodeNode(b)
	if err != nil {
		return nil, err
	}
	return &ByteList{schema: s, node: n}, nil
}

func (v *ByteList) Schema() Schema              { return v.schema }
func (v *ByteList) BackingNode() tree.Node      { return v.node }
func (v *ByteList) HashTreeRoot() [32]byte      { return v.node.Root() }
func (v *ByteList) MarshalSSZ() ([]byte, error) { return v.Bytes(), nil }
func (v *ByteList) Len() uint64                 { return tree.LengthFromNode(v.node.Right()) }
func (v *ByteList) String() string              { return hexutil.Encode(v.Bytes()) }

// Bytes returns a copy of the contents.
func (v *ByteList) Bytes() []byte {
	return v.schema.encodeNode(make([]byte, 0, v.Len()), v.node)
}
