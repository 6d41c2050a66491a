package schema

import (
	"fmt"

	"github.com/YoutacRandS-VA/teku/encoding/ssz/tree"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/go-bitfield"
)

const bitsPerChunk = tree.BytesPerChunk * 8

func bitDepth(n uint64) uint64 {
	return tree.Depth((n + bitsPerChunk - 1) / bitsPerChunk)
}

// BitvectorSchema is the schema of exactly length bits.
type BitvectorSchema struct {
	length uint64
	depth  uint64
}

// NewBitvectorSchema returns the schema of bitvectors of length bits.
func NewBitvectorSchema(length uint64) *BitvectorSchema {
	return &BitvectorSchema{length: length, depth: bitDepth(length)}
}

func (*BitvectorSchema) IsFixedSize() bool         { return true }
func (s *BitvectorSchema) FixedPartSize() uint64   { return (s.length + 7) / 8 }
func (s *BitvectorSchema) MinSSZLength() uint64    { return s.FixedPartSize() }
func (s *BitvectorSchema) MaxSSZLength() uint64    { return s.FixedPartSize() }
func (s *BitvectorSchema) DefaultTree() tree.Node  { return tree.Zero(s.depth) }
func (s *BitvectorSchema) TreeDepth() uint64       { return s.depth }
func (*BitvectorSchema) IsMixedInLength() bool     { return false }
func (s *BitvectorSchema) Length() uint64          { return s.length }
func (s *BitvectorSchema) SizeOf(tree.Node) uint64 { return s.FixedPartSize() }
func (s *BitvectorSchema) String() string          { return fmt.Sprintf("Bitvector[%d]", s.length) }
func (s *BitvectorSchema) Default() Value          { return s.CreateFromBackingNode(s.DefaultTree()) }

func (s *BitvectorSchema) Equal(other Schema) bool {
	o, ok := other.(*BitvectorSchema)
	return ok && o.length == s.length
}

func (s *BitvectorSchema) CreateFromBackingNode(n tree.Node) Value {
	return &Bitvector{schema: s, node: n}
}

func (s *BitvectorSchema) Encode(v Value) ([]byte, error) { return encodeValue(s, v) }
func (s *BitvectorSchema) Decode(b []byte) (Value, error) { return decodeValue(s, b) }

func (s *BitvectorSchema) encodeNode(dst []byte, n tree.Node) []byte {
	return unpackBytes(dst, n, s.depth, s.FixedPartSize())
}

func (s *BitvectorSchema) decodeNode(b []byte) (tree.Node, error) {
	if rem := s.length % 8; rem != 0 && b[len(b)-1]>>rem != 0 {
		return nil, errors.Wrapf(ErrMalformedEncoding, "%s: bits set beyond length", s)
	}
	return packBytes(b, s.depth)
}

// Bitvector is a fixed length bitfield.
type Bitvector struct {
	schema *BitvectorSchema
	node   tree.Node
}

// NewBitvector builds a bitvector from its serialized bytes.
func NewBitvector(s *BitvectorSchema, b []byte) (*Bitvector, error) {
	v, err := s.Decode(b)
	if err != nil {
		return nil, err
	}
	return v.(*Bitvector), nil
}

func (v *Bitvector) Schema() Schema              { return v.schema }
func (v *Bitvector) BackingNode() tree.Node      { return v.node }
func (v *Bitvector) HashTreeRoot() [32]byte      { return v.node.Root() }
func (v *Bitvector) MarshalSSZ() ([]byte, error) { return v.Bytes(), nil }
func (v *Bitvector) Len() uint64                 { return v.schema.length }

// Bytes returns the serialized bits, least significant bit first.
func (v *Bitvector) Bytes() []byte {
	return v.schema.encodeNode(nil, v.node)
}

// BitAt reports whether bit i is set. Out of range bits are unset.
func (v *Bitvector) BitAt(i uint64) bool {
	if i >= v.schema.length {
		return false
	}
	b := v.Bytes()
	return b[i/8]&(1<<(i%8)) != 0
}

// BitlistSchema is the schema of up to limit bits.
type BitlistSchema struct {
	limit       uint64
	depth       uint64
	defaultTree tree.Node
}

// NewBitlistSchema returns the schema of bitlists of up to limit bits.
func NewBitlistSchema(limit uint64) *BitlistSchema {
	depth := bitDepth(limit)
	return &BitlistSchema{limit: limit, depth: depth, defaultTree: tree.MixInLength(tree.Zero(depth), 0)}
}

func (*BitlistSchema) IsFixedSize() bool        { return false }
func (*BitlistSchema) FixedPartSize() uint64    { return 0 }
func (*BitlistSchema) MinSSZLength() uint64     { return 1 }
func (s *BitlistSchema) MaxSSZLength() uint64   { return s.limit/8 + 1 }
func (s *BitlistSchema) DefaultTree() tree.Node { return s.defaultTree }
func (s *BitlistSchema) TreeDepth() uint64      { return s.depth }
func (*BitlistSchema) IsMixedInLength() bool    { return true }
func (s *BitlistSchema) Limit() uint64          { return s.limit }
func (s *BitlistSchema) String() string         { return fmt.Sprintf("Bitlist[%d]", s.limit) }
func (s *BitlistSchema) Default() Value         { return s.CreateFromBackingNode(s.defaultTree) }

func (s *BitlistSchema) SizeOf(n tree.Node) uint64 {
	return tree.LengthFromNode(n.Right())/8 + 1
}

func (s *BitlistSchema) Equal(other Schema) bool {
	o, ok := other.(*BitlistSchema)
	return ok && o.limit == s.limit
}

func (s *BitlistSchema) CreateFromBackingNode(n tree.Node) Value {
	return &Bitlist{schema: s, node: n}
}

func (s *BitlistSchema) Encode(v Value) ([]byte, error) { return encodeValue(s, v) }
func (s *BitlistSchema) Decode(b []byte) (Value, error) { return decodeValue(s, b) }

// encodeNode writes the bits followed by the delimiting length bit.
func (s *BitlistSchema) encodeNode(dst []byte, n tree.Node) []byte {
	length := tree.LengthFromNode(n.Right())
	start := len(dst)
	dst = unpackBytes(dst, n.Left(), s.depth, (length+7)/8)
	if length%8 == 0 {
		return append(dst, 1)
	}
	dst[start+int(length/8)] |= 1 << (length % 8)
	return dst
}

func (s *BitlistSchema) decodeNode(b []byte) (tree.Node, error) {
	if b[len(b)-1] == 0 {
		return nil, errors.Wrapf(ErrMalformedEncoding, "%s: missing length bit", s)
	}
	length := bitfield.Bitlist(b).Len()
	if length > s.limit {
		return nil, errors.Wrapf(ErrMalformedEncoding, "%s: %d bits", s, length)
	}
	content := make([]byte, (length+7)/8)
	copy(content, b)
	if length%8 != 0 {
		content[len(content)-1] &^= 1 << (length % 8)
	}
	root, err := packBytes(content, s.depth)
	if err != nil {
		return nil, err
	}
	return tree.MixInLength(root, length), nil
}

// Bitlist is a variable length bitfield.
type Bitlist struct {
	schema *BitlistSchema
	node   tree.Node
}

// NewBitlist copies bits into a value of s.
func NewBitlist(s *BitlistSchema, bits bitfield.Bitlist) (*Bitlist, error) {
	v, err := s.Decode(bits)
	if err != nil {
		return nil, err
	}
	return v.(*Bitlist), nil
}

func (v *Bitlist) Schema() Schema              { return v.schema }
func (v *Bitlist) BackingNode() tree.Node      { return v.node }
func (v *Bitlist) HashTreeRoot() [32]byte      { return v.node.Root() }
func (v *Bitlist) MarshalSSZ() ([]byte, error) { return v.Bits(), nil }
func (v *Bitlist) Len() uint64                 { return tree.LengthFromNode(v.node.Right()) }

// Bits returns the bitfield including its length bit.
func (v *Bitlist) Bits() bitfield.Bitlist {
	return v.schema.encodeNode(nil, v.node)
}
