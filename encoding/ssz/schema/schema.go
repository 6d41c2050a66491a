// Package schema describes SSZ types and the tree backed values built from
// them. A Schema is immutable and shared by every value of its type; a Value
// pairs a schema with the root of its backing tree.
package schema

import (
	"math/bits"

	"github.com/YoutacRandS-VA/teku/encoding/ssz/tree"
	"github.com/pkg/errors"
)

// offsetSize is the number of bytes used to encode an offset to a variable size part.
const offsetSize = 4

// Schema describes the shape, encoding and default tree of an SSZ type.
type Schema interface {
	// IsFixedSize reports whether every value of the type encodes to the same length.
	IsFixedSize() bool
	// FixedPartSize is the length of the fixed part of the encoding. For fixed
	// size types it is the whole encoding.
	FixedPartSize() uint64
	// MinSSZLength is the shortest valid encoding.
	MinSSZLength() uint64
	// MaxSSZLength is the longest valid encoding.
	MaxSSZLength() uint64
	// DefaultTree returns the backing tree of the default value.
	DefaultTree() tree.Node
	// TreeDepth is the depth of the content tree, excluding a mixed in length.
	TreeDepth() uint64
	// IsMixedInLength reports whether the tree root combines the content with a length.
	IsMixedInLength() bool
	// Equal reports structural equality. Names are not part of the structure.
	Equal(other Schema) bool
	String() string
	// Default returns the default value.
	Default() Value
	// CreateFromBackingNode wraps a tree of this schema's shape into a value.
	CreateFromBackingNode(n tree.Node) Value
	// SizeOf returns the encoded length of the value backed by n.
	SizeOf(n tree.Node) uint64
	// Encode serializes v, which must be of this schema.
	Encode(v Value) ([]byte, error)
	// Decode deserializes b. Decoding is all or nothing.
	Decode(b []byte) (Value, error)

	encodeNode(dst []byte, n tree.Node) []byte
	decodeNode(b []byte) (tree.Node, error)
}

// Value is an SSZ value backed by a tree.
type Value interface {
	Schema() Schema
	BackingNode() tree.Node
	HashTreeRoot() [32]byte
	MarshalSSZ() ([]byte, error)
}

func encodeValue(s Schema, v Value) ([]byte, error) {
	if v == nil {
		return nil, errors.Wrapf(ErrSchemaMismatch, "cannot encode nil value as %s", s)
	}
	if !s.Equal(v.Schema()) {
		return nil, errors.Wrapf(ErrSchemaMismatch, "cannot encode %s as %s", v.Schema(), s)
	}
	n := v.BackingNode()
	return s.encodeNode(make([]byte, 0, s.SizeOf(n)), n), nil
}

func decodeValue(s Schema, b []byte) (Value, error) {
	n, err := decodeNode(s, b)
	if err != nil {
		return nil, err
	}
	return s.CreateFromBackingNode(n), nil
}

// decodeNode bounds checks b against s before decoding it.
func decodeNode(s Schema, b []byte) (tree.Node, error) {
	l := uint64(len(b))
	if l < s.MinSSZLength() {
		return nil, errors.Wrapf(ErrMalformedEncoding, "%s: got %d bytes, want at least %d", s, l, s.MinSSZLength())
	}
	if l > s.MaxSSZLength() {
		return nil, errors.Wrapf(ErrMalformedEncoding, "%s: got %d bytes, want at most %d", s, l, s.MaxSSZLength())
	}
	return s.decodeNode(b)
}

// checkValue verifies v is a value of s.
func checkValue(s Schema, v Value) error {
	if v == nil {
		return errors.Wrapf(ErrSchemaMismatch, "nil value for %s", s)
	}
	if !s.Equal(v.Schema()) {
		return errors.Wrapf(ErrSchemaMismatch, "got %s, want %s", v.Schema(), s)
	}
	return nil
}

// fieldFixedSize is the space a value of s takes in the fixed part of its parent.
func fieldFixedSize(s Schema) uint64 {
	if s.IsFixedSize() {
		return s.FixedPartSize()
	}
	return offsetSize
}

func mustGetNode(root tree.Node, g tree.GIndex) tree.Node {
	n, err := tree.GetNode(root, g)
	if err != nil {
		// lint:nopanic -- a backing node that does not match its schema shape is a programming error.
		panic(errors.Wrapf(err, "backing node does not match schema at gindex %d", g))
	}
	return n
}

func mustLeaves(root tree.Node, depth, count uint64) []tree.Node {
	nodes, err := tree.Leaves(root, depth, count)
	if err != nil {
		// lint:nopanic -- a backing node that does not match its schema shape is a programming error.
		panic(errors.Wrap(err, "backing node does not match schema shape"))
	}
	return nodes
}

func satAdd(a, b uint64) uint64 {
	s, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return ^uint64(0)
	}
	return s
}

func satMul(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return ^uint64(0)
	}
	return lo
}
