package schema

import (
	"github.com/YoutacRandS-VA/teku/encoding/ssz/tree"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	ssz "github.com/prysmaticlabs/fastssz"
)

type basicKind uint8

const (
	kindUint8 basicKind = iota
	kindUint16
	kindUint32
	kindUint64
	kindUint256
	kindBool
)

// BasicSchema is the schema of an unsigned integer or boolean. Sequences of
// basic values are packed several to a chunk.
type BasicSchema struct {
	kind basicKind
	size uint64
	name string
}

var (
	Uint8Schema   = &BasicSchema{kind: kindUint8, size: 1, name: "uint8"}
	Uint16Schema  = &BasicSchema{kind: kindUint16, size: 2, name: "uint16"}
	Uint32Schema  = &BasicSchema{kind: kindUint32, size: 4, name: "uint32"}
	Uint64Schema  = &BasicSchema{kind: kindUint64, size: 8, name: "uint64"}
	Uint256Schema = &BasicSchema{kind: kindUint256, size: 32, name: "uint256"}
	BooleanSchema = &BasicSchema{kind: kindBool, size: 1, name: "boolean"}
)

func (*BasicSchema) IsFixedSize() bool          { return true }
func (s *BasicSchema) FixedPartSize() uint64    { return s.size }
func (s *BasicSchema) MinSSZLength() uint64     { return s.size }
func (s *BasicSchema) MaxSSZLength() uint64     { return s.size }
func (*BasicSchema) DefaultTree() tree.Node     { return tree.Zero(0) }
func (*BasicSchema) TreeDepth() uint64          { return 0 }
func (*BasicSchema) IsMixedInLength() bool      { return false }
func (s *BasicSchema) String() string           { return s.name }
func (s *BasicSchema) SizeOf(tree.Node) uint64  { return s.size }
func (s *BasicSchema) Default() Value           { return s.CreateFromBackingNode(s.DefaultTree()) }
func (s *BasicSchema) ElementsPerChunk() uint64 { return tree.BytesPerChunk / s.size }

// Equal reports whether other is the same basic type.
func (s *BasicSchema) Equal(other Schema) bool {
	o, ok := other.(*BasicSchema)
	return ok && o.kind == s.kind
}

// CreateFromBackingNode reads the value from the low bytes of the leaf chunk.
func (s *BasicSchema) CreateFromBackingNode(n tree.Node) Value {
	r := n.Root()
	return s.valueAt(r[:s.size])
}

func (s *BasicSchema) Encode(v Value) ([]byte, error) { return encodeValue(s, v) }
func (s *BasicSchema) Decode(b []byte) (Value, error) { return decodeValue(s, b) }

func (s *BasicSchema) encodeNode(dst []byte, n tree.Node) []byte {
	r := n.Root()
	return append(dst, r[:s.size]...)
}

func (s *BasicSchema) decodeNode(b []byte) (tree.Node, error) {
	if err := s.validate(b); err != nil {
		return nil, err
	}
	return tree.NewLeafFromBytes(b), nil
}

func (s *BasicSchema) validate(b []byte) error {
	if s.kind == kindBool && b[0] > 1 {
		return errors.Wrapf(ErrMalformedEncoding, "invalid boolean byte %#x", b[0])
	}
	return nil
}

// valueAt decodes a value from exactly s.size little endian bytes.
func (s *BasicSchema) valueAt(b []byte) Value {
	switch s.kind {
	case kindUint8:
		return Uint8(ssz.UnmarshallUint8(b))
	case kindUint16:
		return Uint16(ssz.UnmarshallUint16(b))
	case kindUint32:
		return Uint32(ssz.UnmarshallUint32(b))
	case kindUint64:
		return Uint64(ssz.UnmarshallUint64(b))
	case kindUint256:
		var be [32]byte
		for i := range be {
			be[i] = b[31-i]
		}
		var u Uint256
		u.v.SetBytes32(be[:])
		return u
	default:
		return Bool(b[0] == 1)
	}
}

// basicValue is implemented by every value of a BasicSchema.
type basicValue interface {
	Value
	appendSSZ(dst []byte) []byte
}

func basicLeaf(v basicValue) tree.Node {
	return tree.NewLeafFromBytes(v.appendSSZ(make([]byte, 0, tree.BytesPerChunk)))
}

// Uint8 is an SSZ uint8 value.
type Uint8 uint8

func (Uint8) Schema() Schema                { return Uint8Schema }
func (v Uint8) BackingNode() tree.Node      { return basicLeaf(v) }
func (v Uint8) HashTreeRoot() [32]byte      { return basicLeaf(v).Root() }
func (v Uint8) MarshalSSZ() ([]byte, error) { return v.appendSSZ(nil), nil }
func (v Uint8) appendSSZ(dst []byte) []byte { return ssz.MarshalUint8(dst, uint8(v)) }

// Uint16 is an SSZ uint16 value.
type Uint16 uint16

func (Uint16) Schema() Schema                { return Uint16Schema }
func (v Uint16) BackingNode() tree.Node      { return basicLeaf(v) }
func (v Uint16) HashTreeRoot() [32]byte      { return basicLeaf(v).Root() }
func (v Uint16) MarshalSSZ() ([]byte, error) { return v.appendSSZ(nil), nil }
func (v Uint16) appendSSZ(dst []byte) []byte { return ssz.MarshalUint16(dst, uint16(v)) }

// Uint32 is an SSZ uint32 value.
type Uint32 uint32

func (Uint32) Schema() Schema                { return Uint32Schema }
func (v Uint32) BackingNode() tree.Node      { return basicLeaf(v) }
func (v Uint32) HashTreeRoot() [32]byte      { return basicLeaf(v).Root() }
func (v Uint32) MarshalSSZ() ([]byte, error) { return v.appendSSZ(nil), nil }
func (v Uint32) appendSSZ(dst []byte) []byte { return ssz.MarshalUint32(dst, uint32(v)) }

// Uint64 is an SSZ uint64 value.
type Uint64 uint64

func (Uint64) Schema() Schema                { return Uint64Schema }
func (v Uint64) BackingNode() tree.Node      { return tree.NewLeaf(tree.Uint64Root(uint64(v))) }
func (v Uint64) HashTreeRoot() [32]byte      { return tree.Uint64Root(uint64(v)) }
func (v Uint64) MarshalSSZ() ([]byte, error) { return v.appendSSZ(nil), nil }
func (v Uint64) appendSSZ(dst []byte) []byte { return ssz.MarshalUint64(dst, uint64(v)) }

// Bool is an SSZ boolean value.
type Bool bool

func (Bool) Schema() Schema                { return BooleanSchema }
func (v Bool) BackingNode() tree.Node      { return basicLeaf(v) }
func (v Bool) HashTreeRoot() [32]byte      { return basicLeaf(v).Root() }
func (v Bool) MarshalSSZ() ([]byte, error) { return v.appendSSZ(nil), nil }
func (v Bool) appendSSZ(dst []byte) []byte { return ssz.MarshalBool(dst, bool(v)) }

// Uint256 is an SSZ uint256 value.
type Uint256 struct {
	v uint256.Int
}

// NewUint256 copies x into a value. A nil x is zero.
func NewUint256(x *uint256.Int) Uint256 {
	var u Uint256
	if x != nil {
		u.v.Set(x)
	}
	return u
}

// Int returns a copy of the integer.
func (u Uint256) Int() *uint256.Int {
	return new(uint256.Int).Set(&u.v)
}

func (Uint256) Schema() Schema                { return Uint256Schema }
func (u Uint256) BackingNode() tree.Node      { return basicLeaf(u) }
func (u Uint256) HashTreeRoot() [32]byte      { return basicLeaf(u).Root() }
func (u Uint256) MarshalSSZ() ([]byte, error) { return u.appendSSZ(nil), nil }
func (u Uint256) String() string              { return u.v.Dec() }

func (u Uint256) appendSSZ(dst []byte) []byte {
	be := u.v.Bytes32()
	for i := len(be) - 1; i >= 0; i-- {
		dst = append(dst, be[i])
	}
	return dst
}
