package schema

import (
	"fmt"

	"github.com/YoutacRandS-VA/teku/encoding/ssz/tree"
	"github.com/pkg/errors"
	ssz "github.com/prysmaticlabs/fastssz"
)

// sequence holds what vectors and lists share: the element schema and the
// shape of the content tree.
type sequence struct {
	elem Schema
	// basic is set when elements are packed several to a chunk.
	basic *BasicSchema
	depth uint64
}

func newSequence(elem Schema, maxLen uint64) sequence {
	s := sequence{elem: elem}
	if b, ok := elem.(*BasicSchema); ok {
		s.basic = b
	}
	s.depth = tree.Depth(s.chunkCount(maxLen))
	return s
}

// ElementSchema returns the schema of the elements.
func (s sequence) ElementSchema() Schema { return s.elem }

func (s sequence) chunkCount(n uint64) uint64 {
	if s.basic != nil {
		return chunksFor(satMul(n, s.basic.size))
	}
	return n
}

// elementGIndex is the position of element i, or of the chunk holding it, in the content tree.
func (s sequence) elementGIndex(i uint64) tree.GIndex {
	if s.basic != nil {
		return tree.ToGIndex(s.depth, i/s.basic.ElementsPerChunk())
	}
	return tree.ToGIndex(s.depth, i)
}

func (s sequence) get(content tree.Node, i uint64) Value {
	n := mustGetNode(content, s.elementGIndex(i))
	if s.basic == nil {
		return s.elem.CreateFromBackingNode(n)
	}
	r := n.Root()
	off := (i % s.basic.ElementsPerChunk()) * s.basic.size
	return s.basic.valueAt(r[off : off+s.basic.size])
}

func (s sequence) elements(content tree.Node, n uint64) []Value {
	out := make([]Value, 0, n)
	if s.basic != nil {
		raw := unpackBytes(make([]byte, 0, n*s.basic.size), content, s.depth, n*s.basic.size)
		for i := uint64(0); i < n; i++ {
			out = append(out, s.basic.valueAt(raw[i*s.basic.size:(i+1)*s.basic.size]))
		}
		return out
	}
	for _, node := range mustLeaves(content, s.depth, n) {
		out = append(out, s.elem.CreateFromBackingNode(node))
	}
	return out
}

func (s sequence) build(elems []Value) (tree.Node, error) {
	for i, v := range elems {
		if err := checkValue(s.elem, v); err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
	}
	if s.basic != nil {
		buf := make([]byte, 0, uint64(len(elems))*s.basic.size)
		for _, v := range elems {
			buf = v.(basicValue).appendSSZ(buf)
		}
		return packBytes(buf, s.depth)
	}
	nodes := make([]tree.Node, len(elems))
	for i, v := range elems {
		nodes[i] = v.BackingNode()
	}
	return tree.FromChunks(nodes, s.depth)
}

// apply folds staged element writes into content. Writes sharing a chunk are
// merged into one leaf, and leaves sharing an ancestor rebuild it once.
func (s sequence) apply(content tree.Node, dirty map[uint64]Value) (tree.Node, error) {
	if len(dirty) == 0 {
		return content, nil
	}
	updates := make(map[uint64]tree.Node, len(dirty))
	if s.basic == nil {
		for i, v := range dirty {
			updates[i] = v.BackingNode()
		}
		return tree.UpdateMany(content, s.depth, updates)
	}
	per := s.basic.ElementsPerChunk()
	chunks := make(map[uint64][tree.BytesPerChunk]byte)
	for i, v := range dirty {
		c, ok := chunks[i/per]
		if !ok {
			n, err := tree.GetNode(content, tree.ToGIndex(s.depth, i/per))
			if err != nil {
				return nil, err
			}
			c = n.Root()
		}
		off := (i % per) * s.basic.size
		copy(c[off:off+s.basic.size], v.(basicValue).appendSSZ(nil))
		chunks[i/per] = c
	}
	for idx, c := range chunks {
		updates[idx] = tree.NewLeaf(c)
	}
	return tree.UpdateMany(content, s.depth, updates)
}

func (s sequence) encode(dst []byte, content tree.Node, n uint64) []byte {
	if s.basic != nil {
		return unpackBytes(dst, content, s.depth, n*s.basic.size)
	}
	nodes := mustLeaves(content, s.depth, n)
	if s.elem.IsFixedSize() {
		for _, node := range nodes {
			dst = s.elem.encodeNode(dst, node)
		}
		return dst
	}
	return encodeComposite(dst, s.repeat(n), nodes)
}

func (s sequence) sizeOf(content tree.Node, n uint64) uint64 {
	if s.elem.IsFixedSize() {
		return n * s.elem.FixedPartSize()
	}
	return sizeOfComposite(s.repeat(n), mustLeaves(content, s.depth, n))
}

func (s sequence) repeat(n uint64) []Schema {
	schemas := make([]Schema, n)
	for i := range schemas {
		schemas[i] = s.elem
	}
	return schemas
}

// decode returns the content tree and element count encoded in b. At most
// maxLen elements are accepted.
func (s sequence) decode(b []byte, maxLen uint64) (tree.Node, uint64, error) {
	total := uint64(len(b))
	if s.elem.IsFixedSize() {
		size := s.elem.FixedPartSize()
		if total%size != 0 {
			return nil, 0, errors.Wrapf(ErrMalformedEncoding, "%d bytes is not a multiple of element size %d", total, size)
		}
		n := total / size
		if n > maxLen {
			return nil, 0, errors.Wrapf(ErrMalformedEncoding, "%d elements exceed %d", n, maxLen)
		}
		if s.basic != nil {
			for i := uint64(0); i < n; i++ {
				if err := s.basic.validate(b[i*size : (i+1)*size]); err != nil {
					return nil, 0, err
				}
			}
			content, err := packBytes(b, s.depth)
			return content, n, err
		}
		nodes := make([]tree.Node, n)
		for i := range nodes {
			node, err := decodeNode(s.elem, b[uint64(i)*size:uint64(i+1)*size])
			if err != nil {
				return nil, 0, errors.Wrapf(err, "element %d", i)
			}
			nodes[i] = node
		}
		content, err := tree.FromChunks(nodes, s.depth)
		return content, n, err
	}

	if total == 0 {
		return tree.Zero(s.depth), 0, nil
	}
	if total < offsetSize {
		return nil, 0, errors.Wrapf(ErrMalformedEncoding, "%d bytes cannot hold an offset", total)
	}
	first := ssz.ReadOffset(b[:offsetSize])
	if first%offsetSize != 0 || first == 0 {
		return nil, 0, errors.Wrapf(ErrMalformedEncoding, "invalid first offset %d", first)
	}
	if first > total {
		return nil, 0, errors.Wrapf(ErrMalformedEncoding, "first offset %d past end of %d bytes", first, total)
	}
	n := first / offsetSize
	if n > maxLen {
		return nil, 0, errors.Wrapf(ErrMalformedEncoding, "%d elements exceed %d", n, maxLen)
	}
	nodes, err := decodeComposite(b, s.repeat(n))
	if err != nil {
		return nil, 0, err
	}
	content, err := tree.FromChunks(nodes, s.depth)
	return content, n, err
}

func (s sequence) equal(o sequence) bool {
	return s.elem.Equal(o.elem)
}

func (s sequence) name(kind string, n uint64) string {
	return fmt.Sprintf("%s[%s, %d]", kind, s.elem, n)
}
