package schema

import (
	"encoding/binary"

	"github.com/YoutacRandS-VA/teku/encoding/ssz/tree"
	"github.com/pkg/errors"
	ssz "github.com/prysmaticlabs/fastssz"
)

// encodeComposite appends the encoding of heterogeneous parts: fixed size
// parts and offsets first, then the variable size parts in order.
func encodeComposite(dst []byte, schemas []Schema, nodes []tree.Node) []byte {
	start := len(dst)
	offsets := make([]int, 0, len(schemas))
	for i, s := range schemas {
		if s.IsFixedSize() {
			dst = s.encodeNode(dst, nodes[i])
			continue
		}
		offsets = append(offsets, len(dst))
		dst = append(dst, 0, 0, 0, 0)
	}
	j := 0
	for i, s := range schemas {
		if s.IsFixedSize() {
			continue
		}
		binary.LittleEndian.PutUint32(dst[offsets[j]:], uint32(len(dst)-start))
		j++
		dst = s.encodeNode(dst, nodes[i])
	}
	return dst
}

// sizeOfComposite mirrors encodeComposite.
func sizeOfComposite(schemas []Schema, nodes []tree.Node) uint64 {
	var size uint64
	for i, s := range schemas {
		if s.IsFixedSize() {
			size += s.FixedPartSize()
			continue
		}
		size += offsetSize + s.SizeOf(nodes[i])
	}
	return size
}

// decodeComposite decodes the parts described by schemas from b, which must be
// consumed exactly.
func decodeComposite(b []byte, schemas []Schema) ([]tree.Node, error) {
	var fixed uint64
	for _, s := range schemas {
		fixed += fieldFixedSize(s)
	}
	total := uint64(len(b))
	if total < fixed {
		return nil, errors.Wrapf(ErrMalformedEncoding, "got %d bytes, fixed part is %d", total, fixed)
	}

	type part struct {
		index int
		start uint64
	}
	nodes := make([]tree.Node, len(schemas))
	variable := make([]part, 0)
	var pos uint64
	for i, s := range schemas {
		if s.IsFixedSize() {
			size := s.FixedPartSize()
			n, err := decodeNode(s, b[pos:pos+size])
			if err != nil {
				return nil, errors.Wrapf(err, "part %d", i)
			}
			nodes[i] = n
			pos += size
			continue
		}
		off := ssz.ReadOffset(b[pos : pos+offsetSize])
		switch {
		case len(variable) == 0 && off != fixed:
			return nil, errors.Wrapf(ErrMalformedEncoding, "first offset %d, want %d", off, fixed)
		case len(variable) > 0 && off < variable[len(variable)-1].start:
			return nil, errors.Wrapf(ErrMalformedEncoding, "offset %d decreases", off)
		case off > total:
			return nil, errors.Wrapf(ErrMalformedEncoding, "offset %d beyond %d bytes", off, total)
		}
		variable = append(variable, part{index: i, start: off})
		pos += offsetSize
	}
	if len(variable) == 0 && total != fixed {
		return nil, errors.Wrapf(ErrMalformedEncoding, "got %d bytes, want %d", total, fixed)
	}
	for k, p := range variable {
		end := total
		if k+1 < len(variable) {
			end = variable[k+1].start
		}
		n, err := decodeNode(schemas[p.index], b[p.start:end])
		if err != nil {
			return nil, errors.Wrapf(err, "part %d", p.index)
		}
		nodes[p.index] = n
	}
	return nodes, nil
}

// repeatNode builds a tree of the given depth whose first count leaves are n
// and the rest zero. Full subtrees are shared.
func repeatNode(n tree.Node, count, depth uint64) tree.Node {
	full := make([]tree.Node, depth+1)
	full[0] = n
	for d := uint64(1); d <= depth; d++ {
		full[d] = tree.NewBranch(full[d-1], full[d-1])
	}
	var build func(count, depth uint64) tree.Node
	build = func(count, depth uint64) tree.Node {
		switch {
		case count == 0:
			return tree.Zero(depth)
		case count == uint64(1)<<depth:
			return full[depth]
		}
		half := uint64(1) << (depth - 1)
		if count <= half {
			return tree.NewBranch(build(count, depth-1), tree.Zero(depth-1))
		}
		return tree.NewBranch(full[depth-1], build(count-half, depth-1))
	}
	return build(count, depth)
}
