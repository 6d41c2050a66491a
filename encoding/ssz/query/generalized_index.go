package query

import (
	"github.com/YoutacRandS-VA/teku/encoding/ssz/schema"
	"github.com/YoutacRandS-VA/teku/encoding/ssz/tree"
	"github.com/pkg/errors"
)

const bitsPerChunk = tree.BytesPerChunk * 8

// GeneralizedIndex walks path from the root of s and returns the generalized
// index it addresses together with the schema found there. Indexing into a
// packed sequence addresses the chunk holding the element and yields the
// element schema. A length query yields the length node and Uint64Schema.
func GeneralizedIndex(s schema.Schema, path Path) (tree.GIndex, schema.Schema, error) {
	if s == nil {
		return 0, nil, errors.New("nil schema")
	}
	if len(path.Elements) == 0 {
		return 0, nil, errors.Wrap(ErrInvalidPath, "cannot resolve an empty path")
	}
	g := tree.GIndex(1)
	cur := s
	for i, e := range path.Elements {
		c, ok := cur.(*schema.ContainerSchema)
		if !ok {
			return 0, nil, errors.Wrapf(schema.ErrUnknownField, "%s is not a container, cannot select %q", cur, e.Name)
		}
		idx, err := c.FieldIndex(e.Name)
		if err != nil {
			return 0, nil, err
		}
		fg, err := c.FieldGIndex(idx)
		if err != nil {
			return 0, nil, err
		}
		g = tree.Concat(g, fg)
		if cur, err = c.FieldSchema(idx); err != nil {
			return 0, nil, err
		}

		last := i == len(path.Elements)-1
		if path.Length && last {
			if e.Index != nil {
				cur, g, err = index(cur, g, *e.Index)
				if err != nil {
					return 0, nil, err
				}
			}
			if !cur.IsMixedInLength() {
				return 0, nil, errors.Errorf("len() requires a list type, %s has a fixed length", cur)
			}
			return tree.Concat(g, tree.GIndex(3)), schema.Uint64Schema, nil
		}
		if e.Index == nil {
			continue
		}
		cur, g, err = index(cur, g, *e.Index)
		if err != nil {
			return 0, nil, err
		}
	}
	return g, cur, nil
}

// index descends from a sequence rooted at g into element i.
func index(s schema.Schema, g tree.GIndex, i uint64) (schema.Schema, tree.GIndex, error) {
	switch t := s.(type) {
	case *schema.VectorSchema:
		if i >= t.Length() {
			return nil, 0, errors.Wrapf(schema.ErrIndexOutOfRange, "index %d of vector length %d", i, t.Length())
		}
		return t.ElementSchema(), tree.Concat(g, t.ElementGIndex(i)), nil
	case *schema.ListSchema:
		if i >= t.Limit() {
			return nil, 0, errors.Wrapf(schema.ErrIndexOutOfRange, "index %d of list limit %d", i, t.Limit())
		}
		return t.ElementSchema(), tree.Concat(g, t.ElementGIndex(i)), nil
	case *schema.ByteVectorSchema:
		if i >= t.Length() {
			return nil, 0, errors.Wrapf(schema.ErrIndexOutOfRange, "index %d of %d bytes", i, t.Length())
		}
		return schema.Uint8Schema, tree.Concat(g, tree.ToGIndex(t.TreeDepth(), i/tree.BytesPerChunk)), nil
	case *schema.ByteListSchema:
		if i >= t.Limit() {
			return nil, 0, errors.Wrapf(schema.ErrIndexOutOfRange, "index %d of byte list limit %d", i, t.Limit())
		}
		return schema.Uint8Schema, tree.Concat(g, tree.GIndex(2), tree.ToGIndex(t.TreeDepth(), i/tree.BytesPerChunk)), nil
	case *schema.BitvectorSchema:
		if i >= t.Length() {
			return nil, 0, errors.Wrapf(schema.ErrIndexOutOfRange, "bit %d of %d", i, t.Length())
		}
		return schema.BooleanSchema, tree.Concat(g, tree.ToGIndex(t.TreeDepth(), i/bitsPerChunk)), nil
	case *schema.BitlistSchema:
		if i >= t.Limit() {
			return nil, 0, errors.Wrapf(schema.ErrIndexOutOfRange, "bit %d of limit %d", i, t.Limit())
		}
		return schema.BooleanSchema, tree.Concat(g, tree.GIndex(2), tree.ToGIndex(t.TreeDepth(), i/bitsPerChunk)), nil
	default:
		return nil, 0, errors.Errorf("indexing not supported for %s", s)
	}
}
