package blocks

import (
	"github.com/YoutacRandS-VA/teku/encoding/ssz/schema"
	"github.com/pkg/errors"
)

// ErrBlobsBundleMismatch is returned when commitments, proofs and blobs differ in count.
var ErrBlobsBundleMismatch = errors.New("blobs bundle lengths do not match")

// BlobsBundle carries the blobs of a payload with their KZG commitments and proofs.
type BlobsBundle struct {
	*schema.Container
}

// NewBlobsBundle builds a bundle. All three slices must have the same length.
func NewBlobsBundle(commitments, proofs [][48]byte, blobs [][]byte) (*BlobsBundle, error) {
	if len(commitments) != len(proofs) || len(commitments) != len(blobs) {
		return nil, errors.Wrapf(ErrBlobsBundleMismatch, "%d commitments, %d proofs, %d blobs", len(commitments), len(proofs), len(blobs))
	}
	cs, err := bytes48List(commitments)
	if err != nil {
		return nil, err
	}
	ps, err := bytes48List(proofs)
	if err != nil {
		return nil, err
	}
	bs := make([]schema.Value, len(blobs))
	for i, b := range blobs {
		if bs[i], err = schema.NewByteVector(BlobSchema, b); err != nil {
			return nil, errors.Wrapf(err, "blob %d", i)
		}
	}
	bl, err := schema.NewList(BlobsSchema, bs)
	if err != nil {
		return nil, err
	}
	v, err := schema.NewContainer(BlobsBundleSchema, cs, ps, bl)
	if err != nil {
		return nil, err
	}
	return v.(*BlobsBundle), nil
}

func bytes48List(items [][48]byte) (*schema.List, error) {
	vals := make([]schema.Value, len(items))
	for i := range items {
		v, err := schema.NewByteVector(schema.Bytes48Schema, items[i][:])
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return schema.NewList(KzgCommitmentsSchema, vals)
}

func bytes48Elements(l *schema.List) [][48]byte {
	out := make([][48]byte, 0, l.Len())
	for _, e := range l.Elements() {
		out = append(out, [48]byte(e.(*schema.ByteVector).Bytes()))
	}
	return out
}

// KzgCommitments returns the commitments in blob order.
func (b *BlobsBundle) KzgCommitments() [][48]byte {
	return bytes48Elements(schema.MustField[*schema.List](b.Container, 0))
}

// Proofs returns the KZG proofs in blob order.
func (b *BlobsBundle) Proofs() [][48]byte {
	return bytes48Elements(schema.MustField[*schema.List](b.Container, 1))
}

// Blobs returns copies of the blobs.
func (b *BlobsBundle) Blobs() [][]byte {
	l := schema.MustField[*schema.List](b.Container, 2)
	out := make([][]byte, 0, l.Len())
	for _, e := range l.Elements() {
		out = append(out, e.(*schema.ByteVector).Bytes())
	}
	return out
}

// Len returns the number of blobs.
func (b *BlobsBundle) Len() int {
	return int(schema.MustField[*schema.List](b.Container, 2).Len())
}
