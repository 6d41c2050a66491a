package primitives

import (
	"math"

	fssz "github.com/prysmaticlabs/fastssz"
)

var _ fssz.HashRoot = (Epoch)(0)
var _ fssz.Marshaler = (*Epoch)(nil)
var _ fssz.Unmarshaler = (*Epoch)(nil)

// FarFutureEpoch marks an epoch that is never reached.
const FarFutureEpoch = Epoch(math.MaxUint64)

// Epoch represents a single epoch.
type Epoch uint64

// Add increases the epoch by x, saturating at FarFutureEpoch.
func (e Epoch) Add(x uint64) Epoch {
	if uint64(FarFutureEpoch-e) < x {
		return FarFutureEpoch
	}
	return e + Epoch(x)
}

// Mul multiplies the epoch by x, saturating at FarFutureEpoch.
func (e Epoch) Mul(x uint64) Epoch {
	if x != 0 && uint64(e) > math.MaxUint64/x {
		return FarFutureEpoch
	}
	return e * Epoch(x)
}

// HashTreeRoot returns the SSZ hash tree root of the epoch.
func (e Epoch) HashTreeRoot() ([32]byte, error) {
	return fssz.HashWithDefaultHasher(e)
}

// HashTreeRootWith appends the SSZ uint64 representation of the epoch to the given hasher.
func (e Epoch) HashTreeRootWith(hh *fssz.Hasher) error {
	hh.PutUint64(uint64(e))
	return nil
}

// UnmarshalSSZ decodes the SSZ-encoded epoch from buf.
func (e *Epoch) UnmarshalSSZ(buf []byte) error {
	v, err := unmarshalUint64(buf)
	if err != nil {
		return err
	}
	*e = Epoch(v)
	return nil
}

// MarshalSSZTo appends the SSZ-encoded epoch to dst.
func (e *Epoch) MarshalSSZTo(dst []byte) ([]byte, error) {
	return marshalUint64To(dst, uint64(*e)), nil
}

// MarshalSSZ encodes the epoch as an SSZ uint64.
func (e *Epoch) MarshalSSZ() ([]byte, error) {
	return marshalUint64To(nil, uint64(*e)), nil
}

// SizeSSZ returns the size of the SSZ-encoded epoch in bytes.
func (*Epoch) SizeSSZ() int {
	return uint64SSZSize
}
