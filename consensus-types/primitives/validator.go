package primitives

import (
	fssz "github.com/prysmaticlabs/fastssz"
)

var _ fssz.HashRoot = (ValidatorIndex)(0)
var _ fssz.Marshaler = (*ValidatorIndex)(nil)
var _ fssz.Unmarshaler = (*ValidatorIndex)(nil)

// ValidatorIndex is an index into the validator registry.
type ValidatorIndex uint64

// HashTreeRoot returns the SSZ hash tree root of the index.
func (v ValidatorIndex) HashTreeRoot() ([32]byte, error) {
	return fssz.HashWithDefaultHasher(v)
}

// HashTreeRootWith appends the SSZ uint64 representation of the index to the given hasher.
func (v ValidatorIndex) HashTreeRootWith(hh *fssz.Hasher) error {
	hh.PutUint64(uint64(v))
	return nil
}

// UnmarshalSSZ decodes the SSZ-encoded index from buf.
func (v *ValidatorIndex) UnmarshalSSZ(buf []byte) error {
	i, err := unmarshalUint64(buf)
	if err != nil {
		return err
	}
	*v = ValidatorIndex(i)
	return nil
}

// MarshalSSZTo appends the SSZ-encoded index to dst.
func (v *ValidatorIndex) MarshalSSZTo(dst []byte) ([]byte, error) {
	return marshalUint64To(dst, uint64(*v)), nil
}

// MarshalSSZ encodes the index as an SSZ uint64.
func (v *ValidatorIndex) MarshalSSZ() ([]byte, error) {
	return marshalUint64To(nil, uint64(*v)), nil
}

// SizeSSZ returns the size of the SSZ-encoded index in bytes.
func (*ValidatorIndex) SizeSSZ() int {
	return uint64SSZSize
}
