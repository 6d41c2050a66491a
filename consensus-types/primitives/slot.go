package primitives

import (
	"math"

	"github.com/pkg/errors"
	fssz "github.com/prysmaticlabs/fastssz"
)

var _ fssz.HashRoot = (Slot)(0)
var _ fssz.Marshaler = (*Slot)(nil)
var _ fssz.Unmarshaler = (*Slot)(nil)

// MaxSlot is the largest representable slot.
const MaxSlot = Slot(math.MaxUint64)

// ErrSlotUnderflow is returned when subtracting past slot zero.
var ErrSlotUnderflow = errors.New("slot underflow")

// Slot represents a single slot.
type Slot uint64

// Add increases the slot by x, saturating at MaxSlot.
func (s Slot) Add(x uint64) Slot {
	if uint64(MaxSlot-s) < x {
		return MaxSlot
	}
	return s + Slot(x)
}

// SafeSub subtracts x from the slot, returning an error on underflow.
func (s Slot) SafeSub(x uint64) (Slot, error) {
	if uint64(s) < x {
		return 0, errors.Wrapf(ErrSlotUnderflow, "%d - %d", s, x)
	}
	return s - Slot(x), nil
}

// SubSlot subtracts x from the slot, saturating at zero.
func (s Slot) SubSlot(x Slot) Slot {
	if x > s {
		return 0
	}
	return s - x
}

// DivSlot divides the slot by x. Division by zero yields zero.
func (s Slot) DivSlot(x Slot) Slot {
	if x == 0 {
		return 0
	}
	return s / x
}

// ModSlot returns the slot modulo x. Modulo zero yields zero.
func (s Slot) ModSlot(x Slot) Slot {
	if x == 0 {
		return 0
	}
	return s % x
}

// HashTreeRoot returns the SSZ hash tree root of the slot.
func (s Slot) HashTreeRoot() ([32]byte, error) {
	return fssz.HashWithDefaultHasher(s)
}

// HashTreeRootWith appends the SSZ uint64 representation of the slot to the given hasher.
func (s Slot) HashTreeRootWith(hh *fssz.Hasher) error {
	hh.PutUint64(uint64(s))
	return nil
}

// UnmarshalSSZ decodes the SSZ-encoded slot from buf.
func (s *Slot) UnmarshalSSZ(buf []byte) error {
	v, err := unmarshalUint64(buf)
	if err != nil {
		return err
	}
	*s = Slot(v)
	return nil
}

// MarshalSSZTo appends the SSZ-encoded slot to dst.
func (s *Slot) MarshalSSZTo(dst []byte) ([]byte, error) {
	return marshalUint64To(dst, uint64(*s)), nil
}

// MarshalSSZ encodes the slot as an SSZ uint64.
func (s *Slot) MarshalSSZ() ([]byte, error) {
	return marshalUint64To(nil, uint64(*s)), nil
}

// SizeSSZ returns the size of the SSZ-encoded slot in bytes.
func (*Slot) SizeSSZ() int {
	return uint64SSZSize
}
