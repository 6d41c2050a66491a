package blocks

import (
	"github.com/YoutacRandS-VA/teku/consensus-types/interfaces"
	"github.com/YoutacRandS-VA/teku/consensus-types/primitives"
	"github.com/YoutacRandS-VA/teku/encoding/ssz/schema"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

var (
	_ = interfaces.Withdrawal(&Withdrawal{})
	_ = interfaces.DepositReceipt(&DepositReceipt{})
	_ = interfaces.ExecutionLayerExit(&ExecutionLayerExit{})
)

// Withdrawal is a tree backed withdrawal.
type Withdrawal struct {
	*schema.Container
}

// NewWithdrawal builds a withdrawal.
func NewWithdrawal(index uint64, validator primitives.ValidatorIndex, address common.Address, amount primitives.Gwei) (*Withdrawal, error) {
	addr, err := schema.NewByteVector(schema.Bytes20Schema, address[:])
	if err != nil {
		return nil, err
	}
	v, err := schema.NewContainer(WithdrawalSchema, schema.Uint64(index), schema.Uint64(validator), addr, schema.Uint64(amount))
	if err != nil {
		return nil, errors.Wrap(err, "could not build withdrawal")
	}
	return v.(*Withdrawal), nil
}

func (w *Withdrawal) Index() uint64 { return uint64(schema.MustField[schema.Uint64](w.Container, 0)) }

func (w *Withdrawal) ValidatorIndex() primitives.ValidatorIndex {
	return primitives.ValidatorIndex(schema.MustField[schema.Uint64](w.Container, 1))
}

func (w *Withdrawal) Address() common.Address {
	return common.BytesToAddress(schema.MustField[*schema.ByteVector](w.Container, 2).Bytes())
}

func (w *Withdrawal) Amount() primitives.Gwei {
	return primitives.Gwei(schema.MustField[schema.Uint64](w.Container, 3))
}

// DepositReceipt is a deposit processed by the execution layer.
type DepositReceipt struct {
	*schema.Container
}

// NewDepositReceipt builds a deposit receipt.
func NewDepositReceipt(pubkey [48]byte, credentials [32]byte, amount primitives.Gwei, signature [96]byte, index uint64) (*DepositReceipt, error) {
	pk, err := schema.NewByteVector(schema.Bytes48Schema, pubkey[:])
	if err != nil {
		return nil, err
	}
	sig, err := schema.NewByteVector(schema.Bytes96Schema, signature[:])
	if err != nil {
		return nil, err
	}
	v, err := schema.NewContainer(DepositReceiptSchema, pk, schema.NewBytes32(credentials), schema.Uint64(amount), sig, schema.Uint64(index))
	if err != nil {
		return nil, errors.Wrap(err, "could not build deposit receipt")
	}
	return v.(*DepositReceipt), nil
}

func (d *DepositReceipt) Pubkey() [48]byte {
	return [48]byte(schema.MustField[*schema.ByteVector](d.Container, 0).Bytes())
}

func (d *DepositReceipt) WithdrawalCredentials() [32]byte {
	return [32]byte(schema.MustField[*schema.ByteVector](d.Container, 1).Bytes())
}

func (d *DepositReceipt) Amount() primitives.Gwei {
	return primitives.Gwei(schema.MustField[schema.Uint64](d.Container, 2))
}

func (d *DepositReceipt) Signature() [96]byte {
	return [96]byte(schema.MustField[*schema.ByteVector](d.Container, 3).Bytes())
}

func (d *DepositReceipt) Index() uint64 { return uint64(schema.MustField[schema.Uint64](d.Container, 4)) }

// ExecutionLayerExit is an exit requested by a validator's withdrawal address.
type ExecutionLayerExit struct {
	*schema.Container
}

// NewExecutionLayerExit builds an execution layer exit.
func NewExecutionLayerExit(source common.Address, pubkey [48]byte) (*ExecutionLayerExit, error) {
	addr, err := schema.NewByteVector(schema.Bytes20Schema, source[:])
	if err != nil {
		return nil, err
	}
	pk, err := schema.NewByteVector(schema.Bytes48Schema, pubkey[:])
	if err != nil {
		return nil, err
	}
	v, err := schema.NewContainer(ExecutionLayerExitSchema, addr, pk)
	if err != nil {
		return nil, errors.Wrap(err, "could not build execution layer exit")
	}
	return v.(*ExecutionLayerExit), nil
}

func (e *ExecutionLayerExit) SourceAddress() common.Address {
	return common.BytesToAddress(schema.MustField[*schema.ByteVector](e.Container, 0).Bytes())
}

func (e *ExecutionLayerExit) ValidatorPubkey() [48]byte {
	return [48]byte(schema.MustField[*schema.ByteVector](e.Container, 1).Bytes())
}
