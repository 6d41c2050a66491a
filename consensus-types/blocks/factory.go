package blocks

import (
	"github.com/YoutacRandS-VA/teku/consensus-types/interfaces"
	"github.com/YoutacRandS-VA/teku/encoding/ssz/schema"
	"github.com/YoutacRandS-VA/teku/runtime/version"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// ErrFieldNotInFork is returned when a payload builder is given a field its
// fork does not have.
var ErrFieldNotInFork = errors.New("field not present in fork")

// ExecutionPayloadSchemaForVersion returns the payload schema of fork v.
func ExecutionPayloadSchemaForVersion(v int) (*schema.ContainerSchema, error) {
	switch v {
	case version.Bellatrix:
		return ExecutionPayloadBellatrixSchema, nil
	case version.Capella:
		return ExecutionPayloadCapellaSchema, nil
	case version.Deneb:
		return ExecutionPayloadDenebSchema, nil
	case version.Electra:
		return ExecutionPayloadElectraSchema, nil
	default:
		return nil, interfaces.NewUnsupportedVersionError(v, version.Bellatrix)
	}
}

// ExecutionPayloadHeaderSchemaForVersion returns the payload header schema of fork v.
func ExecutionPayloadHeaderSchemaForVersion(v int) (*schema.ContainerSchema, error) {
	switch v {
	case version.Bellatrix:
		return ExecutionPayloadHeaderBellatrixSchema, nil
	case version.Capella:
		return ExecutionPayloadHeaderCapellaSchema, nil
	case version.Deneb:
		return ExecutionPayloadHeaderDenebSchema, nil
	case version.Electra:
		return ExecutionPayloadHeaderElectraSchema, nil
	default:
		return nil, interfaces.NewUnsupportedVersionError(v, version.Bellatrix)
	}
}

// ExecutionPayloadFields holds the plain values of a payload. Fields a fork
// does not define must be left empty.
type ExecutionPayloadFields struct {
	ParentHash      common.Hash
	FeeRecipient    common.Address
	StateRoot       [32]byte
	ReceiptsRoot    [32]byte
	LogsBloom       []byte
	PrevRandao      [32]byte
	BlockNumber     uint64
	GasLimit        uint64
	GasUsed         uint64
	Timestamp       uint64
	ExtraData       []byte
	BaseFeePerGas   *uint256.Int
	BlockHash       common.Hash
	Transactions    [][]byte
	Withdrawals     []*Withdrawal
	BlobGasUsed     uint64
	ExcessBlobGas   uint64
	DepositReceipts []*DepositReceipt
	Exits           []*ExecutionLayerExit
}

// NewExecutionPayload builds the payload of fork v from f.
func NewExecutionPayload(v int, f *ExecutionPayloadFields) (interfaces.ExecutionPayload, error) {
	s, err := ExecutionPayloadSchemaForVersion(v)
	if err != nil {
		return nil, err
	}
	if err := f.checkFork(v); err != nil {
		return nil, err
	}
	vals, err := f.executionDataValues()
	if err != nil {
		return nil, err
	}
	txs := make([]schema.Value, len(f.Transactions))
	for i, tx := range f.Transactions {
		if txs[i], err = schema.NewByteList(TransactionSchema, tx); err != nil {
			return nil, errors.Wrapf(err, "transaction %d", i)
		}
	}
	txList, err := schema.NewList(TransactionsSchema, txs)
	if err != nil {
		return nil, errors.Wrap(err, "transactions")
	}
	vals = append(vals, txList)
	if v >= version.Capella {
		l, err := schema.NewList(WithdrawalsSchema, toValues(f.Withdrawals))
		if err != nil {
			return nil, errors.Wrap(err, "withdrawals")
		}
		vals = append(vals, l)
	}
	if v >= version.Deneb {
		vals = append(vals, schema.Uint64(f.BlobGasUsed), schema.Uint64(f.ExcessBlobGas))
	}
	if v >= version.Electra {
		receipts, err := schema.NewList(DepositReceiptsSchema, toValues(f.DepositReceipts))
		if err != nil {
			return nil, errors.Wrap(err, "deposit receipts")
		}
		exits, err := schema.NewList(ExecutionLayerExitsSchema, toValues(f.Exits))
		if err != nil {
			return nil, errors.Wrap(err, "exits")
		}
		vals = append(vals, receipts, exits)
	}
	p, err := schema.NewContainer(s, vals...)
	if err != nil {
		return nil, err
	}
	return p.(interfaces.ExecutionPayload), nil
}

func (f *ExecutionPayloadFields) checkFork(v int) error {
	switch {
	case v < version.Capella && len(f.Withdrawals) > 0:
		return errors.Wrapf(ErrFieldNotInFork, "withdrawals in %s payload", version.String(v))
	case v < version.Deneb && (f.BlobGasUsed != 0 || f.ExcessBlobGas != 0):
		return errors.Wrapf(ErrFieldNotInFork, "blob gas in %s payload", version.String(v))
	case v < version.Electra && (len(f.DepositReceipts) > 0 || len(f.Exits) > 0):
		return errors.Wrapf(ErrFieldNotInFork, "deposit receipts or exits in %s payload", version.String(v))
	}
	return nil
}

func (f *ExecutionPayloadFields) executionDataValues() ([]schema.Value, error) {
	bloom := f.LogsBloom
	if bloom == nil {
		bloom = make([]byte, LogsBloomSchema.Length())
	}
	logsBloom, err := schema.NewByteVector(LogsBloomSchema, bloom)
	if err != nil {
		return nil, errors.Wrap(err, "logs bloom")
	}
	feeRecipient, err := schema.NewByteVector(schema.Bytes20Schema, f.FeeRecipient[:])
	if err != nil {
		return nil, err
	}
	extra, err := schema.NewByteList(ExtraDataSchema, f.ExtraData)
	if err != nil {
		return nil, errors.Wrap(err, "extra data")
	}
	baseFee := f.BaseFeePerGas
	if baseFee == nil {
		baseFee = new(uint256.Int)
	}
	return []schema.Value{
		schema.NewBytes32(f.ParentHash),
		feeRecipient,
		schema.NewBytes32(f.StateRoot),
		schema.NewBytes32(f.ReceiptsRoot),
		logsBloom,
		schema.NewBytes32(f.PrevRandao),
		schema.Uint64(f.BlockNumber),
		schema.Uint64(f.GasLimit),
		schema.Uint64(f.GasUsed),
		schema.Uint64(f.Timestamp),
		extra,
		schema.NewUint256(baseFee),
		schema.NewBytes32(f.BlockHash),
	}, nil
}

func toValues[T schema.Value](items []T) []schema.Value {
	out := make([]schema.Value, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

// UnmarshalExecutionPayload decodes the payload of fork v.
func UnmarshalExecutionPayload(v int, b []byte) (interfaces.ExecutionPayload, error) {
	s, err := ExecutionPayloadSchemaForVersion(v)
	if err != nil {
		return nil, err
	}
	p, err := s.Decode(b)
	if err != nil {
		return nil, errors.Wrapf(err, "could not unmarshal %s payload", version.String(v))
	}
	return p.(interfaces.ExecutionPayload), nil
}

// UnmarshalExecutionPayloadHeader decodes the payload header of fork v.
func UnmarshalExecutionPayloadHeader(v int, b []byte) (interfaces.ExecutionPayloadHeader, error) {
	s, err := ExecutionPayloadHeaderSchemaForVersion(v)
	if err != nil {
		return nil, err
	}
	h, err := s.Decode(b)
	if err != nil {
		return nil, errors.Wrapf(err, "could not unmarshal %s payload header", version.String(v))
	}
	return h.(interfaces.ExecutionPayloadHeader), nil
}

// DefaultExecutionPayloadHeader returns the all zero header of fork v.
func DefaultExecutionPayloadHeader(v int) (interfaces.ExecutionPayloadHeader, error) {
	s, err := ExecutionPayloadHeaderSchemaForVersion(v)
	if err != nil {
		return nil, err
	}
	return s.Default().(interfaces.ExecutionPayloadHeader), nil
}

type containerValue interface {
	ContainerSchema() *schema.ContainerSchema
	Get(int) (schema.Value, error)
}

// PayloadToHeader converts a payload to the header of the same fork. List
// fields are replaced by their roots, all other field nodes are shared.
func PayloadToHeader(p interfaces.ExecutionPayload) (interfaces.ExecutionPayloadHeader, error) {
	hs, err := ExecutionPayloadHeaderSchemaForVersion(p.Version())
	if err != nil {
		return nil, err
	}
	c, ok := p.(containerValue)
	if !ok {
		return nil, errors.Errorf("payload %T is not tree backed", p)
	}
	vals := make([]schema.Value, c.ContainerSchema().FieldCount())
	for i := range vals {
		v, err := c.Get(i)
		if err != nil {
			return nil, err
		}
		if _, isList := v.(*schema.List); isList {
			v = schema.NewBytes32(v.HashTreeRoot())
		}
		vals[i] = v
	}
	h, err := schema.NewContainer(hs, vals...)
	if err != nil {
		return nil, errors.Wrap(err, "could not build payload header")
	}
	return h.(interfaces.ExecutionPayloadHeader), nil
}
