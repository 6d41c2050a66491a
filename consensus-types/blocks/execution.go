package blocks

import (
	"github.com/YoutacRandS-VA/teku/consensus-types/interfaces"
	"github.com/YoutacRandS-VA/teku/encoding/ssz/schema"
	"github.com/YoutacRandS-VA/teku/runtime/version"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

var (
	_ = interfaces.ExecutionPayloadElectra(&executionPayloadElectra{})
	_ = interfaces.ExecutionPayloadHeaderElectra(&executionPayloadHeaderElectra{})
)

// executionData implements the accessors common to payloads and headers.
type executionData struct {
	*schema.Container
	version int
}

func (d *executionData) Version() int { return d.version }

func (d *executionData) bytes(i int) []byte {
	switch v := schema.MustField[schema.Value](d.Container, i).(type) {
	case *schema.ByteVector:
		return v.Bytes()
	case *schema.ByteList:
		return v.Bytes()
	default:
		// lint:nopanic -- field types are fixed by the payload schemas.
		panic("field is not a byte sequence")
	}
}

func (d *executionData) root(i int) [32]byte   { return [32]byte(d.bytes(i)) }
func (d *executionData) uint64At(i int) uint64 { return uint64(schema.MustField[schema.Uint64](d.Container, i)) }
func (d *executionData) list(i int) *schema.List {
	return schema.MustField[*schema.List](d.Container, i)
}

func (d *executionData) ParentHash() common.Hash      { return common.Hash(d.root(parentHashIndex)) }
func (d *executionData) FeeRecipient() common.Address { return common.BytesToAddress(d.bytes(feeRecipientIndex)) }
func (d *executionData) StateRoot() [32]byte          { return d.root(stateRootIndex) }
func (d *executionData) ReceiptsRoot() [32]byte       { return d.root(receiptsRootIndex) }
func (d *executionData) LogsBloom() []byte            { return d.bytes(logsBloomIndex) }
func (d *executionData) PrevRandao() [32]byte         { return d.root(prevRandaoIndex) }
func (d *executionData) BlockNumber() uint64          { return d.uint64At(blockNumberIndex) }
func (d *executionData) GasLimit() uint64             { return d.uint64At(gasLimitIndex) }
func (d *executionData) GasUsed() uint64              { return d.uint64At(gasUsedIndex) }
func (d *executionData) Timestamp() uint64            { return d.uint64At(timestampIndex) }
func (d *executionData) ExtraData() []byte            { return d.bytes(extraDataIndex) }
func (d *executionData) BlockHash() common.Hash       { return common.Hash(d.root(blockHashIndex)) }

func (d *executionData) BaseFeePerGas() *uint256.Int {
	return schema.MustField[schema.Uint256](d.Container, baseFeePerGasIndex).Int()
}

// executionPayload is a Bellatrix payload. Later forks wrap it so each fork's
// accessors are only reachable on values of that fork or newer.
type executionPayload struct {
	executionData
	self interfaces.ExecutionPayload
}

type executionPayloadCapella struct{ *executionPayload }
type executionPayloadDeneb struct{ *executionPayloadCapella }
type executionPayloadElectra struct{ *executionPayloadDeneb }

func wrapPayload(c *schema.Container, v int) schema.Value {
	base := &executionPayload{executionData: executionData{Container: c, version: v}}
	var out interfaces.ExecutionPayload
	switch {
	case v >= version.Electra:
		out = &executionPayloadElectra{&executionPayloadDeneb{&executionPayloadCapella{base}}}
	case v >= version.Deneb:
		out = &executionPayloadDeneb{&executionPayloadCapella{base}}
	case v >= version.Capella:
		out = &executionPayloadCapella{base}
	default:
		out = base
	}
	base.self = out
	return out
}

func (*executionPayload) IsBlinded() bool { return false }

// Transactions returns copies of the opaque transactions.
func (p *executionPayload) Transactions() [][]byte {
	l := p.list(transactionsIndex)
	txs := make([][]byte, 0, l.Len())
	for _, tx := range l.Elements() {
		txs = append(txs, tx.(*schema.ByteList).Bytes())
	}
	return txs
}

func (p *executionPayload) ToVersionCapella() (interfaces.ExecutionPayloadCapella, bool) {
	if p.version < version.Capella {
		return nil, false
	}
	c, ok := p.self.(interfaces.ExecutionPayloadCapella)
	return c, ok
}

func (p *executionPayload) ToVersionDeneb() (interfaces.ExecutionPayloadDeneb, bool) {
	if p.version < version.Deneb {
		return nil, false
	}
	d, ok := p.self.(interfaces.ExecutionPayloadDeneb)
	return d, ok
}

func (p *executionPayload) ToVersionElectra() (interfaces.ExecutionPayloadElectra, bool) {
	if p.version < version.Electra {
		return nil, false
	}
	e, ok := p.self.(interfaces.ExecutionPayloadElectra)
	return e, ok
}

func (p *executionPayloadCapella) Withdrawals() []interfaces.Withdrawal {
	elems := p.list(withdrawalsIndex).Elements()
	out := make([]interfaces.Withdrawal, len(elems))
	for i, e := range elems {
		out[i] = e.(*Withdrawal)
	}
	return out
}

func (p *executionPayloadDeneb) BlobGasUsed() uint64   { return p.uint64At(blobGasUsedIndex) }
func (p *executionPayloadDeneb) ExcessBlobGas() uint64 { return p.uint64At(excessBlobGasIndex) }

func (p *executionPayloadElectra) DepositReceipts() []interfaces.DepositReceipt {
	elems := p.list(depositReceiptsIndex).Elements()
	out := make([]interfaces.DepositReceipt, len(elems))
	for i, e := range elems {
		out[i] = e.(*DepositReceipt)
	}
	return out
}

func (p *executionPayloadElectra) Exits() []interfaces.ExecutionLayerExit {
	elems := p.list(exitsIndex).Elements()
	out := make([]interfaces.ExecutionLayerExit, len(elems))
	for i, e := range elems {
		out[i] = e.(*ExecutionLayerExit)
	}
	return out
}

// executionPayloadHeader is a Bellatrix payload header.
type executionPayloadHeader struct {
	executionData
	self interfaces.ExecutionPayloadHeader
}

type executionPayloadHeaderCapella struct{ *executionPayloadHeader }
type executionPayloadHeaderDeneb struct{ *executionPayloadHeaderCapella }
type executionPayloadHeaderElectra struct{ *executionPayloadHeaderDeneb }

func wrapHeader(c *schema.Container, v int) schema.Value {
	base := &executionPayloadHeader{executionData: executionData{Container: c, version: v}}
	var out interfaces.ExecutionPayloadHeader
	switch {
	case v >= version.Electra:
		out = &executionPayloadHeaderElectra{&executionPayloadHeaderDeneb{&executionPayloadHeaderCapella{base}}}
	case v >= version.Deneb:
		out = &executionPayloadHeaderDeneb{&executionPayloadHeaderCapella{base}}
	case v >= version.Capella:
		out = &executionPayloadHeaderCapella{base}
	default:
		out = base
	}
	base.self = out
	return out
}

func (*executionPayloadHeader) IsBlinded() bool { return true }

func (h *executionPayloadHeader) TransactionsRoot() [32]byte { return h.root(transactionsIndex) }

func (h *executionPayloadHeader) ToVersionCapella() (interfaces.ExecutionPayloadHeaderCapella, bool) {
	if h.version < version.Capella {
		return nil, false
	}
	c, ok := h.self.(interfaces.ExecutionPayloadHeaderCapella)
	return c, ok
}

func (h *executionPayloadHeader) ToVersionDeneb() (interfaces.ExecutionPayloadHeaderDeneb, bool) {
	if h.version < version.Deneb {
		return nil, false
	}
	d, ok := h.self.(interfaces.ExecutionPayloadHeaderDeneb)
	return d, ok
}

func (h *executionPayloadHeader) ToVersionElectra() (interfaces.ExecutionPayloadHeaderElectra, bool) {
	if h.version < version.Electra {
		return nil, false
	}
	e, ok := h.self.(interfaces.ExecutionPayloadHeaderElectra)
	return e, ok
}

func (h *executionPayloadHeaderCapella) WithdrawalsRoot() [32]byte { return h.root(withdrawalsIndex) }

func (h *executionPayloadHeaderDeneb) BlobGasUsed() uint64   { return h.uint64At(blobGasUsedIndex) }
func (h *executionPayloadHeaderDeneb) ExcessBlobGas() uint64 { return h.uint64At(excessBlobGasIndex) }

func (h *executionPayloadHeaderElectra) DepositReceiptsRoot() [32]byte {
	return h.root(depositReceiptsIndex)
}
func (h *executionPayloadHeaderElectra) ExitsRoot() [32]byte { return h.root(exitsIndex) }
