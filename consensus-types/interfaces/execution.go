// Package interfaces declares the fork capability chains of consensus values.
// A value of fork k satisfies the interface of every fork before k, and the
// ToVersion probes are O(1) checks of the value's fork tag.
package interfaces

import (
	"github.com/YoutacRandS-VA/teku/consensus-types/primitives"
	"github.com/YoutacRandS-VA/teku/encoding/ssz/schema"
	"github.com/YoutacRandS-VA/teku/runtime/version"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Withdrawal is a validator withdrawal processed by the execution layer.
type Withdrawal interface {
	schema.Value
	Index() uint64
	ValidatorIndex() primitives.ValidatorIndex
	Address() common.Address
	Amount() primitives.Gwei
}

// DepositReceipt is a deposit reported in an execution payload.
type DepositReceipt interface {
	schema.Value
	Pubkey() [48]byte
	WithdrawalCredentials() [32]byte
	Amount() primitives.Gwei
	Signature() [96]byte
	Index() uint64
}

// ExecutionLayerExit is a validator exit triggered from the execution layer.
type ExecutionLayerExit interface {
	schema.Value
	SourceAddress() common.Address
	ValidatorPubkey() [48]byte
}

// ExecutionData is the part shared by execution payloads and their headers.
type ExecutionData interface {
	schema.Value
	Version() int
	IsBlinded() bool
	ParentHash() common.Hash
	FeeRecipient() common.Address
	StateRoot() [32]byte
	ReceiptsRoot() [32]byte
	LogsBloom() []byte
	PrevRandao() [32]byte
	BlockNumber() uint64
	GasLimit() uint64
	GasUsed() uint64
	Timestamp() uint64
	ExtraData() []byte
	BaseFeePerGas() *uint256.Int
	BlockHash() common.Hash
}

// ExecutionPayload is the Bellatrix execution payload and the root of the
// payload capability chain. Each later fork's interface embeds its
// predecessor so a value of fork k satisfies every earlier fork.
type ExecutionPayload interface {
	ExecutionData
	Transactions() [][]byte
	ToVersionCapella() (ExecutionPayloadCapella, bool)
	ToVersionDeneb() (ExecutionPayloadDeneb, bool)
	ToVersionElectra() (ExecutionPayloadElectra, bool)
}

// ExecutionPayloadCapella adds withdrawals.
type ExecutionPayloadCapella interface {
	ExecutionPayload
	Withdrawals() []Withdrawal
}

// ExecutionPayloadDeneb adds blob gas accounting.
type ExecutionPayloadDeneb interface {
	ExecutionPayloadCapella
	BlobGasUsed() uint64
	ExcessBlobGas() uint64
}

// ExecutionPayloadElectra adds execution layer deposits and exits.
type ExecutionPayloadElectra interface {
	ExecutionPayloadDeneb
	DepositReceipts() []DepositReceipt
	Exits() []ExecutionLayerExit
}

// ExecutionPayloadHeader is the Bellatrix payload header, with list fields
// replaced by their roots.
type ExecutionPayloadHeader interface {
	ExecutionData
	TransactionsRoot() [32]byte
	ToVersionCapella() (ExecutionPayloadHeaderCapella, bool)
	ToVersionDeneb() (ExecutionPayloadHeaderDeneb, bool)
	ToVersionElectra() (ExecutionPayloadHeaderElectra, bool)
}

type ExecutionPayloadHeaderCapella interface {
	ExecutionPayloadHeader
	WithdrawalsRoot() [32]byte
}

type ExecutionPayloadHeaderDeneb interface {
	ExecutionPayloadHeaderCapella
	BlobGasUsed() uint64
	ExcessBlobGas() uint64
}

type ExecutionPayloadHeaderElectra interface {
	ExecutionPayloadHeaderDeneb
	DepositReceiptsRoot() [32]byte
	ExitsRoot() [32]byte
}

// RequireExecutionPayloadCapella returns p as a Capella payload or an
// UnsupportedVersionError.
func RequireExecutionPayloadCapella(p ExecutionPayload) (ExecutionPayloadCapella, error) {
	return requireVersion(p, p.ToVersionCapella, version.Capella)
}

// RequireExecutionPayloadDeneb returns p as a Deneb payload or an
// UnsupportedVersionError.
func RequireExecutionPayloadDeneb(p ExecutionPayload) (ExecutionPayloadDeneb, error) {
	return requireVersion(p, p.ToVersionDeneb, version.Deneb)
}

// RequireExecutionPayloadElectra returns p as an Electra payload or an
// UnsupportedVersionError.
func RequireExecutionPayloadElectra(p ExecutionPayload) (ExecutionPayloadElectra, error) {
	return requireVersion(p, p.ToVersionElectra, version.Electra)
}

func RequireExecutionPayloadHeaderCapella(h ExecutionPayloadHeader) (ExecutionPayloadHeaderCapella, error) {
	return requireVersion(h, h.ToVersionCapella, version.Capella)
}

func RequireExecutionPayloadHeaderDeneb(h ExecutionPayloadHeader) (ExecutionPayloadHeaderDeneb, error) {
	return requireVersion(h, h.ToVersionDeneb, version.Deneb)
}

func RequireExecutionPayloadHeaderElectra(h ExecutionPayloadHeader) (ExecutionPayloadHeaderElectra, error) {
	return requireVersion(h, h.ToVersionElectra, version.Electra)
}
