package execution

import (
	"context"

	"github.com/YoutacRandS-VA/teku/beacon-chain/state"
	"github.com/YoutacRandS-VA/teku/consensus-types/blocks"
	"github.com/YoutacRandS-VA/teku/consensus-types/interfaces"
	"github.com/YoutacRandS-VA/teku/consensus-types/primitives"
	"github.com/ethereum/go-ethereum/common"
)

// PayloadContext identifies a payload build started on the execution engine
// by a forkchoice update.
type PayloadContext struct {
	PayloadID    [8]byte
	ParentRoot   [32]byte
	FeeRecipient common.Address
}

// FallbackReason records why a locally built payload was used in the builder flow.
type FallbackReason string

const (
	FallbackBuilderNotAvailable       FallbackReason = "builder_not_available"
	FallbackBuilderHeaderNotAvailable FallbackReason = "builder_header_not_available"
	FallbackBuilderError              FallbackReason = "builder_error"
	FallbackLocalBlockValueWon        FallbackReason = "local_block_value_won"
	FallbackValidatorNotRegistered    FallbackReason = "validator_not_registered"
)

// FallbackData is the local payload kept in place of a builder bid.
type FallbackData struct {
	Response *blocks.GetPayloadResponse
	Reason   FallbackReason
}

// HeaderWithFallbackData is the outcome of a builder header request: the
// header to blind the block with, the fallback payload when the local flow
// won, and the value of whichever was chosen.
type HeaderWithFallbackData struct {
	Header   interfaces.ExecutionPayloadHeader
	Fallback *FallbackData
	Value    primitives.Wei
}

// BuilderPayload is an unblinded payload, with its blobs from Deneb onwards.
type BuilderPayload struct {
	Payload     interfaces.ExecutionPayload
	BlobsBundle *blocks.BlobsBundle
}

// SignedBlindedBlock is the part of a signed blinded block the builder needs
// to reveal its payload.
type SignedBlindedBlock interface {
	Slot() primitives.Slot
	MarshalSSZ() ([]byte, error)
}

// CachedResultLookup returns the payload result recorded for a slot.
type CachedResultLookup func(slot primitives.Slot) (*ExecutionPayloadResult, bool)

// ExecutionLayerChannel is the execution engine and builder client used
// during block production.
type ExecutionLayerChannel interface {
	EngineGetPayload(ctx context.Context, pc *PayloadContext, st state.BeaconState) (*blocks.GetPayloadResponse, error)
	BuilderGetHeader(ctx context.Context, pc *PayloadContext, st state.BeaconState, boostFactor *uint64) (*HeaderWithFallbackData, error)
	BuilderGetPayload(ctx context.Context, blk SignedBlindedBlock, lookup CachedResultLookup) (*BuilderPayload, error)
}
