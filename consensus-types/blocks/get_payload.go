package blocks

import (
	"github.com/YoutacRandS-VA/teku/consensus-types/interfaces"
	"github.com/YoutacRandS-VA/teku/consensus-types/primitives"
	"github.com/YoutacRandS-VA/teku/runtime/version"
	"github.com/pkg/errors"
)

// GetPayloadResponse represents the result of an execution engine
// get payload call: the payload, the blobs bundle from Deneb onwards, the
// block value and whether the engine advises against using a builder.
type GetPayloadResponse struct {
	ExecutionData   interfaces.ExecutionPayload
	BlobsBundle     *BlobsBundle
	OverrideBuilder bool
	// todo: should we convert this to Gwei up front?
	Bid primitives.Wei
}

// NewGetPayloadResponse validates and assembles a get payload response. A nil
// bid is recorded as zero.
func NewGetPayloadResponse(p interfaces.ExecutionPayload, bundle *BlobsBundle, bid primitives.Wei, overrideBuilder bool) (*GetPayloadResponse, error) {
	if p == nil {
		return nil, errors.New("nil execution payload")
	}
	if bundle != nil && p.Version() < version.Deneb {
		return nil, interfaces.NewUnsupportedVersionError(p.Version(), version.Deneb)
	}
	if bid == nil {
		bid = primitives.ZeroWei()
	}
	return &GetPayloadResponse{
		ExecutionData:   p,
		BlobsBundle:     bundle,
		OverrideBuilder: overrideBuilder,
		Bid:             bid,
	}, nil
}

// BidGwei returns the bid in gwei.
func (r *GetPayloadResponse) BidGwei() primitives.Gwei {
	return primitives.WeiToGwei(r.Bid)
}
