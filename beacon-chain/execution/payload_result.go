package execution

import (
	"context"

	"github.com/YoutacRandS-VA/teku/async"
	"github.com/YoutacRandS-VA/teku/consensus-types/blocks"
	"github.com/YoutacRandS-VA/teku/consensus-types/interfaces"
	"github.com/YoutacRandS-VA/teku/consensus-types/primitives"
	"golang.org/x/sync/errgroup"
)

// ExecutionPayloadResult holds the pending outputs of a block production
// request. The local flow sets Payload, and BlobsBundle when blobs were
// requested. The builder flow sets HeaderWithFallback. Value is always set.
type ExecutionPayloadResult struct {
	Context            *PayloadContext
	Payload            *async.Future[interfaces.ExecutionPayload]
	BlobsBundle        *async.Future[*blocks.BlobsBundle]
	HeaderWithFallback *async.Future[*HeaderWithFallbackData]
	Value              *async.Future[primitives.Wei]
}

// ResolvedPayloadResult is an ExecutionPayloadResult after every present
// future completed.
type ResolvedPayloadResult struct {
	Payload            interfaces.ExecutionPayload
	BlobsBundle        *blocks.BlobsBundle
	HeaderWithFallback *HeaderWithFallbackData
	Value              primitives.Wei
}

// IsFromLocalFlow reports whether the payload comes from the local execution engine.
func (r *ExecutionPayloadResult) IsFromLocalFlow() bool { return r.Payload != nil }

// HasBlobs reports whether a blobs bundle was requested.
func (r *ExecutionPayloadResult) HasBlobs() bool { return r.BlobsBundle != nil }

// Await waits for every present future. The first failure cancels the wait
// and is returned.
func (r *ExecutionPayloadResult) Await(ctx context.Context) (*ResolvedPayloadResult, error) {
	out := &ResolvedPayloadResult{}
	g, ctx := errgroup.WithContext(ctx)
	if r.Payload != nil {
		g.Go(func() (err error) {
			out.Payload, err = r.Payload.Get(ctx)
			return
		})
	}
	if r.BlobsBundle != nil {
		g.Go(func() (err error) {
			out.BlobsBundle, err = r.BlobsBundle.Get(ctx)
			return
		})
	}
	if r.HeaderWithFallback != nil {
		g.Go(func() (err error) {
			out.HeaderWithFallback, err = r.HeaderWithFallback.Get(ctx)
			return
		})
	}
	g.Go(func() (err error) {
		out.Value, err = r.Value.Get(ctx)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
