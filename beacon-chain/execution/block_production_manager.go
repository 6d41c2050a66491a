// Package execution caches the execution layer side of block production:
// payload results recorded when a block is produced and builder payloads
// revealed when a blinded block is published, each kept for a few slots.
package execution

import (
	"context"
	"strconv"
	"time"

	"github.com/YoutacRandS-VA/teku/async"
	"github.com/YoutacRandS-VA/teku/beacon-chain/state"
	"github.com/YoutacRandS-VA/teku/config/params"
	"github.com/YoutacRandS-VA/teku/consensus-types/blocks"
	"github.com/YoutacRandS-VA/teku/consensus-types/interfaces"
	"github.com/YoutacRandS-VA/teku/consensus-types/primitives"
	"github.com/YoutacRandS-VA/teku/monitoring/tracing/trace"
	"github.com/YoutacRandS-VA/teku/runtime/logging"
	"github.com/YoutacRandS-VA/teku/time/slots"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

var (
	errNilPayloadContext = errors.New("nil payload context")
	errNilPayloadResult  = errors.New("nil payload result")
)

// BlockProductionManager starts payload production for proposals and keeps
// the results by slot until the retention window passes them.
type BlockProductionManager struct {
	ctx              context.Context
	cancel           context.CancelFunc
	el               ExecutionLayerChannel
	results          *slotMap[*ExecutionPayloadResult]
	builderPayloads  *slotMap[*BuilderPayload]
	payloadRetention primitives.Slot
	builderRetention primitives.Slot
	unblind          singleflight.Group
}

// Option configures a BlockProductionManager.
type Option func(*BlockProductionManager)

// WithRetention sets how many slots payload results and builder payloads are kept.
func WithRetention(payload, builder primitives.Slot) Option {
	return func(m *BlockProductionManager) {
		m.payloadRetention = payload
		m.builderRetention = builder
	}
}

// NewBlockProductionManager returns a manager using el. Retention windows
// default to the active config.
func NewBlockProductionManager(el ExecutionLayerChannel, opts ...Option) *BlockProductionManager {
	cfg := params.BeaconConfig()
	ctx, cancel := context.WithCancel(context.Background())
	m := &BlockProductionManager{
		ctx:              ctx,
		cancel:           cancel,
		el:               el,
		results:          newSlotMap[*ExecutionPayloadResult](),
		builderPayloads:  newSlotMap[*BuilderPayload](),
		payloadRetention: cfg.ExecutionPayloadCacheRetentionSlots,
		builderRetention: cfg.BuilderPayloadCacheRetentionSlots,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Start prunes the caches at the start of every slot of the chain that began
// at genesisTime, until Stop is called.
func (m *BlockProductionManager) Start(genesisTime time.Time) {
	ticker := slots.NewSlotTicker(genesisTime, params.BeaconConfig().SecondsPerSlot)
	go m.Run(m.ctx, ticker)
}

// Stop ends slot pruning and cancels productions still in flight. Later
// requests fail without reaching the execution layer.
func (m *BlockProductionManager) Stop() error {
	m.cancel()
	return nil
}

// InitiateBlockProduction starts producing the payload of the block at the
// slot of st, from the local engine or, when blind, from the builder.
func (m *BlockProductionManager) InitiateBlockProduction(ctx context.Context, pc *PayloadContext, st state.BeaconState, blind bool, boostFactor *uint64) (*ExecutionPayloadResult, error) {
	return m.initiate(ctx, pc, st, blind, false, boostFactor)
}

// InitiateBlockAndBlobsProduction is InitiateBlockProduction that also
// resolves the blobs bundle in the local flow.
func (m *BlockProductionManager) InitiateBlockAndBlobsProduction(ctx context.Context, pc *PayloadContext, st state.BeaconState, blind bool, boostFactor *uint64) (*ExecutionPayloadResult, error) {
	return m.initiate(ctx, pc, st, blind, true, boostFactor)
}

func (m *BlockProductionManager) initiate(ctx context.Context, pc *PayloadContext, st state.BeaconState, blind, withBlobs bool, boostFactor *uint64) (*ExecutionPayloadResult, error) {
	if pc == nil {
		return nil, errNilPayloadContext
	}
	if st == nil {
		return nil, errors.New("nil block slot state")
	}
	// Production runs under the manager's context. Only the caller's span carries over.
	pctx := trace.NewContext(m.ctx, trace.FromContext(ctx))
	var r *ExecutionPayloadResult
	if blind {
		productionRequests.WithLabelValues("builder").Inc()
		r = m.builderGetHeader(pctx, pc, st, boostFactor)
	} else {
		productionRequests.WithLabelValues("local").Inc()
		r = m.engineGetPayload(pctx, pc, st, withBlobs)
	}
	if err := m.RecordResult(st.Slot(), r); err != nil {
		return nil, err
	}
	return r, nil
}

func (m *BlockProductionManager) engineGetPayload(ctx context.Context, pc *PayloadContext, st state.BeaconState, withBlobs bool) *ExecutionPayloadResult {
	resp := async.Go(ctx, func(ctx context.Context) (*blocks.GetPayloadResponse, error) {
		ctx, span := trace.StartSpan(ctx, "execution.engineGetPayload")
		defer span.End()
		span.SetAttributes(trace.Int64Attribute("slot", int64(st.Slot()))) // lint:ignore uintcast -- This conversion is OK for tracing.
		r, err := m.el.EngineGetPayload(ctx, pc, st)
		if err == nil && r == nil {
			err = errors.New("engine returned no payload")
		}
		trace.RecordError(span, err)
		return r, err
	})
	r := &ExecutionPayloadResult{
		Context: pc,
		Payload: async.Then(resp, func(r *blocks.GetPayloadResponse) (interfaces.ExecutionPayload, error) {
			return r.ExecutionData, nil
		}),
		Value: async.Then(resp, func(r *blocks.GetPayloadResponse) (primitives.Wei, error) {
			return r.Bid, nil
		}),
	}
	if withBlobs {
		r.BlobsBundle = async.Then(resp, func(r *blocks.GetPayloadResponse) (*blocks.BlobsBundle, error) {
			return r.BlobsBundle, nil
		})
	}
	return r
}

func (m *BlockProductionManager) builderGetHeader(ctx context.Context, pc *PayloadContext, st state.BeaconState, boostFactor *uint64) *ExecutionPayloadResult {
	header := async.Go(ctx, func(ctx context.Context) (*HeaderWithFallbackData, error) {
		ctx, span := trace.StartSpan(ctx, "execution.builderGetHeader")
		defer span.End()
		span.SetAttributes(trace.Int64Attribute("slot", int64(st.Slot()))) // lint:ignore uintcast -- This conversion is OK for tracing.
		h, err := m.el.BuilderGetHeader(ctx, pc, st, boostFactor)
		if err == nil && h == nil {
			err = errors.New("builder flow returned no header")
		}
		trace.RecordError(span, err)
		return h, err
	})
	return &ExecutionPayloadResult{
		Context:            pc,
		HeaderWithFallback: header,
		Value: async.Then(header, func(h *HeaderWithFallbackData) (primitives.Wei, error) {
			if h.Value == nil {
				return primitives.ZeroWei(), nil
			}
			return h.Value, nil
		}),
	}
}

// RecordResult caches r as the payload result of slot.
func (m *BlockProductionManager) RecordResult(slot primitives.Slot, r *ExecutionPayloadResult) error {
	if r == nil {
		return errors.Wrapf(errNilPayloadResult, "slot %d", slot)
	}
	m.results.put(slot, r)
	productionCacheEntries.WithLabelValues(payloadCache).Set(float64(m.results.len()))
	log.WithFields(logging.PayloadResultFields(slot, r.IsFromLocalFlow(), r.HasBlobs())).Debug("Recorded payload result")
	return nil
}

// GetCachedPayloadResult returns the payload result recorded for slot.
func (m *BlockProductionManager) GetCachedPayloadResult(slot primitives.Slot) (*ExecutionPayloadResult, bool) {
	return m.results.get(slot)
}

// GetCachedResult is GetCachedPayloadResult.
func (m *BlockProductionManager) GetCachedResult(slot primitives.Slot) (*ExecutionPayloadResult, bool) {
	return m.GetCachedPayloadResult(slot)
}

// GetUnblindedPayload asks the builder to reveal the payload of blk and
// caches it. Concurrent calls for the same slot share one builder request.
func (m *BlockProductionManager) GetUnblindedPayload(ctx context.Context, blk SignedBlindedBlock) (*BuilderPayload, error) {
	if blk == nil {
		return nil, errors.New("nil blinded block")
	}
	slot := blk.Slot()
	v, err, _ := m.unblind.Do(strconv.FormatUint(uint64(slot), 10), func() (interface{}, error) {
		ctx, span := trace.StartSpan(ctx, "execution.builderGetPayload")
		defer span.End()
		p, err := m.el.BuilderGetPayload(ctx, blk, m.GetCachedPayloadResult)
		trace.RecordError(span, err)
		if err != nil {
			return nil, errors.Wrapf(err, "could not get builder payload for slot %d", slot)
		}
		if p == nil {
			return nil, errors.Errorf("builder returned no payload for slot %d", slot)
		}
		m.builderPayloads.put(slot, p)
		productionCacheEntries.WithLabelValues(builderCache).Set(float64(m.builderPayloads.len()))
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*BuilderPayload), nil
}

// GetCachedUnblindedPayload returns the builder payload revealed for slot.
func (m *BlockProductionManager) GetCachedUnblindedPayload(slot primitives.Slot) (*BuilderPayload, bool) {
	return m.builderPayloads.get(slot)
}

// OnSlot drops every entry recorded for a slot older than slot minus the
// retention window. The window saturates at genesis.
func (m *BlockProductionManager) OnSlot(slot primitives.Slot) {
	if n := m.results.pruneBefore(slot.SubSlot(m.payloadRetention)); n > 0 {
		productionCacheEvictions.WithLabelValues(payloadCache).Add(float64(n))
	}
	if n := m.builderPayloads.pruneBefore(slot.SubSlot(m.builderRetention)); n > 0 {
		productionCacheEvictions.WithLabelValues(builderCache).Add(float64(n))
	}
	productionCacheEntries.WithLabelValues(payloadCache).Set(float64(m.results.len()))
	productionCacheEntries.WithLabelValues(builderCache).Set(float64(m.builderPayloads.len()))
}

// Run calls OnSlot on every tick until ctx is done.
func (m *BlockProductionManager) Run(ctx context.Context, ticker slots.Ticker) {
	defer ticker.Done()
	for {
		select {
		case <-ctx.Done():
			log.Debug("Context closed, exiting block production cache pruning")
			return
		case slot := <-ticker.C():
			m.OnSlot(slot)
		}
	}
}
