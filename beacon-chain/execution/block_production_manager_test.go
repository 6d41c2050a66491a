package execution_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/YoutacRandS-VA/teku/async"
	"github.com/YoutacRandS-VA/teku/beacon-chain/execution"
	"github.com/YoutacRandS-VA/teku/beacon-chain/state"
	state_native "github.com/YoutacRandS-VA/teku/beacon-chain/state/state-native"
	"github.com/YoutacRandS-VA/teku/config/params"
	"github.com/YoutacRandS-VA/teku/consensus-types/blocks"
	"github.com/YoutacRandS-VA/teku/consensus-types/interfaces"
	"github.com/YoutacRandS-VA/teku/consensus-types/primitives"
	"github.com/YoutacRandS-VA/teku/runtime/version"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	logTest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	response       *blocks.GetPayloadResponse
	responseErr    error
	header         *execution.HeaderWithFallbackData
	headerErr      error
	builderPayload *execution.BuilderPayload
	builderErr     error

	engineRelease chan struct{}
	engineCalls   atomic.Int32

	release     chan struct{}
	calls       atomic.Int32
	inflight    atomic.Int32
	maxInflight atomic.Int32
	lookedUp    atomic.Bool
}

func (f *fakeChannel) EngineGetPayload(ctx context.Context, _ *execution.PayloadContext, _ state.BeaconState) (*blocks.GetPayloadResponse, error) {
	f.engineCalls.Add(1)
	if f.engineRelease != nil {
		select {
		case <-f.engineRelease:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.response, f.responseErr
}

func (f *fakeChannel) BuilderGetHeader(_ context.Context, _ *execution.PayloadContext, _ state.BeaconState, _ *uint64) (*execution.HeaderWithFallbackData, error) {
	return f.header, f.headerErr
}

func (f *fakeChannel) BuilderGetPayload(ctx context.Context, blk execution.SignedBlindedBlock, lookup execution.CachedResultLookup) (*execution.BuilderPayload, error) {
	f.calls.Add(1)
	n := f.inflight.Add(1)
	defer f.inflight.Add(-1)
	for {
		m := f.maxInflight.Load()
		if n <= m || f.maxInflight.CompareAndSwap(m, n) {
			break
		}
	}
	if _, ok := lookup(blk.Slot()); ok {
		f.lookedUp.Store(true)
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.builderPayload, f.builderErr
}

type blindedBlock struct{ slot primitives.Slot }

func (b blindedBlock) Slot() primitives.Slot       { return b.slot }
func (b blindedBlock) MarshalSSZ() ([]byte, error) { return []byte{byte(b.slot)}, nil }

type fakeTicker struct {
	c    chan primitives.Slot
	done atomic.Bool
}

func (f *fakeTicker) C() <-chan primitives.Slot { return f.c }
func (f *fakeTicker) Done()                     { f.done.Store(true) }

func stateAtSlot(t *testing.T, v int, slot primitives.Slot) state.BeaconState {
	st, err := state_native.InitializeDefault(v)
	require.NoError(t, err)
	m := st.ToMutable()
	require.NoError(t, m.SetSlot(slot))
	st, err = m.Commit()
	require.NoError(t, err)
	return st
}

func denebResponse(t *testing.T) *blocks.GetPayloadResponse {
	p, err := blocks.NewExecutionPayload(version.Deneb, &blocks.ExecutionPayloadFields{
		FeeRecipient: common.HexToAddress("0x388c818ca8b9251b393131c08a736a67ccb19297"),
		BlockNumber:  100,
		GasLimit:     30_000_000,
		Transactions: [][]byte{{0x02, 0x01}},
		BlobGasUsed:  131072,
	})
	require.NoError(t, err)
	bundle, err := blocks.NewBlobsBundle([][48]byte{{1}}, [][48]byte{{2}}, [][]byte{make([]byte, 131072)})
	require.NoError(t, err)
	resp, err := blocks.NewGetPayloadResponse(p, bundle, primitives.Uint64ToWei(12345), false)
	require.NoError(t, err)
	return resp
}

func payloadContext() *execution.PayloadContext {
	return &execution.PayloadContext{PayloadID: [8]byte{1}, ParentRoot: [32]byte{2}}
}

func completedResult() *execution.ExecutionPayloadResult {
	return &execution.ExecutionPayloadResult{
		Context: payloadContext(),
		Value:   async.Completed(primitives.ZeroWei()),
	}
}

func TestOnSlot_EvictsOutsideRetention(t *testing.T) {
	m := execution.NewBlockProductionManager(&fakeChannel{}, execution.WithRetention(2, 2))
	for _, s := range []primitives.Slot{10, 11, 12} {
		require.NoError(t, m.RecordResult(s, completedResult()))
	}
	m.OnSlot(13)

	_, ok := m.GetCachedResult(10)
	assert.False(t, ok)
	for _, s := range []primitives.Slot{11, 12} {
		_, ok := m.GetCachedResult(s)
		assert.True(t, ok, "slot %d", s)
	}
}

func TestOnSlot_RetentionSaturatesAtGenesis(t *testing.T) {
	m := execution.NewBlockProductionManager(&fakeChannel{}, execution.WithRetention(2, 2))
	require.NoError(t, m.RecordResult(0, completedResult()))
	m.OnSlot(1)
	_, ok := m.GetCachedPayloadResult(0)
	assert.True(t, ok)
}

func TestOnSlot_DefaultRetentionFromConfig(t *testing.T) {
	m := execution.NewBlockProductionManager(&fakeChannel{})
	require.NoError(t, m.RecordResult(5, completedResult()))
	m.OnSlot(7)
	_, ok := m.GetCachedResult(5)
	assert.True(t, ok)
	m.OnSlot(8)
	_, ok = m.GetCachedResult(5)
	assert.False(t, ok)
}

func TestInitiateBlockProduction_Local(t *testing.T) {
	resp := denebResponse(t)
	m := execution.NewBlockProductionManager(&fakeChannel{response: resp})
	st := stateAtSlot(t, version.Deneb, 42)

	tests := []struct {
		name      string
		initiate  func(context.Context, *execution.PayloadContext, state.BeaconState, bool, *uint64) (*execution.ExecutionPayloadResult, error)
		wantBlobs bool
	}{
		{name: "payload only", initiate: m.InitiateBlockProduction},
		{name: "with blobs", initiate: m.InitiateBlockAndBlobsProduction, wantBlobs: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := tt.initiate(context.Background(), payloadContext(), st, false, nil)
			require.NoError(t, err)
			assert.True(t, r.IsFromLocalFlow())
			assert.Equal(t, tt.wantBlobs, r.HasBlobs())
			assert.Nil(t, r.HeaderWithFallback)

			got, err := r.Await(context.Background())
			require.NoError(t, err)
			assert.Equal(t, resp.ExecutionData.HashTreeRoot(), got.Payload.HashTreeRoot())
			assert.Equal(t, primitives.Gwei(0), primitives.WeiToGwei(got.Value))
			assert.Equal(t, uint64(12345), (*got.Value).Uint64())
			if tt.wantBlobs {
				require.NotNil(t, got.BlobsBundle)
				assert.Equal(t, 1, got.BlobsBundle.Len())
			} else {
				assert.Nil(t, got.BlobsBundle)
			}

			cached, ok := m.GetCachedResult(42)
			require.True(t, ok)
			assert.Same(t, r, cached)
		})
	}
}

func TestInitiateBlockProduction_Blind(t *testing.T) {
	h, err := blocks.PayloadToHeader(denebResponse(t).ExecutionData)
	require.NoError(t, err)
	el := &fakeChannel{header: &execution.HeaderWithFallbackData{
		Header: h,
		Value:  primitives.GweiToWei(3),
	}}
	m := execution.NewBlockProductionManager(el)
	boost := uint64(90)
	r, err := m.InitiateBlockProduction(context.Background(), payloadContext(), stateAtSlot(t, version.Deneb, 7), true, &boost)
	require.NoError(t, err)
	assert.False(t, r.IsFromLocalFlow())

	got, err := r.Await(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got.Payload)
	assert.Equal(t, h.HashTreeRoot(), got.HeaderWithFallback.Header.HashTreeRoot())
	assert.Equal(t, primitives.Gwei(3), primitives.WeiToGwei(got.Value))
}

func TestInitiateBlockProduction_BlindFallbackWithoutValue(t *testing.T) {
	el := &fakeChannel{header: &execution.HeaderWithFallbackData{
		Fallback: &execution.FallbackData{Response: denebResponse(t), Reason: execution.FallbackBuilderNotAvailable},
	}}
	m := execution.NewBlockProductionManager(el)
	r, err := m.InitiateBlockProduction(context.Background(), payloadContext(), stateAtSlot(t, version.Deneb, 7), true, nil)
	require.NoError(t, err)
	got, err := r.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, execution.FallbackBuilderNotAvailable, got.HeaderWithFallback.Fallback.Reason)
	assert.True(t, (*got.Value).IsZero())
}

func TestInitiateBlockProduction_Errors(t *testing.T) {
	st := stateAtSlot(t, version.Capella, 3)

	t.Run("nil payload context", func(t *testing.T) {
		m := execution.NewBlockProductionManager(&fakeChannel{})
		_, err := m.InitiateBlockProduction(context.Background(), nil, st, false, nil)
		assert.Error(t, err)
		_, ok := m.GetCachedResult(3)
		assert.False(t, ok)
	})
	t.Run("nil state", func(t *testing.T) {
		m := execution.NewBlockProductionManager(&fakeChannel{})
		_, err := m.InitiateBlockProduction(context.Background(), payloadContext(), nil, false, nil)
		assert.Error(t, err)
	})
	t.Run("engine failure reaches every future", func(t *testing.T) {
		boom := errors.New("engine offline")
		m := execution.NewBlockProductionManager(&fakeChannel{responseErr: boom})
		r, err := m.InitiateBlockAndBlobsProduction(context.Background(), payloadContext(), st, false, nil)
		require.NoError(t, err)
		_, err = r.Await(context.Background())
		assert.ErrorIs(t, err, boom)
		_, err = r.Value.Get(context.Background())
		assert.ErrorIs(t, err, boom)
		_, err = r.BlobsBundle.Get(context.Background())
		assert.ErrorIs(t, err, boom)
		_, ok := m.GetCachedResult(3)
		assert.True(t, ok)
	})
	t.Run("engine returns nothing", func(t *testing.T) {
		m := execution.NewBlockProductionManager(&fakeChannel{})
		r, err := m.InitiateBlockProduction(context.Background(), payloadContext(), st, false, nil)
		require.NoError(t, err)
		_, err = r.Await(context.Background())
		assert.ErrorContains(t, err, "no payload")
	})
	t.Run("builder failure", func(t *testing.T) {
		boom := errors.New("relay down")
		m := execution.NewBlockProductionManager(&fakeChannel{headerErr: boom})
		r, err := m.InitiateBlockProduction(context.Background(), payloadContext(), st, true, nil)
		require.NoError(t, err)
		_, err = r.Await(context.Background())
		assert.ErrorIs(t, err, boom)
	})
}

func TestAwait_HonoursContext(t *testing.T) {
	r := &execution.ExecutionPayloadResult{
		Payload: async.NewFuture[interfaces.ExecutionPayload](),
		Value:   async.NewFuture[primitives.Wei](),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := r.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGetUnblindedPayload(t *testing.T) {
	payload := &execution.BuilderPayload{Payload: denebResponse(t).ExecutionData}
	el := &fakeChannel{builderPayload: payload, release: make(chan struct{})}
	m := execution.NewBlockProductionManager(el)
	require.NoError(t, m.RecordResult(9, completedResult()))

	const callers = 8
	var wg sync.WaitGroup
	got := make([]*execution.BuilderPayload, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], errs[i] = m.GetUnblindedPayload(context.Background(), blindedBlock{slot: 9})
		}(i)
	}
	require.Eventually(t, func() bool { return el.calls.Load() >= 1 }, time.Second, time.Millisecond)
	close(el.release)
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Same(t, payload, got[i])
	}
	assert.Equal(t, int32(1), el.maxInflight.Load())
	assert.True(t, el.lookedUp.Load())

	cached, ok := m.GetCachedUnblindedPayload(9)
	require.True(t, ok)
	assert.Same(t, payload, cached)
}

func TestGetUnblindedPayload_Errors(t *testing.T) {
	t.Run("nil block", func(t *testing.T) {
		m := execution.NewBlockProductionManager(&fakeChannel{})
		_, err := m.GetUnblindedPayload(context.Background(), nil)
		assert.Error(t, err)
	})
	t.Run("builder failure is not cached", func(t *testing.T) {
		boom := errors.New("withheld")
		m := execution.NewBlockProductionManager(&fakeChannel{builderErr: boom})
		_, err := m.GetUnblindedPayload(context.Background(), blindedBlock{slot: 4})
		assert.ErrorIs(t, err, boom)
		assert.ErrorContains(t, err, "slot 4")
		_, ok := m.GetCachedUnblindedPayload(4)
		assert.False(t, ok)
	})
	t.Run("empty payload", func(t *testing.T) {
		m := execution.NewBlockProductionManager(&fakeChannel{})
		_, err := m.GetUnblindedPayload(context.Background(), blindedBlock{slot: 4})
		assert.ErrorContains(t, err, "no payload")
	})
}

func TestOnSlot_EvictsBuilderPayloads(t *testing.T) {
	el := &fakeChannel{builderPayload: &execution.BuilderPayload{}}
	m := execution.NewBlockProductionManager(el, execution.WithRetention(2, 1))
	for _, s := range []primitives.Slot{20, 21} {
		_, err := m.GetUnblindedPayload(context.Background(), blindedBlock{slot: s})
		require.NoError(t, err)
	}
	m.OnSlot(22)
	_, ok := m.GetCachedUnblindedPayload(20)
	assert.False(t, ok)
	_, ok = m.GetCachedUnblindedPayload(21)
	assert.True(t, ok)
}

func TestRun_PrunesOnTick(t *testing.T) {
	m := execution.NewBlockProductionManager(&fakeChannel{}, execution.WithRetention(2, 2))
	for _, s := range []primitives.Slot{10, 11, 12} {
		require.NoError(t, m.RecordResult(s, completedResult()))
	}
	ticker := &fakeTicker{c: make(chan primitives.Slot)}
	ctx, cancel := context.WithCancel(context.Background())
	exited := make(chan struct{})
	go func() {
		m.Run(ctx, ticker)
		close(exited)
	}()
	ticker.c <- 13
	require.Eventually(t, func() bool {
		_, ok := m.GetCachedResult(10)
		return !ok
	}, time.Second, time.Millisecond)
	cancel()
	<-exited
	assert.True(t, ticker.done.Load())
}

func TestRecordResult_Logs(t *testing.T) {
	level := logrus.GetLevel()
	logrus.SetLevel(logrus.DebugLevel)
	defer logrus.SetLevel(level)
	hook := logTest.NewGlobal()

	m := execution.NewBlockProductionManager(&fakeChannel{})
	require.NoError(t, m.RecordResult(77, completedResult()))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "Recorded payload result", entry.Message)
	assert.Equal(t, "builder", entry.Data["flow"])
	assert.Equal(t, primitives.Slot(77), entry.Data["slot"])
	assert.Equal(t, false, entry.Data["blobs"])
}

func TestRecordResult_RejectsNil(t *testing.T) {
	m := execution.NewBlockProductionManager(&fakeChannel{})
	err := m.RecordResult(3, nil)
	assert.ErrorContains(t, err, "nil payload result")
	_, ok := m.GetCachedResult(3)
	assert.False(t, ok)
}

func TestInitiateBlockProduction_OutlivesRequestContext(t *testing.T) {
	resp := denebResponse(t)
	el := &fakeChannel{response: resp, engineRelease: make(chan struct{})}
	m := execution.NewBlockProductionManager(el)
	defer func() { require.NoError(t, m.Stop()) }()

	ctx, cancel := context.WithCancel(context.Background())
	r, err := m.InitiateBlockProduction(ctx, payloadContext(), stateAtSlot(t, version.Deneb, 5), false, nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return el.engineCalls.Load() == 1 }, time.Second, time.Millisecond)
	cancel()
	close(el.engineRelease)

	cached, ok := m.GetCachedResult(5)
	require.True(t, ok)
	got, err := cached.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, resp.ExecutionData.HashTreeRoot(), got.Payload.HashTreeRoot())
	assert.Same(t, r, cached)
}

func TestStop_CancelsProduction(t *testing.T) {
	el := &fakeChannel{response: denebResponse(t), engineRelease: make(chan struct{})}
	m := execution.NewBlockProductionManager(el)
	st := stateAtSlot(t, version.Deneb, 6)

	inflight, err := m.InitiateBlockProduction(context.Background(), payloadContext(), st, false, nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return el.engineCalls.Load() == 1 }, time.Second, time.Millisecond)
	require.NoError(t, m.Stop())
	_, err = inflight.Await(context.Background())
	assert.ErrorIs(t, err, context.Canceled)

	later, err := m.InitiateBlockProduction(context.Background(), payloadContext(), st, true, nil)
	require.NoError(t, err)
	_, err = later.Await(context.Background())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(1), el.engineCalls.Load())
}

func TestStart_PrunesOnSlotTicks(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	cfg := params.BeaconConfig().Copy()
	cfg.SecondsPerSlot = 1
	params.OverrideBeaconConfig(cfg)

	m := execution.NewBlockProductionManager(&fakeChannel{}, execution.WithRetention(2, 2))
	for _, s := range []primitives.Slot{10, 11, 12} {
		require.NoError(t, m.RecordResult(s, completedResult()))
	}
	m.Start(time.Now().Add(-20 * time.Second))
	defer func() { require.NoError(t, m.Stop()) }()

	require.Eventually(t, func() bool {
		_, ok := m.GetCachedResult(12)
		return !ok
	}, 3*time.Second, 10*time.Millisecond)
}
