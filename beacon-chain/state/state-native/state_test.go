package state_native_test

import (
	"testing"

	"github.com/YoutacRandS-VA/teku/beacon-chain/state"
	state_native "github.com/YoutacRandS-VA/teku/beacon-chain/state/state-native"
	"github.com/YoutacRandS-VA/teku/config/params"
	"github.com/YoutacRandS-VA/teku/consensus-types/blocks"
	"github.com/YoutacRandS-VA/teku/consensus-types/interfaces"
	"github.com/YoutacRandS-VA/teku/consensus-types/primitives"
	"github.com/YoutacRandS-VA/teku/encoding/ssz/schema"
	"github.com/YoutacRandS-VA/teku/runtime/version"
	"github.com/prysmaticlabs/go-bitfield"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedFields interface {
	GetByName(name string) (schema.Value, error)
}

func fieldOf(t *testing.T, st state.BeaconState, name string) schema.Value {
	v, err := st.(namedFields).GetByName(name)
	require.NoError(t, err)
	return v
}

func validator(i byte) *state.Validator {
	return &state.Validator{
		PublicKey:             [48]byte{i},
		WithdrawalCredentials: [32]byte{0x01, i},
		EffectiveBalance:      32e9,
		ExitEpoch:             params.BeaconConfig().FarFutureEpoch,
		WithdrawableEpoch:     params.BeaconConfig().FarFutureEpoch,
	}
}

func withValidators(t *testing.T, v int, n int) state.BeaconState {
	st, err := state_native.InitializeDefault(v)
	require.NoError(t, err)
	m := st.ToMutable()
	for i := 0; i < n; i++ {
		require.NoError(t, m.AppendValidator(validator(byte(i))))
		require.NoError(t, m.AppendBalance(32e9+uint64(i)))
	}
	st, err = m.Commit()
	require.NoError(t, err)
	return st
}

func TestSchemaForVersion_FieldCounts(t *testing.T) {
	tests := []struct {
		version int
		fields  int
	}{
		{version.Phase0, 21},
		{version.Altair, 24},
		{version.Bellatrix, 25},
		{version.Capella, 28},
		{version.Deneb, 28},
		{version.Electra, 29},
	}
	for _, tt := range tests {
		t.Run(version.String(tt.version), func(t *testing.T) {
			s, err := state_native.SchemaForVersion(tt.version)
			require.NoError(t, err)
			assert.Equal(t, tt.fields, s.FieldCount())
		})
	}
	_, err := state_native.SchemaForVersion(99)
	assert.ErrorIs(t, err, interfaces.ErrUnsupportedVersion)
}

func TestInitializeDefault_ForkMonotonicity(t *testing.T) {
	for _, v := range version.All() {
		t.Run(version.String(v), func(t *testing.T) {
			st, err := state_native.InitializeDefault(v)
			require.NoError(t, err)
			assert.Equal(t, v, st.Version())

			_, ok := st.ToVersionPhase0()
			assert.True(t, ok)
			_, ok = st.ToVersionAltair()
			assert.Equal(t, v >= version.Altair, ok)
			_, ok = st.ToVersionBellatrix()
			assert.Equal(t, v >= version.Bellatrix, ok)
			_, ok = st.ToVersionCapella()
			assert.Equal(t, v >= version.Capella, ok)
			_, ok = st.ToVersionDeneb()
			assert.Equal(t, v >= version.Deneb, ok)
			_, ok = st.ToVersionElectra()
			assert.Equal(t, v >= version.Electra, ok)

			_, err = state.RequirePendingAttestations(st)
			assert.Equal(t, v == version.Phase0, err == nil)

			m := st.ToMutable()
			_, ok = m.ToMutableVersionPhase0()
			assert.True(t, ok)
			_, ok = m.ToMutableVersionAltair()
			assert.Equal(t, v >= version.Altair, ok)
			_, ok = m.ToMutableVersionElectra()
			assert.Equal(t, v >= version.Electra, ok)
		})
	}
}

func TestRequire_UnsupportedVersion(t *testing.T) {
	st, err := state_native.InitializeDefault(version.Capella)
	require.NoError(t, err)

	_, err = state.RequireCapella(st)
	require.NoError(t, err)
	_, err = state.RequireElectra(st)
	var uv *interfaces.UnsupportedVersionError
	require.ErrorAs(t, err, &uv)
	assert.Equal(t, version.Capella, uv.Actual)
	assert.Equal(t, version.Electra, uv.Expected)

	_, err = state.RequireMutableElectra(st.ToMutable())
	assert.ErrorIs(t, err, interfaces.ErrUnsupportedVersion)
}

func TestMutableState_SettersAndGetters(t *testing.T) {
	st := withValidators(t, version.Electra, 3)
	m := st.ToMutable()

	require.NoError(t, m.SetGenesisTime(1606824023))
	require.NoError(t, m.SetSlot(100))
	require.NoError(t, m.SetFork(&params.Fork{PreviousVersion: [4]byte{4}, CurrentVersion: [4]byte{5}, Epoch: 3}))
	require.NoError(t, m.UpdateBalancesAtIndex(1, 31e9))
	require.NoError(t, m.UpdateRandaoMixesAtIndex(7, [32]byte{0xaa}))
	require.NoError(t, m.UpdateBlockRootAtIndex(2, [32]byte{0xbb}))
	require.NoError(t, m.UpdateSlashingsAtIndex(1, 5))
	require.NoError(t, m.SetJustificationBits(bitfield.Bitvector4{0b0101}))
	require.NoError(t, m.SetFinalizedCheckpoint(&state.Checkpoint{Epoch: 2, Root: [32]byte{0xcc}}))
	require.NoError(t, m.AppendEth1DataVotes(&state.Eth1Data{DepositCount: 9}))
	slashed := validator(1)
	slashed.Slashed = true
	require.NoError(t, m.UpdateValidatorAtIndex(1, slashed))

	em, err := state.RequireMutableElectra(m)
	require.NoError(t, err)
	require.NoError(t, em.SetDepositReceiptsStartIndex(42))
	require.NoError(t, em.SetNextWithdrawalIndex(6))
	require.NoError(t, em.AppendHistoricalSummaries(&state.HistoricalSummary{BlockSummaryRoot: [32]byte{1}}))
	require.NoError(t, em.AppendInactivityScore(3))

	got, err := m.Commit()
	require.NoError(t, err)

	assert.Equal(t, uint64(1606824023), got.GenesisTime())
	assert.Equal(t, primitives.Slot(100), got.Slot())
	assert.Equal(t, [4]byte{5}, got.Fork().CurrentVersion)
	assert.Equal(t, []uint64{32e9, 31e9, 32e9 + 2}, got.Balances())
	mix, err := got.RandaoMixAtIndex(7)
	require.NoError(t, err)
	assert.Equal(t, [32]byte{0xaa}, mix)
	root, err := got.BlockRootAtIndex(2)
	require.NoError(t, err)
	assert.Equal(t, [32]byte{0xbb}, root)
	sl, err := got.SlashingAtIndex(1)
	require.NoError(t, err)
	assert.Equal(t, primitives.Gwei(5), sl)
	assert.Equal(t, bitfield.Bitvector4{0b0101}, got.JustificationBits())
	assert.Equal(t, &state.Checkpoint{Epoch: 2, Root: [32]byte{0xcc}}, got.FinalizedCheckpoint())
	require.Len(t, got.Eth1DataVotes(), 1)
	assert.Equal(t, uint64(9), got.Eth1DataVotes()[0].DepositCount)
	val, err := got.ValidatorAtIndex(1)
	require.NoError(t, err)
	assert.Equal(t, slashed, val)

	e, err := state.RequireElectra(got)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), e.DepositReceiptsStartIndex())
	assert.Equal(t, uint64(6), e.NextWithdrawalIndex())
	assert.Equal(t, []*state.HistoricalSummary{{BlockSummaryRoot: [32]byte{1}}}, e.HistoricalSummaries())
	assert.Equal(t, []uint64{3}, e.InactivityScores())

	// The original is untouched.
	assert.Equal(t, primitives.Slot(0), st.Slot())
	assert.Equal(t, []uint64{32e9, 32e9 + 1, 32e9 + 2}, st.Balances())
}

func TestMutableState_SharesUntouchedFields(t *testing.T) {
	st := withValidators(t, version.Deneb, 4)
	m := st.ToMutable()
	require.NoError(t, m.SetSlot(9))
	require.NoError(t, m.UpdateBalancesAtIndex(0, 1))
	got, err := m.Commit()
	require.NoError(t, err)

	for _, name := range []string{"validators", "randao_mixes", "block_roots", "latest_execution_payload_header"} {
		assert.Same(t, fieldOf(t, st, name).BackingNode(), fieldOf(t, got, name).BackingNode(), name)
	}
	assert.NotEqual(t, fieldOf(t, st, "balances").HashTreeRoot(), fieldOf(t, got, "balances").HashTreeRoot())
}

func TestMutableState_CommitOnce(t *testing.T) {
	st, err := state_native.InitializeDefault(version.Altair)
	require.NoError(t, err)
	m := st.ToMutable()
	require.NoError(t, m.AppendBalance(1))
	_, err = m.Commit()
	require.NoError(t, err)

	_, err = m.Commit()
	assert.ErrorIs(t, err, schema.ErrAlreadyCommitted)
	assert.ErrorIs(t, m.SetSlot(1), schema.ErrAlreadyCommitted)
	assert.ErrorIs(t, m.AppendBalance(2), schema.ErrAlreadyCommitted)
}

func TestMutableState_Errors(t *testing.T) {
	st := withValidators(t, version.Bellatrix, 1)
	m := st.ToMutable()

	assert.ErrorIs(t, m.UpdateBalancesAtIndex(5, 1), schema.ErrIndexOutOfRange)
	assert.ErrorIs(t, m.UpdateRandaoMixesAtIndex(1<<20, [32]byte{}), schema.ErrIndexOutOfRange)
	assert.Error(t, m.SetFinalizedCheckpoint(nil))

	bm, err := state.RequireMutableBellatrix(m)
	require.NoError(t, err)
	capellaHeader, err := blocks.DefaultExecutionPayloadHeader(version.Capella)
	require.NoError(t, err)
	assert.ErrorIs(t, bm.SetLatestExecutionPayloadHeader(capellaHeader), interfaces.ErrUnsupportedVersion)

	header, err := blocks.DefaultExecutionPayloadHeader(version.Bellatrix)
	require.NoError(t, err)
	require.NoError(t, bm.SetLatestExecutionPayloadHeader(header))
}

func TestPhase0_PendingAttestations(t *testing.T) {
	st, err := state_native.InitializeDefault(version.Phase0)
	require.NoError(t, err)
	m := st.ToMutable()
	p0, err := state.RequireMutablePendingAttestations(m)
	require.NoError(t, err)

	att := &state.PendingAttestation{
		AggregationBits: bitfield.Bitlist{0b1101},
		Data: state.AttestationData{
			Slot:   3,
			Target: state.Checkpoint{Epoch: 1, Root: [32]byte{7}},
		},
		InclusionDelay: 1,
		ProposerIndex:  2,
	}
	require.NoError(t, p0.AppendCurrentEpochAttestations(att))
	got, err := m.Commit()
	require.NoError(t, err)

	ps, err := state.RequirePendingAttestations(got)
	require.NoError(t, err)
	require.Len(t, ps.CurrentEpochAttestations(), 1)
	assert.Equal(t, att, ps.CurrentEpochAttestations()[0])
	assert.Empty(t, ps.PreviousEpochAttestations())
}

func TestUnmarshalState_DetectsFork(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	cfg := params.BeaconConfig()
	for _, v := range version.All() {
		t.Run(version.String(v), func(t *testing.T) {
			fv, err := cfg.ForkVersionBytes(v)
			require.NoError(t, err)
			st := withValidators(t, v, 2)
			m := st.ToMutable()
			require.NoError(t, m.SetFork(&params.Fork{CurrentVersion: fv}))
			st, err = m.Commit()
			require.NoError(t, err)

			enc, err := st.MarshalSSZ()
			require.NoError(t, err)
			got, err := state_native.UnmarshalState(enc)
			require.NoError(t, err)
			assert.Equal(t, v, got.Version())
			assert.Equal(t, st.HashTreeRoot(), got.HashTreeRoot())
		})
	}
}

func TestUnmarshalState_Errors(t *testing.T) {
	_, err := state_native.UnmarshalState([]byte{1, 2, 3})
	assert.ErrorIs(t, err, schema.ErrMalformedEncoding)

	enc := make([]byte, 64)
	copy(enc[52:56], []byte{0xde, 0xad, 0xbe, 0xef})
	_, err = state_native.UnmarshalState(enc)
	assert.Error(t, err)
}

func TestUpgradeToNextVersion(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	cfg := params.BeaconConfig()

	st := withValidators(t, version.Phase0, 2)
	m := st.ToMutable()
	require.NoError(t, m.SetSlot(primitives.Slot(3*cfg.SlotsPerEpoch)))
	st, err := m.Commit()
	require.NoError(t, err)

	altair, err := state_native.UpgradeToNextVersion(cfg, st)
	require.NoError(t, err)
	assert.Equal(t, version.Altair, altair.Version())
	assert.Same(t, fieldOf(t, st, "validators").BackingNode(), fieldOf(t, altair, "validators").BackingNode())
	a, err := state.RequireAltair(altair)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0}, a.CurrentEpochParticipation())
	assert.Equal(t, []uint64{0, 0}, a.InactivityScores())
	altairVersion, err := cfg.ForkVersionBytes(version.Altair)
	require.NoError(t, err)
	assert.Equal(t, &params.Fork{CurrentVersion: altairVersion, Epoch: 3}, altair.Fork())

	cur := altair
	for cur.Version() != version.Latest() {
		cur, err = state_native.UpgradeToNextVersion(cfg, cur)
		require.NoError(t, err)
	}
	e, err := state.RequireElectra(cur)
	require.NoError(t, err)
	assert.Equal(t, cfg.UnsetDepositReceiptsStartIndex, e.DepositReceiptsStartIndex())
	assert.Equal(t, version.Electra, e.LatestExecutionPayloadHeader().Version())
	assert.Equal(t, st.Balances(), e.Balances())

	_, err = state_native.UpgradeToNextVersion(cfg, cur)
	assert.Error(t, err)
}

func TestUpgradeToNextVersion_CarriesPayloadHeader(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	cfg := params.BeaconConfig()

	p, err := blocks.NewExecutionPayload(version.Capella, &blocks.ExecutionPayloadFields{
		BlockNumber:  12,
		GasLimit:     30_000_000,
		Transactions: [][]byte{{1}},
	})
	require.NoError(t, err)
	h, err := blocks.PayloadToHeader(p)
	require.NoError(t, err)

	st, err := state_native.InitializeDefault(version.Capella)
	require.NoError(t, err)
	m, err := state.RequireMutableCapella(st.ToMutable())
	require.NoError(t, err)
	require.NoError(t, m.SetLatestExecutionPayloadHeader(h))
	st, err = m.Commit()
	require.NoError(t, err)

	deneb, err := state_native.UpgradeToNextVersion(cfg, st)
	require.NoError(t, err)
	d, err := state.RequireDeneb(deneb)
	require.NoError(t, err)
	got := d.LatestExecutionPayloadHeader()
	assert.Equal(t, version.Deneb, got.Version())
	assert.Equal(t, uint64(12), got.BlockNumber())
	capellaHeader, ok := got.ToVersionCapella()
	require.True(t, ok)
	assert.Equal(t, h.(interfaces.ExecutionPayloadHeaderCapella).TransactionsRoot(), capellaHeader.TransactionsRoot())
}
