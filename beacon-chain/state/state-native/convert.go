package state_native

import (
	"github.com/YoutacRandS-VA/teku/beacon-chain/state"
	"github.com/YoutacRandS-VA/teku/config/params"
	"github.com/YoutacRandS-VA/teku/consensus-types/primitives"
	"github.com/YoutacRandS-VA/teku/encoding/ssz/schema"
	"github.com/pkg/errors"
)

var errNilValue = errors.New("nil value")

func uint64Of(c *schema.Container, i int) uint64 {
	return uint64(schema.MustField[schema.Uint64](c, i))
}

func bytesOf(c *schema.Container, i int) []byte {
	return schema.MustField[*schema.ByteVector](c, i).Bytes()
}

func bytes32Of(v schema.Value) [32]byte {
	return [32]byte(v.(*schema.ByteVector).Bytes())
}

func forkValue(f *params.Fork) (schema.Value, error) {
	if f == nil {
		return nil, errors.Wrap(errNilValue, "fork")
	}
	prev, err := schema.NewByteVector(schema.Bytes4Schema, f.PreviousVersion[:])
	if err != nil {
		return nil, err
	}
	cur, err := schema.NewByteVector(schema.Bytes4Schema, f.CurrentVersion[:])
	if err != nil {
		return nil, err
	}
	return schema.NewContainer(ForkSchema, prev, cur, schema.Uint64(f.Epoch))
}

func forkFrom(v schema.Value) *params.Fork {
	c := v.(*schema.Container)
	return &params.Fork{
		PreviousVersion: [4]byte(bytesOf(c, 0)),
		CurrentVersion:  [4]byte(bytesOf(c, 1)),
		Epoch:           primitives.Epoch(uint64Of(c, 2)),
	}
}

func checkpointValue(cp *state.Checkpoint) (schema.Value, error) {
	if cp == nil {
		return nil, errors.Wrap(errNilValue, "checkpoint")
	}
	return schema.NewContainer(CheckpointSchema, schema.Uint64(cp.Epoch), schema.NewBytes32(cp.Root))
}

func checkpointFrom(v schema.Value) *state.Checkpoint {
	c := v.(*schema.Container)
	return &state.Checkpoint{
		Epoch: primitives.Epoch(uint64Of(c, 0)),
		Root:  [32]byte(bytesOf(c, 1)),
	}
}

func blockHeaderValue(h *state.BeaconBlockHeader) (schema.Value, error) {
	if h == nil {
		return nil, errors.Wrap(errNilValue, "block header")
	}
	return schema.NewContainer(BeaconBlockHeaderSchema,
		schema.Uint64(h.Slot),
		schema.Uint64(h.ProposerIndex),
		schema.NewBytes32(h.ParentRoot),
		schema.NewBytes32(h.StateRoot),
		schema.NewBytes32(h.BodyRoot),
	)
}

func blockHeaderFrom(v schema.Value) *state.BeaconBlockHeader {
	c := v.(*schema.Container)
	return &state.BeaconBlockHeader{
		Slot:          primitives.Slot(uint64Of(c, 0)),
		ProposerIndex: primitives.ValidatorIndex(uint64Of(c, 1)),
		ParentRoot:    [32]byte(bytesOf(c, 2)),
		StateRoot:     [32]byte(bytesOf(c, 3)),
		BodyRoot:      [32]byte(bytesOf(c, 4)),
	}
}

func eth1DataValue(d *state.Eth1Data) (schema.Value, error) {
	if d == nil {
		return nil, errors.Wrap(errNilValue, "eth1 data")
	}
	return schema.NewContainer(Eth1DataSchema,
		schema.NewBytes32(d.DepositRoot),
		schema.Uint64(d.DepositCount),
		schema.NewBytes32(d.BlockHash),
	)
}

func eth1DataFrom(v schema.Value) *state.Eth1Data {
	c := v.(*schema.Container)
	return &state.Eth1Data{
		DepositRoot:  [32]byte(bytesOf(c, 0)),
		DepositCount: uint64Of(c, 1),
		BlockHash:    [32]byte(bytesOf(c, 2)),
	}
}

// ValidatorValue converts a registry entry to its tree form.
func ValidatorValue(val *state.Validator) (schema.Value, error) {
	if val == nil {
		return nil, errors.Wrap(errNilValue, "validator")
	}
	pk, err := schema.NewByteVector(schema.Bytes48Schema, val.PublicKey[:])
	if err != nil {
		return nil, err
	}
	return schema.NewContainer(ValidatorSchema,
		pk,
		schema.NewBytes32(val.WithdrawalCredentials),
		schema.Uint64(val.EffectiveBalance),
		schema.Bool(val.Slashed),
		schema.Uint64(val.ActivationEligibilityEpoch),
		schema.Uint64(val.ActivationEpoch),
		schema.Uint64(val.ExitEpoch),
		schema.Uint64(val.WithdrawableEpoch),
	)
}

func validatorFrom(v schema.Value) *state.Validator {
	c := v.(*schema.Container)
	return &state.Validator{
		PublicKey:                  [48]byte(bytesOf(c, 0)),
		WithdrawalCredentials:      [32]byte(bytesOf(c, 1)),
		EffectiveBalance:           uint64Of(c, 2),
		Slashed:                    bool(schema.MustField[schema.Bool](c, 3)),
		ActivationEligibilityEpoch: primitives.Epoch(uint64Of(c, 4)),
		ActivationEpoch:            primitives.Epoch(uint64Of(c, 5)),
		ExitEpoch:                  primitives.Epoch(uint64Of(c, 6)),
		WithdrawableEpoch:          primitives.Epoch(uint64Of(c, 7)),
	}
}

func pendingAttestationValue(a *state.PendingAttestation) (schema.Value, error) {
	if a == nil {
		return nil, errors.Wrap(errNilValue, "pending attestation")
	}
	bits, err := schema.NewBitlist(AggregationBitsSchema, a.AggregationBits)
	if err != nil {
		return nil, errors.Wrap(err, "aggregation bits")
	}
	source, err := checkpointValue(&a.Data.Source)
	if err != nil {
		return nil, err
	}
	target, err := checkpointValue(&a.Data.Target)
	if err != nil {
		return nil, err
	}
	data, err := schema.NewContainer(AttestationDataSchema,
		schema.Uint64(a.Data.Slot),
		schema.Uint64(a.Data.CommitteeIndex),
		schema.NewBytes32(a.Data.BeaconBlockRoot),
		source,
		target,
	)
	if err != nil {
		return nil, err
	}
	return schema.NewContainer(PendingAttestationSchema, bits, data, schema.Uint64(a.InclusionDelay), schema.Uint64(a.ProposerIndex))
}

func pendingAttestationFrom(v schema.Value) *state.PendingAttestation {
	c := v.(*schema.Container)
	d := schema.MustField[*schema.Container](c, 1)
	return &state.PendingAttestation{
		AggregationBits: schema.MustField[*schema.Bitlist](c, 0).Bits(),
		Data: state.AttestationData{
			Slot:            primitives.Slot(uint64Of(d, 0)),
			CommitteeIndex:  uint64Of(d, 1),
			BeaconBlockRoot: [32]byte(bytesOf(d, 2)),
			Source:          *checkpointFrom(schema.MustField[*schema.Container](d, 3)),
			Target:          *checkpointFrom(schema.MustField[*schema.Container](d, 4)),
		},
		InclusionDelay: primitives.Slot(uint64Of(c, 2)),
		ProposerIndex:  primitives.ValidatorIndex(uint64Of(c, 3)),
	}
}

func syncCommitteeValue(sc *state.SyncCommittee) (schema.Value, error) {
	if sc == nil {
		return nil, errors.Wrap(errNilValue, "sync committee")
	}
	keys := make([]schema.Value, len(sc.Pubkeys))
	for i := range sc.Pubkeys {
		pk, err := schema.NewByteVector(schema.Bytes48Schema, sc.Pubkeys[i][:])
		if err != nil {
			return nil, err
		}
		keys[i] = pk
	}
	vs, err := SyncCommitteeSchema.FieldSchema(0)
	if err != nil {
		return nil, err
	}
	pubkeys, err := schema.NewVector(vs.(*schema.VectorSchema), keys)
	if err != nil {
		return nil, errors.Wrap(err, "sync committee pubkeys")
	}
	agg, err := schema.NewByteVector(schema.Bytes48Schema, sc.AggregatePubkey[:])
	if err != nil {
		return nil, err
	}
	return schema.NewContainer(SyncCommitteeSchema, pubkeys, agg)
}

func syncCommitteeFrom(v schema.Value) *state.SyncCommittee {
	c := v.(*schema.Container)
	elems := schema.MustField[*schema.Vector](c, 0).Elements()
	keys := make([][48]byte, len(elems))
	for i, e := range elems {
		keys[i] = [48]byte(e.(*schema.ByteVector).Bytes())
	}
	return &state.SyncCommittee{Pubkeys: keys, AggregatePubkey: [48]byte(bytesOf(c, 1))}
}

func historicalSummaryValue(h *state.HistoricalSummary) (schema.Value, error) {
	if h == nil {
		return nil, errors.Wrap(errNilValue, "historical summary")
	}
	return schema.NewContainer(HistoricalSummarySchema, schema.NewBytes32(h.BlockSummaryRoot), schema.NewBytes32(h.StateSummaryRoot))
}

func historicalSummaryFrom(v schema.Value) *state.HistoricalSummary {
	c := v.(*schema.Container)
	return &state.HistoricalSummary{
		BlockSummaryRoot: [32]byte(bytesOf(c, 0)),
		StateSummaryRoot: [32]byte(bytesOf(c, 1)),
	}
}
