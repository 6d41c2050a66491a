package state_native

import (
	"github.com/YoutacRandS-VA/teku/beacon-chain/state"
	"github.com/YoutacRandS-VA/teku/config/params"
	"github.com/YoutacRandS-VA/teku/consensus-types/interfaces"
	"github.com/YoutacRandS-VA/teku/encoding/ssz/schema"
	"github.com/YoutacRandS-VA/teku/runtime/version"
	"github.com/YoutacRandS-VA/teku/time/slots"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "state-native")

// forkVersionOffset is the offset of fork.current_version in every state
// encoding: genesis_time, genesis_validators_root, slot, fork.previous_version.
const forkVersionOffset = 8 + 32 + 8 + 4

// SchemaForVersion returns the beacon state schema of fork v.
func SchemaForVersion(v int) (*schema.ContainerSchema, error) {
	switch v {
	case version.Phase0:
		return BeaconStatePhase0Schema, nil
	case version.Altair:
		return BeaconStateAltairSchema, nil
	case version.Bellatrix:
		return BeaconStateBellatrixSchema, nil
	case version.Capella:
		return BeaconStateCapellaSchema, nil
	case version.Deneb:
		return BeaconStateDenebSchema, nil
	case version.Electra:
		return BeaconStateElectraSchema, nil
	default:
		return nil, interfaces.NewUnsupportedVersionError(v, version.Phase0)
	}
}

// InitializeDefault returns the all zero state of fork v.
func InitializeDefault(v int) (state.BeaconState, error) {
	s, err := SchemaForVersion(v)
	if err != nil {
		return nil, err
	}
	return s.Default().(state.BeaconState), nil
}

// UnmarshalState decodes a state of any fork, detecting the fork from the
// encoded fork.current_version under the active config.
func UnmarshalState(b []byte) (state.BeaconState, error) {
	return UnmarshalStateWithConfig(params.BeaconConfig(), b)
}

// UnmarshalStateWithConfig decodes a state, detecting the fork under cfg.
func UnmarshalStateWithConfig(cfg *params.BeaconChainConfig, b []byte) (state.BeaconState, error) {
	if len(b) < forkVersionOffset+4 {
		return nil, errors.Wrapf(schema.ErrMalformedEncoding, "state of %d bytes is too short to carry a fork", len(b))
	}
	v, err := cfg.VersionFromForkVersionBytes([4]byte(b[forkVersionOffset : forkVersionOffset+4]))
	if err != nil {
		return nil, errors.Wrap(err, "could not detect state fork")
	}
	return UnmarshalStateForVersion(v, b)
}

// UnmarshalStateForVersion decodes a state of fork v.
func UnmarshalStateForVersion(v int, b []byte) (state.BeaconState, error) {
	s, err := SchemaForVersion(v)
	if err != nil {
		return nil, err
	}
	st, err := s.Decode(b)
	if err != nil {
		return nil, errors.Wrapf(err, "could not decode %s state", version.String(v))
	}
	return st.(state.BeaconState), nil
}

// UpgradeToNextVersion returns st as a state of the following fork. Fields
// the forks share keep their subtrees, containers that changed shape are
// copied field by field and new fields take their fork defaults.
func UpgradeToNextVersion(cfg *params.BeaconChainConfig, st state.BeaconState) (state.BeaconState, error) {
	next, ok := version.Next(st.Version())
	if !ok {
		return nil, errors.Errorf("no fork follows %s", version.String(st.Version()))
	}
	ts, err := SchemaForVersion(next)
	if err != nil {
		return nil, err
	}
	overrides, err := upgradeOverrides(cfg, st, next)
	if err != nil {
		return nil, err
	}
	src, ok := st.(namedContainer)
	if !ok {
		return nil, errors.Errorf("state %T is not tree backed", st)
	}
	values, err := carryFields(src, ts, overrides)
	if err != nil {
		return nil, err
	}
	out, err := schema.NewContainer(ts, values...)
	if err != nil {
		return nil, errors.Wrapf(err, "could not build %s state", version.String(next))
	}
	log.WithFields(logrus.Fields{
		"from": version.String(st.Version()),
		"to":   version.String(next),
		"slot": st.Slot(),
	}).Debug("Upgraded beacon state")
	return out.(state.BeaconState), nil
}

func upgradeOverrides(cfg *params.BeaconChainConfig, st state.BeaconState, next int) (map[string]schema.Value, error) {
	cur, err := cfg.ForkVersionBytes(next)
	if err != nil {
		return nil, err
	}
	f, err := forkValue(&params.Fork{
		PreviousVersion: st.Fork().CurrentVersion,
		CurrentVersion:  cur,
		Epoch:           slots.ToEpochWithConfig(cfg, st.Slot()),
	})
	if err != nil {
		return nil, err
	}
	out := map[string]schema.Value{fork: f}
	switch next {
	case version.Altair:
		n := st.NumValidators()
		flags := make([]schema.Value, n)
		scores := make([]schema.Value, n)
		for i := 0; i < n; i++ {
			flags[i] = schema.Uint8(0)
			scores[i] = schema.Uint64(0)
		}
		prev, err := schema.NewList(participationSchema, flags)
		if err != nil {
			return nil, err
		}
		curr, err := schema.NewList(participationSchema, flags)
		if err != nil {
			return nil, err
		}
		inactivity, err := schema.NewList(inactivityScoresSchema, scores)
		if err != nil {
			return nil, err
		}
		out[previousEpochParticipation] = prev
		out[currentEpochParticipation] = curr
		out[inactivityScores] = inactivity
	case version.Electra:
		out[depositReceiptsStartIndex] = schema.Uint64(cfg.UnsetDepositReceiptsStartIndex)
	}
	return out, nil
}

type namedContainer interface {
	schema.Value
	ContainerSchema() *schema.ContainerSchema
	GetByName(name string) (schema.Value, error)
}

// convert rewraps v under target, copying containers by field name when
// their shapes differ.
func convert(v schema.Value, target schema.Schema) (schema.Value, error) {
	if target.Equal(v.Schema()) {
		return target.CreateFromBackingNode(v.BackingNode()), nil
	}
	ts, ok := target.(*schema.ContainerSchema)
	if !ok {
		return nil, errors.Wrapf(schema.ErrSchemaMismatch, "cannot convert %s to %s", v.Schema(), target)
	}
	src, ok := v.(namedContainer)
	if !ok {
		return nil, errors.Wrapf(schema.ErrSchemaMismatch, "cannot convert %s to %s", v.Schema(), target)
	}
	values, err := carryFields(src, ts, nil)
	if err != nil {
		return nil, err
	}
	return schema.NewContainer(ts, values...)
}

// carryFields returns one value per field of ts: the override when present,
// else the converted field of src with the same name, else the default.
func carryFields(src namedContainer, ts *schema.ContainerSchema, overrides map[string]schema.Value) ([]schema.Value, error) {
	values := make([]schema.Value, ts.FieldCount())
	for i, f := range ts.Fields() {
		if v, ok := overrides[f.Name]; ok {
			values[i] = v
			continue
		}
		fv, err := src.GetByName(f.Name)
		if errors.Is(err, schema.ErrUnknownField) {
			values[i] = f.Schema.Default()
			continue
		}
		if err != nil {
			return nil, err
		}
		if values[i], err = convert(fv, f.Schema); err != nil {
			return nil, errors.Wrapf(err, "%s.%s", ts.Name(), f.Name)
		}
	}
	return values, nil
}
