package genesis

import (
	"github.com/YoutacRandS-VA/teku/beacon-chain/state"
	state_native "github.com/YoutacRandS-VA/teku/beacon-chain/state/state-native"
	"github.com/YoutacRandS-VA/teku/beacon-chain/state/stateutil"
	"github.com/YoutacRandS-VA/teku/config/params"
	"github.com/YoutacRandS-VA/teku/runtime/logging"
	"github.com/YoutacRandS-VA/teku/runtime/version"
	"github.com/pkg/errors"
)

// NewGenesisState builds the genesis state of fork v under the active config
// from a validator registry and its balances.
func NewGenesisState(v int, genesisTime uint64, validators []*state.Validator, balances []uint64) (state.BeaconState, error) {
	return NewGenesisStateWithConfig(params.BeaconConfig(), v, genesisTime, validators, balances)
}

// NewGenesisStateWithConfig is NewGenesisState under cfg. The fork of the
// state carries the version of v as both its previous and current version.
func NewGenesisStateWithConfig(cfg *params.BeaconChainConfig, v int, genesisTime uint64, validators []*state.Validator, balances []uint64) (state.BeaconState, error) {
	if len(validators) != len(balances) {
		return nil, errors.Errorf("got %d validators and %d balances", len(validators), len(balances))
	}
	fv, err := cfg.ForkVersionBytes(v)
	if err != nil {
		return nil, err
	}
	gvr, err := stateutil.ValidatorRegistryRoot(validators)
	if err != nil {
		return nil, errors.Wrap(err, "could not compute genesis validators root")
	}
	st, err := state_native.InitializeDefault(v)
	if err != nil {
		return nil, err
	}
	m := st.ToMutable()
	if err := m.SetGenesisTime(genesisTime); err != nil {
		return nil, err
	}
	if err := m.SetGenesisValidatorsRoot(gvr); err != nil {
		return nil, err
	}
	if err := m.SetFork(&params.Fork{PreviousVersion: fv, CurrentVersion: fv}); err != nil {
		return nil, err
	}
	altair, isAltair := m.ToMutableVersionAltair()
	for i, val := range validators {
		if err := m.AppendValidator(val); err != nil {
			return nil, errors.Wrapf(err, "validator %d", i)
		}
		if err := m.AppendBalance(balances[i]); err != nil {
			return nil, errors.Wrapf(err, "balance %d", i)
		}
		if !isAltair {
			continue
		}
		if err := altair.AppendPreviousParticipationBits(0); err != nil {
			return nil, err
		}
		if err := altair.AppendCurrentParticipationBits(0); err != nil {
			return nil, err
		}
		if err := altair.AppendInactivityScore(0); err != nil {
			return nil, err
		}
	}
	if electra, ok := m.ToMutableVersionElectra(); ok {
		if err := electra.SetDepositReceiptsStartIndex(cfg.UnsetDepositReceiptsStartIndex); err != nil {
			return nil, err
		}
	}
	st, err = m.Commit()
	if err != nil {
		return nil, err
	}
	log.WithFields(logging.ContainerFields(st)).WithField("validators", len(validators)).Debugf("Built %s genesis state", version.String(v))
	return st, nil
}
