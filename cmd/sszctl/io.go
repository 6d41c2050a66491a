package main

import (
	"strings"

	"github.com/YoutacRandS-VA/teku/beacon-chain/state"
	state_native "github.com/YoutacRandS-VA/teku/beacon-chain/state/state-native"
	"github.com/YoutacRandS-VA/teku/genesis"
	"github.com/golang/snappy"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

func readSSZ(path string) ([]byte, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read %s", path)
	}
	if strings.HasSuffix(path, genesis.SnappyExtension) {
		if b, err = snappy.Decode(nil /*dst*/, b); err != nil {
			return nil, errors.Wrapf(err, "could not decompress %s", path)
		}
	}
	return b, nil
}

func writeSSZ(path string, b []byte) error {
	if strings.HasSuffix(path, genesis.SnappyExtension) {
		b = snappy.Encode(nil /*dst*/, b)
	}
	return errors.Wrapf(afero.WriteFile(fs, path, b, 0o600), "could not write %s", path)
}

func readState(path string, fork int, forkSet bool) (state.BeaconState, error) {
	b, err := readSSZ(path)
	if err != nil {
		return nil, err
	}
	if forkSet {
		return state_native.UnmarshalStateForVersion(fork, b)
	}
	return state_native.UnmarshalState(b)
}
