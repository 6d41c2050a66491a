package genesis

import (
	"context"
	"strings"

	"github.com/YoutacRandS-VA/teku/beacon-chain/state"
	state_native "github.com/YoutacRandS-VA/teku/beacon-chain/state/state-native"
	"github.com/golang/snappy"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// SnappyExtension marks a genesis file compressed with snappy block encoding.
const SnappyExtension = ".ssz_snappy"

// Provider is a type that can provide the genesis state for the initialization of the genesis package.
// Examples are reading it from a file or building it from a validator set.
type Provider interface {
	Genesis(context.Context) (state.BeaconState, error)
}

var _ Provider = &FileProvider{}
var _ Provider = StateProvider{}

// FileProvider provides the genesis state by reading the given ssz-encoded
// beacon state file. Files ending in .ssz_snappy are decompressed first.
type FileProvider struct {
	fs        afero.Fs
	statePath string
}

// NewFileProvider validates the given path information and creates a Provider which sources
// the genesis state from an ssz-encoded file on fs.
func NewFileProvider(fs afero.Fs, statePath string) (*FileProvider, error) {
	if err := existsAndIsFile(fs, statePath); err != nil {
		return nil, err
	}
	return &FileProvider{fs: fs, statePath: statePath}, nil
}

// Genesis satisfies the Provider interface by reading the genesis state from a file and unmarshaling it.
func (fi *FileProvider) Genesis(_ context.Context) (state.BeaconState, error) {
	return stateFromFile(fi.fs, fi.statePath)
}

// StateProvider provides a genesis state already held in memory.
type StateProvider struct {
	State state.BeaconState
}

func (p StateProvider) Genesis(_ context.Context) (state.BeaconState, error) {
	if p.State == nil {
		return nil, ErrGenesisStateNotInitialized
	}
	return p.State, nil
}

func existsAndIsFile(fs afero.Fs, path string) error {
	info, err := fs.Stat(path)
	if err != nil {
		return errors.Wrapf(ErrGenesisFileNotFound, "%s: %v", path, err)
	}
	if info.IsDir() {
		return errors.Errorf("%s is a directory, please specify full path to file", path)
	}
	return nil
}

func stateFromFile(fs afero.Fs, fpath string) (state.BeaconState, error) {
	sb, err := afero.ReadFile(fs, fpath)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading genesis state from %s", fpath)
	}
	if strings.HasSuffix(fpath, SnappyExtension) {
		if sb, err = snappy.Decode(nil /*dst*/, sb); err != nil {
			return nil, errors.Wrapf(err, "could not decompress genesis state %s", fpath)
		}
	}
	return state_native.UnmarshalState(sb)
}
