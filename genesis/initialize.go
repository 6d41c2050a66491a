package genesis

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/YoutacRandS-VA/teku/beacon-chain/state"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Initialize is mainly exported for the node initialization process to specify providers of the genesis data
// and the location of the local storage on fs. A genesis file already in dir wins over the providers; the
// first provider that succeeds is persisted to dir.
func Initialize(ctx context.Context, fs afero.Fs, dir string, providers ...Provider) error {
	gd, err := FindStateFile(fs, dir)
	if err == nil {
		gd.fs = fs
		setPkgVar(gd, true)
		return nil
	}
	if !errors.Is(err, ErrGenesisFileNotFound) {
		return err
	}
	return initializeFromProviders(ctx, fs, dir, providers...)
}

func initializeFromProviders(ctx context.Context, fs afero.Fs, dir string, providers ...Provider) error {
	for _, get := range providers {
		gs, err := get.Genesis(ctx)
		if err != nil {
			log.WithError(err).WithField("provider", fmt.Sprintf("%T", get)).Warn("Genesis provider failed")
			continue
		}
		gd, err := newGenesisData(gs, dir)
		if err != nil {
			return errors.Wrapf(err, "new genesis data")
		}
		return Store(fs, gd)
	}
	return ErrGenesisStateNotInitialized
}

func newGenesisData(st state.BeaconState, dir string) (GenesisData, error) {
	if st == nil {
		return GenesisData{}, ErrGenesisStateNotInitialized
	}
	if dir == "" {
		return GenesisData{}, ErrFilePathUnset
	}
	return GenesisData{
		FileDir:        dir,
		State:          st,
		ValidatorsRoot: st.GenesisValidatorsRoot(),
		Time:           time.Unix(int64(st.GenesisTime()), 0), // lint:ignore uintcast -- Genesis times fit in int64.
	}, nil
}

// FindStateFile searches for a valid genesis state file in the specified directory.
func FindStateFile(fs afero.Fs, dir string) (GenesisData, error) {
	if dir == "" {
		return GenesisData{}, ErrFilePathUnset
	}
	files, err := afero.ReadDir(fs, dir)
	if err != nil {
		return GenesisData{}, errors.Wrapf(ErrGenesisFileNotFound, "%v", err)
	}
	for _, f := range files {
		gd, err := tryParseFname(dir, f)
		if err != nil {
			continue
		}
		return gd, nil
	}
	return GenesisData{}, ErrGenesisFileNotFound
}

func tryParseFname(dir string, f os.FileInfo) (GenesisData, error) {
	gd := GenesisData{FileDir: dir}
	if f.IsDir() {
		return gd, ErrNotGenesisStateFile
	}
	extParts := strings.Split(f.Name(), ".")
	if len(extParts) != 2 || extParts[1] != "ssz" {
		return gd, ErrNotGenesisStateFile
	}
	parts := strings.Split(extParts[0], "-")
	if len(parts) != 3 || parts[genesisPart] != "genesis" {
		return gd, ErrNotGenesisStateFile
	}
	ts, err := strconv.ParseInt(parts[timePart], 10, 64)
	if err != nil {
		return gd, errors.Wrap(err, "parse genesis time")
	}
	if ts < 0 {
		return gd, errors.New("genesis time cannot be negative")
	}
	gd.Time = time.Unix(ts, 0)
	if err := hexutil.UnmarshalFixedText("genesis_validators_root", []byte(parts[gvrPart]), gd.ValidatorsRoot[:]); err != nil {
		return gd, errors.Wrap(err, "unmarshal genesis validators root")
	}
	return gd, nil
}
