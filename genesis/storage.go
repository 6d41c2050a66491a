package genesis

import (
	"os"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/YoutacRandS-VA/teku/beacon-chain/state"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// ValidatorsRoot returns the genesis validators root.
func ValidatorsRoot() [32]byte {
	return getPkgVar().ValidatorsRoot
}

// Time returns the genesis time.
func Time() time.Time {
	return getPkgVar().Time
}

// State returns the genesis BeaconState, loading it from disk if only its
// file location is known. States are immutable so the value is shared.
func State() (state.BeaconState, error) {
	gd := getPkgVar()
	if !gd.initialized {
		return nil, ErrGenesisStateNotInitialized
	}
	if gd.State != nil {
		return gd.State, nil
	}
	return loadState()
}

// Store is an exported method that allows another package to set the genesis data value and persist it to fs.
// It is exported to be used by implementations of the Provider interface.
func Store(fs afero.Fs, d GenesisData) error {
	if err := ensureWritable(fs, d.FileDir); err != nil {
		return err
	}
	if err := persist(fs, d); err != nil {
		return errors.Wrap(err, "persist genesis data")
	}
	d.fs = fs
	setPkgVar(d, true)
	return nil
}

type fnamePart int

const (
	genesisPart fnamePart = 0
	timePart    fnamePart = 1
	gvrPart     fnamePart = 2
)

// data is a private package level variable that holds the genesis data.
// Other packages interact with it via wrapper functions like Store() and State().
var data GenesisData
var stateMu sync.Mutex

// GenesisData bundles all the package level data. It is exported to allow implementations of the Provider interface to set genesis data.
type GenesisData struct {
	ValidatorsRoot [32]byte
	Time           time.Time
	FileDir        string
	State          state.BeaconState
	fs             afero.Fs
	initialized    bool
}

// FilePath returns the full path to the genesis state file.
func (d GenesisData) FilePath() string {
	parts := [3]string{}
	parts[genesisPart] = "genesis"
	parts[timePart] = strconv.FormatInt(d.Time.Unix(), 10)
	parts[gvrPart] = hexutil.Encode(d.ValidatorsRoot[:])
	return path.Join(d.FileDir, strings.Join(parts[:], "-")+".ssz")
}

func persist(fs afero.Fs, d GenesisData) error {
	if d.State == nil {
		return ErrGenesisStateNotInitialized
	}
	if d.FileDir == "" {
		return ErrFilePathUnset
	}
	fpath := d.FilePath()
	sb, err := d.State.MarshalSSZ()
	if err != nil {
		return errors.Wrap(err, "marshal ssz")
	}
	if err := afero.WriteFile(fs, fpath, sb, os.FileMode(0600)); err != nil {
		return errors.Wrapf(err, "error writing genesis state to %s", fpath)
	}
	log.WithField("filePath", fpath).Info("Genesis state written to disk")
	return nil
}

func getPkgVar() GenesisData {
	stateMu.Lock()
	defer stateMu.Unlock()
	return data
}

func setPkgVar(d GenesisData, initialized bool) {
	stateMu.Lock()
	defer stateMu.Unlock()
	d.initialized = initialized
	data = d
}

func loadState() (state.BeaconState, error) {
	stateMu.Lock()
	defer stateMu.Unlock()

	if data.fs == nil {
		return nil, ErrGenesisStateNotInitialized
	}
	s, err := stateFromFile(data.fs, data.FilePath())
	if err != nil {
		return nil, errors.Wrap(err, "load genesis state")
	}
	data.State = s
	return data.State, nil
}

func ensureWritable(fs afero.Fs, dir string) (err error) {
	if dir == "" {
		return ErrFilePathUnset
	}
	if err := fs.MkdirAll(dir, os.FileMode(0700)); err != nil {
		return errors.Wrapf(err, "error creating genesis data directory %s", dir)
	}
	lockPath := path.Join(dir, "genesis.lock")
	defer func() {
		if err == nil {
			err = fs.Remove(lockPath)
		}
	}()
	return afero.WriteFile(fs, lockPath, []byte{1}, os.FileMode(0600))
}
