package main

import (
	"fmt"

	"github.com/YoutacRandS-VA/teku/genesis"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var (
	// genesisStateFlag names the genesis state file used when the data directory has none.
	genesisStateFlag = &cli.PathFlag{
		Name:  "genesis-state",
		Usage: "Load a genesis state from an .ssz or .ssz_snappy file when the data directory holds none.",
	}
	dataDirFlag = &cli.PathFlag{
		Name:     "datadir",
		Usage:    "Directory the genesis state is persisted in.",
		Required: true,
	}
)

var initGenesisCmd = &cli.Command{
	Name:   "init-genesis",
	Usage:  "persist a genesis state into a data directory and print its identity",
	Flags:  []cli.Flag{genesisStateFlag, dataDirFlag},
	Action: initGenesisAction,
}

// genesisProviders handles options for customizing the source of the genesis state.
func genesisProviders(c *cli.Context) ([]genesis.Provider, error) {
	statePath := c.Path(genesisStateFlag.Name)
	if statePath == "" {
		return nil, nil
	}
	p, err := genesis.NewFileProvider(fs, statePath)
	if err != nil {
		return nil, errors.Wrap(err, "error preparing to initialize genesis state from local ssz files")
	}
	return []genesis.Provider{p}, nil
}

func initGenesisAction(c *cli.Context) error {
	providers, err := genesisProviders(c)
	if err != nil {
		return err
	}
	if err := genesis.Initialize(c.Context, fs, c.Path(dataDirFlag.Name), providers...); err != nil {
		return errors.Wrap(err, "could not initialize genesis")
	}
	st, err := genesis.State()
	if err != nil {
		return err
	}
	w := c.App.Writer
	fmt.Fprintf(w, "genesis_time: %d\n", genesis.Time().Unix())
	fmt.Fprintf(w, "genesis_validators_root: %#x\n", genesis.ValidatorsRoot())
	fmt.Fprintf(w, "state_root: %#x\n", st.HashTreeRoot())
	return nil
}
