package main

import (
	"encoding/json"
	"math/big"
	"time"

	"github.com/YoutacRandS-VA/teku/runtime/interop"
	"github.com/YoutacRandS-VA/teku/runtime/logging"
	"github.com/YoutacRandS-VA/teku/runtime/version"
	"github.com/ethereum/go-ethereum/core"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
)

// defaultBaseFee is the base fee of the execution genesis block built when no
// genesis.json is given.
const defaultBaseFee = 1_000_000_000

var genesisCmd = &cli.Command{
	Name:  "genesis",
	Usage: "write a genesis state with deterministic validators",
	Flags: []cli.Flag{
		forkFlag,
		numValidatorsFlag,
		execCredsFlag,
		genesisTimeFlag,
		gethGenesisFlag,
		outputFlag,
	},
	Action: genesisAction,
}

func executionGenesisBlock(c *cli.Context) (*types.Block, error) {
	path := c.Path(gethGenesisFlag.Name)
	if path == "" {
		return types.NewBlockWithHeader(&types.Header{
			Number:   big.NewInt(0),
			Time:     c.Uint64(genesisTimeFlag.Name),
			GasLimit: 30_000_000,
			BaseFee:  big.NewInt(defaultBaseFee),
		}), nil
	}
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read %s", path)
	}
	gen := &core.Genesis{}
	if err := json.Unmarshal(b, gen); err != nil {
		return nil, errors.Wrapf(err, "could not decode execution genesis %s", path)
	}
	return gen.ToBlock(), nil
}

func genesisAction(c *cli.Context) error {
	v := version.Latest()
	if f, ok, err := forkFromFlag(c); err != nil {
		return err
	} else if ok {
		v = f
	}
	gb, err := executionGenesisBlock(c)
	if err != nil {
		return err
	}
	t := c.Uint64(genesisTimeFlag.Name)
	switch {
	case t != 0:
	case gb.Time() != 0:
		t = gb.Time()
	default:
		t = uint64(time.Now().Unix()) // lint:ignore uintcast -- Unix time is positive.
	}
	st, err := interop.NewPreminedGenesis(c.Context, time.Unix(int64(t), 0), c.Uint64(numValidatorsFlag.Name), c.Uint64(execCredsFlag.Name), v, gb) // lint:ignore uintcast -- Genesis time fits in int64.
	if err != nil {
		return errors.Wrap(err, "could not generate genesis state")
	}
	b, err := st.MarshalSSZ()
	if err != nil {
		return err
	}
	out := c.Path(outputFlag.Name)
	if err := writeSSZ(out, b); err != nil {
		return err
	}
	log.WithFields(logging.ContainerFields(st)).WithFields(logrus.Fields{
		"path":       out,
		"validators": st.NumValidators(),
	}).Info("Wrote genesis state")
	return nil
}
