package main

import (
	"strings"

	"github.com/YoutacRandS-VA/teku/runtime/version"
	"github.com/urfave/cli/v2"
)

var (
	configFileFlag = &cli.PathFlag{
		Name:  "config-file",
		Usage: "Chain config YAML overriding the preset selected by its PRESET_BASE.",
	}
	minimalFlag = &cli.BoolFlag{
		Name:  "minimal",
		Usage: "Use the minimal preset instead of mainnet.",
	}
	verbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity (trace, debug, info, warn, error, fatal, panic).",
		Value: "info",
	}
	forkFlag = &cli.StringFlag{
		Name:  "fork",
		Usage: "Fork of the encoded container. States detect it from their fork field when unset.",
	}
	typeFlag = &cli.StringFlag{
		Name:  "type",
		Usage: "Container type: " + strings.Join(typeNames, ", ") + ".",
		Value: typeState,
	}
	inputFlag = &cli.PathFlag{
		Name:     "input",
		Usage:    "SSZ file to read. Files ending in .ssz_snappy are snappy compressed.",
		Required: true,
	}
	encodingFlag = &cli.StringFlag{
		Name:  "encoding",
		Usage: "Input encoding: raw, gossip (snappy block) or chunk (length prefixed snappy frames).",
		Value: encodingRaw,
	}
	outputEncodingFlag = &cli.StringFlag{
		Name:  "output-encoding",
		Usage: "Output encoding: raw, gossip or chunk.",
		Value: encodingGossip,
	}
	pathFlag = &cli.StringFlag{
		Name:     "path",
		Usage:    "Field path to prove, for example .validators[3].effective_balance.",
		Required: true,
	}
	outputFlag = &cli.PathFlag{
		Name:     "output",
		Usage:    "File to write. Files ending in .ssz_snappy are snappy compressed.",
		Required: true,
	}
	numValidatorsFlag = &cli.Uint64Flag{
		Name:  "num-validators",
		Usage: "Number of deterministic validators in the genesis state.",
		Value: 64,
	}
	execCredsFlag = &cli.Uint64Flag{
		Name:  "num-execution-withdrawal-credentials",
		Usage: "Number of leading validators given execution withdrawal credentials.",
	}
	genesisTimeFlag = &cli.Uint64Flag{
		Name:  "genesis-time",
		Usage: "Unix genesis time. Defaults to the execution genesis timestamp, or now.",
	}
	gethGenesisFlag = &cli.PathFlag{
		Name:  "geth-genesis-json-in",
		Usage: "Execution layer genesis.json. Required from bellatrix on for a real network.",
	}
	sourceFlag = &cli.PathFlag{
		Name:     "source",
		Usage:    "State the diff starts from.",
		Required: true,
	}
	targetFlag = &cli.PathFlag{
		Name:     "target",
		Usage:    "State the diff leads to.",
		Required: true,
	}
	diffFlag = &cli.PathFlag{
		Name:     "diff",
		Usage:    "Serialized state diff.",
		Required: true,
	}
)

func forkFromFlag(c *cli.Context) (int, bool, error) {
	name := c.String(forkFlag.Name)
	if name == "" {
		return 0, false, nil
	}
	v, err := version.FromString(name)
	return v, err == nil, err
}
