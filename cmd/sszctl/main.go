// Package main provides sszctl, a command line tool that hashes, queries and
// generates consensus containers encoded as SSZ.
package main

import (
	"fmt"
	"os"

	"github.com/YoutacRandS-VA/teku/config/params"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
)

var log = logrus.WithField("prefix", "sszctl")

// fs is the filesystem every command reads from and writes to.
var fs = afero.NewOsFs()

func newApp() *cli.App {
	return &cli.App{
		Name:  "sszctl",
		Usage: "inspect and generate SSZ encoded consensus containers",
		Flags: []cli.Flag{
			configFileFlag,
			minimalFlag,
			verbosityFlag,
		},
		Before: before,
		Commands: []*cli.Command{
			htrCmd,
			encodeCmd,
			queryCmd,
			genesisCmd,
			diffCmd,
			applyDiffCmd,
			initGenesisCmd,
		},
	}
}

func before(c *cli.Context) error {
	level, err := logrus.ParseLevel(c.String(verbosityFlag.Name))
	if err != nil {
		return errors.Wrap(err, "invalid verbosity")
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if c.Bool(minimalFlag.Name) {
		params.OverrideBeaconConfig(params.MinimalSpecConfig())
	}
	if p := c.String(configFileFlag.Name); p != "" {
		if _, err := params.LoadChainConfigFile(fs, p); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
