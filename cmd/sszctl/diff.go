package main

import (
	"github.com/YoutacRandS-VA/teku/consensus-types/hdiff"
	"github.com/YoutacRandS-VA/teku/runtime/logging"
	"github.com/YoutacRandS-VA/teku/runtime/version"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
)

var diffCmd = &cli.Command{
	Name:   "diff",
	Usage:  "write the field level diff between two states",
	Flags:  []cli.Flag{sourceFlag, targetFlag, outputFlag},
	Action: diffAction,
}

var applyDiffCmd = &cli.Command{
	Name:   "apply-diff",
	Usage:  "apply a diff written by the diff command to a state",
	Flags:  []cli.Flag{sourceFlag, diffFlag, outputFlag},
	Action: applyDiffAction,
}

func diffAction(c *cli.Context) error {
	source, err := readState(c.Path(sourceFlag.Name), 0, false)
	if err != nil {
		return errors.Wrap(err, "could not read source state")
	}
	target, err := readState(c.Path(targetFlag.Name), 0, false)
	if err != nil {
		return errors.Wrap(err, "could not read target state")
	}
	d, err := hdiff.Diff(c.Context, source, target)
	if err != nil {
		return err
	}
	out := c.Path(outputFlag.Name)
	if err := afero.WriteFile(fs, out, d.Serialize(), 0o600); err != nil {
		return errors.Wrapf(err, "could not write %s", out)
	}
	names := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		names[i] = f.Name
	}
	log.WithFields(logrus.Fields{
		"path":    out,
		"version": version.String(d.TargetVersion),
		"fields":  names,
	}).Info("Wrote state diff")
	return nil
}

func applyDiffAction(c *cli.Context) error {
	source, err := readState(c.Path(sourceFlag.Name), 0, false)
	if err != nil {
		return errors.Wrap(err, "could not read source state")
	}
	enc, err := afero.ReadFile(fs, c.Path(diffFlag.Name))
	if err != nil {
		return errors.Wrapf(err, "could not read %s", c.Path(diffFlag.Name))
	}
	d, err := hdiff.Deserialize(enc)
	if err != nil {
		return err
	}
	st, err := hdiff.ApplyDiff(c.Context, source, d)
	if err != nil {
		return err
	}
	b, err := st.MarshalSSZ()
	if err != nil {
		return err
	}
	out := c.Path(outputFlag.Name)
	if err := writeSSZ(out, b); err != nil {
		return err
	}
	log.WithFields(logging.ContainerFields(st)).WithField("path", out).Info("Wrote patched state")
	return nil
}
