package main

import (
	"fmt"

	"github.com/YoutacRandS-VA/teku/encoding/ssz/query"
	"github.com/urfave/cli/v2"
)

var queryCmd = &cli.Command{
	Name:   "query",
	Usage:  "print the generalized index, leaf and merkle branch of a field path",
	Flags:  []cli.Flag{inputFlag, typeFlag, forkFlag, encodingFlag, pathFlag},
	Action: queryAction,
}

func queryAction(c *cli.Context) error {
	v, err := decodeInput(c)
	if err != nil {
		return err
	}
	p, err := query.Prove(v, c.String(pathFlag.Name))
	if err != nil {
		return err
	}
	w := c.App.Writer
	fmt.Fprintf(w, "root:   %#x\n", v.HashTreeRoot())
	fmt.Fprintf(w, "gindex: %d\n", p.GIndex)
	fmt.Fprintf(w, "leaf:   %#x\n", p.Leaf)
	for i, b := range p.Branch {
		fmt.Fprintf(w, "branch[%d]: %#x\n", i, b)
	}
	return nil
}
