package main

import (
	"fmt"
	"strings"

	state_native "github.com/YoutacRandS-VA/teku/beacon-chain/state/state-native"
	"github.com/YoutacRandS-VA/teku/consensus-types/blocks"
	"github.com/YoutacRandS-VA/teku/encoding/ssz/encoder"
	"github.com/YoutacRandS-VA/teku/encoding/ssz/schema"
	"github.com/YoutacRandS-VA/teku/runtime/logging"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
)

const (
	typeState         = "state"
	typePayload       = "payload"
	typePayloadHeader = "payload-header"
	typeBlobsBundle   = "blobs-bundle"
)

// Input and output encodings. raw is plain SSZ, snappy block compressed
// when the file ends in .ssz_snappy. gossip and chunk are the network
// encodings of the encoder package.
const (
	encodingRaw    = "raw"
	encodingGossip = "gossip"
	encodingChunk  = "chunk"
)

var typeNames = []string{typeState, typePayload, typePayloadHeader, typeBlobsBundle}

var errNoFork = errors.New("--fork is required for this type")

// schemaFor returns the schema of typ at fork.
func schemaFor(typ string, fork int, forkSet bool) (schema.Schema, error) {
	var forFork func(int) (*schema.ContainerSchema, error)
	switch typ {
	case typeBlobsBundle:
		return blocks.BlobsBundleSchema, nil
	case typeState:
		forFork = state_native.SchemaForVersion
	case typePayload:
		forFork = blocks.ExecutionPayloadSchemaForVersion
	case typePayloadHeader:
		forFork = blocks.ExecutionPayloadHeaderSchemaForVersion
	default:
		return nil, errors.Errorf("unknown type %q, want one of %s", typ, strings.Join(typeNames, ", "))
	}
	if !forkSet {
		return nil, errNoFork
	}
	return forFork(fork)
}

var htrCmd = &cli.Command{
	Name:   "htr",
	Usage:  "print the hash tree root of an SSZ file",
	Flags:  []cli.Flag{inputFlag, typeFlag, forkFlag, encodingFlag},
	Action: htrAction,
}

func decodeInput(c *cli.Context) (schema.Value, error) {
	fork, forkSet, err := forkFromFlag(c)
	if err != nil {
		return nil, err
	}
	path := c.Path(inputFlag.Name)
	typ := c.String(typeFlag.Name)
	enc := c.String(encodingFlag.Name)
	if typ == typeState && !forkSet && enc == encodingRaw {
		return readState(path, 0, false)
	}
	s, err := schemaFor(typ, fork, forkSet)
	if err != nil {
		return nil, err
	}
	switch enc {
	case encodingRaw:
		b, err := readSSZ(path)
		if err != nil {
			return nil, err
		}
		return s.Decode(b)
	case encodingGossip:
		b, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, errors.Wrapf(err, "could not read %s", path)
		}
		return encoder.SszNetworkEncoder{}.DecodeGossip(b, s)
	case encodingChunk:
		f, err := fs.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "could not read %s", path)
		}
		defer func() {
			if err := f.Close(); err != nil {
				log.WithError(err).Debug("Could not close input")
			}
		}()
		return encoder.SszNetworkEncoder{}.DecodeWithMaxLength(f, s)
	default:
		return nil, errors.Errorf("unknown encoding %q", enc)
	}
}

func htrAction(c *cli.Context) error {
	v, err := decodeInput(c)
	if err != nil {
		return err
	}
	log.WithFields(logging.ContainerFields(v)).Debug("Decoded input")
	_, err = fmt.Fprintf(c.App.Writer, "%#x\n", v.HashTreeRoot())
	return err
}

var encodeCmd = &cli.Command{
	Name:   "encode",
	Usage:  "re-encode an SSZ file with a network encoding",
	Flags:  []cli.Flag{inputFlag, typeFlag, forkFlag, encodingFlag, outputEncodingFlag, outputFlag},
	Action: encodeAction,
}

func encodeAction(c *cli.Context) error {
	v, err := decodeInput(c)
	if err != nil {
		return err
	}
	out := c.Path(outputFlag.Name)
	f, err := fs.Create(out)
	if err != nil {
		return errors.Wrapf(err, "could not create %s", out)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("Could not close output")
		}
	}()
	var n int
	switch enc := c.String(outputEncodingFlag.Name); enc {
	case encodingGossip:
		n, err = encoder.SszNetworkEncoder{}.EncodeGossip(f, v)
	case encodingChunk:
		n, err = encoder.SszNetworkEncoder{}.EncodeWithMaxLength(f, v)
	case encodingRaw:
		var b []byte
		if b, err = v.MarshalSSZ(); err == nil {
			n, err = f.Write(b)
		}
	default:
		err = errors.Errorf("unknown encoding %q", enc)
	}
	if err != nil {
		return err
	}
	log.WithFields(logging.ContainerFields(v)).WithField("bytes", n).Info("Wrote encoded value")
	return nil
}
