package params

import (
	"github.com/YoutacRandS-VA/teku/consensus-types/primitives"
	"github.com/YoutacRandS-VA/teku/encoding/ssz/schema"
	"github.com/pkg/errors"
)

// Fork describes the fork in effect at some epoch together with its predecessor.
type Fork struct {
	PreviousVersion [4]byte
	CurrentVersion  [4]byte
	Epoch           primitives.Epoch
}

var forkDataSchema = schema.MustContainerSchema("ForkData", []schema.Field{
	{Name: "current_version", Schema: schema.Bytes4Schema},
	{Name: "genesis_validators_root", Schema: schema.Bytes32Schema},
})

// ForkAtEpoch returns the fork in effect at epoch on the active config.
func ForkAtEpoch(epoch primitives.Epoch) (*Fork, error) {
	return ForkFromConfig(BeaconConfig(), epoch)
}

// ForkFromConfig returns the fork in effect at epoch under cfg.
func ForkFromConfig(cfg *BeaconChainConfig, epoch primitives.Epoch) (*Fork, error) {
	forks := cfg.forks()
	cur := 0
	for i, f := range forks {
		if epoch >= f.epoch {
			cur = i
		}
	}
	prev := cur
	if cur > 0 {
		prev = cur - 1
	}
	out := &Fork{Epoch: forks[cur].epoch}
	if len(forks[cur].bytes) != 4 || len(forks[prev].bytes) != 4 {
		return nil, errors.New("fork versions must be 4 bytes")
	}
	copy(out.CurrentVersion[:], forks[cur].bytes)
	copy(out.PreviousVersion[:], forks[prev].bytes)
	return out, nil
}

// ComputeForkDigest returns the first four bytes of the ForkData root of
// version and the genesis validators root.
func ComputeForkDigest(version [4]byte, genesisValidatorsRoot [32]byte) ([4]byte, error) {
	v, err := schema.NewByteVector(schema.Bytes4Schema, version[:])
	if err != nil {
		return [4]byte{}, err
	}
	fd, err := schema.NewContainer(forkDataSchema, v, schema.NewBytes32(genesisValidatorsRoot))
	if err != nil {
		return [4]byte{}, errors.Wrap(err, "could not build fork data")
	}
	root := fd.HashTreeRoot()
	var digest [4]byte
	copy(digest[:], root[:4])
	return digest, nil
}

// ForkDigest returns the digest of the fork active at epoch on the active config.
func ForkDigest(epoch primitives.Epoch) ([4]byte, error) {
	cfg := BeaconConfig()
	f, err := ForkFromConfig(cfg, epoch)
	if err != nil {
		return [4]byte{}, err
	}
	return ComputeForkDigest(f.CurrentVersion, cfg.GenesisValidatorsRoot)
}
