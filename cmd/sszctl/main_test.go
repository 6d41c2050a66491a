package main

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	state_native "github.com/YoutacRandS-VA/teku/beacon-chain/state/state-native"
	"github.com/YoutacRandS-VA/teku/config/params"
	"github.com/YoutacRandS-VA/teku/encoding/ssz/query"
	"github.com/YoutacRandS-VA/teku/genesis"
	"github.com/YoutacRandS-VA/teku/runtime/version"
	"github.com/YoutacRandS-VA/teku/testing/util"
	"github.com/golang/snappy"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	prev := fs
	fs = afero.NewMemMapFs()
	t.Cleanup(func() { fs = prev })
}

func run(t *testing.T, args ...string) (string, error) {
	app := newApp()
	var out bytes.Buffer
	app.Writer = &out
	err := app.Run(append([]string{"sszctl"}, args...))
	return out.String(), err
}

func TestGenesis(t *testing.T) {
	for _, v := range version.All() {
		t.Run(version.String(v), func(t *testing.T) {
			setup(t)
			_, err := run(t, "genesis", "--fork", version.String(v), "--num-validators", "6",
				"--num-execution-withdrawal-credentials", "2", "--genesis-time", "1700000000", "--output", "/out/genesis.ssz_snappy")
			require.NoError(t, err)

			enc, err := afero.ReadFile(fs, "/out/genesis.ssz_snappy")
			require.NoError(t, err)
			raw, err := snappy.Decode(nil, enc)
			require.NoError(t, err)
			st, err := state_native.UnmarshalState(raw)
			require.NoError(t, err)
			assert.Equal(t, v, st.Version())
			assert.Equal(t, 6, st.NumValidators())
			assert.Equal(t, uint64(1700000000), st.GenesisTime())
		})
	}
}

func TestGenesis_GethGenesisJSON(t *testing.T) {
	setup(t)
	require.NoError(t, afero.WriteFile(fs, "/el/genesis.json", []byte(`{
		"config": {"chainId": 32382, "londonBlock": 0},
		"timestamp": "0x6553f100",
		"gasLimit": "0x1c9c380",
		"difficulty": "0x0",
		"baseFeePerGas": "0x7",
		"alloc": {}
	}`), 0o600))
	_, err := run(t, "genesis", "--fork", "deneb", "--num-validators", "4",
		"--geth-genesis-json-in", "/el/genesis.json", "--output", "/genesis.ssz")
	require.NoError(t, err)

	b, err := afero.ReadFile(fs, "/genesis.ssz")
	require.NoError(t, err)
	st, err := state_native.UnmarshalState(b)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x6553f100), st.GenesisTime())
}

func TestHTR(t *testing.T) {
	setup(t)
	st := util.DeterministicGenesisState(t, version.Capella, 4)
	b, err := st.MarshalSSZ()
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, "/state.ssz", b, 0o600))
	require.NoError(t, afero.WriteFile(fs, "/state.ssz_snappy", snappy.Encode(nil, b), 0o600))

	want := fmt.Sprintf("%#x\n", st.HashTreeRoot())
	for _, args := range [][]string{
		{"htr", "--input", "/state.ssz"},
		{"htr", "--input", "/state.ssz_snappy"},
		{"htr", "--input", "/state.ssz", "--fork", "capella"},
	} {
		out, err := run(t, args...)
		require.NoError(t, err, strings.Join(args, " "))
		assert.Equal(t, want, out, strings.Join(args, " "))
	}
}

func TestHTR_Payload(t *testing.T) {
	setup(t)
	p := util.DeterministicPayload(t, version.Deneb)
	b, err := p.MarshalSSZ()
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, "/payload.ssz", b, 0o600))

	out, err := run(t, "htr", "--input", "/payload.ssz", "--type", typePayload, "--fork", "deneb")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%#x\n", p.HashTreeRoot()), out)

	_, err = run(t, "htr", "--input", "/payload.ssz", "--type", typePayload)
	assert.ErrorIs(t, err, errNoFork)
}

func TestHTR_Errors(t *testing.T) {
	setup(t)
	require.NoError(t, afero.WriteFile(fs, "/junk.ssz", []byte{1, 2, 3}, 0o600))
	require.NoError(t, afero.WriteFile(fs, "/junk.ssz_snappy", []byte{0xff, 0xff, 0xff}, 0o600))

	tests := []struct {
		name string
		args []string
		err  string
	}{
		{name: "missing file", args: []string{"htr", "--input", "/nope.ssz"}, err: "could not read /nope.ssz"},
		{name: "unknown type", args: []string{"htr", "--input", "/junk.ssz", "--type", "block"}, err: "unknown type"},
		{name: "unknown fork", args: []string{"htr", "--input", "/junk.ssz", "--fork", "fulu"}, err: "doesn't map to a known value"},
		{name: "short state", args: []string{"htr", "--input", "/junk.ssz"}, err: "too short"},
		{name: "corrupt snappy", args: []string{"htr", "--input", "/junk.ssz_snappy"}, err: "could not decompress"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.ErrorContains(t, err, tt.err)
		})
	}
}

func TestQuery(t *testing.T) {
	setup(t)
	st := util.DeterministicGenesisState(t, version.Electra, 4)
	b, err := st.MarshalSSZ()
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, "/state.ssz", b, 0o600))

	const path = ".validators[2].effective_balance"
	out, err := run(t, "query", "--input", "/state.ssz", "--path", path)
	require.NoError(t, err)

	p, err := query.Prove(st, path)
	require.NoError(t, err)
	assert.True(t, p.Verify(st.HashTreeRoot()))
	assert.Contains(t, out, fmt.Sprintf("gindex: %d\n", p.GIndex))
	assert.Contains(t, out, fmt.Sprintf("leaf:   %#x\n", p.Leaf))
	assert.Equal(t, 3+len(p.Branch), strings.Count(out, "\n"))

	_, err = run(t, "query", "--input", "/state.ssz", "--path", ".no_such_field")
	assert.Error(t, err)
}

func TestDiffAndApply(t *testing.T) {
	setup(t)
	source := util.DeterministicGenesisState(t, version.Deneb, 4)
	target := util.StateAtSlot(t, source, 9)
	for name, st := range map[string]interface{ MarshalSSZ() ([]byte, error) }{"/source.ssz": source, "/target.ssz": target} {
		b, err := st.MarshalSSZ()
		require.NoError(t, err)
		require.NoError(t, afero.WriteFile(fs, name, b, 0o600))
	}

	_, err := run(t, "diff", "--source", "/source.ssz", "--target", "/target.ssz", "--output", "/d.bin")
	require.NoError(t, err)
	_, err = run(t, "apply-diff", "--source", "/source.ssz", "--diff", "/d.bin", "--output", "/patched.ssz")
	require.NoError(t, err)

	out, err := run(t, "htr", "--input", "/patched.ssz")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%#x\n", target.HashTreeRoot()), out)
}

func TestGlobalFlags(t *testing.T) {
	t.Run("minimal", func(t *testing.T) {
		setup(t)
		_, err := run(t, "--minimal", "genesis", "--fork", "altair", "--num-validators", "2", "--output", "/g.ssz")
		require.NoError(t, err)
		assert.Equal(t, params.MinimalName, params.BeaconConfig().PresetBase)
	})
	t.Run("config file", func(t *testing.T) {
		setup(t)
		require.NoError(t, afero.WriteFile(fs, "/config.yaml", []byte("PRESET_BASE: minimal\nCONFIG_NAME: devnet\n"), 0o600))
		_, err := run(t, "--config-file", "/config.yaml", "genesis", "--fork", "phase0", "--num-validators", "2", "--output", "/g.ssz")
		require.NoError(t, err)
		assert.Equal(t, "devnet", params.BeaconConfig().ConfigName)
	})
	t.Run("bad verbosity", func(t *testing.T) {
		setup(t)
		_, err := run(t, "--verbosity", "loud", "genesis", "--output", "/g.ssz")
		assert.ErrorContains(t, err, "invalid verbosity")
	})
}

func TestInitGenesis(t *testing.T) {
	setup(t)
	genesis.StoreDuringTest(t, genesis.GenesisData{})
	st := util.DeterministicGenesisState(t, version.Bellatrix, 4)
	b, err := st.MarshalSSZ()
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, "/in/genesis.ssz_snappy", snappy.Encode(nil, b), 0o600))

	want := fmt.Sprintf("genesis_time: %d\ngenesis_validators_root: %#x\nstate_root: %#x\n",
		st.GenesisTime(), st.GenesisValidatorsRoot(), st.HashTreeRoot())

	out, err := run(t, "init-genesis", "--genesis-state", "/in/genesis.ssz_snappy", "--datadir", "/data")
	require.NoError(t, err)
	assert.Equal(t, want, out)
	files, err := afero.ReadDir(fs, "/data")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, fmt.Sprintf("genesis-%d-%#x.ssz", st.GenesisTime(), st.GenesisValidatorsRoot()), files[0].Name())

	// The persisted file wins without a provider.
	out, err = run(t, "init-genesis", "--datadir", "/data")
	require.NoError(t, err)
	assert.Equal(t, want, out)

	_, err = run(t, "init-genesis", "--datadir", "/empty")
	assert.ErrorIs(t, err, genesis.ErrGenesisStateNotInitialized)

	_, err = run(t, "init-genesis", "--genesis-state", "/in/missing.ssz", "--datadir", "/empty")
	assert.ErrorIs(t, err, genesis.ErrGenesisFileNotFound)
}

func TestEncode(t *testing.T) {
	setup(t)
	st := util.DeterministicGenesisState(t, version.Altair, 4)
	b, err := st.MarshalSSZ()
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, "/state.ssz", b, 0o600))
	want := fmt.Sprintf("%#x\n", st.HashTreeRoot())

	for _, enc := range []string{encodingGossip, encodingChunk, encodingRaw} {
		t.Run(enc, func(t *testing.T) {
			out := "/state." + enc
			_, err := run(t, "encode", "--input", "/state.ssz", "--output-encoding", enc, "--output", out)
			require.NoError(t, err)

			got, err := run(t, "htr", "--input", out, "--encoding", enc, "--fork", "altair")
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	t.Run("network encodings need a fork", func(t *testing.T) {
		_, err := run(t, "htr", "--input", "/state.gossip", "--encoding", encodingGossip)
		assert.ErrorIs(t, err, errNoFork)
	})
	t.Run("wrong encoding", func(t *testing.T) {
		_, err := run(t, "htr", "--input", "/state.ssz", "--encoding", encodingGossip, "--fork", "altair")
		assert.Error(t, err)
	})
	t.Run("unknown output encoding", func(t *testing.T) {
		_, err := run(t, "encode", "--input", "/state.ssz", "--output-encoding", "zstd", "--output", "/x")
		assert.ErrorContains(t, err, "unknown encoding")
	})
}
