package params_test

import (
	"testing"

	"github.com/YoutacRandS-VA/teku/config/params"
	"github.com/YoutacRandS-VA/teku/consensus-types/primitives"
	"github.com/YoutacRandS-VA/teku/runtime/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForkFromConfig(t *testing.T) {
	cfg := params.MainnetConfig()
	tests := []struct {
		name  string
		epoch primitives.Epoch
		want  *params.Fork
	}{
		{
			name:  "genesis",
			epoch: 0,
			want:  &params.Fork{PreviousVersion: [4]byte{0, 0, 0, 0}, CurrentVersion: [4]byte{0, 0, 0, 0}, Epoch: 0},
		},
		{
			name:  "altair fork epoch",
			epoch: cfg.AltairForkEpoch,
			want:  &params.Fork{PreviousVersion: [4]byte{0, 0, 0, 0}, CurrentVersion: [4]byte{1, 0, 0, 0}, Epoch: cfg.AltairForkEpoch},
		},
		{
			name:  "after capella",
			epoch: cfg.CapellaForkEpoch + 1,
			want:  &params.Fork{PreviousVersion: [4]byte{2, 0, 0, 0}, CurrentVersion: [4]byte{3, 0, 0, 0}, Epoch: cfg.CapellaForkEpoch},
		},
		{
			name:  "electra",
			epoch: cfg.ElectraForkEpoch + 100,
			want:  &params.Fork{PreviousVersion: [4]byte{4, 0, 0, 0}, CurrentVersion: [4]byte{5, 0, 0, 0}, Epoch: cfg.ElectraForkEpoch},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := params.ForkFromConfig(cfg, tt.epoch)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVersionAtEpoch(t *testing.T) {
	cfg := params.MainnetConfig()
	assert.Equal(t, version.Phase0, cfg.VersionAtEpoch(0))
	assert.Equal(t, version.Phase0, cfg.VersionAtEpoch(cfg.AltairForkEpoch-1))
	assert.Equal(t, version.Altair, cfg.VersionAtEpoch(cfg.AltairForkEpoch))
	assert.Equal(t, version.Deneb, cfg.VersionAtEpoch(cfg.ElectraForkEpoch-1))
	assert.Equal(t, version.Electra, cfg.VersionAtEpoch(cfg.FarFutureEpoch))

	minimal := params.MinimalSpecConfig()
	assert.Equal(t, version.Phase0, minimal.VersionAtEpoch(1000))
}

func TestForkVersionBytesRoundTrip(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	for _, v := range version.All() {
		b, err := cfg.ForkVersionBytes(v)
		require.NoError(t, err)
		assert.Equal(t, byte(1), b[3])
		got, err := cfg.VersionFromForkVersionBytes(b)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
	_, err := cfg.VersionFromForkVersionBytes([4]byte{9, 9, 9, 9})
	require.ErrorContains(t, err, "no fork with version")
	_, err = cfg.ForkEpoch(99)
	require.ErrorContains(t, err, "unknown fork version")
}

func TestComputeForkDigest(t *testing.T) {
	a, err := params.ComputeForkDigest([4]byte{0, 0, 0, 0}, [32]byte{})
	require.NoError(t, err)
	b, err := params.ComputeForkDigest([4]byte{1, 0, 0, 0}, [32]byte{})
	require.NoError(t, err)
	c, err := params.ComputeForkDigest([4]byte{0, 0, 0, 0}, [32]byte{1})
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)

	again, err := params.ComputeForkDigest([4]byte{0, 0, 0, 0}, [32]byte{})
	require.NoError(t, err)
	assert.Equal(t, a, again)
}
