package interop_test

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/YoutacRandS-VA/teku/beacon-chain/state"
	"github.com/YoutacRandS-VA/teku/runtime/interop"
	"github.com/YoutacRandS-VA/teku/runtime/version"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executionGenesis(baseFee *big.Int) *types.Block {
	one := uint64(1)
	return types.NewBlockWithHeader(&types.Header{
		Number:        big.NewInt(0),
		Time:          1700000000,
		GasLimit:      30_000_000,
		Extra:         make([]byte, 32),
		BaseFee:       baseFee,
		Coinbase:      common.HexToAddress("0x00000000000000000000000000000000000000aa"),
		ExcessBlobGas: &one,
		BlobGasUsed:   &one,
	})
}

func TestDeterministicValidators(t *testing.T) {
	vals, bals := interop.DeterministicValidators(8, 3)
	require.Len(t, vals, 8)
	require.Len(t, bals, 8)
	for i, v := range vals {
		if i < 3 {
			assert.Equal(t, byte(0x01), v.WithdrawalCredentials[0], "validator %d", i)
			assert.Equal(t, make([]byte, 11), v.WithdrawalCredentials[1:12], "validator %d", i)
		} else {
			assert.Equal(t, byte(0x00), v.WithdrawalCredentials[0], "validator %d", i)
		}
		assert.Equal(t, v.EffectiveBalance, bals[i])
	}
	again, _ := interop.DeterministicValidators(8, 3)
	assert.Equal(t, vals, again)
	assert.NotEqual(t, vals[0].PublicKey, vals[1].PublicKey)
}

func TestNewPreminedGenesis(t *testing.T) {
	gb := executionGenesis(big.NewInt(7))
	genesisTime := time.Unix(int64(gb.Time()), 0)

	for _, v := range version.All() {
		t.Run(version.String(v), func(t *testing.T) {
			st, err := interop.NewPreminedGenesis(context.Background(), genesisTime, 10, 10, v, gb)
			require.NoError(t, err)
			assert.Equal(t, v, st.Version())
			assert.Equal(t, 10, st.NumValidators())
			assert.Equal(t, gb.Time(), st.GenesisTime())
			if v < version.Bellatrix {
				return
			}
			b, err := state.RequireBellatrix(st)
			require.NoError(t, err)
			h := b.LatestExecutionPayloadHeader()
			assert.Equal(t, gb.Hash(), h.BlockHash())
			assert.Equal(t, gb.Coinbase(), h.FeeRecipient())
			assert.Equal(t, uint64(7), h.BaseFeePerGas().Uint64())
			assert.Equal(t, uint64(30_000_000), h.GasLimit())
			if d, ok := h.ToVersionDeneb(); ok {
				assert.Equal(t, uint64(1), d.BlobGasUsed())
				assert.Equal(t, uint64(1), d.ExcessBlobGas())
			}
		})
	}
}

func TestNewPreminedGenesis_Errors(t *testing.T) {
	now := time.Unix(1700000000, 0)

	_, err := interop.NewPreminedGenesis(context.Background(), now, 4, 0, version.Capella, nil)
	assert.ErrorContains(t, err, "execution genesis block is required")

	_, err = interop.NewPreminedGenesis(context.Background(), now, 4, 0, version.Deneb, executionGenesis(nil))
	assert.ErrorContains(t, err, "baseFeePerGas must be set")

	_, err = interop.NewPreminedGenesis(context.Background(), now, 4, 0, version.Phase0, nil)
	assert.NoError(t, err)
}
