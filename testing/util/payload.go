package util

import (
	"math/big"
	"testing"

	fieldparams "github.com/YoutacRandS-VA/teku/config/fieldparams"
	"github.com/YoutacRandS-VA/teku/consensus-types/blocks"
	"github.com/YoutacRandS-VA/teku/consensus-types/interfaces"
	"github.com/YoutacRandS-VA/teku/consensus-types/primitives"
	"github.com/YoutacRandS-VA/teku/crypto/random"
	"github.com/YoutacRandS-VA/teku/encoding/bytesutil"
	"github.com/YoutacRandS-VA/teku/runtime/version"
	"github.com/ethereum/go-ethereum/common"
	gethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

type PayloadOption func(*blocks.ExecutionPayloadFields)

// WithBlockNumber sets the block number, which also seeds the block hash.
func WithBlockNumber(n uint64) PayloadOption {
	return func(f *blocks.ExecutionPayloadFields) {
		f.BlockNumber = n
		f.BlockHash = common.Hash(bytesutil.ToBytes32(big.NewInt(0).SetUint64(n + 1).Bytes()))
	}
}

func WithTransactions(txs [][]byte) PayloadOption {
	return func(f *blocks.ExecutionPayloadFields) {
		f.Transactions = txs
	}
}

// DeterministicPayload returns a payload of fork v holding one legacy
// transaction, plus one withdrawal from Capella and blob gas from Deneb.
func DeterministicPayload(t testing.TB, v int, opts ...PayloadOption) interfaces.ExecutionPayload {
	ads := common.HexToAddress("095e7baea6a6c7c4c2dfeb977efac326af552d87")
	tx := gethTypes.NewTx(&gethTypes.LegacyTx{
		Nonce:    0,
		To:       &ads,
		Value:    big.NewInt(0),
		Gas:      0,
		GasPrice: big.NewInt(0),
		Data:     nil,
	})
	encodedTx, err := tx.MarshalBinary()
	require.NoError(t, err)

	f := &blocks.ExecutionPayloadFields{
		ParentHash:    common.Hash(bytesutil.ToBytes32(bytesutil.PadTo([]byte("parentHash"), fieldparams.RootLength))),
		FeeRecipient:  ads,
		StateRoot:     bytesutil.ToBytes32(bytesutil.PadTo([]byte("stateRoot"), fieldparams.RootLength)),
		ReceiptsRoot:  bytesutil.ToBytes32(bytesutil.PadTo([]byte("receiptsRoot"), fieldparams.RootLength)),
		LogsBloom:     bytesutil.PadTo([]byte("logs"), fieldparams.LogsBloomLength),
		PrevRandao:    bytesutil.ToBytes32([]byte("randao")),
		GasLimit:      30_000_000,
		Timestamp:     DeterministicGenesisTime + 12,
		ExtraData:     []byte("teku"),
		BaseFeePerGas: uint256.NewInt(7),
		BlockHash:     common.Hash(bytesutil.ToBytes32([]byte("foo"))),
		Transactions:  [][]byte{encodedTx},
	}
	if v >= version.Capella {
		w, err := blocks.NewWithdrawal(0, 1, ads, primitives.Gwei(1e9))
		require.NoError(t, err)
		f.Withdrawals = []*blocks.Withdrawal{w}
	}
	if v >= version.Deneb {
		f.BlobGasUsed = fieldparams.BlobLength
	}
	for _, o := range opts {
		o(f)
	}
	p, err := blocks.NewExecutionPayload(v, f)
	require.NoError(t, err)
	return p
}

// DeterministicBlobsBundle returns a bundle of n blobs seeded by their index.
func DeterministicBlobsBundle(t testing.TB, n int) *blocks.BlobsBundle {
	commitments := make([][48]byte, n)
	proofs := make([][48]byte, n)
	blobs := make([][]byte, n)
	for i := 0; i < n; i++ {
		commitments[i][0] = byte(i)
		proofs[i][1] = byte(i)
		blobs[i] = random.GetRandBlob(int64(i))
	}
	b, err := blocks.NewBlobsBundle(commitments, proofs, blobs)
	require.NoError(t, err)
	return b
}

// DeterministicGetPayloadResponse returns an engine response of fork v with
// nblobs blobs, which must be zero before Deneb.
func DeterministicGetPayloadResponse(t testing.TB, v int, nblobs int, bid primitives.Wei) *blocks.GetPayloadResponse {
	var bundle *blocks.BlobsBundle
	if v >= version.Deneb {
		bundle = DeterministicBlobsBundle(t, nblobs)
	}
	r, err := blocks.NewGetPayloadResponse(DeterministicPayload(t, v), bundle, bid, false)
	require.NoError(t, err)
	return r
}
