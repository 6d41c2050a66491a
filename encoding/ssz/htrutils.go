// Package ssz computes hash tree roots of plain Go values, such as raw
// transactions, without building a backing tree.
package ssz

import (
	fieldparams "github.com/YoutacRandS-VA/teku/config/fieldparams"
	"github.com/YoutacRandS-VA/teku/encoding/ssz/tree"
	"github.com/pkg/errors"
)

// Uint64Root computes the HashTreeRoot Merkleization of
// a simple uint64 value according to the Ethereum
// Simple Serialize specification.
func Uint64Root(val uint64) [32]byte {
	return tree.Uint64Root(val)
}

// ByteSliceRoot is a helper func to merkleize an arbitrary List[Byte, N].
// maxLength is rounded up to whole chunks.
func ByteSliceRoot(slice []byte, maxLength uint64) ([32]byte, error) {
	if uint64(len(slice)) > maxLength {
		return [32]byte{}, errors.Errorf("byte list of length %d exceeds limit %d", len(slice), maxLength)
	}
	chunks, err := tree.PackByChunk([][]byte{slice})
	if err != nil {
		return [32]byte{}, err
	}
	root, err := tree.Merkleize(chunks, (maxLength+tree.BytesPerChunk-1)/tree.BytesPerChunk)
	if err != nil {
		return [32]byte{}, errors.Wrap(err, "could not compute merkleization")
	}
	return tree.MixInLengthRoot(root, uint64(len(slice))), nil
}

// ByteArrayRootWithLimit computes the HashTreeRoot Merkleization of
// a list of [32]byte roots according to the Ethereum Simple Serialize
// specification.
func ByteArrayRootWithLimit(roots [][32]byte, limit uint64) ([32]byte, error) {
	root, err := tree.Merkleize(roots, limit)
	if err != nil {
		return [32]byte{}, errors.Wrap(err, "could not compute byte array merkleization")
	}
	// We need to mix in the length of the slice.
	return tree.MixInLengthRoot(root, uint64(len(roots))), nil
}

// TransactionRoot computes the HTR of one opaque transaction.
func TransactionRoot(tx []byte) ([32]byte, error) {
	return ByteSliceRoot(tx, fieldparams.MaxBytesPerTxLength)
}

// TransactionsRoot computes the HTR for the Transactions' property of the ExecutionPayload
func TransactionsRoot(txs [][]byte) ([32]byte, error) {
	if len(txs) > fieldparams.MaxTxsPerPayloadLength {
		return [32]byte{}, errors.Errorf("%d transactions exceed limit %d", len(txs), fieldparams.MaxTxsPerPayloadLength)
	}
	roots := make([][32]byte, len(txs))
	for i, tx := range txs {
		r, err := TransactionRoot(tx)
		if err != nil {
			return [32]byte{}, errors.Wrapf(err, "transaction %d", i)
		}
		roots[i] = r
	}
	return ByteArrayRootWithLimit(roots, fieldparams.MaxTxsPerPayloadLength)
}
