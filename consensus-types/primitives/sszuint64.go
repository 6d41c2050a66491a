package primitives

import (
	"fmt"

	fssz "github.com/prysmaticlabs/fastssz"
)

const uint64SSZSize = 8

func unmarshalUint64(buf []byte) (uint64, error) {
	if len(buf) != uint64SSZSize {
		return 0, fmt.Errorf("expected buffer of length %d received %d", uint64SSZSize, len(buf))
	}
	return fssz.UnmarshallUint64(buf), nil
}

func marshalUint64To(dst []byte, v uint64) []byte {
	return fssz.MarshalUint64(dst, v)
}
