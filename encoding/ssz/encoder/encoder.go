// Package encoder implements the ssz_snappy boundary encodings of schema
// values: snappy block compression for gossip payloads and a uvarint length
// prefix followed by a snappy framed stream for request/response chunks.
package encoder

import (
	"bytes"
	"encoding/binary"
	"io"
	"sync"

	"github.com/YoutacRandS-VA/teku/config/params"
	"github.com/YoutacRandS-VA/teku/encoding/ssz/schema"
	"github.com/golang/snappy"
	"github.com/pkg/errors"
)

var (
	errExcessMaxLength = errors.New("provided header exceeds the max chunk size")
	errTooLarge        = errors.New("message size exceeds the schema maximum")
	errEmptyInput      = errors.New("empty input")
)

const maxVarintLength = 10

var bufWriterPool = new(sync.Pool)
var bufReaderPool = new(sync.Pool)

// SszNetworkEncoder supports ssz_snappy encoding of schema values.
type SszNetworkEncoder struct{}

// ProtocolSuffix is the suffix of protocol and topic names using this encoding.
const ProtocolSuffix = "/ssz_snappy"

// MaxLength returns the largest uncompressed chunk accepted on the wire.
func MaxLength() uint64 {
	return params.BeaconConfig().MaxChunkSize
}

// EncodeGossip serializes v and compresses it with snappy block encoding.
func (SszNetworkEncoder) EncodeGossip(w io.Writer, v schema.Value) (int, error) {
	b, err := v.MarshalSSZ()
	if err != nil {
		return 0, err
	}
	if uint64(len(b)) > params.BeaconConfig().GossipMaxSize {
		return 0, errors.Errorf("gossip message exceeds max gossip size: %d bytes > %d bytes", len(b), params.BeaconConfig().GossipMaxSize)
	}
	return w.Write(snappy.Encode(nil /*dst*/, b))
}

// DecodeGossip decompresses a snappy block and decodes it as a value of s.
func (SszNetworkEncoder) DecodeGossip(b []byte, s schema.Schema) (schema.Value, error) {
	if len(b) == 0 {
		return nil, errors.Wrap(schema.ErrMalformedEncoding, errEmptyInput.Error())
	}
	size, err := snappy.DecodedLen(b)
	if err != nil {
		return nil, errors.Wrapf(schema.ErrMalformedEncoding, "snappy: %v", err)
	}
	if uint64(size) > params.BeaconConfig().GossipMaxSize {
		return nil, errors.Errorf("gossip message exceeds max gossip size: %d bytes > %d bytes", size, params.BeaconConfig().GossipMaxSize)
	}
	if uint64(size) > s.MaxSSZLength() {
		return nil, errors.Wrapf(schema.ErrMalformedEncoding, "%v: %d > %d", errTooLarge, size, s.MaxSSZLength())
	}
	raw, err := snappy.Decode(nil /*dst*/, b)
	if err != nil {
		return nil, errors.Wrapf(schema.ErrMalformedEncoding, "snappy: %v", err)
	}
	return s.Decode(raw)
}

// EncodeWithMaxLength writes the uvarint length of the serialized value
// followed by the snappy framed stream of its bytes.
func (e SszNetworkEncoder) EncodeWithMaxLength(w io.Writer, v schema.Value) (int, error) {
	b, err := v.MarshalSSZ()
	if err != nil {
		return 0, err
	}
	if uint64(len(b)) > MaxLength() {
		return 0, errors.Errorf(
			"size of encoded message is %d which is larger than the provided max limit of %d",
			len(b),
			MaxLength(),
		)
	}
	header := binary.AppendUvarint(nil, uint64(len(b)))
	n, err := w.Write(header)
	if err != nil {
		return n, err
	}
	written, err := writeSnappyBuffer(w, b)
	return n + written, err
}

// DecodeWithMaxLength reads a length prefixed snappy framed chunk from r and
// decodes it as a value of s.
func (e SszNetworkEncoder) DecodeWithMaxLength(r io.Reader, s schema.Schema) (schema.Value, error) {
	length, err := readVarint(r)
	if err != nil {
		return nil, err
	}
	if length > MaxLength() {
		return nil, errors.Wrapf(errExcessMaxLength, "%d > %d", length, MaxLength())
	}
	if length > s.MaxSSZLength() || length < s.MinSSZLength() {
		return nil, errors.Wrapf(schema.ErrMalformedEncoding, "chunk length %d outside [%d, %d] for %s", length, s.MinSSZLength(), s.MaxSSZLength(), s)
	}
	sr := newBufferedReader(r)
	defer bufReaderPool.Put(sr)

	buf := make([]byte, length)
	if _, err := io.ReadFull(sr, buf); err != nil {
		return nil, errors.Wrapf(schema.ErrMalformedEncoding, "snappy stream: %v", err)
	}
	return s.Decode(buf)
}

func newBufferedReader(r io.Reader) *snappy.Reader {
	rawReader := bufReaderPool.Get()
	if rawReader == nil {
		return snappy.NewReader(r)
	}
	bufR, ok := rawReader.(*snappy.Reader)
	if !ok {
		return snappy.NewReader(r)
	}
	bufR.Reset(r)
	return bufR
}

func newBufferedWriter(w io.Writer) *snappy.Writer {
	rawBufWriter := bufWriterPool.Get()
	if rawBufWriter == nil {
		return snappy.NewBufferedWriter(w)
	}
	bufW, ok := rawBufWriter.(*snappy.Writer)
	if !ok {
		return snappy.NewBufferedWriter(w)
	}
	bufW.Reset(w)
	return bufW
}

// writeSnappyBuffer returns the number of compressed bytes written to w.
func writeSnappyBuffer(w io.Writer, b []byte) (int, error) {
	cw := &countingWriter{w: w}
	bufWriter := newBufferedWriter(cw)
	defer bufWriterPool.Put(bufWriter)
	if _, err := bufWriter.Write(b); err != nil {
		if err := bufWriter.Close(); err != nil {
			return 0, err
		}
		return 0, err
	}
	if err := bufWriter.Close(); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}

// readVarint reads a uvarint one byte at a time so no bytes of the
// following frame are consumed.
func readVarint(r io.Reader) (uint64, error) {
	var buf bytes.Buffer
	one := make([]byte, 1)
	for i := 0; i < maxVarintLength; i++ {
		if _, err := io.ReadFull(r, one); err != nil {
			if errors.Is(err, io.EOF) && i == 0 {
				return 0, err
			}
			return 0, errors.Wrapf(schema.ErrMalformedEncoding, "varint: %v", err)
		}
		buf.WriteByte(one[0])
		if one[0]&0x80 == 0 {
			v, n := binary.Uvarint(buf.Bytes())
			if n <= 0 {
				return 0, errors.Wrap(schema.ErrMalformedEncoding, "varint overflow")
			}
			return v, nil
		}
	}
	return 0, errors.Wrap(schema.ErrMalformedEncoding, "varint too long")
}
