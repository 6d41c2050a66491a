// Package hdiff computes and applies differences between beacon states of
// the same chain. A diff records the SSZ encoding of every top level field
// whose root changed, so applying it keeps every other subtree shared with
// the source state.
package hdiff

import (
	"context"
	"encoding/binary"

	"github.com/YoutacRandS-VA/teku/beacon-chain/state"
	state_native "github.com/YoutacRandS-VA/teku/beacon-chain/state/state-native"
	"github.com/YoutacRandS-VA/teku/config/params"
	"github.com/YoutacRandS-VA/teku/encoding/ssz/schema"
	"github.com/YoutacRandS-VA/teku/runtime/version"
	"github.com/golang/snappy"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "hdiff")

var (
	errDowngrade      = errors.New("cannot diff towards an earlier fork")
	errNotTreeBacked  = errors.New("state is not tree backed")
	errTruncatedDiff  = errors.New("truncated state diff")
	errTrailingBytes  = errors.New("trailing bytes after state diff")
	errDuplicateField = errors.New("field appears twice in state diff")
	errDiffTooLarge   = errors.New("state diff exceeds maximum size")
)

// MaxDiffSize bounds the decompressed size of a serialized diff.
const MaxDiffSize = 1 << 30

// FieldDiff is the new SSZ encoding of one top level state field.
type FieldDiff struct {
	Name  string
	Value []byte
}

// StateDiff lists the fields of a target state that differ from its source,
// after the source is upgraded to the fork of the target.
type StateDiff struct {
	TargetVersion int
	Fields        []FieldDiff
}

type fieldSetter interface {
	SetFieldByName(name string, v schema.Value) error
	Commit() (state.BeaconState, error)
}

type treeBackedState interface {
	state.BeaconState
	ContainerSchema() *schema.ContainerSchema
	Get(i int) (schema.Value, error)
	GetByName(name string) (schema.Value, error)
}

func treeBacked(st state.ReadOnlyBeaconState) (treeBackedState, error) {
	t, ok := st.(treeBackedState)
	if !ok {
		return nil, errors.Wrapf(errNotTreeBacked, "%T", st)
	}
	return t, nil
}

// Diff computes the difference from source to target under the active config.
func Diff(ctx context.Context, source, target state.BeaconState) (*StateDiff, error) {
	return DiffWithConfig(ctx, params.BeaconConfig(), source, target)
}

// DiffWithConfig is Diff with the fork schedule of cfg.
func DiffWithConfig(ctx context.Context, cfg *params.BeaconChainConfig, source, target state.BeaconState) (*StateDiff, error) {
	base, err := upgradeTo(ctx, cfg, source, target.Version())
	if err != nil {
		return nil, err
	}
	b, err := treeBacked(base)
	if err != nil {
		return nil, err
	}
	t, err := treeBacked(target)
	if err != nil {
		return nil, err
	}
	d := &StateDiff{TargetVersion: target.Version()}
	for i, f := range t.ContainerSchema().Fields() {
		tv, err := t.Get(i)
		if err != nil {
			return nil, err
		}
		bv, err := b.Get(i)
		if err != nil {
			return nil, err
		}
		if tv.HashTreeRoot() == bv.HashTreeRoot() {
			continue
		}
		enc, err := tv.MarshalSSZ()
		if err != nil {
			return nil, errors.Wrapf(err, "could not encode %s", f.Name)
		}
		d.Fields = append(d.Fields, FieldDiff{Name: f.Name, Value: enc})
	}
	log.WithFields(logrus.Fields{
		"source":  version.String(source.Version()),
		"target":  version.String(target.Version()),
		"changed": len(d.Fields),
	}).Debug("Computed state diff")
	return d, nil
}

// ApplyDiff applies d to source under the active config.
func ApplyDiff(ctx context.Context, source state.BeaconState, d *StateDiff) (state.BeaconState, error) {
	return ApplyDiffWithConfig(ctx, params.BeaconConfig(), source, d)
}

// ApplyDiffWithConfig is ApplyDiff with the fork schedule of cfg. Fields the
// diff does not name keep the subtrees of the (upgraded) source.
func ApplyDiffWithConfig(ctx context.Context, cfg *params.BeaconChainConfig, source state.BeaconState, d *StateDiff) (state.BeaconState, error) {
	if d == nil {
		return nil, errors.New("nil state diff")
	}
	base, err := upgradeTo(ctx, cfg, source, d.TargetVersion)
	if err != nil {
		return nil, err
	}
	b, err := treeBacked(base)
	if err != nil {
		return nil, err
	}
	m, ok := b.ToMutable().(fieldSetter)
	if !ok {
		return nil, errors.Wrapf(errNotTreeBacked, "%T", b)
	}
	cs := b.ContainerSchema()
	seen := make(map[int]bool, len(d.Fields))
	for _, f := range d.Fields {
		i, err := cs.FieldIndex(f.Name)
		if err != nil {
			return nil, err
		}
		if seen[i] {
			return nil, errors.Wrap(errDuplicateField, f.Name)
		}
		seen[i] = true
		fs, err := cs.FieldSchema(i)
		if err != nil {
			return nil, err
		}
		v, err := fs.Decode(f.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "could not decode %s", f.Name)
		}
		if err := m.SetFieldByName(f.Name, v); err != nil {
			return nil, err
		}
	}
	return m.Commit()
}

func upgradeTo(ctx context.Context, cfg *params.BeaconChainConfig, st state.BeaconState, v int) (state.BeaconState, error) {
	if st.Version() > v {
		return nil, errors.Wrapf(errDowngrade, "%s to %s", version.String(st.Version()), version.String(v))
	}
	var err error
	for st.Version() < v {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if st, err = state_native.UpgradeToNextVersion(cfg, st); err != nil {
			return nil, errors.Wrap(err, "could not upgrade source state")
		}
	}
	return st, nil
}

// Serialize returns the snappy compressed binary form of d.
func (d *StateDiff) Serialize() []byte {
	var b []byte
	b = binary.AppendUvarint(b, uint64(d.TargetVersion))
	b = binary.AppendUvarint(b, uint64(len(d.Fields)))
	for _, f := range d.Fields {
		b = binary.AppendUvarint(b, uint64(len(f.Name)))
		b = append(b, f.Name...)
		b = binary.AppendUvarint(b, uint64(len(f.Value)))
		b = append(b, f.Value...)
	}
	return snappy.Encode(nil /*dst*/, b)
}

// Deserialize decodes a diff produced by Serialize.
func Deserialize(enc []byte) (*StateDiff, error) {
	size, err := snappy.DecodedLen(enc)
	if err != nil {
		return nil, errors.Wrap(err, "could not decompress state diff")
	}
	if size > MaxDiffSize {
		return nil, errors.Wrapf(errDiffTooLarge, "%d bytes", size)
	}
	b, err := snappy.Decode(nil /*dst*/, enc)
	if err != nil {
		return nil, errors.Wrap(err, "could not decompress state diff")
	}
	r := &reader{b: b}
	v, err := r.uvarint()
	if err != nil {
		return nil, err
	}
	if !version.IsKnown(int(v)) {
		return nil, errors.Errorf("unsupported diff version %d", v)
	}
	n, err := r.uvarint()
	if err != nil {
		return nil, err
	}
	if n > uint64(len(b)) {
		return nil, errors.Wrapf(errTruncatedDiff, "%d fields in %d bytes", n, len(b))
	}
	d := &StateDiff{TargetVersion: int(v), Fields: make([]FieldDiff, 0, n)}
	for i := uint64(0); i < n; i++ {
		name, err := r.bytes()
		if err != nil {
			return nil, err
		}
		val, err := r.bytes()
		if err != nil {
			return nil, err
		}
		d.Fields = append(d.Fields, FieldDiff{Name: string(name), Value: val})
	}
	if len(r.b) != 0 {
		return nil, errTrailingBytes
	}
	return d, nil
}

type reader struct{ b []byte }

func (r *reader) uvarint() (uint64, error) {
	v, n := binary.Uvarint(r.b)
	if n <= 0 {
		return 0, errTruncatedDiff
	}
	r.b = r.b[n:]
	return v, nil
}

func (r *reader) bytes() ([]byte, error) {
	l, err := r.uvarint()
	if err != nil {
		return nil, err
	}
	if l > uint64(len(r.b)) {
		return nil, errTruncatedDiff
	}
	out := r.b[:l:l]
	r.b = r.b[l:]
	return out, nil
}
