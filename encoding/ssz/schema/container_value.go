package schema

import (
	"github.com/YoutacRandS-VA/teku/encoding/ssz/tree"
	"github.com/pkg/errors"
)

// Container is an immutable container value.
type Container struct {
	schema *ContainerSchema
	node   tree.Node
}

// NewContainer builds a container from one value per field, in order.
func NewContainer(s *ContainerSchema, values ...Value) (Value, error) {
	if len(values) != len(s.fields) {
		return nil, errors.Wrapf(ErrSchemaArityMismatch, "%s: got %d values for %d fields", s.name, len(values), len(s.fields))
	}
	nodes := make([]tree.Node, len(values))
	for i, v := range values {
		if err := checkValue(s.fields[i].Schema, v); err != nil {
			return nil, errors.Wrapf(err, "%s.%s", s.name, s.fields[i].Name)
		}
		nodes[i] = v.BackingNode()
	}
	root, err := tree.FromChunks(nodes, s.depth)
	if err != nil {
		return nil, err
	}
	return s.CreateFromBackingNode(root), nil
}

func (c *Container) Schema() Schema                    { return c.schema }
func (c *Container) ContainerSchema() *ContainerSchema { return c.schema }
func (c *Container) BackingNode() tree.Node            { return c.node }
func (c *Container) MarshalSSZ() ([]byte, error)       { return c.schema.Encode(c) }

// HashTreeRoot returns the root of the backing tree. It is memoized by the tree.
func (c *Container) HashTreeRoot() [32]byte {
	return c.node.Root()
}

// Get returns field i.
func (c *Container) Get(i int) (Value, error) {
	g, err := c.schema.FieldGIndex(i)
	if err != nil {
		return nil, err
	}
	n, err := tree.GetNode(c.node, g)
	if err != nil {
		return nil, err
	}
	return c.schema.fields[i].Schema.CreateFromBackingNode(n), nil
}

// GetByName returns the named field.
func (c *Container) GetByName(name string) (Value, error) {
	i, err := c.schema.FieldIndex(name)
	if err != nil {
		return nil, err
	}
	return c.Get(i)
}

// ToMutable returns a staging copy of the container.
func (c *Container) ToMutable() *MutableContainer {
	return &MutableContainer{original: c, dirty: make(map[int]Value)}
}

// FieldValue returns field i of c as T.
func FieldValue[T Value](c *Container, i int) (T, error) {
	var zero T
	v, err := c.Get(i)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, errors.Wrapf(ErrSchemaMismatch, "%s field %d is %T", c.schema.name, i, v)
	}
	return t, nil
}

// MustField is like FieldValue but panics on error. Use it only for field
// indices fixed by the container's own declaration.
func MustField[T Value](c *Container, i int) T {
	t, err := FieldValue[T](c, i)
	if err != nil {
		// lint:nopanic -- the field index and type are fixed by the schema declaration.
		panic(err)
	}
	return t
}

// MutableContainer stages field writes against a container. It is not safe
// for concurrent use and is spent after Commit.
type MutableContainer struct {
	original  *Container
	dirty     map[int]Value
	committed bool
}

// ContainerSchema returns the schema of the staged container.
func (m *MutableContainer) ContainerSchema() *ContainerSchema {
	return m.original.schema
}

// Set stages v as field i. The tree is not touched until Commit.
func (m *MutableContainer) Set(i int, v Value) error {
	if m.committed {
		return ErrAlreadyCommitted
	}
	fs, err := m.original.schema.FieldSchema(i)
	if err != nil {
		return err
	}
	if err := checkValue(fs, v); err != nil {
		return errors.Wrapf(err, "%s.%s", m.original.schema.name, m.original.schema.fields[i].Name)
	}
	m.dirty[i] = v
	return nil
}

// SetByName stages v as the named field.
func (m *MutableContainer) SetByName(name string, v Value) error {
	if m.committed {
		return ErrAlreadyCommitted
	}
	i, err := m.original.schema.FieldIndex(name)
	if err != nil {
		return err
	}
	return m.Set(i, v)
}

// Get returns the staged field i, or the original one.
func (m *MutableContainer) Get(i int) (Value, error) {
	if m.committed {
		return nil, ErrAlreadyCommitted
	}
	if v, ok := m.dirty[i]; ok {
		return v, nil
	}
	return m.original.Get(i)
}

// IsDirty reports whether any field has been staged.
func (m *MutableContainer) IsDirty() bool {
	return len(m.dirty) > 0
}

// Commit folds the staged writes into a new tree that shares every untouched
// subtree with the original, and returns the resulting value. The mutable
// container cannot be used afterwards.
func (m *MutableContainer) Commit() (Value, error) {
	if m.committed {
		return nil, ErrAlreadyCommitted
	}
	m.committed = true
	commits.WithLabelValues("container").Inc()
	s := m.original.schema
	if len(m.dirty) == 0 {
		return s.CreateFromBackingNode(m.original.node), nil
	}
	updates := make(map[uint64]tree.Node, len(m.dirty))
	for i, v := range m.dirty {
		updates[uint64(i)] = v.BackingNode()
	}
	m.dirty = nil
	root, err := tree.UpdateMany(m.original.node, s.depth, updates)
	if err != nil {
		return nil, err
	}
	return s.CreateFromBackingNode(root), nil
}
