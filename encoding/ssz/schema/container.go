package schema

import (
	"github.com/YoutacRandS-VA/teku/encoding/ssz/tree"
	"github.com/pkg/errors"
)

// Field is a named field of a container.
type Field struct {
	Name   string
	Schema Schema
}

// ContainerOption configures a ContainerSchema.
type ContainerOption func(*ContainerSchema)

// WithFactory routes CreateFromBackingNode through fn, so that decoded and
// committed values come back as the concrete type wrapping the container.
func WithFactory(fn func(c *Container) Value) ContainerOption {
	return func(s *ContainerSchema) {
		s.factory = fn
	}
}

// ContainerSchema is the schema of a fixed, ordered set of heterogeneous
// fields. Field i is stored at leaf i of a tree of depth ceil(log2(N)).
type ContainerSchema struct {
	name        string
	fields      []Field
	index       map[string]int
	depth       uint64
	fixed       bool
	fixedPart   uint64
	minLen      uint64
	maxLen      uint64
	defaultTree tree.Node
	factory     func(c *Container) Value
}

// NewContainerSchema builds a container schema. Every field needs a non-nil
// schema and a unique non-empty name.
func NewContainerSchema(name string, fields []Field, opts ...ContainerOption) (*ContainerSchema, error) {
	if len(fields) == 0 {
		return nil, errors.Wrapf(ErrSchemaArityMismatch, "container %s has no fields", name)
	}
	s := &ContainerSchema{
		name:   name,
		fields: make([]Field, len(fields)),
		index:  make(map[string]int, len(fields)),
		depth:  tree.Depth(uint64(len(fields))),
		fixed:  true,
	}
	copy(s.fields, fields)
	defaults := make([]tree.Node, len(fields))
	for i, f := range s.fields {
		if f.Schema == nil {
			return nil, errors.Wrapf(ErrSchemaArityMismatch, "container %s: field %d has no schema", name, i)
		}
		if f.Name == "" {
			return nil, errors.Wrapf(ErrSchemaArityMismatch, "container %s: field %d has no name", name, i)
		}
		if _, ok := s.index[f.Name]; ok {
			return nil, errors.Wrapf(ErrSchemaArityMismatch, "container %s: duplicate field %q", name, f.Name)
		}
		s.index[f.Name] = i
		s.fixed = s.fixed && f.Schema.IsFixedSize()
		s.fixedPart += fieldFixedSize(f.Schema)
		if f.Schema.IsFixedSize() {
			s.minLen = satAdd(s.minLen, f.Schema.FixedPartSize())
			s.maxLen = satAdd(s.maxLen, f.Schema.FixedPartSize())
		} else {
			s.minLen = satAdd(s.minLen, offsetSize+f.Schema.MinSSZLength())
			s.maxLen = satAdd(s.maxLen, satAdd(offsetSize, f.Schema.MaxSSZLength()))
		}
		defaults[i] = f.Schema.DefaultTree()
	}
	root, err := tree.FromChunks(defaults, s.depth)
	if err != nil {
		return nil, err
	}
	s.defaultTree = root
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// NewContainerSchemaFromLists pairs names and schemas positionally. The two
// lists must be the same length.
func NewContainerSchemaFromLists(name string, names []string, schemas []Schema, opts ...ContainerOption) (*ContainerSchema, error) {
	if len(names) != len(schemas) {
		return nil, errors.Wrapf(ErrSchemaArityMismatch, "container %s: %d names for %d schemas", name, len(names), len(schemas))
	}
	fields := make([]Field, len(names))
	for i := range names {
		fields[i] = Field{Name: names[i], Schema: schemas[i]}
	}
	return NewContainerSchema(name, fields, opts...)
}

// MustContainerSchema is like NewContainerSchema but panics on error. It is
// meant for package level schema declarations.
func MustContainerSchema(name string, fields []Field, opts ...ContainerOption) *ContainerSchema {
	s, err := NewContainerSchema(name, fields, opts...)
	if err != nil {
		// lint:nopanic -- a malformed schema declaration must fail at startup.
		panic(err)
	}
	return s
}

func (s *ContainerSchema) IsFixedSize() bool      { return s.fixed }
func (s *ContainerSchema) FixedPartSize() uint64  { return s.fixedPart }
func (s *ContainerSchema) MinSSZLength() uint64   { return s.minLen }
func (s *ContainerSchema) MaxSSZLength() uint64   { return s.maxLen }
func (s *ContainerSchema) DefaultTree() tree.Node { return s.defaultTree }
func (s *ContainerSchema) TreeDepth() uint64      { return s.depth }
func (*ContainerSchema) IsMixedInLength() bool    { return false }
func (s *ContainerSchema) String() string         { return s.name }
func (s *ContainerSchema) Name() string           { return s.name }
func (s *ContainerSchema) FieldCount() int        { return len(s.fields) }
func (s *ContainerSchema) Default() Value         { return s.CreateFromBackingNode(s.defaultTree) }

// Equal reports whether other has the same ordered field schemas. Names and
// factories are ignored.
func (s *ContainerSchema) Equal(other Schema) bool {
	o, ok := other.(*ContainerSchema)
	if !ok {
		return false
	}
	if o == s {
		return true
	}
	if len(o.fields) != len(s.fields) {
		return false
	}
	for i := range s.fields {
		if !s.fields[i].Schema.Equal(o.fields[i].Schema) {
			return false
		}
	}
	return true
}

// FieldSchema returns the schema of field i.
func (s *ContainerSchema) FieldSchema(i int) (Schema, error) {
	if i < 0 || i >= len(s.fields) {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "%s: field %d of %d", s.name, i, len(s.fields))
	}
	return s.fields[i].Schema, nil
}

// FieldIndex returns the position of the named field.
func (s *ContainerSchema) FieldIndex(name string) (int, error) {
	i, ok := s.index[name]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownField, "%s has no field %q", s.name, name)
	}
	return i, nil
}

// FieldNames returns the field names in declaration order.
func (s *ContainerSchema) FieldNames() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Fields returns a copy of the field list.
func (s *ContainerSchema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// FieldGIndex returns the generalized index of field i below the container root.
func (s *ContainerSchema) FieldGIndex(i int) (tree.GIndex, error) {
	if i < 0 || i >= len(s.fields) {
		return 0, errors.Wrapf(ErrIndexOutOfRange, "%s: field %d of %d", s.name, i, len(s.fields))
	}
	return tree.ToGIndex(s.depth, uint64(i)), nil
}

// CreateFromBackingNode wraps n, through the factory when one is set.
func (s *ContainerSchema) CreateFromBackingNode(n tree.Node) Value {
	c := &Container{schema: s, node: n}
	if s.factory != nil {
		return s.factory(c)
	}
	return c
}

func (s *ContainerSchema) SizeOf(n tree.Node) uint64 {
	if s.fixed {
		return s.fixedPart
	}
	return sizeOfComposite(s.schemas(), mustLeaves(n, s.depth, uint64(len(s.fields))))
}

func (s *ContainerSchema) Encode(v Value) ([]byte, error) { return encodeValue(s, v) }
func (s *ContainerSchema) Decode(b []byte) (Value, error) { return decodeValue(s, b) }

func (s *ContainerSchema) encodeNode(dst []byte, n tree.Node) []byte {
	return encodeComposite(dst, s.schemas(), mustLeaves(n, s.depth, uint64(len(s.fields))))
}

func (s *ContainerSchema) decodeNode(b []byte) (tree.Node, error) {
	nodes, err := decodeComposite(b, s.schemas())
	if err != nil {
		return nil, errors.Wrap(err, s.name)
	}
	return tree.FromChunks(nodes, s.depth)
}

func (s *ContainerSchema) schemas() []Schema {
	out := make([]Schema, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Schema
	}
	return out
}
