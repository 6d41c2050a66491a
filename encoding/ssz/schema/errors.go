package schema

import "github.com/pkg/errors"

var (
	// ErrSchemaArityMismatch is returned when a container schema is declared with
	// mismatched, missing or duplicate fields.
	ErrSchemaArityMismatch = errors.New("schema field arity mismatch")
	// ErrIndexOutOfRange is returned when accessing a field or element that does not exist.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrUnknownField is returned when looking up a field name the container does not declare.
	ErrUnknownField = errors.New("unknown field")
	// ErrMalformedEncoding is returned when untrusted input does not decode under a schema.
	ErrMalformedEncoding = errors.New("malformed ssz encoding")
	// ErrAlreadyCommitted is returned when a mutable value is used after Commit.
	ErrAlreadyCommitted = errors.New("mutable value already committed")
	// ErrSchemaMismatch is returned when a value of one schema is used where another is expected.
	ErrSchemaMismatch = errors.New("value does not match schema")
)
