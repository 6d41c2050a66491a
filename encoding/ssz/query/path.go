// Package query resolves field paths such as "latest_execution_payload_header.block_hash"
// or "len(validators)" against a schema to generalized indices and merkle proofs.
package query

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidPath is returned for paths that do not follow the path grammar.
var ErrInvalidPath = errors.New("invalid path")

// PathElement is one dot separated step of a path: a field name with an
// optional element index.
type PathElement struct {
	Name  string
	Index *uint64
}

// Path is a parsed query path. Length is set for len(...) queries, which
// address the length of the last element instead of its contents.
type Path struct {
	Length   bool
	Elements []PathElement
}

// String renders the path back in its canonical form.
func (p Path) String() string {
	var sb strings.Builder
	for i, e := range p.Elements {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(e.Name)
		if e.Index != nil {
			sb.WriteByte('[')
			sb.WriteString(strconv.FormatUint(*e.Index, 10))
			sb.WriteByte(']')
		}
	}
	if p.Length {
		return "len(" + sb.String() + ")"
	}
	return sb.String()
}

// ParsePath parses raw into a Path. Field names are snake case. A single
// leading dot is accepted, each step may carry at most one [index], and
// len(...) may only wrap the whole path.
func ParsePath(raw string) (Path, error) {
	var p Path
	body := raw
	if strings.HasPrefix(body, "len(") {
		if !strings.HasSuffix(body, ")") {
			return Path{}, errors.Wrapf(ErrInvalidPath, "unterminated len() in %q", raw)
		}
		body = body[len("len(") : len(body)-1]
		if body == "" {
			return Path{}, errors.Wrapf(ErrInvalidPath, "empty len() in %q", raw)
		}
		p.Length = true
	}
	body = strings.TrimPrefix(body, ".")
	if body == "" {
		return Path{}, errors.Wrapf(ErrInvalidPath, "empty path %q", raw)
	}
	for _, tok := range strings.Split(body, ".") {
		e, err := parseElement(tok)
		if err != nil {
			return Path{}, errors.Wrapf(err, "in %q", raw)
		}
		p.Elements = append(p.Elements, e)
	}
	return p, nil
}

func parseElement(tok string) (PathElement, error) {
	if tok == "" {
		return PathElement{}, errors.Wrap(ErrInvalidPath, "consecutive or trailing dot")
	}
	name, rest := tok, ""
	if i := strings.IndexByte(tok, '['); i >= 0 {
		name, rest = tok[:i], tok[i:]
	}
	if !validName(name) {
		return PathElement{}, errors.Wrapf(ErrInvalidPath, "bad field name %q", name)
	}
	e := PathElement{Name: name}
	if rest == "" {
		return e, nil
	}
	if rest[len(rest)-1] != ']' || strings.Count(rest, "[") != 1 || strings.Count(rest, "]") != 1 {
		return PathElement{}, errors.Wrapf(ErrInvalidPath, "bad index expression %q", rest)
	}
	idx, err := strconv.ParseUint(rest[1:len(rest)-1], 10, 64)
	if err != nil {
		return PathElement{}, errors.Wrapf(ErrInvalidPath, "bad index %q", rest)
	}
	e.Index = &idx
	return e, nil
}

func validName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
