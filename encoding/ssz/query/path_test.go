package query_test

import (
	"testing"

	"github.com/YoutacRandS-VA/teku/encoding/ssz/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func u64(v uint64) *uint64 { return &v }

func TestParsePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected query.Path
		wantErr  bool
	}{
		{
			name:     "simple path",
			path:     "data",
			expected: query.Path{Elements: []query.PathElement{{Name: "data"}}},
		},
		{
			name:     "leading dot",
			path:     ".data",
			expected: query.Path{Elements: []query.PathElement{{Name: "data"}}},
		},
		{name: "trailing dot", path: "data.", wantErr: true},
		{name: "surrounded by dots", path: ".data.", wantErr: true},
		{name: "two leading dots", path: "..data", wantErr: true},
		{name: "empty", path: "", wantErr: true},
		{
			name: "nested path",
			path: "data.target.root",
			expected: query.Path{Elements: []query.PathElement{
				{Name: "data"}, {Name: "target"}, {Name: "root"},
			}},
		},
		{
			name: "indexed step",
			path: "validators[7].effective_balance",
			expected: query.Path{Elements: []query.PathElement{
				{Name: "validators", Index: u64(7)}, {Name: "effective_balance"},
			}},
		},
		{
			name:     "len of top-level field",
			path:     "len(validators)",
			expected: query.Path{Length: true, Elements: []query.PathElement{{Name: "validators"}}},
		},
		{
			name: "len of nested field",
			path: "len(latest_execution_payload_header.extra_data)",
			expected: query.Path{Length: true, Elements: []query.PathElement{
				{Name: "latest_execution_payload_header"}, {Name: "extra_data"},
			}},
		},
		{name: "empty len", path: "len()", wantErr: true},
		{name: "len not at start", path: "data.len(x)", wantErr: true},
		{name: "unterminated len", path: "len(data", wantErr: true},
		{name: "multiple indices", path: "data[0][1]", wantErr: true},
		{name: "negative index", path: "data[-1]", wantErr: true},
		{name: "non-numeric index", path: "data[a]", wantErr: true},
		{name: "missing bracket", path: "data[1", wantErr: true},
		{name: "text after index", path: "data[1]x", wantErr: true},
		{name: "space", path: "data root", wantErr: true},
		{name: "leading digit", path: "1data", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := query.ParsePath(tt.path)
			if tt.wantErr {
				require.ErrorIs(t, err, query.ErrInvalidPath)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPath_String(t *testing.T) {
	for _, raw := range []string{"a.b[3].c", "len(a.b)", "x"} {
		p, err := query.ParsePath(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, p.String())
	}
}
