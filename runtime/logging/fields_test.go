package logging_test

import (
	"fmt"
	"testing"

	"github.com/YoutacRandS-VA/teku/consensus-types/blocks"
	"github.com/YoutacRandS-VA/teku/encoding/ssz/schema"
	"github.com/YoutacRandS-VA/teku/runtime/logging"
	"github.com/YoutacRandS-VA/teku/runtime/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainerFields(t *testing.T) {
	h, err := blocks.DefaultExecutionPayloadHeader(version.Deneb)
	require.NoError(t, err)
	fields := logging.ContainerFields(h)
	assert.Equal(t, "deneb", fields["version"])
	assert.Equal(t, 17, fields["fields"])
	root := h.HashTreeRoot()
	assert.Equal(t, fmt.Sprintf("%#x", root[:6]), fields["root"])

	fields = logging.ContainerFields(schema.Uint64(3))
	assert.Equal(t, "uint64", fields["schema"])
	assert.NotContains(t, fields, "version")
	assert.NotContains(t, fields, "fields")
}

func TestPayloadResultFields(t *testing.T) {
	fields := logging.PayloadResultFields(12, true, false)
	assert.Equal(t, "local", fields["flow"])
	assert.Equal(t, false, fields["blobs"])
	assert.Equal(t, "builder", logging.PayloadResultFields(12, false, false)["flow"])
}
