// Package logging holds the field sets subsystems attach to log entries so
// the same values are logged under the same keys everywhere.
package logging

import (
	"fmt"

	"github.com/YoutacRandS-VA/teku/consensus-types/primitives"
	"github.com/YoutacRandS-VA/teku/encoding/bytesutil"
	"github.com/YoutacRandS-VA/teku/encoding/ssz/schema"
	"github.com/YoutacRandS-VA/teku/runtime/version"
	"github.com/sirupsen/logrus"
)

type versioned interface {
	Version() int
}

// ContainerFields extracts the schema, a root prefix and, for versioned
// values, the fork of v.
func ContainerFields(v schema.Value) logrus.Fields {
	root := v.HashTreeRoot()
	fields := logrus.Fields{
		"schema": v.Schema().String(),
		"root":   fmt.Sprintf("%#x", bytesutil.Trunc(root[:])),
	}
	if cs, ok := v.Schema().(*schema.ContainerSchema); ok {
		fields["fields"] = cs.FieldCount()
	}
	if vv, ok := v.(versioned); ok {
		fields["version"] = version.String(vv.Version())
	}
	return fields
}

// PayloadResultFields describes a block production result recorded at slot.
func PayloadResultFields(slot primitives.Slot, local, blobs bool) logrus.Fields {
	flow := "builder"
	if local {
		flow = "local"
	}
	return logrus.Fields{
		"slot":  slot,
		"flow":  flow,
		"blobs": blobs,
	}
}
