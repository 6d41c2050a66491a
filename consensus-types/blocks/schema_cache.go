package blocks

import (
	"github.com/YoutacRandS-VA/teku/config/params"
	"github.com/YoutacRandS-VA/teku/consensus-types/primitives"
	"github.com/YoutacRandS-VA/teku/encoding/ssz/schema"
	"github.com/YoutacRandS-VA/teku/time/slots"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
)

const schemaCacheSize = 64

// SchemaDefinitionCache memoizes the fork of recently used epochs so the
// schemas of a slot can be resolved without walking the fork schedule.
type SchemaDefinitionCache struct {
	cfg      *params.BeaconChainConfig
	versions *lru.Cache
}

// NewSchemaDefinitionCache returns a cache over the fork schedule of cfg.
func NewSchemaDefinitionCache(cfg *params.BeaconChainConfig) (*SchemaDefinitionCache, error) {
	c, err := lru.New(schemaCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "could not create schema cache")
	}
	return &SchemaDefinitionCache{cfg: cfg, versions: c}, nil
}

// VersionAtSlot returns the fork active at slot.
func (c *SchemaDefinitionCache) VersionAtSlot(slot primitives.Slot) int {
	epoch := slots.ToEpochWithConfig(c.cfg, slot)
	if v, ok := c.versions.Get(epoch); ok {
		return v.(int)
	}
	v := c.cfg.VersionAtEpoch(epoch)
	c.versions.Add(epoch, v)
	return v
}

// PayloadSchemaAtSlot returns the execution payload schema active at slot.
func (c *SchemaDefinitionCache) PayloadSchemaAtSlot(slot primitives.Slot) (*schema.ContainerSchema, error) {
	return ExecutionPayloadSchemaForVersion(c.VersionAtSlot(slot))
}

// PayloadHeaderSchemaAtSlot returns the execution payload header schema active at slot.
func (c *SchemaDefinitionCache) PayloadHeaderSchemaAtSlot(slot primitives.Slot) (*schema.ContainerSchema, error) {
	return ExecutionPayloadHeaderSchemaForVersion(c.VersionAtSlot(slot))
}
