package params

import (
	"fmt"

	"github.com/YoutacRandS-VA/teku/consensus-types/primitives"
	log "github.com/sirupsen/logrus"
)

// Option adjusts a config.
type Option func(*BeaconChainConfig)

// WithGenesisValidatorsRoot records the genesis validators root of the chain.
func WithGenesisValidatorsRoot(gvr [32]byte) Option {
	return func(cfg *BeaconChainConfig) {
		cfg.GenesisValidatorsRoot = gvr
		log.WithField("genesisValidatorsRoot", fmt.Sprintf("%#x", gvr)).Debug("Setting genesis validators root")
	}
}

// WithPayloadCacheRetention sets how many slots produced payload results and
// unblinded builder payloads stay cached.
func WithPayloadCacheRetention(payload, builder primitives.Slot) Option {
	return func(cfg *BeaconChainConfig) {
		cfg.ExecutionPayloadCacheRetentionSlots = payload
		cfg.BuilderPayloadCacheRetentionSlots = builder
	}
}

// Apply returns a copy of cfg with opts applied.
func Apply(cfg *BeaconChainConfig, opts ...Option) *BeaconChainConfig {
	c := cfg.Copy()
	for _, o := range opts {
		o(c)
	}
	return c
}
