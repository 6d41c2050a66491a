package params

import (
	"sync"

	"github.com/pkg/errors"
)

// ErrConfigNotFound is returned when no config is registered under a name.
var ErrConfigNotFound = errors.New("unable to find requested BeaconChainConfig")

type configset struct {
	mu     sync.RWMutex
	active *BeaconChainConfig
	byName map[string]*BeaconChainConfig
}

func newConfigset(cfgs ...*BeaconChainConfig) *configset {
	r := &configset{byName: make(map[string]*BeaconChainConfig)}
	for _, c := range cfgs {
		r.byName[c.ConfigName] = c
	}
	r.active = cfgs[0]
	return r
}

var configs = newConfigset(MainnetConfig(), MinimalSpecConfig())

func (r *configset) getActive() *BeaconChainConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

func (r *configset) setActive(c *BeaconChainConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = c
	r.byName[c.ConfigName] = c
}

func (r *configset) byNameCopy(name string) (*BeaconChainConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byName[name]
	if !ok {
		return nil, errors.Wrap(ErrConfigNotFound, name)
	}
	return c.Copy(), nil
}

// BeaconConfig retrieves beacon chain config.
func BeaconConfig() *BeaconChainConfig {
	return configs.getActive()
}

// OverrideBeaconConfig by replacing the config. The preferred pattern is to
// call BeaconConfig(), change the specific parameters, and then call
// OverrideBeaconConfig(c). Any subsequent calls to params.BeaconConfig() will
// return this new configuration.
func OverrideBeaconConfig(c *BeaconChainConfig) {
	configs.setActive(c)
}

// ByName returns a copy of the config registered under name.
func ByName(name string) (*BeaconChainConfig, error) {
	return configs.byNameCopy(name)
}

// SetActive makes c the active config.
func SetActive(c *BeaconChainConfig) error {
	if c == nil {
		return errors.New("cannot set a nil config active")
	}
	configs.setActive(c)
	return nil
}

// SetActiveWithUndo makes c the active config and returns a function that
// restores the previously active one.
func SetActiveWithUndo(c *BeaconChainConfig) (func() error, error) {
	prev := configs.getActive()
	if err := SetActive(c); err != nil {
		return nil, err
	}
	return func() error {
		return SetActive(prev)
	}, nil
}
