package params

import (
	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// UnmarshalConfig applies the YAML document b on top of a copy of base.
// Keys that are absent keep the base value.
func UnmarshalConfig(b []byte, base *BeaconChainConfig) (*BeaconChainConfig, error) {
	if base == nil {
		base = MainnetConfig()
	}
	conf := base.Copy()
	if err := yaml.Unmarshal(b, conf); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config yaml")
	}
	if err := validate(conf); err != nil {
		return nil, err
	}
	return conf, nil
}

// LoadChainConfigFile reads a YAML config from path on fs and makes it the
// active config. The file's PRESET_BASE selects the base it overrides.
func LoadChainConfigFile(fs afero.Fs, path string) (*BeaconChainConfig, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read config file %s", path)
	}
	var preset struct {
		PresetBase string `json:"PRESET_BASE"`
	}
	if err := yaml.Unmarshal(b, &preset); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config yaml")
	}
	base := MainnetConfig()
	if preset.PresetBase == MinimalName {
		base = MinimalSpecConfig()
	}
	conf, err := UnmarshalConfig(b, base)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"name":   conf.ConfigName,
		"preset": conf.PresetBase,
		"path":   path,
	}).Info("Loaded chain config file")
	return conf, SetActive(conf)
}

func validate(c *BeaconChainConfig) error {
	for name, v := range map[string][]byte{
		"GENESIS_FORK_VERSION":   c.GenesisForkVersion,
		"ALTAIR_FORK_VERSION":    c.AltairForkVersion,
		"BELLATRIX_FORK_VERSION": c.BellatrixForkVersion,
		"CAPELLA_FORK_VERSION":   c.CapellaForkVersion,
		"DENEB_FORK_VERSION":     c.DenebForkVersion,
		"ELECTRA_FORK_VERSION":   c.ElectraForkVersion,
	} {
		if len(v) != 4 {
			return errors.Errorf("%s must be 4 bytes, got %d", name, len(v))
		}
	}
	if c.SlotsPerEpoch == 0 || c.SecondsPerSlot == 0 {
		return errors.New("SLOTS_PER_EPOCH and SECONDS_PER_SLOT must be non-zero")
	}
	forks := c.forks()
	for i := 1; i < len(forks); i++ {
		if forks[i].epoch < forks[i-1].epoch {
			return errors.Errorf("%s fork epoch %d precedes the previous fork", c.ConfigName, forks[i].epoch)
		}
	}
	return nil
}
