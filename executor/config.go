// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package executor

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/platformcore/drive/drive"
)

// Config holds the execution parameters. Every validator of a network must
// run with the same values.
type Config struct {
	EpochDurationMs   int64  `yaml:"epoch_duration_ms"`
	PaidEpochLag      uint16 `yaml:"paid_epoch_lag"`
	TriggersEnabled   bool   `yaml:"triggers_enabled"`
	BaseProcessingFee uint64 `yaml:"base_processing_fee"`
	StorageFeePerByte uint64 `yaml:"storage_fee_per_byte"`
	FeeMultiplier     uint64 `yaml:"fee_multiplier"`
	ContractCacheSize int    `yaml:"contract_cache_size"`
	GenesisTimeMs     int64  `yaml:"genesis_time_ms"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		EpochDurationMs:   drive.DefaultEpochDuration,
		PaidEpochLag:      2,
		TriggersEnabled:   true,
		BaseProcessingFee: 10_000,
		StorageFeePerByte: 27_000,
		FeeMultiplier:     drive.DefaultFeeMultiplier,
		ContractCacheSize: 256,
	}
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	if c.EpochDurationMs <= 0 {
		return errors.Errorf("epoch_duration_ms must be positive, got %d", c.EpochDurationMs)
	}
	if c.PaidEpochLag == 0 {
		return errors.New("paid_epoch_lag must be at least 1")
	}
	if c.FeeMultiplier == 0 {
		return errors.New("fee_multiplier must be positive")
	}
	if c.ContractCacheSize <= 0 {
		return errors.Errorf("contract_cache_size must be positive, got %d", c.ContractCacheSize)
	}
	if c.GenesisTimeMs < 0 {
		return errors.Errorf("genesis_time_ms must not be negative, got %d", c.GenesisTimeMs)
	}
	return nil
}

// LoadConfig reads a yaml file over the default configuration.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// Marshal encodes the configuration as yaml.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
