// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakepool

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/stakepool/builtin/stakeprogram"
	"github.com/vechain/stakepool/thor"
)

// Config of the stake pool program.
type Config struct {
	MinStake   uint64 `yaml:"min_stake"`
	MaxStake   uint64 `yaml:"max_stake"`
	PoolSeed   string `yaml:"pool_seed"`
	NameMinLen int    `yaml:"name_min_len"`
	NameMaxLen int    `yaml:"name_max_len"`
	Decimals   uint8  `yaml:"decimals"`

	StakeProgram stakeprogram.Config `yaml:"stake_program"`
}

func DefaultConfig() Config {
	return Config{
		MinStake:     1e9,
		MaxStake:     1e15,
		PoolSeed:     "stake_pool",
		NameMinLen:   3,
		NameMaxLen:   32,
		Decimals:     9,
		StakeProgram: stakeprogram.DefaultConfig(),
	}
}

// LoadConfig reads a YAML config over the defaults. Unknown fields are rejected.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.MinStake == 0 {
		return errors.New("min_stake must be positive")
	}
	if c.MinStake > c.MaxStake {
		return errors.Errorf("min_stake %d exceeds max_stake %d", c.MinStake, c.MaxStake)
	}
	if c.PoolSeed == "" || len(c.PoolSeed) > thor.MaxSeedLength {
		return errors.Errorf("pool_seed must be 1 to %d bytes", thor.MaxSeedLength)
	}
	if c.NameMinLen < 1 || c.NameMinLen > c.NameMaxLen {
		return errors.Errorf("invalid name length range [%d, %d]", c.NameMinLen, c.NameMaxLen)
	}
	return nil
}
