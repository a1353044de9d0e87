// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakeprogram

// Config of the stake program.
type Config struct {
	// CooldownEpochs is the number of epochs a deactivated account stays deactivating.
	CooldownEpochs uint64 `yaml:"cooldown_epochs"`
	// MinDelegation is the smallest amount accepted by Delegate and Split.
	MinDelegation uint64 `yaml:"min_delegation"`
}

func DefaultConfig() Config {
	return Config{
		CooldownEpochs: 1,
		MinDelegation:  1,
	}
}
