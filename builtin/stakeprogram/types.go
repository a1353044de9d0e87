// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakeprogram

import "github.com/vechain/stakepool/thor"

// Status is the activation state of a stake account as seen at an epoch.
type Status uint8

const (
	StatusActive Status = iota + 1
	StatusDeactivating
	StatusInactive
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusDeactivating:
		return "deactivating"
	case StatusInactive:
		return "inactive"
	default:
		return "unknown"
	}
}

// StakeState is the queried state of a stake account.
type StakeState struct {
	Status  Status
	Balance uint64
}

// Account is the record of a stake account. The balance lives in the ledger account.
type Account struct {
	Voter             thor.Address // the validator delegated to
	Staker            thor.Address // may split and deactivate
	Withdrawer        thor.Address // may withdraw
	Delegation        uint64       // principal delegated, rewards accrue above it
	ActivationEpoch   uint64
	Deactivated       bool
	DeactivationEpoch uint64
}

// status returns the account status at epoch.
func (a *Account) status(epoch, cooldown uint64) Status {
	if !a.Deactivated {
		return StatusActive
	}
	if epoch < a.DeactivationEpoch+cooldown {
		return StatusDeactivating
	}
	return StatusInactive
}
