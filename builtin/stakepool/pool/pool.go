// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/vechain/stakepool/builtin/stakepool/reverts"
	"github.com/vechain/stakepool/builtin/stakepool/rewards"
	"github.com/vechain/stakepool/builtin/stakepool/shares"
	"github.com/vechain/stakepool/thor"
)

// Version of the pool record layout. Zero is an uninitialized pool.
const Version = uint8(1)

// Bumps are the bump seeds of the pool derived addresses.
type Bumps struct {
	Pool              byte
	Mint              byte
	StakeAuthority    byte
	WithdrawAuthority byte
	DelegatedPosition byte
}

// Pool is the aggregate state of a stake pool.
type Pool struct {
	Version uint8
	Name    string

	Authority thor.Address // may pause the pool
	Validator thor.Address // the single validator delegated to
	Treasury  thor.Address // receives the protocol fee

	Mint              thor.Address // claim token mint
	DelegatedPosition thor.Address // the pooled stake account
	StakeAuthority    thor.Address // stakes, splits and mints for the pool
	WithdrawAuthority thor.Address // withdraws from pool stake accounts
	Bumps             Bumps

	FeeBps      uint16
	TotalBase   uint64 // base deposited plus net rewards
	TotalShares uint64 // claim tokens issued
	Paused      bool

	LastUpdateEpoch      uint64
	LastHarvestedBalance uint64

	MinStake uint64
	MaxStake uint64
}

func (p *Pool) Initialized() bool {
	return p.Version != 0
}

func (p *Pool) Totals() shares.Totals {
	return shares.Totals{Base: p.TotalBase, Shares: p.TotalShares}
}

func (p *Pool) SetTotals(t shares.Totals) {
	p.TotalBase = t.Base
	p.TotalShares = t.Shares
}

// Check verifies shares exist exactly when base does and the fee is in range.
func (p *Pool) Check() error {
	if !p.Totals().Consistent() {
		return reverts.WithMessage(reverts.ErrInvalidState, "base %d with %d shares", p.TotalBase, p.TotalShares)
	}
	return rewards.ValidateFee(p.FeeBps)
}
