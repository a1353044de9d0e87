// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package position

import (
	"github.com/vechain/stakepool/builtin/stakepool/reverts"
	"github.com/vechain/stakepool/thor"
)

type Status uint8

const (
	StatusNone Status = iota
	StatusActive
	StatusDeactivating
	StatusWithdrawable
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusDeactivating:
		return "deactivating"
	case StatusWithdrawable:
		return "withdrawable"
	default:
		return "none"
	}
}

// Position is the stake of one owner in one pool.
// An unstake leaves a ticket: PendingBase cooling down in the owner's cooldown account.
type Position struct {
	Owner             thor.Address
	Pool              thor.Address
	PrincipalBase     uint64
	Status            Status
	DeactivationEpoch uint64
	PendingBase       uint64
}

func (p *Position) HasTicket() bool {
	return p.PendingBase > 0
}

func (p *Position) requireActive() error {
	if p.Status != StatusActive {
		return reverts.WithMessage(reverts.ErrInvalidState, "position is %v", p.Status)
	}
	if p.HasTicket() {
		return reverts.WithMessage(reverts.ErrInvalidState, "position has %d pending", p.PendingBase)
	}
	return nil
}

// Deposit adds base to the principal of a new or active position.
func (p *Position) Deposit(base uint64) error {
	if p.Status == StatusNone {
		p.Status = StatusActive
	}
	if err := p.requireActive(); err != nil {
		return err
	}
	if p.PrincipalBase+base < p.PrincipalBase {
		return reverts.ErrArithmeticOverflow
	}
	p.PrincipalBase += base
	return nil
}

// BeginUnstake opens a ticket of base at epoch. Principal is reduced by at most
// base and may reach zero while shares remain. The position deactivates only on
// exit, when the owner holds no shares after the redemption.
func (p *Position) BeginUnstake(base, epoch uint64, exit bool) error {
	if err := p.requireActive(); err != nil {
		return err
	}
	if base == 0 {
		return reverts.ErrZeroAmount
	}
	p.PrincipalBase -= min(base, p.PrincipalBase)
	p.PendingBase = base
	p.DeactivationEpoch = epoch
	if exit {
		p.Status = StatusDeactivating
	}
	return nil
}

// MarkWithdrawable records an elapsed cooldown.
func (p *Position) MarkWithdrawable() error {
	if !p.HasTicket() {
		return reverts.WithMessage(reverts.ErrInvalidState, "position has nothing pending")
	}
	if p.Status == StatusDeactivating {
		p.Status = StatusWithdrawable
	}
	return nil
}

// CompleteWithdraw consumes the ticket and reports whether the position is closed.
// Only an exit closes the position, a partial ticket returns it to active.
func (p *Position) CompleteWithdraw() (closed bool, err error) {
	if !p.HasTicket() {
		return false, reverts.WithMessage(reverts.ErrInvalidState, "position has nothing pending")
	}
	if p.Status == StatusDeactivating {
		return false, reverts.ErrCooldownNotElapsed
	}
	p.PendingBase = 0
	p.DeactivationEpoch = 0
	if p.Status == StatusWithdrawable {
		p.Status = StatusNone
		return true, nil
	}
	return false, nil
}
