// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakepool

import (
	"github.com/vechain/stakepool/builtin/stakepool/access"
	"github.com/vechain/stakepool/builtin/stakepool/pool"
	"github.com/vechain/stakepool/builtin/stakepool/position"
	"github.com/vechain/stakepool/builtin/stakepool/reverts"
	"github.com/vechain/stakepool/builtin/stakepool/shares"
	"github.com/vechain/stakepool/builtin/stakeprogram"
	"github.com/vechain/stakepool/eventdb"
	"github.com/vechain/stakepool/thor"
)

func requireActive(p *pool.Pool) error {
	if p.Paused {
		return reverts.ErrPoolPaused
	}
	return nil
}

// Stake deposits amount of base from the origin into the pool and mints the
// corresponding claim tokens to it. It returns the shares minted.
func (s *StakePool) Stake(tx *Tx, poolAddr, validator thor.Address, amount uint64) (minted uint64, err error) {
	logger.Debug("staking", "pool", poolAddr, "owner", tx.Origin, "amount", amount)

	err = s.run("stake", func() ([]*eventdb.Event, error) {
		if err := access.RequireSigner(tx.Signers, tx.Origin); err != nil {
			return nil, err
		}
		p, err := s.loadPool(poolAddr)
		if err != nil {
			return nil, err
		}
		if err := requireActive(p); err != nil {
			return nil, err
		}
		if validator != p.Validator {
			return nil, reverts.WithMessage(reverts.ErrUnauthorized, "validator %v is not the pool validator", validator)
		}
		if amount == 0 {
			return nil, reverts.ErrZeroAmount
		}
		if amount < p.MinStake {
			return nil, reverts.WithMessage(reverts.ErrBelowMinimumStake, "%d < %d", amount, p.MinStake)
		}
		if amount > p.MaxStake {
			return nil, reverts.WithMessage(reverts.ErrAboveMaximumStake, "%d > %d", amount, p.MaxStake)
		}

		pos, err := s.positions.Get(poolAddr, tx.Origin)
		if err != nil {
			return nil, err
		}
		if pos == nil {
			pos = &position.Position{Owner: tx.Origin, Pool: poolAddr}
		}
		if err := pos.Deposit(amount); err != nil {
			return nil, err
		}

		minted, err = shares.ForDeposit(amount, p.TotalBase, p.TotalShares)
		if err != nil {
			return nil, err
		}
		totals, err := p.Totals().Deposit(amount, minted)
		if err != nil {
			return nil, err
		}

		if err := s.stake.Delegate(tx.Origin, p.DelegatedPosition, p.Validator, amount, p.StakeAuthority, p.WithdrawAuthority); err != nil {
			return nil, reverts.External("delegate", err)
		}
		if err := s.token.Mint(p.Mint, tx.Origin, minted, p.StakeAuthority); err != nil {
			return nil, reverts.External("mint", err)
		}

		p.SetTotals(totals)
		if err := s.positions.Set(pos); err != nil {
			return nil, err
		}
		if err := s.savePool(poolAddr, p); err != nil {
			return nil, err
		}
		return []*eventdb.Event{{Kind: eventdb.KindStake, Pool: poolAddr, Account: tx.Origin, Base: amount, Shares: minted}}, nil
	})
	if err != nil {
		logger.Info("stake failed", "pool", poolAddr, "owner", tx.Origin, "error", err)
		return 0, err
	}

	logger.Info("staked", "pool", poolAddr, "owner", tx.Origin, "amount", amount, "shares", minted)
	return minted, nil
}

// Unstake burns shares of the origin and moves the base they redeem into the
// origin's cooldown stake account, which starts deactivating. It returns the base.
func (s *StakePool) Unstake(tx *Tx, poolAddr thor.Address, amount uint64) (base uint64, err error) {
	logger.Debug("unstaking", "pool", poolAddr, "owner", tx.Origin, "shares", amount)

	err = s.run("unstake", func() ([]*eventdb.Event, error) {
		if err := access.RequireSigner(tx.Signers, tx.Origin); err != nil {
			return nil, err
		}
		p, err := s.loadPool(poolAddr)
		if err != nil {
			return nil, err
		}
		if err := requireActive(p); err != nil {
			return nil, err
		}
		pos, err := s.positions.Get(poolAddr, tx.Origin)
		if err != nil {
			return nil, err
		}
		if pos == nil {
			// shares received by transfer carry no principal
			pos = &position.Position{Owner: tx.Origin, Pool: poolAddr, Status: position.StatusActive}
		}

		held, err := s.token.BalanceOf(p.Mint, tx.Origin)
		if err != nil {
			return nil, reverts.External("balance", err)
		}
		base, err = shares.ForRedemption(amount, p.TotalBase, p.TotalShares, held)
		if err != nil {
			return nil, err
		}
		totals, err := p.Totals().Redeem(base, amount)
		if err != nil {
			return nil, err
		}
		if err := pos.BeginUnstake(base, s.clock.Epoch(), held == amount); err != nil {
			return nil, err
		}

		cooldown, err := s.CooldownAccount(poolAddr, tx.Origin)
		if err != nil {
			return nil, err
		}
		if err := s.token.Burn(p.Mint, tx.Origin, amount, tx.Origin); err != nil {
			return nil, reverts.External("burn", err)
		}
		if err := s.stake.Split(p.DelegatedPosition, cooldown, base, p.StakeAuthority); err != nil {
			return nil, reverts.External("split", err)
		}
		if err := s.stake.Deactivate(cooldown, p.StakeAuthority); err != nil {
			return nil, reverts.External("deactivate", err)
		}

		p.SetTotals(totals)
		if err := s.positions.Set(pos); err != nil {
			return nil, err
		}
		if err := s.savePool(poolAddr, p); err != nil {
			return nil, err
		}
		return []*eventdb.Event{{Kind: eventdb.KindUnstake, Pool: poolAddr, Account: tx.Origin, Base: base, Shares: amount}}, nil
	})
	if err != nil {
		logger.Info("unstake failed", "pool", poolAddr, "owner", tx.Origin, "error", err)
		return 0, err
	}

	logger.Info("unstaked", "pool", poolAddr, "owner", tx.Origin, "base", base)
	return base, nil
}

// WithdrawStake pays out the cooldown stake account of the origin once the
// stake program reports it inactive. It returns the amount withdrawn.
func (s *StakePool) WithdrawStake(tx *Tx, poolAddr thor.Address) (withdrawn uint64, err error) {
	logger.Debug("withdrawing stake", "pool", poolAddr, "owner", tx.Origin)

	err = s.run("withdraw", func() ([]*eventdb.Event, error) {
		if err := access.RequireSigner(tx.Signers, tx.Origin); err != nil {
			return nil, err
		}
		p, err := s.loadPool(poolAddr)
		if err != nil {
			return nil, err
		}
		pos, err := s.positions.Get(poolAddr, tx.Origin)
		if err != nil {
			return nil, err
		}
		if pos == nil || !pos.HasTicket() {
			return nil, reverts.WithMessage(reverts.ErrInvalidState, "nothing to withdraw")
		}

		cooldown, err := s.CooldownAccount(poolAddr, tx.Origin)
		if err != nil {
			return nil, err
		}
		st, err := s.stake.QueryState(cooldown)
		if err != nil {
			return nil, reverts.External("query stake", err)
		}
		if st.Status != stakeprogram.StatusInactive {
			return nil, reverts.WithMessage(reverts.ErrCooldownNotElapsed, "deactivated at epoch %d", pos.DeactivationEpoch)
		}
		if err := pos.MarkWithdrawable(); err != nil {
			return nil, err
		}

		withdrawn = st.Balance
		if err := s.stake.Withdraw(cooldown, tx.Origin, withdrawn, p.WithdrawAuthority); err != nil {
			return nil, reverts.External("withdraw", err)
		}
		closed, err := pos.CompleteWithdraw()
		if err != nil {
			return nil, err
		}
		if closed {
			err = s.positions.Delete(poolAddr, tx.Origin)
		} else {
			err = s.positions.Set(pos)
		}
		if err != nil {
			return nil, err
		}
		return []*eventdb.Event{{Kind: eventdb.KindWithdraw, Pool: poolAddr, Account: tx.Origin, Base: withdrawn}}, nil
	})
	if err != nil {
		logger.Info("withdraw stake failed", "pool", poolAddr, "owner", tx.Origin, "error", err)
		return 0, err
	}

	logger.Info("withdrew stake", "pool", poolAddr, "owner", tx.Origin, "amount", withdrawn)
	return withdrawn, nil
}
