// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakepool

import (
	"github.com/vechain/stakepool/builtin/stakepool/reverts"
	"github.com/vechain/stakepool/builtin/stakepool/rewards"
	"github.com/vechain/stakepool/builtin/stakepool/shares"
	"github.com/vechain/stakepool/eventdb"
	"github.com/vechain/stakepool/thor"
)

// ClaimRewards harvests the rewards accrued by the delegated position. The fee
// goes to the treasury, the rest raises the base of every share. Anyone may call it.
//
// A pool without new rewards returns ErrNoRewardsAvailable and changes nothing.
func (s *StakePool) ClaimRewards(tx *Tx, poolAddr, treasury thor.Address) (dist rewards.Distribution, err error) {
	logger.Debug("claiming rewards", "pool", poolAddr, "caller", tx.Origin)

	err = s.run("claim", func() ([]*eventdb.Event, error) {
		p, err := s.loadPool(poolAddr)
		if err != nil {
			return nil, err
		}
		if treasury != p.Treasury {
			return nil, reverts.WithMessage(reverts.ErrUnauthorized, "treasury %v is not the pool treasury", treasury)
		}
		if p.TotalShares == 0 {
			return nil, reverts.WithMessage(reverts.ErrNoRewardsAvailable, "pool has no shares")
		}

		st, err := s.stake.QueryState(p.DelegatedPosition)
		if err != nil {
			return nil, reverts.External("query stake", err)
		}
		before := p.Totals()
		dist, err = rewards.Compute(st.Balance, before, p.FeeBps)
		if err != nil {
			return nil, err
		}
		after, err := before.Accrue(dist.Net)
		if err != nil {
			return nil, err
		}
		if shares.RateCmp(after, before) < 0 {
			return nil, reverts.WithMessage(reverts.ErrInvalidState, "rate decreased")
		}

		if dist.Fee > 0 {
			if err := s.stake.Withdraw(p.DelegatedPosition, p.Treasury, dist.Fee, p.WithdrawAuthority); err != nil {
				return nil, reverts.External("withdraw fee", err)
			}
		}

		p.SetTotals(after)
		p.LastHarvestedBalance = st.Balance - dist.Fee
		p.LastUpdateEpoch = s.clock.Epoch()
		if err := s.savePool(poolAddr, p); err != nil {
			return nil, err
		}
		return []*eventdb.Event{{Kind: eventdb.KindClaim, Pool: poolAddr, Account: treasury, Base: dist.Net, Fee: dist.Fee}}, nil
	})
	if err != nil {
		if reverts.IsBenign(err) {
			logger.Debug("no rewards to claim", "pool", poolAddr, "reason", err)
		} else {
			logger.Info("claim rewards failed", "pool", poolAddr, "error", err)
		}
		return rewards.Distribution{}, err
	}

	metricFeesCollected().Add(meterValue(dist.Fee))
	logger.Info("claimed rewards", "pool", poolAddr, "gross", dist.Gross, "fee", dist.Fee, "net", dist.Net)
	return dist, nil
}
