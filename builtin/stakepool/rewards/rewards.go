// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"github.com/vechain/stakepool/builtin/stakepool/reverts"
	"github.com/vechain/stakepool/builtin/stakepool/shares"
)

// MaxFeeBps is a fee of 100%.
const MaxFeeBps = 10000

// Distribution splits harvested rewards between the treasury and the pool.
type Distribution struct {
	Gross uint64
	Fee   uint64
	Net   uint64
}

// ValidateFee fails unless feeBps is within [0, MaxFeeBps].
func ValidateFee(feeBps uint16) error {
	if feeBps > MaxFeeBps {
		return reverts.WithMessage(reverts.ErrInvalidFee, "%d bps", feeBps)
	}
	return nil
}

// Split charges feeBps of gross, rounding the fee down.
func Split(gross uint64, feeBps uint16) (Distribution, error) {
	if err := ValidateFee(feeBps); err != nil {
		return Distribution{}, err
	}
	fee, err := shares.MulDiv(gross, uint64(feeBps), MaxFeeBps)
	if err != nil {
		return Distribution{}, err
	}
	return Distribution{Gross: gross, Fee: fee, Net: gross - fee}, nil
}

// Compute returns the distribution of the rewards accrued by a delegated
// position holding balance, for a pool with the given totals.
func Compute(balance uint64, totals shares.Totals, feeBps uint16) (Distribution, error) {
	if totals.Shares == 0 {
		return Distribution{}, reverts.WithMessage(reverts.ErrNoRewardsAvailable, "pool has no shares")
	}
	if balance <= totals.Base {
		return Distribution{}, reverts.WithMessage(reverts.ErrNoRewardsAvailable, "balance %d, deposited %d", balance, totals.Base)
	}
	return Split(balance-totals.Base, feeBps)
}
