// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package shares converts between base amounts and pool shares.
// Every conversion rounds down, in favor of the pool.
package shares

import (
	"github.com/holiman/uint256"

	"github.com/vechain/stakepool/builtin/stakepool/reverts"
)

// MulDiv returns floor(a*b/d) computed without intermediate overflow.
func MulDiv(a, b, d uint64) (uint64, error) {
	if d == 0 {
		return 0, reverts.WithMessage(reverts.ErrArithmeticOverflow, "division by zero")
	}
	q, overflow := new(uint256.Int).MulDivOverflow(uint256.NewInt(a), uint256.NewInt(b), uint256.NewInt(d))
	if overflow || !q.IsUint64() {
		return 0, reverts.ErrArithmeticOverflow
	}
	return q.Uint64(), nil
}

// ForDeposit returns the shares issued for base given the pool totals.
// An empty pool issues shares one to one.
func ForDeposit(base, totalBase, totalShares uint64) (uint64, error) {
	if base == 0 {
		return 0, reverts.ErrZeroAmount
	}
	if totalShares == 0 && totalBase == 0 {
		return base, nil
	}
	if totalShares == 0 || totalBase == 0 {
		return 0, reverts.WithMessage(reverts.ErrInvalidState, "base %d with %d shares", totalBase, totalShares)
	}
	n, err := MulDiv(base, totalShares, totalBase)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, reverts.WithMessage(reverts.ErrZeroAmount, "deposit of %d issues no shares", base)
	}
	return n, nil
}

// ForRedemption returns the base released by burning shares, of which the caller holds held.
func ForRedemption(shares, totalBase, totalShares, held uint64) (uint64, error) {
	if shares == 0 {
		return 0, reverts.ErrZeroAmount
	}
	if shares > totalShares || shares > held {
		return 0, reverts.WithMessage(reverts.ErrInsufficientShares, "redeem %d of %d held", shares, held)
	}
	base, err := MulDiv(shares, totalBase, totalShares)
	if err != nil {
		return 0, err
	}
	if base == 0 {
		return 0, reverts.WithMessage(reverts.ErrZeroAmount, "%d shares redeem no base", shares)
	}
	return base, nil
}
