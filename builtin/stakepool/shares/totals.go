// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package shares

import (
	"github.com/holiman/uint256"

	"github.com/vechain/stakepool/builtin/stakepool/reverts"
)

// Totals is the aggregate base and shares of a pool.
type Totals struct {
	Base   uint64
	Shares uint64
}

// Deposit returns the totals after base was deposited for shares.
func (t Totals) Deposit(base, shares uint64) (Totals, error) {
	b, s := t.Base+base, t.Shares+shares
	if b < t.Base || s < t.Shares {
		return t, reverts.ErrArithmeticOverflow
	}
	return Totals{Base: b, Shares: s}, nil
}

// Redeem returns the totals after shares were redeemed for base.
func (t Totals) Redeem(base, shares uint64) (Totals, error) {
	if base > t.Base || shares > t.Shares {
		return t, reverts.ErrArithmeticOverflow
	}
	return Totals{Base: t.Base - base, Shares: t.Shares - shares}, nil
}

// Accrue returns the totals after net rewards joined the base.
func (t Totals) Accrue(net uint64) (Totals, error) {
	b := t.Base + net
	if b < t.Base {
		return t, reverts.ErrArithmeticOverflow
	}
	return Totals{Base: b, Shares: t.Shares}, nil
}

// Consistent reports whether shares exist exactly when base does.
func (t Totals) Consistent() bool {
	return (t.Shares == 0) == (t.Base == 0)
}

// RateCmp compares the base per share of a and b, returning -1, 0 or +1.
// Empty totals have a rate of one.
func RateCmp(a, b Totals) int {
	ab, as := a.Base, a.Shares
	if as == 0 {
		ab, as = 1, 1
	}
	bb, bs := b.Base, b.Shares
	if bs == 0 {
		bb, bs = 1, 1
	}
	l := new(uint256.Int).Mul(uint256.NewInt(ab), uint256.NewInt(bs))
	r := new(uint256.Int).Mul(uint256.NewInt(bb), uint256.NewInt(as))
	return l.Cmp(r)
}
