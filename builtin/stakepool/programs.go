// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakepool

import (
	"github.com/vechain/stakepool/builtin/stakeprogram"
	"github.com/vechain/stakepool/builtin/token"
	"github.com/vechain/stakepool/eventdb"
	"github.com/vechain/stakepool/thor"
)

// StakeProgram is the delegated stake subsystem.
type StakeProgram interface {
	Address() thor.Address
	Delegate(funder, account, validator thor.Address, amount uint64, staker, withdrawer thor.Address) error
	Split(from, to thor.Address, amount uint64, staker thor.Address) error
	Deactivate(account, staker thor.Address) error
	QueryState(account thor.Address) (stakeprogram.StakeState, error)
	Withdraw(account, to thor.Address, amount uint64, withdrawer thor.Address) error
}

// TokenProgram is the fungible token subsystem issuing claim tokens.
type TokenProgram interface {
	Address() thor.Address
	InitializeMint(mint, authority thor.Address, decimals uint8) error
	Mint(mint, to thor.Address, amount uint64, authority thor.Address) error
	Burn(mint, from thor.Address, amount uint64, owner thor.Address) error
	Transfer(mint, from, to thor.Address, amount uint64, owner thor.Address) error
	BalanceOf(mint, holder thor.Address) (uint64, error)
	Supply(mint thor.Address) (uint64, error)
}

// Clock reports the current epoch.
type Clock interface {
	Epoch() uint64
}

// EventSink receives the events of successful operations.
type EventSink interface {
	Insert(events []*eventdb.Event) error
}

var (
	_ StakeProgram = (*stakeprogram.StakeProgram)(nil)
	_ TokenProgram = (*token.Token)(nil)
	_ Clock        = (*stakeprogram.ManualClock)(nil)
	_ EventSink    = (*eventdb.EventDB)(nil)
)
