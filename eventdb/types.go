// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import "github.com/vechain/stakepool/thor"

// Kind names the pool operation that produced an event.
type Kind string

const (
	KindInitialize Kind = "initialize"
	KindStake      Kind = "stake"
	KindUnstake    Kind = "unstake"
	KindWithdraw   Kind = "withdraw"
	KindClaim      Kind = "claim"
	KindPause      Kind = "pause"
	KindResume     Kind = "resume"
)

// Event is the journal record of a successful pool operation.
type Event struct {
	Seq     uint64 // assigned on insert
	Kind    Kind
	Pool    thor.Address
	Account thor.Address // the user, treasury or authority involved
	Base    uint64
	Shares  uint64
	Fee     uint64
	Epoch   uint64
}

type OrderType string

const (
	ASC  OrderType = "ASC"
	DESC OrderType = "DESC"
)

// Range is an inclusive epoch range. To < From means unbounded.
type Range struct {
	From uint64
	To   uint64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

// Filter selects events. Nil fields match everything.
type Filter struct {
	Pool    *thor.Address
	Account *thor.Address
	Kinds   []Kind
	Range   *Range
	Order   OrderType // default asc
	Options *Options
}
