// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements a fungible token program over the ledger.
// Mint records live at the mint address, balances in program private slots.
package token

import (
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/builtin/program"
	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/state"
	"github.com/vechain/stakepool/thor"
)

var logger = log.WithContext("pkg", "token")

var (
	ErrAlreadyInitialized = errors.New("mint already initialized")
	ErrUninitialized      = errors.New("mint not initialized")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrOverflow           = errors.New("amount overflow")
	ErrZeroAmount         = errors.New("zero amount")
)

// Mint is the record of a token mint.
type Mint struct {
	Authority thor.Address
	Supply    uint64
	Decimals  uint8
}

// Holding is the token balance of a holder.
type Holding struct {
	Mint   thor.Address
	Holder thor.Address
	Amount uint64
}

// Token implements the token program.
type Token struct {
	context  *program.Context
	mints    *program.Record[Mint]
	holdings *program.Record[Holding]
}

// New create a new instance.
func New(addr thor.Address, state *state.State) *Token {
	ctx := program.NewContext(addr, state)
	return &Token{
		context:  ctx,
		mints:    program.NewRecord[Mint](ctx),
		holdings: program.NewRecord[Holding](ctx),
	}
}

// Address returns the program address.
func (t *Token) Address() thor.Address {
	return t.context.Address()
}

func (t *Token) holdingAddress(mint, holder thor.Address) thor.Address {
	return t.context.Slot([]byte("holding"), mint[:], holder[:])
}

func (t *Token) getMint(mint thor.Address) (*Mint, error) {
	m, err := t.mints.Get(mint)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrUninitialized
	}
	return m, nil
}

func (t *Token) getHolding(mint, holder thor.Address) (*Holding, error) {
	h, err := t.holdings.Get(t.holdingAddress(mint, holder))
	if err != nil {
		return nil, err
	}
	if h == nil {
		return &Holding{Mint: mint, Holder: holder}, nil
	}
	return h, nil
}

func (t *Token) setHolding(h *Holding) error {
	addr := t.holdingAddress(h.Mint, h.Holder)
	if h.Amount == 0 {
		return t.holdings.Delete(addr)
	}
	return t.holdings.Set(addr, h)
}

// InitializeMint creates a mint controlled by authority.
func (t *Token) InitializeMint(mint, authority thor.Address, decimals uint8) error {
	m, err := t.mints.Get(mint)
	if err != nil {
		return err
	}
	if m != nil {
		return ErrAlreadyInitialized
	}
	logger.Debug("initialize mint", "mint", mint, "authority", authority)
	return t.mints.Set(mint, &Mint{Authority: authority, Decimals: decimals})
}

// Mint issues amount to holder. Only the mint authority may mint.
func (t *Token) Mint(mint, to thor.Address, amount uint64, authority thor.Address) error {
	if amount == 0 {
		return ErrZeroAmount
	}
	m, err := t.getMint(mint)
	if err != nil {
		return err
	}
	if m.Authority != authority {
		return ErrUnauthorized
	}
	h, err := t.getHolding(mint, to)
	if err != nil {
		return err
	}
	if m.Supply+amount < m.Supply || h.Amount+amount < h.Amount {
		return ErrOverflow
	}
	m.Supply += amount
	h.Amount += amount
	if err := t.mints.Set(mint, m); err != nil {
		return err
	}
	return t.setHolding(h)
}

// Burn destroys amount held by from. The owner must be the holder.
func (t *Token) Burn(mint, from thor.Address, amount uint64, owner thor.Address) error {
	if amount == 0 {
		return ErrZeroAmount
	}
	if owner != from {
		return ErrUnauthorized
	}
	m, err := t.getMint(mint)
	if err != nil {
		return err
	}
	h, err := t.getHolding(mint, from)
	if err != nil {
		return err
	}
	if h.Amount < amount {
		return ErrInsufficientFunds
	}
	h.Amount -= amount
	m.Supply -= amount
	if err := t.mints.Set(mint, m); err != nil {
		return err
	}
	return t.setHolding(h)
}

// Transfer moves amount between holders. The owner must be the sender.
func (t *Token) Transfer(mint, from, to thor.Address, amount uint64, owner thor.Address) error {
	if amount == 0 {
		return ErrZeroAmount
	}
	if owner != from {
		return ErrUnauthorized
	}
	if _, err := t.getMint(mint); err != nil {
		return err
	}
	src, err := t.getHolding(mint, from)
	if err != nil {
		return err
	}
	if src.Amount < amount {
		return ErrInsufficientFunds
	}
	if from == to {
		return nil
	}
	dst, err := t.getHolding(mint, to)
	if err != nil {
		return err
	}
	if dst.Amount+amount < dst.Amount {
		return ErrOverflow
	}
	src.Amount -= amount
	dst.Amount += amount
	if err := t.setHolding(src); err != nil {
		return err
	}
	return t.setHolding(dst)
}

// BalanceOf returns the amount held by holder.
func (t *Token) BalanceOf(mint, holder thor.Address) (uint64, error) {
	h, err := t.getHolding(mint, holder)
	if err != nil {
		return 0, err
	}
	return h.Amount, nil
}

// Supply returns the total issued amount of the mint.
func (t *Token) Supply(mint thor.Address) (uint64, error) {
	m, err := t.getMint(mint)
	if err != nil {
		return 0, err
	}
	return m.Supply, nil
}
