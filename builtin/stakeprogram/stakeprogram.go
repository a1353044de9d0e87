// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package stakeprogram implements delegated stake accounts with an epoch based cooldown.
package stakeprogram

import (
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/builtin/program"
	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/state"
	"github.com/vechain/stakepool/thor"
)

var logger = log.WithContext("pkg", "stakeprogram")

var (
	ErrAccountNotFound     = errors.New("stake account not found")
	ErrAccountExists       = errors.New("stake account already exists")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidAccountState = errors.New("invalid stake account state")
	ErrValidatorMismatch   = errors.New("validator mismatch")
	ErrBelowMinDelegation  = errors.New("below minimum delegation")
	ErrInsufficientStake   = errors.New("insufficient stake")
)

// StakeProgram implements the delegated stake program.
type StakeProgram struct {
	context  *program.Context
	accounts *program.Record[Account]
	clock    Clock
	config   Config
}

// New create a new instance.
func New(addr thor.Address, state *state.State, clock Clock, config Config) *StakeProgram {
	ctx := program.NewContext(addr, state)
	return &StakeProgram{
		context:  ctx,
		accounts: program.NewRecord[Account](ctx),
		clock:    clock,
		config:   config,
	}
}

// Address returns the program address.
func (p *StakeProgram) Address() thor.Address {
	return p.context.Address()
}

// Get returns the stake account record, or nil if absent.
func (p *StakeProgram) Get(account thor.Address) (*Account, error) {
	return p.accounts.Get(account)
}

func (p *StakeProgram) getExisting(account thor.Address) (*Account, error) {
	acc, err := p.accounts.Get(account)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, errors.Wrapf(ErrAccountNotFound, "account %v", account)
	}
	return acc, nil
}

// Delegate funds account with amount from funder and delegates it to validator.
// A new account is created if absent, otherwise an active delegation to the
// same validator is topped up.
func (p *StakeProgram) Delegate(funder, account, validator thor.Address, amount uint64, staker, withdrawer thor.Address) error {
	logger.Debug("delegate", "account", account, "validator", validator, "amount", amount)

	if amount < p.config.MinDelegation || amount == 0 {
		return ErrBelowMinDelegation
	}
	acc, err := p.accounts.Get(account)
	if err != nil {
		return err
	}
	if acc == nil {
		acc = &Account{
			Voter:           validator,
			Staker:          staker,
			Withdrawer:      withdrawer,
			ActivationEpoch: p.clock.Epoch(),
		}
	} else {
		if acc.Staker != staker {
			return ErrUnauthorized
		}
		if acc.Voter != validator {
			return ErrValidatorMismatch
		}
		if acc.Deactivated {
			return ErrInvalidAccountState
		}
	}
	if acc.Delegation+amount < acc.Delegation {
		return state.ErrBalanceOverflow
	}
	acc.Delegation += amount

	if err := p.context.State().Transfer(funder, account, amount); err != nil {
		return errors.Wrap(err, "fund stake account")
	}
	return p.accounts.Set(account, acc)
}

// Split moves amount of balance from an active account into a new account.
// The delegation moves first, any surplus follows it. The target may already
// hold a balance as long as no program owns it.
func (p *StakeProgram) Split(from, to thor.Address, amount uint64, staker thor.Address) error {
	logger.Debug("split", "from", from, "to", to, "amount", amount)

	if amount < p.config.MinDelegation || amount == 0 {
		return ErrBelowMinDelegation
	}
	src, err := p.getExisting(from)
	if err != nil {
		return err
	}
	if src.Staker != staker {
		return ErrUnauthorized
	}
	if src.Deactivated {
		return ErrInvalidAccountState
	}
	// a plain funded account is adopted, its balance stays undelegated surplus
	target, err := p.context.State().GetAccount(to)
	if err != nil {
		return err
	}
	if !target.Owner.IsZero() || len(target.Data) > 0 {
		return errors.Wrapf(ErrAccountExists, "account %v", to)
	}
	balance, err := p.context.State().GetBalance(from)
	if err != nil {
		return err
	}
	if amount > balance {
		return ErrInsufficientStake
	}

	moved := min(amount, src.Delegation)
	src.Delegation -= moved
	dst := &Account{
		Voter:           src.Voter,
		Staker:          src.Staker,
		Withdrawer:      src.Withdrawer,
		Delegation:      moved,
		ActivationEpoch: src.ActivationEpoch,
	}

	if err := p.context.State().Transfer(from, to, amount); err != nil {
		return errors.Wrap(err, "split stake account")
	}
	if err := p.accounts.Set(from, src); err != nil {
		return err
	}
	return p.accounts.Set(to, dst)
}

// Deactivate starts the cooldown of an active account.
func (p *StakeProgram) Deactivate(account, staker thor.Address) error {
	acc, err := p.getExisting(account)
	if err != nil {
		return err
	}
	if acc.Staker != staker {
		return ErrUnauthorized
	}
	if acc.Deactivated {
		return ErrInvalidAccountState
	}
	acc.Deactivated = true
	acc.DeactivationEpoch = p.clock.Epoch()
	logger.Debug("deactivated", "account", account, "epoch", acc.DeactivationEpoch)
	return p.accounts.Set(account, acc)
}

// QueryState returns the status and balance of account at the current epoch.
func (p *StakeProgram) QueryState(account thor.Address) (StakeState, error) {
	acc, err := p.getExisting(account)
	if err != nil {
		return StakeState{}, err
	}
	balance, err := p.context.State().GetBalance(account)
	if err != nil {
		return StakeState{}, err
	}
	return StakeState{
		Status:  acc.status(p.clock.Epoch(), p.config.CooldownEpochs),
		Balance: balance,
	}, nil
}

// Withdraw moves amount from account to the recipient.
// Inactive accounts release their whole balance and are closed when emptied,
// other accounts release only the surplus above their delegation.
func (p *StakeProgram) Withdraw(account, to thor.Address, amount uint64, withdrawer thor.Address) error {
	logger.Debug("withdraw", "account", account, "to", to, "amount", amount)

	acc, err := p.getExisting(account)
	if err != nil {
		return err
	}
	if acc.Withdrawer != withdrawer {
		return ErrUnauthorized
	}
	st := p.context.State()
	balance, err := st.GetBalance(account)
	if err != nil {
		return err
	}

	available := balance
	inactive := acc.status(p.clock.Epoch(), p.config.CooldownEpochs) == StatusInactive
	if !inactive {
		available = balance - min(balance, acc.Delegation)
	}
	if amount > available {
		return ErrInsufficientStake
	}
	if err := st.Transfer(account, to, amount); err != nil {
		return errors.Wrap(err, "withdraw stake")
	}
	if inactive && amount == balance {
		return p.accounts.Delete(account)
	}
	return nil
}

// AccrueReward credits validator rewards to an active account.
func (p *StakeProgram) AccrueReward(account thor.Address, amount uint64) error {
	acc, err := p.getExisting(account)
	if err != nil {
		return err
	}
	if acc.Deactivated {
		return ErrInvalidAccountState
	}
	logger.Debug("accrue reward", "account", account, "amount", amount)
	return p.context.State().AddBalance(account, amount)
}
