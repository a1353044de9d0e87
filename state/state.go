// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/stackedmap"
	"github.com/vechain/stakepool/thor"
)

var (
	// ErrInsufficientBalance is returned when debiting more than an account holds.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrBalanceOverflow is returned when a credit does not fit the balance.
	ErrBalanceOverflow = errors.New("balance overflow")
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// State manages the ledger accounts.
type State struct {
	stater *Stater
	sm     *stackedmap.StackedMap[thor.Address, *Account] // keeps revisions of accounts state
}

func newState(stater *Stater) *State {
	s := &State{stater: stater}
	s.reset()
	return s
}

func (s *State) reset() {
	s.sm = stackedmap.New(func(addr thor.Address) (*Account, bool, error) {
		a, err := s.stater.load(addr)
		if err != nil {
			return nil, false, err
		}
		return a, true, nil
	})
}

// getAccount gets account by address. the returned account should not be modified.
func (s *State) getAccount(addr thor.Address) (*Account, error) {
	a, _, err := s.sm.Get(addr)
	if err != nil {
		return nil, &Error{err}
	}
	return a, nil
}

func (s *State) updateAccount(addr thor.Address, f func(cpy *Account) error) error {
	acc, err := s.getAccount(addr)
	if err != nil {
		return err
	}
	cpy := acc.copy()
	if err := f(cpy); err != nil {
		return err
	}
	s.sm.Put(addr, cpy)
	return nil
}

// GetAccount returns a copy of the account at the given address.
func (s *State) GetAccount(addr thor.Address) (Account, error) {
	acc, err := s.getAccount(addr)
	if err != nil {
		return Account{}, err
	}
	return *acc.copy(), nil
}

// GetBalance returns balance for the given address.
func (s *State) GetBalance(addr thor.Address) (uint64, error) {
	acc, err := s.getAccount(addr)
	if err != nil {
		return 0, err
	}
	return acc.Balance, nil
}

// AddBalance credits amount to the given address.
func (s *State) AddBalance(addr thor.Address, amount uint64) error {
	return s.updateAccount(addr, func(cpy *Account) error {
		sum := cpy.Balance + amount
		if sum < cpy.Balance {
			return ErrBalanceOverflow
		}
		cpy.Balance = sum
		return nil
	})
}

// SubBalance debits amount from the given address.
func (s *State) SubBalance(addr thor.Address, amount uint64) error {
	return s.updateAccount(addr, func(cpy *Account) error {
		if cpy.Balance < amount {
			return ErrInsufficientBalance
		}
		cpy.Balance -= amount
		return nil
	})
}

// Transfer moves amount between two accounts. Nothing changes on failure.
func (s *State) Transfer(from, to thor.Address, amount uint64) error {
	rev := s.NewCheckpoint()
	if err := s.SubBalance(from, amount); err != nil {
		s.RevertTo(rev)
		return err
	}
	if err := s.AddBalance(to, amount); err != nil {
		s.RevertTo(rev)
		return err
	}
	return nil
}

// GetOwner returns the owner program of the given address.
func (s *State) GetOwner(addr thor.Address) (thor.Address, error) {
	acc, err := s.getAccount(addr)
	if err != nil {
		return thor.Address{}, err
	}
	return acc.Owner, nil
}

// SetOwner assigns the owner program of the given address.
func (s *State) SetOwner(addr thor.Address, owner thor.Address) error {
	return s.updateAccount(addr, func(cpy *Account) error {
		cpy.Owner = owner
		return nil
	})
}

// GetData returns a copy of the account data.
func (s *State) GetData(addr thor.Address) ([]byte, error) {
	acc, err := s.getAccount(addr)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), acc.Data...), nil
}

// SetData replaces the account data.
func (s *State) SetData(addr thor.Address, data []byte) error {
	return s.updateAccount(addr, func(cpy *Account) error {
		cpy.Data = append([]byte(nil), data...)
		return nil
	})
}

// EncodeData RLP encodes val into the account data.
func (s *State) EncodeData(addr thor.Address, val any) error {
	data, err := rlp.EncodeToBytes(val)
	if err != nil {
		return &Error{errors.Wrap(err, "encode data")}
	}
	return s.SetData(addr, data)
}

// DecodeData RLP decodes the account data into val.
// It returns false without touching val if the account has no data.
func (s *State) DecodeData(addr thor.Address, val any) (bool, error) {
	acc, err := s.getAccount(addr)
	if err != nil {
		return false, err
	}
	if len(acc.Data) == 0 {
		return false, nil
	}
	if err := rlp.DecodeBytes(acc.Data, val); err != nil {
		return false, &Error{errors.Wrap(err, "decode data")}
	}
	return true, nil
}

// Exists returns whether an account exists at the given address.
// See Account.IsEmpty()
func (s *State) Exists(addr thor.Address) (bool, error) {
	acc, err := s.getAccount(addr)
	if err != nil {
		return false, err
	}
	return !acc.IsEmpty(), nil
}

// Delete delete an account at the given address.
// That's set owner, balance and data to zero value.
func (s *State) Delete(addr thor.Address) {
	s.sm.Put(addr, emptyAccount())
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
	if s.sm.Depth() == 0 {
		s.sm.Push()
	}
}

// Stage makes a stage object to commit all changes.
func (s *State) Stage() *Stage {
	changes := make(map[thor.Address]*Account)
	s.sm.Journal(func(addr thor.Address, acc *Account) bool {
		changes[addr] = acc
		return true
	})
	return &Stage{stater: s.stater, changes: changes}
}

// Commit writes all changes into the store and starts a fresh journal.
func (s *State) Commit() error {
	if err := s.Stage().Commit(); err != nil {
		return err
	}
	s.reset()
	return nil
}
