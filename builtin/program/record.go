// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package program

import (
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/thor"
)

// ErrNotOwned is returned when an account is owned by another program.
var ErrNotOwned = errors.New("account not owned by program")

// Record is a typed account data abstraction for programs.
// Each record lives in the data of its own account, owned by the program.
type Record[V any] struct {
	context *Context
}

func NewRecord[V any](context *Context) *Record[V] {
	return &Record[V]{context: context}
}

func (r *Record[V]) checkOwner(addr thor.Address) error {
	owner, err := r.context.state.GetOwner(addr)
	if err != nil {
		return err
	}
	if !owner.IsZero() && owner != r.context.address {
		return errors.Wrapf(ErrNotOwned, "account %v owned by %v", addr, owner)
	}
	return nil
}

// Get decodes the record at addr. It returns nil if the account holds no data.
func (r *Record[V]) Get(addr thor.Address) (*V, error) {
	if err := r.checkOwner(addr); err != nil {
		return nil, err
	}
	var value V
	ok, err := r.context.state.DecodeData(addr, &value)
	if err != nil || !ok {
		return nil, err
	}
	return &value, nil
}

// Set encodes value into addr, claiming the account for the program if unowned.
func (r *Record[V]) Set(addr thor.Address, value *V) error {
	if err := r.checkOwner(addr); err != nil {
		return err
	}
	st := r.context.state
	if err := st.SetOwner(addr, r.context.address); err != nil {
		return err
	}
	return st.EncodeData(addr, value)
}

// Delete clears the record. The account is released if it holds no balance.
func (r *Record[V]) Delete(addr thor.Address) error {
	if err := r.checkOwner(addr); err != nil {
		return err
	}
	st := r.context.state
	if err := st.SetData(addr, nil); err != nil {
		return err
	}
	balance, err := st.GetBalance(addr)
	if err != nil {
		return err
	}
	if balance == 0 {
		st.Delete(addr)
	}
	return nil
}
