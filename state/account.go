// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/kv"
	"github.com/vechain/stakepool/thor"
)

// Account is the ledger representation of an account.
// RLP encoded objects are stored in the account bucket.
type Account struct {
	Owner   thor.Address // the program allowed to mutate Data and debit Balance
	Balance uint64
	Data    []byte
}

// IsEmpty returns if an account is empty.
// An empty account has zero balance, no owner and no data.
func (a *Account) IsEmpty() bool {
	return a.Balance == 0 &&
		a.Owner.IsZero() &&
		len(a.Data) == 0
}

func (a *Account) copy() *Account {
	cpy := *a
	if a.Data != nil {
		cpy.Data = append([]byte(nil), a.Data...)
	}
	return &cpy
}

func emptyAccount() *Account {
	return &Account{}
}

// loadAccount load an account object by address from the store.
// It returns empty account is no account found at the address.
func loadAccount(getter kv.Getter, addr thor.Address) (*Account, error) {
	data, err := getter.Get(addr[:])
	if err != nil {
		if getter.IsNotFound(err) {
			return emptyAccount(), nil
		}
		return nil, errors.Wrap(err, "get account")
	}
	var a Account
	if err := rlp.DecodeBytes(data, &a); err != nil {
		return nil, errors.Wrap(err, "decode account")
	}
	return &a, nil
}

// saveAccount save account into the store at given address.
// If the given account is empty, the value for given address is deleted.
func saveAccount(putter kv.Putter, addr thor.Address, a *Account) error {
	if a.IsEmpty() {
		return putter.Delete(addr[:])
	}

	data, err := rlp.EncodeToBytes(a)
	if err != nil {
		return errors.Wrap(err, "encode account")
	}
	return putter.Put(addr[:], data)
}
