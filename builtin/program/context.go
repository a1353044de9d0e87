// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package program

import (
	"github.com/vechain/stakepool/state"
	"github.com/vechain/stakepool/thor"
)

// Context binds a program address to the ledger it operates on.
type Context struct {
	address thor.Address
	state   *state.State
}

func NewContext(address thor.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) Address() thor.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}

// Slot returns a program private address for the given seeds.
// Unlike Derive, the result may lie on the curve and is never used as a signer.
func (c *Context) Slot(seeds ...[]byte) thor.Address {
	h := thor.Blake2b(append([][]byte{c.address[:]}, seeds...)...)
	return thor.BytesToAddress(h[12:])
}

// Derive finds the canonical derived address of this program for seeds.
func (c *Context) Derive(seeds ...[]byte) (thor.Address, byte, error) {
	return thor.FindDerivedAddress(c.address, seeds...)
}
