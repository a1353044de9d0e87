// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package access

import (
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/builtin/stakepool/reverts"
	"github.com/vechain/stakepool/thor"
)

// DerivedAuthority is a program controlled address, the capability a pool uses
// to sign for its stake and token accounts.
type DerivedAuthority struct {
	Program thor.Address
	Seeds   [][]byte
	Bump    byte
	Address thor.Address
}

// NewDerivedAuthority finds the canonical derived address of program for seeds.
func NewDerivedAuthority(program thor.Address, seeds ...[]byte) (DerivedAuthority, error) {
	addr, bump, err := thor.FindDerivedAddress(program, seeds...)
	if err != nil {
		return DerivedAuthority{}, errors.Wrap(err, "derive authority")
	}
	return DerivedAuthority{
		Program: program,
		Seeds:   seeds,
		Bump:    bump,
		Address: addr,
	}, nil
}

// Verify recomputes the address from program, seeds and bump.
func (d DerivedAuthority) Verify() error {
	return VerifyDerived(d.Program, d.Seeds, d.Bump, d.Address)
}

// VerifyDerived fails unless claimed is the derived address of program for seeds and bump.
func VerifyDerived(program thor.Address, seeds [][]byte, bump byte, claimed thor.Address) error {
	addr, err := thor.CreateDerivedAddress(program, bump, seeds...)
	if err != nil || addr != claimed {
		return reverts.WithMessage(reverts.ErrUnauthorized, "%v is not a derived address of %v", claimed, program)
	}
	return nil
}
