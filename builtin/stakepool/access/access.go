// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package access validates signers, recorded authorities and derived program addresses
// before a stake pool operation writes anything.
package access

import (
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/builtin/stakepool/reverts"
	"github.com/vechain/stakepool/state"
	"github.com/vechain/stakepool/thor"
)

// Signers is the set of identities that signed an invocation.
type Signers map[thor.Address]struct{}

func NewSigners(addrs ...thor.Address) Signers {
	s := make(Signers, len(addrs))
	for _, addr := range addrs {
		s[addr] = struct{}{}
	}
	return s
}

// Recover returns the signer of a secp256k1 signature over hash.
func Recover(hash thor.Bytes32, sig []byte) (thor.Address, error) {
	pub, err := crypto.SigToPub(hash[:], sig)
	if err != nil {
		return thor.Address{}, err
	}
	return thor.PubkeyToAddress(*pub), nil
}

// RecoverSigners recovers the signer of each signature over hash.
func RecoverSigners(hash thor.Bytes32, sigs [][]byte) (Signers, error) {
	s := make(Signers, len(sigs))
	for i, sig := range sigs {
		addr, err := Recover(hash, sig)
		if err != nil {
			return nil, errors.Wrapf(err, "recover signature %d", i)
		}
		s[addr] = struct{}{}
	}
	return s, nil
}

func (s Signers) Has(addr thor.Address) bool {
	_, ok := s[addr]
	return ok
}

// CallHash is the digest signers sign for an invocation.
func CallHash(parts ...[]byte) thor.Bytes32 {
	return thor.Keccak256(parts...)
}

// RequireSigner fails unless id signed the invocation.
func RequireSigner(signers Signers, id thor.Address) error {
	if id.IsZero() || !signers.Has(id) {
		return reverts.WithMessage(reverts.ErrUnauthorized, "missing signature of %v", id)
	}
	return nil
}

// RequireAuthority fails unless caller is the recorded authority.
func RequireAuthority(recorded, caller thor.Address) error {
	if recorded != caller {
		return reverts.WithMessage(reverts.ErrUnauthorized, "%v is not the authority", caller)
	}
	return nil
}

// VerifyOwner fails unless account is owned by program.
func VerifyOwner(st *state.State, account, program thor.Address) error {
	owner, err := st.GetOwner(account)
	if err != nil {
		return err
	}
	if owner != program {
		return reverts.WithMessage(reverts.ErrInvalidAccountOwner, "%v owned by %v", account, owner)
	}
	return nil
}
