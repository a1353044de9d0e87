// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakepool

import (
	"github.com/vechain/stakepool/builtin/stakepool/access"
	"github.com/vechain/stakepool/thor"
)

// Tx is the invocation context of an operation.
type Tx struct {
	Origin  thor.Address // the user acting
	Signers access.Signers
}

// NewTx returns a tx from origin, signed by origin and the extra signers.
func NewTx(origin thor.Address, signers ...thor.Address) *Tx {
	return &Tx{
		Origin:  origin,
		Signers: access.NewSigners(append(signers, origin)...),
	}
}

// NewSignedTx recovers the signers of sigs over hash. The first signer is the origin.
func NewSignedTx(hash thor.Bytes32, sigs [][]byte) (*Tx, error) {
	signers, err := access.RecoverSigners(hash, sigs)
	if err != nil {
		return nil, err
	}
	tx := &Tx{Signers: signers}
	if len(sigs) > 0 {
		if tx.Origin, err = access.Recover(hash, sigs[0]); err != nil {
			return nil, err
		}
	}
	return tx, nil
}
