// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/vechain/stakepool/builtin/stakepool"
	"github.com/vechain/stakepool/builtin/stakeprogram"
	"github.com/vechain/stakepool/builtin/token"
	"github.com/vechain/stakepool/state"
)

// Builtin programs binding.
var (
	Token     = &tokenContract{newContract("Token")}
	Stake     = &stakeContract{newContract("Stake")}
	StakePool = &stakePoolContract{newContract("StakePool")}
)

type (
	tokenContract     struct{ *contract }
	stakeContract     struct{ *contract }
	stakePoolContract struct{ *contract }
)

func (t *tokenContract) WithState(state *state.State) *token.Token {
	return token.New(t.Address, state)
}

func (s *stakeContract) WithState(state *state.State, clock stakeprogram.Clock, config stakeprogram.Config) *stakeprogram.StakeProgram {
	return stakeprogram.New(s.Address, state, clock, config)
}

// WithState binds the stake pool to the builtin stake and token programs.
func (p *stakePoolContract) WithState(state *state.State, clock stakeprogram.Clock, config stakepool.Config) *stakepool.StakePool {
	return stakepool.New(
		p.Address,
		state,
		config,
		Stake.WithState(state, clock, config.StakeProgram),
		Token.WithState(state),
		clock,
	)
}
