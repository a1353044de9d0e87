// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakeprogram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/builtin/program"
	"github.com/vechain/stakepool/lvldb"
	"github.com/vechain/stakepool/state"
	"github.com/vechain/stakepool/test/datagen"
	"github.com/vechain/stakepool/thor"
)

type fixture struct {
	program *StakeProgram
	state   *state.State
	clock   *ManualClock

	funder    thor.Address
	validator thor.Address
	staker    thor.Address
}

func newFixture(t *testing.T, cooldown uint64) *fixture {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := state.NewStater(db).NewState()
	clock := NewManualClock(10)
	cfg := DefaultConfig()
	cfg.CooldownEpochs = cooldown

	f := &fixture{
		program:   New(thor.BytesToAddress([]byte("stake")), st, clock, cfg),
		state:     st,
		clock:     clock,
		funder:    datagen.RandAddress(),
		validator: datagen.RandAddress(),
		staker:    datagen.RandAddress(),
	}
	require.NoError(t, st.AddBalance(f.funder, 1_000_000))
	return f
}

func (f *fixture) delegate(t *testing.T, account thor.Address, amount uint64) {
	require.NoError(t, f.program.Delegate(f.funder, account, f.validator, amount, f.staker, f.staker))
}

func (f *fixture) assertState(t *testing.T, account thor.Address, status Status, balance uint64) {
	s, err := f.program.QueryState(account)
	require.NoError(t, err)
	assert.Equal(t, status, s.Status, "status of %v", account)
	assert.Equal(t, balance, s.Balance, "balance of %v", account)
}

func TestDelegate(t *testing.T) {
	f := newFixture(t, 1)
	account := datagen.RandAddress()

	assert.ErrorIs(t, f.program.Delegate(f.funder, account, f.validator, 0, f.staker, f.staker), ErrBelowMinDelegation)
	assert.ErrorIs(t, f.program.Delegate(f.funder, account, f.validator, 2_000_000, f.staker, f.staker), state.ErrInsufficientBalance)

	f.delegate(t, account, 1000)
	f.assertState(t, account, StatusActive, 1000)

	// top up
	f.delegate(t, account, 500)
	f.assertState(t, account, StatusActive, 1500)

	assert.ErrorIs(t, f.program.Delegate(f.funder, account, datagen.RandAddress(), 1, f.staker, f.staker), ErrValidatorMismatch)
	assert.ErrorIs(t, f.program.Delegate(f.funder, account, f.validator, 1, f.funder, f.staker), ErrUnauthorized)

	acc, err := f.program.Get(account)
	require.NoError(t, err)
	assert.Equal(t, uint64(1500), acc.Delegation)
	assert.Equal(t, uint64(10), acc.ActivationEpoch)

	owner, err := f.state.GetOwner(account)
	require.NoError(t, err)
	assert.Equal(t, f.program.Address(), owner)

	bal, err := f.state.GetBalance(f.funder)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000-1500), bal)
}

func TestDelegateForeignAccount(t *testing.T) {
	f := newFixture(t, 1)
	account := datagen.RandAddress()
	require.NoError(t, f.state.SetOwner(account, datagen.RandAddress()))

	assert.ErrorIs(t, f.program.Delegate(f.funder, account, f.validator, 10, f.staker, f.staker), program.ErrNotOwned)
}

func TestQueryMissing(t *testing.T) {
	f := newFixture(t, 1)
	_, err := f.program.QueryState(datagen.RandAddress())
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestSplit(t *testing.T) {
	f := newFixture(t, 1)
	from, to := datagen.RandAddress(), datagen.RandAddress()
	f.delegate(t, from, 1000)
	require.NoError(t, f.program.AccrueReward(from, 100))

	assert.ErrorIs(t, f.program.Split(from, to, 10, f.funder), ErrUnauthorized)
	assert.ErrorIs(t, f.program.Split(from, to, 1101, f.staker), ErrInsufficientStake)
	other := datagen.RandAddress()
	f.delegate(t, other, 10)
	assert.ErrorIs(t, f.program.Split(from, other, 10, f.staker), ErrAccountExists)

	require.NoError(t, f.program.Split(from, to, 400, f.staker))
	f.assertState(t, from, StatusActive, 700)
	f.assertState(t, to, StatusActive, 400)

	src, err := f.program.Get(from)
	require.NoError(t, err)
	dst, err := f.program.Get(to)
	require.NoError(t, err)
	assert.Equal(t, uint64(600), src.Delegation)
	assert.Equal(t, uint64(400), dst.Delegation)
	assert.Equal(t, src.Voter, dst.Voter)

	// splitting beyond the delegation carries the surplus without delegation
	extra := datagen.RandAddress()
	require.NoError(t, f.program.Split(from, extra, 700, f.staker))
	src, _ = f.program.Get(from)
	dst, _ = f.program.Get(extra)
	assert.Zero(t, src.Delegation)
	assert.Equal(t, uint64(600), dst.Delegation)
}

func TestSplitIntoFundedAccount(t *testing.T) {
	f := newFixture(t, 1)
	from, to := datagen.RandAddress(), datagen.RandAddress()
	f.delegate(t, from, 1000)
	require.NoError(t, f.state.Transfer(f.funder, to, 7))

	require.NoError(t, f.program.Split(from, to, 400, f.staker))
	f.assertState(t, to, StatusActive, 407)
	dst, err := f.program.Get(to)
	require.NoError(t, err)
	assert.Equal(t, uint64(400), dst.Delegation)

	// the extra balance is surplus, withdrawable while delegated
	require.NoError(t, f.program.Withdraw(to, f.staker, 7, f.staker))
	assert.ErrorIs(t, f.program.Withdraw(to, f.staker, 1, f.staker), ErrInsufficientStake)

	foreign := datagen.RandAddress()
	require.NoError(t, f.state.SetOwner(foreign, datagen.RandAddress()))
	assert.ErrorIs(t, f.program.Split(from, foreign, 10, f.staker), ErrAccountExists)
}

func TestDeactivateAndWithdraw(t *testing.T) {
	f := newFixture(t, 2)
	account, recipient := datagen.RandAddress(), datagen.RandAddress()
	f.delegate(t, account, 1000)

	assert.ErrorIs(t, f.program.Deactivate(account, f.funder), ErrUnauthorized)
	require.NoError(t, f.program.Deactivate(account, f.staker))
	assert.ErrorIs(t, f.program.Deactivate(account, f.staker), ErrInvalidAccountState)
	assert.ErrorIs(t, f.program.AccrueReward(account, 1), ErrInvalidAccountState)
	assert.ErrorIs(t, f.program.Split(account, datagen.RandAddress(), 1, f.staker), ErrInvalidAccountState)

	f.assertState(t, account, StatusDeactivating, 1000)
	assert.ErrorIs(t, f.program.Withdraw(account, recipient, 1, f.staker), ErrInsufficientStake)

	f.clock.Advance(1)
	f.assertState(t, account, StatusDeactivating, 1000)
	f.clock.Advance(1)
	f.assertState(t, account, StatusInactive, 1000)

	assert.ErrorIs(t, f.program.Withdraw(account, recipient, 1, f.funder), ErrUnauthorized)
	require.NoError(t, f.program.Withdraw(account, recipient, 400, f.staker))
	f.assertState(t, account, StatusInactive, 600)

	require.NoError(t, f.program.Withdraw(account, recipient, 600, f.staker))
	exists, err := f.state.Exists(account)
	require.NoError(t, err)
	assert.False(t, exists)

	bal, err := f.state.GetBalance(recipient)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), bal)
}

func TestWithdrawSurplus(t *testing.T) {
	f := newFixture(t, 1)
	account, treasury := datagen.RandAddress(), datagen.RandAddress()
	f.delegate(t, account, 1000)

	assert.ErrorIs(t, f.program.Withdraw(account, treasury, 1, f.staker), ErrInsufficientStake)
	require.NoError(t, f.program.AccrueReward(account, 50))
	assert.ErrorIs(t, f.program.Withdraw(account, treasury, 51, f.staker), ErrInsufficientStake)
	require.NoError(t, f.program.Withdraw(account, treasury, 50, f.staker))
	f.assertState(t, account, StatusActive, 1000)
}

func TestZeroCooldown(t *testing.T) {
	f := newFixture(t, 0)
	account := datagen.RandAddress()
	f.delegate(t, account, 10)
	require.NoError(t, f.program.Deactivate(account, f.staker))
	f.assertState(t, account, StatusInactive, 10)
}
