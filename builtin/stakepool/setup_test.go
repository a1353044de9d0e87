// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakepool

import (
	"sync"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/builtin/stakepool/position"
	"github.com/vechain/stakepool/builtin/stakeprogram"
	"github.com/vechain/stakepool/builtin/token"
	"github.com/vechain/stakepool/eventdb"
	"github.com/vechain/stakepool/lvldb"
	"github.com/vechain/stakepool/state"
	"github.com/vechain/stakepool/test/datagen"
	"github.com/vechain/stakepool/thor"
)

var (
	stakeAddr = thor.BytesToAddress([]byte("Stake"))
	tokenAddr = thor.BytesToAddress([]byte("Token"))
	poolProg  = thor.BytesToAddress([]byte("StakePool"))
)

type testEnv struct {
	state  *state.State
	clock  *stakeprogram.ManualClock
	stake  *stakeprogram.StakeProgram
	token  *token.Token
	sp     *StakePool
	events *eventdb.EventDB

	authority thor.Address
	validator thor.Address
	treasury  thor.Address
	pool      thor.Address
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.MinStake = 1
	cfg.MaxStake = 1e15
	cfg.StakeProgram.CooldownEpochs = 1
	return cfg
}

func newEnv(t *testing.T) *testEnv {
	return newEnvWithConfig(t, testConfig())
}

func newEnvWithConfig(t *testing.T, cfg Config) *testEnv {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	events, err := eventdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { events.Close() })

	st := state.NewStater(db).NewState()
	clock := stakeprogram.NewManualClock(1)
	stake := stakeprogram.New(stakeAddr, st, clock, cfg.StakeProgram)
	tk := token.New(tokenAddr, st)

	sp := New(poolProg, st, cfg, stake, tk, clock)
	sp.SetEventSink(events)

	return &testEnv{
		state:     st,
		clock:     clock,
		stake:     stake,
		token:     tk,
		sp:        sp,
		events:    events,
		authority: datagen.RandAddress(),
		validator: datagen.RandAddress(),
		treasury:  datagen.RandAddress(),
	}
}

// newPool returns an env with an initialized pool charging feeBps.
func newPool(t *testing.T, feeBps uint16) *testEnv {
	env := newEnv(t)
	env.initialize(t, feeBps)
	return env
}

func (e *testEnv) initialize(t *testing.T, feeBps uint16) {
	addr, err := e.sp.Initialize(NewTx(e.authority), InitParams{
		Name:      "test pool",
		FeeBps:    feeBps,
		Validator: e.validator,
		Treasury:  e.treasury,
		Authority: e.authority,
	})
	require.NoError(t, err)
	e.pool = addr
}

// newUser returns a funded user.
func (e *testEnv) newUser(t *testing.T, balance uint64) thor.Address {
	user := datagen.RandAddress()
	require.NoError(t, e.state.AddBalance(user, balance))
	return user
}

func (e *testEnv) balance(t *testing.T, addr thor.Address) uint64 {
	bal, err := e.state.GetBalance(addr)
	require.NoError(t, err)
	return bal
}

func (e *testEnv) shares(t *testing.T, holder thor.Address) uint64 {
	p, err := e.sp.Pool(e.pool)
	require.NoError(t, err)
	bal, err := e.token.BalanceOf(p.Mint, holder)
	require.NoError(t, err)
	return bal
}

// reward credits amount to the delegated position of the pool.
func (e *testEnv) reward(t *testing.T, amount uint64) {
	p, err := e.sp.Pool(e.pool)
	require.NoError(t, err)
	require.NoError(t, e.stake.AccrueReward(p.DelegatedPosition, amount))
}

// digest fingerprints every uncommitted ledger change.
func (e *testEnv) digest(t *testing.T) thor.Bytes32 {
	h, err := e.state.Stage().Hash()
	require.NoError(t, err)
	return h
}

type TestFunc func(t *testing.T)

type TestSequence struct {
	env *testEnv

	funcs []TestFunc
	mu    sync.Mutex
}

func NewSequence(env *testEnv) *TestSequence {
	return &TestSequence{funcs: make([]TestFunc, 0), env: env}
}

func (st *TestSequence) AddFunc(f TestFunc) *TestSequence {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.funcs = append(st.funcs, f)
	return st
}

func (st *TestSequence) Stake(user thor.Address, amount, expectedShares uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		n, err := st.env.sp.Stake(NewTx(user), st.env.pool, st.env.validator, amount)
		if err != nil {
			t.Fatalf("failed to stake %d for %s: %v", amount, user, err)
		}
		assert.Equal(t, expectedShares, n, "shares minted for %d", amount)
		t.Logf("staked %d for %s, minted %d", amount, user, n)
	})
}

func (st *TestSequence) Unstake(user thor.Address, shares, expectedBase uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		base, err := st.env.sp.Unstake(NewTx(user), st.env.pool, shares)
		if err != nil {
			t.Fatalf("failed to unstake %d for %s: %v", shares, user, err)
		}
		assert.Equal(t, expectedBase, base, "base redeemed for %d shares", shares)
		t.Logf("unstaked %d shares for %s, redeemed %d", shares, user, base)
	})
}

func (st *TestSequence) Withdraw(user thor.Address, expected uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		amount, err := st.env.sp.WithdrawStake(NewTx(user), st.env.pool)
		if err != nil {
			t.Fatalf("failed to withdraw for %s: %v", user, err)
		}
		assert.Equal(t, expected, amount)
		t.Logf("withdrew %d for %s", amount, user)
	})
}

func (st *TestSequence) Reward(amount uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		st.env.reward(t, amount)
		t.Logf("accrued reward %d", amount)
	})
}

func (st *TestSequence) Claim(expectedFee, expectedNet uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		d, err := st.env.sp.ClaimRewards(NewTx(datagen.RandAddress()), st.env.pool, st.env.treasury)
		if err != nil {
			t.Fatalf("failed to claim rewards: %v", err)
		}
		assert.Equal(t, expectedFee, d.Fee, "fee")
		assert.Equal(t, expectedNet, d.Net, "net")
		t.Logf("claimed gross %d, fee %d", d.Gross, d.Fee)
	})
}

func (st *TestSequence) AdvanceEpochs(n uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		epoch := st.env.clock.Advance(n)
		t.Logf("advanced to epoch %d", epoch)
	})
}

func (st *TestSequence) Run(t *testing.T) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, f := range st.funcs {
		f(t)
	}

	t.Logf("All test functions executed successfully")
}

type PoolAssertions struct {
	env *testEnv

	totalBase   *uint64
	totalShares *uint64
	supply      *uint64
}

func AssertPool(env *testEnv) *PoolAssertions {
	return &PoolAssertions{env: env}
}

func (pa *PoolAssertions) TotalBase(expected uint64) *PoolAssertions {
	pa.totalBase = &expected
	return pa
}

func (pa *PoolAssertions) TotalShares(expected uint64) *PoolAssertions {
	pa.totalShares = &expected
	return pa
}

// Supply asserts the claim token supply, which always equals the total shares.
func (pa *PoolAssertions) Supply(expected uint64) *PoolAssertions {
	pa.supply = &expected
	return pa
}

func (pa *PoolAssertions) Assert(t *testing.T) {
	p, err := pa.env.sp.Pool(pa.env.pool)
	require.NoError(t, err)
	dump := spew.Sdump(p)

	if pa.totalBase != nil {
		assert.Equal(t, *pa.totalBase, p.TotalBase, "total base\n%s", dump)
	}
	if pa.totalShares != nil {
		assert.Equal(t, *pa.totalShares, p.TotalShares, "total shares\n%s", dump)
	}
	supply, err := pa.env.token.Supply(p.Mint)
	require.NoError(t, err)
	assert.Equal(t, p.TotalShares, supply, "supply\n%s", dump)
	if pa.supply != nil {
		assert.Equal(t, *pa.supply, supply, "supply\n%s", dump)
	}
	assert.NoError(t, p.Check())
}

type PositionAssertions struct {
	env   *testEnv
	owner thor.Address

	absent    bool
	status    *position.Status
	principal *uint64
	pending   *uint64
}

func AssertPosition(env *testEnv, owner thor.Address) *PositionAssertions {
	return &PositionAssertions{env: env, owner: owner}
}

func (pa *PositionAssertions) Absent() *PositionAssertions {
	pa.absent = true
	return pa
}

func (pa *PositionAssertions) Status(expected position.Status) *PositionAssertions {
	pa.status = &expected
	return pa
}

func (pa *PositionAssertions) Principal(expected uint64) *PositionAssertions {
	pa.principal = &expected
	return pa
}

func (pa *PositionAssertions) Pending(expected uint64) *PositionAssertions {
	pa.pending = &expected
	return pa
}

func (pa *PositionAssertions) Assert(t *testing.T) {
	pos, err := pa.env.sp.Position(pa.env.pool, pa.owner)
	require.NoError(t, err)
	if pa.absent {
		assert.Nil(t, pos, "position of %s", pa.owner)
		return
	}
	require.NotNil(t, pos, "position of %s", pa.owner)
	dump := spew.Sdump(pos)

	if pa.status != nil {
		assert.Equal(t, *pa.status, pos.Status, "status\n%s", dump)
	}
	if pa.principal != nil {
		assert.Equal(t, *pa.principal, pos.PrincipalBase, "principal\n%s", dump)
	}
	if pa.pending != nil {
		assert.Equal(t, *pa.pending, pos.PendingBase, "pending\n%s", dump)
	}
}
