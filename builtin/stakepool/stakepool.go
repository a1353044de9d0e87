// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package stakepool implements a pooled stake: deposits of many users delegated
// through one stake account, represented by fungible claim tokens.
package stakepool

import (
	"time"

	"github.com/vechain/stakepool/builtin/program"
	"github.com/vechain/stakepool/builtin/stakepool/access"
	"github.com/vechain/stakepool/builtin/stakepool/pool"
	"github.com/vechain/stakepool/builtin/stakepool/position"
	"github.com/vechain/stakepool/builtin/stakepool/reverts"
	"github.com/vechain/stakepool/builtin/stakepool/rewards"
	"github.com/vechain/stakepool/builtin/stakeprogram"
	"github.com/vechain/stakepool/eventdb"
	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/state"
	"github.com/vechain/stakepool/thor"
)

var logger = log.WithContext("pkg", "stakepool")

func SetLogger(l log.Logger) {
	logger = l
}

var (
	seedMint              = []byte("mint")
	seedStakeAuthority    = []byte("stake_authority")
	seedWithdrawAuthority = []byte("withdraw_authority")
	seedDelegatedPosition = []byte("delegated_position")
	seedStakeAccount      = []byte("stake_account")
)

// InitParams are the parameters of a new pool.
type InitParams struct {
	Name      string
	FeeBps    uint16
	Validator thor.Address
	Treasury  thor.Address
	Authority thor.Address
}

// StakePool implements the stake pool program.
type StakePool struct {
	context *program.Context
	config  Config
	stake   StakeProgram
	token   TokenProgram
	clock   Clock
	events  EventSink

	pools     *pool.Service
	positions *position.Service
}

// New create a new instance.
func New(addr thor.Address, state *state.State, config Config, stake StakeProgram, token TokenProgram, clock Clock) *StakePool {
	ctx := program.NewContext(addr, state)
	return &StakePool{
		context:   ctx,
		config:    config,
		stake:     stake,
		token:     token,
		clock:     clock,
		pools:     pool.New(ctx),
		positions: position.New(ctx),
	}
}

// SetEventSink sets where events of successful operations go.
func (s *StakePool) SetEventSink(sink EventSink) {
	s.events = sink
}

// Address returns the program address.
func (s *StakePool) Address() thor.Address {
	return s.context.Address()
}

// PoolAddress returns the address of the pool of authority.
func (s *StakePool) PoolAddress(authority thor.Address) (thor.Address, error) {
	addr, _, err := s.context.Derive(authority[:], []byte(s.config.PoolSeed))
	return addr, err
}

// CooldownAccount returns the stake account holding the unstaked base of owner.
func (s *StakePool) CooldownAccount(poolAddr, owner thor.Address) (thor.Address, error) {
	addr, _, err := s.context.Derive(seedStakeAccount, poolAddr[:], owner[:])
	return addr, err
}

// Pool returns the pool at addr.
func (s *StakePool) Pool(addr thor.Address) (*pool.Pool, error) {
	return s.pools.Get(addr)
}

// Position returns the position of owner in the pool, or nil if there is none.
// A ticket whose cooldown elapsed is reported withdrawable.
func (s *StakePool) Position(poolAddr, owner thor.Address) (*position.Position, error) {
	pos, err := s.positions.Get(poolAddr, owner)
	if err != nil || pos == nil || !pos.HasTicket() {
		return pos, err
	}
	cooldown, err := s.CooldownAccount(poolAddr, owner)
	if err != nil {
		return nil, err
	}
	st, err := s.stake.QueryState(cooldown)
	if err != nil {
		return nil, reverts.External("query stake", err)
	}
	if st.Status == stakeprogram.StatusInactive {
		if err := pos.MarkWithdrawable(); err != nil {
			return nil, err
		}
	}
	return pos, nil
}

// loadPool reads the pool and verifies every address it records was derived by this program.
func (s *StakePool) loadPool(addr thor.Address) (*pool.Pool, error) {
	programAddr := s.context.Address()
	if err := access.VerifyOwner(s.context.State(), addr, programAddr); err != nil {
		return nil, err
	}
	p, err := s.pools.Get(addr)
	if err != nil {
		return nil, err
	}
	authorities := []access.DerivedAuthority{
		{Program: programAddr, Seeds: [][]byte{p.Authority[:], []byte(s.config.PoolSeed)}, Bump: p.Bumps.Pool, Address: addr},
		{Program: programAddr, Seeds: [][]byte{addr[:], seedMint}, Bump: p.Bumps.Mint, Address: p.Mint},
		{Program: programAddr, Seeds: [][]byte{seedStakeAuthority, addr[:]}, Bump: p.Bumps.StakeAuthority, Address: p.StakeAuthority},
		{Program: programAddr, Seeds: [][]byte{seedWithdrawAuthority, addr[:]}, Bump: p.Bumps.WithdrawAuthority, Address: p.WithdrawAuthority},
		{Program: programAddr, Seeds: [][]byte{seedDelegatedPosition, addr[:]}, Bump: p.Bumps.DelegatedPosition, Address: p.DelegatedPosition},
	}
	for _, auth := range authorities {
		if err := auth.Verify(); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (s *StakePool) savePool(addr thor.Address, p *pool.Pool) error {
	if err := s.pools.Set(addr, p); err != nil {
		return err
	}
	labels := map[string]string{"pool": addr.String()}
	metricTotalBase().SetWithLabel(meterValue(p.TotalBase), labels)
	metricTotalShares().SetWithLabel(meterValue(p.TotalShares), labels)
	return nil
}

// run executes op atomically. Any error reverts every change made by op.
func (s *StakePool) run(op string, fn func() ([]*eventdb.Event, error)) error {
	start := time.Now()
	st := s.context.State()
	rev := st.NewCheckpoint()

	events, err := fn()
	result := "ok"
	if err != nil {
		st.RevertTo(rev)
		result = "revert"
		if reverts.IsBenign(err) {
			result = "noop"
		}
	}
	metricOperationCount().AddWithLabel(1, map[string]string{"op": op, "result": result})
	metricOperationDuration().ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{"op": op})
	if err != nil {
		return err
	}

	if s.events != nil && len(events) > 0 {
		epoch := s.clock.Epoch()
		for _, ev := range events {
			ev.Epoch = epoch
		}
		if err := s.events.Insert(events); err != nil {
			logger.Warn("failed to journal events", "op", op, "error", err)
		}
	}
	return nil
}

func (s *StakePool) validateParams(params InitParams) error {
	if err := rewards.ValidateFee(params.FeeBps); err != nil {
		return err
	}
	if n := len(params.Name); n < s.config.NameMinLen || n > s.config.NameMaxLen {
		return reverts.WithMessage(reverts.ErrInvalidPoolName, "length %d not in [%d, %d]", n, s.config.NameMinLen, s.config.NameMaxLen)
	}
	if params.Validator.IsZero() {
		return reverts.WithMessage(reverts.ErrInvalidState, "no validator")
	}
	if params.Treasury.IsZero() {
		return reverts.WithMessage(reverts.ErrInvalidState, "no treasury")
	}
	return nil
}

// Initialize creates the pool of params.Authority, its claim token mint and its derived authorities.
func (s *StakePool) Initialize(tx *Tx, params InitParams) (addr thor.Address, err error) {
	logger.Debug("initializing pool", "authority", params.Authority, "name", params.Name, "feeBps", params.FeeBps)

	err = s.run("initialize", func() ([]*eventdb.Event, error) {
		if err := access.RequireSigner(tx.Signers, params.Authority); err != nil {
			return nil, err
		}
		if err := s.validateParams(params); err != nil {
			return nil, err
		}

		programAddr := s.context.Address()
		poolAuth, err := access.NewDerivedAuthority(programAddr, params.Authority[:], []byte(s.config.PoolSeed))
		if err != nil {
			return nil, err
		}
		addr = poolAuth.Address
		exists, err := s.pools.Exists(addr)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, reverts.WithMessage(reverts.ErrAlreadyInitialized, "pool %v", addr)
		}

		mint, err := access.NewDerivedAuthority(programAddr, addr[:], seedMint)
		if err != nil {
			return nil, err
		}
		stakeAuth, err := access.NewDerivedAuthority(programAddr, seedStakeAuthority, addr[:])
		if err != nil {
			return nil, err
		}
		withdrawAuth, err := access.NewDerivedAuthority(programAddr, seedWithdrawAuthority, addr[:])
		if err != nil {
			return nil, err
		}
		delegated, err := access.NewDerivedAuthority(programAddr, seedDelegatedPosition, addr[:])
		if err != nil {
			return nil, err
		}

		if err := s.token.InitializeMint(mint.Address, stakeAuth.Address, s.config.Decimals); err != nil {
			return nil, reverts.External("initialize mint", err)
		}

		p := &pool.Pool{
			Version:           pool.Version,
			Name:              params.Name,
			Authority:         params.Authority,
			Validator:         params.Validator,
			Treasury:          params.Treasury,
			Mint:              mint.Address,
			DelegatedPosition: delegated.Address,
			StakeAuthority:    stakeAuth.Address,
			WithdrawAuthority: withdrawAuth.Address,
			Bumps: pool.Bumps{
				Pool:              poolAuth.Bump,
				Mint:              mint.Bump,
				StakeAuthority:    stakeAuth.Bump,
				WithdrawAuthority: withdrawAuth.Bump,
				DelegatedPosition: delegated.Bump,
			},
			FeeBps:          params.FeeBps,
			LastUpdateEpoch: s.clock.Epoch(),
			MinStake:        s.config.MinStake,
			MaxStake:        s.config.MaxStake,
		}
		if err := s.savePool(addr, p); err != nil {
			return nil, err
		}
		return []*eventdb.Event{{Kind: eventdb.KindInitialize, Pool: addr, Account: params.Authority}}, nil
	})
	if err != nil {
		logger.Info("initialize pool failed", "authority", params.Authority, "error", err)
		return thor.Address{}, err
	}

	logger.Info("initialized pool", "pool", addr, "name", params.Name)
	return addr, nil
}

// SetPaused stops or resumes staking and unstaking. Only the pool authority may call it.
func (s *StakePool) SetPaused(tx *Tx, poolAddr thor.Address, paused bool) error {
	logger.Debug("set paused", "pool", poolAddr, "paused", paused)

	err := s.run("set_paused", func() ([]*eventdb.Event, error) {
		p, err := s.loadPool(poolAddr)
		if err != nil {
			return nil, err
		}
		if err := access.RequireAuthority(p.Authority, tx.Origin); err != nil {
			return nil, err
		}
		if err := access.RequireSigner(tx.Signers, tx.Origin); err != nil {
			return nil, err
		}
		if p.Paused == paused {
			return nil, nil
		}
		p.Paused = paused
		if err := s.savePool(poolAddr, p); err != nil {
			return nil, err
		}
		kind := eventdb.KindResume
		if paused {
			kind = eventdb.KindPause
		}
		return []*eventdb.Event{{Kind: kind, Pool: poolAddr, Account: p.Authority}}, nil
	})
	if err != nil {
		logger.Info("set paused failed", "pool", poolAddr, "error", err)
		return err
	}
	return nil
}
