// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/builtin/program"
	"github.com/vechain/stakepool/builtin/stakepool/reverts"
	"github.com/vechain/stakepool/thor"
)

// Service stores pool records in accounts owned by the pool program.
type Service struct {
	records *program.Record[Pool]
}

func New(ctx *program.Context) *Service {
	return &Service{records: program.NewRecord[Pool](ctx)}
}

func (s *Service) load(addr thor.Address) (*Pool, error) {
	p, err := s.records.Get(addr)
	if err != nil {
		if errors.Is(err, program.ErrNotOwned) {
			return nil, reverts.WithMessage(reverts.ErrInvalidAccountOwner, "pool %v", addr)
		}
		return nil, errors.Wrap(err, "failed to get pool")
	}
	return p, nil
}

// Get returns the initialized pool at addr.
func (s *Service) Get(addr thor.Address) (*Pool, error) {
	p, err := s.load(addr)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.Initialized() {
		return nil, reverts.WithMessage(reverts.ErrUninitialized, "pool %v", addr)
	}
	return p, nil
}

// Exists reports whether an initialized pool lives at addr.
func (s *Service) Exists(addr thor.Address) (bool, error) {
	p, err := s.load(addr)
	if err != nil {
		return false, err
	}
	return p != nil && p.Initialized(), nil
}

// Set checks and stores the pool.
func (s *Service) Set(addr thor.Address, p *Pool) error {
	if err := p.Check(); err != nil {
		return err
	}
	if err := s.records.Set(addr, p); err != nil {
		return errors.Wrap(err, "failed to set pool")
	}
	return nil
}
