// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package position

import (
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/builtin/program"
	"github.com/vechain/stakepool/builtin/stakepool/reverts"
	"github.com/vechain/stakepool/thor"
)

// Service stores positions in program slots keyed by pool and owner.
type Service struct {
	context *program.Context
	records *program.Record[Position]
}

func New(ctx *program.Context) *Service {
	return &Service{
		context: ctx,
		records: program.NewRecord[Position](ctx),
	}
}

// Address returns the account holding the position of owner in pool.
func (s *Service) Address(pool, owner thor.Address) thor.Address {
	return s.context.Slot([]byte("position"), pool[:], owner[:])
}

// Get returns the position of owner in pool, or nil if there is none.
func (s *Service) Get(pool, owner thor.Address) (*Position, error) {
	p, err := s.records.Get(s.Address(pool, owner))
	if err != nil {
		if errors.Is(err, program.ErrNotOwned) {
			return nil, reverts.WithMessage(reverts.ErrInvalidAccountOwner, "position of %v", owner)
		}
		return nil, errors.Wrap(err, "failed to get position")
	}
	return p, nil
}

// Set stores the position under its pool and owner.
func (s *Service) Set(p *Position) error {
	if err := s.records.Set(s.Address(p.Pool, p.Owner), p); err != nil {
		return errors.Wrap(err, "failed to set position")
	}
	return nil
}

func (s *Service) Delete(pool, owner thor.Address) error {
	if err := s.records.Delete(s.Address(pool, owner)); err != nil {
		return errors.Wrap(err, "failed to delete position")
	}
	return nil
}
