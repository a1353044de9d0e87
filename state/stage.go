// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"sort"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/stakepool/thor"
)

// Stage abstracts changes on the ledger accounts.
type Stage struct {
	stater  *Stater
	changes map[thor.Address]*Account
}

// Len returns the number of changed accounts.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Hash computes the digest of all changes, ordered by address.
func (s *Stage) Hash() (thor.Bytes32, error) {
	addrs := make([]thor.Address, 0, len(s.changes))
	for addr := range s.changes {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool {
		return bytes.Compare(addrs[i][:], addrs[j][:]) < 0
	})

	hasher := thor.NewBlake2b()
	for _, addr := range addrs {
		data, err := rlp.EncodeToBytes(s.changes[addr])
		if err != nil {
			return thor.Bytes32{}, &Error{err}
		}
		hasher.Write(addr[:])
		hasher.Write(data)
	}
	var h thor.Bytes32
	hasher.Sum(h[:0])
	return h, nil
}

// Commit commits all changes into the store in one bulk.
func (s *Stage) Commit() error {
	bulk := s.stater.store.Bulk()
	for addr, acc := range s.changes {
		if err := saveAccount(bulk, addr, acc); err != nil {
			return &Error{err}
		}
		kind := "write"
		if acc.IsEmpty() {
			kind = "delete"
		}
		metricAccountCounter().AddWithLabel(1, map[string]string{"type": kind, "target": "store"})
	}
	if err := bulk.Write(); err != nil {
		return &Error{err}
	}
	for addr, acc := range s.changes {
		s.stater.cache.Add(addr, acc)
	}
	if snap, changed := s.stater.cache.Stats().Snapshot(); changed {
		metricCacheHitRate().Set(snap.HitRate())
		logger.Debug("account cache stats", "hit", snap.Hit, "miss", snap.Miss, "committed", len(s.changes))
	}
	return nil
}
