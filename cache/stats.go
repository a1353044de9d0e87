// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import "sync/atomic"

// Stats counts the lookups served by a cache.
type Stats struct {
	hit, miss atomic.Int64
	permille  atomic.Int64 // hit rate reported by the last Snapshot
}

// Hit records a hit.
func (cs *Stats) Hit() int64 { return cs.hit.Add(1) }

// Miss records a miss.
func (cs *Stats) Miss() int64 { return cs.miss.Add(1) }

// Snapshot is a point in time view of the lookup counters.
type Snapshot struct {
	Hit, Miss int64
}

// Lookups returns the number of recorded lookups.
func (s Snapshot) Lookups() int64 { return s.Hit + s.Miss }

// HitRate returns the hit rate in per mille, 0 when nothing was looked up.
func (s Snapshot) HitRate() int64 {
	if s.Lookups() == 0 {
		return 0
	}
	return s.Hit * 1000 / s.Lookups()
}

// Snapshot returns the counters and whether the hit rate moved since the previous call.
func (cs *Stats) Snapshot() (Snapshot, bool) {
	s := Snapshot{Hit: cs.hit.Load(), Miss: cs.miss.Load()}
	rate := s.HitRate()
	return s, cs.permille.Swap(rate) != rate
}
