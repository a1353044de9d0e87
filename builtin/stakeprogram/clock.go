// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakeprogram

import "sync/atomic"

// Clock reports the current epoch.
type Clock interface {
	Epoch() uint64
}

// ManualClock is a Clock advanced by hand.
type ManualClock struct {
	epoch atomic.Uint64
}

func NewManualClock(epoch uint64) *ManualClock {
	c := &ManualClock{}
	c.epoch.Store(epoch)
	return c
}

func (c *ManualClock) Epoch() uint64 { return c.epoch.Load() }

func (c *ManualClock) SetEpoch(epoch uint64) { c.epoch.Store(epoch) }

// Advance moves the clock n epochs forward and returns the new epoch.
func (c *ManualClock) Advance(n uint64) uint64 { return c.epoch.Add(n) }
