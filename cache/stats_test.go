// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshot(t *testing.T) {
	var cs Stats
	s, changed := cs.Snapshot()
	assert.Zero(t, s.Lookups())
	assert.Zero(t, s.HitRate())
	assert.False(t, changed)

	cs.Hit()
	cs.Miss()
	s, changed = cs.Snapshot()
	assert.Equal(t, Snapshot{Hit: 1, Miss: 1}, s)
	assert.Equal(t, int64(500), s.HitRate())
	assert.True(t, changed)

	_, changed = cs.Snapshot()
	assert.False(t, changed, "same rate twice")

	// one more of each keeps the rate
	cs.Hit()
	cs.Miss()
	_, changed = cs.Snapshot()
	assert.False(t, changed)

	assert.Equal(t, int64(3), cs.Hit())
	s, changed = cs.Snapshot()
	assert.Equal(t, int64(5), s.Lookups())
	assert.Equal(t, int64(600), s.HitRate())
	assert.True(t, changed)
}
