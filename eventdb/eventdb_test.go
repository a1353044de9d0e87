// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/eventdb"
	"github.com/vechain/stakepool/thor"
)

func newEvents(pool, user thor.Address, n int) []*eventdb.Event {
	var events []*eventdb.Event
	for i := range n {
		kind := eventdb.KindStake
		if i%2 == 1 {
			kind = eventdb.KindUnstake
		}
		events = append(events, &eventdb.Event{
			Kind:    kind,
			Pool:    pool,
			Account: user,
			Base:    uint64(i) * 1e9,
			Shares:  uint64(i) * 1e9,
			Epoch:   uint64(i),
		})
	}
	return events
}

func TestEventDB(t *testing.T) {
	db, err := eventdb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	pool := thor.BytesToAddress([]byte("pool"))
	other := thor.BytesToAddress([]byte("other"))
	user := thor.BytesToAddress([]byte("user"))

	require.NoError(t, db.Insert(newEvents(pool, user, 100)))
	require.NoError(t, db.Insert(newEvents(other, user, 10)))
	require.NoError(t, db.Insert(nil))

	all, err := db.Filter(nil)
	require.NoError(t, err)
	assert.Len(t, all, 110)
	assert.Equal(t, uint64(1), all[0].Seq)

	limit := 5
	evs, err := db.Filter(&eventdb.Filter{
		Pool:    &pool,
		Range:   &eventdb.Range{From: 0, To: 10},
		Options: &eventdb.Options{Offset: 0, Limit: uint64(limit)},
		Order:   eventdb.ASC,
	})
	require.NoError(t, err)
	assert.Len(t, evs, limit, "limit should be equal")
	assert.Equal(t, pool, evs[0].Pool)
	assert.Equal(t, uint64(0), evs[0].Epoch)

	evs, err = db.Filter(&eventdb.Filter{
		Pool:  &pool,
		Kinds: []eventdb.Kind{eventdb.KindUnstake},
		Range: &eventdb.Range{From: 90, To: 0},
		Order: eventdb.DESC,
	})
	require.NoError(t, err)
	require.Len(t, evs, 5)
	assert.Equal(t, uint64(99), evs[0].Epoch)
	assert.Equal(t, eventdb.KindUnstake, evs[0].Kind)
	assert.Equal(t, uint64(99e9), evs[0].Base)

	evs, err = db.Filter(&eventdb.Filter{Account: &other})
	require.NoError(t, err)
	assert.Empty(t, evs)
}

func TestLargeAmounts(t *testing.T) {
	db, err := eventdb.New(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	defer db.Close()

	ev := &eventdb.Event{Kind: eventdb.KindClaim, Base: ^uint64(0), Fee: 1 << 63}
	require.NoError(t, db.Insert([]*eventdb.Event{ev}))
	assert.NotZero(t, ev.Seq)

	evs, err := db.Filter(&eventdb.Filter{Kinds: []eventdb.Kind{eventdb.KindClaim}})
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, ^uint64(0), evs[0].Base)
	assert.Equal(t, uint64(1<<63), evs[0].Fee)
}

func BenchmarkInsert(b *testing.B) {
	db, err := eventdb.New(filepath.Join(b.TempDir(), "events.db"))
	if err != nil {
		b.Fatal(err)
	}
	defer db.Close()

	events := newEvents(thor.BytesToAddress([]byte("pool")), thor.BytesToAddress([]byte("user")), 100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := db.Insert(events); err != nil {
			b.Fatal(err)
		}
	}
}
