// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/vechain/stakepool/cache"
	"github.com/vechain/stakepool/kv"
	"github.com/vechain/stakepool/thor"
)

const (
	accountBucket    = kv.Bucket("a")
	defaultCacheSize = 4096
)

// Stater is the state creator.
// States created by the same stater share the cache of committed accounts.
type Stater struct {
	store kv.Store
	cache *cache.LRU
}

// NewStater create a new stater.
func NewStater(store kv.Store) *Stater {
	c, _ := cache.NewLRU(defaultCacheSize)
	return &Stater{
		store: accountBucket.NewStore(store),
		cache: c,
	}
}

// NewState create a new state object.
func (s *Stater) NewState() *State {
	return newState(s)
}

// load returns the committed account. The returned account must not be modified.
func (s *Stater) load(addr thor.Address) (*Account, error) {
	target := "cache"
	v, err := s.cache.GetOrLoad(addr, func(key any) (any, error) {
		target = "store"
		return loadAccount(s.store, key.(thor.Address))
	})
	if err != nil {
		return nil, err
	}
	metricAccountCounter().AddWithLabel(1, map[string]string{"type": "read", "target": target})
	return v.(*Account), nil
}
