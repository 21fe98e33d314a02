// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"sync"
	"sync/atomic"

	"github.com/platformcore/drive/drive"
	"github.com/platformcore/drive/grove"
	"github.com/platformcore/drive/state"
)

// Contracts caches committed data contracts. Contracts written by the block
// in progress are marked dirty and read through the transaction until the
// block is committed or discarded.
//
// Returned contracts are shared and must not be modified.
type Contracts struct {
	state *state.State
	lru   *LRU[drive.Identifier, *state.DataContract]

	mu    sync.Mutex
	dirty map[drive.Identifier]struct{}

	hit, miss atomic.Int64
}

var _ state.ContractFetcher = (*Contracts)(nil)

// NewContracts creates a cache of size contracts over st.
func NewContracts(st *state.State, size int) (*Contracts, error) {
	l, err := NewLRU[drive.Identifier, *state.DataContract](size)
	if err != nil {
		return nil, err
	}
	return &Contracts{
		state: st,
		lru:   l,
		dirty: make(map[drive.Identifier]struct{}),
	}, nil
}

func (c *Contracts) isDirty(id drive.Identifier) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.dirty[id]
	return ok
}

// GetContract implements state.ContractFetcher.
func (c *Contracts) GetContract(id drive.Identifier, tx *grove.Transaction) (*state.DataContract, error) {
	if c.isDirty(id) {
		return c.state.GetContract(id, tx)
	}
	loaded := false
	contract, err := c.lru.GetOrLoad(id, func(id drive.Identifier) (*state.DataContract, error) {
		loaded = true
		return c.state.GetContract(id, nil)
	})
	if !loaded {
		c.hit.Add(1)
		return contract, nil
	}
	c.miss.Add(1)
	if err != nil {
		if state.IsContractNotFound(err) && tx != nil {
			// not committed yet
			return c.state.GetContract(id, tx)
		}
		return nil, err
	}
	return contract, nil
}

// MarkDirty bypasses the cache for id until Commit or Discard.
func (c *Contracts) MarkDirty(id drive.Identifier) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirty[id] = struct{}{}
}

// Commit evicts the contracts written by the committed block.
func (c *Contracts) Commit() {
	c.reset()
}

// Discard forgets the contracts written by the discarded block.
func (c *Contracts) Discard() {
	c.reset()
}

func (c *Contracts) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id := range c.dirty {
		c.lru.Remove(id)
	}
	clear(c.dirty)
}

// Stats returns the number of cache hits and misses.
func (c *Contracts) Stats() (hit, miss int64) {
	return c.hit.Load(), c.miss.Load()
}

// Len returns the number of cached contracts.
func (c *Contracts) Len() int {
	return c.lru.Len()
}
