// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package grove

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/platformcore/drive/kv"
	"github.com/platformcore/drive/stackedmap"
)

// Transaction is a write overlay on top of a snapshot of the store.
// Reads through a transaction observe every batch applied to it;
// nothing reaches the underlying kv store before Commit.
type Transaction struct {
	store    *Store
	snapshot kv.Snapshot
	// nil value marks a deleted key
	overlay *stackedmap.StackedMap[string, []byte]
	done    bool
}

func newTransaction(store *Store) *Transaction {
	tx := &Transaction{
		store:    store,
		snapshot: store.db.Snapshot(),
	}
	tx.overlay = stackedmap.New(func(key string) ([]byte, bool, error) {
		val, err := tx.snapshot.Get([]byte(key))
		if err != nil {
			if tx.snapshot.IsNotFound(err) {
				return nil, false, nil
			}
			return nil, false, err
		}
		return val, true, nil
	})
	return tx
}

func (tx *Transaction) get(key []byte) ([]byte, bool, error) {
	if tx.done {
		return nil, false, ErrTransactionDone
	}
	val, ok, err := tx.overlay.Get(string(key))
	if err != nil {
		return nil, false, errors.Wrap(err, "tx get")
	}
	if !ok || val == nil {
		return nil, false, nil
	}
	return val, true, nil
}

func (tx *Transaction) put(key, val []byte) {
	tx.overlay.Put(string(key), val)
}

func (tx *Transaction) del(key []byte) {
	tx.overlay.Put(string(key), nil)
}

type pair struct {
	key []byte
	val []byte
}

// scan returns all live kvs in r, sorted by key.
func (tx *Transaction) scan(r kv.Range) ([]pair, error) {
	if tx.done {
		return nil, ErrTransactionDone
	}
	merged := make(map[string][]byte)

	iter := tx.snapshot.Iterate(r)
	for iter.Next() {
		merged[string(iter.Key())] = append([]byte(nil), iter.Value()...)
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		return nil, errors.Wrap(err, "tx scan")
	}

	for _, key := range tx.overlay.Keys() {
		if !r.Contains([]byte(key)) {
			continue
		}
		val, _, err := tx.overlay.Get(key)
		if err != nil {
			return nil, errors.Wrap(err, "tx scan")
		}
		if val == nil {
			delete(merged, key)
		} else {
			merged[key] = val
		}
	}

	pairs := make([]pair, 0, len(merged))
	for k, v := range merged {
		pairs = append(pairs, pair{[]byte(k), v})
	}
	sort.Slice(pairs, func(i, j int) bool {
		return string(pairs[i].key) < string(pairs[j].key)
	})
	return pairs, nil
}

// Commit writes all changes atomically to the store.
func (tx *Transaction) Commit() error {
	if tx.done {
		return ErrTransactionDone
	}
	defer tx.finish()

	bulk := tx.store.db.Bulk()
	for _, key := range tx.overlay.Keys() {
		val, _, err := tx.overlay.Get(key)
		if err != nil {
			return errors.Wrap(err, "commit")
		}
		if val == nil {
			err = bulk.Delete([]byte(key))
		} else {
			err = bulk.Put([]byte(key), val)
		}
		if err != nil {
			return errors.Wrap(err, "commit")
		}
	}
	if bulk.Len() == 0 {
		return nil
	}
	if err := bulk.Write(); err != nil {
		return errors.Wrap(err, "commit")
	}
	return nil
}

// Rollback discards all changes.
func (tx *Transaction) Rollback() {
	if tx.done {
		return
	}
	tx.finish()
}

func (tx *Transaction) finish() {
	tx.done = true
	tx.snapshot.Release()
}
