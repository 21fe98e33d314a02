// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package grove

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/platformcore/drive/kv"
	"github.com/platformcore/drive/log"
)

var logger = log.WithContext("pkg", "grove")

// all grove keys live under this bucket of the backing store.
const elementBucket = kv.Bucket("g")

// KeyElement is a child of a tree returned by Query.
type KeyElement struct {
	Key     []byte
	Element Element
}

// Store is a hierarchical element store on top of a flat kv store.
// Every element lives under a path of trees rooted at the implicit root tree.
type Store struct {
	db kv.Store
}

// New creates a store over db.
func New(db kv.Store) *Store {
	return &Store{db: elementBucket.NewStore(db)}
}

// StartTransaction opens a transaction over the current state of the store.
func (s *Store) StartTransaction() *Transaction {
	return newTransaction(s)
}

// Get returns the element at path/key.
// ErrPathNotFound is returned if a tree of path is missing, ErrPathKeyNotFound
// if path exists but key does not.
func (s *Store) Get(path Path, key []byte, tx *Transaction) (Element, error) {
	return s.withTx(tx, func(tx *Transaction) (Element, error) {
		if err := s.checkPath(path, tx); err != nil {
			return Element{}, err
		}
		return s.getElement(path, key, tx)
	})
}

// Has returns whether path/key holds an element. A missing path is not an error.
func (s *Store) Has(path Path, key []byte, tx *Transaction) (bool, error) {
	_, err := s.Get(path, key, tx)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Query returns up to limit direct children of the tree at path, in key order.
// Callers must not rely on the order. A non-positive limit returns all children.
func (s *Store) Query(path Path, limit int, tx *Transaction) ([]KeyElement, error) {
	var result []KeyElement
	_, err := s.withTx(tx, func(tx *Transaction) (Element, error) {
		if err := s.checkPath(path, tx); err != nil {
			return Element{}, err
		}
		prefix := encodePath(path)
		pairs, err := tx.scan(kv.PrefixRange(prefix))
		if err != nil {
			return Element{}, err
		}
		for _, p := range pairs {
			if limit > 0 && len(result) >= limit {
				break
			}
			key, direct := childKey(prefix, p.key)
			if !direct {
				continue
			}
			elem, err := decodeElement(p.val)
			if err != nil {
				return Element{}, errors.Wrapf(err, "query %v", path)
			}
			result = append(result, KeyElement{Key: append([]byte(nil), key...), Element: elem})
		}
		return Element{}, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ApplyBatch applies all operations of batch in order. On failure no
// operation of the batch remains applied. With dryRun the batch is checked
// against the current state and discarded.
//
// With a nil tx, a transaction is opened and committed internally.
func (s *Store) ApplyBatch(batch *Batch, dryRun bool, tx *Transaction) error {
	if batch.IsEmpty() {
		if dryRun {
			return nil
		}
		return ErrEmptyBatch
	}

	owned := tx == nil
	if owned {
		tx = s.StartTransaction()
		defer tx.Rollback()
	}
	if tx.done {
		return ErrTransactionDone
	}

	depth := tx.overlay.Push()
	for i, op := range batch.Ops() {
		if err := s.applyOp(op, tx); err != nil {
			tx.overlay.PopTo(depth)
			return errors.Wrapf(err, "apply op #%d %v", i, op)
		}
	}
	if dryRun {
		tx.overlay.PopTo(depth)
		logger.Trace("dry run batch", "ops", batch.Len())
		return nil
	}
	if owned {
		return tx.Commit()
	}
	return nil
}

func (s *Store) applyOp(op Op, tx *Transaction) error {
	if err := s.checkPath(op.Path, tx); err != nil {
		return err
	}
	key := storageKey(op.Path, op.Key)

	switch op.Kind {
	case OpInsertEmptyTree:
		_, exists, err := tx.get(key)
		if err != nil {
			return err
		}
		if exists {
			return errors.Wrapf(ErrAlreadyExists, "%v/%x", op.Path, op.Key)
		}
		return s.putElement(key, NewTree(), tx)
	case OpInsert:
		existing, exists, err := tx.get(key)
		if err != nil {
			return err
		}
		// overwriting a tree with an item would orphan its descendants
		if exists && op.Element.IsItem() {
			elem, err := decodeElement(existing)
			if err != nil {
				return err
			}
			if elem.IsTree() {
				if err := s.deleteDescendants(key, tx); err != nil {
					return err
				}
			}
		}
		return s.putElement(key, op.Element, tx)
	case OpDelete, OpDeleteIfExists:
		_, exists, err := tx.get(key)
		if err != nil {
			return err
		}
		if !exists {
			if op.Kind == OpDeleteIfExists {
				return nil
			}
			return errors.Wrapf(ErrPathKeyNotFound, "%v/%x", op.Path, op.Key)
		}
		tx.del(key)
		return s.deleteDescendants(key, tx)
	default:
		return errors.Errorf("unknown op kind %v", op.Kind)
	}
}

func (s *Store) deleteDescendants(key []byte, tx *Transaction) error {
	pairs, err := tx.scan(kv.PrefixRange(key))
	if err != nil {
		return err
	}
	for _, p := range pairs {
		if bytes.Equal(p.key, key) {
			continue
		}
		tx.del(p.key)
	}
	return nil
}

// checkPath verifies every tree of path exists. Since trees are only created
// under existing trees and deletes are recursive, checking the last one is enough.
func (s *Store) checkPath(path Path, tx *Transaction) error {
	parent, last, ok := path.Parent()
	if !ok {
		return nil
	}
	elem, err := s.getElement(parent, last, tx)
	if err != nil {
		if IsKeyNotFound(err) {
			return errors.Wrapf(ErrPathNotFound, "%v", path)
		}
		return err
	}
	if !elem.IsTree() {
		return errors.Wrapf(ErrNotTree, "%v", path)
	}
	return nil
}

func (s *Store) getElement(path Path, key []byte, tx *Transaction) (Element, error) {
	data, ok, err := tx.get(storageKey(path, key))
	if err != nil {
		return Element{}, err
	}
	if !ok {
		return Element{}, errors.Wrapf(ErrPathKeyNotFound, "%v/%x", path, key)
	}
	elem, err := decodeElement(data)
	if err != nil {
		return Element{}, errors.Wrapf(err, "%v/%x", path, key)
	}
	return elem, nil
}

func (s *Store) putElement(key []byte, elem Element, tx *Transaction) error {
	data, err := elem.encode()
	if err != nil {
		return errors.Wrap(err, "encode element")
	}
	tx.put(key, data)
	return nil
}

// withTx runs fn in tx, or in a read-only transaction when tx is nil.
func (s *Store) withTx(tx *Transaction, fn func(*Transaction) (Element, error)) (Element, error) {
	if tx == nil {
		tx = s.StartTransaction()
		defer tx.Rollback()
	}
	return fn(tx)
}
