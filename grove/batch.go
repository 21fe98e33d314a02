// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package grove

import "fmt"

// OpKind is the kind of a batched operation.
type OpKind uint8

const (
	OpInsertEmptyTree OpKind = iota + 1
	OpInsert
	OpDelete
	OpDeleteIfExists
)

func (k OpKind) String() string {
	switch k {
	case OpInsertEmptyTree:
		return "insert-empty-tree"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpDeleteIfExists:
		return "delete-if-exists"
	default:
		return fmt.Sprintf("op(%d)", uint8(k))
	}
}

// Op is a single queued store mutation.
type Op struct {
	Kind    OpKind
	Path    Path
	Key     []byte
	Element Element
}

func (op Op) String() string {
	return fmt.Sprintf("%v %v/%x", op.Kind, op.Path, op.Key)
}

// Batch is an append-only log of operations. Nothing in it is visible
// until it is applied to a store.
type Batch struct {
	ops []Op
}

// NewBatch creates an empty batch.
func NewBatch() *Batch {
	return &Batch{}
}

// InsertEmptyTree queues the creation of an empty subtree.
func (b *Batch) InsertEmptyTree(path Path, key []byte) {
	b.ops = append(b.ops, Op{Kind: OpInsertEmptyTree, Path: path, Key: key, Element: NewTree()})
}

// Insert queues an insert or overwrite of an element.
func (b *Batch) Insert(path Path, key []byte, elem Element) {
	b.ops = append(b.ops, Op{Kind: OpInsert, Path: path, Key: key, Element: elem})
}

// InsertItem queues an insert or overwrite of an item.
func (b *Batch) InsertItem(path Path, key []byte, value []byte) {
	b.Insert(path, key, NewItem(value))
}

// Delete queues a recursive delete. Applying it fails if the element is absent.
func (b *Batch) Delete(path Path, key []byte) {
	b.ops = append(b.ops, Op{Kind: OpDelete, Path: path, Key: key})
}

// DeleteIfExists queues a recursive delete that tolerates absence.
func (b *Batch) DeleteIfExists(path Path, key []byte) {
	b.ops = append(b.ops, Op{Kind: OpDeleteIfExists, Path: path, Key: key})
}

// Append moves all operations of other to the end of b.
func (b *Batch) Append(other *Batch) {
	if other == nil {
		return
	}
	b.ops = append(b.ops, other.ops...)
}

// Len returns the number of queued operations.
func (b *Batch) Len() int {
	return len(b.ops)
}

// IsEmpty returns whether the batch holds no operations.
func (b *Batch) IsEmpty() bool {
	return len(b.ops) == 0
}

// Ops returns the queued operations in order.
func (b *Batch) Ops() []Op {
	return b.ops
}
