// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package grove

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

// ElementKind tells an item from a tree marker.
type ElementKind uint8

const (
	ItemKind ElementKind = iota + 1
	TreeKind
)

func (k ElementKind) String() string {
	switch k {
	case ItemKind:
		return "item"
	case TreeKind:
		return "tree"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Element is a value stored under a key: an opaque item or a subtree.
type Element struct {
	Kind  ElementKind
	Value []byte
}

// NewItem creates an item element.
func NewItem(value []byte) Element {
	return Element{Kind: ItemKind, Value: value}
}

// NewTree creates an empty tree element.
func NewTree() Element {
	return Element{Kind: TreeKind}
}

// IsItem returns whether the element is an item.
func (e Element) IsItem() bool { return e.Kind == ItemKind }

// IsTree returns whether the element is a tree.
func (e Element) IsTree() bool { return e.Kind == TreeKind }

func (e Element) encode() ([]byte, error) {
	return rlp.EncodeToBytes(&e)
}

func decodeElement(data []byte) (Element, error) {
	var e Element
	if err := rlp.DecodeBytes(data, &e); err != nil {
		return Element{}, errors.Wrap(ErrCorruptedElement, err.Error())
	}
	if e.Kind != ItemKind && e.Kind != TreeKind {
		return Element{}, errors.Wrapf(ErrCorruptedElement, "unknown %v", e.Kind)
	}
	return e, nil
}
