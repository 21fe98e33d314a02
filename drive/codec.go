// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package drive

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/platformcore/drive/grove"
)

var (
	// ErrCorruptedNotItem is returned when a value expected as an item is stored as a tree.
	ErrCorruptedNotItem = errors.New("corrupted: element is not an item")
	// ErrCorruptedLength is returned when an item has the wrong byte length for its type.
	ErrCorruptedLength = errors.New("corrupted: item has wrong length")
)

// IsCorrupted reports whether err signals corrupted stored data.
func IsCorrupted(err error) bool {
	return errors.Is(err, ErrCorruptedNotItem) || errors.Is(err, ErrCorruptedLength) || errors.Is(err, grove.ErrCorruptedElement)
}

// EncodeUint64 encodes v as 8 little-endian bytes.
func EncodeUint64(v uint64) []byte {
	return binary.LittleEndian.AppendUint64(nil, v)
}

// EncodeInt64 encodes v as 8 little-endian bytes.
func EncodeInt64(v int64) []byte {
	return EncodeUint64(uint64(v))
}

// EncodeUint16 encodes v as 2 little-endian bytes.
func EncodeUint16(v uint16) []byte {
	return binary.LittleEndian.AppendUint16(nil, v)
}

func itemBytes(elem grove.Element, size int) ([]byte, error) {
	if !elem.IsItem() {
		return nil, ErrCorruptedNotItem
	}
	if len(elem.Value) != size {
		return nil, errors.Wrapf(ErrCorruptedLength, "want %d bytes, got %d", size, len(elem.Value))
	}
	return elem.Value, nil
}

// DecodeUint64Item decodes an 8-byte little-endian item.
func DecodeUint64Item(elem grove.Element) (uint64, error) {
	b, err := itemBytes(elem, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// DecodeInt64Item decodes an 8-byte little-endian signed item.
func DecodeInt64Item(elem grove.Element) (int64, error) {
	v, err := DecodeUint64Item(elem)
	return int64(v), err
}

// DecodeUint16 decodes a 2-byte little-endian key.
func DecodeUint16(b []byte) (uint16, error) {
	if len(b) != 2 {
		return 0, errors.Wrapf(ErrCorruptedLength, "want 2 bytes, got %d", len(b))
	}
	return binary.LittleEndian.Uint16(b), nil
}

// GetUint64 reads an 8-byte item at path/key.
func GetUint64(store *grove.Store, path grove.Path, key []byte, tx *grove.Transaction) (uint64, error) {
	elem, err := store.Get(path, key, tx)
	if err != nil {
		return 0, err
	}
	v, err := DecodeUint64Item(elem)
	if err != nil {
		return 0, errors.Wrapf(err, "%v/%x", path, key)
	}
	return v, nil
}

// GetUint64OrZero reads an 8-byte item at path/key; absence reads as zero.
func GetUint64OrZero(store *grove.Store, path grove.Path, key []byte, tx *grove.Transaction) (uint64, error) {
	v, err := GetUint64(store, path, key, tx)
	if err != nil {
		if grove.IsNotFound(err) {
			return 0, nil
		}
		return 0, err
	}
	return v, nil
}
