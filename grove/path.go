// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package grove

import (
	"encoding/binary"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Path addresses a tree by the keys leading to it from the root.
type Path [][]byte

// Child returns a new path extended by key.
func (p Path) Child(key []byte) Path {
	child := make(Path, len(p), len(p)+1)
	copy(child, p)
	return append(child, key)
}

// Parent splits the path into its parent path and last key.
// The root path has no parent.
func (p Path) Parent() (Path, []byte, bool) {
	if len(p) == 0 {
		return nil, nil, false
	}
	return p[:len(p)-1], p[len(p)-1], true
}

func (p Path) String() string {
	segs := make([]string, 0, len(p))
	for _, seg := range p {
		segs = append(segs, hexutil.Encode(seg))
	}
	return "[" + strings.Join(segs, "/") + "]"
}

// Every segment is written as uvarint(len)||bytes, so the element at (p, key)
// and all of its descendants share the prefix encodePath(p)||segment(key).
func appendSegment(buf []byte, seg []byte) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(seg)))
	return append(buf, seg...)
}

func encodePath(p Path) []byte {
	var buf []byte
	for _, seg := range p {
		buf = appendSegment(buf, seg)
	}
	return buf
}

func storageKey(p Path, key []byte) []byte {
	return appendSegment(encodePath(p), key)
}

// childKey extracts the first segment after prefix, and whether it is the last one.
func childKey(prefix, full []byte) ([]byte, bool) {
	rest := full[len(prefix):]
	n, size := binary.Uvarint(rest)
	if size <= 0 || uint64(len(rest)-size) < n {
		return nil, false
	}
	end := size + int(n)
	return rest[size:end], end == len(rest)
}
