// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import "github.com/syndtr/goleveldb/leveldb/util"

// PrefixRange returns the range covering all keys with the given prefix.
func PrefixRange(prefix []byte) Range {
	r := util.BytesPrefix(prefix)
	return Range{Start: r.Start, Limit: r.Limit}
}

// Contains reports whether key falls into the range.
func (r Range) Contains(key []byte) bool {
	if len(r.Start) > 0 && string(key) < string(r.Start) {
		return false
	}
	if len(r.Limit) > 0 && string(key) >= string(r.Limit) {
		return false
	}
	return true
}
