// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/rand"

	"github.com/platformcore/drive/drive"
)

func RandomIdentifier() drive.Identifier {
	var id drive.Identifier

	rand.Read(id[:])
	return id
}

func RandomIdentifiers(n int) []drive.Identifier {
	ids := make([]drive.Identifier, n)
	for i := range ids {
		ids[i] = RandomIdentifier()
	}
	return ids
}
