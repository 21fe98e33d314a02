// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package drive

import "fmt"

// BlockInfo is the metadata of the block being executed.
type BlockInfo struct {
	Height   uint64
	TimeMs   int64
	Proposer Identifier
}

func (b BlockInfo) String() string {
	return fmt.Sprintf("block(%d @%d by %v)", b.Height, b.TimeMs, b.Proposer)
}

// TokenID returns the identifier of the token at position in a contract.
func TokenID(contractID Identifier, position uint16) Identifier {
	return DeriveIdentifier(contractID[:], EncodeUint16(position))
}

// DocumentID returns the identifier of a document created by owner with entropy.
func DocumentID(contractID Identifier, documentType string, owner Identifier, entropy []byte) Identifier {
	return DeriveIdentifier(contractID[:], []byte(documentType), owner[:], entropy)
}
