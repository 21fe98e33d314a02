// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package drive

import (
	"bytes"
	"encoding/json"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// IdentifierLength is the byte length of identities, contracts, documents and tokens ids.
const IdentifierLength = 32

// Identifier is a 32-byte id of an identity, data contract, document or token.
type Identifier [IdentifierLength]byte

var (
	_ json.Marshaler   = (*Identifier)(nil)
	_ json.Unmarshaler = (*Identifier)(nil)
)

// String implements stringer
func (id Identifier) String() string {
	return hexutil.Encode(id[:])
}

// Bytes returns byte slice form of Identifier.
func (id Identifier) Bytes() []byte {
	return id[:]
}

// IsZero returns if Identifier has all zero bytes.
func (id Identifier) IsZero() bool {
	return id == Identifier{}
}

// Compare compares two identifiers lexicographically.
func (id Identifier) Compare(other Identifier) int {
	return bytes.Compare(id[:], other[:])
}

// MarshalJSON implements json.Marshaler.
func (id *Identifier) MarshalJSON() ([]byte, error) {
	if id == nil {
		return json.Marshal(nil)
	}
	return json.Marshal(id.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *Identifier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseIdentifier(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParseIdentifier parses a 0x-prefixed hex string.
func ParseIdentifier(s string) (Identifier, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return Identifier{}, errors.Wrap(err, "parse identifier")
	}
	return BytesToIdentifier(b)
}

// MustParseIdentifier parses the hex string, panic on error.
func MustParseIdentifier(s string) Identifier {
	id, err := ParseIdentifier(s)
	if err != nil {
		panic(err)
	}
	return id
}

// BytesToIdentifier converts an exactly 32-byte slice into Identifier.
func BytesToIdentifier(b []byte) (Identifier, error) {
	var id Identifier
	if len(b) != IdentifierLength {
		return id, errors.Errorf("invalid identifier length %d", len(b))
	}
	copy(id[:], b)
	return id, nil
}

// DeriveIdentifier derives an identifier by hashing the given parts.
func DeriveIdentifier(parts ...[]byte) Identifier {
	return Identifier(crypto.Keccak256Hash(parts...))
}
