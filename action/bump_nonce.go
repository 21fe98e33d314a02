// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package action

import (
	"fmt"

	"github.com/platformcore/drive/drive"
)

// BumpIdentityDataContractNonce replaces a rejected transition. It only
// advances the identity-contract nonce, so the rejected transition can not be
// replayed, and is charged the processing fee of the original.
type BumpIdentityDataContractNonce struct {
	IdentityID            drive.Identifier
	ContractID            drive.Identifier
	IdentityContractNonce uint64
	UserFeeIncrease       uint16
}

// NewBumpNonce builds the replacement of a rejected document or token transition.
func NewBumpNonce(base *Base, owner drive.Identifier) *BumpIdentityDataContractNonce {
	return &BumpIdentityDataContractNonce{
		IdentityID:            owner,
		ContractID:            base.ContractID,
		IdentityContractNonce: base.IdentityContractNonce,
		UserFeeIncrease:       base.UserFeeIncrease,
	}
}

func (*BumpIdentityDataContractNonce) Kind() Kind { return BumpIdentityDataContractNonceKind }

// GetBase implements Action.
func (a *BumpIdentityDataContractNonce) GetBase() *Base {
	return &Base{
		ContractID:            a.ContractID,
		IdentityContractNonce: a.IdentityContractNonce,
		UserFeeIncrease:       a.UserFeeIncrease,
	}
}

func (a *BumpIdentityDataContractNonce) Accept(v Visitor) error { return v.VisitBumpNonce(a) }

func (a *BumpIdentityDataContractNonce) String() string {
	return fmt.Sprintf("bump nonce(%v/%v -> %d)", a.IdentityID, a.ContractID, a.IdentityContractNonce)
}

var _ Action = (*BumpIdentityDataContractNonce)(nil)
