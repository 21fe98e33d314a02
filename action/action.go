// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package action defines the document and token transitions of a batch and
// the actions a validated batch is reduced to.
package action

import (
	"fmt"

	"github.com/platformcore/drive/drive"
)

// Kind tags every action type.
type Kind uint8

const (
	DocumentCreateKind Kind = iota + 1
	DocumentReplaceKind
	DocumentDeleteKind
	DocumentTransferKind
	DocumentUpdatePriceKind
	DocumentPurchaseKind

	TokenBurnKind
	TokenMintKind
	TokenTransferKind
	TokenFreezeKind
	TokenUnfreezeKind
	TokenEmergencyActionKind
	TokenDestroyFrozenFundsKind
	TokenConfigUpdateKind
	TokenClaimKind
	TokenDirectPurchaseKind
	TokenSetPriceForDirectPurchaseKind

	BumpIdentityDataContractNonceKind
)

var kindNames = [...]string{
	DocumentCreateKind:                 "document_create",
	DocumentReplaceKind:                "document_replace",
	DocumentDeleteKind:                 "document_delete",
	DocumentTransferKind:               "document_transfer",
	DocumentUpdatePriceKind:            "document_update_price",
	DocumentPurchaseKind:               "document_purchase",
	TokenBurnKind:                      "token_burn",
	TokenMintKind:                      "token_mint",
	TokenTransferKind:                  "token_transfer",
	TokenFreezeKind:                    "token_freeze",
	TokenUnfreezeKind:                  "token_unfreeze",
	TokenEmergencyActionKind:           "token_emergency_action",
	TokenDestroyFrozenFundsKind:        "token_destroy_frozen_funds",
	TokenConfigUpdateKind:              "token_config_update",
	TokenClaimKind:                     "token_claim",
	TokenDirectPurchaseKind:            "token_direct_purchase",
	TokenSetPriceForDirectPurchaseKind: "token_set_price_for_direct_purchase",
	BumpIdentityDataContractNonceKind:  "bump_identity_data_contract_nonce",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind returns the kind named s.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name != "" && name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown action kind %q", s)
}

// IsDocument returns whether k is a document transition kind.
func (k Kind) IsDocument() bool {
	return k >= DocumentCreateKind && k <= DocumentPurchaseKind
}

// Base holds what every transition carries about its contract and the
// owner's identity-contract nonce.
type Base struct {
	ContractID            drive.Identifier
	IdentityContractNonce uint64
	UserFeeIncrease       uint16
}

// Action is anything a validated batch is reduced to.
type Action interface {
	Kind() Kind
	GetBase() *Base
	Accept(v Visitor) error
}

// Transition is an action submitted by a user, before validation.
type Transition interface {
	Action
	AcceptTransition(v TransitionVisitor) error
}

// DocumentVisitor has one method per document transition kind.
type DocumentVisitor interface {
	VisitDocumentCreate(t *DocumentCreate) error
	VisitDocumentReplace(t *DocumentReplace) error
	VisitDocumentDelete(t *DocumentDelete) error
	VisitDocumentTransfer(t *DocumentTransfer) error
	VisitDocumentUpdatePrice(t *DocumentUpdatePrice) error
	VisitDocumentPurchase(t *DocumentPurchase) error
}

// TokenVisitor has one method per token transition kind.
type TokenVisitor interface {
	VisitTokenBurn(t *TokenBurn) error
	VisitTokenMint(t *TokenMint) error
	VisitTokenTransfer(t *TokenTransfer) error
	VisitTokenFreeze(t *TokenFreeze) error
	VisitTokenUnfreeze(t *TokenUnfreeze) error
	VisitTokenEmergencyAction(t *TokenEmergencyAction) error
	VisitTokenDestroyFrozenFunds(t *TokenDestroyFrozenFunds) error
	VisitTokenConfigUpdate(t *TokenConfigUpdate) error
	VisitTokenClaim(t *TokenClaim) error
	VisitTokenDirectPurchase(t *TokenDirectPurchase) error
	VisitTokenSetPriceForDirectPurchase(t *TokenSetPriceForDirectPurchase) error
}

// TransitionVisitor visits every kind a user may submit.
type TransitionVisitor interface {
	DocumentVisitor
	TokenVisitor
}

// Visitor visits every action kind.
type Visitor interface {
	TransitionVisitor
	VisitBumpNonce(a *BumpIdentityDataContractNonce) error
}

// BatchTransitionAction is an owner and its ordered transitions.
type BatchTransitionAction struct {
	OwnerID     drive.Identifier
	Transitions []Transition
}
