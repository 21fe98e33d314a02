// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package consensus defines the recoverable errors a transition is rejected with.
// They are recorded in execution results and never abort a block.
package consensus

import (
	"fmt"

	"github.com/platformcore/drive/drive"
)

// Code identifies the rule a transition broke.
type Code uint16

const (
	// document rules
	DocumentAlreadyPresent Code = iota + 10000
	DocumentNotFound
	DocumentOwnerIDMismatch
	InvalidDocumentRevision
	DocumentNotMutable
	DocumentNotDeletable
	DocumentNotTransferable
	DocumentTransferToSelf
	DocumentNotForSale
	DocumentPriceMismatch
	DocumentAlreadyOwned
	DocumentTimestampWindowViolation
	IdentityInsufficientBalance
)

const (
	// identity rules
	InvalidIdentityContractNonce Code = iota + 10200
)

const (
	// token rules
	TokenIsPaused Code = iota + 10400
	TokenInsufficientBalance
	UnauthorizedTokenAction
	TokenMintPastMaxSupply
	IdentityTokenAccountFrozen
	TokenTransferToSelf
	TokenAccountAlreadyFrozen
	TokenAccountNotFrozen
	TokenAlreadyInState
	TokenNoFrozenFunds
	TokenNothingToClaim
	TokenNotForDirectSale
	TokenDirectPurchasePriceTooLow
)

const (
	// data trigger rules
	DataTriggerActionNotAllowed Code = iota + 10800
	DataTriggerInvalidResult
)

var codeNames = map[Code]string{
	DocumentAlreadyPresent:           "DocumentAlreadyPresent",
	DocumentNotFound:                 "DocumentNotFound",
	DocumentOwnerIDMismatch:          "DocumentOwnerIdMismatch",
	InvalidDocumentRevision:          "InvalidDocumentRevision",
	DocumentNotMutable:               "DocumentNotMutable",
	DocumentNotDeletable:             "DocumentNotDeletable",
	DocumentNotTransferable:          "DocumentNotTransferable",
	DocumentTransferToSelf:           "DocumentTransferToSelf",
	DocumentNotForSale:               "DocumentNotForSale",
	DocumentPriceMismatch:            "DocumentPriceMismatch",
	DocumentAlreadyOwned:             "DocumentAlreadyOwned",
	DocumentTimestampWindowViolation: "DocumentTimestampWindowViolation",
	IdentityInsufficientBalance:      "IdentityInsufficientBalance",
	InvalidIdentityContractNonce:     "InvalidIdentityContractNonce",
	TokenIsPaused:                    "TokenIsPaused",
	TokenInsufficientBalance:         "TokenInsufficientBalance",
	UnauthorizedTokenAction:          "UnauthorizedTokenAction",
	TokenMintPastMaxSupply:           "TokenMintPastMaxSupply",
	IdentityTokenAccountFrozen:       "IdentityTokenAccountFrozen",
	TokenTransferToSelf:              "TokenTransferToSelf",
	TokenAccountAlreadyFrozen:        "TokenAccountAlreadyFrozen",
	TokenAccountNotFrozen:            "TokenAccountNotFrozen",
	TokenAlreadyInState:              "TokenAlreadyInState",
	TokenNoFrozenFunds:               "TokenNoFrozenFunds",
	TokenNothingToClaim:              "TokenNothingToClaim",
	TokenNotForDirectSale:            "TokenNotForDirectSale",
	TokenDirectPurchasePriceTooLow:   "TokenDirectPurchasePriceTooLow",
	DataTriggerActionNotAllowed:      "DataTriggerActionNotAllowed",
	DataTriggerInvalidResult:         "DataTriggerInvalidResult",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", uint16(c))
}

// Error is a consensus error: a transition broke a state rule.
type Error struct {
	Code    Code
	Message string
}

// NewError creates a consensus error.
func NewError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %s", e.Code, e.Message)
}

// NewDocumentNotFound reports a missing document.
func NewDocumentNotFound(id drive.Identifier) *Error {
	return NewError(DocumentNotFound, "document %v not found", id)
}

// NewDocumentOwnerIDMismatch reports a transition by someone else than the document owner.
func NewDocumentOwnerIDMismatch(id, owner, actor drive.Identifier) *Error {
	return NewError(DocumentOwnerIDMismatch, "document %v is owned by %v, not %v", id, owner, actor)
}

// NewInvalidDocumentRevision reports a revision that does not follow the stored one.
func NewInvalidDocumentRevision(id drive.Identifier, stored, got uint64) *Error {
	return NewError(InvalidDocumentRevision, "document %v at revision %d, got %d", id, stored, got)
}

// NewInvalidIdentityContractNonce reports a nonce that does not advance the stored one.
func NewInvalidIdentityContractNonce(identity, contract drive.Identifier, stored, got uint64) *Error {
	return NewError(InvalidIdentityContractNonce, "identity %v nonce for contract %v is %d, got %d", identity, contract, stored, got)
}

// NewUnauthorizedTokenAction reports an actor without the required authority.
func NewUnauthorizedTokenAction(token, actor drive.Identifier, action string) *Error {
	return NewError(UnauthorizedTokenAction, "%v may not %s token %v", actor, action, token)
}
