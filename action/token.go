// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package action

import "github.com/platformcore/drive/drive"

// TokenBase is shared by token transitions.
type TokenBase struct {
	Base
	TokenPosition uint16
}

// GetBase implements Action.
func (b *TokenBase) GetBase() *Base { return &b.Base }

// GetTokenBase implements TokenTransition.
func (b *TokenBase) GetTokenBase() *TokenBase { return b }

// TokenID returns the identifier of the token.
func (b *TokenBase) TokenID() drive.Identifier {
	return drive.TokenID(b.ContractID, b.TokenPosition)
}

// TokenTransition is a transition on a token.
type TokenTransition interface {
	Transition
	GetTokenBase() *TokenBase
}

// EmergencyAction pauses or resumes a token.
type EmergencyAction uint8

const (
	EmergencyPause EmergencyAction = iota
	EmergencyResume
)

// TokenBurn destroys tokens of the owner.
type TokenBurn struct {
	TokenBase
	Amount uint64
}

// TokenMint issues new tokens. A zero recipient means the owner.
type TokenMint struct {
	TokenBase
	Amount      uint64
	RecipientID drive.Identifier
}

// TokenTransfer moves tokens of the owner.
type TokenTransfer struct {
	TokenBase
	Amount      uint64
	RecipientID drive.Identifier
}

// TokenFreeze freezes an identity for the token.
type TokenFreeze struct {
	TokenBase
	FrozenID drive.Identifier
}

// TokenUnfreeze unfreezes an identity for the token.
type TokenUnfreeze struct {
	TokenBase
	FrozenID drive.Identifier
}

// TokenEmergencyAction pauses or resumes every other action on the token.
type TokenEmergencyAction struct {
	TokenBase
	Action EmergencyAction
}

// TokenDestroyFrozenFunds burns the whole balance of a frozen identity.
type TokenDestroyFrozenFunds struct {
	TokenBase
	FrozenID drive.Identifier
}

// TokenConfigUpdate changes the token configuration.
type TokenConfigUpdate struct {
	TokenBase
	MaxSupply             uint64
	AllowTransferToFrozen bool
}

// TokenClaim moves the claimable tokens of the owner to its balance.
type TokenClaim struct {
	TokenBase
}

// TokenDirectPurchase buys tokens at the direct purchase price.
type TokenDirectPurchase struct {
	TokenBase
	Amount           uint64
	TotalAgreedPrice uint64
}

// TokenSetPriceForDirectPurchase sets the unit price, zero to stop sales.
type TokenSetPriceForDirectPurchase struct {
	TokenBase
	Price uint64
}

func (*TokenBurn) Kind() Kind                      { return TokenBurnKind }
func (*TokenMint) Kind() Kind                      { return TokenMintKind }
func (*TokenTransfer) Kind() Kind                  { return TokenTransferKind }
func (*TokenFreeze) Kind() Kind                    { return TokenFreezeKind }
func (*TokenUnfreeze) Kind() Kind                  { return TokenUnfreezeKind }
func (*TokenEmergencyAction) Kind() Kind           { return TokenEmergencyActionKind }
func (*TokenDestroyFrozenFunds) Kind() Kind        { return TokenDestroyFrozenFundsKind }
func (*TokenConfigUpdate) Kind() Kind              { return TokenConfigUpdateKind }
func (*TokenClaim) Kind() Kind                     { return TokenClaimKind }
func (*TokenDirectPurchase) Kind() Kind            { return TokenDirectPurchaseKind }
func (*TokenSetPriceForDirectPurchase) Kind() Kind { return TokenSetPriceForDirectPurchaseKind }

func (t *TokenBurn) Accept(v Visitor) error               { return t.AcceptTransition(v) }
func (t *TokenMint) Accept(v Visitor) error               { return t.AcceptTransition(v) }
func (t *TokenTransfer) Accept(v Visitor) error           { return t.AcceptTransition(v) }
func (t *TokenFreeze) Accept(v Visitor) error             { return t.AcceptTransition(v) }
func (t *TokenUnfreeze) Accept(v Visitor) error           { return t.AcceptTransition(v) }
func (t *TokenEmergencyAction) Accept(v Visitor) error    { return t.AcceptTransition(v) }
func (t *TokenDestroyFrozenFunds) Accept(v Visitor) error { return t.AcceptTransition(v) }
func (t *TokenConfigUpdate) Accept(v Visitor) error       { return t.AcceptTransition(v) }
func (t *TokenClaim) Accept(v Visitor) error              { return t.AcceptTransition(v) }
func (t *TokenDirectPurchase) Accept(v Visitor) error     { return t.AcceptTransition(v) }
func (t *TokenSetPriceForDirectPurchase) Accept(v Visitor) error {
	return t.AcceptTransition(v)
}

func (t *TokenBurn) AcceptTransition(v TransitionVisitor) error { return v.VisitTokenBurn(t) }
func (t *TokenMint) AcceptTransition(v TransitionVisitor) error { return v.VisitTokenMint(t) }
func (t *TokenTransfer) AcceptTransition(v TransitionVisitor) error {
	return v.VisitTokenTransfer(t)
}

func (t *TokenFreeze) AcceptTransition(v TransitionVisitor) error {
	return v.VisitTokenFreeze(t)
}

func (t *TokenUnfreeze) AcceptTransition(v TransitionVisitor) error {
	return v.VisitTokenUnfreeze(t)
}

func (t *TokenEmergencyAction) AcceptTransition(v TransitionVisitor) error {
	return v.VisitTokenEmergencyAction(t)
}

func (t *TokenDestroyFrozenFunds) AcceptTransition(v TransitionVisitor) error {
	return v.VisitTokenDestroyFrozenFunds(t)
}

func (t *TokenConfigUpdate) AcceptTransition(v TransitionVisitor) error {
	return v.VisitTokenConfigUpdate(t)
}

func (t *TokenClaim) AcceptTransition(v TransitionVisitor) error {
	return v.VisitTokenClaim(t)
}

func (t *TokenDirectPurchase) AcceptTransition(v TransitionVisitor) error {
	return v.VisitTokenDirectPurchase(t)
}

func (t *TokenSetPriceForDirectPurchase) AcceptTransition(v TransitionVisitor) error {
	return v.VisitTokenSetPriceForDirectPurchase(t)
}

var (
	_ TokenTransition = (*TokenBurn)(nil)
	_ TokenTransition = (*TokenMint)(nil)
	_ TokenTransition = (*TokenTransfer)(nil)
	_ TokenTransition = (*TokenFreeze)(nil)
	_ TokenTransition = (*TokenUnfreeze)(nil)
	_ TokenTransition = (*TokenEmergencyAction)(nil)
	_ TokenTransition = (*TokenDestroyFrozenFunds)(nil)
	_ TokenTransition = (*TokenConfigUpdate)(nil)
	_ TokenTransition = (*TokenClaim)(nil)
	_ TokenTransition = (*TokenDirectPurchase)(nil)
	_ TokenTransition = (*TokenSetPriceForDirectPurchase)(nil)
)
