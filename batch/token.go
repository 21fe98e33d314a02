// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package batch

import (
	"math"

	"github.com/pkg/errors"

	"github.com/platformcore/drive/action"
	"github.com/platformcore/drive/consensus"
	"github.com/platformcore/drive/drive"
	"github.com/platformcore/drive/state"
)

// token returns the config of the token of a transition. Unless skipPause is
// set, a paused token rejects the transition and nil is returned.
func (sv *stateValidator) token(base *action.TokenBase, skipPause bool) (*state.TokenConfig, error) {
	tc, ok := sv.contract.Token(base.TokenPosition)
	if !ok {
		return nil, errors.Wrapf(ErrTokenNotFound, "position %d in contract %v", base.TokenPosition, base.ContractID)
	}
	if skipPause {
		return tc, nil
	}
	paused, err := sv.state().IsTokenPaused(base.TokenID(), sv.tx)
	if err != nil {
		return nil, err
	}
	if paused {
		return nil, sv.reject(consensus.NewError(consensus.TokenIsPaused, "token %v is paused", base.TokenID()))
	}
	return tc, nil
}

func (sv *stateValidator) authorized(base *action.TokenBase, authority drive.Identifier, what string) bool {
	if sv.contract.IsAuthorized(sv.owner, authority) {
		return true
	}
	sv.reject(consensus.NewUnauthorizedTokenAction(base.TokenID(), sv.owner, what))
	return false
}

func (sv *stateValidator) checkBalance(base *action.TokenBase, holder drive.Identifier, amount uint64) (bool, error) {
	balance, err := sv.state().GetTokenBalance(base.TokenID(), holder, sv.tx)
	if err != nil {
		return false, err
	}
	if balance < amount {
		sv.reject(consensus.NewError(consensus.TokenInsufficientBalance,
			"%v holds %d of token %v, needs %d", holder, balance, base.TokenID(), amount))
		return false, nil
	}
	return true, nil
}

func (sv *stateValidator) checkMint(base *action.TokenBase, tc *state.TokenConfig, amount uint64) (bool, error) {
	supply, err := sv.state().GetTotalSupply(base.TokenID(), sv.tx)
	if err != nil {
		return false, err
	}
	limit := tc.MaxSupply
	if limit == 0 {
		limit = math.MaxUint64
	}
	if amount > limit || supply > limit-amount {
		sv.reject(consensus.NewError(consensus.TokenMintPastMaxSupply,
			"token %v supply %d + %d exceeds %d", base.TokenID(), supply, amount, limit))
		return false, nil
	}
	return true, nil
}

func (sv *stateValidator) frozen(base *action.TokenBase, id drive.Identifier) (bool, error) {
	return sv.state().IsTokenAccountFrozen(base.TokenID(), id, sv.tx)
}

func (sv *stateValidator) VisitTokenBurn(t *action.TokenBurn) error {
	if tc, err := sv.token(&t.TokenBase, false); tc == nil || err != nil {
		return err
	}
	_, err := sv.checkBalance(&t.TokenBase, sv.owner, t.Amount)
	return err
}

func (sv *stateValidator) VisitTokenMint(t *action.TokenMint) error {
	tc, err := sv.token(&t.TokenBase, false)
	if tc == nil || err != nil {
		return err
	}
	if !sv.authorized(&t.TokenBase, tc.MintAuthority, "mint") {
		return nil
	}
	_, err = sv.checkMint(&t.TokenBase, tc, t.Amount)
	return err
}

func (sv *stateValidator) VisitTokenTransfer(t *action.TokenTransfer) error {
	tc, err := sv.token(&t.TokenBase, false)
	if tc == nil || err != nil {
		return err
	}
	frozen, err := sv.frozen(&t.TokenBase, sv.owner)
	if err != nil {
		return err
	}
	if frozen {
		return sv.reject(consensus.NewError(consensus.IdentityTokenAccountFrozen,
			"%v is frozen for token %v", sv.owner, t.TokenID()))
	}
	if ok, err := sv.checkBalance(&t.TokenBase, sv.owner, t.Amount); !ok || err != nil {
		return err
	}
	if !tc.AllowTransferToFrozen {
		frozen, err := sv.frozen(&t.TokenBase, t.RecipientID)
		if err != nil {
			return err
		}
		if frozen {
			return sv.reject(consensus.NewError(consensus.IdentityTokenAccountFrozen,
				"recipient %v is frozen for token %v", t.RecipientID, t.TokenID()))
		}
	}
	if t.RecipientID == sv.owner {
		return sv.reject(consensus.NewError(consensus.TokenTransferToSelf, "%v transfers token %v to itself", sv.owner, t.TokenID()))
	}
	return nil
}

func (sv *stateValidator) VisitTokenFreeze(t *action.TokenFreeze) error {
	tc, err := sv.token(&t.TokenBase, false)
	if tc == nil || err != nil {
		return err
	}
	if !sv.authorized(&t.TokenBase, tc.FreezeAuthority, "freeze") {
		return nil
	}
	frozen, err := sv.frozen(&t.TokenBase, t.FrozenID)
	if err != nil {
		return err
	}
	if frozen {
		return sv.reject(consensus.NewError(consensus.TokenAccountAlreadyFrozen,
			"%v already frozen for token %v", t.FrozenID, t.TokenID()))
	}
	return nil
}

func (sv *stateValidator) VisitTokenUnfreeze(t *action.TokenUnfreeze) error {
	tc, err := sv.token(&t.TokenBase, false)
	if tc == nil || err != nil {
		return err
	}
	if !sv.authorized(&t.TokenBase, tc.FreezeAuthority, "unfreeze") {
		return nil
	}
	frozen, err := sv.frozen(&t.TokenBase, t.FrozenID)
	if err != nil {
		return err
	}
	if !frozen {
		return sv.reject(consensus.NewError(consensus.TokenAccountNotFrozen,
			"%v not frozen for token %v", t.FrozenID, t.TokenID()))
	}
	return nil
}

func (sv *stateValidator) VisitTokenEmergencyAction(t *action.TokenEmergencyAction) error {
	tc, err := sv.token(&t.TokenBase, true)
	if err != nil {
		return err
	}
	if !sv.authorized(&t.TokenBase, tc.EmergencyAuthority, "pause or resume") {
		return nil
	}
	paused, err := sv.state().IsTokenPaused(t.TokenID(), sv.tx)
	if err != nil {
		return err
	}
	if paused == (t.Action == action.EmergencyPause) {
		return sv.reject(consensus.NewError(consensus.TokenAlreadyInState,
			"token %v paused=%v already", t.TokenID(), paused))
	}
	return nil
}

func (sv *stateValidator) VisitTokenDestroyFrozenFunds(t *action.TokenDestroyFrozenFunds) error {
	tc, err := sv.token(&t.TokenBase, false)
	if tc == nil || err != nil {
		return err
	}
	if !sv.authorized(&t.TokenBase, tc.FreezeAuthority, "destroy frozen funds of") {
		return nil
	}
	frozen, err := sv.frozen(&t.TokenBase, t.FrozenID)
	if err != nil {
		return err
	}
	if !frozen {
		return sv.reject(consensus.NewError(consensus.TokenAccountNotFrozen,
			"%v not frozen for token %v", t.FrozenID, t.TokenID()))
	}
	balance, err := sv.state().GetTokenBalance(t.TokenID(), t.FrozenID, sv.tx)
	if err != nil {
		return err
	}
	if balance == 0 {
		return sv.reject(consensus.NewError(consensus.TokenNoFrozenFunds,
			"%v holds no token %v", t.FrozenID, t.TokenID()))
	}
	return nil
}

func (sv *stateValidator) VisitTokenConfigUpdate(t *action.TokenConfigUpdate) error {
	tc, err := sv.token(&t.TokenBase, false)
	if tc == nil || err != nil {
		return err
	}
	sv.authorized(&t.TokenBase, tc.ConfigAuthority, "configure")
	return nil
}

func (sv *stateValidator) VisitTokenClaim(t *action.TokenClaim) error {
	if tc, err := sv.token(&t.TokenBase, false); tc == nil || err != nil {
		return err
	}
	claimable, err := sv.state().GetClaimable(t.TokenID(), sv.owner, sv.tx)
	if err != nil {
		return err
	}
	if claimable == 0 {
		return sv.reject(consensus.NewError(consensus.TokenNothingToClaim,
			"%v has nothing to claim of token %v", sv.owner, t.TokenID()))
	}
	return nil
}

func (sv *stateValidator) VisitTokenDirectPurchase(t *action.TokenDirectPurchase) error {
	tc, err := sv.token(&t.TokenBase, false)
	if tc == nil || err != nil {
		return err
	}
	price, err := sv.state().GetDirectPurchasePrice(t.TokenID(), sv.tx)
	if err != nil {
		return err
	}
	if price == 0 {
		return sv.reject(consensus.NewError(consensus.TokenNotForDirectSale, "token %v is not for sale", t.TokenID()))
	}
	required, err := drive.CheckedMul(price, t.Amount, "direct purchase price")
	if err != nil || t.TotalAgreedPrice < required {
		return sv.reject(consensus.NewError(consensus.TokenDirectPurchasePriceTooLow,
			"%d of token %v at %d each, agreed %d", t.Amount, t.TokenID(), price, t.TotalAgreedPrice))
	}
	balance, err := sv.state().GetBalance(sv.owner, sv.tx)
	if err != nil {
		return err
	}
	if balance < t.TotalAgreedPrice {
		return sv.reject(consensus.NewError(consensus.IdentityInsufficientBalance,
			"identity %v has %d credits, needs %d", sv.owner, balance, t.TotalAgreedPrice))
	}
	_, err = sv.checkMint(&t.TokenBase, tc, t.Amount)
	return err
}

func (sv *stateValidator) VisitTokenSetPriceForDirectPurchase(t *action.TokenSetPriceForDirectPurchase) error {
	tc, err := sv.token(&t.TokenBase, false)
	if tc == nil || err != nil {
		return err
	}
	sv.authorized(&t.TokenBase, tc.PriceAuthority, "price")
	return nil
}
