// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package executor

import (
	"github.com/pkg/errors"

	"github.com/platformcore/drive/action"
	"github.com/platformcore/drive/cache"
	"github.com/platformcore/drive/drive"
	"github.com/platformcore/drive/fee/pools"
	"github.com/platformcore/drive/grove"
	"github.com/platformcore/drive/state"
)

// applier turns validated actions into store operations and applies them to
// the block transaction one action at a time. It also sums the fees of the block.
type applier struct {
	state     *state.State
	contracts *cache.Contracts
	tx        *grove.Transaction

	baseProcessingFee uint64
	storageFeePerByte uint64
	multiplier        uint64

	// per action
	owner drive.Identifier
	batch *grove.Batch
	bytes int

	processingFee uint64
	storageFee    uint64
	applied       int
}

var _ action.Visitor = (*applier)(nil)

// Apply implements batch.Sink.
func (a *applier) Apply(owner drive.Identifier, act action.Action) error {
	a.owner = owner
	a.batch = grove.NewBatch()
	a.bytes = 0

	if err := a.ensureIdentity(owner); err != nil {
		return err
	}
	if err := act.Accept(a); err != nil {
		return err
	}

	base := act.GetBase()
	if err := a.state.AddSetNonceOperations(a.batch, owner, base.ContractID, base.IdentityContractNonce, a.tx); err != nil {
		return err
	}

	fee, err := pools.ProcessingFee(a.baseProcessingFee, a.multiplier, base.UserFeeIncrease)
	if err != nil {
		return err
	}
	if a.processingFee, err = drive.CheckedAdd(a.processingFee, fee, "block processing fee"); err != nil {
		return err
	}
	fee, err = pools.StorageFee(a.bytes, a.storageFeePerByte)
	if err != nil {
		return err
	}
	if a.storageFee, err = drive.CheckedAdd(a.storageFee, fee, "block storage fee"); err != nil {
		return err
	}

	if err := a.flush(); err != nil {
		return errors.WithMessagef(err, "apply %v", act.Kind())
	}
	a.applied++
	return nil
}

// ensureIdentity creates identities first seen in this block.
func (a *applier) ensureIdentity(id drive.Identifier) error {
	ok, err := a.state.HasIdentity(id, a.tx)
	if err != nil || ok {
		return err
	}
	a.state.AddInsertIdentityOperations(a.batch, id, 0)
	return a.flush()
}

// flush applies the queued operations so that later reads through tx observe them.
func (a *applier) flush() error {
	if a.batch.IsEmpty() {
		return nil
	}
	if err := a.state.Store().ApplyBatch(a.batch, false, a.tx); err != nil {
		return err
	}
	a.batch = grove.NewBatch()
	return nil
}

func (a *applier) document(base *action.DocumentBase) (*state.Document, error) {
	doc, err := a.state.GetDocument(base.ContractID, base.DocumentType, base.DocumentID, a.tx)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errors.Errorf("validated document %v not found", base.DocumentID)
	}
	return doc, nil
}

func (a *applier) putDocument(base *action.DocumentBase, doc *state.Document) error {
	return a.state.AddPutDocumentOperations(a.batch, base.ContractID, base.DocumentType, doc)
}

func (a *applier) transferCredits(from, to drive.Identifier, amount uint64) error {
	balance, err := a.state.GetBalance(from, a.tx)
	if err != nil {
		return err
	}
	if balance, err = drive.CheckedSub(balance, amount, "payer balance"); err != nil {
		return err
	}
	a.state.AddSetBalanceOperations(a.batch, from, balance)
	if err := a.flush(); err != nil {
		return err
	}
	if err := a.ensureIdentity(to); err != nil {
		return err
	}
	if balance, err = a.state.GetBalance(to, a.tx); err != nil {
		return err
	}
	if balance, err = drive.CheckedAdd(balance, amount, "payee balance"); err != nil {
		return err
	}
	a.state.AddSetBalanceOperations(a.batch, to, balance)
	return nil
}

func (a *applier) VisitDocumentCreate(t *action.DocumentCreate) error {
	a.bytes = len(t.Data)
	return a.putDocument(&t.DocumentBase, &state.Document{
		ID:        t.DocumentID,
		Owner:     a.owner,
		Revision:  1,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.CreatedAt,
		Data:      t.Data,
	})
}

func (a *applier) VisitDocumentReplace(t *action.DocumentReplace) error {
	doc, err := a.document(&t.DocumentBase)
	if err != nil {
		return err
	}
	a.bytes = len(t.Data)
	doc.Data = t.Data
	doc.Revision = t.Revision
	doc.UpdatedAt = t.UpdatedAt
	return a.putDocument(&t.DocumentBase, doc)
}

func (a *applier) VisitDocumentDelete(t *action.DocumentDelete) error {
	a.state.AddDeleteDocumentOperations(a.batch, t.ContractID, t.DocumentType, t.DocumentID)
	return nil
}

func (a *applier) VisitDocumentTransfer(t *action.DocumentTransfer) error {
	doc, err := a.document(&t.DocumentBase)
	if err != nil {
		return err
	}
	doc.Owner = t.RecipientID
	doc.Revision = t.Revision
	doc.Price = 0
	return a.putDocument(&t.DocumentBase, doc)
}

func (a *applier) VisitDocumentUpdatePrice(t *action.DocumentUpdatePrice) error {
	doc, err := a.document(&t.DocumentBase)
	if err != nil {
		return err
	}
	doc.Price = t.Price
	doc.Revision = t.Revision
	return a.putDocument(&t.DocumentBase, doc)
}

func (a *applier) VisitDocumentPurchase(t *action.DocumentPurchase) error {
	doc, err := a.document(&t.DocumentBase)
	if err != nil {
		return err
	}
	if err := a.transferCredits(a.owner, doc.Owner, doc.Price); err != nil {
		return err
	}
	doc.Owner = a.owner
	doc.Revision++
	doc.Price = 0
	return a.putDocument(&t.DocumentBase, doc)
}

func (a *applier) addTokenBalance(token, holder drive.Identifier, amount uint64) error {
	balance, err := a.state.GetTokenBalance(token, holder, a.tx)
	if err != nil {
		return err
	}
	if balance, err = drive.CheckedAdd(balance, amount, "token balance"); err != nil {
		return err
	}
	a.state.AddSetTokenBalanceOperations(a.batch, token, holder, balance)
	return nil
}

func (a *applier) subTokenBalance(token, holder drive.Identifier, amount uint64) error {
	balance, err := a.state.GetTokenBalance(token, holder, a.tx)
	if err != nil {
		return err
	}
	if balance, err = drive.CheckedSub(balance, amount, "token balance"); err != nil {
		return err
	}
	a.state.AddSetTokenBalanceOperations(a.batch, token, holder, balance)
	return nil
}

func (a *applier) addSupply(token drive.Identifier, amount uint64) error {
	supply, err := a.state.GetTotalSupply(token, a.tx)
	if err != nil {
		return err
	}
	if supply, err = drive.CheckedAdd(supply, amount, "token supply"); err != nil {
		return err
	}
	a.state.AddSetTotalSupplyOperations(a.batch, token, supply)
	return nil
}

func (a *applier) subSupply(token drive.Identifier, amount uint64) error {
	supply, err := a.state.GetTotalSupply(token, a.tx)
	if err != nil {
		return err
	}
	if supply, err = drive.CheckedSub(supply, amount, "token supply"); err != nil {
		return err
	}
	a.state.AddSetTotalSupplyOperations(a.batch, token, supply)
	return nil
}

func (a *applier) VisitTokenBurn(t *action.TokenBurn) error {
	if err := a.subTokenBalance(t.TokenID(), a.owner, t.Amount); err != nil {
		return err
	}
	return a.subSupply(t.TokenID(), t.Amount)
}

func (a *applier) VisitTokenMint(t *action.TokenMint) error {
	recipient := t.RecipientID
	if recipient.IsZero() {
		recipient = a.owner
	}
	if err := a.addTokenBalance(t.TokenID(), recipient, t.Amount); err != nil {
		return err
	}
	return a.addSupply(t.TokenID(), t.Amount)
}

func (a *applier) VisitTokenTransfer(t *action.TokenTransfer) error {
	if err := a.subTokenBalance(t.TokenID(), a.owner, t.Amount); err != nil {
		return err
	}
	if err := a.flush(); err != nil {
		return err
	}
	return a.addTokenBalance(t.TokenID(), t.RecipientID, t.Amount)
}

func (a *applier) VisitTokenFreeze(t *action.TokenFreeze) error {
	a.state.AddFreezeOperations(a.batch, t.TokenID(), t.FrozenID)
	return nil
}

func (a *applier) VisitTokenUnfreeze(t *action.TokenUnfreeze) error {
	a.state.AddUnfreezeOperations(a.batch, t.TokenID(), t.FrozenID)
	return nil
}

func (a *applier) VisitTokenEmergencyAction(t *action.TokenEmergencyAction) error {
	a.state.AddSetPausedOperations(a.batch, t.TokenID(), t.Action == action.EmergencyPause)
	return nil
}

func (a *applier) VisitTokenDestroyFrozenFunds(t *action.TokenDestroyFrozenFunds) error {
	balance, err := a.state.GetTokenBalance(t.TokenID(), t.FrozenID, a.tx)
	if err != nil {
		return err
	}
	a.state.AddSetTokenBalanceOperations(a.batch, t.TokenID(), t.FrozenID, 0)
	return a.subSupply(t.TokenID(), balance)
}

func (a *applier) VisitTokenConfigUpdate(t *action.TokenConfigUpdate) error {
	contract, err := a.contracts.GetContract(t.ContractID, a.tx)
	if err != nil {
		return err
	}
	updated := contract.Copy()
	tc, ok := updated.Token(t.TokenPosition)
	if !ok {
		return errors.Errorf("validated token %d not in contract %v", t.TokenPosition, t.ContractID)
	}
	tc.MaxSupply = t.MaxSupply
	tc.AllowTransferToFrozen = t.AllowTransferToFrozen
	updated.Version++

	if err := a.state.AddUpdateContractOperations(a.batch, updated); err != nil {
		return err
	}
	a.contracts.MarkDirty(t.ContractID)
	return nil
}

func (a *applier) VisitTokenClaim(t *action.TokenClaim) error {
	claimable, err := a.state.GetClaimable(t.TokenID(), a.owner, a.tx)
	if err != nil {
		return err
	}
	a.state.AddSetClaimableOperations(a.batch, t.TokenID(), a.owner, 0)
	return a.addTokenBalance(t.TokenID(), a.owner, claimable)
}

func (a *applier) VisitTokenDirectPurchase(t *action.TokenDirectPurchase) error {
	contract, err := a.contracts.GetContract(t.ContractID, a.tx)
	if err != nil {
		return err
	}
	if contract.Owner != a.owner {
		if err := a.transferCredits(a.owner, contract.Owner, t.TotalAgreedPrice); err != nil {
			return err
		}
	}
	if err := a.addTokenBalance(t.TokenID(), a.owner, t.Amount); err != nil {
		return err
	}
	return a.addSupply(t.TokenID(), t.Amount)
}

func (a *applier) VisitTokenSetPriceForDirectPurchase(t *action.TokenSetPriceForDirectPurchase) error {
	a.state.AddSetDirectPurchasePriceOperations(a.batch, t.TokenID(), t.Price)
	return nil
}

// VisitBumpNonce writes nothing besides the nonce written for every action.
func (a *applier) VisitBumpNonce(*action.BumpIdentityDataContractNonce) error {
	return nil
}
