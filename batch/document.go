// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package batch

import (
	"github.com/pkg/errors"

	"github.com/platformcore/drive/action"
	"github.com/platformcore/drive/consensus"
	"github.com/platformcore/drive/state"
)

// TimestampWindowMs bounds how far a document creation time may be from the block time.
const TimestampWindowMs = 5 * 60 * 1000

func (sv *stateValidator) documentType(base *action.DocumentBase) (*state.DocumentType, error) {
	dt, ok := sv.contract.DocumentType(base.DocumentType)
	if !ok {
		return nil, errors.Wrapf(ErrDocumentTypeNotFound, "%q in contract %v", base.DocumentType, base.ContractID)
	}
	return dt, nil
}

// ownedDocument loads the document of a transition and checks it belongs to
// the batch owner. A nil document with a nil error means it was rejected.
func (sv *stateValidator) ownedDocument(base *action.DocumentBase) (*state.Document, error) {
	doc, err := sv.state().GetDocument(base.ContractID, base.DocumentType, base.DocumentID, sv.tx)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, sv.reject(consensus.NewDocumentNotFound(base.DocumentID))
	}
	if doc.Owner != sv.owner {
		return nil, sv.reject(consensus.NewDocumentOwnerIDMismatch(doc.ID, doc.Owner, sv.owner))
	}
	return doc, nil
}

func (sv *stateValidator) checkRevision(doc *state.Document, revision uint64) bool {
	if revision != doc.Revision+1 {
		sv.reject(consensus.NewInvalidDocumentRevision(doc.ID, doc.Revision, revision))
		return false
	}
	return true
}

func (sv *stateValidator) VisitDocumentCreate(t *action.DocumentCreate) error {
	if _, err := sv.documentType(&t.DocumentBase); err != nil {
		return err
	}
	existing, err := sv.state().GetDocument(t.ContractID, t.DocumentType, t.DocumentID, sv.tx)
	if err != nil {
		return err
	}
	if existing != nil {
		return sv.reject(consensus.NewError(consensus.DocumentAlreadyPresent, "document %v already present", t.DocumentID))
	}
	blockTime := sv.platform.Block.TimeMs
	createdAt := int64(t.CreatedAt)
	if t.CreatedAt > uint64(1<<62) || createdAt < blockTime-TimestampWindowMs || createdAt > blockTime+TimestampWindowMs {
		return sv.reject(consensus.NewError(consensus.DocumentTimestampWindowViolation,
			"document %v created at %d, block time %d", t.DocumentID, t.CreatedAt, blockTime))
	}
	return nil
}

func (sv *stateValidator) VisitDocumentReplace(t *action.DocumentReplace) error {
	dt, err := sv.documentType(&t.DocumentBase)
	if err != nil {
		return err
	}
	doc, err := sv.ownedDocument(&t.DocumentBase)
	if doc == nil || err != nil {
		return err
	}
	if !dt.Mutable {
		return sv.reject(consensus.NewError(consensus.DocumentNotMutable, "%s documents are immutable", dt.Name))
	}
	sv.checkRevision(doc, t.Revision)
	return nil
}

func (sv *stateValidator) VisitDocumentDelete(t *action.DocumentDelete) error {
	dt, err := sv.documentType(&t.DocumentBase)
	if err != nil {
		return err
	}
	doc, err := sv.ownedDocument(&t.DocumentBase)
	if doc == nil || err != nil {
		return err
	}
	if !dt.Deletable {
		return sv.reject(consensus.NewError(consensus.DocumentNotDeletable, "%s documents can not be deleted", dt.Name))
	}
	return nil
}

func (sv *stateValidator) VisitDocumentTransfer(t *action.DocumentTransfer) error {
	dt, err := sv.documentType(&t.DocumentBase)
	if err != nil {
		return err
	}
	doc, err := sv.ownedDocument(&t.DocumentBase)
	if doc == nil || err != nil {
		return err
	}
	if !dt.Transferable {
		return sv.reject(consensus.NewError(consensus.DocumentNotTransferable, "%s documents can not be transferred", dt.Name))
	}
	if !sv.checkRevision(doc, t.Revision) {
		return nil
	}
	if t.RecipientID == doc.Owner {
		return sv.reject(consensus.NewError(consensus.DocumentTransferToSelf, "document %v transferred to its owner", doc.ID))
	}
	return nil
}

func (sv *stateValidator) VisitDocumentUpdatePrice(t *action.DocumentUpdatePrice) error {
	dt, err := sv.documentType(&t.DocumentBase)
	if err != nil {
		return err
	}
	doc, err := sv.ownedDocument(&t.DocumentBase)
	if doc == nil || err != nil {
		return err
	}
	if !dt.Tradeable {
		return sv.reject(consensus.NewError(consensus.DocumentNotForSale, "%s documents can not be traded", dt.Name))
	}
	sv.checkRevision(doc, t.Revision)
	return nil
}

func (sv *stateValidator) VisitDocumentPurchase(t *action.DocumentPurchase) error {
	if _, err := sv.documentType(&t.DocumentBase); err != nil {
		return err
	}
	doc, err := sv.state().GetDocument(t.ContractID, t.DocumentType, t.DocumentID, sv.tx)
	if err != nil {
		return err
	}
	if doc == nil {
		return sv.reject(consensus.NewDocumentNotFound(t.DocumentID))
	}
	if doc.Price == 0 {
		return sv.reject(consensus.NewError(consensus.DocumentNotForSale, "document %v is not for sale", doc.ID))
	}
	if t.Price != doc.Price {
		return sv.reject(consensus.NewError(consensus.DocumentPriceMismatch,
			"document %v costs %d, offered %d", doc.ID, doc.Price, t.Price))
	}
	if doc.Owner == sv.owner {
		return sv.reject(consensus.NewError(consensus.DocumentAlreadyOwned, "document %v already owned by %v", doc.ID, sv.owner))
	}
	balance, err := sv.state().GetBalance(sv.owner, sv.tx)
	if err != nil {
		return err
	}
	if balance < doc.Price {
		return sv.reject(consensus.NewError(consensus.IdentityInsufficientBalance,
			"identity %v has %d credits, needs %d", sv.owner, balance, doc.Price))
	}
	return nil
}
