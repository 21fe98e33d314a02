// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package action

import "github.com/platformcore/drive/drive"

// DocumentBase is shared by document transitions.
type DocumentBase struct {
	Base
	DocumentType string
	DocumentID   drive.Identifier
}

// GetBase implements Action.
func (b *DocumentBase) GetBase() *Base { return &b.Base }

// GetDocumentBase implements DocumentTransition.
func (b *DocumentBase) GetDocumentBase() *DocumentBase { return b }

// DocumentTransition is a transition on a document.
type DocumentTransition interface {
	Transition
	GetDocumentBase() *DocumentBase
}

// DocumentCreate creates a document.
type DocumentCreate struct {
	DocumentBase
	Data      []byte
	CreatedAt uint64
}

// DocumentReplace replaces the data of a mutable document.
type DocumentReplace struct {
	DocumentBase
	Revision  uint64
	Data      []byte
	UpdatedAt uint64
}

// DocumentDelete deletes a document.
type DocumentDelete struct {
	DocumentBase
}

// DocumentTransfer gives a document to another identity.
type DocumentTransfer struct {
	DocumentBase
	Revision    uint64
	RecipientID drive.Identifier
}

// DocumentUpdatePrice puts a document on sale, or off sale with a zero price.
type DocumentUpdatePrice struct {
	DocumentBase
	Revision uint64
	Price    uint64
}

// DocumentPurchase buys a document at its price.
type DocumentPurchase struct {
	DocumentBase
	Revision uint64
	Price    uint64
}

func (*DocumentCreate) Kind() Kind      { return DocumentCreateKind }
func (*DocumentReplace) Kind() Kind     { return DocumentReplaceKind }
func (*DocumentDelete) Kind() Kind      { return DocumentDeleteKind }
func (*DocumentTransfer) Kind() Kind    { return DocumentTransferKind }
func (*DocumentUpdatePrice) Kind() Kind { return DocumentUpdatePriceKind }
func (*DocumentPurchase) Kind() Kind    { return DocumentPurchaseKind }

func (t *DocumentCreate) Accept(v Visitor) error      { return v.VisitDocumentCreate(t) }
func (t *DocumentReplace) Accept(v Visitor) error     { return v.VisitDocumentReplace(t) }
func (t *DocumentDelete) Accept(v Visitor) error      { return v.VisitDocumentDelete(t) }
func (t *DocumentTransfer) Accept(v Visitor) error    { return v.VisitDocumentTransfer(t) }
func (t *DocumentUpdatePrice) Accept(v Visitor) error { return v.VisitDocumentUpdatePrice(t) }
func (t *DocumentPurchase) Accept(v Visitor) error    { return v.VisitDocumentPurchase(t) }

func (t *DocumentCreate) AcceptTransition(v TransitionVisitor) error {
	return v.VisitDocumentCreate(t)
}

func (t *DocumentReplace) AcceptTransition(v TransitionVisitor) error {
	return v.VisitDocumentReplace(t)
}

func (t *DocumentDelete) AcceptTransition(v TransitionVisitor) error {
	return v.VisitDocumentDelete(t)
}

func (t *DocumentTransfer) AcceptTransition(v TransitionVisitor) error {
	return v.VisitDocumentTransfer(t)
}

func (t *DocumentUpdatePrice) AcceptTransition(v TransitionVisitor) error {
	return v.VisitDocumentUpdatePrice(t)
}

func (t *DocumentPurchase) AcceptTransition(v TransitionVisitor) error {
	return v.VisitDocumentPurchase(t)
}

var (
	_ DocumentTransition = (*DocumentCreate)(nil)
	_ DocumentTransition = (*DocumentReplace)(nil)
	_ DocumentTransition = (*DocumentDelete)(nil)
	_ DocumentTransition = (*DocumentTransfer)(nil)
	_ DocumentTransition = (*DocumentUpdatePrice)(nil)
	_ DocumentTransition = (*DocumentPurchase)(nil)
)
