// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/pkg/errors"

	"github.com/platformcore/drive/drive"
	"github.com/platformcore/drive/grove"
)

// Document is the rlp record of a document. A zero price means not for sale.
type Document struct {
	ID        drive.Identifier
	Owner     drive.Identifier
	Revision  uint64
	Price     uint64
	CreatedAt uint64 // ms
	UpdatedAt uint64 // ms
	Data      []byte
}

// DocumentsPath returns the tree holding the documents of one type.
func DocumentsPath(contractID drive.Identifier, documentType string) grove.Path {
	return grove.Path{drive.DocumentsTreeKey, contractID[:], []byte(documentType)}
}

// GetDocument returns the document, or nil if it does not exist.
func (s *State) GetDocument(contractID drive.Identifier, documentType string, id drive.Identifier, tx *grove.Transaction) (*Document, error) {
	var doc Document
	found, err := s.getRecord(DocumentsPath(contractID, documentType), id[:], &doc, tx)
	if err != nil {
		return nil, errors.WithMessagef(err, "get document %v", id)
	}
	if !found {
		return nil, nil
	}
	return &doc, nil
}

// AddPutDocumentOperations queues the insert or overwrite of a document.
func (s *State) AddPutDocumentOperations(batch *grove.Batch, contractID drive.Identifier, documentType string, doc *Document) error {
	return putRecord(batch, DocumentsPath(contractID, documentType), doc.ID[:], doc)
}

// AddDeleteDocumentOperations queues the removal of a document.
func (s *State) AddDeleteDocumentOperations(batch *grove.Batch, contractID drive.Identifier, documentType string, id drive.Identifier) {
	batch.Delete(DocumentsPath(contractID, documentType), id[:])
}
