// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/json"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"

	"github.com/platformcore/drive/action"
	"github.com/platformcore/drive/drive"
)

// JSONBlock is a block of a block file.
type JSONBlock struct {
	Height   uint64           `json:"height"`
	TimeMs   int64            `json:"timeMs"`
	Proposer drive.Identifier `json:"proposer"`
	Batches  []*JSONBatch     `json:"batches"`
}

// JSONBatch is the batch of transitions of one owner.
type JSONBatch struct {
	Owner       drive.Identifier  `json:"owner"`
	Transitions []*JSONTransition `json:"transitions"`
}

// JSONTransition carries the fields of every transition kind. Fields a kind
// does not use are ignored.
type JSONTransition struct {
	Kind            string           `json:"kind"`
	ContractID      drive.Identifier `json:"contractId"`
	Nonce           uint64           `json:"nonce"`
	UserFeeIncrease uint16           `json:"userFeeIncrease"`

	DocumentType string           `json:"documentType"`
	DocumentID   drive.Identifier `json:"documentId"`
	Revision     uint64           `json:"revision"`
	Data         hexutil.Bytes    `json:"data"`
	Timestamp    uint64           `json:"timestamp"`

	TokenPosition         uint16           `json:"tokenPosition"`
	Amount                uint64           `json:"amount"`
	Price                 uint64           `json:"price"`
	TotalAgreedPrice      uint64           `json:"totalAgreedPrice"`
	Recipient             drive.Identifier `json:"recipient"`
	Identity              drive.Identifier `json:"identity"`
	Pause                 bool             `json:"pause"`
	MaxSupply             uint64           `json:"maxSupply"`
	AllowTransferToFrozen bool             `json:"allowTransferToFrozen"`
}

func readBlockFile(path string) ([]*JSONBlock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read block file")
	}
	var blocks []*JSONBlock
	if err := json.Unmarshal(data, &blocks); err != nil {
		return nil, errors.Wrapf(err, "decode block file %s", path)
	}
	return blocks, nil
}

func (b *JSONBlock) info() drive.BlockInfo {
	return drive.BlockInfo{Height: b.Height, TimeMs: b.TimeMs, Proposer: b.Proposer}
}

func (b *JSONBlock) batches() ([]*action.BatchTransitionAction, error) {
	batches := make([]*action.BatchTransitionAction, 0, len(b.Batches))
	for i, jb := range b.Batches {
		act := &action.BatchTransitionAction{
			OwnerID:     jb.Owner,
			Transitions: make([]action.Transition, 0, len(jb.Transitions)),
		}
		for j, jt := range jb.Transitions {
			t, err := jt.transition()
			if err != nil {
				return nil, errors.WithMessagef(err, "block %d batch #%d transition #%d", b.Height, i, j)
			}
			act.Transitions = append(act.Transitions, t)
		}
		batches = append(batches, act)
	}
	return batches, nil
}

func (t *JSONTransition) transition() (action.Transition, error) {
	kind, err := action.ParseKind(t.Kind)
	if err != nil {
		return nil, err
	}
	base := action.Base{
		ContractID:            t.ContractID,
		IdentityContractNonce: t.Nonce,
		UserFeeIncrease:       t.UserFeeIncrease,
	}
	doc := action.DocumentBase{Base: base, DocumentType: t.DocumentType, DocumentID: t.DocumentID}
	token := action.TokenBase{Base: base, TokenPosition: t.TokenPosition}

	switch kind {
	case action.DocumentCreateKind:
		return &action.DocumentCreate{DocumentBase: doc, Data: t.Data, CreatedAt: t.Timestamp}, nil
	case action.DocumentReplaceKind:
		return &action.DocumentReplace{DocumentBase: doc, Revision: t.Revision, Data: t.Data, UpdatedAt: t.Timestamp}, nil
	case action.DocumentDeleteKind:
		return &action.DocumentDelete{DocumentBase: doc}, nil
	case action.DocumentTransferKind:
		return &action.DocumentTransfer{DocumentBase: doc, Revision: t.Revision, RecipientID: t.Recipient}, nil
	case action.DocumentUpdatePriceKind:
		return &action.DocumentUpdatePrice{DocumentBase: doc, Revision: t.Revision, Price: t.Price}, nil
	case action.DocumentPurchaseKind:
		return &action.DocumentPurchase{DocumentBase: doc, Revision: t.Revision, Price: t.Price}, nil
	case action.TokenBurnKind:
		return &action.TokenBurn{TokenBase: token, Amount: t.Amount}, nil
	case action.TokenMintKind:
		return &action.TokenMint{TokenBase: token, Amount: t.Amount, RecipientID: t.Recipient}, nil
	case action.TokenTransferKind:
		return &action.TokenTransfer{TokenBase: token, Amount: t.Amount, RecipientID: t.Recipient}, nil
	case action.TokenFreezeKind:
		return &action.TokenFreeze{TokenBase: token, FrozenID: t.Identity}, nil
	case action.TokenUnfreezeKind:
		return &action.TokenUnfreeze{TokenBase: token, FrozenID: t.Identity}, nil
	case action.TokenEmergencyActionKind:
		emergency := action.EmergencyResume
		if t.Pause {
			emergency = action.EmergencyPause
		}
		return &action.TokenEmergencyAction{TokenBase: token, Action: emergency}, nil
	case action.TokenDestroyFrozenFundsKind:
		return &action.TokenDestroyFrozenFunds{TokenBase: token, FrozenID: t.Identity}, nil
	case action.TokenConfigUpdateKind:
		return &action.TokenConfigUpdate{TokenBase: token, MaxSupply: t.MaxSupply, AllowTransferToFrozen: t.AllowTransferToFrozen}, nil
	case action.TokenClaimKind:
		return &action.TokenClaim{TokenBase: token}, nil
	case action.TokenDirectPurchaseKind:
		return &action.TokenDirectPurchase{TokenBase: token, Amount: t.Amount, TotalAgreedPrice: t.TotalAgreedPrice}, nil
	case action.TokenSetPriceForDirectPurchaseKind:
		return &action.TokenSetPriceForDirectPurchase{TokenBase: token, Price: t.Price}, nil
	default:
		return nil, errors.Errorf("%v can not be submitted", kind)
	}
}
