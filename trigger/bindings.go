// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trigger

import (
	"github.com/platformcore/drive/action"
	"github.com/platformcore/drive/consensus"
	"github.com/platformcore/drive/drive"
)

// Reject rejects every transition it is bound to.
func Reject() Trigger {
	return func(ctx *Context, t action.DocumentTransition) (*consensus.SimpleValidationResult, error) {
		return consensus.NewSimpleResult(consensus.NewError(consensus.DataTriggerActionNotAllowed,
			"action %v is not allowed on %s", t.Kind(), t.GetDocumentBase().DocumentType)), nil
	}
}

// RequireOwner only lets id perform the transitions it is bound to.
func RequireOwner(id drive.Identifier) Trigger {
	return func(ctx *Context, t action.DocumentTransition) (*consensus.SimpleValidationResult, error) {
		if ctx.OwnerID == id {
			return consensus.NewSimpleResult(), nil
		}
		return consensus.NewSimpleResult(consensus.NewError(consensus.DataTriggerActionNotAllowed,
			"only %v may %v %s documents", id, t.Kind(), t.GetDocumentBase().DocumentType)), nil
	}
}
