// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package trigger runs business rules bound to document types against
// document transitions that passed state validation.
package trigger

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/platformcore/drive/action"
	"github.com/platformcore/drive/consensus"
	"github.com/platformcore/drive/drive"
	"github.com/platformcore/drive/grove"
	"github.com/platformcore/drive/log"
	"github.com/platformcore/drive/state"
)

var logger = log.WithContext("pkg", "trigger")

// Context is what a trigger may read. It is valid for one transition only.
type Context struct {
	Platform *state.State
	Contract *state.DataContract
	OwnerID  drive.Identifier
	Tx       *grove.Transaction
	DryRun   bool
	Block    drive.BlockInfo
}

// Trigger checks a document transition. Consensus errors in the result reject
// the transition; a returned error aborts the block.
type Trigger func(ctx *Context, t action.DocumentTransition) (*consensus.SimpleValidationResult, error)

// Binding binds a trigger to the transitions of a kind on a document type.
type Binding struct {
	Name         string
	ContractID   drive.Identifier
	DocumentType string
	Kind         action.Kind
	Trigger      Trigger
}

func (b *Binding) String() string {
	return fmt.Sprintf("%s(%v/%s/%v)", b.Name, b.ContractID, b.DocumentType, b.Kind)
}

type bindingKey struct {
	contractID   drive.Identifier
	documentType string
	kind         action.Kind
}

// Registry holds bindings. It is filled once at startup and read-only afterwards.
type Registry struct {
	bindings map[bindingKey][]*Binding
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{bindings: make(map[bindingKey][]*Binding)}
}

// Register appends a binding. Triggers of the same key run in registration order.
func (r *Registry) Register(b *Binding) error {
	if b.Trigger == nil {
		return errors.Errorf("binding %v: nil trigger", b)
	}
	if !b.Kind.IsDocument() {
		return errors.Errorf("binding %v: not a document kind", b)
	}
	key := bindingKey{b.ContractID, b.DocumentType, b.Kind}
	r.bindings[key] = append(r.bindings[key], b)
	return nil
}

// Bindings returns the bindings matching a transition.
func (r *Registry) Bindings(contractID drive.Identifier, documentType string, kind action.Kind) []*Binding {
	return r.bindings[bindingKey{contractID, documentType, kind}]
}

// Len returns the number of bindings.
func (r *Registry) Len() int {
	n := 0
	for _, bs := range r.bindings {
		n += len(bs)
	}
	return n
}

// Execute runs the triggers bound to t in order and stops at the first one
// rejecting it.
func (r *Registry) Execute(ctx *Context, t action.DocumentTransition) (*consensus.SimpleValidationResult, error) {
	base := t.GetDocumentBase()
	for _, b := range r.Bindings(base.ContractID, base.DocumentType, t.Kind()) {
		res, err := b.Trigger(ctx, t)
		if err != nil {
			return nil, errors.WithMessagef(err, "trigger %v", b)
		}
		if res == nil {
			return consensus.NewSimpleResult(consensus.NewError(consensus.DataTriggerInvalidResult,
				"trigger %s returned no result", b.Name)), nil
		}
		if !res.IsValid() {
			logger.Debug("trigger rejected transition", "trigger", b.Name, "document", base.DocumentID, "owner", ctx.OwnerID)
			return res, nil
		}
	}
	return consensus.NewSimpleResult(), nil
}
