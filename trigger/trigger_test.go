// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trigger

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platformcore/drive/action"
	"github.com/platformcore/drive/consensus"
	"github.com/platformcore/drive/test/datagen"
)

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	contract := datagen.RandomIdentifier()

	assert.Error(t, r.Register(&Binding{Name: "nil", ContractID: contract, DocumentType: "note", Kind: action.DocumentCreateKind}))
	assert.Error(t, r.Register(&Binding{Name: "token", ContractID: contract, Kind: action.TokenBurnKind, Trigger: Reject()}))

	require.NoError(t, r.Register(&Binding{Name: "a", ContractID: contract, DocumentType: "note", Kind: action.DocumentCreateKind, Trigger: Reject()}))
	require.NoError(t, r.Register(&Binding{Name: "b", ContractID: contract, DocumentType: "note", Kind: action.DocumentCreateKind, Trigger: Reject()}))
	require.NoError(t, r.Register(&Binding{Name: "c", ContractID: contract, DocumentType: "note", Kind: action.DocumentDeleteKind, Trigger: Reject()}))

	assert.Equal(t, 3, r.Len())
	bindings := r.Bindings(contract, "note", action.DocumentCreateKind)
	require.Len(t, bindings, 2)
	assert.Equal(t, "a", bindings[0].Name)
	assert.Equal(t, "b", bindings[1].Name)
	assert.Empty(t, r.Bindings(contract, "card", action.DocumentCreateKind))
}

func TestRegistry_Execute(t *testing.T) {
	contract := datagen.RandomIdentifier()
	owner := datagen.RandomIdentifier()

	create := &action.DocumentCreate{DocumentBase: action.DocumentBase{
		Base:         action.Base{ContractID: contract},
		DocumentType: "note",
	}}

	var calls []string
	record := func(name string) Trigger {
		return func(ctx *Context, tr action.DocumentTransition) (*consensus.SimpleValidationResult, error) {
			calls = append(calls, name)
			return consensus.NewSimpleResult(), nil
		}
	}

	t.Run("no binding", func(t *testing.T) {
		res, err := NewRegistry().Execute(&Context{OwnerID: owner}, create)
		require.NoError(t, err)
		assert.True(t, res.IsValid())
	})

	t.Run("require owner", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(&Binding{Name: "owner", ContractID: contract, DocumentType: "note",
			Kind: action.DocumentCreateKind, Trigger: RequireOwner(owner)}))

		res, err := r.Execute(&Context{OwnerID: owner}, create)
		require.NoError(t, err)
		assert.True(t, res.IsValid())

		res, err = r.Execute(&Context{OwnerID: datagen.RandomIdentifier()}, create)
		require.NoError(t, err)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, consensus.DataTriggerActionNotAllowed, res.Errors[0].Code)
	})

	t.Run("stops at first rejection", func(t *testing.T) {
		calls = nil
		r := NewRegistry()
		require.NoError(t, r.Register(&Binding{Name: "first", ContractID: contract, DocumentType: "note",
			Kind: action.DocumentCreateKind, Trigger: record("first")}))
		require.NoError(t, r.Register(&Binding{Name: "reject", ContractID: contract, DocumentType: "note",
			Kind: action.DocumentCreateKind, Trigger: Reject()}))
		require.NoError(t, r.Register(&Binding{Name: "last", ContractID: contract, DocumentType: "note",
			Kind: action.DocumentCreateKind, Trigger: record("last")}))

		res, err := r.Execute(&Context{OwnerID: owner}, create)
		require.NoError(t, err)
		assert.False(t, res.IsValid())
		assert.Equal(t, []string{"first"}, calls)
	})

	t.Run("fatal error", func(t *testing.T) {
		r := NewRegistry()
		fatal := errors.New("storage down")
		require.NoError(t, r.Register(&Binding{Name: "broken", ContractID: contract, DocumentType: "note",
			Kind: action.DocumentCreateKind,
			Trigger: func(*Context, action.DocumentTransition) (*consensus.SimpleValidationResult, error) {
				return nil, fatal
			}}))

		_, err := r.Execute(&Context{OwnerID: owner}, create)
		assert.ErrorIs(t, err, fatal)
	})

	t.Run("nil result", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(&Binding{Name: "nil", ContractID: contract, DocumentType: "note",
			Kind: action.DocumentCreateKind,
			Trigger: func(*Context, action.DocumentTransition) (*consensus.SimpleValidationResult, error) {
				return nil, nil
			}}))

		res, err := r.Execute(&Context{OwnerID: owner}, create)
		require.NoError(t, err)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, consensus.DataTriggerInvalidResult, res.Errors[0].Code)
	})
}
