// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package batch

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platformcore/drive/action"
	"github.com/platformcore/drive/consensus"
	"github.com/platformcore/drive/drive"
	"github.com/platformcore/drive/grove"
	"github.com/platformcore/drive/state"
	"github.com/platformcore/drive/test/datagen"
	"github.com/platformcore/drive/test/testcontract"
	"github.com/platformcore/drive/test/testdrive"
	"github.com/platformcore/drive/trigger"
)

const blockTime = 1_700_000_000_000

type fixture struct {
	st       *state.State
	owner    drive.Identifier
	contract *state.DataContract
	platform *PlatformRef
}

func newFixture(t *testing.T) *fixture {
	st := state.New(testdrive.NewStore(t))
	owner := datagen.RandomIdentifier()
	contract := testcontract.New(owner)
	testcontract.Deploy(t, st, contract)
	testcontract.Fund(t, st, owner, 1000)
	return &fixture{
		st:       st,
		owner:    owner,
		contract: contract,
		platform: &PlatformRef{
			State:     st,
			Contracts: st,
			Block:     drive.BlockInfo{Height: 10, TimeMs: blockTime, Proposer: datagen.RandomIdentifier()},
		},
	}
}

func (f *fixture) docBase(docType string, id drive.Identifier, nonce uint64) action.DocumentBase {
	return action.DocumentBase{
		Base:         action.Base{ContractID: f.contract.ID, IdentityContractNonce: nonce},
		DocumentType: docType,
		DocumentID:   id,
	}
}

func (f *fixture) tokenBase(position uint16, nonce uint64) action.TokenBase {
	return action.TokenBase{
		Base:          action.Base{ContractID: f.contract.ID, IdentityContractNonce: nonce},
		TokenPosition: position,
	}
}

func (f *fixture) putDocument(t *testing.T, docType string, doc *state.Document) {
	b := grove.NewBatch()
	require.NoError(t, f.st.AddPutDocumentOperations(b, f.contract.ID, docType, doc))
	require.NoError(t, f.st.Store().ApplyBatch(b, false, nil))
}

func (f *fixture) setTokenBalance(t *testing.T, position uint16, holder drive.Identifier, amount uint64) {
	b := grove.NewBatch()
	f.st.AddSetTokenBalanceOperations(b, drive.TokenID(f.contract.ID, position), holder, amount)
	require.NoError(t, f.st.Store().ApplyBatch(b, false, nil))
}

func (f *fixture) validate(t *testing.T, v *Validator, transitions ...action.Transition) *Result {
	res, err := v.ValidateState(context.Background(), &action.BatchTransitionAction{
		OwnerID:     f.owner,
		Transitions: transitions,
	}, f.platform, nil, nil)
	require.NoError(t, err)
	return res
}

type recordingSink struct {
	actions []action.Action
}

func (s *recordingSink) Apply(_ drive.Identifier, a action.Action) error {
	s.actions = append(s.actions, a)
	return nil
}

func TestValidateState_InvalidTransitionIsBumped(t *testing.T) {
	f := newFixture(t)

	invalid := &action.DocumentReplace{
		DocumentBase: f.docBase(testcontract.Note, datagen.RandomIdentifier(), 1),
		Revision:     2,
		Data:         []byte("missing"),
	}
	invalid.UserFeeIncrease = 7
	valid := &action.DocumentCreate{
		DocumentBase: f.docBase(testcontract.Note, datagen.RandomIdentifier(), 2),
		Data:         []byte("hello"),
		CreatedAt:    blockTime,
	}

	sink := &recordingSink{}
	res, err := NewValidator(nil, false).ValidateState(context.Background(), &action.BatchTransitionAction{
		OwnerID:     f.owner,
		Transitions: []action.Transition{invalid, valid},
	}, f.platform, nil, sink)
	require.NoError(t, err)

	require.Len(t, res.Errors, 1)
	assert.Equal(t, consensus.DocumentNotFound, res.Errors[0].Code)

	require.Len(t, res.Data, 2)
	assert.Equal(t, &action.BumpIdentityDataContractNonce{
		IdentityID:            f.owner,
		ContractID:            f.contract.ID,
		IdentityContractNonce: 1,
		UserFeeIncrease:       7,
	}, res.Data[0])
	assert.Same(t, valid, res.Data[1])

	assert.Equal(t, res.Data, sink.actions)
}

func TestValidateState_AllValid(t *testing.T) {
	f := newFixture(t)
	res := f.validate(t, NewValidator(nil, true),
		&action.DocumentCreate{
			DocumentBase: f.docBase(testcontract.Note, datagen.RandomIdentifier(), 1),
			CreatedAt:    blockTime - TimestampWindowMs,
		},
		&action.TokenMint{TokenBase: f.tokenBase(0, 2), Amount: 5},
	)
	assert.True(t, res.IsValid())
	assert.Len(t, res.Data, 2)
}

func TestValidateState_Triggers(t *testing.T) {
	f := newFixture(t)
	registry := trigger.NewRegistry()
	require.NoError(t, registry.Register(&trigger.Binding{
		Name:         "frozen-notes",
		ContractID:   f.contract.ID,
		DocumentType: testcontract.Note,
		Kind:         action.DocumentCreateKind,
		Trigger:      trigger.Reject(),
	}))
	create := &action.DocumentCreate{
		DocumentBase: f.docBase(testcontract.Note, datagen.RandomIdentifier(), 3),
		CreatedAt:    blockTime,
	}

	t.Run("enabled", func(t *testing.T) {
		res := f.validate(t, NewValidator(registry, true), create)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, consensus.DataTriggerActionNotAllowed, res.Errors[0].Code)
		bump, ok := res.Data[0].(*action.BumpIdentityDataContractNonce)
		require.True(t, ok)
		assert.Equal(t, uint64(3), bump.IdentityContractNonce)
	})

	t.Run("disabled", func(t *testing.T) {
		res := f.validate(t, NewValidator(registry, false), create)
		assert.True(t, res.IsValid())
		assert.Same(t, create, res.Data[0])
	})

	t.Run("not bound", func(t *testing.T) {
		mint := &action.TokenMint{TokenBase: f.tokenBase(0, 4), Amount: 1}
		res := f.validate(t, NewValidator(registry, true), mint)
		assert.True(t, res.IsValid())
	})
}

func TestValidateState_Fatal(t *testing.T) {
	f := newFixture(t)
	v := NewValidator(nil, false)
	run := func(tr action.Transition) error {
		_, err := v.ValidateState(context.Background(), &action.BatchTransitionAction{
			OwnerID:     f.owner,
			Transitions: []action.Transition{tr},
		}, f.platform, nil, nil)
		return err
	}

	unknown := &action.DocumentCreate{DocumentBase: f.docBase(testcontract.Note, datagen.RandomIdentifier(), 1)}
	unknown.ContractID = datagen.RandomIdentifier()
	assert.True(t, state.IsContractNotFound(run(unknown)))

	err := run(&action.DocumentCreate{DocumentBase: f.docBase("missing", datagen.RandomIdentifier(), 1)})
	assert.True(t, errors.Is(err, ErrDocumentTypeNotFound))

	err = run(&action.TokenBurn{TokenBase: f.tokenBase(9, 1), Amount: 1})
	assert.True(t, errors.Is(err, ErrTokenNotFound))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = v.ValidateState(ctx, &action.BatchTransitionAction{OwnerID: f.owner}, f.platform, nil, nil)
	assert.Equal(t, context.Canceled, err)
}

func TestValidateState_DocumentRejections(t *testing.T) {
	f := newFixture(t)
	other := datagen.RandomIdentifier()

	note := &state.Document{ID: datagen.RandomIdentifier(), Owner: f.owner, Revision: 1, Data: []byte("a")}
	f.putDocument(t, testcontract.Note, note)
	record := &state.Document{ID: datagen.RandomIdentifier(), Owner: f.owner, Revision: 1}
	f.putDocument(t, testcontract.Record, record)
	foreign := &state.Document{ID: datagen.RandomIdentifier(), Owner: other, Revision: 1}
	f.putDocument(t, testcontract.Note, foreign)
	onSale := &state.Document{ID: datagen.RandomIdentifier(), Owner: other, Revision: 1, Price: 5000}
	f.putDocument(t, testcontract.Note, onSale)

	tests := []struct {
		name       string
		transition action.Transition
		code       consensus.Code
	}{
		{"create present", &action.DocumentCreate{
			DocumentBase: f.docBase(testcontract.Note, note.ID, 1), CreatedAt: blockTime,
		}, consensus.DocumentAlreadyPresent},
		{"create too old", &action.DocumentCreate{
			DocumentBase: f.docBase(testcontract.Note, datagen.RandomIdentifier(), 1), CreatedAt: blockTime - TimestampWindowMs - 1,
		}, consensus.DocumentTimestampWindowViolation},
		{"create in future", &action.DocumentCreate{
			DocumentBase: f.docBase(testcontract.Note, datagen.RandomIdentifier(), 1), CreatedAt: blockTime + TimestampWindowMs + 1,
		}, consensus.DocumentTimestampWindowViolation},
		{"replace foreign", &action.DocumentReplace{
			DocumentBase: f.docBase(testcontract.Note, foreign.ID, 1), Revision: 2,
		}, consensus.DocumentOwnerIDMismatch},
		{"replace immutable", &action.DocumentReplace{
			DocumentBase: f.docBase(testcontract.Record, record.ID, 1), Revision: 2,
		}, consensus.DocumentNotMutable},
		{"replace stale revision", &action.DocumentReplace{
			DocumentBase: f.docBase(testcontract.Note, note.ID, 1), Revision: 1,
		}, consensus.InvalidDocumentRevision},
		{"delete undeletable", &action.DocumentDelete{
			DocumentBase: f.docBase(testcontract.Record, record.ID, 1),
		}, consensus.DocumentNotDeletable},
		{"transfer untransferable", &action.DocumentTransfer{
			DocumentBase: f.docBase(testcontract.Record, record.ID, 1), Revision: 2, RecipientID: other,
		}, consensus.DocumentNotTransferable},
		{"transfer to self", &action.DocumentTransfer{
			DocumentBase: f.docBase(testcontract.Note, note.ID, 1), Revision: 2, RecipientID: f.owner,
		}, consensus.DocumentTransferToSelf},
		{"price untradeable", &action.DocumentUpdatePrice{
			DocumentBase: f.docBase(testcontract.Record, record.ID, 1), Revision: 2, Price: 1,
		}, consensus.DocumentNotForSale},
		{"purchase not for sale", &action.DocumentPurchase{
			DocumentBase: f.docBase(testcontract.Note, foreign.ID, 1), Price: 1,
		}, consensus.DocumentNotForSale},
		{"purchase price mismatch", &action.DocumentPurchase{
			DocumentBase: f.docBase(testcontract.Note, onSale.ID, 1), Price: 4999,
		}, consensus.DocumentPriceMismatch},
		{"purchase over balance", &action.DocumentPurchase{
			DocumentBase: f.docBase(testcontract.Note, onSale.ID, 1), Price: 5000,
		}, consensus.IdentityInsufficientBalance},
		{"purchase missing", &action.DocumentPurchase{
			DocumentBase: f.docBase(testcontract.Note, datagen.RandomIdentifier(), 1), Price: 1,
		}, consensus.DocumentNotFound},
	}

	v := NewValidator(nil, false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := f.validate(t, v, tt.transition)
			require.Len(t, res.Errors, 1)
			assert.Equal(t, tt.code, res.Errors[0].Code)
			assert.Equal(t, action.BumpIdentityDataContractNonceKind, res.Data[0].Kind())
		})
	}
}

func TestValidateState_TokenRejections(t *testing.T) {
	f := newFixture(t)
	other := datagen.RandomIdentifier()
	f.setTokenBalance(t, 0, f.owner, 10)

	frozenBatch := grove.NewBatch()
	f.st.AddFreezeOperations(frozenBatch, drive.TokenID(f.contract.ID, 0), other)
	require.NoError(t, f.st.Store().ApplyBatch(frozenBatch, false, nil))

	tests := []struct {
		name       string
		owner      drive.Identifier
		transition action.Transition
		code       consensus.Code
	}{
		{"burn over balance", f.owner,
			&action.TokenBurn{TokenBase: f.tokenBase(0, 1), Amount: 11}, consensus.TokenInsufficientBalance},
		{"mint past max supply", f.owner,
			&action.TokenMint{TokenBase: f.tokenBase(1, 1), Amount: 1001}, consensus.TokenMintPastMaxSupply},
		{"mint unauthorized", other,
			&action.TokenMint{TokenBase: f.tokenBase(0, 1), Amount: 1}, consensus.UnauthorizedTokenAction},
		{"transfer to self", f.owner,
			&action.TokenTransfer{TokenBase: f.tokenBase(0, 1), Amount: 1, RecipientID: f.owner}, consensus.TokenTransferToSelf},
		{"transfer to frozen", f.owner,
			&action.TokenTransfer{TokenBase: f.tokenBase(0, 1), Amount: 1, RecipientID: other}, consensus.IdentityTokenAccountFrozen},
		{"transfer from frozen", other,
			&action.TokenTransfer{TokenBase: f.tokenBase(0, 1), Amount: 1, RecipientID: f.owner}, consensus.IdentityTokenAccountFrozen},
		{"freeze twice", f.owner,
			&action.TokenFreeze{TokenBase: f.tokenBase(0, 1), FrozenID: other}, consensus.TokenAccountAlreadyFrozen},
		{"unfreeze not frozen", f.owner,
			&action.TokenUnfreeze{TokenBase: f.tokenBase(0, 1), FrozenID: f.owner}, consensus.TokenAccountNotFrozen},
		{"resume running", f.owner,
			&action.TokenEmergencyAction{TokenBase: f.tokenBase(0, 1), Action: action.EmergencyResume}, consensus.TokenAlreadyInState},
		{"destroy empty frozen", f.owner,
			&action.TokenDestroyFrozenFunds{TokenBase: f.tokenBase(0, 1), FrozenID: other}, consensus.TokenNoFrozenFunds},
		{"configure unauthorized", other,
			&action.TokenConfigUpdate{TokenBase: f.tokenBase(0, 1), MaxSupply: 1}, consensus.UnauthorizedTokenAction},
		{"claim nothing", f.owner,
			&action.TokenClaim{TokenBase: f.tokenBase(0, 1)}, consensus.TokenNothingToClaim},
		{"buy not for sale", f.owner,
			&action.TokenDirectPurchase{TokenBase: f.tokenBase(0, 1), Amount: 1, TotalAgreedPrice: 1}, consensus.TokenNotForDirectSale},
		{"set price unauthorized", other,
			&action.TokenSetPriceForDirectPurchase{TokenBase: f.tokenBase(0, 1), Price: 1}, consensus.UnauthorizedTokenAction},
	}

	v := NewValidator(nil, false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := v.ValidateState(context.Background(), &action.BatchTransitionAction{
				OwnerID:     tt.owner,
				Transitions: []action.Transition{tt.transition},
			}, f.platform, nil, nil)
			require.NoError(t, err)
			require.Len(t, res.Errors, 1)
			assert.Equal(t, tt.code, res.Errors[0].Code)
			bump := res.Data[0].(*action.BumpIdentityDataContractNonce)
			assert.Equal(t, tt.owner, bump.IdentityID)
		})
	}
}

func TestValidateState_PausedToken(t *testing.T) {
	f := newFixture(t)
	b := grove.NewBatch()
	f.st.AddSetPausedOperations(b, drive.TokenID(f.contract.ID, 0), true)
	require.NoError(t, f.st.Store().ApplyBatch(b, false, nil))

	v := NewValidator(nil, false)
	res := f.validate(t, v, &action.TokenMint{TokenBase: f.tokenBase(0, 1), Amount: 1})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, consensus.TokenIsPaused, res.Errors[0].Code)

	res = f.validate(t, v, &action.TokenEmergencyAction{TokenBase: f.tokenBase(0, 2), Action: action.EmergencyResume})
	assert.True(t, res.IsValid())
}

func TestValidateState_DirectPurchasePrice(t *testing.T) {
	f := newFixture(t)
	b := grove.NewBatch()
	f.st.AddSetDirectPurchasePriceOperations(b, drive.TokenID(f.contract.ID, 1), 10)
	require.NoError(t, f.st.Store().ApplyBatch(b, false, nil))

	v := NewValidator(nil, false)
	buy := func(amount, total uint64) *Result {
		return f.validate(t, v, &action.TokenDirectPurchase{TokenBase: f.tokenBase(1, 1), Amount: amount, TotalAgreedPrice: total})
	}

	assert.True(t, buy(100, 1000).IsValid())
	assert.Equal(t, consensus.TokenDirectPurchasePriceTooLow, buy(100, 999).Errors[0].Code)
	assert.Equal(t, consensus.TokenDirectPurchasePriceTooLow, buy(1<<62, 1000).Errors[0].Code)
	assert.Equal(t, consensus.IdentityInsufficientBalance, buy(101, 1010).Errors[0].Code)
}

func TestValidateState_StaleNonceIsDropped(t *testing.T) {
	f := newFixture(t)
	b := grove.NewBatch()
	require.NoError(t, f.st.AddSetNonceOperations(b, f.owner, f.contract.ID, 5, nil))
	require.NoError(t, f.st.Store().ApplyBatch(b, false, nil))

	v := NewValidator(nil, false)
	for _, nonce := range []uint64{5, 1, 0} {
		sink := &recordingSink{}
		res, err := v.ValidateState(context.Background(), &action.BatchTransitionAction{
			OwnerID:     f.owner,
			Transitions: []action.Transition{&action.TokenMint{TokenBase: f.tokenBase(0, nonce), Amount: 10}},
		}, f.platform, nil, sink)
		require.NoError(t, err)
		require.Len(t, res.Errors, 1, "nonce %d", nonce)
		assert.Equal(t, consensus.InvalidIdentityContractNonce, res.Errors[0].Code)
		assert.Empty(t, res.Data)
		assert.Empty(t, sink.actions)
	}

	res := f.validate(t, v, &action.TokenMint{TokenBase: f.tokenBase(0, 6), Amount: 10})
	assert.True(t, res.IsValid())
	assert.Len(t, res.Data, 1)
}

func TestValidateState_DuplicateNonceInBatch(t *testing.T) {
	f := newFixture(t)
	first := &action.TokenMint{TokenBase: f.tokenBase(0, 1), Amount: 10}
	replay := &action.TokenMint{TokenBase: f.tokenBase(0, 1), Amount: 10}
	next := &action.TokenBurn{TokenBase: f.tokenBase(0, 2), Amount: 100}

	res := f.validate(t, NewValidator(nil, false), first, replay, next)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, consensus.InvalidIdentityContractNonce, res.Errors[0].Code)
	assert.Equal(t, consensus.TokenInsufficientBalance, res.Errors[1].Code)

	require.Len(t, res.Data, 2)
	assert.Same(t, first, res.Data[0])
	bump, ok := res.Data[1].(*action.BumpIdentityDataContractNonce)
	require.True(t, ok)
	assert.Equal(t, uint64(2), bump.IdentityContractNonce)
}
