// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package batch

import (
	"github.com/platformcore/drive/action"
	"github.com/platformcore/drive/consensus"
	"github.com/platformcore/drive/drive"
	"github.com/platformcore/drive/grove"
	"github.com/platformcore/drive/state"
)

// stateValidator checks the state preconditions of one transition at a time.
// Each visit records at most one consensus error and returns only fatal errors.
type stateValidator struct {
	platform *PlatformRef
	owner    drive.Identifier
	tx       *grove.Transaction

	contract *state.DataContract
	errs     []*consensus.Error

	// last accepted nonce per contract within the batch
	nonces map[drive.Identifier]uint64
}

var _ action.TransitionVisitor = (*stateValidator)(nil)

func (sv *stateValidator) validate(t action.Transition) (*consensus.SimpleValidationResult, *state.DataContract, error) {
	sv.errs = nil
	contract, err := sv.platform.Contracts.GetContract(t.GetBase().ContractID, sv.tx)
	if err != nil {
		return nil, nil, err
	}
	sv.contract = contract
	if err := t.AcceptTransition(sv); err != nil {
		return nil, nil, err
	}
	return consensus.NewSimpleResult(sv.errs...), contract, nil
}

// checkNonce returns a consensus error if the nonce of base does not advance
// both the stored nonce and the ones accepted earlier in the batch.
func (sv *stateValidator) checkNonce(base *action.Base) (*consensus.Error, error) {
	last, err := sv.state().GetNonce(sv.owner, base.ContractID, sv.tx)
	if err != nil {
		return nil, err
	}
	if seen, ok := sv.nonces[base.ContractID]; ok && seen > last {
		last = seen
	}
	if base.IdentityContractNonce <= last {
		return consensus.NewInvalidIdentityContractNonce(sv.owner, base.ContractID, last, base.IdentityContractNonce), nil
	}
	if sv.nonces == nil {
		sv.nonces = make(map[drive.Identifier]uint64)
	}
	sv.nonces[base.ContractID] = base.IdentityContractNonce
	return nil, nil
}

func (sv *stateValidator) reject(err *consensus.Error) error {
	sv.errs = append(sv.errs, err)
	return nil
}

func (sv *stateValidator) state() *state.State {
	return sv.platform.State
}
