// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package batch validates batch transitions against the drive state and
// reduces them to applicable actions.
package batch

import (
	"context"

	"github.com/pkg/errors"

	"github.com/platformcore/drive/action"
	"github.com/platformcore/drive/consensus"
	"github.com/platformcore/drive/drive"
	"github.com/platformcore/drive/grove"
	"github.com/platformcore/drive/log"
	"github.com/platformcore/drive/metrics"
	"github.com/platformcore/drive/state"
	"github.com/platformcore/drive/trigger"
)

var (
	logger = log.WithContext("pkg", "batch")

	metricTransitionsCount = metrics.LazyLoadCounterVec("batch_transitions_count", []string{"result"})
)

var (
	// ErrDocumentTypeNotFound is returned when a transition names a type its contract lacks.
	ErrDocumentTypeNotFound = errors.New("document type not found")
	// ErrTokenNotFound is returned when a transition names a token its contract lacks.
	ErrTokenNotFound = errors.New("token not found")
)

// PlatformRef is the platform view a batch is validated against.
type PlatformRef struct {
	State     *state.State
	Contracts state.ContractFetcher
	Block     drive.BlockInfo
	DryRun    bool
}

// Sink receives every final action in order, before the next transition is
// validated, so later transitions see the effects of earlier ones.
type Sink interface {
	Apply(owner drive.Identifier, a action.Action) error
}

// Result is the reduction of a batch: one action per transition with a valid
// nonce and the consensus errors of the rejected ones.
type Result = consensus.ValidationResult[[]action.Action]

// Validator validates batch transitions. It holds no state across batches.
type Validator struct {
	triggers        *trigger.Registry
	triggersEnabled bool
}

// NewValidator creates a validator. Triggers only run if enabled and registry is not nil.
func NewValidator(registry *trigger.Registry, triggersEnabled bool) *Validator {
	return &Validator{
		triggers:        registry,
		triggersEnabled: triggersEnabled && registry != nil,
	}
}

// ValidateState validates every transition of act in order. A rejected
// transition is replaced by a nonce bump and its errors are collected. A
// returned error is fatal and the result must be discarded.
// sink may be nil.
func (v *Validator) ValidateState(
	ctx context.Context,
	act *action.BatchTransitionAction,
	platform *PlatformRef,
	tx *grove.Transaction,
	sink Sink,
) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := consensus.NewResult(make([]action.Action, 0, len(act.Transitions)))
	sv := &stateValidator{platform: platform, owner: act.OwnerID, tx: tx}

	for i, t := range act.Transitions {
		final, res, err := v.validateTransition(sv, act.OwnerID, t)
		if err != nil {
			logger.Error("batch aborted", "owner", act.OwnerID, "transition", i, "kind", t.Kind(), "err", err)
			return nil, errors.WithMessagef(err, "transition #%d %v", i, t.Kind())
		}
		consensus.Merge(result, res)
		if final == nil {
			continue
		}
		result.Data = append(result.Data, final)

		if sink != nil {
			if err := sink.Apply(act.OwnerID, final); err != nil {
				return nil, errors.WithMessagef(err, "apply transition #%d %v", i, final.Kind())
			}
		}
	}
	return result, nil
}

// validateTransition returns the action t reduces to, nil if its nonce is
// stale, and the consensus errors met.
func (v *Validator) validateTransition(sv *stateValidator, owner drive.Identifier, t action.Transition) (action.Action, *consensus.SimpleValidationResult, error) {
	nonceErr, err := sv.checkNonce(t.GetBase())
	if err != nil {
		return nil, nil, err
	}
	if nonceErr != nil {
		metricTransitionsCount().AddWithLabel(1, map[string]string{"result": "stale_nonce"})
		logger.Debug("transition dropped", "owner", owner, "kind", t.Kind(), "err", nonceErr)
		res := consensus.NewSimpleResult()
		res.AddError(nonceErr)
		return nil, res, nil
	}

	res, contract, err := sv.validate(t)
	if err != nil {
		return nil, nil, err
	}
	if !res.IsValid() {
		metricTransitionsCount().AddWithLabel(1, map[string]string{"result": "rejected"})
		logger.Debug("transition rejected", "owner", owner, "kind", t.Kind(), "err", res.Errors[0])
		return action.NewBumpNonce(t.GetBase(), owner), res, nil
	}

	if dt, ok := t.(action.DocumentTransition); ok && v.triggersEnabled {
		tres, err := v.triggers.Execute(&trigger.Context{
			Platform: sv.platform.State,
			Contract: contract,
			OwnerID:  owner,
			Tx:       sv.tx,
			DryRun:   sv.platform.DryRun,
			Block:    sv.platform.Block,
		}, dt)
		if err != nil {
			return nil, nil, err
		}
		if !tres.IsValid() {
			metricTransitionsCount().AddWithLabel(1, map[string]string{"result": "trigger_rejected"})
			return action.NewBumpNonce(t.GetBase(), owner), tres, nil
		}
	}

	metricTransitionsCount().AddWithLabel(1, map[string]string{"result": "accepted"})
	return t, consensus.NewSimpleResult(), nil
}
