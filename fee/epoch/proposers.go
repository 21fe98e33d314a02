// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package epoch

import (
	"github.com/pkg/errors"

	"github.com/platformcore/drive/drive"
	"github.com/platformcore/drive/grove"
)

// Proposer is a block proposer with the number of blocks it proposed in the epoch.
type Proposer struct {
	ID         drive.Identifier
	BlockCount uint64
}

// GetProposerBlockCount returns the blocks proposed by id in the epoch.
// A proposer never seen yields a not found error.
func (p *Pool) GetProposerBlockCount(id drive.Identifier, tx *grove.Transaction) (uint64, error) {
	v, err := drive.GetUint64(p.store, p.proposersPath(), id.Bytes(), tx)
	if err != nil {
		return 0, errors.Wrapf(err, "%v: get proposer %v block count", p, id)
	}
	return v, nil
}

// AddUpdateProposerBlockCountOperations queues an overwrite of a proposer block count.
func (p *Pool) AddUpdateProposerBlockCountOperations(batch *grove.Batch, id drive.Identifier, count uint64) {
	batch.InsertItem(p.proposersPath(), id.Bytes(), drive.EncodeUint64(count))
}

// AddIncrementProposerBlockCountOperations queues count+1 for the proposer, counting
// from zero if it is not yet known.
func (p *Pool) AddIncrementProposerBlockCountOperations(batch *grove.Batch, id drive.Identifier, tx *grove.Transaction) error {
	count, err := p.GetProposerBlockCount(id, tx)
	if err != nil {
		if !grove.IsKeyNotFound(err) {
			return err
		}
		count = 0
	}
	count, err = drive.CheckedAdd(count, 1, "proposer block count")
	if err != nil {
		return err
	}
	p.AddUpdateProposerBlockCountOperations(batch, id, count)
	return nil
}

// IsProposersTreeEmpty returns whether no proposer is recorded. A missing
// proposers tree counts as empty.
func (p *Pool) IsProposersTreeEmpty(tx *grove.Transaction) (bool, error) {
	proposers, err := p.store.Query(p.proposersPath(), 1, tx)
	if err != nil {
		if grove.IsPathNotFound(err) {
			return true, nil
		}
		return false, errors.Wrapf(err, "%v: query proposers", p)
	}
	return len(proposers) == 0, nil
}

// GetProposers returns up to limit proposers of the epoch, in no particular order.
func (p *Pool) GetProposers(limit int, tx *grove.Transaction) ([]Proposer, error) {
	elems, err := p.store.Query(p.proposersPath(), limit, tx)
	if err != nil {
		return nil, errors.Wrapf(err, "%v: query proposers", p)
	}
	proposers := make([]Proposer, 0, len(elems))
	for _, ke := range elems {
		id, err := drive.BytesToIdentifier(ke.Key)
		if err != nil {
			return nil, errors.Wrapf(drive.ErrCorruptedLength, "%v: proposer key %x", p, ke.Key)
		}
		count, err := drive.DecodeUint64Item(ke.Element)
		if err != nil {
			return nil, errors.Wrapf(err, "%v: proposer %v", p, id)
		}
		proposers = append(proposers, Proposer{ID: id, BlockCount: count})
	}
	return proposers, nil
}

// AddDeleteProposersOperations queues the removal of the given proposers only.
func (p *Pool) AddDeleteProposersOperations(batch *grove.Batch, ids []drive.Identifier) {
	for _, id := range ids {
		batch.DeleteIfExists(p.proposersPath(), id.Bytes())
	}
}
