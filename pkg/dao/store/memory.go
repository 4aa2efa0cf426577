package store

import (
	"math/big"
	"sync"

	"github.com/Ultradistinto/DAO-obligatorio-taller/pkg/dao"
)

// MemoryStore is an in-memory implementation of dao.ProposalStore. Ids are
// sequential from zero.
type MemoryStore struct {
	proposals []*dao.Proposal
	mutex     sync.RWMutex
}

// NewMemoryStore creates an empty proposal store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append assigns the next id to the proposal and stores it.
func (s *MemoryStore) Append(proposal *dao.Proposal) (uint64, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	id := uint64(len(s.proposals))
	copy := clone(proposal)
	copy.ID = id
	s.proposals = append(s.proposals, copy)
	return id, nil
}

// Get retrieves a proposal by id. A missing id yields (nil, nil).
func (s *MemoryStore) Get(id uint64) (*dao.Proposal, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if id >= uint64(len(s.proposals)) {
		return nil, nil
	}
	return clone(s.proposals[id]), nil
}

// List returns all proposals in creation order.
func (s *MemoryStore) List() ([]*dao.Proposal, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	proposals := make([]*dao.Proposal, 0, len(s.proposals))
	for _, proposal := range s.proposals {
		proposals = append(proposals, clone(proposal))
	}
	return proposals, nil
}

// Count returns the number of stored proposals.
func (s *MemoryStore) Count() uint64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return uint64(len(s.proposals))
}

// RecordVote adds power to the tally, marks the voter's choice and appends
// the voter to the audit list.
func (s *MemoryStore) RecordVote(id uint64, voter string, inFavor bool, power *big.Int) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if id >= uint64(len(s.proposals)) {
		return dao.ErrInvalidProposal
	}

	proposal := s.proposals[id]
	if inFavor {
		proposal.VotesFor = new(big.Int).Add(proposal.VotesFor, power)
	} else {
		proposal.VotesAgainst = new(big.Int).Add(proposal.VotesAgainst, power)
	}
	proposal.Choices[voter] = inFavor
	proposal.Voters = append(proposal.Voters, voter)
	return nil
}

// SetStatus updates the lifecycle state of a proposal.
func (s *MemoryStore) SetStatus(id uint64, status dao.ProposalStatus) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if id >= uint64(len(s.proposals)) {
		return dao.ErrInvalidProposal
	}
	s.proposals[id].Status = status
	return nil
}

// clone deep-copies a proposal so callers never share mutable state with the
// store.
func clone(p *dao.Proposal) *dao.Proposal {
	copy := *p
	copy.VotesFor = new(big.Int).Set(p.VotesFor)
	copy.VotesAgainst = new(big.Int).Set(p.VotesAgainst)
	if p.TreasuryAmount != nil {
		copy.TreasuryAmount = new(big.Int).Set(p.TreasuryAmount)
	}
	copy.Voters = append([]string(nil), p.Voters...)
	copy.Choices = make(map[string]bool, len(p.Choices))
	for voter, choice := range p.Choices {
		copy.Choices[voter] = choice
	}
	return &copy
}
