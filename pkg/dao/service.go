package dao

import (
	"math/big"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Ultradistinto/DAO-obligatorio-taller/pkg/metrics"
	"github.com/Ultradistinto/DAO-obligatorio-taller/pkg/staking"
)

// Service is the governance engine. It owns the token ledger (as token
// owner), the stake ledger, the proposal store, the treasury (its own bank
// account) and the panic switch. Every mutating operation runs under the
// service mutex, which gives each call exclusive access to all shared state.
type Service struct {
	address     string
	owner       string
	panicWallet string
	paused      bool
	params      Params

	tokens TokenLedger
	bank   Bank
	stakes StakeLedger
	store  ProposalStore
	clock  Clock

	mutex sync.RWMutex
}

// NewService creates a governance engine. The engine starts paused and stays
// inert until SetPanicWallet arms it.
func NewService(address, owner string, tokens TokenLedger, bank Bank, stakes StakeLedger, store ProposalStore, clock Clock, params Params) *Service {
	metrics.Paused.Set(1)
	return &Service{
		address: address,
		owner:   owner,
		paused:  true,
		params:  params,
		tokens:  tokens,
		bank:    bank,
		stakes:  stakes,
		store:   store,
		clock:   clock,
	}
}

// BuyTokens sells tokens from the engine's own balance at the configured
// price. The native value lands in the treasury. Returns the token amount.
func (s *Service) BuyTokens(buyer string, value *big.Int) (*big.Int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.paused {
		return nil, ErrDAOPaused
	}
	if value == nil || value.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	tokensOut := new(big.Int).Div(new(big.Int).Mul(value, tokenUnit), s.params.TokenPrice)
	if tokensOut.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	if err := s.bank.Send(buyer, s.address, value); err != nil {
		return nil, err
	}
	if err := s.tokens.Transfer(s.address, buyer, tokensOut); err != nil {
		// Give the payment back so the failed purchase leaves no trace.
		_ = s.bank.Send(s.address, buyer, value)
		return nil, err
	}

	metrics.TokensPurchased.Inc()
	log.Info().
		Str("buyer", buyer).
		Str("value", value.String()).
		Str("tokens", tokensOut.String()).
		Msg("Tokens purchased")

	return tokensOut, nil
}

// StakeForVoting locks tokens toward voting eligibility and restarts the
// voting lock.
func (s *Service) StakeForVoting(staker string, amount *big.Int) error {
	return s.stake(staker, staking.Voting, amount)
}

// StakeForProposing locks tokens toward proposing eligibility and restarts
// the proposing lock.
func (s *Service) StakeForProposing(staker string, amount *big.Int) error {
	return s.stake(staker, staking.Proposing, amount)
}

func (s *Service) stake(staker string, purpose staking.Purpose, amount *big.Int) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}

	// Pull the tokens into custody first; the stake record is only credited
	// once the transfer has succeeded.
	if err := s.tokens.TransferFrom(s.address, staker, s.address, amount); err != nil {
		return err
	}
	if err := s.stakes.Stake(staker, purpose, amount, s.clock.Now(), s.params.StakingLockTime); err != nil {
		return err
	}

	log.Info().
		Str("staker", staker).
		Str("amount", amount.String()).
		Bool("for_voting", purpose == staking.Voting).
		Msg("Tokens staked")

	return nil
}

// UnstakeFromVoting returns previously locked voting stake to the caller.
func (s *Service) UnstakeFromVoting(staker string, amount *big.Int) error {
	return s.unstake(staker, staking.Voting, amount)
}

// UnstakeFromProposing returns previously locked proposing stake to the caller.
func (s *Service) UnstakeFromProposing(staker string, amount *big.Int) error {
	return s.unstake(staker, staking.Proposing, amount)
}

func (s *Service) unstake(staker string, purpose staking.Purpose, amount *big.Int) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	// Decrement the stake record before the token transfer so a re-entering
	// callee can never observe the pre-withdrawal stake.
	if err := s.stakes.Unstake(staker, purpose, amount, s.clock.Now()); err != nil {
		return err
	}
	if err := s.tokens.Transfer(s.address, staker, amount); err != nil {
		return err
	}

	log.Info().
		Str("staker", staker).
		Str("amount", amount.String()).
		Bool("for_voting", purpose == staking.Voting).
		Msg("Tokens unstaked")

	return nil
}

// VotingPower derives the integer governance weight from the caller's voting
// stake. Always recomputed, never cached.
func (s *Service) VotingPower(address string) *big.Int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return new(big.Int).Div(s.stakes.StakedFor(address, staking.Voting), s.params.TokensPerVotingPower)
}

// CreateProposal opens a normal proposal for voting.
func (s *Service) CreateProposal(proposer, title, description string) (uint64, error) {
	return s.createProposal(proposer, title, description, ProposalKindNormal, "", nil)
}

// CreateTreasuryProposal opens a proposal whose acceptance pays target from
// the treasury.
func (s *Service) CreateTreasuryProposal(proposer, title, description, target string, amount *big.Int) (uint64, error) {
	return s.createProposal(proposer, title, description, ProposalKindTreasury, target, amount)
}

func (s *Service) createProposal(proposer, title, description string, kind ProposalKind, target string, amount *big.Int) (uint64, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	// Pause is checked before anything else so a paused engine answers
	// uniformly, even to malformed requests.
	if s.paused {
		return 0, ErrDAOPaused
	}
	if kind == ProposalKindTreasury {
		if target == "" {
			return 0, ErrInvalidTarget
		}
		if amount == nil || amount.Sign() <= 0 {
			return 0, ErrInvalidAmount
		}
	}
	if s.stakes.StakedFor(proposer, staking.Proposing).Cmp(s.params.MinStakeToPropose) < 0 {
		return 0, ErrInsufficientStake
	}

	now := s.clock.Now()
	proposal := &Proposal{
		Title:          title,
		Description:    description,
		Proposer:       proposer,
		CreatedAt:      now,
		Deadline:       now.Add(s.params.ProposalDuration),
		VotesFor:       big.NewInt(0),
		VotesAgainst:   big.NewInt(0),
		Status:         ProposalStatusActive,
		Kind:           kind,
		TreasuryTarget: target,
		Choices:        make(map[string]bool),
	}
	if amount != nil {
		proposal.TreasuryAmount = new(big.Int).Set(amount)
	}

	id, err := s.store.Append(proposal)
	if err != nil {
		return 0, err
	}

	metrics.ProposalsCreated.WithLabelValues(kind.String()).Inc()
	log.Info().
		Uint64("proposal", id).
		Str("proposer", proposer).
		Str("title", title).
		Str("kind", kind.String()).
		Msg("Proposal created")

	return id, nil
}

// Vote casts the caller's full voting power for or against a proposal. The
// power is snapshotted at vote time.
func (s *Service) Vote(voter string, proposalID uint64, inFavor bool) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	proposal, err := s.store.Get(proposalID)
	if err != nil {
		return err
	}
	if proposal == nil {
		return ErrInvalidProposal
	}
	if proposal.Status != ProposalStatusActive || s.clock.Now().After(proposal.Deadline) {
		return ErrProposalNotActive
	}
	if _, voted := proposal.Choices[voter]; voted {
		return ErrAlreadyVoted
	}

	stake := s.stakes.StakedFor(voter, staking.Voting)
	power := new(big.Int).Div(stake, s.params.TokensPerVotingPower)
	if stake.Cmp(s.params.MinStakeToVote) < 0 || power.Sign() < 1 {
		return ErrInsufficientStake
	}

	if err := s.store.RecordVote(proposalID, voter, inFavor, power); err != nil {
		return err
	}

	metrics.VotesCast.Inc()
	log.Info().
		Uint64("proposal", proposalID).
		Str("voter", voter).
		Bool("in_favor", inFavor).
		Str("power", power.String()).
		Msg("Vote cast")

	return nil
}

// FinalizeProposal closes a proposal after its deadline. Callable by anyone.
// Ties and the zero-votes case reject. An accepted treasury proposal pays out
// immediately; if the treasury cannot cover it the proposal stays active so
// finalization can be retried once it is funded.
func (s *Service) FinalizeProposal(proposalID uint64) (ProposalStatus, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	proposal, err := s.store.Get(proposalID)
	if err != nil {
		return 0, err
	}
	if proposal == nil {
		return 0, ErrInvalidProposal
	}
	if proposal.Status != ProposalStatusActive {
		return 0, ErrProposalNotActive
	}
	if !s.clock.Now().After(proposal.Deadline) {
		return 0, ErrProposalStillActive
	}

	status := ProposalStatusRejected
	if proposal.VotesFor.Cmp(proposal.VotesAgainst) > 0 {
		status = ProposalStatusAccepted
	}

	if status == ProposalStatusAccepted && proposal.Kind == ProposalKindTreasury {
		if s.bank.BalanceOf(s.address).Cmp(proposal.TreasuryAmount) < 0 {
			return 0, ErrInsufficientTreasury
		}
		if err := s.bank.Send(s.address, proposal.TreasuryTarget, proposal.TreasuryAmount); err != nil {
			return 0, err
		}
		log.Info().
			Uint64("proposal", proposalID).
			Str("target", proposal.TreasuryTarget).
			Str("amount", proposal.TreasuryAmount.String()).
			Msg("Treasury transfer executed")
	}

	if err := s.store.SetStatus(proposalID, status); err != nil {
		return 0, err
	}

	metrics.ProposalsFinalized.WithLabelValues(status.String()).Inc()
	log.Info().
		Uint64("proposal", proposalID).
		Str("status", status.String()).
		Str("votes_for", proposal.VotesFor.String()).
		Str("votes_against", proposal.VotesAgainst.String()).
		Msg("Proposal finalized")

	return status, nil
}

// SetPanicWallet assigns the panic-wallet role and unconditionally arms the
// system. Owner only. This is the only way out of the initial paused state.
func (s *Service) SetPanicWallet(caller, wallet string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if caller != s.owner {
		return ErrNotOwner
	}
	if wallet == "" {
		return ErrInvalidAddress
	}

	s.panicWallet = wallet
	s.paused = false
	metrics.Paused.Set(0)

	log.Info().Str("wallet", wallet).Msg("Panic wallet set, DAO armed")
	return nil
}

// Panic pauses the DAO. Panic wallet only.
func (s *Service) Panic(caller string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.panicWallet == "" || caller != s.panicWallet {
		return ErrNotPanicWallet
	}

	s.paused = true
	metrics.Paused.Set(1)

	log.Warn().Str("caller", caller).Msg("Panic activated")
	return nil
}

// Tranquilidad restores the DAO to active after a panic. Panic wallet only.
func (s *Service) Tranquilidad(caller string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.panicWallet == "" || caller != s.panicWallet {
		return ErrNotPanicWallet
	}
	if !s.paused {
		return ErrNotPaused
	}

	s.paused = false
	metrics.Paused.Set(0)

	log.Info().Str("caller", caller).Msg("Tranquility restored")
	return nil
}

// MintTokens mints new governance tokens. Owner only; the engine relays the
// mint as the token ledger's owner.
func (s *Service) MintTokens(caller, to string, amount *big.Int) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if caller != s.owner {
		return ErrNotOwner
	}
	return s.tokens.Mint(s.address, to, amount)
}

// UpdateTokenPrice sets the native price of one token. Owner only.
func (s *Service) UpdateTokenPrice(caller string, price *big.Int) error {
	return s.updateAmountParam(caller, price, func(p *Params, v *big.Int) { p.TokenPrice = v }, "tokenPrice")
}

// UpdateTokensPerVotingPower sets the stake-to-VP conversion ratio. Owner only.
func (s *Service) UpdateTokensPerVotingPower(caller string, ratio *big.Int) error {
	return s.updateAmountParam(caller, ratio, func(p *Params, v *big.Int) { p.TokensPerVotingPower = v }, "tokensPerVotingPower")
}

// UpdateMinStakeToVote sets the voting-eligibility threshold. Owner only.
func (s *Service) UpdateMinStakeToVote(caller string, min *big.Int) error {
	return s.updateAmountParam(caller, min, func(p *Params, v *big.Int) { p.MinStakeToVote = v }, "minStakeToVote")
}

// UpdateMinStakeToPropose sets the proposing-eligibility threshold. Owner only.
func (s *Service) UpdateMinStakeToPropose(caller string, min *big.Int) error {
	return s.updateAmountParam(caller, min, func(p *Params, v *big.Int) { p.MinStakeToPropose = v }, "minStakeToPropose")
}

func (s *Service) updateAmountParam(caller string, value *big.Int, apply func(*Params, *big.Int), name string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if caller != s.owner {
		return ErrNotOwner
	}
	if value == nil || value.Sign() <= 0 {
		return ErrInvalidAmount
	}

	apply(&s.params, new(big.Int).Set(value))
	log.Info().Str("parameter", name).Str("value", value.String()).Msg("Parameter updated")
	return nil
}

// UpdateStakingLockTime sets the stake lock duration. Owner only.
func (s *Service) UpdateStakingLockTime(caller string, lockTime time.Duration) error {
	return s.updateDurationParam(caller, lockTime, func(p *Params, v time.Duration) { p.StakingLockTime = v }, "stakingLockTime")
}

// UpdateProposalDuration sets the voting-window duration. Owner only.
func (s *Service) UpdateProposalDuration(caller string, duration time.Duration) error {
	return s.updateDurationParam(caller, duration, func(p *Params, v time.Duration) { p.ProposalDuration = v }, "proposalDuration")
}

func (s *Service) updateDurationParam(caller string, value time.Duration, apply func(*Params, time.Duration), name string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if caller != s.owner {
		return ErrNotOwner
	}
	if value <= 0 {
		return ErrInvalidAmount
	}

	apply(&s.params, value)
	log.Info().Str("parameter", name).Dur("value", value).Msg("Parameter updated")
	return nil
}

// TransferOwnership reassigns the engine's owner role. Owner only.
func (s *Service) TransferOwnership(caller, newOwner string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if caller != s.owner {
		return ErrNotOwner
	}
	if newOwner == "" {
		return ErrInvalidAddress
	}

	s.owner = newOwner
	log.Info().Str("owner", newOwner).Msg("Ownership transferred")
	return nil
}

// Address returns the engine's own account, which holds the treasury and the
// token custody balance.
func (s *Service) Address() string {
	return s.address
}

// Owner returns the current holder of the owner role.
func (s *Service) Owner() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.owner
}

// PanicWallet returns the current holder of the panic-wallet role.
func (s *Service) PanicWallet() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.panicWallet
}

// IsPaused reports the panic-switch state.
func (s *Service) IsPaused() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.paused
}

// Params returns a copy of the current governance parameters.
func (s *Service) Params() Params {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	p := s.params
	p.TokenPrice = new(big.Int).Set(s.params.TokenPrice)
	p.TokensPerVotingPower = new(big.Int).Set(s.params.TokensPerVotingPower)
	p.MinStakeToVote = new(big.Int).Set(s.params.MinStakeToVote)
	p.MinStakeToPropose = new(big.Int).Set(s.params.MinStakeToPropose)
	return p
}

// StakeInfo returns the caller-visible stake record for address.
func (s *Service) StakeInfo(address string) staking.Record {
	return s.stakes.Info(address)
}

// ReceiveFunds moves native currency from the sender into the treasury.
// Deposits are accepted unconditionally, even while paused.
func (s *Service) ReceiveFunds(from string, amount *big.Int) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if err := s.bank.Send(from, s.address, amount); err != nil {
		return err
	}

	log.Info().Str("from", from).Str("amount", amount.String()).Msg("Treasury deposit received")
	return nil
}

// TreasuryBalance returns the native-currency balance under collective control.
func (s *Service) TreasuryBalance() *big.Int {
	return s.bank.BalanceOf(s.address)
}

// GetProposal returns a proposal by id.
func (s *Service) GetProposal(id uint64) (*Proposal, error) {
	proposal, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, ErrInvalidProposal
	}
	return proposal, nil
}

// ListProposals returns every proposal in creation order.
func (s *Service) ListProposals() ([]*Proposal, error) {
	return s.store.List()
}

// ProposalCount returns how many proposals have been created.
func (s *Service) ProposalCount() uint64 {
	return s.store.Count()
}

// ProposalVoters returns the ordered voter list of a proposal.
func (s *Service) ProposalVoters(id uint64) ([]string, error) {
	proposal, err := s.GetProposal(id)
	if err != nil {
		return nil, err
	}
	return proposal.Voters, nil
}

// HasVoted reports whether voter already voted on the proposal.
func (s *Service) HasVoted(id uint64, voter string) (bool, error) {
	proposal, err := s.GetProposal(id)
	if err != nil {
		return false, err
	}
	_, voted := proposal.Choices[voter]
	return voted, nil
}

// VoterChoice returns how voter voted on the proposal.
func (s *Service) VoterChoice(id uint64, voter string) (bool, error) {
	proposal, err := s.GetProposal(id)
	if err != nil {
		return false, err
	}
	return proposal.Choices[voter], nil
}
