package dao

import (
	"fmt"
	"math/big"
	"time"
)

// ProposalStatus represents the lifecycle state of a proposal
type ProposalStatus int

const (
	ProposalStatusActive ProposalStatus = iota
	ProposalStatusAccepted
	ProposalStatusRejected
)

func (s ProposalStatus) String() string {
	switch s {
	case ProposalStatusActive:
		return "active"
	case ProposalStatusAccepted:
		return "accepted"
	case ProposalStatusRejected:
		return "rejected"
	}
	return "unknown"
}

// ProposalKind represents the kind of a proposal
type ProposalKind int

const (
	ProposalKindNormal ProposalKind = iota
	ProposalKindTreasury
)

func (k ProposalKind) String() string {
	if k == ProposalKindTreasury {
		return "treasury"
	}
	return "normal"
}

// Proposal represents a governance proposal. Once finalized it is immutable
// except for reads of its vote audit trail.
type Proposal struct {
	ID           uint64
	Title        string
	Description  string
	Proposer     string
	CreatedAt    time.Time
	Deadline     time.Time
	VotesFor     *big.Int
	VotesAgainst *big.Int
	Status       ProposalStatus
	Kind         ProposalKind

	// Treasury fields, zero-valued for normal proposals
	TreasuryTarget string
	TreasuryAmount *big.Int

	// Audit trail: voters in vote order and each voter's choice
	Voters  []string
	Choices map[string]bool
}

// Params is the mutable governance configuration, each field independently
// tunable through the owner-gated update operations.
type Params struct {
	TokenPrice           *big.Int      `json:"token_price"`
	TokensPerVotingPower *big.Int      `json:"tokens_per_voting_power"`
	MinStakeToVote       *big.Int      `json:"min_stake_to_vote"`
	MinStakeToPropose    *big.Int      `json:"min_stake_to_propose"`
	StakingLockTime      time.Duration `json:"staking_lock_time"`
	ProposalDuration     time.Duration `json:"proposal_duration"`
}

// tokenUnit is one whole token in base units (18 decimals).
var tokenUnit = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// DefaultParams returns the parameter set used by the local deployment.
func DefaultParams() Params {
	return Params{
		TokenPrice:           mustParseUnits("0.001"),
		TokensPerVotingPower: mustParseUnits("1000"),
		MinStakeToVote:       mustParseUnits("100"),
		MinStakeToPropose:    mustParseUnits("500"),
		StakingLockTime:      5 * time.Minute,
		ProposalDuration:     10 * time.Minute,
	}
}

// ParseUnits converts a decimal token or native amount ("0.001", "1000")
// into base units at 18 decimals.
func ParseUnits(amount string) (*big.Int, error) {
	f, ok := new(big.Float).SetString(amount)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", amount)
	}
	f.Mul(f, new(big.Float).SetInt(tokenUnit))
	i, _ := f.Int(nil)
	return i, nil
}

func mustParseUnits(amount string) *big.Int {
	i, err := ParseUnits(amount)
	if err != nil {
		panic(err)
	}
	return i
}
