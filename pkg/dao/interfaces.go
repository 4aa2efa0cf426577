package dao

import (
	"math/big"
	"time"

	"github.com/Ultradistinto/DAO-obligatorio-taller/pkg/staking"
)

// TokenLedger defines the governance-token capability the engine consumes.
type TokenLedger interface {
	Mint(caller, to string, amount *big.Int) error
	Transfer(from, to string, amount *big.Int) error
	TransferFrom(spender, from, to string, amount *big.Int) error
	TransferOwnership(caller, newOwner string) error
	BalanceOf(address string) *big.Int
	TotalSupply() *big.Int
}

// Bank defines the native-currency transfer primitive.
type Bank interface {
	Deposit(address string, amount *big.Int) error
	Send(from, to string, amount *big.Int) error
	BalanceOf(address string) *big.Int
}

// StakeLedger defines the locked-balance bookkeeping used by the engine.
type StakeLedger interface {
	Stake(address string, purpose staking.Purpose, amount *big.Int, now time.Time, lockTime time.Duration) error
	Unstake(address string, purpose staking.Purpose, amount *big.Int, now time.Time) error
	StakedFor(address string, purpose staking.Purpose) *big.Int
	Info(address string) staking.Record
}

// ProposalStore defines methods for storing proposals and their vote trail.
type ProposalStore interface {
	Append(proposal *Proposal) (uint64, error)
	Get(id uint64) (*Proposal, error)
	List() ([]*Proposal, error)
	Count() uint64
	RecordVote(id uint64, voter string, inFavor bool, power *big.Int) error
	SetStatus(id uint64, status ProposalStatus) error
}

// Clock provides the current logical time for lock and deadline comparisons.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall-clock Clock used outside of tests.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
