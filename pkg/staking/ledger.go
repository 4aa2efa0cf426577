package staking

import (
	"errors"
	"math/big"
	"sync"
	"time"
)

var (
	// ErrInvalidAmount indicates a zero stake or an unstake past the staked amount
	ErrInvalidAmount = errors.New("invalid stake amount")

	// ErrStakeLocked indicates the lock time has not expired yet
	ErrStakeLocked = errors.New("stake is still locked")
)

// Purpose selects which of the two independent stake buckets an operation
// targets. The same tokens can back both buckets at once; there is no
// cross-deduplication.
type Purpose int

const (
	Voting Purpose = iota
	Proposing
)

// Record is the per-account stake state. Zero-valued until the first stake
// and kept around forever after.
type Record struct {
	AmountForVoting      *big.Int
	LockedUntilVoting    time.Time
	AmountForProposing   *big.Int
	LockedUntilProposing time.Time
}

// Ledger tracks locked token amounts per account. It only does the
// bookkeeping; the governance engine moves the actual tokens.
type Ledger struct {
	records map[string]*Record
	mutex   sync.RWMutex
}

// NewLedger creates an empty stake ledger.
func NewLedger() *Ledger {
	return &Ledger{
		records: make(map[string]*Record),
	}
}

// Stake adds amount to the account's bucket and restarts that bucket's lock,
// even when a previous lock had already expired.
func (l *Ledger) Stake(address string, purpose Purpose, amount *big.Int, now time.Time, lockTime time.Duration) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}

	record := l.record(address)
	unlockAt := now.Add(lockTime)
	if purpose == Voting {
		record.AmountForVoting = new(big.Int).Add(record.AmountForVoting, amount)
		record.LockedUntilVoting = unlockAt
	} else {
		record.AmountForProposing = new(big.Int).Add(record.AmountForProposing, amount)
		record.LockedUntilProposing = unlockAt
	}
	return nil
}

// Unstake removes amount from the account's bucket. The lock check runs
// before the amount check.
func (l *Ledger) Unstake(address string, purpose Purpose, amount *big.Int, now time.Time) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	record := l.record(address)

	staked := record.AmountForVoting
	lockedUntil := record.LockedUntilVoting
	if purpose == Proposing {
		staked = record.AmountForProposing
		lockedUntil = record.LockedUntilProposing
	}

	if now.Before(lockedUntil) {
		return ErrStakeLocked
	}
	if amount == nil || amount.Sign() <= 0 || staked.Cmp(amount) < 0 {
		return ErrInvalidAmount
	}

	remaining := new(big.Int).Sub(staked, amount)
	if purpose == Voting {
		record.AmountForVoting = remaining
	} else {
		record.AmountForProposing = remaining
	}
	return nil
}

// StakedFor returns the amount currently staked by address for purpose.
func (l *Ledger) StakedFor(address string, purpose Purpose) *big.Int {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	record, exists := l.records[address]
	if !exists {
		return big.NewInt(0)
	}
	if purpose == Voting {
		return new(big.Int).Set(record.AmountForVoting)
	}
	return new(big.Int).Set(record.AmountForProposing)
}

// Info returns a copy of the account's full stake record.
func (l *Ledger) Info(address string) Record {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	record, exists := l.records[address]
	if !exists {
		return Record{AmountForVoting: big.NewInt(0), AmountForProposing: big.NewInt(0)}
	}
	return Record{
		AmountForVoting:      new(big.Int).Set(record.AmountForVoting),
		LockedUntilVoting:    record.LockedUntilVoting,
		AmountForProposing:   new(big.Int).Set(record.AmountForProposing),
		LockedUntilProposing: record.LockedUntilProposing,
	}
}

// record assumes the mutex is held.
func (l *Ledger) record(address string) *Record {
	if record, exists := l.records[address]; exists {
		return record
	}
	record := &Record{
		AmountForVoting:    big.NewInt(0),
		AmountForProposing: big.NewInt(0),
	}
	l.records[address] = record
	return record
}
