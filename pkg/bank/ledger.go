package bank

import (
	"errors"
	"math/big"
	"sync"
)

var (
	// ErrInsufficientFunds indicates the sender cannot cover the transfer
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidAmount indicates a zero or negative amount
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidAddress indicates an empty address argument
	ErrInvalidAddress = errors.New("invalid address")
)

// Ledger tracks native-currency balances. It is the value-transfer primitive
// backing the treasury and multisig payouts: deposits are unconditional,
// outgoing transfers are balance-checked.
type Ledger struct {
	balances map[string]*big.Int
	mutex    sync.RWMutex
}

// NewLedger creates an empty native-currency ledger.
func NewLedger() *Ledger {
	return &Ledger{
		balances: make(map[string]*big.Int),
	}
}

// Deposit credits amount to address out of thin air. Used to model incoming
// value from outside the system.
func (l *Ledger) Deposit(address string, amount *big.Int) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if address == "" {
		return ErrInvalidAddress
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}

	l.balances[address] = new(big.Int).Add(l.balance(address), amount)
	return nil
}

// Send moves amount from from to to.
func (l *Ledger) Send(from, to string, amount *big.Int) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if from == "" || to == "" {
		return ErrInvalidAddress
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}

	fromBalance := l.balance(from)
	if fromBalance.Cmp(amount) < 0 {
		return ErrInsufficientFunds
	}

	l.balances[from] = new(big.Int).Sub(fromBalance, amount)
	l.balances[to] = new(big.Int).Add(l.balance(to), amount)
	return nil
}

// BalanceOf returns the native-currency balance of address.
func (l *Ledger) BalanceOf(address string) *big.Int {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return new(big.Int).Set(l.balance(address))
}

func (l *Ledger) balance(address string) *big.Int {
	if balance, exists := l.balances[address]; exists {
		return balance
	}
	return big.NewInt(0)
}
