package token

import (
	"errors"
	"math/big"
	"sync"
)

// Token metadata
const (
	Name     = "DAO Governance Token"
	Symbol   = "DAOG"
	Decimals = 18
)

var (
	// ErrNotOwner indicates the caller is not the token owner
	ErrNotOwner = errors.New("caller is not the token owner")

	// ErrInsufficientBalance indicates the sender lacks funds for a transfer
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInsufficientAllowance indicates the spender's allowance is too small
	ErrInsufficientAllowance = errors.New("insufficient allowance")

	// ErrInvalidAmount indicates a zero or negative amount
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidAddress indicates an empty address argument
	ErrInvalidAddress = errors.New("invalid address")
)

// MaxAllowance is the unlimited-approval sentinel. An allowance set to this
// value is never decremented by TransferFrom.
var MaxAllowance = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// Ledger is the governance-token ledger. Minting is restricted to the
// current owner, which after bootstrap is the governance engine.
type Ledger struct {
	owner       string
	balances    map[string]*big.Int
	allowances  map[string]map[string]*big.Int
	totalSupply *big.Int
	mutex       sync.RWMutex
}

// NewLedger creates a token ledger with zero supply owned by deployer.
func NewLedger(deployer string) *Ledger {
	return &Ledger{
		owner:       deployer,
		balances:    make(map[string]*big.Int),
		allowances:  make(map[string]map[string]*big.Int),
		totalSupply: big.NewInt(0),
	}
}

// Owner returns the address currently allowed to mint.
func (l *Ledger) Owner() string {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.owner
}

// TransferOwnership hands mint rights to newOwner. The previous owner loses
// them immediately.
func (l *Ledger) TransferOwnership(caller, newOwner string) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if caller != l.owner {
		return ErrNotOwner
	}
	if newOwner == "" {
		return ErrInvalidAddress
	}
	l.owner = newOwner
	return nil
}

// Mint creates amount new tokens for to. Owner only.
func (l *Ledger) Mint(caller, to string, amount *big.Int) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if caller != l.owner {
		return ErrNotOwner
	}
	if to == "" {
		return ErrInvalidAddress
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}

	l.balances[to] = new(big.Int).Add(l.balance(to), amount)
	l.totalSupply = new(big.Int).Add(l.totalSupply, amount)
	return nil
}

// Transfer moves amount tokens from from to to.
func (l *Ledger) Transfer(from, to string, amount *big.Int) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.transfer(from, to, amount)
}

// Approve sets spender's allowance over owner's tokens to amount, replacing
// any previous allowance.
func (l *Ledger) Approve(owner, spender string, amount *big.Int) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if owner == "" || spender == "" {
		return ErrInvalidAddress
	}
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}

	if _, exists := l.allowances[owner]; !exists {
		l.allowances[owner] = make(map[string]*big.Int)
	}
	l.allowances[owner][spender] = new(big.Int).Set(amount)
	return nil
}

// TransferFrom moves amount tokens from from to to on behalf of spender,
// consuming allowance unless it is the MaxAllowance sentinel.
func (l *Ledger) TransferFrom(spender, from, to string, amount *big.Int) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}

	allowance := l.allowance(from, spender)
	if allowance.Cmp(amount) < 0 {
		return ErrInsufficientAllowance
	}

	if err := l.transfer(from, to, amount); err != nil {
		return err
	}

	if allowance.Cmp(MaxAllowance) != 0 {
		l.allowances[from][spender] = new(big.Int).Sub(allowance, amount)
	}
	return nil
}

// BalanceOf returns the balance of address.
func (l *Ledger) BalanceOf(address string) *big.Int {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return new(big.Int).Set(l.balance(address))
}

// Allowance returns what spender may still move out of owner's balance.
func (l *Ledger) Allowance(owner, spender string) *big.Int {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return new(big.Int).Set(l.allowance(owner, spender))
}

// TotalSupply returns the total number of tokens ever minted.
func (l *Ledger) TotalSupply() *big.Int {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return new(big.Int).Set(l.totalSupply)
}

func (l *Ledger) balance(address string) *big.Int {
	if balance, exists := l.balances[address]; exists {
		return balance
	}
	return big.NewInt(0)
}

func (l *Ledger) allowance(owner, spender string) *big.Int {
	if spenders, exists := l.allowances[owner]; exists {
		if allowance, ok := spenders[spender]; ok {
			return allowance
		}
	}
	return big.NewInt(0)
}

// transfer assumes the mutex is held.
func (l *Ledger) transfer(from, to string, amount *big.Int) error {
	if from == "" || to == "" {
		return ErrInvalidAddress
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}

	fromBalance := l.balance(from)
	if fromBalance.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}

	l.balances[from] = new(big.Int).Sub(fromBalance, amount)
	l.balances[to] = new(big.Int).Add(l.balance(to), amount)
	return nil
}
