package multisig

import (
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/rs/zerolog/log"
)

var (
	// ErrOwnersRequired indicates construction with an empty owner set
	ErrOwnersRequired = errors.New("at least one owner is required")

	// ErrInvalidRequiredConfirmations indicates a threshold outside [1, len(owners)]
	ErrInvalidRequiredConfirmations = errors.New("invalid required confirmations")

	// ErrNotAnOwner indicates the caller is not in the owner set
	ErrNotAnOwner = errors.New("caller is not an owner")

	// ErrInvalidTransaction indicates an unknown transaction id
	ErrInvalidTransaction = errors.New("invalid transaction id")

	// ErrNotEnoughConfirmations indicates the threshold has not been met
	ErrNotEnoughConfirmations = errors.New("not enough confirmations")

	// ErrAlreadyExecuted indicates the transaction already ran
	ErrAlreadyExecuted = errors.New("transaction already executed")

	// ErrInnerCallFailed indicates the relayed call reported an error. The
	// transaction stays executable so it can be retried once the cause is fixed.
	ErrInnerCallFailed = errors.New("inner call failed")
)

// Call is a privileged operation relayed by the gateway. The gateway treats
// it as opaque; the Invoker knows how to apply it to its target.
type Call interface {
	Name() string
}

// Invoker applies an approved transaction: moves value from the gateway to
// the target and dispatches the call, if any.
type Invoker interface {
	Invoke(from, target string, value *big.Int, call Call) error
}

// Transaction is one submitted privileged operation and its approval state.
type Transaction struct {
	ID            uint64
	Target        string
	Value         *big.Int
	Call          Call
	Executed      bool
	Confirmations int
}

type gatewayTx struct {
	Transaction
	confirmedBy map[string]bool
}

// Gateway collects N-of-M owner confirmations before relaying a call to its
// target. The owner set and threshold are fixed at construction.
type Gateway struct {
	address      string
	owners       []string
	ownerSet     map[string]bool
	required     int
	invoker      Invoker
	transactions []*gatewayTx
	mutex        sync.Mutex
}

// NewGateway creates a gateway identified by address with a fixed owner set
// and confirmation threshold.
func NewGateway(address string, owners []string, required int, invoker Invoker) (*Gateway, error) {
	if len(owners) == 0 {
		return nil, ErrOwnersRequired
	}
	if required < 1 || required > len(owners) {
		return nil, ErrInvalidRequiredConfirmations
	}

	ownerSet := make(map[string]bool, len(owners))
	for _, owner := range owners {
		ownerSet[owner] = true
	}

	return &Gateway{
		address:  address,
		owners:   append([]string(nil), owners...),
		ownerSet: ownerSet,
		required: required,
		invoker:  invoker,
	}, nil
}

// SubmitTransaction appends a new unconfirmed transaction and returns its id.
// Owner only.
func (g *Gateway) SubmitTransaction(caller, target string, value *big.Int, call Call) (uint64, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if !g.ownerSet[caller] {
		return 0, ErrNotAnOwner
	}
	if value == nil {
		value = big.NewInt(0)
	}

	id := uint64(len(g.transactions))
	g.transactions = append(g.transactions, &gatewayTx{
		Transaction: Transaction{
			ID:     id,
			Target: target,
			Value:  new(big.Int).Set(value),
			Call:   call,
		},
		confirmedBy: make(map[string]bool),
	})

	log.Info().
		Str("gateway", g.address).
		Uint64("tx", id).
		Str("target", target).
		Str("submitter", caller).
		Msg("Multisig transaction submitted")

	return id, nil
}

// ConfirmTransaction records the caller's approval. A repeat confirmation
// from the same owner is a silent no-op. The moment the threshold is reached
// the transaction executes within this same call.
func (g *Gateway) ConfirmTransaction(caller string, id uint64) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if !g.ownerSet[caller] {
		return ErrNotAnOwner
	}
	tx, err := g.tx(id)
	if err != nil {
		return err
	}
	if tx.confirmedBy[caller] {
		return nil
	}

	tx.confirmedBy[caller] = true
	tx.Confirmations++

	log.Info().
		Str("gateway", g.address).
		Uint64("tx", id).
		Str("owner", caller).
		Int("confirmations", tx.Confirmations).
		Msg("Multisig transaction confirmed")

	if tx.Confirmations == g.required && !tx.Executed {
		return g.execute(tx)
	}
	return nil
}

// ExecuteTransaction manually triggers execution, either as a retry after a
// failed inner call or when the threshold was met by an earlier path.
func (g *Gateway) ExecuteTransaction(caller string, id uint64) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if !g.ownerSet[caller] {
		return ErrNotAnOwner
	}
	tx, err := g.tx(id)
	if err != nil {
		return err
	}
	return g.execute(tx)
}

// execute assumes the mutex is held. The executed flag flips before the
// relayed call runs and is rolled back only if that call reports failure, so
// a transaction can never run twice but stays retryable after a failure.
func (g *Gateway) execute(tx *gatewayTx) error {
	if tx.Executed {
		return ErrAlreadyExecuted
	}
	if tx.Confirmations < g.required {
		return ErrNotEnoughConfirmations
	}

	tx.Executed = true
	if err := g.invoker.Invoke(g.address, tx.Target, tx.Value, tx.Call); err != nil {
		tx.Executed = false
		return fmt.Errorf("%w: %v", ErrInnerCallFailed, err)
	}

	log.Info().
		Str("gateway", g.address).
		Uint64("tx", tx.ID).
		Str("target", tx.Target).
		Msg("Multisig transaction executed")

	return nil
}

// Address returns the gateway's own address, the source of relayed value.
func (g *Gateway) Address() string {
	return g.address
}

// Owners returns a copy of the owner set in construction order.
func (g *Gateway) Owners() []string {
	return append([]string(nil), g.owners...)
}

// Required returns the confirmation threshold.
func (g *Gateway) Required() int {
	return g.required
}

// IsOwner reports whether address belongs to the owner set.
func (g *Gateway) IsOwner(address string) bool {
	return g.ownerSet[address]
}

// TransactionCount returns the number of submitted transactions.
func (g *Gateway) TransactionCount() uint64 {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return uint64(len(g.transactions))
}

// GetTransaction returns a copy of the transaction with the given id.
func (g *Gateway) GetTransaction(id uint64) (Transaction, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	tx, err := g.tx(id)
	if err != nil {
		return Transaction{}, err
	}
	copy := tx.Transaction
	copy.Value = new(big.Int).Set(tx.Value)
	return copy, nil
}

// Confirmations returns the number of distinct-owner confirmations.
func (g *Gateway) Confirmations(id uint64) (int, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	tx, err := g.tx(id)
	if err != nil {
		return 0, err
	}
	return tx.Confirmations, nil
}

// IsConfirmedBy reports whether owner has confirmed the transaction.
func (g *Gateway) IsConfirmedBy(id uint64, owner string) (bool, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	tx, err := g.tx(id)
	if err != nil {
		return false, err
	}
	return tx.confirmedBy[owner], nil
}

// tx assumes the mutex is held.
func (g *Gateway) tx(id uint64) (*gatewayTx, error) {
	if id >= uint64(len(g.transactions)) {
		return nil, ErrInvalidTransaction
	}
	return g.transactions[id], nil
}
