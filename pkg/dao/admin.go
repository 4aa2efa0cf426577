package dao

import (
	"fmt"
	"math/big"
	"time"

	"github.com/Ultradistinto/DAO-obligatorio-taller/pkg/metrics"
	"github.com/Ultradistinto/DAO-obligatorio-taller/pkg/multisig"
)

// The privileged operations a multisig gateway can relay to the engine,
// modelled as a closed set of typed calls instead of opaque encoded bytes.

// MintCall mints new governance tokens.
type MintCall struct {
	To     string
	Amount *big.Int
}

func (MintCall) Name() string { return "mint" }

// UpdateTokenPriceCall changes the native price of one token.
type UpdateTokenPriceCall struct{ Value *big.Int }

func (UpdateTokenPriceCall) Name() string { return "updateTokenPrice" }

// UpdateTokensPerVotingPowerCall changes the stake-to-VP ratio.
type UpdateTokensPerVotingPowerCall struct{ Value *big.Int }

func (UpdateTokensPerVotingPowerCall) Name() string { return "updateTokensPerVotingPower" }

// UpdateMinStakeToVoteCall changes the voting-eligibility threshold.
type UpdateMinStakeToVoteCall struct{ Value *big.Int }

func (UpdateMinStakeToVoteCall) Name() string { return "updateMinStakeToVote" }

// UpdateMinStakeToProposeCall changes the proposing-eligibility threshold.
type UpdateMinStakeToProposeCall struct{ Value *big.Int }

func (UpdateMinStakeToProposeCall) Name() string { return "updateMinStakeToPropose" }

// UpdateStakingLockTimeCall changes the stake lock duration.
type UpdateStakingLockTimeCall struct{ Value time.Duration }

func (UpdateStakingLockTimeCall) Name() string { return "updateStakingLockTime" }

// UpdateProposalDurationCall changes the voting-window duration.
type UpdateProposalDurationCall struct{ Value time.Duration }

func (UpdateProposalDurationCall) Name() string { return "updateProposalDuration" }

// TransferOwnershipCall reassigns the engine's owner role.
type TransferOwnershipCall struct{ NewOwner string }

func (TransferOwnershipCall) Name() string { return "transferOwnership" }

// SetPanicWalletCall assigns the panic-wallet role and arms the system.
type SetPanicWalletCall struct{ Wallet string }

func (SetPanicWalletCall) Name() string { return "setPanicWallet" }

// PanicCall pauses the DAO.
type PanicCall struct{}

func (PanicCall) Name() string { return "panic" }

// TranquilidadCall restores the DAO after a panic.
type TranquilidadCall struct{}

func (TranquilidadCall) Name() string { return "tranquilidad" }

// Router applies approved multisig transactions against the engine: it moves
// the attached native value and dispatches the typed call with the gateway's
// address as the caller, so role checks see the gateway identity.
type Router struct {
	service *Service
	bank    Bank
}

// NewRouter creates a Router for service backed by bank.
func NewRouter(service *Service, bank Bank) *Router {
	return &Router{service: service, bank: bank}
}

// Invoke implements multisig.Invoker.
func (r *Router) Invoke(from, target string, value *big.Int, call multisig.Call) error {
	hasValue := value != nil && value.Sign() > 0
	if hasValue {
		if err := r.bank.Send(from, target, value); err != nil {
			return err
		}
	}
	if call == nil {
		return nil
	}

	err := r.dispatch(from, target, call)
	if err != nil {
		// A failed call must leave no trace, so the attached value goes
		// back to the gateway and a later retry cannot pay twice.
		if hasValue {
			if refundErr := r.bank.Send(target, from, value); refundErr != nil {
				return fmt.Errorf("%v (refund failed: %v)", err, refundErr)
			}
		}
		return err
	}

	metrics.MultisigExecutions.WithLabelValues(call.Name()).Inc()
	return nil
}

func (r *Router) dispatch(from, target string, call multisig.Call) error {
	if target != r.service.Address() {
		return ErrInvalidTarget
	}

	var err error
	switch c := call.(type) {
	case MintCall:
		err = r.service.MintTokens(from, c.To, c.Amount)
	case UpdateTokenPriceCall:
		err = r.service.UpdateTokenPrice(from, c.Value)
	case UpdateTokensPerVotingPowerCall:
		err = r.service.UpdateTokensPerVotingPower(from, c.Value)
	case UpdateMinStakeToVoteCall:
		err = r.service.UpdateMinStakeToVote(from, c.Value)
	case UpdateMinStakeToProposeCall:
		err = r.service.UpdateMinStakeToPropose(from, c.Value)
	case UpdateStakingLockTimeCall:
		err = r.service.UpdateStakingLockTime(from, c.Value)
	case UpdateProposalDurationCall:
		err = r.service.UpdateProposalDuration(from, c.Value)
	case TransferOwnershipCall:
		err = r.service.TransferOwnership(from, c.NewOwner)
	case SetPanicWalletCall:
		err = r.service.SetPanicWallet(from, c.Wallet)
	case PanicCall:
		err = r.service.Panic(from)
	case TranquilidadCall:
		err = r.service.Tranquilidad(from)
	default:
		err = fmt.Errorf("unknown privileged call: %s", call.Name())
	}
	return err
}
