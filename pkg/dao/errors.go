package dao

import "errors"

var (
	// ErrInvalidAmount indicates a zero or out-of-range amount
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidAddress indicates an empty address argument
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInsufficientStake indicates the caller lacks the voting or proposing threshold
	ErrInsufficientStake = errors.New("insufficient stake")

	// ErrInvalidProposal indicates an unknown proposal id
	ErrInvalidProposal = errors.New("invalid proposal id")

	// ErrProposalNotActive indicates a vote outside the active voting window
	ErrProposalNotActive = errors.New("proposal is not active")

	// ErrProposalStillActive indicates a finalization attempt before the deadline
	ErrProposalStillActive = errors.New("proposal is still active")

	// ErrAlreadyVoted indicates a second vote on the same proposal
	ErrAlreadyVoted = errors.New("already voted on this proposal")

	// ErrDAOPaused indicates a pause-gated operation while paused
	ErrDAOPaused = errors.New("dao is paused")

	// ErrNotOwner indicates the caller does not hold the owner role
	ErrNotOwner = errors.New("caller is not the owner")

	// ErrNotPanicWallet indicates the caller does not hold the panic-wallet role
	ErrNotPanicWallet = errors.New("caller is not the panic wallet")

	// ErrNotPaused indicates a restore attempt while the system is active
	ErrNotPaused = errors.New("dao is not paused")

	// ErrInsufficientTreasury indicates the treasury cannot cover an accepted payout
	ErrInsufficientTreasury = errors.New("insufficient treasury balance")

	// ErrInvalidTarget indicates a zero target address or a call routed to the wrong target
	ErrInvalidTarget = errors.New("invalid target address")
)
