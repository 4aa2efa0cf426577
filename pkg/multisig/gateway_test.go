package multisig_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/Ultradistinto/DAO-obligatorio-taller/pkg/multisig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingInvoker captures relayed calls and can be told to fail.
type recordingInvoker struct {
	invocations int
	lastTarget  string
	lastValue   *big.Int
	lastCall    multisig.Call
	failWith    error
}

func (r *recordingInvoker) Invoke(from, target string, value *big.Int, call multisig.Call) error {
	if r.failWith != nil {
		return r.failWith
	}
	r.invocations++
	r.lastTarget = target
	r.lastValue = value
	r.lastCall = call
	return nil
}

type noopCall struct{}

func (noopCall) Name() string { return "noop" }

func newGateway(t *testing.T, owners []string, required int) (*multisig.Gateway, *recordingInvoker) {
	invoker := &recordingInvoker{}
	gateway, err := multisig.NewGateway("0xmultisig", owners, required, invoker)
	require.NoError(t, err)
	return gateway, invoker
}

func TestConstruction(t *testing.T) {
	t.Run("valid owner set", func(t *testing.T) {
		gateway, _ := newGateway(t, []string{"o1", "o2", "o3"}, 2)
		assert.Equal(t, []string{"o1", "o2", "o3"}, gateway.Owners())
		assert.Equal(t, 2, gateway.Required())
		assert.True(t, gateway.IsOwner("o2"))
		assert.False(t, gateway.IsOwner("intruder"))
	})

	t.Run("empty owner set rejected", func(t *testing.T) {
		_, err := multisig.NewGateway("0xmultisig", nil, 1, &recordingInvoker{})
		assert.ErrorIs(t, err, multisig.ErrOwnersRequired)
	})

	t.Run("zero threshold rejected", func(t *testing.T) {
		_, err := multisig.NewGateway("0xmultisig", []string{"o1"}, 0, &recordingInvoker{})
		assert.ErrorIs(t, err, multisig.ErrInvalidRequiredConfirmations)
	})

	t.Run("threshold above owner count rejected", func(t *testing.T) {
		_, err := multisig.NewGateway("0xmultisig", []string{"o1"}, 2, &recordingInvoker{})
		assert.ErrorIs(t, err, multisig.ErrInvalidRequiredConfirmations)
	})
}

func TestSubmitTransaction(t *testing.T) {
	gateway, _ := newGateway(t, []string{"o1", "o2", "o3"}, 2)

	t.Run("owner can submit", func(t *testing.T) {
		id, err := gateway.SubmitTransaction("o1", "0xtarget", big.NewInt(0), noopCall{})
		assert.NoError(t, err)
		assert.Equal(t, uint64(0), id)
		assert.Equal(t, uint64(1), gateway.TransactionCount())
	})

	t.Run("non-owner cannot submit", func(t *testing.T) {
		_, err := gateway.SubmitTransaction("intruder", "0xtarget", nil, nil)
		assert.ErrorIs(t, err, multisig.ErrNotAnOwner)
	})

	t.Run("ids are sequential", func(t *testing.T) {
		id, err := gateway.SubmitTransaction("o2", "0xother", nil, nil)
		assert.NoError(t, err)
		assert.Equal(t, uint64(1), id)
		assert.Equal(t, uint64(2), gateway.TransactionCount())
	})

	t.Run("details are readable", func(t *testing.T) {
		tx, err := gateway.GetTransaction(0)
		assert.NoError(t, err)
		assert.Equal(t, "0xtarget", tx.Target)
		assert.False(t, tx.Executed)
		assert.Equal(t, 0, tx.Confirmations)
	})
}

func TestConfirmTransaction(t *testing.T) {
	gateway, invoker := newGateway(t, []string{"o1", "o2", "o3"}, 2)
	_, err := gateway.SubmitTransaction("o1", "0xtarget", nil, noopCall{})
	require.NoError(t, err)

	t.Run("unknown id rejected", func(t *testing.T) {
		assert.ErrorIs(t, gateway.ConfirmTransaction("o1", 999), multisig.ErrInvalidTransaction)
	})

	t.Run("non-owner rejected", func(t *testing.T) {
		assert.ErrorIs(t, gateway.ConfirmTransaction("intruder", 0), multisig.ErrNotAnOwner)
	})

	t.Run("first confirmation does not execute", func(t *testing.T) {
		assert.NoError(t, gateway.ConfirmTransaction("o1", 0))

		count, err := gateway.Confirmations(0)
		assert.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.Equal(t, 0, invoker.invocations)
	})

	t.Run("repeat confirmation is a no-op", func(t *testing.T) {
		assert.NoError(t, gateway.ConfirmTransaction("o1", 0))

		count, err := gateway.Confirmations(0)
		assert.NoError(t, err)
		assert.Equal(t, 1, count)

		confirmed, err := gateway.IsConfirmedBy(0, "o1")
		assert.NoError(t, err)
		assert.True(t, confirmed)
	})

	t.Run("threshold confirmation auto-executes", func(t *testing.T) {
		assert.NoError(t, gateway.ConfirmTransaction("o2", 0))
		assert.Equal(t, 1, invoker.invocations)
		assert.Equal(t, "0xtarget", invoker.lastTarget)

		tx, err := gateway.GetTransaction(0)
		assert.NoError(t, err)
		assert.True(t, tx.Executed)
	})

	t.Run("manual execute after auto-execute fails", func(t *testing.T) {
		assert.ErrorIs(t, gateway.ExecuteTransaction("o1", 0), multisig.ErrAlreadyExecuted)
	})
}

func TestExecuteTransaction(t *testing.T) {
	t.Run("requires threshold", func(t *testing.T) {
		gateway, _ := newGateway(t, []string{"o1", "o2", "o3"}, 2)
		_, err := gateway.SubmitTransaction("o1", "0xtarget", nil, nil)
		require.NoError(t, err)
		require.NoError(t, gateway.ConfirmTransaction("o1", 0))

		assert.ErrorIs(t, gateway.ExecuteTransaction("o1", 0), multisig.ErrNotEnoughConfirmations)
	})

	t.Run("failed inner call stays retryable", func(t *testing.T) {
		gateway, invoker := newGateway(t, []string{"o1", "o2"}, 2)
		_, err := gateway.SubmitTransaction("o1", "0xtarget", nil, noopCall{})
		require.NoError(t, err)

		invoker.failWith = errors.New("target unavailable")
		require.NoError(t, gateway.ConfirmTransaction("o1", 0))

		err = gateway.ConfirmTransaction("o2", 0)
		assert.ErrorIs(t, err, multisig.ErrInnerCallFailed)

		tx, err := gateway.GetTransaction(0)
		assert.NoError(t, err)
		assert.False(t, tx.Executed)

		invoker.failWith = nil
		assert.NoError(t, gateway.ExecuteTransaction("o1", 0))
		assert.Equal(t, 1, invoker.invocations)
	})

	t.Run("single-owner gateway executes on first confirmation", func(t *testing.T) {
		gateway, invoker := newGateway(t, []string{"solo"}, 1)
		_, err := gateway.SubmitTransaction("solo", "0xtarget", nil, nil)
		require.NoError(t, err)

		assert.NoError(t, gateway.ConfirmTransaction("solo", 0))
		assert.Equal(t, 1, invoker.invocations)
	})

	t.Run("unanimous gateway waits for every owner", func(t *testing.T) {
		gateway, _ := newGateway(t, []string{"o1", "o2"}, 2)
		_, err := gateway.SubmitTransaction("o1", "0xtarget", nil, nil)
		require.NoError(t, err)

		require.NoError(t, gateway.ConfirmTransaction("o1", 0))
		tx, err := gateway.GetTransaction(0)
		require.NoError(t, err)
		assert.False(t, tx.Executed)

		require.NoError(t, gateway.ConfirmTransaction("o2", 0))
		tx, err = gateway.GetTransaction(0)
		require.NoError(t, err)
		assert.True(t, tx.Executed)
	})

	t.Run("value transfer with no call", func(t *testing.T) {
		gateway, invoker := newGateway(t, []string{"o1", "o2"}, 1)
		_, err := gateway.SubmitTransaction("o1", "0xrecipient", big.NewInt(500), nil)
		require.NoError(t, err)

		assert.NoError(t, gateway.ConfirmTransaction("o1", 0))
		assert.Equal(t, int64(500), invoker.lastValue.Int64())
		assert.Nil(t, invoker.lastCall)
	})
}
