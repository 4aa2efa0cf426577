package dao_test

import (
	"testing"

	"github.com/Ultradistinto/DAO-obligatorio-taller/pkg/bank"
	"github.com/Ultradistinto/DAO-obligatorio-taller/pkg/dao"
	"github.com/Ultradistinto/DAO-obligatorio-taller/pkg/dao/store"
	"github.com/Ultradistinto/DAO-obligatorio-taller/pkg/multisig"
	"github.com/Ultradistinto/DAO-obligatorio-taller/pkg/staking"
	"github.com/Ultradistinto/DAO-obligatorio-taller/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// multisigFixture wires the deployment shape: the admin gateway holds the
// engine's owner role, the panic gateway holds the panic-wallet role.
type multisigFixture struct {
	service      *dao.Service
	tokens       *token.Ledger
	bank         *bank.Ledger
	adminGateway *multisig.Gateway
	panicGateway *multisig.Gateway
}

func newMultisigFixture(t *testing.T) *multisigFixture {
	tokens := token.NewLedger("deployer")
	nativeBank := bank.NewLedger()

	service := dao.NewService("0xdao", "0xadminsig", tokens, nativeBank, staking.NewLedger(), store.NewMemoryStore(), newFakeClock(), dao.DefaultParams())
	router := dao.NewRouter(service, nativeBank)

	adminGateway, err := multisig.NewGateway("0xadminsig", []string{"o1", "o2", "o3"}, 2, router)
	require.NoError(t, err)
	panicGateway, err := multisig.NewGateway("0xpanicsig", []string{"p1", "p2"}, 1, router)
	require.NoError(t, err)

	require.NoError(t, tokens.TransferOwnership("deployer", "0xdao"))

	return &multisigFixture{
		service:      service,
		tokens:       tokens,
		bank:         nativeBank,
		adminGateway: adminGateway,
		panicGateway: panicGateway,
	}
}

func TestMultisigGatedMint(t *testing.T) {
	f := newMultisigFixture(t)

	id, err := f.adminGateway.SubmitTransaction("o1", "0xdao", nil, dao.MintCall{To: "0xuser1", Amount: ether(1000)})
	require.NoError(t, err)

	t.Run("one confirmation is not enough", func(t *testing.T) {
		require.NoError(t, f.adminGateway.ConfirmTransaction("o1", id))
		assert.Equal(t, int64(0), f.tokens.BalanceOf("0xuser1").Int64())
	})

	t.Run("second confirmation mints through the engine", func(t *testing.T) {
		require.NoError(t, f.adminGateway.ConfirmTransaction("o2", id))
		assert.Equal(t, ether(1000), f.tokens.BalanceOf("0xuser1"))
	})

	t.Run("replay is rejected", func(t *testing.T) {
		assert.ErrorIs(t, f.adminGateway.ExecuteTransaction("o3", id), multisig.ErrAlreadyExecuted)
	})
}

func TestMultisigGatedParameters(t *testing.T) {
	f := newMultisigFixture(t)

	id, err := f.adminGateway.SubmitTransaction("o2", "0xdao", nil, dao.UpdateMinStakeToVoteCall{Value: ether(250)})
	require.NoError(t, err)
	require.NoError(t, f.adminGateway.ConfirmTransaction("o1", id))
	require.NoError(t, f.adminGateway.ConfirmTransaction("o3", id))

	assert.Equal(t, ether(250), f.service.Params().MinStakeToVote)
}

func TestPanicGateway(t *testing.T) {
	f := newMultisigFixture(t)

	// The admin gateway must first register the panic gateway as the
	// panic wallet, which also arms the system.
	id, err := f.adminGateway.SubmitTransaction("o1", "0xdao", nil, dao.SetPanicWalletCall{Wallet: "0xpanicsig"})
	require.NoError(t, err)
	require.NoError(t, f.adminGateway.ConfirmTransaction("o1", id))
	require.NoError(t, f.adminGateway.ConfirmTransaction("o2", id))

	require.Equal(t, "0xpanicsig", f.service.PanicWallet())
	require.False(t, f.service.IsPaused())

	t.Run("panic gateway pauses with a single confirmation", func(t *testing.T) {
		id, err := f.panicGateway.SubmitTransaction("p1", "0xdao", nil, dao.PanicCall{})
		require.NoError(t, err)
		require.NoError(t, f.panicGateway.ConfirmTransaction("p1", id))

		assert.True(t, f.service.IsPaused())
	})

	t.Run("direct panic from a bare account is refused", func(t *testing.T) {
		assert.ErrorIs(t, f.service.Panic("p1"), dao.ErrNotPanicWallet)
	})

	t.Run("panic gateway restores", func(t *testing.T) {
		id, err := f.panicGateway.SubmitTransaction("p2", "0xdao", nil, dao.TranquilidadCall{})
		require.NoError(t, err)
		require.NoError(t, f.panicGateway.ConfirmTransaction("p2", id))

		assert.False(t, f.service.IsPaused())
	})
}

func TestGatewayValueTransfer(t *testing.T) {
	f := newMultisigFixture(t)
	require.NoError(t, f.bank.Deposit("0xadminsig", ether(2)))

	id, err := f.adminGateway.SubmitTransaction("o1", "0xrecipient", ether(1), nil)
	require.NoError(t, err)
	require.NoError(t, f.adminGateway.ConfirmTransaction("o1", id))
	require.NoError(t, f.adminGateway.ConfirmTransaction("o2", id))

	assert.Equal(t, ether(1), f.bank.BalanceOf("0xrecipient"))
	assert.Equal(t, ether(1), f.bank.BalanceOf("0xadminsig"))
}

func TestGatewayInnerFailureIsRetryable(t *testing.T) {
	f := newMultisigFixture(t)

	// Value transfer the gateway cannot cover yet.
	id, err := f.adminGateway.SubmitTransaction("o1", "0xrecipient", ether(1), nil)
	require.NoError(t, err)
	require.NoError(t, f.adminGateway.ConfirmTransaction("o1", id))

	err = f.adminGateway.ConfirmTransaction("o2", id)
	assert.ErrorIs(t, err, multisig.ErrInnerCallFailed)

	tx, err := f.adminGateway.GetTransaction(id)
	require.NoError(t, err)
	assert.False(t, tx.Executed)

	require.NoError(t, f.bank.Deposit("0xadminsig", ether(1)))
	assert.NoError(t, f.adminGateway.ExecuteTransaction("o1", id))
	assert.Equal(t, ether(1), f.bank.BalanceOf("0xrecipient"))
}

func TestGatewayValueRefundedOnFailedCall(t *testing.T) {
	f := newMultisigFixture(t)
	require.NoError(t, f.bank.Deposit("0xadminsig", ether(10)))

	// The attached value must not stick when the relayed call fails.
	id, err := f.adminGateway.SubmitTransaction("o1", "0xdao", ether(10), dao.UpdateTokenPriceCall{Value: nil})
	require.NoError(t, err)
	require.NoError(t, f.adminGateway.ConfirmTransaction("o1", id))

	err = f.adminGateway.ConfirmTransaction("o2", id)
	require.ErrorIs(t, err, multisig.ErrInnerCallFailed)
	assert.Equal(t, int64(0), f.bank.BalanceOf("0xdao").Int64())
	assert.Equal(t, ether(10), f.bank.BalanceOf("0xadminsig"))

	t.Run("retry fails without paying the value again", func(t *testing.T) {
		err := f.adminGateway.ExecuteTransaction("o3", id)
		require.ErrorIs(t, err, multisig.ErrInnerCallFailed)
		assert.Equal(t, int64(0), f.bank.BalanceOf("0xdao").Int64())
		assert.Equal(t, ether(10), f.bank.BalanceOf("0xadminsig"))
	})
}

func TestRouterRejectsWrongTarget(t *testing.T) {
	f := newMultisigFixture(t)

	id, err := f.adminGateway.SubmitTransaction("o1", "0xelsewhere", nil, dao.PanicCall{})
	require.NoError(t, err)
	require.NoError(t, f.adminGateway.ConfirmTransaction("o1", id))

	err = f.adminGateway.ConfirmTransaction("o2", id)
	assert.ErrorIs(t, err, multisig.ErrInnerCallFailed)
}
