package bank_test

import (
	"math/big"
	"testing"

	"github.com/Ultradistinto/DAO-obligatorio-taller/pkg/bank"
	"github.com/stretchr/testify/assert"
)

func TestLedger(t *testing.T) {
	ledger := bank.NewLedger()

	t.Run("deposits are unconditional", func(t *testing.T) {
		assert.NoError(t, ledger.Deposit("treasury", big.NewInt(500)))
		assert.NoError(t, ledger.Deposit("treasury", big.NewInt(250)))
		assert.Equal(t, int64(750), ledger.BalanceOf("treasury").Int64())
	})

	t.Run("send moves funds", func(t *testing.T) {
		assert.NoError(t, ledger.Send("treasury", "dev", big.NewInt(300)))
		assert.Equal(t, int64(450), ledger.BalanceOf("treasury").Int64())
		assert.Equal(t, int64(300), ledger.BalanceOf("dev").Int64())
	})

	t.Run("overdraft rejected", func(t *testing.T) {
		err := ledger.Send("treasury", "dev", big.NewInt(451))
		assert.ErrorIs(t, err, bank.ErrInsufficientFunds)
	})

	t.Run("zero amount rejected", func(t *testing.T) {
		assert.ErrorIs(t, ledger.Deposit("treasury", big.NewInt(0)), bank.ErrInvalidAmount)
		assert.ErrorIs(t, ledger.Send("treasury", "dev", big.NewInt(0)), bank.ErrInvalidAmount)
	})
}
