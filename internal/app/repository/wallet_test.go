package repository

import (
	"testing"

	"sevakendra/internal/app/ds"
	"sevakendra/internal/app/lifecycle"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletBalance(t *testing.T) {
	repo, mock := newMockRepository(t)

	// Баланс - проекция: комиссии со знаком плюс, выводы со знаком минус
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(CASE WHEN category = \$1 THEN amount ELSE -amount END\), 0\) FROM "wallet_transactions" WHERE agent_id = \$2`).
		WithArgs(ds.WalletCommission, 5).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(125.5))

	balance, err := repo.WalletBalance(5)
	require.NoError(t, err)
	assert.Equal(t, 125.5, balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdraw(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(CASE WHEN category = \$1 THEN amount ELSE -amount END\), 0\) FROM "wallet_transactions" WHERE agent_id = \$2`).
		WithArgs(ds.WalletCommission, 5).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(100.0))
	mock.ExpectQuery(`INSERT INTO "wallet_transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	debit, err := repo.Withdraw(5, 75)
	require.NoError(t, err)
	assert.Equal(t, ds.WalletWithdrawal, debit.Category)
	assert.Equal(t, 75.0, debit.Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdrawInsufficientBalance(t *testing.T) {
	repo, mock := newMockRepository(t)

	// Баланс пересчитывается внутри транзакции, дебет не создается
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(CASE WHEN category = \$1 THEN amount ELSE -amount END\), 0\) FROM "wallet_transactions" WHERE agent_id = \$2`).
		WithArgs(ds.WalletCommission, 5).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(50.0))
	mock.ExpectRollback()

	_, err := repo.Withdraw(5, 75)
	assert.ErrorIs(t, err, lifecycle.ErrInsufficientBalance)
	assert.NoError(t, mock.ExpectationsWereMet())
}
