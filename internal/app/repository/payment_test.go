package repository

import (
	"testing"

	"sevakendra/internal/app/lifecycle"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayRequest(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "service_requests" WHERE "service_requests"\."id" = \$1`).
		WithArgs(1, 1).
		WillReturnRows(requestRow(1, string(lifecycle.StatusAwaitingPayment), 590))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "payments" WHERE request_id = \$1 AND status = \$2`).
		WithArgs(1, lifecycle.PaymentStatusCompleted).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "payments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(`UPDATE "service_requests" SET .+ WHERE id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "status_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	payment, err := repo.PayRequest(1, "UPI", 590, 2)
	require.NoError(t, err)
	assert.Equal(t, 590.0, payment.Amount)
	assert.Equal(t, lifecycle.PaymentStatusCompleted, payment.Status)
	assert.NotEmpty(t, payment.TransactionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayRequestAmountMismatch(t *testing.T) {
	repo, mock := newMockRepository(t)

	// Сумма должна совпадать с total_snapshot в точности;
	// неудачная попытка фиксируется отдельной записью failed
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "service_requests" WHERE "service_requests"\."id" = \$1`).
		WithArgs(1, 1).
		WillReturnRows(requestRow(1, string(lifecycle.StatusAwaitingPayment), 590))
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "payments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	_, err := repo.PayRequest(1, "UPI", 589, 2)
	assert.ErrorIs(t, err, lifecycle.ErrAmountMismatch)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayRequestNotAwaitingPayment(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "service_requests" WHERE "service_requests"\."id" = \$1`).
		WithArgs(1, 1).
		WillReturnRows(requestRow(1, string(lifecycle.StatusApproved), 590))
	mock.ExpectRollback()

	_, err := repo.PayRequest(1, "Cash", 590, 2)
	assert.ErrorIs(t, err, lifecycle.ErrRequestNotPayable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayRequestAlreadyPaid(t *testing.T) {
	repo, mock := newMockRepository(t)

	// По заявке уже есть completed-платёж
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "service_requests" WHERE "service_requests"\."id" = \$1`).
		WithArgs(1, 1).
		WillReturnRows(requestRow(1, string(lifecycle.StatusAwaitingPayment), 590))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "payments" WHERE request_id = \$1 AND status = \$2`).
		WithArgs(1, lifecycle.PaymentStatusCompleted).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, err := repo.PayRequest(1, "Card", 590, 2)
	assert.ErrorIs(t, err, lifecycle.ErrRequestNotPayable)
	assert.NoError(t, mock.ExpectationsWereMet())
}
