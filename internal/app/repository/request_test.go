package repository

import (
	"testing"
	"time"

	"sevakendra/internal/app/lifecycle"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return NewFromDB(gdb), mock
}

func requestColumns() []string {
	return []string{
		"id", "service_id", "customer_id", "agent_id",
		"status", "payment_status",
		"price_snapshot", "tax_snapshot", "total_snapshot",
		"created_at", "updated_at",
	}
}

func requestRow(id uint, status string, total float64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(requestColumns()).
		AddRow(id, 1, 2, nil, status, lifecycle.PaymentUnpaid, 500.0, 90.0, total, now, now)
}

func TestCreateRequestSnapshots(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "services" WHERE id = \$1 AND is_deleted = \$2`).
		WithArgs(1, false, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category", "price", "tax_percent", "commission_rate", "is_deleted"}).
			AddRow(1, "PAN Card", "Identity", 500.0, 18.0, 15.0, false))
	mock.ExpectQuery(`INSERT INTO "service_requests"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	request, err := repo.CreateRequest(1, 2, nil)
	require.NoError(t, err)

	// Снимки фиксируются при создании: цена, налог 18% и итог
	assert.Equal(t, string(lifecycle.StatusPendingAdminApproval), request.Status)
	assert.Equal(t, lifecycle.PaymentUnpaid, request.PaymentStatus)
	assert.Equal(t, 500.0, request.PriceSnapshot)
	assert.Equal(t, 90.0, request.TaxSnapshot)
	assert.Equal(t, 590.0, request.TotalSnapshot)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveRequest(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "service_requests" WHERE "service_requests"\."id" = \$1`).
		WithArgs(1, 1).
		WillReturnRows(requestRow(1, string(lifecycle.StatusPendingAdminApproval), 590))
	mock.ExpectExec(`UPDATE "service_requests" SET .+ WHERE id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "status_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.ApproveRequest(1, 10)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveRequestConcurrentModification(t *testing.T) {
	repo, mock := newMockRepository(t)

	// Между чтением и обновлением статус изменил кто-то другой:
	// UPDATE с предикатом по статусу не затрагивает ни одной строки
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "service_requests" WHERE "service_requests"\."id" = \$1`).
		WithArgs(1, 1).
		WillReturnRows(requestRow(1, string(lifecycle.StatusPendingAdminApproval), 590))
	mock.ExpectExec(`UPDATE "service_requests" SET .+ WHERE id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.ApproveRequest(1, 10)
	assert.ErrorIs(t, err, lifecycle.ErrConcurrentModification)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveRequestFromWrongStatus(t *testing.T) {
	repo, mock := newMockRepository(t)

	// Заявка уже одобрена: до UPDATE дело не доходит
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "service_requests" WHERE "service_requests"\."id" = \$1`).
		WithArgs(1, 1).
		WillReturnRows(requestRow(1, string(lifecycle.StatusApproved), 590))
	mock.ExpectRollback()

	err := repo.ApproveRequest(1, 10)
	assert.ErrorIs(t, err, lifecycle.ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRejectCompletedRequest(t *testing.T) {
	repo, mock := newMockRepository(t)

	// Терминальная заявка не отклоняется
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "service_requests" WHERE "service_requests"\."id" = \$1`).
		WithArgs(1, 1).
		WillReturnRows(requestRow(1, string(lifecycle.StatusCompleted), 590))
	mock.ExpectRollback()

	err := repo.RejectRequest(1, 10)
	assert.ErrorIs(t, err, lifecycle.ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyRequestDocumentsIncomplete(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "service_requests" WHERE "service_requests"\."id" = \$1`).
		WithArgs(1, 1).
		WillReturnRows(requestRow(1, string(lifecycle.StatusApproved), 590))
	mock.ExpectQuery(`SELECT \* FROM "service_documents" WHERE service_id = \$1`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "service_id", "name", "position"}).
			AddRow(1, 1, "ID Proof", 0).
			AddRow(2, 1, "Address Proof", 1))
	// Загружен только один документ из двух, вторая загрузка отклонена
	mock.ExpectQuery(`SELECT \* FROM "documents" WHERE request_id = \$1`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "request_id", "document_name", "uploaded_by", "verified_by", "verification", "rejection_reason", "file_ref", "content_type", "created_at"}).
			AddRow(1, 1, "ID Proof", 2, nil, "approved", nil, "doc_a.pdf", "application/pdf", time.Now()).
			AddRow(2, 1, "Address Proof", 2, 10, "rejected", "нечитаемый скан", "doc_b.pdf", "application/pdf", time.Now()))
	mock.ExpectRollback()

	err := repo.VerifyRequestDocuments(1, 10)
	assert.ErrorIs(t, err, lifecycle.ErrDocumentsIncomplete)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteRequestCreditsAgentCommission(t *testing.T) {
	repo, mock := newMockRepository(t)

	now := time.Now()
	agentRequest := sqlmock.NewRows(requestColumns()).
		AddRow(1, 1, 2, 5, string(lifecycle.StatusInProgress), lifecycle.PaymentPaid, 500.0, 90.0, 590.0, now, now)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "service_requests" WHERE "service_requests"\."id" = \$1`).
		WithArgs(1, 1).
		WillReturnRows(agentRequest)
	mock.ExpectExec(`UPDATE "service_requests" SET .+ WHERE id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "status_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "services" WHERE "services"\."id" = \$1`).
		WithArgs(1, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category", "price", "tax_percent", "commission_rate", "is_deleted"}).
			AddRow(1, "PAN Card", "Identity", 500.0, 18.0, 15.0, false))
	// Комиссия 15% от базовой цены 500 = 75
	mock.ExpectQuery(`INSERT INTO "wallet_transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.CompleteRequest(1, 10)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteRequestWithoutAgent(t *testing.T) {
	repo, mock := newMockRepository(t)

	// Без агента комиссия не начисляется
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "service_requests" WHERE "service_requests"\."id" = \$1`).
		WithArgs(1, 1).
		WillReturnRows(requestRow(1, string(lifecycle.StatusInProgress), 590))
	mock.ExpectExec(`UPDATE "service_requests" SET .+ WHERE id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "status_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.CompleteRequest(1, 10)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyRequestDocumentsComplete(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "service_requests" WHERE "service_requests"\."id" = \$1`).
		WithArgs(1, 1).
		WillReturnRows(requestRow(1, string(lifecycle.StatusApproved), 590))
	mock.ExpectQuery(`SELECT \* FROM "service_documents" WHERE service_id = \$1`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "service_id", "name", "position"}).
			AddRow(1, 1, "ID Proof", 0))
	mock.ExpectQuery(`SELECT \* FROM "documents" WHERE request_id = \$1`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "request_id", "document_name", "uploaded_by", "verified_by", "verification", "rejection_reason", "file_ref", "content_type", "created_at"}).
			AddRow(1, 1, "ID Proof", 2, nil, "pending", nil, "doc_a.pdf", "application/pdf", time.Now()))
	mock.ExpectExec(`UPDATE "service_requests" SET .+ WHERE id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "status_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.VerifyRequestDocuments(1, 10)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
