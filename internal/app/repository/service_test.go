package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateServicePriceBlockedWhileInUse(t *testing.T) {
	repo, mock := newMockRepository(t)

	// На услугу ссылается незавершённая заявка: цена не меняется
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "service_requests" WHERE service_id = \$1 AND status NOT IN \(\$2,\$3\)`).
		WithArgs(1, "completed", "rejected").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	price := 700.0
	err := repo.UpdateService(1, nil, nil, &price, nil, nil, nil)
	assert.ErrorIs(t, err, ErrServiceInUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateServiceDocumentsBlockedWhileInUse(t *testing.T) {
	repo, mock := newMockRepository(t)

	// Замена списка документов изменила бы guard комплектности для
	// незавершённых заявок
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "service_requests" WHERE service_id = \$1 AND status NOT IN \(\$2,\$3\)`).
		WithArgs(1, "completed", "rejected").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectRollback()

	err := repo.UpdateService(1, nil, nil, nil, nil, nil, []string{"ID Proof"})
	assert.ErrorIs(t, err, ErrServiceInUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateServiceNameWhileInUse(t *testing.T) {
	repo, mock := newMockRepository(t)

	// Название и категория на жизненный цикл заявок не влияют
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "services" SET .+ WHERE id = \$\d+ AND is_deleted = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	name := "PAN Card (Express)"
	err := repo.UpdateService(1, &name, nil, nil, nil, nil, nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateServicePriceWhenOnlyTerminalReferences(t *testing.T) {
	repo, mock := newMockRepository(t)

	// Все ссылающиеся заявки завершены: снимки уже зафиксированы,
	// правка каталога их не затрагивает
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "service_requests" WHERE service_id = \$1 AND status NOT IN \(\$2,\$3\)`).
		WithArgs(1, "completed", "rejected").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`UPDATE "services" SET .+ WHERE id = \$\d+ AND is_deleted = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	price := 700.0
	err := repo.UpdateService(1, nil, nil, &price, nil, nil, nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
