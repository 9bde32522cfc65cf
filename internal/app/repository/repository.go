package repository

import (
	"fmt"

	"sevakendra/internal/app/ds"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func New(dsn string) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Автоматическая миграция всех таблиц
	err = db.AutoMigrate(
		&ds.User{},
		&ds.Service{},
		&ds.ServiceDocument{},
		&ds.ServiceRequest{},
		&ds.Document{},
		&ds.Payment{},
		&ds.StatusLog{},
		&ds.WalletTransaction{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{
		db: db,
	}, nil
}

// NewFromDB оборачивает готовое подключение (используется в тестах)
func NewFromDB(db *gorm.DB) *Repository {
	return &Repository{db: db}
}
