package repository

import (
	"time"

	"sevakendra/internal/app/ds"
	"sevakendra/internal/app/lifecycle"

	"gorm.io/gorm"
)

// Методы для кошелька агента.
// Баланс нигде не хранится как число - это всегда проекция по append-only
// таблице операций: сумма комиссий минус сумма выводов.

// Баланс кошелька агента
func (r *Repository) WalletBalance(agentID uint) (float64, error) {
	return walletBalance(r.db, agentID)
}

func walletBalance(db *gorm.DB, agentID uint) (float64, error) {
	var balance float64
	err := db.Model(&ds.WalletTransaction{}).
		Select("COALESCE(SUM(CASE WHEN category = ? THEN amount ELSE -amount END), 0)", ds.WalletCommission).
		Where("agent_id = ?", agentID).
		Scan(&balance).Error
	return balance, err
}

// Операции кошелька агента, новые первыми
func (r *Repository) GetWalletTransactions(agentID uint) ([]ds.WalletTransaction, error) {
	var transactions []ds.WalletTransaction
	err := r.db.Where("agent_id = ?", agentID).Order("created_at DESC").Find(&transactions).Error
	return transactions, err
}

// Вывод средств агентом. Баланс пересчитывается внутри транзакции,
// дебет добавляется только если средств хватает.
func (r *Repository) Withdraw(agentID uint, amount float64) (*ds.WalletTransaction, error) {
	var debit ds.WalletTransaction

	err := r.db.Transaction(func(tx *gorm.DB) error {
		balance, err := walletBalance(tx, agentID)
		if err != nil {
			return err
		}
		if amount > balance {
			return lifecycle.ErrInsufficientBalance
		}

		debit = ds.WalletTransaction{
			AgentID:   agentID,
			Category:  ds.WalletWithdrawal,
			Amount:    amount,
			CreatedAt: time.Now(),
		}
		return tx.Create(&debit).Error
	})
	if err != nil {
		return nil, err
	}
	return &debit, nil
}
