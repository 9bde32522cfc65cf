package ds

import "time"

// Категории операций кошелька агента
const (
	WalletCommission = "commission" // кредит: комиссия за завершённую заявку
	WalletWithdrawal = "withdrawal" // дебет: вывод средств агентом
)

// Операция кошелька агента. Баланс отдельным полем НЕ хранится - он всегда
// считается как сумма по этой append-only таблице, иначе параллельные
// начисления комиссии теряют обновления.
type WalletTransaction struct {
	ID        uint    `gorm:"primaryKey"`
	AgentID   uint    `gorm:"not null;index"`
	Category  string  `gorm:"type:varchar(20);not null"` // commission, withdrawal
	Amount    float64 `gorm:"type:decimal(12,2);not null"`
	RequestID *uint   `gorm:"default:null"` // заявка-источник для комиссии

	CreatedAt time.Time `gorm:"not null"`

	Agent User `gorm:"foreignKey:AgentID"`
}
