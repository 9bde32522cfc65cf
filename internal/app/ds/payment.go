package ds

import "time"

// Платеж по заявке. Запись неизменяемая: неудачная попытка оплаты - это
// новая запись со статусом failed, а не правка существующей.
// На заявку допускается не более одного платежа со статусом completed,
// и его сумма всегда равна total_snapshot заявки.
type Payment struct {
	ID               uint    `gorm:"primaryKey"`
	RequestID        uint    `gorm:"not null;index"`
	Amount           float64 `gorm:"type:decimal(12,2);not null"`
	Method           string  `gorm:"type:varchar(20);not null"` // Cash, Wallet, UPI, Card
	Status           string  `gorm:"type:varchar(10);not null"` // completed, failed
	TransactionID    string  `gorm:"type:varchar(64);not null"` // внешний id платежного шлюза
	ReferenceNumber  string  `gorm:"type:varchar(64);not null"`
	CommissionEarned float64 `gorm:"type:decimal(12,2);default:0;not null"` // комиссия агента с базовой цены

	CreatedAt time.Time `gorm:"not null"`

	Request ServiceRequest `gorm:"foreignKey:RequestID"`
}
