package ds

import "time"

// Журнал переходов статуса заявки. Append-only: ровно одна запись на каждый
// переход, записи не изменяются и не удаляются.
type StatusLog struct {
	ID        uint      `gorm:"primaryKey"`
	RequestID uint      `gorm:"not null;index"`
	OldStatus string    `gorm:"type:varchar(30);not null"`
	NewStatus string    `gorm:"type:varchar(30);not null"`
	ChangedBy uint      `gorm:"not null"`
	ChangedAt time.Time `gorm:"not null"`

	Request ServiceRequest `gorm:"foreignKey:RequestID"`
	Actor   User           `gorm:"foreignKey:ChangedBy"`
}
