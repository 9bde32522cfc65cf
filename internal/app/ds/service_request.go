package ds

import "time"

// Таблица заявок - центральная сущность.
// Заявка никогда не удаляется, только доводится до терминального статуса
// (completed/rejected). Все изменения статуса идут через таблицу переходов
// в пакете lifecycle, каждый переход пишет запись в status_logs.
type ServiceRequest struct {
	ID         uint  `gorm:"primaryKey"`
	ServiceID  uint  `gorm:"not null;index"`
	CustomerID uint  `gorm:"not null;index"`
	AgentID    *uint `gorm:"default:null;index"` // агент, оформивший заявку за клиента

	Status        string `gorm:"type:varchar(30);not null;index"`
	PaymentStatus string `gorm:"type:varchar(10);default:'unpaid';not null"` // unpaid, paid

	// Снимки с услуги на момент создания заявки, дальше не пересчитываются
	PriceSnapshot float64 `gorm:"type:decimal(12,2);not null"`
	TaxSnapshot   float64 `gorm:"type:decimal(12,2);not null"`
	TotalSnapshot float64 `gorm:"type:decimal(12,2);not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Service  Service `gorm:"foreignKey:ServiceID"`
	Customer User    `gorm:"foreignKey:CustomerID"`
	Agent    *User   `gorm:"foreignKey:AgentID"`
}
