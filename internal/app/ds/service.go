package ds

// Таблица услуг (каталог) - ТОЛЬКО справочная информация.
// Цена и налог копируются в заявку при создании и дальше не пересчитываются,
// поэтому правки каталога на существующие заявки не влияют.
type Service struct {
	ID             uint    `gorm:"primaryKey"`
	Name           string  `gorm:"type:varchar(100);not null"`
	Category       string  `gorm:"type:varchar(50);not null"` // Identity, Travel, Tax, Transport
	Price          float64 `gorm:"type:decimal(10,2);not null"`
	TaxPercent     float64 `gorm:"type:decimal(5,2);default:18;not null"`
	CommissionRate float64 `gorm:"type:decimal(5,2);not null"` // процент комиссии агента
	IsDeleted      bool    `gorm:"type:boolean;default:false;not null"`

	Documents []ServiceDocument `gorm:"foreignKey:ServiceID"`
}

// Упорядоченный список обязательных документов услуги
type ServiceDocument struct {
	ID        uint   `gorm:"primaryKey"`
	ServiceID uint   `gorm:"not null;index;uniqueIndex:idx_service_document"`
	Name      string `gorm:"type:varchar(100);not null;uniqueIndex:idx_service_document"`
	Position  int    `gorm:"type:int;default:0;not null"`
}
