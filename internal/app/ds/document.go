package ds

import "time"

// Загруженный документ заявки. Привязан к одному имени из списка обязательных
// документов услуги. После решения администратора (approved/rejected) запись
// не редактируется и не удаляется: исправление - это новая загрузка.
type Document struct {
	ID              uint      `gorm:"primaryKey"`
	RequestID       uint      `gorm:"not null;index"`
	DocumentName    string    `gorm:"type:varchar(100);not null"`
	UploadedBy      uint      `gorm:"not null"`
	VerifiedBy      *uint     `gorm:"default:null"`
	Verification    string    `gorm:"type:varchar(10);default:'pending';not null"` // pending, approved, rejected
	RejectionReason *string   `gorm:"type:text;default:null"`
	FileRef         string    `gorm:"type:varchar(255);not null"` // имя объекта в MinIO
	ContentType     string    `gorm:"type:varchar(100);not null"`
	CreatedAt       time.Time `gorm:"not null"`

	Request ServiceRequest `gorm:"foreignKey:RequestID"`
}
