package ds

// Таблица пользователей (клиенты, агенты киосков, администраторы)
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Login     string `gorm:"type:varchar(50);unique;not null"`
	Password  string `gorm:"type:varchar(255);not null"` // bcrypt-хеш
	FullName  string `gorm:"type:varchar(100)"`
	Role      int    `gorm:"type:int;default:0;not null"` // 0 - client, 1 - agent, 2 - admin
	IsBlocked bool   `gorm:"type:boolean;default:false;not null"`
}
