package main

import (
	"log"

	"sevakendra/internal/app/ds"
	"sevakendra/internal/app/dsn"
	"sevakendra/internal/app/role"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Загрузка переменных окружения из .env файла
	_ = godotenv.Load()

	// Получение DSN строки подключения
	dsnStr := dsn.FromEnv()
	if dsnStr == "" {
		log.Fatal("DSN string is empty. Check your .env file")
	}

	// Подключение к базе данных
	db, err := gorm.Open(postgres.Open(dsnStr), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Connected to database successfully")

	// Миграция всех моделей
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
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Println("Database migration completed successfully")

	if err := seedCatalog(db); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}
	if err := seedAdmin(db); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	log.Println("Database seeding completed successfully")
}

type seedService struct {
	name           string
	category       string
	price          float64
	taxPercent     float64
	commissionRate float64
	documents      []string
}

// Начальный каталог услуг
var catalog = []seedService{
	{"PAN Card", "Identity", 500, 18, 15, []string{"ID Proof", "Address Proof", "Passport Photo"}},
	{"Aadhaar Update", "Identity", 200, 18, 12, []string{"Aadhaar Card", "Address Proof"}},
	{"Passport Application", "Travel", 1500, 18, 10, []string{"ID Proof", "Address Proof", "Birth Certificate", "Passport Photo"}},
	{"Income Tax Filing", "Tax", 999, 18, 18, []string{"PAN Card", "Form 16", "Bank Statement"}},
	{"GST Registration", "Tax", 2000, 18, 15, []string{"PAN Card", "Address Proof", "Bank Statement", "Business Proof"}},
	{"Driving License Renewal", "Transport", 600, 18, 12, []string{"Driving License", "Address Proof", "Passport Photo"}},
}

func seedCatalog(db *gorm.DB) error {
	for _, s := range catalog {
		var count int64
		if err := db.Model(&ds.Service{}).Where("name = ?", s.name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		service := ds.Service{
			Name:           s.name,
			Category:       s.category,
			Price:          s.price,
			TaxPercent:     s.taxPercent,
			CommissionRate: s.commissionRate,
		}
		for i, doc := range s.documents {
			service.Documents = append(service.Documents, ds.ServiceDocument{
				Name:     doc,
				Position: i,
			})
		}
		if err := db.Create(&service).Error; err != nil {
			return err
		}
		log.Printf("Seeded service: %s", s.name)
	}
	return nil
}

func seedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&ds.User{}).Where("role = ?", int(role.Admin)).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := ds.User{
		Login:    "admin",
		Password: string(hashed),
		FullName: "Administrator",
		Role:     int(role.Admin),
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("Seeded admin user (login: admin)")
	return nil
}
