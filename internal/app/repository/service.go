package repository

import (
	"errors"

	"sevakendra/internal/app/ds"
	"sevakendra/internal/app/lifecycle"

	"gorm.io/gorm"
)

// Методы для работы с каталогом услуг

// ErrServiceInUse возвращается при попытке изменить цену, налог, комиссию
// или список документов услуги, на которую ссылаются незавершённые заявки
var ErrServiceInUse = errors.New("услуга используется активными заявками, изменение запрещено")

// Получить услуги с поиском по названию и фильтром по категории
func (r *Repository) GetServices(search, category string) ([]ds.Service, error) {
	query := r.db.Preload("Documents", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).Where("is_deleted = ?", false)

	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var services []ds.Service
	err := query.Order("id").Find(&services).Error
	return services, err
}

// Получить услугу по ID (только не удалённую)
func (r *Repository) GetServiceByID(id uint) (*ds.Service, error) {
	var service ds.Service
	err := r.db.Preload("Documents", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).Where("id = ? AND is_deleted = ?", id, false).First(&service).Error
	if err != nil {
		return nil, err
	}
	return &service, nil
}

// Проверить существование услуги
func (r *Repository) ServiceExists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&ds.Service{}).Where("id = ? AND is_deleted = ?", id, false).Count(&count).Error
	return count > 0, err
}

// Создать услугу вместе со списком обязательных документов
func (r *Repository) CreateService(name, category string, price, taxPercent, commissionRate float64, documents []string) (*ds.Service, error) {
	service := ds.Service{
		Name:           name,
		Category:       category,
		Price:          price,
		TaxPercent:     taxPercent,
		CommissionRate: commissionRate,
	}
	for i, doc := range documents {
		service.Documents = append(service.Documents, ds.ServiceDocument{
			Name:     doc,
			Position: i,
		})
	}

	err := r.db.Create(&service).Error
	if err != nil {
		return nil, err
	}
	return &service, nil
}

// Обновить услугу. Завершённые заявки хранят снимки цены/налога, но список
// обязательных документов и ставка комиссии читаются по ходу жизненного
// цикла, поэтому пока на услугу ссылаются незавершённые заявки, менять можно
// только название и категорию.
func (r *Repository) UpdateService(id uint, name, category *string, price, taxPercent, commissionRate *float64, documents []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if price != nil || taxPercent != nil || commissionRate != nil || documents != nil {
			var count int64
			err := tx.Model(&ds.ServiceRequest{}).
				Where("service_id = ? AND status NOT IN ?", id, []string{
					string(lifecycle.StatusCompleted),
					string(lifecycle.StatusRejected),
				}).
				Count(&count).Error
			if err != nil {
				return err
			}
			if count > 0 {
				return ErrServiceInUse
			}
		}

		updates := map[string]interface{}{}
		if name != nil {
			updates["name"] = *name
		}
		if category != nil {
			updates["category"] = *category
		}
		if price != nil {
			updates["price"] = *price
		}
		if taxPercent != nil {
			updates["tax_percent"] = *taxPercent
		}
		if commissionRate != nil {
			updates["commission_rate"] = *commissionRate
		}

		if len(updates) > 0 {
			if err := tx.Model(&ds.Service{}).Where("id = ? AND is_deleted = ?", id, false).Updates(updates).Error; err != nil {
				return err
			}
		}

		// Список документов заменяется целиком
		if documents != nil {
			if err := tx.Where("service_id = ?", id).Delete(&ds.ServiceDocument{}).Error; err != nil {
				return err
			}
			for i, doc := range documents {
				record := ds.ServiceDocument{ServiceID: id, Name: doc, Position: i}
				if err := tx.Create(&record).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Логическое удаление услуги
func (r *Repository) DeleteService(id uint) error {
	result := r.db.Model(&ds.Service{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("услуга не найдена или уже удалена")
	}
	return nil
}

// Список обязательных документов услуги в порядке позиций
func (r *Repository) RequiredDocumentNames(serviceID uint) ([]string, error) {
	var docs []ds.ServiceDocument
	err := r.db.Where("service_id = ?", serviceID).Order("position").Find(&docs).Error
	if err != nil {
		return nil, err
	}

	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}
	return names, nil
}
