package repository

import (
	"time"

	"sevakendra/internal/app/ds"
	"sevakendra/internal/app/lifecycle"

	"gorm.io/gorm"
)

// Методы для работы с заявками.
//
// Каждый переход статуса выполняется в транзакции по схеме:
// читаем заявку, проверяем переход по таблице lifecycle, затем
// UPDATE ... WHERE id = ? AND status = <прочитанный статус>.
// Ноль затронутых строк означает, что заявку параллельно изменил кто-то
// другой - операция откатывается с ErrConcurrentModification.
// Запись в status_logs добавляется в той же транзакции.

// Создать заявку. Цена, налог и итог копируются из услуги и больше
// никогда не пересчитываются.
func (r *Repository) CreateRequest(serviceID, customerID uint, agentID *uint) (*ds.ServiceRequest, error) {
	var request ds.ServiceRequest

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var service ds.Service
		if err := tx.Where("id = ? AND is_deleted = ?", serviceID, false).First(&service).Error; err != nil {
			return err
		}

		tax, total := lifecycle.Totals(service.Price, service.TaxPercent)
		now := time.Now()
		request = ds.ServiceRequest{
			ServiceID:     service.ID,
			CustomerID:    customerID,
			AgentID:       agentID,
			Status:        string(lifecycle.StatusPendingAdminApproval),
			PaymentStatus: lifecycle.PaymentUnpaid,
			PriceSnapshot: service.Price,
			TaxSnapshot:   tax,
			TotalSnapshot: total,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		return tx.Create(&request).Error
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// Получить заявку по ID со связанными сущностями
func (r *Repository) GetRequestByID(id uint) (*ds.ServiceRequest, error) {
	var request ds.ServiceRequest
	err := r.db.Preload("Service.Documents", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).Preload("Service").Preload("Customer").Preload("Agent").
		First(&request, id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// Получить заявки с фильтрами по статусу и датам создания.
// customerID/agentID задаются для ограничения выборки ролью вызывающего.
func (r *Repository) GetRequests(status string, dateFrom, dateTo *time.Time, customerID, agentID *uint) ([]ds.ServiceRequest, error) {
	query := r.db.Preload("Service").Preload("Customer").Preload("Agent")

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if dateFrom != nil {
		query = query.Where("created_at >= ?", *dateFrom)
	}
	if dateTo != nil {
		query = query.Where("created_at <= ?", *dateTo)
	}
	if customerID != nil {
		query = query.Where("customer_id = ?", *customerID)
	}
	if agentID != nil {
		query = query.Where("agent_id = ?", *agentID)
	}

	var requests []ds.ServiceRequest
	err := query.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

// applyTransition выполняет переход статуса с оптимистической проверкой
// и пишет запись в журнал. Вызывается только внутри транзакции.
func (r *Repository) applyTransition(tx *gorm.DB, request *ds.ServiceRequest, event lifecycle.Event, actorID uint, extra map[string]interface{}) error {
	next, err := lifecycle.Next(lifecycle.Status(request.Status), event)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"status":     string(next),
		"updated_at": time.Now(),
	}
	for k, v := range extra {
		updates[k] = v
	}

	result := tx.Model(&ds.ServiceRequest{}).
		Where("id = ? AND status = ?", request.ID, request.Status).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Статус успел измениться между чтением и обновлением
		return lifecycle.ErrConcurrentModification
	}

	log := ds.StatusLog{
		RequestID: request.ID,
		OldStatus: request.Status,
		NewStatus: string(next),
		ChangedBy: actorID,
		ChangedAt: time.Now(),
	}
	if err := tx.Create(&log).Error; err != nil {
		return err
	}

	request.Status = string(next)
	return nil
}

// Одобрить заявку (администратор)
func (r *Repository) ApproveRequest(requestID, adminID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var request ds.ServiceRequest
		if err := tx.First(&request, requestID).Error; err != nil {
			return err
		}
		return r.applyTransition(tx, &request, lifecycle.EventAdminApprove, adminID, nil)
	})
}

// Отклонить заявку (администратор, терминальный статус)
func (r *Repository) RejectRequest(requestID, adminID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var request ds.ServiceRequest
		if err := tx.First(&request, requestID).Error; err != nil {
			return err
		}
		return r.applyTransition(tx, &request, lifecycle.EventAdminReject, adminID, nil)
	})
}

// Проверить комплектность документов и перевести заявку в ожидание оплаты.
// Guard: для каждого обязательного документа услуги должна существовать
// хотя бы одна загрузка со статусом, отличным от rejected.
func (r *Repository) VerifyRequestDocuments(requestID, adminID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var request ds.ServiceRequest
		if err := tx.First(&request, requestID).Error; err != nil {
			return err
		}

		var required []ds.ServiceDocument
		if err := tx.Where("service_id = ?", request.ServiceID).Order("position").Find(&required).Error; err != nil {
			return err
		}
		names := make([]string, len(required))
		for i, d := range required {
			names[i] = d.Name
		}

		var uploaded []ds.Document
		if err := tx.Where("request_id = ?", request.ID).Find(&uploaded).Error; err != nil {
			return err
		}
		states := make([]lifecycle.DocumentState, len(uploaded))
		for i, d := range uploaded {
			states[i] = lifecycle.DocumentState{
				Name:         d.DocumentName,
				Verification: lifecycle.VerificationStatus(d.Verification),
			}
		}

		if missing := lifecycle.MissingDocuments(names, states); len(missing) > 0 {
			return lifecycle.ErrDocumentsIncomplete
		}

		return r.applyTransition(tx, &request, lifecycle.EventVerifyDocuments, adminID, nil)
	})
}

// Завершить заявку (администратор). Если заявку оформил агент, в той же
// транзакции ему начисляется комиссия с базовой цены (до налога).
func (r *Repository) CompleteRequest(requestID, adminID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var request ds.ServiceRequest
		if err := tx.First(&request, requestID).Error; err != nil {
			return err
		}

		if err := r.applyTransition(tx, &request, lifecycle.EventMarkComplete, adminID, nil); err != nil {
			return err
		}

		if request.AgentID == nil {
			return nil
		}

		var service ds.Service
		if err := tx.First(&service, request.ServiceID).Error; err != nil {
			return err
		}

		credit := ds.WalletTransaction{
			AgentID:   *request.AgentID,
			Category:  ds.WalletCommission,
			Amount:    lifecycle.Commission(request.PriceSnapshot, service.CommissionRate),
			RequestID: &request.ID,
			CreatedAt: time.Now(),
		}
		return tx.Create(&credit).Error
	})
}
