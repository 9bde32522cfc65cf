package repository

import (
	"errors"
	"time"

	"sevakendra/internal/app/ds"
	"sevakendra/internal/app/lifecycle"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Методы для платежей

// Оплатить заявку. Guard'ы: заявка в статусе awaiting_payment, сумма в
// точности равна total_snapshot, completed-платежа по заявке ещё нет.
// При успехе в одной транзакции создается платеж, заявка переводится в
// in_progress с payment_status=paid и пишется запись журнала.
// Попытка оплаты с неверной суммой фиксируется записью со статусом failed.
func (r *Repository) PayRequest(requestID uint, method string, amount float64, payerID uint) (*ds.Payment, error) {
	var payment ds.Payment

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var request ds.ServiceRequest
		if err := tx.First(&request, requestID).Error; err != nil {
			return err
		}

		if err := lifecycle.CheckPayment(lifecycle.Status(request.Status), amount, request.TotalSnapshot); err != nil {
			return err
		}

		// Инвариант: не более одного completed-платежа на заявку
		var count int64
		if err := tx.Model(&ds.Payment{}).
			Where("request_id = ? AND status = ?", request.ID, lifecycle.PaymentStatusCompleted).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return lifecycle.ErrRequestNotPayable
		}

		// Комиссия агента фиксируется в платеже справочно,
		// начисление в кошелёк происходит при завершении заявки
		commission := 0.0
		if request.AgentID != nil {
			var service ds.Service
			if err := tx.First(&service, request.ServiceID).Error; err != nil {
				return err
			}
			commission = lifecycle.Commission(request.PriceSnapshot, service.CommissionRate)
		}

		payment = ds.Payment{
			RequestID:        request.ID,
			Amount:           amount,
			Method:           method,
			Status:           lifecycle.PaymentStatusCompleted,
			TransactionID:    "pay_" + uuid.New().String(),
			ReferenceNumber:  "order_" + uuid.New().String(),
			CommissionEarned: commission,
			CreatedAt:        time.Now(),
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		return r.applyTransition(tx, &request, lifecycle.EventPaymentCompleted, payerID, map[string]interface{}{
			"payment_status": lifecycle.PaymentPaid,
		})
	})
	if errors.Is(err, lifecycle.ErrAmountMismatch) {
		failed := ds.Payment{
			RequestID:       requestID,
			Amount:          amount,
			Method:          method,
			Status:          lifecycle.PaymentStatusFailed,
			TransactionID:   "pay_" + uuid.New().String(),
			ReferenceNumber: "order_" + uuid.New().String(),
			CreatedAt:       time.Now(),
		}
		if createErr := r.db.Create(&failed).Error; createErr != nil {
			logrus.Error("Error recording failed payment: ", createErr)
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// Платежи по заявке
func (r *Repository) GetRequestPayments(requestID uint) ([]ds.Payment, error) {
	var payments []ds.Payment
	err := r.db.Where("request_id = ?", requestID).Order("created_at").Find(&payments).Error
	return payments, err
}

// Все платежи (для администратора), с опциональным фильтром по статусу
func (r *Repository) GetPayments(status string) ([]ds.Payment, error) {
	query := r.db.Preload("Request").Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var payments []ds.Payment
	err := query.Find(&payments).Error
	return payments, err
}
