package repository

import (
	"sevakendra/internal/app/ds"
)

// Методы для журнала переходов статуса.
// Записи создаются только внутри applyTransition, здесь - только чтение.

// Журнал одной заявки в хронологическом порядке
func (r *Repository) GetRequestStatusLogs(requestID uint) ([]ds.StatusLog, error) {
	var logs []ds.StatusLog
	err := r.db.Preload("Actor").Where("request_id = ?", requestID).Order("changed_at").Find(&logs).Error
	return logs, err
}

// Весь журнал (для администратора), новые записи первыми
func (r *Repository) GetStatusLogs() ([]ds.StatusLog, error) {
	var logs []ds.StatusLog
	err := r.db.Preload("Actor").Order("changed_at DESC").Find(&logs).Error
	return logs, err
}

// Журнал по заявкам пользователя (клиент видит свои заявки,
// агент - оформленные им)
func (r *Repository) GetStatusLogsForUser(userID uint) ([]ds.StatusLog, error) {
	var logs []ds.StatusLog
	err := r.db.Preload("Actor").
		Joins("JOIN service_requests ON service_requests.id = status_logs.request_id").
		Where("service_requests.customer_id = ? OR service_requests.agent_id = ?", userID, userID).
		Order("status_logs.changed_at DESC").
		Find(&logs).Error
	return logs, err
}
