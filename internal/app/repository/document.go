package repository

import (
	"time"

	"sevakendra/internal/app/ds"
	"sevakendra/internal/app/lifecycle"

	"gorm.io/gorm"
)

// Методы для документов заявки

// Загрузить документ. Разрешено только для одобренной заявки и только для
// имени из списка обязательных документов услуги. Документ создается в
// статусе pending, статус заявки не меняется.
func (r *Repository) UploadDocument(requestID uint, documentName, fileRef, contentType string, uploaderID uint) (*ds.Document, error) {
	var document ds.Document

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var request ds.ServiceRequest
		if err := tx.First(&request, requestID).Error; err != nil {
			return err
		}

		if lifecycle.Status(request.Status) != lifecycle.StatusApproved {
			return lifecycle.ErrInvalidTransition
		}

		var required []ds.ServiceDocument
		if err := tx.Where("service_id = ?", request.ServiceID).Find(&required).Error; err != nil {
			return err
		}
		names := make([]string, len(required))
		for i, d := range required {
			names[i] = d.Name
		}
		if !lifecycle.KnownDocumentName(names, documentName) {
			return lifecycle.ErrUnknownDocumentName
		}

		document = ds.Document{
			RequestID:    request.ID,
			DocumentName: documentName,
			UploadedBy:   uploaderID,
			Verification: string(lifecycle.VerificationPending),
			FileRef:      fileRef,
			ContentType:  contentType,
			CreatedAt:    time.Now(),
		}
		return tx.Create(&document).Error
	})
	if err != nil {
		return nil, err
	}
	return &document, nil
}

func (r *Repository) GetDocumentByID(id uint) (*ds.Document, error) {
	var document ds.Document
	err := r.db.First(&document, id).Error
	if err != nil {
		return nil, err
	}
	return &document, nil
}

// Документы заявки в порядке загрузки
func (r *Repository) GetRequestDocuments(requestID uint) ([]ds.Document, error) {
	var documents []ds.Document
	err := r.db.Where("request_id = ?", requestID).Order("created_at").Find(&documents).Error
	return documents, err
}

// Решение администратора по документу. Документ с уже принятым решением
// неизменяем: повторная верификация отклоняется. Отклонить документ можно
// только пока заявка в статусе approved: после перехода в awaiting_payment
// дозагрузка невозможна, и отклонение сделало бы комплект невосполнимым.
func (r *Repository) VerifyDocument(documentID, adminID uint, approve bool, reason *string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var document ds.Document
		if err := tx.First(&document, documentID).Error; err != nil {
			return err
		}

		if lifecycle.VerificationStatus(document.Verification) != lifecycle.VerificationPending {
			return lifecycle.ErrAlreadyFinalized
		}

		if !approve {
			var request ds.ServiceRequest
			if err := tx.First(&request, document.RequestID).Error; err != nil {
				return err
			}
			if lifecycle.Status(request.Status) != lifecycle.StatusApproved {
				return lifecycle.ErrInvalidTransition
			}
		}

		verification := lifecycle.VerificationApproved
		if !approve {
			verification = lifecycle.VerificationRejected
		}

		updates := map[string]interface{}{
			"verification": string(verification),
			"verified_by":  adminID,
		}
		if !approve {
			updates["rejection_reason"] = reason
		}

		result := tx.Model(&ds.Document{}).
			Where("id = ? AND verification = ?", documentID, string(lifecycle.VerificationPending)).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return lifecycle.ErrConcurrentModification
		}
		return nil
	})
}

// Удалить документ. Разрешено только пока решение не принято.
// Возвращает имя файла в хранилище, чтобы вызывающий удалил и его.
func (r *Repository) RemoveDocument(documentID uint) (string, error) {
	var fileRef string

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var document ds.Document
		if err := tx.First(&document, documentID).Error; err != nil {
			return err
		}

		if lifecycle.VerificationStatus(document.Verification) != lifecycle.VerificationPending {
			return lifecycle.ErrCannotRemoveFinalized
		}

		fileRef = document.FileRef
		return tx.Delete(&ds.Document{}, documentID).Error
	})
	if err != nil {
		return "", err
	}
	return fileRef, nil
}
