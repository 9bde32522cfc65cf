package handler

import (
	"errors"
	"fmt"
	"net/http"

	"sevakendra/internal/app/ds"
	"sevakendra/internal/app/dto"
	"sevakendra/internal/app/lifecycle"
	"sevakendra/internal/app/repository"
	"sevakendra/internal/app/role"
	"sevakendra/internal/app/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// APIHandler содержит обработчики для REST API
type APIHandler struct {
	Repository  *repository.Repository
	MinIOClient *storage.MinIOClient
	AuthHandler *AuthHandler
}

func NewAPIHandler(r *repository.Repository, minioClient *storage.MinIOClient, authHandler *AuthHandler) *APIHandler {
	return &APIHandler{
		Repository:  r,
		MinIOClient: minioClient,
		AuthHandler: authHandler,
	}
}

// Получение текущего пользователя из контекста
func (h *APIHandler) getUserFromContext(c *gin.Context) (uint, role.Role, error) {
	userID, exists := c.Get("userID")
	if !exists {
		logrus.Warn("userID not found in context")
		return 0, role.Client, fmt.Errorf("user not authenticated")
	}

	userRole, _ := c.Get("userRole")
	r, _ := userRole.(role.Role)

	id, ok := userID.(uint)
	if !ok {
		logrus.Errorf("getUserFromContext: invalid userID type: %T", userID)
		return 0, r, fmt.Errorf("invalid user ID")
	}

	return id, r, nil
}

// ============ Вспомогательные функции ============

func (h *APIHandler) errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{
		Status:  "fail",
		Message: message,
	})
}

func (h *APIHandler) successResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	response := dto.SuccessResponse{
		Status:  "success",
		Message: message,
	}
	if data != nil {
		response.Data = data
	}
	c.JSON(statusCode, response)
}

// domainStatusCode сопоставляет доменные ошибки жизненного цикла HTTP-кодам
func domainStatusCode(err error) int {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, lifecycle.ErrInvalidTransition),
		errors.Is(err, lifecycle.ErrConcurrentModification),
		errors.Is(err, lifecycle.ErrAlreadyFinalized),
		errors.Is(err, lifecycle.ErrCannotRemoveFinalized):
		return http.StatusConflict
	case errors.Is(err, lifecycle.ErrAmountMismatch),
		errors.Is(err, lifecycle.ErrUnknownDocumentName),
		errors.Is(err, lifecycle.ErrDocumentsIncomplete),
		errors.Is(err, lifecycle.ErrRequestNotPayable),
		errors.Is(err, lifecycle.ErrInsufficientBalance):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *APIHandler) domainError(c *gin.Context, err error) {
	code := domainStatusCode(err)
	if code == http.StatusInternalServerError {
		logrus.Error(err)
		h.errorResponse(c, code, "внутренняя ошибка сервера")
		return
	}
	h.errorResponse(c, code, err.Error())
}

// ============ Преобразование моделей в DTO ============

func toServiceResponse(s ds.Service) dto.ServiceResponse {
	docs := make([]string, len(s.Documents))
	for i, d := range s.Documents {
		docs[i] = d.Name
	}
	return dto.ServiceResponse{
		ID:                s.ID,
		Name:              s.Name,
		Category:          s.Category,
		Price:             s.Price,
		TaxPercent:        s.TaxPercent,
		CommissionRate:    s.CommissionRate,
		RequiredDocuments: docs,
	}
}

func toRequestResponse(r ds.ServiceRequest) dto.RequestResponse {
	agent := ""
	if r.Agent != nil {
		agent = r.Agent.Login
	}
	return dto.RequestResponse{
		ID:            r.ID,
		ServiceID:     r.ServiceID,
		ServiceName:   r.Service.Name,
		Customer:      r.Customer.Login,
		Agent:         agent,
		Status:        r.Status,
		PaymentStatus: r.PaymentStatus,
		PriceSnapshot: r.PriceSnapshot,
		TaxSnapshot:   r.TaxSnapshot,
		TotalSnapshot: r.TotalSnapshot,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func toDocumentResponse(d ds.Document) dto.DocumentResponse {
	reason := ""
	if d.RejectionReason != nil {
		reason = *d.RejectionReason
	}
	return dto.DocumentResponse{
		ID:              d.ID,
		RequestID:       d.RequestID,
		DocumentName:    d.DocumentName,
		UploadedBy:      d.UploadedBy,
		Verification:    d.Verification,
		RejectionReason: reason,
		FileRef:         d.FileRef,
		ContentType:     d.ContentType,
		CreatedAt:       d.CreatedAt,
	}
}

func toPaymentResponse(p ds.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:               p.ID,
		RequestID:        p.RequestID,
		Amount:           p.Amount,
		Method:           p.Method,
		Status:           p.Status,
		TransactionID:    p.TransactionID,
		ReferenceNumber:  p.ReferenceNumber,
		CommissionEarned: p.CommissionEarned,
		CreatedAt:        p.CreatedAt,
	}
}

func toStatusLogResponse(l ds.StatusLog) dto.StatusLogResponse {
	return dto.StatusLogResponse{
		ID:        l.ID,
		RequestID: l.RequestID,
		OldStatus: l.OldStatus,
		NewStatus: l.NewStatus,
		ChangedBy: l.Actor.Login,
		ChangedAt: l.ChangedAt,
	}
}

func toUserResponse(u ds.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Login:     u.Login,
		FullName:  u.FullName,
		Role:      role.Role(u.Role).String(),
		IsBlocked: u.IsBlocked,
	}
}
