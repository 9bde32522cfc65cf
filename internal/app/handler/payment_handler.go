package handler

import (
	"net/http"

	"sevakendra/internal/app/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН ПЛАТЕЖИ ============

// PayRequest оплачивает заявку
// @Summary Оплата заявки
// @Description Принимает платёж на точную сумму total_snapshot; заявка переходит в in_progress
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Param request body dto.PayRequest true "Способ и сумма оплаты"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/requests/{id}/pay [post]
func (h *APIHandler) PayRequest(c *gin.Context) {
	userID, userRole, err := h.getUserFromContext(c)
	if err != nil || userID == 0 {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	requestID, ok := h.requestIDFromPath(c)
	if !ok {
		return
	}

	request, err := h.Repository.GetRequestByID(requestID)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Заявка не найдена")
		return
	}
	if !canViewRequest(request, userID, userRole) {
		h.errorResponse(c, http.StatusForbidden, "Нет доступа к заявке")
		return
	}

	var req dto.PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	payment, err := h.Repository.PayRequest(requestID, req.Method, req.Amount, userID)
	if err != nil {
		h.domainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toPaymentResponse(*payment))
}

// GetPayments получает список всех платежей
// @Summary Получение списка платежей
// @Description Возвращает все платежи с опциональным фильтром по статусу (только для администратора)
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param status query string false "Фильтр по статусу платежа"
// @Success 200 {object} dto.PaymentListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/payments [get]
func (h *APIHandler) GetPayments(c *gin.Context) {
	status := c.Query("status")

	payments, err := h.Repository.GetPayments(status)
	if err != nil {
		logrus.Error("Error getting payments: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения платежей")
		return
	}

	dtoPayments := make([]dto.PaymentResponse, len(payments))
	for i, p := range payments {
		dtoPayments[i] = toPaymentResponse(p)
	}

	c.JSON(http.StatusOK, dto.PaymentListResponse{
		Payments: dtoPayments,
		Total:    len(dtoPayments),
	})
}
