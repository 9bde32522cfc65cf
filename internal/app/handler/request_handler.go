package handler

import (
	"net/http"
	"strconv"
	"time"

	"sevakendra/internal/app/ds"
	"sevakendra/internal/app/dto"
	"sevakendra/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН ЗАЯВКИ ============

// CreateRequest создает заявку на услугу
// @Summary Создание заявки
// @Description Клиент подаёт заявку на себя; агент указывает customer_id клиента, за которого оформляет заявку
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateRequestRequest true "Данные заявки"
// @Success 201 {object} dto.RequestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/requests [post]
func (h *APIHandler) CreateRequest(c *gin.Context) {
	userID, userRole, err := h.getUserFromContext(c)
	if err != nil || userID == 0 {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	var req dto.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	// Клиент всегда заказчик своей заявки; агент оформляет за клиента
	customerID := userID
	var agentID *uint
	if userRole == role.Agent {
		if req.CustomerID == 0 {
			h.errorResponse(c, http.StatusBadRequest, "Агент должен указать клиента")
			return
		}
		customer, err := h.Repository.GetUserByID(req.CustomerID)
		if err != nil {
			h.errorResponse(c, http.StatusNotFound, "Клиент не найден")
			return
		}
		if role.Role(customer.Role) != role.Client {
			h.errorResponse(c, http.StatusBadRequest, "Указанный пользователь не является клиентом")
			return
		}
		customerID = req.CustomerID
		agentID = &userID
	}

	request, err := h.Repository.CreateRequest(req.ServiceID, customerID, agentID)
	if err != nil {
		h.domainError(c, err)
		return
	}

	full, err := h.Repository.GetRequestByID(request.ID)
	if err != nil {
		logrus.Error("Error loading created request: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка загрузки заявки")
		return
	}

	c.JSON(http.StatusCreated, toRequestResponse(*full))
}

// GetRequests получает список заявок
// @Summary Получение списка заявок
// @Description Клиент видит свои заявки, агент - оформленные им, администратор - все; фильтры по статусу и датам
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param status query string false "Фильтр по статусу"
// @Param date_from query string false "Дата начала (формат: 2006-01-02)"
// @Param date_to query string false "Дата окончания (формат: 2006-01-02)"
// @Success 200 {object} dto.RequestListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/requests [get]
func (h *APIHandler) GetRequests(c *gin.Context) {
	userID, userRole, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	status := c.Query("status")
	var dateFrom, dateTo *time.Time

	if s := c.Query("date_from"); s != "" {
		if parsed, err := time.Parse("2006-01-02", s); err == nil {
			dateFrom = &parsed
		}
	}
	if s := c.Query("date_to"); s != "" {
		if parsed, err := time.Parse("2006-01-02", s); err == nil {
			dateTo = &parsed
		}
	}

	// Ограничиваем выборку ролью
	var customerID, agentID *uint
	switch userRole {
	case role.Client:
		customerID = &userID
	case role.Agent:
		agentID = &userID
	}

	requests, err := h.Repository.GetRequests(status, dateFrom, dateTo, customerID, agentID)
	if err != nil {
		logrus.Error("Error getting requests: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения заявок")
		return
	}

	dtoRequests := make([]dto.RequestResponse, len(requests))
	for i, r := range requests {
		dtoRequests[i] = toRequestResponse(r)
	}

	c.JSON(http.StatusOK, dto.RequestListResponse{
		Requests: dtoRequests,
		Total:    len(dtoRequests),
	})
}

// canViewRequest проверяет доступ к заявке: клиент - свою, агент - оформленную им
func canViewRequest(request *ds.ServiceRequest, userID uint, userRole role.Role) bool {
	switch userRole {
	case role.Admin:
		return true
	case role.Agent:
		return request.AgentID != nil && *request.AgentID == userID
	}
	return request.CustomerID == userID
}

// GetRequest получает одну заявку
// @Summary Получение заявки по ID
// @Description Возвращает заявку с документами, платежами и журналом статусов
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Success 200 {object} dto.RequestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/requests/{id} [get]
func (h *APIHandler) GetRequest(c *gin.Context) {
	userID, userRole, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID заявки")
		return
	}

	request, err := h.Repository.GetRequestByID(uint(id))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Заявка не найдена")
		return
	}

	if !canViewRequest(request, userID, userRole) {
		h.errorResponse(c, http.StatusForbidden, "Нет доступа к заявке")
		return
	}

	response := toRequestResponse(*request)

	required := make([]string, len(request.Service.Documents))
	for i, d := range request.Service.Documents {
		required[i] = d.Name
	}
	response.RequiredDocuments = required

	documents, err := h.Repository.GetRequestDocuments(request.ID)
	if err != nil {
		logrus.Error("Error getting request documents: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка загрузки документов")
		return
	}
	for _, d := range documents {
		response.Documents = append(response.Documents, toDocumentResponse(d))
	}

	payments, err := h.Repository.GetRequestPayments(request.ID)
	if err != nil {
		logrus.Error("Error getting request payments: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка загрузки платежей")
		return
	}
	for _, p := range payments {
		response.Payments = append(response.Payments, toPaymentResponse(p))
	}

	logs, err := h.Repository.GetRequestStatusLogs(request.ID)
	if err != nil {
		logrus.Error("Error getting request status logs: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка загрузки журнала")
		return
	}
	for _, l := range logs {
		response.StatusLogs = append(response.StatusLogs, toStatusLogResponse(l))
	}

	c.JSON(http.StatusOK, response)
}

// requestIDFromPath разбирает :id заявки из пути
func (h *APIHandler) requestIDFromPath(c *gin.Context) (uint, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID заявки")
		return 0, false
	}
	return uint(id), true
}

// ApproveRequest одобряет заявку
// @Summary Одобрение заявки
// @Description Переводит заявку из pending_admin_approval в approved (только для администратора)
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/requests/{id}/approve [put]
func (h *APIHandler) ApproveRequest(c *gin.Context) {
	adminID, _, err := h.getUserFromContext(c)
	if err != nil || adminID == 0 {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	id, ok := h.requestIDFromPath(c)
	if !ok {
		return
	}

	if err := h.Repository.ApproveRequest(id, adminID); err != nil {
		h.domainError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, "Заявка одобрена", nil)
}

// RejectRequest отклоняет заявку
// @Summary Отклонение заявки
// @Description Переводит заявку в терминальный статус rejected (только для администратора)
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/requests/{id}/reject [put]
func (h *APIHandler) RejectRequest(c *gin.Context) {
	adminID, _, err := h.getUserFromContext(c)
	if err != nil || adminID == 0 {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	id, ok := h.requestIDFromPath(c)
	if !ok {
		return
	}

	if err := h.Repository.RejectRequest(id, adminID); err != nil {
		h.domainError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, "Заявка отклонена", nil)
}

// VerifyRequestDocuments проверяет комплектность документов
// @Summary Проверка комплектности документов
// @Description Переводит заявку в awaiting_payment, если для каждого обязательного документа есть неотклонённая загрузка
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/requests/{id}/verify-documents [put]
func (h *APIHandler) VerifyRequestDocuments(c *gin.Context) {
	adminID, _, err := h.getUserFromContext(c)
	if err != nil || adminID == 0 {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	id, ok := h.requestIDFromPath(c)
	if !ok {
		return
	}

	if err := h.Repository.VerifyRequestDocuments(id, adminID); err != nil {
		h.domainError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, "Документы проверены, заявка ожидает оплаты", nil)
}

// CompleteRequest завершает заявку
// @Summary Завершение заявки
// @Description Переводит заявку в completed; агенту-оформителю начисляется комиссия с базовой цены
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/requests/{id}/complete [put]
func (h *APIHandler) CompleteRequest(c *gin.Context) {
	adminID, _, err := h.getUserFromContext(c)
	if err != nil || adminID == 0 {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	id, ok := h.requestIDFromPath(c)
	if !ok {
		return
	}

	if err := h.Repository.CompleteRequest(id, adminID); err != nil {
		h.domainError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, "Заявка завершена", nil)
}
