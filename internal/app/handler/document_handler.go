package handler

import (
	"io"
	"net/http"
	"strconv"

	"sevakendra/internal/app/dto"
	"sevakendra/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН ДОКУМЕНТЫ ============

// UploadDocument загружает документ заявки
// @Summary Загрузка документа
// @Description Загружает файл в MinIO и создаёт документ в статусе pending; имя должно входить в список обязательных документов услуги
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Param document_name formData string true "Имя обязательного документа"
// @Param file formData file true "Файл документа"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/requests/{id}/documents [post]
func (h *APIHandler) UploadDocument(c *gin.Context) {
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

	documentName := c.PostForm("document_name")
	if documentName == "" {
		h.errorResponse(c, http.StatusBadRequest, "Не указано имя документа")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Файл не найден в запросе")
		return
	}

	openedFile, err := file.Open()
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка чтения файла")
		return
	}
	defer openedFile.Close()

	fileData, err := io.ReadAll(openedFile)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка чтения файла")
		return
	}

	fileRef, contentType, err := h.MinIOClient.UploadFile(fileData, file.Filename)
	if err != nil {
		logrus.Error("Error uploading to MinIO: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка загрузки файла")
		return
	}

	document, err := h.Repository.UploadDocument(requestID, documentName, fileRef, contentType, userID)
	if err != nil {
		// Запись не создана - убираем файл из хранилища
		if delErr := h.MinIOClient.DeleteFile(fileRef); delErr != nil {
			logrus.Warnf("Failed to delete orphan file %s: %v", fileRef, delErr)
		}
		h.domainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toDocumentResponse(*document))
}

// VerifyDocument принимает решение по документу
// @Summary Верификация документа
// @Description Администратор одобряет или отклоняет документ; при отклонении обязательна причина. Отклонение документа статус заявки не меняет
// @Tags Documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID документа"
// @Param request body dto.VerifyDocumentRequest true "Решение"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/documents/{id}/verify [put]
func (h *APIHandler) VerifyDocument(c *gin.Context) {
	adminID, _, err := h.getUserFromContext(c)
	if err != nil || adminID == 0 {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID документа")
		return
	}

	var req dto.VerifyDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	approve := req.Decision == "approved"
	if !approve && req.Reason == "" {
		h.errorResponse(c, http.StatusBadRequest, "При отклонении документа обязательна причина")
		return
	}

	var reason *string
	if !approve {
		reason = &req.Reason
	}

	if err := h.Repository.VerifyDocument(uint(id), adminID, approve, reason); err != nil {
		h.domainError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, "Решение по документу сохранено", nil)
}

// RemoveDocument удаляет документ
// @Summary Удаление документа
// @Description Удаляет документ и его файл из хранилища; разрешено только пока документ в статусе pending
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID документа"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/documents/{id} [delete]
func (h *APIHandler) RemoveDocument(c *gin.Context) {
	userID, userRole, err := h.getUserFromContext(c)
	if err != nil || userID == 0 {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID документа")
		return
	}

	document, err := h.Repository.GetDocumentByID(uint(id))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Документ не найден")
		return
	}

	request, err := h.Repository.GetRequestByID(document.RequestID)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Заявка не найдена")
		return
	}
	if !canViewRequest(request, userID, userRole) {
		h.errorResponse(c, http.StatusForbidden, "Нет доступа к заявке")
		return
	}

	fileRef, err := h.Repository.RemoveDocument(uint(id))
	if err != nil {
		h.domainError(c, err)
		return
	}

	if err := h.MinIOClient.DeleteFile(fileRef); err != nil {
		logrus.Warnf("Failed to delete file %s from MinIO: %v", fileRef, err)
	}

	h.successResponse(c, http.StatusOK, "Документ удалён", nil)
}

// GetDocumentURL возвращает временную ссылку на файл документа
// @Summary Ссылка на файл документа
// @Description Возвращает presigned URL MinIO, действительный один час
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID документа"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/documents/{id}/url [get]
func (h *APIHandler) GetDocumentURL(c *gin.Context) {
	userID, userRole, err := h.getUserFromContext(c)
	if err != nil || userID == 0 {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID документа")
		return
	}

	document, err := h.Repository.GetDocumentByID(uint(id))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Документ не найден")
		return
	}

	if userRole != role.Admin {
		request, err := h.Repository.GetRequestByID(document.RequestID)
		if err != nil {
			h.errorResponse(c, http.StatusNotFound, "Заявка не найдена")
			return
		}
		if !canViewRequest(request, userID, userRole) {
			h.errorResponse(c, http.StatusForbidden, "Нет доступа к заявке")
			return
		}
	}

	url, err := h.MinIOClient.GetFileURL(document.FileRef)
	if err != nil {
		logrus.Error("Error generating presigned URL: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения ссылки")
		return
	}

	h.successResponse(c, http.StatusOK, "", gin.H{"url": url})
}
