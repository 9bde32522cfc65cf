package handler

import (
	"net/http"

	"sevakendra/internal/app/ds"
	"sevakendra/internal/app/dto"
	"sevakendra/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ЖУРНАЛ СТАТУСОВ ============

// GetStatusLogs получает журнал переходов статусов
// @Summary Журнал переходов статусов
// @Description Администратор видит весь журнал, клиент и агент - записи только по своим заявкам
// @Tags Logs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StatusLogListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/logs [get]
func (h *APIHandler) GetStatusLogs(c *gin.Context) {
	userID, userRole, err := h.getUserFromContext(c)
	if err != nil || userID == 0 {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	var logs []ds.StatusLog
	if userRole == role.Admin {
		logs, err = h.Repository.GetStatusLogs()
	} else {
		logs, err = h.Repository.GetStatusLogsForUser(userID)
	}
	if err != nil {
		logrus.Error("Error getting status logs: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения журнала")
		return
	}

	dtoLogs := make([]dto.StatusLogResponse, len(logs))
	for i, l := range logs {
		dtoLogs[i] = toStatusLogResponse(l)
	}

	c.JSON(http.StatusOK, dto.StatusLogListResponse{
		Logs:  dtoLogs,
		Total: len(dtoLogs),
	})
}
