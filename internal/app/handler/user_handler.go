package handler

import (
	"net/http"
	"strconv"

	"sevakendra/internal/app/dto"
	"sevakendra/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// ============ ПОЛЬЗОВАТЕЛИ ============

// GetUsers получает список пользователей
// @Summary Получение списка пользователей
// @Description Возвращает пользователей с фильтром по роли (только для администратора)
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param role query string false "Фильтр по роли (client, agent, admin)"
// @Success 200 {array} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/users [get]
func (h *APIHandler) GetUsers(c *gin.Context) {
	var roleFilter *int
	if s := c.Query("role"); s != "" {
		var r int
		switch s {
		case "client":
			r = int(role.Client)
		case "agent":
			r = int(role.Agent)
		case "admin":
			r = int(role.Admin)
		default:
			h.errorResponse(c, http.StatusBadRequest, "Неизвестная роль: "+s)
			return
		}
		roleFilter = &r
	}

	users, err := h.Repository.GetUsers(roleFilter)
	if err != nil {
		logrus.Error("Error getting users: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения пользователей")
		return
	}

	dtoUsers := make([]dto.UserResponse, len(users))
	for i, u := range users {
		dtoUsers[i] = toUserResponse(u)
	}

	c.JSON(http.StatusOK, dtoUsers)
}

// SetUserBlocked блокирует или разблокирует пользователя
// @Summary Блокировка пользователя
// @Description Заблокированный пользователь не может войти в систему (только для администратора)
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID пользователя"
// @Param request body dto.SetBlockedRequest true "Флаг блокировки"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/users/{id}/block [put]
func (h *APIHandler) SetUserBlocked(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID пользователя")
		return
	}

	var req dto.SetBlockedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	if err := h.Repository.SetUserBlocked(uint(id), *req.IsBlocked); err != nil {
		h.domainError(c, err)
		return
	}

	message := "Пользователь разблокирован"
	if *req.IsBlocked {
		message = "Пользователь заблокирован"
	}
	h.successResponse(c, http.StatusOK, message, nil)
}

// UpdateProfile обновляет профиль текущего пользователя
// @Summary Обновление профиля
// @Description Обновляет имя и/или пароль текущего пользователя
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateUserRequest true "Новые данные"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/auth/profile [put]
func (h *APIHandler) UpdateProfile(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil || userID == 0 {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	var fullName, password *string
	if req.FullName != "" {
		fullName = &req.FullName
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logrus.Error("Error hashing password: ", err)
			h.errorResponse(c, http.StatusInternalServerError, "Ошибка обновления пароля")
			return
		}
		hashedStr := string(hashed)
		password = &hashedStr
	}

	if err := h.Repository.UpdateUser(userID, fullName, password); err != nil {
		logrus.Error("Error updating user: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка обновления профиля")
		return
	}

	h.successResponse(c, http.StatusOK, "Профиль обновлён", nil)
}
