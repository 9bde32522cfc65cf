package handler

import (
	"net/http"

	"sevakendra/internal/app/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН КОШЕЛЁК АГЕНТА ============

// GetWallet получает кошелёк агента
// @Summary Кошелёк агента
// @Description Возвращает баланс (сумма комиссий минус выводы) и историю операций
// @Tags Wallet
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.WalletResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/wallet [get]
func (h *APIHandler) GetWallet(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil || userID == 0 {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	balance, err := h.Repository.WalletBalance(userID)
	if err != nil {
		logrus.Error("Error getting wallet balance: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения баланса")
		return
	}

	transactions, err := h.Repository.GetWalletTransactions(userID)
	if err != nil {
		logrus.Error("Error getting wallet transactions: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения операций")
		return
	}

	dtoTransactions := make([]dto.WalletTransactionResponse, len(transactions))
	for i, t := range transactions {
		dtoTransactions[i] = dto.WalletTransactionResponse{
			ID:        t.ID,
			Category:  t.Category,
			Amount:    t.Amount,
			RequestID: t.RequestID,
			CreatedAt: t.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, dto.WalletResponse{
		Balance:      balance,
		Transactions: dtoTransactions,
	})
}

// Withdraw выводит средства из кошелька
// @Summary Вывод средств
// @Description Списывает сумму с баланса агента; при нехватке средств возвращает ошибку
// @Tags Wallet
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.WithdrawRequest true "Сумма вывода"
// @Success 201 {object} dto.WalletTransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/wallet/withdraw [post]
func (h *APIHandler) Withdraw(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil || userID == 0 {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	debit, err := h.Repository.Withdraw(userID, req.Amount)
	if err != nil {
		h.domainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.WalletTransactionResponse{
		ID:        debit.ID,
		Category:  debit.Category,
		Amount:    debit.Amount,
		RequestID: debit.RequestID,
		CreatedAt: debit.CreatedAt,
	})
}
