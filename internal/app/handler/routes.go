package handler

import (
	"sevakendra/internal/app/middleware"
	"sevakendra/internal/app/role"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterAPIRoutes регистрирует все REST API маршруты с авторизацией
func (h *APIHandler) RegisterAPIRoutes(router *gin.Engine, authMiddleware *middleware.AuthMiddleware) {
	api := router.Group("/api")

	// ============ Услуги (Services) - каталог ============
	services := api.Group("/services")
	{
		// Публичные эндпоинты (без авторизации)
		services.GET("", h.GetServices)
		services.GET("/:id", h.GetService)

		// Только для администратора (управление каталогом)
		services.POST("", authMiddleware.WithAuthCheck(role.Admin), h.CreateService)
		services.PUT("/:id", authMiddleware.WithAuthCheck(role.Admin), h.UpdateService)
		services.DELETE("/:id", authMiddleware.WithAuthCheck(role.Admin), h.DeleteService)
	}

	// ============ Заявки (Service Requests) ============
	requests := api.Group("/requests")
	{
		// Клиент подаёт заявку на себя, агент - за клиента
		requests.POST("", authMiddleware.WithAuthCheck(role.Client, role.Agent), h.CreateRequest)

		// Списки и детали: клиент/агент видят только свои заявки, админ - все
		requests.GET("", authMiddleware.WithAuthCheck(role.Client, role.Agent, role.Admin), h.GetRequests)
		requests.GET("/:id", authMiddleware.WithAuthCheck(role.Client, role.Agent, role.Admin), h.GetRequest)

		// Переходы жизненного цикла - только администратор
		requests.PUT("/:id/approve", authMiddleware.WithAuthCheck(role.Admin), h.ApproveRequest)
		requests.PUT("/:id/reject", authMiddleware.WithAuthCheck(role.Admin), h.RejectRequest)
		requests.PUT("/:id/verify-documents", authMiddleware.WithAuthCheck(role.Admin), h.VerifyRequestDocuments)
		requests.PUT("/:id/complete", authMiddleware.WithAuthCheck(role.Admin), h.CompleteRequest)

		// Документы и оплата
		requests.POST("/:id/documents", authMiddleware.WithAuthCheck(role.Client, role.Agent), h.UploadDocument)
		requests.POST("/:id/pay", authMiddleware.WithAuthCheck(role.Client, role.Agent), h.PayRequest)
	}

	// ============ Документы (Documents) ============
	documents := api.Group("/documents")
	{
		documents.PUT("/:id/verify", authMiddleware.WithAuthCheck(role.Admin), h.VerifyDocument)
		documents.DELETE("/:id", authMiddleware.WithAuthCheck(role.Client, role.Agent, role.Admin), h.RemoveDocument)
		documents.GET("/:id/url", authMiddleware.WithAuthCheck(role.Client, role.Agent, role.Admin), h.GetDocumentURL)
	}

	// ============ Платежи (Payments) - только администратор ============
	api.GET("/payments", authMiddleware.WithAuthCheck(role.Admin), h.GetPayments)

	// ============ Кошелёк агента (Wallet) ============
	wallet := api.Group("/wallet")
	wallet.Use(authMiddleware.WithAuthCheck(role.Agent))
	{
		wallet.GET("", h.GetWallet)
		wallet.POST("/withdraw", h.Withdraw)
	}

	// ============ Журнал статусов (Logs) ============
	api.GET("/logs", authMiddleware.WithAuthCheck(role.Client, role.Agent, role.Admin), h.GetStatusLogs)

	// ============ Пользователи (Users) - только администратор ============
	users := api.Group("/users")
	users.Use(authMiddleware.WithAuthCheck(role.Admin))
	{
		users.GET("", h.GetUsers)
		users.PUT("/:id/block", h.SetUserBlocked)
	}

	// ============ Аутентификация ============
	auth := api.Group("/auth")
	{
		// Публичные эндпоинты
		auth.POST("/register", h.AuthHandler.RegisterUser)
		auth.POST("/login", h.AuthHandler.LoginUser)

		// Защищенные эндпоинты
		auth.GET("/profile", authMiddleware.WithAuthCheck(role.Client, role.Agent, role.Admin), h.AuthHandler.GetUserProfile)
		auth.PUT("/profile", authMiddleware.WithAuthCheck(role.Client, role.Agent, role.Admin), h.UpdateProfile)
		auth.POST("/logout", authMiddleware.WithAuthCheck(role.Client, role.Agent, role.Admin), h.AuthHandler.LogoutUser)
	}

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Ping эндпоинт для проверки
	router.GET("/ping", h.Ping)
}

// Ping проверяет работоспособность API
// @Summary Проверка работоспособности
// @Description Возвращает простой ответ для проверки работы сервера
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *APIHandler) Ping(ctx *gin.Context) {
	ctx.JSON(200, gin.H{"message": "pong"})
}
