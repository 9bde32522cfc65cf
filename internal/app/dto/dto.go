package dto

import "time"

// ============ Общие структуры ============

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ============ Услуги (Services) ============

type ServiceResponse struct {
	ID                uint     `json:"id"`
	Name              string   `json:"name"`
	Category          string   `json:"category"` // Identity, Travel, Tax, Transport
	Price             float64  `json:"price"`
	TaxPercent        float64  `json:"tax_percent"`
	CommissionRate    float64  `json:"commission_rate"`
	RequiredDocuments []string `json:"required_documents"`
}

type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
	Total    int               `json:"total"`
}

type CreateServiceRequest struct {
	Name              string   `json:"name" binding:"required"`
	Category          string   `json:"category" binding:"required"`
	Price             float64  `json:"price" binding:"required,gt=0"`
	TaxPercent        float64  `json:"tax_percent" binding:"gte=0"`
	CommissionRate    float64  `json:"commission_rate" binding:"required,gte=0,lte=100"`
	RequiredDocuments []string `json:"required_documents" binding:"required,min=1"`
}

type UpdateServiceRequest struct {
	Name              string   `json:"name"`
	Category          string   `json:"category"`
	Price             float64  `json:"price" binding:"omitempty,gt=0"`
	TaxPercent        float64  `json:"tax_percent" binding:"omitempty,gte=0"`
	CommissionRate    float64  `json:"commission_rate" binding:"omitempty,gte=0,lte=100"`
	RequiredDocuments []string `json:"required_documents"`
}

// ============ Заявки (Service Requests) ============

type CreateRequestRequest struct {
	ServiceID uint `json:"service_id" binding:"required"`
	// Агент указывает клиента, за которого оформляет заявку;
	// клиент поле не передаёт
	CustomerID uint `json:"customer_id"`
}

type RequestResponse struct {
	ID            uint      `json:"id"`
	ServiceID     uint      `json:"service_id"`
	ServiceName   string    `json:"service_name"`
	Customer      string    `json:"customer"`        // логин клиента
	Agent         string    `json:"agent,omitempty"` // логин агента (если заявку оформил агент)
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	PriceSnapshot float64   `json:"price_snapshot"`
	TaxSnapshot   float64   `json:"tax_snapshot"`
	TotalSnapshot float64   `json:"total_snapshot"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Только для GET одной заявки
	RequiredDocuments []string            `json:"required_documents,omitempty"`
	Documents         []DocumentResponse  `json:"documents,omitempty"`
	Payments          []PaymentResponse   `json:"payments,omitempty"`
	StatusLogs        []StatusLogResponse `json:"status_logs,omitempty"`
}

type RequestListResponse struct {
	Requests []RequestResponse `json:"requests"`
	Total    int               `json:"total"`
}

// ============ Документы (Documents) ============

type DocumentResponse struct {
	ID              uint      `json:"id"`
	RequestID       uint      `json:"request_id"`
	DocumentName    string    `json:"document_name"`
	UploadedBy      uint      `json:"uploaded_by"`
	Verification    string    `json:"verification"` // pending, approved, rejected
	RejectionReason string    `json:"rejection_reason,omitempty"`
	FileRef         string    `json:"file_ref"`
	ContentType     string    `json:"content_type"`
	CreatedAt       time.Time `json:"created_at"`
}

type VerifyDocumentRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approved rejected"`
	Reason   string `json:"reason"` // обязательна при decision=rejected
}

// ============ Платежи (Payments) ============

type PayRequest struct {
	Method string  `json:"method" binding:"required,oneof=Cash Wallet UPI Card"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

type PaymentResponse struct {
	ID               uint      `json:"id"`
	RequestID        uint      `json:"request_id"`
	Amount           float64   `json:"amount"`
	Method           string    `json:"method"`
	Status           string    `json:"status"`
	TransactionID    string    `json:"transaction_id"`
	ReferenceNumber  string    `json:"reference_number"`
	CommissionEarned float64   `json:"commission_earned"`
	CreatedAt        time.Time `json:"created_at"`
}

type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
	Total    int               `json:"total"`
}

// ============ Журнал статусов (Status Logs) ============

type StatusLogResponse struct {
	ID        uint      `json:"id"`
	RequestID uint      `json:"request_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	ChangedBy string    `json:"changed_by"` // логин
	ChangedAt time.Time `json:"changed_at"`
}

type StatusLogListResponse struct {
	Logs  []StatusLogResponse `json:"logs"`
	Total int                 `json:"total"`
}

// ============ Кошелёк (Wallet) ============

type WalletTransactionResponse struct {
	ID        uint      `json:"id"`
	Category  string    `json:"category"` // commission, withdrawal
	Amount    float64   `json:"amount"`
	RequestID *uint     `json:"request_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type WalletResponse struct {
	Balance      float64                     `json:"balance"`
	Transactions []WalletTransactionResponse `json:"transactions"`
}

type WithdrawRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// ============ Пользователи (Users) ============

type UserResponse struct {
	ID        uint   `json:"id"`
	Login     string `json:"login"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"` // client, agent, admin
	IsBlocked bool   `json:"is_blocked"`
}

type RegisterRequest struct {
	Login    string `json:"login" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required"`
	Role     int    `json:"role"` // 0 - client, 1 - agent, 2 - admin
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UpdateUserRequest struct {
	FullName string `json:"full_name"`
	Password string `json:"password" binding:"omitempty,min=6"`
}

type SetBlockedRequest struct {
	IsBlocked *bool `json:"is_blocked" binding:"required"`
}
