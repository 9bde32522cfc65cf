package lifecycle

// Статусы заявки. Замкнутый набор: никакой код не должен выставлять статус,
// в который нет входящего перехода из таблицы ниже.
// "Документы собраны" отдельным статусом не хранится — это проверка на лету
// при переводе заявки в awaiting_payment.
type Status string

const (
	StatusPendingAdminApproval Status = "pending_admin_approval" // начальный статус
	StatusApproved             Status = "approved"
	StatusAwaitingPayment      Status = "awaiting_payment"
	StatusInProgress           Status = "in_progress"
	StatusCompleted            Status = "completed" // терминальный
	StatusRejected             Status = "rejected"  // терминальный, только из pending_admin_approval
)

// События, меняющие статус заявки
type Event string

const (
	EventAdminApprove     Event = "admin_approve"
	EventAdminReject      Event = "admin_reject"
	EventVerifyDocuments  Event = "verify_documents"
	EventPaymentCompleted Event = "payment_completed"
	EventMarkComplete     Event = "mark_complete"
)

// Статусы верификации документа
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// Статусы оплаты заявки
const (
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

// Статусы платежной транзакции. Записи неизменяемые: неудачная попытка
// оплаты фиксируется отдельной записью failed, успешная - completed.
const (
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// Таблица переходов: событие -> из какого статуса и в какой.
// Загрузка документа статус не меняет и в таблице отсутствует.
var transitions = map[Event]struct{ From, To Status }{
	EventAdminApprove:     {StatusPendingAdminApproval, StatusApproved},
	EventAdminReject:      {StatusPendingAdminApproval, StatusRejected},
	EventVerifyDocuments:  {StatusApproved, StatusAwaitingPayment},
	EventPaymentCompleted: {StatusAwaitingPayment, StatusInProgress},
	EventMarkComplete:     {StatusInProgress, StatusCompleted},
}

// Next возвращает следующий статус для события или ErrInvalidTransition,
// если текущий статус не допускает это событие
func Next(current Status, event Event) (Status, error) {
	t, ok := transitions[event]
	if !ok || t.From != current {
		return "", ErrInvalidTransition
	}
	return t.To, nil
}

// IsTerminal проверяет, что из статуса нет исходящих переходов
func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusRejected
}

// ValidStatus проверяет принадлежность значения к замкнутому набору статусов
func ValidStatus(s Status) bool {
	switch s {
	case StatusPendingAdminApproval, StatusApproved, StatusAwaitingPayment,
		StatusInProgress, StatusCompleted, StatusRejected:
		return true
	}
	return false
}
