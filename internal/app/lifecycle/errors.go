package lifecycle

import "errors"

// Доменные ошибки жизненного цикла заявки. Все возвращаются вызывающему
// синхронно, частичного применения операций не бывает.
var (
	// ErrInvalidTransition — событие не разрешено из текущего статуса
	ErrInvalidTransition = errors.New("недопустимый переход статуса")
	// ErrConcurrentModification — ожидаемый статус не совпал с текущим
	// (заявку успел изменить кто-то другой)
	ErrConcurrentModification = errors.New("заявка изменена параллельно, повторите операцию")
	// ErrAmountMismatch — сумма платежа не равна зафиксированной стоимости заявки
	ErrAmountMismatch = errors.New("сумма платежа не совпадает со стоимостью заявки")
	// ErrUnknownDocumentName — имя документа отсутствует в списке требуемых для услуги
	ErrUnknownDocumentName = errors.New("документ не входит в список требуемых для услуги")
	// ErrDocumentsIncomplete — не для всех обязательных документов есть неотклонённая загрузка
	ErrDocumentsIncomplete = errors.New("загружены не все обязательные документы")
	// ErrAlreadyFinalized — по документу уже принято решение
	ErrAlreadyFinalized = errors.New("решение по документу уже принято")
	// ErrCannotRemoveFinalized — удалять можно только документы в статусе pending
	ErrCannotRemoveFinalized = errors.New("нельзя удалить документ после верификации")
	// ErrRequestNotPayable — заявка не находится в статусе ожидания оплаты
	ErrRequestNotPayable = errors.New("заявка не ожидает оплаты")
	// ErrInsufficientBalance — на балансе кошелька недостаточно средств для вывода
	ErrInsufficientBalance = errors.New("недостаточно средств на балансе кошелька")
)
