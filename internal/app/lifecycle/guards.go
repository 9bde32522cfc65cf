package lifecycle

// DocumentState — минимальное представление загруженного документа для
// проверки комплектности (имя + статус верификации)
type DocumentState struct {
	Name         string
	Verification VerificationStatus
}

// MissingDocuments возвращает имена обязательных документов, для которых нет
// ни одной загрузки со статусом, отличным от rejected. Порядок совпадает с
// порядком требуемых документов услуги.
func MissingDocuments(required []string, docs []DocumentState) []string {
	covered := make(map[string]bool, len(docs))
	for _, d := range docs {
		if d.Verification != VerificationRejected {
			covered[d.Name] = true
		}
	}

	var missing []string
	for _, name := range required {
		if !covered[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

// KnownDocumentName проверяет, что имя документа входит в требуемый список услуги
func KnownDocumentName(required []string, name string) bool {
	for _, r := range required {
		if r == name {
			return true
		}
	}
	return false
}

// CheckPayment проверяет guard'ы платежа: заявка должна ожидать оплаты,
// сумма должна в точности совпадать с зафиксированной стоимостью
func CheckPayment(current Status, amount, totalSnapshot float64) error {
	if current != StatusAwaitingPayment {
		return ErrRequestNotPayable
	}
	if amount != totalSnapshot {
		return ErrAmountMismatch
	}
	return nil
}

// Totals рассчитывает налог и итоговую стоимость, фиксируемые в заявке
// при создании
func Totals(price, taxPercent float64) (tax, total float64) {
	tax = price * taxPercent / 100
	return tax, price + tax
}

// Commission считает комиссию агента с базовой цены услуги (до налога).
// Комиссия всегда берется от price_snapshot, не от итоговой суммы.
func Commission(priceSnapshot, commissionRate float64) float64 {
	return priceSnapshot * commissionRate / 100
}
