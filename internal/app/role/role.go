package role

// Роль пользователя в системе
type Role int

const (
	Client Role = iota // клиент, подаёт заявки на себя
	Agent              // агент киоска, оформляет заявки за клиентов и получает комиссию
	Admin              // администратор
)

func (r Role) String() string {
	switch r {
	case Client:
		return "client"
	case Agent:
		return "agent"
	case Admin:
		return "admin"
	}
	return "unknown"
}

// Valid проверяет, что значение роли входит в допустимый диапазон
func Valid(r Role) bool {
	return r >= Client && r <= Admin
}
