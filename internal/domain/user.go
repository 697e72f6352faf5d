package domain

import "time"

// Principal - идентичность пользователя. Ядро ее только читает.
type Principal struct {
	ID          string
	Name        string
	Email       string
	EmailOptOut bool
	CreatedAt   time.Time
}

// DisplayName возвращает имя, а при его отсутствии email.
func (p Principal) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Email
}
