package domain

import "time"

type Membership struct {
	Scope     Scope
	ScopeID   string
	UserID    string
	Role      Role
	CreatedAt time.Time
	UpdatedAt *time.Time
}

func (m *Membership) IsAdmin() bool {
	return m.Role == TopRole(m.Scope)
}

// Member - членство вместе с данными пользователя
type Member struct {
	Membership
	User Principal
}

// ScopeInfo - отображаемые данные команды или проекта для текстов уведомлений
type ScopeInfo struct {
	Scope    Scope
	ID       string
	Name     string
	TeamName string
}

// CountAdmins считает участников с верхней ролью шкалы.
func CountAdmins(memberships []*Membership) int {
	count := 0
	for _, m := range memberships {
		if m.IsAdmin() {
			count++
		}
	}
	return count
}
