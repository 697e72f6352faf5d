package domain

import "strings"

// Scope - вид сущности, владеющей набором участников. Он же выбирает шкалу ролей:
// роли команды и роли проекта - независимые оси и между собой не сравниваются.
type Scope string

const (
	ScopeTeam    Scope = "team"
	ScopeProject Scope = "project"
)

type Role string

const (
	RoleMember Role = "MEMBER"
	RoleViewer Role = "VIEWER"
	RoleEditor Role = "EDITOR"
	RoleAdmin  Role = "ADMIN"
)

// Шкалы упорядочены снизу вверх, индекс роли - ее уровень.
var roleScales = map[Scope][]Role{
	ScopeTeam:    {RoleMember, RoleAdmin},
	ScopeProject: {RoleViewer, RoleEditor, RoleAdmin},
}

func (s Scope) Valid() bool {
	_, ok := roleScales[s]
	return ok
}

func (s Scope) String() string {
	return string(s)
}

// Roles возвращает роли шкалы по возрастанию уровня.
func (s Scope) Roles() []Role {
	scale := roleScales[s]
	out := make([]Role, len(scale))
	copy(out, scale)
	return out
}

// LevelOf возвращает уровень роли в шкале scope или ErrInvalidRole.
func LevelOf(scope Scope, role Role) (int, error) {
	for level, r := range roleScales[scope] {
		if r == role {
			return level, nil
		}
	}
	return 0, NewInvalidRoleError(scope, role)
}

// Satisfies сообщает, что actual не ниже required в шкале scope.
func Satisfies(scope Scope, actual, required Role) (bool, error) {
	actualLevel, err := LevelOf(scope, actual)
	if err != nil {
		return false, err
	}
	requiredLevel, err := LevelOf(scope, required)
	if err != nil {
		return false, err
	}
	return actualLevel >= requiredLevel, nil
}

// ParseRole приводит строку к роли шкалы без учета регистра.
func ParseRole(scope Scope, value string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(value)))
	if _, err := LevelOf(scope, role); err != nil {
		return "", NewInvalidRoleError(scope, Role(value))
	}
	return role, nil
}

// TopRole - роль, которая должна быть хотя бы у одного участника непустого scope.
func TopRole(scope Scope) Role {
	scale := roleScales[scope]
	if len(scale) == 0 {
		return ""
	}
	return scale[len(scale)-1]
}

// ManagerRole - минимальная роль, позволяющая добавлять участников:
// первая роль выше нижней ступени (EDITOR в проекте, ADMIN в команде).
func ManagerRole(scope Scope) Role {
	scale := roleScales[scope]
	if len(scale) < 2 {
		return TopRole(scope)
	}
	return scale[1]
}

// DefaultRole - роль нового участника, если она не указана явно.
func DefaultRole(scope Scope) Role {
	scale := roleScales[scope]
	if len(scale) == 0 {
		return ""
	}
	return scale[0]
}
