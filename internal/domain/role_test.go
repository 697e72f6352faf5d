package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelOf(t *testing.T) {
	tests := []struct {
		scope Scope
		role  Role
		level int
	}{
		{ScopeTeam, RoleMember, 0},
		{ScopeTeam, RoleAdmin, 1},
		{ScopeProject, RoleViewer, 0},
		{ScopeProject, RoleEditor, 1},
		{ScopeProject, RoleAdmin, 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.scope)+"/"+string(tt.role), func(t *testing.T) {
			level, err := LevelOf(tt.scope, tt.role)
			require.NoError(t, err)
			assert.Equal(t, tt.level, level)
		})
	}

	t.Run("роль из чужой шкалы недопустима", func(t *testing.T) {
		_, err := LevelOf(ScopeTeam, RoleEditor)
		assert.True(t, errors.Is(err, ErrInvalidRole))

		_, err = LevelOf(ScopeProject, RoleMember)
		assert.True(t, errors.Is(err, ErrInvalidRole))
	})

	t.Run("неизвестная роль", func(t *testing.T) {
		_, err := LevelOf(ScopeProject, Role("OWNER"))
		assert.True(t, errors.Is(err, ErrInvalidRole))
		assert.Contains(t, err.Error(), "OWNER")
	})

	t.Run("неизвестный scope", func(t *testing.T) {
		_, err := LevelOf(Scope("org"), RoleAdmin)
		assert.True(t, errors.Is(err, ErrInvalidRole))
	})
}

func TestSatisfies(t *testing.T) {
	t.Run("монотонность по требуемой роли", func(t *testing.T) {
		for _, scope := range []Scope{ScopeTeam, ScopeProject} {
			roles := scope.Roles()
			for i, actual := range roles {
				for j, required := range roles {
					ok, err := Satisfies(scope, actual, required)
					require.NoError(t, err)
					assert.Equal(t, i >= j, ok, "%s: %s vs %s", scope, actual, required)
				}
			}
		}
	})

	t.Run("ошибка при недопустимой роли", func(t *testing.T) {
		ok, err := Satisfies(ScopeTeam, RoleAdmin, RoleViewer)
		assert.False(t, ok)
		assert.True(t, errors.Is(err, ErrInvalidRole))
	})
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole(ScopeProject, " editor ")
	require.NoError(t, err)
	assert.Equal(t, RoleEditor, role)

	_, err = ParseRole(ScopeTeam, "viewer")
	assert.True(t, errors.Is(err, ErrInvalidRole))
}

func TestScaleHelpers(t *testing.T) {
	assert.Equal(t, RoleAdmin, TopRole(ScopeTeam))
	assert.Equal(t, RoleAdmin, TopRole(ScopeProject))

	assert.Equal(t, RoleAdmin, ManagerRole(ScopeTeam))
	assert.Equal(t, RoleEditor, ManagerRole(ScopeProject))

	assert.Equal(t, RoleMember, DefaultRole(ScopeTeam))
	assert.Equal(t, RoleViewer, DefaultRole(ScopeProject))

	assert.True(t, ScopeTeam.Valid())
	assert.False(t, Scope("org").Valid())
}

func TestCountAdmins(t *testing.T) {
	memberships := []*Membership{
		{Scope: ScopeProject, UserID: "a", Role: RoleAdmin},
		{Scope: ScopeProject, UserID: "b", Role: RoleEditor},
		{Scope: ScopeProject, UserID: "c", Role: RoleAdmin},
	}
	assert.Equal(t, 2, CountAdmins(memberships))
	assert.Equal(t, 0, CountAdmins(nil))
}

func TestPrincipal_DisplayName(t *testing.T) {
	assert.Equal(t, "Jane Doe", Principal{Name: "Jane Doe", Email: "jane@example.com"}.DisplayName())
	assert.Equal(t, "jane@example.com", Principal{Email: "jane@example.com"}.DisplayName())
}
