package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrimaryRole(t *testing.T) {
	tests := []struct {
		name  string
		roles []Role
		want  Role
	}{
		{"empty defaults to client", nil, RoleClient},
		{"single client", []Role{RoleClient}, RoleClient},
		{"driver beats client", []Role{RoleClient, RoleDriver}, RoleDriver},
		{"hotel manager beats driver", []Role{RoleDriver, RoleHotelManager}, RoleHotelManager},
		{"admin beats everything", []Role{RoleClient, RoleDriver, RoleHotelManager, RoleAdmin}, RoleAdmin},
		{"order does not matter", []Role{RoleAdmin, RoleClient}, RoleAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PrimaryRole(tt.roles))
		})
	}
}

func TestSetRolesDeduplicatesAndProjects(t *testing.T) {
	user := &User{}
	user.SetRoles([]Role{RoleDriver, RoleClient, RoleDriver})

	assert.Len(t, user.Roles, 2)
	assert.Equal(t, RoleDriver, user.UserType)
	assert.True(t, user.HasRole(RoleClient))
	assert.False(t, user.HasRole(RoleAdmin))
}

func TestRequiresRoleSetup(t *testing.T) {
	user := &User{}
	assert.True(t, user.RequiresRoleSetup())

	user.SetRoles([]Role{RoleClient})
	assert.False(t, user.RequiresRoleSetup())
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole(RoleHotelManager))
	assert.False(t, IsValidRole(Role("manager")))
	assert.False(t, IsValidRole(Role("")))
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "Anacleto Matola", (&User{FirstName: "Anacleto", LastName: "Matola"}).FullName())
	assert.Equal(t, "Anacleto", (&User{FirstName: "Anacleto"}).FullName())
	assert.Equal(t, "Matola", (&User{LastName: "Matola"}).FullName())
}
