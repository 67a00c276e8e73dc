package services

import (
	"context"
	"testing"

	"boleia/internal/models"
	"boleia/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCreatesUserFromIdentity(t *testing.T) {
	userRepo := newFakeUserRepo()
	service := NewAuthService(userRepo, testLogger())

	identity := &auth.Identity{
		UID:         "firebase-uid-1",
		Email:       "carlos@example.com",
		DisplayName: "Carlos Tembe",
	}

	response, err := service.Register(context.Background(), identity, &RegisterRequest{Phone: "+258821234567"})
	require.NoError(t, err)

	assert.True(t, response.RequiresRoleSetup)
	assert.Equal(t, "Carlos", response.User.FirstName)
	assert.Equal(t, "Tembe", response.User.LastName)
	assert.Equal(t, "+258821234567", response.User.Phone)
	assert.Equal(t, "pt", response.User.Language)
	assert.True(t, response.User.IsVerified)
	assert.False(t, response.User.ID.IsZero())
}

func TestRegisterIsIdempotentByUID(t *testing.T) {
	userRepo := newFakeUserRepo()
	service := NewAuthService(userRepo, testLogger())

	identity := &auth.Identity{UID: "firebase-uid-1", Email: "carlos@example.com", DisplayName: "Carlos Tembe"}

	first, err := service.Register(context.Background(), identity, nil)
	require.NoError(t, err)

	// A second register with a different display name must not create
	// or rewrite anything.
	identity.DisplayName = "Outro Nome"
	second, err := service.Register(context.Background(), identity, nil)
	require.NoError(t, err)

	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Equal(t, "Carlos", second.User.FirstName)
	assert.Len(t, userRepo.users, 1)
	assert.NotNil(t, second.User.LastLoginAt)
}

func TestRegisterRequestOverridesDisplayName(t *testing.T) {
	userRepo := newFakeUserRepo()
	service := NewAuthService(userRepo, testLogger())

	identity := &auth.Identity{UID: "firebase-uid-2", Email: "ana@example.com", DisplayName: "Ana"}
	response, err := service.Register(context.Background(), identity, &RegisterRequest{
		DisplayName: "Ana Maria Sitoe",
		Language:    "en",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ana", response.User.FirstName)
	assert.Equal(t, "Maria Sitoe", response.User.LastName)
	assert.Equal(t, "en", response.User.Language)
}

func TestSetupRolesCreatesMissingUser(t *testing.T) {
	userRepo := newFakeUserRepo()
	service := NewAuthService(userRepo, testLogger())

	identity := &auth.Identity{UID: "firebase-uid-3", Email: "joao@example.com", DisplayName: "João Machava"}

	response, err := service.SetupRoles(context.Background(), identity, []models.Role{models.RoleDriver})
	require.NoError(t, err)

	assert.False(t, response.RequiresRoleSetup)
	assert.True(t, response.User.HasRole(models.RoleDriver))
	assert.Len(t, userRepo.users, 1)
}

func TestUpdateRolesRejectsSelfGrantedAdmin(t *testing.T) {
	userRepo := newFakeUserRepo()
	service := NewAuthService(userRepo, testLogger())

	identity := &auth.Identity{UID: "firebase-uid-4", Email: "eva@example.com"}
	response, err := service.Register(context.Background(), identity, nil)
	require.NoError(t, err)

	_, err = service.UpdateRoles(context.Background(), response.User, []models.Role{models.RoleAdmin})
	assert.ErrorIs(t, err, ErrAdminRequired)
}

func TestUpdateRolesAllowsAdminToKeepAdmin(t *testing.T) {
	userRepo := newFakeUserRepo()
	service := NewAuthService(userRepo, testLogger())

	identity := &auth.Identity{UID: "firebase-uid-5", Email: "root@example.com"}
	response, err := service.Register(context.Background(), identity, nil)
	require.NoError(t, err)

	response.User.Roles = []models.Role{models.RoleAdmin}

	updated, err := service.UpdateRoles(context.Background(), response.User, []models.Role{models.RoleAdmin, models.RoleHotelManager})
	require.NoError(t, err)

	assert.True(t, updated.HasRole(models.RoleAdmin))
	assert.True(t, updated.HasRole(models.RoleHotelManager))
}

func TestUpdateProfileAppliesOnlyProvidedFields(t *testing.T) {
	userRepo := newFakeUserRepo()
	service := NewAuthService(userRepo, testLogger())

	identity := &auth.Identity{UID: "firebase-uid-6", Email: "rui@example.com", DisplayName: "Rui Costa"}
	response, err := service.Register(context.Background(), identity, nil)
	require.NoError(t, err)

	updated, err := service.UpdateProfile(context.Background(), response.User.ID, &UpdateProfileRequest{
		Phone: "+258847654321",
	})
	require.NoError(t, err)

	assert.Equal(t, "+258847654321", updated.Phone)
	assert.Equal(t, "Rui", updated.FirstName)
}
