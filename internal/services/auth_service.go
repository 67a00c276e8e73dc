package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"boleia/internal/models"
	"boleia/internal/repositories/interfaces"
	"boleia/internal/utils"
	"boleia/pkg/auth"
	"boleia/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthService owns user records and the role model. The caller's
// identity always comes from a verified token, never from the request
// body.
type AuthService interface {
	Register(ctx context.Context, identity *auth.Identity, request *RegisterRequest) (*AuthResponse, error)
	GetProfile(ctx context.Context, uid string) (*AuthResponse, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, request *UpdateProfileRequest) (*models.User, error)

	// Role management. SetupRoles creates the user on the fly when
	// registration was skipped; UpdateRoles requires an existing user
	// and gates the admin grant on the actor already holding admin.
	SetupRoles(ctx context.Context, identity *auth.Identity, roles []models.Role) (*AuthResponse, error)
	UpdateRoles(ctx context.Context, user *models.User, roles []models.Role) (*models.User, error)

	// Admin surface
	ListUsers(ctx context.Context, params *utils.PaginationParams) ([]*models.User, int64, error)
	ListUsersByRole(ctx context.Context, role models.Role, params *utils.PaginationParams) ([]*models.User, int64, error)
}

type RegisterRequest struct {
	DisplayName string `json:"display_name" validate:"omitempty,max=120"`
	Phone       string `json:"phone" validate:"omitempty"`
	Language    string `json:"language" validate:"omitempty,oneof=pt en"`
}

type UpdateProfileRequest struct {
	FirstName      string `json:"first_name" validate:"omitempty,min=2,max=60"`
	LastName       string `json:"last_name" validate:"omitempty,min=2,max=60"`
	Phone          string `json:"phone" validate:"omitempty"`
	ProfilePicture string `json:"profile_picture" validate:"omitempty,url"`
	Language       string `json:"language" validate:"omitempty,oneof=pt en"`
}

// AuthResponse pairs the user with the flag the frontend branches on
// after login.
type AuthResponse struct {
	User              *models.User `json:"user"`
	RequiresRoleSetup bool         `json:"requires_role_setup"`
}

type authService struct {
	userRepo interfaces.UserRepository
	logger   *logger.Logger
}

func NewAuthService(userRepo interfaces.UserRepository, logger *logger.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Register is idempotent by Firebase uid: a repeated call returns the
// existing user unchanged apart from the last-login stamp.
func (s *authService) Register(ctx context.Context, identity *auth.Identity, request *RegisterRequest) (*AuthResponse, error) {
	existing, err := s.userRepo.GetByUID(ctx, identity.UID)
	if err == nil {
		if err := s.userRepo.UpdateLastLogin(ctx, existing.ID); err != nil {
			s.logger.WithError(err).WithUserID(existing.ID).Warn("failed to stamp last login")
		}
		return &AuthResponse{User: existing, RequiresRoleSetup: existing.RequiresRoleSetup()}, nil
	}
	if err != interfaces.ErrNotFound {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	user := s.newUserFromIdentity(identity, request)

	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent register for the same uid got there first.
		if err == interfaces.ErrDuplicate {
			winner, lookupErr := s.userRepo.GetByUID(ctx, identity.UID)
			if lookupErr != nil {
				return nil, fmt.Errorf("failed to load user after duplicate register: %w", lookupErr)
			}
			return &AuthResponse{User: winner, RequiresRoleSetup: winner.RequiresRoleSetup()}, nil
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.WithUserID(user.ID).WithField("uid", user.UID).Info("user registered")

	return &AuthResponse{User: user, RequiresRoleSetup: true}, nil
}

func (s *authService) newUserFromIdentity(identity *auth.Identity, request *RegisterRequest) *models.User {
	user := &models.User{
		UID:            identity.UID,
		Email:          identity.Email,
		ProfilePicture: identity.PhotoURL,
		Language:       utils.DefaultLanguage,
		IsVerified:     true, // Firebase verified the channel already
	}

	firstName, lastName := splitDisplayName(identity.DisplayName)
	user.FirstName = firstName
	user.LastName = lastName

	if request != nil {
		if request.DisplayName != "" {
			user.FirstName, user.LastName = splitDisplayName(request.DisplayName)
		}
		if request.Phone != "" {
			user.Phone = request.Phone
		}
		if request.Language != "" {
			user.Language = request.Language
		}
	}

	return user
}

func splitDisplayName(name string) (string, string) {
	first, last, _ := strings.Cut(strings.TrimSpace(name), " ")
	return first, last
}

func (s *authService) GetProfile(ctx context.Context, uid string) (*AuthResponse, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{User: user, RequiresRoleSetup: user.RequiresRoleSetup()}, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, request *UpdateProfileRequest) (*models.User, error) {
	updates := map[string]interface{}{}
	if request.FirstName != "" {
		updates["first_name"] = utils.SanitizeString(request.FirstName)
	}
	if request.LastName != "" {
		updates["last_name"] = utils.SanitizeString(request.LastName)
	}
	if request.Phone != "" {
		updates["phone"] = request.Phone
	}
	if request.ProfilePicture != "" {
		updates["profile_picture"] = request.ProfilePicture
	}
	if request.Language != "" {
		updates["language"] = request.Language
	}

	if len(updates) > 0 {
		if err := s.userRepo.Update(ctx, userID, updates); err != nil {
			return nil, err
		}
	}

	return s.userRepo.GetByID(ctx, userID)
}

func (s *authService) SetupRoles(ctx context.Context, identity *auth.Identity, roles []models.Role) (*AuthResponse, error) {
	user, err := s.userRepo.GetByUID(ctx, identity.UID)
	if err == interfaces.ErrNotFound {
		response, registerErr := s.Register(ctx, identity, nil)
		if registerErr != nil {
			return nil, registerErr
		}
		user = response.User
	} else if err != nil {
		return nil, err
	}

	updated, err := s.UpdateRoles(ctx, user, roles)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{User: updated, RequiresRoleSetup: false}, nil
}

func (s *authService) UpdateRoles(ctx context.Context, user *models.User, roles []models.Role) (*models.User, error) {
	for _, role := range roles {
		if role == models.RoleAdmin && !user.HasRole(models.RoleAdmin) {
			return nil, ErrAdminRequired
		}
	}

	user.SetRoles(roles)

	if err := s.userRepo.SetRoles(ctx, user.ID, user.Roles, user.UserType); err != nil {
		return nil, err
	}

	s.logger.WithUserID(user.ID).WithFields(map[string]interface{}{
		"roles":     user.Roles,
		"user_type": user.UserType,
	}).Info("roles updated")

	user.UpdatedAt = time.Now()
	return user, nil
}

func (s *authService) ListUsers(ctx context.Context, params *utils.PaginationParams) ([]*models.User, int64, error) {
	return s.userRepo.List(ctx, params)
}

func (s *authService) ListUsersByRole(ctx context.Context, role models.Role, params *utils.PaginationParams) ([]*models.User, int64, error) {
	return s.userRepo.GetByRole(ctx, role, params)
}
