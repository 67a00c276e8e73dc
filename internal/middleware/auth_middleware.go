package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"boleia/internal/models"
	"boleia/internal/utils"
	"boleia/pkg/auth"
)

// Context keys set by the auth middleware.
const (
	ContextIdentity = "identity"
	ContextUser     = "user"
	ContextUserID   = "user_id"
	ContextUserType = "user_type"
)

// UserLoader resolves a verified Firebase subject to a stored profile.
type UserLoader interface {
	GetByUID(ctx context.Context, uid string) (*models.User, error)
}

// AuthRequired verifies the bearer ID token and sets the caller's
// identity on the context. The actor is always the token subject;
// client-supplied ids are never trusted.
func AuthRequired(verifier auth.TokenVerifier, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		identity, err := verifier.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		c.Set(ContextIdentity, identity)

		// Registration runs before a profile exists, so a missing user
		// is not an error here.
		user, err := users.GetByUID(c.Request.Context(), identity.UID)
		if err == nil && user != nil {
			c.Set(ContextUser, user)
			c.Set(ContextUserID, user.ID)
			c.Set(ContextUserType, string(user.UserType))
		}

		c.Next()
	}
}

// ProfileRequired rejects callers whose token is valid but who never
// completed registration.
func ProfileRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(ContextUser); !exists {
			utils.ErrorResponse(c, 404, utils.CodeUserNotFound, "Utilizador não encontrado")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminRequired ensures the caller holds the admin role.
func AdminRequired() gin.HandlerFunc {
	return requireRole(models.RoleAdmin, utils.CodeAdminRequired, utils.MsgAdminRequired)
}

// DriverRequired ensures the caller holds the driver role.
func DriverRequired() gin.HandlerFunc {
	return requireRole(models.RoleDriver, utils.CodeForbidden, "Apenas motoristas podem realizar esta operação")
}

// HotelManagerRequired ensures the caller holds the hotel_manager role.
func HotelManagerRequired() gin.HandlerFunc {
	return requireRole(models.RoleHotelManager, utils.CodeForbidden, "Apenas gestores de hotel podem realizar esta operação")
}

func requireRole(role models.Role, code, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetUser(c)
		if user == nil {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		if !user.HasRole(role) {
			utils.ErrorResponse(c, 403, code, message)
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUser returns the authenticated user, or nil when the caller has no
// profile yet.
func GetUser(c *gin.Context) *models.User {
	value, exists := c.Get(ContextUser)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// GetIdentity returns the verified token identity.
func GetIdentity(c *gin.Context) *auth.Identity {
	value, exists := c.Get(ContextIdentity)
	if !exists {
		return nil
	}
	identity, ok := value.(*auth.Identity)
	if !ok {
		return nil
	}
	return identity
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}
