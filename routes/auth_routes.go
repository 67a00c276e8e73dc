package routes

import (
	"boleia/internal/handlers"
	"boleia/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes wires the identity surface. Registration and role
// setup only need a verified token; everything else needs a stored
// profile.
func SetupAuthRoutes(r *gin.RouterGroup, authHandler *handlers.AuthHandler, authRequired gin.HandlerFunc) {
	auth := r.Group("/auth")
	auth.Use(authRequired)
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/setup-user-roles", authHandler.SetupRoles)

		auth.GET("/profile", middleware.ProfileRequired(), authHandler.GetProfile)
		auth.PUT("/profile", middleware.ProfileRequired(), authHandler.UpdateProfile)
		auth.PUT("/roles", middleware.ProfileRequired(), authHandler.UpdateRoles)
	}

	admin := r.Group("/admin")
	admin.Use(authRequired, middleware.ProfileRequired(), middleware.AdminRequired())
	{
		admin.GET("/users", authHandler.ListUsers)
	}
}
