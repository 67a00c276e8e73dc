package handlers

import (
	"boleia/internal/middleware"
	"boleia/internal/models"
	"boleia/internal/services"
	"boleia/internal/utils"
	"boleia/internal/validators"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates the profile for a verified Firebase identity.
// Idempotent: repeating the call returns the existing profile.
func (h *AuthHandler) Register(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		utils.UnauthorizedResponse(c)
		return
	}

	var request services.RegisterRequest
	if err := c.ShouldBindJSON(&request); err != nil && err.Error() != "EOF" {
		utils.BadRequestResponse(c, "Pedido inválido")
		return
	}

	if errs := validators.ValidateRegister(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	response, err := h.authService.Register(c.Request.Context(), identity, &request)
	if err != nil {
		handleServiceError(c, err, "Utilizador")
		return
	}

	utils.SuccessResponse(c, "Registo concluído", response)
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		utils.UnauthorizedResponse(c)
		return
	}

	response, err := h.authService.GetProfile(c.Request.Context(), identity.UID)
	if err != nil {
		handleServiceError(c, err, "Utilizador")
		return
	}

	utils.SuccessResponse(c, "", response)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	user := middleware.GetUser(c)

	var request services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Pedido inválido")
		return
	}

	if errs := validators.ValidateUpdateProfile(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	updated, err := h.authService.UpdateProfile(c.Request.Context(), user.ID, &request)
	if err != nil {
		handleServiceError(c, err, "Utilizador")
		return
	}

	utils.SuccessResponse(c, "Perfil atualizado", updated)
}

type rolesRequest struct {
	Roles []models.Role `json:"roles"`
}

// SetupRoles is the first-login role choice; it creates the profile on
// the fly when registration was skipped.
func (h *AuthHandler) SetupRoles(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		utils.UnauthorizedResponse(c)
		return
	}

	var request rolesRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Pedido inválido")
		return
	}

	if errs := validators.ValidateRoles(request.Roles); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	response, err := h.authService.SetupRoles(c.Request.Context(), identity, request.Roles)
	if err != nil {
		handleServiceError(c, err, "Utilizador")
		return
	}

	utils.SuccessResponse(c, "Papéis configurados", response)
}

// UpdateRoles replaces the caller's role set. Granting admin requires
// the caller to already hold admin.
func (h *AuthHandler) UpdateRoles(c *gin.Context) {
	user := middleware.GetUser(c)

	var request rolesRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Pedido inválido")
		return
	}

	if errs := validators.ValidateRoles(request.Roles); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	updated, err := h.authService.UpdateRoles(c.Request.Context(), user, request.Roles)
	if err != nil {
		handleServiceError(c, err, "Utilizador")
		return
	}

	utils.SuccessResponse(c, "Papéis atualizados", updated)
}

// ListUsers is the admin user listing, optionally filtered by role.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	role := models.Role(c.Query("role"))

	var (
		users []*models.User
		total int64
		err   error
	)
	if role != "" {
		if !models.IsValidRole(role) {
			utils.BadRequestResponse(c, "Papel desconhecido")
			return
		}
		users, total, err = h.authService.ListUsersByRole(c.Request.Context(), role, params)
	} else {
		users, total, err = h.authService.ListUsers(c.Request.Context(), params)
	}
	if err != nil {
		handleServiceError(c, err, "Utilizador")
		return
	}

	utils.SuccessResponseWithMeta(c, "", users, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}
