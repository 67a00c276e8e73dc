package handlers

import (
	"boleia/internal/middleware"
	"boleia/internal/models"
	"boleia/internal/services"
	"boleia/internal/utils"
	"boleia/internal/validators"

	"github.com/gin-gonic/gin"
)

type PartnershipHandler struct {
	partnershipService services.PartnershipService
}

func NewPartnershipHandler(partnershipService services.PartnershipService) *PartnershipHandler {
	return &PartnershipHandler{partnershipService: partnershipService}
}

type proposalDecisionRequest struct {
	Message string `json:"message"`
}

func (h *PartnershipHandler) CreateProposal(c *gin.Context) {
	user := middleware.GetUser(c)

	var request services.CreateProposalRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Pedido inválido")
		return
	}

	if errs := validators.ValidateCreateProposal(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	proposal, err := h.partnershipService.CreateProposal(c.Request.Context(), user.ID, &request)
	if err != nil {
		handleServiceError(c, err, "Proposta")
		return
	}

	utils.CreatedResponse(c, "Proposta publicada", proposal)
}

func (h *PartnershipHandler) CloseProposal(c *gin.Context) {
	user := middleware.GetUser(c)

	proposalID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.partnershipService.CloseProposal(c.Request.Context(), user.ID, proposalID); err != nil {
		handleServiceError(c, err, "Proposta")
		return
	}

	utils.SuccessResponse(c, "Proposta encerrada", nil)
}

func (h *PartnershipHandler) GetMyProposals(c *gin.Context) {
	user := middleware.GetUser(c)
	params := utils.GetPaginationParams(c)

	proposals, total, err := h.partnershipService.GetMyProposals(c.Request.Context(), user.ID, params)
	if err != nil {
		handleServiceError(c, err, "Proposta")
		return
	}

	utils.SuccessResponseWithMeta(c, "", proposals, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *PartnershipHandler) GetProposalApplications(c *gin.Context) {
	user := middleware.GetUser(c)
	params := utils.GetPaginationParams(c)

	proposalID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	applications, total, err := h.partnershipService.GetProposalApplications(c.Request.Context(), user.ID, proposalID, params)
	if err != nil {
		handleServiceError(c, err, "Proposta")
		return
	}

	utils.SuccessResponseWithMeta(c, "", applications, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *PartnershipHandler) GetAccommodationPartnerships(c *gin.Context) {
	user := middleware.GetUser(c)
	params := utils.GetPaginationParams(c)

	accommodationID, ok := paramObjectID(c, "hotelId")
	if !ok {
		return
	}

	partnerships, total, err := h.partnershipService.GetAccommodationPartnerships(c.Request.Context(), user.ID, accommodationID, params)
	if err != nil {
		handleServiceError(c, err, "Parceria")
		return
	}

	utils.SuccessResponseWithMeta(c, "", partnerships, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// ListOpenProposals is the driver-facing catalog of open proposals.
func (h *PartnershipHandler) ListOpenProposals(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	proposals, total, err := h.partnershipService.ListOpenProposals(c.Request.Context(), params)
	if err != nil {
		handleServiceError(c, err, "Proposta")
		return
	}

	utils.SuccessResponseWithMeta(c, "", proposals, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *PartnershipHandler) GetProposal(c *gin.Context) {
	proposalID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	proposal, err := h.partnershipService.GetProposal(c.Request.Context(), proposalID)
	if err != nil {
		handleServiceError(c, err, "Proposta")
		return
	}

	utils.SuccessResponse(c, "", proposal)
}

// AcceptProposal records the driver's acceptance and returns the
// resulting agreement and partnership.
func (h *PartnershipHandler) AcceptProposal(c *gin.Context) {
	user := middleware.GetUser(c)

	proposalID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	var request proposalDecisionRequest
	if err := c.ShouldBindJSON(&request); err != nil && err.Error() != "EOF" {
		utils.BadRequestResponse(c, "Pedido inválido")
		return
	}

	decision, err := h.partnershipService.AcceptProposal(c.Request.Context(), user.ID, proposalID, request.Message)
	if err != nil {
		handleServiceError(c, err, "Proposta")
		return
	}

	utils.CreatedResponse(c, "Proposta aceite", decision)
}

func (h *PartnershipHandler) RejectProposal(c *gin.Context) {
	user := middleware.GetUser(c)

	proposalID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	var request proposalDecisionRequest
	if err := c.ShouldBindJSON(&request); err != nil && err.Error() != "EOF" {
		utils.BadRequestResponse(c, "Pedido inválido")
		return
	}

	application, err := h.partnershipService.RejectProposal(c.Request.Context(), user.ID, proposalID, request.Message)
	if err != nil {
		handleServiceError(c, err, "Proposta")
		return
	}

	utils.SuccessResponse(c, "Proposta rejeitada", application)
}

func (h *PartnershipHandler) GetMyApplications(c *gin.Context) {
	user := middleware.GetUser(c)
	params := utils.GetPaginationParams(c)

	applications, total, err := h.partnershipService.GetMyApplications(c.Request.Context(), user.ID, params)
	if err != nil {
		handleServiceError(c, err, "Candidatura")
		return
	}

	utils.SuccessResponseWithMeta(c, "", applications, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *PartnershipHandler) GetMyPartnerships(c *gin.Context) {
	user := middleware.GetUser(c)
	params := utils.GetPaginationParams(c)

	partnerships, total, err := h.partnershipService.GetMyPartnerships(c.Request.Context(), user.ID, params)
	if err != nil {
		handleServiceError(c, err, "Parceria")
		return
	}

	utils.SuccessResponseWithMeta(c, "", partnerships, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// GetBenefits lists the benefit catalog, optionally scoped to one tier.
func (h *PartnershipHandler) GetBenefits(c *gin.Context) {
	var tier models.PartnershipTier
	if tierStr := c.Query("tier"); tierStr != "" {
		tier = models.PartnershipTier(tierStr)
		if !tier.IsValid() {
			utils.BadRequestResponse(c, "Nível de parceria inválido")
			return
		}
	}

	benefits, err := h.partnershipService.GetBenefits(c.Request.Context(), tier)
	if err != nil {
		handleServiceError(c, err, "Benefício")
		return
	}

	utils.SuccessResponse(c, "", benefits)
}
