package handlers

import (
	"strconv"
	"strings"

	"boleia/internal/middleware"
	"boleia/internal/models"
	"boleia/internal/services"
	"boleia/internal/utils"
	"boleia/internal/validators"

	"github.com/gin-gonic/gin"
)

type AccommodationHandler struct {
	accommodationService services.AccommodationService
}

func NewAccommodationHandler(accommodationService services.AccommodationService) *AccommodationHandler {
	return &AccommodationHandler{accommodationService: accommodationService}
}

func (h *AccommodationHandler) CreateProperty(c *gin.Context) {
	user := middleware.GetUser(c)

	var request services.CreatePropertyRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Pedido inválido")
		return
	}

	if errs := validators.ValidateCreateProperty(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	accommodation, err := h.accommodationService.CreateProperty(c.Request.Context(), user.ID, &request)
	if err != nil {
		handleServiceError(c, err, "Alojamento")
		return
	}

	utils.CreatedResponse(c, "Alojamento criado", accommodation)
}

func (h *AccommodationHandler) UpdateProperty(c *gin.Context) {
	user := middleware.GetUser(c)

	propertyID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	var request services.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Pedido inválido")
		return
	}

	if errs := validators.ValidateUpdateProperty(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	accommodation, err := h.accommodationService.UpdateProperty(c.Request.Context(), user.ID, propertyID, &request)
	if err != nil {
		handleServiceError(c, err, "Alojamento")
		return
	}

	utils.SuccessResponse(c, "Alojamento atualizado", accommodation)
}

func (h *AccommodationHandler) DeactivateProperty(c *gin.Context) {
	user := middleware.GetUser(c)

	propertyID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.accommodationService.DeactivateProperty(c.Request.Context(), user.ID, propertyID); err != nil {
		handleServiceError(c, err, "Alojamento")
		return
	}

	utils.SuccessResponse(c, "Alojamento desativado", nil)
}

func (h *AccommodationHandler) GetMyProperties(c *gin.Context) {
	user := middleware.GetUser(c)
	params := utils.GetPaginationParams(c)

	properties, total, err := h.accommodationService.GetMyProperties(c.Request.Context(), user.ID, params)
	if err != nil {
		handleServiceError(c, err, "Alojamento")
		return
	}

	utils.SuccessResponseWithMeta(c, "", properties, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// UploadImage accepts a multipart photo for a property the caller
// hosts.
func (h *AccommodationHandler) UploadImage(c *gin.Context) {
	user := middleware.GetUser(c)

	propertyID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, "Imagem em falta")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.BadRequestResponse(c, "Imagem ilegível")
		return
	}
	defer file.Close()

	url, err := h.accommodationService.UploadImage(
		c.Request.Context(), user.ID, propertyID,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), fileHeader.Size, file,
	)
	if err != nil {
		handleServiceError(c, err, "Alojamento")
		return
	}

	utils.CreatedResponse(c, "Imagem carregada", gin.H{"url": url})
}

func (h *AccommodationHandler) GetAccommodation(c *gin.Context) {
	accommodationID, ok := paramObjectID(c, "hotelId")
	if !ok {
		return
	}

	detail, err := h.accommodationService.GetAccommodation(c.Request.Context(), accommodationID)
	if err != nil {
		handleServiceError(c, err, "Alojamento")
		return
	}

	utils.SuccessResponse(c, "", detail)
}

// Search is the public accommodation search.
func (h *AccommodationHandler) Search(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	request := services.SearchAccommodationsRequest{
		City:     c.Query("city"),
		Province: c.Query("province"),
		Type:     models.AccommodationType(c.Query("type")),
	}

	if maxPriceStr := c.Query("max_price"); maxPriceStr != "" {
		maxPrice, err := strconv.ParseFloat(maxPriceStr, 64)
		if err != nil || maxPrice < 0 {
			utils.BadRequestResponse(c, "Preço máximo inválido")
			return
		}
		request.MaxPrice = maxPrice
	}
	if guestsStr := c.Query("guests"); guestsStr != "" {
		guests, err := strconv.Atoi(guestsStr)
		if err != nil || guests < 1 {
			utils.BadRequestResponse(c, "Número de hóspedes inválido")
			return
		}
		request.Guests = guests
	}
	if amenities := c.Query("amenities"); amenities != "" {
		request.Amenities = strings.Split(amenities, ",")
	}

	accommodations, total, err := h.accommodationService.Search(c.Request.Context(), &request, params)
	if err != nil {
		handleServiceError(c, err, "Alojamento")
		return
	}

	utils.SuccessResponseWithMeta(c, "", accommodations, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// CheckAvailability quotes the active room types of an accommodation
// for a stay.
func (h *AccommodationHandler) CheckAvailability(c *gin.Context) {
	var request services.AvailabilityRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Pedido inválido")
		return
	}

	if errs := validators.ValidateAvailability(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	response, err := h.accommodationService.CheckAvailability(c.Request.Context(), &request)
	if err != nil {
		handleServiceError(c, err, "Alojamento")
		return
	}

	utils.SuccessResponse(c, "", response)
}
