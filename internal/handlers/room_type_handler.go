package handlers

import (
	"boleia/internal/middleware"
	"boleia/internal/services"
	"boleia/internal/utils"
	"boleia/internal/validators"

	"github.com/gin-gonic/gin"
)

type RoomTypeHandler struct {
	roomTypeService services.RoomTypeService
}

func NewRoomTypeHandler(roomTypeService services.RoomTypeService) *RoomTypeHandler {
	return &RoomTypeHandler{roomTypeService: roomTypeService}
}

func (h *RoomTypeHandler) Create(c *gin.Context) {
	user := middleware.GetUser(c)

	accommodationID, ok := paramObjectID(c, "hotelId")
	if !ok {
		return
	}

	var request services.CreateRoomTypeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Pedido inválido")
		return
	}

	if errs := validators.ValidateCreateRoomType(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	roomType, err := h.roomTypeService.Create(c.Request.Context(), user.ID, accommodationID, &request)
	if err != nil {
		handleServiceError(c, err, "Tipo de quarto")
		return
	}

	utils.CreatedResponse(c, "Tipo de quarto criado", roomType)
}

func (h *RoomTypeHandler) Update(c *gin.Context) {
	user := middleware.GetUser(c)

	roomTypeID, ok := paramObjectID(c, "roomTypeId")
	if !ok {
		return
	}

	var request services.UpdateRoomTypeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Pedido inválido")
		return
	}

	if errs := validators.ValidateUpdateRoomType(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	roomType, err := h.roomTypeService.Update(c.Request.Context(), user.ID, roomTypeID, &request)
	if err != nil {
		handleServiceError(c, err, "Tipo de quarto")
		return
	}

	utils.SuccessResponse(c, "Tipo de quarto atualizado", roomType)
}

func (h *RoomTypeHandler) Deactivate(c *gin.Context) {
	user := middleware.GetUser(c)

	roomTypeID, ok := paramObjectID(c, "roomTypeId")
	if !ok {
		return
	}

	if err := h.roomTypeService.Deactivate(c.Request.Context(), user.ID, roomTypeID); err != nil {
		handleServiceError(c, err, "Tipo de quarto")
		return
	}

	utils.SuccessResponse(c, "Tipo de quarto desativado", nil)
}

// List returns the room types of an accommodation. Callers outside
// the hotel surface only see active ones.
func (h *RoomTypeHandler) List(c *gin.Context) {
	accommodationID, ok := paramObjectID(c, "hotelId")
	if !ok {
		return
	}

	activeOnly := c.Query("include_inactive") != "true"

	roomTypes, err := h.roomTypeService.List(c.Request.Context(), accommodationID, activeOnly)
	if err != nil {
		handleServiceError(c, err, "Tipo de quarto")
		return
	}

	utils.SuccessResponse(c, "", roomTypes)
}
