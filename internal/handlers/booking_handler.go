package handlers

import (
	"boleia/internal/middleware"
	"boleia/internal/models"
	"boleia/internal/services"
	"boleia/internal/utils"
	"boleia/internal/validators"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingService services.BookingService
}

func NewBookingHandler(bookingService services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	user := middleware.GetUser(c)

	var request services.CreateBookingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Pedido inválido")
		return
	}

	if errs := validators.ValidateCreateBooking(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), user.ID, &request)
	if err != nil {
		handleServiceError(c, err, "Reserva")
		return
	}

	utils.CreatedResponse(c, "Reserva criada", booking)
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	user := middleware.GetUser(c)

	bookingID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.bookingService.CancelBooking(c.Request.Context(), user.ID, bookingID); err != nil {
		handleServiceError(c, err, "Reserva")
		return
	}

	utils.SuccessResponse(c, "Reserva cancelada", nil)
}

func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	user := middleware.GetUser(c)
	params := utils.GetPaginationParams(c)

	bookings, total, err := h.bookingService.GetMyBookings(c.Request.Context(), user.ID, params)
	if err != nil {
		handleServiceError(c, err, "Reserva")
		return
	}

	utils.SuccessResponseWithMeta(c, "", bookings, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	user := middleware.GetUser(c)

	bookingID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	booking, err := h.bookingService.GetBooking(c.Request.Context(), user.ID, bookingID)
	if err != nil {
		handleServiceError(c, err, "Reserva")
		return
	}

	utils.SuccessResponse(c, "", booking)
}

// ConfirmBooking confirms a pending booking, capturing payment when
// the request carries payment details.
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	user := middleware.GetUser(c)

	bookingID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	var request services.ConfirmBookingRequest
	if err := c.ShouldBindJSON(&request); err != nil && err.Error() != "EOF" {
		utils.BadRequestResponse(c, "Pedido inválido")
		return
	}

	if errs := validators.ValidateConfirmBooking(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	booking, err := h.bookingService.ConfirmBooking(c.Request.Context(), user.ID, bookingID, &request)
	if err != nil {
		handleServiceError(c, err, "Reserva")
		return
	}

	utils.SuccessResponse(c, "Reserva confirmada", booking)
}

func (h *BookingHandler) RejectBooking(c *gin.Context) {
	user := middleware.GetUser(c)

	bookingID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	var request cancelRequest
	if err := c.ShouldBindJSON(&request); err != nil && err.Error() != "EOF" {
		utils.BadRequestResponse(c, "Pedido inválido")
		return
	}

	if err := h.bookingService.RejectBooking(c.Request.Context(), user.ID, bookingID, request.Reason); err != nil {
		handleServiceError(c, err, "Reserva")
		return
	}

	utils.SuccessResponse(c, "Reserva rejeitada", nil)
}

func (h *BookingHandler) CheckIn(c *gin.Context) {
	user := middleware.GetUser(c)

	bookingID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.bookingService.CheckIn(c.Request.Context(), user.ID, bookingID); err != nil {
		handleServiceError(c, err, "Reserva")
		return
	}

	utils.SuccessResponse(c, "Check-in registado", nil)
}

func (h *BookingHandler) CheckOut(c *gin.Context) {
	user := middleware.GetUser(c)

	bookingID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.bookingService.CheckOut(c.Request.Context(), user.ID, bookingID); err != nil {
		handleServiceError(c, err, "Reserva")
		return
	}

	utils.SuccessResponse(c, "Check-out registado", nil)
}

// GetAccommodationBookings lists the bookings of one of the caller's
// properties, selected by the hotel_id query, optionally filtered by
// status.
func (h *BookingHandler) GetAccommodationBookings(c *gin.Context) {
	user := middleware.GetUser(c)
	params := utils.GetPaginationParams(c)

	accommodationID, ok := queryObjectID(c, "hotel_id")
	if !ok {
		return
	}

	var status models.BookingStatus
	if statusStr := c.Query("status"); statusStr != "" {
		status = models.BookingStatus(statusStr)
		if !status.IsValid() {
			utils.BadRequestResponse(c, "Estado de reserva inválido")
			return
		}
	}

	bookings, total, err := h.bookingService.GetAccommodationBookings(c.Request.Context(), user.ID, accommodationID, status, params)
	if err != nil {
		handleServiceError(c, err, "Reserva")
		return
	}

	utils.SuccessResponseWithMeta(c, "", bookings, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *BookingHandler) GetBookingStats(c *gin.Context) {
	user := middleware.GetUser(c)

	accommodationID, ok := queryObjectID(c, "hotel_id")
	if !ok {
		return
	}

	stats, err := h.bookingService.GetBookingStats(c.Request.Context(), user.ID, accommodationID)
	if err != nil {
		handleServiceError(c, err, "Reserva")
		return
	}

	utils.SuccessResponse(c, "", stats)
}
