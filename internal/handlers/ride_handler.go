package handlers

import (
	"strconv"

	"boleia/internal/middleware"
	"boleia/internal/services"
	"boleia/internal/utils"
	"boleia/internal/validators"

	"github.com/gin-gonic/gin"
)

type RideHandler struct {
	rideService services.RideService
}

func NewRideHandler(rideService services.RideService) *RideHandler {
	return &RideHandler{rideService: rideService}
}

// CreateRide publishes a ride for the authenticated driver.
func (h *RideHandler) CreateRide(c *gin.Context) {
	user := middleware.GetUser(c)

	var request services.CreateRideRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Pedido inválido")
		return
	}

	if errs := validators.ValidateCreateRide(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	ride, err := h.rideService.CreateRide(c.Request.Context(), user.ID, &request)
	if err != nil {
		handleServiceError(c, err, "Boleia")
		return
	}

	utils.CreatedResponse(c, "Boleia publicada", ride)
}

func (h *RideHandler) UpdateRide(c *gin.Context) {
	user := middleware.GetUser(c)

	rideID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	var request services.UpdateRideRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Pedido inválido")
		return
	}

	if errs := validators.ValidateUpdateRide(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	ride, err := h.rideService.UpdateRide(c.Request.Context(), user.ID, rideID, &request)
	if err != nil {
		handleServiceError(c, err, "Boleia")
		return
	}

	utils.SuccessResponse(c, "Boleia atualizada", ride)
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

func (h *RideHandler) CancelRide(c *gin.Context) {
	user := middleware.GetUser(c)

	rideID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	var request cancelRequest
	if err := c.ShouldBindJSON(&request); err != nil && err.Error() != "EOF" {
		utils.BadRequestResponse(c, "Pedido inválido")
		return
	}

	if err := h.rideService.CancelRide(c.Request.Context(), user.ID, rideID, request.Reason); err != nil {
		handleServiceError(c, err, "Boleia")
		return
	}

	utils.SuccessResponse(c, "Boleia cancelada", nil)
}

func (h *RideHandler) CompleteRide(c *gin.Context) {
	user := middleware.GetUser(c)

	rideID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.rideService.CompleteRide(c.Request.Context(), user.ID, rideID); err != nil {
		handleServiceError(c, err, "Boleia")
		return
	}

	utils.SuccessResponse(c, "Boleia concluída", nil)
}

func (h *RideHandler) GetMyRides(c *gin.Context) {
	user := middleware.GetUser(c)
	params := utils.GetPaginationParams(c)

	rides, total, err := h.rideService.GetMyRides(c.Request.Context(), user.ID, params)
	if err != nil {
		handleServiceError(c, err, "Boleia")
		return
	}

	utils.SuccessResponseWithMeta(c, "", rides, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// GetDriverStats answers for the authenticated driver; the driver id
// never travels in the path.
func (h *RideHandler) GetDriverStats(c *gin.Context) {
	user := middleware.GetUser(c)

	stats, err := h.rideService.GetDriverStats(c.Request.Context(), user.ID)
	if err != nil {
		handleServiceError(c, err, "Boleia")
		return
	}

	utils.SuccessResponse(c, "", stats)
}

func (h *RideHandler) GetRide(c *gin.Context) {
	rideID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	ride, err := h.rideService.GetRide(c.Request.Context(), rideID)
	if err != nil {
		handleServiceError(c, err, "Boleia")
		return
	}

	utils.SuccessResponse(c, "", ride)
}

// Search is the public ride search. Under-seated rides come back with
// bookable=false rather than being filtered out.
func (h *RideHandler) Search(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	request := services.SearchRidesRequest{
		FromCity: c.Query("from_city"),
		ToCity:   c.Query("to_city"),
	}

	if dateStr := c.Query("date"); dateStr != "" {
		date, err := utils.ParseDate(dateStr)
		if err != nil {
			utils.BadRequestResponse(c, "Data inválida, use AAAA-MM-DD")
			return
		}
		request.Date = &date
	}
	if passengersStr := c.Query("passengers"); passengersStr != "" {
		passengers, err := strconv.Atoi(passengersStr)
		if err != nil || passengers < 1 {
			utils.BadRequestResponse(c, "Número de passageiros inválido")
			return
		}
		request.Passengers = passengers
	}
	if maxPriceStr := c.Query("max_price"); maxPriceStr != "" {
		maxPrice, err := strconv.ParseFloat(maxPriceStr, 64)
		if err != nil || maxPrice < 0 {
			utils.BadRequestResponse(c, "Preço máximo inválido")
			return
		}
		request.MaxPrice = maxPrice
	}

	results, total, err := h.rideService.Search(c.Request.Context(), &request, params)
	if err != nil {
		handleServiceError(c, err, "Boleia")
		return
	}

	utils.SuccessResponseWithMeta(c, "", results, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

type bookSeatsRequest struct {
	Seats int `json:"seats"`
}

// BookSeats reserves seats on a ride for the authenticated client.
func (h *RideHandler) BookSeats(c *gin.Context) {
	user := middleware.GetUser(c)

	rideID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	var request bookSeatsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Pedido inválido")
		return
	}

	if errs := validators.ValidateBookSeats(request.Seats); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	booking, err := h.rideService.BookSeats(c.Request.Context(), user.ID, rideID, request.Seats)
	if err != nil {
		handleServiceError(c, err, "Boleia")
		return
	}

	utils.CreatedResponse(c, "Lugares reservados", booking)
}

func (h *RideHandler) CancelSeatBooking(c *gin.Context) {
	user := middleware.GetUser(c)

	bookingID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.rideService.CancelSeatBooking(c.Request.Context(), user.ID, bookingID); err != nil {
		handleServiceError(c, err, "Reserva")
		return
	}

	utils.SuccessResponse(c, "Reserva cancelada", nil)
}

func (h *RideHandler) GetMySeatBookings(c *gin.Context) {
	user := middleware.GetUser(c)
	params := utils.GetPaginationParams(c)

	bookings, total, err := h.rideService.GetMySeatBookings(c.Request.Context(), user.ID, params)
	if err != nil {
		handleServiceError(c, err, "Reserva")
		return
	}

	utils.SuccessResponseWithMeta(c, "", bookings, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}
