package routes

import (
	"boleia/internal/handlers"
	"boleia/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes wires both sides of the booking lifecycle: the
// client group and the manager group with its status transitions.
func SetupBookingRoutes(r *gin.RouterGroup, bookingHandler *handlers.BookingHandler, authRequired gin.HandlerFunc) {
	bookings := r.Group("/bookings")
	bookings.Use(authRequired, middleware.ProfileRequired())
	{
		bookings.POST("", bookingHandler.CreateBooking)
		bookings.GET("/mine", bookingHandler.GetMyBookings)
		bookings.GET("/:id", bookingHandler.GetBooking)
		bookings.PATCH("/:id/cancel", bookingHandler.CancelBooking)
	}

	managed := r.Group("/hotel/bookings")
	managed.Use(authRequired, middleware.ProfileRequired(), middleware.HotelManagerRequired())
	{
		managed.GET("/my-bookings", bookingHandler.GetAccommodationBookings)
		managed.GET("/stats", bookingHandler.GetBookingStats)
		managed.PATCH("/:id/confirm", bookingHandler.ConfirmBooking)
		managed.PATCH("/:id/reject", bookingHandler.RejectBooking)
		managed.PATCH("/:id/checkin", bookingHandler.CheckIn)
		managed.PATCH("/:id/checkout", bookingHandler.CheckOut)
	}
}
