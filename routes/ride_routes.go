package routes

import (
	"boleia/internal/handlers"
	"boleia/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRideRoutes wires the boleia surface: the driver management
// group, the public search, and the passenger seat-booking endpoints.
func SetupRideRoutes(r *gin.RouterGroup, rideHandler *handlers.RideHandler, authRequired gin.HandlerFunc) {
	driver := r.Group("/driver/rides")
	driver.Use(authRequired, middleware.ProfileRequired(), middleware.DriverRequired())
	{
		driver.POST("/create", rideHandler.CreateRide)
		driver.GET("/my-rides", rideHandler.GetMyRides)
		driver.GET("/stats", rideHandler.GetDriverStats)
		driver.PATCH("/:id", rideHandler.UpdateRide)
		driver.PATCH("/:id/cancel", rideHandler.CancelRide)
		driver.PATCH("/:id/complete", rideHandler.CompleteRide)
	}

	rides := r.Group("/rides")
	{
		rides.GET("/search", rideHandler.Search)
		rides.GET("/:id", rideHandler.GetRide)

		authed := rides.Group("")
		authed.Use(authRequired, middleware.ProfileRequired())
		{
			authed.POST("/:id/book", rideHandler.BookSeats)
			authed.GET("/bookings/mine", rideHandler.GetMySeatBookings)
			authed.PATCH("/bookings/:id/cancel", rideHandler.CancelSeatBooking)
		}
	}
}
