package routes

import (
	"boleia/internal/handlers"
	"boleia/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupHotelRoutes wires the accommodation surface: the manager's
// property group, the public catalog, and room type management.
func SetupHotelRoutes(
	r *gin.RouterGroup,
	accommodationHandler *handlers.AccommodationHandler,
	roomTypeHandler *handlers.RoomTypeHandler,
	authRequired gin.HandlerFunc,
) {
	properties := r.Group("/hotel/properties")
	properties.Use(authRequired, middleware.ProfileRequired(), middleware.HotelManagerRequired())
	{
		properties.POST("", accommodationHandler.CreateProperty)
		properties.GET("/my-properties", accommodationHandler.GetMyProperties)
		properties.PATCH("/:id", accommodationHandler.UpdateProperty)
		properties.PATCH("/:id/deactivate", accommodationHandler.DeactivateProperty)
		properties.POST("/:id/images", accommodationHandler.UploadImage)
	}

	r.POST("/hotel/availability/check", accommodationHandler.CheckAvailability)

	hotels := r.Group("/hotels")
	{
		hotels.GET("/search", accommodationHandler.Search)
		hotels.GET("/:hotelId", accommodationHandler.GetAccommodation)
		hotels.GET("/:hotelId/room-types", roomTypeHandler.List)

		managed := hotels.Group("")
		managed.Use(authRequired, middleware.ProfileRequired(), middleware.HotelManagerRequired())
		{
			managed.POST("/:hotelId/room-types", roomTypeHandler.Create)
			managed.PATCH("/:hotelId/room-types/:roomTypeId", roomTypeHandler.Update)
			managed.DELETE("/:hotelId/room-types/:roomTypeId", roomTypeHandler.Deactivate)
		}
	}
}
