package routes

import (
	"boleia/internal/handlers"
	"boleia/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupPartnershipRoutes wires the partnership program. The whole
// group needs a profile; role checks sit on individual routes because
// drivers and hotel managers share the /partnerships prefix.
func SetupPartnershipRoutes(r *gin.RouterGroup, partnershipHandler *handlers.PartnershipHandler, authRequired gin.HandlerFunc) {
	partnerships := r.Group("/partnerships")
	partnerships.Use(authRequired, middleware.ProfileRequired())
	{
		partnerships.GET("/benefits", partnershipHandler.GetBenefits)

		// Driver surface
		partnerships.GET("/proposals", middleware.DriverRequired(), partnershipHandler.ListOpenProposals)
		partnerships.GET("/proposals/:id", middleware.DriverRequired(), partnershipHandler.GetProposal)
		partnerships.POST("/proposals/:id/accept", middleware.DriverRequired(), partnershipHandler.AcceptProposal)
		partnerships.POST("/proposals/:id/reject", middleware.DriverRequired(), partnershipHandler.RejectProposal)
		partnerships.GET("/my-applications", middleware.DriverRequired(), partnershipHandler.GetMyApplications)
		partnerships.GET("/my-partnerships", middleware.DriverRequired(), partnershipHandler.GetMyPartnerships)

		// Hotel manager surface
		partnerships.POST("/proposals", middleware.HotelManagerRequired(), partnershipHandler.CreateProposal)
		partnerships.PATCH("/proposals/:id/close", middleware.HotelManagerRequired(), partnershipHandler.CloseProposal)
		partnerships.GET("/my-proposals", middleware.HotelManagerRequired(), partnershipHandler.GetMyProposals)
		partnerships.GET("/proposals/:id/applications", middleware.HotelManagerRequired(), partnershipHandler.GetProposalApplications)
	}

	hotelPartnerships := r.Group("/hotels/:hotelId/partnerships")
	hotelPartnerships.Use(authRequired, middleware.ProfileRequired(), middleware.HotelManagerRequired())
	{
		hotelPartnerships.GET("", partnershipHandler.GetAccommodationPartnerships)
	}
}
