package handlers

import (
	"net/http"

	"boleia/internal/repositories/interfaces"
	"boleia/internal/services"
	"boleia/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// handleServiceError maps repository and service sentinels onto the
// wire error taxonomy. Anything unmapped is a 500 with the generic
// Portuguese message; details stay in the logs.
func handleServiceError(c *gin.Context, err error, resource string) {
	switch err {
	case interfaces.ErrNotFound:
		utils.NotFoundResponse(c, resource)
	case interfaces.ErrDuplicate:
		utils.ConflictResponse(c, utils.CodeConflict, "Registo duplicado")
	case interfaces.ErrInsufficientSeats:
		utils.ConflictResponse(c, utils.CodeSeatsUnavailable, utils.MsgSeatsUnavailable)
	case interfaces.ErrInsufficientUnits:
		utils.ConflictResponse(c, utils.CodeUnitsUnavailable, utils.MsgUnitsUnavailable)
	case services.ErrAdminRequired:
		utils.ErrorResponse(c, http.StatusForbidden, utils.CodeAdminRequired, utils.MsgAdminRequired)
	case services.ErrForbidden:
		utils.ForbiddenResponse(c)
	case services.ErrInvalidTransition:
		utils.ConflictResponse(c, utils.CodeInvalidTransition, "Transição de estado inválida")
	case services.ErrProposalClosed:
		utils.ConflictResponse(c, utils.CodeProposalClosed, "Esta proposta já não está aberta")
	case services.ErrNotBookable:
		utils.ConflictResponse(c, utils.CodeSeatsUnavailable, utils.MsgSeatsUnavailable)
	case services.ErrPaymentFailed:
		utils.ErrorResponse(c, http.StatusBadGateway, utils.CodePaymentFailed, "Não foi possível processar o pagamento")
	default:
		utils.InternalServerErrorResponse(c)
	}
}

// paramObjectID parses a path parameter as an ObjectID, answering 400
// itself on failure.
func paramObjectID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "Identificador inválido")
		return primitive.NilObjectID, false
	}
	return id, true
}

// queryObjectID is paramObjectID for required query parameters.
func queryObjectID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Query(name))
	if err != nil {
		utils.BadRequestResponse(c, "Identificador inválido")
		return primitive.NilObjectID, false
	}
	return id, true
}
