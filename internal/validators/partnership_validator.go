package validators

import (
	"boleia/internal/services"
)

func ValidateCreateProposal(request *services.CreateProposalRequest) ValidationErrors {
	return ValidateStruct(request)
}
