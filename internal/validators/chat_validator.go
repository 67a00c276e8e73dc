package validators

import (
	"boleia/internal/services"
	"boleia/internal/utils"
)

func ValidateStartConversation(request *services.StartConversationRequest) ValidationErrors {
	return ValidateStruct(request)
}

func ValidateMessageContent(content string) ValidationErrors {
	var errors ValidationErrors

	if utils.SanitizeString(content) == "" {
		errors = append(errors, fieldError("content", "is required"))
	}
	if len(content) > utils.MaxMessageLength {
		errors = append(errors, fieldError("content", "exceeds the maximum message length"))
	}

	return errors
}
