package validators

import (
	"boleia/internal/models"
	"boleia/internal/services"
	"boleia/internal/utils"
)

func ValidateRegister(request *services.RegisterRequest) ValidationErrors {
	errors := ValidateStruct(request)

	if request.Phone != "" && !utils.IsValidPhone(request.Phone) {
		errors = append(errors, fieldError("phone", "must be a Mozambican phone number (+258 8X XXX XXXX)"))
	}

	return errors
}

func ValidateUpdateProfile(request *services.UpdateProfileRequest) ValidationErrors {
	errors := ValidateStruct(request)

	if request.Phone != "" && !utils.IsValidPhone(request.Phone) {
		errors = append(errors, fieldError("phone", "must be a Mozambican phone number (+258 8X XXX XXXX)"))
	}
	if request.FirstName != "" && !utils.IsValidName(request.FirstName) {
		errors = append(errors, fieldError("first_name", "contains invalid characters"))
	}
	if request.LastName != "" && !utils.IsValidName(request.LastName) {
		errors = append(errors, fieldError("last_name", "contains invalid characters"))
	}

	return errors
}

// ValidateRoles checks a role-set update. Emptying the role set is not
// allowed once it has been chosen.
func ValidateRoles(roles []models.Role) ValidationErrors {
	var errors ValidationErrors

	if len(roles) == 0 {
		errors = append(errors, fieldError("roles", "at least one role is required"))
		return errors
	}

	for _, role := range roles {
		if !models.IsValidRole(role) {
			errors = append(errors, fieldError("roles", "unknown role: "+string(role)))
		}
	}

	return errors
}
