package validators

import (
	"boleia/internal/services"
)

func ValidateCreateBooking(request *services.CreateBookingRequest) ValidationErrors {
	errors := ValidateStruct(request)
	errors = append(errors, validateStayDates(request.CheckIn, request.CheckOut)...)
	return errors
}

func ValidateConfirmBooking(request *services.ConfirmBookingRequest) ValidationErrors {
	return ValidateStruct(request)
}
