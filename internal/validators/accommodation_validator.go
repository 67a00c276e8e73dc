package validators

import (
	"time"

	"boleia/internal/services"
	"boleia/internal/utils"
)

func ValidateCreateProperty(request *services.CreatePropertyRequest) ValidationErrors {
	errors := ValidateStruct(request)

	if !utils.IsValidProvince(request.Place.Province) {
		errors = append(errors, fieldError("place.province", "must be a Mozambican province"))
	}
	if request.ContactPhone != "" && !utils.IsValidPhone(request.ContactPhone) {
		errors = append(errors, fieldError("contact_phone", "must be a Mozambican phone number (+258 8X XXX XXXX)"))
	}

	return errors
}

func ValidateUpdateProperty(request *services.UpdatePropertyRequest) ValidationErrors {
	errors := ValidateStruct(request)

	if request.ContactPhone != nil && *request.ContactPhone != "" && !utils.IsValidPhone(*request.ContactPhone) {
		errors = append(errors, fieldError("contact_phone", "must be a Mozambican phone number (+258 8X XXX XXXX)"))
	}

	return errors
}

func ValidateAvailability(request *services.AvailabilityRequest) ValidationErrors {
	errors := ValidateStruct(request)
	errors = append(errors, validateStayDates(request.CheckIn, request.CheckOut)...)
	return errors
}

func ValidateCreateRoomType(request *services.CreateRoomTypeRequest) ValidationErrors {
	errors := ValidateStruct(request)

	if request.MinOccupancy > 0 && request.MinOccupancy > request.MaxOccupancy {
		errors = append(errors, fieldError("min_occupancy", "cannot exceed max_occupancy"))
	}

	return errors
}

func ValidateUpdateRoomType(request *services.UpdateRoomTypeRequest) ValidationErrors {
	return ValidateStruct(request)
}

// validateStayDates holds the rules every stay shares: chronological
// order, no past check-in, bounded length.
func validateStayDates(checkIn, checkOut time.Time) ValidationErrors {
	var errors ValidationErrors

	if checkIn.IsZero() || checkOut.IsZero() {
		return errors
	}

	if !checkOut.After(checkIn) {
		errors = append(errors, fieldError("check_out", "must be after check_in"))
		return errors
	}

	if utils.StartOfDay(checkIn).Before(utils.StartOfDay(time.Now())) {
		errors = append(errors, fieldError("check_in", "cannot be in the past"))
	}

	if utils.NightsBetween(checkIn, checkOut) > utils.MaxBookingNights {
		errors = append(errors, fieldError("check_out", "stay exceeds the maximum length"))
	}

	return errors
}
