package validators

import (
	"strings"
	"time"

	"boleia/internal/services"
	"boleia/internal/utils"
)

func ValidateCreateRide(request *services.CreateRideRequest) ValidationErrors {
	errors := ValidateStruct(request)

	if !utils.IsValidProvince(request.From.Province) {
		errors = append(errors, fieldError("from.province", "must be a Mozambican province"))
	}
	if !utils.IsValidProvince(request.To.Province) {
		errors = append(errors, fieldError("to.province", "must be a Mozambican province"))
	}

	if strings.EqualFold(request.From.City, request.To.City) &&
		strings.EqualFold(request.From.Province, request.To.Province) {
		errors = append(errors, fieldError("to", "origin and destination must differ"))
	}

	if !request.DepartureAt.IsZero() && request.DepartureAt.Before(time.Now()) {
		errors = append(errors, fieldError("departure_at", "must be in the future"))
	}

	if request.Vehicle.LicensePlate != "" && !utils.IsValidLicensePlate(request.Vehicle.LicensePlate) {
		errors = append(errors, fieldError("vehicle.license_plate", "must be a valid license plate (AAA 999 AA)"))
	}

	if request.From.Latitude != nil && request.From.Longitude != nil &&
		request.To.Latitude != nil && request.To.Longitude != nil {
		distance := utils.CalculateDistance(
			*request.From.Latitude, *request.From.Longitude,
			*request.To.Latitude, *request.To.Longitude,
		)
		if distance > utils.MaxRideDistance {
			errors = append(errors, fieldError("to", "route is longer than any domestic trip"))
		}
	}

	return errors
}

func ValidateUpdateRide(request *services.UpdateRideRequest) ValidationErrors {
	errors := ValidateStruct(request)

	if request.DepartureAt != nil && request.DepartureAt.Before(time.Now()) {
		errors = append(errors, fieldError("departure_at", "must be in the future"))
	}

	return errors
}

func ValidateBookSeats(seats int) ValidationErrors {
	var errors ValidationErrors

	if seats < 1 {
		errors = append(errors, fieldError("seats", "must be at least 1"))
	}
	if seats > utils.MaxPassengersPerRide {
		errors = append(errors, fieldError("seats", "exceeds the seat limit per ride"))
	}

	return errors
}
