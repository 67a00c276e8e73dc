package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"boleia/internal/models"
	"boleia/internal/repositories/interfaces"
	"boleia/internal/utils"
	"boleia/pkg/logger"
	"boleia/pkg/maps"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RideService publishes and books boleias. Seat inventory goes through
// the repository's conditional updates; the service never reads a seat
// count and writes it back.
type RideService interface {
	// Driver surface
	CreateRide(ctx context.Context, driverID primitive.ObjectID, request *CreateRideRequest) (*models.Ride, error)
	UpdateRide(ctx context.Context, driverID, rideID primitive.ObjectID, request *UpdateRideRequest) (*models.Ride, error)
	CancelRide(ctx context.Context, driverID, rideID primitive.ObjectID, reason string) error
	CompleteRide(ctx context.Context, driverID, rideID primitive.ObjectID) error
	GetMyRides(ctx context.Context, driverID primitive.ObjectID, params *utils.PaginationParams) ([]*RideView, int64, error)
	GetDriverStats(ctx context.Context, driverID primitive.ObjectID) (*DriverStats, error)

	// Public surface
	GetRide(ctx context.Context, id primitive.ObjectID) (*RideView, error)
	Search(ctx context.Context, request *SearchRidesRequest, params *utils.PaginationParams) ([]*RideSearchResult, int64, error)

	// Client surface
	BookSeats(ctx context.Context, clientID, rideID primitive.ObjectID, seats int) (*models.SeatBooking, error)
	CancelSeatBooking(ctx context.Context, clientID, bookingID primitive.ObjectID) error
	GetMySeatBookings(ctx context.Context, clientID primitive.ObjectID, params *utils.PaginationParams) ([]*models.SeatBooking, int64, error)
}

type PlaceRequest struct {
	Address   string   `json:"address" validate:"omitempty,max=255"`
	City      string   `json:"city" validate:"required,max=100"`
	Province  string   `json:"province" validate:"required"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
}

func (p *PlaceRequest) toPlace() models.Place {
	place := models.Place{
		Address:  utils.SanitizeString(p.Address),
		City:     utils.SanitizeString(p.City),
		Province: p.Province,
	}
	if p.Latitude != nil && p.Longitude != nil {
		place.Coordinates = models.NewGeoPoint(*p.Latitude, *p.Longitude)
	}
	return place
}

type VehicleRequest struct {
	Make         string `json:"make" validate:"omitempty,max=60"`
	Model        string `json:"model" validate:"omitempty,max=60"`
	Color        string `json:"color" validate:"omitempty,max=30"`
	LicensePlate string `json:"license_plate" validate:"omitempty"`
	Year         int    `json:"year" validate:"omitempty,min=1960,max=2030"`
}

type CreateRideRequest struct {
	From             PlaceRequest   `json:"from" validate:"required"`
	To               PlaceRequest   `json:"to" validate:"required"`
	DepartureAt      time.Time      `json:"departure_at" validate:"required"`
	MaxPassengers    int            `json:"max_passengers" validate:"required,min=1,max=8"`
	PricePerSeat     float64        `json:"price_per_seat" validate:"required,min=50,max=25000"`
	Vehicle          VehicleRequest `json:"vehicle"`
	AllowNegotiation bool           `json:"allow_negotiation"`
	PickupEnRoute    bool           `json:"pickup_en_route"`
	Notes            string         `json:"notes" validate:"omitempty,max=500"`
}

type UpdateRideRequest struct {
	DepartureAt   *time.Time `json:"departure_at"`
	PricePerSeat  *float64   `json:"price_per_seat" validate:"omitempty,min=50,max=25000"`
	Notes         *string    `json:"notes" validate:"omitempty,max=500"`
	PickupEnRoute *bool      `json:"pickup_en_route"`
}

type SearchRidesRequest struct {
	FromCity   string     `json:"from_city" form:"from_city"`
	ToCity     string     `json:"to_city" form:"to_city"`
	Date       *time.Time `json:"date" form:"-"`
	Passengers int        `json:"passengers" form:"passengers"`
	MaxPrice   float64    `json:"max_price" form:"max_price"`
}

// RideView is a ride with the read-time status normalization applied.
type RideView struct {
	*models.Ride
	DisplayStatus models.RideStatus `json:"display_status"`
}

// RideSearchResult decorates a search hit with the deterministic
// compatibility score and the bookable flag for the requested party
// size. Under-seated rides are returned unbookable, never dropped.
type RideSearchResult struct {
	*RideView
	Score    float64 `json:"score"`
	Bookable bool    `json:"bookable"`
}

type DriverStats struct {
	TotalRides     int64 `json:"total_rides"`
	CompletedRides int64 `json:"completed_rides"`
}

// RideCompletionListener is notified when a driver completes a ride so
// partnership counters can advance. Wired to the partnership service.
type RideCompletionListener interface {
	OnRideCompleted(ctx context.Context, driverID primitive.ObjectID)
}

type rideService struct {
	rideRepo     interfaces.RideRepository
	mapsProvider maps.Provider
	notifier     NotificationService
	onCompletion RideCompletionListener
	logger       *logger.Logger
}

// NewRideService wires the ride domain. mapsProvider, notifier and
// onCompletion may all be nil.
func NewRideService(
	rideRepo interfaces.RideRepository,
	mapsProvider maps.Provider,
	notifier NotificationService,
	onCompletion RideCompletionListener,
	logger *logger.Logger,
) RideService {
	return &rideService{
		rideRepo:     rideRepo,
		mapsProvider: mapsProvider,
		notifier:     notifier,
		onCompletion: onCompletion,
		logger:       logger,
	}
}

func (s *rideService) CreateRide(ctx context.Context, driverID primitive.ObjectID, request *CreateRideRequest) (*models.Ride, error) {
	ride := &models.Ride{
		DriverID:      driverID,
		From:          request.From.toPlace(),
		To:            request.To.toPlace(),
		DepartureAt:   request.DepartureAt,
		MaxPassengers: request.MaxPassengers,
		PricePerSeat:  request.PricePerSeat,
		Currency:      utils.DefaultCurrency,
		Vehicle: models.Vehicle{
			Make:         request.Vehicle.Make,
			Model:        request.Vehicle.Model,
			Color:        request.Vehicle.Color,
			LicensePlate: request.Vehicle.LicensePlate,
			Year:         request.Vehicle.Year,
		},
		Status:           models.RideStatusAvailable,
		AllowNegotiation: request.AllowNegotiation,
		PickupEnRoute:    request.PickupEnRoute,
		Notes:            utils.SanitizeString(request.Notes),
	}

	ride.DistanceKM = s.routeDistanceKM(ctx, ride.From, ride.To)

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, fmt.Errorf("failed to create ride: %w", err)
	}

	s.logger.WithUserID(driverID).WithFields(map[string]interface{}{
		"ride_id":   ride.ID.Hex(),
		"from_city": ride.From.City,
		"to_city":   ride.To.City,
	}).Info("ride published")

	return ride, nil
}

// routeDistanceKM asks the maps provider for the driving distance and
// falls back to great-circle when unconfigured or failing.
func (s *rideService) routeDistanceKM(ctx context.Context, from, to models.Place) float64 {
	if from.Coordinates.IsZero() || to.Coordinates.IsZero() {
		return 0
	}

	if s.mapsProvider != nil {
		estimate, err := s.mapsProvider.DrivingDistance(ctx,
			maps.Location{Latitude: from.Coordinates.Latitude(), Longitude: from.Coordinates.Longitude()},
			maps.Location{Latitude: to.Coordinates.Latitude(), Longitude: to.Coordinates.Longitude()},
		)
		if err == nil {
			return utils.RoundCurrency(float64(estimate.DistanceMeters) / 1000)
		}
		s.logger.WithError(err).Warn("driving distance lookup failed, using haversine")
	}

	return utils.RoundCurrency(utils.CalculateDistance(
		from.Coordinates.Latitude(), from.Coordinates.Longitude(),
		to.Coordinates.Latitude(), to.Coordinates.Longitude(),
	))
}

func (s *rideService) UpdateRide(ctx context.Context, driverID, rideID primitive.ObjectID, request *UpdateRideRequest) (*models.Ride, error) {
	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if ride.DriverID != driverID {
		return nil, ErrForbidden
	}

	updates := map[string]interface{}{}
	if request.DepartureAt != nil {
		updates["departure_at"] = *request.DepartureAt
	}
	if request.PricePerSeat != nil {
		updates["price_per_seat"] = *request.PricePerSeat
	}
	if request.Notes != nil {
		updates["notes"] = utils.SanitizeString(*request.Notes)
	}
	if request.PickupEnRoute != nil {
		updates["pickup_en_route"] = *request.PickupEnRoute
	}

	if len(updates) > 0 {
		if err := s.rideRepo.Update(ctx, rideID, updates); err != nil {
			return nil, err
		}
	}

	return s.rideRepo.GetByID(ctx, rideID)
}

func (s *rideService) CancelRide(ctx context.Context, driverID, rideID primitive.ObjectID, reason string) error {
	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return err
	}
	if ride.DriverID != driverID {
		return ErrForbidden
	}

	switch ride.Status {
	case models.RideStatusCompleted, models.RideStatusCancelled:
		return ErrInvalidTransition
	}

	now := time.Now()
	err = s.rideRepo.Update(ctx, rideID, map[string]interface{}{
		"status":        models.RideStatusCancelled,
		"cancelled_at":  now,
		"cancel_reason": utils.SanitizeString(reason),
	})
	if err != nil {
		return err
	}

	s.notifySeatHolders(ctx, ride, reason)

	return nil
}

func (s *rideService) notifySeatHolders(ctx context.Context, ride *models.Ride, reason string) {
	if s.notifier == nil {
		return
	}

	bookings, err := s.rideRepo.GetSeatBookingsByRide(ctx, ride.ID)
	if err != nil {
		s.logger.WithError(err).WithField("ride_id", ride.ID.Hex()).Warn("failed to load seat bookings for cancellation fan-out")
		return
	}

	for _, booking := range bookings {
		if booking.Status != "reserved" {
			continue
		}
		input := &NotificationInput{
			UserID:  booking.ClientID,
			Type:    models.NotificationTypeRideCancelled,
			Title:   "Boleia cancelada",
			Message: fmt.Sprintf("A boleia %s → %s foi cancelada pelo motorista", ride.From.City, ride.To.City),
			Data:    map[string]interface{}{"ride_id": ride.ID.Hex(), "reason": reason},
			SendSMS: true,
		}
		if err := s.notifier.Notify(ctx, input); err != nil {
			s.logger.WithError(err).WithUserID(booking.ClientID).Warn("ride cancellation notification failed")
		}
	}
}

func (s *rideService) CompleteRide(ctx context.Context, driverID, rideID primitive.ObjectID) error {
	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return err
	}
	if ride.DriverID != driverID {
		return ErrForbidden
	}

	switch ride.Status {
	case models.RideStatusCompleted, models.RideStatusCancelled:
		return ErrInvalidTransition
	}

	if err := s.rideRepo.UpdateStatus(ctx, rideID, models.RideStatusCompleted); err != nil {
		return err
	}

	if s.onCompletion != nil {
		s.onCompletion.OnRideCompleted(ctx, driverID)
	}

	return nil
}

func (s *rideService) GetMyRides(ctx context.Context, driverID primitive.ObjectID, params *utils.PaginationParams) ([]*RideView, int64, error) {
	rides, total, err := s.rideRepo.GetByDriver(ctx, driverID, params)
	if err != nil {
		return nil, 0, err
	}

	return toRideViews(rides), total, nil
}

func (s *rideService) GetDriverStats(ctx context.Context, driverID primitive.ObjectID) (*DriverStats, error) {
	_, total, err := s.rideRepo.GetByDriver(ctx, driverID, &utils.PaginationParams{Page: 1, PageSize: 1, Sort: "created_at", Order: "desc"})
	if err != nil {
		return nil, err
	}

	completed, err := s.rideRepo.CountCompletedByDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}

	return &DriverStats{TotalRides: total, CompletedRides: completed}, nil
}

func (s *rideService) GetRide(ctx context.Context, id primitive.ObjectID) (*RideView, error) {
	ride, err := s.rideRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toRideView(ride), nil
}

func (s *rideService) Search(ctx context.Context, request *SearchRidesRequest, params *utils.PaginationParams) ([]*RideSearchResult, int64, error) {
	passengers := request.Passengers
	if passengers < 1 {
		passengers = 1
	}

	filter := &interfaces.RideSearchFilter{
		FromCity: request.FromCity,
		ToCity:   request.ToCity,
		Date:     request.Date,
		MaxPrice: request.MaxPrice,
	}

	rides, total, err := s.rideRepo.Search(ctx, filter, params)
	if err != nil {
		return nil, 0, err
	}

	now := time.Now()
	results := make([]*RideSearchResult, 0, len(rides))
	for _, ride := range rides {
		results = append(results, &RideSearchResult{
			RideView: toRideView(ride),
			Score:    compatibilityScore(ride, request, now),
			Bookable: ride.IsBookable(now) && ride.AvailableSeats >= passengers,
		})
	}

	return results, total, nil
}

// compatibilityScore ranks search hits on a 0..100 scale from departure
// proximity, price headroom and seat headroom. Purely deterministic so
// the same query always orders the same way.
func compatibilityScore(ride *models.Ride, request *SearchRidesRequest, now time.Time) float64 {
	timeScore := 1.0
	if request.Date != nil {
		hoursOff := math.Abs(ride.DepartureAt.Sub(utils.StartOfDay(*request.Date).Add(12 * time.Hour)).Hours())
		timeScore = math.Max(0, 1-hoursOff/24)
	} else {
		// Sooner departures rank higher on open-date searches.
		hoursAway := ride.DepartureAt.Sub(now).Hours()
		timeScore = math.Max(0, 1-hoursAway/(14*24))
	}

	priceScore := 1.0
	if request.MaxPrice > 0 && ride.PricePerSeat > 0 {
		priceScore = math.Max(0, 1-ride.PricePerSeat/request.MaxPrice/2)
	}

	seatScore := 0.0
	if ride.MaxPassengers > 0 {
		seatScore = float64(ride.AvailableSeats) / float64(ride.MaxPassengers)
	}

	score := 100 * (0.5*timeScore + 0.3*priceScore + 0.2*seatScore)
	return math.Round(score*10) / 10
}

func (s *rideService) BookSeats(ctx context.Context, clientID, rideID primitive.ObjectID, seats int) (*models.SeatBooking, error) {
	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if !ride.IsBookable(time.Now()) {
		return nil, ErrNotBookable
	}

	// The conditional decrement is the gate; the check above only
	// produces a friendlier error for rides long gone.
	if err := s.rideRepo.ReserveSeats(ctx, rideID, seats); err != nil {
		return nil, err
	}

	booking := &models.SeatBooking{
		RideID:     rideID,
		ClientID:   clientID,
		Seats:      seats,
		TotalPrice: utils.RoundCurrency(ride.PricePerSeat * float64(seats)),
		Currency:   ride.Currency,
	}

	if err := s.rideRepo.CreateSeatBooking(ctx, booking); err != nil {
		// Hand the seats back; the reservation went through.
		if releaseErr := s.rideRepo.ReleaseSeats(ctx, rideID, seats); releaseErr != nil {
			s.logger.WithError(releaseErr).WithField("ride_id", rideID.Hex()).Error("failed to release seats after booking failure")
		}
		return nil, fmt.Errorf("failed to create seat booking: %w", err)
	}

	if s.notifier != nil {
		input := &NotificationInput{
			UserID:  ride.DriverID,
			Type:    models.NotificationTypeSeatsReserved,
			Title:   "Lugares reservados",
			Message: fmt.Sprintf("%d lugar(es) reservado(s) na sua boleia %s → %s", seats, ride.From.City, ride.To.City),
			Data:    map[string]interface{}{"ride_id": rideID.Hex(), "seats": seats},
		}
		if err := s.notifier.Notify(ctx, input); err != nil {
			s.logger.WithError(err).WithUserID(ride.DriverID).Warn("seat reservation notification failed")
		}
	}

	return booking, nil
}

func (s *rideService) CancelSeatBooking(ctx context.Context, clientID, bookingID primitive.ObjectID) error {
	booking, err := s.rideRepo.GetSeatBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.ClientID != clientID {
		return ErrForbidden
	}

	// Conditional on status so a double cancel releases seats once.
	if err := s.rideRepo.CancelSeatBooking(ctx, bookingID); err != nil {
		return err
	}

	if err := s.rideRepo.ReleaseSeats(ctx, booking.RideID, booking.Seats); err != nil {
		s.logger.WithError(err).WithField("ride_id", booking.RideID.Hex()).Error("failed to release seats on cancellation")
	}

	return nil
}

func (s *rideService) GetMySeatBookings(ctx context.Context, clientID primitive.ObjectID, params *utils.PaginationParams) ([]*models.SeatBooking, int64, error) {
	return s.rideRepo.GetSeatBookingsByClient(ctx, clientID, params)
}

func toRideView(ride *models.Ride) *RideView {
	return &RideView{Ride: ride, DisplayStatus: ride.DisplayStatus(time.Now())}
}

func toRideViews(rides []*models.Ride) []*RideView {
	views := make([]*RideView, 0, len(rides))
	for _, ride := range rides {
		views = append(views, toRideView(ride))
	}
	return views
}
