package services

import (
	"context"
	"testing"
	"time"

	"boleia/internal/models"
	"boleia/internal/repositories/interfaces"
	"boleia/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedRide(t *testing.T, repo *fakeRideRepo, driverID primitive.ObjectID, departureIn time.Duration, seats int) *models.Ride {
	t.Helper()
	ride := &models.Ride{
		DriverID:       driverID,
		From:           models.Place{City: "Maputo", Province: "Maputo Cidade"},
		To:             models.Place{City: "Xai-Xai", Province: "Gaza"},
		DepartureAt:    time.Now().Add(departureIn),
		MaxPassengers:  seats,
		AvailableSeats: seats,
		PricePerSeat:   800,
		Currency:       "MZN",
		Status:         models.RideStatusAvailable,
	}
	require.NoError(t, repo.Create(context.Background(), ride))
	return ride
}

func TestBookSeatsReservesAndPrices(t *testing.T) {
	rideRepo := newFakeRideRepo()
	notifier := &fakeNotifier{}
	service := NewRideService(rideRepo, nil, notifier, nil, testLogger())

	driverID := primitive.NewObjectID()
	clientID := primitive.NewObjectID()
	ride := seedRide(t, rideRepo, driverID, 48*time.Hour, 4)

	booking, err := service.BookSeats(context.Background(), clientID, ride.ID, 3)
	require.NoError(t, err)

	assert.Equal(t, 3, booking.Seats)
	assert.Equal(t, 2400.0, booking.TotalPrice)
	assert.Equal(t, "MZN", booking.Currency)
	assert.Equal(t, 1, ride.AvailableSeats)

	// The driver hears about the reservation.
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, driverID, notifier.sent[0].UserID)
}

func TestBookSeatsRefusesOversell(t *testing.T) {
	rideRepo := newFakeRideRepo()
	service := NewRideService(rideRepo, nil, nil, nil, testLogger())

	ride := seedRide(t, rideRepo, primitive.NewObjectID(), 48*time.Hour, 2)

	_, err := service.BookSeats(context.Background(), primitive.NewObjectID(), ride.ID, 3)
	assert.ErrorIs(t, err, interfaces.ErrInsufficientSeats)
	assert.Equal(t, 2, ride.AvailableSeats)
}

func TestBookSeatsRefusesDepartedRide(t *testing.T) {
	rideRepo := newFakeRideRepo()
	service := NewRideService(rideRepo, nil, nil, nil, testLogger())

	ride := seedRide(t, rideRepo, primitive.NewObjectID(), -1*time.Hour, 4)

	_, err := service.BookSeats(context.Background(), primitive.NewObjectID(), ride.ID, 1)
	assert.ErrorIs(t, err, ErrNotBookable)
}

func TestBookSeatsReleasesSeatsWhenInsertFails(t *testing.T) {
	rideRepo := newFakeRideRepo()
	rideRepo.failCreateSeatBooking = true
	service := NewRideService(rideRepo, nil, nil, nil, testLogger())

	ride := seedRide(t, rideRepo, primitive.NewObjectID(), 48*time.Hour, 4)

	_, err := service.BookSeats(context.Background(), primitive.NewObjectID(), ride.ID, 2)
	require.Error(t, err)

	// The compensating release hands the seats back.
	assert.Equal(t, 4, ride.AvailableSeats)
}

func TestCancelSeatBookingReleasesSeatsOnce(t *testing.T) {
	rideRepo := newFakeRideRepo()
	service := NewRideService(rideRepo, nil, nil, nil, testLogger())

	clientID := primitive.NewObjectID()
	ride := seedRide(t, rideRepo, primitive.NewObjectID(), 48*time.Hour, 4)

	booking, err := service.BookSeats(context.Background(), clientID, ride.ID, 2)
	require.NoError(t, err)
	require.Equal(t, 2, ride.AvailableSeats)

	require.NoError(t, service.CancelSeatBooking(context.Background(), clientID, booking.ID))
	assert.Equal(t, 4, ride.AvailableSeats)

	// A double cancel must not release the seats again.
	err = service.CancelSeatBooking(context.Background(), clientID, booking.ID)
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
	assert.Equal(t, 4, ride.AvailableSeats)
}

func TestCancelSeatBookingRequiresOwnership(t *testing.T) {
	rideRepo := newFakeRideRepo()
	service := NewRideService(rideRepo, nil, nil, nil, testLogger())

	clientID := primitive.NewObjectID()
	ride := seedRide(t, rideRepo, primitive.NewObjectID(), 48*time.Hour, 4)

	booking, err := service.BookSeats(context.Background(), clientID, ride.ID, 1)
	require.NoError(t, err)

	err = service.CancelSeatBooking(context.Background(), primitive.NewObjectID(), booking.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

type recordingListener struct {
	drivers []primitive.ObjectID
}

func (l *recordingListener) OnRideCompleted(_ context.Context, driverID primitive.ObjectID) {
	l.drivers = append(l.drivers, driverID)
}

func TestCompleteRideNotifiesListener(t *testing.T) {
	rideRepo := newFakeRideRepo()
	listener := &recordingListener{}
	service := NewRideService(rideRepo, nil, nil, listener, testLogger())

	driverID := primitive.NewObjectID()
	ride := seedRide(t, rideRepo, driverID, -2*time.Hour, 4)

	require.NoError(t, service.CompleteRide(context.Background(), driverID, ride.ID))

	assert.Equal(t, models.RideStatusCompleted, ride.Status)
	require.Len(t, listener.drivers, 1)
	assert.Equal(t, driverID, listener.drivers[0])

	// Completing twice is an invalid transition.
	err := service.CompleteRide(context.Background(), driverID, ride.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Len(t, listener.drivers, 1)
}

func TestCompleteRideRequiresOwnership(t *testing.T) {
	rideRepo := newFakeRideRepo()
	service := NewRideService(rideRepo, nil, nil, nil, testLogger())

	ride := seedRide(t, rideRepo, primitive.NewObjectID(), -2*time.Hour, 4)

	err := service.CompleteRide(context.Background(), primitive.NewObjectID(), ride.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCancelRideFansOutToSeatHolders(t *testing.T) {
	rideRepo := newFakeRideRepo()
	notifier := &fakeNotifier{}
	service := NewRideService(rideRepo, nil, notifier, nil, testLogger())

	driverID := primitive.NewObjectID()
	clientID := primitive.NewObjectID()
	ride := seedRide(t, rideRepo, driverID, 48*time.Hour, 4)

	_, err := service.BookSeats(context.Background(), clientID, ride.ID, 2)
	require.NoError(t, err)
	notifier.sent = nil

	require.NoError(t, service.CancelRide(context.Background(), driverID, ride.ID, "avaria do carro"))

	assert.Equal(t, models.RideStatusCancelled, ride.Status)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, clientID, notifier.sent[0].UserID)
	assert.True(t, notifier.sent[0].SendSMS)
}

func TestSearchFlagsUnderSeatedRidesUnbookable(t *testing.T) {
	rideRepo := newFakeRideRepo()
	service := NewRideService(rideRepo, nil, nil, nil, testLogger())

	full := seedRide(t, rideRepo, primitive.NewObjectID(), 24*time.Hour, 4)
	tight := seedRide(t, rideRepo, primitive.NewObjectID(), 24*time.Hour, 4)
	tight.AvailableSeats = 1

	results, total, err := service.Search(context.Background(), &SearchRidesRequest{
		FromCity:   "Maputo",
		ToCity:     "Xai-Xai",
		Passengers: 2,
	}, &utils.PaginationParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)

	bookableByRide := map[primitive.ObjectID]bool{}
	for _, result := range results {
		bookableByRide[result.Ride.ID] = result.Bookable
	}
	assert.True(t, bookableByRide[full.ID])
	assert.False(t, bookableByRide[tight.ID])
}

func TestCompatibilityScoreIsDeterministic(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	noon := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

	ride := &models.Ride{
		DepartureAt:    noon,
		MaxPassengers:  4,
		AvailableSeats: 4,
		PricePerSeat:   500,
	}
	request := &SearchRidesRequest{Date: &date, MaxPrice: 1000}

	// Noon departure on the searched day, half the price ceiling and a
	// full car: 100*(0.5*1 + 0.3*0.75 + 0.2*1) = 92.5.
	score := compatibilityScore(ride, request, time.Now())
	assert.Equal(t, 92.5, score)

	// Six hours off the noon anchor drops only the time component.
	ride.DepartureAt = noon.Add(6 * time.Hour)
	assert.Equal(t, 80.0, compatibilityScore(ride, request, time.Now()))
}

func TestUpdateRideOnlyForOwner(t *testing.T) {
	rideRepo := newFakeRideRepo()
	service := NewRideService(rideRepo, nil, nil, nil, testLogger())

	driverID := primitive.NewObjectID()
	ride := seedRide(t, rideRepo, driverID, 48*time.Hour, 4)

	price := 950.0
	_, err := service.UpdateRide(context.Background(), primitive.NewObjectID(), ride.ID, &UpdateRideRequest{PricePerSeat: &price})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := service.UpdateRide(context.Background(), driverID, ride.ID, &UpdateRideRequest{PricePerSeat: &price})
	require.NoError(t, err)
	assert.Equal(t, 950.0, updated.PricePerSeat)
}
