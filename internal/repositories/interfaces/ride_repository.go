package interfaces

import (
	"context"
	"time"

	"boleia/internal/models"
	"boleia/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RideSearchFilter narrows ride listings. Zero values mean "any".
type RideSearchFilter struct {
	FromCity     string
	ToCity       string
	FromProvince string
	ToProvince   string
	Date         *time.Time
	MinSeats     int
	MaxPrice     float64
	DriverID     primitive.ObjectID
}

type RideRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, ride *models.Ride) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ride, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.RideStatus) error

	// Search and listing
	Search(ctx context.Context, filter *RideSearchFilter, params *utils.PaginationParams) ([]*models.Ride, int64, error)
	GetByDriver(ctx context.Context, driverID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Ride, int64, error)

	// Seat inventory. Both run as single conditional updates so the seat
	// count can never go negative under concurrent bookings.
	ReserveSeats(ctx context.Context, id primitive.ObjectID, seats int) error
	ReleaseSeats(ctx context.Context, id primitive.ObjectID, seats int) error

	// Seat bookings
	CreateSeatBooking(ctx context.Context, booking *models.SeatBooking) error
	GetSeatBooking(ctx context.Context, id primitive.ObjectID) (*models.SeatBooking, error)
	GetSeatBookingsByRide(ctx context.Context, rideID primitive.ObjectID) ([]*models.SeatBooking, error)
	GetSeatBookingsByClient(ctx context.Context, clientID primitive.ObjectID, params *utils.PaginationParams) ([]*models.SeatBooking, int64, error)
	CancelSeatBooking(ctx context.Context, id primitive.ObjectID) error

	// Statistics
	CountCompletedByDriver(ctx context.Context, driverID primitive.ObjectID) (int64, error)
}
