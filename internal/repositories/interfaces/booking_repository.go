package interfaces

import (
	"context"

	"boleia/internal/models"
	"boleia/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, booking *models.HotelBooking) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.HotelBooking, error)
	GetByReference(ctx context.Context, reference string) (*models.HotelBooking, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	// Listing
	GetByClient(ctx context.Context, clientID primitive.ObjectID, params *utils.PaginationParams) ([]*models.HotelBooking, int64, error)
	GetByAccommodation(ctx context.Context, accommodationID primitive.ObjectID, params *utils.PaginationParams) ([]*models.HotelBooking, int64, error)
	GetByStatus(ctx context.Context, accommodationID primitive.ObjectID, status models.BookingStatus, params *utils.PaginationParams) ([]*models.HotelBooking, int64, error)

	// Statistics
	CountByAccommodation(ctx context.Context, accommodationID primitive.ObjectID) (int64, error)
}
