package interfaces

import (
	"context"

	"boleia/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RoomTypeRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, roomType *models.RoomType) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.RoomType, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	// Deactivate is the only removal path. Room types behind historical
	// bookings are never hard-deleted.
	Deactivate(ctx context.Context, id primitive.ObjectID) error

	// Listing
	GetByAccommodation(ctx context.Context, accommodationID primitive.ObjectID, activeOnly bool) ([]*models.RoomType, error)

	// Unit inventory. Both run as single conditional updates so the
	// available count can never go negative or exceed total_units.
	TakeUnit(ctx context.Context, id primitive.ObjectID) error
	ReleaseUnit(ctx context.Context, id primitive.ObjectID) error

	// Images
	AddImage(ctx context.Context, id primitive.ObjectID, imageURL string) error
}
