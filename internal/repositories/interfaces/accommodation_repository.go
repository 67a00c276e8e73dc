package interfaces

import (
	"context"

	"boleia/internal/models"
	"boleia/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccommodationSearchFilter narrows public accommodation search. Zero
// values mean "any".
type AccommodationSearchFilter struct {
	City      string
	Province  string
	Type      models.AccommodationType
	MaxPrice  float64
	MinGuests int
	Amenities []string
}

type AccommodationRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, accommodation *models.Accommodation) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Accommodation, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Deactivate(ctx context.Context, id primitive.ObjectID) error

	// Search and listing
	Search(ctx context.Context, filter *AccommodationSearchFilter, params *utils.PaginationParams) ([]*models.Accommodation, int64, error)
	GetByHost(ctx context.Context, hostID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Accommodation, int64, error)

	// Images
	AddImage(ctx context.Context, id primitive.ObjectID, imageURL string) error
	RemoveImage(ctx context.Context, id primitive.ObjectID, imageURL string) error

	// Derived pricing bounds, recomputed when room types change.
	UpdatePriceRange(ctx context.Context, id primitive.ObjectID, minPrice, maxPrice float64) error
}
