package mongodb

import (
	"context"
	"fmt"
	"time"

	"boleia/internal/models"
	"boleia/internal/repositories/interfaces"
	"boleia/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type accommodationRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewAccommodationRepository(db *mongo.Database, cache CacheService) interfaces.AccommodationRepository {
	return &accommodationRepository{
		collection: db.Collection("accommodations"),
		cache:      cache,
	}
}

func (r *accommodationRepository) Create(ctx context.Context, accommodation *models.Accommodation) error {
	accommodation.ID = primitive.NewObjectID()
	accommodation.IsActive = true
	accommodation.CreatedAt = time.Now()
	accommodation.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, accommodation)
	if err != nil {
		return fmt.Errorf("failed to create accommodation: %w", err)
	}

	return nil
}

func (r *accommodationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Accommodation, error) {
	if r.cache != nil {
		var accommodation models.Accommodation
		if err := r.cache.Get(ctx, utils.CacheAccommodationPrefix+id.Hex(), &accommodation); err == nil {
			return &accommodation, nil
		}
	}

	var accommodation models.Accommodation
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&accommodation)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get accommodation: %w", err)
	}

	if r.cache != nil {
		r.cache.Set(ctx, utils.CacheAccommodationPrefix+id.Hex(), accommodation, utils.AccommodationCacheTTL)
	}

	return &accommodation, nil
}

func (r *accommodationRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update accommodation: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidateCache(ctx, id)

	return nil
}

func (r *accommodationRepository) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	return r.Update(ctx, id, map[string]interface{}{"is_active": false})
}

func (r *accommodationRepository) Search(ctx context.Context, filter *interfaces.AccommodationSearchFilter, params *utils.PaginationParams) ([]*models.Accommodation, int64, error) {
	query := bson.M{"is_active": true}

	if filter.City != "" {
		query["place.city"] = bson.M{"$regex": "^" + filter.City + "$", "$options": "i"}
	}
	if filter.Province != "" {
		query["place.province"] = filter.Province
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.MaxPrice > 0 {
		query["min_price"] = bson.M{"$lte": filter.MaxPrice}
	}
	if filter.MinGuests > 0 {
		query["max_guests"] = bson.M{"$gte": filter.MinGuests}
	}
	if len(filter.Amenities) > 0 {
		query["amenities"] = bson.M{"$all": filter.Amenities}
	}

	if search := params.GetSearchFilter([]string{"name", "description"}); len(search) > 0 {
		query = bson.M{"$and": []bson.M{query, search}}
	}

	return r.findAccommodations(ctx, query, params)
}

func (r *accommodationRepository) GetByHost(ctx context.Context, hostID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Accommodation, int64, error) {
	return r.findAccommodations(ctx, bson.M{"host_id": hostID}, params)
}

func (r *accommodationRepository) AddImage(ctx context.Context, id primitive.ObjectID, imageURL string) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$addToSet": bson.M{"images": imageURL},
			"$set":      bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to add image: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidateCache(ctx, id)

	return nil
}

func (r *accommodationRepository) RemoveImage(ctx context.Context, id primitive.ObjectID, imageURL string) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$pull": bson.M{"images": imageURL},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to remove image: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidateCache(ctx, id)

	return nil
}

func (r *accommodationRepository) UpdatePriceRange(ctx context.Context, id primitive.ObjectID, minPrice, maxPrice float64) error {
	return r.Update(ctx, id, map[string]interface{}{
		"min_price": minPrice,
		"max_price": maxPrice,
	})
}

func (r *accommodationRepository) findAccommodations(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Accommodation, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count accommodations: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list accommodations: %w", err)
	}
	defer cursor.Close(ctx)

	var accommodations []*models.Accommodation
	if err := cursor.All(ctx, &accommodations); err != nil {
		return nil, 0, fmt.Errorf("failed to decode accommodations: %w", err)
	}

	return accommodations, total, nil
}

func (r *accommodationRepository) invalidateCache(ctx context.Context, id primitive.ObjectID) {
	if r.cache != nil {
		r.cache.Delete(ctx, utils.CacheAccommodationPrefix+id.Hex())
	}
}
