package services

import (
	"context"
	"fmt"

	"boleia/internal/models"
	"boleia/internal/repositories/interfaces"
	"boleia/internal/utils"
	"boleia/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoomTypeService manages the bookable room categories of an
// accommodation. Every write that touches pricing re-derives the
// accommodation's min/max price band from its active types.
type RoomTypeService interface {
	Create(ctx context.Context, hostID, accommodationID primitive.ObjectID, request *CreateRoomTypeRequest) (*models.RoomType, error)
	Update(ctx context.Context, hostID, roomTypeID primitive.ObjectID, request *UpdateRoomTypeRequest) (*models.RoomType, error)
	Deactivate(ctx context.Context, hostID, roomTypeID primitive.ObjectID) error
	List(ctx context.Context, accommodationID primitive.ObjectID, activeOnly bool) ([]*models.RoomType, error)
}

type BedConfigRequest struct {
	SingleBeds int `json:"single_beds" validate:"omitempty,min=0,max=10"`
	DoubleBeds int `json:"double_beds" validate:"omitempty,min=0,max=10"`
	Bathrooms  int `json:"bathrooms" validate:"omitempty,min=0,max=10"`
}

type CreateRoomTypeRequest struct {
	Name            string           `json:"name" validate:"required,min=2,max=80"`
	Description     string           `json:"description" validate:"omitempty,max=2000"`
	BasePrice       float64          `json:"base_price" validate:"required,min=1"`
	MinOccupancy    int              `json:"min_occupancy" validate:"omitempty,min=1,max=12"`
	MaxOccupancy    int              `json:"max_occupancy" validate:"required,min=1,max=12"`
	TotalUnits      int              `json:"total_units" validate:"required,min=1,max=500"`
	Beds            BedConfigRequest `json:"beds"`
	ExtraGuestPrice float64          `json:"extra_guest_price" validate:"omitempty,min=0"`
	Amenities       []string         `json:"amenities" validate:"omitempty,max=40"`
}

type UpdateRoomTypeRequest struct {
	Name            *string  `json:"name" validate:"omitempty,min=2,max=80"`
	Description     *string  `json:"description" validate:"omitempty,max=2000"`
	BasePrice       *float64 `json:"base_price" validate:"omitempty,min=1"`
	ExtraGuestPrice *float64 `json:"extra_guest_price" validate:"omitempty,min=0"`
	Amenities       *[]string `json:"amenities" validate:"omitempty,max=40"`
}

type roomTypeService struct {
	roomTypeRepo      interfaces.RoomTypeRepository
	accommodationRepo interfaces.AccommodationRepository
	logger            *logger.Logger
}

func NewRoomTypeService(
	roomTypeRepo interfaces.RoomTypeRepository,
	accommodationRepo interfaces.AccommodationRepository,
	logger *logger.Logger,
) RoomTypeService {
	return &roomTypeService{
		roomTypeRepo:      roomTypeRepo,
		accommodationRepo: accommodationRepo,
		logger:            logger,
	}
}

func (s *roomTypeService) Create(ctx context.Context, hostID, accommodationID primitive.ObjectID, request *CreateRoomTypeRequest) (*models.RoomType, error) {
	accommodation, err := s.accommodationRepo.GetByID(ctx, accommodationID)
	if err != nil {
		return nil, err
	}
	if accommodation.HostID != hostID {
		return nil, ErrForbidden
	}

	if request.MinOccupancy > request.MaxOccupancy {
		return nil, fmt.Errorf("min occupancy cannot exceed max occupancy")
	}

	roomType := &models.RoomType{
		AccommodationID: accommodationID,
		Name:            utils.SanitizeString(request.Name),
		Description:     utils.SanitizeString(request.Description),
		BasePrice:       request.BasePrice,
		Currency:        utils.DefaultCurrency,
		MinOccupancy:    request.MinOccupancy,
		MaxOccupancy:    request.MaxOccupancy,
		TotalUnits:      request.TotalUnits,
		Beds: models.BedConfig{
			SingleBeds: request.Beds.SingleBeds,
			DoubleBeds: request.Beds.DoubleBeds,
			Bathrooms:  request.Beds.Bathrooms,
		},
		ExtraGuestPrice: request.ExtraGuestPrice,
		Amenities:       request.Amenities,
	}

	if err := s.roomTypeRepo.Create(ctx, roomType); err != nil {
		return nil, fmt.Errorf("failed to create room type: %w", err)
	}

	s.refreshPriceRange(ctx, accommodationID)

	return roomType, nil
}

func (s *roomTypeService) Update(ctx context.Context, hostID, roomTypeID primitive.ObjectID, request *UpdateRoomTypeRequest) (*models.RoomType, error) {
	roomType, err := s.requireOwnership(ctx, hostID, roomTypeID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if request.Name != nil {
		updates["name"] = utils.SanitizeString(*request.Name)
	}
	if request.Description != nil {
		updates["description"] = utils.SanitizeString(*request.Description)
	}
	if request.BasePrice != nil {
		updates["base_price"] = *request.BasePrice
	}
	if request.ExtraGuestPrice != nil {
		updates["extra_guest_price"] = *request.ExtraGuestPrice
	}
	if request.Amenities != nil {
		updates["amenities"] = *request.Amenities
	}

	if len(updates) > 0 {
		if err := s.roomTypeRepo.Update(ctx, roomTypeID, updates); err != nil {
			return nil, err
		}
		if request.BasePrice != nil {
			s.refreshPriceRange(ctx, roomType.AccommodationID)
		}
	}

	return s.roomTypeRepo.GetByID(ctx, roomTypeID)
}

func (s *roomTypeService) Deactivate(ctx context.Context, hostID, roomTypeID primitive.ObjectID) error {
	roomType, err := s.requireOwnership(ctx, hostID, roomTypeID)
	if err != nil {
		return err
	}

	if err := s.roomTypeRepo.Deactivate(ctx, roomTypeID); err != nil {
		return err
	}

	s.refreshPriceRange(ctx, roomType.AccommodationID)

	return nil
}

func (s *roomTypeService) List(ctx context.Context, accommodationID primitive.ObjectID, activeOnly bool) ([]*models.RoomType, error) {
	return s.roomTypeRepo.GetByAccommodation(ctx, accommodationID, activeOnly)
}

func (s *roomTypeService) requireOwnership(ctx context.Context, hostID, roomTypeID primitive.ObjectID) (*models.RoomType, error) {
	roomType, err := s.roomTypeRepo.GetByID(ctx, roomTypeID)
	if err != nil {
		return nil, err
	}

	accommodation, err := s.accommodationRepo.GetByID(ctx, roomType.AccommodationID)
	if err != nil {
		return nil, err
	}
	if accommodation.HostID != hostID {
		return nil, ErrForbidden
	}

	return roomType, nil
}

// refreshPriceRange recomputes the accommodation's advertised price
// band from its active room types. Best effort; the band is a search
// convenience, not a source of truth.
func (s *roomTypeService) refreshPriceRange(ctx context.Context, accommodationID primitive.ObjectID) {
	roomTypes, err := s.roomTypeRepo.GetByAccommodation(ctx, accommodationID, true)
	if err != nil {
		s.logger.WithError(err).WithField("accommodation_id", accommodationID.Hex()).Warn("failed to load room types for price range refresh")
		return
	}

	var minPrice, maxPrice float64
	for i, roomType := range roomTypes {
		if i == 0 || roomType.BasePrice < minPrice {
			minPrice = roomType.BasePrice
		}
		if roomType.BasePrice > maxPrice {
			maxPrice = roomType.BasePrice
		}
	}

	if err := s.accommodationRepo.UpdatePriceRange(ctx, accommodationID, minPrice, maxPrice); err != nil {
		s.logger.WithError(err).WithField("accommodation_id", accommodationID.Hex()).Warn("failed to update price range")
	}
}
