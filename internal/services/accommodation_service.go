package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"boleia/internal/models"
	"boleia/internal/repositories/interfaces"
	"boleia/internal/utils"
	"boleia/pkg/logger"
	"boleia/pkg/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccommodationService owns properties and their public search.
type AccommodationService interface {
	// Manager surface
	CreateProperty(ctx context.Context, hostID primitive.ObjectID, request *CreatePropertyRequest) (*models.Accommodation, error)
	UpdateProperty(ctx context.Context, hostID, id primitive.ObjectID, request *UpdatePropertyRequest) (*models.Accommodation, error)
	DeactivateProperty(ctx context.Context, hostID, id primitive.ObjectID) error
	GetMyProperties(ctx context.Context, hostID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Accommodation, int64, error)
	UploadImage(ctx context.Context, hostID, id primitive.ObjectID, filename, contentType string, size int64, reader io.Reader) (string, error)

	// Public surface
	GetAccommodation(ctx context.Context, id primitive.ObjectID) (*AccommodationDetail, error)
	Search(ctx context.Context, request *SearchAccommodationsRequest, params *utils.PaginationParams) ([]*models.Accommodation, int64, error)
	CheckAvailability(ctx context.Context, request *AvailabilityRequest) (*AvailabilityResponse, error)
}

type PoliciesRequest struct {
	CheckInFrom    string `json:"check_in_from" validate:"omitempty"`
	CheckOutUntil  string `json:"check_out_until" validate:"omitempty"`
	Cancellation   string `json:"cancellation" validate:"omitempty,max=1000"`
	ChildrenPolicy string `json:"children_policy" validate:"omitempty,max=500"`
	PetsAllowed    bool   `json:"pets_allowed"`
	SmokingAllowed bool   `json:"smoking_allowed"`
}

type CreatePropertyRequest struct {
	Name         string                   `json:"name" validate:"required,min=2,max=120"`
	Type         models.AccommodationType `json:"type" validate:"required,oneof=hotel guesthouse lodge apartment resort"`
	Description  string                   `json:"description" validate:"omitempty,max=3000"`
	Place        PlaceRequest             `json:"place" validate:"required"`
	MaxGuests    int                      `json:"max_guests" validate:"omitempty,min=1,max=100"`
	Amenities    []string                 `json:"amenities" validate:"omitempty,max=40"`
	Policies     PoliciesRequest          `json:"policies"`
	ContactPhone string                   `json:"contact_phone" validate:"omitempty"`
}

type UpdatePropertyRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=2,max=120"`
	Description  *string          `json:"description" validate:"omitempty,max=3000"`
	MaxGuests    *int             `json:"max_guests" validate:"omitempty,min=1,max=100"`
	Amenities    *[]string        `json:"amenities" validate:"omitempty,max=40"`
	Policies     *PoliciesRequest `json:"policies"`
	ContactPhone *string          `json:"contact_phone"`
}

type SearchAccommodationsRequest struct {
	City      string                   `json:"city" form:"city"`
	Province  string                   `json:"province" form:"province"`
	Type      models.AccommodationType `json:"type" form:"type"`
	MaxPrice  float64                  `json:"max_price" form:"max_price"`
	Guests    int                      `json:"guests" form:"guests"`
	Amenities []string                 `json:"amenities" form:"amenities"`
}

type AvailabilityRequest struct {
	AccommodationID primitive.ObjectID `json:"accommodation_id" validate:"required"`
	CheckIn         time.Time          `json:"check_in" validate:"required"`
	CheckOut        time.Time          `json:"check_out" validate:"required"`
	Guests          int                `json:"guests" validate:"required,min=1,max=12"`
}

// RoomTypeOffer is one room type quoted for the requested stay.
type RoomTypeOffer struct {
	RoomType   *models.RoomType `json:"room_type"`
	Nights     int              `json:"nights"`
	TotalPrice float64          `json:"total_price"`
	Available  bool             `json:"available"`
}

type AvailabilityResponse struct {
	Accommodation *models.Accommodation `json:"accommodation"`
	Nights        int                   `json:"nights"`
	Offers        []*RoomTypeOffer      `json:"offers"`
}

type AccommodationDetail struct {
	Accommodation *models.Accommodation `json:"accommodation"`
	RoomTypes     []*models.RoomType    `json:"room_types"`
}

type accommodationService struct {
	accommodationRepo interfaces.AccommodationRepository
	roomTypeRepo      interfaces.RoomTypeRepository
	storageProvider   storage.Provider
	logger            *logger.Logger
}

func NewAccommodationService(
	accommodationRepo interfaces.AccommodationRepository,
	roomTypeRepo interfaces.RoomTypeRepository,
	storageProvider storage.Provider,
	logger *logger.Logger,
) AccommodationService {
	return &accommodationService{
		accommodationRepo: accommodationRepo,
		roomTypeRepo:      roomTypeRepo,
		storageProvider:   storageProvider,
		logger:            logger,
	}
}

func (s *accommodationService) CreateProperty(ctx context.Context, hostID primitive.ObjectID, request *CreatePropertyRequest) (*models.Accommodation, error) {
	accommodation := &models.Accommodation{
		HostID:      hostID,
		Name:        utils.SanitizeString(request.Name),
		Type:        request.Type,
		Description: utils.SanitizeString(request.Description),
		Place:       request.Place.toPlace(),
		Currency:    utils.DefaultCurrency,
		MaxGuests:   request.MaxGuests,
		Amenities:   request.Amenities,
		Policies: models.AccommodationPolicies{
			CheckInFrom:    request.Policies.CheckInFrom,
			CheckOutUntil:  request.Policies.CheckOutUntil,
			Cancellation:   utils.SanitizeString(request.Policies.Cancellation),
			ChildrenPolicy: utils.SanitizeString(request.Policies.ChildrenPolicy),
			PetsAllowed:    request.Policies.PetsAllowed,
			SmokingAllowed: request.Policies.SmokingAllowed,
		},
		ContactPhone: request.ContactPhone,
	}

	if err := s.accommodationRepo.Create(ctx, accommodation); err != nil {
		return nil, fmt.Errorf("failed to create accommodation: %w", err)
	}

	s.logger.WithUserID(hostID).WithFields(map[string]interface{}{
		"accommodation_id": accommodation.ID.Hex(),
		"city":             accommodation.Place.City,
	}).Info("accommodation created")

	return accommodation, nil
}

func (s *accommodationService) UpdateProperty(ctx context.Context, hostID, id primitive.ObjectID, request *UpdatePropertyRequest) (*models.Accommodation, error) {
	if err := s.requireOwnership(ctx, hostID, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if request.Name != nil {
		updates["name"] = utils.SanitizeString(*request.Name)
	}
	if request.Description != nil {
		updates["description"] = utils.SanitizeString(*request.Description)
	}
	if request.MaxGuests != nil {
		updates["max_guests"] = *request.MaxGuests
	}
	if request.Amenities != nil {
		updates["amenities"] = *request.Amenities
	}
	if request.ContactPhone != nil {
		updates["contact_phone"] = *request.ContactPhone
	}
	if request.Policies != nil {
		updates["policies"] = models.AccommodationPolicies{
			CheckInFrom:    request.Policies.CheckInFrom,
			CheckOutUntil:  request.Policies.CheckOutUntil,
			Cancellation:   utils.SanitizeString(request.Policies.Cancellation),
			ChildrenPolicy: utils.SanitizeString(request.Policies.ChildrenPolicy),
			PetsAllowed:    request.Policies.PetsAllowed,
			SmokingAllowed: request.Policies.SmokingAllowed,
		}
	}

	if len(updates) > 0 {
		if err := s.accommodationRepo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	return s.accommodationRepo.GetByID(ctx, id)
}

func (s *accommodationService) DeactivateProperty(ctx context.Context, hostID, id primitive.ObjectID) error {
	if err := s.requireOwnership(ctx, hostID, id); err != nil {
		return err
	}

	return s.accommodationRepo.Deactivate(ctx, id)
}

func (s *accommodationService) GetMyProperties(ctx context.Context, hostID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Accommodation, int64, error) {
	return s.accommodationRepo.GetByHost(ctx, hostID, params)
}

func (s *accommodationService) UploadImage(ctx context.Context, hostID, id primitive.ObjectID, filename, contentType string, size int64, reader io.Reader) (string, error) {
	if err := s.requireOwnership(ctx, hostID, id); err != nil {
		return "", err
	}
	if s.storageProvider == nil {
		return "", fmt.Errorf("image storage is not configured")
	}
	if size > utils.MaxImageSize {
		return "", fmt.Errorf("image exceeds the %d byte limit", utils.MaxImageSize)
	}
	if !utils.IsValidImageFormat(filename) {
		return "", fmt.Errorf("unsupported image format")
	}

	key := fmt.Sprintf("accommodations/%s/%d_%s", id.Hex(), time.Now().Unix(), utils.SanitizeFilename(filename))

	response, err := s.storageProvider.Upload(ctx, &storage.UploadRequest{
		Key:         key,
		Reader:      reader,
		ContentType: contentType,
		Size:        size,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	if err := s.accommodationRepo.AddImage(ctx, id, response.URL); err != nil {
		return "", err
	}

	return response.URL, nil
}

func (s *accommodationService) GetAccommodation(ctx context.Context, id primitive.ObjectID) (*AccommodationDetail, error) {
	accommodation, err := s.accommodationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	roomTypes, err := s.roomTypeRepo.GetByAccommodation(ctx, id, true)
	if err != nil {
		return nil, err
	}

	return &AccommodationDetail{Accommodation: accommodation, RoomTypes: roomTypes}, nil
}

func (s *accommodationService) Search(ctx context.Context, request *SearchAccommodationsRequest, params *utils.PaginationParams) ([]*models.Accommodation, int64, error) {
	filter := &interfaces.AccommodationSearchFilter{
		City:      request.City,
		Province:  request.Province,
		Type:      request.Type,
		MaxPrice:  request.MaxPrice,
		MinGuests: request.Guests,
		Amenities: request.Amenities,
	}

	return s.accommodationRepo.Search(ctx, filter, params)
}

func (s *accommodationService) CheckAvailability(ctx context.Context, request *AvailabilityRequest) (*AvailabilityResponse, error) {
	if !request.CheckOut.After(request.CheckIn) {
		return nil, fmt.Errorf("check-out must be after check-in")
	}

	accommodation, err := s.accommodationRepo.GetByID(ctx, request.AccommodationID)
	if err != nil {
		return nil, err
	}

	roomTypes, err := s.roomTypeRepo.GetByAccommodation(ctx, request.AccommodationID, true)
	if err != nil {
		return nil, err
	}

	nights := utils.NightsBetween(request.CheckIn, request.CheckOut)
	if nights < 1 {
		nights = 1
	}

	offers := make([]*RoomTypeOffer, 0, len(roomTypes))
	for _, roomType := range roomTypes {
		if !roomType.FitsGuests(request.Guests) {
			continue
		}
		offers = append(offers, &RoomTypeOffer{
			RoomType:   roomType,
			Nights:     nights,
			TotalPrice: utils.RoundCurrency(roomType.PriceForStay(nights, request.Guests)),
			Available:  roomType.AvailableUnits > 0,
		})
	}

	return &AvailabilityResponse{
		Accommodation: accommodation,
		Nights:        nights,
		Offers:        offers,
	}, nil
}

func (s *accommodationService) requireOwnership(ctx context.Context, hostID, accommodationID primitive.ObjectID) error {
	accommodation, err := s.accommodationRepo.GetByID(ctx, accommodationID)
	if err != nil {
		return err
	}
	if accommodation.HostID != hostID {
		return ErrForbidden
	}
	return nil
}
