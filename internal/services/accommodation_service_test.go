package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"boleia/internal/models"
	"boleia/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type accommodationFixture struct {
	accommodationRepo *fakeAccommodationRepo
	roomTypeRepo      *fakeRoomTypeRepo
	storage           *fakeStorageProvider
	service           AccommodationService

	hostID        primitive.ObjectID
	accommodation *models.Accommodation
}

func newAccommodationFixture(t *testing.T) *accommodationFixture {
	t.Helper()

	f := &accommodationFixture{
		accommodationRepo: newFakeAccommodationRepo(),
		roomTypeRepo:      newFakeRoomTypeRepo(),
		storage:           &fakeStorageProvider{},
		hostID:            primitive.NewObjectID(),
	}

	f.accommodation = &models.Accommodation{
		HostID: f.hostID,
		Name:   "Hotel Polana",
		Type:   models.AccommodationHotel,
		Place:  models.Place{City: "Maputo", Province: "Maputo Cidade"},
	}
	require.NoError(t, f.accommodationRepo.Create(context.Background(), f.accommodation))

	f.service = NewAccommodationService(f.accommodationRepo, f.roomTypeRepo, f.storage, testLogger())

	return f
}

func (f *accommodationFixture) addRoomType(t *testing.T, name string, minOccupancy, maxOccupancy int, basePrice, extraGuestPrice float64) *models.RoomType {
	t.Helper()
	roomType := &models.RoomType{
		AccommodationID: f.accommodation.ID,
		Name:            name,
		BasePrice:       basePrice,
		ExtraGuestPrice: extraGuestPrice,
		MinOccupancy:    minOccupancy,
		MaxOccupancy:    maxOccupancy,
		TotalUnits:      2,
	}
	require.NoError(t, f.roomTypeRepo.Create(context.Background(), roomType))
	return roomType
}

func (f *accommodationFixture) availability(guests int, nights int) *AvailabilityRequest {
	checkIn := time.Date(2026, 10, 12, 14, 0, 0, 0, time.UTC)
	return &AvailabilityRequest{
		AccommodationID: f.accommodation.ID,
		CheckIn:         checkIn,
		CheckOut:        checkIn.AddDate(0, 0, nights),
		Guests:          guests,
	}
}

func TestCheckAvailabilityFiltersByGuests(t *testing.T) {
	f := newAccommodationFixture(t)
	f.addRoomType(t, "Single", 1, 1, 1800, 0)
	family := f.addRoomType(t, "Familiar", 2, 4, 2500, 500)

	response, err := f.service.CheckAvailability(context.Background(), f.availability(3, 2))
	require.NoError(t, err)

	require.Len(t, response.Offers, 1, "single room cannot host three guests")
	offer := response.Offers[0]
	assert.Equal(t, family.ID, offer.RoomType.ID)
	assert.Equal(t, 2, offer.Nights)
	assert.Equal(t, 6000.0, offer.TotalPrice, "one extra guest above min occupancy, two nights")
	assert.True(t, offer.Available)
}

func TestCheckAvailabilityQuotesSoldOutRooms(t *testing.T) {
	f := newAccommodationFixture(t)
	roomType := f.addRoomType(t, "Duplo", 1, 2, 2000, 0)
	roomType.AvailableUnits = 0

	response, err := f.service.CheckAvailability(context.Background(), f.availability(2, 1))
	require.NoError(t, err)

	require.Len(t, response.Offers, 1)
	assert.False(t, response.Offers[0].Available, "sold out rooms stay listed but unbookable")
}

func TestCheckAvailabilitySameDayStayCountsOneNight(t *testing.T) {
	f := newAccommodationFixture(t)
	f.addRoomType(t, "Duplo", 1, 2, 2000, 0)

	checkIn := time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC)
	response, err := f.service.CheckAvailability(context.Background(), &AvailabilityRequest{
		AccommodationID: f.accommodation.ID,
		CheckIn:         checkIn,
		CheckOut:        checkIn.Add(8 * time.Hour),
		Guests:          2,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, response.Nights)
	assert.Equal(t, 2000.0, response.Offers[0].TotalPrice)
}

func TestCheckAvailabilityRejectsReversedDates(t *testing.T) {
	f := newAccommodationFixture(t)

	request := f.availability(2, 2)
	request.CheckIn, request.CheckOut = request.CheckOut, request.CheckIn

	_, err := f.service.CheckAvailability(context.Background(), request)
	assert.Error(t, err)
}

func TestUpdatePropertyRequiresOwnership(t *testing.T) {
	f := newAccommodationFixture(t)

	name := "Pensão Central"
	_, err := f.service.UpdateProperty(context.Background(), primitive.NewObjectID(), f.accommodation.ID, &UpdatePropertyRequest{Name: &name})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := f.service.UpdateProperty(context.Background(), f.hostID, f.accommodation.ID, &UpdatePropertyRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Pensão Central", updated.Name)
}

func TestDeactivatePropertyHidesItFromSearch(t *testing.T) {
	f := newAccommodationFixture(t)

	results, _, err := f.service.Search(context.Background(), &SearchAccommodationsRequest{City: "Maputo"}, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.ErrorIs(t, f.service.DeactivateProperty(context.Background(), primitive.NewObjectID(), f.accommodation.ID), ErrForbidden)
	require.NoError(t, f.service.DeactivateProperty(context.Background(), f.hostID, f.accommodation.ID))

	results, _, err = f.service.Search(context.Background(), &SearchAccommodationsRequest{City: "Maputo"}, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestGetAccommodationListsActiveRoomTypesOnly(t *testing.T) {
	f := newAccommodationFixture(t)
	active := f.addRoomType(t, "Duplo", 1, 2, 2000, 0)
	retired := f.addRoomType(t, "Antigo", 1, 2, 1500, 0)
	require.NoError(t, f.roomTypeRepo.Deactivate(context.Background(), retired.ID))

	detail, err := f.service.GetAccommodation(context.Background(), f.accommodation.ID)
	require.NoError(t, err)

	require.Len(t, detail.RoomTypes, 1)
	assert.Equal(t, active.ID, detail.RoomTypes[0].ID)
}

func TestUploadImageGatesOwnershipAndFormat(t *testing.T) {
	f := newAccommodationFixture(t)
	reader := strings.NewReader("fake image bytes")

	_, err := f.service.UploadImage(context.Background(), primitive.NewObjectID(), f.accommodation.ID, "cover.jpg", "image/jpeg", 1024, reader)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.service.UploadImage(context.Background(), f.hostID, f.accommodation.ID, "cover.exe", "application/octet-stream", 1024, reader)
	assert.Error(t, err, "only image formats are accepted")

	_, err = f.service.UploadImage(context.Background(), f.hostID, f.accommodation.ID, "cover.jpg", "image/jpeg", utils.MaxImageSize+1, reader)
	assert.Error(t, err, "oversized uploads are rejected before hitting storage")

	assert.Empty(t, f.storage.uploads)
}

func TestUploadImageStoresAndRecordsURL(t *testing.T) {
	f := newAccommodationFixture(t)

	url, err := f.service.UploadImage(context.Background(), f.hostID, f.accommodation.ID, "../cover image.jpg", "image/jpeg", 1024, strings.NewReader("fake image bytes"))
	require.NoError(t, err)

	require.Len(t, f.storage.uploads, 1)
	key := f.storage.uploads[0].Key
	assert.True(t, strings.HasPrefix(key, "accommodations/"+f.accommodation.ID.Hex()+"/"), "keys live under the property prefix")
	assert.NotContains(t, key, "..", "path components are stripped from filenames")
	assert.Contains(t, f.accommodation.Images, url)
}
