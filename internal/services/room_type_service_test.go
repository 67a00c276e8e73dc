package services

import (
	"context"
	"testing"

	"boleia/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type roomTypeFixture struct {
	roomTypeRepo      *fakeRoomTypeRepo
	accommodationRepo *fakeAccommodationRepo
	service           RoomTypeService

	hostID        primitive.ObjectID
	accommodation *models.Accommodation
}

func newRoomTypeFixture(t *testing.T) *roomTypeFixture {
	t.Helper()

	f := &roomTypeFixture{
		roomTypeRepo:      newFakeRoomTypeRepo(),
		accommodationRepo: newFakeAccommodationRepo(),
		hostID:            primitive.NewObjectID(),
	}

	f.accommodation = &models.Accommodation{HostID: f.hostID, Name: "Lodge Chidenguele", IsActive: true}
	require.NoError(t, f.accommodationRepo.Create(context.Background(), f.accommodation))

	f.service = NewRoomTypeService(f.roomTypeRepo, f.accommodationRepo, testLogger())

	return f
}

func (f *roomTypeFixture) create(t *testing.T, name string, basePrice float64) *models.RoomType {
	t.Helper()
	roomType, err := f.service.Create(context.Background(), f.hostID, f.accommodation.ID, &CreateRoomTypeRequest{
		Name:         name,
		BasePrice:    basePrice,
		MinOccupancy: 1,
		MaxOccupancy: 2,
		TotalUnits:   4,
	})
	require.NoError(t, err)
	return roomType
}

func TestCreateRoomTypeRefreshesPriceRange(t *testing.T) {
	f := newRoomTypeFixture(t)

	f.create(t, "Single", 1200)
	assert.Equal(t, 1200.0, f.accommodation.MinPrice)
	assert.Equal(t, 1200.0, f.accommodation.MaxPrice)

	f.create(t, "Suite", 4800)
	assert.Equal(t, 1200.0, f.accommodation.MinPrice)
	assert.Equal(t, 4800.0, f.accommodation.MaxPrice)
}

func TestCreateRoomTypeIsHostOnly(t *testing.T) {
	f := newRoomTypeFixture(t)

	_, err := f.service.Create(context.Background(), primitive.NewObjectID(), f.accommodation.ID, &CreateRoomTypeRequest{
		Name:         "Intruso",
		BasePrice:    1000,
		MaxOccupancy: 2,
		TotalUnits:   1,
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateRoomTypeRejectsInvertedOccupancy(t *testing.T) {
	f := newRoomTypeFixture(t)

	_, err := f.service.Create(context.Background(), f.hostID, f.accommodation.ID, &CreateRoomTypeRequest{
		Name:         "Invertido",
		BasePrice:    1000,
		MinOccupancy: 4,
		MaxOccupancy: 2,
		TotalUnits:   1,
	})
	assert.Error(t, err)
}

func TestUpdateRoomTypePriceRefreshesRange(t *testing.T) {
	f := newRoomTypeFixture(t)

	roomType := f.create(t, "Single", 1200)
	f.create(t, "Suite", 4800)

	price := 900.0
	updated, err := f.service.Update(context.Background(), f.hostID, roomType.ID, &UpdateRoomTypeRequest{BasePrice: &price})
	require.NoError(t, err)

	assert.Equal(t, 900.0, updated.BasePrice)
	assert.Equal(t, 900.0, f.accommodation.MinPrice)
	assert.Equal(t, 4800.0, f.accommodation.MaxPrice)
}

func TestDeactivateRoomTypeDropsItFromPriceRange(t *testing.T) {
	f := newRoomTypeFixture(t)

	f.create(t, "Single", 1200)
	suite := f.create(t, "Suite", 4800)

	require.NoError(t, f.service.Deactivate(context.Background(), f.hostID, suite.ID))

	assert.False(t, suite.IsActive)
	assert.Equal(t, 1200.0, f.accommodation.MinPrice)
	assert.Equal(t, 1200.0, f.accommodation.MaxPrice)
}

func TestListRoomTypesHonorsActiveOnly(t *testing.T) {
	f := newRoomTypeFixture(t)

	f.create(t, "Single", 1200)
	suite := f.create(t, "Suite", 4800)
	require.NoError(t, f.service.Deactivate(context.Background(), f.hostID, suite.ID))

	active, err := f.service.List(context.Background(), f.accommodation.ID, true)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := f.service.List(context.Background(), f.accommodation.ID, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
