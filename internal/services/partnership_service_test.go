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

type partnershipFixture struct {
	partnershipRepo   *fakePartnershipRepo
	accommodationRepo *fakeAccommodationRepo
	notifier          *fakeNotifier
	service           PartnershipService

	managerID     primitive.ObjectID
	accommodation *models.Accommodation
}

func newPartnershipFixture(t *testing.T) *partnershipFixture {
	t.Helper()

	f := &partnershipFixture{
		partnershipRepo:   newFakePartnershipRepo(),
		accommodationRepo: newFakeAccommodationRepo(),
		notifier:          &fakeNotifier{},
		managerID:         primitive.NewObjectID(),
	}

	f.accommodation = &models.Accommodation{
		HostID:   f.managerID,
		Name:     "Pensão Zambeze",
		IsActive: true,
	}
	require.NoError(t, f.accommodationRepo.Create(context.Background(), f.accommodation))

	f.service = NewPartnershipService(f.partnershipRepo, f.accommodationRepo, f.notifier, testLogger())

	return f
}

func (f *partnershipFixture) openProposal(t *testing.T) *models.Proposal {
	t.Helper()
	proposal, err := f.service.CreateProposal(context.Background(), f.managerID, &CreateProposalRequest{
		AccommodationID: f.accommodation.ID,
		Title:           "Desconto para motoristas",
		Terms:           "Traga hóspedes e ganhe desconto nas estadias",
		CommissionRate:  8,
	})
	require.NoError(t, err)
	return proposal
}

func TestCreateProposalRequiresOwnedAccommodation(t *testing.T) {
	f := newPartnershipFixture(t)

	_, err := f.service.CreateProposal(context.Background(), primitive.NewObjectID(), &CreateProposalRequest{
		AccommodationID: f.accommodation.ID,
		Title:           "Proposta alheia",
		Terms:           "termos",
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateProposalStartsOpen(t *testing.T) {
	f := newPartnershipFixture(t)

	proposal := f.openProposal(t)

	assert.Equal(t, models.ProposalStatusOpen, proposal.Status)
	assert.Equal(t, f.managerID, proposal.ManagerID)
	assert.False(t, proposal.ID.IsZero())
}

func TestAcceptProposalBuildsBronzePartnership(t *testing.T) {
	f := newPartnershipFixture(t)
	driverID := primitive.NewObjectID()
	proposal := f.openProposal(t)

	decision, err := f.service.AcceptProposal(context.Background(), driverID, proposal.ID, "quero participar")
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationStatusAccepted, decision.Application.Status)
	assert.NotNil(t, decision.Application.DecidedAt)

	assert.Equal(t, proposal.ID, decision.Agreement.ProposalID)
	assert.Equal(t, 8.0, decision.Agreement.CommissionRate)

	assert.Equal(t, models.TierBronze, decision.Partnership.Tier)
	assert.Equal(t, utils.BronzeDiscountPct, decision.Partnership.DiscountPct)
	assert.True(t, decision.Partnership.IsCurrentlyActive(time.Now()))

	// The manager is told about the acceptance.
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, f.managerID, f.notifier.sent[0].UserID)
}

func TestAcceptProposalReusesExistingPartnership(t *testing.T) {
	f := newPartnershipFixture(t)
	driverID := primitive.NewObjectID()

	first, err := f.service.AcceptProposal(context.Background(), driverID, f.openProposal(t).ID, "")
	require.NoError(t, err)

	second, err := f.service.AcceptProposal(context.Background(), driverID, f.openProposal(t).ID, "")
	require.NoError(t, err)

	assert.Equal(t, first.Partnership.ID, second.Partnership.ID)
	assert.Len(t, f.partnershipRepo.partnerships, 1)
}

func TestAcceptProposalRefusesClosedProposal(t *testing.T) {
	f := newPartnershipFixture(t)
	proposal := f.openProposal(t)

	require.NoError(t, f.service.CloseProposal(context.Background(), f.managerID, proposal.ID))

	_, err := f.service.AcceptProposal(context.Background(), primitive.NewObjectID(), proposal.ID, "")
	assert.ErrorIs(t, err, ErrProposalClosed)
}

func TestAcceptProposalRefusesSecondDecision(t *testing.T) {
	f := newPartnershipFixture(t)
	driverID := primitive.NewObjectID()
	proposal := f.openProposal(t)

	_, err := f.service.AcceptProposal(context.Background(), driverID, proposal.ID, "")
	require.NoError(t, err)

	_, err = f.service.AcceptProposal(context.Background(), driverID, proposal.ID, "")
	assert.ErrorIs(t, err, interfaces.ErrDuplicate)
}

func TestRejectProposalRecordsApplicationOnly(t *testing.T) {
	f := newPartnershipFixture(t)
	driverID := primitive.NewObjectID()
	proposal := f.openProposal(t)

	application, err := f.service.RejectProposal(context.Background(), driverID, proposal.ID, "não me convém")
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationStatusRejected, application.Status)
	assert.Empty(t, f.partnershipRepo.partnerships)
	assert.Empty(t, f.partnershipRepo.agreements)
}

func TestCloseProposalIsOwnerOnlyAndOnce(t *testing.T) {
	f := newPartnershipFixture(t)
	proposal := f.openProposal(t)

	err := f.service.CloseProposal(context.Background(), primitive.NewObjectID(), proposal.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, f.service.CloseProposal(context.Background(), f.managerID, proposal.ID))
	assert.Equal(t, models.ProposalStatusClosed, proposal.Status)

	err = f.service.CloseProposal(context.Background(), f.managerID, proposal.ID)
	assert.ErrorIs(t, err, ErrProposalClosed)
}

func TestGetProposalApplicationsIsOwnerOnly(t *testing.T) {
	f := newPartnershipFixture(t)
	proposal := f.openProposal(t)

	_, _, err := f.service.GetProposalApplications(context.Background(), primitive.NewObjectID(), proposal.ID, nil)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestOnRideCompletedPromotesTiersAtThresholds(t *testing.T) {
	f := newPartnershipFixture(t)
	driverID := primitive.NewObjectID()

	decision, err := f.service.AcceptProposal(context.Background(), driverID, f.openProposal(t).ID, "")
	require.NoError(t, err)
	partnership := decision.Partnership

	for i := 0; i < utils.SilverMinRides-1; i++ {
		f.service.OnRideCompleted(context.Background(), driverID)
		assert.Equal(t, models.TierBronze, partnership.Tier)
	}

	f.service.OnRideCompleted(context.Background(), driverID)
	assert.Equal(t, utils.SilverMinRides, partnership.RidesCompleted)
	assert.Equal(t, models.TierSilver, partnership.Tier)
	assert.Equal(t, utils.SilverDiscountPct, partnership.DiscountPct)

	for i := utils.SilverMinRides; i < utils.GoldMinRides; i++ {
		f.service.OnRideCompleted(context.Background(), driverID)
	}
	assert.Equal(t, models.TierGold, partnership.Tier)
	assert.Equal(t, utils.GoldDiscountPct, partnership.DiscountPct)

	for i := utils.GoldMinRides; i < utils.PlatinumMinRides; i++ {
		f.service.OnRideCompleted(context.Background(), driverID)
	}
	assert.Equal(t, models.TierPlatinum, partnership.Tier)
	assert.Equal(t, utils.PlatinumDiscountPct, partnership.DiscountPct)
}

func TestOnRideCompletedSkipsExpiredPartnerships(t *testing.T) {
	f := newPartnershipFixture(t)
	driverID := primitive.NewObjectID()

	require.NoError(t, f.partnershipRepo.CreatePartnership(context.Background(), &models.DriverHotelPartnership{
		DriverID:        driverID,
		AccommodationID: f.accommodation.ID,
		Tier:            models.TierBronze,
		ValidUntil:      time.Now().Add(-time.Hour),
	}))

	f.service.OnRideCompleted(context.Background(), driverID)

	for _, partnership := range f.partnershipRepo.partnerships {
		assert.Zero(t, partnership.RidesCompleted)
	}
}

func TestGetMyPartnershipsFlagsLiveness(t *testing.T) {
	f := newPartnershipFixture(t)
	driverID := primitive.NewObjectID()

	require.NoError(t, f.partnershipRepo.CreatePartnership(context.Background(), &models.DriverHotelPartnership{
		DriverID:        driverID,
		AccommodationID: f.accommodation.ID,
		Tier:            models.TierBronze,
		ValidUntil:      time.Now().Add(-time.Hour),
	}))

	views, total, err := f.service.GetMyPartnerships(context.Background(), driverID, nil)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.False(t, views[0].Active)
}

func TestDiscountForTier(t *testing.T) {
	assert.Equal(t, utils.BronzeDiscountPct, DiscountForTier(models.TierBronze))
	assert.Equal(t, utils.SilverDiscountPct, DiscountForTier(models.TierSilver))
	assert.Equal(t, utils.GoldDiscountPct, DiscountForTier(models.TierGold))
	assert.Equal(t, utils.PlatinumDiscountPct, DiscountForTier(models.TierPlatinum))
}
