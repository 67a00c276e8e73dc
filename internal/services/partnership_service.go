package services

import (
	"context"
	"fmt"
	"time"

	"boleia/internal/models"
	"boleia/internal/repositories/interfaces"
	"boleia/internal/utils"
	"boleia/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DiscountForTier maps a tier onto its discount percentage.
func DiscountForTier(tier models.PartnershipTier) float64 {
	switch tier {
	case models.TierPlatinum:
		return utils.PlatinumDiscountPct
	case models.TierGold:
		return utils.GoldDiscountPct
	case models.TierSilver:
		return utils.SilverDiscountPct
	default:
		return utils.BronzeDiscountPct
	}
}

// PartnershipService runs the driver↔hotel program: hotels publish
// proposals, drivers accept or reject them, acceptance produces an
// application record, a signed agreement and a bronze partnership that
// climbs tiers as the driver completes rides.
type PartnershipService interface {
	// Hotel manager surface
	CreateProposal(ctx context.Context, managerID primitive.ObjectID, request *CreateProposalRequest) (*models.Proposal, error)
	CloseProposal(ctx context.Context, managerID, proposalID primitive.ObjectID) error
	GetMyProposals(ctx context.Context, managerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Proposal, int64, error)
	GetProposalApplications(ctx context.Context, managerID, proposalID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Application, int64, error)
	GetAccommodationPartnerships(ctx context.Context, managerID, accommodationID primitive.ObjectID, params *utils.PaginationParams) ([]*models.DriverHotelPartnership, int64, error)

	// Driver surface
	ListOpenProposals(ctx context.Context, params *utils.PaginationParams) ([]*models.Proposal, int64, error)
	GetProposal(ctx context.Context, id primitive.ObjectID) (*models.Proposal, error)
	AcceptProposal(ctx context.Context, driverID, proposalID primitive.ObjectID, message string) (*ProposalDecision, error)
	RejectProposal(ctx context.Context, driverID, proposalID primitive.ObjectID, message string) (*models.Application, error)
	GetMyApplications(ctx context.Context, driverID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Application, int64, error)
	GetMyPartnerships(ctx context.Context, driverID primitive.ObjectID, params *utils.PaginationParams) ([]*PartnershipView, int64, error)

	// Benefits catalog
	GetBenefits(ctx context.Context, tier models.PartnershipTier) ([]*models.PartnershipBenefit, error)

	// Ride completion hook; advances tier counters for the driver's
	// active partnerships.
	OnRideCompleted(ctx context.Context, driverID primitive.ObjectID)
}

type CreateProposalRequest struct {
	AccommodationID primitive.ObjectID `json:"accommodation_id" validate:"required"`
	Title           string             `json:"title" validate:"required,min=3,max=120"`
	Terms           string             `json:"terms" validate:"required,max=5000"`
	CommissionRate  float64            `json:"commission_rate" validate:"omitempty,min=0,max=50"`
	BenefitSummary  string             `json:"benefit_summary" validate:"omitempty,max=1000"`
}

// ProposalDecision is everything an acceptance produces.
type ProposalDecision struct {
	Application *models.Application            `json:"application"`
	Agreement   *models.Agreement              `json:"agreement"`
	Partnership *models.DriverHotelPartnership `json:"partnership"`
}

// PartnershipView adds the liveness flag the stored record only
// implies.
type PartnershipView struct {
	*models.DriverHotelPartnership
	Active bool `json:"active"`
}

type partnershipService struct {
	partnershipRepo   interfaces.PartnershipRepository
	accommodationRepo interfaces.AccommodationRepository
	notifier          NotificationService
	logger            *logger.Logger
}

func NewPartnershipService(
	partnershipRepo interfaces.PartnershipRepository,
	accommodationRepo interfaces.AccommodationRepository,
	notifier NotificationService,
	logger *logger.Logger,
) PartnershipService {
	return &partnershipService{
		partnershipRepo:   partnershipRepo,
		accommodationRepo: accommodationRepo,
		notifier:          notifier,
		logger:            logger,
	}
}

func (s *partnershipService) CreateProposal(ctx context.Context, managerID primitive.ObjectID, request *CreateProposalRequest) (*models.Proposal, error) {
	accommodation, err := s.accommodationRepo.GetByID(ctx, request.AccommodationID)
	if err != nil {
		return nil, err
	}
	if accommodation.HostID != managerID {
		return nil, ErrForbidden
	}

	proposal := &models.Proposal{
		AccommodationID: request.AccommodationID,
		ManagerID:       managerID,
		Title:           utils.SanitizeString(request.Title),
		Terms:           utils.SanitizeString(request.Terms),
		CommissionRate:  request.CommissionRate,
		BenefitSummary:  utils.SanitizeString(request.BenefitSummary),
	}

	if err := s.partnershipRepo.CreateProposal(ctx, proposal); err != nil {
		return nil, fmt.Errorf("failed to create proposal: %w", err)
	}

	s.logger.WithUserID(managerID).WithField("proposal_id", proposal.ID.Hex()).Info("proposal published")

	return proposal, nil
}

func (s *partnershipService) CloseProposal(ctx context.Context, managerID, proposalID primitive.ObjectID) error {
	proposal, err := s.partnershipRepo.GetProposal(ctx, proposalID)
	if err != nil {
		return err
	}
	if proposal.ManagerID != managerID {
		return ErrForbidden
	}

	err = s.partnershipRepo.CloseProposal(ctx, proposalID)
	if err == interfaces.ErrNotFound {
		// The proposal exists but is no longer open.
		return ErrProposalClosed
	}
	return err
}

func (s *partnershipService) GetMyProposals(ctx context.Context, managerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Proposal, int64, error) {
	return s.partnershipRepo.GetProposalsByManager(ctx, managerID, params)
}

func (s *partnershipService) GetProposalApplications(ctx context.Context, managerID, proposalID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Application, int64, error) {
	proposal, err := s.partnershipRepo.GetProposal(ctx, proposalID)
	if err != nil {
		return nil, 0, err
	}
	if proposal.ManagerID != managerID {
		return nil, 0, ErrForbidden
	}

	return s.partnershipRepo.GetApplicationsByProposal(ctx, proposalID, params)
}

func (s *partnershipService) GetAccommodationPartnerships(ctx context.Context, managerID, accommodationID primitive.ObjectID, params *utils.PaginationParams) ([]*models.DriverHotelPartnership, int64, error) {
	accommodation, err := s.accommodationRepo.GetByID(ctx, accommodationID)
	if err != nil {
		return nil, 0, err
	}
	if accommodation.HostID != managerID {
		return nil, 0, ErrForbidden
	}

	return s.partnershipRepo.GetPartnershipsByAccommodation(ctx, accommodationID, params)
}

func (s *partnershipService) ListOpenProposals(ctx context.Context, params *utils.PaginationParams) ([]*models.Proposal, int64, error) {
	return s.partnershipRepo.ListOpenProposals(ctx, params)
}

func (s *partnershipService) GetProposal(ctx context.Context, id primitive.ObjectID) (*models.Proposal, error) {
	return s.partnershipRepo.GetProposal(ctx, id)
}

func (s *partnershipService) AcceptProposal(ctx context.Context, driverID, proposalID primitive.ObjectID, message string) (*ProposalDecision, error) {
	proposal, err := s.partnershipRepo.GetProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if proposal.Status != models.ProposalStatusOpen {
		return nil, ErrProposalClosed
	}

	application, err := s.recordDecision(ctx, driverID, proposalID, message, models.ApplicationStatusAccepted)
	if err != nil {
		return nil, err
	}

	agreement := &models.Agreement{
		ProposalID:      proposalID,
		ApplicationID:   application.ID,
		AccommodationID: proposal.AccommodationID,
		DriverID:        driverID,
		CommissionRate:  proposal.CommissionRate,
		Terms:           proposal.Terms,
		SignedAt:        time.Now(),
	}
	if err := s.partnershipRepo.CreateAgreement(ctx, agreement); err != nil {
		return nil, fmt.Errorf("failed to create agreement: %w", err)
	}

	partnership, err := s.ensurePartnership(ctx, driverID, proposal.AccommodationID, agreement.ID)
	if err != nil {
		return nil, err
	}

	s.notifyManager(ctx, proposal, driverID, models.NotificationTypeProposalAccepted, "Proposta aceite",
		"Um motorista aceitou a sua proposta de parceria")

	return &ProposalDecision{
		Application: application,
		Agreement:   agreement,
		Partnership: partnership,
	}, nil
}

func (s *partnershipService) RejectProposal(ctx context.Context, driverID, proposalID primitive.ObjectID, message string) (*models.Application, error) {
	proposal, err := s.partnershipRepo.GetProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if proposal.Status != models.ProposalStatusOpen {
		return nil, ErrProposalClosed
	}

	application, err := s.recordDecision(ctx, driverID, proposalID, message, models.ApplicationStatusRejected)
	if err != nil {
		return nil, err
	}

	s.notifyManager(ctx, proposal, driverID, models.NotificationTypeProposalRejected, "Proposta recusada",
		"Um motorista recusou a sua proposta de parceria")

	return application, nil
}

// recordDecision writes the application and immediately stamps the
// driver's decision on it. One application per driver per proposal; a
// second decision surfaces as a duplicate.
func (s *partnershipService) recordDecision(ctx context.Context, driverID, proposalID primitive.ObjectID, message string, status models.ApplicationStatus) (*models.Application, error) {
	application := &models.Application{
		ProposalID: proposalID,
		DriverID:   driverID,
		Message:    utils.SanitizeString(message),
	}

	if err := s.partnershipRepo.CreateApplication(ctx, application); err != nil {
		return nil, err
	}

	if err := s.partnershipRepo.DecideApplication(ctx, application.ID, status); err != nil {
		return nil, err
	}

	now := time.Now()
	application.Status = status
	application.DecidedAt = &now

	return application, nil
}

// ensurePartnership creates the bronze partnership on first acceptance
// and reuses the existing one on later agreements with the same hotel.
func (s *partnershipService) ensurePartnership(ctx context.Context, driverID, accommodationID, agreementID primitive.ObjectID) (*models.DriverHotelPartnership, error) {
	existing, err := s.partnershipRepo.GetPartnershipByDriverAndAccommodation(ctx, driverID, accommodationID)
	if err == nil {
		return existing, nil
	}
	if err != interfaces.ErrNotFound {
		return nil, err
	}

	partnership := &models.DriverHotelPartnership{
		DriverID:        driverID,
		AccommodationID: accommodationID,
		AgreementID:     agreementID,
		Tier:            models.TierBronze,
		DiscountPct:     utils.BronzeDiscountPct,
		ValidUntil:      time.Now().Add(utils.PartnershipValidity),
	}

	if err := s.partnershipRepo.CreatePartnership(ctx, partnership); err != nil {
		if err == interfaces.ErrDuplicate {
			return s.partnershipRepo.GetPartnershipByDriverAndAccommodation(ctx, driverID, accommodationID)
		}
		return nil, fmt.Errorf("failed to create partnership: %w", err)
	}

	return partnership, nil
}

func (s *partnershipService) GetMyApplications(ctx context.Context, driverID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Application, int64, error) {
	return s.partnershipRepo.GetApplicationsByDriver(ctx, driverID, params)
}

func (s *partnershipService) GetMyPartnerships(ctx context.Context, driverID primitive.ObjectID, params *utils.PaginationParams) ([]*PartnershipView, int64, error) {
	partnerships, total, err := s.partnershipRepo.GetPartnershipsByDriver(ctx, driverID, params)
	if err != nil {
		return nil, 0, err
	}

	now := time.Now()
	views := make([]*PartnershipView, 0, len(partnerships))
	for _, partnership := range partnerships {
		views = append(views, &PartnershipView{
			DriverHotelPartnership: partnership,
			Active:                 partnership.IsCurrentlyActive(now),
		})
	}

	return views, total, nil
}

func (s *partnershipService) GetBenefits(ctx context.Context, tier models.PartnershipTier) ([]*models.PartnershipBenefit, error) {
	return s.partnershipRepo.GetBenefitsByTier(ctx, tier)
}

// OnRideCompleted bumps the ride counter on every active partnership of
// the driver and promotes tiers that crossed a threshold. Best effort;
// a failed bump never fails the ride completion.
func (s *partnershipService) OnRideCompleted(ctx context.Context, driverID primitive.ObjectID) {
	partnerships, _, err := s.partnershipRepo.GetPartnershipsByDriver(ctx, driverID,
		&utils.PaginationParams{Page: 1, PageSize: utils.MaxPageSize, Sort: "created_at", Order: "asc"})
	if err != nil {
		s.logger.WithError(err).WithUserID(driverID).Warn("failed to load partnerships on ride completion")
		return
	}

	now := time.Now()
	for _, partnership := range partnerships {
		if !partnership.IsCurrentlyActive(now) {
			continue
		}

		updated, err := s.partnershipRepo.IncrementRides(ctx, partnership.ID)
		if err != nil {
			s.logger.WithError(err).WithField("partnership_id", partnership.ID.Hex()).Warn("failed to increment ride counter")
			continue
		}

		tier := models.TierForRideCount(updated.RidesCompleted,
			utils.SilverMinRides, utils.GoldMinRides, utils.PlatinumMinRides)
		if tier == updated.Tier {
			continue
		}

		if err := s.partnershipRepo.UpdateTier(ctx, partnership.ID, tier, DiscountForTier(tier)); err != nil {
			s.logger.WithError(err).WithField("partnership_id", partnership.ID.Hex()).Warn("failed to promote tier")
			continue
		}

		s.logger.WithUserID(driverID).WithFields(map[string]interface{}{
			"partnership_id": partnership.ID.Hex(),
			"tier":           tier,
		}).Info("partnership tier promoted")
	}
}

func (s *partnershipService) notifyManager(ctx context.Context, proposal *models.Proposal, driverID primitive.ObjectID, notificationType models.NotificationType, title, message string) {
	if s.notifier == nil {
		return
	}

	err := s.notifier.Notify(ctx, &NotificationInput{
		UserID:  proposal.ManagerID,
		Type:    notificationType,
		Title:   title,
		Message: message,
		Data: map[string]interface{}{
			"proposal_id": proposal.ID.Hex(),
			"driver_id":   driverID.Hex(),
		},
	})
	if err != nil {
		s.logger.WithError(err).WithUserID(proposal.ManagerID).Warn("proposal decision notification failed")
	}
}
