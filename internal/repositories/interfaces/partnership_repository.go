package interfaces

import (
	"context"

	"boleia/internal/models"
	"boleia/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PartnershipRepository interface {
	// Proposals
	CreateProposal(ctx context.Context, proposal *models.Proposal) error
	GetProposal(ctx context.Context, id primitive.ObjectID) (*models.Proposal, error)
	ListOpenProposals(ctx context.Context, params *utils.PaginationParams) ([]*models.Proposal, int64, error)
	GetProposalsByAccommodation(ctx context.Context, accommodationID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Proposal, int64, error)
	GetProposalsByManager(ctx context.Context, managerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Proposal, int64, error)
	CloseProposal(ctx context.Context, id primitive.ObjectID) error

	// Applications
	CreateApplication(ctx context.Context, application *models.Application) error
	GetApplication(ctx context.Context, id primitive.ObjectID) (*models.Application, error)
	GetApplicationByProposalAndDriver(ctx context.Context, proposalID, driverID primitive.ObjectID) (*models.Application, error)
	GetApplicationsByProposal(ctx context.Context, proposalID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Application, int64, error)
	GetApplicationsByDriver(ctx context.Context, driverID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Application, int64, error)
	DecideApplication(ctx context.Context, id primitive.ObjectID, status models.ApplicationStatus) error

	// Agreements
	CreateAgreement(ctx context.Context, agreement *models.Agreement) error
	GetAgreement(ctx context.Context, id primitive.ObjectID) (*models.Agreement, error)

	// Partnerships
	CreatePartnership(ctx context.Context, partnership *models.DriverHotelPartnership) error
	GetPartnership(ctx context.Context, id primitive.ObjectID) (*models.DriverHotelPartnership, error)
	GetPartnershipByDriverAndAccommodation(ctx context.Context, driverID, accommodationID primitive.ObjectID) (*models.DriverHotelPartnership, error)
	GetPartnershipsByDriver(ctx context.Context, driverID primitive.ObjectID, params *utils.PaginationParams) ([]*models.DriverHotelPartnership, int64, error)
	GetPartnershipsByAccommodation(ctx context.Context, accommodationID primitive.ObjectID, params *utils.PaginationParams) ([]*models.DriverHotelPartnership, int64, error)
	IncrementRides(ctx context.Context, id primitive.ObjectID) (*models.DriverHotelPartnership, error)
	UpdateTier(ctx context.Context, id primitive.ObjectID, tier models.PartnershipTier, discountPct float64) error
	DeactivatePartnership(ctx context.Context, id primitive.ObjectID) error

	// Benefits catalog
	CreateBenefit(ctx context.Context, benefit *models.PartnershipBenefit) error
	GetBenefitsByTier(ctx context.Context, tier models.PartnershipTier) ([]*models.PartnershipBenefit, error)
}
