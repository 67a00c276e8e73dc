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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type partnershipRepository struct {
	proposals    *mongo.Collection
	applications *mongo.Collection
	agreements   *mongo.Collection
	partnerships *mongo.Collection
	benefits     *mongo.Collection
	cache        CacheService
}

func NewPartnershipRepository(db *mongo.Database, cache CacheService) interfaces.PartnershipRepository {
	return &partnershipRepository{
		proposals:    db.Collection("proposals"),
		applications: db.Collection("applications"),
		agreements:   db.Collection("agreements"),
		partnerships: db.Collection("partnerships"),
		benefits:     db.Collection("partnership_benefits"),
		cache:        cache,
	}
}

// Proposals

func (r *partnershipRepository) CreateProposal(ctx context.Context, proposal *models.Proposal) error {
	proposal.ID = primitive.NewObjectID()
	proposal.Status = models.ProposalStatusOpen
	proposal.CreatedAt = time.Now()
	proposal.UpdatedAt = time.Now()

	_, err := r.proposals.InsertOne(ctx, proposal)
	if err != nil {
		return fmt.Errorf("failed to create proposal: %w", err)
	}

	return nil
}

func (r *partnershipRepository) GetProposal(ctx context.Context, id primitive.ObjectID) (*models.Proposal, error) {
	var proposal models.Proposal
	err := r.proposals.FindOne(ctx, bson.M{"_id": id}).Decode(&proposal)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get proposal: %w", err)
	}

	return &proposal, nil
}

func (r *partnershipRepository) ListOpenProposals(ctx context.Context, params *utils.PaginationParams) ([]*models.Proposal, int64, error) {
	return r.findProposals(ctx, bson.M{"status": models.ProposalStatusOpen}, params)
}

func (r *partnershipRepository) GetProposalsByAccommodation(ctx context.Context, accommodationID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Proposal, int64, error) {
	return r.findProposals(ctx, bson.M{"accommodation_id": accommodationID}, params)
}

func (r *partnershipRepository) GetProposalsByManager(ctx context.Context, managerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Proposal, int64, error) {
	return r.findProposals(ctx, bson.M{"manager_id": managerID}, params)
}

func (r *partnershipRepository) CloseProposal(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now()
	result, err := r.proposals.UpdateOne(
		ctx,
		bson.M{"_id": id, "status": models.ProposalStatusOpen},
		bson.M{"$set": bson.M{
			"status":     models.ProposalStatusClosed,
			"closed_at":  now,
			"updated_at": now,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to close proposal: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

// Applications

func (r *partnershipRepository) CreateApplication(ctx context.Context, application *models.Application) error {
	application.ID = primitive.NewObjectID()
	application.Status = models.ApplicationStatusPending
	application.CreatedAt = time.Now()
	application.UpdatedAt = time.Now()

	_, err := r.applications.InsertOne(ctx, application)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return interfaces.ErrDuplicate
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	return nil
}

func (r *partnershipRepository) GetApplication(ctx context.Context, id primitive.ObjectID) (*models.Application, error) {
	var application models.Application
	err := r.applications.FindOne(ctx, bson.M{"_id": id}).Decode(&application)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	return &application, nil
}

func (r *partnershipRepository) GetApplicationByProposalAndDriver(ctx context.Context, proposalID, driverID primitive.ObjectID) (*models.Application, error) {
	var application models.Application
	err := r.applications.FindOne(ctx, bson.M{
		"proposal_id": proposalID,
		"driver_id":   driverID,
	}).Decode(&application)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	return &application, nil
}

func (r *partnershipRepository) GetApplicationsByProposal(ctx context.Context, proposalID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Application, int64, error) {
	return r.findApplications(ctx, bson.M{"proposal_id": proposalID}, params)
}

func (r *partnershipRepository) GetApplicationsByDriver(ctx context.Context, driverID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Application, int64, error) {
	return r.findApplications(ctx, bson.M{"driver_id": driverID}, params)
}

func (r *partnershipRepository) DecideApplication(ctx context.Context, id primitive.ObjectID, status models.ApplicationStatus) error {
	now := time.Now()
	result, err := r.applications.UpdateOne(
		ctx,
		bson.M{"_id": id, "status": models.ApplicationStatusPending},
		bson.M{"$set": bson.M{
			"status":     status,
			"decided_at": now,
			"updated_at": now,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to decide application: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

// Agreements

func (r *partnershipRepository) CreateAgreement(ctx context.Context, agreement *models.Agreement) error {
	agreement.ID = primitive.NewObjectID()
	agreement.CreatedAt = time.Now()
	if agreement.SignedAt.IsZero() {
		agreement.SignedAt = time.Now()
	}

	_, err := r.agreements.InsertOne(ctx, agreement)
	if err != nil {
		return fmt.Errorf("failed to create agreement: %w", err)
	}

	return nil
}

func (r *partnershipRepository) GetAgreement(ctx context.Context, id primitive.ObjectID) (*models.Agreement, error) {
	var agreement models.Agreement
	err := r.agreements.FindOne(ctx, bson.M{"_id": id}).Decode(&agreement)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get agreement: %w", err)
	}

	return &agreement, nil
}

// Partnerships

func (r *partnershipRepository) CreatePartnership(ctx context.Context, partnership *models.DriverHotelPartnership) error {
	partnership.ID = primitive.NewObjectID()
	partnership.IsActive = true
	partnership.CreatedAt = time.Now()
	partnership.UpdatedAt = time.Now()

	_, err := r.partnerships.InsertOne(ctx, partnership)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return interfaces.ErrDuplicate
		}
		return fmt.Errorf("failed to create partnership: %w", err)
	}

	return nil
}

func (r *partnershipRepository) GetPartnership(ctx context.Context, id primitive.ObjectID) (*models.DriverHotelPartnership, error) {
	var partnership models.DriverHotelPartnership
	err := r.partnerships.FindOne(ctx, bson.M{"_id": id}).Decode(&partnership)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get partnership: %w", err)
	}

	return &partnership, nil
}

func (r *partnershipRepository) GetPartnershipByDriverAndAccommodation(ctx context.Context, driverID, accommodationID primitive.ObjectID) (*models.DriverHotelPartnership, error) {
	var partnership models.DriverHotelPartnership
	err := r.partnerships.FindOne(ctx, bson.M{
		"driver_id":        driverID,
		"accommodation_id": accommodationID,
	}).Decode(&partnership)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get partnership: %w", err)
	}

	return &partnership, nil
}

func (r *partnershipRepository) GetPartnershipsByDriver(ctx context.Context, driverID primitive.ObjectID, params *utils.PaginationParams) ([]*models.DriverHotelPartnership, int64, error) {
	return r.findPartnerships(ctx, bson.M{"driver_id": driverID}, params)
}

func (r *partnershipRepository) GetPartnershipsByAccommodation(ctx context.Context, accommodationID primitive.ObjectID, params *utils.PaginationParams) ([]*models.DriverHotelPartnership, int64, error) {
	return r.findPartnerships(ctx, bson.M{"accommodation_id": accommodationID}, params)
}

// IncrementRides bumps the completed-ride counter and returns the fresh
// document so the caller can re-evaluate the tier.
func (r *partnershipRepository) IncrementRides(ctx context.Context, id primitive.ObjectID) (*models.DriverHotelPartnership, error) {
	after := options.After
	var partnership models.DriverHotelPartnership
	err := r.partnerships.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"rides_completed": 1},
			"$set": bson.M{"updated_at": time.Now()},
		},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&partnership)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to increment rides: %w", err)
	}

	return &partnership, nil
}

func (r *partnershipRepository) UpdateTier(ctx context.Context, id primitive.ObjectID, tier models.PartnershipTier, discountPct float64) error {
	result, err := r.partnerships.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"tier":         tier,
			"discount_pct": discountPct,
			"updated_at":   time.Now(),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to update tier: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

func (r *partnershipRepository) DeactivatePartnership(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.partnerships.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"is_active":  false,
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate partnership: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

// Benefits

func (r *partnershipRepository) CreateBenefit(ctx context.Context, benefit *models.PartnershipBenefit) error {
	benefit.ID = primitive.NewObjectID()
	benefit.IsActive = true
	benefit.CreatedAt = time.Now()

	_, err := r.benefits.InsertOne(ctx, benefit)
	if err != nil {
		return fmt.Errorf("failed to create benefit: %w", err)
	}

	return nil
}

func (r *partnershipRepository) GetBenefitsByTier(ctx context.Context, tier models.PartnershipTier) ([]*models.PartnershipBenefit, error) {
	cursor, err := r.benefits.Find(ctx, bson.M{"tier": tier, "is_active": true})
	if err != nil {
		return nil, fmt.Errorf("failed to list benefits: %w", err)
	}
	defer cursor.Close(ctx)

	var benefits []*models.PartnershipBenefit
	if err := cursor.All(ctx, &benefits); err != nil {
		return nil, fmt.Errorf("failed to decode benefits: %w", err)
	}

	return benefits, nil
}

// Helpers

func (r *partnershipRepository) findProposals(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Proposal, int64, error) {
	total, err := r.proposals.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count proposals: %w", err)
	}

	cursor, err := r.proposals.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list proposals: %w", err)
	}
	defer cursor.Close(ctx)

	var proposals []*models.Proposal
	if err := cursor.All(ctx, &proposals); err != nil {
		return nil, 0, fmt.Errorf("failed to decode proposals: %w", err)
	}

	return proposals, total, nil
}

func (r *partnershipRepository) findApplications(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Application, int64, error) {
	total, err := r.applications.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count applications: %w", err)
	}

	cursor, err := r.applications.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list applications: %w", err)
	}
	defer cursor.Close(ctx)

	var applications []*models.Application
	if err := cursor.All(ctx, &applications); err != nil {
		return nil, 0, fmt.Errorf("failed to decode applications: %w", err)
	}

	return applications, total, nil
}

func (r *partnershipRepository) findPartnerships(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.DriverHotelPartnership, int64, error) {
	total, err := r.partnerships.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count partnerships: %w", err)
	}

	cursor, err := r.partnerships.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list partnerships: %w", err)
	}
	defer cursor.Close(ctx)

	var partnerships []*models.DriverHotelPartnership
	if err := cursor.All(ctx, &partnerships); err != nil {
		return nil, 0, fmt.Errorf("failed to decode partnerships: %w", err)
	}

	return partnerships, total, nil
}
