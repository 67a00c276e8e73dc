package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProposalStatus string

const (
	ProposalStatusOpen   ProposalStatus = "open"
	ProposalStatusClosed ProposalStatus = "closed"
)

// Proposal is a hotel-authored partnership offer shown to drivers.
type Proposal struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	AccommodationID primitive.ObjectID `json:"accommodation_id" bson:"accommodation_id" validate:"required"`
	ManagerID       primitive.ObjectID `json:"manager_id" bson:"manager_id" validate:"required"`
	Title           string             `json:"title" bson:"title" validate:"required,min=3,max=120"`
	Terms           string             `json:"terms" bson:"terms" validate:"required"`
	CommissionRate  float64            `json:"commission_rate" bson:"commission_rate"`
	BenefitSummary  string             `json:"benefit_summary" bson:"benefit_summary"`
	Status          ProposalStatus     `json:"status" bson:"status" default:"open"`
	ClosedAt        *time.Time         `json:"closed_at" bson:"closed_at"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// Application records a driver's answer to a proposal.
type Application struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ProposalID primitive.ObjectID `json:"proposal_id" bson:"proposal_id" validate:"required"`
	DriverID   primitive.ObjectID `json:"driver_id" bson:"driver_id" validate:"required"`
	Status     ApplicationStatus  `json:"status" bson:"status" default:"pending"`
	Message    string             `json:"message" bson:"message"`
	DecidedAt  *time.Time         `json:"decided_at" bson:"decided_at"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}

// Agreement is the record produced when a driver accepts a proposal.
type Agreement struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ProposalID      primitive.ObjectID `json:"proposal_id" bson:"proposal_id"`
	ApplicationID   primitive.ObjectID `json:"application_id" bson:"application_id"`
	AccommodationID primitive.ObjectID `json:"accommodation_id" bson:"accommodation_id"`
	DriverID        primitive.ObjectID `json:"driver_id" bson:"driver_id"`
	CommissionRate  float64            `json:"commission_rate" bson:"commission_rate"`
	Terms           string             `json:"terms" bson:"terms"`
	SignedAt        time.Time          `json:"signed_at" bson:"signed_at"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
}

type PartnershipTier string

const (
	TierBronze   PartnershipTier = "bronze"
	TierSilver   PartnershipTier = "silver"
	TierGold     PartnershipTier = "gold"
	TierPlatinum PartnershipTier = "platinum"
)

func (t PartnershipTier) IsValid() bool {
	switch t {
	case TierBronze, TierSilver, TierGold, TierPlatinum:
		return true
	}
	return false
}

// TierForRideCount maps a completed-ride count onto the highest tier it
// qualifies for. Thresholds live in internal/utils/constants.go; they
// are passed in so the pure mapping stays testable.
func TierForRideCount(rides int, silverMin, goldMin, platinumMin int) PartnershipTier {
	switch {
	case rides >= platinumMin:
		return TierPlatinum
	case rides >= goldMin:
		return TierGold
	case rides >= silverMin:
		return TierSilver
	default:
		return TierBronze
	}
}

// DriverHotelPartnership tracks a driver's standing with one hotel:
// current tier, discount, and ride volume. Expiry deactivates the
// partnership without deleting it.
type DriverHotelPartnership struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	DriverID        primitive.ObjectID `json:"driver_id" bson:"driver_id" validate:"required"`
	AccommodationID primitive.ObjectID `json:"accommodation_id" bson:"accommodation_id" validate:"required"`
	AgreementID     primitive.ObjectID `json:"agreement_id" bson:"agreement_id"`
	Tier            PartnershipTier    `json:"tier" bson:"tier" default:"bronze"`
	DiscountPct     float64            `json:"discount_pct" bson:"discount_pct"`
	RidesCompleted  int                `json:"rides_completed" bson:"rides_completed"`
	ValidUntil      time.Time          `json:"valid_until" bson:"valid_until"`
	IsActive        bool               `json:"is_active" bson:"is_active" default:"true"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}

// IsCurrentlyActive folds the expiry date into the active flag; expired
// partnerships stay stored but stop granting discounts.
func (p *DriverHotelPartnership) IsCurrentlyActive(now time.Time) bool {
	return p.IsActive && now.Before(p.ValidUntil)
}

// PartnershipBenefit is one catalog entry describing what a tier grants.
type PartnershipBenefit struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Tier        PartnershipTier    `json:"tier" bson:"tier" validate:"required"`
	Name        string             `json:"name" bson:"name" validate:"required"`
	Description string             `json:"description" bson:"description"`
	DiscountPct float64            `json:"discount_pct" bson:"discount_pct"`
	IsActive    bool               `json:"is_active" bson:"is_active" default:"true"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}
