package services

import (
	"context"
	"fmt"
	"time"

	"boleia/internal/models"
	"boleia/internal/repositories/interfaces"
	"boleia/internal/utils"
	"boleia/pkg/logger"
	"boleia/pkg/payment"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// bookingReferenceAttempts bounds the retry loop on reference
// collisions; the unique index makes a silent duplicate impossible.
const bookingReferenceAttempts = 5

// BookingService runs the hotel booking lifecycle:
// pending → confirmed → active → completed, with cancellation allowed
// before check-in. A room unit is held from creation until check-out or
// cancellation.
type BookingService interface {
	// Client surface
	CreateBooking(ctx context.Context, clientID primitive.ObjectID, request *CreateBookingRequest) (*models.HotelBooking, error)
	CancelBooking(ctx context.Context, clientID, bookingID primitive.ObjectID) error
	GetMyBookings(ctx context.Context, clientID primitive.ObjectID, params *utils.PaginationParams) ([]*models.HotelBooking, int64, error)
	GetBooking(ctx context.Context, actorID, bookingID primitive.ObjectID) (*models.HotelBooking, error)

	// Manager surface
	ConfirmBooking(ctx context.Context, managerID, bookingID primitive.ObjectID, request *ConfirmBookingRequest) (*models.HotelBooking, error)
	RejectBooking(ctx context.Context, managerID, bookingID primitive.ObjectID, reason string) error
	CheckIn(ctx context.Context, managerID, bookingID primitive.ObjectID) error
	CheckOut(ctx context.Context, managerID, bookingID primitive.ObjectID) error
	GetAccommodationBookings(ctx context.Context, managerID, accommodationID primitive.ObjectID, status models.BookingStatus, params *utils.PaginationParams) ([]*models.HotelBooking, int64, error)
	GetBookingStats(ctx context.Context, managerID, accommodationID primitive.ObjectID) (*BookingStats, error)
}

type CreateBookingRequest struct {
	AccommodationID primitive.ObjectID `json:"accommodation_id" validate:"required"`
	RoomTypeID      primitive.ObjectID `json:"room_type_id" validate:"required"`
	CheckIn         time.Time          `json:"check_in" validate:"required"`
	CheckOut        time.Time          `json:"check_out" validate:"required"`
	Guests          int                `json:"guests" validate:"required,min=1,max=12"`
	GuestNotes      string             `json:"guest_notes" validate:"omitempty,max=1000"`
}

type ConfirmBookingRequest struct {
	// Payment details for capture on confirmation. Either a card
	// payment method or a mobile-money phone number, depending on the
	// configured gateway. Empty skips capture (pay at property).
	PaymentMethodID string `json:"payment_method_id" validate:"omitempty,max=255"`
	PhoneNumber     string `json:"phone_number" validate:"omitempty"`
}

type BookingStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Active    int64 `json:"active"`
	Completed int64 `json:"completed"`
	Cancelled int64 `json:"cancelled"`
}

type bookingService struct {
	bookingRepo       interfaces.BookingRepository
	roomTypeRepo      interfaces.RoomTypeRepository
	accommodationRepo interfaces.AccommodationRepository
	partnershipRepo   interfaces.PartnershipRepository
	paymentProvider   payment.Provider
	notifier          NotificationService
	logger            *logger.Logger
}

// NewBookingService wires the booking domain. partnershipRepo,
// paymentProvider and notifier may be nil; discounts, capture and
// notifications are then skipped.
func NewBookingService(
	bookingRepo interfaces.BookingRepository,
	roomTypeRepo interfaces.RoomTypeRepository,
	accommodationRepo interfaces.AccommodationRepository,
	partnershipRepo interfaces.PartnershipRepository,
	paymentProvider payment.Provider,
	notifier NotificationService,
	logger *logger.Logger,
) BookingService {
	return &bookingService{
		bookingRepo:       bookingRepo,
		roomTypeRepo:      roomTypeRepo,
		accommodationRepo: accommodationRepo,
		partnershipRepo:   partnershipRepo,
		paymentProvider:   paymentProvider,
		notifier:          notifier,
		logger:            logger,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, clientID primitive.ObjectID, request *CreateBookingRequest) (*models.HotelBooking, error) {
	if !request.CheckOut.After(request.CheckIn) {
		return nil, fmt.Errorf("check-out must be after check-in")
	}

	nights := utils.NightsBetween(request.CheckIn, request.CheckOut)
	if nights < 1 {
		nights = 1
	}
	if nights > utils.MaxBookingNights {
		return nil, fmt.Errorf("stay exceeds the %d night limit", utils.MaxBookingNights)
	}

	roomType, err := s.roomTypeRepo.GetByID(ctx, request.RoomTypeID)
	if err != nil {
		return nil, err
	}
	if roomType.AccommodationID != request.AccommodationID || !roomType.IsActive {
		return nil, interfaces.ErrNotFound
	}
	if !roomType.FitsGuests(request.Guests) {
		return nil, fmt.Errorf("room type does not fit %d guests", request.Guests)
	}

	accommodation, err := s.accommodationRepo.GetByID(ctx, request.AccommodationID)
	if err != nil {
		return nil, err
	}
	if !accommodation.IsActive {
		return nil, interfaces.ErrNotFound
	}

	price := utils.RoundCurrency(roomType.PriceForStay(nights, request.Guests))
	discountPct := s.partnerDiscount(ctx, clientID, request.AccommodationID)
	if discountPct > 0 {
		price = utils.RoundCurrency(price - utils.CalculateDiscount(price, discountPct, 0))
	}

	// Take the unit before inserting the booking; the conditional
	// update is the only oversell guard.
	if err := s.roomTypeRepo.TakeUnit(ctx, request.RoomTypeID); err != nil {
		return nil, err
	}

	booking := &models.HotelBooking{
		AccommodationID: request.AccommodationID,
		RoomTypeID:      request.RoomTypeID,
		ClientID:        clientID,
		CheckIn:         request.CheckIn,
		CheckOut:        request.CheckOut,
		Nights:          nights,
		Guests:          request.Guests,
		TotalPrice:      price,
		DiscountPct:     discountPct,
		Currency:        utils.DefaultCurrency,
		GuestNotes:      utils.SanitizeString(request.GuestNotes),
	}

	if err := s.insertWithReference(ctx, booking); err != nil {
		if releaseErr := s.roomTypeRepo.ReleaseUnit(ctx, request.RoomTypeID); releaseErr != nil {
			s.logger.WithError(releaseErr).WithField("room_type_id", request.RoomTypeID.Hex()).Error("failed to release unit after booking failure")
		}
		return nil, err
	}

	s.logger.WithUserID(clientID).WithFields(map[string]interface{}{
		"booking_id": booking.ID.Hex(),
		"reference":  booking.Reference,
		"nights":     nights,
	}).Info("booking created")

	s.notify(ctx, accommodation.HostID, models.NotificationTypeGeneral, "Nova reserva",
		fmt.Sprintf("Nova reserva %s em %s (%d noites)", booking.Reference, accommodation.Name, nights),
		map[string]interface{}{"booking_id": booking.ID.Hex()}, false)

	return booking, nil
}

func (s *bookingService) insertWithReference(ctx context.Context, booking *models.HotelBooking) error {
	for attempt := 0; attempt < bookingReferenceAttempts; attempt++ {
		booking.Reference = utils.GenerateBookingReference()
		err := s.bookingRepo.Create(ctx, booking)
		if err == nil {
			return nil
		}
		if err != interfaces.ErrDuplicate {
			return fmt.Errorf("failed to create booking: %w", err)
		}
	}
	return fmt.Errorf("failed to allocate a unique booking reference")
}

// partnerDiscount looks up the client's active partnership with the
// hotel, if any. Only drivers have partnerships.
func (s *bookingService) partnerDiscount(ctx context.Context, clientID, accommodationID primitive.ObjectID) float64 {
	if s.partnershipRepo == nil {
		return 0
	}

	partnership, err := s.partnershipRepo.GetPartnershipByDriverAndAccommodation(ctx, clientID, accommodationID)
	if err != nil {
		if err != interfaces.ErrNotFound {
			s.logger.WithError(err).WithUserID(clientID).Warn("partnership lookup failed")
		}
		return 0
	}

	if !partnership.IsCurrentlyActive(time.Now()) {
		return 0
	}

	return partnership.DiscountPct
}

func (s *bookingService) CancelBooking(ctx context.Context, clientID, bookingID primitive.ObjectID) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.ClientID != clientID {
		return ErrForbidden
	}
	if !models.CanTransitionBooking(booking.Status, models.BookingStatusCancelled) {
		return ErrInvalidTransition
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":       models.BookingStatusCancelled,
		"cancelled_at": now,
	}

	if booking.PaymentStatus == models.PaymentStatusPaid && s.paymentProvider != nil {
		if s.refund(ctx, booking) {
			updates["payment_status"] = models.PaymentStatusRefunded
		}
	}

	if err := s.bookingRepo.Update(ctx, bookingID, updates); err != nil {
		return err
	}

	s.releaseUnit(ctx, booking)

	return nil
}

func (s *bookingService) refund(ctx context.Context, booking *models.HotelBooking) bool {
	_, err := s.paymentProvider.RefundPayment(ctx, &payment.RefundRequest{
		TransactionID: booking.TransactionID,
		Amount:        booking.TotalPrice,
		Reason:        "booking cancelled",
	})
	if err != nil {
		s.logger.WithError(err).WithField("booking_id", booking.ID.Hex()).Error("refund failed")
		return false
	}
	return true
}

func (s *bookingService) ConfirmBooking(ctx context.Context, managerID, bookingID primitive.ObjectID, request *ConfirmBookingRequest) (*models.HotelBooking, error) {
	booking, accommodation, err := s.requireManaged(ctx, managerID, bookingID)
	if err != nil {
		return nil, err
	}
	if !models.CanTransitionBooking(booking.Status, models.BookingStatusConfirmed) {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":       models.BookingStatusConfirmed,
		"confirmed_at": now,
	}

	if s.paymentProvider != nil && booking.PaymentStatus == models.PaymentStatusUnpaid &&
		(request.PaymentMethodID != "" || request.PhoneNumber != "") {
		response, err := s.paymentProvider.ProcessPayment(ctx, &payment.PaymentRequest{
			PaymentMethodID: request.PaymentMethodID,
			PhoneNumber:     request.PhoneNumber,
			Amount:          booking.TotalPrice,
			Currency:        booking.Currency,
			Description:     fmt.Sprintf("Reserva %s - %s", booking.Reference, accommodation.Name),
			Reference:       booking.Reference,
			CustomerID:      booking.ClientID.Hex(),
		})
		if err != nil {
			s.logger.WithError(err).WithField("booking_id", booking.ID.Hex()).Error("payment capture failed")
			if updateErr := s.bookingRepo.Update(ctx, bookingID, map[string]interface{}{
				"payment_status": models.PaymentStatusFailed,
			}); updateErr != nil {
				s.logger.WithError(updateErr).WithField("booking_id", booking.ID.Hex()).Error("failed to record payment failure")
			}
			return nil, ErrPaymentFailed
		}
		updates["payment_status"] = models.PaymentStatusPaid
		updates["transaction_id"] = response.TransactionID
	}

	if err := s.bookingRepo.Update(ctx, bookingID, updates); err != nil {
		return nil, err
	}

	s.notify(ctx, booking.ClientID, models.NotificationTypeBookingConfirmed, "Reserva confirmada",
		fmt.Sprintf("A sua reserva %s em %s foi confirmada", booking.Reference, accommodation.Name),
		map[string]interface{}{"booking_id": booking.ID.Hex()}, true)

	return s.bookingRepo.GetByID(ctx, bookingID)
}

func (s *bookingService) RejectBooking(ctx context.Context, managerID, bookingID primitive.ObjectID, reason string) error {
	booking, accommodation, err := s.requireManaged(ctx, managerID, bookingID)
	if err != nil {
		return err
	}
	if booking.Status != models.BookingStatusPending {
		return ErrInvalidTransition
	}

	now := time.Now()
	err = s.bookingRepo.Update(ctx, bookingID, map[string]interface{}{
		"status":        models.BookingStatusCancelled,
		"reject_reason": utils.SanitizeString(reason),
		"cancelled_at":  now,
	})
	if err != nil {
		return err
	}

	s.releaseUnit(ctx, booking)

	s.notify(ctx, booking.ClientID, models.NotificationTypeBookingRejected, "Reserva recusada",
		fmt.Sprintf("A sua reserva %s em %s foi recusada", booking.Reference, accommodation.Name),
		map[string]interface{}{"booking_id": booking.ID.Hex(), "reason": reason}, true)

	return nil
}

func (s *bookingService) CheckIn(ctx context.Context, managerID, bookingID primitive.ObjectID) error {
	booking, _, err := s.requireManaged(ctx, managerID, bookingID)
	if err != nil {
		return err
	}
	if !models.CanTransitionBooking(booking.Status, models.BookingStatusActive) {
		return ErrInvalidTransition
	}

	now := time.Now()
	return s.bookingRepo.Update(ctx, bookingID, map[string]interface{}{
		"status":        models.BookingStatusActive,
		"checked_in_at": now,
	})
}

func (s *bookingService) CheckOut(ctx context.Context, managerID, bookingID primitive.ObjectID) error {
	booking, _, err := s.requireManaged(ctx, managerID, bookingID)
	if err != nil {
		return err
	}
	if !models.CanTransitionBooking(booking.Status, models.BookingStatusCompleted) {
		return ErrInvalidTransition
	}

	now := time.Now()
	err = s.bookingRepo.Update(ctx, bookingID, map[string]interface{}{
		"status":         models.BookingStatusCompleted,
		"checked_out_at": now,
	})
	if err != nil {
		return err
	}

	s.releaseUnit(ctx, booking)

	return nil
}

func (s *bookingService) releaseUnit(ctx context.Context, booking *models.HotelBooking) {
	if err := s.roomTypeRepo.ReleaseUnit(ctx, booking.RoomTypeID); err != nil {
		s.logger.WithError(err).WithFields(map[string]interface{}{
			"booking_id":   booking.ID.Hex(),
			"room_type_id": booking.RoomTypeID.Hex(),
		}).Error("failed to release room unit")
	}
}

func (s *bookingService) GetMyBookings(ctx context.Context, clientID primitive.ObjectID, params *utils.PaginationParams) ([]*models.HotelBooking, int64, error) {
	return s.bookingRepo.GetByClient(ctx, clientID, params)
}

// GetBooking serves both sides: the client who made it or the host of
// the accommodation it targets.
func (s *bookingService) GetBooking(ctx context.Context, actorID, bookingID primitive.ObjectID) (*models.HotelBooking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.ClientID == actorID {
		return booking, nil
	}

	accommodation, err := s.accommodationRepo.GetByID(ctx, booking.AccommodationID)
	if err != nil {
		return nil, err
	}
	if accommodation.HostID != actorID {
		return nil, ErrForbidden
	}

	return booking, nil
}

func (s *bookingService) GetAccommodationBookings(ctx context.Context, managerID, accommodationID primitive.ObjectID, status models.BookingStatus, params *utils.PaginationParams) ([]*models.HotelBooking, int64, error) {
	accommodation, err := s.accommodationRepo.GetByID(ctx, accommodationID)
	if err != nil {
		return nil, 0, err
	}
	if accommodation.HostID != managerID {
		return nil, 0, ErrForbidden
	}

	if status != "" {
		return s.bookingRepo.GetByStatus(ctx, accommodationID, status, params)
	}
	return s.bookingRepo.GetByAccommodation(ctx, accommodationID, params)
}

func (s *bookingService) GetBookingStats(ctx context.Context, managerID, accommodationID primitive.ObjectID) (*BookingStats, error) {
	accommodation, err := s.accommodationRepo.GetByID(ctx, accommodationID)
	if err != nil {
		return nil, err
	}
	if accommodation.HostID != managerID {
		return nil, ErrForbidden
	}

	stats := &BookingStats{}
	stats.Total, err = s.bookingRepo.CountByAccommodation(ctx, accommodationID)
	if err != nil {
		return nil, err
	}

	countParams := &utils.PaginationParams{Page: 1, PageSize: 1, Sort: "created_at", Order: "desc"}
	for status, target := range map[models.BookingStatus]*int64{
		models.BookingStatusPending:   &stats.Pending,
		models.BookingStatusConfirmed: &stats.Confirmed,
		models.BookingStatusActive:    &stats.Active,
		models.BookingStatusCompleted: &stats.Completed,
		models.BookingStatusCancelled: &stats.Cancelled,
	} {
		_, total, err := s.bookingRepo.GetByStatus(ctx, accommodationID, status, countParams)
		if err != nil {
			return nil, err
		}
		*target = total
	}

	return stats, nil
}

func (s *bookingService) requireManaged(ctx context.Context, managerID, bookingID primitive.ObjectID) (*models.HotelBooking, *models.Accommodation, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}

	accommodation, err := s.accommodationRepo.GetByID(ctx, booking.AccommodationID)
	if err != nil {
		return nil, nil, err
	}
	if accommodation.HostID != managerID {
		return nil, nil, ErrForbidden
	}

	return booking, accommodation, nil
}

func (s *bookingService) notify(ctx context.Context, userID primitive.ObjectID, notificationType models.NotificationType, title, message string, data map[string]interface{}, sendSMS bool) {
	if s.notifier == nil {
		return
	}

	err := s.notifier.Notify(ctx, &NotificationInput{
		UserID:  userID,
		Type:    notificationType,
		Title:   title,
		Message: message,
		Data:    data,
		SendSMS: sendSMS,
	})
	if err != nil {
		s.logger.WithError(err).WithUserID(userID).Warn("booking notification failed")
	}
}
