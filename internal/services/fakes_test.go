package services

import (
	"context"
	"errors"
	"time"

	"boleia/internal/models"
	"boleia/internal/repositories/interfaces"
	"boleia/internal/utils"
	"boleia/pkg/logger"
	"boleia/pkg/payment"
	"boleia/pkg/push"
	"boleia/pkg/sms"
	"boleia/pkg/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testLogger() *logger.Logger {
	log, err := logger.NewLogger(&logger.Config{Level: "panic", Format: "text", Output: "stderr"})
	if err != nil {
		panic(err)
	}
	return log
}

// fakeNotifier records fan-out requests instead of delivering them.
type fakeNotifier struct {
	sent []*NotificationInput
	fail bool
}

func (f *fakeNotifier) Notify(_ context.Context, input *NotificationInput) error {
	if f.fail {
		return errors.New("notifier down")
	}
	f.sent = append(f.sent, input)
	return nil
}

func (f *fakeNotifier) List(context.Context, primitive.ObjectID, models.NotificationStatus, *utils.PaginationParams) ([]*models.Notification, int64, error) {
	return nil, 0, nil
}
func (f *fakeNotifier) MarkRead(context.Context, primitive.ObjectID, primitive.ObjectID) error {
	return nil
}
func (f *fakeNotifier) MarkAllRead(context.Context, primitive.ObjectID) error { return nil }
func (f *fakeNotifier) CountUnread(context.Context, primitive.ObjectID) (int64, error) {
	return 0, nil
}

type fakePaymentProvider struct {
	captures []*payment.PaymentRequest
	refunds  []*payment.RefundRequest
	fail     bool
}

func (f *fakePaymentProvider) ProcessPayment(_ context.Context, request *payment.PaymentRequest) (*payment.PaymentResponse, error) {
	if f.fail {
		return nil, errors.New("gateway rejected the charge")
	}
	f.captures = append(f.captures, request)
	return &payment.PaymentResponse{
		TransactionID: "txn-test-001",
		Status:        "completed",
		Amount:        request.Amount,
		Currency:      request.Currency,
	}, nil
}

func (f *fakePaymentProvider) RefundPayment(_ context.Context, request *payment.RefundRequest) (*payment.RefundResponse, error) {
	if f.fail {
		return nil, errors.New("refund rejected")
	}
	f.refunds = append(f.refunds, request)
	return &payment.RefundResponse{RefundID: "ref-test-001", Status: "completed", Amount: request.Amount}, nil
}

func (f *fakePaymentProvider) ValidateWebhook(context.Context, []byte, string) (*payment.WebhookEvent, error) {
	return nil, nil
}

type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.UID == user.UID {
			return interfaces.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByUID(_ context.Context, uid string) (*models.User, error) {
	for _, u := range f.users {
		if u.UID == uid {
			return u, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	user, ok := f.users[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	if v, ok := updates["first_name"].(string); ok {
		user.FirstName = v
	}
	if v, ok := updates["last_name"].(string); ok {
		user.LastName = v
	}
	if v, ok := updates["phone"].(string); ok {
		user.Phone = v
	}
	if v, ok := updates["language"].(string); ok {
		user.Language = v
	}
	return nil
}

func (f *fakeUserRepo) Delete(context.Context, primitive.ObjectID) error { return nil }

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, id primitive.ObjectID) error {
	user, ok := f.users[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	now := time.Now()
	user.LastLoginAt = &now
	return nil
}

func (f *fakeUserRepo) SetRoles(_ context.Context, id primitive.ObjectID, roles []models.Role, userType models.Role) error {
	user, ok := f.users[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	user.Roles = roles
	user.UserType = userType
	return nil
}

func (f *fakeUserRepo) List(context.Context, *utils.PaginationParams) ([]*models.User, int64, error) {
	users := make([]*models.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, u)
	}
	return users, int64(len(users)), nil
}

func (f *fakeUserRepo) GetByRole(_ context.Context, role models.Role, _ *utils.PaginationParams) ([]*models.User, int64, error) {
	var users []*models.User
	for _, u := range f.users {
		if u.HasRole(role) {
			users = append(users, u)
		}
	}
	return users, int64(len(users)), nil
}

func (f *fakeUserRepo) GetTotalCount(context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

type fakeRideRepo struct {
	rides        map[primitive.ObjectID]*models.Ride
	seatBookings map[primitive.ObjectID]*models.SeatBooking

	failCreateSeatBooking bool
}

func newFakeRideRepo() *fakeRideRepo {
	return &fakeRideRepo{
		rides:        make(map[primitive.ObjectID]*models.Ride),
		seatBookings: make(map[primitive.ObjectID]*models.SeatBooking),
	}
}

func (f *fakeRideRepo) Create(_ context.Context, ride *models.Ride) error {
	ride.ID = primitive.NewObjectID()
	ride.CreatedAt = time.Now()
	f.rides[ride.ID] = ride
	return nil
}

func (f *fakeRideRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Ride, error) {
	ride, ok := f.rides[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return ride, nil
}

func (f *fakeRideRepo) Update(_ context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	ride, ok := f.rides[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	if v, ok := updates["status"].(models.RideStatus); ok {
		ride.Status = v
	}
	if v, ok := updates["departure_at"].(time.Time); ok {
		ride.DepartureAt = v
	}
	if v, ok := updates["price_per_seat"].(float64); ok {
		ride.PricePerSeat = v
	}
	if v, ok := updates["notes"].(string); ok {
		ride.Notes = v
	}
	if v, ok := updates["cancel_reason"].(string); ok {
		ride.CancelReason = v
	}
	if v, ok := updates["cancelled_at"].(time.Time); ok {
		ride.CancelledAt = &v
	}
	return nil
}

func (f *fakeRideRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.RideStatus) error {
	ride, ok := f.rides[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	ride.Status = status
	return nil
}

func (f *fakeRideRepo) Search(_ context.Context, filter *interfaces.RideSearchFilter, _ *utils.PaginationParams) ([]*models.Ride, int64, error) {
	var rides []*models.Ride
	for _, r := range f.rides {
		if filter.FromCity != "" && r.From.City != filter.FromCity {
			continue
		}
		if filter.ToCity != "" && r.To.City != filter.ToCity {
			continue
		}
		if filter.MaxPrice > 0 && r.PricePerSeat > filter.MaxPrice {
			continue
		}
		rides = append(rides, r)
	}
	return rides, int64(len(rides)), nil
}

func (f *fakeRideRepo) GetByDriver(_ context.Context, driverID primitive.ObjectID, _ *utils.PaginationParams) ([]*models.Ride, int64, error) {
	var rides []*models.Ride
	for _, r := range f.rides {
		if r.DriverID == driverID {
			rides = append(rides, r)
		}
	}
	return rides, int64(len(rides)), nil
}

func (f *fakeRideRepo) ReserveSeats(_ context.Context, id primitive.ObjectID, seats int) error {
	ride, ok := f.rides[id]
	if !ok || ride.AvailableSeats < seats {
		return interfaces.ErrInsufficientSeats
	}
	ride.AvailableSeats -= seats
	return nil
}

func (f *fakeRideRepo) ReleaseSeats(_ context.Context, id primitive.ObjectID, seats int) error {
	ride, ok := f.rides[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	ride.AvailableSeats += seats
	if ride.AvailableSeats > ride.MaxPassengers {
		ride.AvailableSeats = ride.MaxPassengers
	}
	return nil
}

func (f *fakeRideRepo) CreateSeatBooking(_ context.Context, booking *models.SeatBooking) error {
	if f.failCreateSeatBooking {
		return errors.New("insert failed")
	}
	booking.ID = primitive.NewObjectID()
	booking.Status = "reserved"
	booking.CreatedAt = time.Now()
	f.seatBookings[booking.ID] = booking
	return nil
}

func (f *fakeRideRepo) GetSeatBooking(_ context.Context, id primitive.ObjectID) (*models.SeatBooking, error) {
	booking, ok := f.seatBookings[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return booking, nil
}

func (f *fakeRideRepo) GetSeatBookingsByRide(_ context.Context, rideID primitive.ObjectID) ([]*models.SeatBooking, error) {
	var bookings []*models.SeatBooking
	for _, b := range f.seatBookings {
		if b.RideID == rideID {
			bookings = append(bookings, b)
		}
	}
	return bookings, nil
}

func (f *fakeRideRepo) GetSeatBookingsByClient(_ context.Context, clientID primitive.ObjectID, _ *utils.PaginationParams) ([]*models.SeatBooking, int64, error) {
	var bookings []*models.SeatBooking
	for _, b := range f.seatBookings {
		if b.ClientID == clientID {
			bookings = append(bookings, b)
		}
	}
	return bookings, int64(len(bookings)), nil
}

func (f *fakeRideRepo) CancelSeatBooking(_ context.Context, id primitive.ObjectID) error {
	booking, ok := f.seatBookings[id]
	if !ok || booking.Status != "reserved" {
		return interfaces.ErrNotFound
	}
	now := time.Now()
	booking.Status = "cancelled"
	booking.CancelledAt = &now
	return nil
}

func (f *fakeRideRepo) CountCompletedByDriver(_ context.Context, driverID primitive.ObjectID) (int64, error) {
	var count int64
	for _, r := range f.rides {
		if r.DriverID == driverID && r.Status == models.RideStatusCompleted {
			count++
		}
	}
	return count, nil
}

type fakeRoomTypeRepo struct {
	roomTypes map[primitive.ObjectID]*models.RoomType
}

func newFakeRoomTypeRepo() *fakeRoomTypeRepo {
	return &fakeRoomTypeRepo{roomTypes: make(map[primitive.ObjectID]*models.RoomType)}
}

func (f *fakeRoomTypeRepo) Create(_ context.Context, roomType *models.RoomType) error {
	roomType.ID = primitive.NewObjectID()
	roomType.IsActive = true
	if roomType.AvailableUnits == 0 {
		roomType.AvailableUnits = roomType.TotalUnits
	}
	f.roomTypes[roomType.ID] = roomType
	return nil
}

func (f *fakeRoomTypeRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.RoomType, error) {
	rt, ok := f.roomTypes[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return rt, nil
}

func (f *fakeRoomTypeRepo) Update(_ context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	rt, ok := f.roomTypes[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	if v, ok := updates["base_price"].(float64); ok {
		rt.BasePrice = v
	}
	if v, ok := updates["name"].(string); ok {
		rt.Name = v
	}
	return nil
}

func (f *fakeRoomTypeRepo) Deactivate(_ context.Context, id primitive.ObjectID) error {
	rt, ok := f.roomTypes[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	rt.IsActive = false
	return nil
}

func (f *fakeRoomTypeRepo) GetByAccommodation(_ context.Context, accommodationID primitive.ObjectID, activeOnly bool) ([]*models.RoomType, error) {
	var roomTypes []*models.RoomType
	for _, rt := range f.roomTypes {
		if rt.AccommodationID != accommodationID {
			continue
		}
		if activeOnly && !rt.IsActive {
			continue
		}
		roomTypes = append(roomTypes, rt)
	}
	return roomTypes, nil
}

func (f *fakeRoomTypeRepo) TakeUnit(_ context.Context, id primitive.ObjectID) error {
	rt, ok := f.roomTypes[id]
	if !ok || rt.AvailableUnits < 1 {
		return interfaces.ErrInsufficientUnits
	}
	rt.AvailableUnits--
	return nil
}

func (f *fakeRoomTypeRepo) ReleaseUnit(_ context.Context, id primitive.ObjectID) error {
	rt, ok := f.roomTypes[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	if rt.AvailableUnits < rt.TotalUnits {
		rt.AvailableUnits++
	}
	return nil
}

func (f *fakeRoomTypeRepo) AddImage(_ context.Context, id primitive.ObjectID, imageURL string) error {
	rt, ok := f.roomTypes[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	rt.Images = append(rt.Images, imageURL)
	return nil
}

type fakeAccommodationRepo struct {
	accommodations map[primitive.ObjectID]*models.Accommodation
}

func newFakeAccommodationRepo() *fakeAccommodationRepo {
	return &fakeAccommodationRepo{accommodations: make(map[primitive.ObjectID]*models.Accommodation)}
}

func (f *fakeAccommodationRepo) Create(_ context.Context, accommodation *models.Accommodation) error {
	accommodation.ID = primitive.NewObjectID()
	accommodation.IsActive = true
	f.accommodations[accommodation.ID] = accommodation
	return nil
}

func (f *fakeAccommodationRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Accommodation, error) {
	a, ok := f.accommodations[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return a, nil
}

func (f *fakeAccommodationRepo) Update(_ context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	a, ok := f.accommodations[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	if v, ok := updates["name"].(string); ok {
		a.Name = v
	}
	return nil
}

func (f *fakeAccommodationRepo) Deactivate(_ context.Context, id primitive.ObjectID) error {
	a, ok := f.accommodations[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	a.IsActive = false
	return nil
}

func (f *fakeAccommodationRepo) Search(_ context.Context, filter *interfaces.AccommodationSearchFilter, _ *utils.PaginationParams) ([]*models.Accommodation, int64, error) {
	var accommodations []*models.Accommodation
	for _, a := range f.accommodations {
		if !a.IsActive {
			continue
		}
		if filter.City != "" && a.Place.City != filter.City {
			continue
		}
		if filter.Province != "" && a.Place.Province != filter.Province {
			continue
		}
		if filter.Type != "" && a.Type != filter.Type {
			continue
		}
		if filter.MinGuests > 0 && a.MaxGuests < filter.MinGuests {
			continue
		}
		if filter.MaxPrice > 0 && a.MinPrice > filter.MaxPrice {
			continue
		}
		accommodations = append(accommodations, a)
	}
	return accommodations, int64(len(accommodations)), nil
}

func (f *fakeAccommodationRepo) GetByHost(_ context.Context, hostID primitive.ObjectID, _ *utils.PaginationParams) ([]*models.Accommodation, int64, error) {
	var accommodations []*models.Accommodation
	for _, a := range f.accommodations {
		if a.HostID == hostID {
			accommodations = append(accommodations, a)
		}
	}
	return accommodations, int64(len(accommodations)), nil
}

func (f *fakeAccommodationRepo) AddImage(_ context.Context, id primitive.ObjectID, imageURL string) error {
	a, ok := f.accommodations[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	a.Images = append(a.Images, imageURL)
	return nil
}

func (f *fakeAccommodationRepo) RemoveImage(context.Context, primitive.ObjectID, string) error {
	return nil
}

func (f *fakeAccommodationRepo) UpdatePriceRange(_ context.Context, id primitive.ObjectID, minPrice, maxPrice float64) error {
	a, ok := f.accommodations[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	a.MinPrice = minPrice
	a.MaxPrice = maxPrice
	return nil
}

type fakeBookingRepo struct {
	bookings map[primitive.ObjectID]*models.HotelBooking

	// duplicateReferences forces the first N inserts to collide.
	duplicateReferences int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[primitive.ObjectID]*models.HotelBooking)}
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *models.HotelBooking) error {
	if f.duplicateReferences > 0 {
		f.duplicateReferences--
		return interfaces.ErrDuplicate
	}
	booking.ID = primitive.NewObjectID()
	booking.Status = models.BookingStatusPending
	booking.PaymentStatus = models.PaymentStatusUnpaid
	booking.CreatedAt = time.Now()
	f.bookings[booking.ID] = booking
	return nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.HotelBooking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByReference(_ context.Context, reference string) (*models.HotelBooking, error) {
	for _, b := range f.bookings {
		if b.Reference == reference {
			return b, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (f *fakeBookingRepo) Update(_ context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	b, ok := f.bookings[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	if v, ok := updates["status"].(models.BookingStatus); ok {
		b.Status = v
	}
	if v, ok := updates["payment_status"].(models.PaymentStatus); ok {
		b.PaymentStatus = v
	}
	if v, ok := updates["transaction_id"].(string); ok {
		b.TransactionID = v
	}
	if v, ok := updates["reject_reason"].(string); ok {
		b.RejectReason = v
	}
	if v, ok := updates["confirmed_at"].(time.Time); ok {
		b.ConfirmedAt = &v
	}
	if v, ok := updates["cancelled_at"].(time.Time); ok {
		b.CancelledAt = &v
	}
	if v, ok := updates["checked_in_at"].(time.Time); ok {
		b.CheckedInAt = &v
	}
	if v, ok := updates["checked_out_at"].(time.Time); ok {
		b.CheckedOutAt = &v
	}
	return nil
}

func (f *fakeBookingRepo) GetByClient(_ context.Context, clientID primitive.ObjectID, _ *utils.PaginationParams) ([]*models.HotelBooking, int64, error) {
	var bookings []*models.HotelBooking
	for _, b := range f.bookings {
		if b.ClientID == clientID {
			bookings = append(bookings, b)
		}
	}
	return bookings, int64(len(bookings)), nil
}

func (f *fakeBookingRepo) GetByAccommodation(_ context.Context, accommodationID primitive.ObjectID, _ *utils.PaginationParams) ([]*models.HotelBooking, int64, error) {
	var bookings []*models.HotelBooking
	for _, b := range f.bookings {
		if b.AccommodationID == accommodationID {
			bookings = append(bookings, b)
		}
	}
	return bookings, int64(len(bookings)), nil
}

func (f *fakeBookingRepo) GetByStatus(_ context.Context, accommodationID primitive.ObjectID, status models.BookingStatus, _ *utils.PaginationParams) ([]*models.HotelBooking, int64, error) {
	var bookings []*models.HotelBooking
	for _, b := range f.bookings {
		if b.AccommodationID == accommodationID && b.Status == status {
			bookings = append(bookings, b)
		}
	}
	return bookings, int64(len(bookings)), nil
}

func (f *fakeBookingRepo) CountByAccommodation(_ context.Context, accommodationID primitive.ObjectID) (int64, error) {
	var count int64
	for _, b := range f.bookings {
		if b.AccommodationID == accommodationID {
			count++
		}
	}
	return count, nil
}

type fakePartnershipRepo struct {
	proposals    map[primitive.ObjectID]*models.Proposal
	applications map[primitive.ObjectID]*models.Application
	agreements   map[primitive.ObjectID]*models.Agreement
	partnerships map[primitive.ObjectID]*models.DriverHotelPartnership
	benefits     []*models.PartnershipBenefit
}

func newFakePartnershipRepo() *fakePartnershipRepo {
	return &fakePartnershipRepo{
		proposals:    make(map[primitive.ObjectID]*models.Proposal),
		applications: make(map[primitive.ObjectID]*models.Application),
		agreements:   make(map[primitive.ObjectID]*models.Agreement),
		partnerships: make(map[primitive.ObjectID]*models.DriverHotelPartnership),
	}
}

func (f *fakePartnershipRepo) CreateProposal(_ context.Context, proposal *models.Proposal) error {
	proposal.ID = primitive.NewObjectID()
	proposal.Status = models.ProposalStatusOpen
	proposal.CreatedAt = time.Now()
	f.proposals[proposal.ID] = proposal
	return nil
}

func (f *fakePartnershipRepo) GetProposal(_ context.Context, id primitive.ObjectID) (*models.Proposal, error) {
	p, ok := f.proposals[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return p, nil
}

func (f *fakePartnershipRepo) ListOpenProposals(context.Context, *utils.PaginationParams) ([]*models.Proposal, int64, error) {
	var proposals []*models.Proposal
	for _, p := range f.proposals {
		if p.Status == models.ProposalStatusOpen {
			proposals = append(proposals, p)
		}
	}
	return proposals, int64(len(proposals)), nil
}

func (f *fakePartnershipRepo) GetProposalsByAccommodation(_ context.Context, accommodationID primitive.ObjectID, _ *utils.PaginationParams) ([]*models.Proposal, int64, error) {
	var proposals []*models.Proposal
	for _, p := range f.proposals {
		if p.AccommodationID == accommodationID {
			proposals = append(proposals, p)
		}
	}
	return proposals, int64(len(proposals)), nil
}

func (f *fakePartnershipRepo) GetProposalsByManager(_ context.Context, managerID primitive.ObjectID, _ *utils.PaginationParams) ([]*models.Proposal, int64, error) {
	var proposals []*models.Proposal
	for _, p := range f.proposals {
		if p.ManagerID == managerID {
			proposals = append(proposals, p)
		}
	}
	return proposals, int64(len(proposals)), nil
}

func (f *fakePartnershipRepo) CloseProposal(_ context.Context, id primitive.ObjectID) error {
	p, ok := f.proposals[id]
	if !ok || p.Status != models.ProposalStatusOpen {
		return interfaces.ErrNotFound
	}
	now := time.Now()
	p.Status = models.ProposalStatusClosed
	p.ClosedAt = &now
	return nil
}

func (f *fakePartnershipRepo) CreateApplication(_ context.Context, application *models.Application) error {
	for _, a := range f.applications {
		if a.ProposalID == application.ProposalID && a.DriverID == application.DriverID {
			return interfaces.ErrDuplicate
		}
	}
	application.ID = primitive.NewObjectID()
	application.Status = models.ApplicationStatusPending
	application.CreatedAt = time.Now()
	f.applications[application.ID] = application
	return nil
}

func (f *fakePartnershipRepo) GetApplication(_ context.Context, id primitive.ObjectID) (*models.Application, error) {
	a, ok := f.applications[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return a, nil
}

func (f *fakePartnershipRepo) GetApplicationByProposalAndDriver(_ context.Context, proposalID, driverID primitive.ObjectID) (*models.Application, error) {
	for _, a := range f.applications {
		if a.ProposalID == proposalID && a.DriverID == driverID {
			return a, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (f *fakePartnershipRepo) GetApplicationsByProposal(_ context.Context, proposalID primitive.ObjectID, _ *utils.PaginationParams) ([]*models.Application, int64, error) {
	var applications []*models.Application
	for _, a := range f.applications {
		if a.ProposalID == proposalID {
			applications = append(applications, a)
		}
	}
	return applications, int64(len(applications)), nil
}

func (f *fakePartnershipRepo) GetApplicationsByDriver(_ context.Context, driverID primitive.ObjectID, _ *utils.PaginationParams) ([]*models.Application, int64, error) {
	var applications []*models.Application
	for _, a := range f.applications {
		if a.DriverID == driverID {
			applications = append(applications, a)
		}
	}
	return applications, int64(len(applications)), nil
}

func (f *fakePartnershipRepo) DecideApplication(_ context.Context, id primitive.ObjectID, status models.ApplicationStatus) error {
	a, ok := f.applications[id]
	if !ok || a.Status != models.ApplicationStatusPending {
		return interfaces.ErrNotFound
	}
	now := time.Now()
	a.Status = status
	a.DecidedAt = &now
	return nil
}

func (f *fakePartnershipRepo) CreateAgreement(_ context.Context, agreement *models.Agreement) error {
	agreement.ID = primitive.NewObjectID()
	agreement.CreatedAt = time.Now()
	f.agreements[agreement.ID] = agreement
	return nil
}

func (f *fakePartnershipRepo) GetAgreement(_ context.Context, id primitive.ObjectID) (*models.Agreement, error) {
	a, ok := f.agreements[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return a, nil
}

func (f *fakePartnershipRepo) CreatePartnership(_ context.Context, partnership *models.DriverHotelPartnership) error {
	for _, p := range f.partnerships {
		if p.DriverID == partnership.DriverID && p.AccommodationID == partnership.AccommodationID {
			return interfaces.ErrDuplicate
		}
	}
	partnership.ID = primitive.NewObjectID()
	partnership.IsActive = true
	partnership.CreatedAt = time.Now()
	f.partnerships[partnership.ID] = partnership
	return nil
}

func (f *fakePartnershipRepo) GetPartnership(_ context.Context, id primitive.ObjectID) (*models.DriverHotelPartnership, error) {
	p, ok := f.partnerships[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return p, nil
}

func (f *fakePartnershipRepo) GetPartnershipByDriverAndAccommodation(_ context.Context, driverID, accommodationID primitive.ObjectID) (*models.DriverHotelPartnership, error) {
	for _, p := range f.partnerships {
		if p.DriverID == driverID && p.AccommodationID == accommodationID {
			return p, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (f *fakePartnershipRepo) GetPartnershipsByDriver(_ context.Context, driverID primitive.ObjectID, _ *utils.PaginationParams) ([]*models.DriverHotelPartnership, int64, error) {
	var partnerships []*models.DriverHotelPartnership
	for _, p := range f.partnerships {
		if p.DriverID == driverID {
			partnerships = append(partnerships, p)
		}
	}
	return partnerships, int64(len(partnerships)), nil
}

func (f *fakePartnershipRepo) GetPartnershipsByAccommodation(_ context.Context, accommodationID primitive.ObjectID, _ *utils.PaginationParams) ([]*models.DriverHotelPartnership, int64, error) {
	var partnerships []*models.DriverHotelPartnership
	for _, p := range f.partnerships {
		if p.AccommodationID == accommodationID {
			partnerships = append(partnerships, p)
		}
	}
	return partnerships, int64(len(partnerships)), nil
}

func (f *fakePartnershipRepo) IncrementRides(_ context.Context, id primitive.ObjectID) (*models.DriverHotelPartnership, error) {
	p, ok := f.partnerships[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	p.RidesCompleted++
	return p, nil
}

func (f *fakePartnershipRepo) UpdateTier(_ context.Context, id primitive.ObjectID, tier models.PartnershipTier, discountPct float64) error {
	p, ok := f.partnerships[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	p.Tier = tier
	p.DiscountPct = discountPct
	return nil
}

func (f *fakePartnershipRepo) DeactivatePartnership(_ context.Context, id primitive.ObjectID) error {
	p, ok := f.partnerships[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	p.IsActive = false
	return nil
}

func (f *fakePartnershipRepo) CreateBenefit(_ context.Context, benefit *models.PartnershipBenefit) error {
	benefit.ID = primitive.NewObjectID()
	f.benefits = append(f.benefits, benefit)
	return nil
}

func (f *fakePartnershipRepo) GetBenefitsByTier(_ context.Context, tier models.PartnershipTier) ([]*models.PartnershipBenefit, error) {
	if tier == "" {
		return f.benefits, nil
	}
	var benefits []*models.PartnershipBenefit
	for _, b := range f.benefits {
		if b.Tier == tier {
			benefits = append(benefits, b)
		}
	}
	return benefits, nil
}

type fakeChatRepo struct {
	conversations map[primitive.ObjectID]*models.Conversation
	messages      []*models.Message
	fail          bool
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{conversations: make(map[primitive.ObjectID]*models.Conversation)}
}

func (f *fakeChatRepo) CreateConversation(_ context.Context, conversation *models.Conversation) error {
	if f.fail {
		return errors.New("chat repo down")
	}
	conversation.ID = primitive.NewObjectID()
	conversation.CreatedAt = time.Now()
	conversation.UpdatedAt = conversation.CreatedAt
	f.conversations[conversation.ID] = conversation
	return nil
}

func (f *fakeChatRepo) GetConversation(_ context.Context, id primitive.ObjectID) (*models.Conversation, error) {
	c, ok := f.conversations[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return c, nil
}

func (f *fakeChatRepo) FindConversationByContext(_ context.Context, convContext models.ConversationContext, contextID primitive.ObjectID, participants []primitive.ObjectID) (*models.Conversation, error) {
	for _, c := range f.conversations {
		if c.Context != convContext || c.ContextID != contextID {
			continue
		}
		matched := true
		for _, p := range participants {
			if !c.HasParticipant(p) {
				matched = false
				break
			}
		}
		if matched {
			return c, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (f *fakeChatRepo) GetConversationsByUser(_ context.Context, userID primitive.ObjectID, _ *utils.PaginationParams) ([]*models.Conversation, int64, error) {
	var conversations []*models.Conversation
	for _, c := range f.conversations {
		if c.HasParticipant(userID) {
			conversations = append(conversations, c)
		}
	}
	return conversations, int64(len(conversations)), nil
}

func (f *fakeChatRepo) TouchConversation(_ context.Context, id primitive.ObjectID, lastMessage string) error {
	c, ok := f.conversations[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	now := time.Now()
	c.LastMessage = lastMessage
	c.LastSentAt = &now
	c.UpdatedAt = now
	return nil
}

func (f *fakeChatRepo) CreateMessage(_ context.Context, message *models.Message) error {
	if f.fail {
		return errors.New("chat repo down")
	}
	message.ID = primitive.NewObjectID()
	message.CreatedAt = time.Now()
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakeChatRepo) GetMessages(_ context.Context, conversationID primitive.ObjectID, _ *utils.PaginationParams) ([]*models.Message, int64, error) {
	var messages []*models.Message
	for _, m := range f.messages {
		if m.ConversationID == conversationID {
			messages = append(messages, m)
		}
	}
	return messages, int64(len(messages)), nil
}

func (f *fakeChatRepo) MarkMessagesRead(_ context.Context, conversationID, readerID primitive.ObjectID) error {
	now := time.Now()
	for _, m := range f.messages {
		if m.ConversationID == conversationID && m.SenderID != readerID && m.ReadAt == nil {
			m.ReadAt = &now
		}
	}
	return nil
}

func (f *fakeChatRepo) CountUnread(_ context.Context, conversationID, readerID primitive.ObjectID) (int64, error) {
	var count int64
	for _, m := range f.messages {
		if m.ConversationID == conversationID && m.SenderID != readerID && m.ReadAt == nil {
			count++
		}
	}
	return count, nil
}

type fakeNotificationRepo struct {
	notifications map[primitive.ObjectID]*models.Notification
	fail          bool
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[primitive.ObjectID]*models.Notification)}
}

func (f *fakeNotificationRepo) Create(_ context.Context, notification *models.Notification) error {
	if f.fail {
		return errors.New("notification repo down")
	}
	notification.ID = primitive.NewObjectID()
	notification.Status = models.NotificationStatusUnread
	notification.CreatedAt = time.Now()
	f.notifications[notification.ID] = notification
	return nil
}

func (f *fakeNotificationRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Notification, error) {
	n, ok := f.notifications[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return n, nil
}

func (f *fakeNotificationRepo) GetByUser(_ context.Context, userID primitive.ObjectID, status models.NotificationStatus, _ *utils.PaginationParams) ([]*models.Notification, int64, error) {
	var notifications []*models.Notification
	for _, n := range f.notifications {
		if n.UserID != userID {
			continue
		}
		if status != "" && n.Status != status {
			continue
		}
		notifications = append(notifications, n)
	}
	return notifications, int64(len(notifications)), nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id primitive.ObjectID) error {
	n, ok := f.notifications[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	now := time.Now()
	n.Status = models.NotificationStatusRead
	n.ReadAt = &now
	return nil
}

func (f *fakeNotificationRepo) MarkAllRead(_ context.Context, userID primitive.ObjectID) error {
	now := time.Now()
	for _, n := range f.notifications {
		if n.UserID == userID && n.Status == models.NotificationStatusUnread {
			n.Status = models.NotificationStatusRead
			n.ReadAt = &now
		}
	}
	return nil
}

func (f *fakeNotificationRepo) CountUnread(_ context.Context, userID primitive.ObjectID) (int64, error) {
	var count int64
	for _, n := range f.notifications {
		if n.UserID == userID && n.Status == models.NotificationStatusUnread {
			count++
		}
	}
	return count, nil
}

type fakePushProvider struct {
	sent []*push.Notification
	fail bool
}

func (f *fakePushProvider) SendNotification(_ context.Context, request *push.Notification) (*push.Result, error) {
	if f.fail {
		return nil, errors.New("push gateway down")
	}
	f.sent = append(f.sent, request)
	return &push.Result{MessageID: primitive.NewObjectID().Hex(), Success: true, Token: request.Token}, nil
}

func (f *fakePushProvider) SendBulkNotifications(ctx context.Context, requests []*push.Notification) ([]*push.Result, error) {
	results := make([]*push.Result, 0, len(requests))
	for _, r := range requests {
		result, err := f.SendNotification(ctx, r)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

type fakeSMSProvider struct {
	sent []*sms.Request
	fail bool
}

func (f *fakeSMSProvider) SendSMS(_ context.Context, request *sms.Request) (*sms.Response, error) {
	if f.fail {
		return nil, errors.New("sms gateway down")
	}
	f.sent = append(f.sent, request)
	return &sms.Response{MessageID: primitive.NewObjectID().Hex(), Status: "sent"}, nil
}

func (f *fakeSMSProvider) SendBulkSMS(ctx context.Context, requests []*sms.Request) ([]*sms.Response, error) {
	responses := make([]*sms.Response, 0, len(requests))
	for _, r := range requests {
		response, err := f.SendSMS(ctx, r)
		if err != nil {
			return nil, err
		}
		responses = append(responses, response)
	}
	return responses, nil
}

type fakeStorageProvider struct {
	uploads []*storage.UploadRequest
	fail    bool
}

func (f *fakeStorageProvider) Upload(_ context.Context, request *storage.UploadRequest) (*storage.UploadResponse, error) {
	if f.fail {
		return nil, errors.New("storage down")
	}
	f.uploads = append(f.uploads, request)
	return &storage.UploadResponse{Key: request.Key, URL: "https://cdn.test/" + request.Key, Size: request.Size}, nil
}

func (f *fakeStorageProvider) Delete(context.Context, string) error { return nil }

func (f *fakeStorageProvider) GetURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://cdn.test/" + key, nil
}

func (f *fakeStorageProvider) FileExists(context.Context, string) (bool, error) { return false, nil }
