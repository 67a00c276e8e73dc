package utils

import "time"

// Application Constants
const (
	AppName    = "Boleia"
	AppVersion = "1.0.0"

	// Default values
	DefaultLanguage    = "pt"
	DefaultCurrency    = "MZN"
	DefaultCountryCode = "+258"
	DefaultTimeZone    = "Africa/Maputo"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Ride Constants
	MaxPassengersPerRide = 8
	MinPricePerSeat      = 50.0    // MZN
	MaxPricePerSeat      = 25000.0 // MZN
	DefaultSearchRadius  = 25.0    // kilometers
	MaxSearchRadius      = 100.0   // kilometers
	MaxRideDistance      = 3000.0  // kilometers, Maputo to Pemba is ~2600

	// Booking Constants
	MaxGuestsPerBooking = 12
	MaxBookingNights    = 90
	MinRoomUnits        = 1
	MaxRoomUnits        = 500

	// Partnership Constants
	SilverMinRides      = 10
	GoldMinRides        = 25
	PlatinumMinRides    = 50
	BronzeDiscountPct   = 5.0
	SilverDiscountPct   = 10.0
	GoldDiscountPct     = 15.0
	PlatinumDiscountPct = 20.0
	PartnershipValidity = 365 * 24 * time.Hour

	// WebSocket tickets
	WSTicketTTL = 2 * time.Minute

	// Rate Limiting
	DefaultRateLimit = 100

	// Notification
	NotificationRetryAttempts = 3
	NotificationTimeout       = 30 * time.Second

	// Chat
	MaxMessageLength = 1000

	// File Upload
	MaxImageSize       = 5 * 1024 * 1024 // 5MB
	ThumbnailMaxWidth  = 480
	ThumbnailMaxHeight = 360

	// Cache TTLs
	UserCacheTTL          = 15 * time.Minute
	RideCacheTTL          = 5 * time.Minute
	AccommodationCacheTTL = 10 * time.Minute
	RoomTypeCacheTTL      = 5 * time.Minute
	BookingCacheTTL       = 5 * time.Minute
	StatsCacheTTL         = 10 * time.Minute
)

// Error codes (wire values, stable)
const (
	CodeInternalError     = "INTERNAL_ERROR"
	CodeValidationError   = "VALIDATION_ERROR"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeAdminRequired     = "ADMIN_REQUIRED"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeBadRequest        = "BAD_REQUEST"
	CodeUserNotFound      = "USER_NOT_FOUND"
	CodeRideNotFound      = "RIDE_NOT_FOUND"
	CodeSeatsUnavailable  = "SEATS_UNAVAILABLE"
	CodeUnitsUnavailable  = "UNITS_UNAVAILABLE"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeProposalClosed    = "PROPOSAL_CLOSED"
	CodePaymentFailed     = "PAYMENT_FAILED"
)

// User-facing messages (Portuguese)
const (
	MsgInternalError    = "Erro interno do servidor"
	MsgValidationFailed = "Dados inválidos"
	MsgUnauthorized     = "Não autenticado"
	MsgForbidden        = "Acesso negado"
	MsgAdminRequired    = "Apenas administradores podem conceder o papel de administrador"
	MsgNotFound         = "não encontrado"
	MsgSeatsUnavailable = "Lugares insuficientes para esta boleia"
	MsgUnitsUnavailable = "Não há quartos disponíveis para estas datas"
)

// Cache key prefixes
const (
	CacheUserPrefix          = "user:"
	CacheRidePrefix          = "ride:"
	CacheAccommodationPrefix = "accommodation:"
	CacheRoomTypePrefix      = "room_type:"
	CacheBookingPrefix       = "booking:"
	CachePartnershipPrefix   = "partnership:"
	CacheStatsPrefix         = "stats:"
	CacheRateLimitPrefix     = "rate_limit:"
)

// Provinces accepted on ride and accommodation records.
var Provinces = []string{
	"Maputo Cidade",
	"Maputo",
	"Gaza",
	"Inhambane",
	"Sofala",
	"Manica",
	"Tete",
	"Zambézia",
	"Nampula",
	"Cabo Delgado",
	"Niassa",
}

// File types
var AllowedImageTypes = []string{"jpg", "jpeg", "png", "webp"}

// Geographic constants
const EarthRadiusKM = 6371.0
