package utils

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	urlRegex   = regexp.MustCompile(`^https?://[^\s/$.?#].[^\s]*$`)
	htmlRegex  = regexp.MustCompile(`<[^>]*>`)
	// Mozambican numbers: +258 followed by 8X and seven digits.
	phoneRegex = regexp.MustCompile(`^\+258\s?8[2-7]\s?\d{3}\s?\d{4}$`)
	plateRegex = regexp.MustCompile(`^[A-Z]{3}\s?\d{3}\s?[A-Z]{2}$`)
)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

func IsValidName(name string) bool {
	if len(strings.TrimSpace(name)) < 2 {
		return false
	}

	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) && r != '-' && r != '\'' {
			return false
		}
	}
	return true
}

func IsValidURL(url string) bool {
	return urlRegex.MatchString(url)
}

func IsValidProvince(province string) bool {
	for _, p := range Provinces {
		if strings.EqualFold(p, province) {
			return true
		}
	}
	return false
}

func IsValidCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// IsValidLicensePlate matches the Mozambican format, e.g. "AEH 123 MC".
func IsValidLicensePlate(plate string) bool {
	return plateRegex.MatchString(strings.ToUpper(strings.TrimSpace(plate)))
}

func SanitizeString(input string) string {
	cleaned := htmlRegex.ReplaceAllString(input, "")
	return strings.TrimSpace(cleaned)
}

var filenameRegex = regexp.MustCompile(`[^a-zA-Z0-9._\-]`)

// SanitizeFilename strips path components and anything outside the safe
// character set so uploads cannot escape their storage prefix.
func SanitizeFilename(filename string) string {
	base := filename
	if idx := strings.LastIndexAny(base, `/\`); idx >= 0 {
		base = base[idx+1:]
	}
	return filenameRegex.ReplaceAllString(base, "_")
}
