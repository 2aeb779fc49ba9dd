package utils

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
)

var (
	digitsRegex = regexp.MustCompile(`[^0-9]`)
	emailRegex  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// StripNonDigits drops everything but digits from a phone number.
func StripNonDigits(phone string) string {
	return digitsRegex.ReplaceAllString(phone, "")
}

// ValidPhone accepts numbers that carry 10 to 11 digits once formatting
// characters are stripped.
func ValidPhone(phone string) bool {
	n := len(StripNonDigits(phone))
	return n >= 10 && n <= 11
}

// ValidEmail applies the basic shape check; deliverability is the platform's
// problem.
func ValidEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

func StrPtr(s string) *string {
	return &s
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func WriteJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteJSONError(w http.ResponseWriter, message string, code int) {
	WriteJSON(w, code, map[string]string{"error": message})
}
