// Package dto provides Data Transfer Objects for API requests/responses.
package dto

// Locale selects which display label the API returns.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleAR Locale = "ar"
)

// ParseLocale interprets the ?locale query parameter; anything but "ar"
// falls back to English.
func ParseLocale(s string) Locale {
	if s == string(LocaleAR) {
		return LocaleAR
	}
	return LocaleEN
}

// pick chooses the localized form when the locale asks for it and the
// localized string exists.
func pick(locale Locale, label, localized string) string {
	if locale == LocaleAR && localized != "" {
		return localized
	}
	return label
}

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
