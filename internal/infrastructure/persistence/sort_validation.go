package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"email":         true,
	"display_name":  true,
	"role":          true,
	"status":        true,
	"last_login_at": true,
}

// AdvocateSortFields contains allowed sort fields for advocate profiles
var AdvocateSortFields = map[string]bool{
	"id":                  true,
	"created_at":          true,
	"updated_at":          true,
	"registration_number": true,
	"city":                true,
	"state":               true,
	"years_experience":    true,
	"consultation_fee":    true,
	"verification":        true,
	"status":              true,
	"average_rating":      true,
	"rating_count":        true,
}

// AppointmentSortFields contains allowed sort fields for appointments
var AppointmentSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"start_at":     true,
	"end_at":       true,
	"status":       true,
	"confirmed_at": true,
	"completed_at": true,
}

// RatingSortFields contains allowed sort fields for ratings
var RatingSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"score":      true,
}

// ReportSortFields contains allowed sort fields for reports
var ReportSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"reason":      true,
	"status":      true,
	"reviewed_at": true,
}

// PostSortFields contains allowed sort fields for feed posts
var PostSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"visibility": true,
}

// CommentSortFields contains allowed sort fields for comments
var CommentSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// MessageSortFields contains allowed sort fields for chat messages
var MessageSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"role":       true,
	"intent":     true,
}

// KnowledgeSortFields contains allowed sort fields for knowledge entries
var KnowledgeSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"topic":        true,
	"jurisdiction": true,
}
