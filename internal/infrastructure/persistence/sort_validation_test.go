package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string returns DESC", "", "DESC"},
		{"ASC uppercase returns ASC", "ASC", "ASC"},
		{"asc lowercase returns ASC", "asc", "ASC"},
		{"DESC uppercase returns DESC", "DESC", "DESC"},
		{"desc lowercase returns DESC", "DESC", "DESC"},
		{"invalid value returns DESC", "INVALID", "DESC"},
		{"sql injection attempt returns DESC", "ASC; DROP TABLE users;--", "DESC"},
		{"whitespace only returns DESC", "   ", "DESC"},
		{"whitespace around ASC returns ASC", "  asc  ", "ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateSortOrder(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestValidateSortField(t *testing.T) {
	allowedFields := map[string]bool{
		"id":         true,
		"created_at": true,
		"updated_at": true,
		"name":       true,
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string returns default", "", "created_at"},
		{"allowed field returns itself", "name", "name"},
		{"id is allowed", "id", "id"},
		{"disallowed field returns default", "password_hash", "created_at"},
		{"sql injection attempt returns default", "id; DROP TABLE users;--", "created_at"},
		{"whitespace only returns default", "   ", "created_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateSortField(tt.input, allowedFields, "created_at")
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSortFieldsWhitelists(t *testing.T) {
	// Every whitelist must allow the common base fields so default
	// ordering never falls through.
	whitelists := map[string]map[string]bool{
		"UserSortFields":        UserSortFields,
		"AdvocateSortFields":    AdvocateSortFields,
		"AppointmentSortFields": AppointmentSortFields,
		"RatingSortFields":      RatingSortFields,
		"ReportSortFields":      ReportSortFields,
		"PostSortFields":        PostSortFields,
		"CommentSortFields":     CommentSortFields,
		"KnowledgeSortFields":   KnowledgeSortFields,
	}

	for name, fields := range whitelists {
		t.Run(name, func(t *testing.T) {
			assert.True(t, fields["id"], "%s must allow id", name)
			assert.True(t, fields["created_at"], "%s must allow created_at", name)
		})
	}

	t.Run("MessageSortFields allows created_at", func(t *testing.T) {
		assert.True(t, MessageSortFields["created_at"])
	})

	t.Run("no whitelist allows arbitrary columns", func(t *testing.T) {
		for name, fields := range whitelists {
			assert.False(t, fields["password_hash"], "%s must not expose password_hash", name)
			assert.False(t, fields["1=1"], "%s must not allow raw SQL", name)
		}
	})

	t.Run("malicious payloads fall back to default", func(t *testing.T) {
		payloads := []string{
			"created_at; DROP TABLE users;--",
			"(SELECT password_hash FROM users)",
			"created_at OR 1=1",
		}
		for _, payload := range payloads {
			result := ValidateSortField(payload, UserSortFields, "created_at")
			assert.Equal(t, "created_at", result)
		}
	})
}
