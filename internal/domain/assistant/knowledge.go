package assistant

import (
	"strings"

	"github.com/legallink/backend/internal/domain/shared"
)

// KnowledgeEntry is one legal reference passage in the knowledge base.
// Entries are loaded by migration seed and retrieved by keyword rank.
type KnowledgeEntry struct {
	shared.BaseEntity
	Topic        string
	Jurisdiction string
	Tags         []string
	Body         string
}

// NewKnowledgeEntry creates a knowledge base entry
func NewKnowledgeEntry(topic, jurisdiction, body string, tags []string) (*KnowledgeEntry, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, shared.NewDomainError("INVALID_TOPIC", "Topic cannot be empty")
	}
	if len(topic) > 200 {
		return nil, shared.NewDomainError("INVALID_TOPIC", "Topic cannot exceed 200 characters")
	}
	if strings.TrimSpace(body) == "" {
		return nil, shared.NewDomainError("INVALID_BODY", "Body cannot be empty")
	}

	return &KnowledgeEntry{
		BaseEntity:   shared.NewBaseEntity(),
		Topic:        topic,
		Jurisdiction: strings.TrimSpace(jurisdiction),
		Tags:         tags,
		Body:         body,
	}, nil
}
