package social

import (
	"github.com/google/uuid"

	"github.com/legallink/backend/internal/domain/shared"
)

// ReactionKind is the set of supported reactions
type ReactionKind string

const (
	ReactionLike       ReactionKind = "like"
	ReactionSupport    ReactionKind = "support"
	ReactionInsightful ReactionKind = "insightful"
)

// Reaction is one user's reaction to a post. A user holds at most one
// reaction per post; switching kind replaces the old one.
type Reaction struct {
	shared.BaseEntity
	PostID uuid.UUID
	UserID uuid.UUID
	Kind   ReactionKind
}

// NewReaction creates a reaction
func NewReaction(postID, userID uuid.UUID, kind ReactionKind) (*Reaction, error) {
	if postID == uuid.Nil || userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REACTION", "Post and user are required")
	}
	if err := validateReactionKind(kind); err != nil {
		return nil, err
	}

	return &Reaction{
		BaseEntity: shared.NewBaseEntity(),
		PostID:     postID,
		UserID:     userID,
		Kind:       kind,
	}, nil
}

// Switch replaces the reaction kind
func (r *Reaction) Switch(kind ReactionKind) error {
	if err := validateReactionKind(kind); err != nil {
		return err
	}

	r.Kind = kind
	r.Touch()

	return nil
}

func validateReactionKind(kind ReactionKind) error {
	switch kind {
	case ReactionLike, ReactionSupport, ReactionInsightful:
		return nil
	default:
		return shared.NewDomainError("INVALID_KIND", "Kind must be 'like', 'support' or 'insightful'")
	}
}
