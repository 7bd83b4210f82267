package moderation

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/legallink/backend/internal/domain/shared"
)

// Rating is a client's score of an advocate. At most one rating exists
// per (client, advocate) pair; a new score replaces the old one.
type Rating struct {
	shared.BaseAggregateRoot
	ClientID   uuid.UUID
	AdvocateID uuid.UUID
	Score      int
	Comment    string
}

// NewRating creates a rating from a client
func NewRating(clientID, advocateID uuid.UUID, score int, comment string) (*Rating, error) {
	if clientID == uuid.Nil || advocateID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTICIPANTS", "Client and advocate are required")
	}
	if err := validateScore(score); err != nil {
		return nil, err
	}
	if err := validateComment(comment); err != nil {
		return nil, err
	}

	rating := &Rating{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClientID:          clientID,
		AdvocateID:        advocateID,
		Score:             score,
		Comment:           strings.TrimSpace(comment),
	}

	rating.AddDomainEvent(NewRatingChangedEvent(rating))

	return rating, nil
}

// Revise replaces the score and comment of an existing rating
func (r *Rating) Revise(score int, comment string) error {
	if err := validateScore(score); err != nil {
		return err
	}
	if err := validateComment(comment); err != nil {
		return err
	}

	r.Score = score
	r.Comment = strings.TrimSpace(comment)
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewRatingChangedEvent(r))

	return nil
}

// IsOwnedBy reports whether the rating belongs to the client
func (r *Rating) IsOwnedBy(clientID uuid.UUID) bool {
	return r.ClientID == clientID
}

func validateScore(score int) error {
	if score < 1 || score > 5 {
		return shared.NewDomainError("INVALID_SCORE", "Score must be between 1 and 5")
	}
	return nil
}

func validateComment(comment string) error {
	if len(comment) > 2000 {
		return shared.NewDomainError("INVALID_COMMENT", "Comment cannot exceed 2000 characters")
	}
	return nil
}
