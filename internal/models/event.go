package models

import "time"

// Activity event types recorded by the services.
const (
	EventSignup         = "SIGNUP"
	EventListingAdded   = "LISTING_ADDED"
	EventListingEdited  = "LISTING_EDITED"
	EventListingDeleted = "LISTING_DELETED"
	EventReviewAdded    = "REVIEW_ADDED"
	EventReviewDeleted  = "REVIEW_DELETED"
	EventSweep          = "SWEEP"
)

// Event is a single activity log entry.
type Event struct {
	EventID     string    `bson:"_id" json:"event_id"`
	OccurredAt  time.Time `bson:"occurred_at" json:"occurred_at"`
	Type        string    `bson:"type" json:"type"`
	Description string    `bson:"description" json:"description"`
	Metadata    any       `bson:"meta,omitempty" json:"metadata,omitempty"`
}
