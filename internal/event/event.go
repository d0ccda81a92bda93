package event

import "time"

type Type string

const (
	TypeUserRegistered Type = "user.registered"
	TypeProductCreated Type = "product.created"
	TypeProductUpdated Type = "product.updated"
	TypeProductDeleted Type = "product.deleted"
	TypeMerchCreated   Type = "merch.created"
	TypeMerchUpdated   Type = "merch.updated"
	TypeMerchDeleted   Type = "merch.deleted"
	TypeNewsPublished  Type = "news.published"
	TypeNewsUpdated    Type = "news.updated"
	TypeNewsDeleted    Type = "news.deleted"
)

// Event describes a completed mutation. ActorID is the identity that
// performed it.
type Event struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	ResourceID string    `json:"resource_id"`
	ActorID    string    `json:"actor_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Bus interface {
	Publish(e Event)
	Subscribe() (<-chan Event, func())
}
