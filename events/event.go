// Package events publishes user lifecycle events for downstream services
// (notifications, analytics). Publishing is best effort: callers log failures
// and carry on.
package events

import (
	"context"
	"time"

	"mernspace-auth/models"

	"github.com/google/uuid"
)

const (
	UserRegistered = "user.registered"
	UserLoggedIn   = "user.logged_in"
	UserLoggedOut  = "user.logged_out"
)

type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurredAt"`
	UserID     uint        `json:"userId"`
	Email      string      `json:"email,omitempty"`
	Role       models.Role `json:"role,omitempty"`
}

func NewEvent(eventType string, userID uint) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		UserID:     userID,
	}
}

func NewUserEvent(eventType string, user *models.User) Event {
	e := NewEvent(eventType, user.ID)
	e.Email = user.Email
	e.Role = user.Role
	return e
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }
