// Package model contains the domain models for the notifier registry.
package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const tablePrefix = "notifier_"

// Topic represents a named binding from a webhook token to a chat
// destination. The token is the sole credential needed to publish a
// notification to the topic; whoever holds it can deliver.
//
// Token, OwnerID and ChatID are immutable once issued. Name is unique per
// owner and can only be changed by delete and re-register.
type Topic struct {
	Token     string    `json:"token" db:"token"`          // Opaque unique token (webhook path segment)
	OwnerID   int64     `json:"ownerID" db:"owner_id"`     // Registering user
	Name      string    `json:"name" db:"topic_name"`      // Human-chosen label, unique per owner
	ChatID    int64     `json:"chatID" db:"chat_id"`       // Delivery destination on the chat platform
	CreatedAt time.Time `json:"createdAt" db:"created_at"` // Registration time, drives newest-first listing
}

// TableName returns the database table name for Topic.
func (t Topic) TableName() string {
	return tablePrefix + "topic"
}

// NewTopic creates a new topic bound to the given chat.
func NewTopic(token string, ownerID int64, name string, chatID int64) Topic {
	return Topic{
		Token:     token,
		OwnerID:   ownerID,
		Name:      name,
		ChatID:    chatID,
		CreatedAt: time.Now(),
	}
}

// Validate checks the topic fields before persistence.
func (t Topic) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Token, validation.Required),
		validation.Field(&t.OwnerID, validation.Required),
		validation.Field(&t.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&t.ChatID, validation.Required),
	)
}
