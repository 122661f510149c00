package db

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrConversationNotFound is returned by writes that target a conversation
// row that does not exist.
var ErrConversationNotFound = errors.New("conversation not found")

// Default display names used when a conversation has none stored.
const (
	DefaultPersonAName = "Person A"
	DefaultPersonBName = "Person B"
)

// TranslatorLog is the chart payload recorded for a chat by the translator.
type TranslatorLog struct {
	ChatID    uuid.UUID
	SwissData []byte // raw JSON, decoded by the caller
	CreatedAt time.Time
}

// ConversationPersons holds the display names stored in conversations.meta.
type ConversationPersons struct {
	PersonA string
	PersonB string
}

// personsOrDefault fills empty names with the defaults.
func personsOrDefault(a, b *string) *ConversationPersons {
	p := &ConversationPersons{PersonA: DefaultPersonAName, PersonB: DefaultPersonBName}
	if a != nil && *a != "" {
		p.PersonA = *a
	}
	if b != nil && *b != "" {
		p.PersonB = *b
	}
	return p
}
