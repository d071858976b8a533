package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// TurnPart is one content fragment of a turn. The stored shape equals the
// generateContent wire shape, so history rows can be forwarded to the model
// backend without translation.
type TurnPart struct {
	Text string `json:"text"`
}

// Turn is one message in a conversation. Img is an opaque reference to an
// externally hosted asset; only user turns may carry it, and at most one.
type Turn struct {
	Role  string     `json:"role"`
	Parts []TurnPart `json:"parts"`
	Img   string     `json:"img,omitempty"`
}

// Text returns the concatenated text of all parts.
func (t Turn) Text() string {
	out := ""
	for _, p := range t.Parts {
		out += p.Text
	}
	return out
}

// Conversation owns an append-only ordered transcript. History is a JSON
// array of Turn; every mutation is an append, never an in-place edit.
type Conversation struct {
	ID      uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID string         `gorm:"column:owner_id;not null;index" json:"owner_id"`
	History datatypes.JSON `gorm:"not null;default:'[]'" json:"history"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Conversation) TableName() string { return "conversation" }

// Turns decodes the history column.
func (c *Conversation) Turns() ([]Turn, error) {
	if c == nil || len(c.History) == 0 {
		return []Turn{}, nil
	}
	var turns []Turn
	if err := json.Unmarshal(c.History, &turns); err != nil {
		return nil, err
	}
	return turns, nil
}

// IndexEntry is one row of a user's conversation listing. Title is derived
// once at creation and never updated.
type IndexEntry struct {
	ConversationID uuid.UUID `json:"conversation_id"`
	Title          string    `json:"title"`
}

// ConversationIndex is the per-owner ordered list of conversations, one
// document per owner.
type ConversationIndex struct {
	OwnerID string         `gorm:"column:owner_id;primaryKey" json:"owner_id"`
	Entries datatypes.JSON `gorm:"not null;default:'[]'" json:"entries"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ConversationIndex) TableName() string { return "conversation_index" }

func (i *ConversationIndex) EntryList() ([]IndexEntry, error) {
	if i == nil || len(i.Entries) == 0 {
		return []IndexEntry{}, nil
	}
	var entries []IndexEntry
	if err := json.Unmarshal(i.Entries, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
