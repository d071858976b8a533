package repos

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lovishduggal/brainwave-backend/internal/domain"
)

func TestIndexPushEntryCreatesThenAppends(t *testing.T) {
	db, dbc := testDB(t)
	repo := NewConversationIndexRepo(db, testLogger(t))

	first := domain.IndexEntry{ConversationID: uuid.New(), Title: "what is recursion?"}
	if err := repo.PushEntry(dbc, "owner-1", first); err != nil {
		t.Fatalf("first PushEntry: %v", err)
	}

	second := domain.IndexEntry{ConversationID: uuid.New(), Title: "pointers in go"}
	if err := repo.PushEntry(dbc, "owner-1", second); err != nil {
		t.Fatalf("second PushEntry: %v", err)
	}

	idx, err := repo.GetByOwner(dbc, "owner-1")
	if err != nil {
		t.Fatalf("GetByOwner: %v", err)
	}
	entries, err := idx.EntryList()
	if err != nil {
		t.Fatalf("decode entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].ConversationID != first.ConversationID || entries[1].ConversationID != second.ConversationID {
		t.Fatalf("entries out of order: %+v", entries)
	}
	if entries[1].Title != "pointers in go" {
		t.Fatalf("got title %q", entries[1].Title)
	}
}

func TestIndexOwnersIsolated(t *testing.T) {
	db, dbc := testDB(t)
	repo := NewConversationIndexRepo(db, testLogger(t))

	if err := repo.PushEntry(dbc, "owner-1", domain.IndexEntry{ConversationID: uuid.New(), Title: "a"}); err != nil {
		t.Fatalf("PushEntry: %v", err)
	}

	if _, err := repo.GetByOwner(dbc, "owner-2"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("got %v, want ErrRecordNotFound", err)
	}
}
