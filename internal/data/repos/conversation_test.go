package repos

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/lovishduggal/brainwave-backend/internal/domain"
	"github.com/lovishduggal/brainwave-backend/internal/pkg/dbctx"
)

func mustHistory(t *testing.T, turns []domain.Turn) datatypes.JSON {
	t.Helper()
	raw, err := json.Marshal(turns)
	if err != nil {
		t.Fatalf("marshal history: %v", err)
	}
	return datatypes.JSON(raw)
}

func seedConversation(t *testing.T, repo ConversationRepo, dbc dbctx.Context, ownerID string, turns []domain.Turn) uuid.UUID {
	t.Helper()
	conv := &domain.Conversation{
		ID:      uuid.New(),
		OwnerID: ownerID,
		History: mustHistory(t, turns),
	}
	if err := repo.Create(dbc, conv); err != nil {
		t.Fatalf("create conversation: %v", err)
	}
	return conv.ID
}

func TestConversationAppendTurns(t *testing.T) {
	db, dbc := testDB(t)
	repo := NewConversationRepo(db, testLogger(t))

	id := seedConversation(t, repo, dbc, "owner-1", []domain.Turn{
		{Role: domain.RoleUser, Parts: []domain.TurnPart{{Text: "what is recursion?"}}},
		{Role: domain.RoleModel, Parts: []domain.TurnPart{{Text: "see: recursion"}}},
	})

	rows, err := repo.AppendTurns(dbc, id, "owner-1", []domain.Turn{
		{Role: domain.RoleUser, Parts: []domain.TurnPart{{Text: "explain properly"}}, Img: "chats/x.png"},
		{Role: domain.RoleModel, Parts: []domain.TurnPart{{Text: "a function calling itself"}}},
	})
	if err != nil {
		t.Fatalf("AppendTurns: %v", err)
	}
	if rows != 1 {
		t.Fatalf("got %d rows affected, want 1", rows)
	}

	conv, err := repo.GetByID(dbc, id, "owner-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	turns, err := conv.Turns()
	if err != nil {
		t.Fatalf("decode turns: %v", err)
	}
	if len(turns) != 4 {
		t.Fatalf("got %d turns, want 4", len(turns))
	}
	if turns[2].Img != "chats/x.png" {
		t.Fatalf("appended turn lost img ref: %+v", turns[2])
	}
	if turns[3].Role != domain.RoleModel || turns[3].Text() != "a function calling itself" {
		t.Fatalf("tail turn wrong: %+v", turns[3])
	}
}

func TestConversationAppendWrongOwner(t *testing.T) {
	db, dbc := testDB(t)
	repo := NewConversationRepo(db, testLogger(t))

	id := seedConversation(t, repo, dbc, "owner-1", nil)

	rows, err := repo.AppendTurns(dbc, id, "owner-2", []domain.Turn{
		{Role: domain.RoleUser, Parts: []domain.TurnPart{{Text: "hi"}}},
	})
	if err != nil {
		t.Fatalf("AppendTurns: %v", err)
	}
	if rows != 0 {
		t.Fatalf("got %d rows affected, want 0", rows)
	}

	// The transcript must be untouched.
	conv, err := repo.GetByID(dbc, id, "owner-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	turns, err := conv.Turns()
	if err != nil {
		t.Fatalf("decode turns: %v", err)
	}
	if len(turns) != 0 {
		t.Fatalf("got %d turns, want 0", len(turns))
	}
}

func TestConversationGetByIDScopedByOwner(t *testing.T) {
	db, dbc := testDB(t)
	repo := NewConversationRepo(db, testLogger(t))

	id := seedConversation(t, repo, dbc, "owner-1", nil)

	if _, err := repo.GetByID(dbc, id, "owner-2"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("got %v, want ErrRecordNotFound", err)
	}
	if _, err := repo.GetByID(dbc, uuid.New(), "owner-1"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("got %v, want ErrRecordNotFound", err)
	}
}

func TestConversationGetRecentByOwner(t *testing.T) {
	db, dbc := testDB(t)
	repo := NewConversationRepo(db, testLogger(t))

	base := time.Now().UTC().Add(-time.Hour)
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		conv := &domain.Conversation{
			ID:        uuid.New(),
			OwnerID:   "owner-1",
			History:   mustHistory(t, nil),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(dbc, conv); err != nil {
			t.Fatalf("create conversation: %v", err)
		}
		ids = append(ids, conv.ID)
	}
	seedConversation(t, repo, dbc, "owner-2", nil)

	convs, err := repo.GetRecentByOwner(dbc, "owner-1", 2)
	if err != nil {
		t.Fatalf("GetRecentByOwner: %v", err)
	}
	if len(convs) != 2 {
		t.Fatalf("got %d conversations, want 2", len(convs))
	}
	if convs[0].ID != ids[2] || convs[1].ID != ids[1] {
		t.Fatalf("not ordered newest first: %v then %v", convs[0].ID, convs[1].ID)
	}
}
