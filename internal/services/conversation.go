package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/lovishduggal/brainwave-backend/internal/data/repos"
	"github.com/lovishduggal/brainwave-backend/internal/domain"
	"github.com/lovishduggal/brainwave-backend/internal/pkg/dbctx"
	"github.com/lovishduggal/brainwave-backend/internal/pkg/errdefs"
	"github.com/lovishduggal/brainwave-backend/internal/pkg/logger"
)

// titleMaxRunes is the hard cut applied to the first user message when it
// becomes the listing title. No ellipsis, no word-boundary logic.
const titleMaxRunes = 40

// StartResult reports a newly created conversation. IndexPending is set when
// the transcript was created but the listing entry could not be pushed; the
// transcript is still live and addressable.
type StartResult struct {
	ConversationID uuid.UUID
	Title          string
	IndexPending   bool
}

// ConversationService owns transcript lifecycle: create with the opening
// user turn, append user/model exchanges at the tail, read back owner-scoped.
type ConversationService struct {
	convRepo repos.ConversationRepo
	idxRepo  repos.ConversationIndexRepo
	log      *logger.Logger
}

func NewConversationService(convRepo repos.ConversationRepo, idxRepo repos.ConversationIndexRepo, log *logger.Logger) *ConversationService {
	return &ConversationService{
		convRepo: convRepo,
		idxRepo:  idxRepo,
		log:      log.With("service", "ConversationService"),
	}
}

func deriveTitle(text string) string {
	runes := []rune(text)
	if len(runes) > titleMaxRunes {
		runes = runes[:titleMaxRunes]
	}
	return string(runes)
}

// Start creates a conversation whose history holds exactly the opening user
// turn and registers it in the owner's listing. A failed listing push does
// not fail the creation; it is reported via IndexPending.
func (s *ConversationService) Start(dbc dbctx.Context, ownerID, text string) (*StartResult, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, fmt.Errorf("%w: missing owner", errdefs.ErrInvalidArgument)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty message text", errdefs.ErrInvalidArgument)
	}

	history, err := json.Marshal([]domain.Turn{
		{Role: domain.RoleUser, Parts: []domain.TurnPart{{Text: text}}},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encode history: %s", errdefs.ErrStoreFailed, err)
	}

	conv := &domain.Conversation{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		History:   datatypes.JSON(history),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.convRepo.Create(dbc, conv); err != nil {
		return nil, fmt.Errorf("%w: create conversation: %s", errdefs.ErrStoreFailed, err)
	}

	res := &StartResult{ConversationID: conv.ID, Title: deriveTitle(text)}

	entry := domain.IndexEntry{ConversationID: conv.ID, Title: res.Title}
	if err := s.idxRepo.PushEntry(dbc, ownerID, entry); err != nil {
		s.log.Error("Conversation created but index push failed",
			"conversation_id", conv.ID.String(),
			"error", err.Error(),
		)
		res.IndexPending = true
	}
	return res, nil
}

// Append adds one exchange at the tail. A non-empty userText produces a
// user-then-model pair written atomically; an empty userText produces a
// model-only turn and attachmentRef is ignored.
func (s *ConversationService) Append(dbc dbctx.Context, id uuid.UUID, ownerID, userText, modelText, attachmentRef string) (int64, error) {
	if strings.TrimSpace(ownerID) == "" {
		return 0, fmt.Errorf("%w: missing owner", errdefs.ErrInvalidArgument)
	}
	if strings.TrimSpace(modelText) == "" {
		return 0, fmt.Errorf("%w: empty model answer", errdefs.ErrInvalidArgument)
	}

	var turns []domain.Turn
	if strings.TrimSpace(userText) != "" {
		turns = append(turns, domain.Turn{
			Role:  domain.RoleUser,
			Parts: []domain.TurnPart{{Text: userText}},
			Img:   attachmentRef,
		})
	}
	turns = append(turns, domain.Turn{
		Role:  domain.RoleModel,
		Parts: []domain.TurnPart{{Text: modelText}},
	})

	rows, err := s.convRepo.AppendTurns(dbc, id, ownerID, turns)
	if err != nil {
		return 0, fmt.Errorf("%w: append turns: %s", errdefs.ErrStoreFailed, err)
	}
	if rows == 0 {
		return 0, fmt.Errorf("%w: conversation %s", errdefs.ErrNotFound, id)
	}
	return rows, nil
}

// Get returns the full transcript, owner-scoped. A wrong owner and a missing
// conversation are the same NotFound to the caller.
func (s *ConversationService) Get(dbc dbctx.Context, id uuid.UUID, ownerID string) (*domain.Conversation, error) {
	conv, err := s.convRepo.GetByID(dbc, id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: conversation %s", errdefs.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: get conversation: %s", errdefs.ErrStoreFailed, err)
	}
	return conv, nil
}

// ListIndex returns the owner's listing entries in creation order. When the
// listing document is missing but transcripts exist (every push so far
// failed) the entries are rebuilt from the transcripts; an owner with no
// conversations at all gets NotFound.
func (s *ConversationService) ListIndex(dbc dbctx.Context, ownerID string) ([]domain.IndexEntry, error) {
	idx, err := s.idxRepo.GetByOwner(dbc, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.entriesFromConversations(dbc, ownerID)
		}
		return nil, fmt.Errorf("%w: get index: %s", errdefs.ErrStoreFailed, err)
	}
	entries, err := idx.EntryList()
	if err != nil {
		return nil, fmt.Errorf("%w: decode index: %s", errdefs.ErrStoreFailed, err)
	}
	return entries, nil
}

func (s *ConversationService) entriesFromConversations(dbc dbctx.Context, ownerID string) ([]domain.IndexEntry, error) {
	convs, err := s.convRepo.GetRecentByOwner(dbc, ownerID, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: list conversations: %s", errdefs.ErrStoreFailed, err)
	}
	entries := make([]domain.IndexEntry, 0, len(convs))
	// GetRecentByOwner is newest first; the listing is creation order.
	for i := len(convs) - 1; i >= 0; i-- {
		turns, err := convs[i].Turns()
		if err != nil {
			return nil, fmt.Errorf("%w: decode history: %s", errdefs.ErrStoreFailed, err)
		}
		title := ""
		if len(turns) > 0 {
			title = deriveTitle(turns[0].Text())
		}
		entries = append(entries, domain.IndexEntry{ConversationID: convs[i].ID, Title: title})
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no conversations for owner", errdefs.ErrNotFound)
	}
	return entries, nil
}
