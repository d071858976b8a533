package repos

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/lovishduggal/brainwave-backend/internal/domain"
	"github.com/lovishduggal/brainwave-backend/internal/pkg/dbctx"
	"github.com/lovishduggal/brainwave-backend/internal/pkg/logger"
)

// ConversationIndexRepo maintains the per-owner listing document. PushEntry
// appends at the tail; the first push for an owner creates the document.
type ConversationIndexRepo interface {
	GetByOwner(dbc dbctx.Context, ownerID string) (*domain.ConversationIndex, error)
	PushEntry(dbc dbctx.Context, ownerID string, entry domain.IndexEntry) error
}

type gormConversationIndexRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewConversationIndexRepo(db *gorm.DB, log *logger.Logger) ConversationIndexRepo {
	return &gormConversationIndexRepo{db: db, log: log.With("service", "ConversationIndexRepo")}
}

func (r *gormConversationIndexRepo) conn(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx.WithContext(dbc.Ctx)
	}
	return r.db.WithContext(dbc.Ctx)
}

func (r *gormConversationIndexRepo) GetByOwner(dbc dbctx.Context, ownerID string) (*domain.ConversationIndex, error) {
	var idx domain.ConversationIndex
	err := r.conn(dbc).
		Where("owner_id = ?", ownerID).
		First(&idx).Error
	if err != nil {
		return nil, err
	}
	return &idx, nil
}

func (r *gormConversationIndexRepo) PushEntry(dbc dbctx.Context, ownerID string, entry domain.IndexEntry) error {
	appended, err := r.appendEntry(dbc, ownerID, entry)
	if err != nil {
		return err
	}
	if appended {
		return nil
	}

	payload, err := json.Marshal([]domain.IndexEntry{entry})
	if err != nil {
		return err
	}
	createErr := r.conn(dbc).Create(&domain.ConversationIndex{
		OwnerID: ownerID,
		Entries: datatypes.JSON(payload),
	}).Error
	if createErr == nil {
		return nil
	}

	// Lost the create race to a concurrent first push; the row exists now.
	appended, err = r.appendEntry(dbc, ownerID, entry)
	if err != nil {
		return err
	}
	if !appended {
		return createErr
	}
	return nil
}

func (r *gormConversationIndexRepo) appendEntry(dbc dbctx.Context, ownerID string, entry domain.IndexEntry) (bool, error) {
	expr, err := jsonAppendExpr(r.db.Dialector.Name(), "entries", []interface{}{entry})
	if err != nil {
		return false, err
	}
	res := r.conn(dbc).
		Model(&domain.ConversationIndex{}).
		Where("owner_id = ?", ownerID).
		Updates(map[string]interface{}{
			"entries":    expr,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
