package repos

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lovishduggal/brainwave-backend/internal/domain"
	"github.com/lovishduggal/brainwave-backend/internal/pkg/dbctx"
	"github.com/lovishduggal/brainwave-backend/internal/pkg/logger"
)

// ConversationRepo persists transcripts. AppendTurns is the only mutation
// on history: a single UPDATE that appends at the tail, scoped by owner, so
// a wrong owner and a missing row are indistinguishable (0 rows affected).
type ConversationRepo interface {
	Create(dbc dbctx.Context, conv *domain.Conversation) error
	GetByID(dbc dbctx.Context, id uuid.UUID, ownerID string) (*domain.Conversation, error)
	GetRecentByOwner(dbc dbctx.Context, ownerID string, limit int) ([]domain.Conversation, error)
	AppendTurns(dbc dbctx.Context, id uuid.UUID, ownerID string, turns []domain.Turn) (int64, error)
}

type gormConversationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewConversationRepo(db *gorm.DB, log *logger.Logger) ConversationRepo {
	return &gormConversationRepo{db: db, log: log.With("service", "ConversationRepo")}
}

func (r *gormConversationRepo) conn(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx.WithContext(dbc.Ctx)
	}
	return r.db.WithContext(dbc.Ctx)
}

func (r *gormConversationRepo) Create(dbc dbctx.Context, conv *domain.Conversation) error {
	return r.conn(dbc).Create(conv).Error
}

func (r *gormConversationRepo) GetByID(dbc dbctx.Context, id uuid.UUID, ownerID string) (*domain.Conversation, error) {
	var conv domain.Conversation
	err := r.conn(dbc).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&conv).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *gormConversationRepo) GetRecentByOwner(dbc dbctx.Context, ownerID string, limit int) ([]domain.Conversation, error) {
	var convs []domain.Conversation
	q := r.conn(dbc).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&convs).Error; err != nil {
		return nil, err
	}
	return convs, nil
}

func (r *gormConversationRepo) AppendTurns(dbc dbctx.Context, id uuid.UUID, ownerID string, turns []domain.Turn) (int64, error) {
	if len(turns) == 0 {
		return 0, fmt.Errorf("no turns to append")
	}

	expr, err := jsonAppendExpr(r.db.Dialector.Name(), "history", turnsAsJSON(turns))
	if err != nil {
		return 0, err
	}

	res := r.conn(dbc).
		Model(&domain.Conversation{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(map[string]interface{}{
			"history":    expr,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func turnsAsJSON(turns []domain.Turn) []interface{} {
	items := make([]interface{}, 0, len(turns))
	for _, t := range turns {
		items = append(items, t)
	}
	return items
}

// jsonAppendExpr builds a tail-append expression for a JSON array column.
// Postgres concatenates a jsonb array; sqlite inserts each element at the
// end slot via json_insert.
func jsonAppendExpr(dialect, column string, items []interface{}) (clause.Expr, error) {
	switch dialect {
	case "postgres":
		payload, err := json.Marshal(items)
		if err != nil {
			return clause.Expr{}, err
		}
		return gorm.Expr(column+" || ?::jsonb", datatypes.JSON(payload)), nil
	case "sqlite":
		var sql strings.Builder
		sql.WriteString("json_insert(" + column)
		args := make([]interface{}, 0, len(items))
		for _, item := range items {
			raw, err := json.Marshal(item)
			if err != nil {
				return clause.Expr{}, err
			}
			sql.WriteString(", '$[#]', json(?)")
			args = append(args, string(raw))
		}
		sql.WriteString(")")
		return gorm.Expr(sql.String(), args...), nil
	default:
		return clause.Expr{}, fmt.Errorf("unsupported dialect %q", dialect)
	}
}
