package app

import (
	"gorm.io/gorm"

	"github.com/lovishduggal/brainwave-backend/internal/data/repos"
	"github.com/lovishduggal/brainwave-backend/internal/pkg/logger"
)

type Repos struct {
	Conversation      repos.ConversationRepo
	ConversationIndex repos.ConversationIndexRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Conversation:      repos.NewConversationRepo(db, log),
		ConversationIndex: repos.NewConversationIndexRepo(db, log),
	}
}
