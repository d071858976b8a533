package app

import (
	"fmt"

	"github.com/lovishduggal/brainwave-backend/internal/pkg/logger"
	"github.com/lovishduggal/brainwave-backend/internal/services"
)

type Services struct {
	Conversation *services.ConversationService
	Quiz         *services.QuizService
	Upload       *services.UploadService
}

func wireServices(log *logger.Logger, cfg Config, clients Clients, reposet Repos) (Services, error) {
	log.Info("Wiring services...")

	upload, err := services.NewUploadService(cfg.ImageKitPrivateKey, log)
	if err != nil {
		return Services{}, fmt.Errorf("init upload service: %w", err)
	}

	return Services{
		Conversation: services.NewConversationService(reposet.Conversation, reposet.ConversationIndex, log),
		Quiz:         services.NewQuizService(clients.Gemini, cfg.QuizDefaultCount, cfg.QuizMaxCount, log),
		Upload:       upload,
	}, nil
}
