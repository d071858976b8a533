package app

import (
	"github.com/lovishduggal/brainwave-backend/internal/http/handlers"
	"github.com/lovishduggal/brainwave-backend/internal/pkg/logger"
)

type Handlers struct {
	Health       *handlers.HealthHandler
	Conversation *handlers.ConversationHandler
	Quiz         *handlers.QuizHandler
	Upload       *handlers.UploadHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:       handlers.NewHealthHandler(),
		Conversation: handlers.NewConversationHandler(serviceset.Conversation),
		Quiz:         handlers.NewQuizHandler(serviceset.Quiz),
		Upload:       handlers.NewUploadHandler(serviceset.Upload),
	}
}
