package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lovishduggal/brainwave-backend/internal/domain"
	"github.com/lovishduggal/brainwave-backend/internal/pkg/errdefs"
	"github.com/lovishduggal/brainwave-backend/internal/pkg/logger"
	"github.com/lovishduggal/brainwave-backend/internal/platform/gemini"
)

// QuizService turns free-form model output into structured quiz data.
// Parsing is strict and fails closed: output that is not exactly the
// requested shape surfaces as malformed, never as a silent empty result.
type QuizService struct {
	gateway      gemini.Client
	defaultCount int
	maxCount     int
	log          *logger.Logger
}

func NewQuizService(gateway gemini.Client, defaultCount, maxCount int, log *logger.Logger) *QuizService {
	if defaultCount <= 0 {
		defaultCount = 5
	}
	if maxCount <= 0 {
		maxCount = 20
	}
	return &QuizService{
		gateway:      gateway,
		defaultCount: defaultCount,
		maxCount:     maxCount,
		log:          log.With("service", "QuizService"),
	}
}

func generatePrompt(topic string, count int) string {
	return fmt.Sprintf(
		"Generate %d quiz questions about %s. "+
			"Respond with only a JSON array, no prose and no code fences. "+
			`Each element must be an object with exactly two string fields: "question" and "answer".`,
		count, topic,
	)
}

func evaluatePrompt(question, userAnswer, referenceAnswer string) string {
	return fmt.Sprintf(
		"Question: %s\nUser's answer: %s\nCorrect answer: %s\n"+
			"Is the user's answer correct? Respond with just 'true' or 'false'.",
		question, userAnswer, referenceAnswer,
	)
}

// Generate produces count question/answer pairs on topic. count 0 means the
// configured default; out-of-range counts are rejected before any model call.
func (s *QuizService) Generate(ctx context.Context, topic string, count int) ([]domain.QuizQuestion, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("%w: empty topic", errdefs.ErrInvalidArgument)
	}
	if count == 0 {
		count = s.defaultCount
	}
	if count < 0 || count > s.maxCount {
		return nil, fmt.Errorf("%w: count %d out of range [1,%d]", errdefs.ErrInvalidArgument, count, s.maxCount)
	}

	raw, err := s.gateway.GenerateContent(ctx, generatePrompt(topic, count), nil)
	if err != nil {
		return nil, err
	}

	questions, err := parseQuizQuestions(raw)
	if err != nil {
		s.log.Warn("Discarding malformed quiz output", "topic", topic, "error", err.Error())
		return nil, err
	}
	return questions, nil
}

func parseQuizQuestions(raw string) ([]domain.QuizQuestion, error) {
	var questions []domain.QuizQuestion
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &questions); err != nil {
		return nil, fmt.Errorf("%w: not a JSON array: %s", errdefs.ErrMalformedOutput, err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: empty question list", errdefs.ErrMalformedOutput)
	}
	for i, q := range questions {
		if strings.TrimSpace(q.Question) == "" {
			return nil, fmt.Errorf("%w: element %d has empty question", errdefs.ErrMalformedOutput, i)
		}
		if strings.TrimSpace(q.Answer) == "" {
			return nil, fmt.Errorf("%w: element %d has empty answer", errdefs.ErrMalformedOutput, i)
		}
	}
	return questions, nil
}

// Evaluate grades a single answer against its reference. An empty userAnswer
// means "no answer given" and is still gradable. Only a bare true/false
// verdict, case-insensitive, is accepted from the model.
func (s *QuizService) Evaluate(ctx context.Context, question, userAnswer, referenceAnswer string) (domain.EvaluationResult, error) {
	if strings.TrimSpace(question) == "" || strings.TrimSpace(referenceAnswer) == "" {
		return domain.EvaluationResult{}, fmt.Errorf("%w: question and correctAnswer are required", errdefs.ErrInvalidArgument)
	}

	raw, err := s.gateway.GenerateContent(ctx, evaluatePrompt(question, userAnswer, referenceAnswer), nil)
	if err != nil {
		return domain.EvaluationResult{}, err
	}

	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true":
		return domain.EvaluationResult{Correct: true}, nil
	case "false":
		return domain.EvaluationResult{Correct: false}, nil
	default:
		s.log.Warn("Discarding malformed verdict", "output_len", len(raw))
		return domain.EvaluationResult{}, fmt.Errorf("%w: verdict is not true/false", errdefs.ErrMalformedOutput)
	}
}
