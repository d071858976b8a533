package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lovishduggal/brainwave-backend/internal/http/response"
	"github.com/lovishduggal/brainwave-backend/internal/services"
)

type QuizHandler struct {
	quiz *services.QuizService
}

func NewQuizHandler(quiz *services.QuizService) *QuizHandler {
	return &QuizHandler{quiz: quiz}
}

// GET /api/quiz/generate?topic=golang&count=5
func (h *QuizHandler) Generate(c *gin.Context) {
	topic := c.Query("topic")
	count := 0
	if v := strings.TrimSpace(c.Query("count")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
		count = n
	}

	questions, err := h.quiz.Generate(c.Request.Context(), topic, count)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"questions": questions})
}

type evaluateReq struct {
	Question      string `json:"question"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
}

// POST /api/quiz/evaluate
func (h *QuizHandler) Evaluate(c *gin.Context) {
	var req evaluateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	res, err := h.quiz.Evaluate(c.Request.Context(), req.Question, req.UserAnswer, req.CorrectAnswer)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"correct": res.Correct})
}
