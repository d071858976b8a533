package domain

// QuizQuestion is one generated question/answer pair. Quiz records are
// request-scoped and never persisted by this backend.
type QuizQuestion struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// EvaluationResult is the graded outcome for one (question, userAnswer,
// referenceAnswer) triple.
type EvaluationResult struct {
	Correct bool `json:"correct"`
}
