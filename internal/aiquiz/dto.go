package aiquiz

import "github.com/saulo-duarte/quiz-proctor/internal/quiz"

type DraftRequest struct {
	Topic      string `json:"topic" validate:"required"`
	Difficulty string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Count      int    `json:"count" validate:"min=0,max=20"`
}

// Draft uses the quiz question input shape so a reviewed draft can be posted
// straight into a quiz.
type Draft = quiz.QuestionInput
