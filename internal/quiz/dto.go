package quiz

import (
	"time"

	"github.com/google/uuid"
)

type QuestionInput struct {
	Text          string   `json:"text" validate:"required"`
	Options       []string `json:"options" validate:"min=2,dive,required"`
	CorrectAnswer int      `json:"correctAnswer" validate:"min=0"`
	Points        int      `json:"points" validate:"min=0"`
}

// CreateQuizDTO should be decoded over NewCreateQuizDTO so omitted settings
// keep their defaults.
type CreateQuizDTO struct {
	Title     string          `json:"title" validate:"required"`
	Questions []QuestionInput `json:"questions" validate:"dive"`
	Settings  Settings        `json:"settings"`
	IsActive  bool            `json:"isActive"`
}

func NewCreateQuizDTO() CreateQuizDTO {
	return CreateQuizDTO{Settings: DefaultSettings()}
}

type UpdateQuizDTO struct {
	Title     *string          `json:"title" validate:"omitempty,min=1"`
	Questions *[]QuestionInput `json:"questions" validate:"omitempty,dive"`
	Settings  *Settings        `json:"settings"`
	IsActive  *bool            `json:"isActive"`
}

type SafeQuestion struct {
	ID      int      `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// SafeQuiz is what students receive: no correct answers, no points.
type SafeQuiz struct {
	ID        uuid.UUID      `json:"id"`
	Title     string         `json:"title"`
	Questions []SafeQuestion `json:"questions"`
	Settings  Settings       `json:"settings"`
}

type SubmitRequest struct {
	GroupID string `json:"groupId"`
	Answers []int  `json:"answers"`
}

type ResultStudent struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

type Result struct {
	GroupID         uuid.UUID       `json:"groupId"`
	GroupIdentifier string          `json:"groupIdentifier"`
	Students        []ResultStudent `json:"students"`
	Score           int             `json:"score"`
	TotalQuestions  int             `json:"totalQuestions"`
	FinishedAt      time.Time       `json:"finishedAt"`
}
