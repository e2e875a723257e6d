package group

import (
	"time"

	"github.com/google/uuid"
)

type Credential struct {
	TechziteID  string `json:"techziteId"`
	PhoneNumber string `json:"phoneNumber"`
}

type LoginRequest struct {
	Credentials []Credential `json:"credentials"`
}

type LoginGroup struct {
	ID              uuid.UUID `json:"id"`
	GroupIdentifier string    `json:"groupIdentifier"`
	StudentNames    []string  `json:"studentNames"`
}

type LoginResponse struct {
	Token string     `json:"token"`
	Group LoginGroup `json:"group"`
}

type HeavyViolator struct {
	GroupID         uuid.UUID `json:"groupId"`
	GroupIdentifier string    `json:"groupIdentifier"`
	Students        []string  `json:"students"`
	ViolationCount  int       `json:"violationCount"`
}

type CreateGroupDTO struct {
	StudentIDs []uuid.UUID `json:"students" validate:"required,len=3,unique"`
}

// UpdateGroupDTO carries the admin-editable fields; nil means unchanged.
type UpdateGroupDTO struct {
	ViolationCount        *int       `json:"violationCount" validate:"omitempty,min=0"`
	ViolatedMultipleTimes *bool      `json:"violatedMultipleTimes"`
	QuizState             *QuizPatch `json:"quizState"`
}

type QuizPatch struct {
	CurrentQuestionIndex *int       `json:"currentQuestionIndex" validate:"omitempty,min=0"`
	StartTime            *time.Time `json:"startTime"`
	IsLocked             *bool      `json:"isLocked"`
	IsFinished           *bool      `json:"isFinished"`
	Score                *int       `json:"score"`
}
