package group

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/quiz-proctor/internal/student"
	"gorm.io/gorm"
)

type QuizState struct {
	CurrentQuestionIndex int        `gorm:"not null;default:0" json:"currentQuestionIndex"`
	StartTime            *time.Time `json:"startTime,omitempty"`
	IsLocked             bool       `gorm:"not null;default:false" json:"isLocked"`
	IsFinished           bool       `gorm:"not null;default:false;index" json:"isFinished"`
	Score                *int       `json:"score,omitempty"`
	QuizID               *uuid.UUID `gorm:"type:uuid" json:"quizId,omitempty"`
	FinishedAt           *time.Time `json:"finishedAt,omitempty"`
}

type ViolationLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	Seq       int64     `gorm:"autoIncrement;not null;index" json:"-"`
	GroupID   uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Type      string    `gorm:"type:text;not null" json:"type"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
}

func (v *ViolationLog) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

type Group struct {
	ID                    uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	GroupID               string             `gorm:"column:group_identifier;type:text;not null;uniqueIndex" json:"groupId"`
	Students              []*student.Student `gorm:"many2many:group_students" json:"students"`
	QuizState             QuizState          `gorm:"embedded;embeddedPrefix:quiz_" json:"quizState"`
	ViolationLogs         []ViolationLog     `gorm:"foreignKey:GroupID" json:"violationLogs"`
	ViolationCount        int                `gorm:"not null;default:0" json:"violationCount"`
	ViolatedMultipleTimes bool               `gorm:"not null;default:false;index" json:"violatedMultipleTimes"`
	CreatedAt             time.Time          `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt             time.Time          `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (g *Group) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

func (g *Group) StudentNames() []string {
	names := make([]string, 0, len(g.Students))
	for _, s := range g.Students {
		names = append(names, s.Name)
	}
	return names
}
