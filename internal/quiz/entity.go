package quiz

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Settings struct {
	TimerPerQuestion      int  `gorm:"not null" json:"timerPerQuestion"`
	TotalQuestions        int  `gorm:"not null" json:"totalQuestions"`
	IsFullScreenMandatory bool `gorm:"not null" json:"isFullScreenMandatory"`
	IsCopyPasteDisabled   bool `gorm:"not null" json:"isCopyPasteDisabled"`
}

func DefaultSettings() Settings {
	return Settings{
		TimerPerQuestion:      45,
		TotalQuestions:        15,
		IsFullScreenMandatory: true,
		IsCopyPasteDisabled:   true,
	}
}

type Quiz struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string     `gorm:"type:text;not null" json:"title"`
	Questions []Question `gorm:"foreignKey:QuizID" json:"questions"`
	Settings  Settings   `gorm:"embedded;embeddedPrefix:settings_" json:"settings"`
	IsActive  bool       `gorm:"not null;default:false;index" json:"isActive"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (q *Quiz) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

type Question struct {
	ID            uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	QuizID        uuid.UUID                   `gorm:"type:uuid;not null;index" json:"-"`
	Text          string                      `gorm:"type:text;not null" json:"text"`
	Options       datatypes.JSONSlice[string] `gorm:"type:jsonb;not null" json:"options"`
	CorrectAnswer int                         `gorm:"not null" json:"correctAnswer"`
	Points        int                         `gorm:"not null;default:1" json:"points"`
	OrderIndex    int                         `gorm:"not null" json:"orderIndex"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// Weight is the score a correct answer earns; unset points count as one.
func (q Question) Weight() int {
	if q.Points <= 0 {
		return 1
	}
	return q.Points
}
