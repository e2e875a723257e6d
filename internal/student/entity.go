package student

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/quiz-proctor/internal/config"
	"gorm.io/gorm"
)

const encryptedPrefix = "enc:"

type Student struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TechziteID  string    `gorm:"type:text;not null;uniqueIndex" json:"techziteId"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Email       string    `gorm:"type:text" json:"email,omitempty"`
	PhoneNumber string    `gorm:"type:text;not null" json:"phoneNumber"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func NormalizeTechziteID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

func (s *Student) BeforeSave(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.TechziteID = NormalizeTechziteID(s.TechziteID)

	if config.CryptoEnabled() && !strings.HasPrefix(s.PhoneNumber, encryptedPrefix) {
		enc, err := config.Encrypt(s.PhoneNumber)
		if err != nil {
			return err
		}
		s.PhoneNumber = encryptedPrefix + enc
	}
	return nil
}

// AfterSave restores the plaintext phone number on the caller's struct.
func (s *Student) AfterSave(tx *gorm.DB) error {
	return s.decryptPhone()
}

func (s *Student) AfterFind(tx *gorm.DB) error {
	return s.decryptPhone()
}

func (s *Student) decryptPhone() error {
	if !strings.HasPrefix(s.PhoneNumber, encryptedPrefix) || !config.CryptoEnabled() {
		return nil
	}
	plain, err := config.Decrypt(strings.TrimPrefix(s.PhoneNumber, encryptedPrefix))
	if err != nil {
		return err
	}
	s.PhoneNumber = plain
	return nil
}
