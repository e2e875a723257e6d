package quiz

import (
	"errors"

	"gorm.io/gorm"
)

type QuizRepository interface {
	List() ([]*Quiz, error)
	GetByID(id string) (*Quiz, error)
	GetActive() (*Quiz, error)
	Create(q *Quiz) error
	Update(q *Quiz, replaceQuestions bool) error
	Delete(id string) (bool, error)
	Activate(id string) (bool, error)
	DeleteAll() error
}

type quizRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func orderedQuestions(db *gorm.DB) *gorm.DB {
	return db.Order("order_index ASC")
}

func (r *quizRepository) List() ([]*Quiz, error) {
	var quizzes []*Quiz
	if err := r.db.Preload("Questions", orderedQuestions).Order("created_at DESC").Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepository) GetByID(id string) (*Quiz, error) {
	var quiz Quiz
	if err := r.db.Preload("Questions", orderedQuestions).First(&quiz, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &quiz, nil
}

// GetActive returns the most recently updated active quiz.
func (r *quizRepository) GetActive() (*Quiz, error) {
	var quiz Quiz
	err := r.db.Preload("Questions", orderedQuestions).
		Where("is_active = ?", true).
		Order("updated_at DESC").
		First(&quiz).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &quiz, nil
}

func deactivateOthers(tx *gorm.DB, keep interface{}) error {
	return tx.Model(&Quiz{}).
		Where("is_active = ? AND id <> ?", true, keep).
		Update("is_active", false).Error
}

func (r *quizRepository) Create(q *Quiz) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(q).Error; err != nil {
			return err
		}
		if q.IsActive {
			return deactivateOthers(tx, q.ID)
		}
		return nil
	})
}

func (r *quizRepository) Update(q *Quiz, replaceQuestions bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Questions").Save(q).Error; err != nil {
			return err
		}
		if q.IsActive {
			if err := deactivateOthers(tx, q.ID); err != nil {
				return err
			}
		}
		if !replaceQuestions {
			return nil
		}
		if err := tx.Where("quiz_id = ?", q.ID).Delete(&Question{}).Error; err != nil {
			return err
		}
		if len(q.Questions) == 0 {
			return nil
		}
		for i := range q.Questions {
			q.Questions[i].QuizID = q.ID
		}
		return tx.Create(&q.Questions).Error
	})
}

func (r *quizRepository) Delete(id string) (bool, error) {
	var deleted bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", id).Delete(&Question{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&Quiz{}, "id = ?", id)
		deleted = res.RowsAffected > 0
		return res.Error
	})
	return deleted, err
}

// Activate marks one quiz active and every other quiz inactive in a single
// transaction. It reports false when the quiz does not exist.
func (r *quizRepository) Activate(id string) (bool, error) {
	var found bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Quiz{}).Where("id = ?", id).Update("is_active", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		found = true
		return deactivateOthers(tx, id)
	})
	return found, err
}

func (r *quizRepository) DeleteAll() error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Delete(&Question{}).Error; err != nil {
			return err
		}
		return all.Delete(&Quiz{}).Error
	})
}
