package student

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StudentRepository interface {
	List() ([]*Student, error)
	GetByID(id string) (*Student, error)
	GetByTechziteID(techziteID string) (*Student, error)
	GetByIDs(ids []uuid.UUID) ([]*Student, error)
	Create(s *Student) error
	Update(s *Student) error
	Delete(id string) (bool, error)
	ReplaceAll(students []*Student) (int, error)
	DeleteAll() (int64, error)
}

type studentRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) List() ([]*Student, error) {
	var students []*Student
	if err := r.db.Order("techzite_id ASC").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (r *studentRepository) GetByID(id string) (*Student, error) {
	var s Student
	if err := r.db.First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *studentRepository) GetByTechziteID(techziteID string) (*Student, error) {
	var s Student
	if err := r.db.First(&s, "techzite_id = ?", NormalizeTechziteID(techziteID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *studentRepository) GetByIDs(ids []uuid.UUID) ([]*Student, error) {
	var students []*Student
	if len(ids) == 0 {
		return students, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (r *studentRepository) Create(s *Student) error {
	return r.db.Create(s).Error
}

func (r *studentRepository) Update(s *Student) error {
	return r.db.Save(s).Error
}

func (r *studentRepository) Delete(id string) (bool, error) {
	res := r.db.Delete(&Student{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

// ReplaceAll wipes the roster and inserts the new one, skipping rows whose
// techzite id is already taken. It returns how many rows were inserted.
func (r *studentRepository) ReplaceAll(students []*Student) (int, error) {
	inserted := 0
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Student{}).Error; err != nil {
			return err
		}
		for _, s := range students {
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "techzite_id"}},
				DoNothing: true,
			}).Create(s)
			if res.Error != nil {
				return res.Error
			}
			inserted += int(res.RowsAffected)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func (r *studentRepository) DeleteAll() (int64, error) {
	res := r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Student{})
	return res.RowsAffected, res.Error
}
