package student

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/saulo-duarte/quiz-proctor/internal/config"
	"github.com/sirupsen/logrus"
)

var (
	ErrStudentNotFound = errors.New("student not found")
	ErrNoValidRows     = errors.New("no valid student rows")
)

type StudentService interface {
	List(ctx context.Context) ([]*Student, error)
	Get(ctx context.Context, id string) (*Student, error)
	FindByTechziteID(ctx context.Context, techziteID string) (*Student, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Student, error)
	Create(ctx context.Context, dto CreateStudentDTO) (*Student, error)
	Update(ctx context.Context, id string, dto UpdateStudentDTO) (*Student, error)
	Delete(ctx context.Context, id string) error
	ImportRoster(ctx context.Context, rows []RosterRow) (int, error)
}

type studentService struct {
	repo StudentRepository
}

func NewService(repo StudentRepository) StudentService {
	return &studentService{repo: repo}
}

func (s *studentService) List(ctx context.Context) ([]*Student, error) {
	students, err := s.repo.List()
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list students")
		return nil, err
	}
	return students, nil
}

func (s *studentService) Get(ctx context.Context, id string) (*Student, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrStudentNotFound
	}
	st, err := s.repo.GetByID(id)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to get student")
		return nil, err
	}
	if st == nil {
		return nil, ErrStudentNotFound
	}
	return st, nil
}

func (s *studentService) FindByTechziteID(ctx context.Context, techziteID string) (*Student, error) {
	st, err := s.repo.GetByTechziteID(techziteID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to look up techzite id")
		return nil, err
	}
	if st == nil {
		return nil, ErrStudentNotFound
	}
	return st, nil
}

func (s *studentService) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Student, error) {
	return s.repo.GetByIDs(ids)
}

func (s *studentService) Create(ctx context.Context, dto CreateStudentDTO) (*Student, error) {
	log := config.WithContext(ctx)

	st := &Student{
		ID:          uuid.New(),
		TechziteID:  NormalizeTechziteID(dto.TechziteID),
		Name:        dto.Name,
		Email:       dto.Email,
		PhoneNumber: dto.PhoneNumber,
	}
	if err := s.repo.Create(st); err != nil {
		log.WithError(err).Error("Failed to create student")
		return nil, err
	}

	log.WithField("techzite_id", st.TechziteID).Info("Student created")
	return st, nil
}

func (s *studentService) Update(ctx context.Context, id string, dto UpdateStudentDTO) (*Student, error) {
	log := config.WithContext(ctx)

	st, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if dto.TechziteID != nil {
		st.TechziteID = NormalizeTechziteID(*dto.TechziteID)
	}
	if dto.Name != nil {
		st.Name = *dto.Name
	}
	if dto.Email != nil {
		st.Email = *dto.Email
	}
	if dto.PhoneNumber != nil {
		st.PhoneNumber = *dto.PhoneNumber
	}

	if err := s.repo.Update(st); err != nil {
		log.WithError(err).Error("Failed to update student")
		return nil, err
	}
	return st, nil
}

func (s *studentService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrStudentNotFound
	}
	deleted, err := s.repo.Delete(id)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to delete student")
		return err
	}
	if !deleted {
		return ErrStudentNotFound
	}
	return nil
}

// ImportRoster replaces every student with the complete rows of an upload.
// Incomplete rows are skipped; if none remain the current roster is kept.
func (s *studentService) ImportRoster(ctx context.Context, rows []RosterRow) (int, error) {
	log := config.WithContext(ctx)

	students := make([]*Student, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		if !row.complete() {
			skipped++
			continue
		}
		students = append(students, &Student{
			ID:          uuid.New(),
			TechziteID:  NormalizeTechziteID(row.TechziteID),
			Name:        row.Name,
			Email:       row.Email,
			PhoneNumber: row.PhoneNumber,
		})
	}

	if len(students) == 0 {
		log.WithField("rows", len(rows)).Warn("Roster upload had no valid rows")
		return 0, ErrNoValidRows
	}

	inserted, err := s.repo.ReplaceAll(students)
	if err != nil {
		log.WithError(err).Error("Failed to replace roster")
		return 0, err
	}

	log.WithFields(logrus.Fields{
		"inserted":   inserted,
		"skipped":    skipped,
		"duplicates": len(students) - inserted,
	}).Info("Roster imported")
	return inserted, nil
}
