package group

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GroupRepository interface {
	List() ([]*Group, error)
	GetByID(id string) (*Group, error)
	GetByIdentifier(identifier string) (*Group, error)
	FindFinishedContaining(studentIDs []uuid.UUID) (*Group, error)
	CreateIfAbsent(g *Group) (*Group, error)
	Patch(groupID uuid.UUID, fields map[string]interface{}) (bool, error)
	Finish(groupID uuid.UUID, state QuizState) (bool, error)
	Delete(id string) (bool, error)
	DeleteAll() (int64, error)
	RecordViolation(groupID uuid.UUID, entry ViolationLog, threshold int) (*Group, error)
	SetLocked(groupID uuid.UUID, locked bool) error
	ListHeavyViolators() ([]*Group, error)
	ListFinished() ([]*Group, error)
}

type groupRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) List() ([]*Group, error) {
	var groups []*Group
	if err := r.db.Preload("Students").Order("created_at ASC").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *groupRepository) GetByID(id string) (*Group, error) {
	var g Group
	err := r.db.
		Preload("Students").
		Preload("ViolationLogs", insertionOrder).
		First(&g, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

// insertionOrder sorts violation logs by the server-assigned sequence; the
// timestamp is whatever the browser reported.
func insertionOrder(db *gorm.DB) *gorm.DB {
	return db.Order("seq ASC")
}

func (r *groupRepository) GetByIdentifier(identifier string) (*Group, error) {
	var g Group
	if err := r.db.Preload("Students").First(&g, "group_identifier = ?", identifier).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

func (r *groupRepository) FindFinishedContaining(studentIDs []uuid.UUID) (*Group, error) {
	var g Group
	err := r.db.
		Joins("JOIN group_students gs ON gs.group_id = groups.id").
		Where("gs.student_id IN ? AND groups.quiz_is_finished = ?", studentIDs, true).
		First(&g).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

// CreateIfAbsent inserts the group unless one with the same identifier
// already exists, and returns whichever row is stored. Two logins racing on
// the same trio end up with the same group.
func (r *groupRepository) CreateIfAbsent(g *Group) (*Group, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "group_identifier"}},
			DoNothing: true,
		}).Create(g)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.Model(g).Omit("Students.*").Association("Students").Append(g.Students)
	})
	if err != nil {
		return nil, err
	}
	return r.GetByIdentifier(g.GroupID)
}

// Patch writes only the given columns, leaving counters it does not name
// untouched.
func (r *groupRepository) Patch(groupID uuid.UUID, fields map[string]interface{}) (bool, error) {
	res := r.db.Model(&Group{}).Where("id = ?", groupID).Updates(fields)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Finish stores the result unless the attempt is already finished. It
// reports false when no unfinished row matched.
func (r *groupRepository) Finish(groupID uuid.UUID, state QuizState) (bool, error) {
	res := finishAttempt(r.db, groupID, state)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func finishAttempt(tx *gorm.DB, groupID uuid.UUID, state QuizState) *gorm.DB {
	return tx.Model(&Group{}).
		Where("id = ? AND quiz_is_finished = ?", groupID, false).
		Updates(map[string]interface{}{
			"quiz_score":                  state.Score,
			"quiz_is_finished":            true,
			"quiz_current_question_index": state.CurrentQuestionIndex,
			"quiz_quiz_id":                state.QuizID,
			"quiz_finished_at":            state.FinishedAt,
		})
}

func (r *groupRepository) Delete(id string) (bool, error) {
	g, err := r.GetByID(id)
	if err != nil || g == nil {
		return false, err
	}
	if err := r.db.Select(clause.Associations).Delete(g).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (r *groupRepository) DeleteAll() (int64, error) {
	var n int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Delete(&ViolationLog{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM group_students").Error; err != nil {
			return err
		}
		res := all.Delete(&Group{})
		n = res.RowsAffected
		return res.Error
	})
	return n, err
}

// RecordViolation bumps the counter, raises the heavy-violator flag past
// threshold, locks the attempt and appends the log entry in one transaction.
// It returns (nil, nil) when the group does not exist.
func (r *groupRepository) RecordViolation(groupID uuid.UUID, entry ViolationLog, threshold int) (*Group, error) {
	found := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := bumpViolation(tx, groupID, threshold)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		found = true

		entry.GroupID = groupID
		return tx.Create(&entry).Error
	})
	if err != nil || !found {
		return nil, err
	}
	return r.GetByID(groupID.String())
}

func bumpViolation(tx *gorm.DB, groupID uuid.UUID, threshold int) *gorm.DB {
	return tx.Model(&Group{}).Where("id = ?", groupID).Updates(map[string]interface{}{
		"violation_count":         gorm.Expr("violation_count + 1"),
		"violated_multiple_times": gorm.Expr("violated_multiple_times OR violation_count + 1 > ?", threshold),
		"quiz_is_locked":          true,
		"updated_at":              time.Now(),
	})
}

func (r *groupRepository) SetLocked(groupID uuid.UUID, locked bool) error {
	return r.db.Model(&Group{}).Where("id = ?", groupID).Update("quiz_is_locked", locked).Error
}

func (r *groupRepository) ListHeavyViolators() ([]*Group, error) {
	var groups []*Group
	err := r.db.Preload("Students").
		Where("violated_multiple_times = ?", true).
		Order("violation_count DESC").
		Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *groupRepository) ListFinished() ([]*Group, error) {
	var groups []*Group
	err := r.db.Preload("Students").
		Where("quiz_is_finished = ?", true).
		Order("quiz_score DESC NULLS LAST").
		Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}
