package group

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/quiz-proctor/internal/auth"
	"github.com/saulo-duarte/quiz-proctor/internal/config"
	"github.com/saulo-duarte/quiz-proctor/internal/student"
	"github.com/sirupsen/logrus"
)

const GroupSize = 3

var (
	ErrGroupNotFound        = errors.New("group not found")
	ErrInvalidID            = errors.New("invalid id format")
	ErrCredentialCount      = errors.New("three student credentials required")
	ErrDuplicateStudent     = errors.New("three different students required")
	ErrUnknownStudent       = errors.New("techzite id not found")
	ErrWrongPhone           = errors.New("incorrect phone number")
	ErrAlreadyParticipated  = errors.New("a member already completed the quiz in another group")
	ErrQuizAlreadySubmitted = errors.New("quiz already submitted")
)

// CredentialError names the techzite id that failed login.
type CredentialError struct {
	TechziteID string
	Err        error
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("%s: %v", e.TechziteID, e.Err)
}

func (e *CredentialError) Unwrap() error {
	return e.Err
}

type GroupService interface {
	Login(ctx context.Context, creds []Credential) (*LoginResponse, error)
	List(ctx context.Context) ([]*Group, error)
	Get(ctx context.Context, id string) (*Group, error)
	Create(ctx context.Context, dto CreateGroupDTO) (*Group, error)
	Update(ctx context.Context, id string, dto UpdateGroupDTO) (*Group, error)
	Delete(ctx context.Context, id string) error
	ClearAttempts(ctx context.Context) (int64, error)
	RecordViolation(ctx context.Context, groupID string, violationType string, at time.Time) (*Group, error)
	Unlock(ctx context.Context, groupID string) (*Group, error)
	HeavyViolators(ctx context.Context) ([]HeavyViolator, error)
	ListFinished(ctx context.Context) ([]*Group, error)
	MarkFinished(ctx context.Context, groupID string, quizID uuid.UUID, score, totalQuestions int) (*Group, error)
}

type groupService struct {
	repo           GroupRepository
	studentService student.StudentService
	threshold      int
	tokenTTL       time.Duration
	now            func() time.Time
}

func NewService(repo GroupRepository, studentService student.StudentService, threshold int, tokenTTL time.Duration) GroupService {
	return &groupService{
		repo:           repo,
		studentService: studentService,
		threshold:      threshold,
		tokenTTL:       tokenTTL,
		now:            time.Now,
	}
}

func parseUUID(log logrus.FieldLogger, id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		log.WithError(err).WithField("group_id", id).Warn("Invalid group ID")
		return uuid.Nil, ErrInvalidID
	}
	return parsed, nil
}

func (s *groupService) Login(ctx context.Context, creds []Credential) (*LoginResponse, error) {
	log := config.WithContext(ctx)

	if len(creds) != GroupSize {
		return nil, ErrCredentialCount
	}

	members := make([]*student.Student, 0, GroupSize)
	seen := map[uuid.UUID]bool{}
	for _, c := range creds {
		st, err := s.studentService.FindByTechziteID(ctx, c.TechziteID)
		if err != nil {
			if errors.Is(err, student.ErrStudentNotFound) {
				return nil, &CredentialError{TechziteID: c.TechziteID, Err: ErrUnknownStudent}
			}
			return nil, err
		}
		if strings.TrimSpace(st.PhoneNumber) != strings.TrimSpace(c.PhoneNumber) {
			return nil, &CredentialError{TechziteID: c.TechziteID, Err: ErrWrongPhone}
		}
		if seen[st.ID] {
			return nil, ErrDuplicateStudent
		}
		seen[st.ID] = true
		members = append(members, st)
	}

	ids := make([]uuid.UUID, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}

	// Non-transactional: two trios sharing a member can still both pass
	// this check if they log in at the same moment.
	finished, err := s.repo.FindFinishedContaining(ids)
	if err != nil {
		log.WithError(err).Error("Failed to check previous participation")
		return nil, err
	}
	if finished != nil {
		log.WithField("finished_group", finished.GroupID).Warn("Login denied, member already participated")
		return nil, ErrAlreadyParticipated
	}

	identifier := Identifier(ids)
	g, err := s.repo.GetByIdentifier(identifier)
	if err != nil {
		log.WithError(err).Error("Failed to look up group")
		return nil, err
	}

	if g != nil {
		if g.QuizState.IsFinished {
			return nil, ErrQuizAlreadySubmitted
		}
	} else {
		start := s.now()
		g, err = s.repo.CreateIfAbsent(&Group{
			ID:        uuid.New(),
			GroupID:   identifier,
			Students:  members,
			QuizState: QuizState{StartTime: &start},
		})
		if err != nil {
			log.WithError(err).Error("Failed to create group")
			return nil, err
		}
		log.WithField("group_id", g.ID).Info("Group created")
	}

	token, err := auth.GenerateGroupJWT(g.ID.String(), g.GroupID, s.tokenTTL)
	if err != nil {
		log.WithError(err).Error("Failed to sign group token")
		return nil, err
	}

	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Name
	}

	return &LoginResponse{
		Token: token,
		Group: LoginGroup{
			ID:              g.ID,
			GroupIdentifier: g.GroupID,
			StudentNames:    names,
		},
	}, nil
}

func (s *groupService) List(ctx context.Context) ([]*Group, error) {
	groups, err := s.repo.List()
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list groups")
		return nil, err
	}
	return groups, nil
}

func (s *groupService) Get(ctx context.Context, id string) (*Group, error) {
	log := config.WithContext(ctx)
	if _, err := parseUUID(log, id); err != nil {
		return nil, err
	}

	g, err := s.repo.GetByID(id)
	if err != nil {
		log.WithError(err).Error("Failed to get group")
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}
	return g, nil
}

func (s *groupService) Create(ctx context.Context, dto CreateGroupDTO) (*Group, error) {
	log := config.WithContext(ctx)

	members, err := s.studentService.FindByIDs(ctx, dto.StudentIDs)
	if err != nil {
		return nil, err
	}
	if len(members) != len(dto.StudentIDs) {
		return nil, student.ErrStudentNotFound
	}

	g, err := s.repo.CreateIfAbsent(&Group{
		ID:       uuid.New(),
		GroupID:  Identifier(dto.StudentIDs),
		Students: members,
	})
	if err != nil {
		log.WithError(err).Error("Failed to create group")
		return nil, err
	}
	return g, nil
}

func (s *groupService) Update(ctx context.Context, id string, dto UpdateGroupDTO) (*Group, error) {
	log := config.WithContext(ctx)

	g, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if dto.ViolationCount != nil {
		fields["violation_count"] = *dto.ViolationCount
		fields["violated_multiple_times"] = *dto.ViolationCount > s.threshold
	}
	if dto.ViolatedMultipleTimes != nil {
		fields["violated_multiple_times"] = *dto.ViolatedMultipleTimes
	}
	if p := dto.QuizState; p != nil {
		if p.CurrentQuestionIndex != nil {
			fields["quiz_current_question_index"] = *p.CurrentQuestionIndex
		}
		if p.StartTime != nil {
			fields["quiz_start_time"] = *p.StartTime
		}
		if p.IsLocked != nil {
			fields["quiz_is_locked"] = *p.IsLocked
		}
		if p.IsFinished != nil {
			fields["quiz_is_finished"] = *p.IsFinished
		}
		if p.Score != nil {
			fields["quiz_score"] = *p.Score
		}
	}
	if len(fields) == 0 {
		return g, nil
	}

	found, err := s.repo.Patch(g.ID, fields)
	if err != nil {
		log.WithError(err).Error("Failed to update group")
		return nil, err
	}
	if !found {
		return nil, ErrGroupNotFound
	}
	return s.Get(ctx, id)
}

func (s *groupService) Delete(ctx context.Context, id string) error {
	log := config.WithContext(ctx)
	if _, err := parseUUID(log, id); err != nil {
		return err
	}

	deleted, err := s.repo.Delete(id)
	if err != nil {
		log.WithError(err).Error("Failed to delete group")
		return err
	}
	if !deleted {
		return ErrGroupNotFound
	}
	log.WithField("group_id", id).Info("Group deleted")
	return nil
}

func (s *groupService) ClearAttempts(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteAll()
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to clear attempts")
		return 0, err
	}
	return n, nil
}

func (s *groupService) RecordViolation(ctx context.Context, groupID string, violationType string, at time.Time) (*Group, error) {
	log := config.WithContext(ctx)

	id, err := parseUUID(log, groupID)
	if err != nil {
		return nil, err
	}
	if at.IsZero() {
		at = s.now()
	}

	g, err := s.repo.RecordViolation(id, ViolationLog{Type: violationType, Timestamp: at}, s.threshold)
	if err != nil {
		log.WithError(err).Error("Failed to record violation")
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}

	log.WithFields(logrus.Fields{
		"group_id":        g.ID,
		"type":            violationType,
		"violation_count": g.ViolationCount,
		"heavy_violator":  g.ViolatedMultipleTimes,
	}).Warn("Violation recorded")
	return g, nil
}

func (s *groupService) Unlock(ctx context.Context, groupID string) (*Group, error) {
	log := config.WithContext(ctx)

	g, err := s.Get(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetLocked(g.ID, false); err != nil {
		log.WithError(err).Error("Failed to unlock group")
		return nil, err
	}
	g.QuizState.IsLocked = false

	log.WithField("group_id", g.ID).Info("Group unlocked")
	return g, nil
}

func (s *groupService) HeavyViolators(ctx context.Context) ([]HeavyViolator, error) {
	groups, err := s.repo.ListHeavyViolators()
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list heavy violators")
		return nil, err
	}

	out := make([]HeavyViolator, 0, len(groups))
	for _, g := range groups {
		out = append(out, HeavyViolator{
			GroupID:         g.ID,
			GroupIdentifier: g.GroupID,
			Students:        g.StudentNames(),
			ViolationCount:  g.ViolationCount,
		})
	}
	return out, nil
}

func (s *groupService) ListFinished(ctx context.Context) ([]*Group, error) {
	groups, err := s.repo.ListFinished()
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list finished groups")
		return nil, err
	}
	return groups, nil
}

// MarkFinished stores the result with a single conditional write, so a
// concurrent violation keeps its counter and only one submission wins.
func (s *groupService) MarkFinished(ctx context.Context, groupID string, quizID uuid.UUID, score, totalQuestions int) (*Group, error) {
	log := config.WithContext(ctx)

	id, err := parseUUID(log, groupID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	finished, err := s.repo.Finish(id, QuizState{
		Score:                &score,
		IsFinished:           true,
		CurrentQuestionIndex: totalQuestions,
		QuizID:               &quizID,
		FinishedAt:           &now,
	})
	if err != nil {
		log.WithError(err).Error("Failed to save quiz result")
		return nil, err
	}
	if !finished {
		g, err := s.repo.GetByID(groupID)
		if err != nil {
			return nil, err
		}
		if g == nil {
			return nil, ErrGroupNotFound
		}
		return nil, ErrQuizAlreadySubmitted
	}

	log.WithFields(logrus.Fields{"group_id": id, "score": score}).Info("Quiz result saved")
	return s.Get(ctx, groupID)
}
