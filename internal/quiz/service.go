package quiz

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/saulo-duarte/quiz-proctor/internal/config"
	"github.com/saulo-duarte/quiz-proctor/internal/group"
	"github.com/sirupsen/logrus"
)

var (
	ErrQuizNotFound    = errors.New("quiz not found")
	ErrNoActiveQuiz    = errors.New("no active quiz")
	ErrInvalidQuestion = errors.New("correct answer must index one of the options")
)

type QuizService interface {
	GetActive(ctx context.Context) (*SafeQuiz, error)
	Submit(ctx context.Context, groupID string, answers []int) error
	Results(ctx context.Context) ([]Result, error)
	ExportResults(ctx context.Context, w io.Writer) error

	List(ctx context.Context) ([]*Quiz, error)
	Get(ctx context.Context, id string) (*Quiz, error)
	Create(ctx context.Context, dto CreateQuizDTO) (*Quiz, error)
	Update(ctx context.Context, id string, dto UpdateQuizDTO) (*Quiz, error)
	Delete(ctx context.Context, id string) error
	Activate(ctx context.Context, id string) error
	Reset(ctx context.Context, dto CreateQuizDTO) (*Quiz, error)
}

type quizService struct {
	repo   QuizRepository
	groups group.GroupService
}

func NewService(repo QuizRepository, groups group.GroupService) QuizService {
	return &quizService{repo: repo, groups: groups}
}

func (s *quizService) GetActive(ctx context.Context) (*SafeQuiz, error) {
	q, err := s.repo.GetActive()
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to fetch active quiz")
		return nil, err
	}
	if q == nil {
		return nil, ErrNoActiveQuiz
	}
	return Safe(q), nil
}

func (s *quizService) Submit(ctx context.Context, groupID string, answers []int) error {
	log := config.WithContext(ctx)

	q, err := s.repo.GetActive()
	if err != nil {
		log.WithError(err).Error("Failed to fetch active quiz")
		return err
	}
	if q == nil {
		return ErrNoActiveQuiz
	}

	score := Grade(q.Questions, answers)
	if _, err := s.groups.MarkFinished(ctx, groupID, q.ID, score, len(q.Questions)); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"group_id": groupID,
		"quiz_id":  q.ID,
		"answered": len(answers),
	}).Info("Quiz submitted")
	return nil
}

func (s *quizService) Results(ctx context.Context) ([]Result, error) {
	log := config.WithContext(ctx)

	groups, err := s.groups.ListFinished(ctx)
	if err != nil {
		return nil, err
	}

	totals := map[uuid.UUID]int{}
	totalFor := func(id *uuid.UUID) (int, error) {
		if id == nil {
			return 0, nil
		}
		if n, ok := totals[*id]; ok {
			return n, nil
		}
		q, err := s.repo.GetByID(id.String())
		if err != nil {
			return 0, err
		}
		n := 0
		if q != nil {
			n = len(q.Questions)
		}
		totals[*id] = n
		return n, nil
	}

	results := make([]Result, 0, len(groups))
	for _, g := range groups {
		total, err := totalFor(g.QuizState.QuizID)
		if err != nil {
			log.WithError(err).Error("Failed to load quiz for results")
			return nil, err
		}

		students := make([]ResultStudent, 0, len(g.Students))
		for _, st := range g.Students {
			students = append(students, ResultStudent{Name: st.Name, ID: st.TechziteID})
		}

		r := Result{
			GroupID:         g.ID,
			GroupIdentifier: g.GroupID,
			Students:        students,
			TotalQuestions:  total,
		}
		if g.QuizState.Score != nil {
			r.Score = *g.QuizState.Score
		}
		switch {
		case g.QuizState.FinishedAt != nil:
			r.FinishedAt = *g.QuizState.FinishedAt
		case g.QuizState.StartTime != nil:
			r.FinishedAt = *g.QuizState.StartTime
		default:
			r.FinishedAt = g.UpdatedAt
		}
		results = append(results, r)
	}
	return results, nil
}

// ExportResults writes the leaderboard as CSV: Rank,Students,Score,Percentage.
func (s *quizService) ExportResults(ctx context.Context, w io.Writer) error {
	results, err := s.Results(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Rank", "Students", "Score", "Percentage"}); err != nil {
		return err
	}
	for i, r := range results {
		names := make([]string, len(r.Students))
		for j, st := range r.Students {
			names[j] = st.Name
		}
		pct := 0.0
		if r.TotalQuestions > 0 {
			pct = float64(r.Score) / float64(r.TotalQuestions) * 100
		}
		row := []string{
			strconv.Itoa(i + 1),
			strings.Join(names, " | "),
			fmt.Sprintf("%d/%d", r.Score, r.TotalQuestions),
			fmt.Sprintf("%.1f%%", pct),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *quizService) List(ctx context.Context) ([]*Quiz, error) {
	quizzes, err := s.repo.List()
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list quizzes")
		return nil, err
	}
	return quizzes, nil
}

func (s *quizService) Get(ctx context.Context, id string) (*Quiz, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrQuizNotFound
	}
	q, err := s.repo.GetByID(id)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to get quiz")
		return nil, err
	}
	if q == nil {
		return nil, ErrQuizNotFound
	}
	return q, nil
}

func buildQuestions(inputs []QuestionInput) ([]Question, error) {
	questions := make([]Question, len(inputs))
	for i, in := range inputs {
		if in.CorrectAnswer < 0 || in.CorrectAnswer >= len(in.Options) {
			return nil, fmt.Errorf("question %d: %w", i+1, ErrInvalidQuestion)
		}
		points := in.Points
		if points == 0 {
			points = 1
		}
		questions[i] = Question{
			Text:          in.Text,
			Options:       in.Options,
			CorrectAnswer: in.CorrectAnswer,
			Points:        points,
			OrderIndex:    i,
		}
	}
	return questions, nil
}

func (s *quizService) Create(ctx context.Context, dto CreateQuizDTO) (*Quiz, error) {
	log := config.WithContext(ctx)

	questions, err := buildQuestions(dto.Questions)
	if err != nil {
		return nil, err
	}

	q := &Quiz{
		ID:        uuid.New(),
		Title:     dto.Title,
		Questions: questions,
		Settings:  dto.Settings,
		IsActive:  dto.IsActive,
	}
	if err := s.repo.Create(q); err != nil {
		log.WithError(err).Error("Failed to create quiz")
		return nil, err
	}

	log.WithFields(logrus.Fields{"quiz_id": q.ID, "questions": len(questions)}).Info("Quiz created")
	return q, nil
}

func (s *quizService) Update(ctx context.Context, id string, dto UpdateQuizDTO) (*Quiz, error) {
	log := config.WithContext(ctx)

	q, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if dto.Title != nil {
		q.Title = *dto.Title
	}
	if dto.Settings != nil {
		q.Settings = *dto.Settings
	}
	if dto.IsActive != nil {
		q.IsActive = *dto.IsActive
	}
	replace := dto.Questions != nil
	if replace {
		questions, err := buildQuestions(*dto.Questions)
		if err != nil {
			return nil, err
		}
		q.Questions = questions
	}

	if err := s.repo.Update(q, replace); err != nil {
		log.WithError(err).Error("Failed to update quiz")
		return nil, err
	}
	return q, nil
}

func (s *quizService) Delete(ctx context.Context, id string) error {
	log := config.WithContext(ctx)
	if _, err := uuid.Parse(id); err != nil {
		return ErrQuizNotFound
	}

	deleted, err := s.repo.Delete(id)
	if err != nil {
		log.WithError(err).Error("Failed to delete quiz")
		return err
	}
	if !deleted {
		return ErrQuizNotFound
	}
	log.WithField("quiz_id", id).Info("Quiz deleted")
	return nil
}

func (s *quizService) Activate(ctx context.Context, id string) error {
	log := config.WithContext(ctx)
	if _, err := uuid.Parse(id); err != nil {
		return ErrQuizNotFound
	}

	found, err := s.repo.Activate(id)
	if err != nil {
		log.WithError(err).Error("Failed to activate quiz")
		return err
	}
	if !found {
		return ErrQuizNotFound
	}
	log.WithField("quiz_id", id).Info("Quiz activated")
	return nil
}

// Reset drops every stored quiz and creates dto as the only one.
func (s *quizService) Reset(ctx context.Context, dto CreateQuizDTO) (*Quiz, error) {
	if _, err := buildQuestions(dto.Questions); err != nil {
		return nil, err
	}
	if err := s.repo.DeleteAll(); err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to clear quizzes")
		return nil, err
	}
	return s.Create(ctx, dto)
}
