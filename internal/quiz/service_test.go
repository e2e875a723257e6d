package quiz_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/quiz-proctor/internal/group"
	"github.com/saulo-duarte/quiz-proctor/internal/quiz"
	"github.com/saulo-duarte/quiz-proctor/internal/student"
)

func activeQuiz() *quiz.Quiz {
	return &quiz.Quiz{
		ID:        uuid.New(),
		Title:     "Event",
		Questions: sampleQuestions(),
		Settings:  quiz.DefaultSettings(),
		IsActive:  true,
	}
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("ScoresAndFinishes", func(t *testing.T) {
		q := activeQuiz()
		g := &group.Group{ID: uuid.New(), GroupID: "g"}
		svc := quiz.NewService(newFakeRepo(q), newFakeGroups(g))

		require.NoError(t, svc.Submit(ctx, g.ID.String(), []int{1, 0, 0}))

		assert.True(t, g.QuizState.IsFinished)
		assert.Equal(t, 2, *g.QuizState.Score)
		assert.Equal(t, 3, g.QuizState.CurrentQuestionIndex)
		assert.Equal(t, q.ID, *g.QuizState.QuizID)
	})

	t.Run("NoActiveQuiz", func(t *testing.T) {
		g := &group.Group{ID: uuid.New()}
		svc := quiz.NewService(newFakeRepo(), newFakeGroups(g))

		err := svc.Submit(ctx, g.ID.String(), []int{1})
		assert.ErrorIs(t, err, quiz.ErrNoActiveQuiz)
		assert.False(t, g.QuizState.IsFinished)
	})

	t.Run("SecondSubmissionRejected", func(t *testing.T) {
		g := &group.Group{ID: uuid.New()}
		svc := quiz.NewService(newFakeRepo(activeQuiz()), newFakeGroups(g))

		require.NoError(t, svc.Submit(ctx, g.ID.String(), []int{1, 3, 0}))
		err := svc.Submit(ctx, g.ID.String(), []int{0, 0, 0})
		assert.ErrorIs(t, err, group.ErrQuizAlreadySubmitted)
		assert.Equal(t, 4, *g.QuizState.Score)
	})
}

func TestGetActive(t *testing.T) {
	ctx := context.Background()

	_, err := quiz.NewService(newFakeRepo(), newFakeGroups()).GetActive(ctx)
	assert.ErrorIs(t, err, quiz.ErrNoActiveQuiz)

	q := activeQuiz()
	safe, err := quiz.NewService(newFakeRepo(q), newFakeGroups()).GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, q.ID, safe.ID)
	assert.Len(t, safe.Questions, 3)
}

func TestCreateAndActivate(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := quiz.NewService(repo, newFakeGroups())

	dto := quiz.NewCreateQuizDTO()
	dto.Title = "First"
	dto.IsActive = true
	dto.Questions = []quiz.QuestionInput{{Text: "q", Options: []string{"a", "b"}, CorrectAnswer: 1}}

	first, err := svc.Create(ctx, dto)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Questions[0].Points)
	assert.True(t, first.Settings.IsFullScreenMandatory)

	dto.Title = "Second"
	second, err := svc.Create(ctx, dto)
	require.NoError(t, err)
	assert.False(t, first.IsActive)
	assert.True(t, second.IsActive)

	require.NoError(t, svc.Activate(ctx, first.ID.String()))
	assert.True(t, first.IsActive)
	assert.False(t, second.IsActive)

	assert.ErrorIs(t, svc.Activate(ctx, uuid.NewString()), quiz.ErrQuizNotFound)

	t.Run("RejectsOutOfRangeAnswer", func(t *testing.T) {
		bad := quiz.NewCreateQuizDTO()
		bad.Title = "Bad"
		bad.Questions = []quiz.QuestionInput{{Text: "q", Options: []string{"a", "b"}, CorrectAnswer: 2}}

		_, err := svc.Create(ctx, bad)
		assert.ErrorIs(t, err, quiz.ErrInvalidQuestion)
	})
}

func TestResultsAndExport(t *testing.T) {
	ctx := context.Background()
	q := activeQuiz()
	q.Questions = append(q.Questions, quiz.Question{Text: "q4", Options: []string{"a", "b"}, CorrectAnswer: 0})

	score := 3
	finished := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	g := &group.Group{
		ID:      uuid.New(),
		GroupID: "g",
		Students: []*student.Student{
			{Name: "Ana", TechziteID: "TZ1"},
			{Name: "Bruno", TechziteID: "TZ2"},
		},
		QuizState: group.QuizState{IsFinished: true, Score: &score, QuizID: &q.ID, FinishedAt: &finished},
	}
	svc := quiz.NewService(newFakeRepo(q), newFakeGroups(g))

	results, err := svc.Results(ctx)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 4, results[0].TotalQuestions)
	assert.Equal(t, finished, results[0].FinishedAt)
	assert.Equal(t, quiz.ResultStudent{Name: "Ana", ID: "TZ1"}, results[0].Students[0])

	var buf bytes.Buffer
	require.NoError(t, svc.ExportResults(ctx, &buf))
	assert.Equal(t, "Rank,Students,Score,Percentage\n1,Ana | Bruno,3/4,75.0%\n", buf.String())
}
