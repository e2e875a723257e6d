package quiz_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/saulo-duarte/quiz-proctor/internal/group"
	"github.com/saulo-duarte/quiz-proctor/internal/quiz"
)

type fakeRepo struct {
	quizzes map[uuid.UUID]*quiz.Quiz
}

func newFakeRepo(seed ...*quiz.Quiz) *fakeRepo {
	r := &fakeRepo{quizzes: map[uuid.UUID]*quiz.Quiz{}}
	for _, q := range seed {
		r.quizzes[q.ID] = q
	}
	return r
}

func (r *fakeRepo) List() ([]*quiz.Quiz, error) {
	var out []*quiz.Quiz
	for _, q := range r.quizzes {
		out = append(out, q)
	}
	return out, nil
}

func (r *fakeRepo) GetByID(id string) (*quiz.Quiz, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	return r.quizzes[uid], nil
}

func (r *fakeRepo) GetActive() (*quiz.Quiz, error) {
	for _, q := range r.quizzes {
		if q.IsActive {
			return q, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) deactivateOthers(keep uuid.UUID) {
	for id, q := range r.quizzes {
		if id != keep {
			q.IsActive = false
		}
	}
}

func (r *fakeRepo) Create(q *quiz.Quiz) error {
	r.quizzes[q.ID] = q
	if q.IsActive {
		r.deactivateOthers(q.ID)
	}
	return nil
}

func (r *fakeRepo) Update(q *quiz.Quiz, _ bool) error {
	return r.Create(q)
}

func (r *fakeRepo) Delete(id string) (bool, error) {
	uid, _ := uuid.Parse(id)
	_, ok := r.quizzes[uid]
	delete(r.quizzes, uid)
	return ok, nil
}

func (r *fakeRepo) Activate(id string) (bool, error) {
	uid, _ := uuid.Parse(id)
	q, ok := r.quizzes[uid]
	if !ok {
		return false, nil
	}
	q.IsActive = true
	r.deactivateOthers(uid)
	return true, nil
}

func (r *fakeRepo) DeleteAll() error {
	r.quizzes = map[uuid.UUID]*quiz.Quiz{}
	return nil
}

type fakeGroups struct {
	group.GroupService
	groups map[string]*group.Group
}

func newFakeGroups(seed ...*group.Group) *fakeGroups {
	f := &fakeGroups{groups: map[string]*group.Group{}}
	for _, g := range seed {
		f.groups[g.ID.String()] = g
	}
	return f
}

func (f *fakeGroups) MarkFinished(_ context.Context, id string, quizID uuid.UUID, score, total int) (*group.Group, error) {
	g, ok := f.groups[id]
	if !ok {
		return nil, group.ErrGroupNotFound
	}
	if g.QuizState.IsFinished {
		return nil, group.ErrQuizAlreadySubmitted
	}
	now := time.Now()
	g.QuizState.Score = &score
	g.QuizState.IsFinished = true
	g.QuizState.CurrentQuestionIndex = total
	g.QuizState.QuizID = &quizID
	g.QuizState.FinishedAt = &now
	return g, nil
}

func (f *fakeGroups) ListFinished(context.Context) ([]*group.Group, error) {
	var out []*group.Group
	for _, g := range f.groups {
		if g.QuizState.IsFinished {
			out = append(out, g)
		}
	}
	return out, nil
}
