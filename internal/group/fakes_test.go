package group_test

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/saulo-duarte/quiz-proctor/internal/group"
	"github.com/saulo-duarte/quiz-proctor/internal/student"
)

type fakeStudents struct {
	student.StudentService
	byTechzite map[string]*student.Student
}

func newFakeStudents(seed ...*student.Student) *fakeStudents {
	f := &fakeStudents{byTechzite: map[string]*student.Student{}}
	for _, s := range seed {
		f.byTechzite[s.TechziteID] = s
	}
	return f
}

func (f *fakeStudents) FindByTechziteID(_ context.Context, id string) (*student.Student, error) {
	s, ok := f.byTechzite[strings.ToUpper(strings.TrimSpace(id))]
	if !ok {
		return nil, student.ErrStudentNotFound
	}
	return s, nil
}

func (f *fakeStudents) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*student.Student, error) {
	var out []*student.Student
	for _, id := range ids {
		for _, s := range f.byTechzite {
			if s.ID == id {
				out = append(out, s)
			}
		}
	}
	return out, nil
}

type fakeGroups struct {
	byID map[uuid.UUID]*group.Group
}

func newFakeGroups(seed ...*group.Group) *fakeGroups {
	f := &fakeGroups{byID: map[uuid.UUID]*group.Group{}}
	for _, g := range seed {
		f.byID[g.ID] = g
	}
	return f
}

func (f *fakeGroups) List() ([]*group.Group, error) {
	var out []*group.Group
	for _, g := range f.byID {
		out = append(out, g)
	}
	return out, nil
}

func (f *fakeGroups) GetByID(id string) (*group.Group, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	return f.byID[uid], nil
}

func (f *fakeGroups) GetByIdentifier(identifier string) (*group.Group, error) {
	for _, g := range f.byID {
		if g.GroupID == identifier {
			return g, nil
		}
	}
	return nil, nil
}

func (f *fakeGroups) FindFinishedContaining(ids []uuid.UUID) (*group.Group, error) {
	for _, g := range f.byID {
		if !g.QuizState.IsFinished {
			continue
		}
		for _, s := range g.Students {
			for _, id := range ids {
				if s.ID == id {
					return g, nil
				}
			}
		}
	}
	return nil, nil
}

func (f *fakeGroups) CreateIfAbsent(g *group.Group) (*group.Group, error) {
	if existing, _ := f.GetByIdentifier(g.GroupID); existing != nil {
		return existing, nil
	}
	f.byID[g.ID] = g
	return g, nil
}

func (f *fakeGroups) Patch(id uuid.UUID, fields map[string]interface{}) (bool, error) {
	g, ok := f.byID[id]
	if !ok {
		return false, nil
	}
	for column, v := range fields {
		switch column {
		case "violation_count":
			g.ViolationCount = v.(int)
		case "violated_multiple_times":
			g.ViolatedMultipleTimes = v.(bool)
		case "quiz_current_question_index":
			g.QuizState.CurrentQuestionIndex = v.(int)
		case "quiz_start_time":
			t := v.(time.Time)
			g.QuizState.StartTime = &t
		case "quiz_is_locked":
			g.QuizState.IsLocked = v.(bool)
		case "quiz_is_finished":
			g.QuizState.IsFinished = v.(bool)
		case "quiz_score":
			score := v.(int)
			g.QuizState.Score = &score
		default:
			return false, fmt.Errorf("unknown column %q", column)
		}
	}
	return true, nil
}

func (f *fakeGroups) Finish(id uuid.UUID, state group.QuizState) (bool, error) {
	g, ok := f.byID[id]
	if !ok || g.QuizState.IsFinished {
		return false, nil
	}
	g.QuizState.Score = state.Score
	g.QuizState.IsFinished = true
	g.QuizState.CurrentQuestionIndex = state.CurrentQuestionIndex
	g.QuizState.QuizID = state.QuizID
	g.QuizState.FinishedAt = state.FinishedAt
	return true, nil
}

func (f *fakeGroups) Delete(id string) (bool, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}
	_, ok := f.byID[uid]
	delete(f.byID, uid)
	return ok, nil
}

func (f *fakeGroups) DeleteAll() (int64, error) {
	n := int64(len(f.byID))
	f.byID = map[uuid.UUID]*group.Group{}
	return n, nil
}

func (f *fakeGroups) RecordViolation(id uuid.UUID, entry group.ViolationLog, threshold int) (*group.Group, error) {
	g, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	g.ViolationCount++
	g.ViolatedMultipleTimes = g.ViolatedMultipleTimes || g.ViolationCount > threshold
	g.QuizState.IsLocked = true
	entry.GroupID = id
	g.ViolationLogs = append(g.ViolationLogs, entry)
	return g, nil
}

func (f *fakeGroups) SetLocked(id uuid.UUID, locked bool) error {
	if g, ok := f.byID[id]; ok {
		g.QuizState.IsLocked = locked
	}
	return nil
}

func (f *fakeGroups) ListHeavyViolators() ([]*group.Group, error) {
	var out []*group.Group
	for _, g := range f.byID {
		if g.ViolatedMultipleTimes {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGroups) ListFinished() ([]*group.Group, error) {
	var out []*group.Group
	for _, g := range f.byID {
		if g.QuizState.IsFinished {
			out = append(out, g)
		}
	}
	return out, nil
}

func trio() []*student.Student {
	return []*student.Student{
		{ID: uuid.New(), TechziteID: "TZ1", Name: "Ana", PhoneNumber: "111"},
		{ID: uuid.New(), TechziteID: "TZ2", Name: "Bruno", PhoneNumber: "222"},
		{ID: uuid.New(), TechziteID: "TZ3", Name: "Carla", PhoneNumber: "333"},
	}
}

func credsFor(students []*student.Student) []group.Credential {
	out := make([]group.Credential, len(students))
	for i, s := range students {
		out[i] = group.Credential{TechziteID: strings.ToLower(s.TechziteID), PhoneNumber: s.PhoneNumber}
	}
	return out
}
