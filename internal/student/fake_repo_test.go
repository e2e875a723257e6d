package student_test

import (
	"sort"

	"github.com/google/uuid"

	"github.com/saulo-duarte/quiz-proctor/internal/student"
)

type fakeRepo struct {
	byID map[uuid.UUID]*student.Student
}

func newFakeRepo(seed ...*student.Student) *fakeRepo {
	r := &fakeRepo{byID: map[uuid.UUID]*student.Student{}}
	for _, s := range seed {
		r.byID[s.ID] = s
	}
	return r
}

func (r *fakeRepo) List() ([]*student.Student, error) {
	out := make([]*student.Student, 0, len(r.byID))
	for _, s := range r.byID {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TechziteID < out[j].TechziteID })
	return out, nil
}

func (r *fakeRepo) GetByID(id string) (*student.Student, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	return r.byID[uid], nil
}

func (r *fakeRepo) GetByTechziteID(techziteID string) (*student.Student, error) {
	for _, s := range r.byID {
		if s.TechziteID == student.NormalizeTechziteID(techziteID) {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) GetByIDs(ids []uuid.UUID) ([]*student.Student, error) {
	var out []*student.Student
	for _, id := range ids {
		if s, ok := r.byID[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeRepo) Create(s *student.Student) error {
	r.byID[s.ID] = s
	return nil
}

func (r *fakeRepo) Update(s *student.Student) error {
	r.byID[s.ID] = s
	return nil
}

func (r *fakeRepo) Delete(id string) (bool, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}
	_, ok := r.byID[uid]
	delete(r.byID, uid)
	return ok, nil
}

func (r *fakeRepo) ReplaceAll(students []*student.Student) (int, error) {
	r.byID = map[uuid.UUID]*student.Student{}
	seen := map[string]bool{}
	for _, s := range students {
		if seen[s.TechziteID] {
			continue
		}
		seen[s.TechziteID] = true
		r.byID[s.ID] = s
	}
	return len(r.byID), nil
}

func (r *fakeRepo) DeleteAll() (int64, error) {
	n := int64(len(r.byID))
	r.byID = map[uuid.UUID]*student.Student{}
	return n, nil
}
