package quiz_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/saulo-duarte/quiz-proctor/internal/auth"
	"github.com/saulo-duarte/quiz-proctor/internal/group"
	"github.com/saulo-duarte/quiz-proctor/internal/quiz"
)

func withClaims(r *http.Request, claims *auth.UserClaims) *http.Request {
	return r.WithContext(auth.WithUserClaims(context.Background(), claims))
}

func TestSubmitHandler(t *testing.T) {
	q := activeQuiz()
	mine := &group.Group{ID: uuid.New()}
	done := &group.Group{ID: uuid.New(), QuizState: group.QuizState{IsFinished: true}}
	h := quiz.NewHandler(quiz.NewService(newFakeRepo(q), newFakeGroups(mine, done)))

	tests := []struct {
		name     string
		claims   *auth.UserClaims
		body     string
		wantCode int
		wantBody string
	}{
		{
			name:     "Accepted",
			claims:   &auth.UserClaims{UserID: mine.ID.String(), Role: auth.RoleGroup},
			body:     `{"groupId":"` + mine.ID.String() + `","answers":[1,3,0]}`,
			wantCode: http.StatusOK,
			wantBody: `{"message":"Quiz submitted successfully","submitted":true}`,
		},
		{
			name:     "OtherGroupInBody",
			claims:   &auth.UserClaims{UserID: mine.ID.String(), Role: auth.RoleGroup},
			body:     `{"groupId":"` + done.ID.String() + `","answers":[]}`,
			wantCode: http.StatusForbidden,
		},
		{
			name:     "AlreadySubmitted",
			claims:   &auth.UserClaims{UserID: done.ID.String(), Role: auth.RoleGroup},
			body:     `{"answers":[1]}`,
			wantCode: http.StatusConflict,
		},
		{
			name:     "UnknownGroup",
			claims:   &auth.UserClaims{UserID: uuid.NewString(), Role: auth.RoleGroup},
			body:     `{"answers":[1]}`,
			wantCode: http.StatusNotFound,
			wantBody: `{"message":"Group not found"}`,
		},
		{
			name:     "AdminToken",
			claims:   &auth.UserClaims{UserID: "admin", Role: auth.RoleAdmin},
			body:     `{"answers":[1]}`,
			wantCode: http.StatusForbidden,
		},
		{
			name:     "BadBody",
			claims:   &auth.UserClaims{UserID: mine.ID.String(), Role: auth.RoleGroup},
			body:     `{`,
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withClaims(httptest.NewRequest(http.MethodPost, "/api/quiz/submit", strings.NewReader(tt.body)), tt.claims)
			rec := httptest.NewRecorder()

			h.Submit(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestGetActiveHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	quiz.NewHandler(quiz.NewService(newFakeRepo(), newFakeGroups())).
		GetActive(rec, httptest.NewRequest(http.MethodGet, "/api/quiz/active", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"No active quiz found"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	quiz.NewHandler(quiz.NewService(newFakeRepo(activeQuiz()), newFakeGroups())).
		GetActive(rec, httptest.NewRequest(http.MethodGet, "/api/quiz/active", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "correctAnswer")
}
