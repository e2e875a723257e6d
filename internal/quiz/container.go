package quiz

import (
	"github.com/saulo-duarte/quiz-proctor/internal/group"
	"gorm.io/gorm"
)

type QuizContainer struct {
	Handler *Handler
	Service QuizService
	Repo    QuizRepository
}

func NewQuizContainer(db *gorm.DB, groups group.GroupService) *QuizContainer {
	repo := NewRepository(db)
	service := NewService(repo, groups)
	handler := NewHandler(service)

	return &QuizContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
