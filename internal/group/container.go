package group

import (
	"github.com/saulo-duarte/quiz-proctor/internal/config"
	"github.com/saulo-duarte/quiz-proctor/internal/student"
	"gorm.io/gorm"
)

type GroupContainer struct {
	Handler *Handler
	Service GroupService
	Repo    GroupRepository
}

func NewGroupContainer(db *gorm.DB, students student.StudentService) *GroupContainer {
	repo := NewRepository(db)
	service := NewService(
		repo,
		students,
		config.Conf.GetInt("heavy_violation_threshold"),
		config.Conf.GetDuration("token_ttl"),
	)
	handler := NewHandler(service)

	return &GroupContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
