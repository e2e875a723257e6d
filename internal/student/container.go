package student

import "gorm.io/gorm"

type StudentContainer struct {
	Handler *Handler
	Service StudentService
	Repo    StudentRepository
}

func NewStudentContainer(db *gorm.DB) *StudentContainer {
	repo := NewRepository(db)
	service := NewService(repo)
	handler := NewHandler(service)

	return &StudentContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
