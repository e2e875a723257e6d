package container

import (
	"context"
	"fmt"

	"github.com/saulo-duarte/quiz-proctor/internal/aiquiz"
	"github.com/saulo-duarte/quiz-proctor/internal/auth"
	"github.com/saulo-duarte/quiz-proctor/internal/config"
	"github.com/saulo-duarte/quiz-proctor/internal/group"
	"github.com/saulo-duarte/quiz-proctor/internal/proctor"
	"github.com/saulo-duarte/quiz-proctor/internal/quiz"
	"github.com/saulo-duarte/quiz-proctor/internal/resource"
	"github.com/saulo-duarte/quiz-proctor/internal/router"
	"github.com/saulo-duarte/quiz-proctor/internal/student"
	"gorm.io/gorm"
)

type Container struct {
	AuthHandler       *auth.Handler
	StudentContainer  *student.StudentContainer
	GroupContainer    *group.GroupContainer
	QuizContainer     *quiz.QuizContainer
	ProctorContainer  *proctor.ProctorContainer
	ResourceContainer *resource.ResourceContainer
	AIQuizContainer   *aiquiz.AIQuizContainer
}

// Bootstrap loads configuration and opens the database and, when
// configured, Redis. Every entry point calls it first.
func Bootstrap(ctx context.Context) error {
	config.Init()
	auth.Init()
	config.InitCrypto()

	if err := config.Connect(ctx, config.Conf.GetString("database_dsn")); err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err := config.ConnectRedis(ctx); err != nil {
		return err
	}
	return nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&student.Student{},
		&group.Group{},
		&group.ViolationLog{},
		&quiz.Quiz{},
		&quiz.Question{},
	)
}

// New wires every domain container. Bootstrap must have run.
func New(ctx context.Context) *Container {
	studentContainer := student.NewStudentContainer(config.DB)
	groupContainer := group.NewGroupContainer(config.DB, studentContainer.Service)
	quizContainer := quiz.NewQuizContainer(config.DB, groupContainer.Service)
	proctorContainer := proctor.NewProctorContainer(groupContainer.Service, config.Redis)
	resourceContainer := resource.NewResourceContainer(
		studentContainer.Service,
		groupContainer.Service,
		quizContainer.Service,
	)
	aiQuizContainer := aiquiz.NewAIQuizContainer(ctx)

	return &Container{
		AuthHandler:       auth.NewHandler(),
		StudentContainer:  studentContainer,
		GroupContainer:    groupContainer,
		QuizContainer:     quizContainer,
		ProctorContainer:  proctorContainer,
		ResourceContainer: resourceContainer,
		AIQuizContainer:   aiQuizContainer,
	}
}

func (c *Container) Router(enableWebsocket bool) router.RouterConfig {
	return router.RouterConfig{
		AuthHandler:     c.AuthHandler,
		StudentHandler:  c.StudentContainer.Handler,
		GroupHandler:    c.GroupContainer.Handler,
		QuizHandler:     c.QuizContainer.Handler,
		ProctorHandler:  c.ProctorContainer.Handler,
		ResourceHandler: c.ResourceContainer.Handler,
		AIQuizHandler:   c.AIQuizContainer.Handler,
		EnableWebsocket: enableWebsocket,
	}
}
