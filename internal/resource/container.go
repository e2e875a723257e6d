package resource

import (
	"github.com/saulo-duarte/quiz-proctor/internal/group"
	"github.com/saulo-duarte/quiz-proctor/internal/quiz"
	"github.com/saulo-duarte/quiz-proctor/internal/student"
)

type ResourceContainer struct {
	Handler  *Handler
	Registry Registry
}

func NewRegistry(students student.StudentService, groups group.GroupService, quizzes quiz.QuizService) Registry {
	return Registry{
		"students": Collection[*student.Student, student.CreateStudentDTO, student.UpdateStudentDTO]{
			ListFn:   students.List,
			CreateFn: students.Create,
			UpdateFn: students.Update,
			DeleteFn: students.Delete,
		},
		"groups": Collection[*group.Group, group.CreateGroupDTO, group.UpdateGroupDTO]{
			ListFn:   groups.List,
			CreateFn: groups.Create,
			UpdateFn: groups.Update,
			DeleteFn: groups.Delete,
		},
		"quizzes": Collection[*quiz.Quiz, quiz.CreateQuizDTO, quiz.UpdateQuizDTO]{
			ListFn:    quizzes.List,
			CreateFn:  quizzes.Create,
			UpdateFn:  quizzes.Update,
			DeleteFn:  quizzes.Delete,
			NewCreate: quiz.NewCreateQuizDTO,
		},
	}
}

func NewResourceContainer(students student.StudentService, groups group.GroupService, quizzes quiz.QuizService) *ResourceContainer {
	registry := NewRegistry(students, groups, quizzes)
	return &ResourceContainer{
		Handler:  NewHandler(registry),
		Registry: registry,
	}
}
