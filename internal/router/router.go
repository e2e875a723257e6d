package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/saulo-duarte/quiz-proctor/internal/aiquiz"
	"github.com/saulo-duarte/quiz-proctor/internal/auth"
	"github.com/saulo-duarte/quiz-proctor/internal/group"
	"github.com/saulo-duarte/quiz-proctor/internal/middlewares"
	"github.com/saulo-duarte/quiz-proctor/internal/proctor"
	"github.com/saulo-duarte/quiz-proctor/internal/quiz"
	"github.com/saulo-duarte/quiz-proctor/internal/resource"
	"github.com/saulo-duarte/quiz-proctor/internal/student"
)

type RouterConfig struct {
	AuthHandler     *auth.Handler
	StudentHandler  *student.Handler
	GroupHandler    *group.Handler
	QuizHandler     *quiz.Handler
	ProctorHandler  *proctor.Handler
	ResourceHandler *resource.Handler
	AIQuizHandler   *aiquiz.Handler

	// Websockets need a long-lived process; the Lambda entry leaves this off.
	EnableWebsocket bool
}

func New(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("API is healthy"))
	})

	if cfg.EnableWebsocket {
		r.Get("/ws", cfg.ProctorHandler.ServeWS)
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/group-login", cfg.GroupHandler.Login)

		r.Mount("/quiz", quiz.Routes(cfg.QuizHandler, cfg.GroupHandler.State))

		r.Route("/admin", func(r chi.Router) {
			r.Post("/authenticate", cfg.AuthHandler.AuthenticateAdmin)
			r.Post("/login", cfg.AuthHandler.AuthenticateAdmin)

			r.Group(func(r chi.Router) {
				r.Use(auth.AuthMiddleware)
				r.Use(auth.RequireRole(auth.RoleAdmin))

				r.Post("/upload-students", cfg.StudentHandler.UploadStudents)
				r.Post("/unlock-group", cfg.ProctorHandler.UnlockGroup)
				r.Get("/heavy-violators", cfg.GroupHandler.HeavyViolators)
				r.Get("/results/export", cfg.QuizHandler.ExportResults)
				r.Post("/quizzes/{id}/activate", cfg.QuizHandler.Activate)
				r.Mount("/resources", resource.Routes(cfg.ResourceHandler))
				r.Mount("/ai-questions", aiquiz.Routes(cfg.AIQuizHandler))
			})
		})
	})

	return r
}
