package quiz

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/quiz-proctor/internal/auth"
	"github.com/saulo-duarte/quiz-proctor/internal/config"
	"github.com/saulo-duarte/quiz-proctor/internal/group"
)

type Handler struct {
	service QuizService
}

func NewHandler(s QuizService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) GetActive(w http.ResponseWriter, r *http.Request) {
	q, err := h.service.GetActive(r.Context())
	if err != nil {
		if errors.Is(err, ErrNoActiveQuiz) {
			config.Error(w, http.StatusNotFound, "No active quiz found")
			return
		}
		config.Error(w, http.StatusInternalServerError, "Error fetching quiz")
		return
	}
	config.JSON(w, http.StatusOK, q)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil || claims.Role != auth.RoleGroup {
		config.Error(w, http.StatusForbidden, "Group token required")
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Invalid submission body")
		config.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.GroupID != "" && req.GroupID != claims.UserID {
		log.WithField("body_group_id", req.GroupID).Warn("Submission for another group rejected")
		config.Error(w, http.StatusForbidden, "Cannot submit for another group")
		return
	}

	if err := h.service.Submit(r.Context(), claims.UserID, req.Answers); err != nil {
		switch {
		case errors.Is(err, ErrNoActiveQuiz):
			config.Error(w, http.StatusNotFound, "No active quiz found")
		case errors.Is(err, group.ErrGroupNotFound), errors.Is(err, group.ErrInvalidID):
			config.Error(w, http.StatusNotFound, "Group not found")
		case errors.Is(err, group.ErrQuizAlreadySubmitted):
			config.Error(w, http.StatusConflict, "Quiz already submitted")
		default:
			config.Error(w, http.StatusInternalServerError, "Error submitting answers")
		}
		return
	}

	config.JSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Quiz submitted successfully",
		"submitted": true,
	})
}

func (h *Handler) Results(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.Results(r.Context())
	if err != nil {
		config.Error(w, http.StatusInternalServerError, "Error fetching results")
		return
	}
	config.JSON(w, http.StatusOK, results)
}

func (h *Handler) ExportResults(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	filename := fmt.Sprintf("quiz-results-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.service.ExportResults(r.Context(), w); err != nil {
		log.WithError(err).Error("Failed to export results")
		config.Error(w, http.StatusInternalServerError, "Error exporting results")
	}
}

func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Activate(r.Context(), id); err != nil {
		if errors.Is(err, ErrQuizNotFound) {
			config.Error(w, http.StatusNotFound, "Quiz not found")
			return
		}
		config.Error(w, http.StatusInternalServerError, "Error activating quiz")
		return
	}
	config.JSON(w, http.StatusOK, map[string]string{"message": "Quiz activated"})
}
