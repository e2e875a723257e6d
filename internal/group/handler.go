package group

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/saulo-duarte/quiz-proctor/internal/auth"
	"github.com/saulo-duarte/quiz-proctor/internal/config"
)

type Handler struct {
	service GroupService
}

func NewHandler(service GroupService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Invalid login body")
		config.Error(w, http.StatusBadRequest, "Three student credentials required")
		return
	}

	resp, err := h.service.Login(r.Context(), req.Credentials)
	if err != nil {
		status, msg := loginFailure(err)
		if status == http.StatusInternalServerError {
			log.WithError(err).Error("Group login failed")
		} else {
			log.WithError(err).Info("Group login rejected")
		}
		config.Error(w, status, msg)
		return
	}

	config.JSON(w, http.StatusOK, resp)
}

func loginFailure(err error) (int, string) {
	var credErr *CredentialError
	if errors.As(err, &credErr) {
		switch {
		case errors.Is(err, ErrUnknownStudent):
			return http.StatusUnauthorized, fmt.Sprintf("TechZite ID %s not found", credErr.TechziteID)
		case errors.Is(err, ErrWrongPhone):
			return http.StatusUnauthorized, fmt.Sprintf("Incorrect phone number for %s", credErr.TechziteID)
		}
	}

	switch {
	case errors.Is(err, ErrCredentialCount):
		return http.StatusBadRequest, "Three student credentials required"
	case errors.Is(err, ErrDuplicateStudent):
		return http.StatusBadRequest, "Three different students required"
	case errors.Is(err, ErrAlreadyParticipated):
		return http.StatusForbidden, "One or more members have already completed the quiz in another group. Login denied."
	case errors.Is(err, ErrQuizAlreadySubmitted):
		return http.StatusForbidden, "Quiz already submitted. You cannot login again."
	}
	return http.StatusInternalServerError, "Internal server error"
}

// State returns the caller's quiz state so a reconnecting client can resume.
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil || claims.Role != auth.RoleGroup {
		config.Error(w, http.StatusForbidden, "Group token required")
		return
	}

	g, err := h.service.Get(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, ErrGroupNotFound) || errors.Is(err, ErrInvalidID) {
			config.Error(w, http.StatusNotFound, "Group not found")
			return
		}
		log.WithError(err).Error("Failed to load quiz state")
		config.Error(w, http.StatusInternalServerError, "Error loading quiz state")
		return
	}

	config.JSON(w, http.StatusOK, map[string]interface{}{
		"groupId":        g.ID,
		"quizState":      g.QuizState,
		"violationCount": g.ViolationCount,
	})
}

func (h *Handler) HeavyViolators(w http.ResponseWriter, r *http.Request) {
	violators, err := h.service.HeavyViolators(r.Context())
	if err != nil {
		config.Error(w, http.StatusInternalServerError, "Error fetching heavy violators")
		return
	}
	config.JSON(w, http.StatusOK, violators)
}
