package aiquiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/saulo-duarte/quiz-proctor/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) GenerateDrafts(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req DraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := config.Validate(req); err != nil {
		config.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	drafts, err := h.service.GenerateDrafts(r.Context(), req)
	if err != nil {
		log.WithError(err).Error("Failed to generate question drafts")
		switch {
		case errors.Is(err, ErrUnavailable):
			config.Error(w, http.StatusServiceUnavailable, "Question generator not configured")
		case errors.Is(err, ErrNoDrafts):
			config.Error(w, http.StatusBadGateway, "Model returned no usable questions")
		default:
			config.Error(w, http.StatusBadGateway, "Failed to generate questions")
		}
		return
	}

	config.JSON(w, http.StatusOK, drafts)
}
