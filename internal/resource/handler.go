package resource

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/quiz-proctor/internal/config"
	"github.com/saulo-duarte/quiz-proctor/internal/group"
	"github.com/saulo-duarte/quiz-proctor/internal/quiz"
	"github.com/saulo-duarte/quiz-proctor/internal/student"
	"gorm.io/gorm"
)

type Handler struct {
	registry Registry
}

func NewHandler(registry Registry) *Handler {
	return &Handler{registry: registry}
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (Resource, bool) {
	res, err := h.registry.Lookup(chi.URLParam(r, "resource"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "Invalid resource type")
		return nil, false
	}
	return res, true
}

func writeFailure(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, ErrBadBody), errors.Is(err, quiz.ErrInvalidQuestion):
		config.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, student.ErrStudentNotFound),
		errors.Is(err, group.ErrGroupNotFound),
		errors.Is(err, group.ErrInvalidID),
		errors.Is(err, quiz.ErrQuizNotFound):
		config.Error(w, http.StatusNotFound, "Resource not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		config.Error(w, http.StatusConflict, "Resource already exists")
	default:
		config.WithContext(r.Context()).WithError(err).Error(fallback)
		config.Error(w, http.StatusInternalServerError, fallback)
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	res, ok := h.lookup(w, r)
	if !ok {
		return
	}
	data, err := res.List(r.Context())
	if err != nil {
		writeFailure(w, r, err, "Error fetching data")
		return
	}
	config.JSON(w, http.StatusOK, data)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	res, ok := h.lookup(w, r)
	if !ok {
		return
	}
	item, err := res.Create(r.Context(), r.Body)
	if err != nil {
		writeFailure(w, r, err, "Error creating item")
		return
	}
	config.JSON(w, http.StatusCreated, item)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	res, ok := h.lookup(w, r)
	if !ok {
		return
	}
	item, err := res.Update(r.Context(), chi.URLParam(r, "id"), r.Body)
	if err != nil {
		writeFailure(w, r, err, "Error updating item")
		return
	}
	config.JSON(w, http.StatusOK, item)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	res, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if err := res.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeFailure(w, r, err, "Error deleting item")
		return
	}
	config.JSON(w, http.StatusOK, map[string]string{"message": "Deleted successfully"})
}
