package student

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/saulo-duarte/quiz-proctor/internal/config"
)

const maxUploadSize = 10 << 20

type Handler struct {
	service StudentService
}

func NewHandler(s StudentService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) UploadStudents(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		log.WithError(err).Warn("Invalid roster upload")
		config.Error(w, http.StatusBadRequest, "No file uploaded")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		config.Error(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	rows, err := ParseRoster(header.Filename, file)
	if err != nil {
		log.WithError(err).WithField("filename", header.Filename).Warn("Failed to parse roster")
		if errors.Is(err, ErrUnsupportedFormat) {
			config.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		config.Error(w, http.StatusBadRequest, "Could not read uploaded file")
		return
	}

	count, err := h.service.ImportRoster(r.Context(), rows)
	if err != nil {
		if errors.Is(err, ErrNoValidRows) {
			config.Error(w, http.StatusBadRequest, "No valid student data found. Expected columns: techziteId, name, email, phoneNumber")
			return
		}
		config.Error(w, http.StatusInternalServerError, "Error uploading students")
		return
	}

	config.JSON(w, http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("Successfully uploaded %d students", count),
		"count":   count,
	})
}
