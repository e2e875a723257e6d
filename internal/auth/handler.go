package auth

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/saulo-duarte/quiz-proctor/internal/config"
	"golang.org/x/crypto/bcrypt"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CheckAdminCredentials compares the username case-insensitively and the
// password either against ADMIN_PASSWORD_HASH (bcrypt) or ADMIN_PASSWORD.
// Surrounding whitespace is ignored on both sides.
func CheckAdminCredentials(username, password string) bool {
	validUsername := strings.ToLower(strings.TrimSpace(config.Conf.GetString("admin_username")))
	providedUsername := strings.ToLower(strings.TrimSpace(username))
	providedPassword := strings.TrimSpace(password)

	usernameMatch := subtle.ConstantTimeCompare([]byte(providedUsername), []byte(validUsername)) == 1

	var passwordMatch bool
	if hash := strings.TrimSpace(config.Conf.GetString("admin_password_hash")); hash != "" {
		passwordMatch = bcrypt.CompareHashAndPassword([]byte(hash), []byte(providedPassword)) == nil
	} else {
		validPassword := strings.TrimSpace(config.Conf.GetString("admin_password"))
		passwordMatch = subtle.ConstantTimeCompare([]byte(providedPassword), []byte(validPassword)) == 1
	}

	return usernameMatch && passwordMatch
}

func (h *Handler) AuthenticateAdmin(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Invalid admin login body")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	log.WithField("username", strings.TrimSpace(req.Username)).Info("Admin login attempt")

	if !CheckAdminCredentials(req.Username, req.Password) {
		log.Warn("Admin authentication failed")
		config.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))
	token, err := GenerateJWT(username, RoleAdmin, config.Conf.GetDuration("token_ttl"))
	if err != nil {
		log.WithError(err).Error("Failed to sign admin token")
		config.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	log.Info("Admin authenticated")
	config.JSON(w, http.StatusOK, map[string]string{
		"token":   token,
		"message": "Admin authenticated",
	})
}
