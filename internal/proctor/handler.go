package proctor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/saulo-duarte/quiz-proctor/internal/auth"
	"github.com/saulo-duarte/quiz-proctor/internal/config"
	"github.com/saulo-duarte/quiz-proctor/internal/group"
)

type Handler struct {
	hub      *Hub
	service  ProctorService
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub, service ProctorService) *Handler {
	return &Handler{
		hub:     hub,
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return config.OriginAllowed(r.Header.Get("Origin"))
			},
		},
	}
}

// ServeWS upgrades the connection. A token is optional; when present it must
// be valid, and a group token pins the socket to that group.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var groupID string
	if token := auth.TokenFromRequest(r); token != "" {
		claims, err := auth.ValidateJWT(token)
		if err != nil {
			config.Error(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		if claims.Role == auth.RoleGroup {
			groupID = claims.UserID
		}
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("Websocket upgrade failed")
		return
	}

	c := newClient(h.hub, conn, groupID)
	if !h.hub.attach(c) {
		conn.Close()
		return
	}
	log.WithField("group_id", groupID).Info("Socket connected")

	// The request context ends when this handler returns.
	ctx := context.WithoutCancel(r.Context())
	go c.writePump()
	go c.readPump(ctx, h.dispatch)
}

func (h *Handler) dispatch(ctx context.Context, c *Client, msg Message) {
	log := config.WithContext(ctx)

	switch msg.Type {
	case TypePing:
		if err := h.hub.sendTo(c, Message{Type: TypePong}); err != nil {
			log.WithError(err).Warn("Failed to answer ping")
		}

	case TypeViolation:
		if err := h.service.HandleViolation(ctx, c.GroupID, msg.Payload); err != nil {
			log.WithError(err).Error("Violation handling failed")
			errMsg, _ := NewMessage(TypeError, map[string]string{"message": "Violation not recorded"})
			h.hub.sendTo(c, errMsg)
		}

	default:
		log.WithField("type", msg.Type).Debug("Ignoring unknown socket message")
	}
}

func (h *Handler) UnlockGroup(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req UnlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := config.Validate(req); err != nil {
		config.Error(w, http.StatusBadRequest, "groupId is required")
		return
	}

	if err := h.service.Unlock(r.Context(), req.GroupID); err != nil {
		if errors.Is(err, group.ErrGroupNotFound) || errors.Is(err, group.ErrInvalidID) {
			config.Error(w, http.StatusNotFound, "Group not found")
			return
		}
		log.WithError(err).Error("Unlock failed")
		config.Error(w, http.StatusInternalServerError, "Error unlocking group")
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{"message": "Group unlocked successfully"})
}
