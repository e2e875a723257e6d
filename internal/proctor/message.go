package proctor

import (
	"encoding/json"
	"time"
)

const (
	TypeViolation = "violation"
	TypeAlert     = "admin-violation-alert"
	TypeUnlocked  = "quiz-unlocked"
	TypePing      = "ping"
	TypePong      = "pong"
	TypeError     = "error"
)

// Message is the envelope for every frame on the socket.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func NewMessage(msgType string, payload interface{}) (Message, error) {
	if payload == nil {
		return Message{Type: msgType}, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: msgType, Payload: raw}, nil
}

type ViolationPayload struct {
	Type         string   `json:"type"`
	GroupID      string   `json:"groupId"`
	StudentNames []string `json:"studentNames"`
	Timestamp    string   `json:"timestamp"`
}

// At parses the client timestamp, falling back to now when it is missing or
// malformed.
func (v ViolationPayload) At(now time.Time) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, v.Timestamp); err == nil {
			return t
		}
	}
	return now
}

type UnlockRequest struct {
	GroupID string `json:"groupId" validate:"required"`
}

type UnlockedPayload struct {
	GroupID string `json:"groupId"`
}
