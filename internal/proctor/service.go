package proctor

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/saulo-duarte/quiz-proctor/internal/config"
	"github.com/saulo-duarte/quiz-proctor/internal/group"
	"github.com/sirupsen/logrus"
)

var ErrBadPayload = errors.New("violation payload must be a JSON object")

type ProctorService interface {
	// HandleViolation records a violation for groupID (or the payload's
	// groupId when groupID is empty) and alerts every socket. Debounced
	// duplicates are dropped silently.
	HandleViolation(ctx context.Context, groupID string, raw json.RawMessage) error
	Unlock(ctx context.Context, groupID string) error
}

type proctorService struct {
	groups      group.GroupService
	debouncer   Debouncer
	broadcaster Broadcaster
	now         func() time.Time
}

func NewService(groups group.GroupService, debouncer Debouncer, broadcaster Broadcaster) ProctorService {
	return &proctorService{
		groups:      groups,
		debouncer:   debouncer,
		broadcaster: broadcaster,
		now:         time.Now,
	}
}

func (s *proctorService) HandleViolation(ctx context.Context, groupID string, raw json.RawMessage) error {
	log := config.WithContext(ctx)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return ErrBadPayload
	}

	var v ViolationPayload
	if err := json.Unmarshal(raw, &v); err != nil {
		return ErrBadPayload
	}
	if groupID != "" && groupID != v.GroupID {
		patched, err := withGroupID(fields, groupID)
		if err != nil {
			return err
		}
		raw = patched
		v.GroupID = groupID
	}

	log = log.WithFields(logrus.Fields{"group_id": v.GroupID, "type": v.Type})

	allowed, err := s.debouncer.Allow(ctx, v.GroupID+":"+v.Type)
	if err != nil {
		log.WithError(err).Warn("Debounce check failed, accepting violation")
		allowed = true
	}
	if !allowed {
		log.Debug("Duplicate violation dropped")
		return nil
	}

	_, err = s.groups.RecordViolation(ctx, v.GroupID, v.Type, v.At(s.now()))
	switch {
	case errors.Is(err, group.ErrGroupNotFound), errors.Is(err, group.ErrInvalidID):
		log.Warn("Violation for unknown group, alert only")
	case err != nil:
		return err
	}

	return s.broadcaster.Publish(ctx, Message{Type: TypeAlert, Payload: raw})
}

func withGroupID(fields map[string]json.RawMessage, groupID string) (json.RawMessage, error) {
	id, err := json.Marshal(groupID)
	if err != nil {
		return nil, err
	}
	fields["groupId"] = id
	return json.Marshal(fields)
}

func (s *proctorService) Unlock(ctx context.Context, groupID string) error {
	g, err := s.groups.Unlock(ctx, groupID)
	if err != nil {
		return err
	}

	msg, err := NewMessage(TypeUnlocked, UnlockedPayload{GroupID: g.ID.String()})
	if err != nil {
		return err
	}
	if err := s.broadcaster.Publish(ctx, msg); err != nil {
		config.WithContext(ctx).WithError(err).Warn("Failed to broadcast unlock")
	}
	return nil
}
