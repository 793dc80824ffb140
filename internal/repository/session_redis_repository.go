package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fadilmartias/labour-intake/internal/model"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "intake:session:"

// SessionRedisRepository keeps sessions as JSON with a TTL, so abandoned
// interviews expire on their own.
type SessionRedisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionRedisRepository(client *redis.Client, ttl time.Duration) *SessionRedisRepository {
	return &SessionRedisRepository{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func (r *SessionRedisRepository) Create(ctx context.Context, session *model.ConversationSession) error {
	session.EnsureID()
	now := time.Now()
	session.CreatedAt, session.UpdatedAt = now, now

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	created, err := r.client.SetNX(ctx, sessionKey(session.ID.String()), payload, r.ttl).Result()
	if err != nil {
		return err
	}
	if !created {
		return fmt.Errorf("session %s already exists", session.ID)
	}
	return nil
}

func (r *SessionRedisRepository) FindByID(ctx context.Context, id string) (*model.ConversationSession, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	payload, err := r.client.Get(ctx, sessionKey(uid.String())).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var session model.ConversationSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", uid, err)
	}
	return &session, nil
}

// Save overwrites an existing session and refreshes its TTL. A session that has
// already expired is not brought back.
func (r *SessionRedisRepository) Save(ctx context.Context, session *model.ConversationSession) error {
	session.UpdatedAt = time.Now()
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	ok, err := r.client.SetXX(ctx, sessionKey(session.ID.String()), payload, r.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
