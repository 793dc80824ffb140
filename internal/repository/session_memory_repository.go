package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/fadilmartias/labour-intake/internal/model"
	"github.com/google/uuid"
)

type SessionMemoryRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]model.ConversationSession
}

func NewSessionMemoryRepository() *SessionMemoryRepository {
	return &SessionMemoryRepository{sessions: map[uuid.UUID]model.ConversationSession{}}
}

func (r *SessionMemoryRepository) Create(_ context.Context, session *model.ConversationSession) error {
	session.EnsureID()
	now := time.Now()
	session.CreatedAt, session.UpdatedAt = now, now

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sessions[session.ID]; exists {
		return fmt.Errorf("session %s already exists", session.ID)
	}
	r.sessions[session.ID] = cloneSession(session)
	return nil
}

func (r *SessionMemoryRepository) FindByID(_ context.Context, id string) (*model.ConversationSession, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[uid]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneSession(&session)
	return &out, nil
}

func (r *SessionMemoryRepository) Save(_ context.Context, session *model.ConversationSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[session.ID]; !ok {
		return ErrNotFound
	}
	session.UpdatedAt = time.Now()
	r.sessions[session.ID] = cloneSession(session)
	return nil
}

func cloneSession(s *model.ConversationSession) model.ConversationSession {
	out := *s
	out.Questions = slices.Clone(s.Questions)
	out.Answers = slices.Clone(s.Answers)
	return out
}
