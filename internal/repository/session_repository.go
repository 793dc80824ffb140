package repository

import (
	"context"
	"errors"

	"github.com/fadilmartias/labour-intake/internal/model"
	"gorm.io/gorm"
)

type SessionGormRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionGormRepository {
	return &SessionGormRepository{db}
}

func (r *SessionGormRepository) Create(ctx context.Context, session *model.ConversationSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *SessionGormRepository) FindByID(ctx context.Context, id string) (*model.ConversationSession, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var session model.ConversationSession
	err = r.db.WithContext(ctx).First(&session, "id = ?", uid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionGormRepository) Save(ctx context.Context, session *model.ConversationSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}
