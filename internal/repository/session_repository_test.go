package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/fadilmartias/labour-intake/internal/model"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func newTestSession() *model.ConversationSession {
	return &model.ConversationSession{
		InitialMessage: "I am a plumber",
		Language:       "english",
		Trade:          "plumber",
		Questions:      []string{"b1", "b2", "b3", "b4", "w1"},
		Answers:        []string{},
		Status:         model.SessionStatusCollecting,
	}
}

// exerciseSessionStore runs the contract every session store must honour.
func exerciseSessionStore(t *testing.T, repo SessionRepository) {
	ctx := context.Background()

	session := newTestSession()
	require.NoError(t, repo.Create(ctx, session))
	require.NotEqual(t, uuid.Nil, session.ID)

	found, err := repo.FindByID(ctx, session.ID.String())
	require.NoError(t, err)
	assert.Equal(t, session.Questions, found.Questions)
	assert.Equal(t, model.SessionStatusCollecting, found.Status)
	assert.Empty(t, found.Answers)

	require.NoError(t, found.Complete([]string{"Ram"}))
	require.NoError(t, repo.Save(ctx, found))

	completed, err := repo.FindByID(ctx, session.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.SessionStatusCompleted, completed.Status)
	assert.Len(t, completed.Answers, len(session.Questions))

	_, err = repo.FindByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.FindByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionMemoryRepository(t *testing.T) {
	exerciseSessionStore(t, NewSessionMemoryRepository())
}

func TestSessionMemoryRepositoryIsolatesCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionMemoryRepository()
	session := newTestSession()
	require.NoError(t, repo.Create(ctx, session))

	found, err := repo.FindByID(ctx, session.ID.String())
	require.NoError(t, err)
	found.Questions[0] = "changed"
	found.Status = model.SessionStatusCompleted

	again, err := repo.FindByID(ctx, session.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "b1", again.Questions[0])
	assert.Equal(t, model.SessionStatusCollecting, again.Status)

	assert.ErrorIs(t, repo.Save(ctx, &model.ConversationSession{ID: uuid.New()}), ErrNotFound)
}

func TestSessionRedisRepository(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	exerciseSessionStore(t, NewSessionRedisRepository(client, time.Hour))
}

func TestSessionRedisRepositoryExpiry(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	repo := NewSessionRedisRepository(client, time.Minute)

	session := newTestSession()
	require.NoError(t, repo.Create(ctx, session))
	assert.Equal(t, time.Minute, mr.TTL(sessionKey(session.ID.String())))

	mr.FastForward(2 * time.Minute)

	_, err := repo.FindByID(ctx, session.ID.String())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Save(ctx, session), ErrNotFound)
	assert.False(t, mr.Exists(sessionKey(session.ID.String())))
}

func TestSessionGormRepositoryNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSessionRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "conversation_sessions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.FindByID(context.Background(), "42")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
