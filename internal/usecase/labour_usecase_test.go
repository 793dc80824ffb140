package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/fadilmartias/labour-intake/internal/intake"
	"github.com/fadilmartias/labour-intake/internal/model"
	"github.com/fadilmartias/labour-intake/internal/repository"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type embeddingFunc func(ctx context.Context, text string) ([]float32, error)

func (f embeddingFunc) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return f(ctx, text)
}

func ptr[T any](v T) *T { return &v }

func seedProfiles(t *testing.T, repo *repository.LabourProfileMemoryRepository) (plumber, electrician *model.LabourProfile) {
	t.Helper()
	ctx := context.Background()

	plumberVec := pgvector.NewVector([]float32{1, 0, 0})
	plumber = &model.LabourProfile{
		Name: "Ram", Trade: "plumber", Location: "Pune", Experience: 5, TotalScore: 60,
		SalaryRange: model.SalaryRange{Min: ptr(15000), Max: ptr(20000)},
		Status:      model.ProfileStatusEvaluated, Embedding: &plumberVec,
	}
	electricianVec := pgvector.NewVector([]float32{0, 1, 0})
	electrician = &model.LabourProfile{
		Name: "Suresh", Trade: "electrician", Location: "Mumbai", Experience: 2, TotalScore: 85,
		Status: model.ProfileStatusEvaluated, Embedding: &electricianVec,
	}
	require.NoError(t, repo.Create(ctx, plumber))
	require.NoError(t, repo.Create(ctx, electrician))
	return plumber, electrician
}

func TestLabourSearch(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewLabourProfileMemoryRepository()
	seedProfiles(t, repo)
	uc := NewLabourUsecase(repo, nil, nil)

	all, total, err := uc.Search(ctx, repository.ProfileFilter{}.Normalize())
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "Suresh", all[0].Name)

	found, _, err := uc.Search(ctx, repository.ProfileFilter{MinSalary: ptr(18000)}.Normalize())
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Ram", found[0].Name)

	_, _, err = uc.Search(ctx, repository.ProfileFilter{MinExperience: ptr(-1)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = uc.Search(ctx, repository.ProfileFilter{MinSalary: ptr(500), MaxSalary: ptr(100)})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "minSalary")
}

func TestLabourGet(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewLabourProfileMemoryRepository()
	plumber, _ := seedProfiles(t, repo)
	uc := NewLabourUsecase(repo, nil, nil)

	got, err := uc.Get(ctx, plumber.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Ram", got.Name)

	_, err = uc.Get(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrProfileNotFound)

	_, err = uc.Get(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestLabourUpdate(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewLabourProfileMemoryRepository()
	plumber, _ := seedProfiles(t, repo)
	uc := NewLabourUsecase(repo, nil, nil)

	updated, err := uc.Update(ctx, plumber.ID.String(), model.ProfileUpdate{
		Name:        ptr("  Ram Kumar "),
		Phone:       ptr("+91 98765-43210"),
		Trade:       ptr("Pipe Fitter"),
		SalaryRange: &model.SalaryRange{Min: ptr(18000), Max: ptr(22000)},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ram Kumar", updated.Name)
	assert.Equal(t, "9876543210", updated.Phone)
	assert.Equal(t, "pipe fitter", updated.Trade)
	assert.Equal(t, 22000, *updated.SalaryRange.Max)
	assert.Equal(t, "Pune", updated.Location)
	assert.Equal(t, 60, updated.TotalScore)

	_, err = uc.Update(ctx, uuid.NewString(), model.ProfileUpdate{Name: ptr("x")})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestLabourUpdateValidation(t *testing.T) {
	tests := []struct {
		name   string
		update model.ProfileUpdate
		field  string
	}{
		{"blank name", model.ProfileUpdate{Name: ptr("  ")}, "name"},
		{"phone without digits", model.ProfileUpdate{Phone: ptr("call me")}, "phone"},
		{"negative experience", model.ProfileUpdate{Experience: ptr(-2)}, "experience"},
		{"half salary", model.ProfileUpdate{SalaryRange: &model.SalaryRange{Min: ptr(100)}}, "salaryRange"},
		{"inverted salary", model.ProfileUpdate{SalaryRange: &model.SalaryRange{Min: ptr(500), Max: ptr(100)}}, "salaryRange"},
	}
	repo := repository.NewLabourProfileMemoryRepository()
	plumber, _ := seedProfiles(t, repo)
	uc := NewLabourUsecase(repo, nil, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Update(context.Background(), plumber.ID.String(), tt.update)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestMatchByEmbedding(t *testing.T) {
	repo := repository.NewLabourProfileMemoryRepository()
	_, electrician := seedProfiles(t, repo)
	embedder := intake.NewEmbedder(embeddingFunc(func(context.Context, string) ([]float32, error) {
		return []float32{0.1, 0.9, 0}, nil
	}), intake.Options{})
	uc := NewLabourUsecase(repo, embedder, nil)

	result, err := uc.Match(context.Background(), "need someone for house wiring", 1)
	require.NoError(t, err)
	assert.Equal(t, MatchStrategyEmbedding, result.Strategy)
	require.Len(t, result.Profiles, 1)
	assert.Equal(t, electrician.ID, result.Profiles[0].ID)
}

func TestMatchFallsBackToKeywords(t *testing.T) {
	repo := repository.NewLabourProfileMemoryRepository()
	plumber, _ := seedProfiles(t, repo)
	embedder := intake.NewEmbedder(embeddingFunc(func(context.Context, string) ([]float32, error) {
		return nil, errors.New("quota exceeded")
	}), intake.Options{})
	uc := NewLabourUsecase(repo, embedder, nil)

	result, err := uc.Match(context.Background(), "Looking for a plumber to fix a pipe leak", 0)
	require.NoError(t, err)
	assert.Equal(t, MatchStrategyKeyword, result.Strategy)
	require.Len(t, result.Profiles, 1)
	assert.Equal(t, plumber.ID, result.Profiles[0].ID)

	_, err = uc.Match(context.Background(), " ", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
