package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fadilmartias/labour-intake/internal/intake"
	"github.com/fadilmartias/labour-intake/internal/logger"
	"github.com/fadilmartias/labour-intake/internal/model"
	"github.com/fadilmartias/labour-intake/internal/repository"
	"go.uber.org/zap"
)

const (
	MatchStrategyEmbedding = "embedding"
	MatchStrategyKeyword   = "keyword"

	defaultMatchLimit = 10
)

type LabourUsecase struct {
	profiles repository.LabourProfileRepository
	embedder *intake.Embedder
	logger   *zap.Logger
}

func NewLabourUsecase(profiles repository.LabourProfileRepository, embedder *intake.Embedder, log *zap.Logger) *LabourUsecase {
	return &LabourUsecase{
		profiles: profiles,
		embedder: embedder,
		logger:   logger.Component(log, "labour_usecase"),
	}
}

// Search expects a normalized filter so callers can build pagination from it.
func (uc *LabourUsecase) Search(ctx context.Context, filter repository.ProfileFilter) ([]model.LabourProfile, int64, error) {
	fields := fieldErrors{}
	if filter.MinExperience != nil && *filter.MinExperience < 0 {
		fields["minExperience"] = "must not be negative"
	}
	if filter.MinSalary != nil && filter.MaxSalary != nil && *filter.MinSalary > *filter.MaxSalary {
		fields["minSalary"] = "must not exceed maxSalary"
	}
	if err := fields.err(); err != nil {
		return nil, 0, err
	}
	return uc.profiles.Search(ctx, filter)
}

func (uc *LabourUsecase) Get(ctx context.Context, id string) (*model.LabourProfile, error) {
	profile, err := uc.profiles.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProfileNotFound
	}
	return profile, err
}

// Update changes only identity and work fields; evaluation fields are not reachable.
func (uc *LabourUsecase) Update(ctx context.Context, id string, update model.ProfileUpdate) (*model.LabourProfile, error) {
	update, err := normalizeUpdate(update)
	if err != nil {
		return nil, err
	}
	profile, err := uc.profiles.Update(ctx, id, update)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	uc.logger.Info("profile updated", zap.String("profile_id", profile.ID.String()))
	return profile, nil
}

func normalizeUpdate(u model.ProfileUpdate) (model.ProfileUpdate, error) {
	fields := fieldErrors{}
	trimmed := func(key string, s *string) *string {
		if s == nil {
			return nil
		}
		v := strings.TrimSpace(*s)
		if v == "" {
			fields[key] = "must not be empty"
		}
		return &v
	}
	u.Name = trimmed("name", u.Name)
	u.Location = trimmed("location", u.Location)
	if u.Trade = trimmed("trade", u.Trade); u.Trade != nil {
		lower := strings.ToLower(*u.Trade)
		u.Trade = &lower
	}
	if u.Phone != nil {
		phone := intake.NormalizePhone(*u.Phone)
		if phone == "" && strings.TrimSpace(*u.Phone) != "" {
			fields["phone"] = "must contain digits"
		}
		u.Phone = &phone
	}
	if u.Experience != nil && *u.Experience < 0 {
		fields["experience"] = "must not be negative"
	}
	if s := u.SalaryRange; s != nil {
		switch {
		case (s.Min == nil) != (s.Max == nil):
			fields["salaryRange"] = "needs both min and max"
		case s.Min != nil && (*s.Min < 0 || *s.Max < 0):
			fields["salaryRange"] = "must not be negative"
		case s.Min != nil && *s.Min > *s.Max:
			fields["salaryRange"] = "min must not exceed max"
		}
	}
	return u, fields.err()
}

type MatchResult struct {
	Strategy string
	Profiles []model.LabourProfile
}

// Match finds workers for a job description by embedding similarity, degrading to
// a trade keyword search when no embedding is available.
func (uc *LabourUsecase) Match(ctx context.Context, description string, limit int) (*MatchResult, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, &ValidationError{Fields: map[string]string{"description": "is required"}}
	}
	if limit < 1 {
		limit = defaultMatchLimit
	}
	limit = min(limit, repository.MaxPageSize)

	if vector := uc.embedder.Embed(ctx, description); vector != nil {
		profiles, err := uc.profiles.SearchSimilar(ctx, vector, limit)
		if err != nil {
			uc.logger.Warn("similarity search failed, using keywords", zap.Error(err))
		} else if len(profiles) > 0 {
			return &MatchResult{Strategy: MatchStrategyEmbedding, Profiles: profiles}, nil
		}
	}

	filter := repository.ProfileFilter{PageSize: limit}
	if trade := intake.TradeFromKeywords(description); trade != intake.DefaultTrade {
		filter.Trade = trade
	}
	profiles, _, err := uc.profiles.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("keyword match: %w", err)
	}
	return &MatchResult{Strategy: MatchStrategyKeyword, Profiles: profiles}, nil
}
