package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/fadilmartias/labour-intake/internal/model"
	"github.com/google/uuid"
)

// ErrNotFound is returned for unknown and malformed ids alike.
var ErrNotFound = errors.New("record not found")

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	defaultMaxSalary = 999999
)

type SessionRepository interface {
	Create(ctx context.Context, session *model.ConversationSession) error
	FindByID(ctx context.Context, id string) (*model.ConversationSession, error)
	// Save writes the whole session in one operation.
	Save(ctx context.Context, session *model.ConversationSession) error
}

type LabourProfileRepository interface {
	Create(ctx context.Context, profile *model.LabourProfile) error
	FindByID(ctx context.Context, id string) (*model.LabourProfile, error)
	Update(ctx context.Context, id string, update model.ProfileUpdate) (*model.LabourProfile, error)
	// Search returns one page of evaluated profiles, best score first, and the total match count.
	Search(ctx context.Context, filter ProfileFilter) ([]model.LabourProfile, int64, error)
	// SearchSimilar returns evaluated profiles nearest to embedding by cosine distance.
	SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]model.LabourProfile, error)
}

// ProfileFilter selects evaluated profiles. Trade and Location are case-insensitive
// substring matches; the salary bounds select ranges that overlap [MinSalary, MaxSalary].
type ProfileFilter struct {
	Trade         string
	Location      string
	MinExperience *int
	MinSalary     *int
	MaxSalary     *int
	Page          int
	PageSize      int
}

// Normalize fills in paging defaults.
func (f ProfileFilter) Normalize() ProfileFilter {
	f.Trade = strings.TrimSpace(f.Trade)
	f.Location = strings.TrimSpace(f.Location)
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	f.PageSize = min(f.PageSize, MaxPageSize)
	return f
}

func (f ProfileFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

func (f ProfileFilter) salaryBounds() (lo, hi int, ok bool) {
	if f.MinSalary == nil && f.MaxSalary == nil {
		return 0, 0, false
	}
	lo, hi = 0, defaultMaxSalary
	if f.MinSalary != nil {
		lo = *f.MinSalary
	}
	if f.MaxSalary != nil {
		hi = *f.MaxSalary
	}
	return lo, hi, true
}

// Matches applies the filter to one profile.
func (f ProfileFilter) Matches(p *model.LabourProfile) bool {
	if p.Status != model.ProfileStatusEvaluated {
		return false
	}
	if f.Trade != "" && !containsFold(p.Trade, f.Trade) {
		return false
	}
	if f.Location != "" && !containsFold(p.Location, f.Location) {
		return false
	}
	if f.MinExperience != nil && p.Experience < *f.MinExperience {
		return false
	}
	if lo, hi, ok := f.salaryBounds(); ok {
		s := p.SalaryRange
		if s.Min == nil || s.Max == nil || *s.Min > hi || *s.Max < lo {
			return false
		}
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return uuid.Nil, ErrNotFound
	}
	return parsed, nil
}
