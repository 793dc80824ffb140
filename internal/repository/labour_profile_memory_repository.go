package repository

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/fadilmartias/labour-intake/internal/model"
	"github.com/google/uuid"
)

// LabourProfileMemoryRepository serves the same queries as the Postgres store,
// including cosine similarity, over an in-process map.
type LabourProfileMemoryRepository struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]*model.LabourProfile
}

func NewLabourProfileMemoryRepository() *LabourProfileMemoryRepository {
	return &LabourProfileMemoryRepository{profiles: map[uuid.UUID]*model.LabourProfile{}}
}

func (r *LabourProfileMemoryRepository) Create(_ context.Context, profile *model.LabourProfile) error {
	profile.EnsureID()
	now := time.Now()
	profile.CreatedAt, profile.UpdatedAt = now, now

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.profiles[profile.ID]; exists {
		return fmt.Errorf("profile %s already exists", profile.ID)
	}
	stored := cloneProfile(profile, true)
	r.profiles[profile.ID] = &stored
	return nil
}

func (r *LabourProfileMemoryRepository) FindByID(_ context.Context, id string) (*model.LabourProfile, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[uid]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneProfile(p, false)
	return &out, nil
}

func (r *LabourProfileMemoryRepository) Update(_ context.Context, id string, update model.ProfileUpdate) (*model.LabourProfile, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[uid]
	if !ok {
		return nil, ErrNotFound
	}
	if !update.Empty() {
		update.Apply(p)
		p.UpdatedAt = time.Now()
	}
	out := cloneProfile(p, false)
	return &out, nil
}

func (r *LabourProfileMemoryRepository) Search(_ context.Context, filter ProfileFilter) ([]model.LabourProfile, int64, error) {
	filter = filter.Normalize()

	r.mu.RLock()
	matched := make([]*model.LabourProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		if filter.Matches(p) {
			matched = append(matched, p)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].TotalScore != matched[j].TotalScore {
			return matched[i].TotalScore > matched[j].TotalScore
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := min(filter.Offset(), len(matched))
	end := min(start+filter.PageSize, len(matched))
	page := make([]model.LabourProfile, 0, end-start)
	for _, p := range matched[start:end] {
		page = append(page, cloneProfile(p, false))
	}
	return page, total, nil
}

func (r *LabourProfileMemoryRepository) SearchSimilar(_ context.Context, embedding []float32, limit int) ([]model.LabourProfile, error) {
	if limit < 1 {
		limit = DefaultPageSize
	}
	type scored struct {
		profile  *model.LabourProfile
		distance float64
	}

	r.mu.RLock()
	candidates := make([]scored, 0, len(r.profiles))
	for _, p := range r.profiles {
		if p.Status != model.ProfileStatusEvaluated || p.Embedding == nil {
			continue
		}
		d, ok := cosineDistance(embedding, p.Embedding.Slice())
		if !ok {
			continue
		}
		candidates = append(candidates, scored{profile: p, distance: d})
	}
	r.mu.RUnlock()

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})
	out := make([]model.LabourProfile, 0, min(limit, len(candidates)))
	for _, c := range candidates[:min(limit, MaxPageSize, len(candidates))] {
		out = append(out, cloneProfile(c.profile, false))
	}
	return out, nil
}

// cosineDistance is 1 - cos(a, b), the value pgvector's <=> returns.
func cosineDistance(a, b []float32) (float64, bool) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, false
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0, false
	}
	return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb)), true
}

func cloneProfile(p *model.LabourProfile, withEmbedding bool) model.LabourProfile {
	out := *p
	out.Skills = slices.Clone(p.Skills)
	out.Languages = slices.Clone(p.Languages)
	out.Questions = slices.Clone(p.Questions)
	out.Answers = slices.Clone(p.Answers)
	out.Strengths = slices.Clone(p.Strengths)
	out.Weaknesses = slices.Clone(p.Weaknesses)
	out.Recommendations = slices.Clone(p.Recommendations)
	out.Embedding = nil
	if withEmbedding && p.Embedding != nil {
		v := *p.Embedding
		out.Embedding = &v
	}
	if p.SessionID != nil {
		sid := *p.SessionID
		out.SessionID = &sid
	}
	return out
}
