package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/fadilmartias/labour-intake/internal/model"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type LabourProfileGormRepository struct {
	db *gorm.DB
}

func NewLabourProfileRepository(db *gorm.DB) *LabourProfileGormRepository {
	return &LabourProfileGormRepository{db}
}

func (r *LabourProfileGormRepository) Create(ctx context.Context, profile *model.LabourProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *LabourProfileGormRepository) FindByID(ctx context.Context, id string) (*model.LabourProfile, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var profile model.LabourProfile
	err = r.db.WithContext(ctx).Omit("embedding").First(&profile, "id = ?", uid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *LabourProfileGormRepository) Update(ctx context.Context, id string, update model.ProfileUpdate) (*model.LabourProfile, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if !update.Empty() {
		res := r.db.WithContext(ctx).
			Model(&model.LabourProfile{}).
			Where("id = ?", uid).
			Updates(update.Columns())
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return r.FindByID(ctx, uid.String())
}

func (r *LabourProfileGormRepository) Search(ctx context.Context, filter ProfileFilter) ([]model.LabourProfile, int64, error) {
	filter = filter.Normalize()

	query := r.db.WithContext(ctx).
		Model(&model.LabourProfile{}).
		Where("status = ?", model.ProfileStatusEvaluated)
	if filter.Trade != "" {
		query = query.Where("trade ILIKE ?", likePattern(filter.Trade))
	}
	if filter.Location != "" {
		query = query.Where("location ILIKE ?", likePattern(filter.Location))
	}
	if filter.MinExperience != nil {
		query = query.Where("experience >= ?", *filter.MinExperience)
	}
	if lo, hi, ok := filter.salaryBounds(); ok {
		query = query.Where("salary_min <= ? AND salary_max >= ?", hi, lo)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profiles []model.LabourProfile
	err := query.
		Omit("embedding").
		Order("total_score DESC").
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&profiles).Error
	return profiles, total, err
}

// SearchSimilar orders by pgvector cosine distance (<=>).
func (r *LabourProfileGormRepository) SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]model.LabourProfile, error) {
	if limit < 1 {
		limit = DefaultPageSize
	}
	vector := pgvector.NewVector(embedding)

	var profiles []model.LabourProfile
	err := r.db.WithContext(ctx).Raw(`
        SELECT *
        FROM labour_profiles
        WHERE status = ? AND embedding IS NOT NULL
        ORDER BY embedding <=> ?
        LIMIT ?
    `, model.ProfileStatusEvaluated, vector, min(limit, MaxPageSize)).Scan(&profiles).Error
	for i := range profiles {
		profiles[i].Embedding = nil
	}
	return profiles, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
