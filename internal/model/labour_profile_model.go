package model

import (
	"strings"
	"time"

	"github.com/fadilmartias/labour-intake/internal/intake"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ProfileStatusPending   = "pending"
	ProfileStatusEvaluated = "evaluated"

	// EmbeddingDimensions matches gemini-embedding-001.
	EmbeddingDimensions = 3072
)

type SalaryRange struct {
	Min *int `gorm:"column:min" json:"min,omitempty"`
	Max *int `gorm:"column:max" json:"max,omitempty"`
}

type LabourProfile struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SessionID *uuid.UUID `gorm:"type:uuid;index" json:"sessionId,omitempty"`

	Name     string `gorm:"type:varchar(255)" json:"name"`
	Phone    string `gorm:"type:varchar(10)" json:"phone"`
	Age      *int   `json:"age,omitempty"`
	Location string `gorm:"type:varchar(255);index" json:"location"`

	Trade        string         `gorm:"type:varchar(100);index" json:"trade"`
	Experience   int            `json:"experience"`
	Skills       pq.StringArray `gorm:"type:text[]" json:"skills"`
	Languages    pq.StringArray `gorm:"type:text[]" json:"languages"`
	Availability string         `gorm:"type:text" json:"availability"`
	SalaryRange  SalaryRange    `gorm:"embedded;embeddedPrefix:salary_" json:"salaryRange"`

	Questions            pq.StringArray                              `gorm:"type:text[]" json:"questions,omitempty"`
	Answers              datatypes.JSONSlice[intake.EvaluatedAnswer] `gorm:"type:jsonb" json:"answers,omitempty"`
	TotalScore           int                                         `gorm:"index" json:"totalScore"`
	Badge                string                                      `gorm:"type:varchar(10)" json:"badge"`
	SkillBreakdown       datatypes.JSONType[intake.SkillBreakdown]   `gorm:"type:jsonb" json:"skillBreakdown"`
	Strengths            pq.StringArray                              `gorm:"type:text[]" json:"strengths"`
	Weaknesses           pq.StringArray                              `gorm:"type:text[]" json:"weaknesses"`
	Recommendations      pq.StringArray                              `gorm:"type:text[]" json:"recommendations"`
	WorkReadiness        string                                      `gorm:"type:varchar(20)" json:"workReadiness"`
	ConfidenceLevel      string                                      `gorm:"type:varchar(10)" json:"confidenceLevel"`
	HiringRecommendation string                                      `gorm:"type:varchar(20)" json:"hiringRecommendation"`
	AISummary            string                                      `gorm:"type:text" json:"aiSummary"`
	EvaluationSource     string                                      `gorm:"type:varchar(10)" json:"evaluationSource"` // "model" or "fallback"

	Status    string           `gorm:"type:varchar(20);index" json:"status"`
	Embedding *pgvector.Vector `gorm:"type:vector(3072)" json:"-"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

func (p *LabourProfile) TableName() string {
	return "labour_profiles"
}

func (p *LabourProfile) BeforeCreate(*gorm.DB) error {
	p.EnsureID()
	return nil
}

func (p *LabourProfile) EnsureID() {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
}

// SearchText is the text embedded for job matching.
func (p *LabourProfile) SearchText() string {
	parts := []string{p.Trade, p.Location, p.AISummary}
	parts = append(parts, p.Skills...)
	return strings.TrimSpace(strings.Join(parts, " "))
}

// ProfileUpdate holds the only fields a caller may change after evaluation.
// Nil fields are left untouched.
type ProfileUpdate struct {
	Name        *string
	Phone       *string
	Location    *string
	Experience  *int
	Trade       *string
	SalaryRange *SalaryRange
}

func (u ProfileUpdate) Empty() bool {
	return u.Name == nil && u.Phone == nil && u.Location == nil &&
		u.Experience == nil && u.Trade == nil && u.SalaryRange == nil
}

// Columns maps the set fields to their column names.
func (u ProfileUpdate) Columns() map[string]any {
	cols := map[string]any{}
	if u.Name != nil {
		cols["name"] = *u.Name
	}
	if u.Phone != nil {
		cols["phone"] = *u.Phone
	}
	if u.Location != nil {
		cols["location"] = *u.Location
	}
	if u.Experience != nil {
		cols["experience"] = *u.Experience
	}
	if u.Trade != nil {
		cols["trade"] = *u.Trade
	}
	if u.SalaryRange != nil {
		cols["salary_min"] = u.SalaryRange.Min
		cols["salary_max"] = u.SalaryRange.Max
	}
	return cols
}

// Apply writes the set fields onto p.
func (u ProfileUpdate) Apply(p *LabourProfile) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Phone != nil {
		p.Phone = *u.Phone
	}
	if u.Location != nil {
		p.Location = *u.Location
	}
	if u.Experience != nil {
		p.Experience = *u.Experience
	}
	if u.Trade != nil {
		p.Trade = *u.Trade
	}
	if u.SalaryRange != nil {
		p.SalaryRange = *u.SalaryRange
	}
}
