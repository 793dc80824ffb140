package dto

import (
	"time"

	"github.com/fadilmartias/labour-intake/internal/intake"
	"github.com/fadilmartias/labour-intake/internal/model"
	"github.com/google/uuid"
)

// LabourProfileDTO is a profile without the raw interview transcript.
type LabourProfileDTO struct {
	ID                   uuid.UUID             `json:"id"`
	SessionID            *uuid.UUID            `json:"sessionId,omitempty"`
	Name                 string                `json:"name"`
	Phone                string                `json:"phone"`
	Age                  *int                  `json:"age,omitempty"`
	Location             string                `json:"location"`
	Trade                string                `json:"trade"`
	Experience           int                   `json:"experience"`
	Skills               []string              `json:"skills"`
	Languages            []string              `json:"languages"`
	Availability         string                `json:"availability"`
	SalaryRange          model.SalaryRange     `json:"salaryRange"`
	TotalScore           int                   `json:"totalScore"`
	Badge                string                `json:"badge"`
	SkillBreakdown       intake.SkillBreakdown `json:"skillBreakdown"`
	Strengths            []string              `json:"strengths"`
	Weaknesses           []string              `json:"weaknesses"`
	Recommendations      []string              `json:"recommendations"`
	WorkReadiness        string                `json:"workReadiness"`
	ConfidenceLevel      string                `json:"confidenceLevel"`
	HiringRecommendation string                `json:"hiringRecommendation"`
	AISummary            string                `json:"aiSummary"`
	EvaluationSource     string                `json:"evaluationSource"`
	Status               string                `json:"status"`
	CreatedAt            time.Time             `json:"createdAt"`
	UpdatedAt            time.Time             `json:"updatedAt"`
}

func NewLabourProfileDTO(p *model.LabourProfile) LabourProfileDTO {
	return LabourProfileDTO{
		ID:                   p.ID,
		SessionID:            p.SessionID,
		Name:                 p.Name,
		Phone:                p.Phone,
		Age:                  p.Age,
		Location:             p.Location,
		Trade:                p.Trade,
		Experience:           p.Experience,
		Skills:               p.Skills,
		Languages:            p.Languages,
		Availability:         p.Availability,
		SalaryRange:          p.SalaryRange,
		TotalScore:           p.TotalScore,
		Badge:                p.Badge,
		SkillBreakdown:       p.SkillBreakdown.Data(),
		Strengths:            p.Strengths,
		Weaknesses:           p.Weaknesses,
		Recommendations:      p.Recommendations,
		WorkReadiness:        p.WorkReadiness,
		ConfidenceLevel:      p.ConfidenceLevel,
		HiringRecommendation: p.HiringRecommendation,
		AISummary:            p.AISummary,
		EvaluationSource:     p.EvaluationSource,
		Status:               p.Status,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

// LabourProfileSummary is one search hit.
type LabourProfileSummary struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Trade       string            `json:"trade"`
	Experience  int               `json:"experience"`
	Location    string            `json:"location"`
	SalaryRange model.SalaryRange `json:"salaryRange"`
	TotalScore  int               `json:"totalScore"`
	Badge       string            `json:"badge"`
}

func NewLabourProfileSummaries(profiles []model.LabourProfile) []LabourProfileSummary {
	out := make([]LabourProfileSummary, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, LabourProfileSummary{
			ID:          p.ID,
			Name:        p.Name,
			Trade:       p.Trade,
			Experience:  p.Experience,
			Location:    p.Location,
			SalaryRange: p.SalaryRange,
			TotalScore:  p.TotalScore,
			Badge:       p.Badge,
		})
	}
	return out
}

type SalaryRangeRequest struct {
	Min *int `json:"min"`
	Max *int `json:"max"`
}

// UpdateLabourProfileRequest lists the editable fields; anything else in the body is ignored.
type UpdateLabourProfileRequest struct {
	Name        *string             `json:"name"`
	Phone       *string             `json:"phone"`
	Location    *string             `json:"location"`
	Experience  *int                `json:"experience"`
	Trade       *string             `json:"trade"`
	SalaryRange *SalaryRangeRequest `json:"salaryRange"`
}

func (r UpdateLabourProfileRequest) ToUpdate() model.ProfileUpdate {
	u := model.ProfileUpdate{
		Name:       r.Name,
		Phone:      r.Phone,
		Location:   r.Location,
		Experience: r.Experience,
		Trade:      r.Trade,
	}
	if r.SalaryRange != nil {
		u.SalaryRange = &model.SalaryRange{Min: r.SalaryRange.Min, Max: r.SalaryRange.Max}
	}
	return u
}

type MatchRequest struct {
	Description string `json:"description"`
	Limit       int    `json:"limit"`
}

type MatchResponse struct {
	Strategy string                 `json:"strategy"`
	Profiles []LabourProfileSummary `json:"profiles"`
}
