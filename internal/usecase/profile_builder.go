package usecase

import (
	"fmt"
	"slices"
	"strings"

	"github.com/fadilmartias/labour-intake/internal/intake"
	"github.com/fadilmartias/labour-intake/internal/model"
	"gorm.io/datatypes"
)

// Positions of the identity answers, fixed by the basic question templates.
const (
	nameAnswer = iota
	ageAnswer
	phoneAnswer
	experienceAnswer
)

// answersText renders question/answer pairs the way the extractor reads them.
func answersText(questions, answers []string) string {
	parts := make([]string, 0, len(questions))
	for i, q := range questions {
		parts = append(parts, fmt.Sprintf("Q%d: %s\nA: %s", i+1, q, answerAt(answers, i)))
	}
	return strings.Join(parts, "\n\n")
}

func answerAt(answers []string, i int) string {
	if i < len(answers) {
		return strings.TrimSpace(answers[i])
	}
	return ""
}

// resolveTrade prefers the extracted trade, then the one detected at start.
func resolveTrade(draft intake.ProfileDraft, session *model.ConversationSession) string {
	for _, t := range []string{draft.Trade, session.Trade} {
		if t = strings.TrimSpace(t); t != "" {
			return t
		}
	}
	return intake.DefaultTrade
}

// buildProfile merges extractor and evaluator output into an evaluated profile,
// filling every field the model left out. answers must be aligned with the questions.
func buildProfile(session *model.ConversationSession, answers []string, draft intake.ProfileDraft, eval intake.Evaluation) *model.LabourProfile {
	basicQuestions := session.BasicQuestions()
	basic := answers[:len(basicQuestions)]

	merged := make([]intake.EvaluatedAnswer, 0, len(session.Questions))
	for i, q := range basicQuestions {
		merged = append(merged, intake.EvaluatedAnswer{
			Question: q,
			Answer:   basic[i],
			Score:    intake.BasicAnswerScore,
			Reason:   intake.BasicAnswerReason,
		})
	}
	merged = append(merged, eval.Answers...)

	name := draft.Name
	if name == "" {
		name = intake.CleanName(answerAt(basic, nameAnswer))
	}
	phone := draft.Phone
	if phone == "" {
		phone = intake.NormalizePhone(answerAt(basic, phoneAnswer))
	}
	age := draft.Age
	if age == nil {
		if n, ok := intake.FirstNumber(answerAt(basic, ageAnswer)); ok && n > 0 {
			age = &n
		}
	}
	experience := 0
	if draft.Experience != nil && *draft.Experience > 0 {
		experience = *draft.Experience
	} else if n, ok := intake.FirstNumber(answerAt(basic, experienceAnswer)); ok {
		experience = n
	}
	languages := draft.Languages
	if len(languages) == 0 {
		languages = []string{session.Language}
	}
	summary := eval.Summary
	if summary == "" {
		summary = draft.Notes
	}

	sessionID := session.ID
	return &model.LabourProfile{
		SessionID:            &sessionID,
		Name:                 name,
		Phone:                phone,
		Age:                  age,
		Location:             draft.Location,
		Trade:                resolveTrade(draft, session),
		Experience:           experience,
		Skills:               draft.Skills,
		Languages:            languages,
		Availability:         draft.Availability,
		SalaryRange:          model.SalaryRange{Min: draft.SalaryRange.Min, Max: draft.SalaryRange.Max},
		Questions:            slices.Clone(session.Questions),
		Answers:              datatypes.JSONSlice[intake.EvaluatedAnswer](merged),
		TotalScore:           eval.TotalScore,
		Badge:                string(eval.Badge),
		SkillBreakdown:       datatypes.NewJSONType(eval.SkillBreakdown),
		Strengths:            eval.Strengths,
		Weaknesses:           eval.Weaknesses,
		Recommendations:      eval.Recommendations,
		WorkReadiness:        string(eval.WorkReadiness),
		ConfidenceLevel:      string(eval.ConfidenceLevel),
		HiringRecommendation: string(eval.HiringRecommendation),
		AISummary:            summary,
		EvaluationSource:     string(eval.Source),
		Status:               model.ProfileStatusEvaluated,
	}
}
