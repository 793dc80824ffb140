package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fadilmartias/labour-intake/internal/intake"
	"github.com/fadilmartias/labour-intake/internal/model"
	"github.com/fadilmartias/labour-intake/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type generatorFunc func(ctx context.Context, prompt string) (string, error)

func (f generatorFunc) GenerateText(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

var modelDown = generatorFunc(func(context.Context, string) (string, error) {
	return "", errors.New("model unavailable")
})

// modelUp answers each stage by recognising its prompt.
var modelUp = generatorFunc(func(_ context.Context, prompt string) (string, error) {
	switch {
	case strings.Contains(prompt, "Detect the language"):
		return "hindi", nil
	case strings.Contains(prompt, "Extract the worker's trade"):
		return "plumber", nil
	case strings.Contains(prompt, "short questions"):
		return `["w1","w2","w3","w4","w5","w6"]`, nil
	case strings.Contains(prompt, "structured labour profile"):
		return "```json\n" + `{"name": "Ram Kumar", "phone": "98765 43210", "age": 34, "trade": "pipe fitter",
			"experience": 7, "location": "Pune", "salaryRange": {"min": 15000, "max": 20000},
			"skills": ["pipe fitting"], "languages": ["Hindi"], "availability": "immediately", "notes": "n"}` + "\n```", nil
	case strings.Contains(prompt, "expert evaluator"):
		return `{"evaluations": [{"score": 9, "reason": "good"}, {"score": 9, "reason": "good"},
			{"score": 8, "reason": "ok"}, {"score": 8, "reason": "ok"}, {"score": 9, "reason": "good"},
			{"score": 7, "reason": "ok"}], "totalScore": 83, "skillBreakdown": {"technical": 90},
			"strengths": ["fast"], "weaknesses": ["paperwork"], "recommendations": ["safety course"],
			"workReadiness": "Advanced", "confidenceLevel": "High", "summary": "Experienced plumber.",
			"hiringRecommendation": "Strong Hire"}`, nil
	}
	return "", errors.New("unexpected prompt")
})

func newIntake(gen intake.Generator) (*IntakeUsecase, *repository.SessionMemoryRepository, *repository.LabourProfileMemoryRepository) {
	sessions := repository.NewSessionMemoryRepository()
	profiles := repository.NewLabourProfileMemoryRepository()
	uc := NewIntakeUsecase(sessions, profiles, intake.Options{Generator: gen}, nil)
	return uc, sessions, profiles
}

var workAnswers = []string{
	"I fixed a leaking bathroom line last week",
	"Pipe wrench and cutter",
	"Replaced all pipes in an old building",
	"I shut off the water and wear gloves",
	"I ask the contractor and find another way",
	"Bigger building projects",
}

func TestIntakeWithModelDown(t *testing.T) {
	ctx := context.Background()
	uc, sessions, profiles := newIntake(modelDown)

	session, err := uc.Start(ctx, "I am a plumber with 5 years experience")
	require.NoError(t, err)
	assert.Equal(t, "english", session.Language)
	assert.Equal(t, "plumber", session.Trade)
	assert.Len(t, session.Questions, intake.TotalQuestionCount)
	assert.Equal(t, model.SessionStatusCollecting, session.Status)
	assert.Empty(t, session.Answers)

	answers := append([]string{"Ram Kumar", "34", "9876543210", "5"}, workAnswers...)
	result, err := uc.Submit(ctx, session.ID.String(), answers)
	require.NoError(t, err)

	p := result.Profile
	assert.Equal(t, "Ram Kumar", p.Name)
	assert.Equal(t, "9876543210", p.Phone)
	require.NotNil(t, p.Age)
	assert.Equal(t, 34, *p.Age)
	assert.Equal(t, 5, p.Experience)
	assert.Equal(t, "plumber", p.Trade)
	assert.Equal(t, 60, p.TotalScore)
	assert.Equal(t, 60, result.Score)
	assert.Equal(t, string(intake.ClassifyBadge(60)), p.Badge)
	assert.Equal(t, model.ProfileStatusEvaluated, p.Status)
	assert.Equal(t, string(intake.OriginFallback), p.EvaluationSource)
	assert.True(t, strings.HasPrefix(p.AISummary, intake.FallbackLabel))
	assert.Equal(t, session.ID, *p.SessionID)

	require.Len(t, p.Answers, intake.TotalQuestionCount)
	for i := 0; i < intake.BasicQuestionCount; i++ {
		assert.Equal(t, intake.BasicAnswerScore, p.Answers[i].Score)
		assert.Equal(t, intake.BasicAnswerReason, p.Answers[i].Reason)
	}
	assert.Equal(t, session.Questions[4], p.Answers[4].Question)
	assert.Equal(t, workAnswers[0], p.Answers[4].Answer)

	stored, err := sessions.FindByID(ctx, session.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.SessionStatusCompleted, stored.Status)
	assert.Len(t, stored.Answers, len(stored.Questions))

	_, err = profiles.FindByID(ctx, p.ID.String())
	require.NoError(t, err)
}

func TestIntakeWithModelUp(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newIntake(modelUp)

	session, err := uc.Start(ctx, "mera naam Ram hai, main plumber hoon")
	require.NoError(t, err)
	assert.Equal(t, "hindi", session.Language)
	assert.Equal(t, []string{"w1", "w2", "w3", "w4", "w5", "w6"}, []string(session.Questions[4:]))
	assert.Equal(t, intake.BasicQuestions(intake.Hindi), []string(session.Questions[:4]))

	result, err := uc.Submit(ctx, session.ID.String(), append([]string{"Ram", "34", "98765 43210", "7"}, workAnswers...))
	require.NoError(t, err)

	p := result.Profile
	assert.Equal(t, "Ram Kumar", p.Name)
	assert.Equal(t, "9876543210", p.Phone)
	assert.Equal(t, "pipe fitter", p.Trade)
	assert.Equal(t, 7, p.Experience)
	assert.Equal(t, 15000, *p.SalaryRange.Min)
	assert.Equal(t, 83, p.TotalScore)
	assert.Equal(t, string(intake.BadgeGold), p.Badge)
	assert.Equal(t, 90, p.SkillBreakdown.Data().Technical)
	assert.Equal(t, 83, p.SkillBreakdown.Data().Safety)
	assert.Equal(t, "Strong Hire", p.HiringRecommendation)
	assert.Equal(t, "Experienced plumber.", p.AISummary)
	assert.Equal(t, string(intake.OriginModel), p.EvaluationSource)
	assert.Equal(t, "w1", p.Answers[4].Question)
	assert.Equal(t, 9, p.Answers[4].Score)
}

func TestSubmitShortAnswersArePadded(t *testing.T) {
	ctx := context.Background()
	uc, sessions, _ := newIntake(nil)

	session, err := uc.Start(ctx, "welder")
	require.NoError(t, err)

	result, err := uc.Submit(ctx, session.ID.String(), []string{"My name is Ali", "29"})
	require.NoError(t, err)
	assert.Equal(t, "Ali", result.Profile.Name)
	assert.Empty(t, result.Profile.Phone)
	assert.Zero(t, result.Profile.Experience)
	assert.Zero(t, result.Profile.TotalScore)
	assert.Equal(t, string(intake.BadgeBronze), result.Profile.Badge)

	stored, err := sessions.FindByID(ctx, session.ID.String())
	require.NoError(t, err)
	assert.Len(t, stored.Answers, intake.TotalQuestionCount)
	assert.Equal(t, "", stored.Answers[9])
}

func TestSubmitErrors(t *testing.T) {
	ctx := context.Background()
	uc, _, profiles := newIntake(nil)

	_, err := uc.Start(ctx, "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Submit(ctx, "", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Submit(ctx, uuid.NewString(), []string{"Ram"})
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = uc.Submit(ctx, "not-a-session", []string{"Ram"})
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, total, err := profiles.Search(ctx, repository.ProfileFilter{})
	require.NoError(t, err)
	assert.Zero(t, total, "a failed submit stores nothing")

	session, err := uc.Start(ctx, "mason")
	require.NoError(t, err)
	_, err = uc.Submit(ctx, session.ID.String(), []string{"Ram"})
	require.NoError(t, err)
	_, err = uc.Submit(ctx, session.ID.String(), []string{"Ram"})
	assert.ErrorIs(t, err, ErrSessionCompleted)
}

func TestConcurrentSubmitCreatesOneProfile(t *testing.T) {
	ctx := context.Background()
	uc, _, profiles := newIntake(nil)

	session, err := uc.Start(ctx, "painter")
	require.NoError(t, err)

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = uc.Submit(ctx, session.ID.String(), []string{"Ram"})
		}()
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, ErrSessionCompleted)
	}
	assert.Equal(t, 1, ok)

	_, total, err := profiles.Search(ctx, repository.ProfileFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestConcurrentSubmitWithAliasedSessionIDs(t *testing.T) {
	ctx := context.Background()
	slowModel := generatorFunc(func(ctx context.Context, _ string) (string, error) {
		time.Sleep(20 * time.Millisecond)
		return "", errors.New("model unavailable")
	})
	uc, _, profiles := newIntake(slowModel)

	session, err := uc.Start(ctx, "carpenter")
	require.NoError(t, err)
	id := session.ID.String()
	spellings := []string{id, "{" + id + "}", "urn:uuid:" + id, strings.ToUpper(id)}

	errs := make([]error, len(spellings))
	var wg sync.WaitGroup
	for i, sid := range spellings {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = uc.Submit(ctx, sid, []string{"Ram"})
		}()
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, ErrSessionCompleted)
	}
	assert.Equal(t, 1, ok)

	_, total, err := profiles.Search(ctx, repository.ProfileFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestInterview(t *testing.T) {
	uc, _, _ := newIntake(nil)

	_, err := uc.Interview(context.Background(), "", nil)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "language")
	assert.Contains(t, verr.Fields, "responses")

	resume, err := uc.Interview(context.Background(), "Tamil", []intake.InterviewResponse{{Question: "q", Answer: "a"}})
	require.NoError(t, err)
	assert.Equal(t, intake.Tamil, resume.Language)
	assert.Equal(t, intake.OriginFallback, resume.Source)
}
