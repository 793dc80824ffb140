package intake

import "strings"

// Badge is the tier assigned from the total score.
type Badge string

const (
	BadgeBronze Badge = "Bronze"
	BadgeSilver Badge = "Silver"
	BadgeGold   Badge = "Gold"
)

// ClassifyBadge maps a 0-100 score to its tier: 80 and above is Gold, 50 and above Silver.
func ClassifyBadge(totalScore int) Badge {
	switch {
	case totalScore >= 80:
		return BadgeGold
	case totalScore >= 50:
		return BadgeSilver
	default:
		return BadgeBronze
	}
}

type WorkReadiness string

const (
	ReadinessNotReady     WorkReadiness = "Not Ready"
	ReadinessEntryLevel   WorkReadiness = "Entry Level"
	ReadinessIntermediate WorkReadiness = "Intermediate"
	ReadinessAdvanced     WorkReadiness = "Advanced"
	ReadinessExpert       WorkReadiness = "Expert"
)

var workReadinessValues = []WorkReadiness{ReadinessNotReady, ReadinessEntryLevel, ReadinessIntermediate, ReadinessAdvanced, ReadinessExpert}

func readinessFor(totalScore int) WorkReadiness {
	if totalScore >= 60 {
		return ReadinessIntermediate
	}
	return ReadinessEntryLevel
}

type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "Low"
	ConfidenceMedium ConfidenceLevel = "Medium"
	ConfidenceHigh   ConfidenceLevel = "High"
)

var confidenceValues = []ConfidenceLevel{ConfidenceLow, ConfidenceMedium, ConfidenceHigh}

type HiringRecommendation string

const (
	HiringStrongHire HiringRecommendation = "Strong Hire"
	HiringHire       HiringRecommendation = "Hire"
	HiringMaybe      HiringRecommendation = "Maybe"
	HiringNoHire     HiringRecommendation = "No Hire"
)

var hiringValues = []HiringRecommendation{HiringStrongHire, HiringHire, HiringMaybe, HiringNoHire}

func hiringFor(totalScore int) HiringRecommendation {
	if totalScore >= 70 {
		return HiringHire
	}
	return HiringMaybe
}

// matchLabel finds the allowed value equal to s ignoring case and spacing.
func matchLabel[T ~string](s string, allowed []T) (T, bool) {
	key := collapse(strings.NewReplacer("_", " ", "-", " ").Replace(s))
	for _, v := range allowed {
		if collapse(string(v)) == key {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// EvaluatedAnswer is one scored question. Score is 0-10.
type EvaluatedAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Score    int    `json:"score"`
	Reason   string `json:"reason"`
}

// SkillBreakdown scores five fixed axes, each 0-100.
type SkillBreakdown struct {
	Technical      int `json:"technical"`
	Safety         int `json:"safety"`
	Experience     int `json:"experience"`
	ProblemSolving int `json:"problemSolving"`
	Communication  int `json:"communication"`
}

func uniformBreakdown(score int) SkillBreakdown {
	return SkillBreakdown{
		Technical:      score,
		Safety:         score,
		Experience:     score,
		ProblemSolving: score,
		Communication:  score,
	}
}

// Evaluation is the assessment of a worker's work answers.
type Evaluation struct {
	Answers              []EvaluatedAnswer    `json:"answers"`
	TotalScore           int                  `json:"totalScore"`
	Badge                Badge                `json:"badge"`
	SkillBreakdown       SkillBreakdown       `json:"skillBreakdown"`
	Strengths            []string             `json:"strengths"`
	Weaknesses           []string             `json:"weaknesses"`
	Recommendations      []string             `json:"recommendations"`
	WorkReadiness        WorkReadiness        `json:"workReadiness"`
	ConfidenceLevel      ConfidenceLevel      `json:"confidenceLevel"`
	Summary              string               `json:"summary"`
	HiringRecommendation HiringRecommendation `json:"hiringRecommendation"`
	// Source is OriginFallback when no model assessment backs the result.
	Source Origin `json:"source"`
}

const (
	// BasicAnswerScore is given to every identity answer; they are facts, not skills.
	BasicAnswerScore  = 10
	BasicAnswerReason = "Basic information collected"

	fallbackAnswerScore = 6
	maxAnswerScore      = 10
	maxTotalScore       = 100
)
