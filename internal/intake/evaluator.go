package intake

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/tidwall/gjson"
)

const stageEvaluate = "evaluate_answers"

var evaluationSchema = mustSchema("evaluation", `{
	"type": "object",
	"properties": {
		"evaluations":    {"type": "array", "items": {"type": "object"}},
		"skillBreakdown": {"type": ["object", "null"]}
	}
}`)

// AnswerEvaluator scores work answers and labels the worker's readiness.
type AnswerEvaluator struct {
	resolver *Resolver
}

func NewAnswerEvaluator(opts Options) *AnswerEvaluator {
	return &AnswerEvaluator{resolver: opts.resolver("answer_evaluator")}
}

// Evaluate pairs each question with its positional answer, missing answers read as "".
// The result is always complete: the model's output is clamped and defaulted field by
// field, and an unusable reply is replaced by FallbackEvaluation.
func (e *AnswerEvaluator) Evaluate(ctx context.Context, trade string, questions, answers []string, lang Language) Evaluation {
	pairs := pairAnswers(questions, answers)
	eval, origin := Resolve(ctx, e.resolver, stageEvaluate,
		func(ctx context.Context) (Evaluation, error) {
			reply, err := e.resolver.Ask(ctx, evaluatePrompt(trade, pairs, lang))
			if err != nil {
				return Evaluation{}, err
			}
			doc, err := evaluationSchema.parse(reply)
			if err != nil {
				return Evaluation{}, err
			}
			return readEvaluation(gjson.Parse(doc), pairs), nil
		},
		func() Evaluation { return FallbackEvaluation(questions, answers) },
	)
	eval.Source = origin
	return eval
}

func pairAnswers(questions, answers []string) []EvaluatedAnswer {
	pairs := make([]EvaluatedAnswer, len(questions))
	for i, q := range questions {
		pairs[i].Question = q
		if i < len(answers) {
			pairs[i].Answer = answers[i]
		}
	}
	return pairs
}

// ComputeTotal is round(sum / (n*10) * 100), or 0 for no answers.
func ComputeTotal(scored []EvaluatedAnswer) int {
	if len(scored) == 0 {
		return 0
	}
	sum := 0
	for _, a := range scored {
		sum += a.Score
	}
	return int(math.Round(float64(sum) / float64(len(scored)*maxAnswerScore) * 100))
}

func fallbackScore(answer string) int {
	if strings.TrimSpace(answer) == "" {
		return 0
	}
	return fallbackAnswerScore
}

// FallbackEvaluation scores every non-empty answer the same passing mark. All of its
// prose is labelled so it cannot be mistaken for a model assessment.
func FallbackEvaluation(questions, answers []string) Evaluation {
	scored := pairAnswers(questions, answers)
	for i := range scored {
		scored[i].Score = fallbackScore(scored[i].Answer)
		scored[i].Reason = FallbackLabel + " Not assessed by the model; scored on whether an answer was given"
	}
	total := ComputeTotal(scored)
	return Evaluation{
		Answers:              scored,
		TotalScore:           total,
		Badge:                ClassifyBadge(total),
		SkillBreakdown:       uniformBreakdown(total),
		Strengths:            []string{FallbackLabel + " Answered the work questions"},
		Weaknesses:           []string{FallbackLabel + " Skills not verified; no model assessment was available"},
		Recommendations:      []string{FallbackLabel + " Re-run the evaluation or interview the worker in person before hiring"},
		WorkReadiness:        readinessFor(total),
		ConfidenceLevel:      ConfidenceMedium,
		Summary:              FallbackLabel + " Automated evaluation was unavailable. Scores reflect answer completeness only, not skill.",
		HiringRecommendation: hiringFor(total),
		Source:               OriginFallback,
	}
}

// readEvaluation applies a default to every field the model left out or got wrong.
// Per-answer records always carry our own question and answer text.
func readEvaluation(doc gjson.Result, pairs []EvaluatedAnswer) Evaluation {
	items := doc.Get("evaluations").Array()
	scored := make([]EvaluatedAnswer, len(pairs))
	for i, p := range pairs {
		scored[i] = p
		if i >= len(items) {
			scored[i].Score = fallbackScore(p.Answer)
			scored[i].Reason = FallbackLabel + " Not scored by the model"
			continue
		}
		if n, ok := number(items[i].Get("score")); ok {
			scored[i].Score = clamp(int(math.Round(n)), 0, maxAnswerScore)
		}
		scored[i].Reason = strings.TrimSpace(items[i].Get("reason").String())
		if scored[i].Reason == "" {
			scored[i].Reason = "No reason given"
		}
	}

	total := ComputeTotal(scored)
	if n, ok := number(doc.Get("totalScore")); ok {
		total = clamp(int(math.Round(n)), 0, maxTotalScore)
	}

	eval := Evaluation{
		Answers:              scored,
		TotalScore:           total,
		Badge:                ClassifyBadge(total),
		SkillBreakdown:       readBreakdown(doc.Get("skillBreakdown"), total),
		Strengths:            stringList(doc.Get("strengths")),
		Weaknesses:           stringList(doc.Get("weaknesses")),
		Recommendations:      stringList(doc.Get("recommendations")),
		WorkReadiness:        readinessFor(total),
		ConfidenceLevel:      ConfidenceMedium,
		Summary:              strings.TrimSpace(doc.Get("summary").String()),
		HiringRecommendation: hiringFor(total),
	}
	if v, ok := matchLabel(doc.Get("workReadiness").String(), workReadinessValues); ok {
		eval.WorkReadiness = v
	}
	if v, ok := matchLabel(doc.Get("confidenceLevel").String(), confidenceValues); ok {
		eval.ConfidenceLevel = v
	}
	if v, ok := matchLabel(doc.Get("hiringRecommendation").String(), hiringValues); ok {
		eval.HiringRecommendation = v
	}
	return eval
}

// readBreakdown clamps each axis, defaulting a missing one to the total score.
func readBreakdown(r gjson.Result, total int) SkillBreakdown {
	axis := func(key string) int {
		if n, ok := number(r.Get(key)); ok {
			return clamp(int(math.Round(n)), 0, maxTotalScore)
		}
		return total
	}
	return SkillBreakdown{
		Technical:      axis("technical"),
		Safety:         axis("safety"),
		Experience:     axis("experience"),
		ProblemSolving: axis("problemSolving"),
		Communication:  axis("communication"),
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func evaluatePrompt(trade string, pairs []EvaluatedAnswer, lang Language) string {
	qa := make([]string, 0, len(pairs))
	for _, p := range pairs {
		qa = append(qa, fmt.Sprintf("Q: %s\nA: %s", p.Question, p.Answer))
	}
	return fmt.Sprintf(`You are an expert evaluator for %s candidates.
Analyze the answers and provide a complete evaluation.
%s

Return ONLY JSON with this shape:
{
  "evaluations": [
    { "question": "", "answer": "", "score": number (0-10), "reason": "" }
  ],
  "totalScore": number (0-100),
  "badge": "Bronze" | "Silver" | "Gold",
  "skillBreakdown": {
    "technical": number (0-100),
    "safety": number (0-100),
    "experience": number (0-100),
    "problemSolving": number (0-100),
    "communication": number (0-100)
  },
  "strengths": [""],
  "weaknesses": [""],
  "recommendations": [""],
  "workReadiness": "Not Ready" | "Entry Level" | "Intermediate" | "Advanced" | "Expert",
  "confidenceLevel": "Low" | "Medium" | "High",
  "summary": "professional summary in 3-5 lines",
  "hiringRecommendation": "Strong Hire" | "Hire" | "Maybe" | "No Hire"
}
Give one entry in "evaluations" per question, in the same order.

Answers:
%s

Consider technical knowledge, safety awareness, practical experience, problem solving,
communication clarity, and honesty versus exaggeration.`, trade, languageInstruction(lang, "Write all analysis"), strings.Join(qa, "\n\n"))
}
