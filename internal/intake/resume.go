package intake

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

const stageResume = "narrative_resume"

// InterviewResponse is one free-form question and its spoken answer.
type InterviewResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Resume is a narrative resume built from a free-form interview. Content is whatever
// JSON object the model produced, or the assembled fallback document.
type Resume struct {
	Language Language       `json:"language"`
	Content  map[string]any `json:"content"`
	Source   Origin         `json:"source"`
}

var resumeSchema = mustSchema("resume", `{"type": "object", "minProperties": 1}`)

// ResumeWriter turns interview answers into resume content.
type ResumeWriter struct {
	resolver *Resolver
}

func NewResumeWriter(opts Options) *ResumeWriter {
	return &ResumeWriter{resolver: opts.resolver("resume_writer")}
}

func (w *ResumeWriter) Write(ctx context.Context, lang Language, responses []InterviewResponse) Resume {
	content, origin := Resolve(ctx, w.resolver, stageResume,
		func(ctx context.Context) (map[string]any, error) {
			reply, err := w.resolver.Ask(ctx, resumePrompt(lang, responses))
			if err != nil {
				return nil, err
			}
			doc, err := resumeSchema.parse(reply)
			if err != nil {
				return nil, err
			}
			content, ok := gjson.Parse(doc).Value().(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: resume is not an object", errMalformedReply)
			}
			return content, nil
		},
		func() map[string]any { return FallbackResume(responses) },
	)
	return Resume{Language: lang, Content: content, Source: origin}
}

// FallbackResume lists the answers as given, without interpretation.
func FallbackResume(responses []InterviewResponse) map[string]any {
	entries := make([]map[string]any, 0, len(responses))
	for _, r := range responses {
		entries = append(entries, map[string]any{
			"question": strings.TrimSpace(r.Question),
			"answer":   strings.TrimSpace(r.Answer),
		})
	}
	return map[string]any{
		"summary":   FallbackLabel + " Automated resume writing was unavailable. The interview answers are listed as given.",
		"interview": entries,
	}
}

func resumePrompt(lang Language, responses []InterviewResponse) string {
	formatted := make([]string, 0, len(responses))
	for i, r := range responses {
		formatted = append(formatted, fmt.Sprintf("Q%d: %s\nA%d: %s", i+1, r.Question, i+1, r.Answer))
	}
	return fmt.Sprintf(`You are a professional resume writer for skilled workers.

Language: %s

Below are interview question and answer pairs:

%s

Extract the personal details, skills and experience, and write structured resume content.
Respond ONLY with a JSON object.`, lang, strings.Join(formatted, "\n\n"))
}
