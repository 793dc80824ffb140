package intake

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/fadilmartias/labour-intake/internal/util"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	stageExtract = "extract_profile"

	notesLimit = 300
)

// SalaryRange is a monthly wage range. Min and Max are both set or both nil.
type SalaryRange struct {
	Min *int `json:"min"`
	Max *int `json:"max"`
}

// ProfileDraft is the structured reading of a worker's identity answers.
type ProfileDraft struct {
	Name         string      `json:"name"`
	Phone        string      `json:"phone"`
	Age          *int        `json:"age"`
	Trade        string      `json:"trade"`
	Experience   *int        `json:"experience"`
	Location     string      `json:"location"`
	SalaryRange  SalaryRange `json:"salaryRange"`
	Skills       []string    `json:"skills"`
	Languages    []string    `json:"languages"`
	Availability string      `json:"availability"`
	Notes        string      `json:"notes"`
}

var profileSchema = mustSchema("profile", `{
	"type": "object",
	"properties": {
		"name":         {"type": ["string", "null"]},
		"phone":        {"type": ["string", "number", "null"]},
		"age":          {"type": ["number", "string", "null"]},
		"trade":        {"type": ["string", "null"]},
		"experience":   {"type": ["number", "string", "null"]},
		"location":     {"type": ["string", "null"]},
		"salaryRange":  {"type": ["object", "null"]},
		"skills":       {"type": ["array", "string", "null"]},
		"languages":    {"type": ["array", "string", "null"]},
		"availability": {"type": ["string", "null"]},
		"notes":        {"type": ["string", "null"]}
	}
}`)

var (
	phonePattern      = regexp.MustCompile(`(\+?\d[\d\s-]{7,})`)
	agePattern        = regexp.MustCompile(`(?i)\b(\d{2})\b\s*(years|yrs|age)?`)
	experiencePattern = regexp.MustCompile(`(?i)(\d{1,2})\s*(years|yrs)\s*(experience|exp)`)
)

// ProfileExtractor reads a ProfileDraft out of the opening message and basic answers.
type ProfileExtractor struct {
	resolver *Resolver
}

func NewProfileExtractor(opts Options) *ProfileExtractor {
	return &ProfileExtractor{resolver: opts.resolver("profile_extractor")}
}

// Extract never fails: an unusable model reply yields the regex reading of answersText.
func (e *ProfileExtractor) Extract(ctx context.Context, initialMessage string, questions []string, answersText string) ProfileDraft {
	draft, _ := Resolve(ctx, e.resolver, stageExtract,
		func(ctx context.Context) (ProfileDraft, error) {
			reply, err := e.resolver.Ask(ctx, extractPrompt(initialMessage, questions, answersText))
			if err != nil {
				return ProfileDraft{}, err
			}
			doc, err := profileSchema.parse(reply)
			if err != nil {
				return ProfileDraft{}, err
			}
			var draft ProfileDraft
			if err := decodeWeak(gjson.Parse(doc).Value(), &draft); err != nil {
				// keep the fields that did convert
				e.resolver.logger.Warn("partial profile decode",
					zap.Error(err),
					zap.String("reply", util.TruncateForLog(doc, 200)),
				)
			}
			return draft, nil
		},
		func() ProfileDraft { return FallbackProfile(answersText) },
	)
	return draft.sanitize()
}

// FallbackProfile is the regex reading of the raw answers text.
func FallbackProfile(answersText string) ProfileDraft {
	var draft ProfileDraft
	if m := phonePattern.FindStringSubmatch(answersText); m != nil {
		draft.Phone = spaces.ReplaceAllString(m[1], "")
	}
	if m := agePattern.FindStringSubmatch(answersText); m != nil {
		if n, ok := FirstNumber(m[1]); ok {
			draft.Age = &n
		}
	}
	if m := experiencePattern.FindStringSubmatch(answersText); m != nil {
		if n, ok := FirstNumber(m[1]); ok {
			draft.Experience = &n
		}
	}
	draft.Notes = truncateRunes(answersText, notesLimit)
	return draft
}

func (d ProfileDraft) sanitize() ProfileDraft {
	d.Name = strings.TrimSpace(d.Name)
	d.Phone = NormalizePhone(d.Phone)
	d.Trade = strings.ToLower(strings.TrimSpace(d.Trade))
	d.Location = strings.TrimSpace(d.Location)
	d.Availability = strings.TrimSpace(d.Availability)
	d.Notes = strings.TrimSpace(d.Notes)
	if d.Age != nil && *d.Age <= 0 {
		d.Age = nil
	}
	if d.Experience != nil && *d.Experience < 0 {
		d.Experience = nil
	}
	d.SalaryRange = d.SalaryRange.normalize()
	d.Skills = uniqueStrings(d.Skills)
	d.Languages = uniqueStrings(d.Languages)
	return d
}

// normalize enforces both-or-neither and min <= max.
func (s SalaryRange) normalize() SalaryRange {
	if s.Min == nil || s.Max == nil || *s.Min < 0 || *s.Max < 0 {
		return SalaryRange{}
	}
	if *s.Min > *s.Max {
		return SalaryRange{Min: s.Max, Max: s.Min}
	}
	return s
}

func uniqueStrings(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func extractPrompt(initialMessage string, questions []string, answersText string) string {
	return fmt.Sprintf(`You are extracting a structured labour profile.
Use the worker's initial message and their answers to the questions.
Return ONLY JSON with this shape:
{
  "name": "",
  "phone": "",
  "age": number,
  "trade": "",
  "experience": number,
  "location": "",
  "salaryRange": { "min": number, "max": number },
  "skills": [""],
  "languages": [""],
  "availability": "",
  "notes": ""
}
Use null for anything the worker did not say.

Initial message: %s
Questions: %s
Answers: %s`, initialMessage, strings.Join(questions, " | "), answersText)
}
