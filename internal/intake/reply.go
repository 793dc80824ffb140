package intake

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fadilmartias/labour-intake/internal/util"
	"github.com/mitchellh/mapstructure"
	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
)

var fencePattern = regexp.MustCompile("```(?:json|JSON)?")

// StripCodeFence removes markdown code fences that models wrap around JSON.
func StripCodeFence(raw string) string {
	return strings.TrimSpace(fencePattern.ReplaceAllString(raw, ""))
}

// extractJSON returns the JSON document inside a model reply. Prose around a single
// object or array is tolerated; anything else is a malformed reply.
func extractJSON(raw string) (string, error) {
	cleaned := StripCodeFence(raw)
	if cleaned == "" {
		return "", errEmptyReply
	}
	if gjson.Valid(cleaned) {
		return cleaned, nil
	}
	if start := strings.IndexAny(cleaned, "{["); start >= 0 {
		if end := strings.LastIndexAny(cleaned, "}]"); end > start {
			candidate := cleaned[start : end+1]
			if gjson.Valid(candidate) {
				return candidate, nil
			}
		}
	}
	return "", fmt.Errorf("%w: not json: %q", errMalformedReply, util.TruncateForLog(cleaned, 80))
}

type replySchema struct {
	name   string
	schema *gojsonschema.Schema
}

func mustSchema(name, definition string) *replySchema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(definition))
	if err != nil {
		panic(fmt.Sprintf("intake: invalid %s schema: %v", name, err))
	}
	return &replySchema{name: name, schema: schema}
}

// parse extracts the JSON payload of raw and checks it against the schema.
func (s *replySchema) parse(raw string) (string, error) {
	doc, err := extractJSON(raw)
	if err != nil {
		return "", err
	}
	result, err := s.schema.Validate(gojsonschema.NewStringLoader(doc))
	if err != nil {
		return "", fmt.Errorf("validate %s reply: %w", s.name, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return "", fmt.Errorf("%w: %s: %s", errMalformedReply, s.name, strings.Join(msgs, "; "))
	}
	return doc, nil
}

// decodeWeak copies a parsed JSON value into out, converting "34" to 34, 34 to "34"
// and a lone string into a one-element slice. Fields that fail to convert are left
// at their zero value and reported in the returned error.
func decodeWeak(input any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// stringList reads a JSON array of strings, or a single string, dropping blanks.
func stringList(r gjson.Result) []string {
	out := []string{}
	add := func(v gjson.Result) {
		if s := strings.TrimSpace(v.String()); s != "" {
			out = append(out, s)
		}
	}
	switch {
	case r.IsArray():
		for _, item := range r.Array() {
			if item.Type == gjson.String || item.Type == gjson.Number {
				add(item)
			}
		}
	case r.Type == gjson.String:
		add(r)
	}
	return out
}

// number reads a JSON number or numeric string.
func number(r gjson.Result) (float64, bool) {
	switch r.Type {
	case gjson.Number:
		return r.Num, true
	case gjson.String:
		var f float64
		if _, err := fmt.Sscanf(strings.TrimSpace(r.Str), "%g", &f); err == nil {
			return f, true
		}
	}
	return 0, false
}
