package intake

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var interview = []InterviewResponse{
	{Question: "What is your name?", Answer: "Ram"},
	{Question: "What work do you do?", Answer: " plumbing "},
}

func TestResumeWriter(t *testing.T) {
	resume := NewResumeWriter(reply(`{"name": "Ram", "skills": ["plumbing"]}`)).Write(context.Background(), Hindi, interview)
	assert.Equal(t, OriginModel, resume.Source)
	assert.Equal(t, Hindi, resume.Language)
	assert.Equal(t, "Ram", resume.Content["name"])
}

func TestResumeWriterFallback(t *testing.T) {
	for name, opts := range map[string]Options{
		"model down":   failing(),
		"empty object": reply(`{}`),
	} {
		t.Run(name, func(t *testing.T) {
			resume := NewResumeWriter(opts).Write(context.Background(), English, interview)
			assert.Equal(t, OriginFallback, resume.Source)
			assert.Contains(t, resume.Content["summary"], FallbackLabel)
			entries, ok := resume.Content["interview"].([]map[string]any)
			require.True(t, ok)
			require.Len(t, entries, 2)
			assert.Equal(t, "plumbing", entries[1]["answer"])
		})
	}
}
