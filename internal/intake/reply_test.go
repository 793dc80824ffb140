package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "json fence", input: "```json\n[\"a\"]\n```", want: `["a"]`},
		{name: "bare fence", input: "```\n{\"a\":1}\n```\n", want: `{"a":1}`},
		{name: "no fence", input: "  hindi \n", want: "hindi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFence(tt.input))
		})
	}
}

func TestExtractJSON(t *testing.T) {
	doc, err := extractJSON("Sure! Here it is:\n```json\n{\"name\": \"Ram\"}\n```\nHope this helps.")
	require.NoError(t, err)
	assert.Equal(t, "Ram", gjson.Get(doc, "name").String())

	_, err = extractJSON("I cannot help with that.")
	require.ErrorIs(t, err, errMalformedReply)

	_, err = extractJSON("```json\n```")
	require.ErrorIs(t, err, errEmptyReply)
}

func TestReplySchemaRejectsWrongShape(t *testing.T) {
	_, err := workQuestionsSchema.parse(`{"questions": ["a"]}`)
	require.ErrorIs(t, err, errMalformedReply)

	_, err = workQuestionsSchema.parse(`["a", "b", "c"]`)
	require.ErrorIs(t, err, errMalformedReply)

	_, err = workQuestionsSchema.parse(`["a", "b", "c", "d", "e", "f"]`)
	require.NoError(t, err)
}

func TestStringList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, stringList(gjson.Parse(`["a", " ", "b", {"x": 1}]`)))
	assert.Equal(t, []string{"solo"}, stringList(gjson.Parse(`"solo"`)))
	assert.Equal(t, []string{}, stringList(gjson.Parse(`null`)))
}
