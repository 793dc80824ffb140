package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession() *ConversationSession {
	return &ConversationSession{
		Questions: []string{"b1", "b2", "b3", "b4", "w1", "w2", "w3", "w4", "w5", "w6"},
		Status:    SessionStatusCollecting,
	}
}

func TestSessionSplit(t *testing.T) {
	s := newSession()
	assert.Equal(t, []string{"b1", "b2", "b3", "b4"}, s.BasicQuestions())
	assert.Len(t, s.WorkQuestions(), 6)

	short := &ConversationSession{Questions: []string{"b1", "b2"}}
	assert.Len(t, short.BasicQuestions(), 2)
	assert.Empty(t, short.WorkQuestions())
}

func TestSessionComplete(t *testing.T) {
	s := newSession()
	require.NoError(t, s.Complete([]string{"Ram", "34"}))

	assert.Equal(t, SessionStatusCompleted, s.Status)
	require.Len(t, s.Answers, len(s.Questions))
	assert.Equal(t, "34", s.Answers[1])
	assert.Equal(t, "", s.Answers[9])

	assert.ErrorIs(t, s.Complete(nil), ErrSessionAlreadyCompleted)
}

func TestAlignAnswersTruncates(t *testing.T) {
	s := &ConversationSession{Questions: []string{"q1", "q2"}}
	assert.Equal(t, []string{"a", "b"}, s.AlignAnswers([]string{"a", "b", "c"}))
}

func TestEnsureIDKeepsExisting(t *testing.T) {
	id := uuid.New()
	p := &LabourProfile{ID: id}
	p.EnsureID()
	assert.Equal(t, id, p.ID)

	s := &ConversationSession{}
	s.EnsureID()
	assert.NotEqual(t, uuid.Nil, s.ID)
}

func TestProfileUpdateColumns(t *testing.T) {
	name := "Ram"
	lo, hi := 10000, 15000
	u := ProfileUpdate{Name: &name, SalaryRange: &SalaryRange{Min: &lo, Max: &hi}}

	cols := u.Columns()
	assert.Equal(t, map[string]any{"name": "Ram", "salary_min": &lo, "salary_max": &hi}, cols)
	assert.False(t, u.Empty())
	assert.True(t, ProfileUpdate{}.Empty())

	p := &LabourProfile{Name: "old", TotalScore: 60}
	u.Apply(p)
	assert.Equal(t, "Ram", p.Name)
	assert.Equal(t, 15000, *p.SalaryRange.Max)
	assert.Equal(t, 60, p.TotalScore)
}
