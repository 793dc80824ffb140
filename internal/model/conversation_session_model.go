package model

import (
	"errors"
	"time"

	"github.com/fadilmartias/labour-intake/internal/intake"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	SessionStatusCollecting = "collecting"
	SessionStatusCompleted  = "completed"
)

var ErrSessionAlreadyCompleted = errors.New("session already completed")

type ConversationSession struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	InitialMessage string         `gorm:"type:text" json:"initialMessage"`
	Language       string         `gorm:"type:varchar(20)" json:"language"`
	Trade          string         `gorm:"type:varchar(100)" json:"trade"`
	Questions      pq.StringArray `gorm:"type:text[]" json:"questions"`
	Answers        pq.StringArray `gorm:"type:text[]" json:"answers"`
	Status         string         `gorm:"type:varchar(20);index" json:"status"` // "collecting" or "completed"
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

func (s *ConversationSession) TableName() string {
	return "conversation_sessions"
}

// BeforeCreate assigns the id in Go so every store hands out the same kind of key.
func (s *ConversationSession) BeforeCreate(*gorm.DB) error {
	s.EnsureID()
	return nil
}

func (s *ConversationSession) EnsureID() {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
}

// BasicQuestions is the identity part of the interview.
func (s *ConversationSession) BasicQuestions() []string {
	return s.Questions[:s.basicBoundary()]
}

func (s *ConversationSession) WorkQuestions() []string {
	return s.Questions[s.basicBoundary():]
}

func (s *ConversationSession) basicBoundary() int {
	return min(intake.BasicQuestionCount, len(s.Questions))
}

// AlignAnswers returns exactly one answer per question: missing trailing answers
// become empty strings and extras are dropped.
func (s *ConversationSession) AlignAnswers(raw []string) []string {
	aligned := make([]string, len(s.Questions))
	copy(aligned, raw)
	return aligned
}

// Complete stores the aligned answers and closes the session in one step.
func (s *ConversationSession) Complete(answers []string) error {
	if s.Status == SessionStatusCompleted {
		return ErrSessionAlreadyCompleted
	}
	s.Answers = pq.StringArray(s.AlignAnswers(answers))
	s.Status = SessionStatusCompleted
	return nil
}
