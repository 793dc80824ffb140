package dto

import (
	"github.com/fadilmartias/labour-intake/internal/intake"
	"github.com/fadilmartias/labour-intake/internal/model"
)

type StartIntakeRequest struct {
	Message string `json:"message"`
}

type StartIntakeResponse struct {
	SessionID           string   `json:"sessionId"`
	Language            string   `json:"language"`
	Trade               string   `json:"trade"`
	AllQuestions        []string `json:"allQuestions"`
	BasicQuestionsCount int      `json:"basicQuestionsCount"`
	TotalQuestions      int      `json:"totalQuestions"`
}

func NewStartIntakeResponse(s *model.ConversationSession) StartIntakeResponse {
	return StartIntakeResponse{
		SessionID:           s.ID.String(),
		Language:            s.Language,
		Trade:               s.Trade,
		AllQuestions:        s.Questions,
		BasicQuestionsCount: len(s.BasicQuestions()),
		TotalQuestions:      len(s.Questions),
	}
}

type SubmitIntakeRequest struct {
	SessionID string   `json:"sessionId"`
	Answers   []string `json:"answers"`
}

type SubmitIntakeResponse struct {
	Profile LabourProfileDTO `json:"profile"`
	Score   int              `json:"score"`
}

type InterviewRequest struct {
	Language  string                     `json:"language"`
	Responses []intake.InterviewResponse `json:"responses"`
}
