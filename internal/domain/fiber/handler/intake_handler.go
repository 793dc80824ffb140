package handler

import (
	"time"

	"github.com/fadilmartias/labour-intake/internal/dto"
	"github.com/fadilmartias/labour-intake/internal/logger"
	"github.com/fadilmartias/labour-intake/internal/middleware"
	"github.com/fadilmartias/labour-intake/internal/usecase"
	"github.com/fadilmartias/labour-intake/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type IntakeHandler struct {
	uc     *usecase.IntakeUsecase
	logger *zap.Logger
}

func NewIntakeHandler(uc *usecase.IntakeUsecase, log *zap.Logger) *IntakeHandler {
	return &IntakeHandler{uc: uc, logger: logger.Component(log, "intake_handler")}
}

func (h *IntakeHandler) RegisterRoutes(router fiber.Router) {
	// each of these waits on the model, so they get a tighter budget than the global limiter
	modelLimit := middleware.RateLimiter(10, 10*time.Second)

	router.Post("/intake/start", modelLimit, h.Start)
	router.Post("/intake/submit", modelLimit, h.Submit)
	router.Post("/interview/submit", modelLimit, h.Interview)
}

func (h *IntakeHandler) Start(c *fiber.Ctx) error {
	body, err := jsonBody(c)
	if err != nil {
		return respondError(c, h.logger, "failed to start intake", err)
	}
	message := body.Get("message")
	if message.Type != gjson.String {
		return respondError(c, h.logger, "failed to start intake", invalid("message", "must be a string"))
	}

	session, err := h.uc.Start(c.UserContext(), message.String())
	if err != nil {
		return respondError(c, h.logger, "failed to start intake", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Intake started",
		Data:    dto.NewStartIntakeResponse(session),
	})
}

func (h *IntakeHandler) Submit(c *fiber.Ctx) error {
	body, err := jsonBody(c)
	if err != nil {
		return respondError(c, h.logger, "failed to submit intake", err)
	}
	var req dto.SubmitIntakeRequest
	if req.SessionID, err = sessionID(body); err == nil {
		req.Answers, err = answers(body)
	}
	if err != nil {
		return respondError(c, h.logger, "failed to submit intake", err)
	}

	result, err := h.uc.Submit(c.UserContext(), req.SessionID, req.Answers)
	if err != nil {
		return respondError(c, h.logger, "failed to submit intake", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Profile created",
		Data: dto.SubmitIntakeResponse{
			Profile: dto.NewLabourProfileDTO(result.Profile),
			Score:   result.Score,
		},
	})
}

func (h *IntakeHandler) Interview(c *fiber.Ctx) error {
	body, err := jsonBody(c)
	if err != nil {
		return respondError(c, h.logger, "failed to write resume", err)
	}
	if r := body.Get("responses"); !r.IsArray() {
		return respondError(c, h.logger, "failed to write resume", invalid("responses", "must be an array"))
	}
	var req dto.InterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, h.logger, "failed to write resume", invalid("responses", "must hold question and answer strings"))
	}

	resume, err := h.uc.Interview(c.UserContext(), req.Language, req.Responses)
	if err != nil {
		return respondError(c, h.logger, "failed to write resume", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Resume written",
		Data:    resume,
	})
}

func sessionID(body gjson.Result) (string, error) {
	id := body.Get("sessionId")
	if id.Type != gjson.String || id.String() == "" {
		return "", invalid("sessionId", "is required")
	}
	return id.String(), nil
}

// answers accepts strings, numbers and nulls; spoken answers like an age often
// arrive as bare numbers.
func answers(body gjson.Result) ([]string, error) {
	raw := body.Get("answers")
	if !raw.IsArray() {
		return nil, invalid("answers", "must be an array")
	}
	items := raw.Array()
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch item.Type {
		case gjson.String, gjson.Number, gjson.Null:
			out = append(out, item.String())
		default:
			return nil, invalid("answers", "must contain only text")
		}
	}
	return out, nil
}
