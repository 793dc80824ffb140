package handler

import (
	"errors"

	"github.com/fadilmartias/labour-intake/internal/usecase"
	"github.com/fadilmartias/labour-intake/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

var errBodyNotJSON = errors.New("request body must be a JSON object")

// respondError maps usecase errors onto the error envelope. Unexpected errors are
// logged and reported without detail.
func respondError(c *fiber.Ctx, log *zap.Logger, message string, err error) error {
	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request",
			Details: util.NewFormError(verr.Error(), verr.Fields),
		}, err)
	case errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, errBodyNotJSON):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: err.Error(),
		})
	case errors.Is(err, usecase.ErrSessionNotFound), errors.Is(err, usecase.ErrProfileNotFound):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, usecase.ErrSessionCompleted):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusConflict,
			Message: err.Error(),
		})
	}
	log.Error(message, zap.String("path", c.Path()), zap.Error(err))
	return util.ErrorResponse(c, util.ErrorResponseFormat{Message: message}, err)
}

// jsonBody returns the parsed request body, which must be a JSON object.
func jsonBody(c *fiber.Ctx) (gjson.Result, error) {
	body := c.Body()
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, errBodyNotJSON
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return gjson.Result{}, errBodyNotJSON
	}
	return doc, nil
}

func invalid(field, reason string) error {
	return &usecase.ValidationError{Fields: map[string]string{field: reason}}
}
