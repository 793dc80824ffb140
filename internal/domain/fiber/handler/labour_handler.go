package handler

import (
	"strconv"
	"strings"

	"github.com/fadilmartias/labour-intake/internal/dto"
	"github.com/fadilmartias/labour-intake/internal/logger"
	"github.com/fadilmartias/labour-intake/internal/repository"
	"github.com/fadilmartias/labour-intake/internal/response"
	"github.com/fadilmartias/labour-intake/internal/usecase"
	"github.com/fadilmartias/labour-intake/internal/util"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type LabourHandler struct {
	uc     *usecase.LabourUsecase
	logger *zap.Logger
}

func NewLabourHandler(uc *usecase.LabourUsecase, log *zap.Logger) *LabourHandler {
	return &LabourHandler{uc: uc, logger: logger.Component(log, "labour_handler")}
}

func (h *LabourHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/labour/search", h.Search)
	router.Post("/labour/match", h.Match)
	router.Get("/labour/:id", h.Detail)
	router.Put("/labour/:id", h.Update)
}

func (h *LabourHandler) Search(c *fiber.Ctx) error {
	filter, err := searchFilter(c)
	if err != nil {
		return respondError(c, h.logger, "failed to search profiles", err)
	}
	profiles, total, err := h.uc.Search(c.UserContext(), filter)
	if err != nil {
		return respondError(c, h.logger, "failed to search profiles", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Profiles found",
		Data:       dto.NewLabourProfileSummaries(profiles),
		Pagination: response.NewPagination(filter.Page, filter.PageSize, total),
	})
}

func (h *LabourHandler) Detail(c *fiber.Ctx) error {
	profile, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, "failed to load profile", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Profile found",
		Data:    dto.NewLabourProfileDTO(profile),
	})
}

func (h *LabourHandler) Update(c *fiber.Ctx) error {
	if _, err := jsonBody(c); err != nil {
		return respondError(c, h.logger, "failed to update profile", err)
	}
	var req dto.UpdateLabourProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, h.logger, "failed to update profile", usecase.ErrInvalidInput)
	}
	update := req.ToUpdate()
	if update.Empty() {
		return respondError(c, h.logger, "failed to update profile", invalid("body", "has no editable fields"))
	}

	profile, err := h.uc.Update(c.UserContext(), c.Params("id"), update)
	if err != nil {
		return respondError(c, h.logger, "failed to update profile", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Profile updated",
		Data:    dto.NewLabourProfileDTO(profile),
	})
}

func (h *LabourHandler) Match(c *fiber.Ctx) error {
	if _, err := jsonBody(c); err != nil {
		return respondError(c, h.logger, "failed to match profiles", err)
	}
	var req dto.MatchRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, h.logger, "failed to match profiles", invalid("description", "must be a string"))
	}

	result, err := h.uc.Match(c.UserContext(), req.Description, req.Limit)
	if err != nil {
		return respondError(c, h.logger, "failed to match profiles", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Profiles matched",
		Data: dto.MatchResponse{
			Strategy: result.Strategy,
			Profiles: dto.NewLabourProfileSummaries(result.Profiles),
		},
	})
}

func searchFilter(c *fiber.Ctx) (repository.ProfileFilter, error) {
	fields := map[string]string{}
	intParam := func(key string) *int {
		raw := strings.TrimSpace(c.Query(key))
		if raw == "" {
			return nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			fields[key] = "must be a whole number"
			return nil
		}
		return &n
	}

	filter := repository.ProfileFilter{
		Trade:         c.Query("trade"),
		Location:      c.Query("location"),
		MinExperience: intParam("minExperience"),
		MinSalary:     intParam("minSalary"),
		MaxSalary:     intParam("maxSalary"),
	}
	if page := intParam("page"); page != nil {
		filter.Page = *page
	}
	if size := intParam("pageSize"); size != nil {
		filter.PageSize = *size
	}
	if len(fields) > 0 {
		return filter, &usecase.ValidationError{Fields: fields}
	}
	return filter.Normalize(), nil
}
