// Package client talks to a running labour-intake API.
package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fadilmartias/labour-intake/internal/dto"
	"github.com/fadilmartias/labour-intake/internal/repository"
	"github.com/fadilmartias/labour-intake/internal/response"
	"github.com/go-resty/resty/v2"
)

type envelope[T any] struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message"`
	Data       T                    `json:"data"`
	Pagination *response.Pagination `json:"pagination"`
	Details    struct {
		Errors map[string]string `json:"errors"`
	} `json:"details"`
}

// APIError is a non-2xx reply from the server.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("api status %d: %s", e.Status, e.Message)
	for field, reason := range e.Fields {
		msg += fmt.Sprintf("; %s %s", field, reason)
	}
	return msg
}

type Client struct {
	http *resty.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetHeader("Content-Type", "application/json").
			SetTimeout(timeout),
	}
}

func (c *Client) StartIntake(ctx context.Context, message string) (*dto.StartIntakeResponse, error) {
	env, err := send[dto.StartIntakeResponse](c.http.R().SetContext(ctx).
		SetBody(dto.StartIntakeRequest{Message: message}), resty.MethodPost, "/api/intake/start")
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

func (c *Client) SubmitIntake(ctx context.Context, sessionID string, answers []string) (*dto.SubmitIntakeResponse, error) {
	env, err := send[dto.SubmitIntakeResponse](c.http.R().SetContext(ctx).
		SetBody(dto.SubmitIntakeRequest{SessionID: sessionID, Answers: answers}), resty.MethodPost, "/api/intake/submit")
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

func (c *Client) Search(ctx context.Context, filter repository.ProfileFilter) ([]dto.LabourProfileSummary, *response.Pagination, error) {
	params := map[string]string{}
	setInt := func(key string, v *int) {
		if v != nil {
			params[key] = strconv.Itoa(*v)
		}
	}
	if filter.Trade != "" {
		params["trade"] = filter.Trade
	}
	if filter.Location != "" {
		params["location"] = filter.Location
	}
	setInt("minExperience", filter.MinExperience)
	setInt("minSalary", filter.MinSalary)
	setInt("maxSalary", filter.MaxSalary)
	if filter.Page > 0 {
		params["page"] = strconv.Itoa(filter.Page)
	}
	if filter.PageSize > 0 {
		params["pageSize"] = strconv.Itoa(filter.PageSize)
	}

	env, err := send[[]dto.LabourProfileSummary](c.http.R().SetContext(ctx).
		SetQueryParams(params), resty.MethodGet, "/api/labour/search")
	if err != nil {
		return nil, nil, err
	}
	return env.Data, env.Pagination, nil
}

func send[T any](req *resty.Request, method, path string) (*envelope[T], error) {
	var ok, failed envelope[T]
	resp, err := req.SetResult(&ok).SetError(&failed).Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		apiErr := &APIError{Status: resp.StatusCode(), Message: failed.Message, Fields: failed.Details.Errors}
		if apiErr.Message == "" {
			apiErr.Message = resp.Status()
		}
		return nil, apiErr
	}
	return &ok, nil
}
