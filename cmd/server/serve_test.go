package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fadilmartias/labour-intake/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// The app config is loaded once per process, so this is the only test here that reads it.
func TestProductionErrorsHideInternalDetail(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	appConfig := config.LoadAppConfig()
	require.True(t, appConfig.IsProduction())

	app := newApp(appConfig, zap.NewNop())
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic("pq: password authentication failed for user admin")
	})
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Internal Server Error", gjson.GetBytes(raw, "message").String())
	assert.NotContains(t, string(raw), "password")
	assert.False(t, gjson.GetBytes(raw, "dev_message").Exists())
	assert.False(t, gjson.GetBytes(raw, "trace").Exists())

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/teapot", nil), -1)
	require.NoError(t, err)
	raw, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
	assert.Equal(t, "short and stout", gjson.GetBytes(raw, "message").String())
}
