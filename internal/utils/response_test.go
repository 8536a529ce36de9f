package utils

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestSuccessResponse(t *testing.T) {
	app := fiber.New()

	app.Get("/ok", func(c *fiber.Ctx) error {
		return SuccessResponse(c, fiber.Map{"value": 42}, "All good", fiber.StatusCreated)
	})

	req := httptest.NewRequest("GET", "/ok", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var result struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
		Message string         `json:"message"`
	}
	err = json.Unmarshal(body, &result)
	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "All good", result.Message)
	assert.EqualValues(t, 42, result.Data["value"])
}

func TestErrorResponse(t *testing.T) {
	app := fiber.New()

	app.Get("/error", func(c *fiber.Ctx) error {
		return ErrorResponse(c, "storage_unavailable", fiber.StatusServiceUnavailable)
	})

	req := httptest.NewRequest("GET", "/error", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var result struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	err = json.Unmarshal(body, &result)
	assert.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "storage_unavailable", result.Error)
}

func TestErrorResponse_DefaultStatus(t *testing.T) {
	app := fiber.New()

	app.Get("/error", func(c *fiber.Ctx) error {
		return ErrorResponse(c, "boom")
	})

	req := httptest.NewRequest("GET", "/error", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestAPIError(t *testing.T) {
	e := NewAPIError("NOT_FOUND", "Resource not found", fiber.StatusNotFound)
	assert.Equal(t, "Resource not found", e.Error())
	assert.Equal(t, fiber.StatusNotFound, e.Status)
	assert.Equal(t, "NOT_FOUND", ErrNotFound.Code)
}
