package services

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newActivityApp(svc *ActivityService) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", testUserID)
		return c.Next()
	})
	app.Post("/likes", svc.LikeContent)
	app.Post("/flags", svc.CreateFlag)
	return app
}

func TestLikeContentRejectsMalformedScriptID(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewActivityService(gdb, NewGamificationService(gdb, testThresholds()))
	app := newActivityApp(svc)

	req := httptest.NewRequest("POST", "/likes",
		strings.NewReader(`{"script_id":"not-a-uuid"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeContentRejectsMalformedBlogPostID(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewActivityService(gdb, NewGamificationService(gdb, testThresholds()))
	app := newActivityApp(svc)

	req := httptest.NewRequest("POST", "/likes",
		strings.NewReader(`{"blog_post_id":"42"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeContentRequiresExactlyOneTarget(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewActivityService(gdb, NewGamificationService(gdb, testThresholds()))
	app := newActivityApp(svc)

	req := httptest.NewRequest("POST", "/likes", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFlagRejectsMalformedScriptID(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewActivityService(gdb, NewGamificationService(gdb, testThresholds()))
	app := newActivityApp(svc)

	req := httptest.NewRequest("POST", "/flags",
		strings.NewReader(`{"reason":"spam","script_id":"abc"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFlagRejectsMalformedBlogPostID(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewActivityService(gdb, NewGamificationService(gdb, testThresholds()))
	app := newActivityApp(svc)

	req := httptest.NewRequest("POST", "/flags",
		strings.NewReader(`{"reason":"spam","blog_post_id":"abc"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}
