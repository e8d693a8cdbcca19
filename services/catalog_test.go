package services

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBadgeID = "7b8c9d0e-1f2a-4b5c-8d9e-0f1a2b3c4d5e"

func newCatalogApp(svc *CatalogService) *fiber.App {
	app := fiber.New()
	app.Put("/catalog/badges/:id", svc.UpdateBadge)
	app.Delete("/catalog/badges/:id", svc.DeleteBadge)
	app.Put("/catalog/challenges/:id", svc.UpdateChallenge)
	app.Delete("/catalog/challenges/:id", svc.DeleteChallenge)
	return app
}

func TestUpdateBadge(t *testing.T) {
	gdb, mock := newMockDB(t)
	app := newCatalogApp(NewCatalogService(gdb))

	mock.ExpectQuery(`SELECT \* FROM "badges"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name", "type"}).
			AddRow(testBadgeID, "reviewer", "Reviewer", "Community"))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "badges" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	req := httptest.NewRequest("PUT", "/catalog/badges/"+testBadgeID,
		strings.NewReader(`{"description":"Steady upvoter"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBadgeInvalidID(t *testing.T) {
	gdb, mock := newMockDB(t)
	app := newCatalogApp(NewCatalogService(gdb))

	req := httptest.NewRequest("PUT", "/catalog/badges/not-a-uuid",
		strings.NewReader(`{"description":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteBadge(t *testing.T) {
	gdb, mock := newMockDB(t)
	app := newCatalogApp(NewCatalogService(gdb))

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "badges"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	req := httptest.NewRequest("DELETE", "/catalog/badges/"+testBadgeID, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteBadgeNotFound(t *testing.T) {
	gdb, mock := newMockDB(t)
	app := newCatalogApp(NewCatalogService(gdb))

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "badges"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	req := httptest.NewRequest("DELETE", "/catalog/badges/"+testBadgeID, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateChallenge(t *testing.T) {
	gdb, mock := newMockDB(t)
	app := newCatalogApp(NewCatalogService(gdb))

	mock.ExpectQuery(`SELECT \* FROM "challenges"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name", "type", "target", "reward"}).
			AddRow("5f0a4c3b-1d2e-4a5b-8c9d-0e1f2a3b4c5d", "daily-upload", "Daily Upload", "daily", 1, "100 bonus XP"))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "challenges" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	req := httptest.NewRequest("PUT", "/catalog/challenges/5f0a4c3b-1d2e-4a5b-8c9d-0e1f2a3b4c5d",
		strings.NewReader(`{"target":2,"reward":"200 bonus XP"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateChallengeRejectsBadType(t *testing.T) {
	gdb, mock := newMockDB(t)
	app := newCatalogApp(NewCatalogService(gdb))

	mock.ExpectQuery(`SELECT \* FROM "challenges"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name", "type"}).
			AddRow("5f0a4c3b-1d2e-4a5b-8c9d-0e1f2a3b4c5d", "daily-upload", "Daily Upload", "daily"))

	req := httptest.NewRequest("PUT", "/catalog/challenges/5f0a4c3b-1d2e-4a5b-8c9d-0e1f2a3b4c5d",
		strings.NewReader(`{"type":"hourly"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}
