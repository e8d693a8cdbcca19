package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserID = "9f1c7e36-0bb0-4f5d-9c0e-7a1f2c3d4e5f"

func newMockService(t *testing.T) (*GamificationService, sqlmock.Sqlmock) {
	t.Helper()
	gdb, mock := newMockDB(t)
	svc := NewGamificationService(gdb, testThresholds())
	svc.now = func() time.Time { return time.Date(2024, time.March, 13, 10, 0, 0, 0, time.UTC) }
	return svc, mock
}

// expectEvalSnapshot queues the aggregator sequence with the window bounds
// implied by the service's fixed clock, Wednesday 2024-03-13 10:00 UTC.
func expectEvalSnapshot(mock sqlmock.Sqlmock, values Snapshot) {
	expectSnapshot(mock, testUserID,
		time.Date(2024, time.March, 13, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		values)
}

func expectUserRow(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email"}).
			AddRow(testUserID, "ada", "ada@clubdev.dev"))
}

func TestEvaluateUnknownUser(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	granted, err := svc.Evaluate(testUserID)
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.Nil(t, granted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEvaluateNothingSatisfied(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	expectUserRow(mock)
	expectEvalSnapshot(mock, Snapshot{})
	mock.ExpectCommit()

	granted, err := svc.Evaluate(testUserID)
	require.NoError(t, err)
	assert.Empty(t, granted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEvaluateGrantsTrophy(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	expectUserRow(mock)
	expectEvalSnapshot(mock, Snapshot{MetricScriptCount: 5})

	// Rookie Contributor: not held yet, so one ledger insert plus the audit
	// event and the two counter bumps.
	mock.ExpectQuery(`SELECT count\(\*\) FROM "trophies"`).WillReturnRows(countRows(0))
	mock.ExpectExec(`INSERT INTO "trophies"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "gamification_events"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "users" SET "trophies_count"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "users" SET "gamification_events_count"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	granted, err := svc.Evaluate(testUserID)
	require.NoError(t, err)
	require.Len(t, granted, 1)
	assert.Equal(t, OutcomeTrophy, granted[0].Kind)
	assert.Equal(t, "Rookie Contributor", granted[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEvaluateAlreadyGrantedIsNoop(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	expectUserRow(mock)
	expectEvalSnapshot(mock, Snapshot{MetricScriptCount: 5})

	// Rookie Contributor already on the ledger: no inserts, no counter
	// updates, and an empty result.
	mock.ExpectQuery(`SELECT count\(\*\) FROM "trophies"`).WillReturnRows(countRows(1))
	mock.ExpectCommit()

	granted, err := svc.Evaluate(testUserID)
	require.NoError(t, err)
	assert.Empty(t, granted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEvaluateGrantsChallengeAndRewardBadge(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	expectUserRow(mock)
	expectEvalSnapshot(mock, Snapshot{MetricWeeklyUpvoterCount: 5})

	// Weekly Upvoter completion, then the Reviewer badge its reward names.
	mock.ExpectQuery(`SELECT \* FROM "challenges"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name", "type", "reward"}).
			AddRow("5f0a4c3b-1d2e-4a5b-8c9d-0e1f2a3b4c5d", "weekly-upvoter", "Weekly Upvoter", "weekly", "Reviewer badge"))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "daily_challenges"`).WillReturnRows(countRows(0))
	mock.ExpectExec(`INSERT INTO "daily_challenges"`).WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(`SELECT \* FROM "badges"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name"}).
			AddRow("7b8c9d0e-1f2a-4b5c-8d9e-0f1a2b3c4d5e", "reviewer", "Reviewer"))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "user_badges"`).WillReturnRows(countRows(0))
	mock.ExpectExec(`INSERT INTO "user_badges"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "users" SET "badges_count"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "gamification_events"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "users" SET "gamification_events_count"`).WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec(`INSERT INTO "gamification_events"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "users" SET "challenges_count"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "users" SET "gamification_events_count"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	granted, err := svc.Evaluate(testUserID)
	require.NoError(t, err)
	require.Len(t, granted, 1)
	assert.Equal(t, OutcomeChallenge, granted[0].Kind)
	assert.Equal(t, "Weekly Upvoter", granted[0].Name)
	assert.Equal(t, "Reviewer badge", granted[0].Reward)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEvaluateRollsBackOnInsertFailure(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	expectUserRow(mock)
	expectEvalSnapshot(mock, Snapshot{MetricScriptCount: 5})

	mock.ExpectQuery(`SELECT count\(\*\) FROM "trophies"`).WillReturnRows(countRows(0))
	mock.ExpectExec(`INSERT INTO "trophies"`).WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	granted, err := svc.Evaluate(testUserID)
	require.Error(t, err)
	assert.Nil(t, granted)

	var dberr *DatabaseError
	assert.ErrorAs(t, err, &dberr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAwardTrophyDirect(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "trophies"`).WillReturnRows(countRows(0))
	mock.ExpectExec(`INSERT INTO "trophies"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "gamification_events"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "users" SET "trophies_count"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "users" SET "gamification_events_count"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	inserted, err := svc.AwardTrophy(testUserID, "Helper")
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAwardTrophyDirectAlreadyHeld(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "trophies"`).WillReturnRows(countRows(1))
	mock.ExpectCommit()

	inserted, err := svc.AwardTrophy(testUserID, "Helper")
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAwardBadgeDirectRecordsEvent(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "badges"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name"}).
			AddRow("7b8c9d0e-1f2a-4b5c-8d9e-0f1a2b3c4d5e", "reviewer", "Reviewer"))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "user_badges"`).WillReturnRows(countRows(0))
	mock.ExpectExec(`INSERT INTO "user_badges"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "users" SET "badges_count"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "gamification_events"`).
		WithArgs(sqlmock.AnyArg(), testUserID, "badge:reviewer", badgeEventXP,
			time.Date(2024, time.March, 13, 10, 0, 0, 0, time.UTC)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "users" SET "gamification_events_count"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	inserted, err := svc.AwardBadge(testUserID, "Reviewer")
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAwardAchievementUnknownCode(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "achievements"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	inserted, err := svc.AwardAchievement(testUserID, "Nonexistent")
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.False(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
