// services/scheduler.go
package services

import (
	"log"
	"time"

	"clubdev/models"

	"github.com/go-co-op/gocron/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// leaderboardCriteria maps a snapshot name to the users column it ranks by.
// "xp" is snapshotted separately from the audit events.
var leaderboardCriteria = map[string]string{
	"trophies":   "trophies_count",
	"challenges": "challenges_count",
	"badges":     "badges_count",
}

const leaderboardSize = 100

func validLeaderboard(criteria string) bool {
	if criteria == "xp" {
		return true
	}
	_, ok := leaderboardCriteria[criteria]
	return ok
}

// StartLeaderboardScheduler snapshots the top users per ranking criteria on
// an hourly cadence. Snapshots are append-only; readers take the latest batch.
func (s *GamificationService) StartLeaderboardScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Hourly: snapshot each leaderboard
	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			for criteria, column := range leaderboardCriteria {
				if err := s.snapshotLeaderboard(criteria, column); err != nil {
					log.Printf("[Scheduler] Leaderboard snapshot failed for %s: %v", criteria, err)
				}
			}
			if err := s.snapshotXPLeaderboard(); err != nil {
				log.Printf("[Scheduler] Leaderboard snapshot failed for xp: %v", err)
			}
		}),
	)
}

func (s *GamificationService) snapshotLeaderboard(criteria, column string) error {
	var users []models.User
	if err := s.DB.Order(column + " desc").Limit(leaderboardSize).Find(&users).Error; err != nil {
		return dbErr("rank users by "+column, err)
	}

	recordedAt := s.now()
	rows := make([]models.Leaderboard, 0, len(users))
	for i, u := range users {
		rows = append(rows, models.Leaderboard{
			ID:              uuid.NewString(),
			UserID:          u.ID,
			RankingCriteria: criteria,
			Rank:            i + 1,
			RecordedAt:      recordedAt,
		})
	}
	if len(rows) == 0 {
		return nil
	}
	if err := s.DB.Create(&rows).Error; err != nil {
		return dbErr("insert leaderboard "+criteria, err)
	}
	log.Printf("✅ Leaderboard snapshot recorded: criteria=%s entries=%d", criteria, len(rows))
	return nil
}

// snapshotXPLeaderboard ranks users by total XP accumulated on their audit
// events.
func (s *GamificationService) snapshotXPLeaderboard() error {
	var ranked []struct {
		UserID string
		Total  int64
	}
	if err := s.DB.Model(&models.GamificationEvent{}).
		Select("user_id, SUM(xp_reward) AS total").
		Group("user_id").
		Order("total desc").
		Limit(leaderboardSize).
		Scan(&ranked).Error; err != nil {
		return dbErr("rank users by xp", err)
	}

	recordedAt := s.now()
	rows := make([]models.Leaderboard, 0, len(ranked))
	for i, r := range ranked {
		rows = append(rows, models.Leaderboard{
			ID:              uuid.NewString(),
			UserID:          r.UserID,
			RankingCriteria: "xp",
			Rank:            i + 1,
			RecordedAt:      recordedAt,
		})
	}
	if len(rows) == 0 {
		return nil
	}
	if err := s.DB.Create(&rows).Error; err != nil {
		return dbErr("insert leaderboard xp", err)
	}
	log.Printf("✅ Leaderboard snapshot recorded: criteria=xp entries=%d", len(rows))
	return nil
}

// GetLeaderboard returns the latest snapshot for the criteria in the path.
func (s *GamificationService) GetLeaderboard(c *fiber.Ctx) error {
	criteria := c.Params("criteria")
	if !validLeaderboard(criteria) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Unknown leaderboard"})
	}

	var latest time.Time
	if err := s.DB.Model(&models.Leaderboard{}).
		Where("ranking_criteria = ?", criteria).
		Select("COALESCE(MAX(recorded_at), '0001-01-01')").
		Scan(&latest).Error; err != nil {
		log.Printf("DB Error reading leaderboard %s: %v", criteria, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read leaderboard"})
	}

	var entries []models.Leaderboard
	if err := s.DB.
		Where("ranking_criteria = ? AND recorded_at = ?", criteria, latest).
		Order("rank asc").
		Find(&entries).Error; err != nil {
		log.Printf("DB Error reading leaderboard %s: %v", criteria, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read leaderboard"})
	}
	return c.JSON(fiber.Map{"criteria": criteria, "recorded_at": latest, "entries": entries})
}
