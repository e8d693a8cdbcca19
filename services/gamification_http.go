// services/gamification_http.go
package services

import (
	"errors"
	"log"

	"clubdev/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// requestUserID resolves the target user: the :id path param when present
// (admin and service-to-service routes), otherwise the gateway-forwarded
// identity from the middleware.
func requestUserID(c *fiber.Ctx) (string, error) {
	userID := c.Params("id")
	if userID == "" {
		userID, _ = c.Locals("user_id").(string)
	}
	if _, err := uuid.Parse(userID); err != nil {
		return "", c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}
	return userID, nil
}

// EvaluateUser runs a full evaluation pass for the target user and returns
// the newly granted outcomes.
func (s *GamificationService) EvaluateUser(c *fiber.Ctx) error {
	userID, err := requestUserID(c)
	if userID == "" {
		return err
	}

	granted, err := s.Evaluate(userID)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		log.Printf("DB Error evaluating user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Evaluation failed"})
	}
	return c.JSON(fiber.Map{"granted": granted})
}

// GetUserTrophies returns the user's trophy ledger, newest first.
func (s *GamificationService) GetUserTrophies(c *fiber.Ctx) error {
	userID, err := requestUserID(c)
	if userID == "" {
		return err
	}

	var trophies []models.Trophy
	if err := s.DB.Where("user_id = ?", userID).Order("awarded_at desc").Find(&trophies).Error; err != nil {
		log.Printf("DB Error listing trophies for %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list trophies"})
	}
	return c.JSON(trophies)
}

// GetUserBadges returns the catalog badges the user holds.
func (s *GamificationService) GetUserBadges(c *fiber.Ctx) error {
	userID, err := requestUserID(c)
	if userID == "" {
		return err
	}

	var badges []models.Badge
	if err := s.DB.
		Joins("JOIN user_badges ON user_badges.badge_id = badges.id").
		Where("user_badges.user_id = ?", userID).
		Find(&badges).Error; err != nil {
		log.Printf("DB Error listing badges for %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list badges"})
	}
	return c.JSON(badges)
}

// GetUserAchievements returns the catalog achievements the user holds.
func (s *GamificationService) GetUserAchievements(c *fiber.Ctx) error {
	userID, err := requestUserID(c)
	if userID == "" {
		return err
	}

	var achievements []models.Achievement
	if err := s.DB.
		Joins("JOIN user_achievements ON user_achievements.achievement_id = achievements.id").
		Where("user_achievements.user_id = ?", userID).
		Find(&achievements).Error; err != nil {
		log.Printf("DB Error listing achievements for %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list achievements"})
	}
	return c.JSON(achievements)
}

// GetUserChallenges returns the user's challenge completions, newest first.
func (s *GamificationService) GetUserChallenges(c *fiber.Ctx) error {
	userID, err := requestUserID(c)
	if userID == "" {
		return err
	}

	var completions []models.DailyChallenge
	if err := s.DB.Where("user_id = ?", userID).Order("window_date desc").Find(&completions).Error; err != nil {
		log.Printf("DB Error listing challenges for %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list challenges"})
	}
	return c.JSON(completions)
}

// GetUserEvents returns the user's gamification audit trail, newest first.
func (s *GamificationService) GetUserEvents(c *fiber.Ctx) error {
	userID, err := requestUserID(c)
	if userID == "" {
		return err
	}

	var events []models.GamificationEvent
	if err := s.DB.Where("user_id = ?", userID).Order("event_timestamp desc").Find(&events).Error; err != nil {
		log.Printf("DB Error listing events for %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list events"})
	}
	return c.JSON(events)
}

// GetUserGamification returns the user's counters plus their most recent
// audit events.
func (s *GamificationService) GetUserGamification(c *fiber.Ctx) error {
	userID, err := requestUserID(c)
	if userID == "" {
		return err
	}

	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		log.Printf("DB Error loading user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load user"})
	}

	var recent []models.GamificationEvent
	if err := s.DB.Where("user_id = ?", userID).
		Order("event_timestamp desc").Limit(10).Find(&recent).Error; err != nil {
		log.Printf("DB Error listing events for %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list events"})
	}

	return c.JSON(fiber.Map{
		"trophies_count":            user.TrophiesCount,
		"challenges_count":          user.ChallengesCount,
		"badges_count":              user.BadgesCount,
		"achievements_count":        user.AchievementsCount,
		"gamification_events_count": user.GamificationEventsCount,
		"recent_events":             recent,
	})
}

// --- Admin Handlers ---

type awardRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	Name   string `json:"name" validate:"required"`
}

func parseAwardRequest(c *fiber.Ctx) (*awardRequest, error) {
	var req awardRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if _, err := uuid.Parse(req.UserID); err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}
	if req.Name == "" {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name is required"})
	}
	return &req, nil
}

func (s *GamificationService) respondAward(c *fiber.Ctx, kind string, inserted bool, err error) error {
	if err != nil {
		if errors.Is(err, ErrItemNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Unknown " + kind})
		}
		log.Printf("DB Error awarding %s: %v", kind, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to award " + kind})
	}
	status := fiber.StatusCreated
	if !inserted {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(fiber.Map{"awarded": inserted})
}

// AwardTrophyHandler grants a single trophy to a user (Admin only).
func (s *GamificationService) AwardTrophyHandler(c *fiber.Ctx) error {
	req, err := parseAwardRequest(c)
	if req == nil {
		return err
	}
	inserted, err := s.AwardTrophy(req.UserID, req.Name)
	return s.respondAward(c, "trophy", inserted, err)
}

// AwardBadgeHandler grants a single badge to a user (Admin only).
func (s *GamificationService) AwardBadgeHandler(c *fiber.Ctx) error {
	req, err := parseAwardRequest(c)
	if req == nil {
		return err
	}
	inserted, err := s.AwardBadge(req.UserID, req.Name)
	return s.respondAward(c, "badge", inserted, err)
}

// AwardAchievementHandler grants a single achievement to a user (Admin only).
func (s *GamificationService) AwardAchievementHandler(c *fiber.Ctx) error {
	req, err := parseAwardRequest(c)
	if req == nil {
		return err
	}
	inserted, err := s.AwardAchievement(req.UserID, req.Name)
	return s.respondAward(c, "achievement", inserted, err)
}
