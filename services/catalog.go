// services/catalog.go
package services

import (
	"errors"
	"log"

	"clubdev/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

// SeedCatalogs inserts the built-in badges, achievements and challenges if
// they are missing. Existing rows are left untouched, so operator edits
// survive restarts. Trophies need no seeding; their catalog is a static
// table consulted at award time.
func (s *CatalogService) SeedCatalogs() error {
	for _, b := range models.BadgeCatalog {
		badge := b
		badge.ID = uuid.NewString()
		if err := s.DB.Where("code = ?", badge.Code).FirstOrCreate(&badge).Error; err != nil {
			return dbErr("seed badge "+badge.Code, err)
		}
	}
	for _, a := range models.AchievementCatalog {
		achievement := a
		achievement.ID = uuid.NewString()
		if err := s.DB.Where("code = ?", achievement.Code).FirstOrCreate(&achievement).Error; err != nil {
			return dbErr("seed achievement "+achievement.Code, err)
		}
	}
	for _, ch := range models.ChallengeCatalog {
		challenge := ch
		challenge.ID = uuid.NewString()
		if err := s.DB.Where("code = ?", challenge.Code).FirstOrCreate(&challenge).Error; err != nil {
			return dbErr("seed challenge "+challenge.Code, err)
		}
	}
	log.Println("✅ Gamification catalogs seeded")
	return nil
}

// --- Public Handlers ---

// ListTrophyCatalog returns the static trophy definitions.
func (s *CatalogService) ListTrophyCatalog(c *fiber.Ctx) error {
	return c.JSON(models.TrophyCatalog)
}

// ListBadges returns all catalog badges.
func (s *CatalogService) ListBadges(c *fiber.Ctx) error {
	var badges []models.Badge
	if err := s.DB.Order("code asc").Find(&badges).Error; err != nil {
		log.Printf("DB Error listing badges: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list badges"})
	}
	return c.JSON(badges)
}

// ListAchievements returns all catalog achievements.
func (s *CatalogService) ListAchievements(c *fiber.Ctx) error {
	var achievements []models.Achievement
	if err := s.DB.Order("code asc").Find(&achievements).Error; err != nil {
		log.Printf("DB Error listing achievements: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list achievements"})
	}
	return c.JSON(achievements)
}

// ListChallenges returns all catalog challenges.
func (s *CatalogService) ListChallenges(c *fiber.Ctx) error {
	var challenges []models.Challenge
	if err := s.DB.Order("code asc").Find(&challenges).Error; err != nil {
		log.Printf("DB Error listing challenges: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list challenges"})
	}
	return c.JSON(challenges)
}

// --- Admin Handlers ---

// CreateBadge creates a new catalog badge (Admin only).
func (s *CatalogService) CreateBadge(c *fiber.Ctx) error {
	var req struct {
		Name        string           `json:"name" validate:"required"`
		Description string           `json:"description"`
		Type        models.BadgeType `json:"type" validate:"required,oneof=Achievement Participation Special Community"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name is required"})
	}

	badge := &models.Badge{
		ID:          uuid.NewString(),
		Code:        slug.Make(req.Name),
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
	}
	if err := s.DB.Create(badge).Error; err != nil {
		log.Printf("DB Error creating badge: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create badge"})
	}
	return c.Status(fiber.StatusCreated).JSON(badge)
}

// CreateAchievement creates a new catalog achievement (Admin only).
func (s *CatalogService) CreateAchievement(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name" validate:"required"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name is required"})
	}

	achievement := &models.Achievement{
		ID:          uuid.NewString(),
		Code:        slug.Make(req.Name),
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.DB.Create(achievement).Error; err != nil {
		log.Printf("DB Error creating achievement: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create achievement"})
	}
	return c.Status(fiber.StatusCreated).JSON(achievement)
}

// CreateChallenge creates a new catalog challenge (Admin only). Challenges
// created here are not picked up by the evaluation rules; they exist for
// manual completion tracking and future rule additions.
func (s *CatalogService) CreateChallenge(c *fiber.Ctx) error {
	var req struct {
		Name        string               `json:"name" validate:"required"`
		Description string               `json:"description"`
		Type        models.ChallengeType `json:"type" validate:"required,oneof=daily weekly monthly"`
		Target      int                  `json:"target"`
		Reward      string               `json:"reward"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name is required"})
	}
	switch req.Type {
	case models.ChallengeDaily, models.ChallengeWeekly, models.ChallengeMonthly:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid challenge type"})
	}

	challenge := &models.Challenge{
		ID:          uuid.NewString(),
		Code:        slug.Make(req.Name),
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		Target:      req.Target,
		Reward:      req.Reward,
	}
	if err := s.DB.Create(challenge).Error; err != nil {
		log.Printf("DB Error creating challenge: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create challenge"})
	}
	return c.Status(fiber.StatusCreated).JSON(challenge)
}

// UpdateBadge updates an existing catalog badge (Admin only). Code is the
// award key and never changes; rename only affects the display name.
func (s *CatalogService) UpdateBadge(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid badge ID"})
	}

	var existing models.Badge
	if err := s.DB.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Badge not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	var req struct {
		Name        *string           `json:"name"`
		Description *string           `json:"description"`
		Type        *models.BadgeType `json:"type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Name != nil && *req.Name != "" {
		existing.Name = *req.Name
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.Type != nil {
		existing.Type = *req.Type
	}

	if err := s.DB.Save(&existing).Error; err != nil {
		log.Printf("DB Error updating badge: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update badge"})
	}
	return c.JSON(existing)
}

// DeleteBadge removes a catalog badge (Admin only). Held UserBadge rows keep
// their badge_id; the ledger stays append-only.
func (s *CatalogService) DeleteBadge(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid badge ID"})
	}

	result := s.DB.Delete(&models.Badge{}, "id = ?", id)
	if result.Error != nil {
		log.Printf("DB Error deleting badge: %v", result.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete badge"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Badge not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateAchievement updates an existing catalog achievement (Admin only).
func (s *CatalogService) UpdateAchievement(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid achievement ID"})
	}

	var existing models.Achievement
	if err := s.DB.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Achievement not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Name != nil && *req.Name != "" {
		existing.Name = *req.Name
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}

	if err := s.DB.Save(&existing).Error; err != nil {
		log.Printf("DB Error updating achievement: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update achievement"})
	}
	return c.JSON(existing)
}

// DeleteAchievement removes a catalog achievement (Admin only).
func (s *CatalogService) DeleteAchievement(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid achievement ID"})
	}

	result := s.DB.Delete(&models.Achievement{}, "id = ?", id)
	if result.Error != nil {
		log.Printf("DB Error deleting achievement: %v", result.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete achievement"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Achievement not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateChallenge updates an existing catalog challenge (Admin only). Code
// stays fixed so already-recorded completions keep their link.
func (s *CatalogService) UpdateChallenge(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid challenge ID"})
	}

	var existing models.Challenge
	if err := s.DB.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Challenge not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	var req struct {
		Name        *string               `json:"name"`
		Description *string               `json:"description"`
		Type        *models.ChallengeType `json:"type"`
		Target      *int                  `json:"target"`
		Reward      *string               `json:"reward"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Type != nil {
		switch *req.Type {
		case models.ChallengeDaily, models.ChallengeWeekly, models.ChallengeMonthly:
			existing.Type = *req.Type
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid challenge type"})
		}
	}
	if req.Name != nil && *req.Name != "" {
		existing.Name = *req.Name
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.Target != nil {
		existing.Target = *req.Target
	}
	if req.Reward != nil {
		existing.Reward = *req.Reward
	}

	if err := s.DB.Save(&existing).Error; err != nil {
		log.Printf("DB Error updating challenge: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update challenge"})
	}
	return c.JSON(existing)
}

// DeleteChallenge removes a catalog challenge (Admin only). A rule whose
// catalog entry is gone fails its evaluation pass with ErrItemNotFound at
// award time.
func (s *CatalogService) DeleteChallenge(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid challenge ID"})
	}

	result := s.DB.Delete(&models.Challenge{}, "id = ?", id)
	if result.Error != nil {
		log.Printf("DB Error deleting challenge: %v", result.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete challenge"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Challenge not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
