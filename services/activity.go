// services/activity.go
package services

import (
	"errors"
	"log"

	"clubdev/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityService ingests content events (scripts, posts, likes, flags,
// answers), keeps the user's content counters in step, and kicks off an
// eligibility evaluation after every ingest. Evaluation failures never fail
// the ingest; the activity is already committed by then.
type ActivityService struct {
	DB           *gorm.DB
	Gamification *GamificationService
}

func NewActivityService(db *gorm.DB, gamification *GamificationService) *ActivityService {
	return &ActivityService{DB: db, Gamification: gamification}
}

func currentUserID(c *fiber.Ctx) (string, bool) {
	userID, ok := c.Locals("user_id").(string)
	return userID, ok && userID != ""
}

// evaluateAfter runs a best-effort evaluation for each user and folds the
// results into the response payload.
func (s *ActivityService) evaluateAfter(payload fiber.Map, userIDs ...string) fiber.Map {
	granted := make([]GrantedOutcome, 0)
	for _, userID := range userIDs {
		g, err := s.Gamification.Evaluate(userID)
		if err != nil {
			log.Printf("⚠️ Post-activity evaluation failed for %s: %v", userID, err)
			payload["gamification_error"] = "evaluation failed"
			continue
		}
		granted = append(granted, g...)
	}
	payload["granted"] = granted
	return payload
}

// CreateScript ingests a new script for the authenticated user.
func (s *ActivityService) CreateScript(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing user context"})
	}

	var req struct {
		Title       string `json:"title" validate:"required"`
		Content     string `json:"content" validate:"required"`
		Description string `json:"description"`
		Language    string `json:"language" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Title == "" || req.Content == "" || req.Language == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title, content and language are required"})
	}

	script := &models.Script{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Content:     req.Content,
		Description: req.Description,
		Language:    req.Language,
		AuthorID:    userID,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(script).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).
			UpdateColumn("scripts_count", gorm.Expr("scripts_count + ?", 1)).Error
	})
	if err != nil {
		log.Printf("DB Error creating script: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create script"})
	}

	return c.Status(fiber.StatusCreated).JSON(s.evaluateAfter(fiber.Map{"script": script}, userID))
}

// ViewScript bumps a script's view tally. Views do not trigger evaluation;
// the Mastermind rule reads the tally on the author's next evaluation.
func (s *ActivityService) ViewScript(c *fiber.Ctx) error {
	scriptID := c.Params("id")
	if _, err := uuid.Parse(scriptID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid script ID"})
	}

	result := s.DB.Model(&models.Script{}).Where("id = ?", scriptID).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if result.Error != nil {
		log.Printf("DB Error recording view: %v", result.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record view"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Script not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// LikeContent records an upvote on a script or blog post. Both the liker and
// the content's author are re-evaluated: the like feeds the liker's Reviewer
// metrics and the author's popularity metrics.
func (s *ActivityService) LikeContent(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing user context"})
	}

	var req struct {
		ScriptID   *string `json:"script_id"`
		BlogPostID *string `json:"blog_post_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if (req.ScriptID == nil) == (req.BlogPostID == nil) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Exactly one of script_id and blog_post_id is required"})
	}
	if req.ScriptID != nil {
		if _, err := uuid.Parse(*req.ScriptID); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid script ID"})
		}
	}
	if req.BlogPostID != nil {
		if _, err := uuid.Parse(*req.BlogPostID); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid blog post ID"})
		}
	}

	var authorID string
	like := &models.Like{
		ID:         uuid.NewString(),
		UserID:     userID,
		ScriptID:   req.ScriptID,
		BlogPostID: req.BlogPostID,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if req.ScriptID != nil {
			var script models.Script
			if err := tx.First(&script, "id = ?", *req.ScriptID).Error; err != nil {
				return err
			}
			authorID = script.AuthorID
			if err := tx.Model(&models.Script{}).Where("id = ?", script.ID).
				UpdateColumn("likes", gorm.Expr("likes + ?", 1)).Error; err != nil {
				return err
			}
		} else {
			var post models.BlogPost
			if err := tx.First(&post, "id = ?", *req.BlogPostID).Error; err != nil {
				return err
			}
			authorID = post.AuthorID
		}
		if err := tx.Create(like).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).
			UpdateColumn("likes_count", gorm.Expr("likes_count + ?", 1)).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Content not found"})
		}
		log.Printf("DB Error creating like: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create like"})
	}

	targets := []string{userID}
	if authorID != "" && authorID != userID {
		targets = append(targets, authorID)
	}
	return c.Status(fiber.StatusCreated).JSON(s.evaluateAfter(fiber.Map{"like": like}, targets...))
}

// CreateFlag records a moderation report against a script or blog post.
func (s *ActivityService) CreateFlag(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing user context"})
	}

	var req struct {
		Reason     string  `json:"reason" validate:"required"`
		ScriptID   *string `json:"script_id"`
		BlogPostID *string `json:"blog_post_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Reason == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Reason is required"})
	}
	if req.ScriptID != nil {
		if _, err := uuid.Parse(*req.ScriptID); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid script ID"})
		}
	}
	if req.BlogPostID != nil {
		if _, err := uuid.Parse(*req.BlogPostID); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid blog post ID"})
		}
	}

	flag := &models.Flag{
		ID:         uuid.NewString(),
		Reason:     req.Reason,
		FlaggerID:  userID,
		ScriptID:   req.ScriptID,
		BlogPostID: req.BlogPostID,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(flag).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).
			UpdateColumn("flags_count", gorm.Expr("flags_count + ?", 1)).Error
	})
	if err != nil {
		log.Printf("DB Error creating flag: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create flag"})
	}

	return c.Status(fiber.StatusCreated).JSON(s.evaluateAfter(fiber.Map{"flag": flag}, userID))
}

// CreateHelpAnswer records an answer to a community question.
func (s *ActivityService) CreateHelpAnswer(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing user context"})
	}

	var req struct {
		QuestionID string `json:"question_id" validate:"required,uuid"`
		Content    string `json:"content" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if _, err := uuid.Parse(req.QuestionID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid question ID"})
	}
	if req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Content is required"})
	}

	answer := &models.HelpAnswer{
		ID:          uuid.NewString(),
		QuestionID:  req.QuestionID,
		ResponderID: userID,
		Content:     req.Content,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var question models.HelpQuestion
		if err := tx.First(&question, "id = ?", req.QuestionID).Error; err != nil {
			return err
		}
		if err := tx.Create(answer).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).
			UpdateColumn("help_answers_count", gorm.Expr("help_answers_count + ?", 1)).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Question not found"})
		}
		log.Printf("DB Error creating answer: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create answer"})
	}

	return c.Status(fiber.StatusCreated).JSON(s.evaluateAfter(fiber.Map{"answer": answer}, userID))
}

// CreateHelpQuestion records a new community question. Questions carry no
// metric of their own, so no evaluation runs.
func (s *ActivityService) CreateHelpQuestion(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing user context"})
	}

	var req struct {
		Title   string `json:"title" validate:"required"`
		Content string `json:"content" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Title == "" || req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title and content are required"})
	}

	question := &models.HelpQuestion{
		ID:      uuid.NewString(),
		Title:   req.Title,
		Content: req.Content,
		AskerID: userID,
	}
	if err := s.DB.Create(question).Error; err != nil {
		log.Printf("DB Error creating question: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create question"})
	}
	return c.Status(fiber.StatusCreated).JSON(question)
}

// CreateBlogPost ingests a new blog post for the authenticated user.
func (s *ActivityService) CreateBlogPost(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing user context"})
	}

	var req struct {
		Title    string `json:"title" validate:"required"`
		Content  string `json:"content" validate:"required"`
		Category string `json:"category"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Title == "" || req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title and content are required"})
	}

	post := &models.BlogPost{
		ID:       uuid.NewString(),
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		AuthorID: userID,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).
			UpdateColumn("blog_posts_count", gorm.Expr("blog_posts_count + ?", 1)).Error
	})
	if err != nil {
		log.Printf("DB Error creating blog post: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create blog post"})
	}

	return c.Status(fiber.StatusCreated).JSON(s.evaluateAfter(fiber.Map{"post": post}, userID))
}
