// handlers/gamification_routes.go
package handlers

import (
	"clubdev/middleware"
	"clubdev/services"

	"github.com/gofiber/fiber/v2"
)

func SetupGamificationRoutes(app *fiber.App, gamificationService *services.GamificationService, catalogService *services.CatalogService) {
	// Public catalog reads
	app.Get("/catalog/trophies", catalogService.ListTrophyCatalog)
	app.Get("/catalog/badges", catalogService.ListBadges)
	app.Get("/catalog/achievements", catalogService.ListAchievements)
	app.Get("/catalog/challenges", catalogService.ListChallenges)
	app.Get("/leaderboards/:criteria", gamificationService.GetLeaderboard)

	// 🔐 Secured routes — require user context from the gateway
	securedGroup := app.Group("/s", middleware.UserContextMiddleware())

	// Current-user routes resolve the target from the gateway identity
	securedGroup.Get("/user/gamification", gamificationService.GetUserGamification)
	securedGroup.Get("/user/trophies", gamificationService.GetUserTrophies)
	securedGroup.Get("/user/badges", gamificationService.GetUserBadges)
	securedGroup.Get("/user/achievements", gamificationService.GetUserAchievements)
	securedGroup.Get("/user/challenges", gamificationService.GetUserChallenges)
	securedGroup.Get("/user/events", gamificationService.GetUserEvents)

	// Service-to-service routes address any user by id
	securedGroup.Post("/users/:id/evaluate", gamificationService.EvaluateUser)
	securedGroup.Get("/users/:id/trophies", gamificationService.GetUserTrophies)
	securedGroup.Get("/users/:id/badges", gamificationService.GetUserBadges)
	securedGroup.Get("/users/:id/achievements", gamificationService.GetUserAchievements)
	securedGroup.Get("/users/:id/challenges", gamificationService.GetUserChallenges)
	securedGroup.Get("/users/:id/events", gamificationService.GetUserEvents)

	// Admin endpoints
	adminGroup := app.Group("/s/admin", middleware.UserContextMiddleware(), middleware.RequireAdmin())

	adminGroup.Post("/users/:id/evaluate", gamificationService.EvaluateUser)
	adminGroup.Post("/awards/trophy", gamificationService.AwardTrophyHandler)
	adminGroup.Post("/awards/badge", gamificationService.AwardBadgeHandler)
	adminGroup.Post("/awards/achievement", gamificationService.AwardAchievementHandler)

	adminGroup.Post("/catalog/badges", catalogService.CreateBadge)
	adminGroup.Put("/catalog/badges/:id", catalogService.UpdateBadge)
	adminGroup.Delete("/catalog/badges/:id", catalogService.DeleteBadge)
	adminGroup.Post("/catalog/achievements", catalogService.CreateAchievement)
	adminGroup.Put("/catalog/achievements/:id", catalogService.UpdateAchievement)
	adminGroup.Delete("/catalog/achievements/:id", catalogService.DeleteAchievement)
	adminGroup.Post("/catalog/challenges", catalogService.CreateChallenge)
	adminGroup.Put("/catalog/challenges/:id", catalogService.UpdateChallenge)
	adminGroup.Delete("/catalog/challenges/:id", catalogService.DeleteChallenge)
}
