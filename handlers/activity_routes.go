// handlers/activity_routes.go
package handlers

import (
	"clubdev/middleware"
	"clubdev/services"

	"github.com/gofiber/fiber/v2"
)

func SetupActivityRoutes(app *fiber.App, activityService *services.ActivityService) {
	// Script views arrive unauthenticated (public pages count too)
	app.Post("/scripts/:id/view", activityService.ViewScript)

	// 🔐 Secured routes — every ingest needs the acting user's identity
	securedGroup := app.Group("/s", middleware.UserContextMiddleware())

	securedGroup.Post("/scripts", activityService.CreateScript)
	securedGroup.Post("/likes", activityService.LikeContent)
	securedGroup.Post("/flags", activityService.CreateFlag)
	securedGroup.Post("/blog-posts", activityService.CreateBlogPost)
	securedGroup.Post("/help/questions", activityService.CreateHelpQuestion)
	securedGroup.Post("/help/answers", activityService.CreateHelpAnswer)
}
