package routes

import (
	"deutschklasse_go/controllers"
	"deutschklasse_go/middleware"
	"deutschklasse_go/services"
	"deutschklasse_go/services/chat"
	"deutschklasse_go/storage"

	"github.com/gofiber/fiber/v2"
	fiberws "github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

// SetupRoutes configures all application routes
func SetupRoutes(app *fiber.App, chatService *chat.Service) {
	provisioning := services.NewProvisioningService()

	fileStore, err := storage.NewHomeworkFileStore()
	if err != nil {
		logrus.WithError(err).Warn("Homework file storage unavailable, uploads disabled")
		fileStore = nil
	}

	authController := &controllers.AuthController{Provisioning: provisioning}
	dashboardController := &controllers.DashboardController{Provisioning: provisioning}
	studentController := &controllers.StudentController{Provisioning: provisioning}
	homeworkController := &controllers.HomeworkController{Provisioning: provisioning, Files: fileStore}
	scenarioController := &controllers.ScenarioController{Provisioning: provisioning}
	examController := &controllers.ExamController{Provisioning: provisioning}
	exportController := &controllers.ExportController{Provisioning: provisioning}
	chatController := controllers.NewChatController(chatService)
	healthController := &controllers.HealthController{}

	// API group
	api := app.Group("/api")

	// Authentication (no middleware)
	auth := api.Group("/auth")
	auth.Post("/login", authController.Login)

	// Chat relay - open like the rest of the demo chat flow
	api.Post("/chat", chatController.SendMessage)
	api.Delete("/chat/session/:id", chatController.EndSession)
	api.Get("/chat/ws", fiberws.New(chatController.HandleWebSocket))

	// Teacher endpoints (require a teacher JWT)
	teacher := api.Group("/", middleware.JWTMiddleware(), middleware.RequireTeacher())
	teacher.Get("/teacher/dashboard", dashboardController.GetTeacherDashboard)
	teacher.Get("/teacher/export", exportController.ExportRoster)
	teacher.Get("/student/detail", studentController.GetStudentDetail)
	teacher.Post("/student/push-scheme", studentController.PushScheme)
	teacher.Get("/homework/detail", homeworkController.GetHomeworkDetail)
	teacher.Post("/homework/save", homeworkController.SaveReview)
	teacher.Post("/homework/upload", homeworkController.UploadFile)
	teacher.Post("/scenario/publish", scenarioController.Publish)
	teacher.Post("/scenario/repush", scenarioController.Repush)
	teacher.Post("/exam/generate", examController.Generate)

	// Health check
	app.Get("/health", healthController.GetHealth)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "Deutschklasse backend is running",
		})
	})
}
