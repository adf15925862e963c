package routes

import (
	"github.com/custosapp/custos_backend/handlers"
	"github.com/custosapp/custos_backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func ExamRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	tests := api.Group("/teacher/tests", middleware.Protected(), middleware.TeacherRequired())
	tests.Post("", handlers.CreateTest)
	tests.Get("", handlers.ListTests)
	tests.Get("/:testId", handlers.GetTest)
	tests.Post("/:testId/publish", handlers.PublishTest)
	tests.Delete("/:testId", handlers.DeleteTest)

	submissions := api.Group("/teacher/submissions", middleware.Protected(), middleware.TeacherRequired())
	submissions.Get("", handlers.ListSubmissions)
	submissions.Get("/:submissionId", handlers.GetSubmission)
	submissions.Put("/:submissionId/grade", handlers.GradeSubmission)
	submissions.Post("/:submissionId/regrade", handlers.RegradeSubmission)

	studentExams := api.Group("/exams", middleware.Protected())
	studentExams.Get("/tests", handlers.StudentListTests)
	studentExams.Get("/tests/:testId/start", handlers.StartTest)
	studentExams.Post("/tests/:testId/submit", handlers.SubmitTest)
	studentExams.Get("/submissions", handlers.GetMySubmissions)
}
