package routes

import (
	"github.com/custosapp/custos_backend/handlers"
	"github.com/custosapp/custos_backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	schools := api.Group("/schools", middleware.Protected(), middleware.SuperAdminRequired())
	schools.Post("", handlers.CreateSchool)
	schools.Get("", handlers.ListSchools)

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Post("/teachers", handlers.CreateTeacherProfile)
	admin.Get("/teachers", handlers.ListTeacherProfiles)
	admin.Put("/teachers/:userId", handlers.UpdateTeacherProfile)

	admin.Post("/classes", handlers.CreateClass)
	admin.Get("/classes", handlers.ListClasses)

	admin.Post("/students", handlers.EnrollStudent)
	admin.Get("/students", handlers.ListStudents)
	admin.Delete("/students/:studentId", handlers.DeleteStudent)

	assignments := api.Group("/teacher/assignments", middleware.Protected(), middleware.TeacherRequired())
	assignments.Post("", handlers.CreateAssignment)
	assignments.Get("", handlers.ListAssignments)
	assignments.Put("/:assignmentId", handlers.UpdateAssignment)
	assignments.Delete("/:assignmentId", handlers.DeleteAssignment)

	// Read-only assignment list for students and parents.
	api.Get("/assignments", middleware.Protected(), handlers.ListAssignments)
}
