package routes

import (
	"github.com/custosapp/custos_backend/handlers"
	"github.com/custosapp/custos_backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func TimetableRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin/timetables", middleware.Protected(), middleware.AdminRequired())
	admin.Post("/generate", handlers.GenerateTimetables)
	admin.Put("/:timetableId/entries/:entryId", handlers.UpdateTimetableEntry)
	admin.Delete("/:timetableId", handlers.DeleteTimetable)

	// Every authenticated role can view its class grid.
	api.Get("/timetables/:className/:section", middleware.Protected(), handlers.GetTimetable)
}
