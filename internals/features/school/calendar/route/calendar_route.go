package route

import (
	"github.com/gofiber/fiber/v2"

	recordsService "schoolhub_backend/internals/features/school/academics/service"
	calendarctrl "schoolhub_backend/internals/features/school/calendar/controller"
)

func CalendarRoutes(r fiber.Router, records *recordsService.RecordsService) {
	handler := calendarctrl.NewCalendarController(records)

	sessions := r.Group("/sessions")
	{
		sessions.Post("/", handler.CreateSession)
		sessions.Get("/", handler.ListSessions)
		sessions.Get("/:id", handler.GetSession)
		sessions.Patch("/:id", handler.UpdateSession)
		sessions.Post("/:id/deactivate", handler.DeactivateSession)
	}

	terms := r.Group("/terms")
	{
		terms.Post("/", handler.CreateTerm)
		terms.Get("/", handler.ListTerms)
		terms.Get("/:id", handler.GetTerm)
		terms.Patch("/:id", handler.UpdateTerm)
		terms.Post("/:id/deactivate", handler.DeactivateTerm)
	}

	activities := r.Group("/term-activities")
	{
		activities.Post("/", handler.CreateTermActivity)
		activities.Get("/", handler.ListTermActivities)
		activities.Get("/:id", handler.GetTermActivity)
		activities.Patch("/:id", handler.UpdateTermActivity)
		activities.Delete("/:id", handler.DeleteTermActivity)
	}

	breaks := r.Group("/term-breaks")
	{
		breaks.Post("/", handler.CreateTermBreak)
		breaks.Get("/", handler.ListTermBreaks)
		breaks.Get("/:id", handler.GetTermBreak)
		breaks.Patch("/:id", handler.UpdateTermBreak)
		breaks.Delete("/:id", handler.DeleteTermBreak)
	}
}
