package route

import (
	"github.com/gofiber/fiber/v2"

	recordsService "schoolhub_backend/internals/features/school/academics/service"
	classctrl "schoolhub_backend/internals/features/school/classes/controller"
)

func ClassRoutes(r fiber.Router, records *recordsService.RecordsService) {
	handler := classctrl.NewClassController(records)

	grp := r.Group("/classes")
	{
		grp.Post("/", handler.CreateClass)
		grp.Get("/", handler.ListClasses)
		grp.Get("/:id", handler.GetClass)
		grp.Patch("/:id", handler.UpdateClass)
		grp.Delete("/:id", handler.DeleteClass)

		// roster membership
		grp.Post("/assign-teacher", handler.AssignTeacher)
		grp.Post("/assign-student", handler.AssignStudent)
		grp.Post("/reassign-teacher", handler.ReassignTeacher)
		grp.Post("/reassign-student", handler.ReassignStudent)
		grp.Post("/make-captain", handler.MakeCaptain)
		grp.Post("/delete-captain", handler.DeleteCaptain)
	}
}
