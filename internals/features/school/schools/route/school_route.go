package route

import (
	"github.com/gofiber/fiber/v2"

	recordsService "schoolhub_backend/internals/features/school/academics/service"
	schoolctrl "schoolhub_backend/internals/features/school/schools/controller"
)

func SchoolRoutes(r fiber.Router, records *recordsService.RecordsService) {
	handler := schoolctrl.NewSchoolController(records)

	grp := r.Group("/schools")
	{
		grp.Post("/", handler.CreateSchool)
		grp.Get("/", handler.ListSchools)
		grp.Get("/mine", handler.MySchools)
		grp.Get("/:id", handler.GetSchool)
		grp.Patch("/:id", handler.UpdateSchool)
		grp.Delete("/:id", handler.DeleteSchool)
		grp.Post("/:id/students", handler.EnrollStudent)
		grp.Post("/:id/employees", handler.AddEmployee)
	}
}
