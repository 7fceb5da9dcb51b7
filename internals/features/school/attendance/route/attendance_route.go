package route

import (
	"github.com/gofiber/fiber/v2"

	recordsService "schoolhub_backend/internals/features/school/academics/service"
	attendancectrl "schoolhub_backend/internals/features/school/attendance/controller"
)

func AttendanceRoutes(r fiber.Router, records *recordsService.RecordsService) {
	handler := attendancectrl.NewAttendanceController(records)

	grp := r.Group("/class-attendance")
	{
		grp.Post("/", handler.MarkClassAttendance)
		grp.Get("/", handler.ListAttendance)
		grp.Get("/percentage", handler.AttendancePercentage)
		grp.Get("/:id", handler.GetAttendance)
		grp.Patch("/:id", handler.UpdateAttendance)
	}

	staff := r.Group("/staff-attendance")
	{
		staff.Post("/", handler.MarkStaffAttendance)
		staff.Get("/", handler.ListStaffAttendance)
	}
}
