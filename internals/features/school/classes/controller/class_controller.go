package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	recordsService "schoolhub_backend/internals/features/school/academics/service"
	classDTO "schoolhub_backend/internals/features/school/classes/dto"
	rosterService "schoolhub_backend/internals/features/school/classes/service"
	helper "schoolhub_backend/internals/helpers"
)

type ClassController struct {
	Records   *recordsService.RecordsService
	Validator *validator.Validate
}

func NewClassController(records *recordsService.RecordsService) *ClassController {
	return &ClassController{
		Records:   records,
		Validator: validator.New(),
	}
}

// ===============================
// Class CRUD
// ===============================

// POST /classes
func (ctl *ClassController) CreateClass(c *fiber.Ctx) error {
	var req classDTO.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	cls, err := ctl.Records.Roster.CreateClass(c.UserContext(), req.ClassSchoolID, req.ClassName, req.ClassDescription)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOKWithCode(c, fiber.StatusCreated, "Class created successfully", cls)
}

// GET /classes
func (ctl *ClassController) ListClasses(c *fiber.Ctx) error {
	var q classDTO.ListClassesQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query parameters")
	}

	p := helper.ParsePageParams(c)
	rows, total, err := ctl.Records.Roster.ListClasses(c.UserContext(), rosterService.ClassFilter{
		SchoolID: q.SchoolID,
		Name:     q.Name,
		IsActive: q.IsActive,
	}, p.Limit(), p.Offset())
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonList(c, "Classes fetched successfully", rows, p.BuildPagination(total))
}

// GET /classes/:id — class plus roster grouped by role
func (ctl *ClassController) GetClass(c *fiber.Ctx) error {
	id, err := helper.ParamUint(c, "id")
	if err != nil {
		return err
	}
	roster, err := ctl.Records.Roster.GetClass(c.UserContext(), id)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "Class fetched successfully", roster)
}

// PATCH /classes/:id
func (ctl *ClassController) UpdateClass(c *fiber.Ctx) error {
	id, err := helper.ParamUint(c, "id")
	if err != nil {
		return err
	}

	var req classDTO.UpdateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	cls, err := ctl.Records.Roster.UpdateClass(c.UserContext(), id, rosterService.ClassPatch{
		Name:        req.ClassName,
		Description: req.ClassDescription,
	})
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "Class updated successfully", cls)
}

// DELETE /classes/:id (soft)
func (ctl *ClassController) DeleteClass(c *fiber.Ctx) error {
	id, err := helper.ParamUint(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Records.Roster.DeleteClass(c.UserContext(), id); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "Class deleted successfully", nil)
}

// ===============================
// Membership
// ===============================

// POST /classes/assign-teacher
func (ctl *ClassController) AssignTeacher(c *fiber.Ctx) error {
	var req classDTO.AssignTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	member, err := ctl.Records.Roster.AssignTeacher(c.UserContext(), req.SchoolID, req.TeacherID, req.ClassID)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOKWithCode(c, fiber.StatusCreated, "Teacher assigned successfully", member)
}

// POST /classes/assign-student
func (ctl *ClassController) AssignStudent(c *fiber.Ctx) error {
	var req classDTO.AssignStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	member, err := ctl.Records.Roster.AssignStudent(c.UserContext(), req.SchoolID, req.StudentID, req.ClassID)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOKWithCode(c, fiber.StatusCreated, "Student assigned successfully", member)
}

// POST /classes/reassign-teacher
func (ctl *ClassController) ReassignTeacher(c *fiber.Ctx) error {
	var req classDTO.ReassignTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if err := ctl.Records.Roster.ReassignTeacher(c.UserContext(), req.TeacherID, req.OldClassID, req.NewClassID); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "Teacher reassigned successfully", nil)
}

// POST /classes/reassign-student
func (ctl *ClassController) ReassignStudent(c *fiber.Ctx) error {
	var req classDTO.ReassignStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if err := ctl.Records.Roster.ReassignStudent(c.UserContext(), req.StudentID, req.OldClassID, req.NewClassID); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "Student reassigned successfully", nil)
}

// POST /classes/make-captain
func (ctl *ClassController) MakeCaptain(c *fiber.Ctx) error {
	var req classDTO.CaptainRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	member, err := ctl.Records.Roster.MakeCaptain(c.UserContext(), req.ClassID, req.ClassCaptainID)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOKWithCode(c, fiber.StatusCreated, "Class captain assigned successfully", member)
}

// POST /classes/delete-captain
func (ctl *ClassController) DeleteCaptain(c *fiber.Ctx) error {
	var req classDTO.CaptainRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if err := ctl.Records.Roster.DeleteCaptain(c.UserContext(), req.ClassID, req.ClassCaptainID); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "Class captain removed successfully", nil)
}
