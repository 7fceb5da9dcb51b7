package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	recordsService "schoolhub_backend/internals/features/school/academics/service"
	schoolDTO "schoolhub_backend/internals/features/school/schools/dto"
	schoolService "schoolhub_backend/internals/features/school/schools/service"
	helper "schoolhub_backend/internals/helpers"
	helperAuth "schoolhub_backend/internals/helpers/auth"
)

type SchoolController struct {
	Records   *recordsService.RecordsService
	Validator *validator.Validate
}

func NewSchoolController(records *recordsService.RecordsService) *SchoolController {
	return &SchoolController{
		Records:   records,
		Validator: validator.New(),
	}
}

// POST /schools
func (ctl *SchoolController) CreateSchool(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}

	var req schoolDTO.CreateSchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	school, err := ctl.Records.Schools.CreateSchool(c.UserContext(), userID, req.SchoolName, req.SchoolAddress, req.SchoolContact)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOKWithCode(c, fiber.StatusCreated, "School created successfully", school)
}

// GET /schools
func (ctl *SchoolController) ListSchools(c *fiber.Ctx) error {
	var q schoolDTO.ListSchoolsQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query parameters")
	}

	p := helper.ParsePageParams(c)
	rows, total, err := ctl.Records.Schools.ListSchools(c.UserContext(), schoolService.SchoolFilter{
		Name:     q.Name,
		IsActive: q.IsActive,
	}, p.Limit(), p.Offset())
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonList(c, "Schools fetched successfully", rows, p.BuildPagination(total))
}

// GET /schools/mine
func (ctl *SchoolController) MySchools(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	rows, err := ctl.Records.Schools.MySchools(c.UserContext(), userID)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "Schools fetched successfully", rows)
}

// GET /schools/:id
func (ctl *SchoolController) GetSchool(c *fiber.Ctx) error {
	id, err := helper.ParamUint(c, "id")
	if err != nil {
		return err
	}
	detail, err := ctl.Records.Schools.GetSchool(c.UserContext(), id)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "School fetched successfully", detail)
}

// PATCH /schools/:id
func (ctl *SchoolController) UpdateSchool(c *fiber.Ctx) error {
	id, err := helper.ParamUint(c, "id")
	if err != nil {
		return err
	}

	var req schoolDTO.UpdateSchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	school, err := ctl.Records.Schools.UpdateSchool(c.UserContext(), id, schoolService.SchoolPatch{
		Name:    req.SchoolName,
		Address: req.SchoolAddress,
		Contact: req.SchoolContact,
	})
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "School updated successfully", school)
}

// DELETE /schools/:id (soft)
func (ctl *SchoolController) DeleteSchool(c *fiber.Ctx) error {
	id, err := helper.ParamUint(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Records.Schools.DeleteSchool(c.UserContext(), id); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "School deleted successfully", nil)
}

// POST /schools/:id/students
func (ctl *SchoolController) EnrollStudent(c *fiber.Ctx) error {
	id, err := helper.ParamUint(c, "id")
	if err != nil {
		return err
	}

	var req schoolDTO.EnrollStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	row, err := ctl.Records.Schools.EnrollStudent(c.UserContext(), id, req.UserID)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOKWithCode(c, fiber.StatusCreated, "Student enrolled successfully", row)
}

// POST /schools/:id/employees
func (ctl *SchoolController) AddEmployee(c *fiber.Ctx) error {
	id, err := helper.ParamUint(c, "id")
	if err != nil {
		return err
	}

	var req schoolDTO.AddEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	row, err := ctl.Records.Schools.AddEmployee(c.UserContext(), id, req.UserID, req.Title)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOKWithCode(c, fiber.StatusCreated, "Employee added successfully", row)
}
