package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	recordsService "schoolhub_backend/internals/features/school/academics/service"
	calendarDTO "schoolhub_backend/internals/features/school/calendar/dto"
	calendarService "schoolhub_backend/internals/features/school/calendar/service"
	helper "schoolhub_backend/internals/helpers"
)

type CalendarController struct {
	Records   *recordsService.RecordsService
	Validator *validator.Validate
}

func NewCalendarController(records *recordsService.RecordsService) *CalendarController {
	return &CalendarController{
		Records:   records,
		Validator: validator.New(),
	}
}

// ===============================
// Sessions
// ===============================

// POST /sessions
func (ctl *CalendarController) CreateSession(c *fiber.Ctx) error {
	var req calendarDTO.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	sess, err := ctl.Records.Calendar.CreateSession(c.UserContext(), req.SchoolID, req.Title, req.Description)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOKWithCode(c, fiber.StatusCreated, "Session created successfully", sess)
}

// GET /sessions
func (ctl *CalendarController) ListSessions(c *fiber.Ctx) error {
	var q calendarDTO.ListSessionsQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query parameters")
	}

	p := helper.ParsePageParams(c)
	rows, total, err := ctl.Records.Calendar.ListSessions(c.UserContext(), calendarService.SessionFilter{
		SchoolID: q.SchoolID,
		Title:    q.Title,
		IsActive: q.IsActive,
	}, p.Limit(), p.Offset())
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonList(c, "Sessions fetched successfully", rows, p.BuildPagination(total))
}

// GET /sessions/:id
func (ctl *CalendarController) GetSession(c *fiber.Ctx) error {
	id, err := helper.ParamUint(c, "id")
	if err != nil {
		return err
	}
	sess, err := ctl.Records.Calendar.GetSession(c.UserContext(), id)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "Session fetched successfully", sess)
}

// PATCH /sessions/:id
func (ctl *CalendarController) UpdateSession(c *fiber.Ctx) error {
	id, err := helper.ParamUint(c, "id")
	if err != nil {
		return err
	}

	var req calendarDTO.UpdateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	sess, err := ctl.Records.Calendar.UpdateSession(c.UserContext(), id, calendarService.SessionPatch{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "Session updated successfully", sess)
}

// POST /sessions/:id/deactivate
func (ctl *CalendarController) DeactivateSession(c *fiber.Ctx) error {
	id, err := helper.ParamUint(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Records.Calendar.DeactivateSession(c.UserContext(), id); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "Session deactivated successfully", nil)
}
