package controller

import (
	"github.com/gofiber/fiber/v2"

	calendarDTO "schoolhub_backend/internals/features/school/calendar/dto"
	calendarService "schoolhub_backend/internals/features/school/calendar/service"
	helper "schoolhub_backend/internals/helpers"
)

func toScheduleInputs(reqs []calendarDTO.TermScheduleRequest) ([]calendarService.TermScheduleInput, error) {
	out := make([]calendarService.TermScheduleInput, 0, len(reqs))
	for _, r := range reqs {
		d, err := calendarDTO.ParseDate(r.Date)
		if err != nil {
			return nil, err
		}
		out = append(out, calendarService.TermScheduleInput{
			Title:       r.Title,
			Description: r.Description,
			Date:        d,
			Status:      r.Status,
		})
	}
	return out, nil
}

// ===============================
// Terms
// ===============================

// POST /terms — term plus optional child breaks/activities in one shot
func (ctl *CalendarController) CreateTerm(c *fiber.Ctx) error {
	var req calendarDTO.CreateTermRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	start, err := calendarDTO.ParseDate(req.StartDate)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	end, err := calendarDTO.ParseDate(req.EndDate)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	breaks, err := toScheduleInputs(req.Breaks)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	activities, err := toScheduleInputs(req.Activities)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}

	term, err := ctl.Records.Calendar.CreateTerm(c.UserContext(), calendarService.CreateTermInput{
		SessionID:   req.SessionID,
		SchoolID:    req.SchoolID,
		Title:       req.Title,
		Description: req.Description,
		StartDate:   start,
		EndDate:     end,
		Breaks:      breaks,
		Activities:  activities,
	})
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOKWithCode(c, fiber.StatusCreated, "Term created successfully", term)
}

// GET /terms
func (ctl *CalendarController) ListTerms(c *fiber.Ctx) error {
	var q calendarDTO.ListTermsQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query parameters")
	}

	p := helper.ParsePageParams(c)
	rows, total, err := ctl.Records.Calendar.ListTerms(c.UserContext(), calendarService.TermFilter{
		SchoolID:  q.SchoolID,
		SessionID: q.SessionID,
		IsActive:  q.IsActive,
	}, p.Limit(), p.Offset())
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonList(c, "Terms fetched successfully", rows, p.BuildPagination(total))
}

// GET /terms/:id
func (ctl *CalendarController) GetTerm(c *fiber.Ctx) error {
	id, err := helper.ParamUint(c, "id")
	if err != nil {
		return err
	}
	term, err := ctl.Records.Calendar.GetTerm(c.UserContext(), id)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "Term fetched successfully", term)
}

// PATCH /terms/:id
func (ctl *CalendarController) UpdateTerm(c *fiber.Ctx) error {
	id, err := helper.ParamUint(c, "id")
	if err != nil {
		return err
	}

	var req calendarDTO.UpdateTermRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	patch := calendarService.TermPatch{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.StartDate != nil {
		d, err := calendarDTO.ParseDate(*req.StartDate)
		if err != nil {
			return helper.JsonDomainError(c, err)
		}
		patch.StartDate = &d
	}
	if req.EndDate != nil {
		d, err := calendarDTO.ParseDate(*req.EndDate)
		if err != nil {
			return helper.JsonDomainError(c, err)
		}
		patch.EndDate = &d
	}

	term, err := ctl.Records.Calendar.UpdateTerm(c.UserContext(), id, patch)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "Term updated successfully", term)
}

// POST /terms/:id/deactivate
func (ctl *CalendarController) DeactivateTerm(c *fiber.Ctx) error {
	id, err := helper.ParamUint(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Records.Calendar.DeactivateTerm(c.UserContext(), id); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "Term deactivated successfully", nil)
}

// parseScheduleQuery turns the shared list-query shape into a service filter.
func parseScheduleQuery(q calendarDTO.ListTermSchedulesQuery) (calendarService.TermScheduleFilter, error) {
	f := calendarService.TermScheduleFilter{
		TermID: q.TermID,
		Title:  q.Title,
		Status: q.Status,
	}
	if q.DateFrom != nil {
		d, err := calendarDTO.ParseDate(*q.DateFrom)
		if err != nil {
			return f, err
		}
		f.DateFrom = &d
	}
	if q.DateTo != nil {
		d, err := calendarDTO.ParseDate(*q.DateTo)
		if err != nil {
			return f, err
		}
		f.DateTo = &d
	}
	return f, nil
}

func parseSchedulePatch(req calendarDTO.UpdateTermScheduleRequest) (calendarService.TermSchedulePatch, error) {
	patch := calendarService.TermSchedulePatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	}
	if req.Date != nil {
		d, err := calendarDTO.ParseDate(*req.Date)
		if err != nil {
			return patch, err
		}
		patch.Date = &d
	}
	return patch, nil
}

// ===============================
// Term activities
// ===============================

// POST /term-activities
func (ctl *CalendarController) CreateTermActivity(c *fiber.Ctx) error {
	var req calendarDTO.CreateTermScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	d, err := calendarDTO.ParseDate(req.Date)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	row, err := ctl.Records.Calendar.CreateTermActivity(c.UserContext(), req.TermID, req.Title, req.Description, d, req.Status)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOKWithCode(c, fiber.StatusCreated, "Term activity created successfully", row)
}

// GET /term-activities
func (ctl *CalendarController) ListTermActivities(c *fiber.Ctx) error {
	var q calendarDTO.ListTermSchedulesQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query parameters")
	}
	f, err := parseScheduleQuery(q)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}

	p := helper.ParsePageParams(c)
	rows, total, err := ctl.Records.Calendar.ListTermActivities(c.UserContext(), f, p.Limit(), p.Offset())
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonList(c, "Term activities fetched successfully", rows, p.BuildPagination(total))
}

// GET /term-activities/:id
func (ctl *CalendarController) GetTermActivity(c *fiber.Ctx) error {
	id, err := helper.ParamUint(c, "id")
	if err != nil {
		return err
	}
	row, err := ctl.Records.Calendar.GetTermActivity(c.UserContext(), id)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "Term activity fetched successfully", row)
}

// PATCH /term-activities/:id
func (ctl *CalendarController) UpdateTermActivity(c *fiber.Ctx) error {
	id, err := helper.ParamUint(c, "id")
	if err != nil {
		return err
	}

	var req calendarDTO.UpdateTermScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	patch, err := parseSchedulePatch(req)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}

	row, err := ctl.Records.Calendar.UpdateTermActivity(c.UserContext(), id, patch)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "Term activity updated successfully", row)
}

// DELETE /term-activities/:id
func (ctl *CalendarController) DeleteTermActivity(c *fiber.Ctx) error {
	id, err := helper.ParamUint(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Records.Calendar.DeleteTermActivity(c.UserContext(), id); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "Term activity deleted successfully", nil)
}

// ===============================
// Term breaks
// ===============================

// POST /term-breaks
func (ctl *CalendarController) CreateTermBreak(c *fiber.Ctx) error {
	var req calendarDTO.CreateTermScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	d, err := calendarDTO.ParseDate(req.Date)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	row, err := ctl.Records.Calendar.CreateTermBreak(c.UserContext(), req.TermID, req.Title, req.Description, d, req.Status)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOKWithCode(c, fiber.StatusCreated, "Term break created successfully", row)
}

// GET /term-breaks
func (ctl *CalendarController) ListTermBreaks(c *fiber.Ctx) error {
	var q calendarDTO.ListTermSchedulesQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query parameters")
	}
	f, err := parseScheduleQuery(q)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}

	p := helper.ParsePageParams(c)
	rows, total, err := ctl.Records.Calendar.ListTermBreaks(c.UserContext(), f, p.Limit(), p.Offset())
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonList(c, "Term breaks fetched successfully", rows, p.BuildPagination(total))
}

// GET /term-breaks/:id
func (ctl *CalendarController) GetTermBreak(c *fiber.Ctx) error {
	id, err := helper.ParamUint(c, "id")
	if err != nil {
		return err
	}
	row, err := ctl.Records.Calendar.GetTermBreak(c.UserContext(), id)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "Term break fetched successfully", row)
}

// PATCH /term-breaks/:id
func (ctl *CalendarController) UpdateTermBreak(c *fiber.Ctx) error {
	id, err := helper.ParamUint(c, "id")
	if err != nil {
		return err
	}

	var req calendarDTO.UpdateTermScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	patch, err := parseSchedulePatch(req)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}

	row, err := ctl.Records.Calendar.UpdateTermBreak(c.UserContext(), id, patch)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "Term break updated successfully", row)
}

// DELETE /term-breaks/:id
func (ctl *CalendarController) DeleteTermBreak(c *fiber.Ctx) error {
	id, err := helper.ParamUint(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Records.Calendar.DeleteTermBreak(c.UserContext(), id); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "Term break deleted successfully", nil)
}
