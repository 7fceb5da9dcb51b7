package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	recordsService "schoolhub_backend/internals/features/school/academics/service"
	attendanceDTO "schoolhub_backend/internals/features/school/attendance/dto"
	attendanceService "schoolhub_backend/internals/features/school/attendance/service"
	calendarDTO "schoolhub_backend/internals/features/school/calendar/dto"
	helper "schoolhub_backend/internals/helpers"
	helperAuth "schoolhub_backend/internals/helpers/auth"
)

type AttendanceController struct {
	Records   *recordsService.RecordsService
	Validator *validator.Validate
}

func NewAttendanceController(records *recordsService.RecordsService) *AttendanceController {
	return &AttendanceController{
		Records:   records,
		Validator: validator.New(),
	}
}

// POST /class-attendance — batch mark for one class/day. The marking teacher
// is the authenticated actor, never a body field.
func (ctl *AttendanceController) MarkClassAttendance(c *fiber.Ctx) error {
	teacherID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}

	var req attendanceDTO.MarkClassAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	day, err := calendarDTO.ParseDate(req.DateOfMarking)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}

	records := make([]attendanceService.StudentMark, 0, len(req.Records))
	for _, r := range req.Records {
		records = append(records, attendanceService.StudentMark{
			StudentID: r.StudentID,
			IsPresent: *r.IsPresent,
		})
	}

	result, err := ctl.Records.Attendance.MarkClassAttendance(c.UserContext(), attendanceService.MarkClassAttendanceInput{
		ClassID:       req.ClassID,
		TeacherID:     teacherID,
		SessionID:     req.SessionID,
		TermID:        req.TermID,
		StandInMarker: req.StandInMarker,
		DateOfMarking: day,
		Records:       records,
	})
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "Attendance marked successfully", result)
}

// GET /class-attendance
func (ctl *AttendanceController) ListAttendance(c *fiber.Ctx) error {
	var q attendanceDTO.ListAttendanceQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query parameters")
	}

	f := attendanceService.AttendanceFilter{
		ClassID:   q.ClassID,
		StudentID: q.StudentID,
		SchoolID:  q.SchoolID,
		SessionID: q.SessionID,
		TermID:    q.TermID,
		IsPresent: q.IsPresent,
	}
	if q.DateFrom != nil {
		d, err := calendarDTO.ParseDate(*q.DateFrom)
		if err != nil {
			return helper.JsonDomainError(c, err)
		}
		f.DateFrom = &d
	}
	if q.DateTo != nil {
		d, err := calendarDTO.ParseDate(*q.DateTo)
		if err != nil {
			return helper.JsonDomainError(c, err)
		}
		f.DateTo = &d
	}

	p := helper.ParsePageParams(c)
	rows, total, err := ctl.Records.Attendance.ListAttendance(c.UserContext(), f, p.Limit(), p.Offset())
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonList(c, "Attendance fetched successfully", rows, p.BuildPagination(total))
}

// GET /class-attendance/:id — one row plus derived stats
func (ctl *AttendanceController) GetAttendance(c *fiber.Ctx) error {
	id, err := helper.ParamUint(c, "id")
	if err != nil {
		return err
	}
	detail, err := ctl.Records.Attendance.GetAttendance(c.UserContext(), id)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "Attendance fetched successfully", detail)
}

// PATCH /class-attendance/:id — admin correction
func (ctl *AttendanceController) UpdateAttendance(c *fiber.Ctx) error {
	id, err := helper.ParamUint(c, "id")
	if err != nil {
		return err
	}

	var req attendanceDTO.UpdateAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	patch := attendanceService.AttendancePatch{
		IsPresent:     req.IsPresent,
		StandInMarker: req.StandInMarker,
	}
	if req.DateOfMarking != nil {
		d, err := calendarDTO.ParseDate(*req.DateOfMarking)
		if err != nil {
			return helper.JsonDomainError(c, err)
		}
		patch.DateOfMarking = &d
	}

	row, err := ctl.Records.Attendance.UpdateAttendance(c.UserContext(), id, patch)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "Attendance updated successfully", row)
}

// GET /class-attendance/percentage?term_id=&student_id=
func (ctl *AttendanceController) AttendancePercentage(c *fiber.Ctx) error {
	termID := uint(c.QueryInt("term_id"))
	studentID := uint(c.QueryInt("student_id"))
	if termID == 0 || studentID == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "term_id and student_id are required")
	}

	stats, err := ctl.Records.Attendance.CalculateAttendancePercentage(c.UserContext(), termID, studentID)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "Attendance percentage calculated successfully", stats)
}

// ===============================
// Staff attendance
// ===============================

// POST /staff-attendance
func (ctl *AttendanceController) MarkStaffAttendance(c *fiber.Ctx) error {
	var req attendanceDTO.MarkStaffAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	day, err := calendarDTO.ParseDate(req.DateOfMarking)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}

	records := make([]attendanceService.StaffMark, 0, len(req.Records))
	for _, r := range req.Records {
		records = append(records, attendanceService.StaffMark{
			StaffID:     r.StaffID,
			ArrivalTime: r.ArrivalTime,
			IsPresent:   *r.IsPresent,
		})
	}

	result, err := ctl.Records.Attendance.MarkStaffAttendance(c.UserContext(), attendanceService.MarkStaffAttendanceInput{
		SchoolID:      req.SchoolID,
		SessionID:     req.SessionID,
		TermID:        req.TermID,
		DateOfMarking: day,
		Records:       records,
	})
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "Staff attendance marked successfully", result)
}

// GET /staff-attendance
func (ctl *AttendanceController) ListStaffAttendance(c *fiber.Ctx) error {
	var q attendanceDTO.ListStaffAttendanceQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query parameters")
	}

	f := attendanceService.StaffAttendanceFilter{
		SchoolID:  q.SchoolID,
		StaffID:   q.StaffID,
		SessionID: q.SessionID,
		TermID:    q.TermID,
		IsPresent: q.IsPresent,
	}
	if q.DateFrom != nil {
		d, err := calendarDTO.ParseDate(*q.DateFrom)
		if err != nil {
			return helper.JsonDomainError(c, err)
		}
		f.DateFrom = &d
	}
	if q.DateTo != nil {
		d, err := calendarDTO.ParseDate(*q.DateTo)
		if err != nil {
			return helper.JsonDomainError(c, err)
		}
		f.DateTo = &d
	}

	p := helper.ParsePageParams(c)
	rows, total, err := ctl.Records.Attendance.ListStaffAttendance(c.UserContext(), f, p.Limit(), p.Offset())
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonList(c, "Staff attendance fetched successfully", rows, p.BuildPagination(total))
}
