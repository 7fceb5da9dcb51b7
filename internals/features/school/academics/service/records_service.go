package service

import (
	"gorm.io/gorm"

	attendanceService "schoolhub_backend/internals/features/school/attendance/service"
	calendarService "schoolhub_backend/internals/features/school/calendar/service"
	rosterService "schoolhub_backend/internals/features/school/classes/service"
	schoolService "schoolhub_backend/internals/features/school/schools/service"
)

// RecordsService is the facade the HTTP layer talks to: schools, roster,
// calendar and attendance wired together over one DB handle. It adds no
// invariants of its own.
type RecordsService struct {
	Schools    *schoolService.SchoolService
	Roster     *rosterService.RosterService
	Calendar   *calendarService.CalendarService
	Attendance *attendanceService.AttendanceService
}

func NewRecordsService(db *gorm.DB) *RecordsService {
	roster := rosterService.NewRosterService(db)
	calendar := calendarService.NewCalendarService(db)
	return &RecordsService{
		Schools:    schoolService.NewSchoolService(db),
		Roster:     roster,
		Calendar:   calendar,
		Attendance: attendanceService.NewAttendanceService(db, roster, calendar),
	}
}
