package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	database "schoolhub_backend/internals/databases"
	attendanceModel "schoolhub_backend/internals/features/school/attendance/model"
	calendarService "schoolhub_backend/internals/features/school/calendar/service"
	rosterService "schoolhub_backend/internals/features/school/classes/service"
	schoolModel "schoolhub_backend/internals/features/school/schools/model"
	"schoolhub_backend/internals/helpers/errs"
)

const (
	teacherID = uint(30)
	studentA  = uint(10)
	studentB  = uint(11)
	studentC  = uint(12)
)

type fixture struct {
	db        *gorm.DB
	svc       *AttendanceService
	roster    *rosterService.RosterService
	calendar  *calendarService.CalendarService
	schoolID  uint
	classID   uint
	sessionID uint
	termID    uint
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// newFixture stands up a school with one class, three students, an assigned
// teacher, and an active term running 2024-01-01 to 2024-01-11 with one break.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	ctx := context.Background()
	roster := rosterService.NewRosterService(db)
	calendar := calendarService.NewCalendarService(db)
	svc := NewAttendanceService(db, roster, calendar)

	school := schoolModel.SchoolModel{SchoolName: "Hillside Academy", SchoolIsActive: true, SchoolCreatedBy: 1}
	require.NoError(t, db.Create(&school).Error)

	for _, id := range []uint{studentA, studentB, studentC} {
		require.NoError(t, db.Create(&schoolModel.SchoolStudentModel{
			SchoolStudentSchoolID: school.SchoolID,
			SchoolStudentUserID:   id,
			SchoolStudentIsActive: true,
		}).Error)
	}
	require.NoError(t, db.Create(&schoolModel.SchoolEmployeeModel{
		SchoolEmployeeSchoolID: school.SchoolID,
		SchoolEmployeeUserID:   teacherID,
		SchoolEmployeeIsActive: true,
	}).Error)

	cls, err := roster.CreateClass(ctx, school.SchoolID, "JSS1", nil)
	require.NoError(t, err)
	_, err = roster.AssignTeacher(ctx, school.SchoolID, teacherID, cls.ClassID)
	require.NoError(t, err)
	for _, id := range []uint{studentA, studentB, studentC} {
		_, err = roster.AssignStudent(ctx, school.SchoolID, id, cls.ClassID)
		require.NoError(t, err)
	}

	sess, err := calendar.CreateSession(ctx, school.SchoolID, "2023/2024", nil)
	require.NoError(t, err)
	term, err := calendar.CreateTerm(ctx, calendarService.CreateTermInput{
		SessionID: sess.SessionID,
		SchoolID:  school.SchoolID,
		Title:     "First Term",
		StartDate: day(2024, 1, 1),
		EndDate:   day(2024, 1, 11),
		Breaks: []calendarService.TermScheduleInput{
			{Title: "New year break", Date: day(2024, 1, 2)},
		},
	})
	require.NoError(t, err)

	return &fixture{
		db:        db,
		svc:       svc,
		roster:    roster,
		calendar:  calendar,
		schoolID:  school.SchoolID,
		classID:   cls.ClassID,
		sessionID: sess.SessionID,
		termID:    term.TermID,
	}
}

func (f *fixture) markInput(date time.Time, records ...StudentMark) MarkClassAttendanceInput {
	return MarkClassAttendanceInput{
		ClassID:       f.classID,
		TeacherID:     teacherID,
		SessionID:     f.sessionID,
		TermID:        f.termID,
		DateOfMarking: date,
		Records:       records,
	}
}

func TestMarkClassAttendanceSkipsAlreadyMarked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.MarkClassAttendance(ctx, f.markInput(day(2024, 1, 3),
		StudentMark{StudentID: studentA, IsPresent: true},
		StudentMark{StudentID: studentB, IsPresent: false},
	))
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{studentA, studentB}, res.Recorded)
	assert.Empty(t, res.AlreadyMarked)

	// resubmitting with one extra student records only that student
	res, err = f.svc.MarkClassAttendance(ctx, f.markInput(day(2024, 1, 3),
		StudentMark{StudentID: studentA, IsPresent: true},
		StudentMark{StudentID: studentB, IsPresent: true},
		StudentMark{StudentID: studentC, IsPresent: true},
	))
	require.NoError(t, err)
	assert.Equal(t, []uint{studentC}, res.Recorded)
	assert.ElementsMatch(t, []uint{studentA, studentB}, res.AlreadyMarked)

	// a fully duplicated batch is a conflict
	_, err = f.svc.MarkClassAttendance(ctx, f.markInput(day(2024, 1, 3),
		StudentMark{StudentID: studentA, IsPresent: true},
	))
	de, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindConflict, de.Kind)

	// the stored day ignores whatever time-of-day the request carried
	res, err = f.svc.MarkClassAttendance(ctx, MarkClassAttendanceInput{
		ClassID:       f.classID,
		TeacherID:     teacherID,
		SessionID:     f.sessionID,
		TermID:        f.termID,
		DateOfMarking: time.Date(2024, 1, 4, 15, 30, 0, 0, time.UTC),
		Records:       []StudentMark{{StudentID: studentA, IsPresent: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, []uint{studentA}, res.Recorded)

	_, err = f.svc.MarkClassAttendance(ctx, f.markInput(day(2024, 1, 4),
		StudentMark{StudentID: studentA, IsPresent: true},
	))
	de, ok = errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindConflict, de.Kind)
}

func TestMarkClassAttendanceValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.MarkClassAttendance(ctx, f.markInput(day(2024, 1, 3)))
	de, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindInvalid, de.Kind)

	// teacher without a membership row in the class
	in := f.markInput(day(2024, 1, 3), StudentMark{StudentID: studentA, IsPresent: true})
	in.TeacherID = 99
	_, err = f.svc.MarkClassAttendance(ctx, in)
	de, ok = errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindForbidden, de.Kind)

	// a student outside the roster poisons the whole batch
	_, err = f.svc.MarkClassAttendance(ctx, f.markInput(day(2024, 1, 3),
		StudentMark{StudentID: studentA, IsPresent: true},
		StudentMark{StudentID: 555, IsPresent: true},
	))
	de, ok = errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindForbidden, de.Kind)

	// closed term
	require.NoError(t, f.calendar.DeactivateTerm(ctx, f.termID))
	_, err = f.svc.MarkClassAttendance(ctx, f.markInput(day(2024, 1, 3),
		StudentMark{StudentID: studentA, IsPresent: true},
	))
	de, ok = errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindNotFound, de.Kind)
}

func TestCalculateAttendancePercentage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// 5 present days then 2 absent days for student A
	marks := []struct {
		d       int
		present bool
	}{
		{3, true}, {4, true}, {5, true}, {8, true}, {9, true},
		{10, false}, {11, false},
	}
	for _, m := range marks {
		_, err := f.svc.MarkClassAttendance(ctx, f.markInput(day(2024, 1, m.d),
			StudentMark{StudentID: studentA, IsPresent: m.present},
		))
		require.NoError(t, err)
	}

	stats, err := f.svc.CalculateAttendancePercentage(ctx, f.termID, studentA)
	require.NoError(t, err)

	// 10 raw days, minus the one recorded break
	assert.EqualValues(t, 10, stats.RawTermDays)
	assert.EqualValues(t, 9, stats.TotalDaysForTerm)
	assert.EqualValues(t, 5, stats.PresentDays)
	assert.EqualValues(t, 2, stats.AbsentDays)
	assert.InDelta(t, 55.56, stats.Percentage, 0.001)
}

func TestPercentageIsTermScoped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.MarkClassAttendance(ctx, f.markInput(day(2024, 1, 3),
		StudentMark{StudentID: studentA, IsPresent: true},
	))
	require.NoError(t, err)

	// rows belonging to another term must not leak into the counts
	require.NoError(t, f.db.Create(&attendanceModel.ClassAttendanceModel{
		ClassAttendanceStudentID:     studentA,
		ClassAttendanceClassID:       f.classID,
		ClassAttendanceSchoolID:      f.schoolID,
		ClassAttendanceSessionID:     f.sessionID,
		ClassAttendanceTermID:        f.termID + 100,
		ClassAttendanceTeacherID:     teacherID,
		ClassAttendanceDateOfMarking: day(2024, 5, 3),
		ClassAttendanceIsPresent:     true,
	}).Error)

	stats, err := f.svc.CalculateAttendancePercentage(ctx, f.termID, studentA)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.PresentDays)
	assert.EqualValues(t, 0, stats.AbsentDays)
}

func TestGetAndUpdateAttendance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.MarkClassAttendance(ctx, f.markInput(day(2024, 1, 3),
		StudentMark{StudentID: studentA, IsPresent: true},
	))
	require.NoError(t, err)

	rows, total, err := f.svc.ListAttendance(ctx, AttendanceFilter{StudentID: ptr(studentA)}, 25, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)

	detail, err := f.svc.GetAttendance(ctx, rows[0].ClassAttendanceID)
	require.NoError(t, err)
	assert.True(t, detail.Attendance.ClassAttendanceIsPresent)
	assert.EqualValues(t, 1, detail.Stats.PresentDays)
	assert.EqualValues(t, 0, detail.Stats.AbsentDays)

	// admin correction flips the mark without touching roster state
	updated, err := f.svc.UpdateAttendance(ctx, rows[0].ClassAttendanceID, AttendancePatch{IsPresent: ptrBool(false)})
	require.NoError(t, err)
	assert.False(t, updated.ClassAttendanceIsPresent)

	stats, err := f.svc.CalculateAttendancePercentage(ctx, f.termID, studentA)
	require.NoError(t, err)
	assert.EqualValues(t, 0, stats.PresentDays)
	assert.EqualValues(t, 1, stats.AbsentDays)

	_, err = f.svc.GetAttendance(ctx, 9999)
	de, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindNotFound, de.Kind)
}

func TestMarkStaffAttendance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := MarkStaffAttendanceInput{
		SchoolID:      f.schoolID,
		SessionID:     f.sessionID,
		TermID:        f.termID,
		DateOfMarking: day(2024, 1, 3),
		Records: []StaffMark{
			{StaffID: teacherID, ArrivalTime: "07:45", IsPresent: true},
		},
	}
	res, err := f.svc.MarkStaffAttendance(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, []uint{teacherID}, res.Recorded)

	// not on the school's payroll
	in.Records = []StaffMark{{StaffID: 444, ArrivalTime: "08:00", IsPresent: true}}
	_, err = f.svc.MarkStaffAttendance(ctx, in)
	de, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindForbidden, de.Kind)

	// same staff, same day
	in.Records = []StaffMark{{StaffID: teacherID, ArrivalTime: "07:50", IsPresent: true}}
	_, err = f.svc.MarkStaffAttendance(ctx, in)
	de, ok = errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindConflict, de.Kind)

	rows, total, err := f.svc.ListStaffAttendance(ctx, StaffAttendanceFilter{SchoolID: &f.schoolID}, 25, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "07:45", rows[0].StaffAttendanceArrivalTime)
}

func ptr(v uint) *uint     { return &v }
func ptrBool(v bool) *bool { return &v }
