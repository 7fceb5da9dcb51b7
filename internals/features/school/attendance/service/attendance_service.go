package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	attendanceModel "schoolhub_backend/internals/features/school/attendance/model"
	calendarService "schoolhub_backend/internals/features/school/calendar/service"
	rosterService "schoolhub_backend/internals/features/school/classes/service"
	schoolModel "schoolhub_backend/internals/features/school/schools/model"
	"schoolhub_backend/internals/helpers/errs"
)

// AttendanceService validates a batch of per-student marks against roster and
// calendar state, persists them, and answers percentage statistics.
type AttendanceService struct {
	DB       *gorm.DB
	Roster   *rosterService.RosterService
	Calendar *calendarService.CalendarService
}

func NewAttendanceService(db *gorm.DB, roster *rosterService.RosterService, calendar *calendarService.CalendarService) *AttendanceService {
	return &AttendanceService{DB: db, Roster: roster, Calendar: calendar}
}

// ===============================
// Inputs / outputs
// ===============================

type StudentMark struct {
	StudentID uint
	IsPresent bool
}

type MarkClassAttendanceInput struct {
	ClassID       uint
	TeacherID     uint
	SessionID     uint
	TermID        uint
	StandInMarker *uint
	DateOfMarking time.Time
	Records       []StudentMark
}

// MarkResult reports which students got a new row and which were skipped
// because the day was already marked for them.
type MarkResult struct {
	Recorded      []uint `json:"recorded"`
	AlreadyMarked []uint `json:"already_marked"`
}

type AttendanceFilter struct {
	ClassID   *uint
	StudentID *uint
	SchoolID  *uint
	SessionID *uint
	TermID    *uint
	IsPresent *bool
	DateFrom  *time.Time
	DateTo    *time.Time
}

type AttendancePatch struct {
	IsPresent     *bool
	DateOfMarking *time.Time
	StandInMarker *uint
}

// AttendanceStats is the derived percentage view for one student in one term.
type AttendanceStats struct {
	StudentID        uint    `json:"student_id"`
	Percentage       float64 `json:"percentage"`
	PresentDays      int64   `json:"present_days"`
	AbsentDays       int64   `json:"absent_days"`
	TotalDaysForTerm int64   `json:"total_days_for_term"`
	RawTermDays      int64   `json:"raw_term_days"`
}

// AttendanceDetail composes a single row with its derived statistics.
type AttendanceDetail struct {
	Attendance attendanceModel.ClassAttendanceModel `json:"attendance"`
	Stats      AttendanceStats                      `json:"stats"`
}

// truncate to a bare date so the per-day uniqueness key is stable regardless
// of the time-of-day the request carried
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ===============================
// Class attendance
// ===============================

// MarkClassAttendance records one day of attendance for a class. Students that
// already have a row for the day are skipped individually and reported back;
// the call only fails with a conflict when every incoming student was already
// marked.
func (s *AttendanceService) MarkClassAttendance(ctx context.Context, in MarkClassAttendanceInput) (*MarkResult, error) {
	if len(in.Records) == 0 {
		return nil, errs.Invalid("No attendance records supplied")
	}

	roster, err := s.Roster.GetClass(ctx, in.ClassID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Calendar.ActiveSession(ctx, in.SessionID); err != nil {
		return nil, err
	}
	if _, err := s.Calendar.ActiveTerm(ctx, in.TermID); err != nil {
		return nil, err
	}

	assigned, err := s.Roster.TeacherAssignedTo(ctx, in.ClassID, in.TeacherID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, errs.Forbidden("This teacher is not assigned to this class")
	}

	inClass := make(map[uint]bool, len(roster.Students))
	for _, m := range roster.Students {
		inClass[m.ClassMemberUserID] = true
	}
	for _, r := range in.Records {
		if !inClass[r.StudentID] {
			return nil, errs.Forbidden(fmt.Sprintf("Student %d is not a member of this class", r.StudentID))
		}
	}

	day := dateOnly(in.DateOfMarking)

	var marked []uint
	if err := s.DB.WithContext(ctx).Model(&attendanceModel.ClassAttendanceModel{}).
		Where("class_attendance_class_id = ? AND class_attendance_date_of_marking = ?", in.ClassID, day).
		Pluck("class_attendance_student_id", &marked).Error; err != nil {
		return nil, err
	}
	alreadyMarked := make(map[uint]bool, len(marked))
	for _, id := range marked {
		alreadyMarked[id] = true
	}

	result := MarkResult{Recorded: []uint{}, AlreadyMarked: []uint{}}
	var fresh []StudentMark
	for _, r := range in.Records {
		if alreadyMarked[r.StudentID] {
			result.AlreadyMarked = append(result.AlreadyMarked, r.StudentID)
			continue
		}
		fresh = append(fresh, r)
	}
	if len(fresh) == 0 {
		return nil, errs.Conflict("Attendance has already been marked for every student on this date")
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, r := range fresh {
			row := attendanceModel.ClassAttendanceModel{
				ClassAttendanceStudentID:     r.StudentID,
				ClassAttendanceClassID:       in.ClassID,
				ClassAttendanceSchoolID:      roster.Class.ClassSchoolID,
				ClassAttendanceSessionID:     in.SessionID,
				ClassAttendanceTermID:        in.TermID,
				ClassAttendanceTeacherID:     in.TeacherID,
				ClassAttendanceStandInMarker: in.StandInMarker,
				ClassAttendanceDateOfMarking: day,
				ClassAttendanceIsPresent:     r.IsPresent,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			result.Recorded = append(result.Recorded, r.StudentID)
		}
		return nil
	})
	if err != nil {
		if errs.IsDuplicateKey(err) {
			return nil, errs.Conflict("Attendance has already been marked for this date")
		}
		return nil, err
	}
	return &result, nil
}

// CalculateAttendancePercentage computes a student's attendance for one term.
// Counts are scoped to the term; term length excludes recorded break days.
func (s *AttendanceService) CalculateAttendancePercentage(ctx context.Context, termID, studentID uint) (*AttendanceStats, error) {
	term, err := s.Calendar.GetTerm(ctx, termID)
	if err != nil {
		return nil, err
	}

	rawDays := int64(term.TermEndDate.Sub(term.TermStartDate).Hours() / 24)
	breaks, err := s.Calendar.CountTermBreaks(ctx, termID)
	if err != nil {
		return nil, err
	}
	totalDays := rawDays - breaks

	var present, absent int64
	if err := s.DB.WithContext(ctx).Model(&attendanceModel.ClassAttendanceModel{}).
		Where("class_attendance_student_id = ? AND class_attendance_term_id = ? AND class_attendance_is_present = ?",
			studentID, termID, true).
		Count(&present).Error; err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&attendanceModel.ClassAttendanceModel{}).
		Where("class_attendance_student_id = ? AND class_attendance_term_id = ? AND class_attendance_is_present = ?",
			studentID, termID, false).
		Count(&absent).Error; err != nil {
		return nil, err
	}

	pct := 0.0
	if totalDays > 0 {
		pct = math.Round(float64(present)/float64(totalDays)*100*100) / 100
	}
	return &AttendanceStats{
		StudentID:        studentID,
		Percentage:       pct,
		PresentDays:      present,
		AbsentDays:       absent,
		TotalDaysForTerm: totalDays,
		RawTermDays:      rawDays,
	}, nil
}

// GetAttendance returns one row together with the student's stats for the
// row's term.
func (s *AttendanceService) GetAttendance(ctx context.Context, id uint) (*AttendanceDetail, error) {
	var row attendanceModel.ClassAttendanceModel
	err := s.DB.WithContext(ctx).Where("class_attendance_id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("Attendance record not found")
	}
	if err != nil {
		return nil, err
	}

	stats, err := s.CalculateAttendancePercentage(ctx, row.ClassAttendanceTermID, row.ClassAttendanceStudentID)
	if err != nil {
		return nil, err
	}
	return &AttendanceDetail{Attendance: row, Stats: *stats}, nil
}

func (s *AttendanceService) ListAttendance(ctx context.Context, f AttendanceFilter, limit, offset int) ([]attendanceModel.ClassAttendanceModel, int64, error) {
	tx := s.DB.WithContext(ctx).Model(&attendanceModel.ClassAttendanceModel{})
	if f.ClassID != nil {
		tx = tx.Where("class_attendance_class_id = ?", *f.ClassID)
	}
	if f.StudentID != nil {
		tx = tx.Where("class_attendance_student_id = ?", *f.StudentID)
	}
	if f.SchoolID != nil {
		tx = tx.Where("class_attendance_school_id = ?", *f.SchoolID)
	}
	if f.SessionID != nil {
		tx = tx.Where("class_attendance_session_id = ?", *f.SessionID)
	}
	if f.TermID != nil {
		tx = tx.Where("class_attendance_term_id = ?", *f.TermID)
	}
	if f.IsPresent != nil {
		tx = tx.Where("class_attendance_is_present = ?", *f.IsPresent)
	}
	if f.DateFrom != nil {
		tx = tx.Where("class_attendance_date_of_marking >= ?", dateOnly(*f.DateFrom))
	}
	if f.DateTo != nil {
		tx = tx.Where("class_attendance_date_of_marking <= ?", dateOnly(*f.DateTo))
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []attendanceModel.ClassAttendanceModel
	if err := tx.Order("class_attendance_id DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// UpdateAttendance applies an admin correction. Roster and calendar state are
// deliberately not re-validated here; this is the escape hatch for fixing a
// wrongly marked day.
func (s *AttendanceService) UpdateAttendance(ctx context.Context, id uint, patch AttendancePatch) (*attendanceModel.ClassAttendanceModel, error) {
	var row attendanceModel.ClassAttendanceModel
	err := s.DB.WithContext(ctx).Where("class_attendance_id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("Attendance record not found")
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.IsPresent != nil {
		updates["class_attendance_is_present"] = *patch.IsPresent
	}
	if patch.DateOfMarking != nil {
		updates["class_attendance_date_of_marking"] = dateOnly(*patch.DateOfMarking)
	}
	if patch.StandInMarker != nil {
		updates["class_attendance_stand_in_marker"] = *patch.StandInMarker
	}
	if len(updates) == 0 {
		return &row, nil
	}
	if err := s.DB.WithContext(ctx).Model(&row).Updates(updates).Error; err != nil {
		if errs.IsDuplicateKey(err) {
			return nil, errs.Conflict("Another attendance record already exists for that date")
		}
		return nil, err
	}
	return &row, nil
}

// ===============================
// Staff attendance
// ===============================

type StaffMark struct {
	StaffID     uint
	ArrivalTime string
	IsPresent   bool
}

type MarkStaffAttendanceInput struct {
	SchoolID      uint
	SessionID     uint
	TermID        uint
	DateOfMarking time.Time
	Records       []StaffMark
}

type StaffAttendanceFilter struct {
	SchoolID  *uint
	StaffID   *uint
	SessionID *uint
	TermID    *uint
	IsPresent *bool
	DateFrom  *time.Time
	DateTo    *time.Time
}

// MarkStaffAttendance mirrors the student flow at school level: an employment
// check stands in for the roster check, arrival time is recorded, and per-day
// duplicates are skipped the same way.
func (s *AttendanceService) MarkStaffAttendance(ctx context.Context, in MarkStaffAttendanceInput) (*MarkResult, error) {
	if len(in.Records) == 0 {
		return nil, errs.Invalid("No attendance records supplied")
	}

	if _, err := s.Calendar.ActiveSession(ctx, in.SessionID); err != nil {
		return nil, err
	}
	if _, err := s.Calendar.ActiveTerm(ctx, in.TermID); err != nil {
		return nil, err
	}

	for _, r := range in.Records {
		var n int64
		if err := s.DB.WithContext(ctx).Model(&schoolModel.SchoolEmployeeModel{}).
			Where("school_employee_school_id = ? AND school_employee_user_id = ? AND school_employee_is_active = ?",
				in.SchoolID, r.StaffID, true).
			Count(&n).Error; err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, errs.Forbidden(fmt.Sprintf("Staff %d is not an employee of this school", r.StaffID))
		}
	}

	day := dateOnly(in.DateOfMarking)

	var marked []uint
	if err := s.DB.WithContext(ctx).Model(&attendanceModel.StaffAttendanceModel{}).
		Where("staff_attendance_school_id = ? AND staff_attendance_date_of_marking = ?", in.SchoolID, day).
		Pluck("staff_attendance_staff_id", &marked).Error; err != nil {
		return nil, err
	}
	alreadyMarked := make(map[uint]bool, len(marked))
	for _, id := range marked {
		alreadyMarked[id] = true
	}

	result := MarkResult{Recorded: []uint{}, AlreadyMarked: []uint{}}
	var fresh []StaffMark
	for _, r := range in.Records {
		if alreadyMarked[r.StaffID] {
			result.AlreadyMarked = append(result.AlreadyMarked, r.StaffID)
			continue
		}
		fresh = append(fresh, r)
	}
	if len(fresh) == 0 {
		return nil, errs.Conflict("Attendance has already been marked for every staff member on this date")
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, r := range fresh {
			row := attendanceModel.StaffAttendanceModel{
				StaffAttendanceStaffID:       r.StaffID,
				StaffAttendanceSchoolID:      in.SchoolID,
				StaffAttendanceSessionID:     in.SessionID,
				StaffAttendanceTermID:        in.TermID,
				StaffAttendanceDateOfMarking: day,
				StaffAttendanceArrivalTime:   r.ArrivalTime,
				StaffAttendanceIsPresent:     r.IsPresent,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			result.Recorded = append(result.Recorded, r.StaffID)
		}
		return nil
	})
	if err != nil {
		if errs.IsDuplicateKey(err) {
			return nil, errs.Conflict("Attendance has already been marked for this date")
		}
		return nil, err
	}
	return &result, nil
}

func (s *AttendanceService) ListStaffAttendance(ctx context.Context, f StaffAttendanceFilter, limit, offset int) ([]attendanceModel.StaffAttendanceModel, int64, error) {
	tx := s.DB.WithContext(ctx).Model(&attendanceModel.StaffAttendanceModel{})
	if f.SchoolID != nil {
		tx = tx.Where("staff_attendance_school_id = ?", *f.SchoolID)
	}
	if f.StaffID != nil {
		tx = tx.Where("staff_attendance_staff_id = ?", *f.StaffID)
	}
	if f.SessionID != nil {
		tx = tx.Where("staff_attendance_session_id = ?", *f.SessionID)
	}
	if f.TermID != nil {
		tx = tx.Where("staff_attendance_term_id = ?", *f.TermID)
	}
	if f.IsPresent != nil {
		tx = tx.Where("staff_attendance_is_present = ?", *f.IsPresent)
	}
	if f.DateFrom != nil {
		tx = tx.Where("staff_attendance_date_of_marking >= ?", dateOnly(*f.DateFrom))
	}
	if f.DateTo != nil {
		tx = tx.Where("staff_attendance_date_of_marking <= ?", dateOnly(*f.DateTo))
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []attendanceModel.StaffAttendanceModel
	if err := tx.Order("staff_attendance_id DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
