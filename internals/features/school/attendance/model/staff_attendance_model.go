package model

import "time"

// StaffAttendanceModel represents the `staff_attendances` table: the employee
// mirror of class attendance, scoped to school/session/term instead of a class.
type StaffAttendanceModel struct {
	StaffAttendanceID uint `json:"staff_attendance_id" gorm:"column:staff_attendance_id;primaryKey;autoIncrement"`

	StaffAttendanceStaffID  uint `json:"staff_attendance_staff_id"  gorm:"column:staff_attendance_staff_id;not null;uniqueIndex:uq_staff_attendance_day"`
	StaffAttendanceSchoolID uint `json:"staff_attendance_school_id" gorm:"column:staff_attendance_school_id;not null;uniqueIndex:uq_staff_attendance_day"`

	StaffAttendanceSessionID uint `json:"staff_attendance_session_id" gorm:"column:staff_attendance_session_id;not null;index"`
	StaffAttendanceTermID    uint `json:"staff_attendance_term_id"    gorm:"column:staff_attendance_term_id;not null;index"`

	StaffAttendanceDateOfMarking time.Time `json:"staff_attendance_date_of_marking" gorm:"column:staff_attendance_date_of_marking;type:date;not null;uniqueIndex:uq_staff_attendance_day"`
	StaffAttendanceArrivalTime   string    `json:"staff_attendance_arrival_time"    gorm:"column:staff_attendance_arrival_time;type:varchar(8);not null"`
	StaffAttendanceIsPresent     bool      `json:"staff_attendance_is_present"      gorm:"column:staff_attendance_is_present;not null;default:false"`

	StaffAttendanceCreatedAt time.Time `json:"staff_attendance_created_at" gorm:"column:staff_attendance_created_at;autoCreateTime"`
	StaffAttendanceUpdatedAt time.Time `json:"staff_attendance_updated_at" gorm:"column:staff_attendance_updated_at;autoUpdateTime"`
}

func (StaffAttendanceModel) TableName() string {
	return "staff_attendances"
}
