package model

import "time"

// ClassAttendanceModel represents the `class_attendances` table: one student,
// one day, present or absent. Rows are immutable once written except through
// the explicit admin correction endpoint.
//
// (class_id, student_id, date_of_marking) is unique so the same day can never
// be marked twice for the same student in a class.
type ClassAttendanceModel struct {
	ClassAttendanceID uint `json:"class_attendance_id" gorm:"column:class_attendance_id;primaryKey;autoIncrement"`

	ClassAttendanceStudentID uint `json:"class_attendance_student_id" gorm:"column:class_attendance_student_id;index;not null;uniqueIndex:uq_class_attendance_day"`
	ClassAttendanceClassID   uint `json:"class_attendance_class_id"   gorm:"column:class_attendance_class_id;not null;uniqueIndex:uq_class_attendance_day"`

	ClassAttendanceSchoolID  uint `json:"class_attendance_school_id"  gorm:"column:class_attendance_school_id;not null;index"`
	ClassAttendanceSessionID uint `json:"class_attendance_session_id" gorm:"column:class_attendance_session_id;not null;index"`
	ClassAttendanceTermID    uint `json:"class_attendance_term_id"    gorm:"column:class_attendance_term_id;not null;index"`

	ClassAttendanceTeacherID     uint  `json:"class_attendance_teacher_id" gorm:"column:class_attendance_teacher_id;not null"`
	ClassAttendanceStandInMarker *uint `json:"class_attendance_stand_in_marker,omitempty" gorm:"column:class_attendance_stand_in_marker"`

	ClassAttendanceDateOfMarking time.Time `json:"class_attendance_date_of_marking" gorm:"column:class_attendance_date_of_marking;type:date;not null;uniqueIndex:uq_class_attendance_day"`
	ClassAttendanceIsPresent     bool      `json:"class_attendance_is_present"      gorm:"column:class_attendance_is_present;not null;default:false"`

	ClassAttendanceCreatedAt time.Time `json:"class_attendance_created_at" gorm:"column:class_attendance_created_at;autoCreateTime"`
	ClassAttendanceUpdatedAt time.Time `json:"class_attendance_updated_at" gorm:"column:class_attendance_updated_at;autoUpdateTime"`
}

func (ClassAttendanceModel) TableName() string {
	return "class_attendances"
}
