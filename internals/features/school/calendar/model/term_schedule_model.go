package model

import "time"

// Status values shared by term activities and term breaks.
const (
	TermScheduleStatusObserved  = "observed"
	TermScheduleStatusPostponed = "postponed"
)

// SchoolTermActivityModel represents the `school_term_activities` table:
// a dated event (sports day, exams week, ...) inside a term.
type SchoolTermActivityModel struct {
	TermActivityID uint `json:"term_activity_id" gorm:"column:term_activity_id;primaryKey;autoIncrement"`

	TermActivityTermID uint `json:"term_activity_term_id" gorm:"column:term_activity_term_id;not null;index"`

	TermActivityTitle       string `json:"term_activity_title"       gorm:"column:term_activity_title;type:varchar(160);not null"`
	TermActivityDescription string `json:"term_activity_description" gorm:"column:term_activity_description;type:text;not null"`

	TermActivityDate   time.Time `json:"term_activity_date"   gorm:"column:term_activity_date;type:date;not null"`
	TermActivityStatus string    `json:"term_activity_status" gorm:"column:term_activity_status;type:varchar(20);not null;default:observed"`

	TermActivityCreatedAt time.Time `json:"term_activity_created_at" gorm:"column:term_activity_created_at;autoCreateTime"`
	TermActivityUpdatedAt time.Time `json:"term_activity_updated_at" gorm:"column:term_activity_updated_at;autoUpdateTime"`
}

func (SchoolTermActivityModel) TableName() string {
	return "school_term_activities"
}

// SchoolTermBreakModel represents the `school_term_breaks` table: a day inside
// a term on which no attendance is expected. Break days are subtracted from the
// term length when attendance percentages are computed.
type SchoolTermBreakModel struct {
	TermBreakID uint `json:"term_break_id" gorm:"column:term_break_id;primaryKey;autoIncrement"`

	TermBreakTermID uint `json:"term_break_term_id" gorm:"column:term_break_term_id;not null;index"`

	TermBreakTitle       string `json:"term_break_title"       gorm:"column:term_break_title;type:varchar(160);not null"`
	TermBreakDescription string `json:"term_break_description" gorm:"column:term_break_description;type:text;not null"`

	TermBreakDate   time.Time `json:"term_break_date"   gorm:"column:term_break_date;type:date;not null"`
	TermBreakStatus string    `json:"term_break_status" gorm:"column:term_break_status;type:varchar(20);not null;default:observed"`

	TermBreakCreatedAt time.Time `json:"term_break_created_at" gorm:"column:term_break_created_at;autoCreateTime"`
	TermBreakUpdatedAt time.Time `json:"term_break_updated_at" gorm:"column:term_break_updated_at;autoUpdateTime"`
}

func (SchoolTermBreakModel) TableName() string {
	return "school_term_breaks"
}
