package model

import "time"

// SchoolSessionTermModel represents the `school_session_terms` table. The
// school id is denormalized next to the session id so the single-active-term
// rule can live in one partial unique index:
//
//	(term_school_id, term_session_id) unique where term_is_active
//
// See databases.Migrate.
type SchoolSessionTermModel struct {
	TermID uint `json:"term_id" gorm:"column:term_id;primaryKey;autoIncrement"`

	TermSessionID uint `json:"term_session_id" gorm:"column:term_session_id;not null;index"`
	TermSchoolID  uint `json:"term_school_id"  gorm:"column:term_school_id;not null;index"`

	TermTitle       string  `json:"term_title"                 gorm:"column:term_title;type:varchar(160);not null"`
	TermDescription *string `json:"term_description,omitempty" gorm:"column:term_description;type:text"`

	TermStartDate time.Time `json:"term_start_date" gorm:"column:term_start_date;type:date;not null"`
	TermEndDate   time.Time `json:"term_end_date"   gorm:"column:term_end_date;type:date;not null"`

	TermIsActive bool `json:"term_is_active" gorm:"column:term_is_active;not null;default:true"`

	TermCreatedAt time.Time `json:"term_created_at" gorm:"column:term_created_at;autoCreateTime"`
	TermUpdatedAt time.Time `json:"term_updated_at" gorm:"column:term_updated_at;autoUpdateTime"`
}

func (SchoolSessionTermModel) TableName() string {
	return "school_session_terms"
}
