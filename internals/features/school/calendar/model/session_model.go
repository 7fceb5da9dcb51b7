package model

import "time"

// SchoolSessionModel represents the `school_sessions` table: one academic
// year/cycle for a school. Soft-deleted via session_is_active.
type SchoolSessionModel struct {
	SessionID uint `json:"session_id" gorm:"column:session_id;primaryKey;autoIncrement"`

	SessionSchoolID uint `json:"session_school_id" gorm:"column:session_school_id;not null;index"`

	SessionTitle       string  `json:"session_title"                 gorm:"column:session_title;type:varchar(160);not null"`
	SessionDescription *string `json:"session_description,omitempty" gorm:"column:session_description;type:text"`

	SessionIsActive bool `json:"session_is_active" gorm:"column:session_is_active;not null;default:true"`

	SessionCreatedAt time.Time `json:"session_created_at" gorm:"column:session_created_at;autoCreateTime"`
	SessionUpdatedAt time.Time `json:"session_updated_at" gorm:"column:session_updated_at;autoUpdateTime"`
}

func (SchoolSessionModel) TableName() string {
	return "school_sessions"
}
