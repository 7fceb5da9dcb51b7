package model

import (
	"time"

	"gorm.io/datatypes"
)

// SchoolModel represents the `schools` table.
type SchoolModel struct {
	SchoolID uint `json:"school_id" gorm:"column:school_id;primaryKey;autoIncrement"`

	SchoolName    string  `json:"school_name"              gorm:"column:school_name;type:varchar(160);not null"`
	SchoolAddress *string `json:"school_address,omitempty" gorm:"column:school_address;type:text"`

	// Free-form contact block (phone, email, website, ...)
	SchoolContact datatypes.JSON `json:"school_contact,omitempty" gorm:"column:school_contact;type:jsonb"`

	SchoolIsActive bool `json:"school_is_active" gorm:"column:school_is_active;not null;default:true"`

	// Principal (owning user)
	SchoolCreatedBy uint `json:"school_created_by" gorm:"column:school_created_by;not null;index"`

	SchoolCreatedAt time.Time `json:"school_created_at" gorm:"column:school_created_at;autoCreateTime"`
	SchoolUpdatedAt time.Time `json:"school_updated_at" gorm:"column:school_updated_at;autoUpdateTime"`
}

func (SchoolModel) TableName() string {
	return "schools"
}
