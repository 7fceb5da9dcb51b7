package model

import "time"

// SchoolClassModel represents the `school_classes` table. Classes are never
// hard-deleted: deletion flips class_is_active to false.
type SchoolClassModel struct {
	ClassID uint `json:"class_id" gorm:"column:class_id;primaryKey;autoIncrement"`

	ClassSchoolID uint `json:"class_school_id" gorm:"column:class_school_id;not null;index"`

	ClassName        string  `json:"class_name"                  gorm:"column:class_name;type:varchar(120);not null"`
	ClassDescription *string `json:"class_description,omitempty" gorm:"column:class_description;type:text"`

	ClassIsActive bool `json:"class_is_active" gorm:"column:class_is_active;not null;default:true"`

	ClassCreatedAt time.Time `json:"class_created_at" gorm:"column:class_created_at;autoCreateTime"`
	ClassUpdatedAt time.Time `json:"class_updated_at" gorm:"column:class_updated_at;autoUpdateTime"`
}

func (SchoolClassModel) TableName() string {
	return "school_classes"
}
