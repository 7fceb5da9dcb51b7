package model

import "time"

// SchoolStudentModel is the enrollment record linking a user to a school as a
// student. Roster operations consult it before letting anyone into a class.
type SchoolStudentModel struct {
	SchoolStudentID uint `json:"school_student_id" gorm:"column:school_student_id;primaryKey;autoIncrement"`

	SchoolStudentSchoolID uint `json:"school_student_school_id" gorm:"column:school_student_school_id;not null;uniqueIndex:uq_school_students_pair"`
	SchoolStudentUserID   uint `json:"school_student_user_id"   gorm:"column:school_student_user_id;not null;uniqueIndex:uq_school_students_pair"`

	SchoolStudentIsActive bool `json:"school_student_is_active" gorm:"column:school_student_is_active;not null;default:true"`

	SchoolStudentCreatedAt time.Time `json:"school_student_created_at" gorm:"column:school_student_created_at;autoCreateTime"`
	SchoolStudentUpdatedAt time.Time `json:"school_student_updated_at" gorm:"column:school_student_updated_at;autoUpdateTime"`
}

func (SchoolStudentModel) TableName() string {
	return "school_students"
}

// SchoolEmployeeModel is the employment record linking a user to a school as a
// member of staff (teachers included).
type SchoolEmployeeModel struct {
	SchoolEmployeeID uint `json:"school_employee_id" gorm:"column:school_employee_id;primaryKey;autoIncrement"`

	SchoolEmployeeSchoolID uint `json:"school_employee_school_id" gorm:"column:school_employee_school_id;not null;uniqueIndex:uq_school_employees_pair"`
	SchoolEmployeeUserID   uint `json:"school_employee_user_id"   gorm:"column:school_employee_user_id;not null;uniqueIndex:uq_school_employees_pair"`

	SchoolEmployeeTitle *string `json:"school_employee_title,omitempty" gorm:"column:school_employee_title;type:varchar(80)"`

	SchoolEmployeeIsActive bool `json:"school_employee_is_active" gorm:"column:school_employee_is_active;not null;default:true"`

	SchoolEmployeeCreatedAt time.Time `json:"school_employee_created_at" gorm:"column:school_employee_created_at;autoCreateTime"`
	SchoolEmployeeUpdatedAt time.Time `json:"school_employee_updated_at" gorm:"column:school_employee_updated_at;autoUpdateTime"`
}

func (SchoolEmployeeModel) TableName() string {
	return "school_employees"
}
