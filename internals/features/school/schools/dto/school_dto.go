package dto

import (
	"gorm.io/datatypes"
)

type CreateSchoolRequest struct {
	SchoolName    string         `json:"school_name"    validate:"required,min=2,max=160"`
	SchoolAddress *string        `json:"school_address" validate:"omitempty,max=500"`
	SchoolContact datatypes.JSON `json:"school_contact" validate:"omitempty"`
}

type UpdateSchoolRequest struct {
	SchoolName    *string        `json:"school_name"    validate:"omitempty,min=2,max=160"`
	SchoolAddress *string        `json:"school_address" validate:"omitempty,max=500"`
	SchoolContact datatypes.JSON `json:"school_contact" validate:"omitempty"`
}

type EnrollStudentRequest struct {
	UserID uint `json:"user_id" validate:"required"`
}

type AddEmployeeRequest struct {
	UserID uint    `json:"user_id" validate:"required"`
	Title  *string `json:"title"   validate:"omitempty,max=80"`
}

type ListSchoolsQuery struct {
	Name     *string `query:"name"`
	IsActive *bool   `query:"is_active"`
}
