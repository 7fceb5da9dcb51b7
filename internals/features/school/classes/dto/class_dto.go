package dto

type CreateClassRequest struct {
	ClassSchoolID    uint    `json:"class_school_id"   validate:"required"`
	ClassName        string  `json:"class_name"        validate:"required,min=1,max=120"`
	ClassDescription *string `json:"class_description" validate:"omitempty,max=2000"`
}

type UpdateClassRequest struct {
	ClassName        *string `json:"class_name"        validate:"omitempty,min=1,max=120"`
	ClassDescription *string `json:"class_description" validate:"omitempty,max=2000"`
}

type ListClassesQuery struct {
	SchoolID *uint   `query:"school_id"`
	Name     *string `query:"name"`
	IsActive *bool   `query:"is_active"`
}

// ===============================
// Membership requests
// ===============================

type AssignTeacherRequest struct {
	SchoolID  uint `json:"school_id"  validate:"required"`
	TeacherID uint `json:"teacher_id" validate:"required"`
	ClassID   uint `json:"class_id"   validate:"required"`
}

type AssignStudentRequest struct {
	SchoolID  uint `json:"school_id"  validate:"required"`
	StudentID uint `json:"student_id" validate:"required"`
	ClassID   uint `json:"class_id"   validate:"required"`
}

type ReassignTeacherRequest struct {
	TeacherID  uint `json:"teacher_id"   validate:"required"`
	OldClassID uint `json:"old_class_id" validate:"required"`
	NewClassID uint `json:"new_class_id" validate:"required"`
}

type ReassignStudentRequest struct {
	StudentID  uint `json:"student_id"   validate:"required"`
	OldClassID uint `json:"old_class_id" validate:"required"`
	NewClassID uint `json:"new_class_id" validate:"required"`
}

type CaptainRequest struct {
	ClassID        uint `json:"class_id"         validate:"required"`
	ClassCaptainID uint `json:"class_captain_id" validate:"required"`
}
