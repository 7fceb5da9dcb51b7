package dto

type StudentMarkRequest struct {
	StudentID uint  `json:"student_id" validate:"required"`
	IsPresent *bool `json:"is_present" validate:"required"`
}

type MarkClassAttendanceRequest struct {
	ClassID       uint   `json:"class_id"        validate:"required"`
	SessionID     uint   `json:"session_id"      validate:"required"`
	TermID        uint   `json:"term_id"         validate:"required"`
	StandInMarker *uint  `json:"stand_in_marker" validate:"omitempty"`
	DateOfMarking string `json:"date_of_marking" validate:"required,datetime=2006-01-02"`

	Records []StudentMarkRequest `json:"records" validate:"required,min=1,dive"`
}

type UpdateAttendanceRequest struct {
	IsPresent     *bool   `json:"is_present"      validate:"omitempty"`
	DateOfMarking *string `json:"date_of_marking" validate:"omitempty,datetime=2006-01-02"`
	StandInMarker *uint   `json:"stand_in_marker" validate:"omitempty"`
}

type ListAttendanceQuery struct {
	ClassID   *uint   `query:"class_id"`
	StudentID *uint   `query:"student_id"`
	SchoolID  *uint   `query:"school_id"`
	SessionID *uint   `query:"session_id"`
	TermID    *uint   `query:"term_id"`
	IsPresent *bool   `query:"is_present"`
	DateFrom  *string `query:"date_from"`
	DateTo    *string `query:"date_to"`
}

// ===============================
// Staff attendance
// ===============================

type StaffMarkRequest struct {
	StaffID     uint   `json:"staff_id"     validate:"required"`
	ArrivalTime string `json:"arrival_time" validate:"required,datetime=15:04"`
	IsPresent   *bool  `json:"is_present"   validate:"required"`
}

type MarkStaffAttendanceRequest struct {
	SchoolID      uint   `json:"school_id"       validate:"required"`
	SessionID     uint   `json:"session_id"      validate:"required"`
	TermID        uint   `json:"term_id"         validate:"required"`
	DateOfMarking string `json:"date_of_marking" validate:"required,datetime=2006-01-02"`

	Records []StaffMarkRequest `json:"records" validate:"required,min=1,dive"`
}

type ListStaffAttendanceQuery struct {
	SchoolID  *uint   `query:"school_id"`
	StaffID   *uint   `query:"staff_id"`
	SessionID *uint   `query:"session_id"`
	TermID    *uint   `query:"term_id"`
	IsPresent *bool   `query:"is_present"`
	DateFrom  *string `query:"date_from"`
	DateTo    *string `query:"date_to"`
}
