package dto

import (
	"time"

	"schoolhub_backend/internals/helpers/errs"
)

const dateLayout = "2006-01-02"

// ParseDate parses a bare YYYY-MM-DD body/query value.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, errs.Invalid("invalid date, expected YYYY-MM-DD")
	}
	return t, nil
}

// ===============================
// Sessions
// ===============================

type CreateSessionRequest struct {
	SchoolID    uint    `json:"school_id"   validate:"required"`
	Title       string  `json:"title"       validate:"required,min=1,max=160"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

type UpdateSessionRequest struct {
	Title       *string `json:"title"       validate:"omitempty,min=1,max=160"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

type ListSessionsQuery struct {
	SchoolID *uint   `query:"school_id"`
	Title    *string `query:"title"`
	IsActive *bool   `query:"is_active"`
}

// ===============================
// Terms
// ===============================

type TermScheduleRequest struct {
	Title       string `json:"title"       validate:"required,min=1,max=160"`
	Description string `json:"description" validate:"required"`
	Date        string `json:"date"        validate:"required,datetime=2006-01-02"`
	Status      string `json:"status"      validate:"omitempty,oneof=observed postponed"`
}

type CreateTermRequest struct {
	SessionID   uint    `json:"session_id"  validate:"required"`
	SchoolID    uint    `json:"school_id"   validate:"required"`
	Title       string  `json:"title"       validate:"required,min=1,max=160"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	StartDate   string  `json:"start_date"  validate:"required,datetime=2006-01-02"`
	EndDate     string  `json:"end_date"    validate:"required,datetime=2006-01-02"`

	Breaks     []TermScheduleRequest `json:"breaks"     validate:"omitempty,dive"`
	Activities []TermScheduleRequest `json:"activities" validate:"omitempty,dive"`
}

type UpdateTermRequest struct {
	Title       *string `json:"title"       validate:"omitempty,min=1,max=160"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	StartDate   *string `json:"start_date"  validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string `json:"end_date"    validate:"omitempty,datetime=2006-01-02"`
}

type ListTermsQuery struct {
	SchoolID  *uint `query:"school_id"`
	SessionID *uint `query:"session_id"`
	IsActive  *bool `query:"is_active"`
}

// ===============================
// Term activities / breaks
// ===============================

type CreateTermScheduleRequest struct {
	TermID      uint   `json:"term_id"     validate:"required"`
	Title       string `json:"title"       validate:"required,min=1,max=160"`
	Description string `json:"description" validate:"required"`
	Date        string `json:"date"        validate:"required,datetime=2006-01-02"`
	Status      string `json:"status"      validate:"omitempty,oneof=observed postponed"`
}

type UpdateTermScheduleRequest struct {
	Title       *string `json:"title"       validate:"omitempty,min=1,max=160"`
	Description *string `json:"description" validate:"omitempty"`
	Date        *string `json:"date"        validate:"omitempty,datetime=2006-01-02"`
	Status      *string `json:"status"      validate:"omitempty,oneof=observed postponed"`
}

type ListTermSchedulesQuery struct {
	TermID   *uint   `query:"term_id"`
	Title    *string `query:"title"`
	Status   *string `query:"status"`
	DateFrom *string `query:"date_from"`
	DateTo   *string `query:"date_to"`
}
