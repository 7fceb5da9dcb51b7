package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	calendarModel "schoolhub_backend/internals/features/school/calendar/model"
	"schoolhub_backend/internals/helpers/errs"
)

// CalendarService owns the academic calendar: sessions, terms and the
// breaks/activities that hang off a term. Per school and session the lifecycle
// is NoActiveTerm -> TermActive -> (deactivated) -> NoActiveTerm.
type CalendarService struct {
	DB *gorm.DB
}

func NewCalendarService(db *gorm.DB) *CalendarService {
	return &CalendarService{DB: db}
}

// ===============================
// Inputs
// ===============================

type SessionFilter struct {
	SchoolID *uint
	Title    *string // substring match
	IsActive *bool
}

type SessionPatch struct {
	Title       *string
	Description *string
}

type TermScheduleInput struct {
	Title       string
	Description string
	Date        time.Time
	Status      string // observed | postponed; empty defaults to observed
}

type CreateTermInput struct {
	SessionID   uint
	SchoolID    uint
	Title       string
	Description *string
	StartDate   time.Time
	EndDate     time.Time
	Breaks      []TermScheduleInput
	Activities  []TermScheduleInput
}

type TermFilter struct {
	SchoolID  *uint
	SessionID *uint
	IsActive  *bool
}

type TermPatch struct {
	Title       *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
}

type TermScheduleFilter struct {
	TermID   *uint
	Title    *string // substring match
	Status   *string // exact
	DateFrom *time.Time
	DateTo   *time.Time
}

type TermSchedulePatch struct {
	Title       *string
	Description *string
	Date        *time.Time
	Status      *string
}

// ===============================
// Sessions
// ===============================

func (s *CalendarService) CreateSession(ctx context.Context, schoolID uint, title string, description *string) (*calendarModel.SchoolSessionModel, error) {
	sess := calendarModel.SchoolSessionModel{
		SessionSchoolID:    schoolID,
		SessionTitle:       strings.TrimSpace(title),
		SessionDescription: description,
		SessionIsActive:    true,
	}
	if err := s.DB.WithContext(ctx).Create(&sess).Error; err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *CalendarService) GetSession(ctx context.Context, id uint) (*calendarModel.SchoolSessionModel, error) {
	var sess calendarModel.SchoolSessionModel
	err := s.DB.WithContext(ctx).Where("session_id = ?", id).First(&sess).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("Session not found")
	}
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *CalendarService) ListSessions(ctx context.Context, f SessionFilter, limit, offset int) ([]calendarModel.SchoolSessionModel, int64, error) {
	tx := s.DB.WithContext(ctx).Model(&calendarModel.SchoolSessionModel{})
	if f.SchoolID != nil {
		tx = tx.Where("session_school_id = ?", *f.SchoolID)
	}
	if f.Title != nil && strings.TrimSpace(*f.Title) != "" {
		tx = tx.Where("LOWER(session_title) LIKE ?", "%"+strings.ToLower(strings.TrimSpace(*f.Title))+"%")
	}
	if f.IsActive != nil {
		tx = tx.Where("session_is_active = ?", *f.IsActive)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []calendarModel.SchoolSessionModel
	if err := tx.Order("session_id DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *CalendarService) UpdateSession(ctx context.Context, id uint, patch SessionPatch) (*calendarModel.SchoolSessionModel, error) {
	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["session_title"] = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		updates["session_description"] = *patch.Description
	}
	if len(updates) == 0 {
		return sess, nil
	}
	if err := s.DB.WithContext(ctx).Model(sess).Updates(updates).Error; err != nil {
		return nil, err
	}
	return sess, nil
}

// DeactivateSession flips session_is_active off. Idempotent: deactivating an
// already-inactive session is not an error.
func (s *CalendarService) DeactivateSession(ctx context.Context, id uint) error {
	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Model(sess).Update("session_is_active", false).Error
}

// ===============================
// Terms
// ===============================

// CreateTerm opens a new term under an active session. The term and its child
// breaks/activities are written in one transaction, and the partial unique
// index on (school, session) where active is the final arbiter of the
// single-active-term rule.
func (s *CalendarService) CreateTerm(ctx context.Context, in CreateTermInput) (*calendarModel.SchoolSessionTermModel, error) {
	if !in.StartDate.Before(in.EndDate) {
		return nil, errs.Invalid("Term start date must be before end date")
	}

	sess, err := s.GetSession(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}
	if !sess.SessionIsActive {
		return nil, errs.NotFound("Session is not active")
	}

	var term calendarModel.SchoolSessionTermModel
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var active int64
		if err := tx.Model(&calendarModel.SchoolSessionTermModel{}).
			Where("term_school_id = ? AND term_session_id = ? AND term_is_active = ?", in.SchoolID, in.SessionID, true).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return errs.Conflict("A term is already active for this session")
		}

		term = calendarModel.SchoolSessionTermModel{
			TermSessionID:   in.SessionID,
			TermSchoolID:    in.SchoolID,
			TermTitle:       strings.TrimSpace(in.Title),
			TermDescription: in.Description,
			TermStartDate:   in.StartDate,
			TermEndDate:     in.EndDate,
			TermIsActive:    true,
		}
		if err := tx.Create(&term).Error; err != nil {
			return err
		}

		for _, b := range in.Breaks {
			row := calendarModel.SchoolTermBreakModel{
				TermBreakTermID:      term.TermID,
				TermBreakTitle:       strings.TrimSpace(b.Title),
				TermBreakDescription: b.Description,
				TermBreakDate:        b.Date,
				TermBreakStatus:      scheduleStatus(b.Status),
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for _, a := range in.Activities {
			row := calendarModel.SchoolTermActivityModel{
				TermActivityTermID:      term.TermID,
				TermActivityTitle:       strings.TrimSpace(a.Title),
				TermActivityDescription: a.Description,
				TermActivityDate:        a.Date,
				TermActivityStatus:      scheduleStatus(a.Status),
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errs.IsDuplicateKey(err) {
			return nil, errs.Conflict("A term is already active for this session")
		}
		return nil, err
	}
	return &term, nil
}

func (s *CalendarService) GetTerm(ctx context.Context, id uint) (*calendarModel.SchoolSessionTermModel, error) {
	var term calendarModel.SchoolSessionTermModel
	err := s.DB.WithContext(ctx).Where("term_id = ?", id).First(&term).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("Term not found")
	}
	if err != nil {
		return nil, err
	}
	return &term, nil
}

func (s *CalendarService) ListTerms(ctx context.Context, f TermFilter, limit, offset int) ([]calendarModel.SchoolSessionTermModel, int64, error) {
	tx := s.DB.WithContext(ctx).Model(&calendarModel.SchoolSessionTermModel{})
	if f.SchoolID != nil {
		tx = tx.Where("term_school_id = ?", *f.SchoolID)
	}
	if f.SessionID != nil {
		tx = tx.Where("term_session_id = ?", *f.SessionID)
	}
	if f.IsActive != nil {
		tx = tx.Where("term_is_active = ?", *f.IsActive)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []calendarModel.SchoolSessionTermModel
	if err := tx.Order("term_id DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *CalendarService) UpdateTerm(ctx context.Context, id uint, patch TermPatch) (*calendarModel.SchoolSessionTermModel, error) {
	term, err := s.GetTerm(ctx, id)
	if err != nil {
		return nil, err
	}

	start := term.TermStartDate
	end := term.TermEndDate
	if patch.StartDate != nil {
		start = *patch.StartDate
	}
	if patch.EndDate != nil {
		end = *patch.EndDate
	}
	if !start.Before(end) {
		return nil, errs.Invalid("Term start date must be before end date")
	}

	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["term_title"] = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		updates["term_description"] = *patch.Description
	}
	if patch.StartDate != nil {
		updates["term_start_date"] = *patch.StartDate
	}
	if patch.EndDate != nil {
		updates["term_end_date"] = *patch.EndDate
	}
	if len(updates) == 0 {
		return term, nil
	}
	if err := s.DB.WithContext(ctx).Model(term).Updates(updates).Error; err != nil {
		return nil, err
	}
	return term, nil
}

// DeactivateTerm closes the term for attendance marking. Idempotent.
func (s *CalendarService) DeactivateTerm(ctx context.Context, id uint) error {
	term, err := s.GetTerm(ctx, id)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Model(term).Update("term_is_active", false).Error
}

// ActiveTerm returns the term only if it is still open for marking.
func (s *CalendarService) ActiveTerm(ctx context.Context, id uint) (*calendarModel.SchoolSessionTermModel, error) {
	term, err := s.GetTerm(ctx, id)
	if err != nil {
		return nil, err
	}
	if !term.TermIsActive {
		return nil, errs.NotFound("Term is not active")
	}
	return term, nil
}

// ActiveSession returns the session only if it is still active.
func (s *CalendarService) ActiveSession(ctx context.Context, id uint) (*calendarModel.SchoolSessionModel, error) {
	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sess.SessionIsActive {
		return nil, errs.NotFound("Session is not active")
	}
	return sess, nil
}

// CountTermBreaks returns the number of break days recorded for a term.
func (s *CalendarService) CountTermBreaks(ctx context.Context, termID uint) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&calendarModel.SchoolTermBreakModel{}).
		Where("term_break_term_id = ?", termID).
		Count(&n).Error
	return n, err
}

func scheduleStatus(s string) string {
	if strings.ToLower(strings.TrimSpace(s)) == calendarModel.TermScheduleStatusPostponed {
		return calendarModel.TermScheduleStatusPostponed
	}
	return calendarModel.TermScheduleStatusObserved
}
