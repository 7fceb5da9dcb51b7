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

// CRUD for the two dated child rows of a term: activities and breaks. Both are
// hard-deleted; only sessions/terms/classes get the soft-delete treatment.

// ===============================
// Term activities
// ===============================

func (s *CalendarService) CreateTermActivity(ctx context.Context, termID uint, title, description string, date time.Time, status string) (*calendarModel.SchoolTermActivityModel, error) {
	if _, err := s.ActiveTerm(ctx, termID); err != nil {
		return nil, err
	}
	row := calendarModel.SchoolTermActivityModel{
		TermActivityTermID:      termID,
		TermActivityTitle:       strings.TrimSpace(title),
		TermActivityDescription: description,
		TermActivityDate:        date,
		TermActivityStatus:      scheduleStatus(status),
	}
	if err := s.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *CalendarService) GetTermActivity(ctx context.Context, id uint) (*calendarModel.SchoolTermActivityModel, error) {
	var row calendarModel.SchoolTermActivityModel
	err := s.DB.WithContext(ctx).Where("term_activity_id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("Term activity not found")
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *CalendarService) ListTermActivities(ctx context.Context, f TermScheduleFilter, limit, offset int) ([]calendarModel.SchoolTermActivityModel, int64, error) {
	tx := s.DB.WithContext(ctx).Model(&calendarModel.SchoolTermActivityModel{})
	if f.TermID != nil {
		tx = tx.Where("term_activity_term_id = ?", *f.TermID)
	}
	if f.Title != nil && strings.TrimSpace(*f.Title) != "" {
		tx = tx.Where("LOWER(term_activity_title) LIKE ?", "%"+strings.ToLower(strings.TrimSpace(*f.Title))+"%")
	}
	if f.Status != nil {
		tx = tx.Where("term_activity_status = ?", scheduleStatus(*f.Status))
	}
	if f.DateFrom != nil {
		tx = tx.Where("term_activity_date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		tx = tx.Where("term_activity_date <= ?", *f.DateTo)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []calendarModel.SchoolTermActivityModel
	if err := tx.Order("term_activity_date ASC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *CalendarService) UpdateTermActivity(ctx context.Context, id uint, patch TermSchedulePatch) (*calendarModel.SchoolTermActivityModel, error) {
	row, err := s.GetTermActivity(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["term_activity_title"] = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		updates["term_activity_description"] = *patch.Description
	}
	if patch.Date != nil {
		updates["term_activity_date"] = *patch.Date
	}
	if patch.Status != nil {
		updates["term_activity_status"] = scheduleStatus(*patch.Status)
	}
	if len(updates) == 0 {
		return row, nil
	}
	if err := s.DB.WithContext(ctx).Model(row).Updates(updates).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (s *CalendarService) DeleteTermActivity(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).
		Where("term_activity_id = ?", id).
		Delete(&calendarModel.SchoolTermActivityModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("Term activity not found")
	}
	return nil
}

// ===============================
// Term breaks
// ===============================

func (s *CalendarService) CreateTermBreak(ctx context.Context, termID uint, title, description string, date time.Time, status string) (*calendarModel.SchoolTermBreakModel, error) {
	if _, err := s.ActiveTerm(ctx, termID); err != nil {
		return nil, err
	}
	row := calendarModel.SchoolTermBreakModel{
		TermBreakTermID:      termID,
		TermBreakTitle:       strings.TrimSpace(title),
		TermBreakDescription: description,
		TermBreakDate:        date,
		TermBreakStatus:      scheduleStatus(status),
	}
	if err := s.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *CalendarService) GetTermBreak(ctx context.Context, id uint) (*calendarModel.SchoolTermBreakModel, error) {
	var row calendarModel.SchoolTermBreakModel
	err := s.DB.WithContext(ctx).Where("term_break_id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("Term break not found")
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *CalendarService) ListTermBreaks(ctx context.Context, f TermScheduleFilter, limit, offset int) ([]calendarModel.SchoolTermBreakModel, int64, error) {
	tx := s.DB.WithContext(ctx).Model(&calendarModel.SchoolTermBreakModel{})
	if f.TermID != nil {
		tx = tx.Where("term_break_term_id = ?", *f.TermID)
	}
	if f.Title != nil && strings.TrimSpace(*f.Title) != "" {
		tx = tx.Where("LOWER(term_break_title) LIKE ?", "%"+strings.ToLower(strings.TrimSpace(*f.Title))+"%")
	}
	if f.Status != nil {
		tx = tx.Where("term_break_status = ?", scheduleStatus(*f.Status))
	}
	if f.DateFrom != nil {
		tx = tx.Where("term_break_date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		tx = tx.Where("term_break_date <= ?", *f.DateTo)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []calendarModel.SchoolTermBreakModel
	if err := tx.Order("term_break_date ASC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *CalendarService) UpdateTermBreak(ctx context.Context, id uint, patch TermSchedulePatch) (*calendarModel.SchoolTermBreakModel, error) {
	row, err := s.GetTermBreak(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["term_break_title"] = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		updates["term_break_description"] = *patch.Description
	}
	if patch.Date != nil {
		updates["term_break_date"] = *patch.Date
	}
	if patch.Status != nil {
		updates["term_break_status"] = scheduleStatus(*patch.Status)
	}
	if len(updates) == 0 {
		return row, nil
	}
	if err := s.DB.WithContext(ctx).Model(row).Updates(updates).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (s *CalendarService) DeleteTermBreak(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).
		Where("term_break_id = ?", id).
		Delete(&calendarModel.SchoolTermBreakModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("Term break not found")
	}
	return nil
}
