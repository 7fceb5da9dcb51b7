package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	database "schoolhub_backend/internals/databases"
	calendarModel "schoolhub_backend/internals/features/school/calendar/model"
	"schoolhub_backend/internals/helpers/errs"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedSession(t *testing.T, svc *CalendarService, schoolID uint) *calendarModel.SchoolSessionModel {
	t.Helper()
	sess, err := svc.CreateSession(context.Background(), schoolID, "2024/2025", nil)
	require.NoError(t, err)
	return sess
}

func TestCreateTermValidatesDates(t *testing.T) {
	svc := NewCalendarService(newTestDB(t))
	ctx := context.Background()
	sess := seedSession(t, svc, 1)

	_, err := svc.CreateTerm(ctx, CreateTermInput{
		SessionID: sess.SessionID,
		SchoolID:  1,
		Title:     "First Term",
		StartDate: day(2024, 4, 1),
		EndDate:   day(2024, 1, 8),
	})
	de, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindInvalid, de.Kind)
}

func TestSingleActiveTermPerSession(t *testing.T) {
	svc := NewCalendarService(newTestDB(t))
	ctx := context.Background()
	sess := seedSession(t, svc, 1)

	first, err := svc.CreateTerm(ctx, CreateTermInput{
		SessionID: sess.SessionID,
		SchoolID:  1,
		Title:     "First Term",
		StartDate: day(2024, 1, 8),
		EndDate:   day(2024, 4, 1),
	})
	require.NoError(t, err)
	assert.True(t, first.TermIsActive)

	// a second active term for the same session is refused
	_, err = svc.CreateTerm(ctx, CreateTermInput{
		SessionID: sess.SessionID,
		SchoolID:  1,
		Title:     "Second Term",
		StartDate: day(2024, 4, 15),
		EndDate:   day(2024, 7, 20),
	})
	de, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindConflict, de.Kind)

	// closing the first term opens the slot
	require.NoError(t, svc.DeactivateTerm(ctx, first.TermID))
	second, err := svc.CreateTerm(ctx, CreateTermInput{
		SessionID: sess.SessionID,
		SchoolID:  1,
		Title:     "Second Term",
		StartDate: day(2024, 4, 15),
		EndDate:   day(2024, 7, 20),
	})
	require.NoError(t, err)
	assert.True(t, second.TermIsActive)

	// deactivating twice is harmless
	require.NoError(t, svc.DeactivateTerm(ctx, first.TermID))
}

func TestCreateTermWithSchedules(t *testing.T) {
	svc := NewCalendarService(newTestDB(t))
	ctx := context.Background()
	sess := seedSession(t, svc, 1)

	term, err := svc.CreateTerm(ctx, CreateTermInput{
		SessionID: sess.SessionID,
		SchoolID:  1,
		Title:     "First Term",
		StartDate: day(2024, 1, 8),
		EndDate:   day(2024, 4, 1),
		Breaks: []TermScheduleInput{
			{Title: "Mid-term break", Date: day(2024, 2, 14)},
			{Title: "Public holiday", Date: day(2024, 3, 1)},
		},
		Activities: []TermScheduleInput{
			{Title: "Inter-house sports", Date: day(2024, 3, 10), Status: "postponed"},
		},
	})
	require.NoError(t, err)

	n, err := svc.CountTermBreaks(ctx, term.TermID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	acts, total, err := svc.ListTermActivities(ctx, TermScheduleFilter{TermID: &term.TermID}, 25, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, acts, 1)
	assert.Equal(t, calendarModel.TermScheduleStatusPostponed, acts[0].TermActivityStatus)
}

func TestTermRequiresActiveSession(t *testing.T) {
	svc := NewCalendarService(newTestDB(t))
	ctx := context.Background()
	sess := seedSession(t, svc, 1)
	require.NoError(t, svc.DeactivateSession(ctx, sess.SessionID))

	_, err := svc.CreateTerm(ctx, CreateTermInput{
		SessionID: sess.SessionID,
		SchoolID:  1,
		Title:     "First Term",
		StartDate: day(2024, 1, 8),
		EndDate:   day(2024, 4, 1),
	})
	de, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindNotFound, de.Kind)
}

func TestUpdateTermKeepsDatesConsistent(t *testing.T) {
	svc := NewCalendarService(newTestDB(t))
	ctx := context.Background()
	sess := seedSession(t, svc, 1)

	term, err := svc.CreateTerm(ctx, CreateTermInput{
		SessionID: sess.SessionID,
		SchoolID:  1,
		Title:     "First Term",
		StartDate: day(2024, 1, 8),
		EndDate:   day(2024, 4, 1),
	})
	require.NoError(t, err)

	// moving the start past the end is refused, even though only one side changed
	badStart := day(2024, 5, 1)
	_, err = svc.UpdateTerm(ctx, term.TermID, TermPatch{StartDate: &badStart})
	de, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindInvalid, de.Kind)

	title := "First Term (revised)"
	newEnd := day(2024, 4, 12)
	updated, err := svc.UpdateTerm(ctx, term.TermID, TermPatch{Title: &title, EndDate: &newEnd})
	require.NoError(t, err)

	got, err := svc.GetTerm(ctx, updated.TermID)
	require.NoError(t, err)
	assert.Equal(t, "First Term (revised)", got.TermTitle)
}

func TestTermScheduleLifecycle(t *testing.T) {
	svc := NewCalendarService(newTestDB(t))
	ctx := context.Background()
	sess := seedSession(t, svc, 1)

	term, err := svc.CreateTerm(ctx, CreateTermInput{
		SessionID: sess.SessionID,
		SchoolID:  1,
		Title:     "First Term",
		StartDate: day(2024, 1, 8),
		EndDate:   day(2024, 4, 1),
	})
	require.NoError(t, err)

	act, err := svc.CreateTermActivity(ctx, term.TermID, "Open day", "Parents visit", day(2024, 2, 20), "")
	require.NoError(t, err)
	assert.Equal(t, calendarModel.TermScheduleStatusObserved, act.TermActivityStatus)

	status := "postponed"
	_, err = svc.UpdateTermActivity(ctx, act.TermActivityID, TermSchedulePatch{Status: &status})
	require.NoError(t, err)

	got, err := svc.GetTermActivity(ctx, act.TermActivityID)
	require.NoError(t, err)
	assert.Equal(t, calendarModel.TermScheduleStatusPostponed, got.TermActivityStatus)

	require.NoError(t, svc.DeleteTermActivity(ctx, act.TermActivityID))
	err = svc.DeleteTermActivity(ctx, act.TermActivityID)
	de, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindNotFound, de.Kind)

	// breaks follow the same pattern and refuse a closed term on create
	brk, err := svc.CreateTermBreak(ctx, term.TermID, "Sallah break", "", day(2024, 3, 5), "")
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateTerm(ctx, term.TermID))
	_, err = svc.CreateTermBreak(ctx, term.TermID, "Extra break", "", day(2024, 3, 6), "")
	de, ok = errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindNotFound, de.Kind)

	require.NoError(t, svc.DeleteTermBreak(ctx, brk.TermBreakID))
}
