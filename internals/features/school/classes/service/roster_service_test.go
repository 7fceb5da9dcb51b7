package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	database "schoolhub_backend/internals/databases"
	classModel "schoolhub_backend/internals/features/school/classes/model"
	schoolModel "schoolhub_backend/internals/features/school/schools/model"
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

func seedSchool(t *testing.T, db *gorm.DB) uint {
	t.Helper()
	school := schoolModel.SchoolModel{
		SchoolName:      "Hillside Academy",
		SchoolIsActive:  true,
		SchoolCreatedBy: 1,
	}
	require.NoError(t, db.Create(&school).Error)
	return school.SchoolID
}

func enrollStudent(t *testing.T, db *gorm.DB, schoolID, userID uint) {
	t.Helper()
	require.NoError(t, db.Create(&schoolModel.SchoolStudentModel{
		SchoolStudentSchoolID: schoolID,
		SchoolStudentUserID:   userID,
		SchoolStudentIsActive: true,
	}).Error)
}

func employStaff(t *testing.T, db *gorm.DB, schoolID, userID uint) {
	t.Helper()
	require.NoError(t, db.Create(&schoolModel.SchoolEmployeeModel{
		SchoolEmployeeSchoolID: schoolID,
		SchoolEmployeeUserID:   userID,
		SchoolEmployeeIsActive: true,
	}).Error)
}

func TestCreateClassRequiresActiveSchool(t *testing.T) {
	db := newTestDB(t)
	svc := NewRosterService(db)
	ctx := context.Background()

	_, err := svc.CreateClass(ctx, 999, "JSS1", nil)
	de, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindNotFound, de.Kind)

	schoolID := seedSchool(t, db)
	cls, err := svc.CreateClass(ctx, schoolID, "  JSS1  ", nil)
	require.NoError(t, err)
	assert.Equal(t, "JSS1", cls.ClassName)
	assert.True(t, cls.ClassIsActive)
}

func TestAssignTeacherRequiresEmployment(t *testing.T) {
	db := newTestDB(t)
	svc := NewRosterService(db)
	ctx := context.Background()

	schoolID := seedSchool(t, db)
	cls, err := svc.CreateClass(ctx, schoolID, "JSS1", nil)
	require.NoError(t, err)

	_, err = svc.AssignTeacher(ctx, schoolID, 30, cls.ClassID)
	de, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindForbidden, de.Kind)

	employStaff(t, db, schoolID, 30)
	member, err := svc.AssignTeacher(ctx, schoolID, 30, cls.ClassID)
	require.NoError(t, err)
	assert.Equal(t, classModel.MemberRoleTeacher, member.ClassMemberRole)

	// second identical assignment is refused
	_, err = svc.AssignTeacher(ctx, schoolID, 30, cls.ClassID)
	de, ok = errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindConflict, de.Kind)
}

func TestStudentSitsInOneClassAtATime(t *testing.T) {
	db := newTestDB(t)
	svc := NewRosterService(db)
	ctx := context.Background()

	schoolID := seedSchool(t, db)
	clsA, err := svc.CreateClass(ctx, schoolID, "JSS1", nil)
	require.NoError(t, err)
	clsB, err := svc.CreateClass(ctx, schoolID, "JSS2", nil)
	require.NoError(t, err)

	// not enrolled at the school yet
	_, err = svc.AssignStudent(ctx, schoolID, 10, clsA.ClassID)
	de, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindForbidden, de.Kind)

	enrollStudent(t, db, schoolID, 10)
	_, err = svc.AssignStudent(ctx, schoolID, 10, clsA.ClassID)
	require.NoError(t, err)

	// same class again
	_, err = svc.AssignStudent(ctx, schoolID, 10, clsA.ClassID)
	de, ok = errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindConflict, de.Kind)

	// different class without reassigning
	_, err = svc.AssignStudent(ctx, schoolID, 10, clsB.ClassID)
	de, ok = errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindConflict, de.Kind)
	assert.Contains(t, de.Message, "reassign")

	// the sanctioned path moves the membership row
	require.NoError(t, svc.ReassignStudent(ctx, 10, clsA.ClassID, clsB.ClassID))

	roster, err := svc.GetClass(ctx, clsB.ClassID)
	require.NoError(t, err)
	require.Len(t, roster.Students, 1)
	assert.Equal(t, uint(10), roster.Students[0].ClassMemberUserID)

	rosterA, err := svc.GetClass(ctx, clsA.ClassID)
	require.NoError(t, err)
	assert.Empty(t, rosterA.Students)
}

func TestReassignRequiresExistingMembership(t *testing.T) {
	db := newTestDB(t)
	svc := NewRosterService(db)
	ctx := context.Background()

	schoolID := seedSchool(t, db)
	clsA, err := svc.CreateClass(ctx, schoolID, "JSS1", nil)
	require.NoError(t, err)
	clsB, err := svc.CreateClass(ctx, schoolID, "JSS2", nil)
	require.NoError(t, err)

	err = svc.ReassignStudent(ctx, 77, clsA.ClassID, clsB.ClassID)
	de, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindForbidden, de.Kind)
}

func TestCaptainRules(t *testing.T) {
	db := newTestDB(t)
	svc := NewRosterService(db)
	ctx := context.Background()

	schoolID := seedSchool(t, db)
	cls, err := svc.CreateClass(ctx, schoolID, "JSS1", nil)
	require.NoError(t, err)

	enrollStudent(t, db, schoolID, 10)
	enrollStudent(t, db, schoolID, 11)
	_, err = svc.AssignStudent(ctx, schoolID, 10, cls.ClassID)
	require.NoError(t, err)
	_, err = svc.AssignStudent(ctx, schoolID, 11, cls.ClassID)
	require.NoError(t, err)

	// a non-student can't be captain
	_, err = svc.MakeCaptain(ctx, cls.ClassID, 99)
	de, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindForbidden, de.Kind)

	member, err := svc.MakeCaptain(ctx, cls.ClassID, 10)
	require.NoError(t, err)
	assert.Equal(t, classModel.MemberRoleCaptain, member.ClassMemberRole)

	// same student twice
	_, err = svc.MakeCaptain(ctx, cls.ClassID, 10)
	de, ok = errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindConflict, de.Kind)

	// a second captain for the class
	_, err = svc.MakeCaptain(ctx, cls.ClassID, 11)
	de, ok = errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindConflict, de.Kind)

	roster, err := svc.GetClass(ctx, cls.ClassID)
	require.NoError(t, err)
	require.NotNil(t, roster.Captain)
	assert.Equal(t, uint(10), roster.Captain.ClassMemberUserID)
	// the captain keeps their student row
	assert.Len(t, roster.Students, 2)

	require.NoError(t, svc.DeleteCaptain(ctx, cls.ClassID, 10))
	err = svc.DeleteCaptain(ctx, cls.ClassID, 10)
	de, ok = errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindForbidden, de.Kind)

	// captaincy is open again
	_, err = svc.MakeCaptain(ctx, cls.ClassID, 11)
	require.NoError(t, err)
}

func TestDeleteClassIsSoft(t *testing.T) {
	db := newTestDB(t)
	svc := NewRosterService(db)
	ctx := context.Background()

	schoolID := seedSchool(t, db)
	cls, err := svc.CreateClass(ctx, schoolID, "JSS1", nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteClass(ctx, cls.ClassID))

	_, err = svc.GetClass(ctx, cls.ClassID)
	de, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindNotFound, de.Kind)

	// row survives, only the flag flips
	var row classModel.SchoolClassModel
	require.NoError(t, db.Where("class_id = ?", cls.ClassID).First(&row).Error)
	assert.False(t, row.ClassIsActive)

	// inactive classes stay out of default listings
	rows, total, err := svc.ListClasses(ctx, ClassFilter{}, 25, 0)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Zero(t, total)

	inactive := false
	rows, _, err = svc.ListClasses(ctx, ClassFilter{IsActive: &inactive}, 25, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestListClassesFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewRosterService(db)
	ctx := context.Background()

	schoolID := seedSchool(t, db)
	otherID := seedSchool(t, db)
	_, err := svc.CreateClass(ctx, schoolID, "Primary One", nil)
	require.NoError(t, err)
	_, err = svc.CreateClass(ctx, schoolID, "Primary Two", nil)
	require.NoError(t, err)
	_, err = svc.CreateClass(ctx, otherID, "Nursery", nil)
	require.NoError(t, err)

	rows, total, err := svc.ListClasses(ctx, ClassFilter{SchoolID: &schoolID}, 25, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.EqualValues(t, 2, total)

	name := "primary t"
	rows, _, err = svc.ListClasses(ctx, ClassFilter{Name: &name}, 25, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Primary Two", rows[0].ClassName)
}
