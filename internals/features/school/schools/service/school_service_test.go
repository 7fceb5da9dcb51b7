package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	database "schoolhub_backend/internals/databases"
	userModel "schoolhub_backend/internals/features/users/users/model"
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

func seedUser(t *testing.T, db *gorm.DB, email string) uint {
	t.Helper()
	u := userModel.UserModel{
		UserFirstName: "Ada",
		UserLastName:  "Obi",
		UserEmail:     email,
		UserPassword:  "x",
		UserRole:      "student",
	}
	require.NoError(t, db.Create(&u).Error)
	return u.UserID
}

func TestSchoolLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewSchoolService(db)
	ctx := context.Background()

	contact := datatypes.JSON([]byte(`{"phone":"+2348012345678"}`))
	school, err := svc.CreateSchool(ctx, 1, "  Hillside Academy ", nil, contact)
	require.NoError(t, err)
	assert.Equal(t, "Hillside Academy", school.SchoolName)
	assert.True(t, school.SchoolIsActive)

	name := "Hillside International Academy"
	updated, err := svc.UpdateSchool(ctx, school.SchoolID, SchoolPatch{Name: &name})
	require.NoError(t, err)

	detail, err := svc.GetSchool(ctx, updated.SchoolID)
	require.NoError(t, err)
	assert.Equal(t, name, detail.School.SchoolName)
	assert.Empty(t, detail.Students)

	mine, err := svc.MySchools(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	require.NoError(t, svc.DeleteSchool(ctx, school.SchoolID))
	_, err = svc.GetSchool(ctx, school.SchoolID)
	de, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindNotFound, de.Kind)

	// soft-deleted schools fall out of default listings and MySchools
	rows, total, err := svc.ListSchools(ctx, SchoolFilter{}, 25, 0)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Zero(t, total)
	mine, err = svc.MySchools(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestEnrollStudentAndAddEmployee(t *testing.T) {
	db := newTestDB(t)
	svc := NewSchoolService(db)
	ctx := context.Background()

	school, err := svc.CreateSchool(ctx, 1, "Hillside Academy", nil, nil)
	require.NoError(t, err)

	// enrollment requires a real user row
	_, err = svc.EnrollStudent(ctx, school.SchoolID, 999)
	de, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindNotFound, de.Kind)

	studentID := seedUser(t, db, "ada@example.com")
	_, err = svc.EnrollStudent(ctx, school.SchoolID, studentID)
	require.NoError(t, err)

	// double enrollment hits the unique pair
	_, err = svc.EnrollStudent(ctx, school.SchoolID, studentID)
	de, ok = errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindConflict, de.Kind)

	staffID := seedUser(t, db, "musa@example.com")
	title := "Mathematics teacher"
	emp, err := svc.AddEmployee(ctx, school.SchoolID, staffID, &title)
	require.NoError(t, err)
	require.NotNil(t, emp.SchoolEmployeeTitle)
	assert.Equal(t, title, *emp.SchoolEmployeeTitle)

	_, err = svc.AddEmployee(ctx, school.SchoolID, staffID, nil)
	de, ok = errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindConflict, de.Kind)

	detail, err := svc.GetSchool(ctx, school.SchoolID)
	require.NoError(t, err)
	assert.Len(t, detail.Students, 1)
	assert.Len(t, detail.Employees, 1)
}

func TestListSchoolsNameFilter(t *testing.T) {
	db := newTestDB(t)
	svc := NewSchoolService(db)
	ctx := context.Background()

	_, err := svc.CreateSchool(ctx, 1, "Hillside Academy", nil, nil)
	require.NoError(t, err)
	_, err = svc.CreateSchool(ctx, 2, "Riverside College", nil, nil)
	require.NoError(t, err)

	name := "riverside"
	rows, total, err := svc.ListSchools(ctx, SchoolFilter{Name: &name}, 25, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "Riverside College", rows[0].SchoolName)
}
