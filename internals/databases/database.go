package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	attendanceModel "schoolhub_backend/internals/features/school/attendance/model"
	calendarModel "schoolhub_backend/internals/features/school/calendar/model"
	classModel "schoolhub_backend/internals/features/school/classes/model"
	schoolModel "schoolhub_backend/internals/features/school/schools/model"
	userModel "schoolhub_backend/internals/features/users/users/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("[INFO] connecting to PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=schoolhub&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // safe behind PgBouncer transaction pooling
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("[ERROR] DB connect failed: %v", err)
	}
	DB = db
	log.Println("[INFO] DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("[WARN] pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate is the single explicit schema-registration step: table migration
// first, then the partial unique indexes that carry the invariants a plain
// read-then-write check cannot (one captain per class, one class per student,
// one active term per school+session). Runs once at startup; tests call it
// against their own in-memory DB.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userModel.UserModel{},
		&schoolModel.SchoolModel{},
		&schoolModel.SchoolStudentModel{},
		&schoolModel.SchoolEmployeeModel{},
		&classModel.SchoolClassModel{},
		&classModel.ClassMemberModel{},
		&calendarModel.SchoolSessionModel{},
		&calendarModel.SchoolSessionTermModel{},
		&calendarModel.SchoolTermActivityModel{},
		&calendarModel.SchoolTermBreakModel{},
		&attendanceModel.ClassAttendanceModel{},
		&attendanceModel.StaffAttendanceModel{},
	); err != nil {
		return err
	}

	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_class_members_single_class
			ON class_members (class_member_user_id)
			WHERE class_member_role = 'student'`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_class_members_one_captain
			ON class_members (class_member_class_id)
			WHERE class_member_role = 'captain'`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_terms_single_active
			ON school_session_terms (term_school_id, term_session_id)
			WHERE term_is_active`,
	}
	for _, s := range stmts {
		if err := db.Exec(s).Error; err != nil {
			return err
		}
	}
	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
