package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolhub_backend/internals/configs"
	database "schoolhub_backend/internals/databases"
	recordsService "schoolhub_backend/internals/features/school/academics/service"
	attendanceRoutes "schoolhub_backend/internals/features/school/attendance/route"
	calendarRoutes "schoolhub_backend/internals/features/school/calendar/route"
	classRoutes "schoolhub_backend/internals/features/school/classes/route"
	schoolRoutes "schoolhub_backend/internals/features/school/schools/route"
	authRoutes "schoolhub_backend/internals/features/users/auth/route"
	middleware "schoolhub_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	// =============================== BASE ===============================
	app.Get("/health", func(c *fiber.Ctx) error {
		sqlDB, err := database.DB.DB()
		dbStatus := "connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		if err != nil || sqlDB.Ping() != nil {
			dbStatus = "database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"environment":    configs.AppEnv,
		})
	})

	// =============================== API v1 ===============================
	public := app.Group("/api/v1")

	private := app.Group("/api/v1",
		middleware.AuthJWT(middleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
	)

	log.Println("[INFO] Setting up AuthRoutes...")
	authRoutes.AuthRoutes(public, private, db)

	records := recordsService.NewRecordsService(db)

	log.Println("[INFO] Setting up SchoolRoutes...")
	schoolRoutes.SchoolRoutes(private, records)

	log.Println("[INFO] Setting up ClassRoutes...")
	classRoutes.ClassRoutes(private, records)

	log.Println("[INFO] Setting up CalendarRoutes...")
	calendarRoutes.CalendarRoutes(private, records)

	log.Println("[INFO] Setting up AttendanceRoutes...")
	attendanceRoutes.AttendanceRoutes(private, records)
}
