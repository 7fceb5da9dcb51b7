package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authctrl "schoolhub_backend/internals/features/users/auth/controller"
)

// AuthRoutes registers the public auth endpoints plus /auth/me, which the
// caller is expected to mount behind the JWT middleware separately.
func AuthRoutes(public fiber.Router, private fiber.Router, db *gorm.DB) {
	handler := authctrl.NewAuthController(db)

	grp := public.Group("/auth")
	{
		grp.Post("/register", handler.Register)
		grp.Post("/login", handler.Login)
	}

	private.Get("/auth/me", handler.Me)
}
