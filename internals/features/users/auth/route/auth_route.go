// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"campusevents_backend/internals/constants"
	"campusevents_backend/internals/features/users/auth/controller"
	rateLimiter "campusevents_backend/internals/middlewares"
	authMiddleware "campusevents_backend/internals/middlewares/auth"
)

func AuthRoutes(api fiber.Router, ctrl *controller.AuthController, requireAuth fiber.Handler) {
	// 🔓 public
	api.Post("/login", rateLimiter.LoginRateLimiter(), ctrl.Login)
	api.Post("/register", rateLimiter.RegisterRateLimiter(), ctrl.Register)

	// 🔐 signed in
	api.Post("/logout", requireAuth, ctrl.Logout)
	api.Post("/user/change-password", requireAuth, ctrl.ChangePassword)

	// 🔐 admin
	adminOnly := authMiddleware.OnlyRolesSlice(constants.RoleErrorAdmin("admin management"), constants.AdminOnly)
	api.Post("/users/admins", requireAuth, adminOnly, ctrl.CreateAdmin)
}
