package route

import (
	"github.com/gofiber/fiber/v2"

	"campusevents_backend/internals/constants"
	"campusevents_backend/internals/features/users/user/controller"
	authMiddleware "campusevents_backend/internals/middlewares/auth"
)

// UserRoutes mounts /api/user/profile (any signed-in user) and GET /api/users (admin).
func UserRoutes(api fiber.Router, ctrl *controller.UserController, requireAuth fiber.Handler) {
	me := api.Group("/user")
	me.Get("/profile", requireAuth, ctrl.GetProfile)
	me.Patch("/profile", requireAuth, ctrl.UpdateProfile)

	adminOnly := authMiddleware.OnlyRolesSlice(constants.RoleErrorAdmin("user management"), constants.AdminOnly)
	api.Get("/users", requireAuth, adminOnly, ctrl.ListUsers)
}
