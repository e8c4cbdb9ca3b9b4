package route

import (
	"github.com/gofiber/fiber/v2"

	"campusevents_backend/internals/constants"
	"campusevents_backend/internals/features/departments/controller"
	authMiddleware "campusevents_backend/internals/middlewares/auth"
)

// DepartmentRoutes mounts /api/departments. Reads are public; writes need an admin token.
func DepartmentRoutes(api fiber.Router, ctrl *controller.DepartmentController, requireAuth fiber.Handler) {
	g := api.Group("/departments")

	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.Get)

	adminOnly := authMiddleware.OnlyRolesSlice(constants.RoleErrorAdmin("department management"), constants.AdminOnly)
	g.Post("/", requireAuth, adminOnly, ctrl.Create)
	g.Patch("/:id", requireAuth, adminOnly, ctrl.Update)
	g.Delete("/:id", requireAuth, adminOnly, ctrl.Delete)
	g.Post("/:id/image", requireAuth, adminOnly, ctrl.UploadImage)
}
