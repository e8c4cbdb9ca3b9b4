package route

import (
	"github.com/gofiber/fiber/v2"

	"campusevents_backend/internals/constants"
	"campusevents_backend/internals/features/events/events/controller"
	authMiddleware "campusevents_backend/internals/middlewares/auth"
)

// EventRoutes mounts /api/events and /api/student/events.
// Static segments are registered before "/:id".
func EventRoutes(api fiber.Router, ctrl *controller.EventController, requireAuth fiber.Handler) {
	g := api.Group("/events")

	g.Get("/", ctrl.List)
	g.Get("/active", ctrl.Active)
	g.Get("/completed", ctrl.Completed)
	g.Get("/search", ctrl.List)
	g.Get("/tags", ctrl.Tags)
	g.Get("/categories", ctrl.Categories)
	g.Get("/:id", ctrl.Get)

	adminOnly := authMiddleware.OnlyRolesSlice(constants.RoleErrorAdmin("event management"), constants.AdminOnly)
	g.Post("/", requireAuth, adminOnly, ctrl.Create)
	g.Patch("/:id", requireAuth, adminOnly, ctrl.Update)
	g.Delete("/:id", requireAuth, adminOnly, ctrl.Delete)
	g.Patch("/:id/complete", requireAuth, adminOnly, ctrl.SetCompleted)
	g.Post("/:id/image", requireAuth, adminOnly, ctrl.UploadImage)
	g.Get("/:id/participants", requireAuth, adminOnly, ctrl.Participants)

	studentOnly := authMiddleware.OnlyRolesSlice(constants.RoleErrorStudent("event registration"), constants.StudentOnly)
	g.Post("/:id/participate", requireAuth, studentOnly, ctrl.Participate)
	g.Delete("/:id/participate", requireAuth, studentOnly, ctrl.Cancel)

	api.Get("/student/events", requireAuth, studentOnly, ctrl.MyEvents)
}
