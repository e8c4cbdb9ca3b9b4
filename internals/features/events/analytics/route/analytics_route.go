package route

import (
	"github.com/gofiber/fiber/v2"

	"campusevents_backend/internals/constants"
	"campusevents_backend/internals/features/events/analytics/controller"
	authMiddleware "campusevents_backend/internals/middlewares/auth"
)

// AnalyticsRoutes mounts the admin dashboards under /api/analytics.
func AnalyticsRoutes(api fiber.Router, ctrl *controller.AnalyticsController, requireAuth fiber.Handler) {
	adminOnly := authMiddleware.OnlyRolesSlice(constants.RoleErrorAdmin("analytics"), constants.AdminOnly)

	g := api.Group("/analytics")
	g.Get("/participation", requireAuth, adminOnly, ctrl.Participation)
	g.Get("/department-activity", requireAuth, adminOnly, ctrl.DepartmentActivity)
	g.Get("/admin", requireAuth, adminOnly, ctrl.Categories)
	g.Get("/summary", requireAuth, adminOnly, ctrl.Summary)
}
