package details

import (
	"github.com/gofiber/fiber/v2"

	analyticsController "campusevents_backend/internals/features/events/analytics/controller"
	analyticsRoute "campusevents_backend/internals/features/events/analytics/route"
	analyticsService "campusevents_backend/internals/features/events/analytics/service"
	eventController "campusevents_backend/internals/features/events/events/controller"
	eventRoute "campusevents_backend/internals/features/events/events/route"
	eventService "campusevents_backend/internals/features/events/events/service"
)

func EventRoutes(api fiber.Router, svc *eventService.EventService, requireAuth fiber.Handler) {
	eventRoute.EventRoutes(api, eventController.NewEventController(svc), requireAuth)
}

func AnalyticsRoutes(api fiber.Router, svc *analyticsService.AnalyticsService, requireAuth fiber.Handler) {
	analyticsRoute.AnalyticsRoutes(api, analyticsController.NewAnalyticsController(svc), requireAuth)
}
