package controller

import (
	"github.com/gofiber/fiber/v2"

	"campusevents_backend/internals/features/events/analytics/service"
	helper "campusevents_backend/internals/helpers"
)

type AnalyticsController struct {
	Service *service.AnalyticsService
}

func NewAnalyticsController(svc *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Service: svc}
}

// GET /api/analytics/participation
func (ac *AnalyticsController) Participation(c *fiber.Ctx) error {
	rows, err := ac.Service.Participation(c.UserContext())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Participation analytics fetched", fiber.Map{"data": rows})
}

// GET /api/analytics/department-activity
func (ac *AnalyticsController) DepartmentActivity(c *fiber.Ctx) error {
	rows, err := ac.Service.DepartmentActivity(c.UserContext())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Department activity fetched", fiber.Map{"data": rows})
}

// GET /api/analytics/admin
func (ac *AnalyticsController) Categories(c *fiber.Ctx) error {
	rows, err := ac.Service.Categories(c.UserContext())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Category analytics fetched", fiber.Map{"data": rows})
}

// GET /api/analytics/summary
func (ac *AnalyticsController) Summary(c *fiber.Ctx) error {
	sum, err := ac.Service.Summary(c.UserContext())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Summary fetched", fiber.Map{"data": sum})
}
