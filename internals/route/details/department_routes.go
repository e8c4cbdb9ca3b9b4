package details

import (
	"github.com/gofiber/fiber/v2"

	deptController "campusevents_backend/internals/features/departments/controller"
	deptRoute "campusevents_backend/internals/features/departments/route"
	deptService "campusevents_backend/internals/features/departments/service"
)

func DepartmentRoutes(api fiber.Router, svc *deptService.DepartmentService, requireAuth fiber.Handler) {
	deptRoute.DepartmentRoutes(api, deptController.NewDepartmentController(svc), requireAuth)
}
