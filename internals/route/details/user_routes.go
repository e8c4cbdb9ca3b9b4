package details

import (
	"github.com/gofiber/fiber/v2"

	userController "campusevents_backend/internals/features/users/user/controller"
	userRoute "campusevents_backend/internals/features/users/user/route"
	userService "campusevents_backend/internals/features/users/user/service"
)

func UserRoutes(api fiber.Router, svc *userService.UserService, requireAuth fiber.Handler) {
	userRoute.UserRoutes(api, userController.NewUserController(svc), requireAuth)
}
