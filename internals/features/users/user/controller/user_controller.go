package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"campusevents_backend/internals/features/users/user/dto"
	"campusevents_backend/internals/features/users/user/service"
	helper "campusevents_backend/internals/helpers"
)

type UserController struct {
	Service *service.UserService
}

func NewUserController(svc *service.UserService) *UserController {
	return &UserController{Service: svc}
}

// GET /api/user/profile
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	u, err := uc.Service.Profile(c.UserContext(), userID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Profile fetched", fiber.Map{"user": dto.FromModel(u)})
}

// PATCH /api/user/profile
func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	u, err := uc.Service.UpdateProfile(c.UserContext(), userID, req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Profile updated", fiber.Map{"user": dto.FromModel(u)})
}

// GET /api/users?role=student&page=1&per_page=50&sort_by=name|username|created_at&order=asc
func (uc *UserController) ListUsers(c *fiber.Ctx) error {
	role := strings.ToLower(strings.TrimSpace(c.Query("role")))
	p := helper.ParseFiber(c, "name", "asc", helper.AdminOpts)
	list, total, err := uc.Service.List(c.UserContext(), role, p)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Users fetched", fiber.Map{
		"total":      total,
		"users":      dto.FromModels(list),
		"pagination": helper.BuildMeta(total, p),
	})
}
