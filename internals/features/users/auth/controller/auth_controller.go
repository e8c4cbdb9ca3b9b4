package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"campusevents_backend/internals/features/users/auth/dto"
	"campusevents_backend/internals/features/users/auth/service"
	userDTO "campusevents_backend/internals/features/users/user/dto"
	helper "campusevents_backend/internals/helpers"
)

type AuthController struct {
	Service *service.AuthService
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{Service: svc}
}

// POST /api/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	res, err := ac.Service.Login(c.UserContext(), req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Login successful", fiber.Map{
		"token":      res.Token,
		"expires_at": res.ExpiresAt,
		"user":       userDTO.FromModel(res.User),
	})
}

// POST /api/register
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	res, err := ac.Service.Register(c.UserContext(), req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Registration successful", fiber.Map{
		"token":      res.Token,
		"expires_at": res.ExpiresAt,
		"user":       userDTO.FromModel(res.User),
	})
}

// POST /api/users/admins
func (ac *AuthController) CreateAdmin(c *fiber.Ctx) error {
	var req dto.CreateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	u, err := ac.Service.CreateAdmin(c.UserContext(), req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Admin created", fiber.Map{"user": userDTO.FromModel(u)})
}

// POST /api/user/change-password
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ac.Service.ChangePassword(c.UserContext(), userID, req); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Password updated", nil)
}

// POST /api/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	raw, _ := c.Locals("access_token").(string)
	exp, _ := c.Locals("token_exp").(time.Time)
	if err := ac.Service.Logout(c.UserContext(), raw, exp); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Logged out", nil)
}
