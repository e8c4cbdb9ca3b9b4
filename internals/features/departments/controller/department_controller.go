package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"campusevents_backend/internals/features/departments/dto"
	"campusevents_backend/internals/features/departments/service"
	helper "campusevents_backend/internals/helpers"
)

type DepartmentController struct {
	Service *service.DepartmentService
}

func NewDepartmentController(svc *service.DepartmentService) *DepartmentController {
	return &DepartmentController{Service: svc}
}

func parseDepartmentID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, helper.ErrNotFound("Department not found")
	}
	return id, nil
}

// GET /api/departments
func (dc *DepartmentController) List(c *fiber.Ctx) error {
	list, err := dc.Service.List(c.UserContext())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Departments fetched", fiber.Map{"departments": dto.FromModels(list)})
}

// GET /api/departments/:id
func (dc *DepartmentController) Get(c *fiber.Ctx) error {
	id, err := parseDepartmentID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	d, err := dc.Service.Get(c.UserContext(), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Department fetched", fiber.Map{"department": dto.FromModel(d)})
}

// POST /api/departments
func (dc *DepartmentController) Create(c *fiber.Ctx) error {
	var req dto.CreateDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	d, err := dc.Service.Create(c.UserContext(), req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Department created", fiber.Map{"department": dto.FromModel(d)})
}

// PATCH /api/departments/:id
func (dc *DepartmentController) Update(c *fiber.Ctx) error {
	id, err := parseDepartmentID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.UpdateDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	d, err := dc.Service.Update(c.UserContext(), id, req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Department updated", fiber.Map{"department": dto.FromModel(d)})
}

// DELETE /api/departments/:id
func (dc *DepartmentController) Delete(c *fiber.Ctx) error {
	id, err := parseDepartmentID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := dc.Service.Delete(c.UserContext(), id); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c)
}

// POST /api/departments/:id/image (multipart field "image")
func (dc *DepartmentController) UploadImage(c *fiber.Ctx) error {
	id, err := parseDepartmentID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "image file is required")
	}
	d, err := dc.Service.UploadImage(c.UserContext(), id, fh)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Department image updated", fiber.Map{"department": dto.FromModel(d)})
}
