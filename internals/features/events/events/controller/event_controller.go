package controller

import (
	"github.com/gofiber/fiber/v2"

	"campusevents_backend/internals/features/events/events/dto"
	"campusevents_backend/internals/features/events/events/model"
	"campusevents_backend/internals/features/events/events/service"
	helper "campusevents_backend/internals/helpers"
)

type EventController struct {
	Service *service.EventService
}

func NewEventController(svc *service.EventService) *EventController {
	return &EventController{Service: svc}
}

func (ec *EventController) respondList(c *fiber.Ctx, msg string, list []model.EventModel) error {
	return helper.JsonOK(c, msg, fiber.Map{
		"total":  len(list),
		"events": dto.FromModels(list, ec.Service.Now()),
	})
}

func (ec *EventController) respondOne(c *fiber.Ctx, msg string, e *model.EventModel) error {
	return helper.JsonOK(c, msg, fiber.Map{"event": dto.FromModel(e, ec.Service.Now())})
}

/* ===============================
   Public reads
=================================*/

// GET /api/events
func (ec *EventController) List(c *fiber.Ctx) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	list, err := ec.Service.List(c.UserContext(), f)
	if err != nil {
		return helper.FromError(c, err)
	}
	return ec.respondList(c, "Events fetched", list)
}

// GET /api/events/active
func (ec *EventController) Active(c *fiber.Ctx) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	list, err := ec.Service.Active(c.UserContext(), f)
	if err != nil {
		return helper.FromError(c, err)
	}
	return ec.respondList(c, "Active events fetched", list)
}

// GET /api/events/completed
func (ec *EventController) Completed(c *fiber.Ctx) error {
	list, err := ec.Service.Completed(c.UserContext())
	if err != nil {
		return helper.FromError(c, err)
	}
	return ec.respondList(c, "Completed events fetched", list)
}

// GET /api/events/tags
func (ec *EventController) Tags(c *fiber.Ctx) error {
	tags, err := ec.Service.Tags(c.UserContext())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Tags fetched", fiber.Map{"tags": tags})
}

// GET /api/events/categories
func (ec *EventController) Categories(c *fiber.Ctx) error {
	return helper.JsonOK(c, "Categories fetched", fiber.Map{"categories": ec.Service.Categories()})
}

// GET /api/events/:id
func (ec *EventController) Get(c *fiber.Ctx) error {
	e, err := ec.Service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return helper.FromError(c, err)
	}
	return ec.respondOne(c, "Event fetched", e)
}

/* ===============================
   Admin
=================================*/

// POST /api/events
func (ec *EventController) Create(c *fiber.Ctx) error {
	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	e, err := ec.Service.Create(c.UserContext(), req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Event created", fiber.Map{"event": dto.FromModel(e, ec.Service.Now())})
}

// PATCH /api/events/:id
func (ec *EventController) Update(c *fiber.Ctx) error {
	var req dto.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	e, err := ec.Service.Update(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return ec.respondOne(c, "Event updated", e)
}

// PATCH /api/events/:id/complete  body {"event_completed": false} re-opens; empty body completes.
func (ec *EventController) SetCompleted(c *fiber.Ctx) error {
	completed := true
	if len(c.Body()) > 0 {
		var req dto.SetCompletedRequest
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
		}
		if req.Completed != nil {
			completed = *req.Completed
		}
	}
	e, err := ec.Service.SetCompleted(c.UserContext(), c.Params("id"), completed)
	if err != nil {
		return helper.FromError(c, err)
	}
	msg := "Event marked as completed"
	if !completed {
		msg = "Event reopened"
	}
	return ec.respondOne(c, msg, e)
}

// DELETE /api/events/:id
func (ec *EventController) Delete(c *fiber.Ctx) error {
	if err := ec.Service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c)
}

// POST /api/events/:id/image (multipart field "image")
func (ec *EventController) UploadImage(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "image file is required")
	}
	e, err := ec.Service.UploadImage(c.UserContext(), c.Params("id"), fh)
	if err != nil {
		return helper.FromError(c, err)
	}
	return ec.respondOne(c, "Event image updated", e)
}

// GET /api/events/:id/participants
func (ec *EventController) Participants(c *fiber.Ctx) error {
	list, err := ec.Service.Participants(c.UserContext(), c.Params("id"))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Participants fetched", fiber.Map{
		"total":        len(list),
		"participants": dto.ParticipantsFromModels(list),
	})
}

/* ===============================
   Student
=================================*/

// POST /api/events/:id/participate
func (ec *EventController) Participate(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	e, err := ec.Service.Participate(c.UserContext(), c.Params("id"), userID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return ec.respondOne(c, "Successfully registered for event", e)
}

// DELETE /api/events/:id/participate
func (ec *EventController) Cancel(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	e, err := ec.Service.Cancel(c.UserContext(), c.Params("id"), userID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return ec.respondOne(c, "Registration cancelled", e)
}

// GET /api/student/events
func (ec *EventController) MyEvents(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	list, err := ec.Service.EventsOfUser(c.UserContext(), userID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return ec.respondList(c, "Registered events fetched", list)
}
