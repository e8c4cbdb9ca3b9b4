package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"campusevents_backend/internals/features/events/events/model"
	helper "campusevents_backend/internals/helpers"
	"campusevents_backend/internals/helpers/dbtime"
)

// query reads the first non-empty of the given keys (snake_case and camelCase both work).
func query(c *fiber.Ctx, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(c.Query(k)); v != "" {
			return v
		}
	}
	return ""
}

// filterFromQuery builds an EventFilter from
// ?search|searchTerm&department&department_id&date_from|dateFrom&date_to|dateTo&category&tags=a,b&status.
func filterFromQuery(c *fiber.Ctx) (model.EventFilter, error) {
	f := model.EventFilter{
		Search:     helper.NormalizeText(query(c, "search", "searchTerm", "q")),
		Department: helper.NormalizeText(query(c, "department")),
		Category:   query(c, "category"),
		Status:     strings.ToLower(query(c, "status")),
	}

	if raw := query(c, "department_id", "departmentId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return f, helper.ErrValidation("department_id must be a valid id")
		}
		f.DepartmentID = &id
	}
	if raw := query(c, "date_from", "dateFrom"); raw != "" {
		d, err := dbtime.ParseYMD(raw)
		if err != nil {
			return f, helper.ErrValidation(err.Error())
		}
		f.DateFrom = &d
	}
	if raw := query(c, "date_to", "dateTo"); raw != "" {
		d, err := dbtime.ParseYMD(raw)
		if err != nil {
			return f, helper.ErrValidation(err.Error())
		}
		f.DateTo = &d
	}
	if raw := query(c, "tags"); raw != "" {
		f.Tags = helper.NormalizeTags(strings.Split(raw, ","))
	}
	return f, nil
}
