package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	StatusAll       = "all"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// EventFilter narrows event listings. Zero fields do not filter.
type EventFilter struct {
	Search       string
	Department   string
	DepartmentID *uuid.UUID
	DateFrom     *datatypes.Date
	DateTo       *datatypes.Date
	Category     string
	Tags         []string
	Status       string

	// reference instant for the active/completed partition
	Now time.Time
}
