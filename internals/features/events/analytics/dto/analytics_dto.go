package dto

// DepartmentParticipation: roster rows across a department's events.
type DepartmentParticipation struct {
	Department     string `json:"department" gorm:"column:department"`
	DepartmentName string `json:"department_name" gorm:"column:department_name"`
	Participants   int64  `json:"participants" gorm:"column:participants"`
}

// DepartmentActivity: events hosted by a department.
type DepartmentActivity struct {
	Department     string `json:"department" gorm:"column:department"`
	DepartmentName string `json:"department_name" gorm:"column:department_name"`
	Events         int64  `json:"events" gorm:"column:events"`
}

// CategoryShare: events per category.
type CategoryShare struct {
	Category string `json:"category" gorm:"column:category"`
	Value    int64  `json:"value" gorm:"column:value"`
}

type Summary struct {
	Events        int64 `json:"events" gorm:"column:events"`
	ActiveEvents  int64 `json:"active_events" gorm:"column:active_events"`
	Completed     int64 `json:"completed_events" gorm:"column:completed_events"`
	Students      int64 `json:"students" gorm:"column:students"`
	Registrations int64 `json:"registrations" gorm:"column:registrations"`
	Departments   int64 `json:"departments" gorm:"column:departments"`
}
