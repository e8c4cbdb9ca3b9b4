package departments

import (
	"context"
	_ "embed"
	"fmt"
	"log"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	"campusevents_backend/internals/features/departments/model"
	"campusevents_backend/internals/features/departments/repository"
)

//go:embed data_departments.json
var defaultDepartmentsJSON []byte

type departmentSeed struct {
	Name        string `json:"department_name"`
	Abbr        string `json:"department_abbr"`
	Description string `json:"department_description"`
}

// DefaultDepartments decodes the embedded department list.
func DefaultDepartments() ([]model.DepartmentModel, error) {
	var inputs []departmentSeed
	if err := sonic.Unmarshal(defaultDepartmentsJSON, &inputs); err != nil {
		return nil, fmt.Errorf("decode default departments: %w", err)
	}
	out := make([]model.DepartmentModel, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, model.DepartmentModel{
			Name:        in.Name,
			Abbr:        in.Abbr,
			Description: in.Description,
			Image:       model.DefaultDepartmentImage,
		})
	}
	return out, nil
}

// SeedDepartments inserts the default departments that are missing; re-running is a no-op.
func SeedDepartments(ctx context.Context, db *gorm.DB) error {
	list, err := DefaultDepartments()
	if err != nil {
		return err
	}
	n, err := repository.NewDepartmentRepository(db).InsertMissing(ctx, list)
	if err != nil {
		return fmt.Errorf("seed departments: %w", err)
	}
	log.Printf("[SEED] departments: %d inserted, %d already present", n, int64(len(list))-n)
	return nil
}
