package employeerepo

import (
	"context"
	"errors"

	"production/internal/core/domain/model/employee"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormEmployeeDirectory implements EmployeeDirectory using GORM.
type GormEmployeeDirectory struct {
	db *gorm.DB
}

// NewGormEmployeeDirectory creates a new GORM employee directory.
func NewGormEmployeeDirectory(db *gorm.DB) *GormEmployeeDirectory {
	return &GormEmployeeDirectory{db: db}
}

// Add saves a new employee record. Roster management happens outside the
// execution engine; this exists for seeding and tests.
func (d *GormEmployeeDirectory) Add(ctx context.Context, e *employee.Employee) error {
	if err := e.Validate(); err != nil {
		return err
	}

	dto := fromDomain(e)
	return d.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves an employee by identifier.
func (d *GormEmployeeDirectory) Get(ctx context.Context, id kernel.UUID) (*employee.Employee, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto EmployeeDTO
	if err := d.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("employee", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetMany retrieves the employees with the given identifiers. Unknown
// identifiers are skipped rather than failing the whole lookup.
func (d *GormEmployeeDirectory) GetMany(ctx context.Context, ids []kernel.UUID) ([]*employee.Employee, error) {
	raw := make([]any, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []EmployeeDTO
	if err := d.db.WithContext(ctx).Find(&dtos, "id IN ?", raw).Error; err != nil {
		return nil, err
	}

	employees := make([]*employee.Employee, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}

	return employees, nil
}
