// Package employeerepo provides the database-backed employee directory.
// Steps hold weak references to employees, so directory lookups always
// reflect the current roster.
package employeerepo

import (
	"production/internal/core/domain/model/employee"
	"production/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EmployeeDTO represents the database structure for persisting employees.
type EmployeeDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name   string    `gorm:"type:varchar(255);not null"`
	Role   string    `gorm:"type:varchar(128);not null"`
	Status int       `gorm:"not null"`
}

// TableName specifies the database table name for employee entities.
func (EmployeeDTO) TableName() string {
	return "employees"
}

// fromDomain converts an employee record to its database representation.
func fromDomain(e *employee.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:     e.ID().Bytes(),
		Name:   e.Name(),
		Role:   e.Role(),
		Status: int(e.Status()),
	}
}

// toDomain converts a database DTO to an employee record.
func toDomain(dto EmployeeDTO) (*employee.Employee, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return employee.NewEmployee(id, dto.Name, dto.Role, employee.Status(dto.Status))
}
