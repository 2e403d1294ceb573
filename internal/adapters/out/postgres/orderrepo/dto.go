// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"production/internal/core/domain/model/jobcard"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Stage and hold bookkeeping live on the order row; items and their
// manufacturing configuration hang off it via foreign keys.
type OrderDTO struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	PartyID     uuid.UUID      `gorm:"type:uuid;not null;index"`
	Stage       int            `gorm:"not null"`
	HoldReason  string         `gorm:"type:text"`
	ResumeStage int            `gorm:"not null"`
	Items       []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one item line of an order with its planning
// counters and manufacturing configuration.
type OrderItemDTO struct {
	ID           uuid.UUID           `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID           `gorm:"type:uuid;not null;index"`
	Name         string              `gorm:"type:varchar(255);not null"`
	OrderedQty   int                 `gorm:"type:int;not null"`
	PlannedQty   int                 `gorm:"type:int;not null"`
	SampleCount  int                 `gorm:"type:int;not null"`
	Requirements []RMRequirementDTO  `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	Templates    []StepTemplateDTO   `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	FQCSpecs     []FQCParamSpecDTO   `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order item entities.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// RMRequirementDTO represents one raw-material requirement of an item.
type RMRequirementDTO struct {
	ItemID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	MaterialID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	MaterialName       string    `gorm:"type:varchar(255);not null"`
	ConsumptionPerUnit float64   `gorm:"not null"`
}

// TableName specifies the database table name for raw-material requirements.
func (RMRequirementDTO) TableName() string {
	return "rm_requirements"
}

// StepTemplateDTO represents one entry of an item's default step sequence.
type StepTemplateDTO struct {
	ItemID       uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Position     int            `gorm:"primaryKey"`
	Name         string         `gorm:"type:varchar(255);not null"`
	StepType     int            `gorm:"not null"`
	SubStepNames pq.StringArray `gorm:"type:text[]"`
	IsOpenJob    bool
}

// TableName specifies the database table name for step templates.
func (StepTemplateDTO) TableName() string {
	return "step_templates"
}

// FQCParamSpecDTO represents one FQC parameter specification of an item.
type FQCParamSpecDTO struct {
	ItemID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position          int       `gorm:"primaryKey"`
	Name              string    `gorm:"type:varchar(255);not null"`
	Notation          string    `gorm:"type:varchar(64)"`
	ValueType         int       `gorm:"not null"`
	StandardValue     string    `gorm:"type:varchar(255)"`
	PositiveTolerance float64
	NegativeTolerance float64
}

// TableName specifies the database table name for FQC parameter specs.
func (FQCParamSpecDTO) TableName() string {
	return "fqc_param_specs"
}

// fromDomain converts an order domain aggregate to its database
// representation including items and their configuration.
func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()
	items := make([]OrderItemDTO, 0, len(o.Items()))

	for _, item := range o.Items() {
		itemID := item.ItemID().Bytes()

		requirements := make([]RMRequirementDTO, 0, len(item.RMRequirements()))
		for _, req := range item.RMRequirements() {
			requirements = append(requirements, RMRequirementDTO{
				ItemID:             itemID,
				MaterialID:         req.MaterialID().Bytes(),
				MaterialName:       req.MaterialName(),
				ConsumptionPerUnit: req.ConsumptionPerUnit(),
			})
		}

		templates := make([]StepTemplateDTO, 0, len(item.StepTemplates()))
		for position, tmpl := range item.StepTemplates() {
			templates = append(templates, StepTemplateDTO{
				ItemID:       itemID,
				Position:     position,
				Name:         tmpl.Name(),
				StepType:     int(tmpl.StepType()),
				SubStepNames: pq.StringArray(tmpl.SubStepNames()),
				IsOpenJob:    tmpl.IsOpenJob(),
			})
		}

		specs := make([]FQCParamSpecDTO, 0, len(item.FQCParameters()))
		for position, spec := range item.FQCParameters() {
			specs = append(specs, FQCParamSpecDTO{
				ItemID:            itemID,
				Position:          position,
				Name:              spec.Name(),
				Notation:          spec.Notation(),
				ValueType:         int(spec.ValueType()),
				StandardValue:     spec.StandardValue(),
				PositiveTolerance: spec.PositiveTolerance(),
				NegativeTolerance: spec.NegativeTolerance(),
			})
		}

		items = append(items, OrderItemDTO{
			ID:           itemID,
			OrderID:      orderID,
			Name:         item.Name(),
			OrderedQty:   item.OrderedQty(),
			PlannedQty:   item.PlannedQty(),
			SampleCount:  item.SampleCount(),
			Requirements: requirements,
			Templates:    templates,
			FQCSpecs:     specs,
		})
	}

	return OrderDTO{
		ID:          orderID,
		PartyID:     o.PartyID().Bytes(),
		Stage:       int(o.Stage()),
		HoldReason:  o.HoldReason(),
		ResumeStage: int(o.ResumeStage()),
		Items:       items,
	}
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder and RestoreItem.
func toDomain(dto OrderDTO) (*order.Order, error) {
	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDto := range dto.Items {
		item, err := itemToDomain(itemDto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	partyID, err := kernel.UUIDFromBytes(dto.PartyID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, partyID, items,
		order.Stage(dto.Stage),
		dto.HoldReason,
		order.Stage(dto.ResumeStage),
	)
}

// itemToDomain reconstructs one order item with its configuration.
func itemToDomain(dto OrderItemDTO) (*order.Item, error) {
	itemID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	requirements := make([]order.RMRequirement, 0, len(dto.Requirements))
	for _, reqDto := range dto.Requirements {
		materialID, reqErr := kernel.UUIDFromBytes(reqDto.MaterialID[:])
		if reqErr != nil {
			return nil, reqErr
		}
		req, reqErr := order.NewRMRequirement(materialID, reqDto.MaterialName, reqDto.ConsumptionPerUnit)
		if reqErr != nil {
			return nil, reqErr
		}
		requirements = append(requirements, req)
	}

	templates := make([]jobcard.StepTemplate, 0, len(dto.Templates))
	for _, tmplDto := range dto.Templates {
		tmpl, tmplErr := jobcard.NewStepTemplate(
			tmplDto.Name,
			jobcard.StepType(tmplDto.StepType),
			tmplDto.SubStepNames,
			tmplDto.IsOpenJob,
		)
		if tmplErr != nil {
			return nil, tmplErr
		}
		templates = append(templates, tmpl)
	}

	specs := make([]jobcard.ParameterSpec, 0, len(dto.FQCSpecs))
	for _, specDto := range dto.FQCSpecs {
		spec, specErr := jobcard.NewParameterSpec(
			specDto.Name,
			specDto.Notation,
			jobcard.ValueType(specDto.ValueType),
			specDto.StandardValue,
			specDto.PositiveTolerance,
			specDto.NegativeTolerance,
		)
		if specErr != nil {
			return nil, specErr
		}
		specs = append(specs, spec)
	}

	return order.RestoreItem(
		itemID,
		dto.Name,
		dto.OrderedQty, dto.PlannedQty,
		dto.SampleCount,
		requirements,
		templates,
		specs,
	)
}
