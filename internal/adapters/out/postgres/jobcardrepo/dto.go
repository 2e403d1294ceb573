// Package jobcardrepo provides data transfer objects and mapping functions for job card persistence.
// This package implements the repository pattern for the job card domain aggregate, handling
// the conversion between domain entities and database representations.
package jobcardrepo

import (
	"time"

	"production/internal/core/domain/model/jobcard"
	"production/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// JobCardDTO represents the database structure for persisting job card
// aggregates. Steps, checklists, and FQC parameters live in their own
// tables keyed by card id and step index.
type JobCardDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ItemID   uuid.UUID `gorm:"type:uuid;not null"`
	Quantity int       `gorm:"type:int;not null"`
	ExtraQty int       `gorm:"type:int;not null"`
	Status   int
}

// TableName specifies the database table name for job card entities.
func (JobCardDTO) TableName() string {
	return "job_cards"
}

// StepDTO represents one step of a job card. The primary key is the card
// id plus the step's position, matching the domain's index-ordered step
// sequence. Assignees are stored as an array of employee UUID strings so
// the open-job claim can be a single conditional update on the row.
type StepDTO struct {
	JobCardID   uuid.UUID      `gorm:"type:uuid;primaryKey"`
	StepIndex   int            `gorm:"primaryKey"`
	Name        string         `gorm:"type:varchar(255);not null"`
	StepType    int            `gorm:"not null"`
	Status      int            `gorm:"not null"`
	Disposition int            `gorm:"not null"`
	Assignees   pq.StringArray `gorm:"type:text[]"`
	IsOpenJob   bool
	Received    int
	Processed   int
	Rejected    int
	Remarks     string `gorm:"type:text"`
	VendorName  string `gorm:"type:varchar(255)"`
	SentDate    *time.Time
	ReturnDate  *time.Time
}

// TableName specifies the database table name for step entities.
func (StepDTO) TableName() string {
	return "steps"
}

// SubStepDTO represents one checklist entry of a step.
type SubStepDTO struct {
	JobCardID uuid.UUID `gorm:"type:uuid;primaryKey"`
	StepIndex int       `gorm:"primaryKey"`
	Position  int       `gorm:"primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Done      bool
}

// TableName specifies the database table name for checklist entries.
func (SubStepDTO) TableName() string {
	return "sub_steps"
}

// FQCParamDTO represents one FQC parameter of a quality check step,
// carrying both its immutable specification and the recorded samples.
type FQCParamDTO struct {
	JobCardID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	StepIndex         int       `gorm:"primaryKey"`
	Position          int       `gorm:"primaryKey"`
	Name              string    `gorm:"type:varchar(255);not null"`
	Notation          string    `gorm:"type:varchar(64)"`
	ValueType         int       `gorm:"not null"`
	StandardValue     string    `gorm:"type:varchar(255)"`
	PositiveTolerance float64
	NegativeTolerance float64
	Samples           pq.StringArray `gorm:"type:text[]"`
	Remarks           string         `gorm:"type:text"`
	Result            int
}

// TableName specifies the database table name for FQC parameters.
func (FQCParamDTO) TableName() string {
	return "fqc_params"
}

// cardFromDomain converts a job card aggregate to its row representation,
// excluding steps.
func cardFromDomain(card *jobcard.JobCard) JobCardDTO {
	return JobCardDTO{
		ID:       card.ID().Bytes(),
		OrderID:  card.OrderID().Bytes(),
		ItemID:   card.ItemID().Bytes(),
		Quantity: card.Quantity(),
		ExtraQty: card.ExtraQty(),
		Status:   int(card.Status()),
	}
}

// stepFromDomain converts one step to its row representation plus child
// rows for checklist entries and FQC parameters.
func stepFromDomain(cardID uuid.UUID, step *jobcard.Step) (StepDTO, []SubStepDTO, []FQCParamDTO) {
	assignees := make(pq.StringArray, 0, len(step.AssignedEmployees()))
	for _, employeeID := range step.AssignedEmployees() {
		assignees = append(assignees, employeeID.String())
	}

	dto := StepDTO{
		JobCardID:   cardID,
		StepIndex:   step.Index(),
		Name:        step.Name(),
		StepType:    int(step.StepType()),
		Status:      int(step.Status()),
		Disposition: int(step.Disposition()),
		Assignees:   assignees,
		IsOpenJob:   step.IsOpenJob(),
		Received:    step.Quantities().Received(),
		Processed:   step.Quantities().Processed(),
		Rejected:    step.Quantities().Rejected(),
		Remarks:     step.Remarks(),
	}
	if outward := step.Outward(); outward != nil {
		dto.VendorName = outward.VendorName()
		dto.SentDate = outward.SentDate()
		dto.ReturnDate = outward.ReturnDate()
	}

	subSteps := make([]SubStepDTO, 0, len(step.SubSteps()))
	for position, subStep := range step.SubSteps() {
		subSteps = append(subSteps, SubStepDTO{
			JobCardID: cardID,
			StepIndex: step.Index(),
			Position:  position,
			Name:      subStep.Name(),
			Done:      subStep.Done(),
		})
	}

	params := make([]FQCParamDTO, 0, len(step.FQCParameters()))
	for position, param := range step.FQCParameters() {
		spec := param.Spec()
		params = append(params, FQCParamDTO{
			JobCardID:         cardID,
			StepIndex:         step.Index(),
			Position:          position,
			Name:              spec.Name(),
			Notation:          spec.Notation(),
			ValueType:         int(spec.ValueType()),
			StandardValue:     spec.StandardValue(),
			PositiveTolerance: spec.PositiveTolerance(),
			NegativeTolerance: spec.NegativeTolerance(),
			Samples:           pq.StringArray(param.Samples()),
			Remarks:           param.Remarks(),
			Result:            int(param.Result()),
		})
	}

	return dto, subSteps, params
}

// stepToDomain reconstructs a step from its row and child rows.
func stepToDomain(dto StepDTO, subSteps []SubStepDTO, params []FQCParamDTO) (*jobcard.Step, error) {
	assignees := make([]kernel.UUID, 0, len(dto.Assignees))
	for _, raw := range dto.Assignees {
		employeeID, err := kernel.UUIDFromString(raw)
		if err != nil {
			return nil, err
		}
		assignees = append(assignees, employeeID)
	}

	checklist := make([]*jobcard.SubStep, 0, len(subSteps))
	for _, subDto := range subSteps {
		subStep, err := jobcard.RestoreSubStep(subDto.Name, subDto.Done)
		if err != nil {
			return nil, err
		}
		checklist = append(checklist, subStep)
	}

	parameters := make([]*jobcard.Parameter, 0, len(params))
	for _, paramDto := range params {
		spec, err := jobcard.NewParameterSpec(
			paramDto.Name,
			paramDto.Notation,
			jobcard.ValueType(paramDto.ValueType),
			paramDto.StandardValue,
			paramDto.PositiveTolerance,
			paramDto.NegativeTolerance,
		)
		if err != nil {
			return nil, err
		}

		param, err := jobcard.RestoreParameter(
			spec, paramDto.Samples, paramDto.Remarks, jobcard.Disposition(paramDto.Result))
		if err != nil {
			return nil, err
		}
		parameters = append(parameters, param)
	}

	quantities, err := jobcard.NewQuantities(dto.Received, dto.Processed, dto.Rejected)
	if err != nil {
		return nil, err
	}

	var outward *jobcard.OutwardDetails
	if jobcard.StepType(dto.StepType) == jobcard.StepOutward {
		outward = jobcard.RestoreOutwardDetails(dto.VendorName, dto.SentDate, dto.ReturnDate)
	}

	return jobcard.RestoreStep(
		dto.StepIndex,
		dto.Name,
		jobcard.StepType(dto.StepType),
		jobcard.StepStatus(dto.Status),
		jobcard.Disposition(dto.Disposition),
		assignees,
		checklist,
		quantities,
		dto.Remarks,
		dto.IsOpenJob,
		outward,
		parameters,
	)
}

// toDomain reconstructs a job card aggregate from its rows. The step,
// checklist, and parameter slices must already be ordered by step index
// and position.
func toDomain(dto JobCardDTO, stepDtos []StepDTO, subSteps []SubStepDTO, params []FQCParamDTO) (*jobcard.JobCard, error) {
	subStepsByStep := make(map[int][]SubStepDTO)
	for _, subDto := range subSteps {
		subStepsByStep[subDto.StepIndex] = append(subStepsByStep[subDto.StepIndex], subDto)
	}

	paramsByStep := make(map[int][]FQCParamDTO)
	for _, paramDto := range params {
		paramsByStep[paramDto.StepIndex] = append(paramsByStep[paramDto.StepIndex], paramDto)
	}

	steps := make([]*jobcard.Step, 0, len(stepDtos))
	for _, stepDto := range stepDtos {
		step, err := stepToDomain(stepDto, subStepsByStep[stepDto.StepIndex], paramsByStep[stepDto.StepIndex])
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}

	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	itemID, err := kernel.UUIDFromBytes(dto.ItemID[:])
	if err != nil {
		return nil, err
	}

	return jobcard.RestoreJobCard(
		id, orderID, itemID,
		dto.Quantity, dto.ExtraQty,
		jobcard.Status(dto.Status),
		steps,
	)
}
