package jobcardrepo

import (
	"context"
	"errors"

	"production/internal/core/domain/model/jobcard"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormJobCardRepository implements JobCardRepository using GORM.
type GormJobCardRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormJobCardRepository creates a new GORM job card repository.
func NewGormJobCardRepository(db *gorm.DB, tracker aggregateTracker) *GormJobCardRepository {
	return &GormJobCardRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new job card and all of its step rows to the database.
func (r *GormJobCardRepository) Add(ctx context.Context, card *jobcard.JobCard) error {
	if err := card.Validate(); err != nil {
		return err
	}

	dto := cardFromDomain(card)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err := r.saveSteps(ctx, card); err != nil {
		return err
	}

	r.tracker.TrackAggregate(card.ID(), card)
	return nil
}

// Update saves an existing job card. Step, checklist, and parameter rows
// are upserted by their composite keys; the card's step set never shrinks
// after planning, so no rows need deleting.
func (r *GormJobCardRepository) Update(ctx context.Context, card *jobcard.JobCard) error {
	if err := card.Validate(); err != nil {
		return err
	}

	dto := cardFromDomain(card)
	result := r.db.WithContext(ctx).Model(&JobCardDTO{}).
		Where("id = ?", dto.ID).
		Select("quantity", "extra_qty", "status").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.saveSteps(ctx, card); err != nil {
		return err
	}

	r.tracker.TrackAggregate(card.ID(), card)
	return nil
}

// saveSteps upserts the card's step rows and their children.
func (r *GormJobCardRepository) saveSteps(ctx context.Context, card *jobcard.JobCard) error {
	cardID := card.ID().Bytes()

	for _, step := range card.Steps() {
		stepDto, subSteps, params := stepFromDomain(cardID, step)

		if err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(&stepDto).Error; err != nil {
			return err
		}
		if len(subSteps) > 0 {
			if err := r.db.WithContext(ctx).
				Clauses(clause.OnConflict{UpdateAll: true}).
				Create(&subSteps).Error; err != nil {
				return err
			}
		}
		if len(params) > 0 {
			if err := r.db.WithContext(ctx).
				Clauses(clause.OnConflict{UpdateAll: true}).
				Create(&params).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

// Get retrieves a job card by ID with its full step state.
func (r *GormJobCardRepository) Get(ctx context.Context, id kernel.UUID) (*jobcard.JobCard, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto JobCardDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("job card", id.String())
		}
		return nil, err
	}

	return r.loadCard(ctx, dto)
}

// GetAllForOrder retrieves every job card planned for the given order.
func (r *GormJobCardRepository) GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*jobcard.JobCard, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []JobCardDTO
	if err := r.db.WithContext(ctx).
		Order("id").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error; err != nil {
		return nil, err
	}

	cards := make([]*jobcard.JobCard, 0, len(dtos))
	for _, dto := range dtos {
		card, err := r.loadCard(ctx, dto)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	return cards, nil
}

// loadCard assembles a card aggregate from its row plus step children.
func (r *GormJobCardRepository) loadCard(ctx context.Context, dto JobCardDTO) (*jobcard.JobCard, error) {
	var steps []StepDTO
	if err := r.db.WithContext(ctx).
		Order("step_index").
		Find(&steps, "job_card_id = ?", dto.ID).Error; err != nil {
		return nil, err
	}

	var subSteps []SubStepDTO
	if err := r.db.WithContext(ctx).
		Order("step_index, position").
		Find(&subSteps, "job_card_id = ?", dto.ID).Error; err != nil {
		return nil, err
	}

	var params []FQCParamDTO
	if err := r.db.WithContext(ctx).
		Order("step_index, position").
		Find(&params, "job_card_id = ?", dto.ID).Error; err != nil {
		return nil, err
	}

	return toDomain(dto, steps, subSteps, params)
}

// ClaimStep atomically assigns an open job step to the given employee.
//
// The claim is a single conditional UPDATE keyed on the step still being
// flagged open, pending, and unassigned. It records the claimer as the
// sole assignee and clears the open flag, so the restored step is a
// regular assigned step the winner can start. Exactly one of two
// concurrent claimers matches the row; the loser affects zero rows and
// receives AlreadyClaimed.
func (r *GormJobCardRepository) ClaimStep(
	ctx context.Context, cardID kernel.UUID, stepIndex int, employeeID kernel.UUID,
) error {
	if err := errors.Join(cardID.Validate(), employeeID.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&StepDTO{}).
		Where("job_card_id = ? AND step_index = ? AND is_open_job AND status = ? AND cardinality(assignees) = 0",
			cardID.Bytes(), stepIndex, int(jobcard.StepPending)).
		Updates(map[string]interface{}{
			"assignees":   pq.StringArray{employeeID.String()},
			"is_open_job": false,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var dto StepDTO
		if err := r.db.WithContext(ctx).
			First(&dto, "job_card_id = ? AND step_index = ?", cardID.Bytes(), stepIndex).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewObjectNotFoundError("step", stepIndex)
			}
			return err
		}
		return jobcard.NewAlreadyClaimedError(dto.Name)
	}

	return nil
}
