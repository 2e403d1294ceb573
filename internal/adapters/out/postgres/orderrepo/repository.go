package orderrepo

import (
	"context"
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its items and configuration to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database. The mutable state is
// the stage/hold bookkeeping on the order row and each item's planned
// quantity; the item configuration is immutable after creation.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("stage", "hold_reason", "resume_stage").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	for _, item := range dto.Items {
		if err := r.db.WithContext(ctx).Model(&OrderItemDTO{}).
			Where("id = ?", item.ID).
			Update("planned_qty", item.PlannedQty).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// preloadItems eager-loads item configuration in stable position order.
func preloadItems(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items").
		Preload("Items.Requirements").
		Preload("Items.Templates", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Preload("Items.FQCSpecs", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		})
}

// Get retrieves an order by ID with its items and configuration.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := preloadItems(r.db.WithContext(ctx)).
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInFlight retrieves all orders that are neither completed nor
// cancelled, including held orders.
func (r *GormOrderRepository) GetAllInFlight(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := preloadItems(r.db.WithContext(ctx)).
		Where("stage NOT IN ?", []int{int(order.StageCompleted), int(order.StageCancelled)}).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
