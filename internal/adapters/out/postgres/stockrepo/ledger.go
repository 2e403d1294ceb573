// Package stockrepo provides the database-backed raw-material stock
// ledger. The execution engine only reads stock; receipts and issues are
// recorded by the inventory system sharing the table.
package stockrepo

import (
	"context"

	"production/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockLevelDTO represents the current on-hand quantity of one material.
type StockLevelDTO struct {
	MaterialID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity   float64   `gorm:"not null"`
}

// TableName specifies the database table name for stock levels.
func (StockLevelDTO) TableName() string {
	return "stock_levels"
}

// GormStockLedger implements StockLedger using GORM.
type GormStockLedger struct {
	db *gorm.DB
}

// NewGormStockLedger creates a new GORM stock ledger.
func NewGormStockLedger(db *gorm.DB) *GormStockLedger {
	return &GormStockLedger{db: db}
}

// Set records the on-hand quantity for a material. Exists for seeding
// and tests; production receipts flow in from the inventory system.
func (l *GormStockLedger) Set(ctx context.Context, materialID kernel.UUID, quantity float64) error {
	if err := materialID.Validate(); err != nil {
		return err
	}

	dto := StockLevelDTO{MaterialID: materialID.Bytes(), Quantity: quantity}
	return l.db.WithContext(ctx).Save(&dto).Error
}

// AvailableStock returns the quantity on hand for each of the given
// materials. Materials missing from the result have zero stock.
func (l *GormStockLedger) AvailableStock(
	ctx context.Context, materialIDs []kernel.UUID,
) (map[kernel.UUID]float64, error) {
	raw := make([]any, 0, len(materialIDs))
	for _, id := range materialIDs {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []StockLevelDTO
	if err := l.db.WithContext(ctx).Find(&dtos, "material_id IN ?", raw).Error; err != nil {
		return nil, err
	}

	stock := make(map[kernel.UUID]float64, len(dtos))
	for _, dto := range dtos {
		materialID, err := kernel.UUIDFromBytes(dto.MaterialID[:])
		if err != nil {
			return nil, err
		}
		stock[materialID] = dto.Quantity
	}

	return stock, nil
}
