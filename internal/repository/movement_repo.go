package repository

import (
	"context"
	"time"

	"workspacebcn/internal/dto"
	"workspacebcn/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MovementRepository appends to and reads the inventory ledger. There is no
// Update or Delete on purpose: movements are immutable once created.
type MovementRepository interface {
	Create(ctx context.Context, m *model.InventoryMovement) error
	CreateTx(tx *gorm.DB, m *model.InventoryMovement) error
	List(ctx context.Context, filter dto.MovementFilter) ([]model.InventoryMovement, error)
	ListBySale(ctx context.Context, saleID uuid.UUID) ([]model.InventoryMovement, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

type movementRepo struct{ db *gorm.DB }

func NewMovementRepository(db *gorm.DB) MovementRepository {
	return &movementRepo{db: db}
}

func (r *movementRepo) Create(ctx context.Context, m *model.InventoryMovement) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *movementRepo) CreateTx(tx *gorm.DB, m *model.InventoryMovement) error {
	return tx.Create(m).Error
}

func (r *movementRepo) List(ctx context.Context, filter dto.MovementFilter) ([]model.InventoryMovement, error) {
	q := r.db.WithContext(ctx).Model(&model.InventoryMovement{}).
		Preload("Product").
		Preload("User")
	if filter.ProductID != "" {
		q = q.Where("product_id = ?", filter.ProductID)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}

	limit := filter.Limit
	if limit < 1 || limit > 500 {
		limit = 50
	}

	var movements []model.InventoryMovement
	err := q.Order("date DESC").Limit(limit).Find(&movements).Error
	return movements, err
}

func (r *movementRepo) ListBySale(ctx context.Context, saleID uuid.UUID) ([]model.InventoryMovement, error) {
	var movements []model.InventoryMovement
	err := r.db.WithContext(ctx).
		Where("sale_id = ?", saleID).
		Order("date ASC").
		Find(&movements).Error
	return movements, err
}

func (r *movementRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.InventoryMovement{}).
		Where("date >= ?", since).Count(&n).Error
	return n, err
}
