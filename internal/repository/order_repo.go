package repository

import (
	"context"

	"workspacebcn/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	CreateTx(tx *gorm.DB, o *model.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
	UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error
	MarkPaid(ctx context.Context, id uuid.UUID) error
	DB() *gorm.DB
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) CreateTx(tx *gorm.DB, o *model.Order) error {
	return tx.Create(o).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Preload("Sale").
		Preload("User").
		First(&o, "id = ?", id).Error
	return &o, err
}

func (r *orderRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Preload("Sale").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error {
	return tx.Model(&model.Order{}).
		Where("id = ?", id).Update("status", status).Error
}

// MarkPaid flips the order to PAID and stamps paid_at in one update.
func (r *orderRepo) MarkPaid(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  model.OrderPaid,
			"paid_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *orderRepo) DB() *gorm.DB { return r.db }
