package repository

import (
	"context"

	"workspacebcn/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AlertRepository interface {
	Create(ctx context.Context, a *model.Alert) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Alert, error)
	ListRecent(ctx context.Context, limit int) ([]model.Alert, error)
}

type alertRepo struct{ db *gorm.DB }

func NewAlertRepository(db *gorm.DB) AlertRepository { return &alertRepo{db: db} }

func (r *alertRepo) Create(ctx context.Context, a *model.Alert) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *alertRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Alert, error) {
	var a model.Alert
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	return &a, err
}

func (r *alertRepo) ListRecent(ctx context.Context, limit int) ([]model.Alert, error) {
	var alerts []model.Alert
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&alerts).Error
	return alerts, err
}
