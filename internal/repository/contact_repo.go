package repository

import (
	"context"

	"gorm.io/gorm"

	"workspacebcn/internal/model"
)

type ContactRepository interface {
	Create(ctx context.Context, m *model.ContactMessage) error
}

type contactRepo struct{ db *gorm.DB }

func NewContactRepository(db *gorm.DB) ContactRepository { return &contactRepo{db: db} }

func (r *contactRepo) Create(ctx context.Context, m *model.ContactMessage) error {
	return r.db.WithContext(ctx).Create(m).Error
}
