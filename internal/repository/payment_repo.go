package repository

import (
	"context"

	"workspacebcn/internal/dto"
	"workspacebcn/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *model.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	ListAll(ctx context.Context) ([]model.Payment, error)
	// ListByCustomer returns payments whose sale belongs to the customer.
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Payment, error)
	ListByStatus(ctx context.Context, status string, limit int) ([]model.Payment, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Payment, error)
	// AggregateByMethod groups amounts per payment method for the admin
	// sales dashboard, highest total first.
	AggregateByMethod(ctx context.Context) ([]dto.PaymentMethodAggregate, error)
}

type paymentRepo struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) PaymentRepository { return &paymentRepo{db: db} }

func (r *paymentRepo) Create(ctx context.Context, p *model.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *paymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	var p model.Payment
	err := r.db.WithContext(ctx).
		Preload("Sale").
		Preload("Sale.Customer").
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *paymentRepo) ListAll(ctx context.Context) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.WithContext(ctx).
		Preload("Sale").
		Preload("Sale.Customer").
		Order("payment_date DESC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.WithContext(ctx).
		Preload("Sale").
		Joins("JOIN sales ON sales.id = payments.sale_id").
		Where("sales.customer_id = ?", customerID).
		Order("payment_date DESC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepo) ListByStatus(ctx context.Context, status string, limit int) ([]model.Payment, error) {
	var payments []model.Payment
	q := r.db.WithContext(ctx).
		Preload("Sale").
		Preload("Sale.Customer").
		Where("status = ?", status).
		Order("payment_date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&payments).Error
	return payments, err
}

func (r *paymentRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("status = ?", status).Count(&n).Error
	return n, err
}

func (r *paymentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Payment, error) {
	result := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *paymentRepo) AggregateByMethod(ctx context.Context) ([]dto.PaymentMethodAggregate, error) {
	var rows []struct {
		PaymentMethod string
		Total         decimal.Decimal
		Count         int64
	}
	err := r.db.WithContext(ctx).Model(&model.Payment{}).
		Select("payment_method, COALESCE(SUM(amount),0) AS total, COUNT(*) AS count").
		Group("payment_method").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	aggregates := make([]dto.PaymentMethodAggregate, 0, len(rows))
	for _, row := range rows {
		aggregates = append(aggregates, dto.PaymentMethodAggregate{
			Method: row.PaymentMethod,
			Total:  row.Total,
			Count:  row.Count,
		})
	}
	return aggregates, nil
}
