package repository

import (
	"context"

	"workspacebcn/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductRepository defines the data access contract for catalog items.
// Stock-mutating methods come in Tx variants: callers own the transaction so
// that every stock change commits together with its InventoryMovement row.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	SearchByName(ctx context.Context, q string) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error

	// DecrementStockTx performs an atomic conditional decrement: it only
	// succeeds when stock >= quantity, so concurrent checkouts can never
	// drive stock negative. Returns gorm.ErrRecordNotFound semantics via
	// rowsAffected == 0 — callers must check the returned count.
	DecrementStockTx(tx *gorm.DB, id uuid.UUID, quantity int) (int64, error)
	// IncrementStockTx adds delta to stock (restock on cancellation).
	IncrementStockTx(tx *gorm.DB, id uuid.UUID, delta int) error
	// SetStockTx overwrites stock verbatim (ajuste movements).
	SetStockTx(tx *gorm.DB, id uuid.UUID, stock int) error

	// Low-stock and dashboard queries
	ListLowStock(ctx context.Context, limit int) ([]model.Product, error)
	ListOutOfStock(ctx context.Context, limit int) ([]model.Product, error)
	CountAll(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context) (int64, error)
	CountOutOfStock(ctx context.Context) (int64, error)
	StockTotals(ctx context.Context) (totalStock int64, avgStock float64, err error)
	// InventoryValue returns SUM(stock * price) over the whole catalog.
	InventoryValue(ctx context.Context) (decimal.Decimal, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := tx.First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productRepo) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) SearchByName(ctx context.Context, q string) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("name ILIKE ?", "%"+q+"%").
		Order("name ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepo) DecrementStockTx(tx *gorm.DB, id uuid.UUID, quantity int) (int64, error) {
	result := tx.Model(&model.Product{}).
		Where("id = ? AND stock >= ?", id, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	return result.RowsAffected, result.Error
}

func (r *productRepo) IncrementStockTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.Product{}).Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", delta)).Error
}

func (r *productRepo) SetStockTx(tx *gorm.DB, id uuid.UUID, stock int) error {
	return tx.Model(&model.Product{}).Where("id = ?", id).
		Update("stock", stock).Error
}

func (r *productRepo) ListLowStock(ctx context.Context, limit int) ([]model.Product, error) {
	var products []model.Product
	q := r.db.WithContext(ctx).Where("stock <= min_stock").Order("stock ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&products).Error
	return products, err
}

func (r *productRepo) ListOutOfStock(ctx context.Context, limit int) ([]model.Product, error) {
	var products []model.Product
	q := r.db.WithContext(ctx).Where("stock = 0").Order("name ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&products).Error
	return products, err
}

func (r *productRepo) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&n).Error
	return n, err
}

func (r *productRepo) CountLowStock(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("stock <= min_stock").Count(&n).Error
	return n, err
}

func (r *productRepo) CountOutOfStock(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("stock = 0").Count(&n).Error
	return n, err
}

func (r *productRepo) StockTotals(ctx context.Context) (int64, float64, error) {
	var agg struct {
		TotalStock int64
		AvgStock   float64
	}
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Select("COALESCE(SUM(stock),0) AS total_stock, COALESCE(AVG(stock),0) AS avg_stock").
		Scan(&agg).Error
	return agg.TotalStock, agg.AvgStock, err
}

func (r *productRepo) InventoryValue(ctx context.Context) (decimal.Decimal, error) {
	var agg struct {
		Value decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Select("COALESCE(SUM(stock * price),0) AS value").
		Scan(&agg).Error
	return agg.Value, err
}

func (r *productRepo) DB() *gorm.DB { return r.db }
