package tests

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"workspacebcn/internal/dto"
	"workspacebcn/internal/model"
	"workspacebcn/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────
//
// In-memory repository implementations. The services open their transactions
// through repo.DB(), which returns nil here, so runTx executes the closure
// directly — no rollback semantics, which the unit tests account for.

// stubProductRepo is an in-memory ProductRepository.
type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	// Return a snapshot, like a real row scan: callers take pre-mutation
	// readings from this value while Increment/Decrement mutate the stored
	// product.
	snapshot := *p
	return &snapshot, nil
}

func (r *stubProductRepo) List(_ context.Context) ([]model.Product, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubProductRepo) SearchByName(_ context.Context, q string) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(q)) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.products[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) DecrementStockTx(_ *gorm.DB, id uuid.UUID, quantity int) (int64, error) {
	p, ok := r.products[id]
	if !ok || p.Stock < quantity {
		return 0, nil
	}
	p.Stock -= quantity
	return 1, nil
}

func (r *stubProductRepo) IncrementStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock += delta
	return nil
}

func (r *stubProductRepo) SetStockTx(_ *gorm.DB, id uuid.UUID, stock int) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock = stock
	return nil
}

func (r *stubProductRepo) ListLowStock(_ context.Context, limit int) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.Stock <= p.MinStock {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Stock < out[j].Stock })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubProductRepo) ListOutOfStock(_ context.Context, limit int) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.Stock == 0 {
			out = append(out, *p)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubProductRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *stubProductRepo) CountLowStock(_ context.Context) (int64, error) {
	var n int64
	for _, p := range r.products {
		if p.Stock <= p.MinStock {
			n++
		}
	}
	return n, nil
}

func (r *stubProductRepo) CountOutOfStock(_ context.Context) (int64, error) {
	var n int64
	for _, p := range r.products {
		if p.Stock == 0 {
			n++
		}
	}
	return n, nil
}

func (r *stubProductRepo) StockTotals(_ context.Context) (int64, float64, error) {
	var total int64
	for _, p := range r.products {
		total += int64(p.Stock)
	}
	if len(r.products) == 0 {
		return 0, 0, nil
	}
	return total, float64(total) / float64(len(r.products)), nil
}

func (r *stubProductRepo) InventoryValue(_ context.Context) (decimal.Decimal, error) {
	value := decimal.Zero
	for _, p := range r.products {
		value = value.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Stock))))
	}
	return value, nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// stubMovementRepo captures ledger rows for assertion.
type stubMovementRepo struct {
	movements []model.InventoryMovement
}

func (r *stubMovementRepo) Create(_ context.Context, m *model.InventoryMovement) error {
	return r.CreateTx(nil, m)
}

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.InventoryMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Date.IsZero() {
		m.Date = time.Now()
	}
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) List(_ context.Context, filter dto.MovementFilter) ([]model.InventoryMovement, error) {
	var out []model.InventoryMovement
	for _, m := range r.movements {
		if filter.ProductID != "" && m.ProductID.String() != filter.ProductID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *stubMovementRepo) ListBySale(_ context.Context, saleID uuid.UUID) ([]model.InventoryMovement, error) {
	var out []model.InventoryMovement
	for _, m := range r.movements {
		if m.SaleID != nil && *m.SaleID == saleID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMovementRepo) CountSince(_ context.Context, since time.Time) (int64, error) {
	var n int64
	for _, m := range r.movements {
		if m.Date.After(since) {
			n++
		}
	}
	return n, nil
}

var _ repository.MovementRepository = (*stubMovementRepo)(nil)

// stubSaleRepo is an in-memory SaleRepository.
type stubSaleRepo struct {
	sales map[uuid.UUID]*model.Sale
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uuid.UUID]*model.Sale)}
}

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.SaleDate.IsZero() {
		s.SaleDate = time.Now()
	}
	for i := range s.Items {
		if s.Items[i].ID == uuid.Nil {
			s.Items[i].ID = uuid.New()
		}
		s.Items[i].SaleID = s.ID
	}
	r.sales[s.ID] = s
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSaleRepo) ListAll(_ context.Context) ([]model.Sale, error) {
	out := make([]model.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubSaleRepo) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if s.CustomerID == customerID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubSaleRepo) ListByStatus(_ context.Context, status string, limit int) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if s.Status == status {
			out = append(out, *s)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubSaleRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, s := range r.sales {
		if s.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *stubSaleRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	return r.UpdateStatusTx(nil, id, status)
}

func (r *stubSaleRepo) UpdateStatusTx(_ *gorm.DB, id uuid.UUID, status string) error {
	s, ok := r.sales[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Status = status
	return nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// stubOrderRepo is an in-memory OrderRepository.
type stubOrderRepo struct {
	orders map[uuid.UUID]*model.Order
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[uuid.UUID]*model.Order)}
}

func (r *stubOrderRepo) CreateTx(_ *gorm.DB, o *model.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	for i := range o.Items {
		if o.Items[i].ID == uuid.Nil {
			o.Items[i].ID = uuid.New()
		}
		o.Items[i].OrderID = o.ID
	}
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (r *stubOrderRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) UpdateStatusTx(_ *gorm.DB, id uuid.UUID, status string) error {
	o, ok := r.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.Status = status
	return nil
}

func (r *stubOrderRepo) MarkPaid(_ context.Context, id uuid.UUID) error {
	o, ok := r.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.Status = model.OrderPaid
	now := time.Now()
	o.PaidAt = &now
	return nil
}

func (r *stubOrderRepo) DB() *gorm.DB { return nil }

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

// stubPaymentRepo is an in-memory PaymentRepository.
type stubPaymentRepo struct {
	payments map[uuid.UUID]*model.Payment
}

func newStubPaymentRepo() *stubPaymentRepo {
	return &stubPaymentRepo{payments: make(map[uuid.UUID]*model.Payment)}
}

func (r *stubPaymentRepo) Create(_ context.Context, p *model.Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.PaymentDate.IsZero() {
		p.PaymentDate = time.Now()
	}
	r.payments[p.ID] = p
	return nil
}

func (r *stubPaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubPaymentRepo) ListAll(_ context.Context) ([]model.Payment, error) {
	out := make([]model.Payment, 0, len(r.payments))
	for _, p := range r.payments {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubPaymentRepo) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]model.Payment, error) {
	var out []model.Payment
	for _, p := range r.payments {
		if p.Sale != nil && p.Sale.CustomerID == customerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPaymentRepo) ListByStatus(_ context.Context, status string, limit int) ([]model.Payment, error) {
	var out []model.Payment
	for _, p := range r.payments {
		if p.Status == status {
			out = append(out, *p)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubPaymentRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, p := range r.payments {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *stubPaymentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) (*model.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	p.Status = status
	return p, nil
}

func (r *stubPaymentRepo) AggregateByMethod(_ context.Context) ([]dto.PaymentMethodAggregate, error) {
	agg := make(map[string]*dto.PaymentMethodAggregate)
	for _, p := range r.payments {
		a, ok := agg[p.PaymentMethod]
		if !ok {
			a = &dto.PaymentMethodAggregate{Method: p.PaymentMethod, Total: decimal.Zero}
			agg[p.PaymentMethod] = a
		}
		a.Total = a.Total.Add(p.Amount)
		a.Count++
	}
	out := make([]dto.PaymentMethodAggregate, 0, len(agg))
	for _, a := range agg {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total.GreaterThan(out[j].Total) })
	return out, nil
}

var _ repository.PaymentRepository = (*stubPaymentRepo)(nil)

// stubAlertRepo captures created alerts.
type stubAlertRepo struct {
	alerts []model.Alert
}

func (r *stubAlertRepo) Create(_ context.Context, a *model.Alert) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	r.alerts = append(r.alerts, *a)
	return nil
}

func (r *stubAlertRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Alert, error) {
	for i := range r.alerts {
		if r.alerts[i].ID == id {
			return &r.alerts[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubAlertRepo) ListRecent(_ context.Context, limit int) ([]model.Alert, error) {
	out := append([]model.Alert(nil), r.alerts...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var _ repository.AlertRepository = (*stubAlertRepo)(nil)

// stubUserRepo is an in-memory UserRepository keyed by id and email.
type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) ListCustomers(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if u.Role == model.RoleCliente {
			out = append(out, *u)
		}
	}
	return out, nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

// stubContactRepo is an in-memory ContactRepository.
type stubContactRepo struct {
	messages []model.ContactMessage
}

func (r *stubContactRepo) Create(_ context.Context, m *model.ContactMessage) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.messages = append(r.messages, *m)
	return nil
}

var _ repository.ContactRepository = (*stubContactRepo)(nil)

// ── Seed helpers ──────────────────────────────────────────────────────────────

func seedProduct(repo *stubProductRepo, name string, price float64, stock, minStock int) *model.Product {
	p := &model.Product{
		ID:       uuid.New(),
		Category: "Oficina",
		Name:     name,
		Price:    decimal.NewFromFloat(price),
		Stock:    stock,
		MinStock: minStock,
		MaxStock: stock + 10,
	}
	repo.products[p.ID] = p
	return p
}

var errGatewayDown = errors.New("gateway unreachable")
