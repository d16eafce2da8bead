package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"workspacebcn/internal/apierror"
	"workspacebcn/internal/config"
	"workspacebcn/internal/dto"
	"workspacebcn/internal/model"
	"workspacebcn/internal/repository"
	"workspacebcn/internal/translation"
	"workspacebcn/internal/worker"
)

type SaleService interface {
	CreateSale(ctx context.Context, actor Actor, req dto.CreateSaleRequest) (*dto.SaleResponse, error)
	UpdateStatus(ctx context.Context, actor Actor, saleID uuid.UUID, req dto.UpdateSaleStatusRequest) (*dto.SaleResponse, error)
	GetSale(ctx context.Context, actor Actor, saleID uuid.UUID) (*dto.SaleResponse, error)
	ListMine(ctx context.Context, actor Actor) ([]dto.SaleResponse, error)
	ListAdmin(ctx context.Context) (*dto.AdminSalesResponse, error)
}

type saleService struct {
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
	paymentRepo  repository.PaymentRepository
	dispatcher   *worker.Dispatcher
	cfg          *config.Config
}

func NewSaleService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	paymentRepo repository.PaymentRepository,
	dispatcher *worker.Dispatcher,
	cfg *config.Config,
) SaleService {
	return &saleService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		paymentRepo:  paymentRepo,
		dispatcher:   dispatcher,
		cfg:          cfg,
	}
}

// ── CreateSale ────────────────────────────────────────────────────────────────
// Direct sale without an Order wrapper. Same stock rules as checkout; unit
// prices always come from the current catalog price.

func (s *saleService) CreateSale(ctx context.Context, actor Actor, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if actor.IsAdmin() {
		return nil, apierror.Forbidden("Administradores no pueden realizar compras")
	}
	if len(req.Items) == 0 {
		return nil, apierror.BadRequest("La orden debe incluir al menos un producto")
	}

	type resolvedLine struct {
		product  *model.Product
		quantity int
	}
	resolved := make([]resolvedLine, 0, len(req.Items))
	subtotal := decimal.Zero

	for _, line := range req.Items {
		pid, err := uuid.Parse(line.Product)
		if err != nil {
			return nil, apierror.BadRequest("La orden debe incluir al menos un producto")
		}
		if line.Quantity <= 0 {
			return nil, apierror.BadRequest("La cantidad debe ser un número mayor que 0")
		}
		p, err := s.productRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, apierror.NotFound("Producto no encontrado")
		}
		if p.Stock < line.Quantity {
			return nil, apierror.BadRequest(fmt.Sprintf("Stock insuficiente para %s", p.Name))
		}
		subtotal = subtotal.Add(p.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		resolved = append(resolved, resolvedLine{product: p, quantity: line.Quantity})
	}

	addr := req.ShippingAddress.Normalized()
	shippingCost := shippingFor(subtotal, s.cfg)
	total := subtotal.Add(shippingCost)

	var sale model.Sale
	txErr := runTx(ctx, s.saleRepo.DB(), func(tx *gorm.DB) error {
		sale = model.Sale{
			CustomerID:   actor.ID,
			Total:        total,
			Status:       model.SalePending,
			Street:       addr.Street,
			City:         addr.City,
			PostalCode:   addr.PostalCode,
			ShippingCost: shippingCost,
		}
		for _, r := range resolved {
			sale.Items = append(sale.Items, model.SaleItem{
				ProductID: r.product.ID,
				Name:      r.product.Name,
				Quantity:  r.quantity,
				UnitPrice: r.product.Price,
			})
		}
		if err := s.saleRepo.CreateTx(tx, &sale); err != nil {
			return err
		}

		for _, r := range resolved {
			before, err := s.productRepo.FindByIDTx(tx, r.product.ID)
			if err != nil {
				return apierror.NotFound("Producto no encontrado")
			}
			rows, err := s.productRepo.DecrementStockTx(tx, r.product.ID, r.quantity)
			if err != nil {
				return err
			}
			if rows == 0 {
				return apierror.BadRequest(fmt.Sprintf("Stock insuficiente para %s", r.product.Name))
			}

			saleRef := sale.ID
			actorRef := actor.ID
			mov := &model.InventoryMovement{
				ProductID:     r.product.ID,
				Type:          model.MovementSalida,
				Quantity:      r.quantity,
				PreviousStock: before.Stock,
				NewStock:      before.Stock - r.quantity,
				Reason:        fmt.Sprintf("Salida de stock por venta %s", saleRef),
				UserID:        &actorRef,
				SaleID:        &saleRef,
			}
			if err := s.movementRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		if ae := apierror.AsError(txErr); ae != nil {
			return nil, ae
		}
		return nil, txErr
	}

	if s.dispatcher != nil {
		alertJob := worker.AlertJobPayload{
			Tipo:           model.AlertVenta,
			ReferenceID:    sale.ID.String(),
			ReferenceModel: model.AlertRefSale,
			Titulo:         fmt.Sprintf("Nueva venta por %s €", total.StringFixed(2)),
			Link:           "/admin/ventas/" + sale.ID.String(),
			Priority:       "media",
		}
		if err := s.dispatcher.EnqueueAlerta(ctx, alertJob); err != nil {
			log.Warn().Err(err).Str("sale_id", sale.ID.String()).Msg("failed to enqueue sale alert")
		}
	}

	resp := saleToResponse(&sale)
	for i, r := range resolved {
		resp.Items[i].Product = dto.ProductBrief{
			ID:    r.product.ID.String(),
			Name:  r.product.Name,
			Image: r.product.Image,
			Price: &r.product.Price,
		}
	}
	return resp, nil
}

// ── UpdateStatus ──────────────────────────────────────────────────────────────
// Admin transition. Accepts Spanish or English status terms. Entering
// cancelled restocks every line with a devolucion movement; cancelled is
// terminal apart from idempotently restating it.

func (s *saleService) UpdateStatus(ctx context.Context, actor Actor, saleID uuid.UUID, req dto.UpdateSaleStatusRequest) (*dto.SaleResponse, error) {
	target := translation.ToEnglish(req.Status, translation.SaleStatus, req.Status)
	if !model.ValidSaleStatus(target) {
		return nil, apierror.BadRequest("Estado de venta no válido")
	}

	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, apierror.NotFound("Venta no encontrada")
	}

	if sale.Status == model.SaleCancelled {
		if target == model.SaleCancelled {
			// Idempotent restate — nothing to do.
			return saleToResponse(sale), nil
		}
		return nil, apierror.BadRequest("No se puede modificar una venta que ya está cancelada")
	}

	entersCancelled := target == model.SaleCancelled

	txErr := runTx(ctx, s.saleRepo.DB(), func(tx *gorm.DB) error {
		if entersCancelled {
			for _, item := range sale.Items {
				before, err := s.productRepo.FindByIDTx(tx, item.ProductID)
				if err != nil {
					log.Warn().
						Str("product_id", item.ProductID.String()).
						Str("sale_id", sale.ID.String()).
						Msg("sale cancel: product no longer resolvable, skipping restock")
					continue
				}
				if err := s.productRepo.IncrementStockTx(tx, item.ProductID, item.Quantity); err != nil {
					return err
				}

				saleRef := sale.ID
				actorRef := actor.ID
				mov := &model.InventoryMovement{
					ProductID:     item.ProductID,
					Type:          model.MovementDevolucion,
					Quantity:      item.Quantity,
					PreviousStock: before.Stock,
					NewStock:      before.Stock + item.Quantity,
					Reason:        fmt.Sprintf("Devolución de stock por cancelación de venta %s", saleRef),
					UserID:        &actorRef,
					SaleID:        &saleRef,
				}
				if err := s.movementRepo.CreateTx(tx, mov); err != nil {
					return err
				}
			}
		}

		// The paired Order, if any, keeps its own status: only order
		// cancellation and payment settlement cross the two vocabularies.
		return s.saleRepo.UpdateStatusTx(tx, sale.ID, target)
	})
	if txErr != nil {
		return nil, txErr
	}

	sale.Status = target
	return saleToResponse(sale), nil
}

func (s *saleService) GetSale(ctx context.Context, actor Actor, saleID uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, apierror.NotFound("Venta no encontrada")
	}
	if sale.CustomerID != actor.ID && !actor.IsAdmin() {
		return nil, apierror.Forbidden("No autorizado")
	}
	return saleToResponse(sale), nil
}

func (s *saleService) ListMine(ctx context.Context, actor Actor) ([]dto.SaleResponse, error) {
	sales, err := s.saleRepo.ListByCustomer(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		resp = append(resp, *saleToResponse(&sales[i]))
	}
	return resp, nil
}

// ListAdmin returns every sale plus the dashboard summary. Revenue and the
// per-customer totals count every sale regardless of status; top customers
// are the three highest spenders.
func (s *saleService) ListAdmin(ctx context.Context) (*dto.AdminSalesResponse, error) {
	sales, err := s.saleRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.SaleResponse, 0, len(sales))
	statusCounts := make(map[string]int)
	totalRevenue := decimal.Zero

	type customerAgg struct {
		name  string
		email string
		total decimal.Decimal
		count int
	}
	customers := make(map[uuid.UUID]*customerAgg)

	for i := range sales {
		sale := &sales[i]
		resp = append(resp, *saleToResponse(sale))
		statusCounts[sale.Status]++
		totalRevenue = totalRevenue.Add(sale.Total)

		agg, ok := customers[sale.CustomerID]
		if !ok {
			agg = &customerAgg{}
			if sale.Customer != nil {
				agg.name = sale.Customer.Name
				agg.email = sale.Customer.Email
			}
			customers[sale.CustomerID] = agg
		}
		agg.total = agg.total.Add(sale.Total)
		agg.count++
	}

	avg := decimal.Zero
	if len(sales) > 0 {
		avg = totalRevenue.Div(decimal.NewFromInt(int64(len(sales)))).Round(2)
	}

	top := make([]dto.TopCustomer, 0, len(customers))
	for _, agg := range customers {
		top = append(top, dto.TopCustomer{
			Email: agg.email,
			Name:  agg.name,
			Total: agg.total,
			Count: agg.count,
		})
	}
	sort.Slice(top, func(i, j int) bool { return top[i].Total.GreaterThan(top[j].Total) })
	if len(top) > 3 {
		top = top[:3]
	}

	methods, err := s.paymentRepo.AggregateByMethod(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.AdminSalesResponse{
		Ventas: resp,
		Summary: dto.SalesSummary{
			TotalRevenue:   totalRevenue,
			TotalOrders:    len(sales),
			AvgOrderValue:  avg,
			StatusCounts:   statusCounts,
			PaymentMethods: methods,
			TopCustomers:   top,
		},
	}, nil
}

func saleToResponse(sale *model.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(sale.Items))
	for _, item := range sale.Items {
		brief := dto.ProductBrief{ID: item.ProductID.String(), Name: item.Name}
		if item.Product != nil {
			brief.Name = item.Product.Name
			brief.Image = item.Product.Image
			price := item.Product.Price
			brief.Price = &price
		}
		items = append(items, dto.SaleItemResponse{
			Product:   brief,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	var customer *dto.UserBrief
	if sale.Customer != nil {
		customer = &dto.UserBrief{
			ID:    sale.Customer.ID.String(),
			Name:  sale.Customer.Name,
			Email: sale.Customer.Email,
		}
	}

	return &dto.SaleResponse{
		ID:       sale.ID.String(),
		Customer: customer,
		Items:    items,
		Total:    sale.Total,
		Status:   sale.Status,
		ShippingAddress: dto.ShippingAddressResponse{
			Street:     sale.Street,
			City:       sale.City,
			PostalCode: sale.PostalCode,
		},
		ShippingCost: sale.ShippingCost,
		SaleDate:     sale.SaleDate.Format("2006-01-02T15:04:05Z"),
	}
}
