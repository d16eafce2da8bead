package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"workspacebcn/internal/apierror"
	"workspacebcn/internal/config"
	"workspacebcn/internal/dto"
	"workspacebcn/internal/model"
	"workspacebcn/internal/repository"
	"workspacebcn/internal/translation"
	"workspacebcn/internal/worker"
)

type OrderService interface {
	CreateOrder(ctx context.Context, actor Actor, req dto.CreateOrderRequest) (*dto.CreateOrderResponse, error)
	CancelOrder(ctx context.Context, actor Actor, orderID uuid.UUID) (*dto.CancelOrderResponse, error)
	GetOrder(ctx context.Context, actor Actor, orderID uuid.UUID) (*dto.OrderResponse, error)
	ListMine(ctx context.Context, actor Actor) (*dto.OrderListResponse, error)
}

// Actor is the authenticated identity every workflow operation receives.
type Actor struct {
	ID    uuid.UUID
	Email string
	Role  string
}

func (a Actor) IsAdmin() bool { return a.Role == model.RoleAdmin }

type orderService struct {
	orderRepo    repository.OrderRepository
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
	dispatcher   *worker.Dispatcher
	cfg          *config.Config
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	dispatcher *worker.Dispatcher,
	cfg *config.Config,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		dispatcher:   dispatcher,
		cfg:          cfg,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// shippingFor applies the free-shipping rule: 0 when the subtotal exceeds
// 50 EUR (or is zero), flat configured cost otherwise.
func shippingFor(subtotal decimal.Decimal, cfg *config.Config) decimal.Decimal {
	if subtotal.GreaterThan(decimal.NewFromInt(50)) || subtotal.IsZero() {
		return decimal.Zero
	}
	return decimal.NewFromFloat(cfg.ShippingCost)
}

// ── CreateOrder ───────────────────────────────────────────────────────────────
// Checkout is all-or-nothing: every line is validated before any write, then
// one transaction creates Sale + Order, decrements stock with a conditional
// update per line, and appends one salida movement per line. Any failed
// decrement rolls back the whole checkout.

func (s *orderService) CreateOrder(ctx context.Context, actor Actor, req dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	if actor.IsAdmin() {
		return nil, apierror.Forbidden("Administradores no pueden realizar compras")
	}

	lines := req.Lines()
	if len(lines) == 0 {
		return nil, apierror.BadRequest("La orden debe incluir al menos un producto")
	}

	addr := req.ShippingAddress.Normalized()
	if addr.Street == "" || addr.City == "" || addr.PostalCode == "" {
		return nil, apierror.BadRequest("La dirección de envío está incompleta")
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "tarjeta"
	}
	if !model.ValidOrderPaymentMethod(paymentMethod) {
		return nil, apierror.BadRequest("El método de pago no es válido")
	}

	// Pre-flight: resolve every line before touching the database.
	type resolvedLine struct {
		product   *model.Product
		quantity  int
		unitPrice decimal.Decimal
	}
	resolved := make([]resolvedLine, 0, len(lines))
	subtotal := decimal.Zero

	for _, line := range lines {
		pid, err := uuid.Parse(line.ProductID())
		if err != nil {
			return nil, apierror.BadRequest("La orden debe incluir al menos un producto")
		}
		qty := line.Qty()
		if qty <= 0 {
			return nil, apierror.BadRequest("La cantidad debe ser un número mayor que 0")
		}
		p, err := s.productRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, apierror.NotFound("Producto no encontrado")
		}
		if p.Stock < qty {
			return nil, apierror.BadRequest(fmt.Sprintf("Stock insuficiente para %s", p.Name))
		}
		unitPrice := line.Price()
		if unitPrice.LessThanOrEqual(decimal.Zero) {
			unitPrice = p.Price
		}
		subtotal = subtotal.Add(unitPrice.Mul(decimal.NewFromInt(int64(qty))))
		resolved = append(resolved, resolvedLine{product: p, quantity: qty, unitPrice: unitPrice})
	}

	shippingCost := shippingFor(subtotal, s.cfg)
	total := subtotal.Add(shippingCost)

	var sale model.Sale
	var order model.Order

	txErr := runTx(ctx, s.orderRepo.DB(), func(tx *gorm.DB) error {
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
				UnitPrice: r.unitPrice,
			})
		}
		if err := s.saleRepo.CreateTx(tx, &sale); err != nil {
			return err
		}

		order = model.Order{
			SaleID:         sale.ID,
			UserID:         actor.ID,
			Street:         addr.Street,
			City:           addr.City,
			PostalCode:     addr.PostalCode,
			Country:        addr.Country,
			Phone:          addr.Phone,
			PaymentMethod:  paymentMethod,
			PaymentDetails: datatypes.JSON(req.PaymentDetails),
			ShippingCost:   shippingCost,
			Total:          total,
			Status:         model.OrderPending,
		}
		for _, r := range resolved {
			order.Items = append(order.Items, model.OrderItem{
				ProductID: r.product.ID,
				Name:      r.product.Name,
				Quantity:  r.quantity,
				UnitPrice: r.unitPrice,
			})
		}
		if err := s.orderRepo.CreateTx(tx, &order); err != nil {
			return err
		}

		// Conditional decrements: a concurrent checkout that drained the
		// stock between pre-flight and here makes rowsAffected 0, which
		// aborts the whole transaction.
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
				Reason:        fmt.Sprintf("Salida asociada al pedido %s", saleRef),
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

	// Async side effects — best effort, never fail the checkout.
	if s.dispatcher != nil {
		alertJob := worker.AlertJobPayload{
			Tipo:           model.AlertVenta,
			ReferenceID:    sale.ID.String(),
			ReferenceModel: model.AlertRefSale,
			Titulo:         fmt.Sprintf("Nuevo pedido por %s €", total.StringFixed(2)),
			Link:           "/admin/ventas/" + sale.ID.String(),
			Priority:       "media",
		}
		if err := s.dispatcher.EnqueueAlerta(ctx, alertJob); err != nil {
			log.Warn().Err(err).Str("sale_id", sale.ID.String()).Msg("failed to enqueue sale alert")
		}
		if actor.Email != "" {
			emailJob := worker.EmailJobPayload{
				ToEmail: actor.Email,
				Subject: "Confirmación de tu pedido — WorkSpaceBCN",
				Body: fmt.Sprintf("Hemos recibido tu pedido %s por un total de %s €.\nTe avisaremos cuando el pago se confirme.",
					order.ID, total.StringFixed(2)),
			}
			if err := s.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
				log.Warn().Err(err).Str("order_id", order.ID.String()).Msg("failed to enqueue confirmation email")
			}
		}
	}

	resp := orderToResponse(&order)
	// Items come back from the tx without Product preloads — enrich from the
	// resolved lines for the response.
	for i, r := range resolved {
		resp.Items[i].Product = dto.ProductBrief{
			ID:    r.product.ID.String(),
			Name:  r.product.Name,
			Image: r.product.Image,
			Price: &r.product.Price,
		}
	}
	return &dto.CreateOrderResponse{Order: *resp, SaleID: sale.ID.String()}, nil
}

// ── CancelOrder ───────────────────────────────────────────────────────────────

func (s *orderService) CancelOrder(ctx context.Context, actor Actor, orderID uuid.UUID) (*dto.CancelOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, apierror.NotFound("Pedido no encontrado")
	}
	if order.UserID != actor.ID && !actor.IsAdmin() {
		return nil, apierror.Forbidden("Acceso denegado")
	}
	if order.Status == model.OrderCancelled {
		return nil, apierror.BadRequest("El pedido ya fue cancelado")
	}
	if order.Status == model.OrderShipped || order.Status == model.OrderDelivered {
		return nil, apierror.BadRequest("No se puede cancelar un pedido que ya fue enviado o entregado")
	}

	txErr := runTx(ctx, s.orderRepo.DB(), func(tx *gorm.DB) error {
		for _, item := range order.Items {
			// Best-effort per line: items whose product was removed from the
			// catalog are skipped, not treated as a hard failure.
			before, err := s.productRepo.FindByIDTx(tx, item.ProductID)
			if err != nil {
				log.Warn().
					Str("product_id", item.ProductID.String()).
					Str("order_id", order.ID.String()).
					Msg("cancel: product no longer resolvable, skipping restock")
				continue
			}
			if err := s.productRepo.IncrementStockTx(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}

			saleRef := order.SaleID
			actorRef := actor.ID
			mov := &model.InventoryMovement{
				ProductID:     item.ProductID,
				Type:          model.MovementEntrada,
				Quantity:      item.Quantity,
				PreviousStock: before.Stock,
				NewStock:      before.Stock + item.Quantity,
				Reason:        fmt.Sprintf("Reversión del pedido %s", order.ID),
				UserID:        &actorRef,
				SaleID:        &saleRef,
			}
			if err := s.movementRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}

		if err := s.orderRepo.UpdateStatusTx(tx, order.ID, model.OrderCancelled); err != nil {
			return err
		}
		return s.saleRepo.UpdateStatusTx(tx, order.SaleID, translation.SaleStatusForOrder(model.OrderCancelled))
	})
	if txErr != nil {
		return nil, txErr
	}

	order.Status = model.OrderCancelled
	return &dto.CancelOrderResponse{
		Mensaje: "Pedido cancelado correctamente",
		Order:   *orderToResponse(order),
	}, nil
}

func (s *orderService) GetOrder(ctx context.Context, actor Actor, orderID uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, apierror.NotFound("Pedido no encontrado")
	}
	if order.UserID != actor.ID && !actor.IsAdmin() {
		return nil, apierror.Forbidden("Orden no pertenece al usuario")
	}
	return orderToResponse(order), nil
}

func (s *orderService) ListMine(ctx context.Context, actor Actor) (*dto.OrderListResponse, error) {
	orders, err := s.orderRepo.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, *orderToResponse(&orders[i]))
	}
	return &dto.OrderListResponse{Orders: resp}, nil
}

func orderToResponse(o *model.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		brief := dto.ProductBrief{ID: item.ProductID.String(), Name: item.Name}
		if item.Product != nil {
			brief.Name = item.Product.Name
			brief.Image = item.Product.Image
			price := item.Product.Price
			brief.Price = &price
		}
		items = append(items, dto.OrderItemResponse{
			Product:   brief,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	var user *dto.UserBrief
	if o.User != nil {
		user = &dto.UserBrief{ID: o.User.ID.String(), Name: o.User.Name, Email: o.User.Email}
	}
	var paidAt *string
	if o.PaidAt != nil {
		v := o.PaidAt.Format("2006-01-02T15:04:05Z")
		paidAt = &v
	}

	return &dto.OrderResponse{
		ID:     o.ID.String(),
		SaleID: o.SaleID.String(),
		User:   user,
		Items:  items,
		ShippingAddress: dto.ShippingAddressResponse{
			Street:     o.Street,
			City:       o.City,
			PostalCode: o.PostalCode,
			Country:    o.Country,
			Phone:      o.Phone,
		},
		PaymentMethod: o.PaymentMethod,
		ShippingCost:  o.ShippingCost,
		Total:         o.Total,
		Status:        o.Status,
		PaidAt:        paidAt,
		CreatedAt:     o.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
