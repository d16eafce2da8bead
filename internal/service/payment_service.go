package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"workspacebcn/internal/apierror"
	"workspacebcn/internal/dto"
	"workspacebcn/internal/infra"
	"workspacebcn/internal/model"
	"workspacebcn/internal/repository"
	"workspacebcn/internal/translation"
	"workspacebcn/internal/worker"
)

type PaymentService interface {
	CreatePayment(ctx context.Context, actor Actor, req dto.CreatePaymentRequest) (*dto.CreatePaymentResponse, error)
	GetPayment(ctx context.Context, actor Actor, paymentID uuid.UUID) (*dto.PaymentResponse, error)
	ListMine(ctx context.Context, actor Actor) ([]dto.PaymentResponse, error)
	ListAdmin(ctx context.Context) ([]dto.PaymentResponse, error)
	UpdateStatus(ctx context.Context, paymentID uuid.UUID, req dto.UpdatePaymentStatusRequest) (*dto.PaymentResponse, error)
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
	saleRepo    repository.SaleRepository
	orderRepo   repository.OrderRepository
	gateway     infra.PaymentGateway
	dispatcher  *worker.Dispatcher
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	saleRepo repository.SaleRepository,
	orderRepo repository.OrderRepository,
	gateway infra.PaymentGateway,
	dispatcher *worker.Dispatcher,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		saleRepo:    saleRepo,
		orderRepo:   orderRepo,
		gateway:     gateway,
		dispatcher:  dispatcher,
	}
}

// ── CreatePayment ─────────────────────────────────────────────────────────────
// Settlement per sale: the amount is always the sale total at the time of the
// attempt. Failed attempts are persisted too — they are the gateway audit
// trail — and leave Sale/Order untouched.

func (s *paymentService) CreatePayment(ctx context.Context, actor Actor, req dto.CreatePaymentRequest) (*dto.CreatePaymentResponse, error) {
	if req.SaleID == "" {
		return nil, apierror.BadRequest("La venta es obligatoria para procesar el pago")
	}
	saleID, err := uuid.Parse(req.SaleID)
	if err != nil {
		return nil, apierror.BadRequest("La venta es obligatoria para procesar el pago")
	}
	if !model.ValidPaymentMethod(req.PaymentMethod) {
		return nil, apierror.BadRequest("El método de pago no es válido")
	}

	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, apierror.NotFound("Venta no encontrada")
	}
	// Only the sale's owner may settle it; there is no admin override here.
	if sale.CustomerID != actor.ID {
		return nil, apierror.Forbidden("No autorizado")
	}

	var orderID *uuid.UUID
	if req.OrderID != "" {
		oid, err := uuid.Parse(req.OrderID)
		if err != nil {
			return nil, apierror.NotFound("Pedido no encontrado")
		}
		order, err := s.orderRepo.FindByID(ctx, oid)
		if err != nil {
			return nil, apierror.NotFound("Pedido no encontrado")
		}
		if order.UserID != actor.ID {
			return nil, apierror.Forbidden("Orden no pertenece al usuario")
		}
		orderID = &oid
	}

	auth, err := s.gateway.Authorize(ctx, sale.Total)
	if err != nil {
		return nil, err
	}

	payment := &model.Payment{
		SaleID:        saleID,
		OrderID:       orderID,
		PaymentMethod: req.PaymentMethod,
		Amount:        sale.Total,
		Currency:      "EUR",
		Last4Digits:   req.PaymentDetails.Last4Digits,
		CardType:      req.PaymentDetails.CardType,
		PaypalEmail:   req.PaymentDetails.PaypalEmail,
	}
	if auth.Success {
		payment.Status = model.PaymentCompleted
		payment.TransactionID = auth.TransactionID
	} else {
		payment.Status = model.PaymentFailed
		msg := auth.ErrorMessage
		if msg == "" {
			msg = "Error en el procesamiento del pago"
		}
		payment.ErrorMessage = &msg
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	if auth.Success {
		if err := s.saleRepo.UpdateStatus(ctx, saleID, model.SalePaid); err != nil {
			return nil, err
		}
		if orderID != nil {
			if err := s.orderRepo.MarkPaid(ctx, *orderID); err != nil {
				return nil, err
			}
		}
	}

	if s.dispatcher != nil {
		title := fmt.Sprintf("Pago %s por %s €", payment.Status, payment.Amount.StringFixed(2))
		priority := "media"
		if !auth.Success {
			priority = "alta"
		}
		alertJob := worker.AlertJobPayload{
			Tipo:           model.AlertPago,
			ReferenceID:    payment.ID.String(),
			ReferenceModel: model.AlertRefPayment,
			Titulo:         title,
			Link:           "/admin/pagos/" + payment.ID.String(),
			Priority:       priority,
		}
		if err := s.dispatcher.EnqueueAlerta(ctx, alertJob); err != nil {
			log.Warn().Err(err).Str("payment_id", payment.ID.String()).Msg("failed to enqueue payment alert")
		}
	}

	mensaje := "Pago procesado exitosamente"
	if !auth.Success {
		mensaje = "Error en el pago"
	}
	return &dto.CreatePaymentResponse{
		Mensaje: mensaje,
		Payment: *paymentToResponse(payment),
		Success: auth.Success,
	}, nil
}

func (s *paymentService) GetPayment(ctx context.Context, actor Actor, paymentID uuid.UUID) (*dto.PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, apierror.NotFound("Pago no encontrado")
	}
	if !actor.IsAdmin() {
		if payment.Sale == nil || payment.Sale.CustomerID != actor.ID {
			return nil, apierror.Forbidden("No autorizado")
		}
	}
	return paymentToResponse(payment), nil
}

func (s *paymentService) ListMine(ctx context.Context, actor Actor) ([]dto.PaymentResponse, error) {
	payments, err := s.paymentRepo.ListByCustomer(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return paymentsToResponse(payments), nil
}

func (s *paymentService) ListAdmin(ctx context.Context) ([]dto.PaymentResponse, error) {
	payments, err := s.paymentRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return paymentsToResponse(payments), nil
}

// UpdateStatus lets an admin correct a payment's status (e.g. mark a
// transferencia as completed, or refund). Accepts Spanish or English terms.
func (s *paymentService) UpdateStatus(ctx context.Context, paymentID uuid.UUID, req dto.UpdatePaymentStatusRequest) (*dto.PaymentResponse, error) {
	target := translation.ToEnglish(req.Raw(), translation.PaymentStatus, req.Raw())
	if !model.ValidPaymentStatus(target) {
		return nil, apierror.BadRequest("Estado de pago no válido")
	}

	payment, err := s.paymentRepo.UpdateStatus(ctx, paymentID, target)
	if err != nil {
		return nil, apierror.NotFound("Pago no encontrado")
	}
	return paymentToResponse(payment), nil
}

func paymentToResponse(p *model.Payment) *dto.PaymentResponse {
	resp := &dto.PaymentResponse{
		ID:            p.ID.String(),
		SaleID:        p.SaleID.String(),
		PaymentMethod: p.PaymentMethod,
		Status:        p.Status,
		Amount:        p.Amount,
		Currency:      p.Currency,
		TransactionID: p.TransactionID,
		PaymentDetails: dto.PaymentDetailsRequest{
			Last4Digits: p.Last4Digits,
			CardType:    p.CardType,
			PaypalEmail: p.PaypalEmail,
		},
		PaymentDate:  p.PaymentDate.Format("2006-01-02T15:04:05Z"),
		ErrorMessage: p.ErrorMessage,
	}
	if p.OrderID != nil {
		resp.OrderID = p.OrderID.String()
	}
	if p.Sale != nil && p.Sale.Customer != nil {
		resp.Customer = &dto.UserBrief{
			ID:    p.Sale.Customer.ID.String(),
			Name:  p.Sale.Customer.Name,
			Email: p.Sale.Customer.Email,
		}
	}
	return resp
}

func paymentsToResponse(payments []model.Payment) []dto.PaymentResponse {
	resp := make([]dto.PaymentResponse, len(payments))
	for i := range payments {
		resp[i] = *paymentToResponse(&payments[i])
	}
	return resp
}
