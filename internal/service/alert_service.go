package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"workspacebcn/internal/apierror"
	"workspacebcn/internal/dto"
	"workspacebcn/internal/model"
	"workspacebcn/internal/repository"
)

const (
	alertLowStockLimit = 3
	alertFeedLimit     = 60
)

// AlertService builds the back-office alerts projection: pending sale and
// payment counters, the lowest-stock products, and the newest alert rows.
type AlertService interface {
	AdminAlerts(ctx context.Context) (*dto.AdminAlertsResponse, error)
	AlertDetail(ctx context.Context, alertID uuid.UUID) (*dto.AlertDetailResponse, error)
}

type alertService struct {
	alertRepo   repository.AlertRepository
	saleRepo    repository.SaleRepository
	paymentRepo repository.PaymentRepository
	productRepo repository.ProductRepository
}

func NewAlertService(
	alertRepo repository.AlertRepository,
	saleRepo repository.SaleRepository,
	paymentRepo repository.PaymentRepository,
	productRepo repository.ProductRepository,
) AlertService {
	return &alertService{
		alertRepo:   alertRepo,
		saleRepo:    saleRepo,
		paymentRepo: paymentRepo,
		productRepo: productRepo,
	}
}

func (s *alertService) AdminAlerts(ctx context.Context) (*dto.AdminAlertsResponse, error) {
	pendingSales, err := s.saleRepo.CountByStatus(ctx, model.SalePending)
	if err != nil {
		return nil, err
	}
	pendingPayments, err := s.paymentRepo.CountByStatus(ctx, model.PaymentPending)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.productRepo.ListLowStock(ctx, alertLowStockLimit)
	if err != nil {
		return nil, err
	}
	alerts, err := s.alertRepo.ListRecent(ctx, alertFeedLimit)
	if err != nil {
		return nil, err
	}

	stockItems := make([]dto.AlertStockItem, len(lowStock))
	for i, p := range lowStock {
		stockItems[i] = dto.AlertStockItem{
			ID:          p.ID.String(),
			Nombre:      p.Name,
			Stock:       p.Stock,
			StockMinimo: p.MinStock,
		}
	}

	items := make([]dto.AlertItem, len(alerts))
	for i := range alerts {
		items[i] = alertToItem(&alerts[i])
	}

	return &dto.AdminAlertsResponse{
		PendingSalesCount:    int(pendingSales),
		PendingPaymentsCount: int(pendingPayments),
		LowStockProducts:     stockItems,
		Alertas:              items,
		CounterByCard: dto.AlertCounters{
			Ventas:    int(pendingSales),
			Pagos:     int(pendingPayments),
			Productos: len(stockItems),
		},
		ContadorAlertas:     int(pendingSales) + int(pendingPayments) + len(stockItems),
		UltimaActualizacion: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// AlertDetail resolves the referenced Sale or Payment for drill-down.
func (s *alertService) AlertDetail(ctx context.Context, alertID uuid.UUID) (*dto.AlertDetailResponse, error) {
	alert, err := s.alertRepo.FindByID(ctx, alertID)
	if err != nil {
		return nil, apierror.NotFound("Alerta no encontrada")
	}

	resp := &dto.AlertDetailResponse{Alert: alertToItem(alert)}
	switch alert.ReferenceModel {
	case model.AlertRefSale:
		if sale, err := s.saleRepo.FindByID(ctx, alert.ReferenceID); err == nil {
			resp.Detail = saleToResponse(sale)
		}
	case model.AlertRefPayment:
		if payment, err := s.paymentRepo.FindByID(ctx, alert.ReferenceID); err == nil {
			resp.Detail = paymentToResponse(payment)
		}
	}
	return resp, nil
}

func alertToItem(a *model.Alert) dto.AlertItem {
	return dto.AlertItem{
		AlertID:    a.ID.String(),
		ID:         a.ReferenceID.String(),
		Tipo:       a.Type,
		Referencia: a.ReferenceModel,
		Titulo:     a.Title,
		Mensaje:    a.Message,
		Link:       a.Link,
		Priority:   a.Priority,
	}
}
