package tests

import (
	"context"
	"strings"
	"testing"

	"workspacebcn/internal/dto"
	"workspacebcn/internal/infra"
	"workspacebcn/internal/model"
	"workspacebcn/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGateway authorizes deterministically.
type stubGateway struct {
	success bool
	err     error
}

func (g *stubGateway) Authorize(_ context.Context, _ decimal.Decimal) (infra.Authorization, error) {
	if g.err != nil {
		return infra.Authorization{}, g.err
	}
	if g.success {
		return infra.Authorization{Success: true, TransactionID: "TXN-1756724400000-000042"}, nil
	}
	return infra.Authorization{Success: false, ErrorMessage: "Error en el procesamiento del pago"}, nil
}

var _ infra.PaymentGateway = (*stubGateway)(nil)

func buildPaymentSvc(gw infra.PaymentGateway) (service.PaymentService, *stubPaymentRepo, *stubSaleRepo, *stubOrderRepo) {
	paymentRepo := newStubPaymentRepo()
	saleRepo := newStubSaleRepo()
	orderRepo := newStubOrderRepo()

	svc := service.NewPaymentService(paymentRepo, saleRepo, orderRepo, gw, nil)
	return svc, paymentRepo, saleRepo, orderRepo
}

func seedSaleWithOrder(saleRepo *stubSaleRepo, orderRepo *stubOrderRepo, customerID uuid.UUID, total float64) (*model.Sale, *model.Order) {
	sale := &model.Sale{
		CustomerID: customerID,
		Total:      decimal.NewFromFloat(total),
		Status:     model.SalePending,
	}
	_ = saleRepo.CreateTx(nil, sale)
	order := &model.Order{
		SaleID:        sale.ID,
		UserID:        customerID,
		PaymentMethod: "tarjeta",
		Total:         sale.Total,
		Status:        model.OrderPending,
	}
	_ = orderRepo.CreateTx(nil, order)
	return sale, order
}

func TestCreatePayment_ExitosoMarcaVentaYPedidoPagados(t *testing.T) {
	svc, paymentRepo, saleRepo, orderRepo := buildPaymentSvc(&stubGateway{success: true})
	actor := clienteActor()
	sale, order := seedSaleWithOrder(saleRepo, orderRepo, actor.ID, 44.99)

	resp, err := svc.CreatePayment(context.Background(), actor, dto.CreatePaymentRequest{
		SaleID:        sale.ID.String(),
		OrderID:       order.ID.String(),
		PaymentMethod: "tarjeta",
		PaymentDetails: dto.PaymentDetailsRequest{
			Last4Digits: "4242",
			CardType:    "visa",
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Pago procesado exitosamente", resp.Mensaje)
	assert.Equal(t, model.PaymentCompleted, resp.Payment.Status)
	assert.NotEmpty(t, resp.Payment.TransactionID)

	// The charged amount is always the sale total, never a client value.
	payment, err := paymentRepo.FindByID(context.Background(), uuid.MustParse(resp.Payment.ID))
	require.NoError(t, err)
	assert.True(t, sale.Total.Equal(payment.Amount))
	assert.Equal(t, "EUR", payment.Currency)

	// Both sides of the aggregate advance, each in its own vocabulary.
	assert.Equal(t, model.SalePaid, sale.Status)
	assert.Equal(t, model.OrderPaid, order.Status)
	require.NotNil(t, order.PaidAt)
}

func TestCreatePayment_FallidoNoTocaEstados(t *testing.T) {
	svc, paymentRepo, saleRepo, orderRepo := buildPaymentSvc(&stubGateway{success: false})
	actor := clienteActor()
	sale, order := seedSaleWithOrder(saleRepo, orderRepo, actor.ID, 89.90)

	resp, err := svc.CreatePayment(context.Background(), actor, dto.CreatePaymentRequest{
		SaleID:        sale.ID.String(),
		OrderID:       order.ID.String(),
		PaymentMethod: "tarjeta",
	})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Error en el pago", resp.Mensaje)

	// Failed attempts are kept as audit trail…
	payment, err := paymentRepo.FindByID(context.Background(), uuid.MustParse(resp.Payment.ID))
	require.NoError(t, err)
	assert.Equal(t, model.PaymentFailed, payment.Status)
	require.NotNil(t, payment.ErrorMessage)

	// …and leave the sale/order untouched so the customer can retry.
	assert.Equal(t, model.SalePending, sale.Status)
	assert.Equal(t, model.OrderPending, order.Status)
	assert.Nil(t, order.PaidAt)
}

func TestCreatePayment_ErrorDePasarelaNoPersisteNada(t *testing.T) {
	svc, paymentRepo, saleRepo, orderRepo := buildPaymentSvc(&stubGateway{err: errGatewayDown})
	actor := clienteActor()
	sale, _ := seedSaleWithOrder(saleRepo, orderRepo, actor.ID, 30)

	_, err := svc.CreatePayment(context.Background(), actor, dto.CreatePaymentRequest{
		SaleID:        sale.ID.String(),
		PaymentMethod: "tarjeta",
	})
	require.Error(t, err)
	assert.Empty(t, paymentRepo.payments)
}

func TestCreatePayment_VentaObligatoria(t *testing.T) {
	svc, _, _, _ := buildPaymentSvc(&stubGateway{success: true})

	_, err := svc.CreatePayment(context.Background(), clienteActor(), dto.CreatePaymentRequest{
		PaymentMethod: "tarjeta",
	})
	assert.ErrorContains(t, err, "La venta es obligatoria para procesar el pago")
}

func TestCreatePayment_MetodoInvalido(t *testing.T) {
	svc, _, saleRepo, orderRepo := buildPaymentSvc(&stubGateway{success: true})
	actor := clienteActor()
	sale, _ := seedSaleWithOrder(saleRepo, orderRepo, actor.ID, 30)

	_, err := svc.CreatePayment(context.Background(), actor, dto.CreatePaymentRequest{
		SaleID:        sale.ID.String(),
		PaymentMethod: "cheque",
	})
	assert.ErrorContains(t, err, "El método de pago no es válido")
}

func TestCreatePayment_VentaAjena(t *testing.T) {
	svc, _, saleRepo, orderRepo := buildPaymentSvc(&stubGateway{success: true})
	owner := clienteActor()
	sale, _ := seedSaleWithOrder(saleRepo, orderRepo, owner.ID, 30)

	_, err := svc.CreatePayment(context.Background(), clienteActor(), dto.CreatePaymentRequest{
		SaleID:        sale.ID.String(),
		PaymentMethod: "efectivo",
	})
	assert.ErrorContains(t, err, "No autorizado")
}

// Settlement belongs to the sale's owner alone; admins get the same 403 and
// no payment record or status change happens.
func TestCreatePayment_AdminNoPuedeLiquidarVentaAjena(t *testing.T) {
	svc, paymentRepo, saleRepo, orderRepo := buildPaymentSvc(&stubGateway{success: true})
	owner := clienteActor()
	sale, order := seedSaleWithOrder(saleRepo, orderRepo, owner.ID, 30)

	admin := service.Actor{ID: uuid.New(), Role: model.RoleAdmin}
	_, err := svc.CreatePayment(context.Background(), admin, dto.CreatePaymentRequest{
		SaleID:        sale.ID.String(),
		OrderID:       order.ID.String(),
		PaymentMethod: "tarjeta",
	})
	assert.ErrorContains(t, err, "No autorizado")
	assert.Empty(t, paymentRepo.payments)
	assert.Equal(t, model.SalePending, sale.Status)
	assert.Equal(t, model.OrderPending, order.Status)
}

func TestUpdatePaymentStatus_TraduceYValida(t *testing.T) {
	svc, paymentRepo, saleRepo, orderRepo := buildPaymentSvc(&stubGateway{success: true})
	actor := clienteActor()
	sale, _ := seedSaleWithOrder(saleRepo, orderRepo, actor.ID, 30)

	created, err := svc.CreatePayment(context.Background(), actor, dto.CreatePaymentRequest{
		SaleID:        sale.ID.String(),
		PaymentMethod: "transferencia",
	})
	require.NoError(t, err)
	paymentID := uuid.MustParse(created.Payment.ID)

	resp, err := svc.UpdateStatus(context.Background(), paymentID, dto.UpdatePaymentStatusRequest{
		Estado: "reembolsado",
	})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentRefunded, resp.Status)
	assert.Equal(t, model.PaymentRefunded, paymentRepo.payments[paymentID].Status)

	_, err = svc.UpdateStatus(context.Background(), paymentID, dto.UpdatePaymentStatusRequest{
		Status: "voided",
	})
	assert.ErrorContains(t, err, "Estado de pago no válido")

	_, err = svc.UpdateStatus(context.Background(), uuid.New(), dto.UpdatePaymentStatusRequest{
		Status: "completed",
	})
	assert.ErrorContains(t, err, "Pago no encontrado")
}

func TestPasarelaSimulada_ForzadaSiempreAprueba(t *testing.T) {
	gw := infra.NewSeededGateway(true, 7)
	for i := 0; i < 20; i++ {
		auth, err := gw.Authorize(context.Background(), decimal.NewFromInt(100))
		require.NoError(t, err)
		assert.True(t, auth.Success)
		assert.True(t, strings.HasPrefix(auth.TransactionID, "TXN-"), "id = %s", auth.TransactionID)
	}
}
