package tests

import (
	"context"
	"testing"

	"workspacebcn/internal/config"
	"workspacebcn/internal/dto"
	"workspacebcn/internal/model"
	"workspacebcn/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSaleSvc() (service.SaleService, *stubSaleRepo, *stubProductRepo, *stubMovementRepo, *stubPaymentRepo) {
	productRepo := newStubProductRepo()
	saleRepo := newStubSaleRepo()
	movementRepo := &stubMovementRepo{}
	paymentRepo := newStubPaymentRepo()
	cfg := &config.Config{ShippingCost: 4.99}

	svc := service.NewSaleService(saleRepo, productRepo, movementRepo, paymentRepo, nil, cfg)
	return svc, saleRepo, productRepo, movementRepo, paymentRepo
}

func TestCreateSale_UsaPrecioActualDelCatalogo(t *testing.T) {
	svc, saleRepo, productRepo, movementRepo, _ := buildSaleSvc()
	p := seedProduct(productRepo, "Escritorio elevable", 120, 4, 1)

	resp, err := svc.CreateSale(context.Background(), clienteActor(), dto.CreateSaleRequest{
		Items:           []dto.SaleItemRequest{{Product: p.ID.String(), Quantity: 1}},
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)

	sale, err := saleRepo.FindByID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	require.Len(t, sale.Items, 1)
	assert.True(t, decimal.NewFromInt(120).Equal(sale.Items[0].UnitPrice))
	assert.Equal(t, model.SalePending, sale.Status)

	assert.Equal(t, 3, p.Stock)
	require.Len(t, movementRepo.movements, 1)
	assert.Equal(t, model.MovementSalida, movementRepo.movements[0].Type)
	assert.Contains(t, movementRepo.movements[0].Reason, "Salida de stock por venta")
}

func TestCreateSale_AdminRechazado(t *testing.T) {
	svc, _, productRepo, _, _ := buildSaleSvc()
	p := seedProduct(productRepo, "Pizarra blanca", 45, 3, 1)

	admin := service.Actor{ID: uuid.New(), Role: model.RoleAdmin}
	_, err := svc.CreateSale(context.Background(), admin, dto.CreateSaleRequest{
		Items:           []dto.SaleItemRequest{{Product: p.ID.String(), Quantity: 1}},
		ShippingAddress: testAddress(),
	})
	assert.ErrorContains(t, err, "Administradores no pueden realizar compras")
}

func TestUpdateStatus_CancelarReponeStockDeCadaLinea(t *testing.T) {
	svc, saleRepo, productRepo, movementRepo, _ := buildSaleSvc()
	p1 := seedProduct(productRepo, "Monitor 24\"", 110, 6, 2)
	p2 := seedProduct(productRepo, "Brazo para monitor", 35, 4, 1)
	actor := clienteActor()
	admin := service.Actor{ID: uuid.New(), Role: model.RoleAdmin}

	created, err := svc.CreateSale(context.Background(), actor, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{Product: p1.ID.String(), Quantity: 2},
			{Product: p2.ID.String(), Quantity: 1},
		},
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)
	require.Equal(t, 4, p1.Stock)
	require.Equal(t, 3, p2.Stock)

	saleID := uuid.MustParse(created.ID)
	resp, err := svc.UpdateStatus(context.Background(), admin, saleID, dto.UpdateSaleStatusRequest{
		Status: "cancelled",
	})
	require.NoError(t, err)
	assert.Equal(t, model.SaleCancelled, resp.Status)

	// Every line restocked with a devolucion entry
	assert.Equal(t, 6, p1.Stock)
	assert.Equal(t, 4, p2.Stock)
	devoluciones := 0
	for _, m := range movementRepo.movements {
		if m.Type == model.MovementDevolucion {
			devoluciones++
			assert.Contains(t, m.Reason, "Devolución de stock por cancelación de venta")
		}
	}
	assert.Equal(t, 2, devoluciones)

	// Cancelled is terminal: any further transition is rejected…
	_, err = svc.UpdateStatus(context.Background(), admin, saleID, dto.UpdateSaleStatusRequest{
		Status: "paid",
	})
	assert.ErrorContains(t, err, "No se puede modificar una venta que ya está cancelada")

	// …except restating cancelled, which is an idempotent no-op.
	movimientosAntes := len(movementRepo.movements)
	again, err := svc.UpdateStatus(context.Background(), admin, saleID, dto.UpdateSaleStatusRequest{
		Status: "cancelled",
	})
	require.NoError(t, err)
	assert.Equal(t, model.SaleCancelled, again.Status)
	assert.Len(t, movementRepo.movements, movimientosAntes)

	sale, err := saleRepo.FindByID(context.Background(), saleID)
	require.NoError(t, err)
	assert.Equal(t, model.SaleCancelled, sale.Status)
}

func TestUpdateStatus_AceptaTerminoEspanol(t *testing.T) {
	svc, _, productRepo, _, _ := buildSaleSvc()
	p := seedProduct(productRepo, "Estantería modular", 75, 3, 1)
	admin := service.Actor{ID: uuid.New(), Role: model.RoleAdmin}

	created, err := svc.CreateSale(context.Background(), clienteActor(), dto.CreateSaleRequest{
		Items:           []dto.SaleItemRequest{{Product: p.ID.String(), Quantity: 1}},
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)

	resp, err := svc.UpdateStatus(context.Background(), admin, uuid.MustParse(created.ID), dto.UpdateSaleStatusRequest{
		Status: "enviado",
	})
	require.NoError(t, err)
	assert.Equal(t, model.SaleShipped, resp.Status)
}

func TestUpdateStatus_EstadoInvalido(t *testing.T) {
	svc, _, _, _, _ := buildSaleSvc()
	admin := service.Actor{ID: uuid.New(), Role: model.RoleAdmin}

	_, err := svc.UpdateStatus(context.Background(), admin, uuid.New(), dto.UpdateSaleStatusRequest{
		Status: "teleported",
	})
	assert.ErrorContains(t, err, "Estado de venta no válido")
}

func TestUpdateStatus_NoTocaElPedidoEmparejado(t *testing.T) {
	svc, _, productRepo, _, _ := buildSaleSvc()
	p := seedProduct(productRepo, "Cajonera", 65, 3, 1)
	actor := clienteActor()
	admin := service.Actor{ID: uuid.New(), Role: model.RoleAdmin}

	created, err := svc.CreateSale(context.Background(), actor, dto.CreateSaleRequest{
		Items:           []dto.SaleItemRequest{{Product: p.ID.String(), Quantity: 1}},
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)
	saleID := uuid.MustParse(created.ID)

	// The checkout wrapper that references this sale.
	orderRepo := newStubOrderRepo()
	order := &model.Order{SaleID: saleID, UserID: actor.ID, Status: model.OrderPending, PaymentMethod: "tarjeta"}
	require.NoError(t, orderRepo.CreateTx(nil, order))

	// Sale-status transitions never propagate to the Order; only order
	// cancellation and payment settlement cross the two vocabularies.
	resp, err := svc.UpdateStatus(context.Background(), admin, saleID, dto.UpdateSaleStatusRequest{Status: "shipped"})
	require.NoError(t, err)
	assert.Equal(t, model.SaleShipped, resp.Status)
	assert.Equal(t, model.OrderPending, order.Status)

	resp, err = svc.UpdateStatus(context.Background(), admin, saleID, dto.UpdateSaleStatusRequest{Status: "delivered"})
	require.NoError(t, err)
	assert.Equal(t, model.SaleDelivered, resp.Status)
	assert.Equal(t, model.OrderPending, order.Status)
}

func TestGetSale_AjenoDenegado(t *testing.T) {
	svc, _, productRepo, _, _ := buildSaleSvc()
	p := seedProduct(productRepo, "Papelera de diseño", 22, 3, 1)
	owner := clienteActor()

	created, err := svc.CreateSale(context.Background(), owner, dto.CreateSaleRequest{
		Items:           []dto.SaleItemRequest{{Product: p.ID.String(), Quantity: 1}},
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)

	_, err = svc.GetSale(context.Background(), clienteActor(), uuid.MustParse(created.ID))
	assert.ErrorContains(t, err, "No autorizado")
}

func TestListAdmin_ResumenCuentaTodasLasVentas(t *testing.T) {
	svc, saleRepo, _, _, _ := buildSaleSvc()
	customer := uuid.New()
	otra := uuid.New()

	require.NoError(t, saleRepo.CreateTx(nil, &model.Sale{
		CustomerID: customer,
		Total:      decimal.NewFromInt(100),
		Status:     model.SalePaid,
		Customer:   &model.User{ID: customer, Name: "Marta", Email: "marta@example.com"},
	}))
	// Cancelled sales count toward revenue and the customer ranking too.
	require.NoError(t, saleRepo.CreateTx(nil, &model.Sale{
		CustomerID: customer,
		Total:      decimal.NewFromInt(40),
		Status:     model.SaleCancelled,
		Customer:   &model.User{ID: customer, Name: "Marta", Email: "marta@example.com"},
	}))
	require.NoError(t, saleRepo.CreateTx(nil, &model.Sale{
		CustomerID: otra,
		Total:      decimal.NewFromInt(60),
		Status:     model.SalePending,
		Customer:   &model.User{ID: otra, Name: "Pau", Email: "pau@example.com"},
	}))

	resp, err := svc.ListAdmin(context.Background())
	require.NoError(t, err)
	assert.Len(t, resp.Ventas, 3)
	assert.True(t, decimal.NewFromInt(200).Equal(resp.Summary.TotalRevenue), "revenue = %s", resp.Summary.TotalRevenue)
	assert.Equal(t, 3, resp.Summary.TotalOrders)
	assert.Equal(t, 1, resp.Summary.StatusCounts[model.SaleCancelled])

	require.Len(t, resp.Summary.TopCustomers, 2)
	assert.Equal(t, "marta@example.com", resp.Summary.TopCustomers[0].Email)
	assert.True(t, decimal.NewFromInt(140).Equal(resp.Summary.TopCustomers[0].Total))
	assert.Equal(t, 2, resp.Summary.TopCustomers[0].Count)
}
