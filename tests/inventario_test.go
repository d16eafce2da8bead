package tests

import (
	"context"
	"testing"

	"workspacebcn/internal/dto"
	"workspacebcn/internal/model"
	"workspacebcn/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildInventorySvc() (service.InventoryService, *stubProductRepo, *stubMovementRepo) {
	productRepo := newStubProductRepo()
	movementRepo := &stubMovementRepo{}
	svc := service.NewInventoryService(productRepo, movementRepo)
	return svc, productRepo, movementRepo
}

func adminActor() service.Actor {
	return service.Actor{ID: uuid.New(), Email: "admin@workspacebcn.com", Role: model.RoleAdmin}
}

func TestRegisterMovement_Entrada(t *testing.T) {
	svc, productRepo, movementRepo := buildInventorySvc()
	p := seedProduct(productRepo, "Tóner negro", 18, 5, 2)

	resp, err := svc.RegisterMovement(context.Background(), adminActor(), dto.RegisterMovementRequest{
		ProductID: p.ID.String(),
		Type:      model.MovementEntrada,
		Quantity:  3,
		Reason:    "Reposición del proveedor",
	})
	require.NoError(t, err)
	assert.Equal(t, "Movimiento registrado exitosamente", resp.Mensaje)
	assert.Equal(t, 8, p.Stock)
	assert.Equal(t, 8, resp.ProductoActualizado.Stock)

	require.Len(t, movementRepo.movements, 1)
	mov := movementRepo.movements[0]
	assert.Equal(t, 3, mov.Quantity)
	assert.Equal(t, 5, mov.PreviousStock)
	assert.Equal(t, 8, mov.NewStock)
	require.NotNil(t, mov.UserID)
}

func TestRegisterMovement_SalidaInsuficiente(t *testing.T) {
	svc, productRepo, movementRepo := buildInventorySvc()
	p := seedProduct(productRepo, "Papel A4", 6, 2, 5)

	_, err := svc.RegisterMovement(context.Background(), adminActor(), dto.RegisterMovementRequest{
		ProductID: p.ID.String(),
		Type:      model.MovementSalida,
		Quantity:  5,
	})
	assert.ErrorContains(t, err, "Stock insuficiente")
	assert.Equal(t, 2, p.Stock)
	assert.Empty(t, movementRepo.movements)
}

func TestRegisterMovement_AjusteFijaStockVerbatim(t *testing.T) {
	svc, productRepo, movementRepo := buildInventorySvc()
	p := seedProduct(productRepo, "Grapadora", 9, 9, 2)

	// The quantity of an ajuste is the new absolute stock, not a delta.
	resp, err := svc.RegisterMovement(context.Background(), adminActor(), dto.RegisterMovementRequest{
		ProductID: p.ID.String(),
		Type:      model.MovementAjuste,
		Quantity:  4,
		Reason:    "Recuento físico",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, p.Stock)
	assert.Equal(t, 4, resp.ProductoActualizado.Stock)

	// The ledger row still records |Δ| with the before/after snapshot.
	require.Len(t, movementRepo.movements, 1)
	mov := movementRepo.movements[0]
	assert.Equal(t, 5, mov.Quantity)
	assert.Equal(t, 9, mov.PreviousStock)
	assert.Equal(t, 4, mov.NewStock)

	// Quantity must be positive for every type, ajuste included.
	_, err = svc.RegisterMovement(context.Background(), adminActor(), dto.RegisterMovementRequest{
		ProductID: p.ID.String(),
		Type:      model.MovementAjuste,
		Quantity:  0,
	})
	assert.ErrorContains(t, err, "La cantidad debe ser un número mayor que 0")
	assert.Equal(t, 4, p.Stock)
}

func TestRegisterMovement_Validaciones(t *testing.T) {
	svc, productRepo, _ := buildInventorySvc()
	p := seedProduct(productRepo, "Archivador", 12, 3, 1)

	_, err := svc.RegisterMovement(context.Background(), adminActor(), dto.RegisterMovementRequest{
		ProductID: p.ID.String(),
		Type:      "traslado",
		Quantity:  1,
	})
	assert.ErrorContains(t, err, "El tipo de movimiento no es válido")

	_, err = svc.RegisterMovement(context.Background(), adminActor(), dto.RegisterMovementRequest{
		ProductID: p.ID.String(),
		Type:      model.MovementEntrada,
		Quantity:  0,
	})
	assert.ErrorContains(t, err, "La cantidad debe ser un número mayor que 0")

	_, err = svc.RegisterMovement(context.Background(), adminActor(), dto.RegisterMovementRequest{
		ProductID: uuid.New().String(),
		Type:      model.MovementEntrada,
		Quantity:  1,
	})
	assert.ErrorContains(t, err, "Producto no encontrado")
}

// The ledger must balance: replaying every snapshot chain ends at the live
// stock figure.
func TestLedger_EncadenadoConsistente(t *testing.T) {
	svc, productRepo, movementRepo := buildInventorySvc()
	p := seedProduct(productRepo, "Cable HDMI", 9, 10, 2)
	actor := adminActor()

	steps := []dto.RegisterMovementRequest{
		{ProductID: p.ID.String(), Type: model.MovementSalida, Quantity: 4},
		{ProductID: p.ID.String(), Type: model.MovementEntrada, Quantity: 2},
		{ProductID: p.ID.String(), Type: model.MovementDevolucion, Quantity: 1},
		{ProductID: p.ID.String(), Type: model.MovementAjuste, Quantity: 12},
		{ProductID: p.ID.String(), Type: model.MovementSalida, Quantity: 3},
	}
	for _, step := range steps {
		_, err := svc.RegisterMovement(context.Background(), actor, step)
		require.NoError(t, err)
	}

	require.Len(t, movementRepo.movements, len(steps))
	prev := 10
	for i, mov := range movementRepo.movements {
		assert.Equal(t, prev, mov.PreviousStock, "movement %d", i)
		diff := mov.NewStock - mov.PreviousStock
		if diff < 0 {
			diff = -diff
		}
		assert.Equal(t, diff, mov.Quantity, "movement %d", i)
		prev = mov.NewStock
	}
	assert.Equal(t, prev, p.Stock)
}

func TestListMovements_FiltroTipoInvalido(t *testing.T) {
	svc, _, _ := buildInventorySvc()
	_, err := svc.ListMovements(context.Background(), dto.MovementFilter{Type: "traspaso"})
	assert.ErrorContains(t, err, "El tipo de movimiento no es válido")
}

func TestStats_ValorDeInventario(t *testing.T) {
	svc, productRepo, _ := buildInventorySvc()
	seedProduct(productRepo, "Regleta", 10, 4, 1)     // 40
	seedProduct(productRepo, "Flexo", 25, 2, 3)       // 50, low stock
	seedProduct(productRepo, "Trituradora", 60, 0, 1) // agotado

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalProducts)
	assert.Equal(t, int64(2), stats.LowStockProducts) // Flexo y Trituradora
	assert.Equal(t, int64(1), stats.OutOfStockProducts)
	assert.True(t, decimal.NewFromInt(90).Equal(stats.TotalInventoryValue), "value = %s", stats.TotalInventoryValue)
}

func TestOverview_LimiteClamp(t *testing.T) {
	svc, productRepo, _ := buildInventorySvc()
	for i := 0; i < 22; i++ {
		seedProduct(productRepo, "Low "+uuid.NewString()[:8], 10, 1, 5)
	}

	// Out-of-range limits clamp to the 1..20 bounds.
	resp, err := svc.Overview(context.Background(), 25)
	require.NoError(t, err)
	assert.Len(t, resp.LowStockProducts, 20)

	resp, err = svc.Overview(context.Background(), -3)
	require.NoError(t, err)
	assert.Len(t, resp.LowStockProducts, 1)

	// 0 means unlimited
	resp, err = svc.Overview(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, resp.LowStockProducts, 22)

	// In-range limits are honored
	resp, err = svc.Overview(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, resp.LowStockProducts, 2)
}
