package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workspacebcn/internal/apierror"
	"workspacebcn/internal/dto"
	"workspacebcn/internal/model"
	"workspacebcn/internal/repository"
)

type InventoryService interface {
	RegisterMovement(ctx context.Context, actor Actor, req dto.RegisterMovementRequest) (*dto.RegisterMovementResponse, error)
	ListMovements(ctx context.Context, filter dto.MovementFilter) ([]dto.MovementResponse, error)
	LowStock(ctx context.Context) ([]dto.ProductResponse, error)
	Stats(ctx context.Context) (*dto.InventoryStatsResponse, error)
	Overview(ctx context.Context, limit int) (*dto.InventoryOverviewResponse, error)
}

type inventoryService struct {
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
}

func NewInventoryService(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) InventoryService {
	return &inventoryService{productRepo: productRepo, movementRepo: movementRepo}
}

// ── RegisterMovement ──────────────────────────────────────────────────────────
// Admin direct movement. entrada/devolucion add quantity, salida subtracts
// (rejected when it would drive stock negative), ajuste sets the stock to the
// given quantity verbatim. The movement row always records |Δ| with the
// before/after snapshot.

func (s *inventoryService) RegisterMovement(ctx context.Context, actor Actor, req dto.RegisterMovementRequest) (*dto.RegisterMovementResponse, error) {
	if !model.ValidMovementType(req.Type) {
		return nil, apierror.BadRequest("El tipo de movimiento no es válido")
	}
	if req.Quantity <= 0 {
		return nil, apierror.BadRequest("La cantidad debe ser un número mayor que 0")
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apierror.NotFound("Producto no encontrado")
	}

	var movement model.InventoryMovement
	var updated model.Product

	txErr := runTx(ctx, s.productRepo.DB(), func(tx *gorm.DB) error {
		product, err := s.productRepo.FindByIDTx(tx, productID)
		if err != nil {
			return apierror.NotFound("Producto no encontrado")
		}

		previous := product.Stock
		var newStock int
		switch req.Type {
		case model.MovementEntrada, model.MovementDevolucion:
			newStock = previous + req.Quantity
			if err := s.productRepo.IncrementStockTx(tx, productID, req.Quantity); err != nil {
				return err
			}
		case model.MovementSalida:
			if previous < req.Quantity {
				return apierror.BadRequest("Stock insuficiente")
			}
			rows, err := s.productRepo.DecrementStockTx(tx, productID, req.Quantity)
			if err != nil {
				return err
			}
			if rows == 0 {
				return apierror.BadRequest("Stock insuficiente")
			}
			newStock = previous - req.Quantity
		case model.MovementAjuste:
			newStock = req.Quantity
			if err := s.productRepo.SetStockTx(tx, productID, newStock); err != nil {
				return err
			}
		}

		delta := newStock - previous
		if delta < 0 {
			delta = -delta
		}
		actorRef := actor.ID
		movement = model.InventoryMovement{
			ProductID:     productID,
			Type:          req.Type,
			Quantity:      delta,
			PreviousStock: previous,
			NewStock:      newStock,
			Reason:        req.Reason,
			UserID:        &actorRef,
		}
		if err := s.movementRepo.CreateTx(tx, &movement); err != nil {
			return err
		}

		updated = *product
		updated.Stock = newStock
		return nil
	})
	if txErr != nil {
		if ae := apierror.AsError(txErr); ae != nil {
			return nil, ae
		}
		return nil, txErr
	}

	return &dto.RegisterMovementResponse{
		Mensaje:             "Movimiento registrado exitosamente",
		Movimiento:          *movementToResponse(&movement),
		ProductoActualizado: *productToResponse(&updated),
	}, nil
}

func (s *inventoryService) ListMovements(ctx context.Context, filter dto.MovementFilter) ([]dto.MovementResponse, error) {
	if filter.Type != "" && !model.ValidMovementType(filter.Type) {
		return nil, apierror.BadRequest("El tipo de movimiento no es válido")
	}
	movements, err := s.movementRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MovementResponse, 0, len(movements))
	for i := range movements {
		resp = append(resp, *movementToResponse(&movements[i]))
	}
	return resp, nil
}

func (s *inventoryService) LowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := s.productRepo.ListLowStock(ctx, 0)
	if err != nil {
		return nil, err
	}
	return productsToResponse(products), nil
}

func (s *inventoryService) Stats(ctx context.Context) (*dto.InventoryStatsResponse, error) {
	total, err := s.productRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	low, err := s.productRepo.CountLowStock(ctx)
	if err != nil {
		return nil, err
	}
	out, err := s.productRepo.CountOutOfStock(ctx)
	if err != nil {
		return nil, err
	}
	value, err := s.productRepo.InventoryValue(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.movementRepo.CountSince(ctx, time.Now().AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}
	return &dto.InventoryStatsResponse{
		TotalProducts:       total,
		LowStockProducts:    low,
		OutOfStockProducts:  out,
		TotalInventoryValue: value,
		RecentMovements:     recent,
	}, nil
}

// Overview lists the low-stock and out-of-stock products. The list limit is
// clamped into 1..20; 0 means unlimited.
func (s *inventoryService) Overview(ctx context.Context, limit int) (*dto.InventoryOverviewResponse, error) {
	if limit != 0 {
		if limit < 1 {
			limit = 1
		} else if limit > 20 {
			limit = 20
		}
	}

	total, err := s.productRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	totalStock, avgStock, err := s.productRepo.StockTotals(ctx)
	if err != nil {
		return nil, err
	}
	low, err := s.productRepo.ListLowStock(ctx, limit)
	if err != nil {
		return nil, err
	}
	out, err := s.productRepo.ListOutOfStock(ctx, limit)
	if err != nil {
		return nil, err
	}

	return &dto.InventoryOverviewResponse{
		TotalProducts:      total,
		TotalStock:         totalStock,
		AvgStock:           int64(avgStock),
		LowStockProducts:   stockLevels(low),
		OutOfStockProducts: stockLevels(out),
	}, nil
}

func stockLevels(products []model.Product) []dto.StockLevel {
	levels := make([]dto.StockLevel, len(products))
	for i, p := range products {
		levels[i] = dto.StockLevel{
			ID:       p.ID.String(),
			Name:     p.Name,
			Stock:    p.Stock,
			MinStock: p.MinStock,
		}
	}
	return levels
}

func movementToResponse(m *model.InventoryMovement) *dto.MovementResponse {
	resp := &dto.MovementResponse{
		ID:            m.ID.String(),
		Type:          m.Type,
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		Reason:        m.Reason,
		Date:          m.Date.Format("2006-01-02T15:04:05Z"),
	}
	if m.Product != nil {
		price := m.Product.Price
		resp.Product = &dto.ProductBrief{
			ID:    m.Product.ID.String(),
			Name:  m.Product.Name,
			Image: m.Product.Image,
			Price: &price,
		}
	} else {
		resp.Product = &dto.ProductBrief{ID: m.ProductID.String()}
	}
	if m.User != nil {
		resp.User = &dto.UserBrief{
			ID:    m.User.ID.String(),
			Name:  m.User.Name,
			Email: m.User.Email,
		}
	}
	if m.SaleID != nil {
		resp.SaleID = m.SaleID.String()
	}
	return resp
}
