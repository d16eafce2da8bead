package dto

import "github.com/shopspring/decimal"

type RegisterMovementRequest struct {
	ProductID string `json:"productId"`
	Type      string `json:"type"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
}

type MovementResponse struct {
	ID            string        `json:"id"`
	Product       *ProductBrief `json:"product,omitempty"`
	Type          string        `json:"type"`
	Quantity      int           `json:"quantity"`
	PreviousStock int           `json:"previousStock"`
	NewStock      int           `json:"newStock"`
	Reason        string        `json:"reason,omitempty"`
	User          *UserBrief    `json:"user,omitempty"`
	SaleID        string        `json:"sale,omitempty"`
	Date          string        `json:"date"`
}

type RegisterMovementResponse struct {
	Mensaje             string           `json:"mensaje"`
	Movimiento          MovementResponse `json:"movimiento"`
	ProductoActualizado ProductResponse  `json:"productoActualizado"`
}

type MovementFilter struct {
	ProductID string `form:"productId"`
	Type      string `form:"type"`
	Limit     int    `form:"limit,default=50"`
}

type InventoryStatsResponse struct {
	TotalProducts       int64           `json:"totalProducts"`
	LowStockProducts    int64           `json:"lowStockProducts"`
	OutOfStockProducts  int64           `json:"outOfStockProducts"`
	TotalInventoryValue decimal.Decimal `json:"totalInventoryValue"`
	RecentMovements     int64           `json:"recentMovements"`
}

type StockLevel struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Stock    int    `json:"stock"`
	MinStock int    `json:"minStock"`
}

type InventoryOverviewResponse struct {
	TotalProducts      int64        `json:"totalProducts"`
	TotalStock         int64        `json:"totalStock"`
	AvgStock           int64        `json:"avgStock"`
	LowStockProducts   []StockLevel `json:"lowStockProducts"`
	OutOfStockProducts []StockLevel `json:"outOfStockProducts"`
}
