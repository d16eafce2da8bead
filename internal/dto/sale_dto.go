package dto

import "github.com/shopspring/decimal"

type SaleItemRequest struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

type CreateSaleRequest struct {
	Items           []SaleItemRequest      `json:"items"`
	ShippingAddress ShippingAddressRequest `json:"shippingAddress"`
}

type SaleItemResponse struct {
	Product   ProductBrief    `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type SaleResponse struct {
	ID              string                  `json:"id"`
	Customer        *UserBrief              `json:"customer,omitempty"`
	Items           []SaleItemResponse      `json:"items"`
	Total           decimal.Decimal         `json:"total"`
	Status          string                  `json:"status"`
	ShippingAddress ShippingAddressResponse `json:"shippingAddress"`
	ShippingCost    decimal.Decimal         `json:"shippingCost"`
	SaleDate        string                  `json:"saleDate"`
}

type UpdateSaleStatusRequest struct {
	Status string `json:"status"`
}

// ─── Admin dashboard ─────────────────────────────────────────────────────────

type PaymentMethodAggregate struct {
	Method string          `json:"_id"`
	Total  decimal.Decimal `json:"total"`
	Count  int64           `json:"count"`
}

type TopCustomer struct {
	Email string          `json:"email"`
	Name  string          `json:"name"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

type SalesSummary struct {
	TotalRevenue   decimal.Decimal          `json:"totalRevenue"`
	TotalOrders    int                      `json:"totalOrders"`
	AvgOrderValue  decimal.Decimal          `json:"avgOrderValue"`
	StatusCounts   map[string]int           `json:"statusCounts"`
	PaymentMethods []PaymentMethodAggregate `json:"paymentMethods"`
	TopCustomers   []TopCustomer            `json:"topCustomers"`
}

type AdminSalesResponse struct {
	Ventas  []SaleResponse `json:"ventas"`
	Summary SalesSummary   `json:"summary"`
}
