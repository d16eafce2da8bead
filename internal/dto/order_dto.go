package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// OrderItemRequest accepts both the English field names and the Spanish
// aliases the legacy cart client sends.
type OrderItemRequest struct {
	Product  string `json:"product"`
	Producto string `json:"producto"`
	Quantity int    `json:"quantity"`
	Cantidad int    `json:"cantidad"`
	// UnitPrice captured by the cart at add-to-cart time; zero means
	// "use the current catalog price".
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	PrecioUnitario decimal.Decimal `json:"precioUnitario"`
}

// ProductID resolves the English/Spanish alias pair.
func (r OrderItemRequest) ProductID() string {
	if r.Product != "" {
		return r.Product
	}
	return r.Producto
}

// Qty resolves the English/Spanish alias pair.
func (r OrderItemRequest) Qty() int {
	if r.Quantity != 0 {
		return r.Quantity
	}
	return r.Cantidad
}

// Price resolves the English/Spanish alias pair.
func (r OrderItemRequest) Price() decimal.Decimal {
	if !r.UnitPrice.IsZero() {
		return r.UnitPrice
	}
	return r.PrecioUnitario
}

type ShippingAddressRequest struct {
	Street       string `json:"street"`
	Calle        string `json:"calle"`
	City         string `json:"city"`
	Ciudad       string `json:"ciudad"`
	PostalCode   string `json:"postalCode"`
	CodigoPostal string `json:"codigoPostal"`
	Country      string `json:"country"`
	Pais         string `json:"pais"`
	Phone        string `json:"phone"`
	Telefono     string `json:"telefono"`
}

// Normalized returns the address with aliases collapsed onto the English fields.
func (a ShippingAddressRequest) Normalized() ShippingAddressRequest {
	pick := func(en, es string) string {
		if en != "" {
			return en
		}
		return es
	}
	return ShippingAddressRequest{
		Street:     pick(a.Street, a.Calle),
		City:       pick(a.City, a.Ciudad),
		PostalCode: pick(a.PostalCode, a.CodigoPostal),
		Country:    pick(a.Country, a.Pais),
		Phone:      pick(a.Phone, a.Telefono),
	}
}

type CreateOrderRequest struct {
	Items           []OrderItemRequest     `json:"items"`
	Productos       []OrderItemRequest     `json:"productos"`
	ShippingAddress ShippingAddressRequest `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
	PaymentDetails  json.RawMessage        `json:"paymentDetails"`
}

// Lines resolves the items/productos alias pair.
func (r CreateOrderRequest) Lines() []OrderItemRequest {
	if len(r.Items) > 0 {
		return r.Items
	}
	return r.Productos
}

type ShippingAddressResponse struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

type OrderItemResponse struct {
	Product   ProductBrief    `json:"product"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// ProductBrief is the populated slice of product data embedded in order and
// sale responses.
type ProductBrief struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Image string           `json:"image,omitempty"`
	Price *decimal.Decimal `json:"price,omitempty"`
}

type OrderResponse struct {
	ID              string                  `json:"id"`
	SaleID          string                  `json:"sale"`
	User            *UserBrief              `json:"user,omitempty"`
	Items           []OrderItemResponse     `json:"items"`
	ShippingAddress ShippingAddressResponse `json:"shippingAddress"`
	PaymentMethod   string                  `json:"paymentMethod"`
	ShippingCost    decimal.Decimal         `json:"shippingCost"`
	Total           decimal.Decimal         `json:"total"`
	Status          string                  `json:"status"`
	PaidAt          *string                 `json:"paidAt,omitempty"`
	CreatedAt       string                  `json:"createdAt"`
}

type UserBrief struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateOrderResponse is the checkout response: the populated order plus the
// sale id the payment step references.
type CreateOrderResponse struct {
	Order  OrderResponse `json:"order"`
	SaleID string        `json:"saleId"`
}

type CancelOrderResponse struct {
	Mensaje string        `json:"mensaje"`
	Order   OrderResponse `json:"order"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
}
