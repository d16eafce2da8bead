package dto

import "github.com/shopspring/decimal"

type PaymentDetailsRequest struct {
	Last4Digits string `json:"last4Digits"`
	CardType    string `json:"cardType"`
	PaypalEmail string `json:"paypalEmail"`
}

type CreatePaymentRequest struct {
	SaleID         string                `json:"saleId"`
	OrderID        string                `json:"orderId"`
	PaymentMethod  string                `json:"paymentMethod"`
	PaymentDetails PaymentDetailsRequest `json:"paymentDetails"`
}

type PaymentResponse struct {
	ID             string                `json:"id"`
	SaleID         string                `json:"sale"`
	OrderID        string                `json:"order,omitempty"`
	PaymentMethod  string                `json:"paymentMethod"`
	Status         string                `json:"status"`
	Amount         decimal.Decimal       `json:"amount"`
	Currency       string                `json:"currency"`
	TransactionID  string                `json:"transactionId"`
	PaymentDetails PaymentDetailsRequest `json:"paymentDetails"`
	PaymentDate    string                `json:"paymentDate"`
	ErrorMessage   *string               `json:"errorMessage"`
	// Customer is populated on admin listings.
	Customer *UserBrief `json:"customer,omitempty"`
}

// CreatePaymentResponse is the settlement response shape {mensaje, payment, success}.
type CreatePaymentResponse struct {
	Mensaje string          `json:"mensaje"`
	Payment PaymentResponse `json:"payment"`
	Success bool            `json:"success"`
}

// UpdatePaymentStatusRequest accepts either status or estado, in Spanish or
// English — the service normalizes through the translation table.
type UpdatePaymentStatusRequest struct {
	Status string `json:"status"`
	Estado string `json:"estado"`
}

func (r UpdatePaymentStatusRequest) Raw() string {
	if r.Status != "" {
		return r.Status
	}
	return r.Estado
}
