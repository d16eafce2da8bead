// Package translation maps between the Spanish-facing status vocabulary used
// by clients and the canonical English values stored in the database, and
// between the two parallel Sale/Order status enums. Pure lookup tables — no
// shared mutable state.
package translation

import "strings"

// SaleStatus maps Spanish sale statuses to the stored lowercase enum.
var SaleStatus = map[string]string{
	"pendiente":  "pending",
	"procesando": "processing",
	"enviado":    "shipped",
	"entregado":  "delivered",
	"cancelado":  "cancelled",
	"pagado":     "paid",
}

// PaymentStatus maps Spanish payment statuses to the stored enum.
var PaymentStatus = map[string]string{
	"pendiente":   "pending",
	"procesando":  "processing",
	"completado":  "completed",
	"fallido":     "failed",
	"reembolsado": "refunded",
}

// ToEnglish normalizes a possibly-Spanish status through the given table.
// Lookup is case-insensitive; unknown values fall back to def.
func ToEnglish(status string, table map[string]string, def string) string {
	if status == "" {
		return def
	}
	if english, ok := table[strings.ToLower(status)]; ok {
		return english
	}
	return def
}

// ToSpanish finds the Spanish term for an English status, or returns the
// status unchanged when no entry exists.
func ToSpanish(status string, table map[string]string) string {
	if status == "" {
		return ""
	}
	for spanish, english := range table {
		if english == status {
			return spanish
		}
	}
	return status
}

// Sale and Order keep independent status enums (lowercase vs uppercase) that
// are NOT in lockstep; only the pairs below correspond. Conflating the two
// vocabularies has caused bugs before — always map explicitly.

var saleToOrder = map[string]string{
	"pending":   "PENDING",
	"paid":      "PAID",
	"shipped":   "SHIPPED",
	"delivered": "DELIVERED",
	"cancelled": "CANCELLED",
}

var orderToSale = map[string]string{
	"PENDING":   "pending",
	"PAID":      "paid",
	"SHIPPED":   "shipped",
	"DELIVERED": "delivered",
	"CANCELLED": "cancelled",
}

// OrderStatusForSale returns the Order status corresponding to a Sale status,
// or "" when the sale status has no order-side counterpart (e.g. processing).
func OrderStatusForSale(saleStatus string) string {
	return saleToOrder[saleStatus]
}

// SaleStatusForOrder returns the Sale status corresponding to an Order status,
// or "" for unknown values.
func SaleStatusForOrder(orderStatus string) string {
	return orderToSale[orderStatus]
}
