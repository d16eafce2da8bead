package translation

import "testing"

func TestToEnglish(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"pendiente", "pending"},
		{"PENDIENTE", "pending"},
		{"Enviado", "shipped"},
		{"cancelado", "cancelled"},
		{"pagado", "paid"},
		{"desconocido", "fallback"},
		{"", "fallback"},
	}
	for _, tc := range cases {
		if got := ToEnglish(tc.in, SaleStatus, "fallback"); got != tc.want {
			t.Errorf("ToEnglish(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestToSpanish(t *testing.T) {
	if got := ToSpanish("completed", PaymentStatus); got != "completado" {
		t.Errorf("ToSpanish(completed) = %q", got)
	}
	// English values without an entry pass through unchanged.
	if got := ToSpanish("archived", PaymentStatus); got != "archived" {
		t.Errorf("ToSpanish(archived) = %q", got)
	}
}

func TestSaleOrderMapping(t *testing.T) {
	pairs := map[string]string{
		"pending":   "PENDING",
		"paid":      "PAID",
		"shipped":   "SHIPPED",
		"delivered": "DELIVERED",
		"cancelled": "CANCELLED",
	}
	for sale, order := range pairs {
		if got := OrderStatusForSale(sale); got != order {
			t.Errorf("OrderStatusForSale(%q) = %q, want %q", sale, got, order)
		}
		if got := SaleStatusForOrder(order); got != sale {
			t.Errorf("SaleStatusForOrder(%q) = %q, want %q", order, got, sale)
		}
	}

	// processing belongs to the sale vocabulary only.
	if got := OrderStatusForSale("processing"); got != "" {
		t.Errorf("OrderStatusForSale(processing) = %q, want empty", got)
	}
}
