package dto

// AlertStockItem is one low-stock product in the alerts feed, with the
// Spanish field names the admin dashboard expects.
type AlertStockItem struct {
	ID          string `json:"_id"`
	Nombre      string `json:"nombre"`
	Stock       int    `json:"stock"`
	StockMinimo int    `json:"stockMinimo"`
}

type AlertItem struct {
	AlertID    string `json:"alertId"`
	ID         string `json:"id"`
	Tipo       string `json:"tipo"`
	Referencia string `json:"referencia"`
	Titulo     string `json:"titulo"`
	Mensaje    string `json:"mensaje,omitempty"`
	Link       string `json:"link"`
	Priority   string `json:"priority"`
}

type AlertCounters struct {
	Ventas    int `json:"ventas"`
	Pagos     int `json:"pagos"`
	Productos int `json:"productos"`
}

type AdminAlertsResponse struct {
	PendingSalesCount    int              `json:"pendingSalesCount"`
	PendingPaymentsCount int              `json:"pendingPaymentsCount"`
	LowStockProducts     []AlertStockItem `json:"lowStockProducts"`
	Alertas              []AlertItem      `json:"alertas"`
	CounterByCard        AlertCounters    `json:"counterByCard"`
	ContadorAlertas      int              `json:"contadorAlertas"`
	UltimaActualizacion  string           `json:"ultimaActualizacion"`
}

// AlertDetailResponse resolves the referenced Sale or Payment for drill-down.
type AlertDetailResponse struct {
	Alert  AlertItem   `json:"alert"`
	Detail interface{} `json:"detail"`
}
