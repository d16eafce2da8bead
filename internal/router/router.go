package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"workspacebcn/internal/config"
	"workspacebcn/internal/handler"
	"workspacebcn/internal/infra"
	"workspacebcn/internal/middleware"
	"workspacebcn/internal/model"
	"workspacebcn/internal/repository"
	"workspacebcn/internal/service"
	"workspacebcn/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, assetCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	assetClient := infra.NewAssetClient(cfg.AssetStoreURL, assetCB)
	notifier := infra.NewRedisNotifier(rdb)
	gateway := infra.NewSimulatedGateway(cfg.ForceSuccess())

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	movementRepo := repository.NewMovementRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	alertRepo := repository.NewAlertRepository(db)
	contactRepo := repository.NewContactRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, assetClient, cfg)
	customerSvc := service.NewCustomerService(userRepo)
	contactSvc := service.NewContactService(contactRepo)
	productSvc := service.NewProductService(productRepo, notifier, assetClient)
	orderSvc := service.NewOrderService(orderRepo, saleRepo, productRepo, movementRepo, dispatcher, cfg)
	saleSvc := service.NewSaleService(saleRepo, productRepo, movementRepo, paymentRepo, dispatcher, cfg)
	paymentSvc := service.NewPaymentService(paymentRepo, saleRepo, orderRepo, gateway, dispatcher)
	inventorySvc := service.NewInventoryService(productRepo, movementRepo)
	alertSvc := service.NewAlertService(alertRepo, saleRepo, paymentRepo, productRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	customersH := handler.NewCustomersHandler(customerSvc)
	contactH := handler.NewContactHandler(contactSvc)
	productsH := handler.NewProductsHandler(productSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	paymentsH := handler.NewPaymentsHandler(paymentSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	alertsH := handler.NewAlertsHandler(alertSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	api := r.Group("/api")

	// Auth (public endpoints)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Catalog browsing — no auth required
	api.GET("/products", productsH.List)
	api.GET("/products/search", productsH.Search)
	api.GET("/products/:id", productsH.Get)

	// Public contact form
	api.POST("/contact", contactH.Create)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	adminMW := middleware.RequireRole(model.RoleAdmin)

	protected := api.Group("", jwtMW)
	{
		protected.GET("/auth/perfil", authH.Profile)
		protected.PUT("/auth/perfil", authH.UpdateProfile)
		protected.POST("/profile-image/upload", authH.UploadAvatar)

		protected.POST("/orders", ordersH.Create)
		protected.GET("/orders", ordersH.ListMine)
		protected.GET("/orders/me", ordersH.ListMine)
		protected.GET("/orders/:id", ordersH.Get)
		protected.POST("/orders/:id/cancel", ordersH.Cancel)

		protected.POST("/sales", salesH.Create)
		protected.GET("/sales/mis-compras", salesH.MisCompras)
		protected.GET("/sales/:id", salesH.Get)
		protected.GET("/sales", adminMW, salesH.ListAdmin)
		protected.PUT("/sales/:id/estado", adminMW, salesH.UpdateStatus)

		protected.POST("/payments", paymentsH.Create)
		protected.GET("/payments/mis-pagos", paymentsH.MisPagos)
		protected.GET("/payments/admin", adminMW, paymentsH.ListAdmin)
		protected.GET("/payments/:id", paymentsH.Get)
		protected.PUT("/payments/:id/estado", adminMW, paymentsH.UpdateStatus)

		// Catalog writes — admin only
		products := protected.Group("/products", adminMW)
		{
			products.POST("", productsH.Create)
			products.POST("/upload", productsH.Upload)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
		}

		inv := protected.Group("/inventory", adminMW)
		{
			inv.POST("/movements", inventoryH.RegisterMovement)
			inv.GET("/movements", inventoryH.ListMovements)
			inv.GET("/low-stock", inventoryH.LowStock)
			inv.GET("/stats", inventoryH.Stats)
			inv.GET("/overview", inventoryH.Overview)
		}

		customers := protected.Group("/customers", adminMW)
		{
			customers.GET("", customersH.List)
			customers.GET("/:id", customersH.Get)
			customers.PUT("/:id", customersH.Update)
			customers.DELETE("/:id", customersH.Delete)
		}

		admin := protected.Group("/admin", adminMW)
		{
			admin.GET("/alerts", alertsH.List)
			admin.GET("/alerts/:id", alertsH.Detail)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
