package purchase

import (
	"github.com/laujml/la-cuponera/internal/domain/coupon/codegen"
	couponRepo "github.com/laujml/la-cuponera/internal/domain/coupon/repository"
	offerRepo "github.com/laujml/la-cuponera/internal/domain/offer/repository"
	offerService "github.com/laujml/la-cuponera/internal/domain/offer/service"
	"github.com/laujml/la-cuponera/internal/domain/purchase/handler"
	"github.com/laujml/la-cuponera/internal/domain/purchase/repository"
	"github.com/laujml/la-cuponera/internal/domain/purchase/service"
	"github.com/laujml/la-cuponera/internal/domain/purchase/strategy"
	"github.com/laujml/la-cuponera/internal/pkg/config"
	"github.com/laujml/la-cuponera/internal/pkg/middleware"
	"github.com/laujml/la-cuponera/internal/pkg/registry"
	"github.com/laujml/la-cuponera/internal/pkg/worker"

	"github.com/gin-gonic/gin"
)

// PurchaseModule wires the write path: the purchase transaction coordinator
// and its collaborators.
type PurchaseModule struct{}

func init() {
	registry.Register(&PurchaseModule{})
}

func (m *PurchaseModule) Name() string {
	return "purchase"
}

func (m *PurchaseModule) Priority() int {
	return 20
}

func (m *PurchaseModule) Init(ctx *registry.ModuleContext) error {
	cfg := config.GlobalConfig.Purchase

	oRepo := offerRepo.NewOfferRepository(ctx.DB)
	cRepo := couponRepo.NewCouponRepository(ctx.DB)
	pRepo := repository.NewPurchaseRepository(ctx.DB, cRepo, oRepo)

	// The gate uses the uncached offer service: purchase decisions always
	// read the store.
	oService := offerService.NewOfferService(oRepo)

	pool := worker.NewInvalidatePool(ctx.Cache, cfg.InvalidateWorkers, cfg.InvalidateQueue)
	pool.Start()

	pService := service.NewPurchaseService(service.Options{
		Offers:      oService,
		Repo:        pRepo,
		Payment:     strategy.NewSimulatedCardStrategy(),
		Codegen:     codegen.New(),
		Metrics:     ctx.Metrics,
		Invalidates: pool,
		CodeRetries: cfg.CodeRetries,
	})
	pHandler := handler.NewPurchaseHandler(pService)

	setupRoutes(ctx.Router, pHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.PurchaseHandler) {
	g := r.Group("/compras")
	g.Use(middleware.AuthMiddleware(), middleware.RateLimitMiddleware())
	{
		g.POST("", h.Purchase)
	}
}
